// Package clustering groups listening sessions into behavioral archetypes
// with k-means over standardized and one-hot encoded session statistics.
package clustering

import (
	"errors"
	"fmt"

	"github.com/scrobbleworks/playback-tools/internal/sessions"
)

const (
	// DefaultClusters is the default cluster count; callers allow 2 through 6.
	DefaultClusters = 4
	// DefaultSeed makes repeated fits over the same table reproducible.
	DefaultSeed = 42
)

// ErrInsufficientSamples reports that the session-stats table is too small
// for the requested fit.
var ErrInsufficientSamples = errors.New("insufficient samples")

// Result is the transformed feature table and the fitted cluster labels, row
// for row with the input session stats. Constant lists numeric features that
// had zero variance and were encoded as constant zero columns.
type Result struct {
	FeatureNames []string
	Features     [][]float64
	Labels       []int
	Constant     []string
}

// Fit standardizes the numeric session features, one-hot encodes the
// categorical ones, and partitions the sessions into k clusters using
// k-means++ initialization with a fixed seed. With k-means++ a single
// initialization is used; Lloyd iterations run until assignments stabilize.
func Fit(stats []sessions.Stat, k int, seed int64) (*Result, error) {
	if k < 1 {
		return nil, fmt.Errorf("cluster count must be positive, got %d", k)
	}
	if len(stats) < 2 {
		return nil, fmt.Errorf("%w: standardization needs at least 2 sessions, have %d",
			ErrInsufficientSamples, len(stats))
	}
	if k > len(stats) {
		return nil, fmt.Errorf("%w: %d clusters requested but only %d sessions",
			ErrInsufficientSamples, k, len(stats))
	}

	features, names, constant := buildFeatures(stats)
	labels := fitKMeans(features, k, seed)
	return &Result{
		FeatureNames: names,
		Features:     features,
		Labels:       labels,
		Constant:     constant,
	}, nil
}
