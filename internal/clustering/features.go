package clustering

import (
	"math"
	"sort"

	"github.com/scrobbleworks/playback-tools/internal/sessions"
)

// Numeric features are standardized because diversity ratios (bounded [0,1])
// and session length (hours, unbounded) are on incompatible scales; without
// it length would dominate every distance. Categoricals are one-hot encoded
// to avoid imposing a false ordinal structure on weekday or season.

var numericFeatures = []string{
	"session_length", "artist_diversity", "song_diversity", "first_listen_ratio",
}

var categoricalFeatures = []string{"weekday", "season", "time_of_day_start"}

func numericValue(s *sessions.Stat, name string) float64 {
	switch name {
	case "session_length":
		return s.SessionLength
	case "artist_diversity":
		return s.ArtistDiversity
	case "song_diversity":
		return s.SongDiversity
	case "first_listen_ratio":
		return s.FirstListenRatio
	}
	return 0
}

func categoricalValue(s *sessions.Stat, name string) string {
	switch name {
	case "weekday":
		return s.Weekday
	case "season":
		return s.Season
	case "time_of_day_start":
		return s.TimeOfDayStart
	}
	return ""
}

// buildFeatures transforms session stats into one numeric matrix: the
// standardized numeric block followed by the one-hot categorical block.
// The scaler is fit on the same data being clustered. A zero-variance
// numeric column becomes constant zero and is reported to the caller.
func buildFeatures(stats []sessions.Stat) (matrix [][]float64, names []string, constant []string) {
	n := len(stats)
	matrix = make([][]float64, n)
	for i := range matrix {
		matrix[i] = make([]float64, 0, len(numericFeatures))
	}

	for _, name := range numericFeatures {
		col := make([]float64, n)
		for i := range stats {
			col[i] = numericValue(&stats[i], name)
		}
		standardized, ok := standardize(col)
		if !ok {
			constant = append(constant, name)
		}
		for i := range matrix {
			matrix[i] = append(matrix[i], standardized[i])
		}
		names = append(names, name)
	}

	for _, name := range categoricalFeatures {
		categories := distinctSorted(stats, name)
		index := make(map[string]int, len(categories))
		for ci, c := range categories {
			index[c] = ci
			names = append(names, name+"_"+c)
		}
		for i := range stats {
			encoded := make([]float64, len(categories))
			encoded[index[categoricalValue(&stats[i], name)]] = 1
			matrix[i] = append(matrix[i], encoded...)
		}
	}
	return matrix, names, constant
}

// standardize scales a column to zero mean and unit variance using the
// population standard deviation. Reports ok=false and yields all zeros for a
// zero-variance column.
func standardize(col []float64) ([]float64, bool) {
	n := float64(len(col))
	var mean float64
	for _, v := range col {
		mean += v
	}
	mean /= n

	var variance float64
	for _, v := range col {
		d := v - mean
		variance += d * d
	}
	variance /= n
	std := math.Sqrt(variance)

	out := make([]float64, len(col))
	if std == 0 {
		return out, false
	}
	for i, v := range col {
		out[i] = (v - mean) / std
	}
	return out, true
}

// distinctSorted returns the lexicographically sorted distinct values of one
// categorical column, giving a stable one-hot layout for a fixed dataset.
func distinctSorted(stats []sessions.Stat, name string) []string {
	seen := make(map[string]bool)
	var values []string
	for i := range stats {
		v := categoricalValue(&stats[i], name)
		if !seen[v] {
			seen[v] = true
			values = append(values, v)
		}
	}
	sort.Strings(values)
	return values
}
