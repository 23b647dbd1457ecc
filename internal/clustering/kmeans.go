package clustering

import (
	"math"
	"math/rand"

	"github.com/muesli/clusters"
)

const maxIterations = 100

// sessionObservation wraps one transformed feature row so it satisfies the
// clusters.Observation interface while remembering its row index.
type sessionObservation struct {
	row    int
	coords clusters.Coordinates
}

func (o sessionObservation) Coordinates() clusters.Coordinates {
	return o.coords
}

func (o sessionObservation) Distance(point clusters.Coordinates) float64 {
	return o.coords.Distance(point)
}

// fitKMeans partitions the feature matrix into k clusters: k-means++ centroid
// seeding from a fixed random source, then Lloyd iterations until the
// assignments stop changing. The fixed source makes repeated fits over the
// same matrix yield identical labels.
func fitKMeans(matrix [][]float64, k int, seed int64) []int {
	rng := rand.New(rand.NewSource(seed))

	observations := make(clusters.Observations, len(matrix))
	for i, row := range matrix {
		observations[i] = sessionObservation{row: i, coords: clusters.Coordinates(row)}
	}

	cc := seedCentroids(observations, k, rng)
	labels := make([]int, len(observations))
	for i := range labels {
		labels[i] = -1
	}

	for iter := 0; iter < maxIterations; iter++ {
		cc.Reset()
		changed := false
		for i, o := range observations {
			ci := cc.Nearest(o)
			cc[ci].Append(o)
			if labels[i] != ci {
				labels[i] = ci
				changed = true
			}
		}

		// An emptied cluster gets re-seeded on a random observation so the
		// partition keeps exactly k groups.
		for ci := range cc {
			if len(cc[ci].Observations) == 0 {
				o := observations[rng.Intn(len(observations))]
				cc[ci].Center = copyCoordinates(o.Coordinates())
				changed = true
			}
		}

		if !changed {
			break
		}
		cc.Recenter()
	}
	return labels
}

// seedCentroids implements k-means++: the first centroid is drawn uniformly,
// each following one with probability proportional to the squared distance
// from its nearest already-chosen centroid.
func seedCentroids(observations clusters.Observations, k int, rng *rand.Rand) clusters.Clusters {
	cc := make(clusters.Clusters, 0, k)
	first := observations[rng.Intn(len(observations))]
	cc = append(cc, clusters.Cluster{Center: copyCoordinates(first.Coordinates())})

	for len(cc) < k {
		weights := make([]float64, len(observations))
		var total float64
		for i, o := range observations {
			nearest := math.MaxFloat64
			for _, c := range cc {
				if d := o.Distance(c.Center); d < nearest {
					nearest = d
				}
			}
			weights[i] = nearest
			total += nearest
		}

		if total == 0 {
			// Every observation coincides with a centroid already.
			cc = append(cc, clusters.Cluster{Center: copyCoordinates(first.Coordinates())})
			continue
		}

		target := rng.Float64() * total
		var cumulative float64
		chosen := len(observations) - 1
		for i, w := range weights {
			cumulative += w
			if cumulative >= target {
				chosen = i
				break
			}
		}
		cc = append(cc, clusters.Cluster{Center: copyCoordinates(observations[chosen].Coordinates())})
	}
	return cc
}

func copyCoordinates(c clusters.Coordinates) clusters.Coordinates {
	return append(clusters.Coordinates(nil), c...)
}
