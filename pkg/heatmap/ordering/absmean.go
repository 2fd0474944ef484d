package ordering

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/mat"
)

// AbsMean orders elements by descending mean absolute attribution.
//
// For the feature axis this is the classic global-importance ranking: a
// feature that moves many predictions, in either direction, sorts first.
// The returned scores are the mean absolute values themselves, indexed by
// original element position, and feed the importance-bar overlay.
type AbsMean struct{}

// Order implements [Strategy].
func (AbsMean) Order(values *mat.Dense, axis Axis) ([]int, []float64, error) {
	n := axis.Len(values)
	other := AxisFeatures
	if axis == AxisFeatures {
		other = AxisSamples
	}
	m := other.Len(values)

	scores := make([]float64, n)
	for i := 0; i < n; i++ {
		var sum float64
		for j := 0; j < m; j++ {
			if axis == AxisSamples {
				sum += math.Abs(values.At(i, j))
			} else {
				sum += math.Abs(values.At(j, i))
			}
		}
		scores[i] = sum / float64(m)
	}

	perm := make([]int, n)
	for i := range perm {
		perm[i] = i
	}
	sort.SliceStable(perm, func(a, b int) bool {
		return scores[perm[a]] > scores[perm[b]]
	})

	return perm, scores, nil
}
