package heatmap

import (
	"gonum.org/v1/gonum/mat"

	"github.com/ethanknights/shap/pkg/heatmap/ordering"
)

// Reindex returns a new matrix with rows arranged by samplePerm and columns
// by featurePerm: result[i][j] = values[samplePerm[i]][featurePerm[j]].
//
// The sample permutation is applied first, then the feature permutation;
// dimensions are unchanged and the input is not modified. Reindex fails
// with SHAPE_MISMATCH when a permutation's length disagrees with the
// corresponding matrix dimension, and INVALID_PERMUTATION when one is not a
// bijection.
func Reindex(values *mat.Dense, samplePerm, featurePerm []int) (*mat.Dense, error) {
	r, c := values.Dims()
	if err := ordering.ValidatePermutation(samplePerm, r, ordering.AxisSamples); err != nil {
		return nil, err
	}
	if err := ordering.ValidatePermutation(featurePerm, c, ordering.AxisFeatures); err != nil {
		return nil, err
	}

	out := mat.NewDense(r, c, nil)
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			out.Set(i, j, values.At(samplePerm[i], featurePerm[j]))
		}
	}
	return out, nil
}

// Permute returns a new slice arranged by perm: result[i] = xs[perm[i]].
// A nil xs passes through as nil, so absent score slices stay absent.
func Permute[T any](xs []T, perm []int, axis ordering.Axis) ([]T, error) {
	if xs == nil {
		return nil, nil
	}
	if err := ordering.ValidatePermutation(perm, len(xs), axis); err != nil {
		return nil, err
	}
	out := make([]T, len(xs))
	for i, p := range perm {
		out[i] = xs[p]
	}
	return out, nil
}

// Inverse returns the inverse of a valid permutation.
func Inverse(perm []int) []int {
	inv := make([]int, len(perm))
	for i, p := range perm {
		inv[p] = i
	}
	return inv
}
