package ordering

import (
	"gonum.org/v1/gonum/mat"

	"github.com/ethanknights/shap/pkg/errors"
)

// Axis identifies one dimension of the attribution matrix.
type Axis int

const (
	// AxisSamples is the row axis (one row per sample).
	AxisSamples Axis = iota
	// AxisFeatures is the column axis (one column per feature).
	AxisFeatures
)

// String returns the plain axis name.
func (a Axis) String() string {
	if a == AxisSamples {
		return "samples"
	}
	return "features"
}

// SpecName returns the name of the ordering parameter governing this axis,
// used in error messages: "sample_order" for rows, "input_order" for columns.
func (a Axis) SpecName() string {
	if a == AxisSamples {
		return "sample_order"
	}
	return "input_order"
}

// Len returns the size of the matrix along this axis.
func (a Axis) Len(values *mat.Dense) int {
	r, c := values.Dims()
	if a == AxisSamples {
		return r
	}
	return c
}

// Strategy computes an ordering for one axis of an attribution matrix.
//
// Order returns a permutation of length Axis.Len(values). It may also return
// per-element scores of the same length, aligned to the ORIGINAL element
// indices (not the permuted order); the reindexer permutes them alongside
// the data. Strategies that rank by similarity rather than importance
// return nil scores.
//
// Implementations must be stateless and side-effect-free.
type Strategy interface {
	Order(values *mat.Dense, axis Axis) (perm []int, scores []float64, err error)
}

// Resolve turns an ordering specification into a concrete permutation over
// the given axis, plus optional per-element scores.
//
// The specification is either a [Strategy], which is invoked with the matrix
// and axis, or an explicit []int permutation, which is validated against the
// axis length. Any other value fails with UNSUPPORTED_ORDERING naming the
// offending axis. Permutations from either source must be bijections over
// 0..n-1.
func Resolve(spec any, values *mat.Dense, axis Axis) ([]int, []float64, error) {
	n := axis.Len(values)

	switch s := spec.(type) {
	case Strategy:
		perm, scores, err := s.Order(values, axis)
		if err != nil {
			return nil, nil, err
		}
		if err := ValidatePermutation(perm, n, axis); err != nil {
			return nil, nil, err
		}
		if scores != nil && len(scores) != n {
			return nil, nil, errors.New(errors.ErrCodeShapeMismatch,
				"%s: expected %d scores, got %d", axis.SpecName(), n, len(scores))
		}
		return perm, scores, nil
	case []int:
		if err := ValidatePermutation(s, n, axis); err != nil {
			return nil, nil, err
		}
		perm := make([]int, n)
		copy(perm, s)
		return perm, nil, nil
	default:
		return nil, nil, errors.New(errors.ErrCodeUnsupportedOrdering,
			"unsupported %s: %v", axis.SpecName(), spec)
	}
}

// Default returns the standard strategy for an axis: [AbsMean] for features,
// [HClust] for samples.
func Default(axis Axis) Strategy {
	if axis == AxisFeatures {
		return AbsMean{}
	}
	return HClust{}
}

// strategies maps CLI names to built-in strategies.
var strategies = map[string]Strategy{
	"abs-mean": AbsMean{},
	"hclust":   HClust{},
	"identity": Identity{},
}

// Parse looks up a built-in strategy by name. The empty string selects the
// axis default.
func Parse(name string, axis Axis) (Strategy, error) {
	if name == "" {
		return Default(axis), nil
	}
	s, ok := strategies[name]
	if !ok {
		return nil, errors.New(errors.ErrCodeUnsupportedOrdering,
			"unsupported %s: %q (must be 'abs-mean', 'hclust', or 'identity')", axis.SpecName(), name)
	}
	return s, nil
}

// ValidatePermutation verifies that perm has length n and is a bijection
// over 0..n-1. Length disagreements yield SHAPE_MISMATCH; repeats and
// out-of-range indices yield INVALID_PERMUTATION. Errors name the axis.
func ValidatePermutation(perm []int, n int, axis Axis) error {
	if len(perm) != n {
		return errors.New(errors.ErrCodeShapeMismatch,
			"%s: expected permutation of length %d, got %d", axis.SpecName(), n, len(perm))
	}
	seen := make([]bool, n)
	for _, p := range perm {
		if p < 0 || p >= n {
			return errors.New(errors.ErrCodeInvalidPermutation,
				"%s: index %d out of range [0,%d)", axis.SpecName(), p, n)
		}
		if seen[p] {
			return errors.New(errors.ErrCodeInvalidPermutation,
				"%s: index %d appears more than once", axis.SpecName(), p)
		}
		seen[p] = true
	}
	return nil
}

// Identity orders elements exactly as they appear in the input.
type Identity struct{}

// Order returns the identity permutation and no scores.
func (Identity) Order(values *mat.Dense, axis Axis) ([]int, []float64, error) {
	perm := make([]int, axis.Len(values))
	for i := range perm {
		perm[i] = i
	}
	return perm, nil, nil
}
