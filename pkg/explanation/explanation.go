// Package explanation defines the attribution data bundle consumed by the
// heatmap pipeline.
//
// An [Explanation] pairs a samples × features matrix of attribution values
// (how much each feature contributed to each sample's prediction) with one
// label per feature column. It is the sole input of the preparation
// pipeline; all downstream transformations allocate new data and leave the
// explanation untouched.
package explanation

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/ethanknights/shap/pkg/errors"
)

// Explanation bundles an attribution matrix with its feature labels.
//
// Rows are samples, columns are features. FeatureNames is ordered in
// parallel with the feature axis.
type Explanation struct {
	Values       *mat.Dense // samples × features attribution values
	FeatureNames []string   // one label per feature column
}

// New builds an Explanation from a row-major slice of attribution values.
//
// Every row must have the same length. If featureNames is nil, synthetic
// "Feature N" labels are generated; otherwise its length must equal the
// number of columns.
func New(values [][]float64, featureNames []string) (*Explanation, error) {
	if len(values) == 0 || len(values[0]) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "attribution matrix must have at least one sample and one feature")
	}
	cols := len(values[0])
	for i, row := range values {
		if len(row) != cols {
			return nil, errors.New(errors.ErrCodeInvalidInput, "row %d has %d values, want %d", i, len(row), cols)
		}
	}

	m := mat.NewDense(len(values), cols, nil)
	for i, row := range values {
		m.SetRow(i, row)
	}

	e := &Explanation{Values: m, FeatureNames: featureNames}
	if e.FeatureNames == nil {
		e.FeatureNames = defaultNames(cols)
	}
	if err := e.Validate(); err != nil {
		return nil, err
	}
	return e, nil
}

// Samples returns the number of rows in the attribution matrix.
func (e *Explanation) Samples() int {
	r, _ := e.Values.Dims()
	return r
}

// Features returns the number of columns in the attribution matrix.
func (e *Explanation) Features() int {
	_, c := e.Values.Dims()
	return c
}

// Validate checks that the explanation is internally consistent.
func (e *Explanation) Validate() error {
	if e.Values == nil {
		return errors.New(errors.ErrCodeInvalidInput, "explanation has no attribution values")
	}
	r, c := e.Values.Dims()
	if r == 0 || c == 0 {
		return errors.New(errors.ErrCodeInvalidInput, "attribution matrix must have at least one sample and one feature")
	}
	if len(e.FeatureNames) != c {
		return errors.New(errors.ErrCodeShapeMismatch,
			"feature axis: expected %d labels, got %d", c, len(e.FeatureNames))
	}
	return nil
}

// defaultNames generates "Feature 0" .. "Feature n-1" labels.
func defaultNames(n int) []string {
	names := make([]string, n)
	for i := range names {
		names[i] = fmt.Sprintf("Feature %d", i)
	}
	return names
}
