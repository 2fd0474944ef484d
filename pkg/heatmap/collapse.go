package heatmap

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/ethanknights/shap/pkg/errors"
)

// CollapsedView is the matrix, labels, and importance scores after applying
// the display cap. Its feature count never exceeds the cap; when collapsing
// happened, the last column is the exact sum of all collapsed originals.
type CollapsedView struct {
	Values *mat.Dense // samples × (≤ maxDisplay) attribution values
	Labels []string   // one label per remaining column
	Scores []float64  // nil when the feature ordering carried no scores
}

// Features returns the number of feature columns in the view.
func (v CollapsedView) Features() int {
	_, c := v.Values.Dims()
	return c
}

// Collapse bounds the feature count of an already importance-ordered matrix.
//
// When the feature count is within maxDisplay the view is a plain copy.
// Otherwise columns 0..maxDisplay-2 are kept unchanged and the remaining
// tail is merged into one synthetic last column: its value per sample is
// the sum over the tail columns, its score the sum of their scores, and its
// label "<k> other features" where k counts the merged originals.
//
// Collapse only truncates and aggregates; the caller must have ordered
// features by descending importance beforehand. maxDisplay == 1 keeps only
// the aggregate column, summing everything.
func Collapse(values *mat.Dense, labels []string, scores []float64, maxDisplay int) (CollapsedView, error) {
	if maxDisplay < 1 {
		return CollapsedView{}, errors.New(errors.ErrCodeInvalidDisplayCount,
			"max display must be >= 1, got %d", maxDisplay)
	}

	r, c := values.Dims()
	if len(labels) != c {
		return CollapsedView{}, errors.New(errors.ErrCodeShapeMismatch,
			"input_order: expected %d labels, got %d", c, len(labels))
	}
	if scores != nil && len(scores) != c {
		return CollapsedView{}, errors.New(errors.ErrCodeShapeMismatch,
			"input_order: expected %d scores, got %d", c, len(scores))
	}

	if c <= maxDisplay {
		out := mat.NewDense(r, c, nil)
		out.Copy(values)
		view := CollapsedView{Values: out, Labels: append([]string(nil), labels...)}
		if scores != nil {
			view.Scores = append([]float64(nil), scores...)
		}
		return view, nil
	}

	kept := maxDisplay - 1 // tail starts here
	out := mat.NewDense(r, maxDisplay, nil)
	for i := 0; i < r; i++ {
		row := mat.Row(nil, i, values)
		for j := 0; j < kept; j++ {
			out.Set(i, j, row[j])
		}
		out.Set(i, kept, floats.Sum(row[kept:]))
	}

	merged := c - maxDisplay + 1
	newLabels := make([]string, maxDisplay)
	copy(newLabels, labels[:kept])
	newLabels[kept] = fmt.Sprintf("%d other features", merged)

	view := CollapsedView{Values: out, Labels: newLabels}
	if scores != nil {
		newScores := make([]float64, maxDisplay)
		copy(newScores, scores[:kept])
		newScores[kept] = floats.Sum(scores[kept:])
		view.Scores = newScores
	}
	return view, nil
}
