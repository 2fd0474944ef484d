package heatmap

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/mat"

	"github.com/ethanknights/shap/pkg/errors"
)

func collapseInput() (*mat.Dense, []string, []float64) {
	values := mat.NewDense(2, 4, []float64{
		1, 2, 3, 4,
		5, 6, 7, 8,
	})
	labels := []string{"a", "b", "c", "d"}
	scores := []float64{4, 3, 2, 1}
	return values, labels, scores
}

func TestCollapseNoOpWhenWithinCap(t *testing.T) {
	values, labels, scores := collapseInput()

	for _, cap := range []int{4, 5, 100} {
		view, err := Collapse(values, labels, scores, cap)
		if err != nil {
			t.Fatalf("Collapse(cap=%d) error = %v", cap, err)
		}
		if view.Features() != 4 {
			t.Errorf("cap=%d: Features() = %d, want 4", cap, view.Features())
		}
		if !mat.Equal(view.Values, values) {
			t.Errorf("cap=%d: values changed on no-op collapse", cap)
		}
		for i, l := range labels {
			if view.Labels[i] != l {
				t.Errorf("cap=%d: Labels[%d] = %q, want %q", cap, i, view.Labels[i], l)
			}
		}
		for i, s := range scores {
			if view.Scores[i] != s {
				t.Errorf("cap=%d: Scores[%d] = %v, want %v", cap, i, view.Scores[i], s)
			}
		}
	}
}

func TestCollapseNoOpReturnsCopies(t *testing.T) {
	values, labels, scores := collapseInput()

	view, err := Collapse(values, labels, scores, 4)
	if err != nil {
		t.Fatalf("Collapse() error = %v", err)
	}

	view.Values.Set(0, 0, 99)
	view.Labels[0] = "mutated"
	view.Scores[0] = -1

	if values.At(0, 0) != 1 || labels[0] != "a" || scores[0] != 4 {
		t.Error("Collapse() no-op must return copies, not aliases")
	}
}

func TestCollapseAggregatesTail(t *testing.T) {
	values, labels, scores := collapseInput()

	view, err := Collapse(values, labels, scores, 3)
	if err != nil {
		t.Fatalf("Collapse() error = %v", err)
	}

	if view.Features() != 3 {
		t.Fatalf("Features() = %d, want 3", view.Features())
	}

	// Kept columns unchanged.
	if view.Values.At(0, 0) != 1 || view.Values.At(1, 1) != 6 {
		t.Error("kept columns should be unchanged")
	}

	// Last column is the exact per-sample sum of columns 2..3.
	if got := view.Values.At(0, 2); got != 3+4 {
		t.Errorf("aggregate[0] = %v, want 7", got)
	}
	if got := view.Values.At(1, 2); got != 7+8 {
		t.Errorf("aggregate[1] = %v, want 15", got)
	}

	// Scores aggregate the same way; label counts the merged originals.
	if got := view.Scores[2]; got != 2+1 {
		t.Errorf("aggregate score = %v, want 3", got)
	}
	if view.Labels[2] != "2 other features" {
		t.Errorf("aggregate label = %q, want %q", view.Labels[2], "2 other features")
	}
}

// Aggregation must round-trip exactly for every valid cap.
func TestCollapseSumPreservation(t *testing.T) {
	values, labels, scores := collapseInput()
	r, c := values.Dims()

	for cap := 1; cap < c; cap++ {
		view, err := Collapse(values, labels, scores, cap)
		if err != nil {
			t.Fatalf("Collapse(cap=%d) error = %v", cap, err)
		}
		for i := 0; i < r; i++ {
			var want float64
			for j := cap - 1; j < c; j++ {
				want += values.At(i, j)
			}
			if got := view.Values.At(i, cap-1); math.Abs(got-want) > 1e-12 {
				t.Errorf("cap=%d sample=%d: aggregate = %v, want %v", cap, i, got, want)
			}
		}
	}
}

func TestCollapseCapOne(t *testing.T) {
	values, labels, scores := collapseInput()

	view, err := Collapse(values, labels, scores, 1)
	if err != nil {
		t.Fatalf("Collapse() error = %v", err)
	}

	if view.Features() != 1 {
		t.Fatalf("Features() = %d, want 1", view.Features())
	}
	if got := view.Values.At(0, 0); got != 1+2+3+4 {
		t.Errorf("aggregate[0] = %v, want 10", got)
	}
	if got := view.Values.At(1, 0); got != 5+6+7+8 {
		t.Errorf("aggregate[1] = %v, want 26", got)
	}
	if view.Labels[0] != "4 other features" {
		t.Errorf("label = %q, want %q", view.Labels[0], "4 other features")
	}
	if view.Scores[0] != 4+3+2+1 {
		t.Errorf("score = %v, want 10", view.Scores[0])
	}
}

func TestCollapseWithoutScores(t *testing.T) {
	values, labels, _ := collapseInput()

	view, err := Collapse(values, labels, nil, 2)
	if err != nil {
		t.Fatalf("Collapse() error = %v", err)
	}
	if view.Scores != nil {
		t.Errorf("Scores = %v, want nil when input has no scores", view.Scores)
	}
}

func TestCollapseRejectsBadInput(t *testing.T) {
	values, labels, scores := collapseInput()

	_, err := Collapse(values, labels, scores, 0)
	if !errors.Is(err, errors.ErrCodeInvalidDisplayCount) {
		t.Errorf("cap=0: code = %v, want INVALID_DISPLAY_COUNT", errors.GetCode(err))
	}

	_, err = Collapse(values, labels, scores, -3)
	if !errors.Is(err, errors.ErrCodeInvalidDisplayCount) {
		t.Errorf("cap=-3: code = %v, want INVALID_DISPLAY_COUNT", errors.GetCode(err))
	}

	_, err = Collapse(values, labels[:2], scores, 3)
	if !errors.Is(err, errors.ErrCodeShapeMismatch) {
		t.Errorf("short labels: code = %v, want SHAPE_MISMATCH", errors.GetCode(err))
	}

	_, err = Collapse(values, labels, scores[:1], 3)
	if !errors.Is(err, errors.ErrCodeShapeMismatch) {
		t.Errorf("short scores: code = %v, want SHAPE_MISMATCH", errors.GetCode(err))
	}
}
