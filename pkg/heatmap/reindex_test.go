package heatmap

import (
	"testing"

	"gonum.org/v1/gonum/mat"

	"github.com/ethanknights/shap/pkg/errors"
	"github.com/ethanknights/shap/pkg/heatmap/ordering"
)

func TestReindexReordersRowsExactly(t *testing.T) {
	values := mat.NewDense(3, 2, []float64{
		0, 1, // row 0
		10, 11, // row 1
		20, 21, // row 2
	})

	got, err := Reindex(values, []int{2, 0, 1}, []int{0, 1})
	if err != nil {
		t.Fatalf("Reindex() error = %v", err)
	}

	want := [][]float64{{20, 21}, {0, 1}, {10, 11}}
	for i, row := range want {
		for j, v := range row {
			if got.At(i, j) != v {
				t.Errorf("At(%d,%d) = %v, want %v", i, j, got.At(i, j), v)
			}
		}
	}

	// Input is untouched.
	if values.At(0, 0) != 0 {
		t.Error("Reindex() must not modify its input")
	}
}

func TestReindexColumns(t *testing.T) {
	values := mat.NewDense(2, 3, []float64{
		1, 2, 3,
		4, 5, 6,
	})

	got, err := Reindex(values, []int{0, 1}, []int{2, 0, 1})
	if err != nil {
		t.Fatalf("Reindex() error = %v", err)
	}

	want := [][]float64{{3, 1, 2}, {6, 4, 5}}
	for i, row := range want {
		for j, v := range row {
			if got.At(i, j) != v {
				t.Errorf("At(%d,%d) = %v, want %v", i, j, got.At(i, j), v)
			}
		}
	}
}

func TestReindexInverseRoundTrip(t *testing.T) {
	values := mat.NewDense(3, 4, []float64{
		1, 2, 3, 4,
		5, 6, 7, 8,
		9, 10, 11, 12,
	})
	samplePerm := []int{2, 0, 1}
	featurePerm := []int{3, 1, 0, 2}

	forward, err := Reindex(values, samplePerm, featurePerm)
	if err != nil {
		t.Fatalf("Reindex() error = %v", err)
	}
	back, err := Reindex(forward, Inverse(samplePerm), Inverse(featurePerm))
	if err != nil {
		t.Fatalf("Reindex() inverse error = %v", err)
	}

	if !mat.Equal(values, back) {
		t.Errorf("round trip = %v, want original %v", mat.Formatted(back), mat.Formatted(values))
	}

	// Same property for labels and scores.
	labels := []string{"a", "b", "c", "d"}
	permuted, err := Permute(labels, featurePerm, ordering.AxisFeatures)
	if err != nil {
		t.Fatalf("Permute() error = %v", err)
	}
	restored, err := Permute(permuted, Inverse(featurePerm), ordering.AxisFeatures)
	if err != nil {
		t.Fatalf("Permute() inverse error = %v", err)
	}
	for i := range labels {
		if restored[i] != labels[i] {
			t.Errorf("restored[%d] = %q, want %q", i, restored[i], labels[i])
		}
	}
}

func TestReindexShapeMismatch(t *testing.T) {
	values := mat.NewDense(2, 3, []float64{1, 2, 3, 4, 5, 6})

	_, err := Reindex(values, []int{0}, []int{0, 1, 2})
	if !errors.Is(err, errors.ErrCodeShapeMismatch) {
		t.Errorf("short sample perm: code = %v, want SHAPE_MISMATCH", errors.GetCode(err))
	}

	_, err = Reindex(values, []int{0, 1}, []int{0, 1})
	if !errors.Is(err, errors.ErrCodeShapeMismatch) {
		t.Errorf("short feature perm: code = %v, want SHAPE_MISMATCH", errors.GetCode(err))
	}

	_, err = Reindex(values, []int{0, 0}, []int{0, 1, 2})
	if !errors.Is(err, errors.ErrCodeInvalidPermutation) {
		t.Errorf("repeated index: code = %v, want INVALID_PERMUTATION", errors.GetCode(err))
	}
}

func TestPermuteNilPassesThrough(t *testing.T) {
	out, err := Permute[float64](nil, []int{1, 0}, ordering.AxisFeatures)
	if err != nil {
		t.Fatalf("Permute() error = %v", err)
	}
	if out != nil {
		t.Errorf("Permute(nil) = %v, want nil", out)
	}
}

func TestInverse(t *testing.T) {
	perm := []int{2, 0, 3, 1}
	inv := Inverse(perm)
	for i, p := range perm {
		if inv[p] != i {
			t.Errorf("inv[%d] = %d, want %d", p, inv[p], i)
		}
	}
}
