package heatmap

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/mat"
)

func TestMeanCurveNormalized(t *testing.T) {
	// Per-sample means: {2, -4, 1} → normalized by 4 → {0.5, -1, 0.25}.
	values := mat.NewDense(3, 2, []float64{
		1, 3,
		-3, -5,
		0, 2,
	})

	curve := MeanCurve(values)
	want := []float64{0.5, -1, 0.25}
	for i, w := range want {
		if math.Abs(curve[i]-w) > 1e-12 {
			t.Errorf("curve[%d] = %v, want %v", i, curve[i], w)
		}
	}
}

func TestMeanCurveBounds(t *testing.T) {
	values := mat.NewDense(4, 3, []float64{
		5, -2, 9,
		0.5, 0.1, -7,
		3, 3, 3,
		-8, 2, 1,
	})

	for i, v := range MeanCurve(values) {
		if v < -1 || v > 1 {
			t.Errorf("curve[%d] = %v, want within [-1, 1]", i, v)
		}
	}
}

func TestMeanCurveAllZeros(t *testing.T) {
	curve := MeanCurve(mat.NewDense(2, 3, make([]float64, 6)))
	for i, v := range curve {
		if v != 0 {
			t.Errorf("curve[%d] = %v, want 0", i, v)
		}
		if math.IsNaN(v) {
			t.Errorf("curve[%d] is NaN, zero guard failed", i)
		}
	}
}

func TestImportanceBarsScaling(t *testing.T) {
	// With 20 samples the width factor is exactly 1, so bars are the
	// scores normalized by max abs.
	bars := ImportanceBars([]float64{4, 2, 1}, 20)
	want := []float64{1, 0.5, 0.25}
	for i, w := range want {
		if math.Abs(bars[i]-w) > 1e-12 {
			t.Errorf("bars[%d] = %v, want %v", i, bars[i], w)
		}
	}

	// Ten samples halve every bar.
	bars = ImportanceBars([]float64{4, 2, 1}, 10)
	for i, w := range []float64{0.5, 0.25, 0.125} {
		if math.Abs(bars[i]-w) > 1e-12 {
			t.Errorf("bars[%d] = %v, want %v", i, bars[i], w)
		}
	}
}

func TestImportanceBarsNormalizedBounds(t *testing.T) {
	bars := ImportanceBars([]float64{-9, 3, 0.5, 7}, 20)
	for i, v := range bars {
		if v < -1 || v > 1 {
			t.Errorf("bars[%d] = %v, want within [-1, 1]", i, v)
		}
	}
}

func TestImportanceBarsOmittedWithoutScores(t *testing.T) {
	if bars := ImportanceBars(nil, 10); bars != nil {
		t.Errorf("bars = %v, want nil when scores are absent", bars)
	}
}

func TestImportanceBarsAllZeroScores(t *testing.T) {
	bars := ImportanceBars([]float64{0, 0, 0}, 10)
	if len(bars) != 3 {
		t.Fatalf("len(bars) = %d, want 3", len(bars))
	}
	for i, v := range bars {
		if v != 0 || math.IsNaN(v) {
			t.Errorf("bars[%d] = %v, want 0", i, v)
		}
	}
}
