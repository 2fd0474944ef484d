package heatmap

import (
	"math"
	"testing"

	"github.com/ethanknights/shap/pkg/errors"
	"github.com/ethanknights/shap/pkg/explanation"
	"github.com/ethanknights/shap/pkg/heatmap/ordering"
)

// importanceExplanation builds 3 samples × 12 features where feature j has
// constant value 12-j, so the default mean-abs ordering keeps the input
// feature order.
func importanceExplanation(t *testing.T) *explanation.Explanation {
	t.Helper()
	values := make([][]float64, 3)
	for i := range values {
		values[i] = make([]float64, 12)
		for j := range values[i] {
			values[i][j] = float64(12 - j)
		}
	}
	exp, err := explanation.New(values, nil)
	if err != nil {
		t.Fatalf("explanation.New() error = %v", err)
	}
	return exp
}

func TestBuildCollapsesToDisplayCap(t *testing.T) {
	exp := importanceExplanation(t)

	layout, err := Build(exp, Options{
		SampleOrder: []int{0, 1, 2},
		MaxDisplay:  5,
	})
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	if layout.Features() != 5 {
		t.Errorf("Features() = %d, want 5", layout.Features())
	}
	if got := layout.View.Labels[4]; got != "8 other features" {
		t.Errorf("last label = %q, want %q", got, "8 other features")
	}

	// Aggregate column: sum of feature values 8..1 = 36 for every sample.
	for i := 0; i < 3; i++ {
		if got := layout.View.Values.At(i, 4); got != 36 {
			t.Errorf("aggregate[%d] = %v, want 36", i, got)
		}
	}

	// Default feature ordering produces scores, so bars are present.
	if layout.ImportanceBars == nil {
		t.Error("ImportanceBars = nil, want bars from the default ordering")
	}
	if len(layout.ImportanceBars) != 5 {
		t.Errorf("len(ImportanceBars) = %d, want 5", len(layout.ImportanceBars))
	}
}

func TestBuildExplicitSamplePermutation(t *testing.T) {
	exp, err := explanation.New([][]float64{
		{0, 1},
		{10, 11},
		{20, 21},
	}, []string{"a", "b"})
	if err != nil {
		t.Fatalf("explanation.New() error = %v", err)
	}

	layout, err := Build(exp, Options{
		InputOrder:  []int{0, 1},
		SampleOrder: []int{2, 0, 1},
	})
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	want := [][]float64{{20, 21}, {0, 1}, {10, 11}}
	for i, row := range want {
		for j, v := range row {
			if got := layout.View.Values.At(i, j); got != v {
				t.Errorf("At(%d,%d) = %v, want %v", i, j, got, v)
			}
		}
	}
}

func TestBuildExplicitInputOrderOmitsBars(t *testing.T) {
	exp := importanceExplanation(t)

	layout, err := Build(exp, Options{
		InputOrder:  []int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11},
		SampleOrder: []int{0, 1, 2},
	})
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	if layout.ImportanceBars != nil {
		t.Errorf("ImportanceBars = %v, want nil for explicit input order", layout.ImportanceBars)
	}
}

func TestBuildPermutesLabelsWithFeatures(t *testing.T) {
	exp, err := explanation.New([][]float64{
		{1, 5, 3},
		{-1, -5, -3},
	}, []string{"low", "high", "mid"})
	if err != nil {
		t.Fatalf("explanation.New() error = %v", err)
	}

	layout, err := Build(exp, Options{SampleOrder: []int{0, 1}})
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	want := []string{"high", "mid", "low"}
	for i, w := range want {
		if layout.View.Labels[i] != w {
			t.Errorf("Labels[%d] = %q, want %q", i, layout.View.Labels[i], w)
		}
	}
}

func TestBuildAllZeroMatrix(t *testing.T) {
	exp, err := explanation.New([][]float64{
		{0, 0, 0},
		{0, 0, 0},
	}, nil)
	if err != nil {
		t.Fatalf("explanation.New() error = %v", err)
	}

	layout, err := Build(exp, Options{})
	if err != nil {
		t.Fatalf("Build() error = %v, want recovery via fallbacks", err)
	}

	if layout.Scale.Low != -1 || layout.Scale.High != 1 {
		t.Errorf("Scale = %+v, want {-1, 1}", layout.Scale)
	}
	for i, v := range layout.MeanCurve {
		if v != 0 || math.IsNaN(v) {
			t.Errorf("MeanCurve[%d] = %v, want 0", i, v)
		}
	}
}

func TestBuildRejectsUnsupportedSpec(t *testing.T) {
	exp := importanceExplanation(t)

	_, err := Build(exp, Options{SampleOrder: 42})
	if !errors.Is(err, errors.ErrCodeUnsupportedOrdering) {
		t.Errorf("code = %v, want UNSUPPORTED_ORDERING", errors.GetCode(err))
	}

	_, err = Build(exp, Options{InputOrder: "mean"})
	if !errors.Is(err, errors.ErrCodeUnsupportedOrdering) {
		t.Errorf("code = %v, want UNSUPPORTED_ORDERING", errors.GetCode(err))
	}
}

func TestBuildRejectsInvalidDisplayCount(t *testing.T) {
	exp := importanceExplanation(t)

	_, err := Build(exp, Options{MaxDisplay: -1})
	if !errors.Is(err, errors.ErrCodeInvalidDisplayCount) {
		t.Errorf("code = %v, want INVALID_DISPLAY_COUNT", errors.GetCode(err))
	}
}

func TestBuildDefaults(t *testing.T) {
	exp := importanceExplanation(t)

	layout, err := Build(exp, Options{})
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	if layout.Features() != DefaultMaxDisplay {
		t.Errorf("Features() = %d, want default cap %d", layout.Features(), DefaultMaxDisplay)
	}
	if layout.Palette != DefaultPalette {
		t.Errorf("Palette = %q, want %q", layout.Palette, DefaultPalette)
	}
	if layout.RowHeight != DefaultRowHeight {
		t.Errorf("RowHeight = %v, want %v", layout.RowHeight, DefaultRowHeight)
	}

	wantAspect := 0.7 * 3.0 / 10.0
	if math.Abs(layout.Aspect-wantAspect) > 1e-12 {
		t.Errorf("Aspect = %v, want %v", layout.Aspect, wantAspect)
	}
}

func TestBuildCustomStrategy(t *testing.T) {
	exp := importanceExplanation(t)

	layout, err := Build(exp, Options{
		InputOrder:  ordering.Identity{},
		SampleOrder: ordering.Identity{},
		MaxDisplay:  12,
	})
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	if layout.Samples() != 3 || layout.Features() != 12 {
		t.Errorf("dims = %dx%d, want 3x12", layout.Samples(), layout.Features())
	}
	if layout.View.Values.At(0, 0) != 12 {
		t.Errorf("At(0,0) = %v, want 12 under identity ordering", layout.View.Values.At(0, 0))
	}
}
