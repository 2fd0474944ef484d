package render

import (
	"bytes"
	"testing"

	"github.com/ethanknights/shap/pkg/errors"
	"github.com/ethanknights/shap/pkg/explanation"
	"github.com/ethanknights/shap/pkg/heatmap"
)

func testLayout(t *testing.T) heatmap.Layout {
	t.Helper()
	exp, err := explanation.New([][]float64{
		{1.0, -2.0, 0.5, 0.1},
		{0.5, 1.5, -0.5, 0.2},
		{-1.0, 0.5, 1.0, 0.0},
	}, []string{"age", "income", "tenure", "score"})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	l, err := heatmap.Build(exp, heatmap.Options{})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	return l
}

func TestValidateFormat(t *testing.T) {
	for _, f := range ValidFormats {
		if err := ValidateFormat(f); err != nil {
			t.Errorf("ValidateFormat(%q) = %v, want nil", f, err)
		}
	}

	err := ValidateFormat("gif")
	if err == nil {
		t.Fatal("expected error for unsupported format")
	}
	if errors.GetCode(err) != errors.ErrCodeInvalidFormat {
		t.Errorf("code = %v, want %v", errors.GetCode(err), errors.ErrCodeInvalidFormat)
	}
}

func TestGridMapping(t *testing.T) {
	l := testLayout(t)
	g := grid{values: l.View.Values}

	c, r := g.Dims()
	if c != l.Samples() || r != l.Features() {
		t.Fatalf("Dims = (%d, %d), want (%d, %d)", c, r, l.Samples(), l.Features())
	}

	// The most important feature (display column 0) occupies the top row.
	top := g.Z(0, r-1)
	if got := l.View.Values.At(0, 0); top != got {
		t.Errorf("top row Z = %v, want column 0 value %v", top, got)
	}
	bottom := g.Z(0, 0)
	if got := l.View.Values.At(0, r-1); bottom != got {
		t.Errorf("bottom row Z = %v, want last column value %v", bottom, got)
	}
}

func TestFeatureTicks(t *testing.T) {
	l := testLayout(t)

	ticks := featureTicks(l, true)
	if len(ticks) != l.Features()+1 {
		t.Fatalf("got %d ticks, want %d", len(ticks), l.Features()+1)
	}

	// First label sits on the top row.
	if ticks[0].Value != float64(l.Features()-1) {
		t.Errorf("first tick at %v, want %v", ticks[0].Value, float64(l.Features()-1))
	}
	if ticks[0].Label != l.View.Labels[0] {
		t.Errorf("first tick label = %q, want %q", ticks[0].Label, l.View.Labels[0])
	}

	last := ticks[len(ticks)-1]
	if last.Label != "f(x)" {
		t.Errorf("last tick label = %q, want f(x)", last.Label)
	}

	without := featureTicks(l, false)
	if len(without) != l.Features() {
		t.Errorf("got %d ticks without curve, want %d", len(without), l.Features())
	}
}

func TestRenderFormats(t *testing.T) {
	l := testLayout(t)

	out, err := Render(l, []string{"png", "svg"})
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if len(out) != 2 {
		t.Fatalf("got %d artifacts, want 2", len(out))
	}

	pngMagic := []byte{0x89, 'P', 'N', 'G'}
	if !bytes.HasPrefix(out["png"], pngMagic) {
		t.Error("png artifact missing PNG signature")
	}
	if !bytes.Contains(out["svg"], []byte("<svg")) {
		t.Error("svg artifact missing <svg element")
	}
}

func TestRenderRejectsUnknownFormat(t *testing.T) {
	l := testLayout(t)

	_, err := Render(l, []string{"png", "bmp"})
	if err == nil {
		t.Fatal("expected error")
	}
	if errors.GetCode(err) != errors.ErrCodeInvalidFormat {
		t.Errorf("code = %v, want %v", errors.GetCode(err), errors.ErrCodeInvalidFormat)
	}
}

func TestRenderRejectsUnknownPalette(t *testing.T) {
	l := testLayout(t)
	l.Palette = "ultraviolet"

	_, err := Render(l, []string{"svg"})
	if err == nil {
		t.Fatal("expected error")
	}
	if errors.GetCode(err) != errors.ErrCodeInvalidPalette {
		t.Errorf("code = %v, want %v", errors.GetCode(err), errors.ErrCodeInvalidPalette)
	}
}
