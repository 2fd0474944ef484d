package render

import (
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/plot"

	"github.com/ethanknights/shap/pkg/heatmap"
)

// grid adapts the layout matrix to plotter.GridXYZ. Samples run along X;
// features run along Y with the most important feature (column 0 of the
// collapsed view) on the top row.
type grid struct {
	values *mat.Dense
}

// Dims returns the number of X (sample) and Y (feature) cells.
func (g grid) Dims() (c, r int) {
	samples, features := g.values.Dims()
	return samples, features
}

// Z returns the attribution value at sample column c and display row r.
func (g grid) Z(c, r int) float64 {
	_, features := g.values.Dims()
	return g.values.At(c, features-1-r)
}

// X returns the coordinate of sample column c.
func (g grid) X(c int) float64 { return float64(c) }

// Y returns the coordinate of display row r.
func (g grid) Y(r int) float64 { return float64(r) }

// featureTicks builds Y-axis ticks: one per feature label, top row first,
// plus an f(x) tick centered on the trend-line band when the curve is
// drawn.
func featureTicks(l heatmap.Layout, withCurve bool) plot.ConstantTicks {
	features := l.Features()
	ticks := make([]plot.Tick, 0, features+1)
	for j, label := range l.View.Labels {
		ticks = append(ticks, plot.Tick{
			Value: float64(features - 1 - j),
			Label: label,
		})
	}
	if withCurve {
		ticks = append(ticks, plot.Tick{
			Value: float64(features) + curveBandCenter,
			Label: "f(x)",
		})
	}
	return ticks
}
