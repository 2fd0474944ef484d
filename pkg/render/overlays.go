package render

import (
	"image/color"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/ethanknights/shap/pkg/heatmap"
)

// Trend-line band geometry, in feature-row units above the matrix.
const (
	curveBandCenter = 0.5 // band midline above the top row
	curveAmplitude  = 0.5 // half-height of the normalized curve
	barHalfHeight   = 0.35
)

var (
	curveColor     = color.Black
	separatorColor = color.Gray{Y: 0xaa}
	barColor       = color.Black
)

// curveLine builds the f(x) trend line from the layout's normalized mean
// curve, placed in the band above the top feature row.
func curveLine(l heatmap.Layout) (*plotter.Line, error) {
	base := float64(l.Features()) + curveBandCenter
	xys := make(plotter.XYs, len(l.MeanCurve))
	for i, v := range l.MeanCurve {
		xys[i].X = float64(i)
		xys[i].Y = base + curveAmplitude*v
	}

	line, err := plotter.NewLine(xys)
	if err != nil {
		return nil, err
	}
	line.LineStyle.Color = curveColor
	line.LineStyle.Width = vg.Points(1)
	return line, nil
}

// separatorLine builds the dashed divider between the matrix and the
// trend-line band.
func separatorLine(l heatmap.Layout) (*plotter.Line, error) {
	y := float64(l.Features())
	line, err := plotter.NewLine(plotter.XYs{
		{X: -0.5, Y: y},
		{X: float64(l.Samples()) - 0.5, Y: y},
	})
	if err != nil {
		return nil, err
	}
	line.LineStyle.Color = separatorColor
	line.LineStyle.Width = vg.Points(0.5)
	line.LineStyle.Dashes = []vg.Length{vg.Points(4), vg.Points(4)}
	return line, nil
}

// featureBars draws the per-feature importance bars growing rightward from
// the matrix edge, mirroring the layout's precomputed bar lengths.
type featureBars struct {
	layout heatmap.Layout
}

// maxLength returns the longest bar, for extending the X range.
func (b featureBars) maxLength() float64 {
	max := 0.0
	for _, v := range b.layout.ImportanceBars {
		if v > max {
			max = v
		}
	}
	return max
}

// Plot implements plot.Plotter.
func (b featureBars) Plot(c draw.Canvas, plt *plot.Plot) {
	trX, trY := plt.Transforms(&c)

	features := b.layout.Features()
	left := float64(b.layout.Samples()) - 0.5
	for j, v := range b.layout.ImportanceBars {
		if v == 0 {
			continue
		}
		y := float64(features - 1 - j)
		var path vg.Path
		path.Move(vg.Point{X: trX(left), Y: trY(y - barHalfHeight)})
		path.Line(vg.Point{X: trX(left + v), Y: trY(y - barHalfHeight)})
		path.Line(vg.Point{X: trX(left + v), Y: trY(y + barHalfHeight)})
		path.Line(vg.Point{X: trX(left), Y: trY(y + barHalfHeight)})
		path.Close()
		c.SetColor(barColor)
		c.Fill(path)
	}
}
