package render

import (
	"bytes"
	"image/color"
	"strings"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/ethanknights/shap/pkg/errors"
	"github.com/ethanknights/shap/pkg/heatmap"
	"github.com/ethanknights/shap/pkg/palette"
)

// ValidFormats lists the supported output formats, in canonical order.
var ValidFormats = []string{"png", "svg", "pdf"}

// ValidateFormat checks that name is a supported output format.
func ValidateFormat(name string) error {
	for _, f := range ValidFormats {
		if name == f {
			return nil
		}
	}
	return errors.New(errors.ErrCodeInvalidFormat,
		"unsupported format %q (valid: %s)", name, strings.Join(ValidFormats, ", "))
}

// Option configures rendering.
type Option func(*renderer)

type renderer struct {
	width  vg.Length
	height vg.Length
	title  string
}

// WithSize overrides the figure dimensions. Zero values keep the defaults
// derived from the layout.
func WithSize(width, height vg.Length) Option {
	return func(r *renderer) {
		if width > 0 {
			r.width = width
		}
		if height > 0 {
			r.height = height
		}
	}
}

// WithTitle sets a figure title.
func WithTitle(title string) Option {
	return func(r *renderer) { r.title = title }
}

// Render draws the layout once and encodes it in each requested format,
// keyed by format name.
func Render(l heatmap.Layout, formats []string, opts ...Option) (map[string][]byte, error) {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return nil, err
		}
	}

	plt, err := buildPlot(l, opts...)
	if err != nil {
		return nil, err
	}

	r := newRenderer(l, opts...)
	out := make(map[string][]byte, len(formats))
	for _, f := range formats {
		wt, err := plt.WriterTo(r.width, r.height, f)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInternal, err, "encoding "+f)
		}
		var buf bytes.Buffer
		if _, err := wt.WriteTo(&buf); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInternal, err, "encoding "+f)
		}
		out[f] = buf.Bytes()
	}
	return out, nil
}

func newRenderer(l heatmap.Layout, opts ...Option) renderer {
	r := renderer{
		width:  8 * vg.Inch,
		height: vg.Length(float64(l.Features())*l.RowHeight+2.5) * vg.Inch,
	}
	for _, opt := range opts {
		opt(&r)
	}
	return r
}

func buildPlot(l heatmap.Layout, opts ...Option) (*plot.Plot, error) {
	r := newRenderer(l, opts...)

	cm, err := palette.Lookup(l.Palette)
	if err != nil {
		return nil, err
	}
	cm.SetMin(l.Scale.Low)
	cm.SetMax(l.Scale.High)

	hm := plotter.NewHeatMap(grid{values: l.View.Values}, cm.Palette(256))
	hm.Min = l.Scale.Low
	hm.Max = l.Scale.High
	hm.NaN = color.Transparent

	plt := plot.New()
	plt.Title.Text = r.title
	plt.X.Label.Text = "Samples ordered by similarity"
	plt.Add(hm)

	withCurve := l.MeanCurve != nil
	plt.Y.Tick.Marker = featureTicks(l, withCurve)
	plt.Y.Tick.Label.Font.Size = vg.Points(9)
	plt.X.Tick.Marker = plot.ConstantTicks(nil)

	plt.X.Min = -0.5
	plt.X.Max = float64(l.Samples()) - 0.5
	plt.Y.Min = -0.5
	plt.Y.Max = float64(l.Features()) - 0.5

	if withCurve {
		sep, err := separatorLine(l)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInternal, err, "trend separator")
		}
		curve, err := curveLine(l)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInternal, err, "trend line")
		}
		plt.Add(sep, curve)
		plt.Y.Max = float64(l.Features()) + curveBandCenter + curveAmplitude + 0.1
	}

	if l.ImportanceBars != nil {
		bars := featureBars{layout: l}
		plt.Add(bars)
		plt.X.Max = float64(l.Samples()) - 0.5 + bars.maxLength() + 0.5
	}

	return plt, nil
}
