package heatmap

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

// ColorScale is the symmetric numeric range mapped onto the color gradient.
// High always equals -Low, so zero sits at the scale midpoint and positive
// and negative attributions are visually comparable regardless of skew.
type ColorScale struct {
	Low  float64 `json:"low"`
	High float64 `json:"high"`
}

// EstimateScale derives a symmetric color scale from robust bounds of the
// matrix: the 1st and 99th percentiles of all finite entries, symmetrized
// to ±max(|p1|, |p99|). Percentiles rather than min/max keep a handful of
// extreme outliers from saturating the entire range.
//
// When the matrix holds no finite non-zero values the scale falls back to
// {-1, 1}. This is an explicit fallback so downstream normalization never
// divides by zero; it is not surfaced as an error.
func EstimateScale(values *mat.Dense) ColorScale {
	raw := values.RawMatrix()
	finite := make([]float64, 0, len(raw.Data))
	for i := 0; i < raw.Rows; i++ {
		row := raw.Data[i*raw.Stride : i*raw.Stride+raw.Cols]
		for _, v := range row {
			if !math.IsNaN(v) && !math.IsInf(v, 0) {
				finite = append(finite, v)
			}
		}
	}
	if len(finite) == 0 {
		return ColorScale{Low: -1, High: 1}
	}

	sort.Float64s(finite)
	p1 := stat.Quantile(0.01, stat.LinInterp, finite, nil)
	p99 := stat.Quantile(0.99, stat.LinInterp, finite, nil)

	bound := math.Max(math.Abs(p1), math.Abs(p99))
	if bound == 0 {
		return ColorScale{Low: -1, High: 1}
	}
	return ColorScale{Low: -bound, High: bound}
}
