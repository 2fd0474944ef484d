package heatmap

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// barScaleDivisor relates bar length to sample count so importance bars
// stay proportional to the plot width.
const barScaleDivisor = 20.0

// MeanCurve computes the per-sample mean attribution across features,
// normalized by the maximum absolute value across samples. The renderer
// draws it as the f(x) trend line above the heatmap.
//
// When the maximum absolute mean is zero the curve is all zeros rather
// than NaN.
func MeanCurve(values *mat.Dense) []float64 {
	r, c := values.Dims()
	curve := make([]float64, r)
	for i := 0; i < r; i++ {
		var sum float64
		for j := 0; j < c; j++ {
			sum += values.At(i, j)
		}
		curve[i] = sum / float64(c)
	}

	maxAbs := 0.0
	for _, v := range curve {
		maxAbs = math.Max(maxAbs, math.Abs(v))
	}
	if maxAbs == 0 {
		return curve
	}
	for i := range curve {
		curve[i] /= maxAbs
	}
	return curve
}

// ImportanceBars converts per-feature importance scores into bar lengths:
// each score is normalized by the maximum absolute score, then scaled by
// sampleCount/20 to size the bars relative to the plot width.
//
// Nil scores return nil bars: when the feature ordering was an explicit
// permutation without scores the overlay is omitted entirely, not
// zero-filled. An all-zero score vector yields all-zero bars.
func ImportanceBars(scores []float64, sampleCount int) []float64 {
	if scores == nil {
		return nil
	}

	maxAbs := 0.0
	for _, s := range scores {
		maxAbs = math.Max(maxAbs, math.Abs(s))
	}

	bars := make([]float64, len(scores))
	if maxAbs == 0 {
		return bars
	}
	scale := float64(sampleCount) / barScaleDivisor
	for i, s := range scores {
		bars[i] = s / maxAbs * scale
	}
	return bars
}
