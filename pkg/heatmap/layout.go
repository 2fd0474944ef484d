package heatmap

// Geometry defaults carried into every layout. The aspect ratio formula
// keeps cells close to square across matrix shapes.
const (
	// DefaultRowHeight is the height of one feature row, in inches.
	DefaultRowHeight = 0.5

	// aspectFactor scales the samples/features ratio into the image aspect.
	aspectFactor = 0.7
)

// Layout is the fully prepared heatmap structure handed to a renderer.
//
// It contains everything a renderer needs and nothing it must compute: the
// reindexed and collapsed matrix, labels, the symmetric color scale, both
// overlays, the palette identifier, and geometry hints. Renderers draw;
// they never transform.
type Layout struct {
	View  CollapsedView // reindexed, display-capped matrix with labels and scores
	Scale ColorScale    // symmetric color bounds

	// MeanCurve holds the normalized per-sample mean attribution, drawn as
	// a trend line above the matrix.
	MeanCurve []float64

	// ImportanceBars holds per-feature bar lengths for the right-hand
	// overlay. Nil when the feature ordering carried no scores; renderers
	// skip the overlay in that case.
	ImportanceBars []float64

	// Palette names the color palette used for pixel intensity mapping.
	Palette string

	// Geometry hints.
	RowHeight float64 // height per feature row, in inches
	Aspect    float64 // cell aspect ratio, 0.7 * samples / features
}

// Samples returns the number of sample columns to draw.
func (l Layout) Samples() int {
	r, _ := l.View.Values.Dims()
	return r
}

// Features returns the number of feature rows to draw.
func (l Layout) Features() int {
	return l.View.Features()
}

// Project assembles the final layout from the prepared pieces and fills in
// the geometry hints.
func Project(view CollapsedView, scale ColorScale, meanCurve, importanceBars []float64, palette string) Layout {
	r, c := view.Values.Dims()
	return Layout{
		View:           view,
		Scale:          scale,
		MeanCurve:      meanCurve,
		ImportanceBars: importanceBars,
		Palette:        palette,
		RowHeight:      DefaultRowHeight,
		Aspect:         aspectFactor * float64(r) / float64(c),
	}
}
