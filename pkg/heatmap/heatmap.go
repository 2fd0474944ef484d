package heatmap

import (
	"github.com/ethanknights/shap/pkg/errors"
	"github.com/ethanknights/shap/pkg/explanation"
	"github.com/ethanknights/shap/pkg/heatmap/ordering"
)

// Defaults applied by Build when an option is zero.
const (
	// DefaultMaxDisplay is the maximum number of feature rows shown before
	// the tail collapses into one aggregate column.
	DefaultMaxDisplay = 10

	// DefaultPalette is the shap red/white/blue diverging palette.
	DefaultPalette = "red-white-blue"
)

// Options configures the heatmap preparation pipeline.
type Options struct {
	// InputOrder is the feature-axis ordering specification: an
	// [ordering.Strategy] or an explicit []int permutation. Nil selects
	// descending mean absolute attribution.
	InputOrder any

	// SampleOrder is the sample-axis ordering specification. Nil selects
	// hierarchical-clustering leaf order.
	SampleOrder any

	// MaxDisplay caps the number of feature columns. Zero selects
	// DefaultMaxDisplay; values below 1 are rejected.
	MaxDisplay int

	// Palette names the color palette recorded in the layout. Empty
	// selects DefaultPalette. Palette names are validated at the render
	// boundary, not here.
	Palette string
}

// setDefaults fills unset options.
func (o *Options) setDefaults() {
	if o.InputOrder == nil {
		o.InputOrder = ordering.Default(ordering.AxisFeatures)
	}
	if o.SampleOrder == nil {
		o.SampleOrder = ordering.Default(ordering.AxisSamples)
	}
	if o.MaxDisplay == 0 {
		o.MaxDisplay = DefaultMaxDisplay
	}
	if o.Palette == "" {
		o.Palette = DefaultPalette
	}
}

// Build runs the full preparation pipeline and returns the projected
// layout: resolve orderings, reindex, collapse the feature tail, estimate
// the color scale, compose overlays, project.
//
// Build is the non-display entry point of the package: the returned Layout
// is the sole interface handed to renderers, and can equally be inspected
// directly by tests or callers that do their own drawing. Structural errors
// (bad specs, shape mismatches, an invalid display cap) abort before any
// partial layout is produced.
func Build(exp *explanation.Explanation, opts Options) (Layout, error) {
	if exp == nil {
		return Layout{}, errors.New(errors.ErrCodeInvalidInput, "nil explanation")
	}
	if err := exp.Validate(); err != nil {
		return Layout{}, err
	}
	opts.setDefaults()
	if opts.MaxDisplay < 1 {
		return Layout{}, errors.New(errors.ErrCodeInvalidDisplayCount,
			"max display must be >= 1, got %d", opts.MaxDisplay)
	}

	// Resolve both orderings before touching the matrix, so a bad spec
	// fails before any reindexing occurs.
	featurePerm, featureScores, err := ordering.Resolve(opts.InputOrder, exp.Values, ordering.AxisFeatures)
	if err != nil {
		return Layout{}, err
	}
	samplePerm, _, err := ordering.Resolve(opts.SampleOrder, exp.Values, ordering.AxisSamples)
	if err != nil {
		return Layout{}, err
	}

	values, err := Reindex(exp.Values, samplePerm, featurePerm)
	if err != nil {
		return Layout{}, err
	}
	labels, err := Permute(exp.FeatureNames, featurePerm, ordering.AxisFeatures)
	if err != nil {
		return Layout{}, err
	}
	scores, err := Permute(featureScores, featurePerm, ordering.AxisFeatures)
	if err != nil {
		return Layout{}, err
	}

	view, err := Collapse(values, labels, scores, opts.MaxDisplay)
	if err != nil {
		return Layout{}, err
	}

	scale := EstimateScale(view.Values)
	curve := MeanCurve(view.Values)
	bars := ImportanceBars(view.Scores, exp.Samples())

	return Project(view, scale, curve, bars, opts.Palette), nil
}
