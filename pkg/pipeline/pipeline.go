// Package pipeline provides the core heatmap pipeline.
//
// This package implements the complete load → prepare → render pipeline that
// can be used by CLI and library consumers. By centralizing this logic, we
// ensure consistent behavior across all entry points and avoid code
// duplication.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Load: Read an attribution matrix and feature names from JSON
//  2. Prepare: Resolve orderings, collapse, estimate the color scale, and
//     compute overlays into a serializable layout
//  3. Render: Encode the layout in various formats (PNG, SVG, PDF, JSON)
//
// Each stage can be run independently or as part of the complete pipeline.
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(logger)
//	opts := pipeline.Options{
//	    Input:   "attributions.json",
//	    Formats: []string{"png"},
//	}
//	result, err := runner.Execute(ctx, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	png := result.Artifacts["png"]
//
// Run individual stages:
//
//	// Load only
//	exp, err := runner.Load(ctx, opts)
//
//	// Prepare with an existing explanation
//	layout, err := runner.Prepare(ctx, exp, opts)
//
//	// Render an existing layout
//	artifacts, err := runner.Render(ctx, layout, opts)
package pipeline

import (
	"io"

	"github.com/charmbracelet/log"

	"github.com/ethanknights/shap/pkg/errors"
	"github.com/ethanknights/shap/pkg/heatmap"
	"github.com/ethanknights/shap/pkg/heatmap/ordering"
	"github.com/ethanknights/shap/pkg/palette"
	"github.com/ethanknights/shap/pkg/render"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and Library Consumers
// =============================================================================

const (
	// DefaultInputOrder is the default feature ordering strategy.
	DefaultInputOrder = "abs-mean"

	// DefaultSampleOrder is the default sample ordering strategy.
	DefaultSampleOrder = "hclust"

	// DefaultMaxDisplay is the default number of displayed feature rows.
	DefaultMaxDisplay = heatmap.DefaultMaxDisplay

	// DefaultPalette is the default diverging color palette.
	DefaultPalette = palette.Default
)

// Format constants for output formats.
const (
	FormatPNG  = "png"
	FormatSVG  = "svg"
	FormatPDF  = "pdf"
	FormatJSON = "json"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatPNG:  true,
	FormatSVG:  true,
	FormatPDF:  true,
	FormatJSON: true,
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for the heatmap pipeline.
// This struct supports JSON serialization for reproducible runs.
type Options struct {
	// Load options
	Input string `json:"input,omitempty"`

	// Prepare options. InputOrder and SampleOrder name a strategy; an
	// explicit permutation takes precedence when set.
	InputOrder      string `json:"input_order,omitempty"`
	SampleOrder     string `json:"sample_order,omitempty"`
	InputOrderPerm  []int  `json:"input_order_perm,omitempty"`
	SampleOrderPerm []int  `json:"sample_order_perm,omitempty"`
	MaxDisplay      int    `json:"max_display,omitempty"`
	Palette         string `json:"palette,omitempty"`

	// Render options
	Formats []string `json:"formats,omitempty"`
	Width   float64  `json:"width,omitempty"`  // inches
	Height  float64  `json:"height,omitempty"` // inches
	Title   string   `json:"title,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool `json:"-"`
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat,
			"invalid format: %q (must be one of: png, svg, pdf, json)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks required fields and applies defaults for the
// full pipeline. This method is idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := o.ValidateForPrepare(); err != nil {
		return err
	}
	if err := o.ValidateForRender(); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// SetPrepareDefaults sets default values for heatmap preparation.
func (o *Options) SetPrepareDefaults() {
	if o.InputOrder == "" {
		o.InputOrder = DefaultInputOrder
	}
	if o.SampleOrder == "" {
		o.SampleOrder = DefaultSampleOrder
	}
	if o.MaxDisplay == 0 {
		o.MaxDisplay = DefaultMaxDisplay
	}
	if o.Palette == "" {
		o.Palette = DefaultPalette
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForPrepare validates and sets defaults for heatmap preparation.
func (o *Options) ValidateForPrepare() error {
	o.SetPrepareDefaults()
	if o.InputOrderPerm == nil {
		if _, err := ordering.Parse(o.InputOrder, ordering.AxisFeatures); err != nil {
			return err
		}
	}
	if o.SampleOrderPerm == nil {
		if _, err := ordering.Parse(o.SampleOrder, ordering.AxisSamples); err != nil {
			return err
		}
	}
	if o.MaxDisplay < 1 {
		return errors.New(errors.ErrCodeInvalidDisplayCount,
			"max_display must be at least 1, got %d", o.MaxDisplay)
	}
	return palette.Validate(o.Palette)
}

// SetRenderDefaults sets default values for rendering.
func (o *Options) SetRenderDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatPNG}
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForRender validates and sets defaults for rendering.
func (o *Options) ValidateForRender() error {
	o.SetRenderDefaults()
	return ValidateFormats(o.Formats)
}

// heatmapOptions translates pipeline options into heatmap build options.
// Explicit permutations win over named strategies.
func (o *Options) heatmapOptions() (heatmap.Options, error) {
	opts := heatmap.Options{
		MaxDisplay: o.MaxDisplay,
		Palette:    o.Palette,
	}

	if o.InputOrderPerm != nil {
		opts.InputOrder = o.InputOrderPerm
	} else {
		s, err := ordering.Parse(o.InputOrder, ordering.AxisFeatures)
		if err != nil {
			return heatmap.Options{}, err
		}
		opts.InputOrder = s
	}

	if o.SampleOrderPerm != nil {
		opts.SampleOrder = o.SampleOrderPerm
	} else {
		s, err := ordering.Parse(o.SampleOrder, ordering.AxisSamples)
		if err != nil {
			return heatmap.Options{}, err
		}
		opts.SampleOrder = s
	}

	return opts, nil
}

// renderOptions translates pipeline options into render options.
func (o *Options) renderOptions() []render.Option {
	var opts []render.Option
	if o.Width > 0 || o.Height > 0 {
		w := vgInches(o.Width)
		h := vgInches(o.Height)
		opts = append(opts, render.WithSize(w, h))
	}
	if o.Title != "" {
		opts = append(opts, render.WithTitle(o.Title))
	}
	return opts
}

// imageFormats returns the formats handled by the plot renderer, excluding
// the JSON layout export.
func (o *Options) imageFormats() []string {
	out := make([]string, 0, len(o.Formats))
	for _, f := range o.Formats {
		if f != FormatJSON {
			out = append(out, f)
		}
	}
	return out
}

// wantsJSON reports whether the layout should be exported as JSON.
func (o *Options) wantsJSON() bool {
	for _, f := range o.Formats {
		if f == FormatJSON {
			return true
		}
	}
	return false
}
