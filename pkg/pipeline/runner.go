package pipeline

import (
	"context"
	"encoding/json"
	"io"
	"time"

	"github.com/charmbracelet/log"
	"gonum.org/v1/plot/vg"

	"github.com/ethanknights/shap/pkg/errors"
	"github.com/ethanknights/shap/pkg/explanation"
	"github.com/ethanknights/shap/pkg/heatmap"
	"github.com/ethanknights/shap/pkg/observability"
	"github.com/ethanknights/shap/pkg/render"
)

// Result contains the outputs of a pipeline run.
type Result struct {
	// Layout contains the prepared heatmap structure.
	Layout heatmap.Layout

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats
}

// Stats contains pipeline execution statistics.
type Stats struct {
	Samples     int
	Features    int
	DisplayRows int
	LoadTime    time.Duration
	PrepareTime time.Duration
	RenderTime  time.Duration
}

// Runner executes the heatmap pipeline.
//
// The Runner is stateless except for the logger - it doesn't store pipeline
// results. Multiple goroutines can safely use the same Runner with
// different options.
type Runner struct {
	Logger *log.Logger
}

// NewRunner creates a runner. If logger is nil, output is discarded.
func NewRunner(logger *log.Logger) *Runner {
	if logger == nil {
		logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return &Runner{Logger: logger}
}

// Execute runs the complete load → prepare → render pipeline.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	r.applyLogger(&opts)

	result := &Result{}

	// Stage 1: Load
	loadStart := time.Now()
	exp, err := r.Load(ctx, opts)
	if err != nil {
		return nil, err
	}
	result.Stats.LoadTime = time.Since(loadStart)
	result.Stats.Samples = exp.Samples()
	result.Stats.Features = exp.Features()

	r.Logger.Info("loaded explanation",
		"samples", exp.Samples(),
		"features", exp.Features(),
		"duration", result.Stats.LoadTime)

	// Stage 2: Prepare
	prepareStart := time.Now()
	layout, err := r.Prepare(ctx, exp, opts)
	if err != nil {
		return nil, err
	}
	result.Layout = layout
	result.Stats.PrepareTime = time.Since(prepareStart)
	result.Stats.DisplayRows = layout.Features()

	r.Logger.Info("prepared layout",
		"rows", layout.Features(),
		"scale", []float64{layout.Scale.Low, layout.Scale.High},
		"duration", result.Stats.PrepareTime)

	// Stage 3: Render
	renderStart := time.Now()
	artifacts, err := r.Render(ctx, layout, opts)
	if err != nil {
		return nil, err
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)

	r.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// Load reads the explanation JSON named by opts.Input.
func (r *Runner) Load(_ context.Context, opts Options) (*explanation.Explanation, error) {
	if opts.Input == "" {
		return nil, errors.New(errors.ErrCodeInvalidInput, "input path is required")
	}
	r.Logger.Debug("loading explanation", "path", opts.Input)
	return explanation.ImportJSON(opts.Input)
}

// Prepare resolves orderings, collapses rare features, estimates the color
// scale, and assembles the layout.
func (r *Runner) Prepare(ctx context.Context, exp *explanation.Explanation, opts Options) (heatmap.Layout, error) {
	if err := opts.ValidateForPrepare(); err != nil {
		return heatmap.Layout{}, err
	}
	r.applyLogger(&opts)

	hOpts, err := opts.heatmapOptions()
	if err != nil {
		return heatmap.Layout{}, err
	}

	opts.Logger.Debug("preparing layout",
		"input_order", opts.InputOrder,
		"sample_order", opts.SampleOrder,
		"max_display", opts.MaxDisplay,
		"palette", opts.Palette)

	start := time.Now()
	observability.Pipeline().OnLayoutStart(ctx, exp.Samples(), exp.Features())
	layout, err := heatmap.Build(exp, hOpts)
	observability.Pipeline().OnLayoutComplete(ctx, exp.Samples(), exp.Features(), time.Since(start), err)
	return layout, err
}

// Render encodes the layout in each requested format.
func (r *Runner) Render(ctx context.Context, layout heatmap.Layout, opts Options) (map[string][]byte, error) {
	if err := opts.ValidateForRender(); err != nil {
		return nil, err
	}

	start := time.Now()
	observability.Pipeline().OnRenderStart(ctx, opts.Formats)

	artifacts := make(map[string][]byte, len(opts.Formats))
	if imgs := opts.imageFormats(); len(imgs) > 0 {
		rendered, err := render.Render(layout, imgs, opts.renderOptions()...)
		if err != nil {
			observability.Pipeline().OnRenderComplete(ctx, opts.Formats, time.Since(start), err)
			return nil, err
		}
		for format, data := range rendered {
			artifacts[format] = data
		}
	}
	if opts.wantsJSON() {
		data, err := json.MarshalIndent(layout, "", "  ")
		if err != nil {
			observability.Pipeline().OnRenderComplete(ctx, opts.Formats, time.Since(start), err)
			return nil, errors.Wrap(errors.ErrCodeInternal, err, "encoding layout json")
		}
		artifacts[FormatJSON] = data
	}

	observability.Pipeline().OnRenderComplete(ctx, opts.Formats, time.Since(start), nil)
	return artifacts, nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}

func vgInches(in float64) vg.Length {
	return vg.Length(in) * vg.Inch
}
