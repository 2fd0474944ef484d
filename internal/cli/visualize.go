package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ethanknights/shap/pkg/heatmap"
	"github.com/ethanknights/shap/pkg/pipeline"
)

// newVisualizeCmd creates the visualize command for rendering from an
// exported layout.
func newVisualizeCmd() *cobra.Command {
	var (
		formatsStr string
		output     string
		opts       pipeline.Options
	)

	cmd := &cobra.Command{
		Use:   "visualize [layout.json]",
		Short: "Render images from an exported heatmap layout",
		Long: `Render images from an exported heatmap layout.

The visualize command takes a layout.json file (produced by 'layout' or by
'heatmap -f json') and renders it to PNG, SVG, or PDF. The layout contains
the collapsed matrix, color scale, and overlays, so this step is purely
about drawing.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Formats = parseFormats(formatsStr)
			return runVisualize(cmd.Context(), args[0], opts, output)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): png (default), svg, pdf (comma-separated)")
	cmd.Flags().Float64Var(&opts.Width, "width", 0, "image width in inches (default 8)")
	cmd.Flags().Float64Var(&opts.Height, "height", 0, "image height in inches (default from row count)")
	cmd.Flags().StringVar(&opts.Title, "title", "", "figure title")

	return cmd
}

// runVisualize loads the layout and renders it.
func runVisualize(ctx context.Context, input string, opts pipeline.Options, output string) error {
	logger := loggerFromContext(ctx)
	opts.Logger = logger
	if len(opts.Formats) == 0 {
		opts.Formats = []string{pipeline.FormatPNG}
	}

	data, err := os.ReadFile(input)
	if err != nil {
		return fmt.Errorf("load layout %s: %w", input, err)
	}
	var layout heatmap.Layout
	if err := json.Unmarshal(data, &layout); err != nil {
		return fmt.Errorf("load layout %s: %w", input, err)
	}

	spinner := newSpinnerWithContext(ctx, "Rendering layout...")
	spinner.Start()

	runner := pipeline.NewRunner(logger)
	artifacts, err := runner.Render(ctx, layout, opts)
	if err != nil {
		spinner.StopWithError("Visualization failed")
		return err
	}
	spinner.Stop()

	if err := writeArtifacts(artifacts, opts.Formats, input, output); err != nil {
		return err
	}

	printSuccess("Rendered %s", input)
	return nil
}
