package cli

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ethanknights/shap/pkg/pipeline"
)

// newLayoutCmd creates the layout command for computing heatmap layouts
// without rendering them.
func newLayoutCmd() *cobra.Command {
	var f heatmapFlags

	cmd := &cobra.Command{
		Use:   "layout [explanation.json]",
		Short: "Compute a heatmap layout from an attribution matrix",
		Long: `Compute a heatmap layout from an attribution matrix.

The layout command runs ordering, collapsing, and scale estimation, then
writes the resulting layout as JSON instead of drawing it. The output can
be rendered later with the 'visualize' command, or fed to external tools.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := f.pipelineOptions()
			if err != nil {
				return err
			}
			return runLayout(cmd.Context(), args[0], opts, f.output)
		},
	}

	f.register(cmd)

	return cmd
}

// runLayout loads the explanation, prepares the layout, and writes it as JSON.
func runLayout(ctx context.Context, input string, opts pipeline.Options, output string) error {
	logger := loggerFromContext(ctx)
	opts.Input = input
	opts.Logger = logger

	runner := pipeline.NewRunner(logger)

	exp, err := runner.Load(ctx, opts)
	if err != nil {
		return fmt.Errorf("load %s: %w", input, err)
	}

	p := newProgress(logger)
	layout, err := runner.Prepare(ctx, exp, opts)
	if err != nil {
		return err
	}
	p.done(fmt.Sprintf("Prepared %d rows", layout.Features()))

	data, err := json.MarshalIndent(layout, "", "  ")
	if err != nil {
		return err
	}

	path := output
	if path == "" {
		path = basePath("", input) + ".layout.json"
	}
	if err := writeFile(path, data); err != nil {
		return err
	}

	printSuccess("Layout ready")
	printStats(exp.Samples(), exp.Features(), layout.Features())
	printNextStep("Render it", fmt.Sprintf("shap visualize %s", path))
	return nil
}
