package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ethanknights/shap/pkg/pipeline"
)

// heatmapFlags holds the command-line flags shared by the heatmap and
// layout commands.
type heatmapFlags struct {
	output     string // output file path (or base path for multiple formats)
	formatsStr string // comma-separated output formats
	configPath string // explicit config file path
	inputPerm  []int  // explicit feature permutation
	samplePerm []int  // explicit sample permutation
	opts       pipeline.Options
}

// newHeatmapCmd creates the heatmap command, the full load → prepare →
// render pipeline in one step.
//
// Default settings:
//   - input-order: abs-mean (most important features first)
//   - sample-order: hclust (similar samples adjacent)
//   - max-display: 10 feature rows
//   - palette: red-white-blue
//   - format: png
func newHeatmapCmd() *cobra.Command {
	var f heatmapFlags

	cmd := &cobra.Command{
		Use:   "heatmap [explanation.json]",
		Short: "Render a heatmap from an attribution matrix",
		Long: `Render a heatmap from an attribution matrix.

The input is a JSON file with a "values" matrix (samples x features) and an
optional "feature_names" list. Samples are reordered so similar explanations
sit next to each other, features are ranked by importance, and features past
the display cap are collapsed into a summed remainder row.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := f.pipelineOptions()
			if err != nil {
				return err
			}
			return runHeatmap(cmd.Context(), args[0], opts, f.output)
		},
	}

	f.register(cmd)
	cmd.Flags().StringVarP(&f.formatsStr, "format", "f", "", "output format(s): png (default), svg, pdf, json (comma-separated)")

	return cmd
}

// register adds the flags shared by heatmap and layout.
func (f *heatmapFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVar(&f.configPath, "config", "", "config file (default: shap.toml, then user config dir)")
	cmd.Flags().StringVar(&f.opts.InputOrder, "input-order", "", "feature ordering: abs-mean (default), hclust, identity")
	cmd.Flags().StringVar(&f.opts.SampleOrder, "sample-order", "", "sample ordering: hclust (default), abs-mean, identity")
	cmd.Flags().IntSliceVar(&f.inputPerm, "input-perm", nil, "explicit feature permutation (comma-separated indices)")
	cmd.Flags().IntSliceVar(&f.samplePerm, "sample-perm", nil, "explicit sample permutation (comma-separated indices)")
	cmd.Flags().IntVar(&f.opts.MaxDisplay, "max-display", 0, "maximum feature rows before collapsing (default 10)")
	cmd.Flags().StringVar(&f.opts.Palette, "palette", "", "diverging palette (see 'shap palettes')")
	cmd.Flags().Float64Var(&f.opts.Width, "width", 0, "image width in inches (default 8)")
	cmd.Flags().Float64Var(&f.opts.Height, "height", 0, "image height in inches (default from row count)")
	cmd.Flags().StringVar(&f.opts.Title, "title", "", "figure title")
}

// pipelineOptions merges flags with the config file and parses formats.
func (f *heatmapFlags) pipelineOptions() (pipeline.Options, error) {
	opts := f.opts
	opts.Formats = parseFormats(f.formatsStr)
	if len(f.inputPerm) > 0 {
		opts.InputOrderPerm = f.inputPerm
	}
	if len(f.samplePerm) > 0 {
		opts.SampleOrderPerm = f.samplePerm
	}

	cfg, err := loadConfig(f.configPath)
	if err != nil {
		return pipeline.Options{}, fmt.Errorf("load config: %w", err)
	}
	cfg.apply(&opts)
	return opts, nil
}

// runHeatmap executes the full pipeline and writes the artifacts.
func runHeatmap(ctx context.Context, input string, opts pipeline.Options, output string) error {
	logger := loggerFromContext(ctx)
	opts.Input = input
	opts.Logger = logger

	if err := opts.ValidateAndSetDefaults(); err != nil {
		return err
	}

	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Rendering %s...", input))
	spinner.Start()

	runner := pipeline.NewRunner(logger)
	result, err := runner.Execute(ctx, opts)
	if err != nil {
		spinner.StopWithError("Heatmap failed")
		return err
	}
	spinner.Stop()

	if err := writeArtifacts(result.Artifacts, opts.Formats, input, output); err != nil {
		return err
	}

	printSuccess("Rendered %s", input)
	printStats(result.Stats.Samples, result.Stats.Features, result.Stats.DisplayRows)
	return nil
}

// parseFormats parses the --format flag into a slice of output formats.
// If empty, defaults to nil so config and pipeline defaults apply.
func parseFormats(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(s, ",")
}

// basePath derives the base output path from the output and input file paths.
// If output is empty, it strips the extension from input.
// If output has a format extension (.png, .svg, etc.), it strips that extension.
// This is used when generating multiple files (e.g., shap.png, shap.json).
func basePath(output, input string) string {
	if output == "" {
		return strings.TrimSuffix(input, filepath.Ext(input))
	}
	ext := filepath.Ext(output)
	if pipeline.ValidFormats[strings.TrimPrefix(ext, ".")] {
		return strings.TrimSuffix(output, ext)
	}
	return output
}

// writeArtifacts writes each rendered format to its own file. With a single
// format the output path is used directly; with several, the format
// extension is appended to the base path.
func writeArtifacts(artifacts map[string][]byte, formats []string, input, output string) error {
	if len(formats) == 1 {
		path := output
		if path == "" {
			path = basePath("", input) + "." + formats[0]
		}
		return writeFile(path, artifacts[formats[0]])
	}

	base := basePath(output, input)
	for _, format := range formats {
		if err := writeFile(base+"."+format, artifacts[format]); err != nil {
			return err
		}
	}
	return nil
}

// writeFile writes data to path, or stdout when path is "-".
func writeFile(path string, data []byte) error {
	out, err := openOutput(path)
	if err != nil {
		return err
	}
	defer out.Close()

	if _, err := out.Write(data); err != nil {
		return err
	}
	if path != "-" {
		printFile(path)
	}
	return nil
}

// nopCloser wraps an io.Writer with a no-op Close method.
// It is used to make os.Stdout compatible with io.WriteCloser.
type nopCloser struct{ io.Writer }

// Close implements io.Closer with a no-op.
func (nopCloser) Close() error { return nil }

// openOutput returns a WriteCloser for the given path.
// If path is "-", it returns os.Stdout wrapped in nopCloser.
// Otherwise, it creates the file at path, overwriting if it exists.
func openOutput(path string) (io.WriteCloser, error) {
	if path == "-" {
		return nopCloser{os.Stdout}, nil
	}
	return os.Create(path)
}
