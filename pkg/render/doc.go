// Package render draws prepared heatmap layouts with gonum/plot.
//
// The renderer is a passive consumer of [heatmap.Layout]: every number it
// draws (cell values, color bounds, curve heights, bar lengths, geometry)
// was computed by the preparation pipeline. This package decides pixels,
// nothing else.
//
// # Anatomy
//
// A rendered figure contains, top to bottom:
//
//   - the f(x) trend line: the normalized per-sample mean attribution,
//     drawn in a band above the matrix behind a dashed separator
//   - the heatmap itself, most important feature row on top
//   - importance bars growing rightward from the matrix edge, one per
//     feature row (omitted when the layout has no importance scores)
//
// # Usage
//
//	artifacts, err := render.Render(layout, []string{"png", "svg"})
//	if err != nil { ... }
//	os.WriteFile("heatmap.png", artifacts["png"], 0o644)
//
// Output formats are those of gonum's vg canvases: png, svg, and pdf.
package render
