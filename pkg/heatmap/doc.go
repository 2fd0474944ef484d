// Package heatmap prepares attribution heatmap layouts.
//
// # Overview
//
// The package turns an [explanation.Explanation] (a samples × features
// matrix of attribution values plus feature labels) into a fully prepared
// [Layout] that a renderer can draw without performing any data
// transformation of its own. The interesting work happens before a single
// pixel exists:
//
//  1. Resolve the per-axis ordering specifications into concrete
//     permutations (see the ordering subpackage).
//  2. Reindex the matrix, labels, and importance scores.
//  3. Collapse the low-importance feature tail into one aggregate
//     "other features" column so the display width stays bounded.
//  4. Estimate robust, symmetric color-scale bounds from the 1st and 99th
//     percentiles of the data.
//  5. Compose the mean-attribution curve and importance-bar overlays.
//  6. Project everything, plus geometry hints, into the final Layout.
//
// Every step is a pure function over its inputs; the pipeline is
// single-threaded and allocates new data rather than mutating.
//
// # Usage
//
//	exp, err := explanation.New(values, names)
//	if err != nil { ... }
//	layout, err := heatmap.Build(exp, heatmap.Options{MaxDisplay: 5})
//	if err != nil { ... }
//	// hand layout to a renderer, or inspect it directly in tests
//
// # Error Handling
//
// Structural problems (unsupported ordering specs, permutation length
// mismatches, an invalid display cap) are fatal and surfaced immediately;
// no partial layout is produced. Numeric degeneracies (all-zero or
// all-non-finite data) are recovered locally with documented fallback
// values so the pipeline always completes when shapes are valid.
package heatmap
