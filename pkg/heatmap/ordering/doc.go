// Package ordering resolves per-axis ordering specifications into concrete
// permutations over the attribution matrix.
//
// # The Ordering Problem
//
// A heatmap is only readable when similar samples sit next to each other and
// important features sit at the top. Neither arrangement is inherent in the
// attribution matrix, so each axis carries an ordering specification: either
// a pluggable [Strategy] that computes a permutation from the data, or an
// explicit permutation supplied by the caller.
//
// # Resolution
//
// [Resolve] performs the dispatch once at the pipeline boundary. Downstream
// code only ever sees a concrete permutation plus optional per-element
// scores:
//
//	perm, scores, err := ordering.Resolve(ordering.AbsMean{}, values, ordering.AxisFeatures)
//
// A [Strategy] is invoked with the matrix and axis; an explicit []int is
// validated against the axis length; anything else fails with an
// UNSUPPORTED_ORDERING error naming the offending axis.
//
// # Built-in Strategies
//
//   - [AbsMean]: descending mean absolute attribution. Default for the
//     feature axis; its scores feed the importance-bar overlay.
//   - [HClust]: hierarchical-clustering leaf order (average linkage,
//     Euclidean distance). Default for the sample axis, so similar
//     explanations cluster into visible population substructure.
//   - [Identity]: the unchanged input order.
//
// Strategies are stateless pure functions over the matrix. The resolver does
// not inspect their internals and imposes no timeout; clustering a very
// large sample set is the caller's latency to manage.
package ordering
