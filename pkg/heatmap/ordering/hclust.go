package ordering

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// HClust orders elements by hierarchical-clustering leaf order.
//
// Elements are clustered agglomeratively using average linkage (UPGMA) over
// Euclidean distances between their attribution vectors. The permutation is
// the left-to-right leaf order of the final dendrogram, which places
// similar elements next to each other. No scores are produced.
//
// The algorithm is O(n²) space and O(n³) time in the axis length; cost is
// the caller's responsibility for very large sample sets.
type HClust struct{}

// Order implements [Strategy].
func (HClust) Order(values *mat.Dense, axis Axis) ([]int, []float64, error) {
	n := axis.Len(values)
	if n == 1 {
		return []int{0}, nil, nil
	}

	dist := distanceMatrix(values, axis, n)

	// Each cluster tracks its member leaves in dendrogram order. dist is
	// maintained between active clusters with the Lance-Williams average
	// linkage update.
	members := make([][]int, n)
	active := make([]bool, n)
	for i := 0; i < n; i++ {
		members[i] = []int{i}
		active[i] = true
	}

	for merges := 0; merges < n-1; merges++ {
		bi, bj := closestPair(dist, active, n)

		// Merge j into i; keep the smaller-indexed leaf block first so the
		// ordering is deterministic.
		ni, nj := float64(len(members[bi])), float64(len(members[bj]))
		for k := 0; k < n; k++ {
			if !active[k] || k == bi || k == bj {
				continue
			}
			dist[bi][k] = (ni*dist[bi][k] + nj*dist[bj][k]) / (ni + nj)
			dist[k][bi] = dist[bi][k]
		}
		members[bi] = append(members[bi], members[bj]...)
		active[bj] = false
	}

	for i := 0; i < n; i++ {
		if active[i] {
			return members[i], nil, nil
		}
	}
	// Unreachable: exactly one cluster survives n-1 merges.
	return nil, nil, nil
}

// distanceMatrix computes pairwise Euclidean distances between the n
// elements (rows or columns) of values along axis.
func distanceMatrix(values *mat.Dense, axis Axis, n int) [][]float64 {
	vecs := make([][]float64, n)
	for i := 0; i < n; i++ {
		var v []float64
		if axis == AxisSamples {
			v = mat.Row(nil, i, values)
		} else {
			v = mat.Col(nil, i, values)
		}
		vecs[i] = v
	}

	dist := make([][]float64, n)
	for i := range dist {
		dist[i] = make([]float64, n)
	}
	diff := make([]float64, len(vecs[0]))
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			floats.SubTo(diff, vecs[i], vecs[j])
			d := floats.Norm(diff, 2)
			dist[i][j] = d
			dist[j][i] = d
		}
	}
	return dist
}

// closestPair returns the indices (i < j) of the two active clusters at
// minimum distance.
func closestPair(dist [][]float64, active []bool, n int) (int, int) {
	bi, bj := -1, -1
	best := 0.0
	for i := 0; i < n; i++ {
		if !active[i] {
			continue
		}
		for j := i + 1; j < n; j++ {
			if !active[j] {
				continue
			}
			if bi == -1 || dist[i][j] < best {
				bi, bj, best = i, j, dist[i][j]
			}
		}
	}
	return bi, bj
}
