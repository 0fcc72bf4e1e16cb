// SPDX-License-Identifier: MIT
// Package csr: test-only bridges to unexported helpers.
//
// Purpose:
//   - Let the external csr_test package exercise the merge primitive, the
//     accumulator and the block planner directly.
//
// Being a _test.go file in package csr, it only exists in test builds.

package csr

// MergeRows_TestOnly returns xa·x + yb·y as fresh slices.
func MergeRows_TestOnly(xCols []int, xVals []float64, xa float64, yCols []int, yVals []float64, yb float64) ([]int, []float64) {
	n := len(xCols) + len(yCols)
	cols, vals := make([]int, n), make([]float64, n)
	w := mergeRows(cols, vals, xCols, xVals, xa, yCols, yVals, yb)

	return cols[:w], vals[:w]
}

// MergeCount_TestOnly forwards to mergeCount.
func MergeCount_TestOnly(xCols, yCols []int) int { return mergeCount(xCols, yCols) }

// AccumulatorRows_TestOnly feeds each row of (col, val) contributions through
// a single accumulator of width cols, resetting between rows, and returns the
// drained rows.
func AccumulatorRows_TestOnly(cols int, rows [][]Triplet) ([][]int, [][]float64) {
	acc := newAccumulator(cols)
	outCols := make([][]int, len(rows))
	outVals := make([][]float64, len(rows))
	for r, contribs := range rows {
		acc.reset()
		for _, t := range contribs {
			acc.add(t.Col, t.Val)
		}
		outCols[r] = make([]int, acc.len())
		outVals[r] = make([]float64, acc.len())
		acc.drain(outCols[r], outVals[r])
	}

	return outCols, outVals
}

// PlanBlocks_TestOnly returns the [lo, hi) blocks chosen for rows under opts.
func PlanBlocks_TestOnly(rows int, opts ...Option) [][2]int {
	blocks := planBlocks(rows, gatherOptions(opts...))
	out := make([][2]int, len(blocks))
	for i, b := range blocks {
		out[i] = [2]int{b.lo, b.hi}
	}

	return out
}

// Raw_TestOnly builds a Matrix from raw arrays WITHOUT validation, so tests
// can feed malformed storage to Validate and WithValidateInput.
func Raw_TestOnly(rows, cols int, rowPtr, colIdx []int, values []float64) *Matrix {
	return newMatrix(rows, cols, rowPtr, colIdx, values)
}
