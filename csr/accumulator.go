// SPDX-License-Identifier: MIT
// Package: csr
//
// Purpose:
//   - Sparse accumulator (SPA) mapping a column index to a running sum for
//     the row currently being built.
//
// Design:
//   - Dense arena indexed by column: marker[j] == gen means column j was
//     touched in the current row and sums[j] holds its value.
//   - reset bumps gen instead of clearing, so moving to the next row costs
//     O(1) plus truncating the touched list. Backing storage is never freed
//     between rows.
//   - An accumulator belongs to exactly one task and is never shared between
//     goroutines.

package csr

import "slices"

// accumulator is the per-task scratch used by the Saad kernel.
type accumulator struct {
	marker  []uint32  // generation stamp per column
	sums    []float64 // running sum per column, valid when stamped
	touched []int     // columns touched in the current row, first-touch order
	gen     uint32    // current generation, never 0 while in use
}

// newAccumulator allocates an accumulator able to address cols columns.
// Complexity: O(cols).
func newAccumulator(cols int) *accumulator {
	return &accumulator{
		marker:  make([]uint32, cols),
		sums:    make([]float64, cols),
		touched: make([]int, 0, 16),
		gen:     1,
	}
}

// reset logically clears the accumulator for the next row.
func (acc *accumulator) reset() {
	acc.touched = acc.touched[:0]
	acc.gen++
	if acc.gen == 0 {
		// Stamp wrap-around after 2^32 rows: clear once and restart.
		clear(acc.marker)
		acc.gen = 1
	}
}

// touch records column j without a value (symbolic phase).
func (acc *accumulator) touch(j int) {
	if acc.marker[j] != acc.gen {
		acc.marker[j] = acc.gen
		acc.touched = append(acc.touched, j)
	}
}

// add accumulates v into column j (numeric phase).
func (acc *accumulator) add(j int, v float64) {
	if acc.marker[j] != acc.gen {
		acc.marker[j] = acc.gen
		acc.sums[j] = v
		acc.touched = append(acc.touched, j)
		return
	}
	acc.sums[j] += v
}

// len returns the number of distinct columns touched in the current row.
func (acc *accumulator) len() int { return len(acc.touched) }

// drain writes the current row in ascending column order into dstCols and
// dstVals, which must hold at least acc.len() elements, and returns the
// number of entries written.
//
// Complexity: O(r log r) for r touched columns.
func (acc *accumulator) drain(dstCols []int, dstVals []float64) int {
	slices.Sort(acc.touched)
	for k, j := range acc.touched {
		dstCols[k] = j
		dstVals[k] = acc.sums[j]
	}

	return len(acc.touched)
}
