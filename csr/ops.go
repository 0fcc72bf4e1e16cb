// SPDX-License-Identifier: MIT
// Package: csr
//
// Purpose:
//   - Small structural operations used around the main kernels: transpose,
//     scaling, pruning and sparse matrix-vector product.

package csr

import (
	"fmt"
	"math"
	"slices"
)

// Transpose returns aᵀ. Rows of the result come out sorted by construction
// (counting sort by column, scanning rows of a in order).
//
// Errors: ErrNilMatrix.
// Complexity: O(rows + cols + nnz).
func Transpose(a *Matrix) (*Matrix, error) {
	if err := ValidateNotNil(a); err != nil {
		return nil, csrErrorf(opTranspose, err)
	}
	rowPtr := make([]int, a.cols+1)
	for _, j := range a.colIdx {
		rowPtr[j+1]++
	}
	nnz := prefixSum(rowPtr)

	next := slices.Clone(rowPtr[:a.cols])
	colIdx := make([]int, nnz)
	values := make([]float64, nnz)
	for i := 0; i < a.rows; i++ {
		cols, vals := a.Row(i)
		for k, j := range cols {
			p := next[j]
			colIdx[p], values[p] = i, vals[k]
			next[j]++
		}
	}

	return newMatrix(a.cols, a.rows, rowPtr, colIdx, values), nil
}

// Scale returns alpha·a with a's pattern. alpha == 0 keeps the pattern and
// stores zeros; combine with Prune to drop them.
//
// Errors: ErrNilMatrix.
// Complexity: O(rows + nnz).
func Scale(a *Matrix, alpha float64) (*Matrix, error) {
	if err := ValidateNotNil(a); err != nil {
		return nil, csrErrorf(opScale, err)
	}
	c := a.Clone()
	for k := range c.values {
		c.values[k] *= alpha
	}

	return c, nil
}

// Prune returns a copy of a without the entries where |v| <= tol.
// NaN entries are always kept.
//
// Errors: ErrNilMatrix, ErrBadShape for a negative or NaN tol.
// Complexity: O(rows + nnz).
func Prune(a *Matrix, tol float64) (*Matrix, error) {
	if err := ValidateNotNil(a); err != nil {
		return nil, csrErrorf(opPrune, err)
	}
	if math.IsNaN(tol) || tol < 0 {
		return nil, csrErrorf(opPrune, fmt.Errorf("tol=%v: %w", tol, ErrBadShape))
	}
	c := a.Clone()
	pruneInPlace(c, tol)

	return c, nil
}

// MulVec returns y = a·x, computed row-parallel.
//
// Errors: ErrNilMatrix, ErrDimensionMismatch when len(x) != a.Cols.
// Complexity: O(rows + nnz).
func MulVec(a *Matrix, x []float64, opts ...Option) ([]float64, error) {
	o := gatherOptions(opts...)
	if err := ValidateNotNil(a); err != nil {
		return nil, csrErrorf(opMulVec, err)
	}
	if len(x) != a.cols {
		return nil, csrErrorf(opMulVec, fmt.Errorf("len(x)=%d, cols=%d: %w", len(x), a.cols, ErrDimensionMismatch))
	}

	y := make([]float64, a.rows)
	forEachBlock(planBlocks(a.rows, o), o, func(_ int, blk rowBlock) {
		for i := blk.lo; i < blk.hi; i++ {
			cols, vals := a.Row(i)
			var sum float64
			for k, j := range cols {
				sum += vals[k] * x[j]
			}
			y[i] = sum
		}
	})

	return y, nil
}
