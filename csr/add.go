// SPDX-License-Identifier: MIT
// Package: csr
//
// Purpose:
//   - Sparse addition C = A + alpha·B over the union pattern of A and B.
//
// Implementation:
//   - Stage 1 (Validate): nil and shape checks before any allocation.
//   - Stage 2 (Symbolic): per row, count the union of the two sorted column
//     lists (mergeCount) into rowPtr, then prefix-sum.
//   - Stage 3 (Numeric): per row, mergeRows writes straight into the row's
//     final slice; rows never overlap so blocks need no locking.
//   - Stage 4 (Policy): optional exact-zero pruning.
//
// Zero policy:
//   - By default entries with a + alpha*b == 0 stay stored (explicit zeros),
//     so the result pattern is always the union of the input patterns.
//   - With WithPruneZeros they are dropped.

package csr

import "slices"

// Add returns a new matrix a + alpha·b. Neither operand is modified.
//
// Errors: ErrNilMatrix, ErrDimensionMismatch (shapes differ),
// ErrInvariantViolation (only with WithValidateInput).
// Complexity: O(rows + nnz(a) + nnz(b)) time and space.
func Add(a, b *Matrix, alpha float64, opts ...Option) (*Matrix, error) {
	o := gatherOptions(opts...)
	if err := ValidateSameShape(a, b); err != nil {
		return nil, csrErrorf(opAdd, err)
	}
	if err := validateOperands(o, a, b); err != nil {
		return nil, csrErrorf(opAdd, err)
	}

	c := addKernel(a, b, alpha, o)
	o.logger.Debug("csr kernel done",
		"op", opAdd, "rows", c.rows, "cols", c.cols,
		"nnzA", a.Nnz(), "nnzB", b.Nnz(), "nnzC", c.Nnz(), "workers", o.workers)

	return c, nil
}

// AddInPlace performs a ← a + alpha·b. On success a's storage is replaced
// wholesale by freshly built arrays; on error a is left untouched. b may be
// the same matrix as a.
//
// Errors: as Add.
func AddInPlace(a, b *Matrix, alpha float64, opts ...Option) error {
	o := gatherOptions(opts...)
	if err := ValidateSameShape(a, b); err != nil {
		return csrErrorf(opAddInto, err)
	}
	if err := validateOperands(o, a, b); err != nil {
		return csrErrorf(opAddInto, err)
	}

	c := addKernel(a, b, alpha, o)
	a.replaceStorage(c)
	o.logger.Debug("csr kernel done",
		"op", opAddInto, "rows", a.rows, "cols", a.cols, "nnz", a.Nnz(), "workers", o.workers)

	return nil
}

// addKernel assumes validated operands of equal shape.
func addKernel(a, b *Matrix, alpha float64, o Options) *Matrix {
	rows, cols := a.rows, a.cols
	blocks := planBlocks(rows, o)

	// Symbolic pass: union size per row lands in rowPtr[i+1].
	rowPtr := make([]int, rows+1)
	forEachBlock(blocks, o, func(_ int, blk rowBlock) {
		for i := blk.lo; i < blk.hi; i++ {
			ac, _ := a.Row(i)
			bc, _ := b.Row(i)
			rowPtr[i+1] = mergeCount(ac, bc)
		}
	})
	nnz := prefixSum(rowPtr)

	// Numeric pass into disjoint row slices.
	colIdx := make([]int, nnz)
	values := make([]float64, nnz)
	forEachBlock(blocks, o, func(_ int, blk rowBlock) {
		for i := blk.lo; i < blk.hi; i++ {
			ac, av := a.Row(i)
			bc, bv := b.Row(i)
			lo := rowPtr[i]
			mergeRows(colIdx[lo:], values[lo:], ac, av, 1, bc, bv, alpha)
		}
	})

	c := newMatrix(rows, cols, rowPtr, colIdx, values)
	if o.pruneZeros {
		pruneInPlace(c, 0)
	}

	return c
}

// pruneInPlace removes entries with |v| <= tol (NaN is kept) by compacting
// the arrays of c, which must be exclusively owned by the caller.
//
// Complexity: O(rows + nnz), no allocation.
func pruneInPlace(c *Matrix, tol float64) {
	var w, lo int
	for i := 0; i < c.rows; i++ {
		hi := c.rowPtr[i+1]
		for k := lo; k < hi; k++ {
			v := c.values[k]
			if v <= tol && v >= -tol {
				continue
			}
			c.colIdx[w], c.values[w] = c.colIdx[k], v
			w++
		}
		lo = hi
		c.rowPtr[i+1] = w
	}
	c.colIdx = slices.Clip(c.colIdx[:w])
	c.values = slices.Clip(c.values[:w])
}
