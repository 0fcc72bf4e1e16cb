// SPDX-License-Identifier: MIT
// Package: csr
//
// Purpose:
//   - Sparse matrix product C = A·B by recursive row merging (RMerge): row i
//     of C is the sum of the rows B[k,:] scaled by A[i,k], combined by a
//     binary tree of two-pointer merges instead of an accumulator.
//
// Implementation:
//   - Stage 1 (Validate): nil checks and A.Cols == B.Rows before any work.
//   - Stage 2 (Per row):
//       0 non-empty contributions → empty row;
//       1 contribution            → scaled copy of that row of B, no merge;
//       m contributions           → scaled copies laid out back to back, then
//                                   ⌈log2 m⌉ passes each merging adjacent
//                                   segments pairwise (ping-pong buffers).
//   - Stage 3 (Assemble): each block appends rows to a private buffer; buffers
//     are concatenated in block order so row order matches A.
//
// Numeric note:
//   - Summation order follows the merge tree, not the column order of A, so
//     values may differ from MultiplySaad in the last bits. The pattern is
//     identical.
//
// Complexity:
//   - Time O(Σ_i L_i log m_i), L_i = Σ_k nnz(B[k,:]) over contributing k.
//   - Space O(nnz(C)) plus O(max_i L_i) scratch per task.

package csr

// MultiplyRMerge returns a·b computed by pairwise merging of sorted rows.
//
// Errors: ErrNilMatrix, ErrDimensionMismatch (a.Cols != b.Rows),
// ErrInvariantViolation (only with WithValidateInput).
func MultiplyRMerge(a, b *Matrix, opts ...Option) (*Matrix, error) {
	o := gatherOptions(opts...)
	if err := ValidateMulCompatible(a, b); err != nil {
		return nil, csrErrorf(opRMerge, err)
	}
	if err := validateOperands(o, a, b); err != nil {
		return nil, csrErrorf(opRMerge, err)
	}

	c := rmergeKernel(a, b, o)
	o.logger.Debug("csr kernel done",
		"op", opRMerge, "rows", c.rows, "cols", c.cols,
		"nnzA", a.Nnz(), "nnzB", b.Nnz(), "nnzC", c.Nnz(), "workers", o.workers)

	return c, nil
}

// blockOut collects the rows of one block in order.
type blockOut struct {
	counts []int // nnz per row of the block
	cols   []int
	vals   []float64
}

// mergeScratch holds the ping-pong buffers and segment bounds of one task.
type mergeScratch struct {
	cols [2][]int
	vals [2][]float64
	segs []int // segment boundaries in the current source buffer
	next []int // segment boundaries being built in the destination buffer
}

// grow ensures both buffers can hold n entries. Existing storage is reused.
func (s *mergeScratch) grow(n int) {
	for h := 0; h < 2; h++ {
		if len(s.cols[h]) < n {
			s.cols[h] = make([]int, n)
			s.vals[h] = make([]float64, n)
		}
	}
}

// rmergeKernel assumes validated, compatible operands.
func rmergeKernel(a, b *Matrix, o Options) *Matrix {
	rows, cols := a.rows, b.cols
	blocks := planBlocks(rows, o)
	outs := make([]blockOut, len(blocks))

	forEachBlock(blocks, o, func(bi int, blk rowBlock) {
		out := &outs[bi]
		out.counts = make([]int, 0, blk.hi-blk.lo)
		var s mergeScratch
		for i := blk.lo; i < blk.hi; i++ {
			before := len(out.cols)
			rmergeRow(a, b, i, &s, out)
			out.counts = append(out.counts, len(out.cols)-before)
		}
	})

	// Row offsets from the per-block counts, in row order.
	rowPtr := make([]int, rows+1)
	for bi, blk := range blocks {
		for r, n := range outs[bi].counts {
			rowPtr[blk.lo+r+1] = n
		}
	}
	nnz := prefixSum(rowPtr)

	colIdx := make([]int, nnz)
	values := make([]float64, nnz)
	forEachBlock(blocks, o, func(bi int, blk rowBlock) {
		lo := rowPtr[blk.lo]
		copy(colIdx[lo:], outs[bi].cols)
		copy(values[lo:], outs[bi].vals)
		outs[bi] = blockOut{} // release the private buffer early
	})

	c := newMatrix(rows, cols, rowPtr, colIdx, values)
	if o.pruneZeros {
		pruneInPlace(c, 0)
	}

	return c
}

// rmergeRow appends row i of a·b to out.
func rmergeRow(a, b *Matrix, i int, s *mergeScratch, out *blockOut) {
	aCols, aVals := a.Row(i)

	// Count non-empty contributions; empty rows of B add nothing.
	var total, lists, last int
	for p, k := range aCols {
		if n := b.RowNnz(k); n > 0 {
			total += n
			lists++
			last = p
		}
	}

	switch lists {
	case 0:
		return
	case 1:
		bCols, bVals := b.Row(aCols[last])
		alpha := aVals[last]
		out.cols = append(out.cols, bCols...)
		for _, v := range bVals {
			out.vals = append(out.vals, alpha*v)
		}
		return
	}

	// Lay the scaled rows out back to back in buffer 0.
	s.grow(total)
	s.segs = append(s.segs[:0], 0)
	w := 0
	for p, k := range aCols {
		bCols, bVals := b.Row(k)
		if len(bCols) == 0 {
			continue
		}
		w += scaleRow(s.cols[0][w:], s.vals[0][w:], bCols, bVals, aVals[p])
		s.segs = append(s.segs, w)
	}

	// Merge adjacent segments pairwise until one remains.
	src := 0
	for len(s.segs) > 2 {
		dst := 1 - src
		nseg := len(s.segs) - 1
		s.next = append(s.next[:0], 0)
		w = 0
		for t := 0; t < nseg; t += 2 {
			xlo, xhi := s.segs[t], s.segs[t+1]
			if t+1 == nseg {
				// Odd segment out: carry it to the next level unchanged.
				w += copy(s.cols[dst][w:], s.cols[src][xlo:xhi])
				copy(s.vals[dst][w-(xhi-xlo):], s.vals[src][xlo:xhi])
			} else {
				ylo, yhi := s.segs[t+1], s.segs[t+2]
				w += mergeRows(s.cols[dst][w:], s.vals[dst][w:],
					s.cols[src][xlo:xhi], s.vals[src][xlo:xhi], 1,
					s.cols[src][ylo:yhi], s.vals[src][ylo:yhi], 1)
			}
			s.next = append(s.next, w)
		}
		s.segs, s.next = s.next, s.segs
		src = dst
	}

	n := s.segs[1]
	out.cols = append(out.cols, s.cols[src][:n]...)
	out.vals = append(out.vals, s.vals[src][:n]...)
}
