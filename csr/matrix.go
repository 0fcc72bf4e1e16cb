// SPDX-License-Identifier: MIT
// Package csr: the compressed sparse row container.
//
// Storage layout:
//   - rowPtr has rows+1 non-decreasing offsets, rowPtr[0] == 0 and
//     rowPtr[rows] == len(colIdx) == len(values).
//   - colIdx[rowPtr[i]:rowPtr[i+1]] is strictly increasing and in [0, cols).
//
// Ownership:
//   - A *Matrix exclusively owns its three slices. Constructors copy caller
//     input; accessors hand out views that callers must not modify.
//   - Kernels never retain references to operands after returning.

package csr

import (
	"fmt"
	"slices"
	"strings"
)

// Matrix is a sparse rows×cols matrix of float64 values in CSR layout.
type Matrix struct {
	rows, cols int
	rowPtr     []int     // len rows+1
	colIdx     []int     // len nnz
	values     []float64 // len nnz
}

// Triplet is one (row, col, value) entry used by FromTriplets.
type Triplet struct {
	Row, Col int
	Val      float64
}

// newMatrix wraps already-canonical storage without copying or checking.
func newMatrix(rows, cols int, rowPtr, colIdx []int, values []float64) *Matrix {
	return &Matrix{rows: rows, cols: cols, rowPtr: rowPtr, colIdx: colIdx, values: values}
}

// New builds a Matrix from raw CSR arrays. The arrays are copied and checked
// against the CSR invariants.
//
// Errors: ErrBadShape for negative dimensions, ErrInvariantViolation for
// malformed storage.
// Complexity: O(rows + nnz).
func New(rows, cols int, rowPtr, colIdx []int, values []float64) (*Matrix, error) {
	if rows < 0 || cols < 0 {
		return nil, csrErrorf(opNew, ErrBadShape)
	}
	m := newMatrix(rows, cols, slices.Clone(rowPtr), slices.Clone(colIdx), slices.Clone(values))
	if err := Validate(m); err != nil {
		return nil, csrErrorf(opNew, err)
	}

	return m, nil
}

// NewZero returns an empty rows×cols matrix (no stored entries).
func NewZero(rows, cols int) (*Matrix, error) {
	if rows < 0 || cols < 0 {
		return nil, csrErrorf(opNew, ErrBadShape)
	}

	return newMatrix(rows, cols, make([]int, rows+1), []int{}, []float64{}), nil
}

// NewIdentity returns the n×n identity.
func NewIdentity(n int) (*Matrix, error) {
	if n < 0 {
		return nil, csrErrorf(opNew, ErrBadShape)
	}
	rowPtr := make([]int, n+1)
	colIdx := make([]int, n)
	values := make([]float64, n)
	for i := 0; i < n; i++ {
		rowPtr[i+1] = i + 1
		colIdx[i] = i
		values[i] = 1
	}

	return newMatrix(n, n, rowPtr, colIdx, values), nil
}

// FromDense compresses a row-major dense array, dropping exact zeros.
// All rows must have the same length; an empty input yields a 0×0 matrix.
//
// Complexity: O(rows*cols).
func FromDense(data [][]float64) (*Matrix, error) {
	rows := len(data)
	cols := 0
	if rows > 0 {
		cols = len(data[0])
	}
	rowPtr := make([]int, rows+1)
	colIdx := []int{}
	values := []float64{}
	for i, row := range data {
		if len(row) != cols {
			return nil, csrErrorf(opNew, fmt.Errorf("row %d has %d columns, want %d: %w", i, len(row), cols, ErrBadShape))
		}
		for j, v := range row {
			if v != 0 {
				colIdx = append(colIdx, j)
				values = append(values, v)
			}
		}
		rowPtr[i+1] = len(colIdx)
	}

	return newMatrix(rows, cols, rowPtr, colIdx, values), nil
}

// FromTriplets assembles a matrix from unordered entries. Entries sharing a
// (row, col) position are summed, matching the way element contributions are
// assembled into a global system matrix. Explicit zeros are kept.
//
// Errors: ErrBadShape, ErrOutOfRange for an entry outside rows×cols.
// Complexity: O(rows + t log t) for t triplets.
func FromTriplets(rows, cols int, entries []Triplet) (*Matrix, error) {
	if rows < 0 || cols < 0 {
		return nil, csrErrorf(opNew, ErrBadShape)
	}
	// Bucket by row (counting sort), then sort each row by column.
	rowPtr := make([]int, rows+1)
	for _, e := range entries {
		if e.Row < 0 || e.Row >= rows || e.Col < 0 || e.Col >= cols {
			return nil, csrErrorf(opNew, fmt.Errorf("entry (%d,%d): %w", e.Row, e.Col, ErrOutOfRange))
		}
		rowPtr[e.Row+1]++
	}
	for i := 0; i < rows; i++ {
		rowPtr[i+1] += rowPtr[i]
	}
	next := slices.Clone(rowPtr[:rows])
	bucket := make([]Triplet, len(entries))
	for _, e := range entries {
		bucket[next[e.Row]] = e
		next[e.Row]++
	}

	colIdx := make([]int, 0, len(entries))
	values := make([]float64, 0, len(entries))
	outPtr := make([]int, rows+1)
	for i := 0; i < rows; i++ {
		row := bucket[rowPtr[i]:rowPtr[i+1]]
		slices.SortStableFunc(row, func(a, b Triplet) int { return a.Col - b.Col })
		for k, e := range row {
			if k > 0 && row[k-1].Col == e.Col {
				values[len(values)-1] += e.Val // duplicate position: sum
				continue
			}
			colIdx = append(colIdx, e.Col)
			values = append(values, e.Val)
		}
		outPtr[i+1] = len(colIdx)
	}

	return newMatrix(rows, cols, outPtr, colIdx, values), nil
}

// Rows returns the number of rows. Complexity: O(1).
func (m *Matrix) Rows() int { return m.rows }

// Cols returns the number of columns. Complexity: O(1).
func (m *Matrix) Cols() int { return m.cols }

// Dims returns (rows, cols).
func (m *Matrix) Dims() (int, int) { return m.rows, m.cols }

// Nnz returns the number of stored entries, explicit zeros included.
func (m *Matrix) Nnz() int { return len(m.values) }

// RowPtr returns the row offset array. The slice must not be modified.
func (m *Matrix) RowPtr() []int { return m.rowPtr }

// ColIdx returns the column index array. The slice must not be modified.
func (m *Matrix) ColIdx() []int { return m.colIdx }

// Values returns the value array. The slice must not be modified.
func (m *Matrix) Values() []float64 { return m.values }

// Row returns views of the column indices and values stored in row i.
// It panics if i is out of range, like a slice index would.
func (m *Matrix) Row(i int) ([]int, []float64) {
	lo, hi := m.rowPtr[i], m.rowPtr[i+1]
	return m.colIdx[lo:hi], m.values[lo:hi]
}

// RowNnz returns the number of stored entries in row i.
func (m *Matrix) RowNnz(i int) int { return m.rowPtr[i+1] - m.rowPtr[i] }

// MaxRowNnz returns the largest per-row entry count (0 for an empty matrix).
func (m *Matrix) MaxRowNnz() int {
	maxNnz := 0
	for i := 0; i < m.rows; i++ {
		maxNnz = max(maxNnz, m.rowPtr[i+1]-m.rowPtr[i])
	}

	return maxNnz
}

// At returns the value at (i, j); positions without a stored entry read 0.
//
// Errors: ErrOutOfRange. Complexity: O(log nnz(row i)).
func (m *Matrix) At(i, j int) (float64, error) {
	if i < 0 || i >= m.rows || j < 0 || j >= m.cols {
		return 0, csrErrorf(opAt, fmt.Errorf("(%d,%d): %w", i, j, ErrOutOfRange))
	}
	cols, vals := m.Row(i)
	if k, ok := slices.BinarySearch(cols, j); ok {
		return vals[k], nil
	}

	return 0, nil
}

// Clone returns a deep copy.
func (m *Matrix) Clone() *Matrix {
	return newMatrix(m.rows, m.cols, slices.Clone(m.rowPtr), slices.Clone(m.colIdx), slices.Clone(m.values))
}

// ToDense expands the matrix into a row-major [][]float64.
// Intended for tests and small debugging output only.
func (m *Matrix) ToDense() [][]float64 {
	out := make([][]float64, m.rows)
	for i := range out {
		out[i] = make([]float64, m.cols)
		cols, vals := m.Row(i)
		for k, j := range cols {
			out[i][j] = vals[k]
		}
	}

	return out
}

// String implements fmt.Stringer as a compact per-row listing.
func (m *Matrix) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "CSR %dx%d nnz=%d\n", m.rows, m.cols, len(m.values))
	for i := 0; i < m.rows; i++ {
		cols, vals := m.Row(i)
		sb.WriteString("[")
		for k, j := range cols {
			if k > 0 {
				sb.WriteString(", ")
			}
			fmt.Fprintf(&sb, "%d:%g", j, vals[k])
		}
		sb.WriteString("]\n")
	}

	return sb.String()
}

// replaceStorage swaps in a freshly built matrix's slices. The previous
// storage is dropped as a whole, never partially overwritten.
func (m *Matrix) replaceStorage(src *Matrix) {
	m.rowPtr, m.colIdx, m.values = src.rowPtr, src.colIdx, src.values
}
