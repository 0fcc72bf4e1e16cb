// SPDX-License-Identifier: MIT
// Package: csr
//
// Purpose:
//  - Provide a single, canonical source of truth for operand checks.
//  - Keep kernels minimal by delegating nil/shape/invariant checks here.
//  - Return sentinel errors wrapped with a validator tag so call sites can
//    wrap uniformly with their op tag.
//
// Determinism & Performance:
//  - Shape checks are O(1) and allocate nothing.
//  - Validate is O(rows + nnz) and only runs when asked for.
//
// Note:
//  - Each composite validator follows a fixed sequence (NotNil → Shape).

package csr

import "fmt"

// validatorErrorf wraps an underlying error with the given validator tag.
func validatorErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}

// ValidateNotNil ensures the matrix reference is non-nil.
func ValidateNotNil(m *Matrix) error {
	if m == nil {
		return validatorErrorf("ValidateNotNil", ErrNilMatrix)
	}

	return nil
}

// ValidateSameShape ensures a and b are non-nil and have equal dimensions.
//
// Errors: ErrNilMatrix, ErrDimensionMismatch.
// Complexity: O(1).
func ValidateSameShape(a, b *Matrix) error {
	if err := ValidateNotNil(a); err != nil {
		return validatorErrorf("ValidateSameShape", err)
	}
	if err := ValidateNotNil(b); err != nil {
		return validatorErrorf("ValidateSameShape", err)
	}
	if a.rows != b.rows || a.cols != b.cols {
		return validatorErrorf("ValidateSameShape",
			fmt.Errorf("%dx%d vs %dx%d: %w", a.rows, a.cols, b.rows, b.cols, ErrDimensionMismatch))
	}

	return nil
}

// ValidateMulCompatible ensures a and b are non-nil and a.Cols == b.Rows.
//
// Errors: ErrNilMatrix, ErrDimensionMismatch.
// Complexity: O(1).
func ValidateMulCompatible(a, b *Matrix) error {
	if err := ValidateNotNil(a); err != nil {
		return validatorErrorf("ValidateMulCompatible", err)
	}
	if err := ValidateNotNil(b); err != nil {
		return validatorErrorf("ValidateMulCompatible", err)
	}
	if a.cols != b.rows {
		return validatorErrorf("ValidateMulCompatible",
			fmt.Errorf("%dx%d · %dx%d: %w", a.rows, a.cols, b.rows, b.cols, ErrDimensionMismatch))
	}

	return nil
}

// Validate checks every CSR invariant of m:
//   - len(rowPtr) == rows+1, rowPtr[0] == 0, rowPtr non-decreasing;
//   - rowPtr[rows] == len(colIdx) == len(values);
//   - per row, column indices strictly increasing and inside [0, cols).
//
// Errors: ErrNilMatrix, ErrBadShape, ErrInvariantViolation (with the first
// offending row in the message).
// Complexity: O(rows + nnz).
func Validate(m *Matrix) error {
	if err := ValidateNotNil(m); err != nil {
		return validatorErrorf("Validate", err)
	}
	if m.rows < 0 || m.cols < 0 {
		return validatorErrorf("Validate", ErrBadShape)
	}
	if len(m.rowPtr) != m.rows+1 {
		return validatorErrorf("Validate",
			fmt.Errorf("len(rowPtr)=%d, want %d: %w", len(m.rowPtr), m.rows+1, ErrInvariantViolation))
	}
	if m.rowPtr[0] != 0 {
		return validatorErrorf("Validate", fmt.Errorf("rowPtr[0]=%d: %w", m.rowPtr[0], ErrInvariantViolation))
	}
	nnz := m.rowPtr[m.rows]
	if nnz != len(m.colIdx) || nnz != len(m.values) {
		return validatorErrorf("Validate",
			fmt.Errorf("rowPtr[rows]=%d, len(colIdx)=%d, len(values)=%d: %w",
				nnz, len(m.colIdx), len(m.values), ErrInvariantViolation))
	}

	var i, k, lo, hi, prev int
	for i = 0; i < m.rows; i++ {
		lo, hi = m.rowPtr[i], m.rowPtr[i+1]
		if hi < lo || hi > nnz {
			return validatorErrorf("Validate", fmt.Errorf("row %d: bad offsets [%d,%d): %w", i, lo, hi, ErrInvariantViolation))
		}
		prev = -1
		for k = lo; k < hi; k++ {
			j := m.colIdx[k]
			if j < 0 || j >= m.cols {
				return validatorErrorf("Validate", fmt.Errorf("row %d: column %d out of range: %w", i, j, ErrInvariantViolation))
			}
			if j <= prev {
				return validatorErrorf("Validate", fmt.Errorf("row %d: column %d after %d: %w", i, j, prev, ErrInvariantViolation))
			}
			prev = j
		}
	}

	return nil
}

// validateOperands runs Validate on each operand when the options ask for it.
func validateOperands(o Options, ms ...*Matrix) error {
	if !o.validateInput {
		return nil
	}
	for _, m := range ms {
		if err := Validate(m); err != nil {
			return err
		}
	}

	return nil
}
