// SPDX-License-Identifier: MIT
// Package csr: sentinel error set.
// This file defines ONLY package-level sentinel errors used across the csr
// package. Kernels return these sentinels wrapped with an operation tag and
// tests MUST check them via errors.Is. No kernel panics on user input.

package csr

import "errors"

// NOTE ON NAMING & PREFIXING
// --------------------------
// Every message is prefixed with "csr: ..." for consistency. Kernels wrap
// with csrErrorf(opX, err) at the facade; validators wrap with
// validatorErrorf(tag, err). Callers still match with errors.Is.
//
// ERROR PRIORITY (documented, enforced in tests):
// nil operand -> dimension mismatch -> invariant violation (opt-in).

var (
	// ErrNilMatrix indicates that a nil *Matrix was passed as an operand.
	ErrNilMatrix = errors.New("csr: nil matrix")

	// ErrBadShape is returned when a requested shape is negative.
	ErrBadShape = errors.New("csr: invalid shape")

	// ErrDimensionMismatch indicates incompatible operand dimensions:
	// Add requires equal shapes, multiplication requires a.Cols == b.Rows.
	// It is always reported before any computation or mutation happens.
	ErrDimensionMismatch = errors.New("csr: dimension mismatch")

	// ErrInvariantViolation signals malformed CSR storage: bad row pointers,
	// unsorted or duplicate columns, or an out-of-range column index.
	ErrInvariantViolation = errors.New("csr: invariant violation")

	// ErrOutOfRange indicates that a row or column index is outside bounds.
	ErrOutOfRange = errors.New("csr: index out of range")

	// ErrUnknownAlgorithm is returned by ParseAlgorithm and Multiply for an
	// algorithm name or value the package does not implement.
	ErrUnknownAlgorithm = errors.New("csr: unknown multiplication algorithm")
)
