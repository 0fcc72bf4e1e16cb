// SPDX-License-Identifier: MIT
// Package csr: public API facades and shared operation tags.
//
// Purpose:
//   - Name the multiplication algorithms and dispatch between them.
//   - Define operation tags and the single error-wrapping helper so every
//     kernel reports "<Op>: <cause>" and stays matchable with errors.Is.
//
// Determinism & Policy:
//   - Facades never change the numeric policy of the kernels they forward to.
//   - Saad and RMerge produce the same pattern; values agree within rounding
//     (summation order differs), never bit-for-bit by contract.

package csr

import (
	"fmt"
	"strings"
)

// Operation name constants for unified error wrapping.
const (
	opNew       = "New"
	opAt        = "At"
	opAdd       = "Add"
	opAddInto   = "AddInPlace"
	opSaad      = "MultiplySaad"
	opRMerge    = "MultiplyRMerge"
	opMultiply  = "Multiply"
	opTranspose = "Transpose"
	opScale     = "Scale"
	opPrune     = "Prune"
	opMulVec    = "MulVec"
	opCompare   = "AllClose"
)

// csrErrorf wraps err with an operation tag, preserving it for errors.Is.
// Call only with a non-nil err.
func csrErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}

// Algorithm selects a sparse matrix-matrix multiplication kernel.
type Algorithm int

const (
	// Saad is row-wise Gustavson multiplication with a sparse accumulator.
	Saad Algorithm = iota
	// RMerge multiplies by merging scaled rows of B pairwise in a binary tree.
	RMerge
)

// String returns the lower-case algorithm name.
func (a Algorithm) String() string {
	switch a {
	case Saad:
		return "saad"
	case RMerge:
		return "rmerge"
	default:
		return fmt.Sprintf("Algorithm(%d)", int(a))
	}
}

// ParseAlgorithm maps a case-insensitive name ("saad", "rmerge") to an
// Algorithm.
func ParseAlgorithm(name string) (Algorithm, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "saad", "smmp", "gustavson":
		return Saad, nil
	case "rmerge":
		return RMerge, nil
	default:
		return 0, fmt.Errorf("%q: %w", name, ErrUnknownAlgorithm)
	}
}

// Multiply computes a·b with the selected algorithm.
//
// Errors: ErrUnknownAlgorithm, plus everything MultiplySaad/MultiplyRMerge
// report.
func Multiply(a, b *Matrix, alg Algorithm, opts ...Option) (*Matrix, error) {
	switch alg {
	case Saad:
		return MultiplySaad(a, b, opts...)
	case RMerge:
		return MultiplyRMerge(a, b, opts...)
	default:
		return nil, csrErrorf(opMultiply, fmt.Errorf("%v: %w", alg, ErrUnknownAlgorithm))
	}
}

// Sum is an alias for Add with alpha = 1.
func Sum(a, b *Matrix, opts ...Option) (*Matrix, error) { return Add(a, b, 1, opts...) }

// Diff is an alias for Add with alpha = -1.
func Diff(a, b *Matrix, opts ...Option) (*Matrix, error) { return Add(a, b, -1, opts...) }
