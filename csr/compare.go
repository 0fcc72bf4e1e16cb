// SPDX-License-Identifier: MIT
// Package: csr
//
// Purpose:
//   - Entrywise comparison of two matrices, independent of which positions
//     are stored. A missing entry compares as 0, so a result with explicit
//     zeros equals the same result with those zeros pruned.

package csr

import (
	"fmt"
	"math"
)

// Equal reports whether a and b have the same shape and identical values at
// every position. NaN never equals anything.
func Equal(a, b *Matrix) bool {
	if a == nil || b == nil || a.rows != b.rows || a.cols != b.cols {
		return false
	}

	return walkUnion(a, b, func(x, y float64) bool { return x == y })
}

// AllClose reports whether |x - y| <= tol·max(1, |x|, |y|) at every position,
// i.e. an absolute test near zero and a relative one for large values.
//
// Errors: ErrNilMatrix, ErrDimensionMismatch, ErrBadShape for a negative or
// NaN tol.
func AllClose(a, b *Matrix, tol float64) (bool, error) {
	if err := ValidateSameShape(a, b); err != nil {
		return false, csrErrorf(opCompare, err)
	}
	if math.IsNaN(tol) || tol < 0 {
		return false, csrErrorf(opCompare, fmt.Errorf("tol=%v: %w", tol, ErrBadShape))
	}

	return walkUnion(a, b, func(x, y float64) bool { return withinTol(x, y, tol) }), nil
}

// withinTol is the scalar test used by AllClose.
func withinTol(x, y, tol float64) bool {
	if x == y {
		return true // also covers equal infinities
	}
	scale := max(1, math.Abs(x), math.Abs(y))

	return math.Abs(x-y) <= tol*scale
}

// walkUnion calls same(x, y) for every position stored in a or b, with 0 for
// the side that does not store it, and stops at the first false.
func walkUnion(a, b *Matrix, same func(x, y float64) bool) bool {
	for i := 0; i < a.rows; i++ {
		ac, av := a.Row(i)
		bc, bv := b.Row(i)
		var p, q int
		for p < len(ac) || q < len(bc) {
			var x, y float64
			switch {
			case q == len(bc) || (p < len(ac) && ac[p] < bc[q]):
				x = av[p]
				p++
			case p == len(ac) || bc[q] < ac[p]:
				y = bv[q]
				q++
			default:
				x, y = av[p], bv[q]
				p++
				q++
			}
			if !same(x, y) {
				return false
			}
		}
	}

	return true
}
