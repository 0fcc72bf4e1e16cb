// SPDX-License-Identifier: MIT
// Package: csr
//
// Purpose:
//   - Two-pointer merge of two sorted sparse rows. This is the single
//     primitive behind Add (a + alpha*b) and every step of the RMerge tree.
//
// Determinism:
//   - Output columns are strictly increasing by construction; no sort needed.
//   - On equal columns the value is x*xa + y*yb, evaluated in that order.

package csr

// mergeRows writes xa·x + yb·y into dstCols/dstVals and returns the number of
// entries written. x and y must each be strictly increasing; dst must have
// room for len(xCols)+len(yCols) entries and must not alias the inputs.
//
// A coefficient of exactly 1 leaves the corresponding values bit-identical.
//
// Complexity: O(len(x) + len(y)).
func mergeRows(dstCols []int, dstVals []float64,
	xCols []int, xVals []float64, xa float64,
	yCols []int, yVals []float64, yb float64,
) int {
	var p, q, n int
	for p < len(xCols) && q < len(yCols) {
		switch xc, yc := xCols[p], yCols[q]; {
		case xc < yc:
			dstCols[n], dstVals[n] = xc, xa*xVals[p]
			p++
		case yc < xc:
			dstCols[n], dstVals[n] = yc, yb*yVals[q]
			q++
		default:
			dstCols[n], dstVals[n] = xc, xa*xVals[p]+yb*yVals[q]
			p++
			q++
		}
		n++
	}
	// Drain whichever side is left.
	for ; p < len(xCols); p++ {
		dstCols[n], dstVals[n] = xCols[p], xa*xVals[p]
		n++
	}
	for ; q < len(yCols); q++ {
		dstCols[n], dstVals[n] = yCols[q], yb*yVals[q]
		n++
	}

	return n
}

// mergeCount returns the size of the union of two strictly increasing column
// lists, i.e. the symbolic result of mergeRows.
//
// Complexity: O(len(x) + len(y)).
func mergeCount(xCols, yCols []int) int {
	var p, q, n int
	for p < len(xCols) && q < len(yCols) {
		switch {
		case xCols[p] < yCols[q]:
			p++
		case yCols[q] < xCols[p]:
			q++
		default:
			p++
			q++
		}
		n++
	}

	return n + (len(xCols) - p) + (len(yCols) - q)
}

// scaleRow writes alpha·src into dst and returns len(src).
func scaleRow(dstCols []int, dstVals []float64, srcCols []int, srcVals []float64, alpha float64) int {
	copy(dstCols, srcCols)
	for k, v := range srcVals {
		dstVals[k] = alpha * v
	}

	return len(srcCols)
}
