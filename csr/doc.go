// Package csr is an in-memory sparse algebra kernel on compressed sparse row
// (CSR) matrices.
//
// The csr package provides:
//
//   - Matrix, a CSR container with validated constructors (New, NewZero,
//     NewIdentity, FromDense, FromTriplets) and read-only row views.
//   - Add / AddInPlace: C = A + alpha·B by a two-pointer merge of sorted rows.
//   - MultiplySaad: Gustavson (SMMP) row-wise product with a sparse
//     accumulator reused across the rows of a task.
//   - MultiplyRMerge: row-wise product merging scaled rows of B pairwise in a
//     binary tree, with no accumulator at all.
//   - Transpose, Scale, Prune, MulVec, Equal and AllClose helpers.
//
// Every result is canonical: per row, column indices are strictly increasing
// and unique, and the shape is exactly rows×cols even when trailing rows or
// columns hold nothing.
//
// Rows are independent, so all kernels split them into contiguous blocks and
// run blocks on a bounded set of goroutines (WithWorkers). Inputs are only
// read; outputs are written in disjoint row ranges, and the result never
// depends on the schedule.
//
// Explicit zeros produced by cancellation are kept unless WithPruneZeros is
// given; the policy is the same for every kernel. Operands are assumed to be
// well formed; WithValidateInput turns the CSR invariants into checked
// preconditions.
//
// Quick example:
//
//	A, _ := csr.FromDense([][]float64{{1, 2, 0}, {0, 3, 4}})
//	B, _ := csr.FromDense([][]float64{{1, 0}, {0, 1}, {1, 0}})
//	C, _ := csr.MultiplySaad(A, B) // [[1 2] [4 3]]
package csr
