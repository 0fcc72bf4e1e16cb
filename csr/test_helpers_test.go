// SPDX-License-Identifier: MIT
// Package csr_test contains test helpers.
//
// Purpose:
//   • Provide small, deterministic fixtures (dense literals, seeded random
//     sparse matrices) and dense reference kernels to check results against.

package csr_test

import (
	"math/rand"
	"testing"

	"github.com/katalvlaran/csrkit/csr"
	"github.com/stretchr/testify/require"
)

// Tolerances used by cross-checks. They mirror the reference comparisons
// the kernels are validated against and are not algorithmic constants.
const (
	tolTight = 1e-9
	tolLoose = 1e-3
)

// MustCSR builds a CSR matrix from a dense literal or fails the test.
func MustCSR(t testing.TB, dense [][]float64) *csr.Matrix {
	t.Helper()
	m, err := csr.FromDense(dense)
	require.NoError(t, err)

	return m
}

// MustZero builds an empty rows×cols matrix or fails the test.
func MustZero(t testing.TB, rows, cols int) *csr.Matrix {
	t.Helper()
	m, err := csr.NewZero(rows, cols)
	require.NoError(t, err)

	return m
}

// RandomSparse returns a rows×cols matrix where each position is stored with
// probability density, values uniform in [-1, 1). Deterministic for a seed.
func RandomSparse(t testing.TB, seed int64, rows, cols int, density float64) *csr.Matrix {
	t.Helper()
	rng := rand.New(rand.NewSource(seed))
	var entries []csr.Triplet
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			if rng.Float64() < density {
				entries = append(entries, csr.Triplet{Row: i, Col: j, Val: 2*rng.Float64() - 1})
			}
		}
	}
	m, err := csr.FromTriplets(rows, cols, entries)
	require.NoError(t, err)

	return m
}

// DenseMul is the reference product on dense arrays.
func DenseMul(a, b [][]float64, n int) [][]float64 {
	out := make([][]float64, len(a))
	for i := range a {
		out[i] = make([]float64, n)
		for k, aik := range a[i] {
			if aik == 0 {
				continue
			}
			for j := 0; j < n; j++ {
				out[i][j] += aik * b[k][j]
			}
		}
	}

	return out
}

// RequireCanonical asserts the CSR invariants on m.
func RequireCanonical(t testing.TB, m *csr.Matrix) {
	t.Helper()
	require.NoError(t, csr.Validate(m))
}

// RequireDenseClose asserts m equals want entrywise within tol·max(1,|want|).
func RequireDenseClose(t testing.TB, want [][]float64, m *csr.Matrix, tol float64) {
	t.Helper()
	require.Equal(t, len(want), m.Rows(), "rows")
	got := m.ToDense()
	for i := range want {
		require.Equal(t, len(want[i]), m.Cols(), "cols")
		for j := range want[i] {
			scale := max(1, abs(want[i][j]))
			require.InDeltaf(t, want[i][j], got[i][j], tol*scale, "entry (%d,%d)", i, j)
		}
	}
}

func abs(x float64) float64 {
	if x < 0 {
		return -x
	}

	return x
}
