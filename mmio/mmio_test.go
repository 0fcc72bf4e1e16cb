// SPDX-License-Identifier: MIT

package mmio_test

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/katalvlaran/csrkit/csr"
	"github.com/katalvlaran/csrkit/mmio"
	"github.com/stretchr/testify/require"
)

// stiffness is a small symmetric system matrix in lower-triangle storage.
const stiffness = `%%MatrixMarket matrix coordinate real symmetric
% 1D bar, 4 nodes
4 4 7
1 1 2.0
2 1 -1.0
2 2 2.0
3 2 -1.0
3 3 2.0
4 3 -1.0
4 4 1.0
`

func TestRead_SymmetricExpandsMirror(t *testing.T) {
	t.Parallel()

	m, err := mmio.Read(strings.NewReader(stiffness))
	require.NoError(t, err)
	require.NoError(t, csr.Validate(m))
	require.Equal(t, [][]float64{
		{2, -1, 0, 0},
		{-1, 2, -1, 0},
		{0, -1, 2, -1},
		{0, 0, -1, 1},
	}, m.ToDense())
}

func TestRead_GeneralPatternSkewAndDuplicates(t *testing.T) {
	t.Parallel()

	general := "%%MatrixMarket matrix coordinate integer general\n2 3 3\n1 3 4\n2 1 5\n1 3 1\n"
	m, err := mmio.Read(strings.NewReader(general))
	require.NoError(t, err)
	require.Equal(t, [][]float64{{0, 0, 5}, {5, 0, 0}}, m.ToDense())

	pattern := "%%MatrixMarket matrix coordinate pattern general\n2 2 2\n1 1\n2 2\n"
	m, err = mmio.Read(strings.NewReader(pattern))
	require.NoError(t, err)
	require.Equal(t, [][]float64{{1, 0}, {0, 1}}, m.ToDense())

	skew := "%%MatrixMarket matrix coordinate real skew-symmetric\n2 2 1\n2 1 3\n"
	m, err = mmio.Read(strings.NewReader(skew))
	require.NoError(t, err)
	require.Equal(t, [][]float64{{0, -3}, {3, 0}}, m.ToDense())
}

func TestRead_ArrayColumnMajor(t *testing.T) {
	t.Parallel()

	array := "%%MatrixMarket matrix array real general\n% c\n2 3\n1\n0\n2\n4\n0\n5\n"
	m, err := mmio.Read(strings.NewReader(array))
	require.NoError(t, err)
	require.Equal(t, [][]float64{{1, 2, 0}, {0, 4, 5}}, m.ToDense())
	require.Equal(t, 4, m.Nnz())
}

func TestRead_Errors(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name  string
		input string
		want  error
	}{
		{"empty", "", mmio.ErrHeader},
		{"no banner", "2 2 0\n", mmio.ErrHeader},
		{"bad format", "%%MatrixMarket matrix sparse real general\n", mmio.ErrHeader},
		{"complex", "%%MatrixMarket matrix coordinate complex general\n", mmio.ErrUnsupported},
		{"hermitian", "%%MatrixMarket matrix coordinate real hermitian\n", mmio.ErrUnsupported},
		{"symmetric array", "%%MatrixMarket matrix array real symmetric\n", mmio.ErrUnsupported},
		{"no size", "%%MatrixMarket matrix coordinate real general\n% only comments\n", mmio.ErrFormat},
		{"short size", "%%MatrixMarket matrix coordinate real general\n2 2\n", mmio.ErrFormat},
		{"index range", "%%MatrixMarket matrix coordinate real general\n2 2 1\n3 1 1\n", mmio.ErrFormat},
		{"bad value", "%%MatrixMarket matrix coordinate real general\n2 2 1\n1 1 x\n", mmio.ErrFormat},
		{"too few", "%%MatrixMarket matrix coordinate real general\n2 2 2\n1 1 1\n", mmio.ErrFormat},
		{"too many", "%%MatrixMarket matrix coordinate real general\n2 2 1\n1 1 1\n2 2 1\n", mmio.ErrFormat},
		{"symmetric rect", "%%MatrixMarket matrix coordinate real symmetric\n2 3 0\n", mmio.ErrFormat},
		{"array short", "%%MatrixMarket matrix array real general\n2 1\n1\n", mmio.ErrFormat},
		{"huge nnz", "%%MatrixMarket matrix coordinate real general\n2 2 9223372036854775807\n1 1 1\n", mmio.ErrFormat},
		{"nnz over cells", "%%MatrixMarket matrix coordinate real general\n2 2 5\n1 1 1\n", mmio.ErrFormat},
		{"huge symmetric nnz", "%%MatrixMarket matrix coordinate real symmetric\n2 2 9223372036854775807\n1 1 1\n", mmio.ErrFormat},
		{"array overflow", "%%MatrixMarket matrix array real general\n9223372036854775807 2\n1\n", mmio.ErrFormat},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			_, err := mmio.Read(strings.NewReader(tc.input))
			require.ErrorIs(t, err, tc.want)
		})
	}
}

func TestWriteReadRoundTrip(t *testing.T) {
	t.Parallel()

	m, err := csr.FromTriplets(3, 4, []csr.Triplet{
		{Row: 0, Col: 3, Val: 0.1},
		{Row: 2, Col: 0, Val: -1e-300},
		{Row: 2, Col: 2, Val: 1.0 / 3.0},
	})
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, mmio.Write(&buf, m))
	require.True(t, strings.HasPrefix(buf.String(), "%%MatrixMarket matrix coordinate real general\n3 4 3\n1 4 0.1\n"))

	back, err := mmio.Read(&buf)
	require.NoError(t, err)
	require.True(t, csr.Equal(m, back))
	require.Equal(t, m.ColIdx(), back.ColIdx())

	path := filepath.Join(t.TempDir(), "m.mtx")
	require.NoError(t, mmio.WriteFile(path, m))
	fromFile, err := mmio.ReadFile(path)
	require.NoError(t, err)
	require.True(t, csr.Equal(m, fromFile))

	_, err = mmio.ReadFile(filepath.Join(t.TempDir(), "missing.mtx"))
	require.Error(t, err)
}

// TestSystemMatrixProducts mirrors the loader-driven cross-check: read a
// system matrix, then verify A+A and A·A with both kernels.
func TestSystemMatrixProducts(t *testing.T) {
	t.Parallel()

	A, err := mmio.Read(strings.NewReader(stiffness))
	require.NoError(t, err)
	B := A.Clone()

	require.NoError(t, csr.AddInPlace(A, B, 1.0))
	want := [][]float64{
		{4, -2, 0, 0},
		{-2, 4, -2, 0},
		{0, -2, 4, -2},
		{0, 0, -2, 2},
	}
	require.Equal(t, want, A.ToDense())

	saad, err := csr.MultiplySaad(B, B)
	require.NoError(t, err)
	rmerge, err := csr.MultiplyRMerge(B, B)
	require.NoError(t, err)
	ok, err := csr.AllClose(saad, rmerge, 1e-3)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, [][]float64{
		{5, -4, 1, 0},
		{-4, 6, -4, 1},
		{1, -4, 6, -3},
		{0, 1, -3, 2},
	}, saad.ToDense())
}
