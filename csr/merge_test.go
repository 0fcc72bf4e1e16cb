// SPDX-License-Identifier: MIT

package csr_test

import (
	"testing"

	"github.com/katalvlaran/csrkit/csr"
	"github.com/stretchr/testify/require"
)

// --- mergeRows / mergeCount ---------------------------------------------------

func TestMergeRows_InterleavedAndDrain(t *testing.T) {
	t.Parallel()

	cols, vals := csr.MergeRows_TestOnly(
		[]int{0, 3, 5, 9}, []float64{1, 2, 3, 4}, 1,
		[]int{1, 3, 10, 11}, []float64{10, 20, 30, 40}, -0.5,
	)
	require.Equal(t, []int{0, 1, 3, 5, 9, 10, 11}, cols)
	require.Equal(t, []float64{1, -5, 2 - 10, 3, 4, -15, -20}, vals)
	require.Equal(t, len(cols), csr.MergeCount_TestOnly([]int{0, 3, 5, 9}, []int{1, 3, 10, 11}))
}

func TestMergeRows_EmptySides(t *testing.T) {
	t.Parallel()

	cols, vals := csr.MergeRows_TestOnly(nil, nil, 1, []int{2, 4}, []float64{1, 2}, 3)
	require.Equal(t, []int{2, 4}, cols)
	require.Equal(t, []float64{3, 6}, vals)

	cols, vals = csr.MergeRows_TestOnly([]int{7}, []float64{5}, 2, nil, nil, 1)
	require.Equal(t, []int{7}, cols)
	require.Equal(t, []float64{10}, vals)

	cols, _ = csr.MergeRows_TestOnly(nil, nil, 1, nil, nil, 1)
	require.Empty(t, cols)
	require.Zero(t, csr.MergeCount_TestOnly(nil, nil))
}

func TestMergeCount_IdenticalPatterns(t *testing.T) {
	t.Parallel()
	x := []int{1, 2, 3, 8}
	require.Equal(t, 4, csr.MergeCount_TestOnly(x, x))
}

// --- accumulator --------------------------------------------------------------

func TestAccumulator_SortedDrainAndReset(t *testing.T) {
	t.Parallel()

	rows := [][]csr.Triplet{
		{{Col: 5, Val: 1}, {Col: 2, Val: 1}, {Col: 5, Val: 2}, {Col: 0, Val: -1}},
		{}, // reset must forget the previous row entirely
		{{Col: 2, Val: 4}},
		{{Col: 9, Val: 1}, {Col: 9, Val: -1}},
	}
	cols, vals := csr.AccumulatorRows_TestOnly(10, rows)

	require.Equal(t, []int{0, 2, 5}, cols[0])
	require.Equal(t, []float64{-1, 1, 3}, vals[0])
	require.Empty(t, cols[1])
	require.Equal(t, []int{2}, cols[2])
	require.Equal(t, []float64{4}, vals[2], "stale sum from row 0 must not leak")
	require.Equal(t, []int{9}, cols[3])
	require.Equal(t, []float64{0}, vals[3], "cancellation keeps the column")
}

// --- block planning -----------------------------------------------------------

func TestPlanBlocks_CoversRowsInOrder(t *testing.T) {
	t.Parallel()

	cases := []struct {
		rows, workers, minRows int
	}{
		{0, 4, 1},
		{1, 4, 1},
		{10, 1, 1},
		{10, 4, 1},
		{1000, 3, 64},
		{63, 8, 64},
		{1001, 16, 7},
	}
	for _, tc := range cases {
		blocks := csr.PlanBlocks_TestOnly(tc.rows, csr.WithWorkers(tc.workers), csr.WithMinRowsPerTask(tc.minRows))
		if tc.rows == 0 {
			require.Empty(t, blocks)
			continue
		}
		require.LessOrEqual(t, len(blocks), tc.workers*4)
		next := 0
		for _, b := range blocks {
			require.Equal(t, next, b[0], "contiguous")
			require.Greater(t, b[1], b[0], "non-empty")
			next = b[1]
		}
		require.Equal(t, tc.rows, next, "covers all rows")
	}
}
