// SPDX-License-Identifier: MIT
// Package: csr
//
// Purpose:
//   - Row-parallel scheduling shared by every kernel.
//
// Design:
//   - [0, rows) is cut into contiguous blocks of at least minRowsPerTask
//     rows; blocks run through an errgroup bounded by the worker count.
//   - A block is processed sequentially by one goroutine, so any scratch the
//     callback allocates (accumulators, merge buffers) is private to it.
//   - Callbacks write only to row ranges they own; the result layout never
//     depends on scheduling.

package csr

import (
	"golang.org/x/sync/errgroup"
)

// tasksPerWorker oversubscribes blocks so uneven rows still balance.
const tasksPerWorker = 4

// rowBlock is a half-open row range [lo, hi).
type rowBlock struct {
	lo, hi int
}

// planBlocks splits [0, rows) into contiguous blocks in row order.
// Complexity: O(number of blocks).
func planBlocks(rows int, o Options) []rowBlock {
	if rows <= 0 {
		return nil
	}
	n := min(o.workers*tasksPerWorker, (rows+o.minRowsPerTask-1)/o.minRowsPerTask)
	n = max(n, 1)
	size := (rows + n - 1) / n

	blocks := make([]rowBlock, 0, n)
	for lo := 0; lo < rows; lo += size {
		blocks = append(blocks, rowBlock{lo: lo, hi: min(lo+size, rows)})
	}

	return blocks
}

// forEachBlock runs fn once per block, concurrently when there is more than
// one block and more than one worker. fn receives the block's index in
// blocks, which callers use to address per-block output slots.
func forEachBlock(blocks []rowBlock, o Options, fn func(b int, blk rowBlock)) {
	if len(blocks) == 0 {
		return
	}
	if len(blocks) == 1 || o.workers == 1 {
		for b, blk := range blocks {
			fn(b, blk)
		}
		return
	}

	var g errgroup.Group
	g.SetLimit(o.workers)
	for b, blk := range blocks {
		b, blk := b, blk
		g.Go(func() error {
			fn(b, blk)
			return nil
		})
	}
	_ = g.Wait() // callbacks do not fail
}

// prefixSum turns per-row counts (stored at counts[i+1]) into row offsets in
// place and returns the total.
func prefixSum(rowPtr []int) int {
	for i := 1; i < len(rowPtr); i++ {
		rowPtr[i] += rowPtr[i-1]
	}

	return rowPtr[len(rowPtr)-1]
}
