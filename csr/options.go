// SPDX-License-Identifier: MIT

// Package csr: functional configuration for the sparse kernels.
// This file defines:
//   - Option / Options (functional options with internal state),
//   - documented defaults (constants),
//   - WithX constructors with strong validation (panic on nonsensical values),
//   - gatherOptions helper (internal) that enforces invariants.
//
// Design goals:
//   - Deterministic output: options change scheduling, never the result layout.
//   - No dead switches: each flag impacts behavior and is covered by tests.
//   - Safe by construction: panic only on invalid parameters (programmer error).
//
// Notes:
//   - Zero pruning is the single numeric policy switch. It is applied the same
//     way by Add, MultiplySaad and MultiplyRMerge, so the sparsity pattern of a
//     result never depends on which kernel produced it.
//   - Input validation is off by default: well-formed CSR input is a
//     precondition, not a runtime-checked contract.
package csr

import (
	"io"
	"log/slog"
	"runtime"
)

// ---------- Defaults (single source of truth) ----------

const (
	// DefaultWorkers selects runtime.GOMAXPROCS(0) workers when 0.
	DefaultWorkers = 0

	// DefaultMinRowsPerTask is the smallest row block handed to one worker.
	// Small matrices therefore run on a single goroutine.
	DefaultMinRowsPerTask = 64

	// DefaultPruneZeros keeps entries whose accumulated value is exactly 0.
	DefaultPruneZeros = false

	// DefaultValidateInput skips the O(nnz) invariant scan of operands.
	DefaultValidateInput = false
)

// ---------- Internal panic messages (no magic strings) ----------

const (
	panicWorkersInvalid = "csr: WithWorkers: n must be >= 0"
	panicMinRowsInvalid = "csr: WithMinRowsPerTask: n must be > 0"
	panicLoggerInvalid  = "csr: WithLogger: logger must be non-nil"
)

// ---------- Public option type (functional) ----------

// Option mutates internal options. Safe to apply repeatedly (idempotent).
type Option func(*Options)

// Options stores the effective configuration after applying Option setters.
// Fields are unexported; public entry points accept `...Option`.
type Options struct {
	workers        int          // >= 0; 0 means GOMAXPROCS
	minRowsPerTask int          // > 0
	pruneZeros     bool         // drop exact zeros from results
	validateInput  bool         // run Validate on operands before work
	logger         *slog.Logger // never nil after gatherOptions
}

// WithWorkers bounds the number of goroutines a kernel may use.
// n == 0 restores the default (GOMAXPROCS); n == 1 forces sequential runs.
//
// Complexity: O(1).
func WithWorkers(n int) Option {
	if n < 0 {
		panic(panicWorkersInvalid)
	}

	return func(o *Options) { o.workers = n }
}

// WithMinRowsPerTask sets the minimum number of consecutive rows per task.
// Larger values cut scheduling overhead for short rows.
func WithMinRowsPerTask(n int) Option {
	if n <= 0 {
		panic(panicMinRowsInvalid)
	}

	return func(o *Options) { o.minRowsPerTask = n }
}

// WithPruneZeros drops result entries whose value is exactly 0 (e.g. from
// cancellation in a + alpha*b or in a sum of products). NaN is never pruned.
func WithPruneZeros() Option {
	return func(o *Options) { o.pruneZeros = true }
}

// WithValidateInput runs Validate on every operand before any work starts and
// reports ErrInvariantViolation on malformed storage.
//
// Complexity: adds O(rows + nnz) per operand.
func WithValidateInput() Option {
	return func(o *Options) { o.validateInput = true }
}

// WithLogger routes kernel debug records to l.
func WithLogger(l *slog.Logger) Option {
	if l == nil {
		panic(panicLoggerInvalid)
	}

	return func(o *Options) { o.logger = l }
}

// discardLogger is shared by every call that did not ask for logging.
var discardLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

// defaultOptions returns the documented defaults.
func defaultOptions() Options {
	return Options{
		workers:        DefaultWorkers,
		minRowsPerTask: DefaultMinRowsPerTask,
		pruneZeros:     DefaultPruneZeros,
		validateInput:  DefaultValidateInput,
		logger:         discardLogger,
	}
}

// gatherOptions applies opts over the defaults and resolves derived values.
func gatherOptions(opts ...Option) Options {
	o := defaultOptions()
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	if o.workers == 0 {
		o.workers = runtime.GOMAXPROCS(0)
	}

	return o
}

// Workers reports the resolved worker bound.
func (o Options) Workers() int { return o.workers }

// PruneZeros reports whether exact zeros are dropped.
func (o Options) PruneZeros() bool { return o.pruneZeros }

// ResolveOptions exposes the effective configuration for a set of options.
// Useful for callers that want to log or display the policy in force.
func ResolveOptions(opts ...Option) Options { return gatherOptions(opts...) }
