// SPDX-License-Identifier: MIT

package main

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/katalvlaran/csrkit/csr"
	"github.com/katalvlaran/csrkit/mmio"
	"github.com/spf13/cobra"
)

// errDisagree makes verify exit non-zero when the kernels differ.
var errDisagree = errors.New("saad and rmerge results differ")

// app carries the state shared by every subcommand after PersistentPreRunE.
type app struct {
	configPath string
	verbose    bool

	cfg    Config
	logger *slog.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:   "csrkit",
		Short: "Sparse CSR addition and multiplication on Matrix Market files",
		Long: `csrkit loads matrices in Matrix Market format and runs the CSR kernels:
sparse addition, Saad (SMMP) and RMerge multiplication, and a cross-check
of the two multiplication algorithms.`,
		SilenceUsage:      true,
		PersistentPreRunE: a.setup,
	}
	root.PersistentFlags().StringVar(&a.configPath, "config", "", "YAML config file")
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "log kernel timings to stderr")

	root.AddCommand(a.infoCmd(), a.addCmd(), a.mulCmd(), a.verifyCmd())

	return root
}

// setup loads the config and builds the logger.
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(a.configPath)
	if err != nil {
		return err
	}
	a.cfg = cfg

	level := slog.LevelWarn
	if a.verbose {
		level = slog.LevelDebug
	}
	a.logger = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))

	return nil
}

func (a *app) infoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "info M.mtx",
		Short: "Print shape and sparsity of a matrix",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := mmio.ReadFile(args[0])
			if err != nil {
				return err
			}
			density := 0.0
			if m.Rows() > 0 && m.Cols() > 0 {
				density = float64(m.Nnz()) / (float64(m.Rows()) * float64(m.Cols()))
			}
			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "rows: %d\n", m.Rows())
			fmt.Fprintf(w, "cols: %d\n", m.Cols())
			fmt.Fprintf(w, "nnz: %d\n", m.Nnz())
			fmt.Fprintf(w, "max row nnz: %d\n", m.MaxRowNnz())
			fmt.Fprintf(w, "density: %.6g\n", density)

			return nil
		},
	}
}

func (a *app) addCmd() *cobra.Command {
	var (
		alpha float64
		out   string
	)
	cmd := &cobra.Command{
		Use:   "add A.mtx B.mtx",
		Short: "Compute A + alpha*B",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			A, B, err := readPair(args)
			if err != nil {
				return err
			}
			start := time.Now()
			C, err := csr.Add(A, B, alpha, a.cfg.kernelOptions(a.logger)...)
			if err != nil {
				return err
			}
			a.logger.Info("add", "alpha", alpha, "nnz", C.Nnz(), "elapsed", time.Since(start))

			return writeResult(cmd, out, C)
		},
	}
	cmd.Flags().Float64Var(&alpha, "alpha", 1, "scale applied to B")
	cmd.Flags().StringVarP(&out, "output", "o", "", "output file (default stdout)")

	return cmd
}

func (a *app) mulCmd() *cobra.Command {
	var (
		algo string
		out  string
	)
	cmd := &cobra.Command{
		Use:   "mul A.mtx B.mtx",
		Short: "Compute A*B",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := a.cfg.Algorithm
			if cmd.Flags().Changed("algo") {
				name = algo
			}
			alg, err := csr.ParseAlgorithm(name)
			if err != nil {
				return err
			}
			A, B, err := readPair(args)
			if err != nil {
				return err
			}
			start := time.Now()
			C, err := csr.Multiply(A, B, alg, a.cfg.kernelOptions(a.logger)...)
			if err != nil {
				return err
			}
			a.logger.Info("mul", "algorithm", alg, "nnz", C.Nnz(), "elapsed", time.Since(start))

			return writeResult(cmd, out, C)
		},
	}
	cmd.Flags().StringVar(&algo, "algo", "", "saad | rmerge (default from config, else saad)")
	cmd.Flags().StringVarP(&out, "output", "o", "", "output file (default stdout)")

	return cmd
}

func (a *app) verifyCmd() *cobra.Command {
	var tol float64
	cmd := &cobra.Command{
		Use:   "verify A.mtx B.mtx",
		Short: "Multiply with both algorithms and compare the results",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("tol") {
				tol = a.cfg.Tolerance
			}
			A, B, err := readPair(args)
			if err != nil {
				return err
			}
			opts := a.cfg.kernelOptions(a.logger)
			w := cmd.OutOrStdout()

			results := make([]*csr.Matrix, 0, 2)
			for _, alg := range []csr.Algorithm{csr.Saad, csr.RMerge} {
				start := time.Now()
				C, err := csr.Multiply(A, B, alg, opts...)
				if err != nil {
					return err
				}
				fmt.Fprintf(w, "%-6s %dx%d nnz=%d in %s\n", alg, C.Rows(), C.Cols(), C.Nnz(), time.Since(start))
				results = append(results, C)
			}

			ok, err := csr.AllClose(results[0], results[1], tol)
			if err != nil {
				return err
			}
			if !ok {
				fmt.Fprintf(w, "MISMATCH (tol=%g)\n", tol)
				return errDisagree
			}
			fmt.Fprintf(w, "OK (tol=%g)\n", tol)

			return nil
		},
	}
	cmd.Flags().Float64Var(&tol, "tol", 0, "relative tolerance (default from config, else 1e-3)")

	return cmd
}

func readPair(args []string) (*csr.Matrix, *csr.Matrix, error) {
	A, err := mmio.ReadFile(args[0])
	if err != nil {
		return nil, nil, err
	}
	B, err := mmio.ReadFile(args[1])
	if err != nil {
		return nil, nil, err
	}

	return A, B, nil
}

// writeResult writes m to path, or to the command's stdout when path is empty.
func writeResult(cmd *cobra.Command, path string, m *csr.Matrix) error {
	if path == "" {
		return mmio.Write(cmd.OutOrStdout(), m)
	}

	return mmio.WriteFile(path, m)
}
