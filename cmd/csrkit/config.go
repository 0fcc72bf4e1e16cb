// SPDX-License-Identifier: MIT

package main

import (
	"fmt"
	"log/slog"
	"math"
	"os"

	"github.com/katalvlaran/csrkit/csr"
	"gopkg.in/yaml.v3"
)

// Config is the optional YAML configuration passed with --config.
//
//	workers: 8          # 0 = GOMAXPROCS
//	prune_zeros: false  # drop exact zeros from results
//	validate: true      # check CSR invariants of inputs
//	tolerance: 1e-3     # verify: entrywise tolerance
//	algorithm: rmerge   # mul: saad | rmerge
type Config struct {
	Workers    int     `yaml:"workers"`
	PruneZeros bool    `yaml:"prune_zeros"`
	Validate   bool    `yaml:"validate"`
	Tolerance  float64 `yaml:"tolerance"`
	Algorithm  string  `yaml:"algorithm"`
}

// defaultConfig mirrors the kernel defaults; loaded matrices are validated.
func defaultConfig() Config {
	return Config{
		Workers:    csr.DefaultWorkers,
		PruneZeros: csr.DefaultPruneZeros,
		Validate:   true,
		Tolerance:  1e-3,
		Algorithm:  csr.Saad.String(),
	}
}

// loadConfig reads path over the defaults. An empty path yields the defaults.
func loadConfig(path string) (Config, error) {
	cfg := defaultConfig()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("reading config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config %s: %w", path, err)
	}
	if err := cfg.validate(); err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}

	return cfg, nil
}

func (c Config) validate() error {
	if c.Workers < 0 {
		return fmt.Errorf("workers must be >= 0, got %d", c.Workers)
	}
	if c.Tolerance < 0 || math.IsNaN(c.Tolerance) {
		return fmt.Errorf("tolerance must be a number >= 0, got %g", c.Tolerance)
	}
	if _, err := csr.ParseAlgorithm(c.Algorithm); err != nil {
		return err
	}

	return nil
}

// kernelOptions translates the config into csr options.
func (c Config) kernelOptions(logger *slog.Logger) []csr.Option {
	opts := []csr.Option{csr.WithWorkers(c.Workers), csr.WithLogger(logger)}
	if c.PruneZeros {
		opts = append(opts, csr.WithPruneZeros())
	}
	if c.Validate {
		opts = append(opts, csr.WithValidateInput())
	}

	return opts
}
