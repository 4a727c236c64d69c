// Package config provides layered configuration for DSA parameter
// generation.
//
// Configuration sources are loaded in the following order (highest
// precedence first):
//  1. Environment variables (DSA_* prefix, e.g. DSA_SEARCH_WORKERS)
//  2. Config file (YAML), if a path is given and the file exists
//  3. Built-in defaults
//
// A loaded Config selects the parameter sizes, the hash function, and
// the search budget, and can generate domain parameters directly.
package config

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/pornin/go-dsa/dsa"
)

// Config is the root configuration structure.
type Config struct {
	// Sizes is the (L, N) pair, written "L/N" (e.g. "2048/256") or
	// "LxNy" (e.g. "L2048N256").
	// Default: "2048/256"
	Sizes string `yaml:"sizes" mapstructure:"sizes"`

	// Weak allows non-standard sizes. Such parameters are for research
	// and tests only.
	// Default: false
	Weak bool `yaml:"weak" mapstructure:"weak"`

	// Hash is the name of the hash function (e.g. "sha256", "sha3-256").
	// Empty selects the default for N.
	// Default: ""
	Hash string `yaml:"hash" mapstructure:"hash"`

	// Search controls the randomized searches for q, p and g.
	Search SearchConfig `yaml:"search" mapstructure:"search"`
}

// SearchConfig bounds the randomized searches.
type SearchConfig struct {
	// MaxAttempts is the attempt budget per search (0 for the library
	// default).
	MaxAttempts int `yaml:"max_attempts" mapstructure:"max_attempts"`

	// Workers is the number of concurrent search workers; 0 or 1 runs
	// the reproducible sequential search.
	Workers int `yaml:"workers" mapstructure:"workers"`

	// Timeout bounds each generation call (0 for no limit).
	Timeout time.Duration `yaml:"timeout" mapstructure:"timeout"`
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() *Config {
	return &Config{
		Sizes: "2048/256",
	}
}

// Bits parses Sizes into (L, N). Unless Weak is set, the pair must be
// one of the standard sizes.
func (c *Config) Bits() (int, int, error) {
	L, N, err := parseSizes(c.Sizes)
	if err != nil {
		return 0, 0, err
	}
	if c.Weak {
		err = dsa.CheckWeakSizes(L, N)
	} else {
		_, err = dsa.ParseParameterSizes(L, N)
	}
	if err != nil {
		return 0, 0, fmt.Errorf("%w: sizes: %w", ErrInvalidConfig, err)
	}
	return L, N, nil
}

func parseSizes(s string) (int, int, error) {
	var L, N int
	s = strings.TrimSpace(s)
	if _, err := fmt.Sscanf(s, "%d/%d", &L, &N); err == nil && fmt.Sprintf("%d/%d", L, N) == s {
		return L, N, nil
	}
	up := strings.ToUpper(s)
	if _, err := fmt.Sscanf(up, "L%dN%d", &L, &N); err == nil && fmt.Sprintf("L%dN%d", L, N) == up {
		return L, N, nil
	}
	return 0, 0, fmt.Errorf("%w: sizes must look like \"2048/256\", got %q",
		ErrInvalidConfig, s)
}

// HashFunc resolves Hash; nil means the default hash for N.
func (c *Config) HashFunc() (*dsa.Hash, error) {
	if c.Hash == "" {
		return nil, nil
	}
	h, err := dsa.HashByName(c.Hash)
	if err != nil {
		return nil, fmt.Errorf("%w: hash: %w", ErrInvalidConfig, err)
	}
	return h, nil
}

// Options converts the search settings.
func (c *Config) Options() *dsa.Options {
	return &dsa.Options{
		MaxAttempts: c.Search.MaxAttempts,
		Workers:     c.Search.Workers,
		Timeout:     c.Search.Timeout,
	}
}

// GenerateParameters validates the configuration and generates domain
// parameters with it. rng may be nil to use the OS RNG.
func (c *Config) GenerateParameters(ctx context.Context, rng io.Reader) (*dsa.DomainParameters, error) {
	if err := Validate(c); err != nil {
		return nil, err
	}
	L, N, err := c.Bits()
	if err != nil {
		return nil, err
	}
	h, err := c.HashFunc()
	if err != nil {
		return nil, err
	}

	zerolog.Ctx(ctx).Debug().
		Str("component", "config").
		Int("L", L).
		Int("N", N).
		Bool("weak", c.Weak).
		Int("workers", c.Search.Workers).
		Msg("generating domain parameters")

	if c.Weak {
		return dsa.GenerateParametersWeak(ctx, rng, L, N, h, c.Options())
	}
	sizes, err := dsa.ParseParameterSizes(L, N)
	if err != nil {
		return nil, err
	}
	return dsa.GenerateParameters(ctx, rng, sizes, h, c.Options())
}
