package config

import "fmt"

// Validate checks the configuration for invalid or inconsistent values.
// It returns an error describing the first validation failure found.
//
// Validation rules:
//   - sizes must parse, and be a standard pair unless weak is set
//   - hash must name a known function with at least N output bits
//   - search values must not be negative
func Validate(cfg *Config) error {
	if cfg == nil {
		return ErrConfigNil
	}

	_, N, err := cfg.Bits()
	if err != nil {
		return err
	}

	h, err := cfg.HashFunc()
	if err != nil {
		return err
	}
	if h != nil && h.Size()*8 < N {
		return fmt.Errorf("%w: hash %s has %d output bits, N=%d needs more",
			ErrInvalidConfig, h.Name(), h.Size()*8, N)
	}

	return validateSearchConfig(&cfg.Search)
}

// validateSearchConfig checks the search budget values.
func validateSearchConfig(cfg *SearchConfig) error {
	if cfg.MaxAttempts < 0 {
		return fmt.Errorf("%w: search.max_attempts must not be negative, got %d",
			ErrInvalidConfig, cfg.MaxAttempts)
	}
	if cfg.Workers < 0 {
		return fmt.Errorf("%w: search.workers must not be negative, got %d",
			ErrInvalidConfig, cfg.Workers)
	}
	if cfg.Timeout < 0 {
		return fmt.Errorf("%w: search.timeout must not be negative, got %s",
			ErrInvalidConfig, cfg.Timeout)
	}
	return nil
}
