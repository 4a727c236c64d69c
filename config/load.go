package config

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/rs/zerolog"
	"github.com/spf13/viper"
)

// newViperInstance creates a Viper instance with the DSA_ environment
// prefix, the key replacer, and the defaults.
func newViperInstance() *viper.Viper {
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix("DSA")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// setDefaults configures all default values on the Viper instance.
// Keys must match the mapstructure tag names, otherwise environment
// variables are not picked up by Unmarshal.
func setDefaults(v *viper.Viper) {
	def := DefaultConfig()
	v.SetDefault("sizes", def.Sizes)
	v.SetDefault("weak", def.Weak)
	v.SetDefault("hash", def.Hash)

	v.SetDefault("search.max_attempts", def.Search.MaxAttempts)
	v.SetDefault("search.workers", def.Search.Workers)
	v.SetDefault("search.timeout", def.Search.Timeout.String())
}

// Load reads the configuration from defaults, the YAML file at path
// (skipped if path is empty or the file does not exist), and DSA_*
// environment variables, then validates it.
func Load(ctx context.Context, path string) (*Config, error) {
	v := newViperInstance()
	logger := zerolog.Ctx(ctx).With().Str("component", "config").Logger()

	if path != "" {
		if fileExists(path) {
			v.SetConfigFile(path)
			if err := v.ReadInConfig(); err != nil {
				return nil, fmt.Errorf("failed to read config %s: %w", path, err)
			}
		} else {
			logger.Debug().Str("path", path).Msg("config file not found, using defaults")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg, viperDecoderOption()); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	logger.Debug().
		Str("sizes", cfg.Sizes).
		Bool("weak", cfg.Weak).
		Str("hash", cfg.Hash).
		Int("search.max_attempts", cfg.Search.MaxAttempts).
		Int("search.workers", cfg.Search.Workers).
		Dur("search.timeout", cfg.Search.Timeout).
		Msg("configuration loaded and unmarshaled")

	if err := Validate(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

// viperDecoderOption returns the decoder options for Viper unmarshal,
// so that durations can be written as strings ("30s").
func viperDecoderOption() viper.DecoderConfigOption {
	return viper.DecodeHook(
		mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
		),
	)
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
