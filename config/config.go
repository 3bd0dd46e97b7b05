// Package config loads dexmodel settings from TOML files.
package config

import (
	"fmt"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/wippyai/dexmodel/dex"
	"github.com/wippyai/dexmodel/errors"
)

// Config is the file form of dex.Options plus logging settings.
type Config struct {
	Log              Log  `toml:"log"`
	MaxDepth         int  `toml:"max_depth"`
	TypeCacheSize    int  `toml:"type_cache_size"`
	Workers          int  `toml:"workers"`
	ValidateOrdering bool `toml:"validate_ordering"`
	VerifyPrototypes bool `toml:"verify_prototypes"`
}

// Log configures the zap logger.
type Log struct {
	// Level is a zap level name: debug, info, warn, error.
	Level       string `toml:"level"`
	Development bool   `toml:"development"`
}

// Default returns the configuration matching dex.DefaultOptions.
func Default() Config {
	opts := dex.DefaultOptions()
	return Config{
		MaxDepth:         opts.MaxDepth,
		ValidateOrdering: opts.ValidateOrdering,
		VerifyPrototypes: opts.VerifyPrototypes,
		TypeCacheSize:    opts.TypeCacheSize,
		Workers:          opts.Workers,
		Log:              Log{Level: "info"},
	}
}

// Load reads a TOML file. Keys absent from the file keep their defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, errors.Wrap(errors.PhaseConfig, errors.KindInvalidInput, err, "read "+path)
	}
	return finish(cfg, md)
}

// Parse decodes TOML text.
func Parse(data string) (Config, error) {
	cfg := Default()
	md, err := toml.Decode(data, &cfg)
	if err != nil {
		return Config{}, errors.Wrap(errors.PhaseConfig, errors.KindInvalidInput, err, "parse config")
	}
	return finish(cfg, md)
}

func finish(cfg Config, md toml.MetaData) (Config, error) {
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		sort.Strings(keys)
		return Config{}, errors.InvalidInput(errors.PhaseConfig,
			"unknown keys: "+strings.Join(keys, ", "))
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects negative limits, a max_depth above dex.MaxAllowedDepth
// and unknown log levels.
func (c Config) Validate() error {
	for _, f := range []struct {
		name string
		v    int
	}{
		{"max_depth", c.MaxDepth},
		{"type_cache_size", c.TypeCacheSize},
		{"workers", c.Workers},
	} {
		if f.v < 0 {
			return errors.New(errors.PhaseConfig, errors.KindInvalidInput).
				Path(f.name).
				Value(f.v).
				Detail("%s must not be negative", f.name).
				Build()
		}
	}
	if c.MaxDepth > dex.MaxAllowedDepth {
		return errors.New(errors.PhaseConfig, errors.KindInvalidInput).
			Path("max_depth").
			Value(c.MaxDepth).
			Detail("max_depth %d exceeds %d", c.MaxDepth, dex.MaxAllowedDepth).
			Build()
	}
	if _, err := c.level(); err != nil {
		return errors.New(errors.PhaseConfig, errors.KindInvalidEnum).
			Path("log", "level").
			Value(c.Log.Level).
			Cause(err).
			Detail("unknown log level %q", c.Log.Level).
			Build()
	}
	return nil
}

// DecodeOptions returns the dex options described by c.
func (c Config) DecodeOptions() dex.Options {
	return dex.Options{
		MaxDepth:         c.MaxDepth,
		ValidateOrdering: c.ValidateOrdering,
		VerifyPrototypes: c.VerifyPrototypes,
		TypeCacheSize:    c.TypeCacheSize,
		Workers:          c.Workers,
	}
}

// Logger builds a zap logger for the configured level and mode.
func (c Config) Logger() (*zap.Logger, error) {
	lvl, err := c.level()
	if err != nil {
		return nil, err
	}
	zc := zap.NewProductionConfig()
	if c.Log.Development {
		zc = zap.NewDevelopmentConfig()
	}
	zc.Level = zap.NewAtomicLevelAt(lvl)
	l, err := zc.Build()
	if err != nil {
		return nil, fmt.Errorf("build logger: %w", err)
	}
	return l, nil
}

func (c Config) level() (zapcore.Level, error) {
	if c.Log.Level == "" {
		return zapcore.InfoLevel, nil
	}
	return zapcore.ParseLevel(c.Log.Level)
}
