package config_test

import (
	stderrors "errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"go.uber.org/zap/zapcore"

	"github.com/wippyai/dexmodel/config"
	"github.com/wippyai/dexmodel/dex"
	"github.com/wippyai/dexmodel/errors"
)

func TestDefaultMatchesOptions(t *testing.T) {
	if got := config.Default().DecodeOptions(); got != dex.DefaultOptions() {
		t.Errorf("Default().DecodeOptions() = %+v, want %+v", got, dex.DefaultOptions())
	}
}

func TestParse(t *testing.T) {
	cfg, err := config.Parse(`
max_depth = 64
validate_ordering = false
workers = 2

[log]
level = "debug"
development = true
`)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	opts := cfg.DecodeOptions()
	if opts.MaxDepth != 64 || opts.ValidateOrdering || opts.Workers != 2 {
		t.Errorf("options = %+v", opts)
	}
	// absent keys keep their defaults
	if !opts.VerifyPrototypes || opts.TypeCacheSize != dex.DefaultTypeCacheSize {
		t.Errorf("defaults lost: %+v", opts)
	}
	if cfg.Log.Level != "debug" || !cfg.Log.Development {
		t.Errorf("log = %+v", cfg.Log)
	}

	l, err := cfg.Logger()
	if err != nil {
		t.Fatalf("Logger: %v", err)
	}
	if !l.Core().Enabled(zapcore.DebugLevel) {
		t.Error("debug level not enabled")
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		data string
		kind errors.Kind
	}{
		{"syntax", "max_depth = ", errors.KindInvalidInput},
		{"unknown key", "max_dept = 3", errors.KindInvalidInput},
		{"negative", "workers = -1", errors.KindInvalidInput},
		{"depth above ceiling", "max_depth = 100000000", errors.KindInvalidInput},
		{"bad level", "[log]\nlevel = \"loud\"", errors.KindInvalidEnum},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := config.Parse(tt.data)
			if !stderrors.Is(err, &errors.Error{Phase: errors.PhaseConfig, Kind: tt.kind}) {
				t.Errorf("Parse(%q) = %v, want %s", tt.data, err, tt.kind)
			}
		})
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dexmodel.toml")
	if err := os.WriteFile(path, []byte("type_cache_size = 16\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.TypeCacheSize != 16 {
		t.Errorf("TypeCacheSize = %d", cfg.TypeCacheSize)
	}

	if _, err := config.Load(filepath.Join(t.TempDir(), "missing.toml")); err == nil {
		t.Error("Load of a missing file should fail")
	}
}

func TestMaxDepthCeiling(t *testing.T) {
	cfg, err := config.Parse(fmt.Sprintf("max_depth = %d", dex.MaxAllowedDepth))
	if err != nil {
		t.Fatalf("Parse at ceiling: %v", err)
	}
	if cfg.DecodeOptions().MaxDepth != dex.MaxAllowedDepth {
		t.Errorf("MaxDepth = %d", cfg.DecodeOptions().MaxDepth)
	}
	if _, err := config.Parse(fmt.Sprintf("max_depth = %d", dex.MaxAllowedDepth+1)); err == nil {
		t.Error("max_depth above the ceiling should be rejected")
	}
}
