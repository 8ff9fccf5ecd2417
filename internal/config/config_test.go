package config

import (
	"errors"
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/san-kum/tlinesim/internal/drive"
	"github.com/san-kum/tlinesim/internal/tline"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Length != 0.5 || cfg.Samples != 50 || cfg.Steps != 100 || cfg.EndTime != 20 {
		t.Errorf("unexpected grid defaults: %+v", cfg)
	}
	if cfg.Drive.Kind != drive.KindRamp || cfg.Drive.MaxV != 1 {
		t.Errorf("unexpected drive default: %+v", cfg.Drive)
	}

	p, err := cfg.Params()
	if err != nil {
		t.Fatalf("default config should be valid: %v", err)
	}
	if len(p.Drive) != cfg.Steps {
		t.Errorf("expected %d drive samples, got %d", cfg.Steps, len(p.Drive))
	}
}

func TestLoadSave(t *testing.T) {
	path := filepath.Join(t.TempDir(), "line.yaml")

	cfg := DefaultConfig()
	cfg.Name = "saved"
	cfg.ZSource = 20
	cfg.Drive = drive.Spec{Kind: drive.KindPulse, MaxV: 2, Rise: 1, Fall: 1, Width: 4}
	if err := Save(path, cfg); err != nil {
		t.Fatalf("save: %v", err)
	}

	got, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if *got != *cfg {
		t.Errorf("round trip mismatch:\n got %+v\nwant %+v", got, cfg)
	}
}

func TestLoad_PartialKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "partial.yaml")
	if err := os.WriteFile(path, []byte("z_source: 20\nlength: 0.25\n"), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.ZSource != 20 || cfg.Length != 0.25 {
		t.Errorf("overrides not applied: %+v", cfg)
	}
	if cfg.ZTrace != DefaultZTrace || cfg.Samples != DefaultSamples {
		t.Errorf("defaults lost: %+v", cfg)
	}
}

func TestLoad_Missing(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("expected not-exist error, got %v", err)
	}
}

func TestParams_Invalid(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		err    error
	}{
		{"zero samples", func(c *Config) { c.Samples = 0 }, tline.ErrInvalidParameter},
		{"zero length", func(c *Config) { c.Length = 0 }, tline.ErrInvalidParameter},
		{"zero steps", func(c *Config) { c.Steps = 0 }, drive.ErrSampling},
		{"unknown drive", func(c *Config) { c.Drive.Kind = "sine" }, drive.ErrUnknownKind},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			if _, err := cfg.Params(); !errors.Is(err, tt.err) {
				t.Errorf("expected %v, got %v", tt.err, err)
			}
		})
	}
}

func TestWith(t *testing.T) {
	base := DefaultConfig()

	for _, name := range SweepParams {
		cfg, err := base.With(name, 42)
		if err != nil {
			t.Fatalf("%s: %v", name, err)
		}
		if *cfg == *base {
			t.Errorf("%s: config unchanged", name)
		}
	}
	if base.ZSource != DefaultZSource || base.Drive.MaxV != DefaultMaxV {
		t.Error("With must not modify the receiver")
	}

	if _, err := base.With("gamma", 1); !errors.Is(err, ErrUnknownParam) {
		t.Errorf("expected ErrUnknownParam, got %v", err)
	}
}

func TestGetPreset(t *testing.T) {
	cfg, err := GetPreset("quarter-strong")
	if err != nil {
		t.Fatalf("expected preset: %v", err)
	}
	if cfg.Length != 0.25 || cfg.ZSource != 20 {
		t.Errorf("unexpected preset values: %+v", cfg)
	}

	cfg.Length = 9
	again, _ := GetPreset("quarter-strong")
	if again.Length != 0.25 {
		t.Error("GetPreset should return a copy")
	}
}

func TestGetPreset_NotFound(t *testing.T) {
	if _, err := GetPreset("nonexistent"); !errors.Is(err, ErrUnknownPreset) {
		t.Errorf("expected ErrUnknownPreset, got %v", err)
	}
}

func TestListPresets(t *testing.T) {
	names := ListPresets()
	if len(names) != len(Presets) {
		t.Fatalf("expected %d presets, got %d", len(Presets), len(names))
	}
	if !sort.StringsAreSorted(names) {
		t.Errorf("presets not sorted: %v", names)
	}
	for _, name := range names {
		cfg, _ := GetPreset(name)
		if cfg.Name != name {
			t.Errorf("preset %s carries name %s", name, cfg.Name)
		}
		if _, err := cfg.Params(); err != nil {
			t.Errorf("preset %s invalid: %v", name, err)
		}
	}
}
