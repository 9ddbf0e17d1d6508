package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Steps != DefaultSteps {
		t.Errorf("expected %d steps, got %d", DefaultSteps, cfg.Steps)
	}
	if cfg.Interp != "nearest" {
		t.Errorf("expected nearest interp, got %s", cfg.Interp)
	}
	if cfg.Start.Lat != DefaultLat || cfg.Start.Lon != DefaultLon {
		t.Errorf("unexpected default start: %+v", cfg.Start)
	}
	if cfg.Subset.Enabled() {
		t.Error("subset should be disabled by default")
	}
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.yaml")
	doc := `met_file: era5.nc
time_index: 3
interp: bilinear
steps: 50
start:
  lat: 52.5
  lon: 13.4
subset:
  time_start: "2023-01-01T02:00"
  time_end: "2023-01-01T05:00"
  lat_min: 30
  lat_max: 60
  lon_min: -10
  lon_max: 40
aliases:
  - canonical: u
    aliases: [eastward_wind]
`
	if err := os.WriteFile(path, []byte(doc), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if cfg.MetFile != "era5.nc" {
		t.Errorf("expected met_file era5.nc, got %s", cfg.MetFile)
	}
	if cfg.TimeIndex != 3 || cfg.Steps != 50 {
		t.Errorf("unexpected overrides: index=%d steps=%d", cfg.TimeIndex, cfg.Steps)
	}
	if cfg.Interp != "bilinear" {
		t.Errorf("expected bilinear, got %s", cfg.Interp)
	}
	if cfg.Start.Lat != 52.5 || cfg.Start.Lon != 13.4 {
		t.Errorf("unexpected start: %+v", cfg.Start)
	}
	if !cfg.Subset.Enabled() {
		t.Error("subset should be enabled")
	}
	if len(cfg.Aliases) != 1 || cfg.Aliases[0].Canonical != "u" {
		t.Errorf("unexpected aliases: %+v", cfg.Aliases)
	}
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.yaml")

	cfg := DefaultConfig()
	cfg.MetFile = "winds.json"
	cfg.Steps = 7

	if err := Save(path, cfg); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if loaded.MetFile != "winds.json" || loaded.Steps != 7 {
		t.Errorf("round trip mismatch: %+v", loaded)
	}
}

func TestGetPreset(t *testing.T) {
	cfg := GetPreset("equator")
	if cfg == nil {
		t.Fatal("expected preset, got nil")
	}
	if cfg.Start.Lat != 0 || cfg.Start.Lon != 0 {
		t.Errorf("unexpected equator start: %+v", cfg.Start)
	}

	if GetPreset("nonexistent") != nil {
		t.Error("expected nil for nonexistent preset")
	}

	if len(ListPresets()) == 0 {
		t.Error("expected preset names")
	}
}
