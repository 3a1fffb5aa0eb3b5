package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/ziadkadry99/forcetree/internal/colordomain"
	"github.com/ziadkadry99/forcetree/internal/simulation"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.DataPath != "src/data/graph.json" {
		t.Errorf("expected default data_path %q, got %q", "src/data/graph.json", cfg.DataPath)
	}
	if cfg.View.SentinelName != "All" {
		t.Errorf("expected default sentinel %q, got %q", "All", cfg.View.SentinelName)
	}
	if cfg.View.CloseAllOnLoad || cfg.View.ResetBoundsOnReload {
		t.Error("close_all_on_load and reset_bounds_on_reload should default to false")
	}
	if cfg.JournalRetentionDays != 30 {
		t.Errorf("journal_retention_days = %d, want 30", cfg.JournalRetentionDays)
	}
	if !cfg.View.AggregateHidden {
		t.Error("aggregate_hidden should default to true")
	}
	if cfg.SimulationParams() != simulation.DefaultParams() {
		t.Errorf("simulation defaults = %+v", cfg.SimulationParams())
	}
	if cfg.Palette() != colordomain.DefaultPalette() {
		t.Errorf("palette defaults = %+v", cfg.Palette())
	}
}

func TestSaveAndLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.forcetree.yml")

	original := DefaultConfig()
	original.DataPath = "data/tree.json"
	original.Port = 9090
	original.View.CloseAllOnLoad = true
	original.View.RadiusScale = 150
	original.Color.Mode = "state"
	original.Color.Mid = "#ffffbf"
	original.Simulation.Charge = -300

	// Save.
	if err := original.Save(path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	// Load back.
	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	// Verify round-trip.
	if loaded.DataPath != original.DataPath {
		t.Errorf("data_path: got %q, want %q", loaded.DataPath, original.DataPath)
	}
	if loaded.Port != original.Port {
		t.Errorf("port: got %d, want %d", loaded.Port, original.Port)
	}
	if loaded.View != original.View {
		t.Errorf("view: got %+v, want %+v", loaded.View, original.View)
	}
	if loaded.Color != original.Color {
		t.Errorf("color: got %+v, want %+v", loaded.Color, original.Color)
	}
	if loaded.Simulation != original.Simulation {
		t.Errorf("simulation: got %+v, want %+v", loaded.Simulation, original.Simulation)
	}
}

func TestLoadPartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "partial.yml")
	if err := os.WriteFile(path, []byte("port: 7000\nview:\n  close_all_on_load: true\n"), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Port != 7000 || !cfg.View.CloseAllOnLoad {
		t.Errorf("file values not applied: %+v", cfg)
	}
	if cfg.View.SentinelName != "All" || cfg.View.RadiusScale != 300 {
		t.Errorf("defaults lost: %+v", cfg.View)
	}
}

func TestLoadMissingFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nonexistent.yml")

	// Loading a missing file should return defaults, not an error.
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load should not fail for missing file: %v", err)
	}
	if cfg.Port != 8080 {
		t.Errorf("expected default port, got %d", cfg.Port)
	}
}

func TestLoadInvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yml")
	if err := os.WriteFile(path, []byte("port: [unclosed"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("expected error for malformed yaml")
	}
}

func TestLoadEnvOverride(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.yml")

	cfg := DefaultConfig()
	if err := cfg.Save(path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	os.Setenv("FORCETREE_DATA_PATH", "env/graph.json")
	defer os.Unsetenv("FORCETREE_DATA_PATH")
	os.Setenv("FORCETREE_VIEW__RESET_BOUNDS_ON_RELOAD", "true")
	defer os.Unsetenv("FORCETREE_VIEW__RESET_BOUNDS_ON_RELOAD")
	os.Setenv("FORCETREE_SIMULATION__WIDTH", "1440")
	defer os.Unsetenv("FORCETREE_SIMULATION__WIDTH")

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if loaded.DataPath != "env/graph.json" {
		t.Errorf("env override failed: got %q", loaded.DataPath)
	}
	if !loaded.View.ResetBoundsOnReload {
		t.Error("nested bool override failed")
	}
	if loaded.Simulation.Width != 1440 {
		t.Errorf("nested int override failed: got %d", loaded.Simulation.Width)
	}
}

func TestValidateValid(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Errorf("DefaultConfig should be valid, got: %v", err)
	}
}

func TestValidateInvalid(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"empty data path", func(c *Config) { c.DataPath = "" }},
		{"negative port", func(c *Config) { c.Port = -1 }},
		{"huge port", func(c *Config) { c.Port = 70000 }},
		{"negative retention", func(c *Config) { c.JournalRetentionDays = -1 }},
		{"empty sentinel", func(c *Config) { c.View.SentinelName = "" }},
		{"zero radius scale", func(c *Config) { c.View.RadiusScale = 0 }},
		{"negative default radius", func(c *Config) { c.View.DefaultRadius = -1 }},
		{"bad color", func(c *Config) { c.Color.Low = "blue" }},
		{"bad mid color", func(c *Config) { c.Color.Mid = "#zzz" }},
		{"bad mode", func(c *Config) { c.Color.Mode = "rainbow" }},
		{"zero link distance", func(c *Config) { c.Simulation.LinkDistance = 0 }},
		{"zero width", func(c *Config) { c.Simulation.Width = 0 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestViewOptions(t *testing.T) {
	cfg := DefaultConfig()
	cfg.View.CloseAllOnLoad = true
	cfg.View.AggregateHidden = false
	cfg.View.DefaultRadius = 6
	cfg.Color.Mid = "#ffffff"

	opts := cfg.ViewOptions()
	if !opts.CloseAllOnLoad || opts.ResetBoundsOnReload {
		t.Errorf("flags = %+v", opts)
	}
	if opts.Aggregate.IncludeHidden || opts.Aggregate.DefaultRadius != 6 || opts.Aggregate.Scale != 300 {
		t.Errorf("aggregate options = %+v", opts.Aggregate)
	}
	if opts.Palette.Mid != "#ffffff" || opts.SentinelName != "All" {
		t.Errorf("palette/sentinel = %+v / %q", opts.Palette, opts.SentinelName)
	}
}
