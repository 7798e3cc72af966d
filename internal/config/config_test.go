package config

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/san-kum/plexus/internal/field"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Field != field.DefaultParams() {
		t.Error("default field params should match the field package")
	}
	if cfg.FPS <= 0 {
		t.Error("fps should be positive")
	}
	if cfg.Debounce != 250*time.Millisecond {
		t.Errorf("expected 250ms resize debounce, got %v", cfg.Debounce)
	}
	if len(cfg.Captions) != 5 {
		t.Errorf("expected 5 captions, got %d", len(cfg.Captions))
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config invalid: %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name string
		mut  func(c *Config)
	}{
		{"zero width", func(c *Config) { c.Width = 0 }},
		{"negative height", func(c *Config) { c.Height = -1 }},
		{"zero fps", func(c *Config) { c.FPS = 0 }},
		{"zero dot size", func(c *Config) { c.DotSize = 0 }},
		{"zero spacing", func(c *Config) { c.Field.Spacing = 0 }},
		{"zero link distance", func(c *Config) { c.Field.LinkDistance = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mut(cfg)
			if cfg.Validate() == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}

func TestSaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plexus.yaml")
	cfg := DefaultConfig()
	cfg.Seed = 99
	cfg.Field.LinkDistance = 140
	cfg.Debounce = time.Second

	if err := Save(path, cfg); err != nil {
		t.Fatal(err)
	}
	loaded, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}

	if loaded.Seed != 99 || loaded.Field.LinkDistance != 140 || loaded.Debounce != time.Second {
		t.Errorf("round trip lost values: %+v", loaded)
	}
}

func TestGetPreset(t *testing.T) {
	cfg := GetPreset("dense")
	if cfg == nil {
		t.Fatal("expected preset, got nil")
	}
	if cfg.Field.MaxParticles != 120 {
		t.Errorf("expected 120 max particles, got %d", cfg.Field.MaxParticles)
	}

	cfg.Field.MaxParticles = 1
	if Presets["dense"].Field.MaxParticles != 120 {
		t.Error("GetPreset must return a copy")
	}
}

func TestGetPreset_NotFound(t *testing.T) {
	if GetPreset("nonexistent") != nil {
		t.Error("expected nil for nonexistent preset")
	}
}

func TestListPresets(t *testing.T) {
	presets := ListPresets()
	if len(presets) != len(Presets) {
		t.Errorf("expected %d presets, got %d", len(Presets), len(presets))
	}
	if presets[0] != "calm" {
		t.Errorf("expected sorted names, got %v", presets)
	}
}
