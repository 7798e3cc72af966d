package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/plexus/internal/field"
	"github.com/san-kum/plexus/internal/hud"
)

const (
	DefaultWidth       = 1280
	DefaultHeight      = 720
	DefaultFPS         = 60
	DefaultTheme       = "rose"
	DefaultBackend     = "tui"
	DefaultDebounce    = 250 * time.Millisecond
	DefaultRecordTicks = 600
	DefaultDotSize     = 8.0
)

// DefaultCaptions are the lines cycled by the typing caption.
var DefaultCaptions = []string{
	"Aspiring Web Developer",
	"React Enthusiast",
	"Node.js Explorer",
	"Problem Solver",
	"Coffee Lover ☕",
}

type Config struct {
	Seed     int64         `yaml:"seed"`
	Width    float64       `yaml:"width"`
	Height   float64       `yaml:"height"`
	FPS      int           `yaml:"fps"`
	Backend  string        `yaml:"backend"`
	Theme    string        `yaml:"theme"`
	Debounce time.Duration `yaml:"resize_debounce"`
	DotSize  float64       `yaml:"dot_size"`
	Captions []string      `yaml:"captions"`
	Stats    []hud.Stat    `yaml:"stats"`
	Record   RecordConfig  `yaml:"record"`
	Field    field.Params  `yaml:"field"`
}

// RecordConfig drives headless runs: a pointer that orbits the viewport
// centre so attraction shows up in the metrics.
type RecordConfig struct {
	Ticks       int     `yaml:"ticks"`
	OrbitRadius float64 `yaml:"orbit_radius"`
	OrbitPeriod int     `yaml:"orbit_period"`
}

func DefaultConfig() *Config {
	captions := make([]string, len(DefaultCaptions))
	copy(captions, DefaultCaptions)
	return &Config{
		Width:    DefaultWidth,
		Height:   DefaultHeight,
		FPS:      DefaultFPS,
		Backend:  DefaultBackend,
		Theme:    DefaultTheme,
		Debounce: DefaultDebounce,
		DotSize:  DefaultDotSize,
		Captions: captions,
		Stats:    append([]hud.Stat(nil), hud.DefaultStats...),
		Record: RecordConfig{
			Ticks:       DefaultRecordTicks,
			OrbitRadius: 150,
			OrbitPeriod: 240,
		},
		Field: field.DefaultParams(),
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("viewport must be positive, got %gx%g", c.Width, c.Height)
	}
	if c.FPS <= 0 {
		return fmt.Errorf("fps must be positive, got %d", c.FPS)
	}
	if c.DotSize <= 0 {
		return fmt.Errorf("dot_size must be positive, got %g", c.DotSize)
	}
	if c.Field.Spacing <= 0 {
		return fmt.Errorf("field.spacing must be positive, got %g", c.Field.Spacing)
	}
	if c.Field.LinkDistance <= 0 || c.Field.AttractRadius <= 0 {
		return fmt.Errorf("field distances must be positive")
	}
	return nil
}
