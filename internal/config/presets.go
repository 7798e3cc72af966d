package config

import (
	"sort"

	"github.com/san-kum/plexus/internal/field"
	"github.com/san-kum/plexus/internal/hud"
)

func preset(mut func(p *field.Params)) *Config {
	cfg := DefaultConfig()
	mut(&cfg.Field)
	return cfg
}

// Presets are named variations on the page defaults.
var Presets = map[string]*Config{
	"classic": DefaultConfig(),
	"dense": preset(func(p *field.Params) {
		p.MaxParticles = 120
		p.Spacing = 10
	}),
	"calm": preset(func(p *field.Params) {
		p.Speed = 0.15
		p.AttractStrength = 0.004
	}),
	"magnet": preset(func(p *field.Params) {
		p.AttractRadius = 220
		p.AttractStrength = 0.03
	}),
	"web": preset(func(p *field.Params) {
		p.LinkDistance = 180
		p.LineAlpha = 0.35
	}),
	"ocean": preset(func(p *field.Params) {
		p.HueMin = 180
		p.HueSpan = 60
	}),
}

// GetPreset returns a copy of the named preset, or nil.
func GetPreset(name string) *Config {
	p, ok := Presets[name]
	if !ok {
		return nil
	}
	cfg := *p
	cfg.Captions = append([]string(nil), p.Captions...)
	cfg.Stats = append([]hud.Stat(nil), p.Stats...)
	return &cfg
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
