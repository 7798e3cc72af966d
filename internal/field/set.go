package field

import (
	"errors"
	"fmt"
	"sort"
)

// ErrUnknownParam is returned by Params.Set for a name with no tunable.
var ErrUnknownParam = errors.New("field: unknown parameter")

func (p *Params) tunables() map[string]*float64 {
	return map[string]*float64{
		"spacing":          &p.Spacing,
		"speed":            &p.Speed,
		"radius_min":       &p.RadiusMin,
		"radius_span":      &p.RadiusSpan,
		"link_distance":    &p.LinkDistance,
		"line_alpha":       &p.LineAlpha,
		"attract_radius":   &p.AttractRadius,
		"attract_strength": &p.AttractStrength,
		"hue_min":          &p.HueMin,
		"hue_span":         &p.HueSpan,
	}
}

// Set assigns a parameter by its yaml name. max_particles is rounded down.
func (p *Params) Set(name string, v float64) error {
	if name == "max_particles" {
		p.MaxParticles = int(v)
		return nil
	}
	ptr, ok := p.tunables()[name]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownParam, name)
	}
	*ptr = v
	return nil
}

// Get reads a parameter by its yaml name.
func (p *Params) Get(name string) (float64, error) {
	if name == "max_particles" {
		return float64(p.MaxParticles), nil
	}
	ptr, ok := p.tunables()[name]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownParam, name)
	}
	return *ptr, nil
}

// ParamNames lists the names accepted by Set, sorted.
func ParamNames() []string {
	var p Params
	names := []string{"max_particles"}
	for name := range p.tunables() {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
