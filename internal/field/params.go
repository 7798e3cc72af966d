package field

const (
	DefaultMaxParticles    = 50
	DefaultSpacing         = 20.0
	DefaultSpeed           = 0.5
	DefaultRadiusMin       = 1.0
	DefaultRadiusSpan      = 3.0
	DefaultOpacityMin      = 0.2
	DefaultOpacitySpan     = 0.5
	DefaultHueMin          = 330.0
	DefaultHueSpan         = 60.0
	DefaultLinkDistance    = 100.0
	DefaultLineAlpha       = 0.2
	DefaultLineWidth       = 1.0
	DefaultAttractRadius   = 100.0
	DefaultAttractStrength = 0.01
	DefaultSaturation      = 0.7
	DefaultLightness       = 0.6
)

// Params tunes field generation and the per-tick update.
// The zero value is not useful; start from DefaultParams.
type Params struct {
	MaxParticles int     `yaml:"max_particles"`
	Spacing      float64 `yaml:"spacing"`

	// Speed is the width of the per-axis velocity range centred on zero.
	Speed       float64 `yaml:"speed"`
	RadiusMin   float64 `yaml:"radius_min"`
	RadiusSpan  float64 `yaml:"radius_span"`
	OpacityMin  float64 `yaml:"opacity_min"`
	OpacitySpan float64 `yaml:"opacity_span"`
	HueMin      float64 `yaml:"hue_min"`
	HueSpan     float64 `yaml:"hue_span"`

	LinkDistance float64 `yaml:"link_distance"`
	LineAlpha    float64 `yaml:"line_alpha"`
	LineWidth    float64 `yaml:"line_width"`

	AttractRadius   float64 `yaml:"attract_radius"`
	AttractStrength float64 `yaml:"attract_strength"`

	Saturation float64 `yaml:"saturation"`
	Lightness  float64 `yaml:"lightness"`
	// HueShift rotates colours at draw time without touching particle hues.
	HueShift float64 `yaml:"hue_shift"`
}

func DefaultParams() Params {
	return Params{
		MaxParticles:    DefaultMaxParticles,
		Spacing:         DefaultSpacing,
		Speed:           DefaultSpeed,
		RadiusMin:       DefaultRadiusMin,
		RadiusSpan:      DefaultRadiusSpan,
		OpacityMin:      DefaultOpacityMin,
		OpacitySpan:     DefaultOpacitySpan,
		HueMin:          DefaultHueMin,
		HueSpan:         DefaultHueSpan,
		LinkDistance:    DefaultLinkDistance,
		LineAlpha:       DefaultLineAlpha,
		LineWidth:       DefaultLineWidth,
		AttractRadius:   DefaultAttractRadius,
		AttractStrength: DefaultAttractStrength,
		Saturation:      DefaultSaturation,
		Lightness:       DefaultLightness,
	}
}
