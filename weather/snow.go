package weather

import "github.com/phanxgames/aether"

// MaxSnowDensity is the highest density. The shader draws density+2 layers.
const MaxSnowDensity = 5

// Default snow colors: near-white flakes with a dark blue outline.
var (
	DefaultSnowColor = aether.ColorFromARGB(0xFFE0F0FF)
	DefaultSnowHalo  = aether.ColorFromARGB(0xCC1A3A5C)
)

// Snow is animated falling snowflakes with six-armed crystals.
type Snow struct {
	base
	density   int
	speed     float64
	flakeSize float64
	color     aether.Color
	halo      aether.Color
	wind      Wind
}

// NewSnow returns moderate snowfall.
func NewSnow() *Snow {
	return &Snow{
		density:   3,
		speed:     1,
		flakeSize: 1,
		color:     DefaultSnowColor,
		halo:      DefaultSnowHalo,
		wind:      DefaultWind,
	}
}

// LightSnow is sparse, slow, windless snow.
func LightSnow() *Snow {
	s := NewSnow()
	s.density = 1
	s.speed = 0.6
	s.wind = Calm
	return s
}

// ModerateSnow is the default snowfall.
func ModerateSnow() *Snow { return NewSnow() }

// HeavySnow has more layers of larger flakes.
func HeavySnow() *Snow {
	s := NewSnow()
	s.density = 4
	s.speed = 1.2
	s.flakeSize = 1.2
	return s
}

// Blizzard is the densest snow with strong wind.
func Blizzard() *Snow {
	s := NewSnow()
	s.density = 5
	s.speed = 1.5
	s.flakeSize = 1.3
	s.wind = StrongWind
	return s
}

// ShaderSource implements aether.Effect.
func (s *Snow) ShaderSource() string { return snowShaderSrc }

// Animated implements aether.Effect.
func (s *Snow) Animated() bool { return true }

// Uniforms implements aether.Effect. Density is clamped to
// [1, MaxSnowDensity].
func (s *Snow) Uniforms() aether.Uniforms {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return aether.Uniforms{
		"Density":      aether.Int1(clampInt(s.density, 1, MaxSnowDensity)),
		"Speed":        aether.Float1(float32(s.speed)),
		"FlakeSize":    aether.Float1(float32(s.flakeSize)),
		"SnowColor":    aether.ColorValue(s.color),
		"HaloColor":    aether.ColorValue(s.halo),
		"WindStrength": aether.Float1(float32(s.wind.Strength)),
	}
}

// Density returns the requested flake density.
func (s *Snow) Density() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.density
}

// SetDensity sets the flake density, 1 to MaxSnowDensity.
func (s *Snow) SetDensity(n int) { s.set(func() { s.density = n }) }

// Speed returns the fall speed multiplier.
func (s *Snow) Speed() float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.speed
}

// SetSpeed sets the fall speed multiplier.
func (s *Snow) SetSpeed(v float64) { s.set(func() { s.speed = v }) }

// FlakeSize returns the flake size multiplier.
func (s *Snow) FlakeSize() float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.flakeSize
}

// SetFlakeSize sets the flake size multiplier.
func (s *Snow) SetFlakeSize(v float64) { s.set(func() { s.flakeSize = v }) }

// Color returns the flake core color.
func (s *Snow) Color() aether.Color {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.color
}

// SetColor sets the flake core color.
func (s *Snow) SetColor(c aether.Color) { s.set(func() { s.color = c }) }

// HaloColor returns the dark outline color.
func (s *Snow) HaloColor() aether.Color {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.halo
}

// SetHaloColor sets the dark outline color.
func (s *Snow) SetHaloColor(c aether.Color) { s.set(func() { s.halo = c }) }

// Wind returns the current wind.
func (s *Snow) Wind() Wind {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.wind
}

// SetWind sets the wind. Snow only uses its strength.
func (s *Snow) SetWind(w Wind) { s.set(func() { s.wind = w }) }
