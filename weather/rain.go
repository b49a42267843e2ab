package weather

import "github.com/phanxgames/aether"

// MaxRainIntensity is the number of depth layers the rain shader draws.
const MaxRainIntensity = 5

// Rain is animated falling rain with parallax depth layers.
type Rain struct {
	base
	intensity  int
	speed      float64
	dropLength float64
	colors     RainColors
	wind       Wind
}

// NewRain returns moderate rain: intensity 3, unit speed and drop length,
// default colors and a light breeze.
func NewRain() *Rain {
	return &Rain{
		intensity:  3,
		speed:      1,
		dropLength: 1,
		colors:     DefaultRainColors(),
		wind:       LightBreeze,
	}
}

// LightRain is a drizzle.
func LightRain() *Rain {
	r := NewRain()
	r.intensity = 1
	r.speed = 0.7
	r.dropLength = 0.6
	r.wind = Wind{Angle: 0.05, Strength: 0.2}
	return r
}

// ModerateRain is the default rainfall.
func ModerateRain() *Rain { return NewRain() }

// HeavyRain has four layers of faster, longer drops.
func HeavyRain() *Rain {
	r := NewRain()
	r.intensity = 4
	r.speed = 1.3
	r.dropLength = 1.3
	return r
}

// Storm is the densest, fastest rain with strong wind.
func Storm() *Rain {
	r := NewRain()
	r.intensity = 5
	r.speed = 1.8
	r.dropLength = 1.5
	r.wind = StrongWind
	return r
}

// ShaderSource implements aether.Effect.
func (r *Rain) ShaderSource() string { return rainShaderSrc }

// Animated implements aether.Effect.
func (r *Rain) Animated() bool { return true }

// Uniforms implements aether.Effect. Intensity is clamped to
// [1, MaxRainIntensity].
func (r *Rain) Uniforms() aether.Uniforms {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return aether.Uniforms{
		"Intensity":  aether.Int1(clampInt(r.intensity, 1, MaxRainIntensity)),
		"Speed":      aether.Float1(float32(r.speed)),
		"DropLength": aether.Float1(float32(r.dropLength)),
		"RainColor":  aether.ColorValue(r.colors.Core),
		"HaloColor":  aether.ColorValue(r.colors.Halo),
		"TintColor":  aether.ColorValue(r.colors.Tint),
		"WindAngle":  aether.Float1(float32(r.wind.Angle)),
	}
}

// Intensity returns the number of requested depth layers.
func (r *Rain) Intensity() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.intensity
}

// SetIntensity sets the number of depth layers, 1 to MaxRainIntensity.
func (r *Rain) SetIntensity(n int) { r.set(func() { r.intensity = n }) }

// Speed returns the fall speed multiplier.
func (r *Rain) Speed() float64 {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.speed
}

// SetSpeed sets the fall speed multiplier.
func (r *Rain) SetSpeed(v float64) { r.set(func() { r.speed = v }) }

// DropLength returns the streak length multiplier.
func (r *Rain) DropLength() float64 {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.dropLength
}

// SetDropLength sets the streak length multiplier.
func (r *Rain) SetDropLength(v float64) { r.set(func() { r.dropLength = v }) }

// Colors returns the drop, halo and tint colors.
func (r *Rain) Colors() RainColors {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.colors
}

// SetColors replaces the color set.
func (r *Rain) SetColors(c RainColors) { r.set(func() { r.colors = c }) }

// Wind returns the current wind.
func (r *Rain) Wind() Wind {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.wind
}

// SetWind sets the wind. Rain only uses its angle.
func (r *Rain) SetWind(w Wind) { r.set(func() { r.wind = w }) }
