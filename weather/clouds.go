package weather

import "github.com/phanxgames/aether"

// DefaultCloudColor is a muted blue-gray.
var DefaultCloudColor = aether.ColorFromARGB(0xD8707888)

// Clouds is a slowly drifting two-layer cloud cover built from fractal
// noise.
type Clouds struct {
	base
	coverage float64
	speed    float64
	color    aether.Color
}

// NewClouds returns clouds at 30% coverage.
func NewClouds() *Clouds {
	return &Clouds{coverage: 0.30, speed: 1, color: DefaultCloudColor}
}

// WispyClouds is thin, slow cover.
func WispyClouds() *Clouds {
	c := NewClouds()
	c.coverage = 0.15
	c.speed = 0.6
	return c
}

// PartlyCloudy covers about a third of the sky.
func PartlyCloudy() *Clouds {
	c := NewClouds()
	c.coverage = 0.35
	return c
}

// Overcast is dense, slow-moving cover.
func Overcast() *Clouds {
	c := NewClouds()
	c.coverage = 0.85
	c.speed = 0.4
	return c
}

// ShaderSource implements aether.Effect.
func (c *Clouds) ShaderSource() string { return cloudsShaderSrc }

// Animated implements aether.Effect.
func (c *Clouds) Animated() bool { return true }

// Uniforms implements aether.Effect. Coverage is clamped to [0, 1].
func (c *Clouds) Uniforms() aether.Uniforms {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return aether.Uniforms{
		"Coverage":   aether.Float1(float32(clampFloat(c.coverage, 0, 1))),
		"Speed":      aether.Float1(float32(c.speed)),
		"CloudColor": aether.ColorValue(c.color),
	}
}

// Coverage returns the covered fraction of the sky.
func (c *Clouds) Coverage() float64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.coverage
}

// SetCoverage sets the covered fraction, clamped to [0, 1] when drawn.
func (c *Clouds) SetCoverage(v float64) { c.set(func() { c.coverage = v }) }

// Speed returns the drift speed multiplier.
func (c *Clouds) Speed() float64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.speed
}

// SetSpeed sets the drift speed multiplier.
func (c *Clouds) SetSpeed(v float64) { c.set(func() { c.speed = v }) }

// Color returns the cloud color.
func (c *Clouds) Color() aether.Color {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.color
}

// SetColor sets the cloud color.
func (c *Clouds) SetColor(col aether.Color) { c.set(func() { c.color = col }) }
