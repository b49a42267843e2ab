package weather

import (
	"time"

	"github.com/phanxgames/aether"
)

const (
	// MaxBolts is the number of root bolts the shader can draw.
	MaxBolts = 5
	// DefaultFlashDuration is the fade-out time of Flash.
	DefaultFlashDuration = 300 * time.Millisecond
)

// DefaultFlashColor is white with a slight blue tint.
var DefaultFlashColor = aether.ColorFromARGB(0xFFE8EEFF)

// LightningFlash is a triggered bolt-and-flash overlay. It is not animated:
// nothing is drawn until Progress rises above zero, and redraws follow
// parameter writes. Fire one with Flash or drive Progress yourself from 1
// down to 0.
type LightningFlash struct {
	base
	progress      float64
	brightness    float64
	boltCount     int
	forkIntensity float64
	color         aether.Color
}

// NewLightningFlash returns an idle flash with three forked bolts.
func NewLightningFlash() *LightningFlash {
	return &LightningFlash{
		brightness:    1.5,
		boltCount:     3,
		forkIntensity: 0.4,
		color:         DefaultFlashColor,
	}
}

// ShaderSource implements aether.Effect.
func (l *LightningFlash) ShaderSource() string { return lightningShaderSrc }

// Animated implements aether.Effect.
func (l *LightningFlash) Animated() bool { return false }

// Uniforms implements aether.Effect. Progress and ForkIntensity are clamped
// to [0, 1], BoltCount to at least 1.
func (l *LightningFlash) Uniforms() aether.Uniforms {
	l.mu.RLock()
	defer l.mu.RUnlock()
	bolts := l.boltCount
	if bolts < 1 {
		bolts = 1
	}
	return aether.Uniforms{
		"Progress":      aether.Float1(float32(clampFloat(l.progress, 0, 1))),
		"Brightness":    aether.Float1(float32(l.brightness)),
		"BoltCount":     aether.Int1(bolts),
		"ForkIntensity": aether.Float1(float32(clampFloat(l.forkIntensity, 0, 1))),
		"FlashColor":    aether.ColorValue(l.color),
	}
}

// Progress returns the flash intensity, 0 (invisible) to 1 (full).
func (l *LightningFlash) Progress() float64 {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.progress
}

// SetProgress sets the flash intensity. Flash drives it over time.
func (l *LightningFlash) SetProgress(v float64) { l.set(func() { l.progress = v }) }

// Brightness returns the peak brightness multiplier.
func (l *LightningFlash) Brightness() float64 {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.brightness
}

// SetBrightness sets the peak brightness multiplier.
func (l *LightningFlash) SetBrightness(v float64) { l.set(func() { l.brightness = v }) }

// BoltCount returns the requested number of root bolts.
func (l *LightningFlash) BoltCount() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.boltCount
}

// SetBoltCount sets the number of root bolts. Values above MaxBolts draw
// MaxBolts.
func (l *LightningFlash) SetBoltCount(n int) { l.set(func() { l.boltCount = n }) }

// ForkIntensity returns the branch visibility.
func (l *LightningFlash) ForkIntensity() float64 {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.forkIntensity
}

// SetForkIntensity sets branch visibility: 0 is a pure flash, 1 shows
// prominent forks.
func (l *LightningFlash) SetForkIntensity(v float64) { l.set(func() { l.forkIntensity = v }) }

// Color returns the flash color.
func (l *LightningFlash) Color() aether.Color {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.color
}

// SetColor sets the flash color.
func (l *LightningFlash) SetColor(c aether.Color) { l.set(func() { l.color = c }) }
