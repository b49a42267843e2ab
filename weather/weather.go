// Package weather provides ready-made aether effects: rain, snow, drifting
// clouds and a triggered lightning flash.
//
// Every effect is safe to share between goroutines. Setters clamp nothing;
// ranges are enforced when uniforms are built, so a value read back is the
// value written. Each setter notifies observers, which makes an attached
// overlay redraw without restarting its animation.
package weather

import (
	"sync"

	"github.com/phanxgames/aether"
)

// Wind tilts and drifts falling particles. Angle is a horizontal skew per
// unit of fall; Strength scales sideways sway.
type Wind struct {
	Angle    float64
	Strength float64
}

var (
	// Calm makes particles fall straight down.
	Calm = Wind{Angle: 0, Strength: 0}
	// LightBreeze adds a slight tilt and drift.
	LightBreeze = Wind{Angle: 0.1, Strength: 0.3}
	// StrongWind adds a significant tilt and drift.
	StrongWind = Wind{Angle: 0.3, Strength: 0.8}
)

// DefaultWind is the zero-angle, moderate-sway wind.
var DefaultWind = Wind{Angle: 0, Strength: 0.3}

// RainColors is the color set of a Rain effect.
type RainColors struct {
	// Core tints the bright drop cores.
	Core aether.Color
	// Halo is the dark outline that keeps drops visible on light content.
	Halo aether.Color
	// Tint is the atmospheric wash behind the rain. Its alpha is scaled by
	// intensity.
	Tint aether.Color
}

// Default rain colors.
var (
	DefaultRainCore = aether.ColorFromARGB(0xAAC0D8F0)
	DefaultRainHalo = aether.ColorFromARGB(0x80203040)
	DefaultRainTint = aether.ColorFromARGB(0x18203040)
)

// DefaultRainColors returns light blue drops with a navy halo and a faint
// blue-gray tint.
func DefaultRainColors() RainColors {
	return RainColors{Core: DefaultRainCore, Halo: DefaultRainHalo, Tint: DefaultRainTint}
}

// base is embedded by every effect: a lock for parameters plus the change
// notifier.
type base struct {
	aether.Changes
	mu sync.RWMutex
}

// set runs fn under the write lock, then notifies observers.
func (b *base) set(fn func()) {
	b.mu.Lock()
	fn()
	b.mu.Unlock()
	b.Notify()
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func clampFloat(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
