package aether

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
)

// Color represents an RGBA color with components in [0, 1]. Not premultiplied.
// Shaders receive the channels in this order through a [ColorValue] uniform.
type Color struct {
	R, G, B, A float64
}

// ColorTransparent is the zero color.
var ColorTransparent = Color{}

// ColorWhite is opaque white.
var ColorWhite = Color{1, 1, 1, 1}

// ColorFromARGB builds a Color from a packed 0xAARRGGBB value.
func ColorFromARGB(argb uint32) Color {
	return Color{
		R: float64(argb>>16&0xff) / 255,
		G: float64(argb>>8&0xff) / 255,
		B: float64(argb&0xff) / 255,
		A: float64(argb>>24&0xff) / 255,
	}
}

// ColorFrom converts any color.Color (premultiplied, as the image/color
// package defines it) to a straight-alpha Color.
func ColorFrom(c color.Color) Color {
	r, g, b, a := c.RGBA()
	if a == 0 {
		return ColorTransparent
	}
	fa := float64(a)
	return Color{
		R: float64(r) / fa,
		G: float64(g) / fa,
		B: float64(b) / fa,
		A: fa / 0xffff,
	}
}

// WithAlpha returns a copy of c with the alpha channel replaced.
func (c Color) WithAlpha(a float64) Color {
	c.A = a
	return c
}

// RGBA implements color.Color. The returned channels are premultiplied.
func (c Color) RGBA() (r, g, b, a uint32) {
	a = uint32(clamp01(c.A)*0xffff + 0.5)
	r = uint32(clamp01(c.R*c.A)*0xffff + 0.5)
	g = uint32(clamp01(c.G*c.A)*0xffff + 0.5)
	b = uint32(clamp01(c.B*c.A)*0xffff + 0.5)
	return
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// BlendMode selects how an overlay's shader output is composited onto the
// content underneath. Each maps to a specific ebiten.Blend value.
type BlendMode uint8

const (
	BlendNormal BlendMode = iota // source-over (standard alpha blending)
	BlendAdd                     // additive / lighter, good for flashes
	BlendScreen                  // screen (1 - (1-src)*(1-dst); only brightens)
	BlendMultiply                // multiply (only darkens)
)

// EbitenBlend returns the ebiten.Blend value corresponding to this BlendMode.
func (b BlendMode) EbitenBlend() ebiten.Blend {
	switch b {
	case BlendAdd:
		return ebiten.BlendLighter
	case BlendScreen:
		return ebiten.Blend{
			BlendFactorSourceRGB:        ebiten.BlendFactorOne,
			BlendFactorSourceAlpha:      ebiten.BlendFactorOne,
			BlendFactorDestinationRGB:   ebiten.BlendFactorOneMinusSourceColor,
			BlendFactorDestinationAlpha: ebiten.BlendFactorOneMinusSourceAlpha,
			BlendOperationRGB:           ebiten.BlendOperationAdd,
			BlendOperationAlpha:         ebiten.BlendOperationAdd,
		}
	case BlendMultiply:
		return ebiten.Blend{
			BlendFactorSourceRGB:        ebiten.BlendFactorDestinationColor,
			BlendFactorSourceAlpha:      ebiten.BlendFactorDestinationAlpha,
			BlendFactorDestinationRGB:   ebiten.BlendFactorOneMinusSourceAlpha,
			BlendFactorDestinationAlpha: ebiten.BlendFactorOneMinusSourceAlpha,
			BlendOperationRGB:           ebiten.BlendOperationAdd,
			BlendOperationAlpha:         ebiten.BlendOperationAdd,
		}
	default:
		return ebiten.BlendSourceOver
	}
}
