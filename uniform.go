package aether

import "fmt"

// UniformKind tags the shape of a UniformValue.
type UniformKind uint8

const (
	KindFloat1 UniformKind = iota + 1 // float
	KindFloat2                        // vec2
	KindFloat3                        // vec3
	KindFloat4                        // vec4
	KindColor                         // vec4 holding straight R, G, B, A
	KindInt1                          // int
)

// String returns the Kage type name the kind binds to.
func (k UniformKind) String() string {
	switch k {
	case KindFloat1:
		return "float"
	case KindFloat2:
		return "vec2"
	case KindFloat3:
		return "vec3"
	case KindFloat4:
		return "vec4"
	case KindColor:
		return "color"
	case KindInt1:
		return "int"
	default:
		return fmt.Sprintf("UniformKind(%d)", uint8(k))
	}
}

// UniformValue is a typed shader input. It is immutable and can only be
// built with the constructors below: Float1, Float2, Float3, Float4,
// ColorValue and Int1. The zero value is invalid and never binds.
type UniformValue struct {
	kind UniformKind
	f    [4]float32
	i    int32
}

// Float1 returns a scalar float uniform.
func Float1(v float32) UniformValue {
	return UniformValue{kind: KindFloat1, f: [4]float32{v}}
}

// Float2 returns a vec2 uniform.
func Float2(x, y float32) UniformValue {
	return UniformValue{kind: KindFloat2, f: [4]float32{x, y}}
}

// Float3 returns a vec3 uniform.
func Float3(x, y, z float32) UniformValue {
	return UniformValue{kind: KindFloat3, f: [4]float32{x, y, z}}
}

// Float4 returns a vec4 uniform.
func Float4(x, y, z, w float32) UniformValue {
	return UniformValue{kind: KindFloat4, f: [4]float32{x, y, z, w}}
}

// ColorValue returns a color uniform. The shader receives the straight
// (not premultiplied) channels in R, G, B, A order.
func ColorValue(c Color) UniformValue {
	return UniformValue{kind: KindColor, f: [4]float32{
		float32(c.R), float32(c.G), float32(c.B), float32(c.A),
	}}
}

// Int1 returns a scalar int uniform.
func Int1(v int) UniformValue {
	return UniformValue{kind: KindInt1, i: int32(v)}
}

// Kind reports the value's tag.
func (u UniformValue) Kind() UniformKind { return u.kind }

// Floats returns the float components in order. Unused trailing
// components are zero; Int1 values return all zeros.
func (u UniformValue) Floats() [4]float32 { return u.f }

// Int returns the integer of an Int1 value.
func (u UniformValue) Int() int { return int(u.i) }

// String implements fmt.Stringer.
func (u UniformValue) String() string {
	switch u.kind {
	case KindFloat1:
		return fmt.Sprintf("float(%g)", u.f[0])
	case KindFloat2:
		return fmt.Sprintf("vec2(%g, %g)", u.f[0], u.f[1])
	case KindFloat3:
		return fmt.Sprintf("vec3(%g, %g, %g)", u.f[0], u.f[1], u.f[2])
	case KindFloat4:
		return fmt.Sprintf("vec4(%g, %g, %g, %g)", u.f[0], u.f[1], u.f[2], u.f[3])
	case KindColor:
		return fmt.Sprintf("color(%g, %g, %g, %g)", u.f[0], u.f[1], u.f[2], u.f[3])
	case KindInt1:
		return fmt.Sprintf("int(%d)", u.i)
	default:
		return "invalid"
	}
}

// Uniforms maps shader input names to values. Effects build a fresh map for
// every frame; iteration order is irrelevant.
type Uniforms map[string]UniformValue
