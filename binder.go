package aether

// Bind writes one uniform into the program's buffer. It reports whether the
// value was applied: names the program does not declare, and declared inputs
// of an incompatible type, are skipped without error.
func Bind(p *Program, name string, v UniformValue) bool {
	if p == nil {
		return false
	}
	t, ok := p.inputs[name]
	if !ok || !t.Accepts(v.kind) {
		return false
	}
	switch v.kind {
	case KindFloat1:
		// Scalar float32 boxing is unavoidable with Ebitengine's uniform API.
		p.values[name] = v.f[0]
	case KindFloat2:
		p.setFloats(name, v.f[:2])
	case KindFloat3:
		p.setFloats(name, v.f[:3])
	case KindFloat4, KindColor:
		p.setFloats(name, v.f[:4])
	case KindInt1:
		p.values[name] = v.i
	default:
		return false
	}
	return true
}

// BindAll applies every entry of values and returns how many were bound.
// A skipped name never aborts the remaining bindings.
func BindAll(p *Program, values Uniforms) int {
	n := 0
	for name, v := range values {
		if Bind(p, name, v) {
			n++
		}
	}
	return n
}

// setFloats copies src into the persistent slice for name, allocating it only
// if the program was built without one.
func (p *Program) setFloats(name string, src []float32) {
	dst, ok := p.values[name].([]float32)
	if !ok || len(dst) != len(src) {
		dst = make([]float32, len(src))
		p.values[name] = dst
	}
	copy(dst, src)
}
