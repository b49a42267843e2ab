package aether

import (
	"errors"
	"image"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

// testShaderSrc declares the pipeline uniforms plus two effect inputs.
const testShaderSrc = `//kage:unit pixels

package main

var Resolution vec2
var Time float
var Amount float
var Tint vec4

func Fragment(dstPos vec4, srcPos vec2, color vec4) vec4 {
	return Tint * Amount
}
`

// shaderVariant returns a distinct source with the same inputs.
func shaderVariant(name string) string {
	return testShaderSrc + "\n// " + name + "\n"
}

// testEffect is a minimal Effect. Use it by pointer so it stays comparable.
type testEffect struct {
	src      string
	animated bool
	uniforms Uniforms
}

func (e *testEffect) ShaderSource() string { return e.src }
func (e *testEffect) Animated() bool       { return e.animated }

func (e *testEffect) Uniforms() Uniforms {
	u := make(Uniforms, len(e.uniforms))
	for k, v := range e.uniforms {
		u[k] = v
	}
	return u
}

func animatedEffect(src string) *testEffect {
	return &testEffect{src: src, animated: true, uniforms: Uniforms{"Amount": Float1(0.5)}}
}

func staticEffect(src string) *testEffect {
	return &testEffect{src: src, uniforms: Uniforms{"Amount": Float1(0.5)}}
}

var errCompile = errors.New("bad shader")

// compiler counts compilations per source and fails the sources in fail.
// Programs carry no GPU shader.
type compiler struct {
	mu    sync.Mutex
	calls map[string]int
	fail  map[string]bool
	delay time.Duration
}

func newCompiler(fail ...string) *compiler {
	c := &compiler{calls: make(map[string]int), fail: make(map[string]bool)}
	for _, f := range fail {
		c.fail[f] = true
	}
	return c
}

func (c *compiler) compile(src string) (*Program, error) {
	if c.delay > 0 {
		time.Sleep(c.delay)
	}
	c.mu.Lock()
	c.calls[src]++
	fail := c.fail[src]
	c.mu.Unlock()
	if fail {
		return nil, errCompile
	}
	return NewProgram(src, nil)
}

func (c *compiler) count(src string) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.calls[src]
}

func (c *compiler) total() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := 0
	for _, v := range c.calls {
		n += v
	}
	return n
}

// fakeHost is a Host driven by an explicit Ticker.
type fakeHost struct {
	*Ticker
	invalidations atomic.Int64
}

func newFakeHost() *fakeHost {
	return &fakeHost{Ticker: NewTicker()}
}

func (h *fakeHost) Invalidate() { h.invalidations.Add(1) }

// drawCall is a snapshot of one DrawRectShader call.
type drawCall struct {
	width, height int
	tx, ty        float64
	blend         ebiten.Blend
	uniforms      map[string]any
}

// fakeSurface records shader draws instead of rendering them.
type fakeSurface struct {
	bounds image.Rectangle
	calls  []drawCall
	onDraw func()
}

func newFakeSurface(w, h int) *fakeSurface {
	return &fakeSurface{bounds: image.Rect(0, 0, w, h)}
}

func (s *fakeSurface) Bounds() image.Rectangle { return s.bounds }

func (s *fakeSurface) DrawRectShader(width, height int, _ *ebiten.Shader, op *ebiten.DrawRectShaderOptions) {
	u := make(map[string]any, len(op.Uniforms))
	for k, v := range op.Uniforms {
		if f, ok := v.([]float32); ok {
			v = append([]float32(nil), f...)
		}
		u[k] = v
	}
	s.calls = append(s.calls, drawCall{
		width:    width,
		height:   height,
		tx:       op.GeoM.Element(0, 2),
		ty:       op.GeoM.Element(1, 2),
		blend:    op.Blend,
		uniforms: u,
	})
	if s.onDraw != nil {
		s.onDraw()
	}
}

// eventLog is an EventSink recording every event.
type eventLog struct {
	mu     sync.Mutex
	events []Event
}

func (l *eventLog) Emit(e Event) {
	l.mu.Lock()
	l.events = append(l.events, e)
	l.mu.Unlock()
}

func (l *eventLog) count(t EventType) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	n := 0
	for _, e := range l.events {
		if e.Type == t {
			n++
		}
	}
	return n
}

// waitFor polls cond until it holds or a second passes.
func waitFor(t *testing.T, what string, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(time.Second)
	for !cond() {
		if time.Now().After(deadline) {
			t.Fatalf("timed out waiting for %s", what)
		}
		time.Sleep(time.Millisecond)
	}
}
