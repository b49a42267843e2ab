package aether

import (
	"image"
	"reflect"
	"sync"
	"sync/atomic"

	"github.com/hajimehoshi/ebiten/v2"
)

// Uniforms supplied by the pipeline itself.
const (
	UniformResolution = "Resolution" // vec2: render target size in pixels
	UniformTime       = "Time"       // float: frame time in seconds, animated effects only
)

// Surface is a render target. *ebiten.Image satisfies it.
type Surface interface {
	Bounds() image.Rectangle
	DrawRectShader(width, height int, shader *ebiten.Shader, options *ebiten.DrawRectShaderOptions)
}

// Host is the render tree an Overlay attaches to. It supplies display ticks
// and a redraw request primitive; Invalidate must be safe to call from any
// goroutine.
type Host interface {
	TickSource
	Invalidate()
}

// OverlayOptions configures a new Overlay.
type OverlayOptions struct {
	Quality     Quality       // requested tier; the zero value is QualityLow
	Blend       BlendMode     // how the shader layer composites onto content
	Cache       *ProgramCache // nil means DefaultCache
	Environment *Environment  // nil means full quality, always enabled
	Events      EventSink     // optional lifecycle events
}

// Overlay renders one effect's shader layer over content and owns that
// effect's animation lifecycle. Attach, Detach, Update and Draw are meant to
// be called from the render goroutine; environment and effect notifications
// may arrive from any goroutine.
type Overlay struct {
	cache  *ProgramCache
	env    *Environment
	events EventSink
	blend  BlendMode

	// lifecycle serializes state transitions. The scheduler goroutine never
	// takes it, so holding it across a cancel-and-join is safe.
	lifecycle     sync.Mutex
	sched         scheduler
	host          Host
	effect        Effect
	requested     Quality
	source        string
	program       *Program
	unwatchEnv    func()
	unwatchEffect func()
	op            ebiten.DrawRectShaderOptions

	// mu guards state shared with the scheduler goroutine and notifiers.
	mu         sync.Mutex
	liveHost   Host
	quality    Quality
	enabled    bool
	gen        uint64
	frameNanos int64
	frameHook  func(gen uint64, nanos int64)

	envStale atomic.Bool
}

// NewOverlay creates a detached overlay for effect and resolves its program.
func NewOverlay(effect Effect, opts OverlayOptions) *Overlay {
	if effect == nil {
		panic("aether: NewOverlay called with nil effect")
	}
	cache := opts.Cache
	if cache == nil {
		cache = DefaultCache
	}
	o := &Overlay{
		cache:     cache,
		env:       opts.Environment,
		events:    opts.Events,
		blend:     opts.Blend,
		effect:    effect,
		requested: opts.Quality,
	}
	o.bindSource(effect.ShaderSource())
	o.applyResolution(o.env.Resolve(o.requested, effect))
	return o
}

// Attach connects the overlay to a host, starts observing the environment and
// the effect, and starts the scheduler when the effect is animated and
// enabled. Attaching to another host detaches from the current one first.
func (o *Overlay) Attach(h Host) {
	o.lifecycle.Lock()
	defer o.lifecycle.Unlock()
	if o.host == h {
		return
	}
	if o.host != nil {
		o.detachLocked()
	}
	o.host = h
	o.mu.Lock()
	o.liveHost = h
	o.mu.Unlock()

	o.unwatchEnv = o.env.Watch(o.environmentChanged)
	o.unwatchEffect = observeEffect(o.effect, o.invalidate)
	// Initial resolution is synchronous so the first frame is right.
	o.envStale.Store(false)
	o.applyResolution(o.env.Resolve(o.requested, o.effect))
	o.restartLocked()
	h.Invalidate()
}

// Detach cancels the animation task and releases all subscriptions. It
// returns once the task's goroutine has exited.
func (o *Overlay) Detach() {
	o.lifecycle.Lock()
	defer o.lifecycle.Unlock()
	o.detachLocked()
}

func (o *Overlay) detachLocked() {
	if o.host == nil {
		return
	}
	if o.unwatchEnv != nil {
		o.unwatchEnv()
		o.unwatchEnv = nil
	}
	if o.unwatchEffect != nil {
		o.unwatchEffect()
		o.unwatchEffect = nil
	}
	o.mu.Lock()
	o.gen++
	o.liveHost = nil
	o.mu.Unlock()
	if o.sched.running() {
		o.sched.stop()
		o.emit(EventAnimationStopped)
	}
	o.host = nil
}

// Update replaces the effect and requested quality. The program is looked up
// again only when the shader source changed, and the scheduler restarts only
// when the source, effective quality, enabled flag or animated flag changed.
// A redraw is always requested.
func (o *Overlay) Update(effect Effect, quality Quality) {
	if effect == nil {
		panic("aether: Overlay.Update called with nil effect")
	}
	o.lifecycle.Lock()
	defer o.lifecycle.Unlock()

	prev := o.effect
	sourceChanged := o.bindSource(effect.ShaderSource())
	animatedChanged := prev.Animated() != effect.Animated()
	o.effect = effect
	o.requested = quality

	if o.host != nil && !sameEffect(prev, effect) {
		o.unwatchEffect()
		o.unwatchEffect = observeEffect(effect, o.invalidate)
	}

	o.envStale.Store(false)
	resolutionChanged := o.applyResolution(o.env.Resolve(quality, effect))
	if sourceChanged || animatedChanged || resolutionChanged {
		o.restartLocked()
	}
	o.invalidate()
}

// Refresh re-resolves the environment if a signal changed since the last
// resolution, restarting the scheduler when the outcome differs. Draw calls
// it; hosts may also call it from their update step.
func (o *Overlay) Refresh() {
	if !o.envStale.CompareAndSwap(true, false) {
		return
	}
	o.lifecycle.Lock()
	defer o.lifecycle.Unlock()
	if o.applyResolution(o.env.Resolve(o.requested, o.effect)) {
		o.restartLocked()
	}
	o.emit(EventEnvironmentChanged)
}

// Draw draws content, then the effect's shader over dst's bounds. Only content
// is drawn while the overlay is detached, disabled, or has no program.
func (o *Overlay) Draw(dst Surface, content func()) {
	if content != nil {
		content()
	}
	o.Refresh()

	o.lifecycle.Lock()
	defer o.lifecycle.Unlock()
	o.mu.Lock()
	attached, enabled, frame := o.liveHost != nil, o.enabled, o.frameNanos
	o.mu.Unlock()
	p := o.program
	if !attached || !enabled || p == nil {
		return
	}
	b := dst.Bounds()
	w, h := b.Dx(), b.Dy()
	if w <= 0 || h <= 0 {
		return
	}

	p.resetValues()
	Bind(p, UniformResolution, Float2(float32(w), float32(h)))
	if o.effect.Animated() {
		Bind(p, UniformTime, Float1(float32(float64(frame)/nanosPerSecond)))
	}
	BindAll(p, o.effect.Uniforms())

	o.op.GeoM.Reset()
	o.op.GeoM.Translate(float64(b.Min.X), float64(b.Min.Y))
	o.op.Blend = o.blend.EbitenBlend()
	o.op.Uniforms = p.values
	dst.DrawRectShader(w, h, p.shader, &o.op)
}

// Effect returns the current effect.
func (o *Overlay) Effect() Effect {
	o.lifecycle.Lock()
	defer o.lifecycle.Unlock()
	return o.effect
}

// Program returns the bound program, or nil when it failed to compile.
func (o *Overlay) Program() *Program {
	o.lifecycle.Lock()
	defer o.lifecycle.Unlock()
	return o.program
}

// Quality returns the effective (resolved) quality.
func (o *Overlay) Quality() Quality {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.quality
}

// Enabled reports whether the shader layer is drawn.
func (o *Overlay) Enabled() bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.enabled
}

// FrameTime returns the timestamp of the last accepted tick in nanoseconds.
func (o *Overlay) FrameTime() int64 {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.frameNanos
}

// Attached reports whether the overlay has a host.
func (o *Overlay) Attached() bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.liveHost != nil
}

// Running reports whether the animation scheduler is active.
func (o *Overlay) Running() bool {
	o.lifecycle.Lock()
	defer o.lifecycle.Unlock()
	return o.sched.running()
}

// bindSource looks up the program when src differs from the bound source and
// reports whether it did.
func (o *Overlay) bindSource(src string) bool {
	if o.program != nil && src == o.source {
		return false
	}
	if o.program == nil && src == o.source && o.source != "" {
		// Same failing source: do not retry until the source changes.
		return false
	}
	o.source = src
	o.program = o.cache.Get(src)
	if o.program == nil {
		o.emit(EventProgramUnavailable)
	}
	return true
}

// applyResolution stores res and reports whether it changed anything.
func (o *Overlay) applyResolution(res Resolution) bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	changed := o.quality != res.Quality || o.enabled != res.Enabled
	o.quality = res.Quality
	o.enabled = res.Enabled
	return changed
}

// restartLocked stops any running task and starts a fresh one if the start
// rule holds. The generation is bumped first so a tick already in flight from
// the old task is rejected by acceptFrame.
func (o *Overlay) restartLocked() {
	o.mu.Lock()
	o.gen++
	gen, q, enabled := o.gen, o.quality, o.enabled
	o.mu.Unlock()

	wasRunning := o.sched.running()
	o.sched.stop()
	if o.host != nil && enabled && o.effect.Animated() {
		o.sched.start(o.host, q, gen, o.acceptFrame)
		o.emit(EventAnimationStarted)
		return
	}
	if wasRunning {
		o.emit(EventAnimationStopped)
	}
}

// acceptFrame runs on the scheduler goroutine.
func (o *Overlay) acceptFrame(gen uint64, nanos int64) {
	o.mu.Lock()
	if gen != o.gen || nanos < o.frameNanos || o.liveHost == nil {
		o.mu.Unlock()
		return
	}
	o.frameNanos = nanos
	if o.frameHook != nil {
		o.frameHook(gen, nanos)
	}
	h := o.liveHost
	o.mu.Unlock()
	h.Invalidate()
}

func (o *Overlay) environmentChanged() {
	o.envStale.Store(true)
	o.invalidate()
}

func (o *Overlay) invalidate() {
	o.mu.Lock()
	h := o.liveHost
	o.mu.Unlock()
	if h != nil {
		h.Invalidate()
	}
}

func (o *Overlay) emit(t EventType) {
	if o.events == nil {
		return
	}
	o.mu.Lock()
	e := Event{Type: t, Source: o.source, Quality: o.quality, Enabled: o.enabled}
	o.mu.Unlock()
	o.events.Emit(e)
}

// sameEffect compares effects without panicking on uncomparable dynamic types.
func sameEffect(a, b Effect) bool {
	ta, tb := reflect.TypeOf(a), reflect.TypeOf(b)
	if ta != tb || !ta.Comparable() {
		return false
	}
	return a == b
}
