package aether

import (
	"errors"
	"os"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

// MaxLayers is the number of overlays a Stack composites.
const MaxLayers = 5

var (
	// ErrLayerLimit is returned by Stack.Add when MaxLayers are in use.
	ErrLayerLimit = errors.New("aether: layer limit reached")
	// ErrNilEffect is returned by Stack.Add for a nil effect.
	ErrNilEffect = errors.New("aether: nil effect")
)

// Supported reports whether shader effects can run. Every Ebitengine graphics
// backend executes Kage, so only AETHER_DISABLED turns it off; hosts on
// other targets may replace it.
var Supported = func() bool {
	disabled, _ := strconv.ParseBool(os.Getenv(EnvDisabled))
	return !disabled
}

// Stack is the host render tree for up to MaxLayers overlays drawn over one
// content callback. It ticks the display ticker on every Draw, collects redraw
// requests, and renders Fallback instead of any shader work when effects are
// unsupported.
type Stack struct {
	// Fallback, if set, is drawn after content when shaders are unsupported.
	Fallback func(dst *ebiten.Image)

	ticker    *Ticker
	cache     *ProgramCache
	env       *Environment
	powerSave *Switch
	reduced   *Switch
	quality   Quality
	supported bool
	events    EventSink
	layers    []*Overlay
	dirty     atomic.Bool

	debug     bool
	debugLast time.Time
	redraws   atomic.Uint64
}

// NewStack creates a Stack from cfg. Its environment is backed by two
// Switches reachable through PowerSave and ReducedMotion.
func NewStack(cfg Config) *Stack {
	s := &Stack{
		ticker:    NewTicker(),
		cache:     NewProgramCache(cfg.CacheSize, nil),
		powerSave: NewSwitch(cfg.PowerSave),
		reduced:   NewSwitch(cfg.ReducedMotion),
		quality:   cfg.Quality,
		supported: !cfg.Disabled && Supported(),
		debug:     cfg.Debug,
	}
	s.env = NewEnvironment(s.powerSave, s.reduced)
	s.dirty.Store(true)
	return s
}

// Supported reports whether the stack runs the shader pipeline.
func (s *Stack) Supported() bool { return s.supported }

// PowerSave returns the switch feeding the power-save signal.
func (s *Stack) PowerSave() *Switch { return s.powerSave }

// ReducedMotion returns the switch feeding the reduced-motion signal.
func (s *Stack) ReducedMotion() *Switch { return s.reduced }

// Environment returns the stack's environment.
func (s *Stack) Environment() *Environment { return s.env }

// Cache returns the stack's program cache.
func (s *Stack) Cache() *ProgramCache { return s.cache }

// SetEvents sets the sink receiving events from layers added afterwards.
func (s *Stack) SetEvents(sink EventSink) { s.events = sink }

// SetDebugMode enables or disables per-second stats on stderr.
func (s *Stack) SetDebugMode(enabled bool) { s.debug = enabled }

// Add creates and attaches a layer for effect at the stack's configured
// quality. It returns (nil, nil) when shaders are unsupported: the stack then
// draws the fallback and none of the pipeline runs.
func (s *Stack) Add(effect Effect) (*Overlay, error) {
	return s.AddWithOptions(effect, OverlayOptions{Quality: s.quality})
}

// AddWithOptions is Add with explicit options. Cache and Environment default
// to the stack's own.
func (s *Stack) AddWithOptions(effect Effect, opts OverlayOptions) (*Overlay, error) {
	if effect == nil {
		return nil, ErrNilEffect
	}
	if !s.supported {
		return nil, nil
	}
	if len(s.layers) >= MaxLayers {
		return nil, ErrLayerLimit
	}
	if opts.Cache == nil {
		opts.Cache = s.cache
	}
	if opts.Environment == nil {
		opts.Environment = s.env
	}
	if opts.Events == nil {
		opts.Events = s.events
	}
	o := NewOverlay(effect, opts)
	s.layers = append(s.layers, o)
	o.Attach(s)
	return o, nil
}

// Remove detaches o and drops it from the stack. Removing nil or a layer of
// another stack is a no-op.
func (s *Stack) Remove(o *Overlay) {
	for i, l := range s.layers {
		if l == o {
			s.layers = append(s.layers[:i], s.layers[i+1:]...)
			o.Detach()
			s.Invalidate()
			return
		}
	}
}

// Layers returns the stack's overlays bottom first. The returned slice MUST
// NOT be mutated.
func (s *Stack) Layers() []*Overlay { return s.layers }

// Close detaches every layer.
func (s *Stack) Close() {
	for _, l := range s.layers {
		l.Detach()
	}
	s.layers = nil
}

// Subscribe implements TickSource.
func (s *Stack) Subscribe() (<-chan int64, func()) {
	return s.ticker.Subscribe()
}

// Invalidate implements Host. It is safe for concurrent use.
func (s *Stack) Invalidate() {
	s.redraws.Add(1)
	s.dirty.Store(true)
}

// NeedsRedraw reports whether anything requested a redraw since the last Draw,
// and stays true while any layer animates: display ticks come from Draw, so
// skipping it would starve the animation. Hosts that keep the previous frame
// (ebiten.SetScreenClearedEveryFrame(false)) can skip drawing when it returns
// false.
func (s *Stack) NeedsRedraw() bool {
	if s.dirty.Load() {
		return true
	}
	for _, l := range s.layers {
		if l.Running() {
			return true
		}
	}
	return false
}

// Update propagates environment changes to every layer. Call it from the
// game's Update.
func (s *Stack) Update() {
	for _, l := range s.layers {
		l.Refresh()
	}
}

// Draw publishes a display tick, then draws content followed by each layer's
// shader. content may be nil.
func (s *Stack) Draw(screen *ebiten.Image, content func(dst *ebiten.Image)) {
	drawContent := func() {
		if content != nil {
			content(screen)
		}
	}
	if !s.supported {
		s.dirty.Store(false)
		drawContent()
		if s.Fallback != nil {
			s.Fallback(screen)
		}
		return
	}
	s.drawSurface(screen, drawContent)
}

func (s *Stack) drawSurface(dst Surface, content func()) {
	s.dirty.Store(false)
	s.ticker.Tick(s.ticker.Now())
	if len(s.layers) == 0 {
		content()
	}
	for i, l := range s.layers {
		if i == 0 {
			l.Draw(dst, content)
			continue
		}
		l.Draw(dst, nil)
	}
	s.debugLog()
}
