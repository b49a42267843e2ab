package aether

import "sync"

// Signal is a boolean system state with change notifications, such as the
// platform's power-saving mode or its reduced-motion accessibility setting.
type Signal interface {
	// Value returns the current state.
	Value() bool
	// Subscribe registers fn to be called with the new state after every
	// change. The returned function unregisters it.
	Subscribe(fn func(bool)) (cancel func())
}

// Switch is a settable Signal. Platform integrations (a battery monitor, a
// settings watcher) call Set; the zero value reads false.
type Switch struct {
	mu    sync.Mutex
	value bool
	subs  map[uint64]func(bool)
	next  uint64
}

// NewSwitch returns a Switch with the given initial state.
func NewSwitch(initial bool) *Switch {
	return &Switch{value: initial}
}

// Value returns the current state.
func (s *Switch) Value() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.value
}

// Set updates the state and notifies subscribers when it changed.
func (s *Switch) Set(v bool) {
	s.mu.Lock()
	if s.value == v {
		s.mu.Unlock()
		return
	}
	s.value = v
	fns := make([]func(bool), 0, len(s.subs))
	for _, fn := range s.subs {
		fns = append(fns, fn)
	}
	s.mu.Unlock()
	for _, fn := range fns {
		fn(v)
	}
}

// Subscribe implements Signal.
func (s *Switch) Subscribe(fn func(bool)) (cancel func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.subs == nil {
		s.subs = make(map[uint64]func(bool))
	}
	id := s.next
	s.next++
	s.subs[id] = fn
	return func() {
		s.mu.Lock()
		delete(s.subs, id)
		s.mu.Unlock()
	}
}

// Resolution is the outcome of resolving an effect against the environment.
type Resolution struct {
	Quality Quality
	Enabled bool
}

// Resolve applies the environment rules. Power saving forces QualityLow;
// reduced motion disables animated effects only.
func Resolve(requested Quality, powerSave, reducedMotion, animated bool) (Quality, bool) {
	q := requested
	if powerSave {
		q = QualityLow
	}
	return q, !(reducedMotion && animated)
}

// Environment reads the power-save and reduced-motion signals. Either signal
// may be nil, which reads as false.
type Environment struct {
	PowerSave     Signal
	ReducedMotion Signal
}

// NewEnvironment returns an Environment over the two signals.
func NewEnvironment(powerSave, reducedMotion Signal) *Environment {
	return &Environment{PowerSave: powerSave, ReducedMotion: reducedMotion}
}

// Resolve queries both signals synchronously and resolves effect against them.
// A nil Environment leaves the requested quality and enables everything.
func (e *Environment) Resolve(requested Quality, effect Effect) Resolution {
	if e == nil {
		return Resolution{Quality: requested, Enabled: true}
	}
	animated := effect != nil && effect.Animated()
	q, enabled := Resolve(requested, signalValue(e.PowerSave), signalValue(e.ReducedMotion), animated)
	return Resolution{Quality: q, Enabled: enabled}
}

// Watch calls fn whenever either signal changes. The returned function
// releases both subscriptions and is never nil.
func (e *Environment) Watch(fn func()) (cancel func()) {
	if e == nil {
		return func() {}
	}
	var cancels []func()
	for _, s := range []Signal{e.PowerSave, e.ReducedMotion} {
		if s == nil {
			continue
		}
		if c := s.Subscribe(func(bool) { fn() }); c != nil {
			cancels = append(cancels, c)
		}
	}
	var once sync.Once
	return func() {
		once.Do(func() {
			for _, c := range cancels {
				c()
			}
		})
	}
}

func signalValue(s Signal) bool {
	return s != nil && s.Value()
}
