package aether

import "sync"

// Effect is a parameterized visual overlay backed by a Kage shader.
//
// ShaderSource is the program cache key: it is compiled once per distinct
// string and only uniforms are re-bound from then on. Uniforms is called once
// per drawn frame and must return a fresh map. Animated reports whether the
// effect needs the continuous Time uniform and a running scheduler.
type Effect interface {
	ShaderSource() string
	Uniforms() Uniforms
	Animated() bool
}

// Observable is implemented by effects whose parameters change between
// frames. An attached Overlay observes its effect and requests a redraw on
// every notification, so parameter writes show up even while no animation
// is running.
type Observable interface {
	Observe(fn func()) (cancel func())
}

// Changes is an embeddable change notifier implementing Observable.
// The zero value is ready to use and safe for concurrent use.
type Changes struct {
	mu        sync.Mutex
	observers map[uint64]func()
	next      uint64
}

// Observe registers fn and returns a function that unregisters it.
// Calling the returned function more than once is harmless.
func (c *Changes) Observe(fn func()) (cancel func()) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.observers == nil {
		c.observers = make(map[uint64]func())
	}
	id := c.next
	c.next++
	c.observers[id] = fn
	return func() {
		c.mu.Lock()
		delete(c.observers, id)
		c.mu.Unlock()
	}
}

// Notify calls every registered observer. Observers run outside the lock
// and may themselves observe or cancel.
func (c *Changes) Notify() {
	c.mu.Lock()
	if len(c.observers) == 0 {
		c.mu.Unlock()
		return
	}
	fns := make([]func(), 0, len(c.observers))
	for _, fn := range c.observers {
		fns = append(fns, fn)
	}
	c.mu.Unlock()
	for _, fn := range fns {
		fn()
	}
}

// observeEffect subscribes fn to e when e is Observable. The returned cancel
// is never nil.
func observeEffect(e Effect, fn func()) func() {
	if o, ok := e.(Observable); ok {
		if cancel := o.Observe(fn); cancel != nil {
			return cancel
		}
	}
	return func() {}
}
