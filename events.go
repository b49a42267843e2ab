package aether

// EventType identifies an overlay lifecycle event.
type EventType uint8

const (
	EventProgramUnavailable EventType = iota // shader failed to compile; content-only rendering
	EventAnimationStarted                    // scheduler task started
	EventAnimationStopped                    // scheduler task stopped
	EventEnvironmentChanged                  // power-save or reduced-motion state changed
)

// String returns a readable event name.
func (t EventType) String() string {
	switch t {
	case EventProgramUnavailable:
		return "program-unavailable"
	case EventAnimationStarted:
		return "animation-started"
	case EventAnimationStopped:
		return "animation-stopped"
	case EventEnvironmentChanged:
		return "environment-changed"
	}
	return "unknown"
}

// Event carries the overlay state at the time of the event.
type Event struct {
	Type    EventType
	Source  string // shader source of the overlay's effect
	Quality Quality
	Enabled bool
}

// EventSink receives overlay events. Emit is called from the goroutine that
// caused the event and must not block.
type EventSink interface {
	Emit(Event)
}

// EventSinkFunc adapts a function to EventSink.
type EventSinkFunc func(Event)

// Emit implements EventSink.
func (f EventSinkFunc) Emit(e Event) { f(e) }
