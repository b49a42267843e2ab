package ecs

import (
	"testing"

	"github.com/phanxgames/aether"

	"github.com/yohamta/donburi"
)

func TestNewDonburiSink(t *testing.T) {
	world := donburi.NewWorld()
	if NewDonburiSink(world) == nil {
		t.Fatal("NewDonburiSink returned nil")
	}
}

func TestDonburiSink_Emit(t *testing.T) {
	world := donburi.NewWorld()
	sink := NewDonburiSink(world)

	var received []aether.Event
	OverlayEventType.Subscribe(world, func(w donburi.World, e aether.Event) {
		received = append(received, e)
	})

	sink.Emit(aether.Event{Type: aether.EventAnimationStarted, Quality: aether.QualityHigh, Enabled: true})
	sink.Emit(aether.Event{Type: aether.EventEnvironmentChanged, Quality: aether.QualityLow})

	if len(received) != 0 {
		t.Fatalf("events delivered before ProcessEvents: %d", len(received))
	}
	// Events are queued; process them.
	OverlayEventType.ProcessEvents(world)

	if len(received) != 2 {
		t.Fatalf("expected 2 events, got %d", len(received))
	}
	if received[0].Type != aether.EventAnimationStarted || !received[0].Enabled {
		t.Errorf("event 0: %+v", received[0])
	}
	if received[1].Type != aether.EventEnvironmentChanged || received[1].Quality != aether.QualityLow {
		t.Errorf("event 1: %+v", received[1])
	}
}

func TestOverlayEventsReachWorld(t *testing.T) {
	world := donburi.NewWorld()
	var received []aether.EventType
	OverlayEventType.Subscribe(world, func(w donburi.World, e aether.Event) {
		received = append(received, e.Type)
	})

	effect := &staticEffect{}
	o := aether.NewOverlay(effect, aether.OverlayOptions{
		Cache:  aether.NewProgramCache(1, fakeCompile),
		Events: NewDonburiSink(world),
	})
	o.Update(&staticEffect{src: "package main\n\nvar Nope = \n"}, aether.QualityHigh)
	OverlayEventType.ProcessEvents(world)

	if len(received) != 1 || received[0] != aether.EventProgramUnavailable {
		t.Errorf("received = %v, want [program-unavailable]", received)
	}
}

func TestEachLayer(t *testing.T) {
	world := donburi.NewWorld()
	cache := aether.NewProgramCache(1, fakeCompile)
	a := aether.NewOverlay(&staticEffect{}, aether.OverlayOptions{Cache: cache})
	b := aether.NewOverlay(&staticEffect{}, aether.OverlayOptions{Cache: cache})
	AddLayer(world, a)
	AddLayer(world, b)
	AddLayer(world, nil)

	seen := map[*aether.Overlay]bool{}
	EachLayer(world, func(o *aether.Overlay) { seen[o] = true })
	if len(seen) != 2 || !seen[a] || !seen[b] {
		t.Errorf("EachLayer visited %d overlays, want a and b", len(seen))
	}
}

const testSrc = `package main

var Resolution vec2
`

type staticEffect struct{ src string }

func (e *staticEffect) ShaderSource() string {
	if e.src == "" {
		return testSrc
	}
	return e.src
}
func (e *staticEffect) Uniforms() aether.Uniforms { return aether.Uniforms{} }
func (e *staticEffect) Animated() bool            { return false }

func fakeCompile(src string) (*aether.Program, error) {
	return aether.NewProgram(src, nil)
}
