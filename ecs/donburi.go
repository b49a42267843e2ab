package ecs

import (
	"github.com/phanxgames/aether"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
	"github.com/yohamta/donburi/filter"
)

// OverlayEventType is the Donburi event type for aether overlay events.
var OverlayEventType = events.NewEventType[aether.Event]()

type donburiSink struct {
	world donburi.World
}

// NewDonburiSink creates an EventSink backed by a Donburi world. Events are
// queued on OverlayEventType and delivered by ProcessEvents. Overlays emit
// from the goroutine calling Attach, Update, Draw or Detach, so the world is
// only touched from the game loop.
func NewDonburiSink(world donburi.World) aether.EventSink {
	return &donburiSink{world: world}
}

func (s *donburiSink) Emit(event aether.Event) {
	OverlayEventType.Publish(s.world, event)
}

// LayerData holds an overlay attached to an entity.
type LayerData struct {
	Overlay *aether.Overlay
}

// Layer is the Donburi component carrying LayerData.
var Layer = donburi.NewComponentType[LayerData]()

var layerQuery = donburi.NewQuery(filter.Contains(Layer))

// AddLayer creates an entity holding o.
func AddLayer(world donburi.World, o *aether.Overlay) donburi.Entity {
	entity := world.Create(Layer)
	Layer.SetValue(world.Entry(entity), LayerData{Overlay: o})
	return entity
}

// EachLayer calls fn for every overlay stored in world. Entities whose
// overlay is nil are skipped.
func EachLayer(world donburi.World, fn func(*aether.Overlay)) {
	layerQuery.Each(world, func(e *donburi.Entry) {
		if o := Layer.Get(e).Overlay; o != nil {
			fn(o)
		}
	})
}
