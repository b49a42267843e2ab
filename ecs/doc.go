// Package ecs provides ECS adapters for aether.
//
// [NewDonburiSink] bridges overlay lifecycle events (program unavailable,
// animation started and stopped, environment changed) into a [Donburi]
// world as typed events. Subscribe to [OverlayEventType] in your ECS
// systems to receive them. [AddLayer] stores an overlay on an entity so
// systems can query layers like any other component.
//
// Usage:
//
//	stack.SetEvents(ecs.NewDonburiSink(world))
//	o, _ := stack.Add(weather.Storm())
//	ecs.AddLayer(world, o)
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
