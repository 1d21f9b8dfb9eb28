// Package ecs provides ECS adapters for galaxy's interaction event system.
//
// The primary adapter is [NewDonburiSink], which bridges galaxy interaction
// events (hover, click, drag) into a [Donburi] world as typed events.
// Subscribe to [InteractionEventType] in your ECS systems to receive them.
//
// Usage:
//
//	sink := ecs.NewDonburiSink(world)
//	stage.SetEventSink(sink)
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
