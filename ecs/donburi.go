// Package ecs provides ECS adapters for galaxy.
package ecs

import (
	"github.com/phanxgames/galaxy"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

// InteractionEventType is the Donburi event type for galaxy interaction events.
// Subscribe to this in your ECS systems to receive hover, click, and drag events.
var InteractionEventType = events.NewEventType[galaxy.InteractionEvent]()

type donburiSink struct {
	world donburi.World
}

// NewDonburiSink creates an EventSink backed by a Donburi world.
// Interaction events are published to InteractionEventType and can be
// consumed with events.Subscribe and ProcessEvents.
func NewDonburiSink(world donburi.World) galaxy.EventSink {
	return &donburiSink{world: world}
}

func (s *donburiSink) EmitEvent(event galaxy.InteractionEvent) {
	InteractionEventType.Publish(s.world, event)
}
