// Package ecs provides ECS adapters for cadence.
package ecs

import (
	"github.com/phanxgames/cadence"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

// EngineEventType is the Donburi event type for cadence engine events.
// Subscribe to this in your ECS systems to receive visibility, task
// completion, counter wrap and menu transition events.
var EngineEventType = events.NewEventType[cadence.Event]()

type donburiSink struct {
	world donburi.World
}

var _ cadence.EventSink = (*donburiSink)(nil)

// NewDonburiSink creates an EventSink backed by a Donburi world.
// Engine events are published to EngineEventType and can be consumed with
// events.Subscribe and ProcessEvents.
func NewDonburiSink(world donburi.World) cadence.EventSink {
	return &donburiSink{world: world}
}

func (s *donburiSink) Emit(event cadence.Event) {
	EngineEventType.Publish(s.world, event)
}
