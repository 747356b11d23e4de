// Package ecs provides ECS adapters for gesture.
package ecs

import (
	"github.com/phanxgames/gesture"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

// GestureEventType is the Donburi event type for gesture events.
// Subscribe to this in your ECS systems to receive tap, long press, pan,
// pinch, rotation and swipe callbacks.
//
// Each event is published once per callback, in firing order: a pan yields
// an EventActionStart, then EventActionUpdate events, then EventActionEnd or
// EventActionCancel, a long press yields an EventAction per repeat and then
// EventActionEnd, and taps and swipes yield a single EventAction. Kind
// and Type say which payload fields are set (Count for taps, OffsetX/Y and
// VelocityX/Y for pans, Scale for pinches, Angle for rotations, Speed for
// swipes). Node is always nil; match on EntityID instead.
var GestureEventType = events.NewEventType[gesture.GestureEvent]()

type donburiStore struct {
	world donburi.World
}

// NewDonburiStore creates an EntityStore backed by a Donburi world.
// Gesture events are published to GestureEventType and can be consumed with
// events.Subscribe and ProcessEvents. The engine only forwards events from
// nodes with a non-zero EntityID, and only for gestures that won
// arbitration; rejected recognizers publish nothing.
func NewDonburiStore(world donburi.World) gesture.EntityStore {
	return &donburiStore{world: world}
}

func (s *donburiStore) EmitEvent(event gesture.GestureEvent) {
	// The node pointer is engine-side state; entities refer to it by
	// EntityID only.
	event.Node = nil
	GestureEventType.Publish(s.world, event)
}
