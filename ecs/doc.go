// Package ecs provides ECS adapters for gesture events.
//
// The primary adapter is [NewDonburiStore], which bridges gesture callbacks
// (tap, long press, pan, pinch, rotation, swipe) fired on nodes carrying an
// EntityID into a [Donburi] world as typed events. Subscribe to
// [GestureEventType] in your ECS systems to receive them.
//
// Usage:
//
//	store := ecs.NewDonburiStore(world)
//	engine.SetEntityStore(store)
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
