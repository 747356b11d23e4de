// Package gesture is a gesture recognition and arbitration engine for a
// retained node tree, built for [Ebitengine] games and tools.
//
// It turns raw touch, mouse, pen and wheel input into high-level gestures
// (tap, long press, pan, pinch, rotation, swipe) and decides, when several
// recognizers on overlapping nodes want the same fingers, which one wins.
//
// # Quick start
//
//	engine := gesture.NewEngine(gesture.DefaultConfig())
//
//	card := gesture.NewBox("card", 100, 100, 200, 120)
//	engine.Root().AddChild(card)
//
//	card.AddGesture(gesture.TapGesture{
//		Count:    2,
//		OnAction: func(ev gesture.GestureEvent) { fmt.Println("double tap") },
//	})
//	card.AddGesture(gesture.PanGesture{
//		OnActionUpdate: func(ev gesture.GestureEvent) {
//			card.X += ev.DeltaX
//			card.Y += ev.DeltaY
//		},
//	})
//
// Feed platform input with [Engine.HandleTouchEvent] and
// [Engine.HandleAxisEvent], or let the ebitensource package poll Ebitengine
// for you, and call [Engine.Update] once per frame so deadlines fire.
//
// # Hit testing
//
// On every finger down the engine walks the tree from [Engine.Root], topmost
// child first, mapping the point through each node's inverse transform.
// [Node.HitTestMode] decides whether a hit node hides the siblings beneath it,
// response regions decide whether the node itself is hit, and Clip keeps
// children outside the node's bounds from being tested. The result is an
// ordered candidate list: inner nodes before outer ones, with
// [PriorityHigh] bindings placed before the node's descendants.
//
// # Arbitration
//
// Every candidate recognizer for a finger joins that finger's scope in the
// [Referee]. A recognizer that accepts rejects every other member of every
// scope it belongs to. A recognizer that needs more time (a double tap after
// its first tap) goes PENDING, and others that want to accept meanwhile are
// blocked until it resolves. Bindings made with [PriorityParallel] take no
// part in arbitration.
//
// [GestureGroup] composes gestures: exclusive (the first to accept wins),
// parallel (all may succeed) or sequence (each step must succeed in order).
//
// # Diagnostics
//
// [Engine.SetDebugMode] traces every state transition with its reason and
// [Engine.DumpTree] prints the recognizer trees and open scopes.
//
// # ECS
//
// Nodes carrying an EntityID have their gesture events forwarded to an
// [EntityStore]; the gesture/ecs module provides one backed by [Donburi].
//
// [Ebitengine]: https://ebitengine.org
// [Donburi]: https://github.com/yohamta/donburi
package gesture
