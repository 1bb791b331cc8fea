// Package ecs provides ECS adapters for cadence's engine events.
//
// The primary adapter is [NewDonburiSink], which bridges stage events
// (visibility changes, task completion, counter wraps, menu open and close)
// into a [Donburi] world as typed events. Subscribe to [EngineEventType] in
// your ECS systems to receive them.
//
// Usage:
//
//	sink := ecs.NewDonburiSink(world)
//	stage.SetEventSink(sink)
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
