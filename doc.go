// Package cadence is a deterministic motion scheduler and interaction-state
// engine for scroll-driven pages and game screens.
//
// Cadence decides when things move and what they look like at any instant:
// regions that reveal themselves as they scroll into view, staggered
// sequences, ambient loops, a free-running progress counter, and a dropdown
// menu whose document-level listeners exist exactly while it is open. It
// produces plain property values; drawing them is the host's job (see the
// cadence/host package for an [Ebitengine] host).
//
// # Quick start
//
// Build a [Stage], mount regions, attach animations, and drive it from any
// frame loop:
//
//	stage := cadence.NewStage(cadence.Size{Width: 1280, Height: 720})
//	hero := stage.AddRegion("hero", cadence.Rect{Y: 900, Width: 1280, Height: 400})
//	stage.Reveal(hero, cadence.ObserveOptions{Once: true},
//		cadence.FadeUp("title", 30, 800*time.Millisecond, 0))
//
//	for {
//		stage.Tick(16 * time.Millisecond)
//		frame := stage.Snapshot()
//		// ... draw frame.Targets["title"] ...
//	}
//
// Whole pages can also be described in YAML and loaded with
// [LoadPageConfig] and [Build].
//
// # Tick order
//
// Each [Stage.Tick] runs, in order: the attached [TestRunner], queued input
// (clicks, keys, scroll, resize) in arrival order, visibility evaluation,
// task and stagger updates, counters, menu presence animations, and finally
// pruning of disposed regions. Nothing runs concurrently and nothing is
// evaluated outside Tick, so identical input produces identical frames.
//
// # Lifetimes
//
// Tasks, stagger groups, counters and observations belong to a [Region].
// [Region.Dispose] stops all of them synchronously. A [Menu] removes its
// listeners on every path out of the open state, including [Menu.Dispose].
//
// Tweens and easing come from [gween]. Engine events can be forwarded into a
// [Donburi] world with the cadence/ecs package.
//
// [Ebitengine]: https://ebitengine.org
// [gween]: https://github.com/tanema/gween
// [Donburi]: https://github.com/yohamta/donburi
package cadence
