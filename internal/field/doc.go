// Package field implements the particle field behind the plexus renderer.
//
// A [Field] is an ordered set of [Particle] records that drift across a
// viewport, bounce off its edges, are nudged toward the pointer and are
// joined by faint lines when two of them come close:
//
//   - [Scene]: explicit context holding bounds, pointer and the current field
//   - [Step]: one tick of update-and-draw, returning a [Frame]
//   - [Frame]: ordered render commands (clear, circles, lines)
//
// # Example
//
//	scene, _ := field.NewScene(1280, 720, field.DefaultParams(), rand.New(rand.NewSource(1)))
//	scene.MovePointer(640, 360)
//	frame := scene.Tick()
//	render.Replay(frame, surface)
//
// # Thread Safety
//
// Scene is NOT safe for concurrent use. Hosts that deliver pointer or resize
// events from another goroutine must funnel them through host.Loop.
package field
