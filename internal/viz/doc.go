// Package viz provides the terminal host for the ball simulation.
//
// The package implements an interactive TUI using the Bubble Tea framework:
//
//   - [Model]: feeds keys and mouse events to the controller and steps it
//     on every tick
//   - [Canvas]: braille pixel canvas that renders filled, colored circles
//
// # Key Bindings
//
//	Drag  - Grab and throw a ball
//	Space - Spawn a ball
//	X     - Delete the held ball
//	R     - Reset the ball set
//	P     - Pause/Resume
//	G     - Toggle the energy graph
//	Tab   - Select a physics parameter, ↑/↓ to tune it
//
// Mouse reporting needs a terminal that supports SGR mouse mode.
package viz
