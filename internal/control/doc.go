// Package control provides the pointer and keyboard controller for the ball
// world.
//
// [Controller] is a two-state machine, Idle and Dragging, over the world's
// active grab:
//
//   - PointerDown grabs the topmost ball (Idle only)
//   - PointerMove drags it and sets the throw velocity (Dragging only)
//   - PointerUp always returns to Idle
//   - KeyReset recreates the ball set, KeySpawn adds a ball, KeyDelete
//     removes the held ball
//
// # Usage
//
//	world := physics.NewWorld(physics.DefaultParams())
//	ctrl := control.New(world, rand.New(rand.NewSource(seed)), 10, sizeFn)
//	for running {
//	    // feed events: ctrl.PointerDown(x, y), ctrl.KeyPress(control.KeySpawn) ...
//	    ctrl.Step()
//	    ctrl.Render(canvas)
//	}
//
// Every transition is synchronous. Removing or resetting balls clears the
// grab in the same call, so no stale index survives into the next frame.
package control
