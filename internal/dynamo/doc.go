// Package dynamo provides the shared primitives of the ball simulation.
//
// The package defines the small value types every other package speaks:
//
//   - [Vec2]: 2D point or vector in window coordinates
//   - [Color]: opaque RGBA display color
//   - [Bounds]: drawable surface size (width × height)
//   - [Canvas]: drawing surface a host renders circles onto
//
// # Coordinates
//
// Positions are in window pixels with the origin at the top left and y
// growing downwards, so gravity is a positive y increment and the floor is
// at y == Bounds.Height.
//
// # Thread Safety
//
// Nothing here is synchronized. The simulation is driven from a single host
// loop; see [github.com/san-kum/balls/internal/control].
package dynamo
