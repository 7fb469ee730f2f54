// Package physics implements the ball world and its per-frame step.
//
// A [World] owns a list of [Ball] values kept sorted largest to smallest and
// an optional active [Grab] naming the ball the pointer holds. [World.Step]
// runs four phases in a fixed order:
//
//  1. gravity for every airborne, non-active ball
//  2. Euler integration, pos += vel, with no time step scaling
//  3. penetration resolution for every ordered pair (i, j), moving only i
//  4. wall clamping with a restitution bounce (left, right and floor)
//
// Collision response is asymmetric: each side of an overlapping pair moves
// itself away when it is visited as i. Overlaps shrink over several frames
// rather than vanishing in one.
//
// # Mass
//
// Velocity changes are scaled by [Params.MassFalloff], so large balls are
// harder to push and bounce less.
package physics
