package flock

import "math"

// maxBounces bounds the reflections applied on one axis in one tick before
// the bounder gives up and clamps. A sane dt never needs more than one.
const maxBounces = 8

// Integrate advances a by dt seconds. The position moves with the velocity
// held before this tick's force is applied; the new velocity is kept for the
// next tick. The result is then reflected into arena and speed-clamped.
// a.Force is carried over untouched.
func Integrate(a Agent, dt float64, arena Arena, maxSpeed float64) Agent {
	if !(dt > 0) {
		// frozen: Inf*0 would poison the velocity
		a.Pos, a.Vel = Bound(a.Pos, a.Vel, arena, maxSpeed)
		return a
	}
	vel := a.Vel.Accelerate(a.Force, dt)
	pos := a.Pos.Advance(a.Vel, dt)
	a.Pos, a.Vel = Bound(pos, vel, arena, maxSpeed)
	return a
}

// Bound reflects pos back inside the inner rectangle of arena, flipping the
// matching velocity component on each bounce, then clamps the speed.
func Bound(pos Position, vel Velocity, arena Arena, maxSpeed float64) (Position, Velocity) {
	minX, maxX, minY, maxY := arena.Bounds()
	pos.X, vel.X = reflect(pos.X, vel.X, minX, maxX)
	pos.Y, vel.Y = reflect(pos.Y, vel.Y, minY, maxY)
	return pos, vel.Clamp(maxSpeed)
}

// reflect mirrors x across the violated border: x' = 2*border - x.
func reflect(x, v, lo, hi float64) (float64, float64) {
	if math.IsNaN(x) {
		return (lo + hi) / 2, v
	}
	for i := 0; i < maxBounces && (x < lo || x > hi); i++ {
		border := hi
		if x < lo {
			border = lo
		}
		x = 2*border - x
		v = -v
	}
	// still out after maxBounces: the step was absurdly large
	return math.Max(lo, math.Min(hi, x)), v
}
