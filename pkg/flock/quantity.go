package flock

import (
	"math"

	"github.com/lao-tseu-is-alive/go-boids-flock/pkg/geometry"
)

// Position, Velocity and Force share geometry.Vector2D for their arithmetic
// but are distinct types: a Force can only reach a Position through a
// Velocity and a time step.

// Position is a point in the simulation frame (origin at the arena centre, y up).
type Position struct{ geometry.Vector2D }

// Velocity is expressed in units per second.
type Velocity struct{ geometry.Vector2D }

// Force is the steering acceleration applied to one agent for one tick.
type Force struct{ geometry.Vector2D }

func NewPosition(x, y float64) Position { return Position{geometry.NewVector(x, y)} }
func NewVelocity(x, y float64) Velocity { return Velocity{geometry.NewVector(x, y)} }
func NewForce(x, y float64) Force       { return Force{geometry.NewVector(x, y)} }

// DistanceTo returns the Euclidean distance between two positions.
func (p Position) DistanceTo(other Position) float64 {
	return p.Vector2D.DistanceTo(other.Vector2D)
}

// To returns the displacement from p to target.
func (p Position) To(target Position) geometry.Vector2D {
	return target.Sub(p.Vector2D)
}

// Advance moves p along v for dt seconds.
func (p Position) Advance(v Velocity, dt float64) Position {
	return Position{p.Add(v.Mul(dt))}
}

// Accelerate applies f to v for dt seconds.
func (v Velocity) Accelerate(f Force, dt float64) Velocity {
	return Velocity{v.Add(f.Mul(dt))}
}

// Heading is the direction of travel in radians, within [-Pi, Pi].
// A velocity of exactly zero has no direction and reports 0.
func (v Velocity) Heading() float64 {
	return v.Angle()
}

// Speed is the magnitude of v.
func (v Velocity) Speed() float64 {
	return v.Len()
}

// Clamp rescales v to exactly max when its magnitude reaches or exceeds max.
// A NaN component has no direction and is dropped to 0.
func (v Velocity) Clamp(max float64) Velocity {
	if math.IsNaN(v.X) {
		v.X = 0
	}
	if math.IsNaN(v.Y) {
		v.Y = 0
	}
	speed := v.Len()
	if speed < max {
		return v
	}
	if math.IsInf(speed, 0) {
		// keep only the direction of the infinite components
		dir := geometry.NewVector(infSign(v.X), infSign(v.Y))
		return Velocity{dir.Normalize().Mul(max)}
	}
	if speed == 0 {
		return v
	}
	return Velocity{v.Mul(max / speed)}
}

func infSign(x float64) float64 {
	switch {
	case math.IsInf(x, 1):
		return 1
	case math.IsInf(x, -1):
		return -1
	}
	return 0
}

// Plus returns the sum of two forces.
func (f Force) Plus(other Force) Force {
	return Force{f.Add(other.Vector2D)}
}

// Minus returns f with other taken away.
func (f Force) Minus(other Force) Force {
	return Force{f.Sub(other.Vector2D)}
}

// Scale multiplies the force by a coefficient.
func (f Force) Scale(k float64) Force {
	return Force{f.Mul(k)}
}
