package flock

import "math"

// InRange reports whether target is visible from self: no farther than
// radius, and no more than sight/2 radians away from the heading given by
// velocity. Both limits are inclusive. The check depends on self's heading
// only, so InRange(a, b, ...) and InRange(b, a, ...) generally differ.
func InRange(self, target Position, radius float64, velocity Velocity, sight float64) bool {
	off := math.Abs(self.To(target).Angle() - velocity.Heading())
	off = math.Min(off, 2*math.Pi-off)
	return off <= sight/2 && self.DistanceTo(target) <= radius
}
