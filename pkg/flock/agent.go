package flock

import "fmt"

// Agent is one boid. ID is its index in the population and never changes.
// Force is transient: it is rewritten by every force pass and only read by
// the integrator of the same tick.
type Agent struct {
	ID    int
	Pos   Position
	Vel   Velocity
	Force Force
}

func (a Agent) String() string {
	return fmt.Sprintf("agent-%03d pos=%s vel=%s", a.ID, a.Pos, a.Vel)
}

// Sees reports whether target lies inside the awareness cone b of this agent.
func (a Agent) Sees(target Position, b Behavior) bool {
	return InRange(a.Pos, target, b.Radius, a.Vel, b.Sight())
}

// tooClose reports whether target lies inside the separation dead zone.
func (a Agent) tooClose(target Position, b Behavior) bool {
	return InRange(a.Pos, target, b.MinRange, a.Vel, b.Sight())
}
