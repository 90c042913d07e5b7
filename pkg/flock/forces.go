package flock

import (
	"cmp"
	"slices"
)

// ComputeForces derives the net steering force of every agent from a single
// snapshot of the population and returns it in a side buffer indexed by agent
// ID. agents is left untouched; call ApplyForces to write the result back
// once the whole scan is over. IDs must be non-negative and unique.
//
// Every agent scans its neighbours in ascending ID order whatever the order
// of agents, so permuting the input never changes a single bit of the output.
func ComputeForces(agents []Agent, pointer Pointer, cfg *Config) []Force {
	var index *grid
	if cfg.SpatialIndex {
		index = newGrid(cellSizeFor(cfg.Behaviors))
	}
	return computeForces(byID(agents), pointer, cfg, index)
}

// ApplyForces copies each agent's entry of the side buffer into its Force field.
func ApplyForces(agents []Agent, forces []Force) {
	for i := range agents {
		if id := agents[i].ID; id >= 0 && id < len(forces) {
			agents[i].Force = forces[id]
		}
	}
}

// computeForces expects snapshot sorted by ID. A nil index means a full scan.
func computeForces(snapshot []Agent, pointer Pointer, cfg *Config, index *grid) []Force {
	size := 0
	if n := len(snapshot); n > 0 {
		size = snapshot[n-1].ID + 1
	}
	forces := make([]Force, size)

	if index != nil {
		index.rebuild(snapshot)
	}
	cursor := pointer.WorldPosition(cfg.Arena)
	var scratch []Agent

	for _, base := range snapshot {
		neighbors := snapshot
		if index != nil {
			scratch = index.around(base.Pos, scratch)
			neighbors = scratch
		}
		force := steer(base, neighbors, cfg.Behaviors)
		force = force.Plus(mouseForce(base, pointer, cursor, cfg.Behaviors.Mouse))
		forces[base.ID] = force
	}
	return forces
}

// steer sums separation, alignment and cohesion for base.
func steer(base Agent, neighbors []Agent, b Behaviors) Force {
	var (
		separation  Force
		velocitySum Velocity
		positionSum Position
		aligned     int
		cohered     int
	)

	for _, other := range neighbors {
		if other.ID == base.ID {
			continue
		}
		if base.Sees(other.Pos, b.Separation) && !base.tooClose(other.Pos, b.Separation) {
			separation = separation.Plus(repulsion(base.Pos, other.Pos))
		}
		if base.Sees(other.Pos, b.Alignment) {
			velocitySum = Velocity{velocitySum.Add(other.Vel.Vector2D)}
			aligned++
		}
		if base.Sees(other.Pos, b.Cohesion) {
			positionSum = Position{positionSum.Add(other.Pos.Vector2D)}
			cohered++
		}
	}

	force := separation.Scale(b.Separation.Coefficient)
	// Div only fails on an empty neighbourhood
	if avg, err := velocitySum.Div(float64(aligned)); err == nil {
		force = force.Plus(alignment(base.Vel, Velocity{avg}).Scale(b.Alignment.Coefficient))
	}
	if centroid, err := positionSum.Div(float64(cohered)); err == nil {
		force = force.Plus(cohesion(base.Pos, Position{centroid}).Scale(b.Cohesion.Coefficient))
	}
	return force
}

// mouseForce treats the cursor as an obstacle (right button) or an
// attractor (left button). Holding both cancels out.
func mouseForce(base Agent, p Pointer, cursor Position, b Behavior) Force {
	if !p.Active() || !base.Sees(cursor, b) {
		return Force{}
	}
	var f Force
	push := repulsion(base.Pos, cursor)
	if p.Right {
		f = f.Plus(push)
	}
	if p.Left {
		f = f.Minus(push)
	}
	return f.Scale(b.Coefficient)
}

// repulsion pushes self away from obstacle with an inverse-square falloff.
// Coincident points produce no force.
func repulsion(self, obstacle Position) Force {
	dist := self.DistanceTo(obstacle)
	if !(dist > 0) {
		return Force{}
	}
	push, err := obstacle.To(self).Div(dist * dist)
	if err != nil {
		// dist*dist underflowed
		return Force{}
	}
	return Force{push}
}

// alignment steers towards the average heading of the neighbourhood.
func alignment(self, average Velocity) Force {
	return Force{average.Sub(self.Vector2D)}
}

// cohesion steers towards the neighbourhood centroid.
func cohesion(self, centroid Position) Force {
	return Force{self.To(centroid)}
}

func byID(agents []Agent) []Agent {
	snapshot := slices.Clone(agents)
	slices.SortFunc(snapshot, compareID)
	return snapshot
}

func compareID(a, b Agent) int {
	return cmp.Compare(a.ID, b.ID)
}
