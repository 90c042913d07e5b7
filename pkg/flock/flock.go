// Package flock implements a boids simulation: a fixed population of agents
// steering by separation, alignment and cohesion inside cones of awareness,
// optionally pushed or pulled by the mouse, integrated inside a reflecting
// rectangular arena.
//
// The package is pure computation. A Flock is not safe for concurrent use;
// the host serialises calls to it.
package flock

import (
	"math/rand/v2"
)

// Flock owns the population and runs the two phases of a tick:
// the force pass, then the integrator.
type Flock struct {
	cfg    Config
	agents []Agent
	rng    *rand.Rand
	index  *grid
	ticks  uint64
}

// New validates cfg and spawns its population.
func New(cfg *Config) (*Flock, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	seed := cfg.Seed
	if seed == 0 {
		seed = rand.Uint64()
	}
	f := &Flock{
		cfg: *cfg,
		rng: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
	}
	f.syncIndex()
	f.Respawn()
	return f, nil
}

// Respawn replaces the population with fresh random agents: positions
// uniform in the spawn region, velocity components uniform in
// [-MaxSpeed/2, MaxSpeed/2).
func (f *Flock) Respawn() {
	spawn, maxSpeed := f.cfg.Spawn, f.cfg.MaxSpeed
	f.agents = make([]Agent, f.cfg.NumAgents)
	for i := range f.agents {
		f.agents[i] = Agent{
			ID: i,
			Pos: NewPosition(
				f.rng.Float64()*spawn.Width-spawn.Width/2,
				f.rng.Float64()*spawn.Height-spawn.Height/2,
			),
			Vel: NewVelocity(
				(f.rng.Float64()-0.5)*maxSpeed,
				(f.rng.Float64()-0.5)*maxSpeed,
			),
		}
	}
	f.ticks = 0
}

// Step runs one tick: every force is computed from the state left by the
// previous tick, written back, then every agent is integrated over dt seconds.
func (f *Flock) Step(dt float64, pointer Pointer) {
	forces := computeForces(f.agents, pointer, &f.cfg, f.index)
	ApplyForces(f.agents, forces)
	for i := range f.agents {
		f.agents[i] = Integrate(f.agents[i], dt, f.cfg.Arena, f.cfg.MaxSpeed)
	}
	f.ticks++
}

// Tune swaps the steering rules and the speed limit between ticks.
func (f *Flock) Tune(b Behaviors, maxSpeed float64) error {
	next := f.cfg
	next.Behaviors = b
	next.MaxSpeed = maxSpeed
	if err := next.Validate(); err != nil {
		return err
	}
	f.cfg = next
	f.syncIndex()
	return nil
}

func (f *Flock) syncIndex() {
	f.index = nil
	if f.cfg.SpatialIndex {
		f.index = newGrid(cellSizeFor(f.cfg.Behaviors))
	}
}

// Agents returns a copy of the population, ordered by ID.
func (f *Flock) Agents() []Agent {
	out := make([]Agent, len(f.agents))
	copy(out, f.agents)
	return out
}

// Views returns the display output of the current state.
func (f *Flock) Views() []View {
	return Views(f.agents, f.cfg.MaxSpeed, f.cfg.Lightness)
}

// Config returns a copy of the active configuration.
func (f *Flock) Config() Config {
	return f.cfg
}

// Ticks is the number of ticks run since the last respawn.
func (f *Flock) Ticks() uint64 {
	return f.ticks
}

// Len is the population size.
func (f *Flock) Len() int {
	return len(f.agents)
}
