package flock

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seeded(t testing.TB, mutate func(c *Config)) *Flock {
	t.Helper()
	cfg := DefaultConfig()
	cfg.Seed = 2024
	if mutate != nil {
		mutate(cfg)
	}
	f, err := New(cfg)
	require.NoError(t, err)
	return f
}

func TestNew_RejectsInvalidConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MaxSpeed = -1

	f, err := New(cfg)

	assert.Nil(t, f)
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestNew_Population(t *testing.T) {
	f := seeded(t, nil)
	cfg := f.Config()

	agents := f.Agents()
	require.Len(t, agents, cfg.NumAgents)
	assert.Equal(t, cfg.NumAgents, f.Len())
	assert.Zero(t, f.Ticks())

	for i, a := range agents {
		assert.Equal(t, i, a.ID)
		assert.GreaterOrEqual(t, a.Pos.X, -cfg.Spawn.Width/2)
		assert.Less(t, a.Pos.X, cfg.Spawn.Width/2)
		assert.GreaterOrEqual(t, a.Pos.Y, -cfg.Spawn.Height/2)
		assert.Less(t, a.Pos.Y, cfg.Spawn.Height/2)
		assert.GreaterOrEqual(t, a.Vel.X, -cfg.MaxSpeed/2)
		assert.Less(t, a.Vel.X, cfg.MaxSpeed/2)
		assert.Equal(t, Force{}, a.Force)
	}
}

func TestNew_SameSeedSameFlock(t *testing.T) {
	a := seeded(t, nil)
	b := seeded(t, nil)
	other := seeded(t, func(c *Config) { c.Seed = 7 })

	assert.Equal(t, a.Agents(), b.Agents())
	assert.NotEqual(t, a.Agents(), other.Agents())

	pointer := Pointer{Inside: true, X: 300, Y: 200, Right: true}
	for i := 0; i < 30; i++ {
		a.Step(1.0/60, pointer)
		b.Step(1.0/60, pointer)
	}
	assert.Equal(t, a.Agents(), b.Agents())
}

func TestFlock_StepInvariants(t *testing.T) {
	for _, indexed := range []bool{false, true} {
		f := seeded(t, func(c *Config) { c.SpatialIndex = indexed })
		cfg := f.Config()

		pointers := []Pointer{
			NoPointer,
			{Inside: true, X: 350, Y: 250, Right: true},
			{Inside: true, X: 100, Y: 400, Left: true},
		}
		for tick := 0; tick < 300; tick++ {
			f.Step(1.0/60, pointers[(tick/100)%len(pointers)])
		}

		assert.Equal(t, uint64(300), f.Ticks())
		for _, a := range f.Agents() {
			assert.True(t, cfg.Arena.Contains(a.Pos), "indexed=%v %v escaped", indexed, a)
			assert.LessOrEqual(t, a.Vel.Speed(), cfg.MaxSpeed+tolerance, "indexed=%v %v too fast", indexed, a)
		}
	}
}

func TestFlock_SpatialIndexDoesNotChangeTrajectories(t *testing.T) {
	full := seeded(t, nil)
	indexed := seeded(t, func(c *Config) { c.SpatialIndex = true })

	pointer := Pointer{Inside: true, X: 420, Y: 180, Left: true}
	for i := 0; i < 60; i++ {
		full.Step(1.0/60, pointer)
		indexed.Step(1.0/60, pointer)
	}

	assert.Equal(t, full.Agents(), indexed.Agents())
}

func TestFlock_StepRecordsForces(t *testing.T) {
	f := seeded(t, func(c *Config) {
		c.NumAgents = 2
		c.Spawn = Spawn{Width: 50, Height: 50}
	})
	f.Step(1.0/60, NoPointer)

	nonZero := false
	for _, a := range f.Agents() {
		nonZero = nonZero || !a.Force.IsZero()
	}
	assert.True(t, nonZero, "two agents spawned 50 units apart must steer")
}

func TestFlock_Tune(t *testing.T) {
	f := seeded(t, nil)

	bad := DefaultBehaviors()
	bad.Alignment.SightAngle = 400
	assert.ErrorIs(t, f.Tune(bad, 100), ErrInvalidConfig)
	assert.ErrorIs(t, f.Tune(DefaultBehaviors(), 0), ErrInvalidConfig)
	assert.ErrorIs(t, f.Tune(DefaultBehaviors(), math.NaN()), ErrInvalidConfig)
	nan := DefaultBehaviors()
	nan.Cohesion.Coefficient = math.NaN()
	assert.ErrorIs(t, f.Tune(nan, 100), ErrInvalidConfig)
	inf := DefaultBehaviors()
	inf.Alignment.Radius = math.Inf(1)
	assert.ErrorIs(t, f.Tune(inf, 100), ErrInvalidConfig)
	assert.Equal(t, DefaultBehaviors(), f.Config().Behaviors, "a rejected tuning leaves the rules alone")

	good := DefaultBehaviors()
	good.Cohesion.Coefficient = 0
	require.NoError(t, f.Tune(good, 40))
	assert.Equal(t, good, f.Config().Behaviors)
	assert.Equal(t, 40.0, f.Config().MaxSpeed)

	f.Step(1.0/60, NoPointer)
	for _, a := range f.Agents() {
		assert.LessOrEqual(t, a.Vel.Speed(), 40+tolerance)
	}
}

func TestFlock_Respawn(t *testing.T) {
	f := seeded(t, nil)
	before := f.Agents()
	f.Step(1.0/60, NoPointer)
	f.Step(1.0/60, NoPointer)

	f.Respawn()

	assert.Zero(t, f.Ticks())
	assert.Equal(t, len(before), f.Len())
	assert.NotEqual(t, before, f.Agents(), "respawn draws a new population from the same stream")
}

func TestFlock_AgentsIsACopy(t *testing.T) {
	f := seeded(t, func(c *Config) { c.NumAgents = 3 })
	agents := f.Agents()
	agents[0].Pos = NewPosition(1e9, 1e9)

	assert.NotEqual(t, agents[0].Pos, f.Agents()[0].Pos)
}

func TestFlock_Empty(t *testing.T) {
	f := seeded(t, func(c *Config) { c.NumAgents = 0 })

	f.Step(1.0/60, Pointer{Inside: true, Left: true})

	assert.Empty(t, f.Agents())
	assert.Empty(t, f.Views())
	assert.Equal(t, uint64(1), f.Ticks())
}

func BenchmarkFlock_Step(b *testing.B) {
	for _, indexed := range []bool{false, true} {
		name := "full"
		if indexed {
			name = "grid"
		}
		b.Run(name, func(b *testing.B) {
			f := seeded(b, func(c *Config) {
				c.NumAgents = 500
				c.SpatialIndex = indexed
			})
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				f.Step(1.0/60, NoPointer)
			}
		})
	}
}
