package simulation

import (
	"context"
	"fmt"

	"github.com/lao-tseu-is-alive/go-boids-flock/pkg/flock"
	"github.com/tochemey/goakt/v3/actor"
	golog "github.com/tochemey/goakt/v3/log"
)

// snapshotBuffer absorbs a few frames of jitter between the world and the renderer.
const snapshotBuffer = 10

// Engine is the host side of the world: it owns the actor system, forwards
// ticks and tunings to the WorldActor and collects its snapshots.
type Engine struct {
	ctx        context.Context
	System     actor.ActorSystem
	worldPID   *actor.PID
	snapshotCh chan *Snapshot
	lastState  *Snapshot
}

// NewEngine starts an actor system and spawns the world in it.
func NewEngine(ctx context.Context, cfg *flock.Config, logger golog.Logger) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	// 1. Start the actor system
	system, err := actor.NewActorSystem("FlockWorld",
		actor.WithLogger(logger),
		actor.WithActorInitMaxRetries(3))
	if err != nil {
		return nil, fmt.Errorf("failed to create actor system: %w", err)
	}
	if err := system.Start(ctx); err != nil {
		return nil, fmt.Errorf("failed to start actor system: %w", err)
	}

	// 2. Spawn World Actor
	// We pass the channel to the World so it can push updates to us.
	snapshotCh := make(chan *Snapshot, snapshotBuffer)
	worldPID, err := system.Spawn(ctx, "world", NewWorldActor(snapshotCh, cfg))
	if err != nil {
		_ = system.Stop(ctx)
		return nil, fmt.Errorf("failed to spawn world: %w", err)
	}

	return &Engine{
		ctx:        ctx,
		System:     system,
		worldPID:   worldPID,
		snapshotCh: snapshotCh,
	}, nil
}

// Tick triggers one simulation step of dt seconds.
func (e *Engine) Tick(dt float64, pointer flock.Pointer) error {
	return actor.Tell(e.ctx, e.worldPID, NewTick(dt, pointer))
}

// Tune sends new steering rules. An invalid tuning is logged and dropped by the world.
func (e *Engine) Tune(b flock.Behaviors, maxSpeed float64) error {
	return actor.Tell(e.ctx, e.worldPID, NewTune(b, maxSpeed))
}

// Reset respawns the population.
func (e *Engine) Reset() error {
	return actor.Tell(e.ctx, e.worldPID, NewReset())
}

// Latest drains the pending snapshots without blocking and returns the most
// recent one seen so far, nil before the world reported anything.
func (e *Engine) Latest() *Snapshot {
	for {
		select {
		case snap := <-e.snapshotCh:
			e.lastState = snap
		default:
			return e.lastState
		}
	}
}

// Stop shuts the actor system down.
func (e *Engine) Stop(ctx context.Context) error {
	return e.System.Stop(ctx)
}
