package simulation

import (
	"time"

	"github.com/lao-tseu-is-alive/go-boids-flock/pkg/flock"
	"github.com/tochemey/goakt/v3/actor"
	"github.com/tochemey/goakt/v3/goaktpb"
	"google.golang.org/protobuf/types/known/structpb"
)

// Snapshot is the state handed to the renderer after every change.
type Snapshot struct {
	Tick   uint64
	Views  []flock.View
	Config flock.Config // active tuning, so the overlay can draw the mouse radius
	Step   time.Duration
}

// WorldActor owns the flock. Every mutation goes through its mailbox, so the
// flock itself never sees two callers at once.
type WorldActor struct {
	cfg   *flock.Config
	flock *flock.Flock
	// Communication with UI
	snapshotCh chan<- *Snapshot
	// --- Benchmark Stats ---
	tickCount   int
	stepTime    time.Duration
	lastLogTime time.Time
}

var _ actor.Actor = (*WorldActor)(nil)

// NewWorldActor creates the world logic unit. The flock is spawned in PreStart.
func NewWorldActor(snapshotCh chan<- *Snapshot, cfg *flock.Config) *WorldActor {
	return &WorldActor{
		cfg:         cfg,
		snapshotCh:  snapshotCh,
		lastLogTime: time.Now(),
	}
}

func (w *WorldActor) PreStart(ctx *actor.Context) error {
	ctx.ActorSystem().Logger().Infof("World is spawning a flock of %d agents...", w.cfg.NumAgents)
	f, err := flock.New(w.cfg)
	if err != nil {
		return err
	}
	w.flock = f
	return nil
}

func (w *WorldActor) Receive(ctx *actor.ReceiveContext) {
	switch msg := ctx.Message().(type) {
	case *goaktpb.PostStart:
		ctx.Logger().Info("World Started.")
		w.pushSnapshot(0)

	case *structpb.Struct:
		switch KindOf(msg) {
		// The Main Simulation Step (Driven by Game Loop)
		case KindTick:
			dt, pointer := DecodeTick(msg)
			start := time.Now()
			w.flock.Step(dt, pointer)
			elapsed := time.Since(start)

			w.logBenchmarks(ctx, elapsed)
			w.pushSnapshot(elapsed)

		// Handle dynamic slider updates from UI
		case KindTune:
			behaviors, maxSpeed := DecodeTune(msg)
			if err := w.flock.Tune(behaviors, maxSpeed); err != nil {
				ctx.Logger().Warnf("tuning rejected: %v", err)
				return
			}
			ctx.Logger().Debugf("tuning applied, maxSpeed=%.1f", maxSpeed)

		case KindReset:
			w.flock.Respawn()
			ctx.Logger().Infof("flock respawned with %d agents", w.flock.Len())
			w.pushSnapshot(0)

		default:
			ctx.Unhandled()
		}

	default:
		ctx.Unhandled()
	}
}

func (w *WorldActor) PostStop(ctx *actor.Context) error {
	ctx.ActorSystem().Logger().Info("World is shutdown...")
	return nil
}

func (w *WorldActor) logBenchmarks(ctx *actor.ReceiveContext, elapsed time.Duration) {
	w.tickCount++
	w.stepTime += elapsed
	if time.Since(w.lastLogTime) >= time.Second {
		ctx.Logger().Infof("📊 TICK RATE: %d/sec (avg step %s) | Agents: %d | Tick: %d",
			w.tickCount, w.stepTime/time.Duration(w.tickCount), w.flock.Len(), w.flock.Ticks())
		w.tickCount = 0
		w.stepTime = 0
		w.lastLogTime = time.Now()
	}
}

func (w *WorldActor) pushSnapshot(elapsed time.Duration) {
	select {
	case w.snapshotCh <- w.buildSnapshot(elapsed):
	default:
		// UI busy, skip frame
	}
}

func (w *WorldActor) buildSnapshot(elapsed time.Duration) *Snapshot {
	return &Snapshot{
		Tick:   w.flock.Ticks(),
		Views:  w.flock.Views(),
		Config: w.flock.Config(),
		Step:   elapsed,
	}
}
