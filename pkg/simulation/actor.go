package simulation

import (
	"time"

	"github.com/tochemey/goakt/v3/actor"
	"github.com/tochemey/goakt/v3/goaktpb"
)

// FlockActor owns the authoritative World. Every Tick advances it by one
// frame and pushes a Snapshot to the UI channel; because an actor handles
// one message at a time, weight updates always land between two frames.
type FlockActor struct {
	cfg   *Config
	world *World
	// Communication with UI
	snapshotCh chan<- *Snapshot
	// --- Benchmark Stats ---
	stepCount    int
	droppedCount int
	lastLogTime  time.Time
}

var _ actor.Actor = (*FlockActor)(nil)

// NewFlockActor creates the flock logic unit. snapshotCh may be nil when
// nobody renders the simulation.
func NewFlockActor(snapshotCh chan<- *Snapshot, cfg *Config) *FlockActor {
	return &FlockActor{
		cfg:         cfg,
		snapshotCh:  snapshotCh,
		lastLogTime: time.Now(),
	}
}

func (f *FlockActor) PreStart(ctx *actor.Context) error {
	ctx.ActorSystem().Logger().Infof("Flock is spawning %d agents (%s, %s)...",
		f.cfg.Population, f.cfg.Variant, f.cfg.Topology)
	f.world = NewWorld(f.cfg)
	return nil
}

func (f *FlockActor) Receive(ctx *actor.ReceiveContext) {
	switch msg := ctx.Message().(type) {
	case *goaktpb.PostStart:
		ctx.Logger().Infof("Flock started, seed %d", f.world.Seed())
		f.pushSnapshot()

	case *Tick:
		f.world.Step()
		f.stepCount++
		f.logBenchmarks(ctx)
		f.pushSnapshot()

	case *UpdateWeights:
		w := WeightsFromUpdate(msg, f.world.Weights())
		f.world.SetWeights(w)
		ctx.Logger().Debugf("Weights updated: %+v", w)

	case *Reset:
		f.world.Reset(msg.GetValue())
		ctx.Logger().Infof("Flock respawned, seed %d", f.world.Seed())
		f.pushSnapshot()

	default:
		ctx.Unhandled()
	}
}

func (f *FlockActor) PostStop(ctx *actor.Context) error {
	ctx.ActorSystem().Logger().Infof("Flock stopped after %d frames", f.world.Frames())
	return nil
}

func (f *FlockActor) logBenchmarks(ctx *actor.ReceiveContext) {
	if time.Since(f.lastLogTime) >= time.Second {
		ctx.Logger().Infof("📊 FRAME RATE: %d/sec (dropped snapshots: %d) | Agents: %d",
			f.stepCount, f.droppedCount, f.world.Len())
		f.stepCount = 0
		f.droppedCount = 0
		f.lastLogTime = time.Now()
	}
}

func (f *FlockActor) pushSnapshot() {
	if f.snapshotCh == nil {
		return
	}
	select {
	case f.snapshotCh <- f.world.Snapshot():
	default:
		// UI busy, skip frame
		f.droppedCount++
	}
}
