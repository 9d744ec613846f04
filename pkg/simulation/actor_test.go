package simulation

import (
	"context"
	"testing"
	"time"

	"github.com/lao-tseu-is-alive/go-boids-flocking/pkg/behavior"
	"github.com/tochemey/goakt/v3/actor"
	golog "github.com/tochemey/goakt/v3/log"
)

func startFlock(t *testing.T, cfg *Config) (context.Context, *actor.PID, chan *Snapshot) {
	t.Helper()
	ctx := context.Background()

	system, err := actor.NewActorSystem("FlockTest",
		actor.WithLogger(golog.DiscardLogger),
		actor.WithActorInitMaxRetries(3))
	if err != nil {
		t.Fatalf("NewActorSystem: %v", err)
	}
	if err := system.Start(ctx); err != nil {
		t.Fatalf("Start: %v", err)
	}
	t.Cleanup(func() { _ = system.Stop(ctx) })

	snapshotCh := make(chan *Snapshot, 16)
	pid, err := system.Spawn(ctx, "flock", NewFlockActor(snapshotCh, cfg))
	if err != nil {
		t.Fatalf("Spawn: %v", err)
	}
	return ctx, pid, snapshotCh
}

func nextSnapshot(t *testing.T, ch <-chan *Snapshot) *Snapshot {
	t.Helper()
	select {
	case snap := <-ch:
		return snap
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for a snapshot")
		return nil
	}
}

func TestFlockActor_TickAndReset(t *testing.T) {
	cfg := testConfig()
	ctx, pid, snapshotCh := startFlock(t, cfg)

	// 1. The initial population is published once the actor is running.
	first := nextSnapshot(t, snapshotCh)
	if first.Frame != 0 || len(first.Agents) != cfg.Population {
		t.Fatalf("Expected frame 0 with %d agents, got frame %d with %d",
			cfg.Population, first.Frame, len(first.Agents))
	}

	// 2. Each tick publishes the next frame.
	for want := uint64(1); want <= 3; want++ {
		if err := actor.Tell(ctx, pid, new(Tick)); err != nil {
			t.Fatalf("Tell(Tick): %v", err)
		}
		if snap := nextSnapshot(t, snapshotCh); snap.Frame != want {
			t.Errorf("Expected frame %d, got %d", want, snap.Frame)
		}
	}

	// 3. Weight updates are applied silently between frames.
	if err := actor.Tell(ctx, pid, NewUpdateWeights(behavior.Weights{Separation: 2})); err != nil {
		t.Fatalf("Tell(UpdateWeights): %v", err)
	}
	if err := actor.Tell(ctx, pid, new(Tick)); err != nil {
		t.Fatalf("Tell(Tick): %v", err)
	}
	if snap := nextSnapshot(t, snapshotCh); snap.Frame != 4 {
		t.Errorf("Expected frame 4 after a weight update, got %d", snap.Frame)
	}

	// 4. Reset respawns the same population for the same seed.
	if err := actor.Tell(ctx, pid, NewReset(cfg.Seed)); err != nil {
		t.Fatalf("Tell(Reset): %v", err)
	}
	reset := nextSnapshot(t, snapshotCh)
	if reset.Frame != 0 {
		t.Errorf("Expected frame 0 after reset, got %d", reset.Frame)
	}
	for i := range reset.Agents {
		if reset.Agents[i] != first.Agents[i] {
			t.Fatalf("agent %d differs after reset with the same seed", i)
		}
	}
}

func TestFlockActor_WithoutRenderer(t *testing.T) {
	cfg := testConfig()
	ctx := context.Background()

	system, err := actor.NewActorSystem("Headless", actor.WithLogger(golog.DiscardLogger))
	if err != nil {
		t.Fatalf("NewActorSystem: %v", err)
	}
	if err := system.Start(ctx); err != nil {
		t.Fatalf("Start: %v", err)
	}
	defer func() { _ = system.Stop(ctx) }()

	pid, err := system.Spawn(ctx, "flock", NewFlockActor(nil, cfg))
	if err != nil {
		t.Fatalf("Spawn: %v", err)
	}
	for i := 0; i < 5; i++ {
		if err := actor.Tell(ctx, pid, new(Tick)); err != nil {
			t.Fatalf("Tell(Tick): %v", err)
		}
	}
	if !pid.IsRunning() {
		t.Error("flock actor should survive ticks without a renderer")
	}
}
