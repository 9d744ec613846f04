package simulation

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"slices"

	"github.com/lao-tseu-is-alive/go-boids-flocking/pkg/behavior"
	"golang.org/x/sync/errgroup"
)

// ErrDuplicateID is returned when two agents of one population share an ID.
// Steering identifies self by ID, so the twins would ignore each other.
var ErrDuplicateID = errors.New("duplicate agent id")

// Frame is everything one simulation step depends on besides the agents.
type Frame struct {
	Weights  behavior.Weights
	Rules    behavior.Rules
	Wrap     bool
	Width    float64
	Height   float64
	Timestep float64 // zero means one frame
	Workers  int     // agents are steered on this many goroutines when > 1
}

// Advance returns the population one frame later. The input is left
// untouched: every agent is wrapped, then steered against the same wrapped
// copy of the population, then integrated into a fresh slice, so the result
// does not depend on the order of the agents.
func Advance(agents []behavior.Agent, f Frame) []behavior.Agent {
	snapshot := slices.Clone(agents)
	next := make([]behavior.Agent, len(agents))
	step(next, snapshot, f)
	return next
}

// step wraps snapshot in place, then fills next. next and snapshot must
// have the same length and must not overlap.
func step(next, snapshot []behavior.Agent, f Frame) {
	if f.Wrap {
		for i := range snapshot {
			snapshot[i].Edges(f.Width, f.Height)
		}
	}

	if f.Workers <= 1 || len(snapshot) < f.Workers {
		for i := range snapshot {
			next[i] = f.advanceOne(snapshot, i)
		}
		return
	}

	// Each goroutine reads the shared snapshot and writes its own range of next.
	var g errgroup.Group
	chunk := (len(snapshot) + f.Workers - 1) / f.Workers
	for start := 0; start < len(snapshot); start += chunk {
		end := min(start+chunk, len(snapshot))
		g.Go(func() error {
			for i := start; i < end; i++ {
				next[i] = f.advanceOne(snapshot, i)
			}
			return nil
		})
	}
	// workers only read the snapshot and write disjoint ranges, none can fail
	_ = g.Wait()
}

func (f Frame) advanceOne(snapshot []behavior.Agent, i int) behavior.Agent {
	dt := f.Timestep
	if dt == 0 {
		dt = 1
	}
	a := snapshot[i]
	a.Flock(snapshot, f.Weights, f.Rules)
	a.Update(dt)
	return a
}

// World owns a population and advances it frame by frame with two
// buffers: the current frame is read while the next one is written, then
// they are swapped. A World is not safe for concurrent use; FlockActor
// serialises access to it.
type World struct {
	cfg     *Config
	weights behavior.Weights
	current []behavior.Agent
	next    []behavior.Agent
	frames  uint64
	seed    uint64
}

// NewWorld spawns cfg.Population agents from cfg.Seed.
func NewWorld(cfg *Config) *World {
	w := &World{cfg: cfg, weights: cfg.Weights}
	w.Reset(cfg.Seed)
	return w
}

// NewWorldFromAgents builds a world around an existing population, whose
// agents must have distinct IDs.
func NewWorldFromAgents(cfg *Config, agents []behavior.Agent) (*World, error) {
	seen := make(map[int]struct{}, len(agents))
	for _, a := range agents {
		if _, dup := seen[a.ID]; dup {
			return nil, fmt.Errorf("%w: %d", ErrDuplicateID, a.ID)
		}
		seen[a.ID] = struct{}{}
	}

	return &World{
		cfg:     cfg,
		weights: cfg.Weights,
		current: slices.Clone(agents),
		next:    make([]behavior.Agent, len(agents)),
		seed:    cfg.Seed,
	}, nil
}

// Reset respawns the whole population. The first cfg.Predators agents are
// predators when the predator-prey variant is active. A zero seed picks a
// random one.
func (w *World) Reset(seed uint64) {
	if seed == 0 {
		seed = rand.Uint64()
	}
	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))

	params := w.cfg.Params()
	agents := make([]behavior.Agent, w.cfg.Population)
	for i := range agents {
		predator := w.cfg.PredatorPrey() && i < w.cfg.Predators
		agents[i] = behavior.Spawn(i, w.cfg.WorldWidth, w.cfg.WorldHeight, params, predator, rng)
	}

	w.current = agents
	w.next = make([]behavior.Agent, len(agents))
	w.frames = 0
	w.seed = seed
}

// Step advances the population by one frame.
func (w *World) Step() {
	step(w.next, w.current, w.cfg.Frame(w.weights))
	w.current, w.next = w.next, w.current
	w.frames++
}

// Frames returns how many steps ran since the last reset.
func (w *World) Frames() uint64 {
	return w.frames
}

// Seed returns the seed the population was spawned from.
func (w *World) Seed() uint64 {
	return w.seed
}

// Weights returns the weights used by the next Step.
func (w *World) Weights() behavior.Weights {
	return w.weights
}

// SetWeights replaces the weights from the next Step on.
func (w *World) SetWeights(weights behavior.Weights) {
	w.weights = weights
}

// Len returns the population size.
func (w *World) Len() int {
	return len(w.current)
}

// Agents returns a copy of the current population.
func (w *World) Agents() []behavior.Agent {
	return slices.Clone(w.current)
}

// Snapshot returns the read-only view of the current frame.
func (w *World) Snapshot() *Snapshot {
	return buildSnapshot(w.frames, w.current)
}
