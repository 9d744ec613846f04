package simulation

import (
	"math"

	"github.com/lao-tseu-is-alive/go-boids-flocking/pkg/behavior"
	"github.com/lao-tseu-is-alive/go-boids-flocking/pkg/geometry"
)

// AgentState is the read-only view of an agent handed to renderers.
type AgentState struct {
	ID       int
	Predator bool
	Pos      geometry.Vector2D
	Vel      geometry.Vector2D
}

// Heading returns the direction of travel in radians.
func (s AgentState) Heading() float64 {
	return s.Vel.Angle()
}

// Snapshot is a copy of the population taken between two frames.
// It shares no memory with the World that produced it.
type Snapshot struct {
	Frame     uint64
	Agents    []AgentState
	Predators int
	Prey      int
}

func stateOf(a *behavior.Agent) AgentState {
	return AgentState{
		ID:       a.ID,
		Predator: a.IsPredator,
		Pos:      a.Position,
		Vel:      a.Velocity,
	}
}

func buildSnapshot(frame uint64, agents []behavior.Agent) *Snapshot {
	snapshot := &Snapshot{
		Frame:  frame,
		Agents: make([]AgentState, 0, len(agents)),
	}
	for i := range agents {
		snapshot.Agents = append(snapshot.Agents, stateOf(&agents[i]))
		if agents[i].IsPredator {
			snapshot.Predators++
		} else {
			snapshot.Prey++
		}
	}
	return snapshot
}

// MeanSpeed returns the average speed of the population.
func (s *Snapshot) MeanSpeed() float64 {
	if len(s.Agents) == 0 {
		return 0
	}
	total := 0.0
	for _, a := range s.Agents {
		total += a.Vel.Len()
	}
	return total / float64(len(s.Agents))
}

// Polarization is the length of the mean unit heading: 1 when every agent
// flies the same way, close to 0 for a disordered swarm. Agents at rest
// are left out.
func (s *Snapshot) Polarization() float64 {
	var acc geometry.Accumulator
	for _, a := range s.Agents {
		if a.Vel.IsZero() {
			continue
		}
		acc.Add(a.Vel.Normalize())
	}
	mean, ok := acc.Mean()
	if !ok {
		return 0
	}
	return math.Min(mean.Len(), 1)
}
