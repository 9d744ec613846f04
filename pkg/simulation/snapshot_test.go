package simulation

import (
	"math"
	"testing"

	"github.com/lao-tseu-is-alive/go-boids-flocking/pkg/behavior"
	"github.com/lao-tseu-is-alive/go-boids-flocking/pkg/geometry"
)

func TestSnapshot_Statistics(t *testing.T) {
	tests := []struct {
		name         string
		velocities   []geometry.Vector2D
		meanSpeed    float64
		polarization float64
	}{
		{"empty", nil, 0, 0},
		{"all at rest", []geometry.Vector2D{geometry.Zero, geometry.Zero}, 0, 0},
		{"aligned", []geometry.Vector2D{{X: 0.5}, {X: 0.3}}, 0.4, 1},
		{"opposed", []geometry.Vector2D{{X: 0.5}, {X: -0.5}}, 0.5, 0},
		{"right angle", []geometry.Vector2D{{X: 0.4}, {Y: 0.4}}, 0.4, math.Sqrt2 / 2},
		{"rest is ignored", []geometry.Vector2D{{Y: 0.2}, geometry.Zero}, 0.1, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			agents := make([]behavior.Agent, len(tt.velocities))
			for i, v := range tt.velocities {
				agents[i] = behavior.Agent{ID: i, Velocity: v}
			}
			snap := buildSnapshot(3, agents)

			if snap.Frame != 3 || len(snap.Agents) != len(agents) {
				t.Fatalf("Expected frame 3 with %d agents, got %d with %d", len(agents), snap.Frame, len(snap.Agents))
			}
			if got := snap.MeanSpeed(); math.Abs(got-tt.meanSpeed) > tolerance {
				t.Errorf("MeanSpeed() = %v; want %v", got, tt.meanSpeed)
			}
			if got := snap.Polarization(); math.Abs(got-tt.polarization) > tolerance {
				t.Errorf("Polarization() = %v; want %v", got, tt.polarization)
			}
		})
	}
}

func TestSnapshot_IsDetached(t *testing.T) {
	agents := []behavior.Agent{
		{ID: 1, Position: geometry.NewVector(1, 2), Velocity: geometry.NewVector(0, 1)},
		{ID: 2, IsPredator: true},
	}
	snap := buildSnapshot(0, agents)

	agents[0].Position = geometry.NewVector(99, 99)
	if !snap.Agents[0].Pos.Eq(geometry.NewVector(1, 2)) {
		t.Error("snapshot shares memory with the population")
	}
	if snap.Predators != 1 || snap.Prey != 1 {
		t.Errorf("Expected 1 predator and 1 prey, got %d and %d", snap.Predators, snap.Prey)
	}
	if h := snap.Agents[0].Heading(); math.Abs(h-math.Pi/2) > tolerance {
		t.Errorf("Heading() = %v; want pi/2", h)
	}
}
