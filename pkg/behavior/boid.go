package behavior

import (
	"math"
	"math/rand/v2"
	"sync/atomic"

	"github.com/lao-tseu-is-alive/go-boids-flocking/pkg/geometry"
)

// Agent represents a single entity in the flock.
// Boids is an artificial life program, developed by Craig Reynolds in 1986,
// which simulates the flocking behaviour of birds, and related group motion.
// The name "boid" corresponds to a shortened version of "bird-oid object".
// https://en.wikipedia.org/wiki/Boids
//
// Fields are exported so a renderer can read Position and Velocity.
// An Agent only ever mutates itself; the flock it scans is read only.
type Agent struct {
	ID int

	Position     geometry.Vector2D
	Velocity     geometry.Vector2D
	Acceleration geometry.Vector2D

	MaxForce float64 // clamp applied to each steering contribution
	MaxSpeed float64 // clamp applied to the integrated velocity

	AlignRadius      float64
	CohesionRadius   float64
	SeparationRadius float64
	PerceptionRadius float64 // shared radius of the predator/prey rules

	IsPredator bool

	Width  float64
	Height float64
}

// Params holds the per-agent kinematic limits and perception radii.
type Params struct {
	MaxForce         float64
	MaxSpeed         float64
	AlignRadius      float64
	CohesionRadius   float64
	SeparationRadius float64
	PerceptionRadius float64
}

// DefaultParams returns the classic tuning: slow, gently steered agents
// that see their neighbours 50 units away and keep 25 units of personal space.
func DefaultParams() Params {
	return Params{
		MaxForce:         0.05,
		MaxSpeed:         0.5,
		AlignRadius:      50,
		CohesionRadius:   50,
		SeparationRadius: 25,
		PerceptionRadius: 50,
	}
}

var lastID atomic.Int64

// New creates an agent with default parameters, a random position and a
// random heading, using the global random source. Every call hands out a
// fresh ID counting up from 1. Spawned populations number agents from 0,
// so the two must not be mixed in one flock.
func New(width, height float64) Agent {
	return Spawn(int(lastID.Add(1)), width, height, DefaultParams(), false, nil)
}

// Spawn creates an agent uniformly placed over [0,width) x [0,height),
// heading in a uniformly random direction at a speed in [0.8, 1.0].
// A nil rng uses the global random source.
func Spawn(id int, width, height float64, p Params, predator bool, rng *rand.Rand) Agent {
	uniform := rand.Float64
	if rng != nil {
		uniform = rng.Float64
	}

	pos := geometry.NewVector(uniform()*width, uniform()*height)
	vel := geometry.RandomUnit(rng).SetLen(0.8 + uniform()*0.2)

	return Agent{
		ID:               id,
		Position:         pos,
		Velocity:         vel,
		MaxForce:         p.MaxForce,
		MaxSpeed:         p.MaxSpeed,
		AlignRadius:      p.AlignRadius,
		CohesionRadius:   p.CohesionRadius,
		SeparationRadius: p.SeparationRadius,
		PerceptionRadius: p.PerceptionRadius,
		IsPredator:       predator,
		Width:            width,
		Height:           height,
	}
}

// Edges wraps the position around the world borders.
// Leaving through one edge resets the coordinate to the opposite edge;
// afterwards 0 <= X < width and 0 <= Y < height.
func (a *Agent) Edges(width, height float64) {
	a.Position.X = wrapAxis(a.Position.X, width)
	a.Position.Y = wrapAxis(a.Position.Y, height)
}

func wrapAxis(x, size float64) float64 {
	switch {
	case x >= size:
		return 0
	case x < 0:
		// size itself is outside [0, size)
		return math.Max(math.Nextafter(size, 0), 0)
	default:
		return x
	}
}

// Update integrates one frame of motion with timestep dt:
// velocity += acceleration*dt, clamped to MaxSpeed, then
// position += velocity*dt. The acceleration is reset to zero.
func (a *Agent) Update(dt float64) {
	a.Velocity = a.Velocity.Add(a.Acceleration.Mul(dt)).Limit(a.MaxSpeed)
	a.Position = a.Position.Add(a.Velocity.Mul(dt))
	a.Acceleration = geometry.Zero
}

// Heading returns the direction of travel in radians.
func (a *Agent) Heading() float64 {
	return a.Velocity.Angle()
}
