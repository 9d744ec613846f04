package behavior

import "github.com/lao-tseu-is-alive/go-boids-flocking/pkg/geometry"

// Weights scales each steering rule before it is added to the acceleration.
// They are plain multipliers: zero disables a rule, nothing is normalised
// and nothing is validated. Values in [0.1, 5] give sensible flocks.
type Weights struct {
	Alignment      float64 `json:"alignment"`
	Cohesion       float64 `json:"cohesion"`
	Separation     float64 `json:"separation"`
	SeekPrey       float64 `json:"seekPrey"`
	AvoidPredators float64 `json:"avoidPredators"`
}

// DefaultWeights gives every rule the same unit weight.
func DefaultWeights() Weights {
	return Weights{
		Alignment:      1,
		Cohesion:       1,
		Separation:     1,
		SeekPrey:       1,
		AvoidPredators: 1,
	}
}

// Rules selects the flavour of flocking a deployment runs.
type Rules struct {
	// Metric measures neighbour distances and directions. Nil means the
	// Euclidean plane.
	Metric geometry.Metric

	// PredatorPrey enables SeekPrey and AvoidPredators in Flock.
	PredatorPrey bool

	// SameRoleCohesion restricts cohesion to neighbours of the same role,
	// so predators flock with predators and prey with prey.
	SameRoleCohesion bool

	// AverageAvoidance makes AvoidPredators average its repulsions and
	// clamp them like the other rules instead of returning the raw sum.
	AverageAvoidance bool

	// PlanarDirections points cohesion, separation and seeking along the
	// plain difference of positions even when Metric wraps, so a neighbour
	// just across an edge is steered at through the whole world.
	PlanarDirections bool
}

func (r Rules) distance(a, b geometry.Vector2D) float64 {
	if r.Metric == nil {
		return a.DistanceTo(b)
	}
	return r.Metric.Distance(a, b)
}

// delta is the displacement from a to b that steering follows.
func (r Rules) delta(a, b geometry.Vector2D) geometry.Vector2D {
	if r.Metric == nil || r.PlanarDirections {
		return geometry.Diff(b, a)
	}
	return r.Metric.Delta(a, b)
}

// steer turns a desired direction into a steering force: desired at full
// speed, minus the current velocity, clamped to MaxForce.
func (a *Agent) steer(desired geometry.Vector2D) geometry.Vector2D {
	return desired.SetLen(a.MaxSpeed).Sub(a.Velocity).Limit(a.MaxForce)
}

// Alignment steers towards the average heading of the neighbours within
// AlignRadius.
func (a *Agent) Alignment(flock []Agent, r Rules) geometry.Vector2D {
	var acc geometry.Accumulator
	for i := range flock {
		other := &flock[i]
		if other.ID == a.ID || r.distance(a.Position, other.Position) >= a.AlignRadius {
			continue
		}
		acc.Add(other.Velocity)
	}

	avg, ok := acc.Mean()
	if !ok {
		return geometry.Zero
	}
	return a.steer(avg)
}

// Cohesion steers towards the centre of mass of the neighbours within
// CohesionRadius.
func (a *Agent) Cohesion(flock []Agent, r Rules) geometry.Vector2D {
	var acc geometry.Accumulator
	for i := range flock {
		other := &flock[i]
		if other.ID == a.ID || r.distance(a.Position, other.Position) >= a.CohesionRadius {
			continue
		}
		if r.SameRoleCohesion && other.IsPredator != a.IsPredator {
			continue
		}
		acc.Add(r.delta(a.Position, other.Position))
	}

	// mean offset to the neighbours, i.e. centre of mass minus position
	toCenter, ok := acc.Mean()
	if !ok {
		return geometry.Zero
	}
	return a.steer(toCenter)
}

// Separation steers away from the neighbours within SeparationRadius, each
// one pushing harder the closer it is.
func (a *Agent) Separation(flock []Agent, r Rules) geometry.Vector2D {
	var acc geometry.Accumulator
	for i := range flock {
		other := &flock[i]
		if other.ID == a.ID {
			continue
		}
		d := r.distance(a.Position, other.Position)
		// coincident agents give no direction to flee in
		if d >= a.SeparationRadius || d == 0 {
			continue
		}
		acc.Add(repulsion(r.delta(other.Position, a.Position), d))
	}

	away, ok := acc.Mean()
	if !ok {
		return geometry.Zero
	}
	return a.steer(away)
}

// SeekPrey steers a predator towards the centre of the prey it perceives.
// Prey never seek.
func (a *Agent) SeekPrey(flock []Agent, r Rules) geometry.Vector2D {
	if !a.IsPredator {
		return geometry.Zero
	}

	var acc geometry.Accumulator
	for i := range flock {
		other := &flock[i]
		if other.IsPredator || r.distance(a.Position, other.Position) >= a.PerceptionRadius {
			continue
		}
		acc.Add(r.delta(a.Position, other.Position))
	}

	toCenter, ok := acc.Mean()
	if !ok {
		return geometry.Zero
	}
	return a.steer(toCenter)
}

// AvoidPredators pushes prey away from every predator it perceives.
// The repulsions are summed, not averaged, and not clamped, unless
// r.AverageAvoidance is set. Predators never avoid.
func (a *Agent) AvoidPredators(flock []Agent, r Rules) geometry.Vector2D {
	if a.IsPredator {
		return geometry.Zero
	}

	var acc geometry.Accumulator
	for i := range flock {
		other := &flock[i]
		if !other.IsPredator || other.ID == a.ID {
			continue
		}
		d := r.distance(a.Position, other.Position)
		if d >= a.PerceptionRadius || d == 0 {
			continue
		}
		acc.Add(repulsion(r.delta(other.Position, a.Position), d))
	}

	if !r.AverageAvoidance {
		return acc.Sum()
	}
	away, ok := acc.Mean()
	if !ok {
		return geometry.Zero
	}
	return a.steer(away)
}

// repulsion scales away, the displacement from a neighbour to self, by 1/d.
func repulsion(away geometry.Vector2D, d float64) geometry.Vector2D {
	return away.Mul(1 / d)
}

// Flock adds the weighted steering of every active rule to the
// acceleration. a must not point into flock (a is written, flock is only
// read): pass a snapshot of the population taken before anyone moved.
func (a *Agent) Flock(flock []Agent, w Weights, r Rules) {
	a.Acceleration = a.Acceleration.
		Add(a.Alignment(flock, r).Mul(w.Alignment)).
		Add(a.Cohesion(flock, r).Mul(w.Cohesion)).
		Add(a.Separation(flock, r).Mul(w.Separation))

	if r.PredatorPrey {
		a.Acceleration = a.Acceleration.
			Add(a.SeekPrey(flock, r).Mul(w.SeekPrey)).
			Add(a.AvoidPredators(flock, r).Mul(w.AvoidPredators))
	}
}
