package geometry

import "math"

// Metric measures how far apart two points are in a given world topology.
type Metric interface {
	Distance(a, b Vector2D) float64
	// Delta is the shortest displacement leading from a to b.
	Delta(a, b Vector2D) Vector2D
}

// Plane is the unbounded Euclidean plane.
type Plane struct{}

// Distance returns the Euclidean distance between a and b.
func (Plane) Distance(a, b Vector2D) float64 {
	return a.DistanceTo(b)
}

// Delta returns b - a.
func (Plane) Delta(a, b Vector2D) Vector2D {
	return Diff(b, a)
}

// Torus is a Width x Height world whose opposite edges touch.
type Torus struct {
	Width  float64
	Height float64
}

// Distance returns the length of the shortest path between a and b when
// leaving the world through one edge re-enters it through the opposite one.
func (t Torus) Distance(a, b Vector2D) float64 {
	dx := wrapDelta(math.Abs(b.X-a.X), t.Width)
	dy := wrapDelta(math.Abs(b.Y-a.Y), t.Height)
	return math.Hypot(dx, dy)
}

// Delta returns the displacement from a to the nearest image of b, so a
// neighbour just across an edge lies on that side. Its length is
// Distance(a, b). Exactly half a world away, the planar direction wins.
func (t Torus) Delta(a, b Vector2D) Vector2D {
	return Vector2D{
		X: nearestImage(b.X-a.X, t.Width),
		Y: nearestImage(b.Y-a.Y, t.Height),
	}
}

func wrapDelta(d, size float64) float64 {
	return math.Min(d, size-d)
}

// nearestImage shifts the signed offset d by one world size when the way
// round the other side is shorter.
func nearestImage(d, size float64) float64 {
	switch {
	case d > size/2:
		return d - size
	case d < -size/2:
		return d + size
	}
	return d
}
