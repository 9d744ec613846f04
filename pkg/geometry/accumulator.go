package geometry

// Accumulator sums vectors and counts them so that an average can be taken
// once a neighbourhood scan is over. The zero value is ready to use.
type Accumulator struct {
	sum Vector2D
	n   int
}

// Add folds v into the running sum.
func (a *Accumulator) Add(v Vector2D) {
	a.sum = a.sum.Add(v)
	a.n++
}

// Count returns how many vectors were added.
func (a *Accumulator) Count() int {
	return a.n
}

// Sum returns the raw sum of every added vector.
func (a *Accumulator) Sum() Vector2D {
	return a.sum
}

// Mean returns the average of the added vectors.
// ok is false, and the zero vector is returned, when nothing was added.
func (a *Accumulator) Mean() (mean Vector2D, ok bool) {
	mean, err := a.sum.Div(float64(a.n))
	if err != nil {
		return Zero, false
	}
	return mean, true
}
