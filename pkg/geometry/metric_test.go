package geometry

import "testing"

func TestAccumulator(t *testing.T) {
	var acc Accumulator
	if mean, ok := acc.Mean(); ok || !mean.IsZero() {
		t.Errorf("empty Mean() = %v, %v; want zero, false", mean, ok)
	}

	acc.Add(Vector2D{2, 0})
	acc.Add(Vector2D{0, 4})
	acc.Add(Vector2D{1, 2})

	if acc.Count() != 3 {
		t.Errorf("Count() = %d; want 3", acc.Count())
	}
	if got := acc.Sum(); !got.Eq(Vector2D{3, 6}) {
		t.Errorf("Sum() = %v; want (3, 6)", got)
	}
	mean, ok := acc.Mean()
	if !ok || !mean.Eq(Vector2D{1, 2}) {
		t.Errorf("Mean() = %v, %v; want (1, 2), true", mean, ok)
	}
}

func TestMetric_Distance(t *testing.T) {
	tests := []struct {
		name   string
		metric Metric
		a, b   Vector2D
		want   float64
	}{
		{"plane", Plane{}, Vector2D{1, 50}, Vector2D{99, 50}, 98},
		{"torus across x edge", Torus{Width: 100, Height: 100}, Vector2D{1, 50}, Vector2D{99, 50}, 2},
		{"torus across y edge", Torus{Width: 100, Height: 100}, Vector2D{50, 98}, Vector2D{50, 3}, 5},
		{"torus across corner", Torus{Width: 100, Height: 100}, Vector2D{1, 1}, Vector2D{98, 97}, 5},
		{"torus no wrap", Torus{Width: 100, Height: 100}, Vector2D{10, 10}, Vector2D{13, 14}, 5},
		{"torus half width", Torus{Width: 100, Height: 100}, Vector2D{0, 0}, Vector2D{50, 0}, 50},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.metric.Distance(tt.a, tt.b)
			if !floatEquals(got, tt.want) {
				t.Errorf("Distance(%v, %v) = %v; want %v", tt.a, tt.b, got, tt.want)
			}
			if back := tt.metric.Distance(tt.b, tt.a); !floatEquals(back, got) {
				t.Errorf("Distance not symmetric: %v vs %v", got, back)
			}
		})
	}
}

func TestMetric_Delta(t *testing.T) {
	torus := Torus{Width: 100, Height: 100}
	tests := []struct {
		name   string
		metric Metric
		a, b   Vector2D
		want   Vector2D
	}{
		{"plane", Plane{}, Vector2D{1, 50}, Vector2D{99, 50}, Vector2D{98, 0}},
		{"torus across x edge", torus, Vector2D{1, 50}, Vector2D{99, 50}, Vector2D{-2, 0}},
		{"torus across x edge reversed", torus, Vector2D{99, 50}, Vector2D{1, 50}, Vector2D{2, 0}},
		{"torus across y edge", torus, Vector2D{50, 98}, Vector2D{50, 3}, Vector2D{0, 5}},
		{"torus across corner", torus, Vector2D{1, 1}, Vector2D{98, 97}, Vector2D{-3, -4}},
		{"torus no wrap", torus, Vector2D{10, 10}, Vector2D{13, 14}, Vector2D{3, 4}},
		{"torus half width", torus, Vector2D{0, 0}, Vector2D{50, 0}, Vector2D{50, 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.metric.Delta(tt.a, tt.b)
			if !got.Eq(tt.want) {
				t.Errorf("Delta(%v, %v) = %v; want %v", tt.a, tt.b, got, tt.want)
			}
			if d := tt.metric.Distance(tt.a, tt.b); !floatEquals(got.Len(), d) {
				t.Errorf("|Delta| = %v; want Distance %v", got.Len(), d)
			}
		})
	}
}
