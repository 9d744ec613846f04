package ui

import (
	"math"
	"testing"
)

func TestSlider_Handle(t *testing.T) {
	tests := []struct {
		name    string
		mx, my  float64
		pressed bool
		want    float64
		changed bool
	}{
		{"middle", 50, 5, true, 1, true},
		{"left edge", 0, 5, true, 0, true},
		{"right edge", 100, 5, true, 2, true},
		{"not pressed", 75, 5, false, 0.5, false},
		{"outside", 150, 5, true, 0.5, false},
		{"below", 50, 40, true, 0.5, false},
		{"same value", 25, 5, true, 0.5, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewSlider(0, 0, 100, "weight", 0, 2, 0.5)
			changed := s.handle(tt.mx, tt.my, tt.pressed)
			if changed != tt.changed {
				t.Errorf("handle() changed = %v; want %v", changed, tt.changed)
			}
			if math.Abs(s.Value-tt.want) > 1e-9 {
				t.Errorf("Value = %v; want %v", s.Value, tt.want)
			}
		})
	}
}

func TestNewSlider_ClampsValue(t *testing.T) {
	if s := NewSlider(0, 0, 100, "w", 0, 3, 9); s.Value != 3 {
		t.Errorf("Expected value clamped to 3, got %v", s.Value)
	}
	if s := NewSlider(0, 0, 100, "w", 1, 1, 1); s.Ratio() != 0 {
		t.Errorf("Expected zero ratio for an empty range, got %v", s.Ratio())
	}
}

func TestSlider_SetValue(t *testing.T) {
	s := NewSlider(0, 0, 100, "w", 0, 5, 1)
	tests := []struct {
		in, want float64
	}{
		{2.5, 2.5},
		{9, 5},
		{-1, 0},
	}
	for _, tt := range tests {
		s.SetValue(tt.in)
		if s.Value != tt.want {
			t.Errorf("SetValue(%v): Expected %v, got %v", tt.in, tt.want, s.Value)
		}
		if r := s.Ratio(); r < 0 || r > 1 {
			t.Errorf("SetValue(%v): ratio %v outside [0, 1]", tt.in, r)
		}
	}
}

func TestCheckbox_TogglesOncePerPress(t *testing.T) {
	c := NewCheckbox(10, 10, "show", false)

	c.handle(15, 15, true)
	c.handle(15, 15, true) // still held
	if !c.Value {
		t.Fatal("Expected checkbox on after one press")
	}
	c.handle(15, 15, false)
	c.handle(15, 15, true)
	if c.Value {
		t.Error("Expected checkbox off after a second press")
	}
}

func TestButton_ClicksOncePerPress(t *testing.T) {
	clicks := 0
	b := NewButton(0, 0, 50, 20, "respawn", func() { clicks++ })

	b.handle(10, 10, true)
	b.handle(10, 10, true)
	b.handle(10, 10, false)
	b.handle(60, 10, true) // outside
	b.handle(10, 10, true)

	if clicks != 2 {
		t.Errorf("Expected 2 clicks, got %d", clicks)
	}
}

func TestPanel_Layout(t *testing.T) {
	p := NewPanel(10, 10, 200, 120, "Flock")
	p.AddSection("Weights")
	a := p.AddSlider("Alignment", 0, 3, 1)
	b := p.AddSlider("Cohesion", 0, 3, 1)
	p.AddSection("Display")
	c := p.AddCheckbox("Perception", false)
	btn := p.AddButton("Respawn", nil)

	if !(a.Y < b.Y && b.Y < c.Y && c.Y < btn.Y) {
		t.Fatalf("widgets are not stacked: %v %v %v %v", a.Y, b.Y, c.Y, btn.Y)
	}
	if a.X != 20 || a.W != 180 {
		t.Errorf("slider should span the panel width minus margins, got x=%v w=%v", a.X, a.W)
	}

	wantA := 10 + titleHeight + sectionHeight + labelHeight
	if a.Y != wantA {
		t.Errorf("first slider at y=%v; want %v", a.Y, wantA)
	}

	// Scrolling moves everything up and clamps at the content end.
	before := b.Y
	p.Scroll(-1)
	if b.Y != before-scrollStep {
		t.Errorf("Expected slider to move up by %v, got %v -> %v", scrollStep, before, b.Y)
	}
	p.Scroll(-100)
	if limit := p.ContentHeight() - p.Height + margin; p.ScrollOffset != limit {
		t.Errorf("ScrollOffset = %v; want clamp at %v", p.ScrollOffset, limit)
	}
	p.Scroll(100)
	if p.ScrollOffset != 0 || a.Y != wantA {
		t.Errorf("Expected scroll back to the top, offset %v y %v", p.ScrollOffset, a.Y)
	}
}
