package ui

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

const (
	titleHeight   = 30.0
	sectionHeight = 25.0
	labelHeight   = 15.0
	margin        = 10.0
	scrollStep    = 20.0
)

// Widget is anything the panel can stack vertically.
type Widget interface {
	Update()
	Draw(screen *ebiten.Image)
	// Height is the vertical space taken, label included.
	Height() float64
	// MoveTo places the control below its label.
	MoveTo(y float64)
}

type sliderWidget struct{ *Slider }

func (s sliderWidget) Height() float64  { return labelHeight + s.H + 10 }
func (s sliderWidget) MoveTo(y float64) { s.Y = y }

type checkboxWidget struct{ *Checkbox }

func (c checkboxWidget) Height() float64  { return labelHeight + c.Size + 5 }
func (c checkboxWidget) MoveTo(y float64) { c.Y = y }

type buttonWidget struct{ *Button }

func (b buttonWidget) Height() float64  { return b.Button.Height + 10 }
func (b buttonWidget) MoveTo(y float64) { b.Y = y - labelHeight }

type entry struct {
	label  string
	widget Widget
	y      float64 // top of the label, scroll applied
}

type section struct {
	title string
	start int // index of the first widget
	y     float64
}

// Panel is a scrollable column of widgets grouped under section headers.
type Panel struct {
	X, Y          float64
	Width, Height float64
	Title         string
	ScrollOffset  float64

	BGColor     color.RGBA
	BorderColor color.RGBA

	entries  []entry
	sections []section
}

// NewPanel creates an empty panel.
func NewPanel(x, y, width, height float64, title string) *Panel {
	return &Panel{
		X:           x,
		Y:           y,
		Width:       width,
		Height:      height,
		Title:       title,
		BGColor:     color.RGBA{R: 40, G: 40, B: 45, A: 230},
		BorderColor: color.RGBA{R: 100, G: 100, B: 110, A: 255},
	}
}

// AddSection starts a new section; following widgets belong to it.
func (p *Panel) AddSection(title string) {
	p.sections = append(p.sections, section{title: title, start: len(p.entries)})
	p.layout()
}

// AddSlider appends a slider spanning the panel width.
func (p *Panel) AddSlider(label string, min, max, value float64) *Slider {
	s := NewSlider(p.X+margin, 0, p.Width-2*margin, label, min, max, value)
	p.add(label, sliderWidget{s})
	return s
}

// AddCheckbox appends a checkbox.
func (p *Panel) AddCheckbox(label string, value bool) *Checkbox {
	c := NewCheckbox(p.X+margin, 0, label, value)
	p.add(label, checkboxWidget{c})
	return c
}

// AddButton appends a full-width button. Buttons draw their own label.
func (p *Panel) AddButton(label string, onClick func()) *Button {
	b := NewButton(p.X+margin, 0, p.Width-2*margin, 24, label, onClick)
	p.add("", buttonWidget{b})
	return b
}

func (p *Panel) add(label string, w Widget) {
	p.entries = append(p.entries, entry{label: label, widget: w})
	p.layout()
}

// layout assigns every header and widget its on-screen position.
func (p *Panel) layout() {
	y := p.Y + titleHeight - p.ScrollOffset
	si := 0
	for i := range p.entries {
		for si < len(p.sections) && p.sections[si].start == i {
			p.sections[si].y = y
			y += sectionHeight
			si++
		}
		p.entries[i].y = y
		p.entries[i].widget.MoveTo(y + labelHeight)
		y += p.entries[i].widget.Height()
	}
	for ; si < len(p.sections); si++ {
		p.sections[si].y = y
		y += sectionHeight
	}
}

// ContentHeight is the unscrolled height of everything in the panel.
func (p *Panel) ContentHeight() float64 {
	h := titleHeight + float64(len(p.sections))*sectionHeight
	for _, e := range p.entries {
		h += e.widget.Height()
	}
	return h
}

// Scroll moves the content by dy wheel notches, clamped to the content.
func (p *Panel) Scroll(dy float64) {
	if dy == 0 {
		return
	}
	maxScroll := max(p.ContentHeight()-p.Height+margin, 0)
	p.ScrollOffset = min(max(p.ScrollOffset-dy*scrollStep, 0), maxScroll)
	p.layout()
}

func (p *Panel) visible(y float64) bool {
	return y >= p.Y+titleHeight-labelHeight && y <= p.Y+p.Height-labelHeight
}

// Update handles scrolling and input for the visible widgets.
func (p *Panel) Update() {
	_, dy := ebiten.Wheel()
	p.Scroll(dy)
	for _, e := range p.entries {
		if p.visible(e.y) {
			e.widget.Update()
		}
	}
}

// Draw renders the panel and its visible content.
func (p *Panel) Draw(screen *ebiten.Image) {
	vector.FillRect(screen,
		float32(p.X), float32(p.Y),
		float32(p.Width), float32(p.Height),
		p.BGColor, true)
	vector.StrokeRect(screen,
		float32(p.X), float32(p.Y),
		float32(p.Width), float32(p.Height),
		2, p.BorderColor, true)
	ebitenutil.DebugPrintAt(screen, p.Title, int(p.X+margin), int(p.Y+5))

	for _, s := range p.sections {
		if !p.visible(s.y) {
			continue
		}
		vector.FillRect(screen,
			float32(p.X+5), float32(s.y),
			float32(p.Width-margin), 20,
			color.RGBA{R: 60, G: 60, B: 70, A: 255}, true)
		ebitenutil.DebugPrintAt(screen, s.title, int(p.X+margin), int(s.y+3))
	}

	for _, e := range p.entries {
		if !p.visible(e.y) {
			continue
		}
		if e.label != "" {
			ebitenutil.DebugPrintAt(screen, e.label, int(p.X+margin), int(e.y))
		}
		e.widget.Draw(screen)
	}
}

func formatValue(v float64) string {
	return fmt.Sprintf("%.2f", v)
}
