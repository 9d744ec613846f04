package viewer

import (
	"context"
	"fmt"
	"image/color"
	"math"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/lao-tseu-is-alive/go-boids-flocking/pkg/behavior"
	"github.com/lao-tseu-is-alive/go-boids-flocking/pkg/geometry"
	"github.com/lao-tseu-is-alive/go-boids-flocking/pkg/simulation"
	"github.com/lao-tseu-is-alive/go-boids-flocking/pkg/ui"
	"github.com/tochemey/goakt/v3/actor"
)

const (
	panelWidth = 260.0
	boidLength = 6.0
	boidWing   = 5.0

	// weightMax is the smallest upper bound of a weight slider.
	weightMax = 5.0
)

var (
	backgroundColor = color.RGBA{R: 10, G: 10, B: 30, A: 255}
	preyColor       = color.RGBA{R: 100, G: 200, B: 255, A: 255}
	predatorColor   = color.RGBA{R: 255, G: 70, B: 50, A: 255}
)

type Game struct {
	ctx        context.Context
	System     actor.ActorSystem
	flockPID   *actor.PID
	snapshotCh chan *simulation.Snapshot
	lastState  *simulation.Snapshot
	reloads    <-chan *simulation.Config

	cfg       *simulation.Config
	sentW     behavior.Weights
	triangles *ebiten.Image

	// UI Controls
	panel            *ui.Panel
	sliders          weightSliders
	widgetPerception *ui.Checkbox
	widgetPaused     *ui.Checkbox
	resetRequested   bool

	// Timing instrumentation
	updateAvg float64 // rolling average in ms
	drawAvg   float64
}

// weightSliders holds one slider per steering weight.
type weightSliders struct {
	alignment, cohesion, separation, seekPrey, avoidPredators *ui.Slider
}

func (s weightSliders) weights() behavior.Weights {
	w := behavior.Weights{
		Alignment:  s.alignment.Value,
		Cohesion:   s.cohesion.Value,
		Separation: s.separation.Value,
	}
	if s.seekPrey != nil {
		w.SeekPrey = s.seekPrey.Value
		w.AvoidPredators = s.avoidPredators.Value
	}
	return w
}

// set moves every slider to w. A slider whose range is too short for its
// weight is stretched, so the flock runs the value it was given.
func (s weightSliders) set(w behavior.Weights) {
	setWeight(s.alignment, w.Alignment)
	setWeight(s.cohesion, w.Cohesion)
	setWeight(s.separation, w.Separation)
	if s.seekPrey != nil {
		setWeight(s.seekPrey, w.SeekPrey)
		setWeight(s.avoidPredators, w.AvoidPredators)
	}
}

func setWeight(s *ui.Slider, v float64) {
	s.Max = math.Max(s.Max, v)
	s.SetValue(v)
}

// addWeightSliders appends one slider per active weight to panel, each
// ranging over [0, max(weightMax, weight)].
func addWeightSliders(panel *ui.Panel, w behavior.Weights, predatorPrey bool) weightSliders {
	add := func(label string, v float64) *ui.Slider {
		return panel.AddSlider(label, 0, math.Max(weightMax, v), v)
	}

	var s weightSliders
	panel.AddSection("Steering Weights")
	s.alignment = add("Alignment", w.Alignment)
	s.cohesion = add("Cohesion", w.Cohesion)
	s.separation = add("Separation", w.Separation)
	if predatorPrey {
		panel.AddSection("Predators")
		s.seekPrey = add("Seek Prey", w.SeekPrey)
		s.avoidPredators = add("Avoid Predators", w.AvoidPredators)
	}
	return s
}

// NewGame spawns the flock actor on system and builds the control panel.
// Weights received on reloads replace the slider values; reloads may be nil.
func NewGame(ctx context.Context, cfg *simulation.Config, system actor.ActorSystem, reloads <-chan *simulation.Config) (*Game, error) {
	// Buffer to avoid blocking the actor
	snapshotCh := make(chan *simulation.Snapshot, 10)

	flockPID, err := system.Spawn(ctx, "flock", simulation.NewFlockActor(snapshotCh, cfg))
	if err != nil {
		return nil, fmt.Errorf("failed to spawn flock: %w", err)
	}

	g := &Game{
		ctx:        ctx,
		System:     system,
		flockPID:   flockPID,
		snapshotCh: snapshotCh,
		lastState:  &simulation.Snapshot{},
		reloads:    reloads,
		cfg:        cfg,
		triangles:  ebiten.NewImage(3, 3),
	}
	g.triangles.Fill(color.White)

	panel := ui.NewPanel(10, 10, panelWidth, cfg.WorldHeight-20, "Flocking")
	g.sliders = addWeightSliders(panel, cfg.Weights, cfg.PredatorPrey())
	// The actor already runs cfg.Weights; only user changes are sent.
	g.sentW = g.sliders.weights()
	panel.AddSection("Visualization")
	g.widgetPerception = panel.AddCheckbox("Show Perception Radius", false)
	g.widgetPaused = panel.AddCheckbox("Pause (Space)", false)
	panel.AddSection("Population")
	panel.AddButton("Respawn (R)", func() { g.resetRequested = true })
	g.panel = panel

	return g, nil
}

func (g *Game) Update() error {
	start := time.Now()
	defer func() {
		g.updateAvg = g.updateAvg*0.95 + float64(time.Since(start).Microseconds())/1000.0*0.05
	}()

	g.panel.Update()
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.widgetPaused.Value = !g.widgetPaused.Value
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.resetRequested = true
	}

	select {
	case cfg, ok := <-g.reloads:
		if ok {
			g.sliders.set(cfg.Weights)
		} else {
			g.reloads = nil
		}
	default:
	}

	select {
	case snap := <-g.snapshotCh:
		g.lastState = snap
	default:
		// keep the previous state until a new one is ready
	}

	if w := g.sliders.weights(); w != g.sentW {
		if err := actor.Tell(g.ctx, g.flockPID, simulation.NewUpdateWeights(w)); err != nil {
			return err
		}
		g.sentW = w
	}

	if g.resetRequested {
		g.resetRequested = false
		return actor.Tell(g.ctx, g.flockPID, simulation.NewReset(0))
	}

	if !g.widgetPaused.Value {
		return actor.Tell(g.ctx, g.flockPID, new(simulation.Tick))
	}
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	start := time.Now()
	defer func() {
		g.drawAvg = g.drawAvg*0.95 + float64(time.Since(start).Microseconds())/1000.0*0.05
	}()

	screen.Fill(backgroundColor)

	radius := g.cfg.Params().CohesionRadius
	for i := range g.lastState.Agents {
		a := &g.lastState.Agents[i]
		clr := preyColor
		if a.Predator {
			clr = predatorColor
		}
		if g.widgetPerception.Value {
			ring := clr
			ring.A = 60
			vector.StrokeCircle(screen, float32(a.Pos.X), float32(a.Pos.Y), float32(radius), 1, ring, true)
		}
		g.drawBoid(screen, a, clr)
	}

	g.panel.Draw(screen)
	if g.cfg.PredatorPrey() {
		g.drawStatsBar(screen)
	}

	msg := fmt.Sprintf("FPS: %.2f\nTPS: %.2f\n\nFrame: %d\nSpeed: %.3f\nOrder: %.3f\n\nUpdate: %.2fms\nDraw:   %.2fms",
		ebiten.ActualFPS(),
		ebiten.ActualTPS(),
		g.lastState.Frame,
		g.lastState.MeanSpeed(),
		g.lastState.Polarization(),
		g.updateAvg,
		g.drawAvg)
	ebitenutil.DebugPrintAt(screen, msg, int(g.cfg.WorldWidth)-150, 50)
}

func (g *Game) drawBoid(screen *ebiten.Image, a *simulation.AgentState, clr color.RGBA) {
	tri := triangle(a.Pos, a.Vel)
	r, gr, b := float32(clr.R)/255, float32(clr.G)/255, float32(clr.B)/255

	vertices := make([]ebiten.Vertex, len(tri))
	for i, p := range tri {
		vertices[i] = ebiten.Vertex{
			DstX: float32(p.X), DstY: float32(p.Y),
			SrcX: 1, SrcY: 1,
			ColorR: r, ColorG: gr, ColorB: b, ColorA: 1,
		}
	}
	screen.DrawTriangles(vertices, []uint16{0, 1, 2}, g.triangles, &ebiten.DrawTrianglesOptions{})
}

// triangle returns the tip and the two rear corners of an agent pointing
// along its velocity.
func triangle(pos, vel geometry.Vector2D) [3]geometry.Vector2D {
	angle := vel.Angle()
	return [3]geometry.Vector2D{
		pos.Add(geometry.NewVectorPolar(boidLength, angle)),
		pos.Add(geometry.NewVectorPolar(boidWing, angle+2.5)),
		pos.Add(geometry.NewVectorPolar(boidWing, angle-2.5)),
	}
}

// drawStatsBar shows the predator/prey split in the top right corner.
func (g *Game) drawStatsBar(screen *ebiten.Image) {
	predators := float32(g.lastState.Predators)
	total := predators + float32(g.lastState.Prey)
	if total == 0 {
		return
	}

	barWidth := float32(200.0)
	barHeight := float32(20.0)
	x := float32(screen.Bounds().Dx()) - barWidth - 10
	y := float32(10.0)

	predW := barWidth * predators / total
	vector.FillRect(screen, x, y, predW, barHeight, predatorColor, true)
	vector.FillRect(screen, x+predW, y, barWidth-predW, barHeight, preyColor, true)

	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("%d", g.lastState.Predators), int(x), int(y+barHeight+5))
	preyMsg := fmt.Sprintf("%d", g.lastState.Prey)
	ebitenutil.DebugPrintAt(screen, preyMsg, int(x+barWidth)-len(preyMsg)*8, int(y+barHeight+5))
}

func (g *Game) Layout(w, h int) (int, int) {
	return int(math.Ceil(g.cfg.WorldWidth)), int(math.Ceil(g.cfg.WorldHeight))
}
