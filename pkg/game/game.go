// Package game renders a flock hosted by a simulation.Engine in an ebiten
// window and feeds it the mouse and the tuning panel.
package game

import (
	"fmt"
	"image/color"
	"math"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/lao-tseu-is-alive/go-boids-flock/pkg/flock"
	"github.com/lao-tseu-is-alive/go-boids-flock/pkg/geometry"
	"github.com/lao-tseu-is-alive/go-boids-flock/pkg/simulation"
	"github.com/lao-tseu-is-alive/go-boids-flock/pkg/ui"
	"golang.org/x/image/colornames"
)

// Triangle used to draw an agent, pointing along +x before rotation.
const (
	noseLength = 6.0
	wingLength = 5.0
	wingAngle  = 2.5 // radians from the nose
)

var whiteImage = ebiten.NewImage(3, 3)

func init() {
	whiteImage.Fill(color.White)
}

// Engine is the part of simulation.Engine the game drives.
type Engine interface {
	Tick(dt float64, pointer flock.Pointer) error
	Tune(b flock.Behaviors, maxSpeed float64) error
	Reset() error
	Latest() *simulation.Snapshot
}

// ruleSliders are the panel controls of one steering rule.
type ruleSliders struct {
	coefficient, radius, sight *ui.Slider
}

func (r ruleSliders) apply(b flock.Behavior) flock.Behavior {
	b.Coefficient = r.coefficient.Value
	b.Radius = r.radius.Value
	b.SightAngle = r.sight.Value
	return b
}

type Game struct {
	engine    Engine
	cfg       *flock.Config
	clock     *simulation.Clock
	lastState *simulation.Snapshot
	pointer   flock.Pointer

	// UI Controls
	panel *ui.UIPanel

	// Widget references for easy access
	widgetSeparation  ruleSliders
	widgetAlignment   ruleSliders
	widgetCohesion    ruleSliders
	widgetMouse       ruleSliders
	widgetMaxSpeed    *ui.Slider
	widgetMouseRadius *ui.Checkbox

	// Last tuning sent to the world
	sentBehaviors  flock.Behaviors
	sentMaxSpeed   float64
	resetRequested bool

	// Reused triangle batch
	vertices []ebiten.Vertex
	indices  []uint16

	// Timing instrumentation
	updateAvg float64 // Rolling average in ms
	drawAvg   float64 // Rolling average in ms
}

// NewGame builds the window side of the simulation. cfg must be the
// configuration the engine was started with.
func NewGame(engine Engine, cfg *flock.Config) *Game {
	g := &Game{
		engine:        engine,
		cfg:           cfg,
		clock:         simulation.NewClock(cfg.MaxFrameTime),
		sentBehaviors: cfg.Behaviors,
		sentMaxSpeed:  cfg.MaxSpeed,
	}

	// Initialize UI Panel with all tuning widgets, hidden until Tab is pressed
	panel := ui.NewUIPanel(10, 10, 240, cfg.Arena.Height-20, "Flock tuning (Tab)")
	panel.Visible = false

	b := cfg.Behaviors
	g.widgetSeparation = addRule(panel, "Separation", b.Separation, 2000, 300)
	g.widgetAlignment = addRule(panel, "Alignment", b.Alignment, 10, 300)
	g.widgetCohesion = addRule(panel, "Cohesion", b.Cohesion, 50, 300)
	g.widgetMouse = addRule(panel, "Mouse", b.Mouse, 100000, 500)

	panel.AddSection("Physics")
	g.widgetMaxSpeed = panel.AddSlider("Max Speed", 1, math.Max(400, cfg.MaxSpeed), cfg.MaxSpeed)
	panel.EndSection()

	panel.AddSection("Visualization")
	g.widgetMouseRadius = panel.AddCheckbox("Show Mouse Radius", true)
	panel.AddButton("Reset flock", func() { g.resetRequested = true })
	panel.EndSection()

	g.panel = panel
	return g
}

func addRule(panel *ui.UIPanel, name string, b flock.Behavior, maxCoefficient, maxRadius float64) ruleSliders {
	panel.AddSection(name)
	defer panel.EndSection()
	// widen the range rather than clamp a configured value
	return ruleSliders{
		coefficient: panel.AddSlider("Coefficient", 0, math.Max(maxCoefficient, b.Coefficient), b.Coefficient),
		radius:      panel.AddSlider("Radius", 0, math.Max(maxRadius, b.Radius), b.Radius),
		sight:       panel.AddSlider("Sight Angle", 0, 360, b.SightAngle),
	}
}

func (g *Game) Update() error {
	start := time.Now()
	defer func() {
		// Rolling average (exponential moving average)
		g.updateAvg = g.updateAvg*0.95 + float64(time.Since(start).Microseconds())/1000.0*0.05
	}()

	// 1. Update UI Panel
	if inpututil.IsKeyJustPressed(ebiten.KeyTab) {
		g.panel.Toggle()
	}
	g.panel.Update()

	// 2. Forward panel changes
	if err := g.sync(); err != nil {
		return err
	}

	// 3. Trigger Simulation Step
	mx, my := ebiten.CursorPosition()
	g.pointer = g.pointerAt(float64(mx), float64(my),
		ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft),
		ebiten.IsMouseButtonPressed(ebiten.MouseButtonRight))
	if err := g.engine.Tick(g.clock.Step(), g.pointer); err != nil {
		return fmt.Errorf("tick: %w", err)
	}

	// 4. Retrieve Latest State (Non-blocking)
	if snap := g.engine.Latest(); snap != nil {
		g.lastState = snap
	}
	return nil
}

// sync sends the reset and tuning requested through the panel since the last frame.
func (g *Game) sync() error {
	if g.resetRequested {
		g.resetRequested = false
		if err := g.engine.Reset(); err != nil {
			return fmt.Errorf("reset: %w", err)
		}
	}

	b := flock.Behaviors{
		Separation: g.widgetSeparation.apply(g.cfg.Behaviors.Separation),
		Alignment:  g.widgetAlignment.apply(g.cfg.Behaviors.Alignment),
		Cohesion:   g.widgetCohesion.apply(g.cfg.Behaviors.Cohesion),
		Mouse:      g.widgetMouse.apply(g.cfg.Behaviors.Mouse),
	}
	maxSpeed := g.widgetMaxSpeed.Value
	if b == g.sentBehaviors && maxSpeed == g.sentMaxSpeed {
		return nil
	}
	if err := g.engine.Tune(b, maxSpeed); err != nil {
		return fmt.Errorf("tune: %w", err)
	}
	g.sentBehaviors, g.sentMaxSpeed = b, maxSpeed
	return nil
}

// pointerAt builds the pointer state of a frame. The cursor only steers the
// flock while it is inside the window and not over the panel.
func (g *Game) pointerAt(x, y float64, left, right bool) flock.Pointer {
	inside := x >= 0 && x < g.cfg.Arena.Width && y >= 0 && y < g.cfg.Arena.Height &&
		!g.panel.Contains(x, y)
	return flock.Pointer{Inside: inside, X: x, Y: y, Left: left, Right: right}
}

func (g *Game) Draw(screen *ebiten.Image) {
	start := time.Now()
	defer func() {
		g.drawAvg = g.drawAvg*0.95 + float64(time.Since(start).Microseconds())/1000.0*0.05
	}()

	screen.Fill(colornames.Midnightblue)

	// 1. Draw all agents from the last known snapshot
	if g.lastState != nil {
		g.drawFlock(screen, g.lastState)
		g.drawMouseRadius(screen, g.lastState.Config.Behaviors.Mouse)
	}

	// 2. Draw UI Panel
	g.panel.Draw(screen)

	// 3. Display performance stats on the right side
	tick, agents, step := uint64(0), 0, time.Duration(0)
	if g.lastState != nil {
		tick, agents, step = g.lastState.Tick, len(g.lastState.Views), g.lastState.Step
	}
	msg := fmt.Sprintf("FPS: %.2f\nTPS: %.2f\nTick: %d\nAgents: %d\n\nStep:   %s\nUpdate: %.2fms\nDraw:   %.2fms",
		ebiten.ActualFPS(),
		ebiten.ActualTPS(),
		tick,
		agents,
		step.Round(time.Microsecond),
		g.updateAvg,
		g.drawAvg)
	ebitenutil.DebugPrintAt(screen, msg, int(g.cfg.Arena.Width)-150, 10)
}

// drawFlock batches every agent triangle into a single DrawTriangles call.
func (g *Game) drawFlock(screen *ebiten.Image, snap *simulation.Snapshot) {
	g.vertices = g.vertices[:0]
	g.indices = g.indices[:0]
	for _, v := range snap.Views {
		if len(g.vertices)+3 > math.MaxUint16 {
			g.flush(screen)
		}
		x, y := flock.ScreenPoint(v.Pos, g.cfg.Arena)
		// the screen y axis points down, so angles flip sign
		angle := -v.Heading
		r, gr, b := float32(v.Color.R), float32(v.Color.G), float32(v.Color.B)

		base := uint16(len(g.vertices))
		for _, corner := range []geometry.Vector2D{
			geometry.NewVectorPolar(noseLength, angle),
			geometry.NewVectorPolar(wingLength, angle+wingAngle),
			geometry.NewVectorPolar(wingLength, angle-wingAngle),
		} {
			g.vertices = append(g.vertices, ebiten.Vertex{
				DstX: float32(x + corner.X),
				DstY: float32(y + corner.Y),
				SrcX: 1, SrcY: 1,
				ColorR: r, ColorG: gr, ColorB: b, ColorA: 1,
			})
		}
		g.indices = append(g.indices, base, base+1, base+2)
	}
	g.flush(screen)
}

func (g *Game) flush(screen *ebiten.Image) {
	if len(g.indices) > 0 {
		screen.DrawTriangles(g.vertices, g.indices, whiteImage, &ebiten.DrawTrianglesOptions{})
	}
	g.vertices = g.vertices[:0]
	g.indices = g.indices[:0]
}

func (g *Game) drawMouseRadius(screen *ebiten.Image, mouse flock.Behavior) {
	if !g.widgetMouseRadius.Value || !g.pointer.Inside {
		return
	}
	var clr color.Color = colornames.Lightgray
	switch {
	case g.pointer.Left && g.pointer.Right:
	case g.pointer.Right:
		clr = colornames.Orangered
	case g.pointer.Left:
		clr = colornames.Limegreen
	}
	vector.StrokeCircle(screen,
		float32(g.pointer.X), float32(g.pointer.Y),
		float32(mouse.Radius),
		1, clr, true)
}

func (g *Game) Layout(w, h int) (int, int) { return int(g.cfg.Arena.Width), int(g.cfg.Arena.Height) }
