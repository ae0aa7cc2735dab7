// Package render draws the flock with ebiten and drives its clock at the
// game's tick rate.
package render

import (
	"fmt"
	"image/color"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/lao-tseu-is-alive/go-boids-flock/pkg/flock"
	"github.com/lao-tseu-is-alive/go-boids-flock/pkg/simulation"
	"github.com/lao-tseu-is-alive/go-boids-flock/pkg/ui"
)

var (
	skyColor     = color.RGBA{R: 64, G: 128, B: 255, A: 255}
	boidColor    = color.RGBA{A: 255}
	headingColor = color.RGBA{R: 255, G: 255, B: 255, A: 200}
	rangeColor   = color.RGBA{R: 255, G: 255, B: 255, A: 60}
)

// Game implements ebiten.Game. The flock lives behind the clock; Game only
// ever sees the snapshots it publishes.
type Game struct {
	clock     *simulation.Controller
	snapshots <-chan *simulation.Snapshot
	lastState *simulation.Snapshot
	cfg       flock.Config
	size      int // window side in pixels, the unit square is stretched over it

	// UI Controls
	panel              *ui.UIPanel
	widgetPause        *ui.Button
	widgetShowHeading  *ui.Checkbox
	widgetShowFlocking *ui.Checkbox
	stepRequested      bool

	// Timing instrumentation
	updateAvg float64 // Rolling average in ms
	drawAvg   float64 // Rolling average in ms
}

var _ ebiten.Game = (*Game)(nil)

// NewGame wires the UI to clock. size is the side of the square window.
func NewGame(clock *simulation.Controller, snapshots <-chan *simulation.Snapshot, cfg flock.Config, size int) *Game {
	g := &Game{
		clock:     clock,
		snapshots: snapshots,
		lastState: &simulation.Snapshot{BoidRadius: cfg.BoidRadius},
		cfg:       cfg,
		size:      size,
		panel:     ui.NewUIPanel("Flock", 10, 10, 170),
	}

	g.widgetPause = g.panel.AddButton("Pause", g.togglePause)
	g.panel.AddButton("Step", func() { g.stepRequested = true })
	g.widgetShowHeading = g.panel.AddCheckbox("Show heading", false)
	g.widgetShowFlocking = g.panel.AddCheckbox("Show flock radius", false)

	clock.Refresh()
	return g
}

func (g *Game) togglePause() {
	if g.clock.TogglePause() {
		g.widgetPause.Label = "Resume"
	} else {
		g.widgetPause.Label = "Pause"
	}
}

func (g *Game) Update() error {
	start := time.Now()
	defer func() {
		g.updateAvg = g.updateAvg*0.95 + float64(time.Since(start).Microseconds())/1000.0*0.05
	}()

	// 1. Input: panel widgets, space pauses, right arrow single-steps
	g.panel.Update()
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.togglePause()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyArrowRight) {
		g.stepRequested = true
	}

	// 2. Advance the simulation by one frame of game time
	dt := 1 / float64(ebiten.TPS())
	if g.stepRequested {
		g.clock.Step(dt)
		g.stepRequested = false
	} else {
		g.clock.Tick(dt)
	}

	// 3. Keep only the latest snapshot
Loop:
	for {
		select {
		case snap := <-g.snapshots:
			g.lastState = snap
		default:
			break Loop
		}
	}

	return g.clock.Err()
}

func (g *Game) Draw(screen *ebiten.Image) {
	start := time.Now()
	defer func() {
		g.drawAvg = g.drawAvg*0.95 + float64(time.Since(start).Microseconds())/1000.0*0.05
	}()

	screen.Fill(skyColor)

	scale := float32(g.size)
	for _, b := range g.lastState.Boids {
		x, y := float32(b.Pos.X)*scale, float32(b.Pos.Y)*scale
		if g.widgetShowFlocking.Value {
			vector.StrokeCircle(screen, x, y, float32(g.cfg.FlockRadius)*scale, 1, rangeColor, true)
		}
		vector.FillCircle(screen, x, y, float32(g.lastState.BoidRadius)*scale, boidColor, true)
		if g.widgetShowHeading.Value {
			// heading line: distance covered in a tenth of a second
			vector.StrokeLine(screen, x, y,
				x+float32(b.Vel.X)*scale*0.1, y+float32(b.Vel.Y)*scale*0.1,
				1, headingColor, true)
		}
	}

	g.panel.Draw(screen)

	status := "running"
	if g.clock.Paused() {
		status = "paused"
	}
	msg := fmt.Sprintf("FPS: %.1f\nTPS: %.1f\nTick: %d (%s)\nBoids: %d\nMean speed: %.3f\n\nUpdate: %.2fms\nDraw:   %.2fms",
		ebiten.ActualFPS(),
		ebiten.ActualTPS(),
		g.lastState.Tick,
		status,
		len(g.lastState.Boids),
		g.lastState.MeanSpeed,
		g.updateAvg,
		g.drawAvg)
	ebitenutil.DebugPrintAt(screen, msg, g.size-170, 10)
}

func (g *Game) Layout(w, h int) (int, int) { return g.size, g.size }
