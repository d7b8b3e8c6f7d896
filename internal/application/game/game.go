// Package game runs the active scene under ebiten and handles scene switches.
package game

import (
	"errors"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/younwookim/controller2d/internal/application/scene"
)

// maxFrameDelta bounds a measured frame so a stalled window does not
// hand the stepper seconds of backlog
const maxFrameDelta = 0.25

// Game implements ebiten.Game
type Game struct {
	current scene.Scene
	screenW int
	screenH int
	dt      float64

	// Measured frame deltas
	measure bool
	now     func() time.Time
	last    time.Time

	closed bool
}

// New creates a Game and enters initialScene.
func New(initialScene scene.Scene, screenW, screenH int) *Game {
	g := &Game{
		current: initialScene,
		screenW: screenW,
		screenH: screenH,
		dt:      1.0 / 60.0,
		now:     time.Now,
	}
	g.current.OnEnter()
	return g
}

// SetDT fixes the delta passed to the scene on every Update.
func (g *Game) SetDT(dt float64) {
	g.dt = dt
	g.measure = false
}

// MeasureDT passes the wall time between Updates instead of a fixed delta,
// capped at maxFrameDelta. The first frame after enabling uses the fixed delta.
func (g *Game) MeasureDT(now func() time.Time) {
	if now == nil {
		now = time.Now
	}
	g.measure = true
	g.now = now
	g.last = time.Time{}
}

func (g *Game) frameDelta() float64 {
	if !g.measure {
		return g.dt
	}

	t := g.now()
	defer func() { g.last = t }()
	if g.last.IsZero() {
		return g.dt
	}

	dt := t.Sub(g.last).Seconds()
	switch {
	case dt < 0:
		return 0
	case dt > maxFrameDelta:
		return maxFrameDelta
	}
	return dt
}

// Update implements ebiten.Game
func (g *Game) Update() error {
	next, err := g.current.Update(g.frameDelta())
	if errors.Is(err, scene.ErrQuit) {
		return ebiten.Termination
	}
	if err != nil {
		return err
	}

	if next != nil {
		g.current.OnExit()
		g.current = next
		g.current.OnEnter()
	}
	return nil
}

// Draw implements ebiten.Game
func (g *Game) Draw(screen *ebiten.Image) {
	g.current.Draw(screen)
}

// Layout implements ebiten.Game
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.screenW, g.screenH
}

// Close exits the active scene once. Safe to call more than once.
func (g *Game) Close() {
	if g.closed {
		return
	}
	g.closed = true
	g.current.OnExit()
}
