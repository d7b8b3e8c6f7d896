// Package scene defines the screens the game loop can run.
package scene

import (
	"errors"

	"github.com/hajimehoshi/ebiten/v2"
)

// ErrQuit is returned from Update to end the game normally
var ErrQuit = errors.New("quit requested")

// Scene is one screen of the game. The loop forwards Update and Draw to
// the active scene and switches when Update returns a non-nil next.
type Scene interface {
	// Update advances the scene by one display frame of dt seconds.
	// A non-nil error stops the game.
	Update(dt float64) (next Scene, err error)

	Draw(screen *ebiten.Image)

	// OnEnter runs each time the scene becomes active.
	OnEnter()

	// OnExit runs when the scene is left or the game closes.
	OnExit()
}
