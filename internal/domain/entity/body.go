package entity

import (
	"time"

	"github.com/jakecoffman/cp"
)

// Facing is the horizontal mirror state of the actor's visual representation.
type Facing int

const (
	FacingRight Facing = 1
	FacingLeft  Facing = -1
)

// Sign returns +1 or -1 as a float for scaling offsets and sprites
func (f Facing) Sign() float64 {
	if f == FacingLeft {
		return -1
	}
	return 1
}

// Flip returns the opposite facing
func (f Facing) Flip() Facing {
	if f == FacingLeft {
		return FacingRight
	}
	return FacingLeft
}

// ContactState is the result of one round of contact probing.
// It is written at the end of a tick and read by the resolvers of the next one.
type ContactState struct {
	Grounded     bool
	WallDetected bool
}

// Touching returns true if the actor touches ground or wall
func (c ContactState) Touching() bool {
	return c.Grounded || c.WallDetected
}

// Actor holds the controller state of a single platforming actor.
// Values are copied in and out of the tick function; nothing here is shared.
type Actor struct {
	// Inputs, refreshed every frame
	HorizontalInput float64
	VerticalInput   float64
	JumpRequested   bool

	// WallJumpUntil is the end of the wall-jump window. Zero means not armed.
	WallJumpUntil time.Time

	Contact ContactState

	// Jumping is only true on the tick a jump executed
	Jumping bool

	JumpCharge int
	DecayRate  float64

	Velocity cp.Vector
	Facing   Facing
	Friction float64
}

// NewActor creates an actor facing right with no jump charge.
// The charge is granted by the first grounded tick.
func NewActor() Actor {
	return Actor{Facing: FacingRight}
}

// WallJumpArmed reports whether the wall-jump window is open at now
func (a *Actor) WallJumpArmed(now time.Time) bool {
	return !a.WallJumpUntil.IsZero() && now.Before(a.WallJumpUntil)
}
