package system

import (
	"time"

	"github.com/jakecoffman/cp"
	"github.com/younwookim/controller2d/internal/domain/entity"
	"github.com/younwookim/controller2d/internal/infrastructure/config"
)

// TriggerJumping is the animation trigger fired on the tick a jump executes
const TriggerJumping = "Jumping"

// Prober answers circular overlap queries against the host's colliders
type Prober interface {
	OverlapCircle(center cp.Vector, radius float64, layers entity.Layer) bool
}

// TickContext is what the host supplies for one fixed tick
type TickContext struct {
	FixedDelta float64   // fixed tick duration in seconds
	Delta      float64   // elapsed time used by decay and gravity scaling
	Gravity    cp.Vector // world gravity
	Now        time.Time // simulated wall clock, for the wall-jump window
	Position   cp.Vector // body position the probes are anchored to
}

// TickResult holds the writes the host applies after a tick.
// Impulse is applied after Velocity is written.
type TickResult struct {
	Velocity cp.Vector
	Impulse  cp.Vector
	Friction float64
	Flipped  bool
	Trigger  string
	Contact  entity.ContactState
}

// ControllerSystem runs the character controller pipeline
type ControllerSystem struct {
	config *config.ControllerConfig
	probes entity.ProbeSet
}

// NewControllerSystem creates a controller for a validated config
func NewControllerSystem(cfg *config.ControllerConfig) *ControllerSystem {
	return &ControllerSystem{
		config: cfg,
		probes: cfg.Probes(),
	}
}

// SetConfig swaps the tuning, e.g. after a hot reload
func (s *ControllerSystem) SetConfig(cfg *config.ControllerConfig) {
	s.config = cfg
	s.probes = cfg.Probes()
}

// Config returns the active tuning
func (s *ControllerSystem) Config() *config.ControllerConfig {
	return s.config
}

// Probes returns the contact probe geometry
func (s *ControllerSystem) Probes() entity.ProbeSet {
	return s.probes
}

// Sample captures one frame of input. It runs once per rendered frame,
// independently of how many ticks that frame produces.
func (s *ControllerSystem) Sample(a entity.Actor, in FrameInput, now time.Time) entity.Actor {
	a.HorizontalInput = in.Horizontal
	a.VerticalInput = in.Vertical
	if in.JumpPressed {
		a.JumpRequested = true
	}

	// Arming again before expiry restarts the window
	if a.Contact.WallDetected && a.JumpRequested && a.HorizontalInput != 0 {
		a.WallJumpUntil = now.Add(s.config.WallJumpDuration())
	}
	return a
}

// Tick runs one fixed step of the pipeline. The contact state in a comes
// from the previous tick; the one returned is only read by the next tick.
func (s *ControllerSystem) Tick(a entity.Actor, ctx TickContext, probe Prober) (entity.Actor, TickResult) {
	var res TickResult

	if !a.WallJumpUntil.IsZero() && !ctx.Now.Before(a.WallJumpUntil) {
		a.WallJumpUntil = time.Time{}
	}

	s.resolveVelocity(&a, ctx)
	res.Flipped = s.updateFacing(&a)
	res.Impulse = s.resolveJump(&a)
	s.resolveWall(&a, ctx.Now)
	s.updateModifiers(&a)
	if a.Jumping {
		res.Trigger = TriggerJumping
	}
	s.applyGravity(&a, ctx)

	res.Contact = s.probeContacts(&a, ctx.Position, probe)
	a.Contact = res.Contact

	res.Velocity = a.Velocity
	res.Friction = a.Friction
	return a, res
}

// resolveVelocity sets horizontal velocity from input, or lets it settle when idle
func (s *ControllerSystem) resolveVelocity(a *entity.Actor, ctx TickContext) {
	if a.HorizontalInput != 0 {
		// Scaled by the tick duration, so speed depends on the tick rate
		a.Velocity.X = a.HorizontalInput * s.config.Movement.MoveSpeed * ctx.FixedDelta
		return
	}

	switch {
	case a.Contact.Grounded:
		a.Velocity.X = 0
	case a.Velocity.X > 1:
		a.Velocity.X -= ctx.Delta * a.DecayRate
	case a.Velocity.X < -1:
		a.Velocity.X += ctx.Delta * a.DecayRate
	}
}

// updateFacing turns the actor toward the input. Reports whether it flipped.
func (s *ControllerSystem) updateFacing(a *entity.Actor) bool {
	if a.HorizontalInput < 0 && a.Facing == entity.FacingRight {
		a.Facing = entity.FacingLeft
		return true
	}
	if a.HorizontalInput > 0 && a.Facing == entity.FacingLeft {
		a.Facing = entity.FacingRight
		return true
	}
	return false
}

// resolveJump consumes the jump request and returns the impulse to apply, if any
func (s *ControllerSystem) resolveJump(a *entity.Actor) cp.Vector {
	canJump := a.JumpRequested && a.JumpCharge != 0 && a.VerticalInput >= 0
	a.JumpRequested = false

	if !canJump {
		a.Jumping = false
		return cp.Vector{}
	}

	a.Jumping = true
	if a.Velocity.Y != 0 {
		a.Velocity.Y = 0
	}
	a.JumpCharge--
	return cp.Vector{X: 0, Y: s.config.Movement.JumpForce}
}

// resolveWall applies the wall-jump boost while armed, otherwise the wall slide
func (s *ControllerSystem) resolveWall(a *entity.Actor, now time.Time) {
	wall := s.config.Wall

	if a.WallJumpArmed(now) {
		a.Velocity = cp.Vector{X: wall.XForce * -a.HorizontalInput, Y: wall.YForce}
		return
	}

	if a.Contact.WallDetected && !a.Contact.Grounded && a.HorizontalInput != 0 {
		// Moving up along a wall also ends up sliding down
		a.Velocity.Y = -cp.Clamp(a.Velocity.Y, wall.SlidingSpeed, cp.INFINITY)
	}
}

// updateModifiers derives decay rate, jump charge and friction from contact
func (s *ControllerSystem) updateModifiers(a *entity.Actor) {
	if a.Contact.Grounded {
		a.DecayRate = s.config.Movement.MoveSmoothness * 10
	} else {
		a.DecayRate = s.config.Movement.MoveSmoothness
	}

	if a.Contact.Grounded {
		a.JumpCharge = 1
	}
	if a.Contact.WallDetected && a.HorizontalInput != 0 {
		a.JumpCharge = 1
	}

	if a.Contact.Touching() {
		a.Friction = s.config.Friction.Touch
	} else {
		a.Friction = s.config.Friction.Air
	}
}

// applyGravity adds extra gravity while falling and a smaller share while rising
func (s *ControllerSystem) applyGravity(a *entity.Actor, ctx TickContext) {
	g := s.config.Gravity
	switch {
	case a.Velocity.Y < 0:
		a.Velocity.Y += ctx.Gravity.Y * (g.FallMultiplier - 1) * ctx.Delta
	case a.Velocity.Y > 0:
		a.Velocity.Y += ctx.Gravity.Y * (g.LowJumpMultiplier - 1) * ctx.Delta
	}
}

// probeContacts re-evaluates ground and wall contact around pos
func (s *ControllerSystem) probeContacts(a *entity.Actor, pos cp.Vector, probe Prober) entity.ContactState {
	p := s.probes
	ground := p.Ground.World(pos, a.Facing)
	up := p.WallUp.World(pos, a.Facing)
	down := p.WallDown.World(pos, a.Facing)

	return entity.ContactState{
		Grounded:     probe.OverlapCircle(ground, p.Radius, p.GroundLayer),
		WallDetected: probe.OverlapCircle(up, p.Radius, p.WallLayer) || probe.OverlapCircle(down, p.Radius, p.WallLayer),
	}
}
