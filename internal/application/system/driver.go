package system

import (
	"time"

	"github.com/jakecoffman/cp"
	"github.com/younwookim/controller2d/internal/domain/entity"
)

// Body is the actor's rigid body in the host simulation
type Body interface {
	Velocity() cp.Vector
	SetVelocity(v cp.Vector)
	ApplyImpulse(j cp.Vector)
	Position() cp.Vector
}

// Material is the surface material shared with the host's contact solver
type Material interface {
	SetFriction(f float64)
}

// Animator receives animation triggers
type Animator interface {
	SetTrigger(name string)
}

// ActorDriver connects one actor's controller state to the host simulation.
// It reads the body before each tick and pushes the tick's writes back.
type ActorDriver struct {
	controller *ControllerSystem
	actor      entity.Actor

	body     Body
	material Material
	probe    Prober
	animator Animator
}

// NewActorDriver creates a driver for a freshly spawned actor.
// animator may be nil.
func NewActorDriver(ctrl *ControllerSystem, body Body, material Material, probe Prober, animator Animator) *ActorDriver {
	return &ActorDriver{
		controller: ctrl,
		actor:      entity.NewActor(),
		body:       body,
		material:   material,
		probe:      probe,
		animator:   animator,
	}
}

// Frame samples one frame of input
func (d *ActorDriver) Frame(in FrameInput, now time.Time) {
	d.actor = d.controller.Sample(d.actor, in, now)
}

// Tick runs one fixed step and writes the result to the body
func (d *ActorDriver) Tick(fixedDelta float64, gravity cp.Vector, now time.Time) TickResult {
	d.actor.Velocity = d.body.Velocity()

	ctx := TickContext{
		FixedDelta: fixedDelta,
		Delta:      fixedDelta,
		Gravity:    gravity,
		Now:        now,
		Position:   d.body.Position(),
	}

	var res TickResult
	d.actor, res = d.controller.Tick(d.actor, ctx, d.probe)

	d.body.SetVelocity(res.Velocity)
	if res.Impulse != (cp.Vector{}) {
		d.body.ApplyImpulse(res.Impulse)
	}
	d.material.SetFriction(res.Friction)
	if res.Trigger != "" && d.animator != nil {
		d.animator.SetTrigger(res.Trigger)
	}
	return res
}

// Actor returns a copy of the controller state
func (d *ActorDriver) Actor() entity.Actor {
	return d.actor
}

// Controller returns the controller the driver runs
func (d *ActorDriver) Controller() *ControllerSystem {
	return d.controller
}

// Reset drops all controller state, as on respawn
func (d *ActorDriver) Reset() {
	d.actor = entity.NewActor()
}
