package physics

import (
	"github.com/jakecoffman/cp"
	"github.com/younwookim/controller2d/internal/domain/entity"
)

// ActorSpec describes the actor's collision box in world units
type ActorSpec struct {
	Width        float64
	Height       float64
	Mass         float64
	CornerRadius float64
}

// ActorBody is a dynamic, non-rotating box. Its shape friction is the
// surface material the controller writes every tick.
//
// Velocity writes are held as a command and applied from the body's velocity
// update, after contacts are found and before the solver runs. Written
// directly, the space would move the body with the command before solving
// and push it into walls by a full step.
type ActorBody struct {
	body  *cp.Body
	shape *cp.Shape

	command cp.Vector
	pending bool
}

// AttachActor adds an actor body centred on pos
func (w *World) AttachActor(spec ActorSpec, pos cp.Vector) *ActorBody {
	body := w.space.AddBody(cp.NewBody(spec.Mass, cp.INFINITY))
	body.SetPosition(pos)

	r := spec.CornerRadius
	hw, hh := spec.Width/2, spec.Height/2
	shape := w.space.AddShape(cp.NewBox2(body, cp.BB{L: -hw + r, B: -hh + r, R: hw - r, T: hh - r}, r))
	shape.SetElasticity(0)
	shape.SetFriction(0)
	shape.SetFilter(cp.ShapeFilter{
		Group:      cp.NO_GROUP,
		Categories: uint(entity.LayerActor),
		Mask:       cp.ALL_CATEGORIES,
	})

	ab := &ActorBody{body: body, shape: shape}
	body.SetVelocityUpdateFunc(ab.updateVelocity)
	return ab
}

func (b *ActorBody) updateVelocity(body *cp.Body, gravity cp.Vector, damping, dt float64) {
	if b.pending {
		body.SetVelocityVector(b.command)
		b.pending = false
	}
	body.UpdateVelocity(gravity, damping, dt)
}

// Velocity returns the commanded velocity if one is waiting for the next
// step, otherwise the solved body velocity
func (b *ActorBody) Velocity() cp.Vector {
	if b.pending {
		return b.command
	}
	return b.body.Velocity()
}

// SetVelocity commands the body velocity for the next step
func (b *ActorBody) SetVelocity(v cp.Vector) {
	b.command = v
	b.pending = true
}

// ApplyImpulse adds j over mass to the commanded velocity
func (b *ActorBody) ApplyImpulse(j cp.Vector) {
	b.command = b.Velocity().Add(j.Mult(1 / b.body.Mass()))
	b.pending = true
}

// Position returns the body centre
func (b *ActorBody) Position() cp.Vector {
	return b.body.Position()
}

// SetFriction sets the actor's surface friction
func (b *ActorBody) SetFriction(f float64) {
	b.shape.SetFriction(f)
}

// Friction returns the actor's surface friction
func (b *ActorBody) Friction() float64 {
	return b.shape.Friction()
}

// Teleport moves the body and stops it, as on respawn
func (b *ActorBody) Teleport(pos cp.Vector) {
	b.pending = false
	b.body.SetPosition(pos)
	b.body.SetVelocityVector(cp.Vector{})
}
