package playing

import (
	"time"

	"github.com/jakecoffman/cp"
	"github.com/younwookim/controller2d/internal/application/render"
	"github.com/younwookim/controller2d/internal/application/system"
	"github.com/younwookim/controller2d/internal/domain/entity"
	"github.com/younwookim/controller2d/internal/infrastructure/config"
	"github.com/younwookim/controller2d/internal/infrastructure/physics"
)

// Session is the simulation behind the scene: one actor driven by the
// controller inside a physics world. It has no ebiten dependency on the
// update path, so replays run it headless.
type Session struct {
	cfg   *config.PhysicsConfig
	stage *entity.Stage

	world    *physics.World
	body     *physics.ActorBody
	driver   *system.ActorDriver
	stepper  *system.FixedStepper
	animator *render.StretchAnimator

	frames int
	ticks  int
}

// NewSession builds the world for a stage and spawns the actor.
// start is the simulated clock's origin.
func NewSession(cfg *config.PhysicsConfig, stage *entity.Stage, start time.Time) *Session {
	world := physics.NewWorld(vec(cfg.World.Gravity), cfg.World.Iterations)
	world.BuildStage(stage)

	body := world.AttachActor(actorSpec(cfg.Actor), spawnPoint(stage))
	animator := render.NewStretchAnimator(cfg.Feedback.SquashStretch)
	ctrl := system.NewControllerSystem(&cfg.Controller)

	return &Session{
		cfg:      cfg,
		stage:    stage,
		world:    world,
		body:     body,
		driver:   system.NewActorDriver(ctrl, body, body, world, animator),
		stepper:  system.NewFixedStepper(cfg.World.FixedDelta, cfg.World.MaxTicksPerFrame, start),
		animator: animator,
	}
}

// Frame runs the ticks owed for dt seconds of frame time, then samples input.
// Input sampled in a frame is first seen by the next frame's ticks.
// Returns the number of ticks run.
func (s *Session) Frame(in system.FrameInput, dt float64) int {
	ticks := s.stepper.Advance(dt)
	now := s.stepper.Now()
	step := s.stepper.Step()
	gravity := s.world.Gravity()

	for i := 0; i < ticks; i++ {
		s.driver.Tick(step, gravity, now)
		s.world.Step(step)
	}

	s.driver.Frame(in, now)
	s.animator.Update(dt)

	s.frames++
	s.ticks += ticks
	return ticks
}

// Respawn puts the actor back at the stage spawn with fresh controller state
func (s *Session) Respawn() {
	s.body.Teleport(spawnPoint(s.stage))
	s.driver.Reset()
}

// ApplyConfig swaps tuning at runtime. The stage and actor body are kept.
func (s *Session) ApplyConfig(cfg *config.PhysicsConfig) {
	s.cfg = cfg
	s.driver.Controller().SetConfig(&cfg.Controller)
	s.world.SetGravity(vec(cfg.World.Gravity))
	s.stepper.SetStep(cfg.World.FixedDelta)
}

// Config returns the active config
func (s *Session) Config() *config.PhysicsConfig {
	return s.cfg
}

// Actor returns a copy of the controller state
func (s *Session) Actor() entity.Actor {
	return s.driver.Actor()
}

// Position returns the actor's body centre
func (s *Session) Position() cp.Vector {
	return s.body.Position()
}

// Velocity returns the actor's body velocity
func (s *Session) Velocity() cp.Vector {
	return s.body.Velocity()
}

// Friction returns the actor's current surface friction
func (s *Session) Friction() float64 {
	return s.body.Friction()
}

// Stats returns frames run, ticks run and ticks dropped by the cap
func (s *Session) Stats() (frames, ticks, dropped int) {
	return s.frames, s.ticks, s.stepper.Dropped()
}

// Now returns the simulated clock
func (s *Session) Now() time.Time {
	return s.stepper.Now()
}

// World returns the physics world
func (s *Session) World() *physics.World {
	return s.world
}

// Stage returns the loaded stage
func (s *Session) Stage() *entity.Stage {
	return s.stage
}

// Animator returns the squash and stretch animator
func (s *Session) Animator() *render.StretchAnimator {
	return s.animator
}

// Probes returns the controller's probe geometry
func (s *Session) Probes() entity.ProbeSet {
	return s.driver.Controller().Probes()
}

func vec(v config.Vec2) cp.Vector {
	return cp.Vector{X: v.X, Y: v.Y}
}

func actorSpec(a config.ActorConfig) physics.ActorSpec {
	return physics.ActorSpec{
		Width:        a.Width,
		Height:       a.Height,
		Mass:         a.Mass,
		CornerRadius: a.CornerRadius,
	}
}

func spawnPoint(stage *entity.Stage) cp.Vector {
	return cp.Vector{X: stage.SpawnX, Y: stage.SpawnY}
}
