package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/younwookim/controller2d/internal/domain/entity"
)

// PhysicsConfig is the root config for physics.json (or physics.yaml)
type PhysicsConfig struct {
	Display    DisplayConfig    `json:"display" yaml:"display"`
	World      WorldConfig      `json:"world" yaml:"world"`
	Controller ControllerConfig `json:"controller" yaml:"controller"`
	Actor      ActorConfig      `json:"actor" yaml:"actor"`
	Feedback   FeedbackConfig   `json:"feedback" yaml:"feedback"`
}

type DisplayConfig struct {
	ScreenWidth   int     `json:"screenWidth" yaml:"screenWidth"`
	ScreenHeight  int     `json:"screenHeight" yaml:"screenHeight"`
	Scale         int     `json:"scale" yaml:"scale"`
	Framerate     int     `json:"framerate" yaml:"framerate"`
	PixelsPerUnit float64 `json:"pixelsPerUnit" yaml:"pixelsPerUnit"`
}

// WorldConfig configures the host simulation the controller runs against
type WorldConfig struct {
	Gravity          Vec2    `json:"gravity" yaml:"gravity"`
	FixedDelta       float64 `json:"fixedDelta" yaml:"fixedDelta"` // seconds per physics tick
	Iterations       int     `json:"iterations" yaml:"iterations"`
	MaxTicksPerFrame int     `json:"maxTicksPerFrame" yaml:"maxTicksPerFrame"`
}

type Vec2 struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
}

// ControllerConfig holds the tuning knobs of the character controller
type ControllerConfig struct {
	Movement MovementConfig        `json:"movement" yaml:"movement"`
	Wall     WallConfig            `json:"wall" yaml:"wall"`
	Gravity  GravityModifierConfig `json:"gravity" yaml:"gravity"`
	Detector DetectorConfig        `json:"detector" yaml:"detector"`
	Friction FrictionConfig        `json:"friction" yaml:"friction"`
}

type MovementConfig struct {
	MoveSpeed      float64 `json:"moveSpeed" yaml:"moveSpeed"`
	JumpForce      float64 `json:"jumpForce" yaml:"jumpForce"`
	MoveSmoothness float64 `json:"moveSmoothness" yaml:"moveSmoothness"`
}

type WallConfig struct {
	SlidingSpeed float64 `json:"slidingSpeed" yaml:"slidingSpeed"`
	XForce       float64 `json:"xForce" yaml:"xForce"`
	YForce       float64 `json:"yForce" yaml:"yForce"`
	JumpTime     float64 `json:"jumpTime" yaml:"jumpTime"` // seconds of real time
}

type GravityModifierConfig struct {
	FallMultiplier    float64 `json:"fallMultiplier" yaml:"fallMultiplier"`
	LowJumpMultiplier float64 `json:"lowJumpMultiplier" yaml:"lowJumpMultiplier"`
}

// DetectorConfig places the three contact probes relative to the actor origin
type DetectorConfig struct {
	Ground      *Vec2   `json:"ground" yaml:"ground"`
	WallUp      *Vec2   `json:"wallUp" yaml:"wallUp"`
	WallDown    *Vec2   `json:"wallDown" yaml:"wallDown"`
	Radius      float64 `json:"radius" yaml:"radius"`
	GroundLayer string  `json:"groundLayer" yaml:"groundLayer"`
	WallLayer   string  `json:"wallLayer" yaml:"wallLayer"`
}

type FrictionConfig struct {
	Touch float64 `json:"touch" yaml:"touch"`
	Air   float64 `json:"air" yaml:"air"`
}

// ActorConfig describes the actor's rigid body
type ActorConfig struct {
	Width        float64 `json:"width" yaml:"width"`
	Height       float64 `json:"height" yaml:"height"`
	Mass         float64 `json:"mass" yaml:"mass"`
	CornerRadius float64 `json:"cornerRadius" yaml:"cornerRadius"`
}

type FeedbackConfig struct {
	SquashStretch SquashStretchConfig `json:"squashStretch" yaml:"squashStretch"`
}

type SquashStretchConfig struct {
	Enabled     bool    `json:"enabled" yaml:"enabled"`
	JumpStretch ScaleXY `json:"jumpStretch" yaml:"jumpStretch"`
	Duration    float64 `json:"duration" yaml:"duration"`
}

type ScaleXY struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
}

// WallJumpDuration returns the wall-jump window as a duration
func (c *ControllerConfig) WallJumpDuration() time.Duration {
	return time.Duration(c.Wall.JumpTime * float64(time.Second))
}

// Probes converts the detector config into the entity probe set
func (c *ControllerConfig) Probes() entity.ProbeSet {
	return entity.ProbeSet{
		Ground:      c.Detector.Ground.anchor(),
		WallUp:      c.Detector.WallUp.anchor(),
		WallDown:    c.Detector.WallDown.anchor(),
		Radius:      c.Detector.Radius,
		GroundLayer: entity.ParseLayer(c.Detector.GroundLayer),
		WallLayer:   entity.ParseLayer(c.Detector.WallLayer),
	}
}

func (v *Vec2) anchor() *entity.Anchor {
	if v == nil {
		return nil
	}
	return &entity.Anchor{X: v.X, Y: v.Y}
}

// Validate checks that the controller can run with this config.
// The controller itself never checks for missing probes.
func (c *ControllerConfig) Validate() error {
	var errs []error
	if c.Detector.Ground == nil {
		errs = append(errs, errors.New("detector.ground is not set"))
	}
	if c.Detector.WallUp == nil {
		errs = append(errs, errors.New("detector.wallUp is not set"))
	}
	if c.Detector.WallDown == nil {
		errs = append(errs, errors.New("detector.wallDown is not set"))
	}
	if c.Detector.Radius <= 0 {
		errs = append(errs, fmt.Errorf("detector.radius must be positive, got %v", c.Detector.Radius))
	}
	if entity.ParseLayer(c.Detector.GroundLayer) == entity.LayerNone {
		errs = append(errs, fmt.Errorf("detector.groundLayer %q is unknown", c.Detector.GroundLayer))
	}
	if entity.ParseLayer(c.Detector.WallLayer) == entity.LayerNone {
		errs = append(errs, fmt.Errorf("detector.wallLayer %q is unknown", c.Detector.WallLayer))
	}
	if c.Wall.JumpTime < 0 {
		errs = append(errs, fmt.Errorf("wall.jumpTime must not be negative, got %v", c.Wall.JumpTime))
	}
	return errors.Join(errs...)
}

// Validate checks the whole physics config
func (c *PhysicsConfig) Validate() error {
	var errs []error
	if c.World.FixedDelta <= 0 {
		errs = append(errs, fmt.Errorf("world.fixedDelta must be positive, got %v", c.World.FixedDelta))
	}
	if c.Actor.Mass <= 0 {
		errs = append(errs, fmt.Errorf("actor.mass must be positive, got %v", c.Actor.Mass))
	}
	if err := c.Controller.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("controller: %w", err))
	}
	return errors.Join(errs...)
}

// DefaultControllerConfig returns the stock tuning
func DefaultControllerConfig() ControllerConfig {
	return ControllerConfig{
		Movement: MovementConfig{
			MoveSpeed:      400,
			JumpForce:      12,
			MoveSmoothness: 12,
		},
		Wall: WallConfig{
			SlidingSpeed: 5,
			XForce:       15,
			YForce:       20,
			JumpTime:     0.05,
		},
		Gravity: GravityModifierConfig{
			FallMultiplier:    4,
			LowJumpMultiplier: 1.5,
		},
		Detector: DetectorConfig{
			Ground:      &Vec2{X: 0, Y: -0.5},
			WallUp:      &Vec2{X: 0.3, Y: 0.25},
			WallDown:    &Vec2{X: 0.3, Y: -0.25},
			Radius:      0.25,
			GroundLayer: "ground",
			WallLayer:   "wall",
		},
		Friction: FrictionConfig{
			Touch: 0.4,
			Air:   0,
		},
	}
}

// DefaultPhysicsConfig returns a complete config usable without any files
func DefaultPhysicsConfig() PhysicsConfig {
	return PhysicsConfig{
		Display: DisplayConfig{
			ScreenWidth:   480,
			ScreenHeight:  270,
			Scale:         2,
			Framerate:     60,
			PixelsPerUnit: 24,
		},
		World: WorldConfig{
			Gravity:          Vec2{X: 0, Y: -9.81},
			FixedDelta:       0.02,
			Iterations:       10,
			MaxTicksPerFrame: 5,
		},
		Controller: DefaultControllerConfig(),
		Actor: ActorConfig{
			Width:        0.5,
			Height:       1,
			Mass:         1,
			CornerRadius: 0.05,
		},
		Feedback: FeedbackConfig{
			SquashStretch: SquashStretchConfig{
				Enabled:     true,
				JumpStretch: ScaleXY{X: 0.8, Y: 1.25},
				Duration:    0.15,
			},
		},
	}
}
