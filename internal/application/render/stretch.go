package render

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"

	"github.com/younwookim/controller2d/internal/application/system"
	"github.com/younwookim/controller2d/internal/infrastructure/config"
)

// StretchAnimator receives the controller's animation triggers and plays a
// squash and stretch on jump. It is the only consumer of "Jumping".
type StretchAnimator struct {
	cfg    config.SquashStretchConfig
	seq    *gween.Sequence
	amount float32
	active bool
}

// NewStretchAnimator creates an idle animator
func NewStretchAnimator(cfg config.SquashStretchConfig) *StretchAnimator {
	half := float32(cfg.Duration / 2)

	// 0 is the rest shape, 1 is the full jump stretch
	seq := gween.NewSequence()
	seq.Add(
		gween.New(0, 1, half, ease.OutQuad),
		gween.New(1, 0, half, ease.InQuad),
	)

	return &StretchAnimator{cfg: cfg, seq: seq}
}

// SetTrigger starts the stretch on a jump. A jump during the stretch restarts it.
func (s *StretchAnimator) SetTrigger(name string) {
	if name != system.TriggerJumping || !s.cfg.Enabled || s.cfg.Duration <= 0 {
		return
	}
	s.seq.Reset()
	s.amount = 0
	s.active = true
}

// Update advances the tween by dt seconds of frame time
func (s *StretchAnimator) Update(dt float64) {
	if !s.active {
		return
	}
	v, _, done := s.seq.Update(float32(dt))
	s.amount = v
	if done {
		s.amount = 0
		s.active = false
	}
}

// Active reports whether a stretch is playing
func (s *StretchAnimator) Active() bool {
	return s.active
}

// Scale returns the horizontal and vertical draw scale
func (s *StretchAnimator) Scale() (float64, float64) {
	t := float64(s.amount)
	x := 1 + (s.cfg.JumpStretch.X-1)*t
	y := 1 + (s.cfg.JumpStretch.Y-1)*t
	return x, y
}
