package system

import "time"

// FixedStepper turns variable frame time into a number of fixed ticks.
// It also keeps the simulated wall clock the controller's timers run on,
// so a recorded session replays with the same timing.
type FixedStepper struct {
	step     float64
	maxTicks int

	acc     float64
	now     time.Time
	dropped int
}

// NewFixedStepper creates a stepper. maxTicks caps the ticks run per frame;
// zero or less means no cap.
func NewFixedStepper(step float64, maxTicks int, start time.Time) *FixedStepper {
	return &FixedStepper{
		step:     step,
		maxTicks: maxTicks,
		now:      start,
	}
}

// Advance adds one frame of elapsed time and returns how many ticks to run.
// Time beyond the tick cap is discarded.
func (s *FixedStepper) Advance(frameDelta float64) int {
	if frameDelta < 0 {
		frameDelta = 0
	}
	s.now = s.now.Add(seconds(frameDelta))
	s.acc += frameDelta

	ticks := int(s.acc / s.step)
	if s.maxTicks > 0 && ticks > s.maxTicks {
		s.dropped += ticks - s.maxTicks
		ticks = s.maxTicks
		s.acc = 0
		return ticks
	}
	s.acc -= float64(ticks) * s.step
	return ticks
}

// Now returns the simulated wall clock
func (s *FixedStepper) Now() time.Time {
	return s.now
}

// Step returns the fixed tick duration in seconds
func (s *FixedStepper) Step() float64 {
	return s.step
}

// SetStep changes the tick duration, keeping accumulated time
func (s *FixedStepper) SetStep(step float64) {
	s.step = step
}

// Dropped returns how many ticks were skipped by the cap so far
func (s *FixedStepper) Dropped() int {
	return s.dropped
}

func seconds(s float64) time.Duration {
	return time.Duration(s * float64(time.Second))
}
