package replay

import (
	"time"

	"github.com/younwookim/controller2d/internal/application/system"
)

// Replayer feeds recorded frames back in order
type Replayer struct {
	data ReplayData
	next int
}

func NewReplayer(data ReplayData) *Replayer {
	return &Replayer{data: data}
}

// GetInput returns the next frame's input and delta. ok is false once
// every frame has been played.
func (r *Replayer) GetInput() (in system.FrameInput, dt float64, ok bool) {
	if r.Done() {
		return system.FrameInput{}, 0, false
	}

	f := r.data.Frames[r.next]
	r.next++
	return system.FrameInput{Horizontal: f.H, Vertical: f.V, JumpPressed: f.JP}, f.DT, true
}

// CurrentFrame is the index of the next frame GetInput returns
func (r *Replayer) CurrentFrame() int { return r.next }

func (r *Replayer) TotalFrames() int { return len(r.data.Frames) }

// Stage names the stage the recording was made on
func (r *Replayer) Stage() string { return r.data.Stage }

func (r *Replayer) Done() bool { return r.next >= len(r.data.Frames) }

// Reset rewinds to the first frame
func (r *Replayer) Reset() { r.next = 0 }

// CreateTestReplayData builds an idle recording of n frames at a fixed delta
func CreateTestReplayData(n int, dt float64) ReplayData {
	frames := make([]FrameInput, n)
	for i := range frames {
		frames[i] = FrameInput{F: i, DT: dt}
	}
	return ReplayData{
		Version:   FormatVersion,
		Stage:     "test",
		StartTime: time.Now().Format(time.RFC3339),
		Frames:    frames,
	}
}
