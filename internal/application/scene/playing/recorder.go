package playing

import (
	"errors"
	"fmt"
	"time"

	"github.com/younwookim/controller2d/internal/application/replay"
	"github.com/younwookim/controller2d/internal/application/system"
)

// Recorder captures the sampled input and delta of every frame
type Recorder struct {
	data      replay.ReplayData
	recording bool
}

// NewRecorder creates a new recorder for the named stage
func NewRecorder(stage string) *Recorder {
	return &Recorder{
		data: replay.ReplayData{
			Version:   replay.FormatVersion,
			Stage:     stage,
			StartTime: time.Now().Format(time.RFC3339),
			Frames:    make([]replay.FrameInput, 0, 3600), // Pre-allocate for ~1 minute at 60fps
		},
		recording: true,
	}
}

// RecordFrame records a single frame's input and its delta
func (r *Recorder) RecordFrame(input system.FrameInput, dt float64) {
	if !r.recording {
		return
	}

	r.data.Frames = append(r.data.Frames, replay.FrameInput{
		F:  len(r.data.Frames),
		H:  input.Horizontal,
		V:  input.Vertical,
		JP: input.JumpPressed,
		DT: dt,
	})
}

// Save writes the recording to filename. A .yaml or .yml name selects YAML.
func (r *Recorder) Save(filename string) error {
	if len(r.data.Frames) == 0 {
		return errors.New("no frames to save")
	}
	return replay.Save(filename, r.data)
}

// Stop ignores further frames. Frames already captured are kept.
func (r *Recorder) Stop()             { r.recording = false }
func (r *Recorder) IsRecording() bool { return r.recording }
func (r *Recorder) FrameCount() int   { return len(r.data.Frames) }

// GetData returns the captured recording
func (r *Recorder) GetData() replay.ReplayData {
	return r.data
}

// GenerateFilename names a recording after the current time
func GenerateFilename() string {
	return fmt.Sprintf("replay_%s.json", time.Now().Format("20060102_150405"))
}
