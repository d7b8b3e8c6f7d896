package replay

// FormatVersion is written to every recording
const FormatVersion = "2.0"

// FrameInput records input state for a single rendered frame
type FrameInput struct {
	F  int     `json:"f" yaml:"f"`                       // Frame number
	H  float64 `json:"h,omitempty" yaml:"h,omitempty"`   // Horizontal axis
	V  float64 `json:"v,omitempty" yaml:"v,omitempty"`   // Vertical axis
	JP bool    `json:"jp,omitempty" yaml:"jp,omitempty"` // JumpPressed
	DT float64 `json:"dt" yaml:"dt"`                     // Frame delta in seconds
}

// ReplayData contains all data needed to replay a session.
// The simulation is deterministic given the frame deltas, so no seed is kept.
type ReplayData struct {
	Version   string       `json:"version" yaml:"version"`
	Stage     string       `json:"stage" yaml:"stage"`
	StartTime string       `json:"startTime" yaml:"startTime"`
	Frames    []FrameInput `json:"frames" yaml:"frames"`
}

// Duration returns the recorded play time in seconds
func (d *ReplayData) Duration() float64 {
	var total float64
	for _, f := range d.Frames {
		total += f.DT
	}
	return total
}
