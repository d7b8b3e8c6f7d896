package system

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// FrameInput holds the input sampled once per frame
type FrameInput struct {
	Horizontal  float64 // [-1, 1], positive is right
	Vertical    float64 // positive is up, only the sign is used
	JumpPressed bool    // true only on the frame jump went down
}

// InputSystem reads keyboard and gamepad state
type InputSystem struct {
	deadzone float64
	gamepads []ebiten.GamepadID
}

// NewInputSystem creates a new input system. Stick values inside deadzone read as zero.
func NewInputSystem(deadzone float64) *InputSystem {
	return &InputSystem{deadzone: deadzone}
}

// Poll reads the current input state
func (s *InputSystem) Poll() FrameInput {
	in := FrameInput{
		Horizontal: keyAxis(
			ebiten.IsKeyPressed(ebiten.KeyA) || ebiten.IsKeyPressed(ebiten.KeyArrowLeft),
			ebiten.IsKeyPressed(ebiten.KeyD) || ebiten.IsKeyPressed(ebiten.KeyArrowRight),
		),
		Vertical: keyAxis(
			ebiten.IsKeyPressed(ebiten.KeyS) || ebiten.IsKeyPressed(ebiten.KeyArrowDown),
			ebiten.IsKeyPressed(ebiten.KeyW) || ebiten.IsKeyPressed(ebiten.KeyArrowUp),
		),
		JumpPressed: inpututil.IsKeyJustPressed(ebiten.KeySpace) ||
			inpututil.IsKeyJustPressed(ebiten.KeyW) ||
			inpututil.IsKeyJustPressed(ebiten.KeyArrowUp),
	}

	s.gamepads = ebiten.AppendGamepadIDs(s.gamepads[:0])
	for _, id := range s.gamepads {
		if !ebiten.IsStandardGamepadLayoutAvailable(id) {
			continue
		}
		if in.Horizontal == 0 {
			in.Horizontal = s.stick(ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisLeftStickHorizontal))
		}
		if in.Vertical == 0 {
			// Stick y grows downward
			in.Vertical = -s.stick(ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisLeftStickVertical))
		}
		if inpututil.IsStandardGamepadButtonJustPressed(id, ebiten.StandardGamepadButtonRightBottom) {
			in.JumpPressed = true
		}
	}
	return in
}

// stick applies the deadzone and clamps to [-1, 1]
func (s *InputSystem) stick(v float64) float64 {
	if math.Abs(v) < s.deadzone {
		return 0
	}
	return math.Max(-1, math.Min(1, v))
}

func keyAxis(negative, positive bool) float64 {
	switch {
	case negative && !positive:
		return -1
	case positive && !negative:
		return 1
	default:
		return 0
	}
}
