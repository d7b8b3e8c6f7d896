// Package render draws the stage, the actor and debug overlays.
package render

import "github.com/jakecoffman/cp"

// Camera maps y-up world units to y-down screen pixels.
// X and Y are the world point shown at the screen centre.
type Camera struct {
	X, Y          float64
	PixelsPerUnit float64
	ScreenW       int
	ScreenH       int
}

// NewCamera creates a camera centred on the world origin
func NewCamera(screenW, screenH int, pixelsPerUnit float64) *Camera {
	return &Camera{
		PixelsPerUnit: pixelsPerUnit,
		ScreenW:       screenW,
		ScreenH:       screenH,
	}
}

// ToScreen converts a world point to screen pixels
func (c *Camera) ToScreen(p cp.Vector) (float32, float32) {
	sx := (p.X-c.X)*c.PixelsPerUnit + float64(c.ScreenW)/2
	sy := float64(c.ScreenH)/2 - (p.Y-c.Y)*c.PixelsPerUnit
	return float32(sx), float32(sy)
}

// ToWorld converts screen pixels back to a world point
func (c *Camera) ToWorld(sx, sy float64) cp.Vector {
	return cp.Vector{
		X: c.X + (sx-float64(c.ScreenW)/2)/c.PixelsPerUnit,
		Y: c.Y - (sy-float64(c.ScreenH)/2)/c.PixelsPerUnit,
	}
}

// Follow centres the camera on target, keeping the view inside a world of
// worldW x worldH units. A world smaller than the view stays centred.
func (c *Camera) Follow(target cp.Vector, worldW, worldH float64) {
	halfW := float64(c.ScreenW) / 2 / c.PixelsPerUnit
	halfH := float64(c.ScreenH) / 2 / c.PixelsPerUnit

	c.X = clampAxis(target.X, halfW, worldW)
	c.Y = clampAxis(target.Y, halfH, worldH)
}

func clampAxis(v, half, size float64) float64 {
	if size <= half*2 {
		return size / 2
	}
	if v < half {
		return half
	}
	if v > size-half {
		return size - half
	}
	return v
}
