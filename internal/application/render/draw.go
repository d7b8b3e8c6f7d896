package render

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/jakecoffman/cp"
	"golang.org/x/image/colornames"

	"github.com/younwookim/controller2d/internal/domain/entity"
)

// Colors for rendering
var (
	colorGround  = colornames.Darkolivegreen
	colorWall    = colornames.Slategray
	colorActor   = colornames.Crimson
	colorEye     = colornames.White
	colorProbe   = colornames.Red
	colorContact = colornames.Yellow
	colorDefault = colornames.Midnightblue
)

// BackgroundColor resolves a stage background by its CSS color name
func BackgroundColor(name string) color.Color {
	if c, ok := colornames.Map[name]; ok {
		return c
	}
	return colorDefault
}

// DrawStage fills every non-empty tile in view
func DrawStage(screen *ebiten.Image, cam *Camera, stage *entity.Stage) {
	for ty := 0; ty < stage.Height; ty++ {
		for tx := 0; tx < stage.Width; tx++ {
			tile := stage.Tiles[ty][tx]

			var c color.Color
			switch tile.Type {
			case entity.TileGround:
				c = colorGround
			case entity.TileWall:
				c = colorWall
			default:
				continue
			}

			left, _, _, top := stage.TileBounds(tx, ty)
			x, y := cam.ToScreen(cp.Vector{X: left, Y: top})
			size := float32(stage.TileSize * cam.PixelsPerUnit)
			if x+size < 0 || y+size < 0 || x > float32(cam.ScreenW) || y > float32(cam.ScreenH) {
				continue
			}
			vector.FillRect(screen, x, y, size, size, c, false)
		}
	}
}

// ActorSprite is what DrawActor needs to know about the actor
type ActorSprite struct {
	Position cp.Vector
	Width    float64
	Height   float64
	Facing   entity.Facing
	ScaleX   float64
	ScaleY   float64
}

// DrawActor draws the actor box scaled around its feet, with a marker on
// the side it faces.
func DrawActor(screen *ebiten.Image, cam *Camera, a ActorSprite) {
	w := a.Width * a.ScaleX
	h := a.Height * a.ScaleY
	feet := a.Position.Y - a.Height/2

	x, y := cam.ToScreen(cp.Vector{X: a.Position.X - w/2, Y: feet + h})
	ppu := float32(cam.PixelsPerUnit)
	vector.FillRect(screen, x, y, float32(w)*ppu, float32(h)*ppu, colorActor, false)

	eye := cp.Vector{
		X: a.Position.X + a.Facing.Sign()*w/4,
		Y: feet + h*0.75,
	}
	ex, ey := cam.ToScreen(eye)
	vector.FillRect(screen, ex-1, ey-1, 3, 3, colorEye, false)
}

// DrawProbes outlines the contact probes. Probes that touch are filled.
// Missing anchors are skipped.
func DrawProbes(screen *ebiten.Image, cam *Camera, probes entity.ProbeSet, pos cp.Vector, facing entity.Facing, contact entity.ContactState) {
	r := float32(probes.Radius * cam.PixelsPerUnit)

	draw := func(anchor *entity.Anchor, touching bool) {
		if anchor == nil {
			return
		}
		x, y := cam.ToScreen(anchor.World(pos, facing))
		if touching {
			vector.FillCircle(screen, x, y, r, colorContact, true)
		}
		vector.StrokeCircle(screen, x, y, r, 1, colorProbe, true)
	}

	draw(probes.Ground, contact.Grounded)
	draw(probes.WallUp, contact.WallDetected)
	draw(probes.WallDown, contact.WallDetected)
}
