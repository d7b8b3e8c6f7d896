// Package physics hosts the controller in a Chipmunk2D space.
//
// The space owns integration and collision resolution. The controller only
// reads and writes body velocity, applies impulses, sets the actor's surface
// friction and runs circular overlap queries against the stage layers.
package physics

import (
	"github.com/jakecoffman/cp"
	"github.com/younwookim/controller2d/internal/domain/entity"
)

// collisionSlop is the overlap the solver allows, in world units (tiles)
const collisionSlop = 0.01

// stageFriction is multiplied with the actor's own friction by the solver,
// so the actor material decides the effective value.
const stageFriction = 1.0

// World owns the Chipmunk space and the static stage shapes.
type World struct {
	space       *cp.Space
	stageShapes []*cp.Shape
}

// NewWorld creates an empty space
func NewWorld(gravity cp.Vector, iterations int) *World {
	space := cp.NewSpace()
	if iterations > 0 {
		space.Iterations = uint(iterations)
	}
	space.SetGravity(gravity)
	space.SetCollisionSlop(collisionSlop)

	return &World{space: space}
}

// Space returns the underlying Chipmunk space.
func (w *World) Space() *cp.Space {
	return w.space
}

// Gravity returns the space gravity
func (w *World) Gravity() cp.Vector {
	return w.space.Gravity()
}

// SetGravity changes the space gravity
func (w *World) SetGravity(g cp.Vector) {
	w.space.SetGravity(g)
}

// Step advances the simulation by dt seconds
func (w *World) Step(dt float64) {
	w.space.Step(dt)
}

// BuildStage replaces the static shapes with boxes covering the stage's solid
// tiles. Neighbouring tiles on the same layer are merged into one rectangle.
// Returns the number of boxes created.
func (w *World) BuildStage(stage *entity.Stage) int {
	for _, shape := range w.stageShapes {
		w.space.RemoveShape(shape)
	}
	w.stageShapes = w.stageShapes[:0]

	processed := make([][]bool, stage.Height)
	for y := range processed {
		processed[y] = make([]bool, stage.Width)
	}

	solidOn := func(x, y int, layer entity.Layer) bool {
		if processed[y][x] {
			return false
		}
		tile := stage.Tiles[y][x]
		return tile.Solid && tile.Layer == layer
	}

	for y := 0; y < stage.Height; y++ {
		for x := 0; x < stage.Width; x++ {
			tile := stage.Tiles[y][x]
			if processed[y][x] || !tile.Solid {
				continue
			}
			layer := tile.Layer

			// Expand right, then down (toward the bottom of the stage)
			wTiles := 1
			for x+wTiles < stage.Width && solidOn(x+wTiles, y, layer) {
				wTiles++
			}
			hTiles := 1
		heightLoop:
			for y+hTiles < stage.Height {
				for xi := x; xi < x+wTiles; xi++ {
					if !solidOn(xi, y+hTiles, layer) {
						break heightLoop
					}
				}
				hTiles++
			}

			left, _, _, top := stage.TileBounds(x, y)
			_, bottom, right, _ := stage.TileBounds(x+wTiles-1, y+hTiles-1)
			w.addStaticBox(cp.BB{L: left, B: bottom, R: right, T: top}, layer)

			for yy := y; yy < y+hTiles; yy++ {
				for xx := x; xx < x+wTiles; xx++ {
					processed[yy][xx] = true
				}
			}
		}
	}

	return len(w.stageShapes)
}

func (w *World) addStaticBox(bb cp.BB, layer entity.Layer) {
	shape := cp.NewBox2(w.space.StaticBody, bb, 0)
	shape.SetFriction(stageFriction)
	shape.SetElasticity(0)
	shape.SetFilter(cp.ShapeFilter{
		Group:      cp.NO_GROUP,
		Categories: uint(layer),
		Mask:       cp.ALL_CATEGORIES,
	})
	w.space.AddShape(shape)
	w.stageShapes = append(w.stageShapes, shape)
}

// OverlapCircle reports whether a circle touches any shape on the given layers.
func (w *World) OverlapCircle(center cp.Vector, radius float64, layers entity.Layer) bool {
	if layers == entity.LayerNone {
		return false
	}
	filter := cp.ShapeFilter{
		Group:      cp.NO_GROUP,
		Categories: cp.ALL_CATEGORIES,
		Mask:       uint(layers),
	}
	info := w.space.PointQueryNearest(center, radius, filter)
	return info.Shape != nil
}

// StageShapeCount returns how many static boxes the stage uses
func (w *World) StageShapeCount() int {
	return len(w.stageShapes)
}
