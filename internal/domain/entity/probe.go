package entity

import "github.com/jakecoffman/cp"

// Layer is a collision layer bitmask used to filter overlap queries
type Layer uint

const (
	LayerGround Layer = 1 << iota
	LayerWall
	LayerActor

	LayerNone Layer = 0
)

// ParseLayer maps a config layer name to its bit
func ParseLayer(name string) Layer {
	switch name {
	case "ground":
		return LayerGround
	case "wall":
		return LayerWall
	case "actor":
		return LayerActor
	default:
		return LayerNone
	}
}

// String returns the config name of a single layer
func (l Layer) String() string {
	switch l {
	case LayerGround:
		return "ground"
	case LayerWall:
		return "wall"
	case LayerActor:
		return "actor"
	case LayerNone:
		return "none"
	default:
		return "mixed"
	}
}

// Anchor is a probe position relative to the actor origin, defined for a
// right-facing actor. It mirrors horizontally with the actor's facing.
type Anchor struct {
	X, Y float64
}

// World returns the anchor position in world space
func (a Anchor) World(origin cp.Vector, facing Facing) cp.Vector {
	return cp.Vector{X: origin.X + a.X*facing.Sign(), Y: origin.Y + a.Y}
}

// ProbeSet holds the three contact probes of an actor.
// A nil anchor means the probe is not configured.
type ProbeSet struct {
	Ground   *Anchor
	WallUp   *Anchor
	WallDown *Anchor
	Radius   float64

	GroundLayer Layer
	WallLayer   Layer
}
