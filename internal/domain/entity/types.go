package entity

import "math"

// TileType represents the type of a tile
type TileType int

const (
	TileEmpty TileType = iota
	TileGround
	TileWall
)

// Tile represents a single tile in the stage
type Tile struct {
	Type  TileType
	Solid bool
	Layer Layer
}

// Stage represents the current stage's tile data.
// Tiles[0] is the top row; world space is y-up with the bottom row at y=0.
type Stage struct {
	Width    int
	Height   int
	TileSize float64
	Tiles    [][]Tile
	SpawnX   float64
	SpawnY   float64
}

// GetTile returns the tile at the given tile coordinates
func (s *Stage) GetTile(tx, ty int) Tile {
	if tx < 0 || tx >= s.Width || ty < 0 || ty >= s.Height {
		return Tile{Type: TileWall, Solid: true, Layer: LayerWall}
	}
	return s.Tiles[ty][tx]
}

// TileCoords converts a world position to tile coordinates
func (s *Stage) TileCoords(x, y float64) (tx, ty int) {
	tx = int(math.Floor(x / s.TileSize))
	ty = s.Height - 1 - int(math.Floor(y/s.TileSize))
	return tx, ty
}

// GetTileAt returns the tile at the given world position
func (s *Stage) GetTileAt(x, y float64) Tile {
	return s.GetTile(s.TileCoords(x, y))
}

// IsSolidAt checks if the tile at the world position is solid
func (s *Stage) IsSolidAt(x, y float64) bool {
	return s.GetTileAt(x, y).Solid
}

// TileBounds returns the world-space box of a tile
func (s *Stage) TileBounds(tx, ty int) (left, bottom, right, top float64) {
	left = float64(tx) * s.TileSize
	bottom = float64(s.Height-1-ty) * s.TileSize
	return left, bottom, left + s.TileSize, bottom + s.TileSize
}

// WorldSize returns the stage extent in world units
func (s *Stage) WorldSize() (w, h float64) {
	return float64(s.Width) * s.TileSize, float64(s.Height) * s.TileSize
}
