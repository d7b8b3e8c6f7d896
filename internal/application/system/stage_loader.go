package system

import (
	"github.com/younwookim/controller2d/internal/domain/entity"
	"github.com/younwookim/controller2d/internal/infrastructure/config"
)

// LoadStage converts a StageConfig into a Stage entity
func LoadStage(cfg *config.StageConfig) *entity.Stage {
	tileWidth := cfg.Size.Columns
	tileHeight := len(cfg.Layers.Collision)

	tiles := make([][]entity.Tile, tileHeight)
	for y, row := range cfg.Layers.Collision {
		tiles[y] = make([]entity.Tile, tileWidth)
		for x, char := range row {
			if x >= tileWidth {
				break
			}
			mapping, ok := cfg.TileMapping[string(char)]
			if !ok {
				tiles[y][x] = entity.Tile{Type: entity.TileEmpty}
				continue
			}

			var tileType entity.TileType
			switch mapping.Type {
			case "ground":
				tileType = entity.TileGround
			case "wall":
				tileType = entity.TileWall
			default:
				tileType = entity.TileEmpty
			}

			layer := entity.ParseLayer(mapping.Layer)
			if !mapping.Solid {
				layer = entity.LayerNone
			}

			tiles[y][x] = entity.Tile{
				Type:  tileType,
				Solid: mapping.Solid,
				Layer: layer,
			}
		}
	}

	return &entity.Stage{
		Width:    tileWidth,
		Height:   tileHeight,
		TileSize: cfg.Size.TileSize,
		Tiles:    tiles,
		SpawnX:   cfg.PlayerSpawn.X,
		SpawnY:   cfg.PlayerSpawn.Y,
	}
}
