package config

// StageConfig is the root config for stage JSON files
type StageConfig struct {
	ID          string                       `json:"id" yaml:"id"`
	Name        string                       `json:"name" yaml:"name"`
	Size        StageSizeConfig              `json:"size" yaml:"size"`
	Background  BackgroundConfig             `json:"background" yaml:"background"`
	PlayerSpawn PositionConfig               `json:"playerSpawn" yaml:"playerSpawn"`
	Layers      LayersConfig                 `json:"layers" yaml:"layers"`
	TileMapping map[string]TileMappingConfig `json:"tileMapping" yaml:"tileMapping"`
}

// StageSizeConfig gives the grid width in tiles and the tile edge in world units
type StageSizeConfig struct {
	Columns  int     `json:"columns" yaml:"columns"`
	TileSize float64 `json:"tileSize" yaml:"tileSize"`
}

type BackgroundConfig struct {
	Color string `json:"color" yaml:"color"`
}

// PositionConfig is a world position (y-up, world units)
type PositionConfig struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
}

// LayersConfig holds the collision grid, top row first
type LayersConfig struct {
	Collision []string `json:"collision" yaml:"collision"`
}

type TileMappingConfig struct {
	Type  string `json:"type" yaml:"type"`
	Solid bool   `json:"solid" yaml:"solid"`
	Layer string `json:"layer" yaml:"layer"`
}
