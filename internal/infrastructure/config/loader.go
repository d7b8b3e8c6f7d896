package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"strings"

	"gopkg.in/yaml.v3"
)

// physicsFiles are tried in order by LoadPhysics
var physicsFiles = []string{"physics.json", "physics.yaml", "physics.yml"}

// GameConfig holds all loaded configurations
type GameConfig struct {
	Physics *PhysicsConfig
}

// Loader loads game configuration from JSON or YAML files using fs.FS interface
type Loader struct {
	fsys     fs.FS
	basePath string
}

// NewLoader creates a new config loader from filesystem path
func NewLoader(basePath string) *Loader {
	return &Loader{
		fsys:     os.DirFS(basePath),
		basePath: basePath,
	}
}

// NewFSLoader creates a new config loader from fs.FS
func NewFSLoader(fsys fs.FS, basePath string) *Loader {
	return &Loader{
		fsys:     fsys,
		basePath: basePath,
	}
}

// LoadPhysics loads the first physics file found and validates it.
// Fields missing from the file keep their default values.
func (l *Loader) LoadPhysics() (*PhysicsConfig, error) {
	for _, name := range physicsFiles {
		cfg, err := l.LoadPhysicsFile(name)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, err
		}
		return cfg, nil
	}
	return nil, fmt.Errorf("no physics config in %s: %w", l.basePath, fs.ErrNotExist)
}

// LoadPhysicsFile loads a single physics file, choosing the decoder by extension
func (l *Loader) LoadPhysicsFile(name string) (*PhysicsConfig, error) {
	cfg := DefaultPhysicsConfig()
	if err := l.decode(name, &cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid %s: %w", name, err)
	}
	return &cfg, nil
}

// LoadStage loads a stage file from stages/<name>.json
func (l *Loader) LoadStage(name string) (*StageConfig, error) {
	var cfg StageConfig
	if err := l.decode(path.Join("stages", name+".json"), &cfg); err != nil {
		return nil, fmt.Errorf("stage %s: %w", name, err)
	}
	return &cfg, nil
}

// LoadAll loads all base configurations
func (l *Loader) LoadAll() (*GameConfig, error) {
	physics, err := l.LoadPhysics()
	if err != nil {
		return nil, err
	}

	return &GameConfig{
		Physics: physics,
	}, nil
}

func (l *Loader) decode(name string, out any) error {
	data, err := fs.ReadFile(l.fsys, name)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", name, err)
	}

	switch strings.ToLower(path.Ext(name)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, out)
	default:
		err = json.Unmarshal(data, out)
	}
	if err != nil {
		return fmt.Errorf("failed to parse %s: %w", name, err)
	}
	return nil
}
