package main

import (
	"flag"
	"io/fs"
	"log"
	"path/filepath"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/younwookim/controller2d/internal/application/game"
	"github.com/younwookim/controller2d/internal/application/scene/playing"
	"github.com/younwookim/controller2d/internal/application/system"
	"github.com/younwookim/controller2d/internal/infrastructure/config"
)

func main() {
	// Parse command line flags
	recordFlag := flag.String("record", "", "Record input to file (e.g., -record replay.json)")
	replayFlag := flag.String("replay", "", "Run a recording headless and log the final actor state")
	configFlag := flag.String("config", "", "Config directory on disk, enables hot reload (default: embedded configs)")
	stageFlag := flag.String("stage", "demo", "Stage to load")
	measureFlag := flag.Bool("measure-dt", false, "Feed measured frame times to the simulation instead of 1/framerate")
	flag.Parse()

	loader, err := newLoader(*configFlag)
	if err != nil {
		log.Fatalf("Failed to open configs: %v", err)
	}
	cfg, err := loader.LoadAll()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if *replayFlag != "" {
		if err := runReplay(loader, cfg.Physics, *replayFlag, *stageFlag); err != nil {
			log.Fatalf("Replay failed: %v", err)
		}
		return
	}

	// Load stage
	stageCfg, err := loader.LoadStage(*stageFlag)
	if err != nil {
		log.Fatalf("Failed to load stage: %v", err)
	}
	stage := system.LoadStage(stageCfg)

	scene := playing.New(cfg.Physics, stageCfg, stage, *recordFlag)

	if *configFlag != "" {
		watcher, err := config.NewWatcher(*configFlag)
		if err != nil {
			log.Printf("Hot reload disabled: %v", err)
		} else {
			scene.WatchConfig(loader, watcher)
			log.Printf("Watching %s for config changes", *configFlag)
		}
	}

	display := cfg.Physics.Display
	g := game.New(scene, display.ScreenWidth, display.ScreenHeight)
	g.SetDT(1.0 / float64(display.Framerate))
	if *measureFlag {
		g.MeasureDT(nil)
	}

	// Set up ebiten
	ebiten.SetWindowSize(display.ScreenWidth*display.Scale, display.ScreenHeight*display.Scale)
	ebiten.SetWindowTitle("Wall Run")
	ebiten.SetTPS(display.Framerate)

	// Run game
	err = ebiten.RunGame(g)
	g.Close()
	if err != nil {
		log.Fatal(err)
	}
}

// newLoader reads configs from dir, or from the embedded copy when dir is empty
func newLoader(dir string) (*config.Loader, error) {
	if dir != "" {
		return config.NewLoader(filepath.Clean(dir)), nil
	}

	fsys, err := fs.Sub(configFS, "configs")
	if err != nil {
		return nil, err
	}
	return config.NewFSLoader(fsys, "configs"), nil
}
