package main

import (
	"fmt"
	"log"
	"time"

	"github.com/jakecoffman/cp"
	"github.com/younwookim/controller2d/internal/application/replay"
	"github.com/younwookim/controller2d/internal/application/scene/playing"
	"github.com/younwookim/controller2d/internal/application/system"
	"github.com/younwookim/controller2d/internal/domain/entity"
	"github.com/younwookim/controller2d/internal/infrastructure/config"
)

// SimulationResult is the state at the end of a headless replay
type SimulationResult struct {
	Frames   int
	Ticks    int
	Dropped  int
	Position cp.Vector
	Velocity cp.Vector
	Actor    entity.Actor

	// Per-frame trace
	Positions  []cp.Vector
	Velocities []cp.Vector
	Contacts   []entity.ContactState
}

// simulateWithReplay runs a session using replayed inputs and frame deltas
func simulateWithReplay(replayer *replay.Replayer, cfg *config.PhysicsConfig, stage *entity.Stage, start time.Time) SimulationResult {
	session := playing.NewSession(cfg, stage, start)

	result := SimulationResult{
		Positions:  make([]cp.Vector, 0, replayer.TotalFrames()),
		Velocities: make([]cp.Vector, 0, replayer.TotalFrames()),
		Contacts:   make([]entity.ContactState, 0, replayer.TotalFrames()),
	}

	for {
		input, dt, ok := replayer.GetInput()
		if !ok {
			break
		}

		session.Frame(input, dt)

		result.Positions = append(result.Positions, session.Position())
		result.Velocities = append(result.Velocities, session.Velocity())
		result.Contacts = append(result.Contacts, session.Actor().Contact)
	}

	result.Frames, result.Ticks, result.Dropped = session.Stats()
	result.Position = session.Position()
	result.Velocity = session.Velocity()
	result.Actor = session.Actor()
	return result
}

// runReplay loads a recording, replays it against its stage and logs the result.
// fallbackStage is used when the recording does not name one.
func runReplay(loader *config.Loader, cfg *config.PhysicsConfig, path, fallbackStage string) error {
	data, err := replay.LoadReplay(path)
	if err != nil {
		return fmt.Errorf("failed to load replay %s: %w", path, err)
	}

	stageName := data.Stage
	if stageName == "" {
		stageName = fallbackStage
	}
	stageCfg, err := loader.LoadStage(stageName)
	if err != nil {
		return fmt.Errorf("failed to load stage for replay: %w", err)
	}

	start, err := time.Parse(time.RFC3339, data.StartTime)
	if err != nil {
		start = time.Unix(0, 0)
	}

	result := simulateWithReplay(replay.NewReplayer(*data), cfg, system.LoadStage(stageCfg), start)

	log.Printf("Replayed %s on %q: %d frames, %.2fs, %d ticks (%d dropped)",
		path, stageName, result.Frames, data.Duration(), result.Ticks, result.Dropped)
	log.Printf("Final position (%.3f, %.3f) velocity (%.3f, %.3f)",
		result.Position.X, result.Position.Y, result.Velocity.X, result.Velocity.Y)
	log.Printf("Final contact grounded=%v wall=%v charge=%d facing=%+.0f",
		result.Actor.Contact.Grounded, result.Actor.Contact.WallDetected,
		result.Actor.JumpCharge, result.Actor.Facing.Sign())
	return nil
}
