package main

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/younwookim/controller2d/internal/application/replay"
	"github.com/younwookim/controller2d/internal/application/scene/playing"
	"github.com/younwookim/controller2d/internal/application/system"
	"github.com/younwookim/controller2d/internal/domain/entity"
	"github.com/younwookim/controller2d/internal/infrastructure/config"
)

const frameDT = 1.0 / 60.0

var testStart = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

// createTestConfig creates a config with the stock tuning
func createTestConfig() *config.PhysicsConfig {
	cfg := config.DefaultPhysicsConfig()
	return &cfg
}

// createTestStageWithGround creates a 20x8 stage with a floor and a wall on each side
//
//	W..................W
//	...
//	GGGGGGGGGGGGGGGGGGGG
func createTestStageWithGround() *entity.Stage {
	const w, h = 20, 8
	wall := entity.Tile{Type: entity.TileWall, Solid: true, Layer: entity.LayerWall}
	ground := entity.Tile{Type: entity.TileGround, Solid: true, Layer: entity.LayerGround}

	stage := &entity.Stage{
		Width:    w,
		Height:   h,
		TileSize: 1,
		SpawnX:   4,
		SpawnY:   2,
		Tiles:    make([][]entity.Tile, h),
	}
	for y := 0; y < h; y++ {
		stage.Tiles[y] = make([]entity.Tile, w)
		if y == h-1 {
			for x := 0; x < w; x++ {
				stage.Tiles[y][x] = ground
			}
			continue
		}
		stage.Tiles[y][0] = wall
		stage.Tiles[y][w-1] = wall
	}
	return stage
}

// createInputReplay builds a recording from per-frame inputs at 60 fps
func createInputReplay(inputs []system.FrameInput) replay.ReplayData {
	r := playing.NewRecorder("test")
	for _, in := range inputs {
		r.RecordFrame(in, frameDT)
	}
	return r.GetData()
}

func repeat(in system.FrameInput, n int) []system.FrameInput {
	out := make([]system.FrameInput, n)
	for i := range out {
		out[i] = in
	}
	return out
}

func TestReplayIdleActor_Stability(t *testing.T) {
	// Actor standing still for 120 frames (2 seconds)
	replayer := replay.NewReplayer(replay.CreateTestReplayData(120, frameDT))

	result := simulateWithReplay(replayer, createTestConfig(), createTestStageWithGround(), testStart)

	t.Logf("Simulated %d frames, %d ticks", result.Frames, result.Ticks)
	assert.Equal(t, 120, result.Frames)
	// 50 Hz ticks under 60 Hz frames
	assert.InDelta(t, 100, result.Ticks, 1)
	assert.Equal(t, 0, result.Dropped)

	// Once settled the actor stays put and grounded
	settledY := result.Positions[60].Y
	for i := 60; i < len(result.Positions); i++ {
		assert.True(t, result.Contacts[i].Grounded, "grounded at frame %d", i)
		assert.InDelta(t, settledY, result.Positions[i].Y, 0.02, "Y drift at frame %d", i)
		assert.InDelta(t, 4.0, result.Positions[i].X, 1e-6, "X drift at frame %d", i)
	}
	assert.InDelta(t, 0, result.Velocity.Y, 0.5)
	assert.Equal(t, 1, result.Actor.JumpCharge)
}

func TestReplayDeterminism(t *testing.T) {
	inputs := append(repeat(system.FrameInput{}, 30), repeat(system.FrameInput{Horizontal: 1}, 30)...)
	inputs = append(inputs, system.FrameInput{Horizontal: 1, JumpPressed: true})
	inputs = append(inputs, repeat(system.FrameInput{Horizontal: -0.5}, 60)...)
	data := createInputReplay(inputs)

	r1 := simulateWithReplay(replay.NewReplayer(data), createTestConfig(), createTestStageWithGround(), testStart)
	r2 := simulateWithReplay(replay.NewReplayer(data), createTestConfig(), createTestStageWithGround(), testStart)

	assert.Equal(t, r1.Positions, r2.Positions)
	assert.Equal(t, r1.Actor, r2.Actor)
}

func TestReplayWithMovement(t *testing.T) {
	// Idle 30 frames, run right 30, jump once, keep running 30
	inputs := repeat(system.FrameInput{}, 30)
	inputs = append(inputs, repeat(system.FrameInput{Horizontal: 1}, 30)...)
	inputs = append(inputs, system.FrameInput{Horizontal: 1, JumpPressed: true})
	inputs = append(inputs, repeat(system.FrameInput{Horizontal: 1}, 30)...)

	result := simulateWithReplay(replay.NewReplayer(createInputReplay(inputs)), createTestConfig(), createTestStageWithGround(), testStart)

	require.Len(t, result.Positions, 91)
	assert.Greater(t, result.Positions[59].X, result.Positions[30].X, "actor should move right")

	maxY := result.Positions[60].Y
	for i := 60; i < 91; i++ {
		if result.Positions[i].Y > maxY {
			maxY = result.Positions[i].Y
		}
	}
	assert.Greater(t, maxY, result.Positions[60].Y+0.5, "actor should jump")
	assert.Equal(t, entity.FacingRight, result.Actor.Facing)
}

func TestReplayWallSlide(t *testing.T) {
	// Drop next to the right wall from high up
	fall := func(horizontal float64) SimulationResult {
		stage := createTestStageWithGround()
		stage.SpawnX, stage.SpawnY = 18.6, 6.5
		data := createInputReplay(repeat(system.FrameInput{Horizontal: horizontal}, 180))
		return simulateWithReplay(replay.NewReplayer(data), createTestConfig(), stage, testStart)
	}

	fastest := func(r SimulationResult) float64 {
		minVY := 0.0
		for i, c := range r.Contacts {
			if c.WallDetected && !c.Grounded && r.Velocities[i].Y < minVY {
				minVY = r.Velocities[i].Y
			}
		}
		return minVY
	}

	sliding := fall(1)
	free := fall(0)

	// Holding toward the wall caps the fall at the sliding speed, less wall friction
	assert.Greater(t, fastest(sliding), -6.0)
	assert.Less(t, fastest(sliding), 0.0)
	// Without input the wall does nothing
	assert.Less(t, fastest(free), -10.0)

	assert.True(t, sliding.Actor.Contact.Grounded)
	assert.InDelta(t, 19-0.25, sliding.Position.X, 0.05)
}

func TestReplayWalkIntoWall(t *testing.T) {
	tests := []struct {
		name       string
		horizontal float64
		wantX      float64
	}{
		// Walls fill columns 0 and 19
		{"right", 1, 19 - 0.25},
		{"left", -1, 1 + 0.25},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inputs := append(repeat(system.FrameInput{}, 30), repeat(system.FrameInput{Horizontal: tt.horizontal}, 240)...)
			result := simulateWithReplay(replay.NewReplayer(createInputReplay(inputs)), createTestConfig(), createTestStageWithGround(), testStart)

			for i, p := range result.Positions {
				require.True(t, p.X > 1 && p.X < 19, "inside the walls at frame %d: %v", i, p)
			}
			assert.InDelta(t, tt.wantX, result.Position.X, 0.05)
			assert.InDelta(t, 1.5, result.Position.Y, 0.05)
			assert.True(t, result.Actor.Contact.Grounded)
			assert.True(t, result.Actor.Contact.WallDetected)
		})
	}
}

func TestReplayDemoStage_StaysInBounds(t *testing.T) {
	loader, err := newLoader("")
	require.NoError(t, err)
	cfg, err := loader.LoadPhysics()
	require.NoError(t, err)
	stageCfg, err := loader.LoadStage("demo")
	require.NoError(t, err)
	stage := system.LoadStage(stageCfg)

	// Run into the left border wall, then into the pillar at columns 18-19
	inputs := repeat(system.FrameInput{Horizontal: -1}, 180)
	inputs = append(inputs, repeat(system.FrameInput{Horizontal: 1}, 240)...)

	result := simulateWithReplay(replay.NewReplayer(createInputReplay(inputs)), cfg, stage, testStart)

	for i, p := range result.Positions {
		require.True(t, p.X > 1 && p.X < 18 && p.Y > 1, "outside the walls at frame %d: %v", i, p)
	}
	assert.InDelta(t, 1.25, result.Positions[179].X, 0.05)
	assert.InDelta(t, 18-0.25, result.Position.X, 0.05)
	assert.InDelta(t, 1.5, result.Position.Y, 0.05)
}

func TestRecorderAndReplayer(t *testing.T) {
	inputs := []system.FrameInput{
		{Horizontal: 1},
		{Horizontal: 1, JumpPressed: true},
		{Horizontal: 0.5, Vertical: -1},
		{},
	}

	recorder := playing.NewRecorder("demo")
	for _, in := range inputs {
		recorder.RecordFrame(in, frameDT)
	}
	assert.Equal(t, 4, recorder.FrameCount())

	replayer := replay.NewReplayer(recorder.GetData())
	assert.Equal(t, "demo", replayer.Stage())
	assert.Equal(t, 4, replayer.TotalFrames())

	for i, expected := range inputs {
		got, dt, ok := replayer.GetInput()
		require.True(t, ok, "Should have input for frame %d", i)
		assert.Equal(t, expected, got, "input at frame %d", i)
		assert.Equal(t, frameDT, dt, "dt at frame %d", i)
	}

	// Should be at end
	_, _, ok := replayer.GetInput()
	assert.False(t, ok, "Should be at end of replay")
}

func TestRunReplay(t *testing.T) {
	loader := config.NewLoader("configs")
	cfg, err := loader.LoadPhysics()
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "demo_replay.json")
	recorder := playing.NewRecorder("demo")
	for _, in := range repeat(system.FrameInput{Horizontal: 1}, 90) {
		recorder.RecordFrame(in, frameDT)
	}
	require.NoError(t, recorder.Save(path))

	assert.NoError(t, runReplay(loader, cfg, path, "demo"))

	t.Run("missing recording", func(t *testing.T) {
		err := runReplay(loader, cfg, filepath.Join(t.TempDir(), "none.json"), "demo")
		assert.ErrorContains(t, err, "failed to load replay")
	})

	t.Run("unknown stage", func(t *testing.T) {
		other := playing.NewRecorder("nowhere")
		other.RecordFrame(system.FrameInput{}, frameDT)
		otherPath := filepath.Join(t.TempDir(), "nowhere.json")
		require.NoError(t, other.Save(otherPath))

		err := runReplay(loader, cfg, otherPath, "demo")
		assert.ErrorContains(t, err, "failed to load stage for replay")
	})
}

func TestNewLoader_Embedded(t *testing.T) {
	loader, err := newLoader("")
	require.NoError(t, err)

	cfg, err := loader.LoadAll()
	require.NoError(t, err)
	assert.Equal(t, 0.02, cfg.Physics.World.FixedDelta)

	stageCfg, err := loader.LoadStage("demo")
	require.NoError(t, err)
	assert.Equal(t, "demo", stageCfg.ID)
}
