package playing

import (
	"path/filepath"
	"testing"
	"testing/fstest"
	"time"

	"github.com/jakecoffman/cp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/younwookim/controller2d/internal/application/replay"
	"github.com/younwookim/controller2d/internal/application/scene"
	"github.com/younwookim/controller2d/internal/application/state"
	"github.com/younwookim/controller2d/internal/application/system"
	"github.com/younwookim/controller2d/internal/domain/entity"
	"github.com/younwookim/controller2d/internal/infrastructure/config"
)

// testFrame equals the tick length, so every frame runs exactly one tick
const testFrame = 0.02

var testEpoch = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

// createTestConfig creates a config with the stock tuning
func createTestConfig() *config.PhysicsConfig {
	cfg := config.DefaultPhysicsConfig()
	return &cfg
}

// createTestStageConfig creates a minimal stage config for testing
func createTestStageConfig() *config.StageConfig {
	return &config.StageConfig{
		ID:   "test",
		Name: "test",
		Size: config.StageSizeConfig{
			Columns:  10,
			TileSize: 1,
		},
		Background:  config.BackgroundConfig{Color: "black"},
		PlayerSpawn: config.PositionConfig{X: 5, Y: 2},
	}
}

// createTestStage creates a 10x5 test stage with a ground floor in the bottom row
func createTestStage() *entity.Stage {
	stage := &entity.Stage{
		Width:    10,
		Height:   5,
		TileSize: 1,
		SpawnX:   5,
		SpawnY:   2,
		Tiles:    make([][]entity.Tile, 5),
	}
	for y := 0; y < 5; y++ {
		stage.Tiles[y] = make([]entity.Tile, 10)
		if y == 4 {
			for x := 0; x < 10; x++ {
				stage.Tiles[y][x] = entity.Tile{Type: entity.TileGround, Solid: true, Layer: entity.LayerGround}
			}
		}
	}
	return stage
}

func createTestSession() *Session {
	return NewSession(createTestConfig(), createTestStage(), testEpoch)
}

// settle runs idle frames until the actor rests on the floor
func settle(s *Session) {
	for i := 0; i < 60; i++ {
		s.Frame(system.FrameInput{}, testFrame)
	}
}

func TestPlaying_ImplementsScene(t *testing.T) {
	// Compile-time check that Playing implements scene.Scene
	var _ scene.Scene = (*Playing)(nil)
}

func TestNewPlaying(t *testing.T) {
	p := New(createTestConfig(), createTestStageConfig(), createTestStage(), "")

	require.NotNil(t, p)
	assert.NotNil(t, p.session)
	assert.Nil(t, p.recorder)
	assert.Equal(t, state.StatePlaying, p.state)
	assert.Equal(t, 480, p.screenW)
	assert.Equal(t, 270, p.screenH)
}

func TestPlaying_Update_ReturnsNilWhenPlaying(t *testing.T) {
	p := New(createTestConfig(), createTestStageConfig(), createTestStage(), "")

	// Normal update should return nil (stay on same scene)
	next, err := p.Update(1.0 / 60.0)

	assert.NoError(t, err)
	assert.Nil(t, next, "Should return nil when continuing to play")
}

func TestPlaying_PausedDoesNotSimulate(t *testing.T) {
	p := New(createTestConfig(), createTestStageConfig(), createTestStage(), "")
	p.state = state.StatePaused

	for i := 0; i < 10; i++ {
		_, err := p.Update(testFrame)
		require.NoError(t, err)
	}

	frames, ticks, _ := p.session.Stats()
	assert.Equal(t, 0, frames)
	assert.Equal(t, 0, ticks)
}

func TestPlaying_WithRecorder(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test_replay.json")
	p := New(createTestConfig(), createTestStageConfig(), createTestStage(), path)

	require.NotNil(t, p.recorder)

	// Update should record frames
	_, err := p.Update(1.0 / 60.0)
	require.NoError(t, err)
	_, err = p.Update(1.0 / 30.0)
	require.NoError(t, err)

	assert.Equal(t, 2, p.recorder.FrameCount())
	data := p.recorder.GetData()
	assert.Equal(t, "test", data.Stage)
	assert.Equal(t, 1.0/30.0, data.Frames[1].DT)

	// OnExit saves the recording
	p.OnExit()
	loaded, err := replay.LoadReplay(path)
	require.NoError(t, err)
	assert.Len(t, loaded.Frames, 2)
}

func TestPlaying_OnEnter(t *testing.T) {
	p := New(createTestConfig(), createTestStageConfig(), createTestStage(), "")

	// OnEnter should not panic
	assert.NotPanics(t, func() {
		p.OnEnter()
	})
}

func TestPlaying_OnExitWithoutRecorder(t *testing.T) {
	p := New(createTestConfig(), createTestStageConfig(), createTestStage(), "")

	assert.NotPanics(t, func() {
		p.OnExit()
	})
}

func TestPlaying_HotReload(t *testing.T) {
	fsys := fstest.MapFS{
		"physics.json": &fstest.MapFile{Data: []byte(`{
			"world": {"gravity": {"x": 0, "y": -20}},
			"controller": {"movement": {"moveSpeed": 200}}
		}`)},
	}

	p := New(createTestConfig(), createTestStageConfig(), createTestStage(), "")
	watcher := &config.Watcher{
		Events: make(chan string, 2),
		Errors: make(chan error, 1),
	}
	p.WatchConfig(config.NewFSLoader(fsys, "mem"), watcher)

	watcher.Events <- "demo.json"
	watcher.Events <- "physics.json"
	_, err := p.Update(testFrame)
	require.NoError(t, err)

	assert.Equal(t, cp.Vector{X: 0, Y: -20}, p.session.World().Gravity())
	assert.Equal(t, 200.0, p.session.Config().Controller.Movement.MoveSpeed)
	assert.Equal(t, 200.0, p.session.driver.Controller().Config().Movement.MoveSpeed)
	// Knobs missing from the file keep their defaults
	assert.Equal(t, 12.0, p.session.Config().Controller.Movement.JumpForce)
}

func TestPlaying_HotReloadKeepsConfigOnError(t *testing.T) {
	fsys := fstest.MapFS{
		"physics.json": &fstest.MapFile{Data: []byte(`{"controller": {"detector": {"radius": -1}}}`)},
	}

	p := New(createTestConfig(), createTestStageConfig(), createTestStage(), "")
	watcher := &config.Watcher{
		Events: make(chan string, 1),
		Errors: make(chan error, 1),
	}
	p.WatchConfig(config.NewFSLoader(fsys, "mem"), watcher)

	before := p.session.Config()
	watcher.Events <- "physics.json"
	_, err := p.Update(testFrame)
	require.NoError(t, err)

	assert.Same(t, before, p.session.Config())
}

func TestPlaying_HotReloadStopsRecording(t *testing.T) {
	fsys := fstest.MapFS{
		"physics.json": &fstest.MapFile{Data: []byte(`{"world": {"gravity": {"x": 0, "y": -20}}}`)},
	}
	path := filepath.Join(t.TempDir(), "tuned.json")

	p := New(createTestConfig(), createTestStageConfig(), createTestStage(), path)
	watcher := &config.Watcher{
		Events: make(chan string, 1),
		Errors: make(chan error, 1),
	}
	p.WatchConfig(config.NewFSLoader(fsys, "mem"), watcher)

	for i := 0; i < 3; i++ {
		_, err := p.Update(testFrame)
		require.NoError(t, err)
	}

	watcher.Events <- "physics.json"
	_, err := p.Update(testFrame)
	require.NoError(t, err)
	_, err = p.Update(testFrame)
	require.NoError(t, err)

	assert.False(t, p.recorder.IsRecording())
	assert.Equal(t, 3, p.recorder.FrameCount(), "frames under the new tuning are not recorded")

	saved, err := replay.LoadReplay(path)
	require.NoError(t, err)
	assert.Len(t, saved.Frames, 3)

	// Respawn starts a fresh recording
	p.respawn()
	assert.True(t, p.recorder.IsRecording())
	assert.Equal(t, 0, p.recorder.FrameCount())
}

func TestSession_IdleActorRestsOnFloor(t *testing.T) {
	s := createTestSession()

	settle(s)

	actor := s.Actor()
	assert.True(t, actor.Contact.Grounded)
	assert.False(t, actor.Contact.WallDetected)
	assert.Equal(t, 1, actor.JumpCharge)
	assert.InDelta(t, 1.5, s.Position().Y, 0.05)
	assert.InDelta(t, 5.0, s.Position().X, 1e-6)
	assert.Equal(t, 0.4, s.Friction())

	frames, ticks, dropped := s.Stats()
	assert.Equal(t, 60, frames)
	assert.Equal(t, 60, ticks)
	assert.Equal(t, 0, dropped)
}

func TestSession_MoveRight(t *testing.T) {
	s := createTestSession()
	settle(s)
	startX := s.Position().X

	for i := 0; i < 15; i++ {
		s.Frame(system.FrameInput{Horizontal: 1}, testFrame)
	}

	assert.Greater(t, s.Position().X, startX+1)
	assert.Equal(t, entity.FacingRight, s.Actor().Facing)

	for i := 0; i < 5; i++ {
		s.Frame(system.FrameInput{Horizontal: -1}, testFrame)
	}
	assert.Equal(t, entity.FacingLeft, s.Actor().Facing)
}

func TestSession_Jump(t *testing.T) {
	s := createTestSession()
	settle(s)
	groundY := s.Position().Y

	// Sampled at the end of this frame, consumed by the next tick
	s.Frame(system.FrameInput{JumpPressed: true}, testFrame)
	assert.True(t, s.Actor().JumpRequested)

	s.Frame(system.FrameInput{}, testFrame)
	actor := s.Actor()
	assert.True(t, actor.Jumping)
	assert.False(t, actor.JumpRequested)
	assert.True(t, s.Animator().Active())

	maxY := s.Position().Y
	for i := 0; i < 100; i++ {
		s.Frame(system.FrameInput{}, testFrame)
		if y := s.Position().Y; y > maxY {
			maxY = y
		}
	}

	assert.Greater(t, maxY, groundY+1)
	// Back on the floor with the charge restored
	assert.InDelta(t, groundY, s.Position().Y, 0.05)
	assert.Equal(t, 1, s.Actor().JumpCharge)
}

func TestSession_JumpCrouchingIsIgnored(t *testing.T) {
	s := createTestSession()
	settle(s)

	s.Frame(system.FrameInput{JumpPressed: true, Vertical: -1}, testFrame)
	s.Frame(system.FrameInput{Vertical: -1}, testFrame)

	actor := s.Actor()
	assert.False(t, actor.Jumping)
	assert.False(t, actor.JumpRequested)
	assert.Equal(t, 1, actor.JumpCharge)
}

func TestSession_Respawn(t *testing.T) {
	s := createTestSession()
	settle(s)
	for i := 0; i < 10; i++ {
		s.Frame(system.FrameInput{Horizontal: 1}, testFrame)
	}

	s.Respawn()

	assert.Equal(t, cp.Vector{X: 5, Y: 2}, s.Position())
	assert.Equal(t, cp.Vector{}, s.Velocity())
	assert.Equal(t, entity.NewActor(), s.Actor())
}

func TestSession_TickCap(t *testing.T) {
	s := createTestSession()

	// One second at 0.02 s per tick is 50 ticks, capped at 5
	ticks := s.Frame(system.FrameInput{}, 1)

	assert.Equal(t, 5, ticks)
	_, _, dropped := s.Stats()
	assert.Equal(t, 45, dropped)
	assert.Equal(t, testEpoch.Add(time.Second), s.Now())
}

func TestSession_ApplyConfig(t *testing.T) {
	s := createTestSession()

	cfg := createTestConfig()
	cfg.World.Gravity = config.Vec2{X: 0, Y: -3}
	cfg.World.FixedDelta = 0.01
	cfg.Controller.Wall.XForce = 7
	s.ApplyConfig(cfg)

	assert.Same(t, cfg, s.Config())
	assert.Equal(t, cp.Vector{X: 0, Y: -3}, s.World().Gravity())
	assert.Equal(t, 7.0, s.driver.Controller().Config().Wall.XForce)
	assert.Equal(t, 2, s.Frame(system.FrameInput{}, testFrame))
}

func TestSession_Determinism(t *testing.T) {
	run := func() (cp.Vector, entity.Actor) {
		s := createTestSession()
		for i := 0; i < 120; i++ {
			in := system.FrameInput{Horizontal: 1}
			if i%40 == 0 {
				in.JumpPressed = true
			}
			s.Frame(in, 1.0/60.0)
		}
		return s.Position(), s.Actor()
	}

	pos1, actor1 := run()
	pos2, actor2 := run()

	assert.Equal(t, pos1, pos2)
	assert.Equal(t, actor1, actor2)
}

func TestRecorder_StopAndIsRecording(t *testing.T) {
	r := NewRecorder("test")

	assert.True(t, r.IsRecording())

	r.Stop()

	assert.False(t, r.IsRecording())
}

func TestRecorder_DoesNotRecordWhenStopped(t *testing.T) {
	r := NewRecorder("test")
	r.Stop()

	// Should not record when stopped
	r.RecordFrame(system.FrameInput{Horizontal: -1}, testFrame)

	assert.Equal(t, 0, r.FrameCount())
}

func TestRecorder_SaveWithoutFrames(t *testing.T) {
	r := NewRecorder("test")

	err := r.Save(filepath.Join(t.TempDir(), "empty.json"))
	assert.EqualError(t, err, "no frames to save")
}
