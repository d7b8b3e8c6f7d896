// Package playing provides the main gameplay scene.
package playing

import (
	"fmt"
	"image/color"
	"log"
	"strings"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/younwookim/controller2d/internal/application/render"
	"github.com/younwookim/controller2d/internal/application/scene"
	"github.com/younwookim/controller2d/internal/application/state"
	"github.com/younwookim/controller2d/internal/application/system"
	"github.com/younwookim/controller2d/internal/domain/entity"
	"github.com/younwookim/controller2d/internal/infrastructure/config"
)

// stickDeadzone is the gamepad stick travel read as zero
const stickDeadzone = 0.2

var colorOverlay = color.RGBA{0, 0, 0, 128}

// Playing is the main gameplay scene
type Playing struct {
	session    *Session
	stageCfg   *config.StageConfig
	input      *system.InputSystem
	camera     *render.Camera
	background color.Color
	state      state.GameState
	debug      bool
	screenW    int
	screenH    int

	// Hot reload
	loader  *config.Loader
	watcher *config.Watcher

	// Input recording
	recorder       *Recorder
	recordFilename string
}

// New creates a new Playing scene.
// If recordPath is not empty, gameplay will be recorded.
func New(cfg *config.PhysicsConfig, stageCfg *config.StageConfig, stage *entity.Stage, recordPath string) *Playing {
	display := cfg.Display

	p := &Playing{
		session:        NewSession(cfg, stage, time.Now()),
		stageCfg:       stageCfg,
		input:          system.NewInputSystem(stickDeadzone),
		camera:         render.NewCamera(display.ScreenWidth, display.ScreenHeight, display.PixelsPerUnit),
		background:     render.BackgroundColor(stageCfg.Background.Color),
		state:          state.StatePlaying,
		screenW:        display.ScreenWidth,
		screenH:        display.ScreenHeight,
		recordFilename: recordPath,
	}

	// Initialize recorder if recording is enabled
	if recordPath != "" {
		p.recorder = NewRecorder(stageCfg.ID)
		log.Printf("Recording enabled: %s", recordPath)
	}

	p.followActor()
	return p
}

// WatchConfig enables hot reload: changed physics files are reloaded
// through loader and applied on the next update.
func (p *Playing) WatchConfig(loader *config.Loader, watcher *config.Watcher) {
	p.loader = loader
	p.watcher = watcher
}

// Update proceeds the game state (implements scene.Scene)
func (p *Playing) Update(dt float64) (scene.Scene, error) {
	p.drainReloads()

	switch p.state {
	case state.StatePlaying:
		p.updatePlaying(dt)
	case state.StatePaused:
		if inpututil.IsKeyJustPressed(ebiten.KeyQ) {
			return nil, scene.ErrQuit
		}
		if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
			p.state = p.state.Toggle()
		}
	}

	return nil, nil // nil = stay on this scene
}

func (p *Playing) updatePlaying(dt float64) {
	// Check for pause
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		p.state = p.state.Toggle()
		return
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyTab) {
		p.debug = !p.debug
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		p.respawn()
	}

	// F5: Save recording manually
	if inpututil.IsKeyJustPressed(ebiten.KeyF5) && p.recorder != nil {
		p.saveRecording()
	}

	input := p.input.Poll()

	// Record input if recording is enabled
	if p.recorder != nil {
		p.recorder.RecordFrame(input, dt)
	}

	p.session.Frame(input, dt)
	p.followActor()
}

func (p *Playing) followActor() {
	w, h := p.session.Stage().WorldSize()
	p.camera.Follow(p.session.Position(), w, h)
}

func (p *Playing) respawn() {
	p.session.Respawn()
	p.followActor()

	// A recording cannot replay a respawn, so start a new one
	if p.recordFilename != "" {
		p.saveRecording()
		p.recorder = NewRecorder(p.stageCfg.ID)
		log.Printf("Recording restarted")
	}
}

// drainReloads applies pending config changes without blocking
func (p *Playing) drainReloads() {
	if p.watcher == nil {
		return
	}

	for {
		select {
		case name, ok := <-p.watcher.Events:
			if !ok {
				p.watcher = nil
				return
			}
			p.reload(name)
		case err, ok := <-p.watcher.Errors:
			if !ok {
				p.watcher = nil
				return
			}
			log.Printf("Config watcher error: %v", err)
		default:
			return
		}
	}
}

func (p *Playing) reload(name string) {
	if !strings.HasPrefix(name, "physics.") {
		return
	}

	cfg, err := p.loader.LoadPhysics()
	if err != nil {
		log.Printf("Failed to reload %s: %v", name, err)
		return
	}

	p.session.ApplyConfig(cfg)
	p.camera.PixelsPerUnit = cfg.Display.PixelsPerUnit
	log.Printf("Config reloaded: %s", name)

	// A recording holds no tuning, so frames after a reload would not
	// reproduce. Keep what was recorded; a respawn starts a new recording.
	if p.recorder != nil && p.recorder.IsRecording() {
		p.saveRecording()
		p.recorder.Stop()
		log.Printf("Recording stopped after config reload, press R to record again")
	}
}

// saveRecording saves the current recording to file
func (p *Playing) saveRecording() {
	if p.recorder == nil || p.recorder.FrameCount() == 0 {
		return
	}

	filename := p.recordFilename
	if filename == "" {
		filename = GenerateFilename()
	}

	if err := p.recorder.Save(filename); err != nil {
		log.Printf("Failed to save recording: %v", err)
	} else {
		log.Printf("Recording saved: %s (%d frames)", filename, p.recorder.FrameCount())
	}
}

// Draw renders the game screen
func (p *Playing) Draw(screen *ebiten.Image) {
	screen.Fill(p.background)

	render.DrawStage(screen, p.camera, p.session.Stage())

	actor := p.session.Actor()
	actorCfg := p.session.Config().Actor
	sx, sy := p.session.Animator().Scale()
	render.DrawActor(screen, p.camera, render.ActorSprite{
		Position: p.session.Position(),
		Width:    actorCfg.Width,
		Height:   actorCfg.Height,
		Facing:   actor.Facing,
		ScaleX:   sx,
		ScaleY:   sy,
	})

	if p.debug {
		p.session.World().DrawDebug(screen, p.camera.ToScreen)
		render.DrawProbes(screen, p.camera, p.session.Probes(), p.session.Position(), actor.Facing, actor.Contact)
		p.drawDebugText(screen, actor)
	}

	ebitenutil.DebugPrint(screen, "A/D: Move | Space/W: Jump | R: Respawn | Tab: Debug | ESC: Pause")

	if p.state == state.StatePaused {
		p.drawPauseOverlay(screen)
	}
}

func (p *Playing) drawDebugText(screen *ebiten.Image, actor entity.Actor) {
	v := p.session.Velocity()
	frames, ticks, dropped := p.session.Stats()

	text := fmt.Sprintf("vel %.2f, %.2f\ngrounded %v wall %v\ncharge %d friction %.1f\nframes %d ticks %d dropped %d\nstage boxes %d",
		v.X, v.Y,
		actor.Contact.Grounded, actor.Contact.WallDetected,
		actor.JumpCharge, p.session.Friction(),
		frames, ticks, dropped,
		p.session.World().StageShapeCount())
	ebitenutil.DebugPrintAt(screen, text, 4, 16)
}

func (p *Playing) drawPauseOverlay(screen *ebiten.Image) {
	vector.FillRect(screen, 0, 0, float32(p.screenW), float32(p.screenH), colorOverlay, false)

	text := "PAUSED\n\nESC: Resume | Q: Quit"
	ebitenutil.DebugPrintAt(screen, text, p.screenW/2-50, p.screenH/2-20)
}

// OnEnter is called when entering this scene
func (p *Playing) OnEnter() {
	// Scene is already initialized in New
}

// OnExit is called when leaving this scene
func (p *Playing) OnExit() {
	p.saveRecording()
	if p.watcher != nil {
		if err := p.watcher.Close(); err != nil {
			log.Printf("Failed to close config watcher: %v", err)
		}
		p.watcher = nil
	}
}
