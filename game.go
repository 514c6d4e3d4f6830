package main

import (
	"fmt"
	"image/color"
	"time"

	"github.com/ebitenui/ebitenui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/milk9111/tower/assets"
	"github.com/milk9111/tower/clock"
	"github.com/milk9111/tower/common"
	"github.com/milk9111/tower/ecs"
	"github.com/milk9111/tower/ecs/component"
	"github.com/milk9111/tower/ecs/entity"
	"github.com/milk9111/tower/ecs/system"
	"github.com/milk9111/tower/prefabs"
	"github.com/milk9111/tower/session"
	"github.com/milk9111/tower/telemetry"
)

type gameState int

const (
	stateLoading gameState = iota
	stateMenu
	statePlaying
)

func (s gameState) String() string {
	switch s {
	case stateLoading:
		return "loading"
	case stateMenu:
		return "menu"
	case statePlaying:
		return "playing"
	default:
		return "unknown"
	}
}

var clearColor = color.NRGBA{R: 0x10, G: 0x10, B: 0x14, A: 0xff}

type GameConfig struct {
	StartLevel int
	Debug      bool
	Mute       bool
	Recorder   *telemetry.Recorder
	// Reloads carries base names of edited prefab and script files.
	Reloads <-chan string
}

type Game struct {
	cfg    GameConfig
	state  gameState
	paused bool

	world     *ecs.World
	clock     *clock.FrameClock
	session   *session.State
	scheduler *ecs.Scheduler

	input     *system.InputSystem
	behaviour *system.EnemyBehaviourSystem
	spawn     *system.LevelSpawnSystem
	sprites   *assets.SpriteCache

	menuUI  *ebitenui.UI
	pauseUI *ebitenui.UI

	logger zerolog.Logger
}

func NewGame(cfg GameConfig) *Game {
	g := &Game{
		cfg:     cfg,
		world:   ecs.NewWorld(),
		clock:   clock.NewFrameClock(common.TPS),
		session: session.New(),
		sprites: assets.NewSpriteCache(),
		logger:  log.With().Str("component", "game").Logger(),
	}
	if cfg.StartLevel > 0 {
		g.session.Level = cfg.StartLevel
	}
	g.menuUI = NewMenuUI(g)
	g.pauseUI = NewPauseUI(g)
	return g
}

// load builds the systems and the persistent entities. Rooms are built by
// the spawn system on the first playing frame.
func (g *Game) load() error {
	spec, err := prefabs.LoadLevelSpec()
	if err != nil {
		return fmt.Errorf("game: load level spec: %w", err)
	}

	offset := spec.RoomOffset(g.session.Level)
	if _, err := entity.NewPlayerAt(g.world, offset+spec.PlayerSpawn.X, spec.PlayerSpawn.Y); err != nil {
		return fmt.Errorf("game: spawn player: %w", err)
	}
	hudEnt, err := entity.NewHUD(g.world)
	if err != nil {
		return fmt.Errorf("game: spawn hud: %w", err)
	}
	if hud, ok := ecs.Get(g.world, hudEnt, component.HUDComponent.Kind()); ok {
		hud.LevelText = session.LevelLabel(g.session.Level)
	}

	physics := system.NewPhysicsSystem(g.clock)
	g.input = system.NewInputSystem()
	g.behaviour = system.NewEnemyBehaviourSystem(g.clock, g.session)
	g.spawn = system.NewLevelSpawnSystem(g.session, spec)

	g.scheduler = ecs.NewScheduler(
		g.input,
		system.NewCameraSystem(physics),
		system.NewPlayerMovementSystem(g.clock),
		system.NewDashSystem(g.clock),
		system.NewAttackSystem(g.clock),
		g.behaviour,
		physics,
		system.NewLevelProgressSystem(g.session),
		g.spawn,
		system.NewTTLSystem(g.clock),
		system.NewEffectSystem(g.clock, uint64(time.Now().UnixNano())),
		system.NewAudioSystem(!g.cfg.Mute),
	)
	g.scheduler.AddRenderer(system.NewRenderSystem(g.sprites))
	g.scheduler.AddRenderer(system.NewHUDSystem())
	if g.cfg.Debug {
		g.scheduler.AddRenderer(system.NewPhysicsDebugSystem(physics))
	}

	g.logger.Info().Int("level", g.session.Level).Int("systems", len(g.scheduler.Systems())).Msg("loaded")
	return nil
}

// StartPlaying leaves the menu and grabs the cursor.
func (g *Game) StartPlaying() {
	if g.state != stateMenu {
		return
	}
	g.state = statePlaying
	g.input.SetCaptured(true)
	g.clock.Resume()
}

func (g *Game) SetPaused(paused bool) {
	g.paused = paused
	if paused {
		g.clock.Pause()
		g.input.SetCaptured(false)
		return
	}
	g.clock.Resume()
	g.input.SetCaptured(true)
}

func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}

	switch g.state {
	case stateLoading:
		if err := g.load(); err != nil {
			return err
		}
		g.state = stateMenu
	case stateMenu:
		g.menuUI.Update()
	case statePlaying:
		if inpututil.IsKeyJustPressed(ebiten.KeyP) {
			g.SetPaused(!g.paused)
		}
		if g.paused {
			g.pauseUI.Update()
			break
		}
		g.applyReloads()

		start := time.Now()
		g.clock.Tick()
		g.scheduler.Update(g.world)
		g.cfg.Recorder.ObserveFrame(time.Since(start), g.world.Events().Drain())
	}

	g.cfg.Recorder.Publish(telemetry.Snapshot{
		State:    g.state.String(),
		Level:    g.session.Level,
		Entities: len(ecs.Entities(g.world)),
		Paused:   g.paused,
	})
	return nil
}

// applyReloads re-reads edited tuning files without blocking the frame.
func (g *Game) applyReloads() {
	for {
		select {
		case name, ok := <-g.cfg.Reloads:
			if !ok {
				g.cfg.Reloads = nil
				return
			}
			g.reload(name)
		default:
			return
		}
	}
}

func (g *Game) reload(name string) {
	logger := g.logger.With().Str("file", name).Logger()
	switch {
	case prefabs.IsScriptFile(name):
		g.behaviour.Invalidate()
		logger.Info().Msg("scripts reloaded")
	case name == "level.yaml":
		spec, err := prefabs.LoadLevelSpec()
		if err != nil {
			logger.Warn().Err(err).Msg("reload level spec")
			return
		}
		g.spawn.SetSpec(spec)
		logger.Info().Msg("level layout reloaded for new rooms")
	default:
		applied, err := entity.ApplyTuning(g.world, name)
		if err != nil {
			logger.Warn().Err(err).Msg("reload tuning")
			return
		}
		if applied {
			logger.Info().Msg("tuning reloaded")
		}
	}
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(clearColor)

	switch g.state {
	case stateLoading:
		ebitenutil.DebugPrint(screen, "Loading...")
	case stateMenu:
		g.menuUI.Draw(screen)
	case statePlaying:
		g.scheduler.Draw(g.world, screen)
		if g.paused {
			g.pauseUI.Draw(screen)
		}
	}

	if g.cfg.Debug {
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf("FPS: %.1f  TPS: %.1f  level: %d  sprites: %d",
			ebiten.ActualFPS(), ebiten.ActualTPS(), g.session.Level, g.sprites.Len()), 4, common.BaseHeight-16)
	}
}

func (g *Game) LayoutF(outsideWidth, outsideHeight float64) (float64, float64) {
	return common.BaseWidth, common.BaseHeight
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	panic("shouldn't use Layout")
}
