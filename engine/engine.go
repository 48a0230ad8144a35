package engine

import (
	"errors"
	"fmt"
	"io/fs"
	"sync/atomic"

	"github.com/spaghettifunk/anima-draw/engine/config"
	"github.com/spaghettifunk/anima-draw/engine/core"
	"github.com/spaghettifunk/anima-draw/engine/platform"
	"github.com/spaghettifunk/anima-draw/engine/renderer"
	"github.com/spaghettifunk/anima-draw/engine/systems"
)

type Stage uint8

const (
	// Engine is in an uninitialized state
	EngineStageUninitialized Stage = iota
	// Engine is currently booting up
	EngineStageBooting
	// Engine completed boot process and is ready to be initialized
	EngineStageBootComplete
	// Engine is currently initializing
	EngineStageInitializing
	// Engine initialization is complete
	EngineStageInitialized
	// Engine is currently running
	EngineStageRunning
	// Engine is in the process of shutting down
	EngineStageShuttingDown
)

// frameRenderer is implemented by hosts that render when asked to, such as
// renderer.HeadlessHost. Other hosts run the draw pass on their own schedule.
type frameRenderer interface {
	RenderFrame() error
}

type Engine struct {
	currentStage  Stage
	gameInstance  *Game
	running       atomic.Bool
	isSuspended   bool
	platform      *platform.Platform
	host          renderer.Host
	systemManager *systems.SystemManager
	config        *config.Config
	watcher       *config.Watcher
	events        *core.EventBus
	width         uint32
	height        uint32
	clock         *core.Clock
	lastTime      float64
	frames        uint64
	metrics       *core.FrameMetrics
}

/**
 * @brief New boots an engine for g. A nil host runs the draw system against
 * a headless host.
 */
func New(g *Game, host renderer.Host) (*Engine, error) {
	if g == nil || g.ApplicationConfig == nil {
		return nil, fmt.Errorf("game and application config are required")
	}
	app := g.ApplicationConfig
	core.SetLogLevel(app.LogLevel)

	e := &Engine{
		currentStage: EngineStageBooting,
		gameInstance: g,
		clock:        core.NewClock(),
		metrics:      core.NewFrameMetrics(),
		events:       core.NewEventBus(),
		width:        app.StartWidth,
		height:       app.StartHeight,
	}

	cfg, err := loadConfig(app.ConfigPath)
	if err != nil {
		core.LogError("%s", err)
		return nil, err
	}
	e.config = cfg

	if host == nil {
		host = renderer.NewHeadlessHost(renderer.HeadlessHostConfig{
			MaxInstancesPerDraw: cfg.Draw.MaxInstancesPerDraw,
		})
	}
	e.host = host

	if !app.Headless {
		e.platform = platform.New(e.events)
	}

	sm, err := systems.NewSystemManager(cfg, host, e.clock)
	if err != nil {
		core.LogError("%s", err)
		return nil, err
	}
	e.systemManager = sm
	g.SystemManager = sm
	g.Events = e.events

	e.currentStage = EngineStageBootComplete
	return e, nil
}

func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		return config.Default(), nil
	}
	cfg, err := config.Load(path)
	if errors.Is(err, fs.ErrNotExist) {
		core.LogInfo("config file '%s' not found, using defaults", path)
		return config.Default(), nil
	}
	if err != nil {
		return nil, err
	}
	if level, err := core.ParseLogLevel(cfg.Log.Level); err == nil {
		core.SetLogLevel(level)
	}
	return cfg, nil
}

func (e *Engine) Initialize() error {
	if e.currentStage != EngineStageBootComplete {
		return core.ErrAlreadyInitialized
	}
	e.currentStage = EngineStageInitializing
	app := e.gameInstance.ApplicationConfig

	e.events.Register(core.EVENT_CODE_APPLICATION_QUIT, e, e.onEvent)
	e.events.Register(core.EVENT_CODE_RESIZED, e, e.onResized)

	if e.platform != nil {
		if err := e.platform.Startup(app.Name, app.StartPosX, app.StartPosY, app.StartWidth, app.StartHeight); err != nil {
			return err
		}
	}

	if err := e.systemManager.Initialize(); err != nil {
		return err
	}

	if app.WatchConfig && app.ConfigPath != "" {
		w, err := config.Watch(app.ConfigPath)
		if err != nil {
			core.LogWarn("config hot reload disabled: %s", err)
		} else {
			e.watcher = w
			draw, _ := e.systemManager.DrawSystem()
			draw.WatchConfig(w.Updates(), e.events)
		}
	}

	if e.gameInstance.FnInitialize != nil {
		if err := e.gameInstance.FnInitialize(); err != nil {
			return err
		}
	}
	if e.gameInstance.FnOnResize != nil {
		if err := e.gameInstance.FnOnResize(e.width, e.height); err != nil {
			return err
		}
	}

	e.currentStage = EngineStageInitialized
	return nil
}

/**
 * @brief Frame runs one frame: game update, shape submission between
 * BeginFrame and EndFrame, then the host render when the host renders on
 * demand.
 */
func (e *Engine) Frame(delta float64) error {
	draw, err := e.systemManager.DrawSystem()
	if err != nil {
		return err
	}

	if e.gameInstance.FnUpdate != nil {
		if err := e.gameInstance.FnUpdate(delta); err != nil {
			return fmt.Errorf("game update: %w", err)
		}
	}

	if err := draw.BeginFrame(); err != nil {
		return err
	}
	var renderErr error
	if e.gameInstance.FnRender != nil {
		renderErr = e.gameInstance.FnRender(draw, delta)
	}
	// the frame is closed even when the game fails so the next one can open
	if err := draw.EndFrame(); err != nil {
		return err
	}
	if renderErr != nil {
		return fmt.Errorf("game render: %w", renderErr)
	}

	if fr, ok := e.host.(frameRenderer); ok {
		if err := fr.RenderFrame(); err != nil {
			core.LogWarn("host render failed: %s", err)
		}
	}

	e.frames++
	e.metrics.Draw = draw.Stats()
	return nil
}

func (e *Engine) Run() error {
	if e.currentStage != EngineStageInitialized {
		return core.ErrNotInitialized
	}
	e.currentStage = EngineStageRunning
	app := e.gameInstance.ApplicationConfig

	e.clock.Start()
	e.clock.Update()
	e.lastTime = e.clock.Elapsed()

	var targetFrameSeconds float64
	if app.TargetFrameRate > 0 {
		targetFrameSeconds = 1.0 / app.TargetFrameRate
	}

	e.running.Store(true)
	for e.running.Load() {
		if e.platform != nil && !e.platform.PumpMessages() {
			e.running.Store(false)
			break
		}
		if e.isSuspended {
			continue
		}

		e.clock.Update()
		currentTime := e.clock.Elapsed()
		delta := currentTime - e.lastTime
		frameStartTime := e.clock.Now()

		if err := e.Frame(delta); err != nil {
			core.LogError("frame %d failed, shutting down: %s", e.frames, err)
			e.running.Store(false)
			return err
		}

		frameElapsedTime := e.clock.Now() - frameStartTime
		e.metrics.Update(frameElapsedTime)
		if e.frames%120 == 0 {
			fps, ms := e.metrics.Frame()
			core.LogDebug("fps %.1f (%.2fms), %d batches, %d shapes", fps, ms, e.metrics.Draw.Batches, e.metrics.Draw.ExpandedShapes)
		}

		if remaining := targetFrameSeconds - frameElapsedTime; targetFrameSeconds > 0 && remaining > 0 && e.platform != nil {
			e.platform.Sleep(remaining*1000 - 1)
		}

		e.lastTime = currentTime
		if app.MaxFrames > 0 && e.frames >= app.MaxFrames {
			e.running.Store(false)
		}
	}
	e.currentStage = EngineStageInitialized
	return nil
}

// Stop makes Run return after the current frame. Safe to call from any goroutine.
func (e *Engine) Stop() {
	e.running.Store(false)
}

func (e *Engine) Shutdown() error {
	e.currentStage = EngineStageShuttingDown
	e.running.Store(false)

	if e.watcher != nil {
		if err := e.watcher.Close(); err != nil {
			core.LogWarn("closing config watcher: %s", err)
		}
		e.watcher = nil
	}
	if e.gameInstance.FnShutdown != nil {
		if err := e.gameInstance.FnShutdown(); err != nil {
			core.LogError("game shutdown: %s", err)
		}
	}
	if err := e.systemManager.Shutdown(); err != nil {
		return err
	}
	if e.platform != nil {
		if err := e.platform.Shutdown(); err != nil {
			return err
		}
	}
	e.currentStage = EngineStageUninitialized
	return nil
}

// GetFramebufferSize returns the width and height (in this order)
// of the application framebuffer
func (e *Engine) GetFramebufferSize() (uint32, uint32) {
	return e.width, e.height
}

func (e *Engine) Config() *config.Config {
	return e.config
}

func (e *Engine) Host() renderer.Host {
	return e.host
}

func (e *Engine) Metrics() *core.FrameMetrics {
	return e.metrics
}

func (e *Engine) FrameCount() uint64 {
	return e.frames
}

// Events is the bus window input and application events are published on.
func (e *Engine) Events() *core.EventBus {
	return e.events
}

func (e *Engine) onEvent(code core.SystemEventCode, sender interface{}, listener interface{}, context core.EventContext) bool {
	switch code {
	case core.EVENT_CODE_APPLICATION_QUIT:
		core.LogInfo("EVENT_CODE_APPLICATION_QUIT received, shutting down.")
		e.Stop()
		return true
	}
	return false
}

func (e *Engine) onResized(code core.SystemEventCode, sender interface{}, listener interface{}, context core.EventContext) bool {
	width, height := context.Data.U32[0], context.Data.U32[1]
	e.width, e.height = width, height
	if width == 0 || height == 0 {
		core.LogInfo("window minimized, suspending application")
		e.isSuspended = true
		return true
	}
	if e.isSuspended {
		core.LogInfo("window restored, resuming application")
		e.isSuspended = false
	}
	if e.gameInstance.FnOnResize != nil {
		if err := e.gameInstance.FnOnResize(width, height); err != nil {
			core.LogError("game resize: %s", err)
		}
	}
	return false
}
