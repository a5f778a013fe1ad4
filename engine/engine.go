package engine

import (
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/spaghettifunk/gulag/engine/core"
	"github.com/spaghettifunk/gulag/engine/platform"
	"github.com/spaghettifunk/gulag/engine/renderer"
)

type Stage uint8

const (
	// Engine is in an uninitialized state
	EngineStageUninitialized Stage = iota
	// Engine is currently initializing
	EngineStageInitializing
	// Engine initialization is complete
	EngineStageInitialized
	// Engine is currently running
	EngineStageRunning
	// Engine is in the process of shutting down
	EngineStageShuttingDown
	// Engine released the window
	EngineStageShutdown
)

var ErrNotInitialized = errors.New("engine not initialized")

// How long a minimized engine sleeps between checks for Quit.
const suspendedWait = 100 * time.Millisecond

type Engine struct {
	currentStage Stage
	gameInstance *Game
	platform     *platform.Platform
	window       *platform.Window
	isRunning    bool
	isSuspended  bool
	quit         atomic.Bool
	width        uint32
	height       uint32
	clock        *core.Clock
	lastTime     float64
	frames       uint64
}

func New(g *Game, p *platform.Platform) (*Engine, error) {
	if g == nil || g.ApplicationConfig == nil {
		return nil, errors.New("game has no application config")
	}
	if err := g.ApplicationConfig.Validate(); err != nil {
		return nil, err
	}
	return &Engine{
		currentStage: EngineStageUninitialized,
		gameInstance: g,
		platform:     p,
		clock:        core.NewClock(),
		width:        g.ApplicationConfig.Width,
		height:       g.ApplicationConfig.Height,
	}, nil
}

// Initialize opens the window, installs the driver debug reporter and lets
// the game create its driver objects.
func (e *Engine) Initialize() error {
	e.currentStage = EngineStageInitializing
	config := e.gameInstance.ApplicationConfig

	core.SetLogLevel(config.Level())

	w, err := e.platform.NewWindow().
		Title(config.Name).
		Resolution(config.Width, config.Height).
		Resizable(config.Resizable).
		Build()
	if err != nil {
		return err
	}
	e.window = w

	ctx := w.Context()
	if config.Debug {
		renderer.InstallDebugReporter(ctx)
	}
	core.LogInfo("renderer: %s", renderer.VersionString(ctx))
	c := config.ClearColor
	ctx.SetClearColor(c[0], c[1], c[2], c[3])

	if err := core.MetricsInitialize(); err != nil {
		return err
	}

	if fn := e.gameInstance.FnInitialize; fn != nil {
		if err := fn(ctx); err != nil {
			return fmt.Errorf("game initialization failed: %w", err)
		}
	}

	e.width, e.height = w.Size()
	if fn := e.gameInstance.FnOnResize; fn != nil {
		if err := fn(e.width, e.height); err != nil {
			return err
		}
	}

	e.isRunning = true
	e.currentStage = EngineStageInitialized
	return nil
}

// Run drives frames until the window asks to close, Quit is called or a
// game callback fails. Each frame clears, renders and swaps.
func (e *Engine) Run() error {
	if e.currentStage != EngineStageInitialized {
		return ErrNotInitialized
	}
	e.currentStage = EngineStageRunning

	e.clock.Start()
	e.clock.Update()
	e.lastTime = e.clock.Elapsed()

	var runningTime float64 = 0.0

	for e.isRunning {
		if e.quit.Load() || e.window.ShouldClose() {
			e.isRunning = false
			break
		}
		e.processEvents()
		if !e.isRunning {
			break
		}

		if e.isSuspended {
			// Nothing is swapped while minimized; sleep until the window
			// comes back, waking up now and then to notice Quit.
			e.platform.WaitEvents(suspendedWait)
			continue
		}

		e.clock.Update()
		var currentTime float64 = e.clock.Elapsed()
		var delta float64 = currentTime - e.lastTime

		if fn := e.gameInstance.FnUpdate; fn != nil {
			if err := fn(delta); err != nil {
				core.LogError("game update failed, shutting down: %s", err)
				e.isRunning = false
				return err
			}
		}

		e.window.Clear()
		if fn := e.gameInstance.FnRender; fn != nil {
			if err := fn(e.window, delta); err != nil {
				core.LogError("game render failed, shutting down: %s", err)
				e.isRunning = false
				return err
			}
		}
		e.window.Swap()
		e.frames++

		if err := core.MetricsUpdate(delta); err != nil {
			return err
		}
		runningTime += delta
		if runningTime >= 1.0 {
			fps, frameTime := core.MetricsFrame()
			core.LogDebug("FPS: %5.1f (%4.1fms)", fps, frameTime)
			runningTime = 0
		}

		e.lastTime = currentTime
	}
	return nil
}

// Quit asks the frame loop to stop after the current frame. It is safe to
// call from any goroutine.
func (e *Engine) Quit() {
	e.quit.Store(true)
}

// Shutdown lets the game release its objects and destroys the window. The
// platform itself stays up until it is terminated.
func (e *Engine) Shutdown() error {
	if e.window == nil || e.currentStage == EngineStageShutdown {
		return nil
	}
	e.currentStage = EngineStageShuttingDown

	var err error
	if fn := e.gameInstance.FnShutdown; fn != nil {
		err = fn(e.window.Context())
	}
	if n := e.window.Context().LiveHandles(); n > 0 {
		core.LogWarn("%d driver objects were not released", n)
	}
	e.window.Destroy()
	core.MetricsReset()

	e.currentStage = EngineStageShutdown
	return err
}

// Window returns the engine window, or nil before Initialize.
func (e *Engine) Window() *platform.Window {
	return e.window
}

func (e *Engine) Stage() Stage {
	return e.currentStage
}

// Frames returns the number of frames swapped so far.
func (e *Engine) Frames() uint64 {
	return e.frames
}

// GetFramebufferSize returns the width and height (in this order) of the
// last framebuffer size seen by the engine.
func (e *Engine) GetFramebufferSize() (uint32, uint32) {
	return e.width, e.height
}

func (e *Engine) processEvents() {
	for {
		select {
		case ev := <-e.window.Events():
			switch ev.Kind {
			case platform.EventClose:
				core.LogInfo("close requested, shutting down")
				e.isRunning = false
			case platform.EventResize:
				e.onResized(uint32(max(ev.Width, 0)), uint32(max(ev.Height, 0)))
			}
		default:
			return
		}
	}
}

func (e *Engine) onResized(width, height uint32) {
	if width == e.width && height == e.height {
		return
	}
	e.width = width
	e.height = height
	core.LogDebug("Window resize: %d, %d", width, height)

	// Handle minimization
	if width == 0 || height == 0 {
		core.LogInfo("Window minimized, suspending application.")
		e.isSuspended = true
		return
	}
	if e.isSuspended {
		core.LogInfo("Window restored, resuming application.")
		e.isSuspended = false
	}
	if fn := e.gameInstance.FnOnResize; fn != nil {
		if err := fn(width, height); err != nil {
			core.LogError("%s", err)
		}
	}
}
