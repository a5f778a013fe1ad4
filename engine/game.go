package engine

import (
	"github.com/spaghettifunk/gulag/engine/platform"
	"github.com/spaghettifunk/gulag/engine/renderer"
)

// Game is the set of callbacks the engine drives. Every callback runs on
// the main thread with the window's context current.
type Game struct {
	ApplicationConfig *ApplicationConfig
	State             interface{}
	FnInitialize      Initialize
	FnUpdate          Update
	FnRender          Render
	FnOnResize        OnResize
	FnShutdown        Shutdown
}

// Initialize creates the game's driver objects.
type Initialize func(ctx *renderer.Context) error
type Update func(deltaTime float64) error

// Render draws one frame into w. The engine has already cleared it and
// swaps it afterwards.
type Render func(w *platform.Window, deltaTime float64) error
type OnResize func(width uint32, height uint32) error

// Shutdown releases what Initialize created.
type Shutdown func(ctx *renderer.Context) error
