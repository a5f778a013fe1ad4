package platform

import (
	"errors"
	"sync"
	"time"

	"github.com/spaghettifunk/gulag/engine/core"
	"github.com/spaghettifunk/gulag/engine/renderer"
)

var (
	ErrWindowCreation = errors.New("could not create window")
	ErrFunctionTable  = errors.New("could not load the driver function table")
	ErrTerminated     = errors.New("platform terminated")
)

// Platform is the process-wide windowing state: the backend, whether it
// was initialized and the driver loaded from the first context. Window
// creation and the function table load are serialized on one mutex.
type Platform struct {
	mu sync.Mutex

	backend     Backend
	load        Loader
	initialized bool
	terminated  bool
	driver      renderer.Driver
}

// New returns a Platform for backend. The backend is initialized when the
// first window is built, not here.
func New(backend Backend, load Loader) *Platform {
	return &Platform{
		backend: backend,
		load:    load,
	}
}

// NewWindow returns a Builder with the default configuration.
func (p *Platform) NewWindow() *Builder {
	return &Builder{
		platform:  p,
		title:     DefaultTitle,
		width:     DefaultWidth,
		height:    DefaultHeight,
		resizable: true,
	}
}

// Loaded reports whether the driver function table has been loaded.
func (p *Platform) Loaded() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.driver != nil
}

// PollEvents pumps the event queue shared by every window.
func (p *Platform) PollEvents() {
	p.backend.PollEvents()
}

// WaitEvents sleeps until an event arrives or timeout passes, then pumps
// the event queue.
func (p *Platform) WaitEvents(timeout time.Duration) {
	p.backend.WaitEvents(timeout)
}

// Terminate shuts the backend down. Only call it at process exit, once
// every window has been destroyed. Windows cannot be built afterwards.
func (p *Platform) Terminate() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.terminated {
		return
	}
	p.terminated = true
	if !p.initialized {
		return
	}
	p.backend.Terminate()
	core.LogDebug("platform terminated")
}

func (p *Platform) startup() error {
	if p.terminated {
		return ErrTerminated
	}
	if p.initialized {
		return nil
	}
	if err := p.backend.Init(); err != nil {
		return err
	}
	p.initialized = true
	core.LogDebug("platform initialized")
	return nil
}

// loadDriver makes handle current and loads the function table through it,
// once per process. Later windows share the driver.
func (p *Platform) loadDriver(handle WindowHandle) (renderer.Driver, error) {
	if p.driver != nil {
		return p.driver, nil
	}
	handle.MakeCurrent()
	p.backend.SwapInterval(1)

	driver, err := p.load(p.backend.GetProcAddress)
	if err != nil {
		return nil, err
	}
	p.driver = driver
	core.LogInfo("OpenGL %s", driver.Version())
	return driver, nil
}
