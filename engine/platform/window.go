package platform

import (
	"fmt"
	gomath "math"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/spaghettifunk/gulag/engine/core"
	"github.com/spaghettifunk/gulag/engine/math"
	"github.com/spaghettifunk/gulag/engine/renderer"
)

const (
	DefaultTitle  = "GuLag Window"
	DefaultWidth  = 160
	DefaultHeight = 144
)

// Builder collects the configuration of a window. The context version and
// profile are fixed: OpenGL 4.4 core, forward compatible.
type Builder struct {
	platform  *Platform
	title     string
	width     uint32
	height    uint32
	resizable bool
}

func (b *Builder) Title(title string) *Builder {
	b.title = title
	return b
}

func (b *Builder) Resolution(width, height uint32) *Builder {
	b.width = width
	b.height = height
	return b
}

func (b *Builder) Resizable(resizable bool) *Builder {
	b.resizable = resizable
	return b
}

// Build creates the window and its context. The first window built in the
// process also loads the driver function table, with its context made
// current. Errors wrap ErrWindowCreation or ErrFunctionTable.
func (b *Builder) Build() (*Window, error) {
	if b.width == 0 || b.height == 0 {
		return nil, fmt.Errorf("%w: resolution %dx%d is not positive", ErrWindowCreation, b.width, b.height)
	}

	p := b.platform
	p.mu.Lock()
	defer p.mu.Unlock()

	if err := p.startup(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrWindowCreation, err)
	}

	p.backend.SetHints(Hints{
		ContextVersionMajor: 4,
		ContextVersionMinor: 4,
		CoreProfile:         true,
		ForwardCompatible:   true,
		Resizable:           b.resizable,
	})
	handle, events, err := p.backend.CreateWindow(int(b.width), int(b.height), b.title)
	p.backend.DefaultHints()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrWindowCreation, err)
	}

	driver, err := p.loadDriver(handle)
	if err != nil {
		handle.Destroy()
		return nil, fmt.Errorf("%w: %w", ErrFunctionTable, err)
	}

	id := uuid.New()
	w := &Window{
		id:       id,
		title:    b.title,
		platform: p,
		handle:   handle,
		events:   events,
		ctx:      renderer.NewContext(driver),
		logger:   core.LogWith("window", id.String()),
	}
	w.logger.Debugf("window %q created at %dx%d", b.title, b.width, b.height)
	return w, nil
}

// MustBuild is like Build but exits the process when the window cannot be
// created.
func (b *Builder) MustBuild() *Window {
	w, err := b.Build()
	if err != nil {
		core.LogFatal("%s", err)
	}
	return w
}

// Window owns one native window and the renderer.Context bound to it.
type Window struct {
	id       uuid.UUID
	title    string
	platform *Platform
	handle   WindowHandle
	events   <-chan Event
	ctx      *renderer.Context
	logger   *log.Logger
}

func (w *Window) ID() uuid.UUID {
	return w.id
}

func (w *Window) Title() string {
	return w.title
}

// Context returns the graphics state of the window's context.
func (w *Window) Context() *renderer.Context {
	return w.ctx
}

// Events returns the notifications delivered while events are pumped.
// The channel is buffered; events are dropped when it is full.
func (w *Window) Events() <-chan Event {
	return w.events
}

// MakeCurrent binds the window's context to the calling thread.
func (w *Window) MakeCurrent() {
	if w.handle == nil {
		return
	}
	w.handle.MakeCurrent()
}

// Size returns the current framebuffer size in pixels.
func (w *Window) Size() (uint32, uint32) {
	if w.handle == nil {
		return 0, 0
	}
	width, height := w.handle.FramebufferSize()
	return uint32(math.Clamp(width, 0, gomath.MaxInt32)), uint32(math.Clamp(height, 0, gomath.MaxInt32))
}

// Clear sets the viewport to the framebuffer and clears the color buffer.
func (w *Window) Clear() {
	width, height := w.Size()
	w.ctx.Clear(width, height)
}

// Draw issues one indexed triangle draw of mesh with program.
func (w *Window) Draw(mesh renderer.Drawable, program *renderer.ShaderProgram) {
	w.ctx.Draw(mesh, program)
}

// Swap presents the back buffer and then pumps the event queue. Events are
// pumped for every window of the process, not only this one.
func (w *Window) Swap() {
	if w.handle == nil {
		return
	}
	w.handle.SwapBuffers()
	w.platform.PollEvents()
}

func (w *Window) ShouldClose() bool {
	if w.handle == nil {
		return true
	}
	return w.handle.ShouldClose()
}

func (w *Window) SetShouldClose(value bool) {
	if w.handle == nil {
		return
	}
	w.handle.SetShouldClose(value)
}

// Destroy closes the native window. The platform stays up; later calls do
// nothing.
func (w *Window) Destroy() {
	if w.handle == nil {
		return
	}
	w.handle.Destroy()
	w.handle = nil
	w.logger.Debug("window destroyed")
}
