// Package platformtest provides an in-memory platform.Backend for tests.
package platformtest

import (
	"errors"
	"time"
	"unsafe"

	"github.com/spaghettifunk/gulag/engine/platform"
	"github.com/spaghettifunk/gulag/engine/renderer"
	"github.com/spaghettifunk/gulag/engine/renderer/renderertest"
)

var ErrInitFailed = errors.New("backend init failed")

// Backend records every call it receives. Windows report their creation
// size as framebuffer size until Resize is called.
type Backend struct {
	FailInit   bool
	FailCreate error
	// OnWait runs inside WaitEvents, standing in for events that arrive
	// while the loop sleeps.
	OnWait func()
	// CloseAfter makes each window ask to close after that many swaps.
	// Zero never closes.
	CloseAfter int

	Inits       int
	Terminates  int
	Polls       int
	Waits       []time.Duration
	Intervals   []int
	Hints       []platform.Hints
	HintResets  int
	Windows     []*Window
	ProcLookups int

	// Calls lists "SetHints", "CreateWindow" and "DefaultHints" in order.
	Calls []string

	current *Window
}

func NewBackend() *Backend {
	return &Backend{}
}

func (b *Backend) Init() error {
	b.Inits++
	if b.FailInit {
		return ErrInitFailed
	}
	return nil
}

func (b *Backend) SetHints(h platform.Hints) {
	b.Calls = append(b.Calls, "SetHints")
	b.Hints = append(b.Hints, h)
}

func (b *Backend) DefaultHints() {
	b.Calls = append(b.Calls, "DefaultHints")
	b.HintResets++
}

func (b *Backend) CreateWindow(width, height int, title string) (platform.WindowHandle, <-chan platform.Event, error) {
	b.Calls = append(b.Calls, "CreateWindow")
	if b.FailCreate != nil {
		return nil, nil, b.FailCreate
	}
	w := &Window{
		backend: b,
		Title:   title,
		Width:   width,
		Height:  height,
		events:  make(chan platform.Event, 16),
	}
	b.Windows = append(b.Windows, w)
	return w, w.events, nil
}

func (b *Backend) SwapInterval(interval int) {
	b.Intervals = append(b.Intervals, interval)
}

func (b *Backend) GetProcAddress(name string) unsafe.Pointer {
	b.ProcLookups++
	return nil
}

func (b *Backend) PollEvents() {
	b.Polls++
}

func (b *Backend) WaitEvents(timeout time.Duration) {
	b.Waits = append(b.Waits, timeout)
	if b.OnWait != nil {
		b.OnWait()
	}
}

func (b *Backend) Terminate() {
	b.Terminates++
}

// Current returns the window whose context is current, if any.
func (b *Backend) Current() *Window {
	return b.current
}

// Window is a fake native window.
type Window struct {
	backend *Backend
	events  chan platform.Event

	Title         string
	Width, Height int
	Swaps         int
	Closing       bool
	Destroyed     bool
}

func (w *Window) MakeCurrent() {
	w.backend.current = w
}

func (w *Window) SwapBuffers() {
	w.Swaps++
	if w.backend.CloseAfter > 0 && w.Swaps >= w.backend.CloseAfter {
		w.Closing = true
	}
}

func (w *Window) FramebufferSize() (int, int) {
	return w.Width, w.Height
}

func (w *Window) ShouldClose() bool {
	return w.Closing
}

func (w *Window) SetShouldClose(value bool) {
	w.Closing = value
}

func (w *Window) Destroy() {
	w.Destroyed = true
	if w.backend.current == w {
		w.backend.current = nil
	}
}

// Resize changes the framebuffer size and queues a resize event.
func (w *Window) Resize(width, height int) {
	w.Width, w.Height = width, height
	w.Send(platform.Event{Kind: platform.EventResize, Width: width, Height: height})
}

// Send queues ev without blocking.
func (w *Window) Send(ev platform.Event) {
	select {
	case w.events <- ev:
	default:
	}
}

// Loader counts function table loads and hands out one shared fake driver.
type Loader struct {
	Driver *renderertest.Driver
	Err    error
	Loads  int
}

func NewLoader() *Loader {
	return &Loader{Driver: renderertest.NewDriver()}
}

func (l *Loader) Load(getProcAddr func(name string) unsafe.Pointer) (renderer.Driver, error) {
	l.Loads++
	getProcAddr("glGetString")
	if l.Err != nil {
		return nil, l.Err
	}
	return l.Driver, nil
}

// NewPlatform wires a fake backend and loader into a platform.Platform.
func NewPlatform() (*platform.Platform, *Backend, *Loader) {
	b := NewBackend()
	l := NewLoader()
	return platform.New(b, l.Load), b, l
}
