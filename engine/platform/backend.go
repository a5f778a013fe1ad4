package platform

import (
	"time"
	"unsafe"

	"github.com/spaghettifunk/gulag/engine/renderer"
)

// Hints are the window creation hints applied before each window is made.
type Hints struct {
	ContextVersionMajor int
	ContextVersionMinor int
	CoreProfile         bool
	ForwardCompatible   bool
	Resizable           bool
}

type EventKind uint8

const (
	// The framebuffer changed size. Width and Height carry the new size.
	EventResize EventKind = iota
	// The user asked the window to close.
	EventClose
)

func (k EventKind) String() string {
	switch k {
	case EventResize:
		return "resize"
	case EventClose:
		return "close"
	default:
		return "unknown"
	}
}

// Event is a window notification delivered while the backend pumps its
// event queue.
type Event struct {
	Kind   EventKind
	Width  int
	Height int
}

// Backend is the windowing system. There is one per process and every
// method must be called from the main thread.
type Backend interface {
	Init() error
	// SetHints applies h to the next window created.
	SetHints(h Hints)
	// DefaultHints resets every hint to the backend default.
	DefaultHints()
	CreateWindow(width, height int, title string) (WindowHandle, <-chan Event, error)
	// SwapInterval sets the number of screen updates to wait for before
	// swapping, for the current context.
	SwapInterval(interval int)
	// GetProcAddress resolves a driver entry point for the current context.
	GetProcAddress(name string) unsafe.Pointer
	// PollEvents processes pending events of every window.
	PollEvents()
	// WaitEvents blocks until an event arrives or timeout passes, then
	// processes pending events like PollEvents.
	WaitEvents(timeout time.Duration)
	Terminate()
}

// WindowHandle is one native window together with its drawing context.
type WindowHandle interface {
	MakeCurrent()
	SwapBuffers()
	FramebufferSize() (width, height int)
	ShouldClose() bool
	SetShouldClose(value bool)
	Destroy()
}

// Loader builds a driver from the function table of the current context.
type Loader func(getProcAddr func(name string) unsafe.Pointer) (renderer.Driver, error)
