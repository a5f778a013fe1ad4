// Package desktop implements the platform backend with GLFW.
package desktop

import (
	"runtime"
	"sync"
	"time"
	"unsafe"

	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/spaghettifunk/gulag/engine/platform"
	"github.com/spaghettifunk/gulag/engine/renderer/opengl"
)

const eventBuffer = 16

func init() {
	// GLFW event handling must run on the main OS thread
	runtime.LockOSThread()
}

var (
	once     sync.Once
	instance *platform.Platform
)

// Platform returns the process-wide GLFW platform, creating it on first use.
func Platform() *platform.Platform {
	once.Do(func() {
		instance = platform.New(backend{}, opengl.Load)
	})
	return instance
}

type backend struct{}

func (backend) Init() error {
	return glfw.Init()
}

func (backend) SetHints(h platform.Hints) {
	glfw.WindowHint(glfw.ContextVersionMajor, h.ContextVersionMajor)
	glfw.WindowHint(glfw.ContextVersionMinor, h.ContextVersionMinor)
	if h.CoreProfile {
		glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	}
	glfw.WindowHint(glfw.OpenGLForwardCompatible, boolHint(h.ForwardCompatible))
	glfw.WindowHint(glfw.Resizable, boolHint(h.Resizable))
}

func (backend) DefaultHints() {
	glfw.DefaultWindowHints()
}

func (backend) CreateWindow(width, height int, title string) (platform.WindowHandle, <-chan platform.Event, error) {
	win, err := glfw.CreateWindow(width, height, title, nil, nil)
	if err != nil {
		return nil, nil, err
	}

	events := make(chan platform.Event, eventBuffer)
	send := func(ev platform.Event) {
		select {
		case events <- ev:
		default:
		}
	}
	win.SetFramebufferSizeCallback(func(_ *glfw.Window, width, height int) {
		send(platform.Event{Kind: platform.EventResize, Width: width, Height: height})
	})
	win.SetCloseCallback(func(_ *glfw.Window) {
		send(platform.Event{Kind: platform.EventClose})
	})
	return &window{win: win}, events, nil
}

func (backend) SwapInterval(interval int) {
	glfw.SwapInterval(interval)
}

func (backend) GetProcAddress(name string) unsafe.Pointer {
	return glfw.GetProcAddress(name)
}

func (backend) PollEvents() {
	glfw.PollEvents()
}

func (backend) WaitEvents(timeout time.Duration) {
	glfw.WaitEventsTimeout(timeout.Seconds())
}

func (backend) Terminate() {
	glfw.Terminate()
}

type window struct {
	win *glfw.Window
}

func (w *window) MakeCurrent() {
	w.win.MakeContextCurrent()
}

func (w *window) SwapBuffers() {
	w.win.SwapBuffers()
}

func (w *window) FramebufferSize() (int, int) {
	return w.win.GetFramebufferSize()
}

func (w *window) ShouldClose() bool {
	return w.win.ShouldClose()
}

func (w *window) SetShouldClose(value bool) {
	w.win.SetShouldClose(value)
}

func (w *window) Destroy() {
	w.win.SetFramebufferSizeCallback(nil)
	w.win.SetCloseCallback(nil)
	w.win.Destroy()
}

func boolHint(b bool) int {
	if b {
		return glfw.True
	}
	return glfw.False
}
