package renderer

import (
	"github.com/spaghettifunk/gulag/engine/core"
)

type ResourceKind uint8

const (
	ResourceShader ResourceKind = iota
	ResourceProgram
	ResourceBuffer
	ResourceVertexArray
)

func (k ResourceKind) String() string {
	switch k {
	case ResourceShader:
		return "shader"
	case ResourceProgram:
		return "program"
	case ResourceBuffer:
		return "buffer"
	case ResourceVertexArray:
		return "vertex array"
	default:
		return "unknown"
	}
}

// Programs and stages share a name space in GL, buffers and vertex arrays
// each have their own, so a handle is only unique together with its kind.
type resourceKey struct {
	kind   ResourceKind
	handle Handle
}

// Context is the explicit view of the driver's global state machine: which
// program is current, which array object and buffers are bound, and which
// handles are alive. Every operation that reads or changes that state takes
// the Context, so the dependency is visible in its signature. A Context is
// not safe for concurrent use; it belongs to the thread that owns the GL
// context.
type Context struct {
	driver Driver

	currentProgram Handle
	boundArray     Handle
	boundBuffers   map[BufferTarget]Handle

	live map[resourceKey]struct{}
}

func NewContext(driver Driver) *Context {
	return &Context{
		driver:       driver,
		boundBuffers: make(map[BufferTarget]Handle),
		live:         make(map[resourceKey]struct{}),
	}
}

func (c *Context) Driver() Driver {
	return c.driver
}

// CurrentProgram returns the program last selected through this context.
func (c *Context) CurrentProgram() Handle {
	return c.currentProgram
}

func (c *Context) BoundVertexArray() Handle {
	return c.boundArray
}

func (c *Context) BoundBuffer(target BufferTarget) Handle {
	return c.boundBuffers[target]
}

// LiveHandles returns the number of driver objects created through this
// context that have not been released yet.
func (c *Context) LiveHandles() int {
	return len(c.live)
}

func (c *Context) LiveHandlesOf(kind ResourceKind) int {
	n := 0
	for k := range c.live {
		if k.kind == kind {
			n++
		}
	}
	return n
}

func (c *Context) useProgram(program Handle) {
	c.driver.UseProgram(program)
	c.currentProgram = program
}

func (c *Context) bindVertexArray(vao Handle) {
	c.driver.BindVertexArray(vao)
	c.boundArray = vao
}

func (c *Context) bindBuffer(target BufferTarget, buffer Handle) {
	c.driver.BindBuffer(target, buffer)
	c.boundBuffers[target] = buffer
}

func (c *Context) track(kind ResourceKind, h Handle) {
	if h == InvalidHandle {
		return
	}
	c.live[resourceKey{kind, h}] = struct{}{}
}

// release forgets a live handle and reports whether the caller should hand
// it back to the driver.
func (c *Context) release(kind ResourceKind, h Handle) bool {
	if h == InvalidHandle {
		return false
	}
	key := resourceKey{kind, h}
	if _, ok := c.live[key]; !ok {
		core.LogWarn("ignoring release of unknown %s handle %d", kind, h)
		return false
	}
	delete(c.live, key)

	// Deleting a bound array or buffer reverts the binding to zero.
	switch kind {
	case ResourceVertexArray:
		if c.boundArray == h {
			c.boundArray = InvalidHandle
		}
	case ResourceBuffer:
		for target, bound := range c.boundBuffers {
			if bound == h {
				c.boundBuffers[target] = InvalidHandle
			}
		}
	}
	return true
}

// Clear sets the viewport to the given framebuffer size and clears the
// color buffer.
func (c *Context) Clear(width, height uint32) {
	c.driver.Viewport(0, 0, int32(width), int32(height))
	c.driver.ClearColorBuffer()
}

// SetClearColor changes the color used by Clear.
func (c *Context) SetClearColor(r, g, b, a float32) {
	c.driver.ClearColor(r, g, b, a)
}

// Drawable is anything that can bind its geometry and report how many
// indices one draw consumes.
type Drawable interface {
	Select(ctx *Context)
	IndexCount() int32
}

// Draw binds the mesh, then the program, then issues one indexed
// triangle-list draw over the mesh's whole index buffer. Uniforms must be
// set before calling Draw.
func (c *Context) Draw(mesh Drawable, program *ShaderProgram) {
	if mesh == nil || program == nil || program.handle == InvalidHandle {
		core.LogWarn("draw skipped: mesh or program not available")
		return
	}
	mesh.Select(c)
	program.Select(c)
	if count := mesh.IndexCount(); count > 0 {
		c.driver.DrawElements(Triangles, count, UnsignedInt, 0)
	}
}
