package renderer

import (
	"unsafe"

	"github.com/spaghettifunk/gulag/engine/core"
)

// VertexAttribute describes one attribute slot of a vertex type.
type VertexAttribute struct {
	/** @brief The attribute location in the vertex shader. */
	Index uint32
	/** @brief Number of components, 1 to 4. */
	Components int32
	/** @brief The type of each component. */
	Type ComponentType
	/** @brief Whether integer data is normalized to [0,1] or [-1,1]. */
	Normalized bool
	/** @brief Byte offset of the attribute inside the vertex. */
	Offset uintptr
}

// Vertex is implemented by vertex types that can describe their own
// attribute layout. The stride is always the size of the type.
type Vertex interface {
	Attributes() []VertexAttribute
}

// MeshBuffer owns a vertex array object together with the vertex buffer
// and index buffer it records. The three objects are created and released
// as a unit.
type MeshBuffer[V Vertex] struct {
	vao Handle
	vbo Handle
	ibo Handle

	vertexCount int32
	indexCount  int32
}

// NewMeshBuffer uploads vertices and indices once with a static usage hint
// and records the attribute layout of V in a new vertex array object.
// Empty slices produce zero-sized buffers.
func NewMeshBuffer[V Vertex](ctx *Context, vertices []V, indices []uint32) *MeshBuffer[V] {
	d := ctx.driver

	m := &MeshBuffer[V]{
		vao:         d.GenVertexArray(),
		vbo:         d.GenBuffer(),
		ibo:         d.GenBuffer(),
		vertexCount: int32(len(vertices)),
		indexCount:  int32(len(indices)),
	}
	ctx.track(ResourceVertexArray, m.vao)
	ctx.track(ResourceBuffer, m.vbo)
	ctx.track(ResourceBuffer, m.ibo)

	var zero V
	stride := int32(unsafe.Sizeof(zero))

	ctx.bindVertexArray(m.vao)

	ctx.bindBuffer(ArrayBuffer, m.vbo)
	d.BufferData(ArrayBuffer, len(vertices)*int(stride), slicePointer(vertices), StaticDraw)

	ctx.bindBuffer(ElementArrayBuffer, m.ibo)
	d.BufferData(ElementArrayBuffer, len(indices)*4, slicePointer(indices), StaticDraw)

	// Declaring the attributes while the array object is bound ties the
	// layout to the vertex buffer bound on ArrayBuffer. Afterwards only the
	// array object and the index buffer need to be bound to draw.
	for _, attr := range zero.Attributes() {
		d.EnableVertexAttribArray(attr.Index)
		d.VertexAttribPointer(attr.Index, attr.Components, attr.Type, attr.Normalized, stride, attr.Offset)
	}

	ctx.bindVertexArray(InvalidHandle)
	ctx.bindBuffer(ArrayBuffer, InvalidHandle)
	ctx.bindBuffer(ElementArrayBuffer, InvalidHandle)

	core.LogDebug("mesh uploaded: vao=%d vbo=%d ibo=%d vertices=%d indices=%d", m.vao, m.vbo, m.ibo, m.vertexCount, m.indexCount)
	return m
}

// Select binds the array object and the index buffer. The vertex buffer
// is reached through the recorded layout.
func (m *MeshBuffer[V]) Select(ctx *Context) {
	if m == nil {
		return
	}
	ctx.bindVertexArray(m.vao)
	ctx.bindBuffer(ElementArrayBuffer, m.ibo)
}

func (m *MeshBuffer[V]) IndexCount() int32 {
	if m == nil {
		return 0
	}
	return m.indexCount
}

func (m *MeshBuffer[V]) VertexCount() int32 {
	if m == nil {
		return 0
	}
	return m.vertexCount
}

// Handles returns the vertex array, vertex buffer and index buffer names.
func (m *MeshBuffer[V]) Handles() (vao, vbo, ibo Handle) {
	if m == nil {
		return
	}
	return m.vao, m.vbo, m.ibo
}

// Destroy releases the three objects together. Later calls do nothing.
func (m *MeshBuffer[V]) Destroy(ctx *Context) {
	if m == nil {
		return
	}
	d := ctx.driver
	if ctx.release(ResourceVertexArray, m.vao) {
		d.DeleteVertexArray(m.vao)
	}
	if ctx.release(ResourceBuffer, m.vbo) {
		d.DeleteBuffer(m.vbo)
	}
	if ctx.release(ResourceBuffer, m.ibo) {
		d.DeleteBuffer(m.ibo)
	}
	m.vao, m.vbo, m.ibo = InvalidHandle, InvalidHandle, InvalidHandle
}

func slicePointer[T any](s []T) unsafe.Pointer {
	if len(s) == 0 {
		return nil
	}
	return unsafe.Pointer(&s[0])
}
