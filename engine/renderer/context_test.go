package renderer_test

import (
	"testing"

	"github.com/spaghettifunk/gulag/engine/renderer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContextDrawOrder(t *testing.T) {
	ctx, d := newContext(t)
	program, err := renderer.NewShaderProgram(ctx, vertexSource, fragmentSource)
	require.NoError(t, err)
	mesh := renderer.NewMeshBuffer(ctx, quad, quadIndices)
	vao, _, ibo := mesh.Handles()

	ctx.Draw(mesh, program)

	require.Len(t, d.Draws, 1)
	draw := d.Draws[0]
	assert.Equal(t, renderer.Triangles, draw.Mode)
	assert.Equal(t, int32(6), draw.Count)
	assert.Equal(t, renderer.UnsignedInt, draw.Type)
	assert.Equal(t, program.Handle(), draw.Program)
	assert.Equal(t, vao, draw.Array)
	assert.Equal(t, ibo, draw.Index)
}

func TestContextDrawWithoutProgram(t *testing.T) {
	ctx, d := newContext(t)
	mesh := renderer.NewMeshBuffer(ctx, quad, quadIndices)

	ctx.Draw(mesh, nil)
	ctx.Draw(nil, &renderer.ShaderProgram{})
	assert.Empty(t, d.Draws)
}

func TestContextClear(t *testing.T) {
	ctx, d := newContext(t)

	ctx.SetClearColor(0.1, 0.2, 0.3, 1)
	ctx.Clear(1280, 720)

	assert.Equal(t, [][4]float32{{0.1, 0.2, 0.3, 1}}, d.ClearColors)
	assert.Equal(t, [][4]int32{{0, 0, 1280, 720}}, d.Viewports)
	assert.Equal(t, 1, d.Clears)
}

func TestContextLiveHandlesByKind(t *testing.T) {
	ctx, _ := newContext(t)
	program, err := renderer.NewShaderProgram(ctx, vertexSource, fragmentSource)
	require.NoError(t, err)
	mesh := renderer.NewMeshBuffer(ctx, quad, quadIndices)

	assert.Equal(t, 1, ctx.LiveHandlesOf(renderer.ResourceProgram))
	assert.Equal(t, 2, ctx.LiveHandlesOf(renderer.ResourceBuffer))
	assert.Equal(t, 1, ctx.LiveHandlesOf(renderer.ResourceVertexArray))
	assert.Equal(t, 0, ctx.LiveHandlesOf(renderer.ResourceShader))

	// Sibling resources release in any order.
	program.Destroy(ctx)
	mesh.Destroy(ctx)
	assert.Equal(t, 0, ctx.LiveHandles())
}
