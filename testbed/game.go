package testbed

import (
	_ "embed"
	"fmt"
	"unsafe"

	"github.com/spaghettifunk/gulag/engine"
	"github.com/spaghettifunk/gulag/engine/core"
	"github.com/spaghettifunk/gulag/engine/math"
	"github.com/spaghettifunk/gulag/engine/platform"
	"github.com/spaghettifunk/gulag/engine/renderer"
)

var (
	//go:embed shaders/quad.vert
	vertexShader string
	//go:embed shaders/quad.frag
	fragmentShader string
)

// quadVertex is a position in normalized device coordinates.
type quadVertex math.Vec2

func (quadVertex) Attributes() []renderer.VertexAttribute {
	return []renderer.VertexAttribute{
		{Index: 0, Components: 2, Type: renderer.Float, Offset: unsafe.Offsetof(quadVertex{}.X)},
	}
}

// Two triangles covering the whole framebuffer.
var (
	quadVertices = []quadVertex{
		{X: -1, Y: -1},
		{X: 1, Y: -1},
		{X: 1, Y: 1},
		{X: -1, Y: 1},
	}
	quadIndices = []uint32{
		0, 1, 2,
		2, 3, 0,
	}
)

type TestGame struct {
	*engine.Game
}

type gameState struct {
	program *renderer.ShaderProgram
	quad    *renderer.MeshBuffer[quadVertex]

	uWidth  *renderer.Uniform[uint32]
	uHeight *renderer.Uniform[uint32]

	width  uint32
	height uint32
}

// Config returns the testbed defaults: a 1280x720 window.
func Config() *engine.ApplicationConfig {
	cfg := engine.DefaultConfig()
	cfg.Name = "GuLag Harness"
	cfg.Width = 1280
	cfg.Height = 720
	return cfg
}

func NewTestGame(config *engine.ApplicationConfig) *TestGame {
	if config == nil {
		config = Config()
	}
	tg := &TestGame{
		Game: &engine.Game{
			ApplicationConfig: config,
			State:             &gameState{},
		},
	}

	tg.FnInitialize = tg.Initialize
	tg.FnUpdate = tg.Update
	tg.FnRender = tg.Render
	tg.FnOnResize = tg.OnResize
	tg.FnShutdown = tg.Shutdown

	return tg
}

func (g *TestGame) Initialize(ctx *renderer.Context) error {
	core.LogDebug("TestGame Initialize fn....")
	state := g.State.(*gameState)

	program, err := renderer.NewShaderProgram(ctx, vertexShader, fragmentShader)
	if err != nil {
		return fmt.Errorf("could not build quad shader: %w", err)
	}
	state.program = program

	// The gradient needs both; a missing one only means it was optimized away.
	var ok bool
	if state.uWidth, ok = renderer.LookupUniform[uint32](ctx, program, "u_width"); !ok {
		core.LogWarn("uniform u_width not found")
	}
	if state.uHeight, ok = renderer.LookupUniform[uint32](ctx, program, "u_height"); !ok {
		core.LogWarn("uniform u_height not found")
	}

	state.quad = renderer.NewMeshBuffer(ctx, quadVertices, quadIndices)
	return nil
}

func (g *TestGame) Update(deltaTime float64) error {
	return nil
}

// Render uploads the framebuffer size and draws the quad.
func (g *TestGame) Render(w *platform.Window, deltaTime float64) error {
	state := g.State.(*gameState)
	ctx := w.Context()

	width, height := w.Size()
	state.uWidth.Set(ctx, width)
	state.uHeight.Set(ctx, height)

	w.Draw(state.quad, state.program)
	return nil
}

func (g *TestGame) OnResize(width uint32, height uint32) error {
	state := g.State.(*gameState)
	state.width = width
	state.height = height
	return nil
}

func (g *TestGame) Shutdown(ctx *renderer.Context) error {
	state := g.State.(*gameState)
	state.quad.Destroy(ctx)
	state.program.Destroy(ctx)
	return nil
}
