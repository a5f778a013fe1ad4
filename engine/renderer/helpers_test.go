package renderer_test

import (
	"bytes"
	"os"
	"testing"

	"github.com/spaghettifunk/gulag/engine/core"
	"github.com/spaghettifunk/gulag/engine/renderer"
	"github.com/spaghettifunk/gulag/engine/renderer/renderertest"
)

const vertexSource = `#version 440 core
layout (location = 0) in vec2 a_position;
void main() {
	gl_Position = vec4(a_position, 0.0, 1.0);
}
`

const fragmentSource = `#version 440 core
uniform uint u_width;
uniform uint u_height;
uniform float u_time;
out vec4 frag_color;
void main() {
	frag_color = vec4(gl_FragCoord.x / float(u_width), gl_FragCoord.y / float(u_height), u_time, 1.0);
}
`

type vec2 struct {
	X, Y float32
}

func (vec2) Attributes() []renderer.VertexAttribute {
	return []renderer.VertexAttribute{
		{Index: 0, Components: 2, Type: renderer.Float},
	}
}

type colored struct {
	Position vec2
	Color    [4]uint8
}

func (colored) Attributes() []renderer.VertexAttribute {
	return []renderer.VertexAttribute{
		{Index: 0, Components: 2, Type: renderer.Float},
		{Index: 1, Components: 4, Type: renderer.UnsignedByte, Normalized: true, Offset: 8},
	}
}

func newContext(t *testing.T) (*renderer.Context, *renderertest.Driver) {
	t.Helper()
	d := renderertest.NewDriver()
	return renderer.NewContext(d), d
}

func captureLog(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	core.SetLogOutput(&buf)
	core.SetLogLevel(core.DebugLevel)
	t.Cleanup(func() {
		core.SetLogLevel(core.InfoLevel)
		core.SetLogOutput(os.Stderr)
	})
	return &buf
}
