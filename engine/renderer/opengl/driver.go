// Package opengl implements renderer.Driver on top of the OpenGL 4.4 core
// profile function table.
package opengl

import (
	"fmt"
	"strings"
	"unsafe"

	"github.com/go-gl/gl/v4.4-core/gl"
	"github.com/spaghettifunk/gulag/engine/renderer"
)

type driver struct {
	// Kept alive for as long as the driver holds the callback.
	debugFn func(renderer.DebugMessage)
}

// Load resolves every GL entry point through getProcAddr. The context the
// addresses are looked up for must be current on the calling thread.
func Load(getProcAddr func(name string) unsafe.Pointer) (renderer.Driver, error) {
	if err := gl.InitWithProcAddrFunc(getProcAddr); err != nil {
		return nil, fmt.Errorf("could not load the OpenGL function table: %w", err)
	}
	return &driver{}, nil
}

func (d *driver) CreateShader(kind renderer.StageKind) renderer.Handle {
	return renderer.Handle(gl.CreateShader(uint32(kind)))
}

func (d *driver) ShaderSource(shader renderer.Handle, source string) {
	csources, free := gl.Strs(source + "\x00")
	gl.ShaderSource(uint32(shader), 1, csources, nil)
	free()
}

func (d *driver) CompileShader(shader renderer.Handle) {
	gl.CompileShader(uint32(shader))
}

func (d *driver) ShaderCompiled(shader renderer.Handle) bool {
	var status int32
	gl.GetShaderiv(uint32(shader), gl.COMPILE_STATUS, &status)
	return status != gl.FALSE
}

func (d *driver) ShaderInfoLog(shader renderer.Handle) string {
	var logLength int32
	gl.GetShaderiv(uint32(shader), gl.INFO_LOG_LENGTH, &logLength)
	if logLength <= 0 {
		return ""
	}
	log := strings.Repeat("\x00", int(logLength+1))
	gl.GetShaderInfoLog(uint32(shader), logLength, nil, gl.Str(log))
	return strings.TrimRight(log, "\x00")
}

func (d *driver) DeleteShader(shader renderer.Handle) {
	gl.DeleteShader(uint32(shader))
}

func (d *driver) CreateProgram() renderer.Handle {
	return renderer.Handle(gl.CreateProgram())
}

func (d *driver) AttachShader(program, shader renderer.Handle) {
	gl.AttachShader(uint32(program), uint32(shader))
}

func (d *driver) LinkProgram(program renderer.Handle) {
	gl.LinkProgram(uint32(program))
}

func (d *driver) ValidateProgram(program renderer.Handle) {
	gl.ValidateProgram(uint32(program))
}

func (d *driver) ProgramLinked(program renderer.Handle) bool {
	var status int32
	gl.GetProgramiv(uint32(program), gl.LINK_STATUS, &status)
	return status != gl.FALSE
}

func (d *driver) ProgramInfoLog(program renderer.Handle) string {
	var logLength int32
	gl.GetProgramiv(uint32(program), gl.INFO_LOG_LENGTH, &logLength)
	if logLength <= 0 {
		return ""
	}
	log := strings.Repeat("\x00", int(logLength+1))
	gl.GetProgramInfoLog(uint32(program), logLength, nil, gl.Str(log))
	return strings.TrimRight(log, "\x00")
}

func (d *driver) UseProgram(program renderer.Handle) {
	gl.UseProgram(uint32(program))
}

func (d *driver) DeleteProgram(program renderer.Handle) {
	gl.DeleteProgram(uint32(program))
}

func (d *driver) GetUniformLocation(program renderer.Handle, name string) int32 {
	return gl.GetUniformLocation(uint32(program), gl.Str(name+"\x00"))
}

func (d *driver) Uniform1i(location int32, v int32) {
	gl.Uniform1i(location, v)
}

func (d *driver) Uniform1ui(location int32, v uint32) {
	gl.Uniform1ui(location, v)
}

func (d *driver) Uniform1f(location int32, v float32) {
	gl.Uniform1f(location, v)
}

func (d *driver) GenVertexArray() renderer.Handle {
	var vao uint32
	gl.GenVertexArrays(1, &vao)
	return renderer.Handle(vao)
}

func (d *driver) BindVertexArray(vao renderer.Handle) {
	gl.BindVertexArray(uint32(vao))
}

func (d *driver) DeleteVertexArray(vao renderer.Handle) {
	name := uint32(vao)
	gl.DeleteVertexArrays(1, &name)
}

func (d *driver) GenBuffer() renderer.Handle {
	var buf uint32
	gl.GenBuffers(1, &buf)
	return renderer.Handle(buf)
}

func (d *driver) BindBuffer(target renderer.BufferTarget, buffer renderer.Handle) {
	gl.BindBuffer(uint32(target), uint32(buffer))
}

func (d *driver) BufferData(target renderer.BufferTarget, size int, data unsafe.Pointer, usage renderer.BufferUsage) {
	gl.BufferData(uint32(target), size, data, uint32(usage))
}

func (d *driver) DeleteBuffer(buffer renderer.Handle) {
	name := uint32(buffer)
	gl.DeleteBuffers(1, &name)
}

func (d *driver) EnableVertexAttribArray(index uint32) {
	gl.EnableVertexAttribArray(index)
}

func (d *driver) VertexAttribPointer(index uint32, size int32, xtype renderer.ComponentType, normalized bool, stride int32, offset uintptr) {
	gl.VertexAttribPointerWithOffset(index, size, uint32(xtype), normalized, stride, offset)
}

func (d *driver) DrawElements(mode renderer.DrawMode, count int32, xtype renderer.ComponentType, offset uintptr) {
	gl.DrawElementsWithOffset(uint32(mode), count, uint32(xtype), offset)
}

func (d *driver) Viewport(x, y, width, height int32) {
	gl.Viewport(x, y, width, height)
}

func (d *driver) ClearColor(r, g, b, a float32) {
	gl.ClearColor(r, g, b, a)
}

func (d *driver) ClearColorBuffer() {
	gl.Clear(gl.COLOR_BUFFER_BIT)
}

func (d *driver) EnableDebugOutput() {
	gl.Enable(gl.DEBUG_OUTPUT)
}

func (d *driver) DebugMessageCallback(fn func(renderer.DebugMessage)) {
	d.debugFn = fn
	gl.DebugMessageCallback(func(source, gltype, id, severity uint32, length int32, message string, userParam unsafe.Pointer) {
		d.debugFn(renderer.DebugMessage{
			Source:   source,
			Type:     gltype,
			ID:       id,
			Severity: severity,
			Text:     message,
		})
	}, nil)
}

func (d *driver) Version() string {
	return gl.GoStr(gl.GetString(gl.VERSION))
}
