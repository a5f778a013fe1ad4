// Package renderertest provides an in-memory renderer.Driver that mimics
// the parts of a GL driver the harness relies on, for use in tests.
package renderertest

import (
	"regexp"
	"strings"
	"unsafe"

	"github.com/spaghettifunk/gulag/engine/renderer"
)

// DefaultCompileLog is the info log reported for a stage that fails to
// compile when no Compile hook is installed.
const DefaultCompileLog = "0:1(1): error: syntax error, unexpected end of file"

var uniformDecl = regexp.MustCompile(`uniform\s+\w+\s+(\w+)\s*;`)

type DrawCall struct {
	Mode    renderer.DrawMode
	Count   int32
	Type    renderer.ComponentType
	Program renderer.Handle
	Array   renderer.Handle
	Index   renderer.Handle
}

type Attribute struct {
	Array      renderer.Handle
	Buffer     renderer.Handle
	Index      uint32
	Size       int32
	Type       renderer.ComponentType
	Normalized bool
	Stride     int32
	Offset     uintptr
}

type UniformWrite struct {
	Program  renderer.Handle
	Location int32
	Value    any
}

type shaderObject struct {
	kind     renderer.StageKind
	source   string
	compiled bool
	log      string
}

type programObject struct {
	attached []renderer.Handle
	linked   bool
	uniforms map[string]int32
}

// Driver is a fake renderer.Driver. Handles are issued per object kind
// starting at 1, like a real driver.
type Driver struct {
	// Compile decides whether a stage compiles and which log it reports.
	// When nil, sources without "void main" fail with DefaultCompileLog.
	Compile func(kind renderer.StageKind, source string) (ok bool, log string)
	// FailLink makes every link fail with LinkLog.
	FailLink bool
	LinkLog  string
	// OptimizedAway lists uniform names the fake compiler drops.
	OptimizedAway map[string]bool

	VersionString string

	nextShaderOrProgram renderer.Handle
	nextBuffer          renderer.Handle
	nextArray           renderer.Handle

	shaders  map[renderer.Handle]*shaderObject
	programs map[renderer.Handle]*programObject
	buffers  map[renderer.Handle]int
	arrays   map[renderer.Handle]bool

	CurrentProgram renderer.Handle
	BoundArray     renderer.Handle
	BoundBuffers   map[renderer.BufferTarget]renderer.Handle

	Draws         []DrawCall
	Attributes    []Attribute
	Uniforms      []UniformWrite
	Uploads       map[renderer.Handle][]byte
	Viewports     [][4]int32
	Clears        int
	ClearColors   [][4]float32
	DoubleDeletes int
	ShadersMade   int

	DebugEnabled bool
	DebugFn      func(renderer.DebugMessage)
}

func NewDriver() *Driver {
	return &Driver{
		VersionString: "4.4 (Core Profile) renderertest",
		shaders:       make(map[renderer.Handle]*shaderObject),
		programs:      make(map[renderer.Handle]*programObject),
		buffers:       make(map[renderer.Handle]int),
		arrays:        make(map[renderer.Handle]bool),
		BoundBuffers:  make(map[renderer.BufferTarget]renderer.Handle),
		Uploads:       make(map[renderer.Handle][]byte),
	}
}

// LiveObjects returns how many driver objects of any kind are alive.
func (d *Driver) LiveObjects() int {
	return len(d.shaders) + len(d.programs) + len(d.buffers) + len(d.arrays)
}

func (d *Driver) LiveShaders() int  { return len(d.shaders) }
func (d *Driver) LivePrograms() int { return len(d.programs) }
func (d *Driver) LiveBuffers() int  { return len(d.buffers) }
func (d *Driver) LiveArrays() int   { return len(d.arrays) }

// BufferSize returns the size of the last upload into buffer.
func (d *Driver) BufferSize(buffer renderer.Handle) int {
	return d.buffers[buffer]
}

func (d *Driver) CreateShader(kind renderer.StageKind) renderer.Handle {
	d.nextShaderOrProgram++
	d.ShadersMade++
	d.shaders[d.nextShaderOrProgram] = &shaderObject{kind: kind}
	return d.nextShaderOrProgram
}

func (d *Driver) ShaderSource(shader renderer.Handle, source string) {
	if s, ok := d.shaders[shader]; ok {
		s.source = source
	}
}

func (d *Driver) CompileShader(shader renderer.Handle) {
	s, ok := d.shaders[shader]
	if !ok {
		return
	}
	if d.Compile != nil {
		s.compiled, s.log = d.Compile(s.kind, s.source)
		return
	}
	s.compiled = strings.Contains(s.source, "void main")
	if !s.compiled {
		s.log = DefaultCompileLog
	}
}

func (d *Driver) ShaderCompiled(shader renderer.Handle) bool {
	s, ok := d.shaders[shader]
	return ok && s.compiled
}

func (d *Driver) ShaderInfoLog(shader renderer.Handle) string {
	if s, ok := d.shaders[shader]; ok {
		return s.log
	}
	return ""
}

func (d *Driver) DeleteShader(shader renderer.Handle) {
	if _, ok := d.shaders[shader]; !ok {
		d.DoubleDeletes++
		return
	}
	delete(d.shaders, shader)
}

func (d *Driver) CreateProgram() renderer.Handle {
	d.nextShaderOrProgram++
	d.programs[d.nextShaderOrProgram] = &programObject{uniforms: make(map[string]int32)}
	return d.nextShaderOrProgram
}

func (d *Driver) AttachShader(program, shader renderer.Handle) {
	if p, ok := d.programs[program]; ok {
		p.attached = append(p.attached, shader)
	}
}

func (d *Driver) LinkProgram(program renderer.Handle) {
	p, ok := d.programs[program]
	if !ok {
		return
	}
	if d.FailLink {
		return
	}
	next := int32(0)
	for _, sh := range p.attached {
		s, ok := d.shaders[sh]
		if !ok || !s.compiled {
			return
		}
		for _, m := range uniformDecl.FindAllStringSubmatch(s.source, -1) {
			name := m[1]
			if d.OptimizedAway[name] {
				continue
			}
			if _, seen := p.uniforms[name]; !seen {
				p.uniforms[name] = next
				next++
			}
		}
	}
	p.linked = true
}

func (d *Driver) ValidateProgram(program renderer.Handle) {}

func (d *Driver) ProgramLinked(program renderer.Handle) bool {
	p, ok := d.programs[program]
	return ok && p.linked
}

func (d *Driver) ProgramInfoLog(program renderer.Handle) string {
	if p, ok := d.programs[program]; ok && !p.linked {
		return d.LinkLog
	}
	return ""
}

func (d *Driver) UseProgram(program renderer.Handle) {
	d.CurrentProgram = program
}

func (d *Driver) DeleteProgram(program renderer.Handle) {
	if _, ok := d.programs[program]; !ok {
		d.DoubleDeletes++
		return
	}
	delete(d.programs, program)
}

func (d *Driver) GetUniformLocation(program renderer.Handle, name string) int32 {
	p, ok := d.programs[program]
	if !ok || !p.linked {
		return renderer.InvalidLocation
	}
	if loc, ok := p.uniforms[name]; ok {
		return loc
	}
	return renderer.InvalidLocation
}

func (d *Driver) Uniform1i(location int32, v int32) {
	d.Uniforms = append(d.Uniforms, UniformWrite{d.CurrentProgram, location, v})
}

func (d *Driver) Uniform1ui(location int32, v uint32) {
	d.Uniforms = append(d.Uniforms, UniformWrite{d.CurrentProgram, location, v})
}

func (d *Driver) Uniform1f(location int32, v float32) {
	d.Uniforms = append(d.Uniforms, UniformWrite{d.CurrentProgram, location, v})
}

func (d *Driver) GenVertexArray() renderer.Handle {
	d.nextArray++
	d.arrays[d.nextArray] = true
	return d.nextArray
}

func (d *Driver) BindVertexArray(vao renderer.Handle) {
	d.BoundArray = vao
}

func (d *Driver) DeleteVertexArray(vao renderer.Handle) {
	if !d.arrays[vao] {
		d.DoubleDeletes++
		return
	}
	delete(d.arrays, vao)
	if d.BoundArray == vao {
		d.BoundArray = 0
	}
}

func (d *Driver) GenBuffer() renderer.Handle {
	d.nextBuffer++
	d.buffers[d.nextBuffer] = 0
	return d.nextBuffer
}

func (d *Driver) BindBuffer(target renderer.BufferTarget, buffer renderer.Handle) {
	d.BoundBuffers[target] = buffer
}

func (d *Driver) BufferData(target renderer.BufferTarget, size int, data unsafe.Pointer, usage renderer.BufferUsage) {
	buffer := d.BoundBuffers[target]
	if _, ok := d.buffers[buffer]; !ok {
		return
	}
	d.buffers[buffer] = size
	if data != nil && size > 0 {
		d.Uploads[buffer] = append([]byte(nil), unsafe.Slice((*byte)(data), size)...)
	} else {
		d.Uploads[buffer] = nil
	}
}

func (d *Driver) DeleteBuffer(buffer renderer.Handle) {
	if _, ok := d.buffers[buffer]; !ok {
		d.DoubleDeletes++
		return
	}
	delete(d.buffers, buffer)
	for target, bound := range d.BoundBuffers {
		if bound == buffer {
			d.BoundBuffers[target] = 0
		}
	}
}

func (d *Driver) EnableVertexAttribArray(index uint32) {}

func (d *Driver) VertexAttribPointer(index uint32, size int32, xtype renderer.ComponentType, normalized bool, stride int32, offset uintptr) {
	d.Attributes = append(d.Attributes, Attribute{
		Array:      d.BoundArray,
		Buffer:     d.BoundBuffers[renderer.ArrayBuffer],
		Index:      index,
		Size:       size,
		Type:       xtype,
		Normalized: normalized,
		Stride:     stride,
		Offset:     offset,
	})
}

func (d *Driver) DrawElements(mode renderer.DrawMode, count int32, xtype renderer.ComponentType, offset uintptr) {
	d.Draws = append(d.Draws, DrawCall{
		Mode:    mode,
		Count:   count,
		Type:    xtype,
		Program: d.CurrentProgram,
		Array:   d.BoundArray,
		Index:   d.BoundBuffers[renderer.ElementArrayBuffer],
	})
}

func (d *Driver) Viewport(x, y, width, height int32) {
	d.Viewports = append(d.Viewports, [4]int32{x, y, width, height})
}

func (d *Driver) ClearColor(r, g, b, a float32) {
	d.ClearColors = append(d.ClearColors, [4]float32{r, g, b, a})
}

func (d *Driver) ClearColorBuffer() {
	d.Clears++
}

func (d *Driver) EnableDebugOutput() {
	d.DebugEnabled = true
}

func (d *Driver) DebugMessageCallback(fn func(renderer.DebugMessage)) {
	d.DebugFn = fn
}

// Emit delivers msg to the installed debug callback, if any.
func (d *Driver) Emit(msg renderer.DebugMessage) {
	if d.DebugFn != nil {
		d.DebugFn(msg)
	}
}

func (d *Driver) Version() string {
	return d.VersionString
}
