package renderer

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spaghettifunk/gulag/engine/core"
)

var (
	ErrInvalidSource = errors.New("shader source contains a NUL byte")
	ErrCompileFailed = errors.New("shader compilation failed")
	ErrLinkFailed    = errors.New("shader program link failed")
)

// CompileError carries the driver's info log for a failed stage.
type CompileError struct {
	Stage StageKind
	Log   string
}

func (e *CompileError) Error() string {
	return fmt.Sprintf("%s stage: %s: %s", e.Stage, ErrCompileFailed, e.Log)
}

func (e *CompileError) Unwrap() error {
	return ErrCompileFailed
}

// ShaderProgram owns one linked program object. The zero handle marks a
// program that was never linked or has been destroyed.
type ShaderProgram struct {
	handle Handle
}

// NewShaderProgram compiles a vertex and a fragment stage and links them
// into a program. The fragment stage is not compiled when the vertex stage
// fails. Stage objects never outlive this call.
func NewShaderProgram(ctx *Context, vertexSource, fragmentSource string) (*ShaderProgram, error) {
	vs, err := compileStage(ctx, StageVertex, vertexSource)
	if err != nil {
		return nil, err
	}

	fs, err := compileStage(ctx, StageFragment, fragmentSource)
	if err != nil {
		deleteStage(ctx, vs)
		return nil, err
	}

	program, err := link(ctx, vs, fs)
	if err != nil {
		return nil, err
	}

	core.LogDebug("shader program %d linked", program)
	return &ShaderProgram{handle: program}, nil
}

// Handle returns the underlying program object, or InvalidHandle.
func (s *ShaderProgram) Handle() Handle {
	if s == nil {
		return InvalidHandle
	}
	return s.handle
}

// Select makes the program current in ctx.
func (s *ShaderProgram) Select(ctx *Context) {
	ctx.useProgram(s.Handle())
}

// Destroy releases the program object. It is a no-op on a nil program, on
// one that never linked, and on every call after the first.
func (s *ShaderProgram) Destroy(ctx *Context) {
	if s == nil || s.handle == InvalidHandle {
		return
	}
	if ctx.release(ResourceProgram, s.handle) {
		ctx.driver.DeleteProgram(s.handle)
	}
	s.handle = InvalidHandle
}

// compileStage performs the low-level compilation of one stage. On failure
// the driver's info log is logged verbatim, the stage object is deleted and
// InvalidHandle is returned together with a *CompileError.
func compileStage(ctx *Context, kind StageKind, source string) (Handle, error) {
	if strings.IndexByte(source, 0) >= 0 {
		core.LogError("refusing to compile %s stage: %s", kind, ErrInvalidSource)
		return InvalidHandle, fmt.Errorf("%s stage: %w", kind, ErrInvalidSource)
	}

	d := ctx.driver
	shader := d.CreateShader(kind)
	ctx.track(ResourceShader, shader)

	d.ShaderSource(shader, source)
	d.CompileShader(shader)

	if !d.ShaderCompiled(shader) {
		info := d.ShaderInfoLog(shader)
		core.LogError("failed to compile %s stage: %s", kind, info)
		deleteStage(ctx, shader)
		return InvalidHandle, &CompileError{Stage: kind, Log: info}
	}
	return shader, nil
}

// link attaches both stages to a new program, links and validates it. The
// stages are deleted whatever the outcome.
func link(ctx *Context, vs, fs Handle) (Handle, error) {
	d := ctx.driver
	program := d.CreateProgram()
	ctx.track(ResourceProgram, program)

	d.AttachShader(program, vs)
	d.AttachShader(program, fs)
	d.LinkProgram(program)
	d.ValidateProgram(program)

	deleteStage(ctx, vs)
	deleteStage(ctx, fs)

	if !d.ProgramLinked(program) {
		info := d.ProgramInfoLog(program)
		core.LogError("failed to link shader program: %s", info)
		if ctx.release(ResourceProgram, program) {
			d.DeleteProgram(program)
		}
		return InvalidHandle, fmt.Errorf("%w: %s", ErrLinkFailed, info)
	}
	return program, nil
}

func deleteStage(ctx *Context, shader Handle) {
	if ctx.release(ResourceShader, shader) {
		ctx.driver.DeleteShader(shader)
	}
}
