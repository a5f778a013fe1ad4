package renderer

import (
	"strings"

	"github.com/spaghettifunk/gulag/engine/core"
)

// UniformScalar is the closed set of uniform value types with a setter.
type UniformScalar interface {
	int32 | uint32 | float32
}

// Uniform is a resolved uniform location in one program, typed by the
// caller. The type is a promise made by the caller: it is not checked
// against the type declared in the shader source, and a mismatch makes the
// driver reject the upload. A uniform goes stale when its program is
// destroyed.
type Uniform[T UniformScalar] struct {
	owner    *ShaderProgram
	program  Handle
	location int32
	name     string
}

// LookupUniform resolves name in program. It returns false when the
// uniform does not exist or was optimized away by the shader compiler.
func LookupUniform[T UniformScalar](ctx *Context, program *ShaderProgram, name string) (*Uniform[T], bool) {
	h := program.Handle()
	if h == InvalidHandle {
		return nil, false
	}
	if strings.IndexByte(name, 0) >= 0 {
		return nil, false
	}

	location := ctx.driver.GetUniformLocation(h, name)
	if location == InvalidLocation {
		core.LogDebug("uniform %q not active in program %d", name, h)
		return nil, false
	}
	return &Uniform[T]{
		owner:    program,
		program:  h,
		location: location,
		name:     name,
	}, true
}

func (u *Uniform[T]) Location() int32 {
	if u == nil {
		return InvalidLocation
	}
	return u.location
}

func (u *Uniform[T]) Name() string {
	if u == nil {
		return ""
	}
	return u.name
}

// Set selects the uniform's program and uploads v. Setting through a nil
// or stale uniform does nothing.
func (u *Uniform[T]) Set(ctx *Context, v T) {
	if u == nil {
		return
	}
	// The program name may already belong to a newer program.
	if u.owner.Handle() != u.program {
		core.LogDebug("uniform %q outlived program %d, skipping", u.name, u.program)
		return
	}
	ctx.useProgram(u.program)

	switch x := any(v).(type) {
	case int32:
		ctx.driver.Uniform1i(u.location, x)
	case uint32:
		ctx.driver.Uniform1ui(u.location, x)
	case float32:
		ctx.driver.Uniform1f(u.location, x)
	}
}
