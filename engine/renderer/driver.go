package renderer

import "unsafe"

// Handle is an opaque object name issued by the driver. Zero is never a
// valid object.
type Handle uint32

// InvalidHandle is the sentinel returned by failed constructions.
const InvalidHandle Handle = 0

// InvalidLocation is the uniform location reported for unknown or
// optimized-away uniforms.
const InvalidLocation int32 = -1

/** @brief Shader stages supported by the harness. */
type StageKind uint32

const (
	StageVertex   StageKind = 0x8B31
	StageFragment StageKind = 0x8B30
)

func (k StageKind) String() string {
	switch k {
	case StageVertex:
		return "vertex"
	case StageFragment:
		return "fragment"
	default:
		return "unknown"
	}
}

/** @brief Buffer binding points. */
type BufferTarget uint32

const (
	ArrayBuffer        BufferTarget = 0x8892
	ElementArrayBuffer BufferTarget = 0x8893
)

/** @brief Usage hints for buffer uploads. */
type BufferUsage uint32

const (
	StaticDraw  BufferUsage = 0x88E4
	DynamicDraw BufferUsage = 0x88E8
)

/** @brief Component types for vertex attributes and index data. */
type ComponentType uint32

const (
	Byte          ComponentType = 0x1400
	UnsignedByte  ComponentType = 0x1401
	Short         ComponentType = 0x1402
	UnsignedShort ComponentType = 0x1403
	Int           ComponentType = 0x1404
	UnsignedInt   ComponentType = 0x1405
	Float         ComponentType = 0x1406
)

/** @brief Primitive modes accepted by DrawElements. */
type DrawMode uint32

const (
	Triangles DrawMode = 0x0004
)

// DebugMessage is one diagnostic emitted by the driver.
type DebugMessage struct {
	Source   uint32
	Type     uint32
	ID       uint32
	Severity uint32
	Text     string
}

// Driver is the graphics-function table the harness runs against. Every
// method is a synchronous call into the driver and requires a current
// context on the calling thread.
type Driver interface {
	CreateShader(kind StageKind) Handle
	ShaderSource(shader Handle, source string)
	CompileShader(shader Handle)
	ShaderCompiled(shader Handle) bool
	ShaderInfoLog(shader Handle) string
	DeleteShader(shader Handle)

	CreateProgram() Handle
	AttachShader(program, shader Handle)
	LinkProgram(program Handle)
	ValidateProgram(program Handle)
	ProgramLinked(program Handle) bool
	ProgramInfoLog(program Handle) string
	UseProgram(program Handle)
	DeleteProgram(program Handle)

	GetUniformLocation(program Handle, name string) int32
	Uniform1i(location int32, v int32)
	Uniform1ui(location int32, v uint32)
	Uniform1f(location int32, v float32)

	GenVertexArray() Handle
	BindVertexArray(vao Handle)
	DeleteVertexArray(vao Handle)
	GenBuffer() Handle
	BindBuffer(target BufferTarget, buffer Handle)
	BufferData(target BufferTarget, size int, data unsafe.Pointer, usage BufferUsage)
	DeleteBuffer(buffer Handle)
	EnableVertexAttribArray(index uint32)
	VertexAttribPointer(index uint32, size int32, xtype ComponentType, normalized bool, stride int32, offset uintptr)

	DrawElements(mode DrawMode, count int32, xtype ComponentType, offset uintptr)
	Viewport(x, y, width, height int32)
	ClearColor(r, g, b, a float32)
	ClearColorBuffer()

	EnableDebugOutput()
	DebugMessageCallback(fn func(msg DebugMessage))
	Version() string
}
