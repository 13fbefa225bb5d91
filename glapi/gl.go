package glapi

import (
	"fmt"
	"unsafe"
)

// Enums used by the program. The values are fixed by the OpenGL registry and
// shared by all backends.
const (
	FALSE = 0
	TRUE  = 1

	TRIANGLES = 0x0004

	UNSIGNED_BYTE = 0x1401
	UNSIGNED_INT  = 0x1405
	FLOAT         = 0x1406

	RGBA = 0x1908

	VENDOR   = 0x1F00
	RENDERER = 0x1F01
	VERSION  = 0x1F02

	COLOR_BUFFER_BIT = 0x00004000

	ARRAY_BUFFER         = 0x8892
	ELEMENT_ARRAY_BUFFER = 0x8893
	STATIC_DRAW          = 0x88E4

	FRAGMENT_SHADER = 0x8B30
	VERTEX_SHADER   = 0x8B31
	COMPILE_STATUS  = 0x8B81
	LINK_STATUS     = 0x8B82
	INFO_LOG_LENGTH = 0x8B84
)

// ProcAddressFunc resolves an OpenGL entry point of the current context by
// name. It returns nil if the symbol is not available.
type ProcAddressFunc func(name string) unsafe.Pointer

// GL is the part of the OpenGL API the renderer needs. Implementations must
// only be used from the goroutine that owns the current context.
type GL interface {
	GenVertexArray() uint32
	BindVertexArray(vao uint32)
	DeleteVertexArray(vao uint32)

	GenBuffer() uint32
	BindBuffer(target, buffer uint32)
	BufferData(target uint32, size int, data unsafe.Pointer, usage uint32)
	DeleteBuffer(buffer uint32)

	EnableVertexAttribArray(index uint32)
	VertexAttribPointer(index uint32, size int32, xtype uint32, normalized bool, stride int32, offset uintptr)

	CreateShader(xtype uint32) uint32
	ShaderSource(shader uint32, source string)
	CompileShader(shader uint32)
	GetShaderiv(shader, pname uint32) int32
	ShaderInfoLog(shader uint32) string
	DeleteShader(shader uint32)

	CreateProgram() uint32
	AttachShader(program, shader uint32)
	DetachShader(program, shader uint32)
	LinkProgram(program uint32)
	GetProgramiv(program, pname uint32) int32
	ProgramInfoLog(program uint32) string
	UseProgram(program uint32)
	DeleteProgram(program uint32)

	ClearColor(r, g, b, a float32)
	Clear(mask uint32)
	DrawArrays(mode uint32, first, count int32)
	DrawElements(mode uint32, count int32, xtype uint32, offset uintptr)
	Viewport(x, y, width, height int32)
	ReadPixels(x, y, width, height int32, format, xtype uint32, pixels unsafe.Pointer)

	GetString(name uint32) string
}

// Backend selects how OpenGL entry points are reached.
type Backend string

const (
	// BackendTyped goes through the generated go-gl bindings.
	BackendTyped Backend = "typed"
	// BackendRaw resolves every entry point by name at runtime and calls it
	// without cgo.
	BackendRaw Backend = "raw"
)

func ParseBackend(str string) (Backend, error) {
	switch b := Backend(str); b {
	case BackendTyped, BackendRaw:
		return b, nil
	}
	return "", fmt.Errorf("unknown GL backend: %q", str)
}

// New loads the entry points of the current context for the requested backend.
func New(backend Backend, getProcAddress ProcAddressFunc) (GL, error) {
	var gl GL
	var err error
	switch backend {
	case BackendTyped:
		gl, err = NewTyped(getProcAddress)
	case BackendRaw:
		gl, err = NewRaw(getProcAddress)
	default:
		return nil, fmt.Errorf("unknown GL backend: %q", backend)
	}
	if err != nil {
		return nil, err
	}
	return gl, nil
}
