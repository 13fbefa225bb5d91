package glapi

import (
	"fmt"
	"strings"
	"unsafe"

	"github.com/go-gl/gl/v3.3-core/gl"
)

// Typed implements GL on top of the go-gl bindings.
type Typed struct{}

func NewTyped(getProcAddress ProcAddressFunc) (*Typed, error) {
	if err := gl.InitWithProcAddrFunc(getProcAddress); err != nil {
		return nil, fmt.Errorf("gl.Init: %w", err)
	}
	return &Typed{}, nil
}

func (Typed) GenVertexArray() (vao uint32) {
	gl.GenVertexArrays(1, &vao)
	return
}

func (Typed) BindVertexArray(vao uint32) { gl.BindVertexArray(vao) }

func (Typed) DeleteVertexArray(vao uint32) { gl.DeleteVertexArrays(1, &vao) }

func (Typed) GenBuffer() (buffer uint32) {
	gl.GenBuffers(1, &buffer)
	return
}

func (Typed) BindBuffer(target, buffer uint32) { gl.BindBuffer(target, buffer) }

func (Typed) BufferData(target uint32, size int, data unsafe.Pointer, usage uint32) {
	gl.BufferData(target, size, data, usage)
}

func (Typed) DeleteBuffer(buffer uint32) { gl.DeleteBuffers(1, &buffer) }

func (Typed) EnableVertexAttribArray(index uint32) { gl.EnableVertexAttribArray(index) }

func (Typed) VertexAttribPointer(index uint32, size int32, xtype uint32, normalized bool, stride int32, offset uintptr) {
	gl.VertexAttribPointerWithOffset(index, size, xtype, normalized, stride, offset)
}

func (Typed) CreateShader(xtype uint32) uint32 { return gl.CreateShader(xtype) }

func (Typed) ShaderSource(shader uint32, source string) {
	csources, free := gl.Strs(source + "\x00")
	gl.ShaderSource(shader, 1, csources, nil)
	free()
}

func (Typed) CompileShader(shader uint32) { gl.CompileShader(shader) }

func (Typed) GetShaderiv(shader, pname uint32) (v int32) {
	gl.GetShaderiv(shader, pname, &v)
	return
}

func (t Typed) ShaderInfoLog(shader uint32) string {
	logLen := t.GetShaderiv(shader, gl.INFO_LOG_LENGTH)
	log := strings.Repeat("\x00", int(logLen+1))
	gl.GetShaderInfoLog(shader, logLen, nil, gl.Str(log))
	return strings.TrimRight(log, "\x00")
}

func (Typed) DeleteShader(shader uint32) { gl.DeleteShader(shader) }

func (Typed) CreateProgram() uint32 { return gl.CreateProgram() }

func (Typed) AttachShader(program, shader uint32) { gl.AttachShader(program, shader) }

func (Typed) DetachShader(program, shader uint32) { gl.DetachShader(program, shader) }

func (Typed) LinkProgram(program uint32) { gl.LinkProgram(program) }

func (Typed) GetProgramiv(program, pname uint32) (v int32) {
	gl.GetProgramiv(program, pname, &v)
	return
}

func (t Typed) ProgramInfoLog(program uint32) string {
	logLen := t.GetProgramiv(program, gl.INFO_LOG_LENGTH)
	log := strings.Repeat("\x00", int(logLen+1))
	gl.GetProgramInfoLog(program, logLen, nil, gl.Str(log))
	return strings.TrimRight(log, "\x00")
}

func (Typed) UseProgram(program uint32) { gl.UseProgram(program) }

func (Typed) DeleteProgram(program uint32) { gl.DeleteProgram(program) }

func (Typed) ClearColor(r, g, b, a float32) { gl.ClearColor(r, g, b, a) }

func (Typed) Clear(mask uint32) { gl.Clear(mask) }

func (Typed) DrawArrays(mode uint32, first, count int32) { gl.DrawArrays(mode, first, count) }

func (Typed) DrawElements(mode uint32, count int32, xtype uint32, offset uintptr) {
	gl.DrawElementsWithOffset(mode, count, xtype, offset)
}

func (Typed) Viewport(x, y, width, height int32) { gl.Viewport(x, y, width, height) }

func (Typed) ReadPixels(x, y, width, height int32, format, xtype uint32, pixels unsafe.Pointer) {
	gl.ReadPixels(x, y, width, height, format, xtype, pixels)
}

func (Typed) GetString(name uint32) string {
	return gl.GoStr(gl.GetString(name))
}
