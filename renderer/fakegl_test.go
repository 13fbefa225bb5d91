package renderer

import (
	"fmt"
	"strings"
	"unsafe"

	"github.com/polyfloyd/glsmoke/glapi"
)

// fakeGL records every call and hands out handles like a driver would. It
// tracks which objects are alive so tests can check for leaks and double
// deletes.
type fakeGL struct {
	calls []string

	nextHandle uint32
	alive      map[uint32]string
	deleted    map[uint32]int

	sources    map[uint32]string
	bufferData map[uint32][]byte
	bound      map[uint32]uint32

	compileFails func(source string) bool
	compileLog   string
	linkFails    bool
	linkLog      string
	statusCalls  int

	pixel [4]byte
}

func newFakeGL() *fakeGL {
	return &fakeGL{
		alive:      map[uint32]string{},
		deleted:    map[uint32]int{},
		sources:    map[uint32]string{},
		bufferData: map[uint32][]byte{},
		bound:      map[uint32]uint32{},
	}
}

func (f *fakeGL) record(format string, args ...interface{}) {
	f.calls = append(f.calls, fmt.Sprintf(format, args...))
}

func (f *fakeGL) gen(kind string) uint32 {
	f.nextHandle++
	f.alive[f.nextHandle] = kind
	return f.nextHandle
}

func (f *fakeGL) del(kind string, h uint32) {
	f.deleted[h]++
	if f.alive[h] == kind {
		delete(f.alive, h)
	}
}

// callsWithPrefix filters the call log.
func (f *fakeGL) callsWithPrefix(prefix string) []string {
	var out []string
	for _, c := range f.calls {
		if strings.HasPrefix(c, prefix) {
			out = append(out, c)
		}
	}
	return out
}

func (f *fakeGL) reset() {
	f.calls = nil
}

func (f *fakeGL) GenVertexArray() uint32 {
	h := f.gen("vao")
	f.record("GenVertexArray() %d", h)
	return h
}

func (f *fakeGL) BindVertexArray(vao uint32) { f.record("BindVertexArray(%d)", vao) }

func (f *fakeGL) DeleteVertexArray(vao uint32) {
	f.record("DeleteVertexArray(%d)", vao)
	f.del("vao", vao)
}

func (f *fakeGL) GenBuffer() uint32 {
	h := f.gen("buffer")
	f.record("GenBuffer() %d", h)
	return h
}

func (f *fakeGL) BindBuffer(target, buffer uint32) {
	f.bound[target] = buffer
	f.record("BindBuffer(%#x, %d)", target, buffer)
}

func (f *fakeGL) BufferData(target uint32, size int, data unsafe.Pointer, usage uint32) {
	f.bufferData[f.bound[target]] = append([]byte(nil), unsafe.Slice((*byte)(data), size)...)
	f.record("BufferData(%#x, %d, %#x)", target, size, usage)
}

func (f *fakeGL) DeleteBuffer(buffer uint32) {
	f.record("DeleteBuffer(%d)", buffer)
	f.del("buffer", buffer)
}

func (f *fakeGL) EnableVertexAttribArray(index uint32) {
	f.record("EnableVertexAttribArray(%d)", index)
}

func (f *fakeGL) VertexAttribPointer(index uint32, size int32, xtype uint32, normalized bool, stride int32, offset uintptr) {
	f.record("VertexAttribPointer(%d, %d, %#x, %v, %d, %d)", index, size, xtype, normalized, stride, offset)
}

func (f *fakeGL) CreateShader(xtype uint32) uint32 {
	h := f.gen("shader")
	f.record("CreateShader(%#x) %d", xtype, h)
	return h
}

func (f *fakeGL) ShaderSource(shader uint32, source string) {
	f.sources[shader] = source
	f.record("ShaderSource(%d)", shader)
}

func (f *fakeGL) CompileShader(shader uint32) { f.record("CompileShader(%d)", shader) }

func (f *fakeGL) GetShaderiv(shader, pname uint32) int32 {
	f.statusCalls++
	f.record("GetShaderiv(%d, %#x)", shader, pname)
	if pname == glapi.COMPILE_STATUS {
		if f.compileFails != nil && f.compileFails(f.sources[shader]) {
			return glapi.FALSE
		}
		return glapi.TRUE
	}
	return 0
}

func (f *fakeGL) ShaderInfoLog(shader uint32) string { return f.compileLog }

func (f *fakeGL) DeleteShader(shader uint32) {
	f.record("DeleteShader(%d)", shader)
	f.del("shader", shader)
}

func (f *fakeGL) CreateProgram() uint32 {
	h := f.gen("program")
	f.record("CreateProgram() %d", h)
	return h
}

func (f *fakeGL) AttachShader(program, shader uint32) {
	f.record("AttachShader(%d, %d)", program, shader)
}

func (f *fakeGL) DetachShader(program, shader uint32) {
	f.record("DetachShader(%d, %d)", program, shader)
}

func (f *fakeGL) LinkProgram(program uint32) { f.record("LinkProgram(%d)", program) }

func (f *fakeGL) GetProgramiv(program, pname uint32) int32 {
	f.statusCalls++
	f.record("GetProgramiv(%d, %#x)", program, pname)
	if pname == glapi.LINK_STATUS {
		if f.linkFails {
			return glapi.FALSE
		}
		return glapi.TRUE
	}
	return 0
}

func (f *fakeGL) ProgramInfoLog(program uint32) string { return f.linkLog }

func (f *fakeGL) UseProgram(program uint32) { f.record("UseProgram(%d)", program) }

func (f *fakeGL) DeleteProgram(program uint32) {
	f.record("DeleteProgram(%d)", program)
	f.del("program", program)
}

func (f *fakeGL) ClearColor(r, g, b, a float32) {
	f.record("ClearColor(%.1f, %.1f, %.1f, %.1f)", r, g, b, a)
}

func (f *fakeGL) Clear(mask uint32) { f.record("Clear(%#x)", mask) }

func (f *fakeGL) DrawArrays(mode uint32, first, count int32) {
	f.record("DrawArrays(%d, %d, %d)", mode, first, count)
}

func (f *fakeGL) DrawElements(mode uint32, count int32, xtype uint32, offset uintptr) {
	f.record("DrawElements(%d, %d, %#x, %d)", mode, count, xtype, offset)
}

func (f *fakeGL) Viewport(x, y, width, height int32) {
	f.record("Viewport(%d, %d, %d, %d)", x, y, width, height)
}

// ReadPixels fills the bottom row with f.pixel and leaves the rest zero.
func (f *fakeGL) ReadPixels(x, y, width, height int32, format, xtype uint32, pixels unsafe.Pointer) {
	f.record("ReadPixels(%d, %d, %d, %d)", x, y, width, height)
	buf := unsafe.Slice((*byte)(pixels), int(width*height*4))
	for i := 0; i < int(width); i++ {
		copy(buf[i*4:], f.pixel[:])
	}
}

func (f *fakeGL) GetString(name uint32) string { return "fake" }

var _ glapi.GL = (*fakeGL)(nil)
