package glapi

import (
	"fmt"
	"runtime"
	"strings"
	"unsafe"

	"github.com/ebitengine/purego"
)

// MissingSymbolsError lists the entry points that could not be resolved.
type MissingSymbolsError struct {
	Symbols []string
}

func (err MissingSymbolsError) Error() string {
	return fmt.Sprintf("unresolved OpenGL symbols: %s", strings.Join(err.Symbols, ", "))
}

// Raw implements GL by calling entry points that were looked up by name at
// runtime. No generated bindings are involved; each field is bound to the
// native function with purego.
type Raw struct {
	genVertexArrays    func(n int32, arrays *uint32)
	bindVertexArray    func(array uint32)
	deleteVertexArrays func(n int32, arrays *uint32)

	genBuffers    func(n int32, buffers *uint32)
	bindBuffer    func(target, buffer uint32)
	bufferData    func(target uint32, size int, data unsafe.Pointer, usage uint32)
	deleteBuffers func(n int32, buffers *uint32)

	enableVertexAttribArray func(index uint32)
	vertexAttribPointer     func(index uint32, size int32, xtype uint32, normalized uint8, stride int32, pointer uintptr)

	createShader     func(xtype uint32) uint32
	shaderSource     func(shader uint32, count int32, sources **byte, lengths *int32)
	compileShader    func(shader uint32)
	getShaderiv      func(shader, pname uint32, params *int32)
	getShaderInfoLog func(shader uint32, bufSize int32, length *int32, infoLog *byte)
	deleteShader     func(shader uint32)

	createProgram     func() uint32
	attachShader      func(program, shader uint32)
	detachShader      func(program, shader uint32)
	linkProgram       func(program uint32)
	getProgramiv      func(program, pname uint32, params *int32)
	getProgramInfoLog func(program uint32, bufSize int32, length *int32, infoLog *byte)
	useProgram        func(program uint32)
	deleteProgram     func(program uint32)

	clearColor   func(r, g, b, a float32)
	clear        func(mask uint32)
	drawArrays   func(mode uint32, first, count int32)
	drawElements func(mode uint32, count int32, xtype uint32, indices uintptr)
	viewport     func(x, y, width, height int32)
	readPixels   func(x, y, width, height int32, format, xtype uint32, pixels unsafe.Pointer)

	getString func(name uint32) string
}

// NewRaw resolves all entry points through getProcAddress. A context must be
// current on the calling thread.
func NewRaw(getProcAddress ProcAddressFunc) (*Raw, error) {
	r := &Raw{}
	symbols := []struct {
		name string
		fptr interface{}
	}{
		{"glGenVertexArrays", &r.genVertexArrays},
		{"glBindVertexArray", &r.bindVertexArray},
		{"glDeleteVertexArrays", &r.deleteVertexArrays},
		{"glGenBuffers", &r.genBuffers},
		{"glBindBuffer", &r.bindBuffer},
		{"glBufferData", &r.bufferData},
		{"glDeleteBuffers", &r.deleteBuffers},
		{"glEnableVertexAttribArray", &r.enableVertexAttribArray},
		{"glVertexAttribPointer", &r.vertexAttribPointer},
		{"glCreateShader", &r.createShader},
		{"glShaderSource", &r.shaderSource},
		{"glCompileShader", &r.compileShader},
		{"glGetShaderiv", &r.getShaderiv},
		{"glGetShaderInfoLog", &r.getShaderInfoLog},
		{"glDeleteShader", &r.deleteShader},
		{"glCreateProgram", &r.createProgram},
		{"glAttachShader", &r.attachShader},
		{"glDetachShader", &r.detachShader},
		{"glLinkProgram", &r.linkProgram},
		{"glGetProgramiv", &r.getProgramiv},
		{"glGetProgramInfoLog", &r.getProgramInfoLog},
		{"glUseProgram", &r.useProgram},
		{"glDeleteProgram", &r.deleteProgram},
		{"glClearColor", &r.clearColor},
		{"glClear", &r.clear},
		{"glDrawArrays", &r.drawArrays},
		{"glDrawElements", &r.drawElements},
		{"glViewport", &r.viewport},
		{"glReadPixels", &r.readPixels},
		{"glGetString", &r.getString},
	}

	var missing []string
	for _, sym := range symbols {
		addr := getProcAddress(sym.name)
		if addr == nil {
			missing = append(missing, sym.name)
			continue
		}
		purego.RegisterFunc(sym.fptr, uintptr(addr))
	}
	if len(missing) > 0 {
		return nil, MissingSymbolsError{Symbols: missing}
	}
	return r, nil
}

func (r *Raw) GenVertexArray() (vao uint32) {
	r.genVertexArrays(1, &vao)
	return
}

func (r *Raw) BindVertexArray(vao uint32) { r.bindVertexArray(vao) }

func (r *Raw) DeleteVertexArray(vao uint32) { r.deleteVertexArrays(1, &vao) }

func (r *Raw) GenBuffer() (buffer uint32) {
	r.genBuffers(1, &buffer)
	return
}

func (r *Raw) BindBuffer(target, buffer uint32) { r.bindBuffer(target, buffer) }

func (r *Raw) BufferData(target uint32, size int, data unsafe.Pointer, usage uint32) {
	r.bufferData(target, size, data, usage)
}

func (r *Raw) DeleteBuffer(buffer uint32) { r.deleteBuffers(1, &buffer) }

func (r *Raw) EnableVertexAttribArray(index uint32) { r.enableVertexAttribArray(index) }

func (r *Raw) VertexAttribPointer(index uint32, size int32, xtype uint32, normalized bool, stride int32, offset uintptr) {
	var norm uint8 = FALSE
	if normalized {
		norm = TRUE
	}
	r.vertexAttribPointer(index, size, xtype, norm, stride, offset)
}

func (r *Raw) CreateShader(xtype uint32) uint32 { return r.createShader(xtype) }

func (r *Raw) ShaderSource(shader uint32, source string) {
	buf := append([]byte(source), 0)
	ptr := &buf[0]
	length := int32(len(source))
	r.shaderSource(shader, 1, &ptr, &length)
	runtime.KeepAlive(buf)
}

func (r *Raw) CompileShader(shader uint32) { r.compileShader(shader) }

func (r *Raw) GetShaderiv(shader, pname uint32) (v int32) {
	r.getShaderiv(shader, pname, &v)
	return
}

func (r *Raw) ShaderInfoLog(shader uint32) string {
	logLen := r.GetShaderiv(shader, INFO_LOG_LENGTH)
	if logLen <= 0 {
		return ""
	}
	buf := make([]byte, logLen)
	var n int32
	r.getShaderInfoLog(shader, logLen, &n, &buf[0])
	return string(buf[:n])
}

func (r *Raw) DeleteShader(shader uint32) { r.deleteShader(shader) }

func (r *Raw) CreateProgram() uint32 { return r.createProgram() }

func (r *Raw) AttachShader(program, shader uint32) { r.attachShader(program, shader) }

func (r *Raw) DetachShader(program, shader uint32) { r.detachShader(program, shader) }

func (r *Raw) LinkProgram(program uint32) { r.linkProgram(program) }

func (r *Raw) GetProgramiv(program, pname uint32) (v int32) {
	r.getProgramiv(program, pname, &v)
	return
}

func (r *Raw) ProgramInfoLog(program uint32) string {
	logLen := r.GetProgramiv(program, INFO_LOG_LENGTH)
	if logLen <= 0 {
		return ""
	}
	buf := make([]byte, logLen)
	var n int32
	r.getProgramInfoLog(program, logLen, &n, &buf[0])
	return string(buf[:n])
}

func (r *Raw) UseProgram(program uint32) { r.useProgram(program) }

func (r *Raw) DeleteProgram(program uint32) { r.deleteProgram(program) }

func (r *Raw) ClearColor(red, green, blue, alpha float32) { r.clearColor(red, green, blue, alpha) }

func (r *Raw) Clear(mask uint32) { r.clear(mask) }

func (r *Raw) DrawArrays(mode uint32, first, count int32) { r.drawArrays(mode, first, count) }

func (r *Raw) DrawElements(mode uint32, count int32, xtype uint32, offset uintptr) {
	r.drawElements(mode, count, xtype, offset)
}

func (r *Raw) Viewport(x, y, width, height int32) { r.viewport(x, y, width, height) }

func (r *Raw) ReadPixels(x, y, width, height int32, format, xtype uint32, pixels unsafe.Pointer) {
	r.readPixels(x, y, width, height, format, xtype, pixels)
}

func (r *Raw) GetString(name uint32) string { return r.getString(name) }
