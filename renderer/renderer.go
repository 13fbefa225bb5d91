package renderer

import (
	"fmt"
	"image"
	"image/color"
	"log"
	"unsafe"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/polyfloyd/glsmoke/glapi"
)

// Variant selects the flavour of the smoke test.
type Variant struct {
	Name    string
	Backend glapi.Backend

	// CheckStatus makes Load fail on compile and link errors. Without it the
	// program is used whatever the driver made of it.
	CheckStatus bool
	// BindVertexArray rebinds the vertex array before each draw.
	BindVertexArray bool
	// DrawIndexed draws through the element buffer instead of by vertex
	// count.
	DrawIndexed bool
}

var (
	VariantTyped = Variant{
		Name:        "typed",
		Backend:     glapi.BackendTyped,
		CheckStatus: true,
	}
	VariantRaw = Variant{
		Name:            "raw",
		Backend:         glapi.BackendRaw,
		BindVertexArray: true,
		DrawIndexed:     true,
	}
)

// VariantByName looks up a variant. Variants are named after their backend.
func VariantByName(name string) (Variant, error) {
	backend, err := glapi.ParseBackend(name)
	if err != nil {
		return Variant{}, fmt.Errorf("unknown variant: %q", name)
	}
	for _, v := range []Variant{VariantTyped, VariantRaw} {
		if v.Backend == backend {
			return v, nil
		}
	}
	return Variant{}, fmt.Errorf("no variant for backend %q", backend)
}

type Options struct {
	Variant Variant
	Program Program
	// Mesh defaults to TriangleMesh.
	Mesh Mesh
	// Background defaults to DefaultBackground.
	Background *mgl32.Vec4
}

// Scene draws a single mesh with a single shader program. It is driven by
// the callbacks of a window: Load once, Render every frame, Dispose at the
// end.
//
// Apart from SetProgram, methods must be called from the goroutine that owns
// the GL context.
type Scene struct {
	variant    Variant
	mesh       Mesh
	background mgl32.Vec4
	prog       Program

	gl      glapi.GL
	state   State
	vao     uint32
	vbo     uint32
	ebo     uint32
	program uint32

	width, height int

	newPrograms chan Program
}

func NewScene(opts Options) *Scene {
	s := &Scene{
		variant:     opts.Variant,
		mesh:        opts.Mesh,
		background:  DefaultBackground,
		prog:        opts.Program,
		newPrograms: make(chan Program, 1),
	}
	if s.mesh.isEmpty() {
		s.mesh = TriangleMesh
	}
	if opts.Background != nil {
		s.background = *opts.Background
	}
	return s
}

func (s *Scene) State() State {
	return s.state
}

func (s *Scene) Variant() Variant {
	return s.variant
}

// Load uploads the mesh and builds the shader program.
//
// Handles that were created before a failure are kept so Dispose can release
// them.
func (s *Scene) Load(gl glapi.GL) error {
	if s.state != StateUnloaded || s.gl != nil {
		return invalidState("load", s.state)
	}
	s.gl = gl

	s.vao = gl.GenVertexArray()
	gl.BindVertexArray(s.vao)

	vertices := s.mesh.vertexData()
	s.vbo = gl.GenBuffer()
	gl.BindBuffer(glapi.ARRAY_BUFFER, s.vbo)
	gl.BufferData(glapi.ARRAY_BUFFER, len(vertices)*4, unsafe.Pointer(&vertices[0]), glapi.STATIC_DRAW)

	s.ebo = gl.GenBuffer()
	gl.BindBuffer(glapi.ELEMENT_ARRAY_BUFFER, s.ebo)
	gl.BufferData(glapi.ELEMENT_ARRAY_BUFFER, len(s.mesh.Indices)*4, unsafe.Pointer(&s.mesh.Indices[0]), glapi.STATIC_DRAW)

	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointer(0, 3, glapi.FLOAT, false, 0, 0)

	program, err := linkProgram(gl, s.prog, s.variant.CheckStatus)
	if err != nil {
		return err
	}
	s.program = program
	s.state = StateLoaded
	return nil
}

// SetProgram schedules a new shader program. It is built on the next call to
// Render, replacing any program that was scheduled but not yet built. If it
// fails to compile or link, the current program is kept.
func (s *Scene) SetProgram(prog Program) {
	for {
		select {
		case s.newPrograms <- prog:
			return
		default:
		}
		select {
		case <-s.newPrograms:
		default:
		}
	}
}

// reloadProgram swaps in a scheduled program. A program that fails to build
// is logged and the current one stays in use. Status is always checked here,
// also for variants that skip it in Load.
func (s *Scene) reloadProgram() {
	var prog Program
	select {
	case prog = <-s.newPrograms:
	default:
		return
	}

	program, err := linkProgram(s.gl, prog, true)
	if err != nil {
		log.Printf("Error reloading shaders: %v", err)
		return
	}
	s.gl.DeleteProgram(s.program)
	s.program = program
	s.prog = prog
}

// Render draws one frame into the current framebuffer. Presenting the frame
// is up to the caller.
func (s *Scene) Render() error {
	if !s.state.canRender() {
		return invalidState("render", s.state)
	}
	s.state = StateRendering
	s.reloadProgram()

	gl := s.gl
	gl.ClearColor(s.background[0], s.background[1], s.background[2], s.background[3])
	gl.Clear(glapi.COLOR_BUFFER_BIT)
	gl.UseProgram(s.program)
	if s.variant.BindVertexArray {
		gl.BindVertexArray(s.vao)
	}
	if s.variant.DrawIndexed {
		gl.DrawElements(glapi.TRIANGLES, int32(len(s.mesh.Indices)), glapi.UNSIGNED_INT, 0)
	} else {
		gl.DrawArrays(glapi.TRIANGLES, 0, int32(len(s.mesh.Vertices)))
	}
	return nil
}

// Resize records the new framebuffer size. The viewport is left as it is.
func (s *Scene) Resize(width, height int) {
	s.width, s.height = width, height
}

func (s *Scene) Size() (width, height int) {
	return s.width, s.height
}

// Dispose releases all GL objects. It is safe to call more than once.
func (s *Scene) Dispose() {
	if s.state == StateDisposed {
		return
	}
	s.state = StateDisposed
	if s.gl == nil {
		return
	}
	if s.vbo != 0 {
		s.gl.DeleteBuffer(s.vbo)
	}
	if s.ebo != 0 {
		s.gl.DeleteBuffer(s.ebo)
	}
	if s.vao != 0 {
		s.gl.DeleteVertexArray(s.vao)
	}
	if s.program != 0 {
		s.gl.DeleteProgram(s.program)
	}
	s.vao, s.vbo, s.ebo, s.program = 0, 0, 0, 0
}

// Snapshot reads back the current color buffer.
func Snapshot(gl glapi.GL, width, height int) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	gl.ReadPixels(0, 0, int32(width), int32(height), glapi.RGBA, glapi.UNSIGNED_BYTE, unsafe.Pointer(&img.Pix[0]))
	return &Flip{Image: img}
}

// Flip wraps an image and flips it upside down.
type Flip struct {
	image.Image
}

func (flip *Flip) At(x, y int) color.Color {
	h := flip.Bounds().Dy()
	return flip.Image.At(x, h-y-1)
}
