package window

import (
	"context"
	"errors"
	"fmt"
	"unsafe"

	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/polyfloyd/glsmoke/glapi"
)

// ErrWindowClosed is returned by Run when the user closed the window.
var ErrWindowClosed = errors.New("window closed")

// Handler receives the events of a window. All methods are called from the
// goroutine that called Run.
type Handler interface {
	// Load is called once after the context has been made current.
	Load(getProcAddress glapi.ProcAddressFunc) error
	// Render draws a frame. The buffers are swapped afterwards.
	Render() error
	// Resize is called with the initial framebuffer size after Load and
	// again whenever it changes.
	Resize(width, height int)
	// Dispose is called once when the window is about to close, even if
	// Load failed.
	Dispose()
}

type Config struct {
	Title         string
	Width, Height int
	Version       glapi.OpenGLVersion
	Resizable     bool
	// SwapInterval is the number of screen updates to wait for before
	// swapping buffers. 1 enables vsync.
	SwapInterval int
	// MaxFrames stops the loop after that many frames. Zero means no limit.
	MaxFrames uint
}

func boolHint(b bool) int {
	if b {
		return glfw.True
	}
	return glfw.False
}

// Run opens a window and runs its event loop until the window is closed, ctx
// is cancelled or the frame limit is reached.
//
// It must be called from the main thread, see runtime.LockOSThread.
func Run(ctx context.Context, cfg Config, h Handler) error {
	if err := glfw.Init(); err != nil {
		return fmt.Errorf("glfw.Init: %w", err)
	}
	defer glfw.Terminate()

	glfw.WindowHint(glfw.Resizable, boolHint(cfg.Resizable))
	glfw.WindowHint(glfw.ContextVersionMajor, cfg.Version.Major)
	glfw.WindowHint(glfw.ContextVersionMinor, cfg.Version.Minor)
	if !cfg.Version.Less(glapi.OpenGLVersion{Major: 3, Minor: 2}) {
		glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
		glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	}
	win, err := glfw.CreateWindow(cfg.Width, cfg.Height, cfg.Title, nil, nil)
	if err != nil {
		return fmt.Errorf("glfw.CreateWindow: %w", err)
	}
	defer win.Destroy()

	win.MakeContextCurrent()
	glfw.SwapInterval(cfg.SwapInterval)

	return loop(ctx, &glfwSurface{Window: win}, cfg.MaxFrames, h)
}

// surface is the part of a window the event loop depends on.
type surface interface {
	ShouldClose() bool
	SwapBuffers()
	PollEvents()
	ProcAddress(name string) unsafe.Pointer
	OnResize(func(width, height int))
	FramebufferSize() (width, height int)
}

type glfwSurface struct {
	*glfw.Window
}

func (s *glfwSurface) PollEvents() {
	glfw.PollEvents()
}

func (s *glfwSurface) ProcAddress(name string) unsafe.Pointer {
	return glfw.GetProcAddress(name)
}

func (s *glfwSurface) FramebufferSize() (width, height int) {
	return s.GetFramebufferSize()
}

func (s *glfwSurface) OnResize(fn func(width, height int)) {
	s.SetFramebufferSizeCallback(func(_ *glfw.Window, width, height int) {
		fn(width, height)
	})
}

func loop(ctx context.Context, s surface, maxFrames uint, h Handler) error {
	defer h.Dispose()
	if err := h.Load(s.ProcAddress); err != nil {
		return err
	}
	s.OnResize(h.Resize)
	h.Resize(s.FramebufferSize())

	for frame := uint(0); ; {
		if s.ShouldClose() {
			return ErrWindowClosed
		}
		if err := ctx.Err(); err != nil {
			return err
		}

		if err := h.Render(); err != nil {
			return err
		}
		s.SwapBuffers()

		frame++
		if maxFrames > 0 && frame >= maxFrames {
			return nil
		}
		s.PollEvents()
	}
}
