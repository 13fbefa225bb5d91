// Package egl creates offscreen OpenGL contexts backed by pbuffer surfaces.
package egl

// #cgo LDFLAGS: -lEGL
// #include <stdlib.h>
// #include <EGL/egl.h>
// #include <EGL/eglext.h>
import "C"
import (
	"fmt"
	"strings"
	"unsafe"
)

var DefaultDisplay = NativeDisplayType(nil) // C.EGL_DEFAULT_DISPLAY

type NativeDisplayType C.EGLNativeDisplayType

type API C.EGLenum

const (
	OpenGLAPI   = API(C.EGL_OPENGL_API)
	OpenGLESAPI = API(C.EGL_OPENGL_ES_API)
)

type Surface struct {
	conf C.EGLConfig
	surf C.EGLSurface
}

type Display struct {
	dpy C.EGLDisplay
}

func GetDisplay(dtype NativeDisplayType) (Display, error) {
	dpy := C.eglGetDisplay(C.EGLNativeDisplayType(dtype))
	if dpy == 0 {
		return Display{}, fmt.Errorf("no EGL display available")
	}
	if C.eglInitialize(dpy, nil, nil) == C.EGL_FALSE {
		return Display{}, fmt.Errorf("error initializing display: %v", getError())
	}
	return Display{dpy: dpy}, nil
}

// ClientAPIs retrieves a list of supported client APIs.
func (d Display) ClientAPIs() []string {
	str := C.GoString(C.eglQueryString(d.dpy, C.EGL_CLIENT_APIS))
	return strings.Split(strings.Trim(str, " "), " ")
}

// Vendor retrieves the EGL vendor string.
func (d Display) Vendor() string {
	return C.GoString(C.eglQueryString(d.dpy, C.EGL_VENDOR))
}

// Version retrieves the EGL version string.
func (d Display) Version() string {
	return C.GoString(C.eglQueryString(d.dpy, C.EGL_VERSION))
}

func (d Display) Destroy() {
	C.eglTerminate(d.dpy)
}

func (d Display) CreateSurface(width, height uint) (Surface, error) {
	configAttribs := []C.EGLint{
		C.EGL_SURFACE_TYPE, C.EGL_PBUFFER_BIT,
		C.EGL_BLUE_SIZE, 8,
		C.EGL_GREEN_SIZE, 8,
		C.EGL_RED_SIZE, 8,
		C.EGL_ALPHA_SIZE, 8,
		C.EGL_RENDERABLE_TYPE, C.EGL_OPENGL_BIT,
		C.EGL_NONE,
	}
	pbufferAttribs := []C.EGLint{
		C.EGL_WIDTH, C.EGLint(width),
		C.EGL_HEIGHT, C.EGLint(height),
		C.EGL_NONE,
	}
	var numConfigs C.EGLint
	var eglCfg C.EGLConfig
	if C.eglChooseConfig(d.dpy, &configAttribs[0], &eglCfg, 1, &numConfigs) == C.EGL_FALSE {
		return Surface{}, fmt.Errorf("error choosing config: %v", getError())
	}
	if numConfigs == 0 {
		return Surface{}, fmt.Errorf("no matching EGL config")
	}

	eglSurf := C.eglCreatePbufferSurface(d.dpy, eglCfg, &pbufferAttribs[0])
	if eglSurf == nil {
		return Surface{}, fmt.Errorf("error creating surface: %v", getError())
	}
	return Surface{
		conf: eglCfg,
		surf: eglSurf,
	}, nil
}

func (d Display) BindAPI(api API) error {
	if C.eglBindAPI(C.EGLenum(api)) == C.EGL_FALSE {
		return fmt.Errorf("error binding API: %v", getError())
	}
	return nil
}

// CreateContext creates a core profile context of at least the specified
// version.
func (d Display) CreateContext(surface Surface, major, minor int) (Context, error) {
	attribs := []C.EGLint{
		C.EGL_CONTEXT_MAJOR_VERSION, C.EGLint(major),
		C.EGL_CONTEXT_MINOR_VERSION, C.EGLint(minor),
		C.EGL_CONTEXT_OPENGL_PROFILE_MASK, C.EGL_CONTEXT_OPENGL_CORE_PROFILE_BIT,
		C.EGL_NONE,
	}
	context := C.eglCreateContext(d.dpy, surface.conf, nil, &attribs[0])
	if context == nil {
		return Context{}, fmt.Errorf("error creating context: %v", getError())
	}
	return Context{
		Display: d,
		Surface: surface,
		context: context,
	}, nil
}

type Context struct {
	Display Display
	Surface Surface

	context C.EGLContext
}

func (cx Context) MakeCurrent() error {
	if C.eglMakeCurrent(cx.Display.dpy, cx.Surface.surf, cx.Surface.surf, cx.context) == C.EGL_FALSE {
		return fmt.Errorf("error making context current: %v", getError())
	}
	return nil
}

// Destroy releases the context and its surface.
func (cx Context) Destroy() {
	C.eglMakeCurrent(cx.Display.dpy, nil, nil, nil)
	C.eglDestroyContext(cx.Display.dpy, cx.context)
	C.eglDestroySurface(cx.Display.dpy, cx.Surface.surf)
}

// GetProcAddress resolves an OpenGL entry point. It returns nil for unknown
// symbols.
func GetProcAddress(name string) unsafe.Pointer {
	cname := C.CString(name)
	defer C.free(unsafe.Pointer(cname))
	return unsafe.Pointer(C.eglGetProcAddress(cname))
}

func getError() error {
	switch code := C.eglGetError(); code {
	case C.EGL_NOT_INITIALIZED:
		return fmt.Errorf("EGL is not initialized, or could not be initialized, for the specified EGL display connection")
	case C.EGL_BAD_ACCESS:
		return fmt.Errorf("EGL cannot access a requested resource (for example a context is bound in another thread)")
	case C.EGL_BAD_ALLOC:
		return fmt.Errorf("EGL failed to allocate resources for the requested operation")
	case C.EGL_BAD_ATTRIBUTE:
		return fmt.Errorf("an unrecognized attribute or attribute value was passed in the attribute list")
	case C.EGL_BAD_CONTEXT:
		return fmt.Errorf("an EGLContext argument does not name a valid EGL rendering context")
	case C.EGL_BAD_CONFIG:
		return fmt.Errorf("an EGLConfig argument does not name a valid EGL frame buffer configuration")
	case C.EGL_BAD_CURRENT_SURFACE:
		return fmt.Errorf("the current surface of the calling thread is a window, pixel buffer or pixmap that is no longer valid")
	case C.EGL_BAD_DISPLAY:
		return fmt.Errorf("an EGLDisplay argument does not name a valid EGL display connection")
	case C.EGL_BAD_SURFACE:
		return fmt.Errorf("an EGLSurface argument does not name a valid surface configured for GL rendering")
	case C.EGL_BAD_MATCH:
		return fmt.Errorf("arguments are inconsistent (for example, a valid context requires buffers not supplied by a valid surface)")
	case C.EGL_BAD_PARAMETER:
		return fmt.Errorf("one or more argument values are invalid")
	case C.EGL_CONTEXT_LOST:
		return fmt.Errorf("a power management event has occurred, the context must be recreated")
	case C.EGL_SUCCESS:
		return nil
	default:
		return fmt.Errorf("unknown EGL error: %v", code)
	}
}

// NewOffscreen sets up a pbuffer backed OpenGL context on the default display
// and makes it current. Call Close to release it.
func NewOffscreen(width, height uint, major, minor int) (Context, error) {
	display, err := GetDisplay(DefaultDisplay)
	if err != nil {
		return Context{}, err
	}
	surface, err := display.CreateSurface(width, height)
	if err != nil {
		display.Destroy()
		return Context{}, err
	}
	if err := display.BindAPI(OpenGLAPI); err != nil {
		display.Destroy()
		return Context{}, err
	}
	context, err := display.CreateContext(surface, major, minor)
	if err != nil {
		display.Destroy()
		return Context{}, err
	}
	if err := context.MakeCurrent(); err != nil {
		context.Close()
		return Context{}, err
	}
	return context, nil
}

// Close destroys the context and terminates its display.
func (cx Context) Close() {
	cx.Destroy()
	cx.Display.Destroy()
}
