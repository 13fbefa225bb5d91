package main

import (
	"fmt"
	"image"
	"log"

	"github.com/polyfloyd/glsmoke/egl"
	"github.com/polyfloyd/glsmoke/glapi"
	"github.com/polyfloyd/glsmoke/renderer"
)

// debugOutputVersion is the first OpenGL version with debug output in core.
var debugOutputVersion = glapi.OpenGLVersion{Major: 4, Minor: 3}

// sceneHandler connects a scene to the window callbacks. The GL backend is
// loaded once the window has made its context current.
type sceneHandler struct {
	scene   *renderer.Scene
	version glapi.OpenGLVersion
	debug   bool
	verbose bool

	gl glapi.GL
}

func (h *sceneHandler) Load(getProcAddress glapi.ProcAddressFunc) error {
	variant := h.scene.Variant()
	gl, err := glapi.New(variant.Backend, getProcAddress)
	if err != nil {
		return err
	}
	h.gl = gl

	if h.verbose {
		log.Printf("Variant: %s", variant.Name)
		log.Printf("OpenGL vendor: %s", gl.GetString(glapi.VENDOR))
		log.Printf("OpenGL renderer: %s", gl.GetString(glapi.RENDERER))
		log.Printf("OpenGL version: %s", gl.GetString(glapi.VERSION))
	}
	if h.debug {
		switch {
		case variant.Backend != glapi.BackendTyped:
			log.Printf("Debug output is only available with the typed variant")
		case h.version.Less(debugOutputVersion):
			log.Printf("Debug output requires OpenGL %s, the context is %s", debugOutputVersion, h.version)
		default:
			go logDebugMessages(glapi.DebugOutput())
		}
	}
	return h.scene.Load(gl)
}

func (h *sceneHandler) Render() error {
	return h.scene.Render()
}

func (h *sceneHandler) Resize(width, height int) {
	h.scene.Resize(width, height)
}

func (h *sceneHandler) Dispose() {
	h.scene.Dispose()
}

func logDebugMessages(messages <-chan glapi.DebugMessage) {
	for dm := range messages {
		if !dm.IsNotification() {
			log.Printf("OpenGL %s", dm)
		}
	}
}

// renderOffscreen renders the requested number of frames without a window
// and returns the last one.
func renderOffscreen(h *sceneHandler, width, height uint, frames uint) (image.Image, error) {
	context, err := egl.NewOffscreen(width, height, h.version.Major, h.version.Minor)
	if err != nil {
		return nil, fmt.Errorf("could not create offscreen context: %w", err)
	}
	defer context.Close()

	defer h.Dispose()
	if err := h.Load(egl.GetProcAddress); err != nil {
		return nil, err
	}
	if frames == 0 {
		frames = 1
	}
	for i := uint(0); i < frames; i++ {
		if err := h.Render(); err != nil {
			return nil, err
		}
	}
	return renderer.Snapshot(h.gl, int(width), int(height)), nil
}
