package main

import (
	"context"
	"errors"
	"flag"
	"io"
	"log"
	"os"
	"os/signal"
	"runtime"

	"github.com/mattn/go-isatty"

	"github.com/polyfloyd/glsmoke/encode"
	"github.com/polyfloyd/glsmoke/renderer"
	"github.com/polyfloyd/glsmoke/window"
)

func init() {
	// Lock the main goroutine to the main thread. GLFW requires its event
	// handling to run there and OpenGL contexts are bound to threads.
	runtime.LockOSThread()
}

func main() {
	cfg, err := parseArgs(os.Args[1:])
	if errors.Is(err, flag.ErrHelp) {
		return
	} else if err != nil {
		log.Fatal(err)
	}

	variant, err := renderer.VariantByName(cfg.Variant)
	if err != nil {
		log.Fatal(err)
	}
	width, height, err := parseGeometry(cfg.Geometry)
	if err != nil {
		log.Fatal(err)
	}
	openGLVersion, err := cfg.openGLVersion()
	if err != nil {
		log.Fatal(err)
	}
	background, err := cfg.background()
	if err != nil {
		log.Fatal(err)
	}
	if cfg.Verbose {
		log.Printf("OpenGL version: %s", openGLVersion)
		log.Printf("GLSL version: %s", cfg.GLSL)
	}

	newFn := func() (renderer.Program, []string, error) {
		return renderer.ProgramFromFiles(cfg.GLSL, cfg.VertexShader, cfg.FragmentShader)
	}
	prog, files, err := newFn()
	if err != nil {
		log.Fatal(err)
	}

	scene := renderer.NewScene(renderer.Options{
		Variant:    variant,
		Program:    prog,
		Background: &background,
	})
	handler := &sceneHandler{
		scene:   scene,
		version: openGLVersion,
		debug:   cfg.Debug,
		verbose: cfg.Verbose,
	}

	if cfg.Output != "" {
		if err := writeSnapshot(cfg, handler, width, height); err != nil {
			fatal(err)
		}
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() {
		sig := make(chan os.Signal, 1)
		signal.Notify(sig, os.Interrupt)
		<-sig
		signal.Stop(sig)
		cancel()
	}()

	if cfg.Watch {
		if len(files) == 0 {
			log.Println("-w is set but no shader files were given with -vert or -frag")
		} else {
			go watchShaders(ctx, scene, newFn)
		}
	}

	err = window.Run(ctx, window.Config{
		Title:        cfg.Title,
		Width:        int(width),
		Height:       int(height),
		Version:      openGLVersion,
		Resizable:    true,
		SwapInterval: swapInterval(cfg.VSync),
		MaxFrames:    cfg.Frames,
	}, handler)
	if errors.Is(err, window.ErrWindowClosed) || errors.Is(err, context.Canceled) {
		return
	} else if err != nil {
		cancel()
		fatal(err)
	}
}

func swapInterval(vsync bool) int {
	if vsync {
		return 1
	}
	return 0
}

func writeSnapshot(cfg Config, handler *sceneHandler, width, height uint) error {
	var format encode.Format
	var ok bool
	if format, ok = encode.Formats[cfg.OutputFormat]; !ok {
		if format, ok = encode.DetectFormat(cfg.Output); !ok {
			return errors.New("unable to detect output format, please set the -ofmt flag")
		}
	}

	img, err := renderOffscreen(handler, width, height, cfg.Frames)
	if err != nil {
		return err
	}

	out, err := openWriter(cfg.Output)
	if err != nil {
		return err
	}
	if err := format.Encode(out, img); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

// fatal reports err and exits. Shader compile errors are shown with their
// source lines.
func fatal(err error) {
	var compileErr renderer.CompileError
	if errors.As(err, &compileErr) {
		colored := (isatty.IsTerminal(os.Stderr.Fd()) || isatty.IsCygwinTerminal(os.Stderr.Fd())) && os.Getenv("TERM") != "dumb"
		compileErr.PrettyPrint(os.Stderr, colored)
		os.Exit(1)
	}
	log.Fatal(err)
}

func openWriter(filename string) (io.WriteCloser, error) {
	if filename == "-" {
		return nopCloseWriter{Writer: os.Stdout}, nil
	}
	return os.Create(filename)
}

type nopCloseWriter struct {
	io.Writer
}

func (nopCloseWriter) Close() error {
	return nil
}
