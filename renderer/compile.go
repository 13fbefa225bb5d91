package renderer

import (
	"fmt"

	"github.com/polyfloyd/glsmoke/glapi"
)

const sourceSeparator = "\n\n"

func concatSources(sources []Source) (string, error) {
	var src string
	for _, s := range sources {
		c, err := s.Contents()
		if err != nil {
			return "", err
		}
		src += string(c)
		src += sourceSeparator
	}
	return src, nil
}

// compileShader creates a shader object for the stage. If checkStatus is
// set, a failed compilation deletes the shader and returns a CompileError.
func compileShader(gl glapi.GL, stage Stage, checkStatus bool, sources ...Source) (uint32, error) {
	glStage, err := stage.glEnum()
	if err != nil {
		return 0, err
	}
	src, err := concatSources(sources)
	if err != nil {
		return 0, err
	}

	shader := gl.CreateShader(glStage)
	gl.ShaderSource(shader, src)
	gl.CompileShader(shader)

	if checkStatus && gl.GetShaderiv(shader, glapi.COMPILE_STATUS) == glapi.FALSE {
		log := gl.ShaderInfoLog(shader)
		gl.DeleteShader(shader)
		return 0, CompileError{
			sources: sources,
			stage:   stage,
			log:     log,
		}
	}
	return shader, nil
}

// linkProgram compiles all stages of prog and links them. The intermediate
// shader objects are always detached and deleted before returning.
//
// With checkStatus unset no compile or link status is queried and the
// program handle is returned as is.
func linkProgram(gl glapi.GL, prog Program, checkStatus bool) (uint32, error) {
	if err := prog.validate(); err != nil {
		return 0, err
	}

	shaders := make([]uint32, 0, len(stageOrder))
	freeShaders := func() {
		for _, sh := range shaders {
			gl.DeleteShader(sh)
		}
	}

	for _, stage := range stageOrder {
		sh, err := compileShader(gl, stage, checkStatus, prog.sources(stage)...)
		if err != nil {
			freeShaders()
			return 0, err
		}
		shaders = append(shaders, sh)
	}

	program := gl.CreateProgram()
	for _, sh := range shaders {
		gl.AttachShader(program, sh)
	}
	gl.LinkProgram(program)

	var linkErr error
	if checkStatus && gl.GetProgramiv(program, glapi.LINK_STATUS) == glapi.FALSE {
		linkErr = LinkError{log: gl.ProgramInfoLog(program)}
	}

	for _, sh := range shaders {
		gl.DetachShader(program, sh)
	}
	freeShaders()
	if linkErr != nil {
		gl.DeleteProgram(program)
		return 0, linkErr
	}
	return program, nil
}

type LinkError struct {
	log string
}

func (err LinkError) Error() string {
	return fmt.Sprintf("shader linking failed: %s", err.log)
}

// Log returns the program info log reported by the driver.
func (err LinkError) Log() string {
	return err.log
}
