package renderer

import (
	_ "embed"
	"fmt"

	"github.com/polyfloyd/glsmoke/glapi"
)

type Stage string

const (
	StageVertex   Stage = "vert"
	StageFragment Stage = "frag"
)

// stageOrder is the order in which stages are compiled and attached.
var stageOrder = []Stage{StageVertex, StageFragment}

func (stage Stage) glEnum() (uint32, error) {
	switch stage {
	case StageVertex:
		return glapi.VERTEX_SHADER, nil
	case StageFragment:
		return glapi.FRAGMENT_SHADER, nil
	}
	return 0, fmt.Errorf("invalid pipeline stage: %q", stage)
}

func (stage Stage) describe() string {
	switch stage {
	case StageVertex:
		return "vertex shader"
	case StageFragment:
		return "fragment shader"
	}
	return string(stage)
}

// Program describes a shader program by the sources of each of its stages.
// Multiple sources of one stage are concatenated in order.
type Program struct {
	// GLSLVersion is emitted as the #version directive in front of every
	// stage, e.g. "330 core".
	GLSLVersion string
	Stages      map[Stage][]Source
}

// sources returns the sources of a stage including the generated version
// header.
func (p Program) sources(stage Stage) []Source {
	ss := p.Stages[stage]
	if p.GLSLVersion == "" {
		return ss
	}
	return append([]Source{SourceBuf("#version " + p.GLSLVersion)}, ss...)
}

func (p Program) validate() error {
	for stage := range p.Stages {
		if _, err := stage.glEnum(); err != nil {
			return err
		}
	}
	for _, stage := range stageOrder {
		if len(p.Stages[stage]) == 0 {
			return fmt.Errorf("missing %s", stage.describe())
		}
	}
	return nil
}

var (
	//go:embed shaders/triangle.vert
	triangleVert string
	//go:embed shaders/triangle.frag
	triangleFrag string
)

// DefaultProgram returns the built-in shaders that color the triangle by its
// position.
func DefaultProgram(glslVersion string) Program {
	return Program{
		GLSLVersion: glslVersion,
		Stages: map[Stage][]Source{
			StageVertex:   {SourceBuf(triangleVert)},
			StageFragment: {SourceBuf(triangleFrag)},
		},
	}
}

// ProgramFromFiles builds a program from shader files, resolving their
// includes. An empty filename selects the built-in shader of that stage. The
// returned list holds every file that was read.
func ProgramFromFiles(glslVersion, vertFile, fragFile string) (Program, []string, error) {
	prog := DefaultProgram(glslVersion)
	var files []string
	for stage, filename := range map[Stage]string{StageVertex: vertFile, StageFragment: fragFile} {
		if filename == "" {
			continue
		}
		sources, err := Includes(filename)
		if err != nil {
			return Program{}, files, err
		}
		for _, s := range sources {
			files = append(files, s.Filename)
		}
		prog.Stages[stage] = SourceFiles(sources...)
	}
	return prog, files, nil
}
