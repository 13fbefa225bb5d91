package glapi

import (
	"fmt"
	"regexp"
	"strconv"
)

// OpenGLVersion is the version of the context requested from the window
// system.
type OpenGLVersion struct {
	Major, Minor int
}

func (v OpenGLVersion) String() string {
	return fmt.Sprintf("%d.%d", v.Major, v.Minor)
}

// Less reports whether v predates other.
func (v OpenGLVersion) Less(other OpenGLVersion) bool {
	if v.Major != other.Major {
		return v.Major < other.Major
	}
	return v.Minor < other.Minor
}

var openGLVersionRe = regexp.MustCompile(`^(\d+)\.(\d+)$`)

func ParseOpenGLVersion(str string) (OpenGLVersion, error) {
	matches := openGLVersionRe.FindStringSubmatch(str)
	if matches == nil {
		return OpenGLVersion{}, fmt.Errorf("invalid OpenGL version: %q", str)
	}
	major, _ := strconv.Atoi(matches[1])
	minor, _ := strconv.Atoi(matches[2])
	if major == 0 {
		return OpenGLVersion{}, fmt.Errorf("invalid OpenGL version: %q", str)
	}
	return OpenGLVersion{Major: major, Minor: minor}, nil
}

// OpenGLVersionFromGLSLVersion returns the first OpenGL version that
// supports the given GLSL version, e.g. "330" or "330 core".
func OpenGLVersionFromGLSLVersion(glslVersion string) (OpenGLVersion, error) {
	re := regexp.MustCompile(`^(\d)(\d)0(?:\s+(?:core|compatibility|es))?$`)
	matches := re.FindStringSubmatch(glslVersion)
	if matches == nil {
		return OpenGLVersion{}, fmt.Errorf("invalid GLSL version: %q", glslVersion)
	}
	major, _ := strconv.Atoi(matches[1])
	minor, _ := strconv.Atoi(matches[2])

	switch {
	case major == 1 && minor <= 1:
		return OpenGLVersion{Major: 2, Minor: 0}, nil
	case major == 1 && minor == 2:
		return OpenGLVersion{Major: 2, Minor: 1}, nil
	case major == 1 && minor <= 5:
		return OpenGLVersion{Major: 3, Minor: minor - 3}, nil
	case major >= 3:
		return OpenGLVersion{Major: major, Minor: minor}, nil
	}
	return OpenGLVersion{}, fmt.Errorf("unsupported GLSL version: %q", glslVersion)
}
