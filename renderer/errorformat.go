package renderer

import (
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"

	"github.com/fatih/color"
)

// Driver log line formats, the capture groups are the line number and the
// message.
var logLineRes = []*regexp.Regexp{
	// Mesa: 0:3(2): error: ...
	regexp.MustCompile(`^\d+:(\d+)\(\d+\):\s*(.*)$`),
	// NVIDIA: 0(3) : error C0000: ...
	regexp.MustCompile(`^\d+\((\d+)\)\s*:\s*(.*)$`),
	// AMD, Intel, Apple: ERROR: 0:3: ...
	regexp.MustCompile(`^(?:ERROR|WARNING):\s*\d+:(\d+):\s*(.*)$`),
}

type CompileError struct {
	sources []Source

	stage Stage
	log   string
}

func (err CompileError) Error() (str string) {
	return fmt.Sprintf("error compiling %s:\n%s", err.stage.describe(), err.log)
}

// Log returns the shader info log reported by the driver.
func (err CompileError) Log() string {
	return err.log
}

func (err CompileError) Stage() Stage {
	return err.stage
}

type marker struct {
	fileno  int
	lineno  int
	message string
}

// markers maps the line numbers in the driver log back to the sources that
// were concatenated to form the shader.
func (err CompileError) markers() []marker {
	offsets := make([]int, len(err.sources))
	offset := 0
	for i, s := range err.sources {
		offsets[i] = offset
		c, _ := s.Contents()
		offset += strings.Count(string(c), "\n") + strings.Count(sourceSeparator, "\n")
	}

	var markers []marker
	for _, line := range strings.Split(err.log, "\n") {
		line = strings.TrimSpace(line)
		for _, re := range logLineRes {
			m := re.FindStringSubmatch(line)
			if m == nil {
				continue
			}
			lineno, _ := strconv.Atoi(m[1])
			for i := len(offsets) - 1; i >= 0; i-- {
				if lineno > offsets[i] {
					markers = append(markers, marker{
						fileno:  i,
						lineno:  lineno - offsets[i],
						message: m[2],
					})
					break
				}
			}
			break
		}
	}
	return markers
}

func sourceName(s Source, index int) string {
	if f, ok := s.(SourceFile); ok {
		return f.Filename
	}
	return fmt.Sprintf("<source %d>", index)
}

func sourceLine(s Source, lineno int) (string, bool) {
	c, err := s.Contents()
	if err != nil {
		return "", false
	}
	lines := strings.Split(string(c), "\n")
	if lineno < 1 || lineno > len(lines) {
		return "", false
	}
	return lines[lineno-1], true
}

// PrettyPrint writes every error in the log together with the offending
// source line.
func (err CompileError) PrettyPrint(out io.Writer, colored bool) {
	header := color.New(color.FgRed, color.Bold)
	location := color.New(color.FgCyan)
	code := color.New(color.FgYellow)
	for _, c := range []*color.Color{header, location, code} {
		if colored {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}

	header.Fprintf(out, "Error compiling %s\n", err.stage.describe())
	markers := err.markers()
	if len(markers) == 0 {
		fmt.Fprintln(out, err.log)
		return
	}
	for _, m := range markers {
		src := err.sources[m.fileno]
		location.Fprintf(out, "%s:%d", sourceName(src, m.fileno), m.lineno)
		fmt.Fprintf(out, ": %s\n", m.message)
		if line, ok := sourceLine(src, m.lineno); ok {
			code.Fprintf(out, "    %s\n", strings.TrimRight(line, " \t\r"))
		}
	}
}
