package renderer

import (
	"os"
	"path/filepath"
	"regexp"
)

var ppIncludeRe = regexp.MustCompile(`(?im)^#pragma\s+use\s+"([^"]+)"$`)

type Source interface {
	Contents() ([]byte, error)
}

type SourceBuf string

func (s SourceBuf) Contents() ([]byte, error) {
	return []byte(s), nil
}

type SourceFile struct {
	Filename string
}

func (s SourceFile) Contents() ([]byte, error) {
	return os.ReadFile(s.Filename)
}

// SourceFiles converts a list of files into a list of sources.
func SourceFiles(files ...SourceFile) []Source {
	sources := make([]Source, 0, len(files))
	for _, f := range files {
		sources = append(sources, f)
	}
	return sources
}

// Includes recursively resolves dependencies in the specified file.
//
// The argument file is returned included in the returned list of files.
func Includes(filenames ...string) ([]SourceFile, error) {
	return processRecursive(filenames, []SourceFile{})
}

func processRecursive(filenames []string, sources []SourceFile) ([]SourceFile, error) {
next:
	for _, filename := range filenames {
		absFilename, err := filepath.Abs(filename)
		if err != nil {
			return nil, err
		}
		currentFile := SourceFile{Filename: absFilename}
		// A sibling include may already have pulled this file in.
		for _, inc := range sources {
			if inc == currentFile {
				continue next
			}
		}
		shaderSource, err := currentFile.Contents()
		if err != nil {
			return nil, err
		}

		// The recursion check needs a set that includes the current file, but
		// the current file is appended only after everything it includes.
		checkset := append(append([]SourceFile{}, sources...), currentFile)

		includeMatches := ppIncludeRe.FindAllSubmatch(shaderSource, -1)
		includes := make([]string, 0, len(includeMatches))
	outer:
		for _, submatch := range includeMatches {
			includedFile := string(submatch[1])
			if !filepath.IsAbs(includedFile) {
				includedFile = filepath.Join(filepath.Dir(absFilename), includedFile)
			} else {
				includedFile = filepath.Clean(includedFile)
			}

			for _, inc := range checkset {
				if inc.Filename == includedFile {
					continue outer
				}
			}
			includes = append(includes, includedFile)
		}

		sources, err = processRecursive(includes, sources)
		if err != nil {
			return nil, err
		}
		sources = append(sources, currentFile)
	}

	return sources, nil
}
