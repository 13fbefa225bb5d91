package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/polyfloyd/glsmoke/renderer"
)

type programRecorder chan renderer.Program

func (r programRecorder) SetProgram(prog renderer.Program) {
	r <- prog
}

func TestWatchShadersReloadsOnChange(t *testing.T) {
	dir := t.TempDir()
	frag := filepath.Join(dir, "shader.frag")
	require.NoError(t, os.WriteFile(frag, []byte("out vec4 color;\nvoid main() { color = vec4(1.0); }\n"), 0o644))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	programs := make(programRecorder, 4)
	go watchShaders(ctx, programs, func() (renderer.Program, []string, error) {
		return renderer.ProgramFromFiles("330", "", frag)
	})

	select {
	case <-programs:
	case <-time.After(5 * time.Second):
		t.Fatal("initial program was not scheduled")
	}

	require.NoError(t, os.WriteFile(frag, []byte("out vec4 color;\nvoid main() { color = vec4(0.5); }\n"), 0o644))

	select {
	case prog := <-programs:
		src, err := prog.Stages[renderer.StageFragment][0].Contents()
		require.NoError(t, err)
		assert.Contains(t, string(src), "vec4(0.5)")
	case <-time.After(5 * time.Second):
		t.Fatal("program was not reloaded after the file changed")
	}
}

func TestWatchShadersSurvivesMissingFile(t *testing.T) {
	dir := t.TempDir()
	frag := filepath.Join(dir, "shader.frag")
	require.NoError(t, os.WriteFile(frag, []byte("out vec4 color;\nvoid main() { color = vec4(1.0); }\n"), 0o644))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	programs := make(programRecorder, 4)
	go watchShaders(ctx, programs, func() (renderer.Program, []string, error) {
		return renderer.ProgramFromFiles("330", "", frag)
	})

	select {
	case <-programs:
	case <-time.After(5 * time.Second):
		t.Fatal("initial program was not scheduled")
	}

	// Editors may remove a file and write it again some time later.
	require.NoError(t, os.Remove(frag))
	time.Sleep(200 * time.Millisecond)
	require.NoError(t, os.WriteFile(frag, []byte("out vec4 color;\nvoid main() { color = vec4(0.25); }\n"), 0o644))

	select {
	case prog := <-programs:
		src, err := prog.Stages[renderer.StageFragment][0].Contents()
		require.NoError(t, err)
		assert.Contains(t, string(src), "vec4(0.25)")
	case <-time.After(5 * time.Second):
		t.Fatal("program was not reloaded after the file was recreated")
	}
}

func TestWatchShadersIgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	frag := filepath.Join(dir, "shader.frag")
	require.NoError(t, os.WriteFile(frag, []byte("out vec4 color;\nvoid main() { color = vec4(1.0); }\n"), 0o644))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	programs := make(programRecorder, 4)
	go watchShaders(ctx, programs, func() (renderer.Program, []string, error) {
		return renderer.ProgramFromFiles("330", "", frag)
	})

	select {
	case <-programs:
	case <-time.After(5 * time.Second):
		t.Fatal("initial program was not scheduled")
	}

	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("unrelated"), 0o644))
	select {
	case <-programs:
		t.Fatal("program was reloaded for an unrelated file")
	case <-time.After(300 * time.Millisecond):
	}
}

func TestMergeFiles(t *testing.T) {
	assert.Equal(t, []string{"a", "b", "c"}, mergeFiles([]string{"a", "b"}, []string{"b", "c"}))
	assert.Empty(t, mergeFiles(nil, nil))
}

func TestWatchShadersIncludes(t *testing.T) {
	prog, files, err := renderer.ProgramFromFiles("330", "", "testdata/triangle.frag")
	require.NoError(t, err)
	require.Len(t, files, 2)
	assert.Equal(t, "palette.glsl", filepath.Base(files[0]))
	assert.Len(t, prog.Stages[renderer.StageFragment], 2)
}
