package main

import (
	"os"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/polyfloyd/glsmoke/glapi"
)

func TestParseGeometry(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		valid := map[string]struct {
			w, h uint
		}{
			"1x2":          {w: 1, h: 2},
			"2x1":          {w: 2, h: 1},
			"30x90":        {w: 30, h: 90},
			"env":          {w: 150, h: 16},
			"2147483647x1": {w: 2147483647, h: 1},
		}
		os.Setenv("GLSMOKE_GEOMETRY", "150x16")
		defer os.Unsetenv("GLSMOKE_GEOMETRY")

		for input, expected := range valid {
			w, h, err := parseGeometry(input)
			if err != nil {
				t.Errorf("error parsing valid geometry %q: %v", input, err)
			}
			if w != expected.w || h != expected.h {
				t.Errorf("mismatched result (%d, %d), expected (%d, %d)", w, h, expected.w, expected.h)
			}
		}
	})

	t.Run("invalid", func(t *testing.T) {
		invalid := []string{
			"0x2",
			"2x0",
			"-1x1",
			"1x-1",
			"",
			" ",
			"x",
			"fooxbar",
			"lalala",
			"99999999999x1",
			"1x99999999999",
			"2147483648x1",
			"1x4294967296",
		}

		for _, input := range invalid {
			_, _, err := parseGeometry(input)
			if err == nil {
				t.Errorf("expected an error while parsing invalid geometry %q", input)
			}
		}
	})
}

func TestParseArgsDefaults(t *testing.T) {
	cfg, err := parseArgs(nil)
	require.NoError(t, err)
	assert.Equal(t, defaultConfig(), cfg)

	version, err := cfg.openGLVersion()
	require.NoError(t, err)
	assert.Equal(t, glapi.OpenGLVersion{Major: 3, Minor: 3}, version)

	bg, err := cfg.background()
	require.NoError(t, err)
	assert.Equal(t, mgl32.Vec4{0.2, 0.4, 0.5, 1}, bg)
}

func TestParseArgsFlags(t *testing.T) {
	cfg, err := parseArgs([]string{
		"-variant", "raw",
		"-g", "640x480",
		"-opengl", "4.6",
		"-bg", "1,0,0.5",
		"-n", "3",
		"-vsync=false",
	})
	require.NoError(t, err)
	assert.Equal(t, "raw", cfg.Variant)
	assert.Equal(t, "640x480", cfg.Geometry)
	assert.Equal(t, uint(3), cfg.Frames)
	assert.False(t, cfg.VSync)

	version, err := cfg.openGLVersion()
	require.NoError(t, err)
	assert.Equal(t, glapi.OpenGLVersion{Major: 4, Minor: 6}, version)

	bg, err := cfg.background()
	require.NoError(t, err)
	assert.Equal(t, mgl32.Vec4{1, 0, 0.5, 1}, bg)
}

func TestParseArgsConfigFile(t *testing.T) {
	cfg, err := parseArgs([]string{"-config", "testdata/raw.toml", "-n", "2"})
	require.NoError(t, err)
	assert.Equal(t, "raw", cfg.Variant)
	assert.Equal(t, "raw smoke test", cfg.Title)
	assert.Equal(t, "320x240", cfg.Geometry)
	assert.False(t, cfg.VSync)
	// Explicit flags win over the file.
	assert.Equal(t, uint(2), cfg.Frames)
	// Unset keys keep their defaults.
	assert.Equal(t, "330 core", cfg.GLSL)

	bg, err := cfg.background()
	require.NoError(t, err)
	assert.Equal(t, mgl32.Vec4{0.1, 0.2, 0.3, 1}, bg)
}

func TestParseArgsConfigFileErrors(t *testing.T) {
	_, err := parseArgs([]string{"-config", "testdata/unknown.toml"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "multithreaded")

	_, err = parseArgs([]string{"-config", "testdata/nonexistent.toml"})
	assert.Error(t, err)
}

func TestParseArgsInvalid(t *testing.T) {
	_, err := parseArgs([]string{"-bg", "red"})
	assert.Error(t, err)

	_, err = parseArgs([]string{"stray"})
	assert.Error(t, err)
}

func TestBackgroundValidation(t *testing.T) {
	for _, c := range [][]float32{{}, {1, 1}, {1, 1, 1, 1, 1}, {2, 0, 0}, {0, -1, 0}} {
		cfg := defaultConfig()
		cfg.Background = c
		_, err := cfg.background()
		assert.Error(t, err, "%v", c)
	}
}

func TestColorFlagRoundTrip(t *testing.T) {
	var c colorFlag
	require.NoError(t, c.Set("0.25, 0.5,1"))
	assert.Equal(t, colorFlag{0.25, 0.5, 1}, c)
	assert.Equal(t, "0.25,0.5,1", c.String())
}
