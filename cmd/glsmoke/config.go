package main

import (
	"flag"
	"fmt"
	"math"
	"os"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/polyfloyd/glsmoke/glapi"
	"github.com/polyfloyd/glsmoke/renderer"
)

// Config holds every setting of the program. It can be loaded from a TOML
// file, explicitly set flags take precedence over the file.
type Config struct {
	Variant        string    `toml:"variant"`
	Title          string    `toml:"title"`
	Geometry       string    `toml:"geometry"`
	OpenGL         string    `toml:"opengl"`
	GLSL           string    `toml:"glsl"`
	VertexShader   string    `toml:"vertex_shader"`
	FragmentShader string    `toml:"fragment_shader"`
	Background     []float32 `toml:"background"`
	Frames         uint      `toml:"frames"`
	VSync          bool      `toml:"vsync"`
	Watch          bool      `toml:"watch"`
	Output         string    `toml:"output"`
	OutputFormat   string    `toml:"output_format"`
	Debug          bool      `toml:"debug"`
	Verbose        bool      `toml:"verbose"`
}

func defaultConfig() Config {
	bg := renderer.DefaultBackground
	return Config{
		Variant:    renderer.VariantTyped.Name,
		Title:      "glsmoke",
		Geometry:   "800x600",
		OpenGL:     "glsl",
		GLSL:       "330 core",
		Background: bg[:],
		VSync:      true,
	}
}

// parseArgs builds the configuration from the defaults, the optional config
// file and the command line, in that order of increasing precedence.
func parseArgs(args []string) (Config, error) {
	cfg := defaultConfig()
	fs := flag.NewFlagSet("glsmoke", flag.ContinueOnError)

	configFile := fs.String("config", "", "Load settings from a TOML file. Flags override the file")
	fs.StringVar(&cfg.Variant, "variant", cfg.Variant, "The program variant. Valid values are \"typed\" and \"raw\"")
	fs.StringVar(&cfg.Title, "title", cfg.Title, "The window title")
	fs.StringVar(&cfg.Geometry, "g", cfg.Geometry, "The size of the window in WIDTHxHEIGHT format. If \"env\", look for the GLSMOKE_GEOMETRY variable")
	fs.StringVar(&cfg.OpenGL, "opengl", cfg.OpenGL, "The OpenGL version to use. If \"glsl\", the version is inferred from the requested GLSL version")
	fs.StringVar(&cfg.GLSL, "glsl", cfg.GLSL, "The GLSL version to use")
	fs.StringVar(&cfg.VertexShader, "vert", "", "The vertex shader file to use instead of the built-in one")
	fs.StringVar(&cfg.FragmentShader, "frag", "", "The fragment shader file to use instead of the built-in one")
	fs.Var((*colorFlag)(&cfg.Background), "bg", "The background color as R,G,B[,A] in the range 0 to 1")
	fs.UintVar(&cfg.Frames, "n", 0, "Limit the number of rendered frames. No limit is set by default")
	fs.BoolVar(&cfg.VSync, "vsync", cfg.VSync, "Synchronize buffer swaps with the display")
	fs.BoolVar(&cfg.Watch, "w", false, "Watch the shader source files for changes")
	fs.StringVar(&cfg.Output, "o", "", "Render offscreen and write the last frame to this file instead of opening a window")
	fs.StringVar(&cfg.OutputFormat, "ofmt", "", "The image format for -o. Detected from the file extension if empty")
	fs.BoolVar(&cfg.Debug, "debug", false, "Log OpenGL debug messages")
	fs.BoolVar(&cfg.Verbose, "v", false, "Show verbose output")
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}
	if fs.NArg() > 0 {
		return Config{}, fmt.Errorf("unexpected arguments: %v", fs.Args())
	}
	if *configFile == "" {
		return cfg, nil
	}

	explicit := map[string]string{}
	fs.Visit(func(f *flag.Flag) {
		explicit[f.Name] = f.Value.String()
	})
	fileCfg := defaultConfig()
	if err := loadConfigFile(*configFile, &fileCfg); err != nil {
		return Config{}, err
	}
	cfg = fileCfg
	for name, value := range explicit {
		if err := fs.Set(name, value); err != nil {
			return Config{}, err
		}
	}
	return cfg, nil
}

func loadConfigFile(filename string, cfg *Config) error {
	md, err := toml.DecodeFile(filename, cfg)
	if err != nil {
		return fmt.Errorf("error reading config %q: %w", filename, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, k := range undecoded {
			keys = append(keys, k.String())
		}
		sort.Strings(keys)
		return fmt.Errorf("unknown keys in config %q: %s", filename, strings.Join(keys, ", "))
	}
	return nil
}

func (cfg Config) openGLVersion() (glapi.OpenGLVersion, error) {
	if cfg.OpenGL == "glsl" {
		return glapi.OpenGLVersionFromGLSLVersion(cfg.GLSL)
	}
	return glapi.ParseOpenGLVersion(cfg.OpenGL)
}

func (cfg Config) background() (mgl32.Vec4, error) {
	c := cfg.Background
	if len(c) != 3 && len(c) != 4 {
		return mgl32.Vec4{}, fmt.Errorf("background color needs 3 or 4 components, got %d", len(c))
	}
	bg := mgl32.Vec4{0, 0, 0, 1}
	for i, v := range c {
		if v < 0 || v > 1 {
			return mgl32.Vec4{}, fmt.Errorf("background color component out of range: %v", v)
		}
		bg[i] = v
	}
	return bg, nil
}

func parseGeometry(geom string) (uint, uint, error) {
	if geom == "env" {
		geom = os.Getenv("GLSMOKE_GEOMETRY")
		if geom == "" {
			return 0, 0, fmt.Errorf("GLSMOKE_GEOMETRY is empty while instructed to load the geometry from the environment")
		}
	}

	re := regexp.MustCompile(`^(\d+)x(\d+)$`)
	matches := re.FindStringSubmatch(geom)
	if matches == nil {
		return 0, 0, fmt.Errorf("invalid geometry: %q", geom)
	}
	w, err := strconv.ParseUint(matches[1], 10, 32)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid geometry width: %w", err)
	}
	h, err := strconv.ParseUint(matches[2], 10, 32)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid geometry height: %w", err)
	}
	if w > math.MaxInt32 || h > math.MaxInt32 {
		return 0, 0, fmt.Errorf("geometry (%d, %d) exceeds the maximum of %d", w, h, math.MaxInt32)
	}
	if w == 0 || h == 0 {
		return 0, 0, fmt.Errorf("no geometry dimension can be 0, got (%d, %d)", w, h)
	}
	return uint(w), uint(h), nil
}

type colorFlag []float32

func (c *colorFlag) String() string {
	if c == nil {
		return ""
	}
	parts := make([]string, 0, len(*c))
	for _, v := range *c {
		parts = append(parts, strconv.FormatFloat(float64(v), 'g', -1, 32))
	}
	return strings.Join(parts, ",")
}

func (c *colorFlag) Set(value string) error {
	parts := strings.Split(value, ",")
	values := make([]float32, 0, len(parts))
	for _, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 32)
		if err != nil {
			return fmt.Errorf("invalid color component %q", p)
		}
		values = append(values, float32(v))
	}
	*c = values
	return nil
}
