package shaderbox

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the on-disk renderer configuration.
type Config struct {
	Window     WindowConfig `yaml:"window"`
	Shaders    ShaderConfig `yaml:"shaders"`
	ClearColor [4]float32   `yaml:"clear_color"`
	Verbose    bool         `yaml:"verbose"`
}

// WindowConfig describes the host window.
type WindowConfig struct {
	Width   int    `yaml:"width"`
	Height  int    `yaml:"height"`
	Title   string `yaml:"title"`
	VSync   bool   `yaml:"vsync"`
	Visible *bool  `yaml:"visible"` // pointer to distinguish unset vs false
}

// ShaderConfig names the two shader sources. Paths may be URLs.
type ShaderConfig struct {
	Root     string `yaml:"root"`
	Vertex   string `yaml:"vertex"`
	Fragment string `yaml:"fragment"`
}

// DefaultConfig returns the built-in configuration.
func DefaultConfig() Config {
	return Config{
		Window: WindowConfig{
			Width:  800,
			Height: 600,
			Title:  "shaderbox",
			VSync:  true,
		},
		Shaders: ShaderConfig{
			Vertex:   "shaders/shader.vert",
			Fragment: "shaders/shader.frag",
		},
		ClearColor: [4]float32{0, 0, 0, 1},
	}
}

// IsVisible reports whether the window should be shown. Unset means visible.
func (w WindowConfig) IsVisible() bool {
	return w.Visible == nil || *w.Visible
}

// LoadConfig reads path and overlays it on DefaultConfig.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks the fields Setup depends on.
func (c Config) Validate() error {
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("window size must be positive, got %dx%d", c.Window.Width, c.Window.Height)
	}
	if c.Shaders.Vertex == "" || c.Shaders.Fragment == "" {
		return fmt.Errorf("both vertex and fragment shader paths are required")
	}
	return nil
}
