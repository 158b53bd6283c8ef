// Command shaderbox renders a full-screen fragment shader in a window.
//
// Usage:
//
//	devbox shell
//	go run ./cmd/shaderbox/
//	go run ./cmd/shaderbox/ -frag shaders/shader.frag -verbose
//	go run ./cmd/shaderbox/ -snapshot out.png -frames 3
//
// The shader pair receives the uniforms `time` (seconds since the render loop started)
// and `aspect` (framebuffer width / height), and the vertex attributes
// `in_pos` (vec3) and `in_uv` (vec2).
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/go-theft-auto/shaderbox"
	"github.com/go-theft-auto/shaderbox/backend/opengl"
)

func init() {
	// GLFW must run on the main thread.
	runtime.LockOSThread()
}

func main() {
	if err := run(); err != nil {
		var unavailable *shaderbox.ContextUnavailableError
		if errors.As(err, &unavailable) {
			fmt.Fprintln(os.Stderr, "Unable to initialize OpenGL. Your system may not support it.")
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

type options struct {
	configPath string
	vertex     string
	fragment   string
	width      int
	height     int
	verbose    bool
	snapshot   string
	frames     uint64
}

func parseFlags() options {
	var o options
	flag.StringVar(&o.configPath, "config", "", "path to a YAML config file")
	flag.StringVar(&o.vertex, "vert", "", "vertex shader path or URL (overrides config)")
	flag.StringVar(&o.fragment, "frag", "", "fragment shader path or URL (overrides config)")
	flag.IntVar(&o.width, "width", 0, "window width (overrides config)")
	flag.IntVar(&o.height, "height", 0, "window height (overrides config)")
	flag.BoolVar(&o.verbose, "verbose", false, "enable debug logging")
	flag.StringVar(&o.snapshot, "snapshot", "", "render -frames frames hidden and save the framebuffer (.png or .jpg)")
	flag.Uint64Var(&o.frames, "frames", 2, "frames to render before a snapshot")
	flag.Parse()
	return o
}

func loadConfig(o options) (shaderbox.Config, error) {
	cfg := shaderbox.DefaultConfig()
	if o.configPath != "" {
		var err error
		if cfg, err = shaderbox.LoadConfig(o.configPath); err != nil {
			return cfg, err
		}
	}
	if o.vertex != "" {
		cfg.Shaders.Vertex = o.vertex
	}
	if o.fragment != "" {
		cfg.Shaders.Fragment = o.fragment
	}
	if o.width > 0 {
		cfg.Window.Width = o.width
	}
	if o.height > 0 {
		cfg.Window.Height = o.height
	}
	if o.verbose {
		cfg.Verbose = true
	}
	if o.snapshot != "" {
		hidden := false
		cfg.Window.Visible = &hidden
	}
	return cfg, cfg.Validate()
}

func run() error {
	o := parseFlags()
	cfg, err := loadConfig(o)
	if err != nil {
		return err
	}
	shaderbox.SetVerbose(cfg.Verbose)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	window, err := opengl.OpenWindow(cfg.Window)
	if err != nil {
		return err
	}
	defer window.Close()

	dev := opengl.NewDevice()
	defer dev.Delete()

	rc := shaderbox.NewRendererContext(dev)
	width, height := window.FramebufferSize()
	if err := rc.Setup(ctx, cfg.Shaders, width, height, cfg.ClearColor); err != nil {
		return fmt.Errorf("renderer setup: %w", err)
	}
	defer rc.Close()
	window.SetResizeHandler(rc.Resize)

	var loopOpts []shaderbox.LoopOption
	if o.snapshot != "" {
		loopOpts = append(loopOpts, shaderbox.WithMaxFrames(max(o.frames, 1)))
	}
	loop := shaderbox.NewLoop(rc, window, loopOpts...)
	if err := loop.Run(ctx); err != nil {
		return fmt.Errorf("render loop: %w", err)
	}

	if o.snapshot != "" {
		vp := rc.Surface().Viewport()
		img := opengl.Capture(vp.Width, vp.Height)
		if err := opengl.SaveImage(img, o.snapshot); err != nil {
			return fmt.Errorf("snapshot: %w", err)
		}
		fmt.Printf("  %s (%dx%d, %d frames)\n", o.snapshot, vp.Width, vp.Height, loop.Frames())
	}
	return nil
}
