package opengl

import (
	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/go-theft-auto/shaderbox"
)

// Window is a GLFW window with a current OpenGL 4.1 core context.
// It implements shaderbox.Host. GLFW must be driven from the main thread.
type Window struct {
	window   *glfw.Window
	onResize func(width, height int)
}

var _ shaderbox.Host = (*Window)(nil)

// OpenWindow initializes GLFW and GL and creates the window. Any failure is
// reported as *shaderbox.ContextUnavailableError.
func OpenWindow(cfg shaderbox.WindowConfig) (*Window, error) {
	if err := glfw.Init(); err != nil {
		return nil, &shaderbox.ContextUnavailableError{Reason: "glfw init", Err: err}
	}

	for _, h := range windowHints(cfg) {
		glfw.WindowHint(h.hint, h.value)
	}

	window, err := glfw.CreateWindow(cfg.Width, cfg.Height, cfg.Title, nil, nil)
	if err != nil {
		glfw.Terminate()
		return nil, &shaderbox.ContextUnavailableError{Reason: "create window", Err: err}
	}
	window.MakeContextCurrent()
	if cfg.VSync {
		glfw.SwapInterval(1)
	} else {
		glfw.SwapInterval(0)
	}

	if err := gl.Init(); err != nil {
		window.Destroy()
		glfw.Terminate()
		return nil, &shaderbox.ContextUnavailableError{Reason: "gl init", Err: err}
	}

	w := &Window{window: window}
	window.SetFramebufferSizeCallback(w.framebufferSizeCallback)

	shaderbox.Logger().Debug("window opened",
		"title", cfg.Title,
		"gl_version", gl.GoStr(gl.GetString(gl.VERSION)),
		"renderer", gl.GoStr(gl.GetString(gl.RENDERER)),
	)
	return w, nil
}

type windowHint struct {
	hint  glfw.Hint
	value int
}

// windowHints requests a 4.1 core context. LoseContextOnReset makes a GPU
// reset surface as GL_CONTEXT_LOST from glGetError, which Device.Err reports
// as ErrContextLost. Drivers without robustness support ignore the hint.
func windowHints(cfg shaderbox.WindowConfig) []windowHint {
	hints := []windowHint{
		{glfw.ContextVersionMajor, 4},
		{glfw.ContextVersionMinor, 1},
		{glfw.OpenGLProfile, glfw.OpenGLCoreProfile},
		{glfw.OpenGLForwardCompatible, glfw.True},
		{glfw.ContextRobustness, glfw.LoseContextOnReset},
	}
	if !cfg.IsVisible() {
		hints = append(hints, windowHint{glfw.Visible, glfw.False})
	}
	return hints
}

// SetResizeHandler registers fn for framebuffer size changes. It runs inside
// NextFrame on the render thread.
func (w *Window) SetResizeHandler(fn func(width, height int)) {
	w.onResize = fn
}

// FramebufferSize returns the drawable size in pixels.
func (w *Window) FramebufferSize() (int, int) {
	return w.window.GetFramebufferSize()
}

// NextFrame presents the frame, pumps events and reports whether the window
// is still open. With vsync enabled SwapBuffers blocks until the next refresh.
func (w *Window) NextFrame() bool {
	w.window.SwapBuffers()
	glfw.PollEvents()
	return !w.window.ShouldClose()
}

// Close destroys the window and terminates GLFW.
func (w *Window) Close() {
	w.window.Destroy()
	glfw.Terminate()
}

func (w *Window) framebufferSizeCallback(_ *glfw.Window, width, height int) {
	if w.onResize != nil {
		w.onResize(width, height)
	}
}
