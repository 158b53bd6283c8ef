package shaderbox

import (
	"context"
	"fmt"
	"log/slog"
)

// RendererContext owns the backend device, the current program, the quad
// geometry and the surface. Everything the renderer touches hangs off it;
// there is no package-level GPU state.
type RendererContext struct {
	dev     Device
	loader  *Loader
	logger  *slog.Logger
	current *Program
	geom    *GeometryBuffer
	surface *Surface
}

// ContextOption configures a RendererContext.
type ContextOption func(*RendererContext)

// WithLoader sets the shader source loader. Nil selects a zero Loader.
func WithLoader(l *Loader) ContextOption {
	return func(rc *RendererContext) {
		if l == nil {
			l = &Loader{}
		}
		rc.loader = l
	}
}

// WithContextLogger sets the logger used during setup.
func WithContextLogger(l *slog.Logger) ContextOption {
	return func(rc *RendererContext) { rc.logger = l }
}

// NewRendererContext creates a context bound to dev. Call Setup before use.
func NewRendererContext(dev Device, opts ...ContextOption) *RendererContext {
	rc := &RendererContext{
		dev:    dev,
		loader: &Loader{},
		logger: defaultLogger,
	}
	for _, opt := range opts {
		opt(rc)
	}
	rc.surface = NewSurface(dev, nil)
	return rc
}

// Setup loads, compiles and links the shader pair, uploads the quad, binds
// its layout and sizes the surface. Any error leaves the context unusable
// and no frame must be rendered. Calling Setup again first releases the
// program and buffer of the previous call.
func (rc *RendererContext) Setup(ctx context.Context, shaders ShaderConfig, width, height int, clear [4]float32) error {
	rc.Close()

	loader := rc.loader
	if shaders.Root != "" {
		l := *loader
		l.Root = shaders.Root
		loader = &l
	}

	vertSrc, fragSrc, err := loader.LoadPair(ctx, shaders.Vertex, shaders.Fragment)
	if err != nil {
		return err
	}

	vs, err := Compile(rc.dev, vertSrc, VertexStage)
	if err != nil {
		return err
	}
	fs, err := Compile(rc.dev, fragSrc, FragmentStage)
	if err != nil {
		vs.release(rc.dev)
		return err
	}

	program, err := Link(rc.dev, vs, fs)
	if err != nil {
		return err
	}
	rc.use(program)

	geom, err := UploadGeometry(rc.dev, QuadVertices[:])
	if err != nil {
		program.Delete(rc.dev)
		rc.current = nil
		return err
	}
	geom.BindLayout(rc.dev, program)
	rc.geom = geom

	rc.surface = NewSurface(rc.dev, program)
	rc.surface.Resize(width, height)
	rc.dev.ClearColor(clear[0], clear[1], clear[2], clear[3])

	if err := rc.dev.Err(); err != nil {
		rc.Close()
		return fmt.Errorf("renderer setup: %w", err)
	}

	rc.logger.Info("renderer ready",
		"vertex", shaders.Vertex,
		"fragment", shaders.Fragment,
		"width", rc.surface.Viewport().Width,
		"height", rc.surface.Viewport().Height,
	)
	return nil
}

// use makes p the program for subsequent draws.
func (rc *RendererContext) use(p *Program) {
	rc.dev.UseProgram(p.Handle)
	rc.current = p
}

// Resize is the host's resize callback.
func (rc *RendererContext) Resize(width, height int) {
	rc.surface.Resize(width, height)
}

// Program returns the current program, or nil before Setup.
func (rc *RendererContext) Program() *Program {
	return rc.current
}

// Surface returns the drawable surface.
func (rc *RendererContext) Surface() *Surface {
	return rc.surface
}

// Device returns the backend device.
func (rc *RendererContext) Device() Device {
	return rc.dev
}

// Ready reports whether Setup completed.
func (rc *RendererContext) Ready() bool {
	return rc.current != nil && rc.geom != nil
}

// Close releases the program and the vertex buffer.
func (rc *RendererContext) Close() {
	if rc.geom != nil {
		rc.geom.Delete(rc.dev)
		rc.geom = nil
	}
	if rc.current != nil {
		rc.current.Delete(rc.dev)
		rc.current = nil
	}
}
