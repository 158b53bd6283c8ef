package shaderbox

// Viewport is the pixel extent of the drawable surface.
type Viewport struct {
	Width  int
	Height int
	Aspect float32
}

// Surface tracks the drawable's size and keeps the aspect uniform and the
// backend viewport in step with it.
type Surface struct {
	dev     Device
	program *Program
	vp      Viewport
	sized   bool
}

// NewSurface creates a surface that pushes aspect changes into program.
// The program may be nil, in which case only the viewport is applied.
func NewSurface(dev Device, program *Program) *Surface {
	return &Surface{dev: dev, program: program}
}

// Resize applies new pixel dimensions. Dimensions below 1 are clamped to 1.
// The aspect uniform is written before Resize returns, so the next frame
// never sees a stale value. Returns false if nothing changed.
func (s *Surface) Resize(width, height int) bool {
	width = max(width, 1)
	height = max(height, 1)
	if s.sized && s.vp.Width == width && s.vp.Height == height {
		return false
	}

	s.vp = Viewport{
		Width:  width,
		Height: height,
		Aspect: float32(width) / float32(height),
	}
	s.sized = true

	if s.program != nil {
		s.program.SetFloat(s.dev, UniformAspect, s.vp.Aspect)
	}
	s.dev.Viewport(0, 0, int32(width), int32(height))

	defaultLogger.Debug("surface resized", "width", width, "height", height, "aspect", s.vp.Aspect)
	return true
}

// Viewport returns the most recently applied viewport.
func (s *Surface) Viewport() Viewport {
	return s.vp
}
