package shaderbox

// Device is the graphics backend used by the renderer.
// All methods must be called from the goroutine that owns the context.
type Device interface {
	// CompileShader compiles one stage. On failure it returns ok=false along
	// with the backend's info log; the shader object is still returned so the
	// caller can release it.
	CompileShader(kind StageKind, source string) (handle uint32, log string, ok bool)
	DeleteShader(handle uint32)

	// LinkProgram links two compiled stages. Semantics mirror CompileShader.
	LinkProgram(vertex, fragment uint32) (handle uint32, log string, ok bool)
	DeleteProgram(handle uint32)
	UseProgram(handle uint32)

	// AttribLocation and UniformLocation return -1 when the name is not active.
	AttribLocation(program uint32, name string) int32
	UniformLocation(program uint32, name string) int32

	// CreateStaticBuffer uploads vertex data once with static usage.
	CreateStaticBuffer(data []float32) (uint32, error)
	DeleteBuffer(handle uint32)
	// VertexAttrib binds a float attribute of size components at a byte
	// offset within stride and enables the stream.
	VertexAttrib(buffer uint32, location uint32, size, stride int32, offset uintptr)

	// Uniform1f writes a float uniform of program, whether or not it is the
	// program in use.
	Uniform1f(program uint32, location int32, v float32)
	Viewport(x, y, width, height int32)
	ClearColor(r, g, b, a float32)
	// Clear clears the color and depth buffers.
	Clear()
	DrawTriangleStrip(first, count int32)

	// Err returns the first pending backend error, if any.
	Err() error
}
