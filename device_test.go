package shaderbox_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/go-theft-auto/shaderbox"
)

// mockDevice records every call instead of touching a GPU.
// Sources containing "BROKEN" fail to compile.
type mockDevice struct {
	nextHandle uint32

	linkLog  string // non-empty makes LinkProgram fail
	attribs  map[string]int32
	uniforms map[string]int32

	attribLookups  int
	uniformLookups int

	deletedShaders  []uint32
	deletedPrograms []uint32
	deletedBuffers  []uint32
	used            uint32

	buffers   map[uint32][]float32
	bindings  []attribBinding
	writes    map[int32][]float32
	targets   []uint32 // program handle of every uniform write
	viewports [][4]int32
	clears    int
	draws     []int32
	onDraw    func()

	errs      []error // returned by Err, one per call
	bufferErr error
}

type attribBinding struct {
	buffer   uint32
	location uint32
	size     int32
	stride   int32
	offset   uintptr
}

func newMockDevice() *mockDevice {
	return &mockDevice{
		attribs:  map[string]int32{shaderbox.AttribPosition: 0, shaderbox.AttribUV: 1},
		uniforms: map[string]int32{shaderbox.UniformTime: 0, shaderbox.UniformAspect: 1},
		buffers:  make(map[uint32][]float32),
		writes:   make(map[int32][]float32),
	}
}

func (m *mockDevice) handle() uint32 {
	m.nextHandle++
	return m.nextHandle
}

func (m *mockDevice) CompileShader(kind shaderbox.StageKind, source string) (uint32, string, bool) {
	h := m.handle()
	if strings.Contains(source, "BROKEN") {
		return h, "0:1(1): error: syntax error, unexpected IDENTIFIER", false
	}
	return h, "", true
}

func (m *mockDevice) DeleteShader(h uint32) { m.deletedShaders = append(m.deletedShaders, h) }

func (m *mockDevice) LinkProgram(vs, fs uint32) (uint32, string, bool) {
	h := m.handle()
	if m.linkLog != "" {
		return h, m.linkLog, false
	}
	return h, "", true
}

func (m *mockDevice) DeleteProgram(h uint32) { m.deletedPrograms = append(m.deletedPrograms, h) }
func (m *mockDevice) UseProgram(h uint32)    { m.used = h }

func (m *mockDevice) AttribLocation(_ uint32, name string) int32 {
	m.attribLookups++
	if loc, ok := m.attribs[name]; ok {
		return loc
	}
	return -1
}

func (m *mockDevice) UniformLocation(_ uint32, name string) int32 {
	m.uniformLookups++
	if loc, ok := m.uniforms[name]; ok {
		return loc
	}
	return -1
}

func (m *mockDevice) CreateStaticBuffer(data []float32) (uint32, error) {
	if m.bufferErr != nil {
		return 0, m.bufferErr
	}
	h := m.handle()
	m.buffers[h] = append([]float32(nil), data...)
	return h, nil
}

func (m *mockDevice) DeleteBuffer(h uint32) { m.deletedBuffers = append(m.deletedBuffers, h) }

func (m *mockDevice) VertexAttrib(buffer, location uint32, size, stride int32, offset uintptr) {
	m.bindings = append(m.bindings, attribBinding{buffer, location, size, stride, offset})
}

func (m *mockDevice) Uniform1f(program uint32, loc int32, v float32) {
	if loc < 0 {
		panic("Uniform1f called with a missing location")
	}
	m.targets = append(m.targets, program)
	m.writes[loc] = append(m.writes[loc], v)
}

func (m *mockDevice) Viewport(x, y, w, h int32) {
	m.viewports = append(m.viewports, [4]int32{x, y, w, h})
}

func (m *mockDevice) ClearColor(r, g, b, a float32) {}
func (m *mockDevice) Clear()                        { m.clears++ }

func (m *mockDevice) DrawTriangleStrip(first, count int32) {
	m.draws = append(m.draws, count)
	if m.onDraw != nil {
		m.onDraw()
	}
}

func (m *mockDevice) Err() error {
	if len(m.errs) == 0 {
		return nil
	}
	err := m.errs[0]
	m.errs = m.errs[1:]
	return err
}

// lastWrite returns the most recent value written to a named uniform.
func (m *mockDevice) lastWrite(t *testing.T, name string) float32 {
	t.Helper()
	loc, ok := m.uniforms[name]
	if !ok {
		t.Fatalf("uniform %q is not declared by the mock", name)
	}
	vals := m.writes[loc]
	if len(vals) == 0 {
		t.Fatalf("uniform %q was never written", name)
	}
	return vals[len(vals)-1]
}

// mockHost counts frames and optionally runs a hook inside each one, the way
// a real host dispatches window events while presenting.
type mockHost struct {
	calls  int
	limit  int // NextFrame returns false on this call; 0 means never
	onNext func(call int)
}

func (h *mockHost) NextFrame() bool {
	h.calls++
	if h.onNext != nil {
		h.onNext(h.calls)
	}
	return h.limit == 0 || h.calls < h.limit
}

// stepClock advances by step on every Now call.
type stepClock struct {
	now  time.Time
	step time.Duration
}

func (c *stepClock) Now() time.Time {
	t := c.now
	c.now = c.now.Add(c.step)
	return t
}

const (
	testVertexSource = `#version 410 core
in vec3 in_pos;
in vec2 in_uv;
out vec2 uv;
void main() { uv = in_uv; gl_Position = vec4(in_pos, 1.0); }
`
	testFragmentSource = `#version 410 core
uniform float aspect;
out vec4 color;
void main() { color = vec4(aspect, 0.0, 0.0, 1.0); }
`
)

// writeShaders writes a shader pair into a temp dir and returns its config.
func writeShaders(t *testing.T, vert, frag string) shaderbox.ShaderConfig {
	t.Helper()
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "shader.vert"), []byte(vert), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "shader.frag"), []byte(frag), 0o644); err != nil {
		t.Fatal(err)
	}
	return shaderbox.ShaderConfig{Root: dir, Vertex: "shader.vert", Fragment: "shader.frag"}
}
