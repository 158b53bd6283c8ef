// Package opengl provides an OpenGL 4.1 backend for shaderbox.
package opengl

import (
	"fmt"
	"strings"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/go-theft-auto/shaderbox"
)

// GL_CONTEXT_LOST (GL 4.5 / KHR_robustness); not exported by the 4.1 bindings.
// Only reported when the context was created with LoseContextOnReset.
const glContextLost = 0x0507

// Device implements shaderbox.Device using OpenGL.
// The GL context must be current on the calling thread.
type Device struct {
	vao uint32
}

var _ shaderbox.Device = (*Device)(nil)

// NewDevice creates the device and binds the vertex array object the core
// profile requires for any attribute setup.
func NewDevice() *Device {
	d := &Device{}
	gl.GenVertexArrays(1, &d.vao)
	gl.BindVertexArray(d.vao)
	return d
}

// CompileShader compiles a single stage.
func (d *Device) CompileShader(kind shaderbox.StageKind, source string) (uint32, string, bool) {
	var shaderType uint32 = gl.VERTEX_SHADER
	if kind == shaderbox.FragmentStage {
		shaderType = gl.FRAGMENT_SHADER
	}

	shader := gl.CreateShader(shaderType)
	if shader == 0 {
		return 0, "glCreateShader returned 0", false
	}
	csource, free := gl.Strs(source + "\x00")
	gl.ShaderSource(shader, 1, csource, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLength)
		return shader, infoLog(logLength, func(n int32, buf *uint8) {
			gl.GetShaderInfoLog(shader, n, nil, buf)
		}), false
	}
	return shader, "", true
}

// DeleteShader releases a shader object.
func (d *Device) DeleteShader(handle uint32) {
	gl.DeleteShader(handle)
}

// LinkProgram links two compiled stages.
func (d *Device) LinkProgram(vertex, fragment uint32) (uint32, string, bool) {
	program := gl.CreateProgram()
	if program == 0 {
		return 0, "glCreateProgram returned 0", false
	}
	gl.AttachShader(program, vertex)
	gl.AttachShader(program, fragment)
	gl.LinkProgram(program)

	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLength)
		return program, infoLog(logLength, func(n int32, buf *uint8) {
			gl.GetProgramInfoLog(program, n, nil, buf)
		}), false
	}

	// Stages stay alive until deleted, detach so DeleteShader frees them.
	gl.DetachShader(program, vertex)
	gl.DetachShader(program, fragment)
	return program, "", true
}

// DeleteProgram releases a program object.
func (d *Device) DeleteProgram(handle uint32) {
	gl.DeleteProgram(handle)
}

// UseProgram makes handle the program for subsequent draws.
func (d *Device) UseProgram(handle uint32) {
	gl.UseProgram(handle)
}

// AttribLocation returns the attribute location, or -1.
func (d *Device) AttribLocation(program uint32, name string) int32 {
	return gl.GetAttribLocation(program, gl.Str(name+"\x00"))
}

// UniformLocation returns the uniform location, or -1.
func (d *Device) UniformLocation(program uint32, name string) int32 {
	return gl.GetUniformLocation(program, gl.Str(name+"\x00"))
}

// CreateStaticBuffer uploads data into a new GL_STATIC_DRAW array buffer.
func (d *Device) CreateStaticBuffer(data []float32) (uint32, error) {
	if len(data) == 0 {
		return 0, fmt.Errorf("empty vertex data")
	}
	var vbo uint32
	gl.GenBuffers(1, &vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(data)*4, gl.Ptr(data), gl.STATIC_DRAW)
	if err := d.Err(); err != nil {
		gl.DeleteBuffers(1, &vbo)
		return 0, err
	}
	return vbo, nil
}

// DeleteBuffer releases a buffer object.
func (d *Device) DeleteBuffer(handle uint32) {
	gl.DeleteBuffers(1, &handle)
}

// VertexAttrib describes a float attribute stream within buffer and enables it.
func (d *Device) VertexAttrib(buffer uint32, location uint32, size, stride int32, offset uintptr) {
	gl.BindVertexArray(d.vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, buffer)
	gl.VertexAttribPointerWithOffset(location, size, gl.FLOAT, false, stride, offset)
	gl.EnableVertexAttribArray(location)
}

// Uniform1f writes a float uniform of program without binding it.
func (d *Device) Uniform1f(program uint32, location int32, v float32) {
	gl.ProgramUniform1f(program, location, v)
}

// Viewport sets the viewport transform.
func (d *Device) Viewport(x, y, width, height int32) {
	gl.Viewport(x, y, width, height)
}

// ClearColor sets the clear color.
func (d *Device) ClearColor(r, g, b, a float32) {
	gl.ClearColor(r, g, b, a)
}

// Clear clears color and depth.
func (d *Device) Clear() {
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
}

// DrawTriangleStrip draws count vertices as a triangle strip.
func (d *Device) DrawTriangleStrip(first, count int32) {
	gl.BindVertexArray(d.vao)
	gl.DrawArrays(gl.TRIANGLE_STRIP, first, count)
}

// Err drains the GL error queue and reports the first error.
func (d *Device) Err() error {
	var first uint32
	for i := 0; i < 16; i++ {
		code := gl.GetError()
		if code == gl.NO_ERROR {
			break
		}
		if code == glContextLost {
			return shaderbox.ErrContextLost
		}
		if first == 0 {
			first = code
		}
	}
	if first == 0 {
		return nil
	}
	return GLError(first)
}

// Delete releases the vertex array object.
func (d *Device) Delete() {
	if d.vao != 0 {
		gl.DeleteVertexArrays(1, &d.vao)
		d.vao = 0
	}
}

// GLError is a raw glGetError code.
type GLError uint32

func (e GLError) Error() string {
	switch uint32(e) {
	case gl.INVALID_ENUM:
		return "GL_INVALID_ENUM"
	case gl.INVALID_VALUE:
		return "GL_INVALID_VALUE"
	case gl.INVALID_OPERATION:
		return "GL_INVALID_OPERATION"
	case gl.INVALID_FRAMEBUFFER_OPERATION:
		return "GL_INVALID_FRAMEBUFFER_OPERATION"
	case gl.OUT_OF_MEMORY:
		return "GL_OUT_OF_MEMORY"
	default:
		return fmt.Sprintf("GL error 0x%04X", uint32(e))
	}
}

// infoLog reads a shader or program info log of the given length.
func infoLog(length int32, read func(n int32, buf *uint8)) string {
	if length <= 0 {
		return ""
	}
	log := make([]byte, length+1)
	read(length, &log[0])
	return strings.TrimRight(string(log), "\x00\n")
}
