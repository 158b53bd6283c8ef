package shaderbox

import (
	"fmt"
	"unsafe"

	"github.com/go-gl/mathgl/mgl32"
)

// Vertex is one interleaved quad vertex: position followed by UV.
type Vertex struct {
	Pos mgl32.Vec3
	UV  mgl32.Vec2
}

// Vertex layout: Pos (3 floats) + UV (2 floats).
const (
	VertexStride   = int32(unsafe.Sizeof(Vertex{}))
	PositionOffset = uintptr(unsafe.Offsetof(Vertex{}.Pos))
	UVOffset       = uintptr(unsafe.Offsetof(Vertex{}.UV))
)

// QuadVertices is the full-screen quad in triangle-strip order:
// bottom-left, bottom-right, top-left, top-right.
var QuadVertices = [4]Vertex{
	{Pos: mgl32.Vec3{-1, -1, 0}, UV: mgl32.Vec2{0, 0}},
	{Pos: mgl32.Vec3{1, -1, 0}, UV: mgl32.Vec2{1, 0}},
	{Pos: mgl32.Vec3{-1, 1, 0}, UV: mgl32.Vec2{0, 1}},
	{Pos: mgl32.Vec3{1, 1, 0}, UV: mgl32.Vec2{1, 1}},
}

// GeometryBuffer owns the static vertex buffer and its attribute layout.
type GeometryBuffer struct {
	Handle uint32
	Count  int32
}

// UploadGeometry uploads vertices once with static usage.
func UploadGeometry(dev Device, vertices []Vertex) (*GeometryBuffer, error) {
	data := make([]float32, 0, len(vertices)*5)
	for _, v := range vertices {
		data = append(data, v.Pos[0], v.Pos[1], v.Pos[2], v.UV[0], v.UV[1])
	}
	handle, err := dev.CreateStaticBuffer(data)
	if err != nil {
		return nil, fmt.Errorf("upload vertex buffer: %w", err)
	}
	return &GeometryBuffer{Handle: handle, Count: int32(len(vertices))}, nil
}

// BindLayout wires the buffer's byte layout to the program's attribute
// locations and enables both streams. Attributes the program does not use
// are skipped.
func (b *GeometryBuffer) BindLayout(dev Device, p *Program) {
	if loc := p.AttribLocation(AttribPosition); loc >= 0 {
		dev.VertexAttrib(b.Handle, uint32(loc), 3, VertexStride, PositionOffset)
	}
	if loc := p.AttribLocation(AttribUV); loc >= 0 {
		dev.VertexAttrib(b.Handle, uint32(loc), 2, VertexStride, UVOffset)
	}
}

// Draw issues the single triangle-strip draw call.
func (b *GeometryBuffer) Draw(dev Device) {
	dev.DrawTriangleStrip(0, b.Count)
}

// Delete releases the buffer.
func (b *GeometryBuffer) Delete(dev Device) {
	if b.Handle != 0 {
		dev.DeleteBuffer(b.Handle)
		b.Handle = 0
	}
}
