// Package mesh owns vertex and index buffers on the GPU: plain meshes,
// reference counted shared meshes and instanced draws of a shared mesh.
package mesh

import (
	"errors"
	"fmt"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/Faultbox/qterrain/internal/engine/geometry"
)

var (
	// ErrInactive is returned when operating on a mesh without GPU storage.
	ErrInactive = errors.New("mesh: not active")
	// ErrCapacity is returned when an in-place update would overflow the buffer.
	ErrCapacity = errors.New("mesh: update exceeds buffer capacity")
)

type createOptions struct {
	retainCPU bool
	vertexMap []int32
}

// CreateOption configures Create.
type CreateOption func(*createOptions)

// RetainCPU keeps a copy of the vertices for later Reupload.
func RetainCPU() CreateOption {
	return func(o *createOptions) { o.retainCPU = true }
}

// WithVertexMap stores a grid-to-vertex mapping alongside the mesh.
func WithVertexMap(m []int32) CreateOption {
	return func(o *createOptions) { o.vertexMap = m }
}

// Mesh is one vertex buffer plus an optional index buffer.
type Mesh struct {
	vao uint32
	vbo uint32
	ebo uint32

	vertexCount int
	indexCount  int
	capacity    int

	cpu       []geometry.Vertex
	vertexMap []int32
}

// Create uploads g, replacing whatever the mesh held. Empty geometry leaves
// the mesh inactive. Invalid geometry is rejected and the mesh is kept.
func (m *Mesh) Create(g geometry.Geometry, opts ...CreateOption) error {
	if err := checkIndices(g); err != nil {
		return err
	}
	m.Destroy()

	var o createOptions
	for _, opt := range opts {
		opt(&o)
	}
	if len(g.Vertices) == 0 {
		return nil
	}

	usage := uint32(gl.STATIC_DRAW)
	if o.retainCPU {
		usage = gl.DYNAMIC_DRAW
	}

	gl.GenVertexArrays(1, &m.vao)
	gl.BindVertexArray(m.vao)

	gl.GenBuffers(1, &m.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, m.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(g.Vertices)*int(geometry.VertexStride), unsafe.Pointer(&g.Vertices[0]), usage)
	configureAttribs(geometry.VertexLayout, geometry.VertexStride)

	if len(g.Indices) > 0 {
		gl.GenBuffers(1, &m.ebo)
		gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, m.ebo)
		gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(g.Indices)*4, unsafe.Pointer(&g.Indices[0]), gl.STATIC_DRAW)
	}

	gl.BindVertexArray(0)
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)

	m.vertexCount = len(g.Vertices)
	m.indexCount = len(g.Indices)
	m.capacity = len(g.Vertices)
	if o.retainCPU {
		m.cpu = append([]geometry.Vertex(nil), g.Vertices...)
	}
	m.vertexMap = o.vertexMap
	return nil
}

func configureAttribs(layout []geometry.Attrib, stride int32) {
	for _, a := range layout {
		gl.EnableVertexAttribArray(a.Location)
		gl.VertexAttribPointerWithOffset(a.Location, a.Components, gl.FLOAT, false, stride, a.Offset)
		gl.VertexAttribDivisor(a.Location, a.Divisor)
	}
}

// IsActive reports whether the mesh has GPU storage.
func (m *Mesh) IsActive() bool {
	return m != nil && m.vao != 0 && m.vbo != 0
}

// VertexCount returns the number of uploaded vertices.
func (m *Mesh) VertexCount() int { return m.vertexCount }

// IndexCount returns the number of uploaded indices, 0 for array draws.
func (m *Mesh) IndexCount() int { return m.indexCount }

// CPUVertices returns the retained vertex copy, nil without RetainCPU.
func (m *Mesh) CPUVertices() []geometry.Vertex { return m.cpu }

// VertexMap returns the mapping passed with WithVertexMap.
func (m *Mesh) VertexMap() []int32 { return m.vertexMap }

// Draw issues the draw call for the whole mesh.
func (m *Mesh) Draw() {
	if !m.IsActive() {
		return
	}
	gl.BindVertexArray(m.vao)
	if m.ebo != 0 {
		gl.DrawElements(gl.TRIANGLES, int32(m.indexCount), gl.UNSIGNED_INT, nil)
	} else {
		gl.DrawArrays(gl.TRIANGLES, 0, int32(m.vertexCount))
	}
	gl.BindVertexArray(0)
}

// UpdateVertices overwrites the start of the vertex buffer in place. The
// retained copy, if any, is updated too.
func (m *Mesh) UpdateVertices(v []geometry.Vertex) error {
	if !m.IsActive() {
		return ErrInactive
	}
	if err := checkCapacity(len(v), m.capacity); err != nil {
		return err
	}
	if len(v) == 0 {
		return nil
	}
	gl.BindBuffer(gl.ARRAY_BUFFER, m.vbo)
	gl.BufferSubData(gl.ARRAY_BUFFER, 0, len(v)*int(geometry.VertexStride), unsafe.Pointer(&v[0]))
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)

	if m.cpu != nil {
		copy(m.cpu, v)
	}
	return nil
}

// Reupload pushes the retained copy back to the GPU, e.g. after editing it
// through CPUVertices.
func (m *Mesh) Reupload() error {
	if m.cpu == nil {
		return fmt.Errorf("mesh: no retained vertices: %w", ErrInactive)
	}
	return m.UpdateVertices(m.cpu)
}

func checkIndices(g geometry.Geometry) error {
	for _, idx := range g.Indices {
		if int(idx) >= len(g.Vertices) {
			return fmt.Errorf("mesh: index %d out of range for %d vertices", idx, len(g.Vertices))
		}
	}
	return nil
}

func checkCapacity(n, capacity int) error {
	if n > capacity {
		return fmt.Errorf("%w: %d vertices, room for %d", ErrCapacity, n, capacity)
	}
	return nil
}

// Destroy releases GPU storage and CPU state. Safe on an inactive mesh.
func (m *Mesh) Destroy() {
	if m.vao != 0 {
		gl.DeleteVertexArrays(1, &m.vao)
		m.vao = 0
	}
	if m.vbo != 0 {
		gl.DeleteBuffers(1, &m.vbo)
		m.vbo = 0
	}
	if m.ebo != 0 {
		gl.DeleteBuffers(1, &m.ebo)
		m.ebo = 0
	}
	m.vertexCount, m.indexCount, m.capacity = 0, 0, 0
	m.cpu = nil
	m.vertexMap = nil
}
