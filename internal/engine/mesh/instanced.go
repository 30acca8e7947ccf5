package mesh

import (
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/Faultbox/qterrain/internal/engine/geometry"
	"github.com/Faultbox/qterrain/internal/engine/shader"
)

// InstancedMesh draws a shared base mesh once per Instance.
type InstancedMesh struct {
	base  *SharedMesh
	vao   uint32
	ibo   uint32
	count int
}

// Create uploads instances for base, replacing any previous set. An empty
// instance list leaves the mesh inactive.
func (im *InstancedMesh) Create(base *SharedMesh, instances []geometry.Instance) error {
	b := base.Mesh()
	if !b.IsActive() {
		return ErrInactive
	}
	im.Destroy()
	if len(instances) == 0 {
		return nil
	}

	im.base = base.Acquire()

	gl.GenVertexArrays(1, &im.vao)
	gl.BindVertexArray(im.vao)

	gl.BindBuffer(gl.ARRAY_BUFFER, b.vbo)
	configureAttribs(geometry.VertexLayout, geometry.VertexStride)
	if b.ebo != 0 {
		gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, b.ebo)
	}

	gl.GenBuffers(1, &im.ibo)
	gl.BindBuffer(gl.ARRAY_BUFFER, im.ibo)
	gl.BufferData(gl.ARRAY_BUFFER, len(instances)*int(geometry.InstanceStride), unsafe.Pointer(&instances[0]), gl.STATIC_DRAW)
	configureAttribs(geometry.InstanceLayout, geometry.InstanceStride)

	gl.BindVertexArray(0)
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)

	im.count = len(instances)
	return nil
}

// IsActive reports whether there is something to draw.
func (im *InstancedMesh) IsActive() bool {
	return im != nil && im.vao != 0 && im.count > 0 && im.base.Mesh().IsActive()
}

// Count returns the number of instances.
func (im *InstancedMesh) Count() int { return im.count }

// Draw renders every instance with p, which must already be in use. The
// has_instances uniform is raised for the draw and lowered afterwards.
func (im *InstancedMesh) Draw(p *shader.Program) {
	if !im.IsActive() {
		return
	}
	b := im.base.Mesh()
	p.SetBool("has_instances", true)
	gl.BindVertexArray(im.vao)
	if b.ebo != 0 {
		gl.DrawElementsInstanced(gl.TRIANGLES, int32(b.indexCount), gl.UNSIGNED_INT, nil, int32(im.count))
	} else {
		gl.DrawArraysInstanced(gl.TRIANGLES, 0, int32(b.vertexCount), int32(im.count))
	}
	gl.BindVertexArray(0)
	p.SetBool("has_instances", false)
}

// Destroy releases the instance buffer and the reference on the base mesh.
func (im *InstancedMesh) Destroy() {
	if im.vao != 0 {
		gl.DeleteVertexArrays(1, &im.vao)
		im.vao = 0
	}
	if im.ibo != 0 {
		gl.DeleteBuffers(1, &im.ibo)
		im.ibo = 0
	}
	if im.base != nil {
		im.base.Release()
		im.base = nil
	}
	im.count = 0
}
