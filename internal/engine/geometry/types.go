// Package geometry holds the CPU-side vertex and instance types shared by the
// renderer, plus generators for the primitive meshes the viewer draws.
package geometry

import (
	"unsafe"

	"github.com/Faultbox/qterrain/pkg/math"
)

// Vertex is the interleaved layout uploaded to every mesh VBO.
type Vertex struct {
	Position [3]float32
	Normal   [3]float32
	TexCoord [2]float32
}

// Instance is one row of an instance buffer.
type Instance struct {
	Position [3]float32
	Scale    float32
	Rotation float32 // radians around Y
	Color    [3]float32
}

// Geometry is a triangle list. Empty Indices means non-indexed drawing.
type Geometry struct {
	Vertices []Vertex
	Indices  []uint32
}

// Bounds is an axis-aligned bounding box.
type Bounds struct {
	Min [3]float32
	Max [3]float32
}

// Attrib describes one float vertex attribute inside an interleaved buffer.
type Attrib struct {
	Location   uint32
	Components int32
	Offset     uintptr
	Divisor    uint32
}

// VertexStride and InstanceStride are the byte sizes of one buffer element.
var (
	VertexStride   = int32(unsafe.Sizeof(Vertex{}))
	InstanceStride = int32(unsafe.Sizeof(Instance{}))
)

// VertexLayout binds Vertex fields to shader locations 0..2.
var VertexLayout = []Attrib{
	{Location: 0, Components: 3, Offset: unsafe.Offsetof(Vertex{}.Position)},
	{Location: 1, Components: 3, Offset: unsafe.Offsetof(Vertex{}.Normal)},
	{Location: 2, Components: 2, Offset: unsafe.Offsetof(Vertex{}.TexCoord)},
}

// InstanceLayout binds Instance fields to shader locations 3..6, advanced once
// per instance.
var InstanceLayout = []Attrib{
	{Location: 3, Components: 3, Offset: unsafe.Offsetof(Instance{}.Position), Divisor: 1},
	{Location: 4, Components: 1, Offset: unsafe.Offsetof(Instance{}.Scale), Divisor: 1},
	{Location: 5, Components: 1, Offset: unsafe.Offsetof(Instance{}.Rotation), Divisor: 1},
	{Location: 6, Components: 3, Offset: unsafe.Offsetof(Instance{}.Color), Divisor: 1},
}

// IsEmpty reports whether there is nothing to draw. A nil geometry is empty.
func (g *Geometry) IsEmpty() bool {
	return g == nil || len(g.Vertices) == 0
}

// TriangleCount returns the number of triangles described by g.
func (g *Geometry) TriangleCount() int {
	if len(g.Indices) > 0 {
		return len(g.Indices) / 3
	}
	return len(g.Vertices) / 3
}

// Bounds computes the bounding box of all vertex positions.
func (g *Geometry) Bounds() Bounds {
	b := Bounds{
		Min: [3]float32{1e30, 1e30, 1e30},
		Max: [3]float32{-1e30, -1e30, -1e30},
	}
	for i := range g.Vertices {
		p := g.Vertices[i].Position
		for k := 0; k < 3; k++ {
			b.Min[k] = min(b.Min[k], p[k])
			b.Max[k] = max(b.Max[k], p[k])
		}
	}
	return b
}

// ComputeNormals recomputes smooth vertex normals by accumulating the
// (area weighted) face normal of every triangle and normalizing.
// Vertices not referenced by any triangle keep a zero normal.
func ComputeNormals(g *Geometry) {
	for i := range g.Vertices {
		g.Vertices[i].Normal = [3]float32{}
	}

	tri := func(a, b, c uint32) {
		pa := math.FromArray(g.Vertices[a].Position)
		pb := math.FromArray(g.Vertices[b].Position)
		pc := math.FromArray(g.Vertices[c].Position)
		n := pb.Sub(pa).Cross(pc.Sub(pa))
		for _, idx := range [3]uint32{a, b, c} {
			v := &g.Vertices[idx]
			v.Normal[0] += n.X
			v.Normal[1] += n.Y
			v.Normal[2] += n.Z
		}
	}

	if len(g.Indices) > 0 {
		for i := 0; i+2 < len(g.Indices); i += 3 {
			tri(g.Indices[i], g.Indices[i+1], g.Indices[i+2])
		}
	} else {
		for i := 0; i+2 < len(g.Vertices); i += 3 {
			tri(uint32(i), uint32(i+1), uint32(i+2))
		}
	}

	for i := range g.Vertices {
		g.Vertices[i].Normal = math.FromArray(g.Vertices[i].Normal).Normalize().Array()
	}
}

// appendQuad appends four vertices sharing normal n and the two triangles
// (s, s+1, s+2) and (s, s+2, s+3).
func (g *Geometry) appendQuad(p [4]math.Vec3, n math.Vec3) {
	s := uint32(len(g.Vertices))
	uvs := [4][2]float32{{0, 0}, {1, 0}, {1, 1}, {0, 1}}
	for i := range p {
		g.Vertices = append(g.Vertices, Vertex{Position: p[i].Array(), Normal: n.Array(), TexCoord: uvs[i]})
	}
	g.Indices = append(g.Indices, s, s+1, s+2, s, s+2, s+3)
}
