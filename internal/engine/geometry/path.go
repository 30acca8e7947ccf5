package geometry

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/qterrain/pkg/math"
)

// Path returns a flat ribbon of the given width following points. Fewer than
// two points yield an empty Geometry.
func Path(points []math.Vec3, width float32) Geometry {
	n := len(points)
	if n < 2 {
		return Geometry{}
	}

	g := Geometry{
		Vertices: make([]Vertex, 0, 2*n),
		Indices:  make([]uint32, 0, 6*(n-1)),
	}
	for i, p := range points {
		var tangent math.Vec3
		switch {
		case i == 0:
			tangent = points[1].Sub(p).Normalize()
		case i == n-1:
			tangent = p.Sub(points[i-1]).Normalize()
		default:
			in := p.Sub(points[i-1]).Normalize()
			out := points[i+1].Sub(p).Normalize()
			tangent = in.Add(out).Normalize()
			if tangent == (math.Vec3{}) {
				// hairpin turn
				tangent = out
			}
		}

		side := math.Up.Cross(tangent)
		if side.Length() < 1e-6 {
			side = math.Vec3{X: 1}.Cross(tangent)
		}
		side = side.Normalize().Scale(width / 2)
		normal := tangent.Cross(side).Normalize()

		u := float32(i) / float32(n-1)
		g.Vertices = append(g.Vertices,
			Vertex{Position: p.Sub(side).Array(), Normal: normal.Array(), TexCoord: [2]float32{u, 0}},
			Vertex{Position: p.Add(side).Array(), Normal: normal.Array(), TexCoord: [2]float32{u, 1}},
		)
	}

	for i := 0; i < n-1; i++ {
		i0 := uint32(2 * i)
		i1 := i0 + 1
		i2 := i0 + 2
		i3 := i0 + 3
		g.Indices = append(g.Indices, i0, i2, i1, i1, i2, i3)
	}
	return g
}

// DownwardTriangles returns one small inverted tetrahedron per point, tip on
// the point and base heightOffset above it. They mark sample locations.
func DownwardTriangles(points []math.Vec3, heightOffset, radius float32) Geometry {
	g := Geometry{
		Vertices: make([]Vertex, 0, 4*len(points)),
		Indices:  make([]uint32, 0, 12*len(points)),
	}
	sq3 := math32.Sqrt(3) / 2
	for _, tip := range points {
		s := uint32(len(g.Vertices))
		base := tip.Add(math.Vec3{Y: heightOffset})
		for _, p := range []math.Vec3{
			tip,
			base.Add(math.Vec3{X: radius}),
			base.Add(math.Vec3{X: -radius / 2, Z: radius * sq3}),
			base.Add(math.Vec3{X: -radius / 2, Z: -radius * sq3}),
		} {
			g.Vertices = append(g.Vertices, Vertex{Position: p.Array(), Normal: [3]float32{0, 1, 0}})
		}
		g.Indices = append(g.Indices,
			s, s+1, s+2,
			s, s+2, s+3,
			s, s+3, s+1,
			s+1, s+3, s+2,
		)
	}
	ComputeNormals(&g)
	return g
}
