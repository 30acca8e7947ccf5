package geometry

import "github.com/chewxy/math32"

// TreeParams sizes a stylized conifer: an open cylinder trunk under a cone crown.
type TreeParams struct {
	TrunkHeight float32
	TrunkRadius float32
	CrownHeight float32
	CrownRadius float32
	Segments    int
}

// DefaultTreeParams returns proportions for a tree of overall scale r.
func DefaultTreeParams(r float32) TreeParams {
	return TreeParams{
		TrunkHeight: r,
		TrunkRadius: 0.1 * r,
		CrownHeight: 5 * r,
		CrownRadius: r,
		Segments:    5,
	}
}

// Tree returns a trunk cylinder standing on the origin with a cone crown
// (including its base disk) on top.
func Tree(p TreeParams) Geometry {
	seg := max(p.Segments, 3)
	var g Geometry

	ring := func(radius, y float32) uint32 {
		start := uint32(len(g.Vertices))
		for i := 0; i <= seg; i++ {
			u := float32(i) / float32(seg)
			s, c := math32.Sincos(u * 2 * math32.Pi)
			g.Vertices = append(g.Vertices, Vertex{
				Position: [3]float32{radius * c, y, radius * s},
				TexCoord: [2]float32{u, y},
			})
		}
		return start
	}

	// trunk
	b := ring(p.TrunkRadius, 0)
	t := ring(p.TrunkRadius, p.TrunkHeight)
	for i := uint32(0); i < uint32(seg); i++ {
		g.Indices = append(g.Indices, b+i, t+i, b+i+1, b+i+1, t+i, t+i+1)
	}

	// crown base disk, facing down
	center := uint32(len(g.Vertices))
	g.Vertices = append(g.Vertices, Vertex{Position: [3]float32{0, p.TrunkHeight, 0}, TexCoord: [2]float32{0.5, 0}})
	disk := ring(p.CrownRadius, p.TrunkHeight)
	for i := uint32(0); i < uint32(seg); i++ {
		g.Indices = append(g.Indices, center, disk+i, disk+i+1)
	}

	// crown cone; separate rim so the disk and cone keep distinct normals
	apex := uint32(len(g.Vertices))
	g.Vertices = append(g.Vertices, Vertex{
		Position: [3]float32{0, p.TrunkHeight + p.CrownHeight, 0},
		TexCoord: [2]float32{0.5, 1},
	})
	rim := ring(p.CrownRadius, p.TrunkHeight)
	for i := uint32(0); i < uint32(seg); i++ {
		g.Indices = append(g.Indices, apex, rim+i+1, rim+i)
	}

	ComputeNormals(&g)
	return g
}

// Height returns the total height of the tree.
func (p TreeParams) Height() float32 {
	return p.TrunkHeight + p.CrownHeight
}
