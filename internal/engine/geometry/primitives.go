package geometry

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/qterrain/pkg/math"
)

// Plane returns a horizontal quad of size lx by lz centered on center, facing +Y.
func Plane(center math.Vec3, lx, lz float32) Geometry {
	hx, hz := lx/2, lz/2
	n := [3]float32{0, 1, 0}
	g := Geometry{
		Vertices: []Vertex{
			{Position: [3]float32{center.X - hx, center.Y, center.Z - hz}, Normal: n, TexCoord: [2]float32{0, 0}},
			{Position: [3]float32{center.X + hx, center.Y, center.Z - hz}, Normal: n, TexCoord: [2]float32{1, 0}},
			{Position: [3]float32{center.X + hx, center.Y, center.Z + hz}, Normal: n, TexCoord: [2]float32{1, 1}},
			{Position: [3]float32{center.X - hx, center.Y, center.Z + hz}, Normal: n, TexCoord: [2]float32{0, 1}},
		},
		// counter-clockwise seen from above
		Indices: []uint32{0, 2, 1, 2, 0, 3},
	}
	return g
}

// Cube returns an axis-aligned box with flat-shaded faces (24 vertices).
func Cube(center math.Vec3, lx, ly, lz float32) Geometry {
	hx, hy, hz := lx/2, ly/2, lz/2
	c := [8]math.Vec3{
		{X: -hx, Y: -hy, Z: -hz}, {X: hx, Y: -hy, Z: -hz}, {X: hx, Y: hy, Z: -hz}, {X: -hx, Y: hy, Z: -hz},
		{X: -hx, Y: -hy, Z: hz}, {X: hx, Y: -hy, Z: hz}, {X: hx, Y: hy, Z: hz}, {X: -hx, Y: hy, Z: hz},
	}
	for i := range c {
		c[i] = c[i].Add(center)
	}

	faces := []struct {
		idx    [4]int
		normal math.Vec3
	}{
		{[4]int{4, 5, 6, 7}, math.Vec3{Z: 1}},
		{[4]int{1, 0, 3, 2}, math.Vec3{Z: -1}},
		{[4]int{7, 6, 2, 3}, math.Vec3{Y: 1}},
		{[4]int{0, 1, 5, 4}, math.Vec3{Y: -1}},
		{[4]int{0, 4, 7, 3}, math.Vec3{X: -1}},
		{[4]int{5, 1, 2, 6}, math.Vec3{X: 1}},
	}

	var g Geometry
	for _, f := range faces {
		g.appendQuad([4]math.Vec3{c[f.idx[0]], c[f.idx[1]], c[f.idx[2]], c[f.idx[3]]}, f.normal)
	}
	return g
}

// Sphere returns a UV sphere centered at the origin. slices is the number of
// longitudinal divisions and stacks the latitudinal ones.
func Sphere(radius float32, slices, stacks int) Geometry {
	slices = max(slices, 3)
	stacks = max(stacks, 2)

	var g Geometry
	for j := 0; j <= stacks; j++ {
		v := float32(j) / float32(stacks)
		sp, cp := math32.Sincos(v * math32.Pi)
		for i := 0; i <= slices; i++ {
			u := float32(i) / float32(slices)
			st, ct := math32.Sincos(u * 2 * math32.Pi)
			n := math.Vec3{X: sp * ct, Y: cp, Z: sp * st}
			g.Vertices = append(g.Vertices, Vertex{
				Position: n.Scale(radius).Array(),
				Normal:   n.Array(),
				TexCoord: [2]float32{u, v},
			})
		}
	}

	row := uint32(slices + 1)
	for j := 0; j < stacks; j++ {
		for i := 0; i < slices; i++ {
			i0 := uint32(j)*row + uint32(i)
			i1 := i0 + 1
			i2 := i0 + row
			i3 := i2 + 1
			g.Indices = append(g.Indices, i0, i1, i2, i1, i3, i2)
		}
	}
	return g
}

// Rectangle returns a flat ribbon quad from p1 to p2, height wide, extruded
// along the axis perpendicular to both the segment and world up.
func Rectangle(p1, p2 math.Vec3, height float32) Geometry {
	dir := p2.Sub(p1).Normalize()
	var side math.Vec3
	if math32.Abs(dir.Y) < 0.99 {
		side = dir.Cross(math.Up).Normalize()
	} else {
		side = dir.Cross(math.Vec3{X: 1}).Normalize()
	}
	off := side.Scale(height / 2)
	n := side.Cross(dir).Normalize()

	var g Geometry
	g.appendQuad([4]math.Vec3{p1.Sub(off), p1.Add(off), p2.Add(off), p2.Sub(off)}, n)
	return g
}

// Leaf returns a two-sided triangular blade rooted at base. bend pushes the
// tip along +Z as a fraction of height.
func Leaf(base math.Vec3, height, width, bend float32) Geometry {
	tip := base.Add(math.Vec3{Y: height, Z: bend * height})
	left := base.Sub(math.Vec3{X: width / 2})
	right := base.Add(math.Vec3{X: width / 2})

	front := right.Sub(left).Cross(tip.Sub(left)).Normalize()
	back := front.Scale(-1)

	g := Geometry{
		Vertices: []Vertex{
			{Position: left.Array(), Normal: front.Array(), TexCoord: [2]float32{0, 0}},
			{Position: right.Array(), Normal: front.Array(), TexCoord: [2]float32{1, 0}},
			{Position: tip.Array(), Normal: front.Array(), TexCoord: [2]float32{0.5, 1}},
			{Position: left.Array(), Normal: back.Array(), TexCoord: [2]float32{0, 0}},
			{Position: right.Array(), Normal: back.Array(), TexCoord: [2]float32{1, 0}},
			{Position: tip.Array(), Normal: back.Array(), TexCoord: [2]float32{0.5, 1}},
		},
		Indices: []uint32{0, 1, 2, 3, 5, 4},
	}
	return g
}
