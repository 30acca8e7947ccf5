package geometry

import (
	"math/rand"

	"github.com/chewxy/math32"

	"github.com/Faultbox/qterrain/pkg/math"
)

var (
	icoT = (1 + math32.Sqrt(5)) / 2

	icoPositions = [12]math.Vec3{
		{X: -1, Y: icoT}, {X: 1, Y: icoT}, {X: -1, Y: -icoT}, {X: 1, Y: -icoT},
		{Y: -1, Z: icoT}, {Y: 1, Z: icoT}, {Y: -1, Z: -icoT}, {Y: 1, Z: -icoT},
		{X: icoT, Z: -1}, {X: icoT, Z: 1}, {X: -icoT, Z: -1}, {X: -icoT, Z: 1},
	}

	icoFaces = [20][3]uint32{
		{0, 11, 5}, {0, 5, 1}, {0, 1, 7}, {0, 7, 10}, {0, 10, 11},
		{1, 5, 9}, {5, 11, 4}, {11, 10, 2}, {10, 7, 6}, {7, 1, 8},
		{3, 9, 4}, {3, 4, 2}, {3, 2, 6}, {3, 6, 8}, {3, 8, 9},
		{4, 9, 5}, {2, 4, 11}, {6, 2, 10}, {8, 6, 7}, {9, 8, 1},
	}
)

// Rock returns a subdivided icosphere whose vertices are pushed in or out by
// a seeded random fraction of radius in [-roughness, roughness]. The same
// seed always gives the same rock.
func Rock(radius, roughness float32, seed int64, subdivisions int) Geometry {
	points := make([]math.Vec3, 0, 12)
	for _, p := range icoPositions {
		points = append(points, p.Normalize())
	}
	faces := icoFaces[:]

	for s := 0; s < subdivisions; s++ {
		cache := make(map[[2]uint32]uint32)
		midpoint := func(a, b uint32) uint32 {
			key := [2]uint32{min(a, b), max(a, b)}
			if idx, ok := cache[key]; ok {
				return idx
			}
			points = append(points, points[a].Add(points[b]).Scale(0.5).Normalize())
			idx := uint32(len(points) - 1)
			cache[key] = idx
			return idx
		}

		next := make([][3]uint32, 0, 4*len(faces))
		for _, f := range faces {
			a := midpoint(f[0], f[1])
			b := midpoint(f[1], f[2])
			c := midpoint(f[2], f[0])
			next = append(next,
				[3]uint32{f[0], a, c},
				[3]uint32{f[1], b, a},
				[3]uint32{f[2], c, b},
				[3]uint32{a, b, c},
			)
		}
		faces = next
	}

	rng := rand.New(rand.NewSource(seed))
	g := Geometry{Vertices: make([]Vertex, len(points))}
	for i, p := range points {
		d := (rng.Float32()*2 - 1) * roughness
		g.Vertices[i].Position = p.Scale(radius + radius*d).Array()
	}
	g.Indices = make([]uint32, 0, 3*len(faces))
	for _, f := range faces {
		g.Indices = append(g.Indices, f[0], f[1], f[2])
	}
	ComputeNormals(&g)
	return g
}
