// Package terrain tessellates heightmaps into triangle meshes and keeps the
// mapping needed to update their elevation in place.
package terrain

import (
	"errors"

	"github.com/chewxy/math32"

	"github.com/Faultbox/qterrain/internal/engine/geometry"
	"github.com/Faultbox/qterrain/pkg/math"
)

// ErrShape reports a heightmap whose dimensions do not match its data.
var ErrShape = errors.New("terrain: invalid heightmap shape")

// NoExclusion disables sample masking.
const NoExclusion = -math32.MaxFloat32

// Params places a heightmap in world space.
type Params struct {
	Origin math.Vec3 // center of the XZ footprint; Y is the base elevation
	Span   math.Vec3 // footprint size in X and Z, elevation scale in Y

	AddSkirt     bool
	AddLevel     float32 // constant vertical offset
	ExcludeBelow float32 // samples <= this are dropped
}

// DefaultParams returns a unit heightmap centered on the origin.
func DefaultParams() Params {
	return Params{
		Span:         math.Vec3{X: 1, Y: 1, Z: 1},
		ExcludeBelow: NoExclusion,
	}
}

// Heightmap is a tessellated grid of samples.
type Heightmap struct {
	geometry.Geometry

	// VertexMap holds, for each sample (row-major, width fastest), its vertex
	// index or -1 when the sample was masked out.
	VertexMap []int32

	// MinElevation is the smallest raw sample among the kept ones.
	MinElevation float32

	// GridVertexCount is the number of surface vertices. Skirt vertices
	// follow them in Vertices.
	GridVertexCount int

	Width, Height int
	Params        Params
}

// SkirtVertexCount returns how many vertices belong to the skirt.
func (h *Heightmap) SkirtVertexCount() int {
	return len(h.Vertices) - h.GridVertexCount
}

// SameLayout reports whether a new w x h heightmap with the given skirt
// policy can reuse h's topology.
func (h *Heightmap) SameLayout(width, height int, addSkirt bool) bool {
	return h != nil && h.Width == width && h.Height == height && h.Params.AddSkirt == addSkirt
}
