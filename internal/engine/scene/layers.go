package scene

import (
	"github.com/Faultbox/qterrain/internal/engine/geometry"
	"github.com/Faultbox/qterrain/internal/engine/mesh"
	"github.com/Faultbox/qterrain/internal/engine/terrain"
	"github.com/Faultbox/qterrain/internal/viewstate"
	"github.com/Faultbox/qterrain/pkg/math"
)

// Flat colors of the non-instanced layers.
var (
	planeColor     = [3]float32{0.2, 0.2, 0.2}
	pathColor      = [3]float32{1, 0, 1}
	heightmapColor = [3]float32{0.8, 0.8, 0.8}
	clearColor     = [4]float32{0.1, 0.1, 0.1, 1}
)

// backdropOffset keeps the backdrop plane just under the lowest sample so
// it never z-fights with the terrain.
const backdropOffset = 1e-3

// backdropScale sizes the backdrop relative to the heightmap footprint.
const backdropScale = 2000

// Tessellation of the point markers.
const (
	pointSlices = 12
	pointStacks = 8
)

type propKind int

const (
	propPoints propKind = iota
	propRocks
	propLeaves
	propTrees
	propCount
)

// prop is one instanced layer: a shared base mesh drawn at every placement.
type prop struct {
	base *mesh.SharedMesh
	inst mesh.InstancedMesh
}

var propLayers = [propCount]viewstate.Layer{
	propPoints: viewstate.LayerPoints,
	propRocks:  viewstate.LayerRocks,
	propLeaves: viewstate.LayerLeaves,
	propTrees:  viewstate.LayerTrees,
}

// propColors overrides placement colors. Points keep theirs.
var propColors = [propCount][3]float32{
	propRocks:  {0.45, 0.42, 0.4},
	propLeaves: {0.35, 0.6, 0.2},
	propTrees:  {0.15, 0.35, 0.15},
}

// propGeometry returns the unit-sized base shape of a prop. Placements scale
// it by twice their radius.
func propGeometry(k propKind) geometry.Geometry {
	switch k {
	case propRocks:
		return geometry.Rock(0.5, 0.25, 1, 2)
	case propLeaves:
		return geometry.Leaf(math.Vec3{}, 1, 0.25, 0.3)
	case propTrees:
		return geometry.Tree(geometry.DefaultTreeParams(1.0 / 6))
	default:
		return geometry.Sphere(0.5, pointSlices, pointStacks)
	}
}

func tint(inst []geometry.Instance, c [3]float32) {
	if c == ([3]float32{}) {
		return
	}
	for k := range inst {
		inst[k].Color = c
	}
}

type samples struct {
	data          []float32
	width, height int
}

func newSamples(data []float32, width, height int) *samples {
	return &samples{data: append([]float32(nil), data...), width: width, height: height}
}

type coords struct {
	x, y, h, r []float32
}

func newCoords(x, y, h, r []float32) *coords {
	c := &coords{
		x: append([]float32(nil), x...),
		y: append([]float32(nil), y...),
		h: append([]float32(nil), h...),
	}
	if r != nil {
		c.r = append([]float32(nil), r...)
	}
	return c
}

// inputs keeps what the host fed in, so geometry can be rebuilt when the
// terrain placement changes.
type inputs struct {
	heightmap    *samples
	addSkirt     bool
	water        *samples
	excludeBelow float32
	path         *coords
	props        [propCount]*coords
}

// builtFor records the tunables the current geometry was generated with.
// Vertical exaggeration is applied by the shaders and is not part of it.
type builtFor struct {
	hmapH0, hmapW, hmapH float32
}

func builtFrom(st *viewstate.State) builtFor {
	t := st.Terrain()
	return builtFor{hmapH0: t.HmapH0, hmapW: t.HmapW, hmapH: t.HmapH}
}

func heightmapParams(t viewstate.Terrain, addSkirt bool) terrain.Params {
	return t.HeightmapParams(addSkirt)
}

// waterParams places the water surface exactly like the terrain, without a
// skirt and dropping samples at or below excludeBelow. The surface height
// comes from the water samples alone.
func waterParams(t viewstate.Terrain, excludeBelow float32) terrain.Params {
	p := heightmapParams(t, false)
	p.ExcludeBelow = excludeBelow
	return p
}

// pathGeometry builds the ribbon through c. ok is false when there are too
// few points to form a segment.
func pathGeometry(t viewstate.Terrain, c *coords) (g geometry.Geometry, ok bool, err error) {
	pts, err := t.Points(c.x, c.y, c.h)
	if err != nil || len(pts) < 2 {
		return geometry.Geometry{}, false, err
	}
	return geometry.Path(pts, viewstate.PathWidth), true, nil
}

// backdrop returns the large plane under the terrain, flush with its lowest
// kept sample.
func backdrop(t viewstate.Terrain, hmin float32) geometry.Geometry {
	y := t.HmapH0 + hmin*t.HmapH - backdropOffset
	size := backdropScale * t.HmapW
	return geometry.Plane(math.Vec3{Y: y}, size, size)
}
