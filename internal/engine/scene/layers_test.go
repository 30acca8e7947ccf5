package scene

import (
	"testing"

	"github.com/chewxy/math32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/qterrain/internal/engine/geometry"
	"github.com/Faultbox/qterrain/internal/engine/terrain"
	"github.com/Faultbox/qterrain/internal/viewstate"
)

func TestPlanSkipsDepthPassesIn2D(t *testing.T) {
	assert.Equal(t, []Phase{CameraLightUpdated, LitPassDone}, plan(viewstate.Render2D))
	assert.Equal(t,
		[]Phase{CameraLightUpdated, ShadowPassDone, DepthPassDone, LitPassDone},
		plan(viewstate.Render3D))
}

func TestPhaseString(t *testing.T) {
	assert.Equal(t, "idle", Idle.String())
	assert.Equal(t, "lit_pass_done", LitPassDone.String())
	assert.Equal(t, "unknown", Phase(42).String())
}

func TestHeightmapParamsMatchOverlayPlacement(t *testing.T) {
	tr := viewstate.Terrain{ScaleH: 3, HmapH0: 0.1, HmapW: 4, HmapH: 0.5}
	p := heightmapParams(tr, true)
	assert.True(t, p.AddSkirt)
	assert.Equal(t, float32(terrain.NoExclusion), p.ExcludeBelow)

	for _, c := range [][3]float32{{0, 0, 0}, {1, 1, 1}, {0.25, 0.75, 0.4}} {
		want := tr.ToWorld(c[0], c[1], c[2])
		got := p.WorldPosition(c[0], c[1], c[2])
		assert.InDelta(t, want.X, got.X, 1e-6)
		assert.InDelta(t, want.Y, got.Y, 1e-6)
		assert.InDelta(t, want.Z, got.Z, 1e-6)
	}
}

func TestWaterParams(t *testing.T) {
	p := waterParams(viewstate.DefaultTerrain(), 0.2)
	assert.False(t, p.AddSkirt)
	assert.Zero(t, p.AddLevel)
	assert.Equal(t, float32(0.2), p.ExcludeBelow)
}

func TestWaterSurfaceFollowsSamples(t *testing.T) {
	tr := viewstate.Terrain{ScaleH: 1, HmapH0: 0.1, HmapW: 2, HmapH: 0.5}
	data := []float32{0.4, 0.4, 0.4, 0.4}
	hm, err := terrain.Generate(data, 2, 2, waterParams(tr, 0))
	require.NoError(t, err)
	require.NotEmpty(t, hm.Vertices)
	for _, v := range hm.Vertices {
		assert.InDelta(t, tr.HmapH0+0.4*tr.HmapH, v.Position[1], 1e-6)
	}
}

func TestWaterMaskDropsDrySamples(t *testing.T) {
	data := []float32{
		0, 0.5, 0.5,
		0, 0.5, 0.5,
		0, 0.5, 0.5,
	}
	hm, err := terrain.Generate(data, 3, 3, waterParams(viewstate.DefaultTerrain(), 0, 0))
	require.NoError(t, err)
	assert.Len(t, hm.Vertices, 6)
	assert.Len(t, hm.Indices, 2*6)
	assert.Zero(t, hm.SkirtVertexCount())
}

func TestBackdropSitsUnderLowestSample(t *testing.T) {
	tr := viewstate.DefaultTerrain()
	g := backdrop(tr, 0.25)
	require.False(t, g.IsEmpty())

	b := g.Bounds()
	assert.InDelta(t, 0.25*tr.HmapH-backdropOffset, b.Min[1], 1e-6)
	assert.InDelta(t, b.Min[1], b.Max[1], 1e-6)
	assert.InDelta(t, backdropScale*tr.HmapW, b.Max[0]-b.Min[0], 1e-2)
}

func TestBuiltFromIgnoresVerticalExaggeration(t *testing.T) {
	st := viewstate.New()
	before := builtFrom(st)

	tr := st.Terrain()
	tr.ScaleH = 5
	st.SetTerrain(tr)
	assert.Equal(t, before, builtFrom(st))

	tr.HmapW = 3
	st.SetTerrain(tr)
	assert.NotEqual(t, before, builtFrom(st))

	after := builtFrom(st)
	w := st.Water()
	w.Elevation += 0.1
	st.SetWater(w)
	assert.Equal(t, after, builtFrom(st), "water elevation does not move geometry")
}

func TestPathGeometryNeedsTwoPoints(t *testing.T) {
	tr := viewstate.DefaultTerrain()

	_, ok, err := pathGeometry(tr, newCoords([]float32{0.5}, []float32{0.5}, []float32{0.1}, nil))
	require.NoError(t, err)
	assert.False(t, ok)

	_, ok, err = pathGeometry(tr, newCoords(nil, nil, nil, nil))
	require.NoError(t, err)
	assert.False(t, ok)

	g, ok, err := pathGeometry(tr, newCoords([]float32{0, 1}, []float32{0, 1}, []float32{0, 0}, nil))
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Len(t, g.Vertices, 4)

	_, _, err = pathGeometry(tr, newCoords([]float32{0, 1}, []float32{0}, []float32{0, 0}, nil))
	assert.Error(t, err)
}

func TestTint(t *testing.T) {
	inst := []geometry.Instance{{Color: [3]float32{0, 1, 0}}, {Color: [3]float32{0, 1, 0}}}

	tint(inst, [3]float32{})
	assert.Equal(t, [3]float32{0, 1, 0}, inst[0].Color)

	tint(inst, propColors[propRocks])
	for _, in := range inst {
		assert.Equal(t, propColors[propRocks], in.Color)
	}
}

func TestPropGeometry(t *testing.T) {
	for k := propKind(0); k < propCount; k++ {
		g := propGeometry(k)
		assert.False(t, g.IsEmpty(), propLayers[k].String())
		b := g.Bounds()
		assert.LessOrEqual(t, b.Max[1]-b.Min[1], float32(1.5), propLayers[k].String())
	}
}

func TestPointsAreSpheres(t *testing.T) {
	g := propGeometry(propPoints)
	b := g.Bounds()
	for k := range 3 {
		assert.InDelta(t, 1, b.Max[k]-b.Min[k], 1e-3)
	}
	for _, v := range g.Vertices {
		p := v.Position
		assert.InDelta(t, 0.5, math32.Sqrt(p[0]*p[0]+p[1]*p[1]+p[2]*p[2]), 1e-4)
	}
}

func TestInputsAreCopied(t *testing.T) {
	data := []float32{1, 2, 3, 4}
	s := newSamples(data, 2, 2)
	data[0] = 9
	assert.Equal(t, float32(1), s.data[0])

	x := []float32{0.5}
	c := newCoords(x, x, x, nil)
	x[0] = 0
	assert.Equal(t, float32(0.5), c.x[0])
	assert.Nil(t, c.r)
}
