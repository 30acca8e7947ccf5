package terrain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/qterrain/pkg/math"
)

func ramp(w, h int) []float32 {
	data := make([]float32, w*h)
	for j := 0; j < h; j++ {
		for i := 0; i < w; i++ {
			data[j*w+i] = float32(i+j) / float32(w+h)
		}
	}
	return data
}

func TestGenerateShapeErrors(t *testing.T) {
	tests := []struct {
		name string
		data []float32
		w, h int
	}{
		{"too narrow", make([]float32, 3), 1, 3},
		{"too short", make([]float32, 3), 3, 1},
		{"size mismatch", make([]float32, 5), 2, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Generate(tt.data, tt.w, tt.h, DefaultParams())
			assert.True(t, errors.Is(err, ErrShape))
		})
	}
}

func TestGenerateGrid(t *testing.T) {
	p := Params{
		Origin:       math.Vec3{X: 1, Y: 0.5, Z: -1},
		Span:         math.Vec3{X: 2, Y: 0.4, Z: 4},
		AddLevel:     0.1,
		ExcludeBelow: NoExclusion,
	}
	data := ramp(3, 3)
	hm, err := Generate(data, 3, 3, p)
	require.NoError(t, err)

	assert.Len(t, hm.Vertices, 9)
	assert.Equal(t, 9, hm.GridVertexCount)
	assert.Equal(t, 8, hm.TriangleCount())
	assert.Equal(t, float32(0), hm.MinElevation)

	// corner (i=2, j=1)
	v := hm.Vertices[hm.VertexMap[1*3+2]]
	assert.InDelta(t, 2, v.Position[0], 1e-6)
	assert.InDelta(t, 0.5+data[5]*0.4+0.1, v.Position[1], 1e-6)
	assert.InDelta(t, -1, v.Position[2], 1e-6)
	assert.Equal(t, [2]float32{1, 0.5}, v.TexCoord)

	for _, vert := range hm.Vertices {
		n := math.FromArray(vert.Normal)
		assert.InDelta(t, 1, n.Length(), 1e-5)
		assert.Greater(t, n.Y, float32(0), "surface normals point up")
	}
}

func TestGenerateMasking(t *testing.T) {
	data := []float32{
		0.5, 0.5, 0.5,
		0.5, 0.0, 0.5,
		0.5, 0.5, 0.5,
	}
	p := DefaultParams()
	p.ExcludeBelow = 0.1

	hm, err := Generate(data, 3, 3, p)
	require.NoError(t, err)

	assert.Equal(t, int32(-1), hm.VertexMap[4])
	assert.Len(t, hm.Vertices, 8)
	// every cell touches the center sample
	assert.Empty(t, hm.Indices)
	assert.Equal(t, float32(0.5), hm.MinElevation)
	for _, idx := range hm.Indices {
		assert.Less(t, int(idx), len(hm.Vertices))
	}
}

func TestGenerateSkirt(t *testing.T) {
	p := DefaultParams()
	p.AddSkirt = true
	data := ramp(4, 3)

	hm, err := Generate(data, 4, 3, p)
	require.NoError(t, err)

	// two border segments per side of each dimension, two vertices each
	segments := 2*(4-1) + 2*(3-1)
	assert.Equal(t, 12, hm.GridVertexCount)
	assert.Equal(t, 2*segments, hm.SkirtVertexCount())
	assert.Equal(t, 2*(3)*(2)+2*segments, hm.TriangleCount())

	for i := hm.GridVertexCount; i < len(hm.Vertices); i++ {
		assert.Equal(t, hm.MinElevation, hm.Vertices[i].Position[1])
	}
}

func TestSkirtFacesOutward(t *testing.T) {
	p := DefaultParams()
	p.AddSkirt = true
	hm, err := Generate([]float32{2, 2, 2, 1}, 2, 2, p)
	require.NoError(t, err)
	require.Equal(t, float32(1), hm.MinElevation)

	const gridTris = 2
	checked := 0
	for tri := gridTris; tri < hm.TriangleCount(); tri++ {
		a := math.FromArray(hm.Vertices[hm.Indices[3*tri]].Position)
		b := math.FromArray(hm.Vertices[hm.Indices[3*tri+1]].Position)
		c := math.FromArray(hm.Vertices[hm.Indices[3*tri+2]].Position)
		n := b.Sub(a).Cross(c.Sub(a))
		if n.Length() < 1e-6 {
			// wall under the lowest sample has no height
			continue
		}
		out := a.Add(b).Add(c).Scale(1.0 / 3)
		out.Y = 0
		assert.Greater(t, n.Dot(out), float32(0), "skirt triangle %d", tri)
		checked++
	}
	assert.Positive(t, checked)
}

func TestUpdateElevationIdempotent(t *testing.T) {
	p := DefaultParams()
	p.AddSkirt = true
	p.Span = math.Vec3{X: 2, Y: 0.4, Z: 2}
	data := ramp(5, 4)

	hm, err := Generate(data, 5, 4, p)
	require.NoError(t, err)
	before := append(hm.Vertices[:0:0], hm.Vertices...)
	indices := append(hm.Indices[:0:0], hm.Indices...)
	minBefore := hm.MinElevation

	require.NoError(t, hm.UpdateElevation(data))
	assert.Equal(t, before, hm.Vertices)
	assert.Equal(t, indices, hm.Indices)
	assert.Equal(t, minBefore, hm.MinElevation)
}

func TestUpdateElevationMatchesRegenerate(t *testing.T) {
	p := DefaultParams()
	p.AddSkirt = true
	hm, err := Generate(ramp(4, 4), 4, 4, p)
	require.NoError(t, err)

	next := ramp(4, 4)
	for k := range next {
		next[k] = 1 - next[k]*2
	}
	require.NoError(t, hm.UpdateElevation(next))

	fresh, err := Generate(next, 4, 4, p)
	require.NoError(t, err)
	assert.Equal(t, fresh.MinElevation, hm.MinElevation)
	assert.Equal(t, fresh.Indices, hm.Indices)
	for i := range fresh.Vertices {
		assert.InDeltaSlice(t, fresh.Vertices[i].Position[:], hm.Vertices[i].Position[:], 1e-6)
		assert.InDeltaSlice(t, fresh.Vertices[i].Normal[:], hm.Vertices[i].Normal[:], 1e-5)
	}
}

func TestUpdateElevationRejectsShape(t *testing.T) {
	hm, err := Generate(ramp(3, 3), 3, 3, DefaultParams())
	require.NoError(t, err)
	assert.ErrorIs(t, hm.UpdateElevation(make([]float32, 8)), ErrShape)
}

func TestSameLayout(t *testing.T) {
	hm, err := Generate(ramp(3, 3), 3, 3, DefaultParams())
	require.NoError(t, err)
	assert.True(t, hm.SameLayout(3, 3, false))
	assert.False(t, hm.SameLayout(3, 3, true))
	assert.False(t, hm.SameLayout(4, 3, false))

	var none *Heightmap
	assert.False(t, none.SameLayout(3, 3, false))
}

func TestBilinear(t *testing.T) {
	data := []float32{
		0, 1,
		2, 3,
	}
	assert.InDelta(t, 0, Bilinear(data, 2, 2, 0, 0), 1e-6)
	assert.InDelta(t, 3, Bilinear(data, 2, 2, 1, 1), 1e-6)
	assert.InDelta(t, 1.5, Bilinear(data, 2, 2, 0.5, 0.5), 1e-6)
	assert.InDelta(t, 3, Bilinear(data, 2, 2, 5, 5), 1e-6, "clamped")
}

func TestWorldPositionMatchesGenerate(t *testing.T) {
	p := Params{Origin: math.Vec3{Y: 0.2}, Span: math.Vec3{X: 2, Y: 0.4, Z: 2}, ExcludeBelow: NoExclusion}
	data := ramp(3, 3)
	hm, err := Generate(data, 3, 3, p)
	require.NoError(t, err)

	got := p.WorldPosition(1, 0.5, data[5])
	want := math.FromArray(hm.Vertices[hm.VertexMap[5]].Position)
	assert.InDelta(t, 0, got.Sub(want).Length(), 1e-6)
}
