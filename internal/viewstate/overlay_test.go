package viewstate

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/chewxy/math32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToWorld(t *testing.T) {
	tr := Terrain{HmapW: 2, HmapH0: 0.1, HmapH: 0.4}
	p := tr.ToWorld(0, 1, 0.5)
	assert.InDelta(t, -1, p.X, 1e-6)
	assert.InDelta(t, 0.3, p.Y, 1e-6)
	assert.InDelta(t, 1, p.Z, 1e-6)

	c := tr.ToWorld(0.5, 0.5, 0)
	assert.InDelta(t, 0, c.X, 1e-6)
	assert.InDelta(t, 0, c.Z, 1e-6)
}

func TestPointInstances(t *testing.T) {
	inst, err := DefaultTerrain().PointInstances([]float32{0, 1}, []float32{0, 1}, []float32{0, 1})
	require.NoError(t, err)
	require.Len(t, inst, 2)
	assert.Equal(t, float32(PointScale), inst[0].Scale)
	assert.Zero(t, inst[0].Rotation)
	assert.Equal(t, [3]float32{0, 1, 0}, inst[1].Color)
	assert.InDelta(t, 0.4, inst[1].Position[1], 1e-6)
}

func TestLengthMismatch(t *testing.T) {
	tr := DefaultTerrain()
	_, err := tr.Points([]float32{0}, []float32{0, 1}, []float32{0})
	assert.True(t, errors.Is(err, ErrInvalidArgument))

	_, err = tr.Scatter([]float32{0}, []float32{0}, []float32{0}, nil, nil)
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestScatter(t *testing.T) {
	tr := DefaultTerrain()
	x := []float32{0.1, 0.5, 0.9}
	r := []float32{0.01, 0.02, 0.03}

	a, err := tr.Scatter(x, x, x, r, rand.New(rand.NewSource(7)))
	require.NoError(t, err)
	b, err := tr.Scatter(x, x, x, r, rand.New(rand.NewSource(7)))
	require.NoError(t, err)
	assert.Equal(t, a, b, "same seed, same yaw")

	for k, inst := range a {
		assert.InDelta(t, 2*r[k], inst.Scale, 1e-6)
		assert.GreaterOrEqual(t, inst.Rotation, float32(0))
		assert.Less(t, inst.Rotation, float32(2*math32.Pi))
	}

	empty, err := tr.Scatter(nil, nil, nil, nil, nil)
	require.NoError(t, err)
	assert.Empty(t, empty)
}
