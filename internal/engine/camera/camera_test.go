package camera

import (
	"testing"

	"github.com/chewxy/math32"
	"github.com/stretchr/testify/assert"

	"github.com/Faultbox/qterrain/pkg/math"
)

func TestOrbitDefaults(t *testing.T) {
	o := NewOrbit()
	assert.Equal(t, float32(5), o.Distance)
	assert.InDelta(t, 35*math32.Pi/180, o.AlphaX, 1e-6)
	assert.InDelta(t, -25*math32.Pi/180, o.AlphaY, 1e-6)

	c := New()
	o.Apply(c)
	assert.InDelta(t, 5, c.Position.Sub(c.Target).Length(), 1e-5)
	assert.Greater(t, c.Position.Y, float32(0))
}

func TestOrbitPitchClamp(t *testing.T) {
	tests := []struct {
		name  string
		delta float32
		want  float32
	}{
		{"up", 1e6, MaxPitch},
		{"down", -1e6, -MaxPitch},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := NewOrbit()
			o.HandleDrag(0, tt.delta)
			assert.Equal(t, tt.want, o.AlphaX)
		})
	}
}

func TestOrbitPanFollowsYaw(t *testing.T) {
	o := NewOrbit()
	o.AlphaY = 0
	o.Pan = math.Vec3{X: 1, Y: 0.5}
	a := o.PanWorld().Array()
	assert.InDeltaSlice(t, []float32{1, 0.5, 0}, a[:], 1e-6)

	o.AlphaY = math32.Pi / 2
	p := o.PanWorld()
	assert.InDelta(t, 0, p.X, 1e-6)
	assert.InDelta(t, -1, p.Z, 1e-6)

	c := New()
	o.Apply(c)
	// panning moves eye and target together
	assert.InDelta(t, o.Distance, c.Position.Sub(c.Target).Length(), 1e-5)
	assert.InDelta(t, 0, c.Target.Sub(p).Length(), 1e-6)
}

func TestOrbitZoomLimits(t *testing.T) {
	o := NewOrbit()
	o.HandleZoom(1000)
	assert.Equal(t, o.MinDistance, o.Distance)
	o.HandleZoom(-1e9)
	assert.Equal(t, o.MaxDistance, o.Distance)
}

func TestProjectionBadAspect(t *testing.T) {
	c := New()
	assert.Equal(t, c.Projection(1), c.Projection(0))
}

func TestOrbitStraightOnAxis(t *testing.T) {
	o := NewOrbit()
	o.Target = math.Vec3{X: 1, Y: 2, Z: 3}
	o.Distance, o.AlphaX, o.AlphaY = 5, 0, 0

	c := New()
	o.Apply(c)
	assert.Equal(t, math.Vec3{X: 1, Y: 2, Z: 8}, c.Position)
	assert.Equal(t, o.Target, c.Target)
}

func TestLensClamped(t *testing.T) {
	tests := []struct {
		name string
		in   Lens
		want Lens
	}{
		{"default", DefaultLens(), DefaultLens()},
		{"narrow", Lens{FOV: 0.01, Near: 0.1, Far: 100}, Lens{FOV: MinFOV, Near: 0.1, Far: 100}},
		{"wide", Lens{FOV: math32.Pi, Near: 0.1, Far: 100}, Lens{FOV: MaxFOV, Near: 0.1, Far: 100}},
		{"bad near", Lens{FOV: 1, Near: 0, Far: 100}, Lens{FOV: 1, Near: 0.1, Far: 100}},
		{"far behind near", Lens{FOV: 1, Near: 2, Far: 1}, Lens{FOV: 1, Near: 2, Far: 2000}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.in.Clamped())
		})
	}
}

func TestLensApply(t *testing.T) {
	c := New()
	assert.Equal(t, DefaultLens(), Lens{FOV: c.FOV, Near: c.Near, Far: c.Far})

	Lens{FOV: math32.Pi / 2, Near: 0.5, Far: 50}.Apply(c)
	assert.Equal(t, float32(math32.Pi/2), c.FOV)
	assert.Equal(t, float32(0.5), c.Near)
	assert.Equal(t, float32(50), c.Far)

	// a wider lens shrinks the focal term of the projection
	narrow := New().Projection(1)
	wide := c.Projection(1)
	assert.Less(t, wide[5], narrow[5])
}
