package picking

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/qterrain/internal/engine/camera"
	"github.com/Faultbox/qterrain/internal/engine/terrain"
	"github.com/Faultbox/qterrain/pkg/math"
)

func lookingAtOrigin() *camera.Camera {
	c := camera.New()
	c.Position = math.Vec3{Y: 3, Z: 4}
	return c
}

func flat(value float32, scaleH float32) Surface {
	p := terrain.DefaultParams()
	p.Span = math.Vec3{X: 2, Y: 1, Z: 2}
	data := make([]float32, 4*4)
	for i := range data {
		data[i] = value
	}
	return Surface{Data: data, Width: 4, Height: 4, Params: p, ScaleH: scaleH}
}

func TestScreenToRayCenter(t *testing.T) {
	c := lookingAtOrigin()
	r := ScreenToRay(c, 400, 300, 800, 600)

	assert.Equal(t, c.Position, r.Origin)
	want := c.Target.Sub(c.Position).Normalize()
	assert.InDelta(t, want.X, r.Direction.X, 1e-5)
	assert.InDelta(t, want.Y, r.Direction.Y, 1e-5)
	assert.InDelta(t, want.Z, r.Direction.Z, 1e-5)
}

func TestScreenToRayCorners(t *testing.T) {
	c := lookingAtOrigin()
	left := ScreenToRay(c, 0, 300, 800, 600)
	right := ScreenToRay(c, 800, 300, 800, 600)
	top := ScreenToRay(c, 400, 0, 800, 600)

	assert.Less(t, left.Direction.X, float32(0))
	assert.Greater(t, right.Direction.X, float32(0))
	center := ScreenToRay(c, 400, 300, 800, 600)
	assert.Greater(t, top.Direction.Y, center.Direction.Y)
	assert.InDelta(t, 1, right.Direction.Length(), 1e-5)
}

func TestIntersectPlaneY(t *testing.T) {
	r := Ray{Origin: math.Vec3{Y: 2}, Direction: math.Vec3{Y: -1}}
	p, ok := r.IntersectPlaneY(0.5)
	require.True(t, ok)
	assert.InDelta(t, 0.5, p.Y, 1e-6)

	_, ok = r.IntersectPlaneY(3)
	assert.False(t, ok, "plane behind the origin")

	_, ok = Ray{Direction: math.Vec3{X: 1}}.IntersectPlaneY(1)
	assert.False(t, ok, "parallel ray")
}

func TestIntersectAABB(t *testing.T) {
	box := AABB{Min: math.Vec3{X: -1, Y: -1, Z: -1}, Max: math.Vec3{X: 1, Y: 1, Z: 1}}

	tmin, tmax, ok := Ray{Origin: math.Vec3{X: -3}, Direction: math.Vec3{X: 1}}.IntersectAABB(box)
	require.True(t, ok)
	assert.InDelta(t, 2, tmin, 1e-6)
	assert.InDelta(t, 4, tmax, 1e-6)

	tmin, _, ok = Ray{Direction: math.Vec3{Y: 1}}.IntersectAABB(box)
	require.True(t, ok)
	assert.Equal(t, float32(0), tmin, "inside the box")

	_, _, ok = Ray{Origin: math.Vec3{X: -3, Y: 5}, Direction: math.Vec3{X: 1}}.IntersectAABB(box)
	assert.False(t, ok)
}

func TestSurfaceIntersectFlat(t *testing.T) {
	s := flat(0.5, 1)
	c := lookingAtOrigin()
	hit, ok := s.Intersect(ScreenToRay(c, 400, 300, 800, 600))
	require.True(t, ok)

	assert.InDelta(t, 0.5, hit.Position.Y, 1e-3)
	assert.InDelta(t, 0.5, hit.Raw, 1e-6)
	// The view ray leans toward -Z, so it meets the raised plane before the origin.
	assert.Greater(t, hit.Position.Z, float32(0))
	assert.InDelta(t, 0.5, hit.U, 1e-3)
}

func TestSurfaceIntersectHonorsScaleH(t *testing.T) {
	s := flat(0.5, 2)
	r := Ray{Origin: math.Vec3{Y: 5}, Direction: math.Vec3{Y: -1}}
	hit, ok := s.Intersect(r)
	require.True(t, ok)
	assert.InDelta(t, 1, hit.Position.Y, 1e-3)
}

func TestSurfaceIntersectMiss(t *testing.T) {
	s := flat(0.5, 1)
	r := Ray{Origin: math.Vec3{X: 5, Y: 5}, Direction: math.Vec3{Y: -1}}
	_, ok := s.Intersect(r)
	assert.False(t, ok)

	r = Ray{Origin: math.Vec3{Y: 5}, Direction: math.Vec3{Y: 1}}
	_, ok = s.Intersect(r)
	assert.False(t, ok)
}

func TestHeightAtOutside(t *testing.T) {
	s := flat(0.25, 1)
	_, ok := s.HeightAt(1.5, 0)
	assert.False(t, ok)
	h, ok := s.HeightAt(0.3, -0.2)
	require.True(t, ok)
	assert.InDelta(t, 0.25, h, 1e-6)
}
