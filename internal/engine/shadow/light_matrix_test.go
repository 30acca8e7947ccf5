package shadow

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"

	"github.com/Faultbox/qterrain/internal/engine/lighting"
	"github.com/Faultbox/qterrain/pkg/math"
)

func transform(m math.Mat4, p math.Vec3) mgl32.Vec3 {
	return mgl32.TransformCoordinate(mgl32.Vec3(p.Array()), mgl32.Mat4(m))
}

func TestLightSpaceMatrixCentersTarget(t *testing.T) {
	var l lighting.Light
	l.Place(lighting.DefaultSpherical(), 1)

	m := LightSpaceMatrix(l, DefaultProjection())
	p := transform(m, l.Target)
	assert.InDelta(t, 0, p.X(), 1e-5)
	assert.InDelta(t, 0, p.Y(), 1e-5)
	assert.Greater(t, p.Z(), float32(-1))
	assert.Less(t, p.Z(), float32(1))
}

func TestLightSpaceMatrixVerticalLight(t *testing.T) {
	l := lighting.Light{Position: math.Vec3{Y: 10}}
	m := LightSpaceMatrix(l, DefaultProjection())
	for _, v := range m {
		assert.False(t, v != v, "NaN in light matrix")
	}
	// footprint corner lands inside the clip box
	p := transform(m, math.Vec3{X: 1, Z: 1})
	assert.LessOrEqual(t, p.X(), float32(1))
	assert.LessOrEqual(t, p.Y(), float32(1))
}
