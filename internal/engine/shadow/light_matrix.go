package shadow

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/qterrain/internal/engine/lighting"
	"github.com/Faultbox/qterrain/pkg/math"
)

// Projection sizes the orthographic volume seen from the light.
type Projection struct {
	HalfExtent float32
	Near       float32
	Far        float32
}

// DefaultProjection covers the unit terrain footprint with margin.
func DefaultProjection() Projection {
	return Projection{HalfExtent: 1.5, Near: 0, Far: 100}
}

// LightSpaceMatrix returns projection * view for rendering depth from the
// light toward its target.
func LightSpaceMatrix(l lighting.Light, p Projection) math.Mat4 {
	up := math.Up
	// If light is nearly vertical, use a different up vector
	if math32.Abs(l.Direction().Y) > 0.99 {
		up = math.Vec3{Z: 1}
	}
	view := math.LookAt(l.Position, l.Target, up)
	proj := math.OrthoBox(p.HalfExtent, p.Near, p.Far)
	return proj.Mul(view)
}
