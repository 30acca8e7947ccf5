// Package lighting provides the directional light that shades the terrain
// and casts its shadows.
package lighting

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/qterrain/pkg/math"
)

// Light is a directional light placed on a sphere around its target. The
// position only matters for the shadow map projection.
type Light struct {
	Position math.Vec3
	Target   math.Vec3
}

// Spherical places a light: Theta is elevation above the horizon, Phi the
// azimuth around Y, both in radians.
type Spherical struct {
	Distance float32
	Theta    float32
	Phi      float32
}

// DefaultSpherical returns the default sun placement.
func DefaultSpherical() Spherical {
	return Spherical{
		Distance: 10,
		Theta:    30 * math32.Pi / 180,
		Phi:      -45 * math32.Pi / 180,
	}
}

// SunDirection converts elevation and azimuth to a unit vector pointing
// toward the sun.
func SunDirection(theta, phi float32) math.Vec3 {
	st, ct := math32.Sincos(theta)
	sp, cp := math32.Sincos(phi)
	return math.Vec3{X: ct * sp, Y: st, Z: ct * cp}
}

// Place positions l from spherical coordinates. scaleH is the vertical
// exaggeration applied to the terrain; the light height is divided by it so
// the lighting direction stays consistent when the terrain is stretched.
func (l *Light) Place(s Spherical, scaleH float32) {
	p := SunDirection(s.Theta, s.Phi).Scale(s.Distance)
	if scaleH != 0 {
		p.Y /= scaleH
	}
	l.Position = l.Target.Add(p)
}

// Direction returns the unit vector the light travels along.
func (l *Light) Direction() math.Vec3 {
	return l.Target.Sub(l.Position).Normalize()
}
