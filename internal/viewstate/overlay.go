package viewstate

import (
	"errors"
	"fmt"
	"math/rand"

	"github.com/chewxy/math32"

	"github.com/Faultbox/qterrain/internal/engine/geometry"
	"github.com/Faultbox/qterrain/internal/engine/terrain"
	"github.com/Faultbox/qterrain/pkg/math"
)

// ErrInvalidArgument is returned when overlay coordinate arrays disagree in
// length.
var ErrInvalidArgument = errors.New("invalid argument")

// PointScale is the size of a point marker instance.
const PointScale = 0.01

// PathWidth is the width of the path ribbon in world units.
const PathWidth = 0.01

var overlayColor = [3]float32{0, 1, 0}

// ToWorld maps normalized overlay coordinates to world space. x and y are in
// [0,1] across the heightmap, h is a raw sample.
func (t Terrain) ToWorld(x, y, h float32) math.Vec3 {
	return math.Vec3{
		X: 0.5 * t.HmapW * (2*x - 1),
		Y: t.HmapH0 + t.HmapH*h,
		Z: 0.5 * t.HmapW * (2*y - 1),
	}
}

// HeightmapParams places a heightmap over the same footprint ToWorld maps
// overlays onto.
func (t Terrain) HeightmapParams(addSkirt bool) terrain.Params {
	p := terrain.DefaultParams()
	p.Origin = math.Vec3{Y: t.HmapH0}
	p.Span = math.Vec3{X: t.HmapW, Y: t.HmapH, Z: t.HmapW}
	p.AddSkirt = addSkirt
	return p
}

// Points maps parallel coordinate arrays to world positions.
func (t Terrain) Points(x, y, h []float32) ([]math.Vec3, error) {
	if err := checkLengths(len(x), len(y), len(h)); err != nil {
		return nil, err
	}
	out := make([]math.Vec3, len(x))
	for k := range x {
		out[k] = t.ToWorld(x[k], y[k], h[k])
	}
	return out, nil
}

// PointInstances builds small unrotated markers, one per point.
func (t Terrain) PointInstances(x, y, h []float32) ([]geometry.Instance, error) {
	pts, err := t.Points(x, y, h)
	if err != nil {
		return nil, err
	}
	out := make([]geometry.Instance, len(pts))
	for k, p := range pts {
		out[k] = geometry.Instance{Position: p.Array(), Scale: PointScale, Color: overlayColor}
	}
	return out, nil
}

// Scatter builds one instance per prop, sized 2*radius with a random yaw
// drawn from rng. A nil rng uses a fixed seed so repeated loads match.
func (t Terrain) Scatter(x, y, h, radius []float32, rng *rand.Rand) ([]geometry.Instance, error) {
	if err := checkLengths(len(x), len(y), len(h), len(radius)); err != nil {
		return nil, err
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(0))
	}
	out := make([]geometry.Instance, len(x))
	for k := range x {
		out[k] = geometry.Instance{
			Position: t.ToWorld(x[k], y[k], h[k]).Array(),
			Scale:    2 * radius[k],
			Rotation: rng.Float32() * 2 * math32.Pi,
			Color:    overlayColor,
		}
	}
	return out, nil
}

func checkLengths(n ...int) error {
	for _, v := range n[1:] {
		if v != n[0] {
			return fmt.Errorf("%w: coordinate arrays have lengths %v", ErrInvalidArgument, n)
		}
	}
	return nil
}
