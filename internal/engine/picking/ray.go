// Package picking casts rays from screen pixels into the terrain.
package picking

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/qterrain/internal/engine/camera"
	"github.com/Faultbox/qterrain/internal/engine/terrain"
	"github.com/Faultbox/qterrain/pkg/math"
)

// Ray is a half line with a normalized direction.
type Ray struct {
	Origin    math.Vec3
	Direction math.Vec3
}

// At returns the point at distance t along r.
func (r Ray) At(t float32) math.Vec3 {
	return r.Origin.Add(r.Direction.Scale(t))
}

// AABB is an axis-aligned bounding box.
type AABB struct {
	Min math.Vec3
	Max math.Vec3
}

// ScreenToRay returns the ray through pixel (px, py) of a w x h viewport,
// measured from the top-left corner, for the perspective camera c.
func ScreenToRay(c *camera.Camera, px, py, w, h float32) Ray {
	if w <= 0 || h <= 0 {
		return Ray{Origin: c.Position, Direction: c.Target.Sub(c.Position).Normalize()}
	}
	ndcX := 2*px/w - 1
	ndcY := 1 - 2*py/h

	forward := c.Target.Sub(c.Position).Normalize()
	right := forward.Cross(c.Up).Normalize()
	up := right.Cross(forward)

	th := math32.Tan(c.FOV / 2)
	dir := forward.
		Add(right.Scale(ndcX * th * w / h)).
		Add(up.Scale(ndcY * th))
	return Ray{Origin: c.Position, Direction: dir.Normalize()}
}

// IntersectPlaneY intersects r with the horizontal plane at height y.
func (r Ray) IntersectPlaneY(y float32) (math.Vec3, bool) {
	if math32.Abs(r.Direction.Y) < 1e-6 {
		return math.Vec3{}, false
	}
	t := (y - r.Origin.Y) / r.Direction.Y
	if t < 0 {
		return math.Vec3{}, false
	}
	return r.At(t), true
}

// IntersectAABB returns the distances at which r enters and leaves box. A
// ray starting inside the box has tmin 0.
func (r Ray) IntersectAABB(box AABB) (tmin, tmax float32, hit bool) {
	tmin, tmax = 0, math32.MaxFloat32
	o := r.Origin.Array()
	d := r.Direction.Array()
	lo := box.Min.Array()
	hi := box.Max.Array()

	for k := 0; k < 3; k++ {
		if d[k] == 0 {
			if o[k] < lo[k] || o[k] > hi[k] {
				return 0, 0, false
			}
			continue
		}
		t1 := (lo[k] - o[k]) / d[k]
		t2 := (hi[k] - o[k]) / d[k]
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		tmin = max(tmin, t1)
		tmax = min(tmax, t2)
		if tmax < tmin {
			return 0, 0, false
		}
	}
	return tmin, tmax, true
}

// Surface is a heightmap as the viewer draws it: placed by Params, then
// stretched vertically by ScaleH.
type Surface struct {
	Data          []float32
	Width, Height int
	Params        terrain.Params
	ScaleH        float32
}

// Hit is a ray/terrain intersection.
type Hit struct {
	Position math.Vec3 // in drawn (scaled) space
	U, V     float32   // normalized grid coordinates
	Raw      float32   // interpolated sample
}

// Steps along the ray before refining, and refinement iterations.
const (
	marchSteps  = 512
	refineSteps = 20
)

// boundsPad thickens the bounds so a flat surface still has a volume to
// march through.
const boundsPad = 1e-3

func (s Surface) scaleH() float32 {
	if s.ScaleH == 0 {
		return 1
	}
	return s.ScaleH
}

func (s Surface) uv(x, z float32) (u, v float32) {
	p := s.Params
	return (x-p.Origin.X)/p.Span.X + 0.5, (z-p.Origin.Z)/p.Span.Z + 0.5
}

// HeightAt returns the drawn surface height above (x, z), or false outside
// the footprint.
func (s Surface) HeightAt(x, z float32) (float32, bool) {
	u, v := s.uv(x, z)
	if u < 0 || u > 1 || v < 0 || v > 1 || len(s.Data) == 0 {
		return 0, false
	}
	raw := terrain.Bilinear(s.Data, s.Width, s.Height, u, v)
	return s.Params.WorldPosition(u, v, raw).Y * s.scaleH(), true
}

// Bounds returns the box holding the drawn surface.
func (s Surface) Bounds() AABB {
	lo, hi := float32(0), float32(0)
	if len(s.Data) > 0 {
		lo, hi = s.Data[0], s.Data[0]
		for _, v := range s.Data[1:] {
			lo = min(lo, v)
			hi = max(hi, v)
		}
	}
	p := s.Params
	k := s.scaleH()
	y0 := p.WorldPosition(0, 0, lo).Y * k
	y1 := p.WorldPosition(0, 0, hi).Y * k
	return AABB{
		Min: math.Vec3{X: p.Origin.X - p.Span.X/2, Y: min(y0, y1) - boundsPad, Z: p.Origin.Z - p.Span.Z/2},
		Max: math.Vec3{X: p.Origin.X + p.Span.X/2, Y: max(y0, y1) + boundsPad, Z: p.Origin.Z + p.Span.Z/2},
	}
}

// Intersect finds the first point where r goes below the surface. The ray
// is marched through the surface bounds and the crossing refined by
// bisection.
func (s Surface) Intersect(r Ray) (Hit, bool) {
	tmin, tmax, ok := r.IntersectAABB(s.Bounds())
	if !ok {
		return Hit{}, false
	}

	below := func(t float32) bool {
		p := r.At(t)
		h, ok := s.HeightAt(p.X, p.Z)
		return ok && p.Y <= h
	}

	if below(tmin) {
		return s.hit(r.At(tmin)), true
	}
	step := (tmax - tmin) / marchSteps
	prev := tmin
	for i := 1; i <= marchSteps; i++ {
		t := tmin + float32(i)*step
		if !below(t) {
			prev = t
			continue
		}
		lo, hi := prev, t
		for k := 0; k < refineSteps; k++ {
			mid := (lo + hi) / 2
			if below(mid) {
				hi = mid
			} else {
				lo = mid
			}
		}
		return s.hit(r.At(hi)), true
	}
	return Hit{}, false
}

func (s Surface) hit(p math.Vec3) Hit {
	u, v := s.uv(p.X, p.Z)
	u, v = max(0, min(u, 1)), max(0, min(v, 1))
	raw := terrain.Bilinear(s.Data, s.Width, s.Height, u, v)
	h, _ := s.HeightAt(p.X, p.Z)
	return Hit{Position: math.Vec3{X: p.X, Y: h, Z: p.Z}, U: u, V: v, Raw: raw}
}
