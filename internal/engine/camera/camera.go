// Package camera provides the perspective camera and the orbit controller
// that drives it around the terrain.
package camera

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/qterrain/pkg/math"
)

// MaxPitch keeps the orbit away from the poles where LookAt degenerates.
const MaxPitch = 0.99 * math32.Pi / 2

// Camera is a perspective camera.
type Camera struct {
	Position math.Vec3
	Target   math.Vec3
	Up       math.Vec3
	FOV      float32 // vertical, radians
	Near     float32
	Far      float32
}

// New returns a camera with the default lens looking at the origin.
func New() *Camera {
	c := &Camera{Up: math.Up}
	DefaultLens().Apply(c)
	return c
}

// Field of view limits, radians.
const (
	MinFOV = 10 * math32.Pi / 180
	MaxFOV = 179 * math32.Pi / 180
)

// Lens is the projection part of a camera.
type Lens struct {
	FOV  float32 // vertical, radians
	Near float32
	Far  float32
}

// DefaultLens returns a 45 degree field of view with near 0.1 and far 100.
func DefaultLens() Lens {
	return Lens{FOV: math32.Pi / 4, Near: 0.1, Far: 100}
}

// Clamped keeps the field of view within [MinFOV, MaxFOV], Near positive and
// Far beyond Near.
func (l Lens) Clamped() Lens {
	l.FOV = max(MinFOV, min(l.FOV, MaxFOV))
	if !(l.Near > 0) {
		l.Near = DefaultLens().Near
	}
	if !(l.Far > l.Near) {
		l.Far = l.Near * 1000
	}
	return l
}

// Apply copies the clamped lens onto c.
func (l Lens) Apply(c *Camera) {
	l = l.Clamped()
	c.FOV, c.Near, c.Far = l.FOV, l.Near, l.Far
}

// ViewMatrix returns the world to view transform.
func (c *Camera) ViewMatrix() math.Mat4 {
	return math.LookAt(c.Position, c.Target, c.Up)
}

// Projection returns the perspective projection for the given aspect ratio.
func (c *Camera) Projection(aspect float32) math.Mat4 {
	if aspect <= 0 {
		aspect = 1
	}
	return math.Perspective(c.FOV, aspect, c.Near, c.Far)
}

// Orbit positions a camera on a sphere around Target, shifted by Pan in the
// camera's own horizontal frame.
type Orbit struct {
	Target   math.Vec3
	Pan      math.Vec3 // X: sideways, Y: vertical. Z is unused.
	Distance float32
	AlphaX   float32 // pitch, radians
	AlphaY   float32 // yaw, radians

	MinDistance float32
	MaxDistance float32

	DragSensitivity float32
	ZoomSensitivity float32
	PanSensitivity  float32
}

// NewOrbit returns an orbit with the default framing.
func NewOrbit() *Orbit {
	o := &Orbit{
		MinDistance:     0.05,
		MaxDistance:     50,
		DragSensitivity: 0.005,
		ZoomSensitivity: 0.1,
		PanSensitivity:  0.0015,
	}
	o.Reset()
	return o
}

// Reset restores the default framing, keeping limits and sensitivities.
func (o *Orbit) Reset() {
	o.Target = math.Vec3{}
	o.Pan = math.Vec3{}
	o.Distance = 5
	o.AlphaX = 35 * math32.Pi / 180
	o.AlphaY = -25 * math32.Pi / 180
}

// PanWorld converts the pan offset into a world space translation.
func (o *Orbit) PanWorld() math.Vec3 {
	s, c := math32.Sincos(o.AlphaY)
	return math.Vec3{X: o.Pan.X * c, Y: o.Pan.Y, Z: -o.Pan.X * s}
}

// Position returns the eye position.
func (o *Orbit) Position() math.Vec3 {
	sx, cx := math32.Sincos(o.AlphaX)
	sy, cy := math32.Sincos(o.AlphaY)
	offset := math.Vec3{X: cx * sy, Y: sx, Z: cx * cy}.Scale(o.Distance)
	return o.Target.Add(o.PanWorld()).Add(offset)
}

// Apply writes the orbit's eye and look-at point into c.
func (o *Orbit) Apply(c *Camera) {
	c.Position = o.Position()
	c.Target = o.Target.Add(o.PanWorld())
}

// SetPitch sets AlphaX, clamped to MaxPitch.
func (o *Orbit) SetPitch(a float32) {
	o.AlphaX = clampf(a, -MaxPitch, MaxPitch)
}

// HandleDrag rotates the orbit from a mouse drag delta in pixels.
func (o *Orbit) HandleDrag(deltaX, deltaY float32) {
	o.AlphaY -= deltaX * o.DragSensitivity
	o.SetPitch(o.AlphaX + deltaY*o.DragSensitivity)
}

// HandleZoom scales the distance from a wheel delta.
func (o *Orbit) HandleZoom(delta float32) {
	o.Distance -= delta * o.Distance * o.ZoomSensitivity
	o.Distance = clampf(o.Distance, o.MinDistance, o.MaxDistance)
}

// HandlePan shifts the pan offset from a mouse drag delta in pixels. The
// step grows with distance so panning feels the same at any zoom.
func (o *Orbit) HandlePan(deltaX, deltaY float32) {
	speed := o.PanSensitivity * o.Distance
	o.Pan.X -= deltaX * speed
	o.Pan.Y += deltaY * speed
}

func clampf(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
