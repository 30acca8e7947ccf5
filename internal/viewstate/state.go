package viewstate

import (
	"github.com/Faultbox/qterrain/internal/engine/camera"
	"github.com/Faultbox/qterrain/internal/engine/lighting"
	"github.com/Faultbox/qterrain/internal/engine/water"
)

// AutoRotateSpeed is the yaw rate of camera and light auto-rotation in
// radians per second.
const AutoRotateSpeed = 0.5

// State is the complete set of viewer tunables. The zero value is not
// useful; use New.
type State struct {
	title     string
	mode      RenderMode
	wireframe bool

	autoRotateLight  bool
	autoRotateCamera bool

	orbit      Orbit
	lens       Lens
	light      LightParams
	terrain    Terrain
	layers     Layers
	material   Material
	water      Water
	atmosphere Atmosphere
	viewer2D   Viewer2D

	dirty bool
}

// New returns a state holding the defaults. It starts dirty so the first
// frame is drawn.
func New() *State {
	s := &State{}
	s.Reset()
	return s
}

// Reset restores every default except the title and marks the state dirty.
func (s *State) Reset() {
	*s = State{
		title:      s.title,
		mode:       Render3D,
		orbit:      *camera.NewOrbit(),
		lens:       camera.DefaultLens(),
		light:      lighting.DefaultSpherical(),
		terrain:    DefaultTerrain(),
		layers:     DefaultLayers(),
		material:   DefaultMaterial(),
		water:      water.DefaultAppearance(),
		atmosphere: DefaultAtmosphere(),
		viewer2D:   DefaultViewer2D(),
		dirty:      true,
	}
}

// ResetCamera restores the default orbit framing.
func (s *State) ResetCamera() {
	o := s.orbit
	o.Reset()
	s.SetOrbit(o)
}

func set[T comparable](s *State, dst *T, v T) {
	if *dst != v {
		*dst = v
		s.dirty = true
	}
}

// MarkDirty requests a redraw.
func (s *State) MarkDirty() { s.dirty = true }

// Dirty reports whether a redraw is pending.
func (s *State) Dirty() bool { return s.dirty }

// ConsumeDirty returns the dirty flag and clears it.
func (s *State) ConsumeDirty() bool {
	d := s.dirty
	s.dirty = false
	return d
}

func (s *State) Title() string { return s.title }
func (s *State) SetTitle(t string) { s.title = t }
func (s *State) Mode() RenderMode { return s.mode }
func (s *State) SetMode(m RenderMode) { set(s, &s.mode, m) }

// ToggleMode switches between the 2D and 3D views.
func (s *State) ToggleMode() {
	if s.mode == Render2D {
		s.SetMode(Render3D)
	} else {
		s.SetMode(Render2D)
	}
}

func (s *State) Wireframe() bool { return s.wireframe }
func (s *State) SetWireframe(v bool) { set(s, &s.wireframe, v) }
func (s *State) AutoRotateLight() bool { return s.autoRotateLight }
func (s *State) AutoRotateCamera() bool { return s.autoRotateCamera }

// SetAutoRotateLight does not mark the state dirty by itself; Advance does
// once the light actually moves.
func (s *State) SetAutoRotateLight(v bool) { s.autoRotateLight = v }
func (s *State) SetAutoRotateCamera(v bool) { s.autoRotateCamera = v }

func (s *State) Orbit() Orbit { return s.orbit }
func (s *State) SetOrbit(o Orbit) { set(s, &s.orbit, o) }
func (s *State) Lens() Lens { return s.lens }

// SetLens stores l clamped to a usable projection.
func (s *State) SetLens(l Lens) { set(s, &s.lens, l.Clamped()) }

func (s *State) Light() LightParams { return s.light }
func (s *State) SetLight(l LightParams) { set(s, &s.light, l) }
func (s *State) Terrain() Terrain { return s.terrain }
func (s *State) SetTerrain(t Terrain) { set(s, &s.terrain, t) }
func (s *State) Layers() Layers { return s.layers }
func (s *State) SetLayers(l Layers) { set(s, &s.layers, l) }
func (s *State) Material() Material { return s.material }
func (s *State) SetMaterial(m Material) { set(s, &s.material, m) }
func (s *State) Water() Water { return s.water }
func (s *State) SetWater(w Water) { set(s, &s.water, w) }
func (s *State) Atmosphere() Atmosphere { return s.atmosphere }
func (s *State) SetAtmosphere(a Atmosphere) { set(s, &s.atmosphere, a) }
func (s *State) Viewer2D() Viewer2D { return s.viewer2D }
func (s *State) SetViewer2D(v Viewer2D) { set(s, &s.viewer2D, v) }

// Visible reports whether a layer is drawn.
func (s *State) Visible(l Layer) bool {
	if l < 0 || l >= layerCount {
		return false
	}
	return s.layers[l]
}

// SetVisible shows or hides one layer.
func (s *State) SetVisible(l Layer, v bool) {
	if l < 0 || l >= layerCount {
		return
	}
	set(s, &s.layers[l], v)
}

// Advance moves time dependent state forward by dt seconds: auto-rotation of
// the camera and the light, and animated waves, which need a redraw every
// frame while the water layer is shown.
func (s *State) Advance(dt float32) {
	if dt <= 0 {
		return
	}
	if s.autoRotateCamera {
		s.orbit.AlphaY += AutoRotateSpeed * dt
		s.dirty = true
	}
	if s.autoRotateLight {
		s.light.Phi += AutoRotateSpeed * dt
		s.dirty = true
	}
	if s.water.Animate && s.water.AddWaves && s.layers[LayerWater] {
		s.dirty = true
	}
}
