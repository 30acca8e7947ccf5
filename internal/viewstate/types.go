// Package viewstate holds every user tunable of the terrain viewer: the
// orbit, sun, material, water, atmosphere, layer visibility and 2D viewer
// settings, plus the dirty flag that decides whether a frame is redrawn.
//
// State is plain data. It knows nothing about OpenGL, so the studio panels,
// the host loop and the renderer can share one value and it can be saved
// to and loaded from the view-state JSON document.
package viewstate

import (
	"fmt"

	"github.com/chewxy/math32"

	"github.com/Faultbox/qterrain/internal/engine/camera"
	"github.com/Faultbox/qterrain/internal/engine/lighting"
	"github.com/Faultbox/qterrain/internal/engine/water"
	"github.com/Faultbox/qterrain/pkg/math"
)

// RenderMode selects the 2D colormap view or the lit 3D scene.
type RenderMode int

const (
	Render2D RenderMode = iota
	Render3D
)

func (m RenderMode) String() string {
	switch m {
	case Render2D:
		return "2D"
	case Render3D:
		return "3D"
	}
	return fmt.Sprintf("RenderMode(%d)", int(m))
}

// Colormap is the palette of the 2D viewer. Values match the cmap uniform.
type Colormap int

const (
	Gray Colormap = iota
	Viridis
	Turbo
	Magma
)

var colormapNames = [...]string{"gray", "viridis", "turbo", "magma"}

func (c Colormap) String() string {
	if c >= 0 && int(c) < len(colormapNames) {
		return colormapNames[c]
	}
	return fmt.Sprintf("Colormap(%d)", int(c))
}

// Colormaps lists every palette in uniform order.
func Colormaps() []Colormap { return []Colormap{Gray, Viridis, Turbo, Magma} }

// Layer identifies one drawable of the 3D scene.
type Layer int

const (
	LayerPlane Layer = iota
	LayerPoints
	LayerPath
	LayerHeightmap
	LayerRocks
	LayerTrees
	LayerLeaves
	LayerWater
	layerCount
)

var layerNames = [layerCount]string{"plane", "points", "path", "heightmap", "rocks", "trees", "leaves", "water"}

func (l Layer) String() string {
	if l >= 0 && l < layerCount {
		return layerNames[l]
	}
	return fmt.Sprintf("Layer(%d)", int(l))
}

// AllLayers lists the layers in draw order of the visibility panel.
func AllLayers() []Layer {
	out := make([]Layer, layerCount)
	for i := range out {
		out[i] = Layer(i)
	}
	return out
}

// Layers is the visibility of each layer.
type Layers [layerCount]bool

// DefaultLayers shows everything.
func DefaultLayers() Layers {
	var l Layers
	for i := range l {
		l[i] = true
	}
	return l
}

// Orbit is the camera framing.
type Orbit = camera.Orbit

// Lens is the camera projection: field of view and clip planes.
type Lens = camera.Lens

// LightParams places the sun on a sphere around the origin.
type LightParams = lighting.Spherical

// Water is the water surface appearance.
type Water = water.Appearance

// Terrain maps raw heightmap samples to world units.
type Terrain struct {
	ScaleH float32 // vertical exaggeration applied by the shaders
	HmapH0 float32 // world Y of a zero sample
	HmapW  float32 // world span along X and Z
	HmapH  float32 // world height of a unit sample
}

// DefaultTerrain returns a 2 unit wide terrain 0.4 units tall.
func DefaultTerrain() Terrain {
	return Terrain{ScaleH: 1, HmapH0: 0, HmapW: 2, HmapH: 0.4}
}

// Material is the lit pass shading configuration.
type Material struct {
	NormalVisualization bool
	NormalMapScaling    float32
	GammaCorrection     float32
	ApplyTonemap        bool
	BypassShadowMap     bool
	ShadowStrength      float32
	AddAO               bool
	AOStrength          float32
	AORadius            int
	BypassTextureAlbedo bool
	BasicShading        bool // plain diffuse lighting instead of the full lit program
}

// DefaultMaterial returns gamma 2 with shadows on and ambient occlusion off.
func DefaultMaterial() Material {
	return Material{
		NormalMapScaling: 1,
		GammaCorrection:  2,
		ShadowStrength:   0.9,
		AOStrength:       5,
		AORadius:         3,
	}
}

// Atmosphere holds the height fog and scattering settings.
type Atmosphere struct {
	AddFog             bool
	FogColor           [3]float32
	FogDensity         float32
	FogHeight          float32
	AddScattering      bool
	ScatteringDensity  float32
	RayleighColor      [3]float32
	MieColor           [3]float32
	FogStrength        float32
	FogScatteringRatio float32
}

// DefaultAtmosphere returns a disabled white fog with sky-like scattering colors.
func DefaultAtmosphere() Atmosphere {
	return Atmosphere{
		FogColor:           [3]float32{1, 1, 1},
		FogDensity:         10,
		FogHeight:          0.2,
		ScatteringDensity:  0.2,
		RayleighColor:      [3]float32{0.5, 0.7, 1.0},
		MieColor:           [3]float32{1.0, 0.9, 0.8},
		FogStrength:        0.5,
		FogScatteringRatio: 0.5,
	}
}

// Viewer2D configures the flat colormap view.
type Viewer2D struct {
	Zoom        float32
	Offset      math.Vec2
	Hillshading bool
	SunAzimuth  float32 // radians
	SunZenith   float32 // radians
	Cmap        Colormap
}

// DefaultViewer2D returns a slightly zoomed out, hillshaded gray view.
func DefaultViewer2D() Viewer2D {
	return Viewer2D{
		Zoom:        0.8,
		Hillshading: true,
		SunAzimuth:  -math32.Pi / 4,
		SunZenith:   math32.Pi / 4,
		Cmap:        Gray,
	}
}

// ZoomBy scales the zoom around the view center.
func (v *Viewer2D) ZoomBy(wheel float32) {
	v.Zoom *= 1 + 0.1*wheel
	v.Zoom = max(0.05, min(v.Zoom, 100))
}

// PanBy moves the offset so the image follows a drag of (dx, dy) pixels in
// a w x h viewport.
func (v *Viewer2D) PanBy(dx, dy float32, w, h int) {
	if w <= 0 || h <= 0 || v.Zoom == 0 {
		return
	}
	aspect := float32(w) / float32(h)
	v.Offset.X -= 2 * dx / float32(w) * aspect / v.Zoom
	v.Offset.Y += 2 * dy / float32(h) / v.Zoom
}
