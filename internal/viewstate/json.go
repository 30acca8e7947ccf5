package viewstate

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/Faultbox/qterrain/internal/engine/camera"
	"github.com/Faultbox/qterrain/internal/engine/lighting"
)

// The document keeps the flat key layout written by earlier versions of the
// viewer, so old files still load. Vectors are {"x","y","z"} objects.

type vec3 struct {
	X float32 `json:"x"`
	Y float32 `json:"y"`
	Z float32 `json:"z"`
}

type vec2 struct {
	X float32 `json:"x"`
	Y float32 `json:"y"`
}

// pan shares math.Vec3's layout but only X and Y are stored.
type pan struct {
	X float32 `json:"x"`
	Y float32 `json:"y"`
	Z float32 `json:"-"`
}

type color [3]float32

func (c color) MarshalJSON() ([]byte, error) {
	return json.Marshal(vec3{c[0], c[1], c[2]})
}

func (c *color) UnmarshalJSON(b []byte) error {
	v := vec3{c[0], c[1], c[2]}
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	*c = color{v.X, v.Y, v.Z}
	return nil
}

type field struct {
	key string
	ptr func(s *State) any
}

var fields = []field{
	{"title", func(s *State) any { return &s.title }},
	{"render_type", func(s *State) any { return &s.mode }},
	{"wireframe_mode", func(s *State) any { return &s.wireframe }},
	{"auto_rotate_light", func(s *State) any { return &s.autoRotateLight }},
	{"auto_rotate_camera", func(s *State) any { return &s.autoRotateCamera }},

	{"target", func(s *State) any { return (*vec3)(&s.orbit.Target) }},
	{"pan_offset", func(s *State) any { return (*pan)(&s.orbit.Pan) }},
	{"distance", func(s *State) any { return &s.orbit.Distance }},
	{"alpha_x", func(s *State) any { return &s.orbit.AlphaX }},
	{"alpha_y", func(s *State) any { return &s.orbit.AlphaY }},
	{"light_phi", func(s *State) any { return &s.light.Phi }},
	{"light_theta", func(s *State) any { return &s.light.Theta }},
	{"light_distance", func(s *State) any { return &s.light.Distance }},

	{"scale_h", func(s *State) any { return &s.terrain.ScaleH }},
	{"hmap_h0", func(s *State) any { return &s.terrain.HmapH0 }},
	{"hmap_w", func(s *State) any { return &s.terrain.HmapW }},
	{"hmap_h", func(s *State) any { return &s.terrain.HmapH }},

	{"render_plane", func(s *State) any { return &s.layers[LayerPlane] }},
	{"render_points", func(s *State) any { return &s.layers[LayerPoints] }},
	{"render_path", func(s *State) any { return &s.layers[LayerPath] }},
	{"render_hmap", func(s *State) any { return &s.layers[LayerHeightmap] }},
	{"render_rocks", func(s *State) any { return &s.layers[LayerRocks] }},
	{"render_trees", func(s *State) any { return &s.layers[LayerTrees] }},
	{"render_leaves", func(s *State) any { return &s.layers[LayerLeaves] }},
	{"render_water", func(s *State) any { return &s.layers[LayerWater] }},

	{"normal_visualization", func(s *State) any { return &s.material.NormalVisualization }},
	{"normal_map_scaling", func(s *State) any { return &s.material.NormalMapScaling }},
	{"gamma_correction", func(s *State) any { return &s.material.GammaCorrection }},
	{"apply_tonemap", func(s *State) any { return &s.material.ApplyTonemap }},
	{"bypass_shadow_map", func(s *State) any { return &s.material.BypassShadowMap }},
	{"shadow_strength", func(s *State) any { return &s.material.ShadowStrength }},
	{"add_ambiant_occlusion", func(s *State) any { return &s.material.AddAO }},
	{"ambiant_occlusion_strength", func(s *State) any { return &s.material.AOStrength }},
	{"ambiant_occlusion_radius", func(s *State) any { return &s.material.AORadius }},
	{"bypass_texture_albedo", func(s *State) any { return &s.material.BypassTextureAlbedo }},
	{"basic_shading", func(s *State) any { return &s.material.BasicShading }},

	{"water_elevation", func(s *State) any { return &s.water.Elevation }},
	{"color_shallow_water", func(s *State) any { return (*color)(&s.water.ColorShallow) }},
	{"color_deep_water", func(s *State) any { return (*color)(&s.water.ColorDeep) }},
	{"water_color_depth", func(s *State) any { return &s.water.ColorDepth }},
	{"water_spec_strength", func(s *State) any { return &s.water.SpecStrength }},
	{"add_water_foam", func(s *State) any { return &s.water.AddFoam }},
	{"foam_color", func(s *State) any { return (*color)(&s.water.FoamColor) }},
	{"foam_depth", func(s *State) any { return &s.water.FoamDepth }},
	{"add_water_waves", func(s *State) any { return &s.water.AddWaves }},
	{"angle_spread_ratio", func(s *State) any { return &s.water.AngleSpreadRatio }},
	{"waves_alpha", func(s *State) any { return &s.water.WavesAlpha }},
	{"waves_kw", func(s *State) any { return &s.water.WavesKw }},
	{"waves_amplitude", func(s *State) any { return &s.water.WavesAmplitude }},
	{"waves_normal_amplitude", func(s *State) any { return &s.water.NormalAmplitude }},
	{"animate_waves", func(s *State) any { return &s.water.Animate }},
	{"waves_speed", func(s *State) any { return &s.water.WavesSpeed }},

	{"add_fog", func(s *State) any { return &s.atmosphere.AddFog }},
	{"fog_color", func(s *State) any { return (*color)(&s.atmosphere.FogColor) }},
	{"fog_density", func(s *State) any { return &s.atmosphere.FogDensity }},
	{"fog_height", func(s *State) any { return &s.atmosphere.FogHeight }},
	{"add_atmospheric_scattering", func(s *State) any { return &s.atmosphere.AddScattering }},
	{"scattering_density", func(s *State) any { return &s.atmosphere.ScatteringDensity }},
	{"rayleigh_color", func(s *State) any { return (*color)(&s.atmosphere.RayleighColor) }},
	{"mie_color", func(s *State) any { return (*color)(&s.atmosphere.MieColor) }},
	{"fog_strength", func(s *State) any { return &s.atmosphere.FogStrength }},
	{"fog_scattering_ratio", func(s *State) any { return &s.atmosphere.FogScatteringRatio }},

	{"viewer2d_settings.zoom", func(s *State) any { return &s.viewer2D.Zoom }},
	{"viewer2d_settings.offset", func(s *State) any { return (*vec2)(&s.viewer2D.Offset) }},
	{"viewer2d_settings.hillshading", func(s *State) any { return &s.viewer2D.Hillshading }},
	{"viewer2d_settings.sun_azimuth", func(s *State) any { return &s.viewer2D.SunAzimuth }},
	{"viewer2d_settings.sun_zenith", func(s *State) any { return &s.viewer2D.SunZenith }},
	{"viewer2d_settings.cmap", func(s *State) any { return &s.viewer2D.Cmap }},
}

type cameraRecord struct {
	Position vec3    `json:"position"`
	Target   vec3    `json:"target"`
	Up       vec3    `json:"up"`
	FOV      float32 `json:"fov"`
	Near     float32 `json:"near_plane"`
	Far      float32 `json:"far_plane"`
}

// lensRecord is the part of the camera record read back on load. Absent
// values keep the current lens.
type lensRecord struct {
	FOV  *float32 `json:"fov"`
	Near *float32 `json:"near_plane"`
	Far  *float32 `json:"far_plane"`
}

func (r lensRecord) apply(l *Lens) {
	if r.FOV != nil {
		l.FOV = *r.FOV
	}
	if r.Near != nil {
		l.Near = *r.Near
	}
	if r.Far != nil {
		l.Far = *r.Far
	}
	*l = l.Clamped()
}

type lightRecord struct {
	Position vec3 `json:"position"`
	Target   vec3 `json:"target"`
}

// MarshalJSON writes the view-state document. The camera and light records
// are derived from the orbit and sun angles. Only the camera lens is read
// back.
func (s *State) MarshalJSON() ([]byte, error) {
	doc := make(map[string]any, len(fields)+2)
	for _, f := range fields {
		doc[f.key] = f.ptr(s)
	}

	cam := camera.New()
	s.lens.Apply(cam)
	s.orbit.Apply(cam)
	doc["camera"] = cameraRecord{
		Position: vec3(cam.Position),
		Target:   vec3(cam.Target),
		Up:       vec3(cam.Up),
		FOV:      cam.FOV,
		Near:     cam.Near,
		Far:      cam.Far,
	}

	var l lighting.Light
	l.Place(s.light, s.terrain.ScaleH)
	doc["light"] = lightRecord{Position: vec3(l.Position), Target: vec3(l.Target)}

	return json.Marshal(doc)
}

// UnmarshalJSON applies a view-state document. Missing and unknown keys are
// skipped. A value of the wrong type fails the whole load and leaves s
// untouched.
func (s *State) UnmarshalJSON(b []byte) error {
	var doc map[string]json.RawMessage
	if err := json.Unmarshal(b, &doc); err != nil {
		return fmt.Errorf("view state: %w", err)
	}

	next := *s
	for _, f := range fields {
		raw, ok := doc[f.key]
		if !ok {
			continue
		}
		if err := json.Unmarshal(raw, f.ptr(&next)); err != nil {
			return fmt.Errorf("view state key %q: %w", f.key, err)
		}
	}
	if raw, ok := doc["camera"]; ok {
		var rec lensRecord
		if err := json.Unmarshal(raw, &rec); err != nil {
			return fmt.Errorf("view state key %q: %w", "camera", err)
		}
		rec.apply(&next.lens)
	}
	next.orbit.SetPitch(next.orbit.AlphaX)
	next.dirty = true
	*s = next
	return nil
}

// Load reads a view-state document from path.
func (s *State) Load(path string) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read view state: %w", err)
	}
	return s.UnmarshalJSON(b)
}

// Save writes the view-state document to path.
func (s *State) Save(path string) error {
	b, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode view state: %w", err)
	}
	if err := os.WriteFile(path, b, 0644); err != nil {
		return fmt.Errorf("failed to write view state: %w", err)
	}
	return nil
}
