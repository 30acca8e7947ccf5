package studio

import (
	"fmt"
	"path/filepath"

	"github.com/AllenDang/cimgui-go/imgui"

	"github.com/Faultbox/qterrain/internal/engine/texture"
	"github.com/Faultbox/qterrain/internal/viewstate"
)

func section(label string) bool {
	return imgui.TreeNodeExStrV(label, imgui.TreeNodeFlagsDefaultOpen)
}

func sliderFloat(label string, v *float32, lo, hi float32) bool {
	return imgui.SliderFloatV(label, v, lo, hi, "%.3f", imgui.SliderFlagsNone)
}

func (s *Studio) renderControls() {
	st := s.viewer.State()

	s.renderGeneral(st)
	s.renderData()
	if st.Mode() == viewstate.Render2D {
		s.renderViewer2D(st)
		return
	}
	s.renderCamera(st)
	s.renderLight(st)
	s.renderTerrain(st)
	s.renderLayers(st)
	s.renderMaterial(st)
	s.renderWater(st)
	s.renderAtmosphere(st)
}

func (s *Studio) renderGeneral(st *viewstate.State) {
	if !section("General") {
		return
	}
	is3D := st.Mode() == viewstate.Render3D
	if imgui.Checkbox("3D view", &is3D) {
		if is3D {
			st.SetMode(viewstate.Render3D)
		} else {
			st.SetMode(viewstate.Render2D)
		}
	}
	wire := st.Wireframe()
	if imgui.Checkbox("Wireframe", &wire) {
		st.SetWireframe(wire)
	}
	rotLight := st.AutoRotateLight()
	if imgui.Checkbox("Auto-rotate light", &rotLight) {
		st.SetAutoRotateLight(rotLight)
	}
	rotCam := st.AutoRotateCamera()
	if imgui.Checkbox("Auto-rotate camera", &rotCam) {
		st.SetAutoRotateCamera(rotCam)
	}
	if imgui.Button("Reset all") {
		st.Reset()
	}
	imgui.TreePop()
}

func (s *Studio) renderData() {
	if !imgui.TreeNodeExStrV("Data", imgui.TreeNodeFlagsNone) {
		return
	}
	cfg := s.data.Config()
	for _, f := range []struct {
		label, path string
		reset       func()
	}{
		{"Heightmap", cfg.Heightmap, s.viewer.ResetHeightmap},
		{"Water", cfg.Water, s.viewer.ResetWater},
		{"Albedo", cfg.Albedo, func() { s.viewer.ResetTexture(texture.Albedo) }},
		{"Normal", cfg.Normal, func() { s.viewer.ResetTexture(texture.Normal) }},
	} {
		name := "(none)"
		if f.path != "" {
			name = filepath.Base(f.path)
		}
		imgui.Text(fmt.Sprintf("%s: %s", f.label, name))
		if f.path != "" && imgui.IsItemHovered() {
			imgui.SetTooltip(f.path)
		}
		imgui.SameLine()
		if imgui.Button("x##" + f.label) {
			f.reset()
		}
	}
	if imgui.Button("Clear scene") {
		s.viewer.Clear()
	}
	if hm := s.viewer.Heightmap(); hm != nil {
		imgui.TextDisabled(fmt.Sprintf("%dx%d samples, %d triangles", hm.Width, hm.Height, hm.TriangleCount()))
	}
	imgui.TreePop()
}

func (s *Studio) renderCamera(st *viewstate.State) {
	if !section("Camera") {
		return
	}
	o := st.Orbit()
	sliderFloat("Distance", &o.Distance, o.MinDistance, o.MaxDistance)
	imgui.SliderAngleV("Pitch", &o.AlphaX, -89, 89, "%.0f deg", imgui.SliderFlagsNone)
	imgui.SliderAngleV("Yaw", &o.AlphaY, -180, 180, "%.0f deg", imgui.SliderFlagsNone)
	imgui.DragFloatV("Pan X", &o.Pan.X, 0.01, -10, 10, "%.2f", imgui.SliderFlagsNone)
	imgui.DragFloatV("Pan Y", &o.Pan.Y, 0.01, -10, 10, "%.2f", imgui.SliderFlagsNone)
	o.SetPitch(o.AlphaX)
	st.SetOrbit(o)

	l := st.Lens()
	imgui.SliderAngleV("FOV", &l.FOV, 10, 179, "%.0f deg", imgui.SliderFlagsNone)
	imgui.DragFloatV("Near", &l.Near, 0.001, 0.001, 10, "%.3f", imgui.SliderFlagsNone)
	imgui.DragFloatV("Far", &l.Far, 1, 1, 1000, "%.0f", imgui.SliderFlagsNone)
	st.SetLens(l)
	if imgui.Button("Reset camera") {
		st.ResetCamera()
	}
	imgui.TreePop()
}

func (s *Studio) renderLight(st *viewstate.State) {
	if !section("Sun") {
		return
	}
	l := st.Light()
	imgui.SliderAngleV("Elevation", &l.Theta, 0, 90, "%.0f deg", imgui.SliderFlagsNone)
	imgui.SliderAngleV("Azimuth", &l.Phi, -180, 180, "%.0f deg", imgui.SliderFlagsNone)
	sliderFloat("Distance##light", &l.Distance, 1, 50)
	st.SetLight(l)
	imgui.TreePop()
}

func (s *Studio) renderTerrain(st *viewstate.State) {
	if !section("Terrain") {
		return
	}
	t := st.Terrain()
	sliderFloat("Vertical scale", &t.ScaleH, 0.1, 10)
	imgui.DragFloatV("Base height", &t.HmapH0, 0.01, -10, 10, "%.3f", imgui.SliderFlagsNone)
	imgui.DragFloatV("Width", &t.HmapW, 0.01, 0.01, 100, "%.3f", imgui.SliderFlagsNone)
	imgui.DragFloatV("Height", &t.HmapH, 0.01, 0.001, 100, "%.3f", imgui.SliderFlagsNone)
	st.SetTerrain(t)
	imgui.TreePop()
}

func (s *Studio) renderLayers(st *viewstate.State) {
	if !section("Layers") {
		return
	}
	l := st.Layers()
	for _, layer := range viewstate.AllLayers() {
		imgui.Checkbox(layer.String(), &l[layer])
	}
	st.SetLayers(l)
	imgui.TreePop()
}

func (s *Studio) renderMaterial(st *viewstate.State) {
	if !imgui.TreeNodeExStrV("Material", imgui.TreeNodeFlagsNone) {
		return
	}
	m := st.Material()
	imgui.Checkbox("Basic shading", &m.BasicShading)
	imgui.Checkbox("Normal visualization", &m.NormalVisualization)
	sliderFloat("Normal map scaling", &m.NormalMapScaling, 0, 4)
	sliderFloat("Gamma", &m.GammaCorrection, 1, 3)
	imgui.Checkbox("Tonemap", &m.ApplyTonemap)
	imgui.Checkbox("Bypass albedo", &m.BypassTextureAlbedo)
	imgui.Checkbox("Bypass shadows", &m.BypassShadowMap)
	sliderFloat("Shadow strength", &m.ShadowStrength, 0, 1)
	imgui.Checkbox("Ambient occlusion", &m.AddAO)
	sliderFloat("AO strength", &m.AOStrength, 0, 20)
	radius := int32(m.AORadius)
	if imgui.SliderIntV("AO radius", &radius, 1, 16, "%d", imgui.SliderFlagsNone) {
		m.AORadius = int(radius)
	}
	st.SetMaterial(m)
	imgui.TreePop()
}

func (s *Studio) renderWater(st *viewstate.State) {
	if !imgui.TreeNodeExStrV("Water", imgui.TreeNodeFlagsNone) {
		return
	}
	w := st.Water()

	preview := "custom"
	if s.preset >= 0 && s.preset < s.presets.Len() {
		preview = s.presets.At(s.preset).Name
	}
	if imgui.BeginCombo("Preset", preview) {
		for i := 0; i < s.presets.Len(); i++ {
			p := s.presets.At(i)
			if imgui.SelectableBoolV(p.Name, i == s.preset, 0, imgui.NewVec2(0, 0)) {
				s.preset = i
				w.ApplyPreset(p)
			}
		}
		imgui.EndCombo()
	}
	if imgui.ColorEdit3V("Shallow", &w.ColorShallow, 0) {
		s.preset = -1
	}
	if imgui.ColorEdit3V("Deep", &w.ColorDeep, 0) {
		s.preset = -1
	}
	sliderFloat("Color depth", &w.ColorDepth, 0, 0.1)
	sliderFloat("Specular", &w.SpecStrength, 0, 2)

	imgui.Checkbox("Foam", &w.AddFoam)
	imgui.ColorEdit3V("Foam color", &w.FoamColor, 0)
	sliderFloat("Foam depth", &w.FoamDepth, 0, 0.05)

	imgui.Checkbox("Waves", &w.AddWaves)
	imgui.SliderAngleV("Direction", &w.WavesAlpha, -180, 180, "%.0f deg", imgui.SliderFlagsNone)
	sliderFloat("Angle spread", &w.AngleSpreadRatio, 0, 1)
	sliderFloat("Wavenumber", &w.WavesKw, 1, 1024)
	sliderFloat("Amplitude", &w.WavesAmplitude, 0, 0.05)
	sliderFloat("Normal amplitude", &w.NormalAmplitude, 0, 0.2)
	imgui.Checkbox("Animate", &w.Animate)
	sliderFloat("Speed", &w.WavesSpeed, 0, 2)
	st.SetWater(w)
	imgui.TreePop()
}

func (s *Studio) renderAtmosphere(st *viewstate.State) {
	if !imgui.TreeNodeExStrV("Atmosphere", imgui.TreeNodeFlagsNone) {
		return
	}
	a := st.Atmosphere()
	imgui.Checkbox("Fog", &a.AddFog)
	imgui.ColorEdit3V("Fog color", &a.FogColor, 0)
	sliderFloat("Fog density", &a.FogDensity, 0, 50)
	sliderFloat("Fog height", &a.FogHeight, 0, 2)
	imgui.Checkbox("Scattering", &a.AddScattering)
	sliderFloat("Scattering density", &a.ScatteringDensity, 0, 2)
	imgui.ColorEdit3V("Rayleigh", &a.RayleighColor, 0)
	imgui.ColorEdit3V("Mie", &a.MieColor, 0)
	sliderFloat("Fog strength", &a.FogStrength, 0, 1)
	sliderFloat("Fog/scattering", &a.FogScatteringRatio, 0, 1)
	st.SetAtmosphere(a)
	imgui.TreePop()
}

func (s *Studio) renderViewer2D(st *viewstate.State) {
	if !section("2D View") {
		return
	}
	v := st.Viewer2D()
	sliderFloat("Zoom", &v.Zoom, 0.05, 100)
	imgui.DragFloatV("Offset X", &v.Offset.X, 0.01, -10, 10, "%.2f", imgui.SliderFlagsNone)
	imgui.DragFloatV("Offset Y", &v.Offset.Y, 0.01, -10, 10, "%.2f", imgui.SliderFlagsNone)
	imgui.Checkbox("Hillshading", &v.Hillshading)
	imgui.SliderAngleV("Sun azimuth", &v.SunAzimuth, -180, 180, "%.0f deg", imgui.SliderFlagsNone)
	imgui.SliderAngleV("Sun zenith", &v.SunZenith, 0, 90, "%.0f deg", imgui.SliderFlagsNone)

	if imgui.BeginCombo("Colormap", v.Cmap.String()) {
		for _, c := range viewstate.Colormaps() {
			if imgui.SelectableBoolV(c.String(), c == v.Cmap, 0, imgui.NewVec2(0, 0)) {
				v.Cmap = c
			}
		}
		imgui.EndCombo()
	}
	if imgui.Button("Reset 2D view") {
		v = viewstate.DefaultViewer2D()
	}
	st.SetViewer2D(v)
	imgui.TreePop()
}
