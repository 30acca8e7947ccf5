package scene

import (
	"time"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/qterrain/internal/engine/framebuffer"
	"github.com/Faultbox/qterrain/internal/engine/glerr"
	"github.com/Faultbox/qterrain/internal/engine/shader"
	"github.com/Faultbox/qterrain/internal/engine/shaders"
	"github.com/Faultbox/qterrain/internal/engine/shadow"
	"github.com/Faultbox/qterrain/internal/engine/texture"
	"github.com/Faultbox/qterrain/internal/logger"
	"github.com/Faultbox/qterrain/internal/viewstate"
	"github.com/Faultbox/qterrain/pkg/math"
)

// Phase is a step of the frame state machine.
type Phase int

const (
	Idle Phase = iota
	TimeUpdated
	CameraLightUpdated
	ShadowPassDone
	DepthPassDone
	LitPassDone
)

func (p Phase) String() string {
	switch p {
	case Idle:
		return "idle"
	case TimeUpdated:
		return "time_updated"
	case CameraLightUpdated:
		return "camera_light_updated"
	case ShadowPassDone:
		return "shadow_pass_done"
	case DepthPassDone:
		return "depth_pass_done"
	case LitPassDone:
		return "lit_pass_done"
	}
	return "unknown"
}

// plan lists the phases a repaint goes through after the time update. The
// flat 2D view needs neither shadows nor the depth pre-pass.
func plan(mode viewstate.RenderMode) []Phase {
	if mode == viewstate.Render2D {
		return []Phase{CameraLightUpdated, LitPassDone}
	}
	return []Phase{CameraLightUpdated, ShadowPassDone, DepthPassDone, LitPassDone}
}

// Frame advances the clock by dt and repaints at w x h when anything
// changed since the last repaint. It reports whether it drew.
func (v *Viewer) Frame(dt time.Duration, w, h int) bool {
	v.phase = Idle
	secs := float32(dt.Seconds())
	v.clock += secs
	v.state.Advance(secs)
	v.Resize(w, h)
	v.phase = TimeUpdated

	if !v.state.ConsumeDirty() {
		v.phase = Idle
		return false
	}
	v.render()
	return true
}

// ForceFrame repaints regardless of the dirty flag.
func (v *Viewer) ForceFrame(w, h int) {
	v.Resize(w, h)
	v.state.ConsumeDirty()
	v.render()
}

func (v *Viewer) render() {
	v.sync()
	for _, ph := range plan(v.state.Mode()) {
		switch ph {
		case CameraLightUpdated:
			v.updateCameraLight()
		case ShadowPassDone:
			v.shadowPass()
		case DepthPassDone:
			v.depthPass()
		case LitPassDone:
			if v.state.Mode() == viewstate.Render2D {
				v.flatPass()
			} else {
				v.litPass()
			}
		}
		v.phase = ph
		logger.Trace("frame phase", zap.Stringer("phase", ph))
	}

	for _, err := range glerr.Drain() {
		v.log.Debug("gl error", zap.Error(err))
	}
}

func (v *Viewer) updateCameraLight() {
	st := v.state
	st.Lens().Apply(v.cam)
	orbit := st.Orbit()
	orbit.Apply(v.cam)

	scaleH := st.Terrain().ScaleH
	v.light.Target = math.Vec3{}
	v.light.Place(st.Light(), scaleH)
	v.lightSpace = shadow.LightSpaceMatrix(v.light, shadow.DefaultProjection())
	v.model = math.Scale(1, scaleH, 1)
}

func (v *Viewer) occluders(p *shader.Program) {
	st := v.state
	p.SetBool("has_instances", false)
	if st.Visible(viewstate.LayerPlane) {
		v.plane.Draw()
	}
	if st.Visible(viewstate.LayerHeightmap) {
		v.heightmap.Draw()
	}
	for _, k := range []propKind{propRocks, propTrees, propLeaves} {
		if st.Visible(propLayers[k]) {
			v.props[k].inst.Draw(p)
		}
	}
}

// shadowPass renders occluder depth from the light. Water never casts.
func (v *Viewer) shadowPass() {
	p := v.shaders.Get(shaders.DepthPass)
	if p == nil {
		return
	}
	restore := shadow.Begin(v.shadowTarget)
	defer restore()

	p.Use()
	p.SetMat4("model", v.model)
	p.SetMat4("view", math.Identity())
	p.SetMat4("projection", v.lightSpace)
	v.occluders(p)
}

// depthPass renders occluder depth from the camera for the ambient
// occlusion lookup.
func (v *Viewer) depthPass() {
	p := v.shaders.Get(shaders.DepthPass)
	if p == nil {
		return
	}
	restore := v.depthTarget.Begin()
	defer restore()

	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)
	gl.Disable(gl.CULL_FACE)

	p.Use()
	p.SetMat4("model", v.model)
	p.SetMat4("view", v.cam.ViewMatrix())
	p.SetMat4("projection", v.cam.Projection(v.aspect()))
	v.occluders(p)
}

// bindTarget binds the lit pass target and returns the restore function.
func (v *Viewer) bindTarget() func() {
	if v.target == 0 {
		return v.fb.Begin()
	}
	restore := framebuffer.Snapshot()
	gl.BindFramebuffer(gl.FRAMEBUFFER, v.target)
	gl.Viewport(0, 0, v.width, v.height)
	return restore
}

func (v *Viewer) beginTarget() func() {
	restore := v.bindTarget()
	gl.ClearColor(clearColor[0], clearColor[1], clearColor[2], clearColor[3])
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)

	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)
	gl.Disable(gl.CULL_FACE)
	return restore
}

// litProgram returns the program of the lit pass: the diffuse fallback when
// basic shading is asked for or the full program did not compile. It is nil
// when neither is available.
func litProgram(get func(string) *shader.Program, basic bool) *shader.Program {
	if !basic {
		if p := get(shaders.LitPass); p != nil {
			return p
		}
	}
	return get(shaders.DiffuseBasic)
}

func (v *Viewer) litPass() {
	st := v.state
	p := litProgram(v.shaders.Get, st.Material().BasicShading)
	if p == nil {
		return
	}
	restore := v.beginTarget()
	defer restore()

	if st.Wireframe() {
		gl.PolygonMode(gl.FRONT_AND_BACK, gl.LINE)
		defer gl.PolygonMode(gl.FRONT_AND_BACK, gl.FILL)
	}

	p.Use()
	v.textures.BindAndSet(p)
	defer v.textures.Unbind()
	v.setCommon(p)

	mat := st.Material()
	plain := func(c [3]float32) {
		p.SetColor("base_color", c)
		p.SetBool("use_texture_albedo", false)
		p.SetBool("use_water_colors", false)
		p.SetFloat("normal_map_scaling", 0)
		p.SetBool("add_ambiant_occlusion", false)
	}

	if st.Visible(viewstate.LayerPlane) {
		plain(planeColor)
		v.plane.Draw()
	}
	if st.Visible(viewstate.LayerPoints) {
		plain(heightmapColor)
		v.props[propPoints].inst.Draw(p)
	}
	if st.Visible(viewstate.LayerPath) {
		plain(pathColor)
		v.path.Draw()
	}
	if st.Visible(viewstate.LayerHeightmap) {
		plain(heightmapColor)
		p.SetBool("use_texture_albedo", v.textures.Active(texture.Albedo) && !mat.BypassTextureAlbedo)
		if v.textures.Active(texture.Normal) {
			p.SetFloat("normal_map_scaling", mat.NormalMapScaling)
		}
		p.SetBool("add_ambiant_occlusion", mat.AddAO)
		v.heightmap.Draw()
	}
	for _, k := range []propKind{propRocks, propLeaves, propTrees} {
		if st.Visible(propLayers[k]) {
			plain(heightmapColor)
			v.props[k].inst.Draw(p)
		}
	}
	if st.Visible(viewstate.LayerWater) && v.water.IsActive() {
		plain(heightmapColor)
		w := st.Water()
		p.SetBool("use_water_colors", true)
		p.SetFloat("spec_strength", w.SpecStrength)
		v.water.Draw()
	}
}

// setCommon uploads the uniforms every lit draw shares.
func (v *Viewer) setCommon(p *shader.Program) {
	st := v.state
	t := st.Terrain()
	mat := st.Material()
	atm := st.Atmosphere()
	w := st.Water()

	p.SetMat4("model", v.model)
	p.SetMat4("view", v.cam.ViewMatrix())
	p.SetMat4("projection", v.cam.Projection(v.aspect()))
	p.SetMat4("light_space_matrix", v.lightSpace)
	p.SetBool("has_instances", false)

	p.SetFloat("time", v.clock)
	p.SetVec3("camera_pos", v.cam.Position)
	p.SetVec3("view_pos", v.cam.Position)
	p.SetVec3("light_pos", v.light.Position.Sub(v.light.Target))
	p.SetVec2("screen_size", float32(v.width), float32(v.height))
	p.SetFloat("near_plane", v.cam.Near)
	p.SetFloat("far_plane", v.cam.Far)

	p.SetFloat("shininess", 32)
	p.SetFloat("spec_strength", 0.1)

	p.SetBool("bypass_shadow_map", mat.BypassShadowMap)
	p.SetFloat("shadow_strength", mat.ShadowStrength)
	p.SetFloat("ambiant_occlusion_strength", mat.AOStrength)
	p.SetFloat("ambiant_occlusion_radius", float32(mat.AORadius))

	p.SetFloat("scale_h", t.ScaleH)
	p.SetFloat("hmap_h0", t.HmapH0)
	p.SetFloat("hmap_h", t.HmapH)

	p.SetBool("normal_visualization", mat.NormalVisualization)
	p.SetFloat("gamma_correction", mat.GammaCorrection)
	p.SetBool("apply_tonemap", mat.ApplyTonemap)

	p.SetBool("add_fog", atm.AddFog)
	p.SetColor("fog_color", atm.FogColor)
	p.SetFloat("fog_density", atm.FogDensity)
	p.SetFloat("fog_height", atm.FogHeight)
	p.SetBool("add_atmospheric_scattering", atm.AddScattering)
	p.SetFloat("scattering_density", atm.ScatteringDensity)
	p.SetColor("rayleigh_color", atm.RayleighColor)
	p.SetColor("mie_color", atm.MieColor)
	p.SetFloat("fog_strength", atm.FogStrength)
	p.SetFloat("fog_scattering_ratio", atm.FogScatteringRatio)

	p.SetColor("color_shallow_water", w.ColorShallow)
	p.SetColor("color_deep_water", w.ColorDeep)
	p.SetFloat("water_color_depth", w.ColorDepth)
	p.SetBool("add_water_foam", w.AddFoam)
	p.SetColor("foam_color", w.FoamColor)
	p.SetFloat("foam_depth", w.FoamDepth)
	p.SetBool("add_water_waves", w.AddWaves)
	p.SetFloat("angle_spread_ratio", w.AngleSpreadRatio)
	p.SetFloat("waves_alpha", w.WavesAlpha)
	p.SetFloat("waves_kw", w.WavesKw)
	p.SetFloat("waves_amplitude", w.WavesAmplitude)
	p.SetFloat("waves_normal_amplitude", w.NormalAmplitude)
	p.SetFloat("waves_speed", w.EffectiveSpeed())
}

// flatPass draws the heightmap straight down through a colormap.
func (v *Viewer) flatPass() {
	st := v.state
	p := v.shaders.Get(shaders.Viewer2DCmap)
	if p == nil {
		return
	}
	restore := v.beginTarget()
	defer restore()

	if !st.Visible(viewstate.LayerHeightmap) {
		return
	}

	t := st.Terrain()
	v2 := st.Viewer2D()

	p.Use()
	v.textures.BindAndSet(p)
	defer v.textures.Unbind()

	p.SetMat4("model", math.Identity())
	p.SetFloat("aspect_ratio", v.aspect())
	p.SetFloat("zoom", v2.Zoom)
	p.SetVec2("offset", v2.Offset.X, v2.Offset.Y)
	p.SetFloat("hmap_h0", t.HmapH0)
	p.SetFloat("hmap_h", t.HmapH)
	p.SetBool("hillshading", v2.Hillshading)
	p.SetFloat("sun_azimuth", v2.SunAzimuth)
	p.SetFloat("sun_zenith", v2.SunZenith)
	p.SetInt("cmap", int32(v2.Cmap))
	p.SetFloat("gamma_correction", st.Material().GammaCorrection)

	v.heightmap.Draw()
}

func (v *Viewer) aspect() float32 {
	return float32(v.width) / float32(max(v.height, 1))
}
