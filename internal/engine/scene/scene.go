// Package scene is the render orchestrator. A Viewer owns every GPU object
// the terrain view needs and turns the tunables in viewstate.State into
// shadow, depth and lit passes.
//
// Every method must run on the goroutine that owns the GL context.
package scene

import (
	"fmt"
	"image"

	"go.uber.org/zap"

	"github.com/Faultbox/qterrain/internal/engine/camera"
	"github.com/Faultbox/qterrain/internal/engine/framebuffer"
	"github.com/Faultbox/qterrain/internal/engine/lighting"
	"github.com/Faultbox/qterrain/internal/engine/mesh"
	"github.com/Faultbox/qterrain/internal/engine/shader"
	"github.com/Faultbox/qterrain/internal/engine/shaders"
	"github.com/Faultbox/qterrain/internal/engine/shadow"
	"github.com/Faultbox/qterrain/internal/engine/terrain"
	"github.com/Faultbox/qterrain/internal/engine/texture"
	"github.com/Faultbox/qterrain/internal/logger"
	"github.com/Faultbox/qterrain/internal/viewstate"
	"github.com/Faultbox/qterrain/pkg/math"
)

// Config holds viewer configuration.
type Config struct {
	Width            int32
	Height           int32
	ShadowResolution int32
	DepthResolution  int32
}

// DefaultConfig returns the default viewer configuration.
func DefaultConfig() Config {
	return Config{
		Width:            1280,
		Height:           720,
		ShadowResolution: shadow.DefaultResolution,
		DepthResolution:  512,
	}
}

// Viewer renders a heightmap scene.
type Viewer struct {
	state *viewstate.State
	log   *zap.Logger

	shaders  *shader.Registry
	textures *texture.Registry

	shadowTarget *framebuffer.DepthTarget
	depthTarget  *framebuffer.DepthTarget

	// fb is the offscreen color target used unless the host hands over its
	// own framebuffer.
	fb     *framebuffer.Framebuffer
	target uint32
	width  int32
	height int32

	cam        *camera.Camera
	light      lighting.Light
	model      math.Mat4
	lightSpace math.Mat4
	clock      float32
	phase      Phase

	plane     mesh.Mesh
	heightmap mesh.Mesh
	water     mesh.Mesh
	path      mesh.Mesh
	hm        *terrain.Heightmap

	props [propCount]prop

	in    inputs
	built builtFor
}

// New compiles the shader programs and allocates the render targets.
// Resources created before a failure are released.
func New(cfg Config) (*Viewer, error) {
	if cfg.ShadowResolution <= 0 {
		cfg.ShadowResolution = shadow.DefaultResolution
	}
	if cfg.DepthResolution <= 0 {
		cfg.DepthResolution = 512
	}

	v := &Viewer{
		state:    viewstate.New(),
		log:      logger.Named("scene"),
		shaders:  shader.NewRegistry(),
		textures: texture.NewRegistry(),
		cam:      camera.New(),
		model:    math.Identity(),
		width:    max(cfg.Width, 1),
		height:   max(cfg.Height, 1),
	}

	// A program that fails to compile is logged by the registry and the
	// passes using it are skipped.
	for _, src := range shaders.All() {
		v.shaders.Add(src.Name, src.Vertex, src.Fragment)
	}

	// Registration order fixes the texture units.
	for _, name := range []string{texture.Albedo, texture.Hmap, texture.Normal} {
		v.textures.Add(name)
	}
	shadowTex := v.textures.AddDepth(texture.ShadowMap, cfg.ShadowResolution, cfg.ShadowResolution, true)
	depthTex := v.textures.AddDepth(texture.DepthMap, cfg.DepthResolution, cfg.DepthResolution, false)

	var err error
	if v.shadowTarget, err = framebuffer.NewDepthTarget(shadowTex); err != nil {
		v.Destroy()
		return nil, fmt.Errorf("creating shadow target: %w", err)
	}
	if v.depthTarget, err = framebuffer.NewDepthTarget(depthTex); err != nil {
		v.Destroy()
		return nil, fmt.Errorf("creating depth target: %w", err)
	}
	if v.fb, err = framebuffer.New(v.width, v.height); err != nil {
		v.Destroy()
		return nil, fmt.Errorf("creating color target: %w", err)
	}

	v.built = builtFrom(v.state)
	if err := v.createProps(); err != nil {
		v.Destroy()
		return nil, fmt.Errorf("creating prop meshes: %w", err)
	}

	v.log.Info("viewer ready",
		zap.Int32("shadow_resolution", cfg.ShadowResolution),
		zap.Int32("depth_resolution", cfg.DepthResolution),
		zap.Strings("programs", v.shaders.Names()))
	return v, nil
}

// State returns the tunables the viewer renders from. Setters on it mark
// the viewer dirty.
func (v *Viewer) State() *viewstate.State {
	return v.state
}

// Phase returns where the last frame stopped.
func (v *Viewer) Phase() Phase {
	return v.phase
}

// SetTargetFramebuffer makes the lit pass draw into fbo. Zero selects the
// viewer's own offscreen target.
func (v *Viewer) SetTargetFramebuffer(fbo uint32) {
	if fbo != v.target {
		v.target = fbo
		v.state.MarkDirty()
	}
}

// TargetFramebuffer returns the framebuffer the lit pass draws into.
func (v *Viewer) TargetFramebuffer() uint32 {
	if v.target != 0 {
		return v.target
	}
	return v.fb.FBO()
}

// ColorTexture returns the offscreen color attachment, for hosts that show
// the scene as an image.
func (v *Viewer) ColorTexture() uint32 {
	return v.fb.ColorTexture()
}

// Size returns the viewport size of the last frame.
func (v *Viewer) Size() (width, height int32) {
	return v.width, v.height
}

// Resize changes the viewport. The offscreen target follows.
func (v *Viewer) Resize(width, height int) {
	w, h := max(int32(width), 1), max(int32(height), 1)
	if w == v.width && h == v.height {
		return
	}
	v.width, v.height = w, h
	v.fb.Resize(w, h)
	v.state.MarkDirty()
}

// Present copies the offscreen image into dst at the given size. It is a
// no-op when the host supplied its own target.
func (v *Viewer) Present(dst uint32, width, height int) {
	if v.target != 0 {
		return
	}
	v.fb.BlitTo(dst, int32(width), int32(height))
}

// CaptureImage reads back the current target.
func (v *Viewer) CaptureImage() *image.RGBA {
	pix := framebuffer.ReadRGBA(v.TargetFramebuffer(), v.width, v.height)
	return &image.RGBA{
		Pix:    pix,
		Stride: int(v.width) * 4,
		Rect:   image.Rect(0, 0, int(v.width), int(v.height)),
	}
}

// Destroy releases all resources.
func (v *Viewer) Destroy() {
	v.plane.Destroy()
	v.heightmap.Destroy()
	v.water.Destroy()
	v.path.Destroy()
	v.destroyProps()

	if v.shadowTarget != nil {
		v.shadowTarget.Destroy()
	}
	if v.depthTarget != nil {
		v.depthTarget.Destroy()
	}
	if v.fb != nil {
		v.fb.Destroy()
	}
	v.textures.Destroy()
	v.shaders.Destroy()
}
