// Package shaders provides embedded GLSL shader sources.
package shaders

import _ "embed"

// Program names registered by the viewer.
const (
	DepthPass    = "depth_pass"
	LitPass      = "lit_pass"
	Viewer2DCmap = "viewer2d_cmap"
	DiffuseBasic = "diffuse_basic"
)

// DepthPassVertexShader transforms geometry for the shadow and depth passes.
//
//go:embed depth_pass.vert
var DepthPassVertexShader string

// DepthPassFragmentShader writes depth only.
//
//go:embed depth_pass.frag
var DepthPassFragmentShader string

// LitVertexShader is shared by the lit and diffuse programs.
//
//go:embed lit_pass.vert
var LitVertexShader string

// LitFragmentShader shades terrain, props and water.
//
//go:embed lit_pass.frag
var LitFragmentShader string

// Viewer2DVertexShader projects the heightmap flat onto the screen.
//
//go:embed viewer2d_cmap.vert
var Viewer2DVertexShader string

// Viewer2DFragmentShader maps elevation through a colormap.
//
//go:embed viewer2d_cmap.frag
var Viewer2DFragmentShader string

// DiffuseFragmentShader is a plain Lambert shader used as a fallback.
//
//go:embed diffuse_basic.frag
var DiffuseFragmentShader string

// Source pairs a program name with its stages.
type Source struct {
	Name     string
	Vertex   string
	Fragment string
}

// All lists every program the viewer compiles at startup.
func All() []Source {
	return []Source{
		{DepthPass, DepthPassVertexShader, DepthPassFragmentShader},
		{LitPass, LitVertexShader, LitFragmentShader},
		{Viewer2DCmap, Viewer2DVertexShader, Viewer2DFragmentShader},
		{DiffuseBasic, LitVertexShader, DiffuseFragmentShader},
	}
}
