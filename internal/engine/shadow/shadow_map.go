// Package shadow computes the light-space projection and holds the GL state
// used while rendering the shadow depth pass.
package shadow

import (
	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/Faultbox/qterrain/internal/engine/framebuffer"
)

// DefaultResolution is the shadow map size (width = height).
const DefaultResolution = 1024

// Begin binds target for the shadow pass with depth testing and front-face
// culling to reduce shadow acne. The returned function restores culling and
// the previously bound framebuffer and viewport.
func Begin(target *framebuffer.DepthTarget) func() {
	restoreTarget := target.Begin()

	cullWasOn := gl.IsEnabled(gl.CULL_FACE)
	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)
	gl.Enable(gl.CULL_FACE)
	gl.CullFace(gl.FRONT)

	return func() {
		gl.CullFace(gl.BACK)
		if !cullWasOn {
			gl.Disable(gl.CULL_FACE)
		}
		restoreTarget()
	}
}
