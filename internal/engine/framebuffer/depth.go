package framebuffer

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/Faultbox/qterrain/internal/engine/texture"
)

// DepthTarget renders depth only, into a texture owned by the texture registry.
type DepthTarget struct {
	fbo   uint32
	depth *texture.Texture
}

// NewDepthTarget wraps an allocated depth texture in a framebuffer.
func NewDepthTarget(depth *texture.Texture) (*DepthTarget, error) {
	if !depth.IsActive() || !depth.Format().IsDepth() {
		return nil, fmt.Errorf("depth target: texture is not an allocated depth image")
	}
	dt := &DepthTarget{depth: depth}

	gl.GenFramebuffers(1, &dt.fbo)
	gl.BindFramebuffer(gl.FRAMEBUFFER, dt.fbo)
	gl.FramebufferTexture2D(gl.FRAMEBUFFER, gl.DEPTH_ATTACHMENT, gl.TEXTURE_2D, depth.ID(), 0)

	// No color buffer
	gl.DrawBuffer(gl.NONE)
	gl.ReadBuffer(gl.NONE)

	status := gl.CheckFramebufferStatus(gl.FRAMEBUFFER)
	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
	if status != gl.FRAMEBUFFER_COMPLETE {
		dt.Destroy()
		return nil, fmt.Errorf("depth target incomplete: 0x%x", status)
	}
	return dt, nil
}

// Begin binds the target, sets the viewport to the texture size and clears
// depth. The returned function restores the previous framebuffer and viewport.
func (dt *DepthTarget) Begin() func() {
	restore := Snapshot()
	w, h := dt.depth.Size()
	gl.BindFramebuffer(gl.FRAMEBUFFER, dt.fbo)
	gl.Viewport(0, 0, w, h)
	gl.Clear(gl.DEPTH_BUFFER_BIT)
	return restore
}

// Texture returns the depth texture.
func (dt *DepthTarget) Texture() *texture.Texture { return dt.depth }

// Destroy releases the framebuffer. The texture belongs to its registry.
func (dt *DepthTarget) Destroy() {
	if dt.fbo != 0 {
		gl.DeleteFramebuffers(1, &dt.fbo)
		dt.fbo = 0
	}
}
