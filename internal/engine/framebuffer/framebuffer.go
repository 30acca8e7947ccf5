// Package framebuffer provides render targets: a color target the studio UI
// displays as an image, and depth-only targets backed by registry textures.
package framebuffer

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
)

// Framebuffer is the viewer's color target: an RGBA8 texture the lit and 2D
// passes draw into, with a depth renderbuffer for the lit pass.
type Framebuffer struct {
	fbo      uint32
	color    uint32
	depthRBO uint32
	width    int32
	height   int32
}

// New allocates a width x height color target. Sizes below one pixel are
// raised to one.
func New(width, height int32) (*Framebuffer, error) {
	fb := &Framebuffer{}
	gl.GenFramebuffers(1, &fb.fbo)
	gl.GenTextures(1, &fb.color)
	gl.GenRenderbuffers(1, &fb.depthRBO)

	fb.allocate(width, height)

	restore := Snapshot()
	defer restore()
	gl.BindFramebuffer(gl.FRAMEBUFFER, fb.fbo)
	gl.FramebufferTexture2D(gl.FRAMEBUFFER, gl.COLOR_ATTACHMENT0, gl.TEXTURE_2D, fb.color, 0)
	gl.FramebufferRenderbuffer(gl.FRAMEBUFFER, gl.DEPTH_ATTACHMENT, gl.RENDERBUFFER, fb.depthRBO)
	if status := gl.CheckFramebufferStatus(gl.FRAMEBUFFER); status != gl.FRAMEBUFFER_COMPLETE {
		fb.Destroy()
		return nil, fmt.Errorf("color target incomplete: 0x%x", status)
	}
	return fb, nil
}

// allocate (re)specifies storage for both attachments.
func (fb *Framebuffer) allocate(width, height int32) {
	fb.width, fb.height = max(width, 1), max(height, 1)

	gl.BindTexture(gl.TEXTURE_2D, fb.color)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA8, fb.width, fb.height, 0, gl.RGBA, gl.UNSIGNED_BYTE, nil)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	gl.BindTexture(gl.TEXTURE_2D, 0)

	gl.BindRenderbuffer(gl.RENDERBUFFER, fb.depthRBO)
	gl.RenderbufferStorage(gl.RENDERBUFFER, gl.DEPTH_COMPONENT24, fb.width, fb.height)
	gl.BindRenderbuffer(gl.RENDERBUFFER, 0)
}

// Begin binds the target with a full-size viewport. The returned function
// restores the previous framebuffer and viewport.
func (fb *Framebuffer) Begin() func() {
	restore := Snapshot()
	gl.BindFramebuffer(gl.FRAMEBUFFER, fb.fbo)
	gl.Viewport(0, 0, fb.width, fb.height)
	return restore
}

// ColorTexture returns the GL name of the color attachment.
func (fb *Framebuffer) ColorTexture() uint32 { return fb.color }

// FBO returns the GL name of the framebuffer.
func (fb *Framebuffer) FBO() uint32 { return fb.fbo }

// Resize reallocates the attachments when the size changed.
func (fb *Framebuffer) Resize(width, height int32) {
	if max(width, 1) == fb.width && max(height, 1) == fb.height {
		return
	}
	fb.allocate(width, height)
}

// BlitTo copies the color attachment into dst, scaled to width x height.
func (fb *Framebuffer) BlitTo(dst uint32, width, height int32) {
	restore := Snapshot()
	defer restore()
	gl.BindFramebuffer(gl.READ_FRAMEBUFFER, fb.fbo)
	gl.BindFramebuffer(gl.DRAW_FRAMEBUFFER, dst)
	gl.BlitFramebuffer(0, 0, fb.width, fb.height, 0, 0, width, height, gl.COLOR_BUFFER_BIT, gl.LINEAR)
	gl.BindFramebuffer(gl.READ_FRAMEBUFFER, 0)
}

// Destroy releases the GL objects. Safe to call twice.
func (fb *Framebuffer) Destroy() {
	if fb.fbo != 0 {
		gl.DeleteFramebuffers(1, &fb.fbo)
		fb.fbo = 0
	}
	if fb.color != 0 {
		gl.DeleteTextures(1, &fb.color)
		fb.color = 0
	}
	if fb.depthRBO != 0 {
		gl.DeleteRenderbuffers(1, &fb.depthRBO)
		fb.depthRBO = 0
	}
}
