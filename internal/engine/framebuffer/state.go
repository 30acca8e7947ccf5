package framebuffer

import (
	"github.com/go-gl/gl/v4.1-core/gl"
)

// Snapshot records the bound draw framebuffer and viewport and returns a
// function that restores both. Passes that render off-screen use it so the
// host's target (not necessarily framebuffer 0) survives.
func Snapshot() func() {
	var prevFBO int32
	var prevViewport [4]int32
	gl.GetIntegerv(gl.FRAMEBUFFER_BINDING, &prevFBO)
	gl.GetIntegerv(gl.VIEWPORT, &prevViewport[0])

	return func() {
		gl.BindFramebuffer(gl.FRAMEBUFFER, uint32(prevFBO))
		gl.Viewport(prevViewport[0], prevViewport[1], prevViewport[2], prevViewport[3])
	}
}

// ReadRGBA reads width x height RGBA pixels from fbo and flips them so row 0
// is the top of the image.
func ReadRGBA(fbo uint32, width, height int32) []byte {
	pixels := make([]byte, int(width)*int(height)*4)
	if len(pixels) == 0 {
		return pixels
	}

	var prevFBO int32
	gl.GetIntegerv(gl.READ_FRAMEBUFFER_BINDING, &prevFBO)
	gl.BindFramebuffer(gl.READ_FRAMEBUFFER, fbo)
	gl.PixelStorei(gl.PACK_ALIGNMENT, 1)
	gl.ReadPixels(0, 0, width, height, gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(pixels))
	gl.PixelStorei(gl.PACK_ALIGNMENT, 4)
	gl.BindFramebuffer(gl.READ_FRAMEBUFFER, uint32(prevFBO))

	FlipRows(pixels, int(width)*4)
	return pixels
}

// FlipRows reverses the row order of a packed image in place.
func FlipRows(pix []byte, stride int) {
	if stride <= 0 {
		return
	}
	rows := len(pix) / stride
	tmp := make([]byte, stride)
	for top, bottom := 0, rows-1; top < bottom; top, bottom = top+1, bottom-1 {
		a := pix[top*stride : (top+1)*stride]
		b := pix[bottom*stride : (bottom+1)*stride]
		copy(tmp, a)
		copy(a, b)
		copy(b, tmp)
	}
}
