package texture

import (
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
)

// Texture is one GPU image with a fixed size and format.
type Texture struct {
	id          uint32
	width       int32
	height      int32
	format      Format
	borderWhite bool
}

// ID returns the GL texture object, 0 when inactive.
func (t *Texture) ID() uint32 { return t.id }

// Size returns the texture dimensions.
func (t *Texture) Size() (width, height int32) { return t.width, t.height }

// Format returns the texel layout of the current image.
func (t *Texture) Format() Format { return t.format }

// IsActive reports whether the texture holds an image.
func (t *Texture) IsActive() bool {
	return t != nil && t.id != 0 && t.width > 0 && t.height > 0
}

// FromGray8 uploads one byte per texel.
func (t *Texture) FromGray8(pix []byte, width int) error {
	return t.fromBytes(pix, width, Gray8)
}

// FromRGB8 uploads three bytes per texel.
func (t *Texture) FromRGB8(pix []byte, width int) error {
	return t.fromBytes(pix, width, RGB8)
}

// FromRGBA8 uploads four bytes per texel.
func (t *Texture) FromRGBA8(pix []byte, width int) error {
	return t.fromBytes(pix, width, RGBA8)
}

// FromGray16 uploads 16-bit single channel samples.
func (t *Texture) FromGray16(pix []uint16, width int) error {
	h, err := InferHeight(len(pix), width, Gray16)
	if err != nil {
		return err
	}
	t.upload(Gray16, int32(width), int32(h), unsafe.Pointer(&pix[0]))
	return nil
}

// FromFloat32 uploads a single channel float image, the layout used for
// elevation data.
func (t *Texture) FromFloat32(data []float32, width int) error {
	h, err := InferHeight(len(data), width, Float32)
	if err != nil {
		return err
	}
	t.upload(Float32, int32(width), int32(h), unsafe.Pointer(&data[0]))
	return nil
}

func (t *Texture) fromBytes(pix []byte, width int, f Format) error {
	h, err := InferHeight(len(pix), width, f)
	if err != nil {
		return err
	}
	t.upload(f, int32(width), int32(h), unsafe.Pointer(&pix[0]))
	return nil
}

// AllocateDepth reserves an uninitialized depth image. With borderWhite,
// lookups outside [0,1] return depth 1 so geometry outside the light
// frustum is never shadowed; otherwise edges clamp.
func (t *Texture) AllocateDepth(width, height int32, borderWhite bool) {
	t.borderWhite = borderWhite
	t.upload(Depth, width, height, nil)
}

func (t *Texture) upload(f Format, width, height int32, data unsafe.Pointer) {
	if t.id == 0 {
		gl.GenTextures(1, &t.id)
	}
	t.width, t.height, t.format = width, height, f

	internal, format, typ := f.glFormat()
	gl.BindTexture(gl.TEXTURE_2D, t.id)
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)
	gl.TexImage2D(gl.TEXTURE_2D, 0, internal, width, height, 0, format, typ, data)
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 4)

	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	if f.IsDepth() && t.borderWhite {
		gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_BORDER)
		gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_BORDER)
		borderColor := []float32{1.0, 1.0, 1.0, 1.0}
		gl.TexParameterfv(gl.TEXTURE_2D, gl.TEXTURE_BORDER_COLOR, &borderColor[0])
	} else {
		gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
		gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	}
	gl.BindTexture(gl.TEXTURE_2D, 0)
}

// Bind binds the texture to texture unit GL_TEXTURE0+unit.
func (t *Texture) Bind(unit uint32) {
	gl.ActiveTexture(gl.TEXTURE0 + unit)
	gl.BindTexture(gl.TEXTURE_2D, t.id)
}

// Destroy releases the GPU image. The texture can be filled again later.
func (t *Texture) Destroy() {
	if t.id != 0 {
		gl.DeleteTextures(1, &t.id)
		t.id = 0
	}
	t.width, t.height = 0, 0
}
