// Package loader reads heightmaps and textures from image files. PNG, JPEG,
// BMP, TIFF, WebP and TGA are recognized; 8 and 16 bit grayscale heightmaps
// keep their full precision.
package loader

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/image/draw"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/Faultbox/qterrain/internal/logger"
)

// ErrTooSmall is returned for heightmaps that cannot form a single grid cell.
var ErrTooSmall = errors.New("heightmap must be at least 2x2")

// Heightmap is a row-major grid of samples in [0,1]. Row j runs along Z,
// column i along X.
type Heightmap struct {
	Width, Height int
	Data          []float32
	Format        string
}

// At returns the sample at column i, row j.
func (h *Heightmap) At(i, j int) float32 {
	return h.Data[j*h.Width+i]
}

// Range returns the smallest and largest sample.
func (h *Heightmap) Range() (lo, hi float32) {
	if len(h.Data) == 0 {
		return 0, 0
	}
	lo, hi = h.Data[0], h.Data[0]
	for _, v := range h.Data[1:] {
		lo = min(lo, v)
		hi = max(hi, v)
	}
	return lo, hi
}

// Open decodes an image file.
func Open(path string) (image.Image, string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, "", fmt.Errorf("read %s: %w", path, err)
	}
	if strings.EqualFold(filepath.Ext(path), ".tga") {
		img, err := decodeTGA(data)
		if err != nil {
			return nil, "", fmt.Errorf("decode %s: %w", path, err)
		}
		return img, "tga", nil
	}
	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, "", fmt.Errorf("decode %s: %w", path, err)
	}
	return img, format, nil
}

// LoadHeightmap reads a heightmap, shrinking it so neither side exceeds
// maxResolution. A maxResolution of zero keeps the full size.
func LoadHeightmap(path string, maxResolution int) (*Heightmap, error) {
	img, format, err := Open(path)
	if err != nil {
		return nil, err
	}
	hm, err := HeightmapFromImage(img, maxResolution)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	hm.Format = format
	logger.Named("loader").Debug("heightmap loaded",
		zap.String("path", path),
		zap.String("format", format),
		zap.Int("width", hm.Width),
		zap.Int("height", hm.Height))
	return hm, nil
}

// HeightmapFromImage converts an image to samples. Color images use their
// luminance.
func HeightmapFromImage(img image.Image, maxResolution int) (*Heightmap, error) {
	img = Downsample(img, maxResolution)
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if w < 2 || h < 2 {
		return nil, fmt.Errorf("%w: got %dx%d", ErrTooSmall, w, h)
	}

	hm := &Heightmap{Width: w, Height: h, Data: make([]float32, w*h)}
	switch src := img.(type) {
	case *image.Gray16:
		for j := 0; j < h; j++ {
			for i := 0; i < w; i++ {
				hm.Data[j*w+i] = float32(src.Gray16At(b.Min.X+i, b.Min.Y+j).Y) / 0xffff
			}
		}
	case *image.Gray:
		for j := 0; j < h; j++ {
			for i := 0; i < w; i++ {
				hm.Data[j*w+i] = float32(src.GrayAt(b.Min.X+i, b.Min.Y+j).Y) / 0xff
			}
		}
	default:
		for j := 0; j < h; j++ {
			for i := 0; i < w; i++ {
				g := color.Gray16Model.Convert(img.At(b.Min.X+i, b.Min.Y+j)).(color.Gray16)
				hm.Data[j*w+i] = float32(g.Y) / 0xffff
			}
		}
	}
	return hm, nil
}

// Downsample shrinks img with bilinear filtering so that neither side
// exceeds maxResolution, keeping the aspect ratio. Grayscale images stay
// 16 bit. Images already small enough are returned unchanged.
func Downsample(img image.Image, maxResolution int) image.Image {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if maxResolution <= 0 || (w <= maxResolution && h <= maxResolution) {
		return img
	}

	scale := float64(maxResolution) / float64(max(w, h))
	nw := max(2, int(float64(w)*scale+0.5))
	nh := max(2, int(float64(h)*scale+0.5))
	rect := image.Rect(0, 0, nw, nh)

	var dst draw.Image
	switch img.(type) {
	case *image.Gray, *image.Gray16:
		dst = image.NewGray16(rect)
	default:
		dst = image.NewRGBA64(rect)
	}
	draw.BiLinear.Scale(dst, rect, img, b, draw.Src, nil)
	return dst
}

// LoadRGBA reads a color texture as tightly packed 8 bit RGBA.
func LoadRGBA(path string) (pix []uint8, width, height int, err error) {
	img, _, err := Open(path)
	if err != nil {
		return nil, 0, 0, err
	}
	pix, width, height = RGBA8(img)
	return pix, width, height, nil
}

// LoadRGB reads a color texture as tightly packed 8 bit RGB, dropping alpha.
func LoadRGB(path string) (pix []uint8, width, height int, err error) {
	img, _, err := Open(path)
	if err != nil {
		return nil, 0, 0, err
	}
	pix, width, height = RGB8(img)
	return pix, width, height, nil
}

// RGBA8 packs img as non-premultiplied 8 bit RGBA rows.
func RGBA8(img image.Image) ([]uint8, int, int) {
	b := img.Bounds()
	if src, ok := img.(*image.NRGBA); ok && src.Stride == 4*b.Dx() {
		return append([]uint8(nil), src.Pix...), b.Dx(), b.Dy()
	}
	dst := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), img, b.Min, draw.Src)
	return dst.Pix, b.Dx(), b.Dy()
}

// RGB8 packs img as 8 bit RGB rows.
func RGB8(img image.Image) ([]uint8, int, int) {
	rgba, w, h := RGBA8(img)
	out := make([]uint8, 0, w*h*3)
	for k := 0; k < len(rgba); k += 4 {
		out = append(out, rgba[k], rgba[k+1], rgba[k+2])
	}
	return out, w, h
}
