package loader

import (
	"errors"
	"fmt"
	"image"
	"image/color"
)

var errTGATruncated = errors.New("TGA data truncated")

const (
	tgaTrueColor    = 2
	tgaGray         = 3
	tgaTrueColorRLE = 10
	tgaGrayRLE      = 11
)

// decodeTGA decodes uncompressed and RLE TGA files, true-color (24/32 bit)
// or grayscale (8 bit). Grayscale files come back as *image.Gray so they can
// be used as heightmaps.
func decodeTGA(data []byte) (image.Image, error) {
	if len(data) < 18 {
		return nil, errTGATruncated
	}

	idLength := int(data[0])
	colorMapType := data[1]
	imageType := data[2]
	width := int(data[12]) | int(data[13])<<8
	height := int(data[14]) | int(data[15])<<8
	bpp := int(data[16])
	topToBottom := data[17]&0x20 != 0

	if colorMapType != 0 {
		return nil, fmt.Errorf("color-mapped TGA not supported")
	}
	gray := imageType == tgaGray || imageType == tgaGrayRLE
	switch {
	case imageType != tgaTrueColor && imageType != tgaTrueColorRLE && !gray:
		return nil, fmt.Errorf("unsupported TGA type %d", imageType)
	case gray && bpp != 8:
		return nil, fmt.Errorf("unsupported grayscale TGA bit depth %d", bpp)
	case !gray && bpp != 24 && bpp != 32:
		return nil, fmt.Errorf("unsupported TGA bit depth %d (only 24/32 supported)", bpp)
	}
	if width == 0 || height == 0 {
		return nil, fmt.Errorf("empty TGA image %dx%d", width, height)
	}

	offset := 18 + idLength
	if offset > len(data) {
		return nil, errTGATruncated
	}
	src := data[offset:]
	bytesPerPixel := bpp / 8
	rect := image.Rect(0, 0, width, height)

	var set func(x, y int, px []byte)
	var img image.Image
	if gray {
		g := image.NewGray(rect)
		set = func(x, y int, px []byte) { g.SetGray(x, y, color.Gray{Y: px[0]}) }
		img = g
	} else {
		c := image.NewRGBA(rect)
		set = func(x, y int, px []byte) {
			a := uint8(255)
			if bytesPerPixel == 4 {
				a = px[3]
			}
			c.SetRGBA(x, y, color.RGBA{R: px[2], G: px[1], B: px[0], A: a})
		}
		img = c
	}

	// put writes the n-th pixel in file order. Rows are stored bottom-up
	// unless the descriptor says otherwise.
	put := func(n int, px []byte) {
		x, y := n%width, n/width
		if !topToBottom {
			y = height - 1 - y
		}
		set(x, y, px)
	}

	count := width * height
	if imageType == tgaTrueColor || imageType == tgaGray {
		if len(src) < count*bytesPerPixel {
			return nil, errTGATruncated
		}
		for n := 0; n < count; n++ {
			put(n, src[n*bytesPerPixel:])
		}
		return img, nil
	}

	n, i := 0, 0
	for n < count {
		if i >= len(src) {
			return nil, errTGATruncated
		}
		packet := src[i]
		i++
		run := int(packet&0x7F) + 1
		if packet&0x80 != 0 {
			if i+bytesPerPixel > len(src) {
				return nil, errTGATruncated
			}
			px := src[i : i+bytesPerPixel]
			i += bytesPerPixel
			for k := 0; k < run && n < count; k++ {
				put(n, px)
				n++
			}
			continue
		}
		for k := 0; k < run && n < count; k++ {
			if i+bytesPerPixel > len(src) {
				return nil, errTGATruncated
			}
			put(n, src[i:i+bytesPerPixel])
			i += bytesPerPixel
			n++
		}
	}
	return img, nil
}
