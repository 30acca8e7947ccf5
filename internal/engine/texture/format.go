// Package texture manages GPU images: color textures sampled by the terrain
// shaders and depth targets written by the shadow and depth passes.
package texture

import (
	"errors"
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
)

// ErrShape reports pixel data whose length does not describe whole rows.
var ErrShape = errors.New("texture: pixel data does not match width")

// Format tags the layout of a texture.
type Format int

const (
	Gray8 Format = iota
	RGB8
	RGBA8
	Gray16
	Float32
	Depth
)

func (f Format) String() string {
	switch f {
	case Gray8:
		return "gray8"
	case RGB8:
		return "rgb8"
	case RGBA8:
		return "rgba8"
	case Gray16:
		return "gray16"
	case Float32:
		return "float32"
	case Depth:
		return "depth"
	default:
		return fmt.Sprintf("format(%d)", int(f))
	}
}

// Channels returns the number of components per texel.
func (f Format) Channels() int {
	switch f {
	case RGB8:
		return 3
	case RGBA8:
		return 4
	default:
		return 1
	}
}

// IsDepth reports whether the format is a depth attachment.
func (f Format) IsDepth() bool { return f == Depth }

// glFormat returns internal format, pixel format and component type.
func (f Format) glFormat() (internal int32, format, typ uint32) {
	switch f {
	case Gray8:
		return gl.R8, gl.RED, gl.UNSIGNED_BYTE
	case RGB8:
		return gl.RGB8, gl.RGB, gl.UNSIGNED_BYTE
	case RGBA8:
		return gl.RGBA8, gl.RGBA, gl.UNSIGNED_BYTE
	case Gray16:
		return gl.R16, gl.RED, gl.UNSIGNED_SHORT
	case Float32:
		return gl.R32F, gl.RED, gl.FLOAT
	default:
		return gl.DEPTH_COMPONENT32F, gl.DEPTH_COMPONENT, gl.FLOAT
	}
}

// InferHeight derives the row count from a buffer of n components.
func InferHeight(n, width int, f Format) (int, error) {
	if width <= 0 {
		return 0, fmt.Errorf("%w: width %d", ErrShape, width)
	}
	row := width * f.Channels()
	if n == 0 || n%row != 0 {
		return 0, fmt.Errorf("%w: %d %s components for width %d", ErrShape, n, f, width)
	}
	return n / row, nil
}
