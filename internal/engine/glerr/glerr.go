// Package glerr drains and names OpenGL error codes.
package glerr

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
)

// Error is one GL error code.
type Error uint32

func (e Error) Error() string {
	return "gl: " + Name(uint32(e))
}

// Name returns the symbolic name of a GL error code.
func Name(code uint32) string {
	switch code {
	case gl.NO_ERROR:
		return "NO_ERROR"
	case gl.INVALID_ENUM:
		return "INVALID_ENUM"
	case gl.INVALID_VALUE:
		return "INVALID_VALUE"
	case gl.INVALID_OPERATION:
		return "INVALID_OPERATION"
	case gl.INVALID_FRAMEBUFFER_OPERATION:
		return "INVALID_FRAMEBUFFER_OPERATION"
	case gl.OUT_OF_MEMORY:
		return "OUT_OF_MEMORY"
	case gl.STACK_UNDERFLOW:
		return "STACK_UNDERFLOW"
	case gl.STACK_OVERFLOW:
		return "STACK_OVERFLOW"
	default:
		return fmt.Sprintf("0x%04x", code)
	}
}

// maxDrain bounds the loop in case a broken context keeps reporting errors.
const maxDrain = 32

// Drain pops every pending GL error.
func Drain() []error {
	var errs []error
	for i := 0; i < maxDrain; i++ {
		code := gl.GetError()
		if code == gl.NO_ERROR {
			break
		}
		errs = append(errs, Error(code))
	}
	return errs
}
