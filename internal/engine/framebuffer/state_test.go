package framebuffer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFlipRows(t *testing.T) {
	tests := []struct {
		name   string
		pix    []byte
		stride int
		want   []byte
	}{
		{"three rows", []byte{1, 1, 2, 2, 3, 3}, 2, []byte{3, 3, 2, 2, 1, 1}},
		{"two rows", []byte{1, 2, 3, 4}, 2, []byte{3, 4, 1, 2}},
		{"one row", []byte{1, 2}, 2, []byte{1, 2}},
		{"bad stride", []byte{1, 2}, 0, []byte{1, 2}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			FlipRows(tt.pix, tt.stride)
			assert.Equal(t, tt.want, tt.pix)
		})
	}
}
