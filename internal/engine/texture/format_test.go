package texture

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInferHeight(t *testing.T) {
	tests := []struct {
		name    string
		n       int
		width   int
		format  Format
		want    int
		wantErr bool
	}{
		{"rgba", 4 * 6, 3, RGBA8, 2, false},
		{"rgb", 3 * 8, 4, RGB8, 2, false},
		{"float", 12, 4, Float32, 3, false},
		{"partial row", 13, 4, Float32, 0, true},
		{"empty", 0, 4, Gray8, 0, true},
		{"zero width", 4, 0, Gray8, 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, err := InferHeight(tt.n, tt.width, tt.format)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrShape)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, h)
		})
	}
}

func TestInactiveTexture(t *testing.T) {
	var none *Texture
	assert.False(t, none.IsActive())
	assert.False(t, (&Texture{}).IsActive())

	r := NewRegistry()
	r.Add(Albedo)
	assert.False(t, r.Active(Albedo))
	assert.False(t, r.Active("missing"))
	assert.Nil(t, r.Get("missing"))
	assert.Same(t, r.Get(Albedo), r.Add(Albedo))
}

func TestFormatChannels(t *testing.T) {
	assert.Equal(t, 4, RGBA8.Channels())
	assert.Equal(t, 1, Depth.Channels())
	assert.True(t, Depth.IsDepth())
	assert.Equal(t, "float32", Float32.String())
}
