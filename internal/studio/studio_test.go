package studio

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"github.com/Faultbox/qterrain/internal/watch"
)

func TestQueueDropsWhenFull(t *testing.T) {
	s := &Studio{pending: make(chan pendingFile, 1), log: zap.NewNop()}

	s.queue(pendingFile{op: opLoad, kind: watch.Heightmap, path: "a.png"})
	s.queue(pendingFile{op: opLoad, kind: watch.Albedo, path: "b.png"})

	assert.Len(t, s.pending, 1)
	got := <-s.pending
	assert.Equal(t, "a.png", got.path)
	assert.Equal(t, watch.Heightmap, got.kind)
}

func TestImageFilterCoversLoaderFormats(t *testing.T) {
	for _, ext := range []string{"png", "tif", "tiff", "bmp", "tga"} {
		assert.Contains(t, imageExts, ext)
	}
}
