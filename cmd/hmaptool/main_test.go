package main

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/qterrain/internal/export"
	"github.com/Faultbox/qterrain/internal/loader"
	"github.com/Faultbox/qterrain/internal/viewstate"
)

func writeRamp(t *testing.T, path string, w, h int) {
	t.Helper()
	img := image.NewGray16(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetGray16(x, y, color.Gray16{Y: uint16(x * 0xffff / (w - 1))})
		}
	}
	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, png.Encode(f, img))
	require.NoError(t, f.Close())
}

func TestExportMeshes(t *testing.T) {
	dir := t.TempDir()
	hm := filepath.Join(dir, "hm.png")
	wt := filepath.Join(dir, "water.png")
	writeRamp(t, hm, 5, 4)
	writeRamp(t, wt, 3, 3)

	meshes, err := exportMeshes(exportOptions{heightmap: hm, water: wt})
	require.NoError(t, err)
	require.Len(t, meshes, 2)

	assert.Equal(t, "terrain", meshes[0].Name)
	assert.Len(t, meshes[0].Geometry.Vertices, 5*4)
	assert.Equal(t, 2*4*3, meshes[0].Geometry.TriangleCount())
	assert.Equal(t, "water", meshes[1].Name)
	assert.Equal(t, float64(1), meshes[1].Color[3])

	out := filepath.Join(dir, "out.glb")
	require.NoError(t, export.Save(out, meshes...))
	info, err := os.Stat(out)
	require.NoError(t, err)
	assert.Positive(t, info.Size())
}

func TestExportWaterFollowsSamples(t *testing.T) {
	dir := t.TempDir()
	hm := filepath.Join(dir, "hm.png")
	wt := filepath.Join(dir, "water.png")
	writeRamp(t, hm, 3, 3)
	writeRamp(t, wt, 3, 3)
	tr := viewstate.DefaultTerrain()

	flat, err := exportMeshes(exportOptions{heightmap: hm, water: wt})
	require.NoError(t, err)
	raised, err := exportMeshes(exportOptions{heightmap: hm, water: wt, waterLevel: 0.25})
	require.NoError(t, err)

	w, r := flat[1].Geometry.Vertices, raised[1].Geometry.Vertices
	require.Len(t, w, 9)
	require.Len(t, r, 9)
	for k := range w {
		raw := float32(k%3) / 2
		assert.InDelta(t, tr.HmapH0+raw*tr.HmapH, w[k].Position[1], 1e-4)
		assert.InDelta(t, w[k].Position[1]+0.25, r[k].Position[1], 1e-4)
	}
}

func TestExportMeshesSkirtAddsVertices(t *testing.T) {
	dir := t.TempDir()
	hm := filepath.Join(dir, "hm.png")
	writeRamp(t, hm, 4, 4)

	plain, err := exportMeshes(exportOptions{heightmap: hm})
	require.NoError(t, err)
	skirted, err := exportMeshes(exportOptions{heightmap: hm, addSkirt: true})
	require.NoError(t, err)
	assert.Greater(t, len(skirted[0].Geometry.Vertices), len(plain[0].Geometry.Vertices))
}

func TestExportMeshesMissingFile(t *testing.T) {
	_, err := exportMeshes(exportOptions{heightmap: filepath.Join(t.TempDir(), "nope.png")})
	assert.Error(t, err)
}

func TestSampleAt(t *testing.T) {
	hm := &loader.Heightmap{Width: 2, Height: 2, Data: []float32{0, 1, 0, 1}}
	tr := viewstate.DefaultTerrain()

	res := sampleAt(tr, hm, 0.5, 0.5)
	assert.InDelta(t, 0.5, res.Raw, 1e-6)
	assert.InDelta(t, 0, res.World[0], 1e-6)
	assert.InDelta(t, tr.HmapH0+0.5*tr.HmapH, res.World[1], 1e-6)

	res = sampleAt(tr, hm, 1, 0)
	assert.InDelta(t, 1, res.Raw, 1e-6)
	assert.InDelta(t, tr.HmapW/2, res.World[0], 1e-6)
	assert.InDelta(t, -tr.HmapW/2, res.World[2], 1e-6)
}

func TestLoadStateDefaultsWithoutPath(t *testing.T) {
	st, err := loadState("")
	require.NoError(t, err)
	assert.Equal(t, viewstate.DefaultTerrain(), st.Terrain())
}

func TestModelInfoReadsExport(t *testing.T) {
	dir := t.TempDir()
	hm := filepath.Join(dir, "hm.png")
	writeRamp(t, hm, 3, 3)
	meshes, err := exportMeshes(exportOptions{heightmap: hm})
	require.NoError(t, err)

	out := filepath.Join(dir, "model.glb")
	require.NoError(t, export.Save(out, meshes...))
	assert.NoError(t, modelInfo(out))
	assert.Error(t, modelInfo(filepath.Join(dir, "missing.glb")))
}
