package app

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/qterrain/internal/config"
	"github.com/Faultbox/qterrain/internal/viewstate"
	"github.com/Faultbox/qterrain/internal/watch"
)

type fakeSink struct {
	st *viewstate.State

	hmW, hmH   int
	skirt      bool
	waterW     int
	exclude    float32
	albedoW    int
	albedoLen  int
	normalW    int
	normalLen  int
	heightmaps int
}

func newFakeSink() *fakeSink { return &fakeSink{st: viewstate.New()} }

func (f *fakeSink) SetHeightmap(data []float32, width, height int, addSkirt bool) error {
	f.hmW, f.hmH, f.skirt = width, height, addSkirt
	f.heightmaps++
	return nil
}

func (f *fakeSink) SetWater(data []float32, width, height int, excludeBelow float32) error {
	f.waterW, f.exclude = width, excludeBelow
	return nil
}

func (f *fakeSink) SetAlbedo(pix []byte, width int) error {
	f.albedoW, f.albedoLen = width, len(pix)
	return nil
}

func (f *fakeSink) SetNormal(pix []byte, width int) error {
	f.normalW, f.normalLen = width, len(pix)
	return nil
}

func (f *fakeSink) State() *viewstate.State { return f.st }

func writePNG(t *testing.T, path string, img image.Image) {
	t.Helper()
	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, png.Encode(f, img))
	require.NoError(t, f.Close())
}

func grayImage(w, h int) *image.Gray16 {
	img := image.NewGray16(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetGray16(x, y, color.Gray16{Y: uint16((x + y) * 1000)})
		}
	}
	return img
}

func TestApplyTogglesState(t *testing.T) {
	st := viewstate.New()
	st.ConsumeDirty()

	assert.True(t, Apply(st, ActionToggleWireframe))
	assert.True(t, st.Wireframe())
	assert.True(t, st.ConsumeDirty())

	assert.True(t, Apply(st, ActionToggleMode))
	assert.Equal(t, viewstate.Render2D, st.Mode())

	assert.True(t, Apply(st, ActionToggleAutoRotateLight))
	assert.True(t, st.AutoRotateLight())
	assert.True(t, Apply(st, ActionToggleAutoRotateCamera))
	assert.True(t, st.AutoRotateCamera())

	assert.False(t, Apply(st, ActionScreenshot))
	assert.False(t, Apply(st, ActionQuit))
	assert.False(t, Apply(st, ActionNone))
}

func TestResetCameraRestoresFraming(t *testing.T) {
	st := viewstate.New()
	Drag(st, ButtonLeft, 40, 10, 800, 600)
	Wheel(st, 2)
	require.NotEqual(t, viewstate.New().Orbit(), st.Orbit())

	Apply(st, ActionResetCamera)
	assert.Equal(t, viewstate.New().Orbit(), st.Orbit())
}

func TestDrag3D(t *testing.T) {
	st := viewstate.New()
	before := st.Orbit()

	Drag(st, ButtonLeft, 10, 0, 800, 600)
	assert.Less(t, st.Orbit().AlphaY, before.AlphaY)
	assert.Equal(t, before.Pan, st.Orbit().Pan)

	Drag(st, ButtonRight, 10, 0, 800, 600)
	assert.Less(t, st.Orbit().Pan.X, float32(0))
}

func TestDrag2DPans(t *testing.T) {
	st := viewstate.New()
	st.SetMode(viewstate.Render2D)
	orbit := st.Orbit()

	Drag(st, ButtonLeft, 80, 0, 800, 600)
	assert.Less(t, st.Viewer2D().Offset.X, float32(0))
	assert.Equal(t, orbit, st.Orbit())
}

func TestZeroDragKeepsStateClean(t *testing.T) {
	st := viewstate.New()
	st.ConsumeDirty()
	Drag(st, ButtonLeft, 0, 0, 800, 600)
	Wheel(st, 0)
	assert.False(t, st.Dirty())
}

func TestWheel(t *testing.T) {
	st := viewstate.New()
	d := st.Orbit().Distance
	Wheel(st, 1)
	assert.Less(t, st.Orbit().Distance, d)

	st.SetMode(viewstate.Render2D)
	z := st.Viewer2D().Zoom
	Wheel(st, 1)
	assert.Greater(t, st.Viewer2D().Zoom, z)
}

func TestActionString(t *testing.T) {
	assert.Equal(t, "toggle_mode", ActionToggleMode.String())
	assert.Equal(t, "none", Action(99).String())
}

func TestDataLoadAll(t *testing.T) {
	dir := t.TempDir()
	hm := filepath.Join(dir, "hm.png")
	wt := filepath.Join(dir, "water.png")
	alb := filepath.Join(dir, "albedo.png")
	nrm := filepath.Join(dir, "normal.png")
	writePNG(t, hm, grayImage(8, 6))
	writePNG(t, wt, grayImage(4, 4))
	writePNG(t, alb, image.NewRGBA(image.Rect(0, 0, 5, 3)))
	writePNG(t, nrm, image.NewRGBA(image.Rect(0, 0, 2, 2)))

	st := viewstate.New()
	st.SetWireframe(true)
	statePath := filepath.Join(dir, "state.json")
	require.NoError(t, st.Save(statePath))

	sink := newFakeSink()
	d := NewData(config.DataConfig{
		Heightmap:         hm,
		Water:             wt,
		Albedo:            alb,
		Normal:            nrm,
		ViewState:         statePath,
		AddSkirt:          true,
		WaterExcludeBelow: 0.1,
	}, sink)
	require.NoError(t, d.LoadAll())

	assert.Equal(t, 8, sink.hmW)
	assert.Equal(t, 6, sink.hmH)
	assert.True(t, sink.skirt)
	assert.Equal(t, 4, sink.waterW)
	assert.InDelta(t, 0.1, sink.exclude, 1e-6)
	assert.Equal(t, 5, sink.albedoW)
	assert.Equal(t, 5*3*4, sink.albedoLen)
	assert.Equal(t, 2, sink.normalW)
	assert.Equal(t, 2*2*3, sink.normalLen)
	assert.True(t, sink.st.Wireframe())
}

func TestDataLoadAllJoinsErrors(t *testing.T) {
	dir := t.TempDir()
	hm := filepath.Join(dir, "hm.png")
	writePNG(t, hm, grayImage(4, 4))

	sink := newFakeSink()
	d := NewData(config.DataConfig{
		Heightmap: hm,
		Albedo:    filepath.Join(dir, "missing.png"),
		Normal:    filepath.Join(dir, "also-missing.png"),
	}, sink)

	err := d.LoadAll()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing.png")
	assert.Contains(t, err.Error(), "also-missing.png")
	assert.Equal(t, 1, sink.heightmaps)
}

func TestDataLoadRemembersPath(t *testing.T) {
	dir := t.TempDir()
	hm := filepath.Join(dir, "hm.png")
	writePNG(t, hm, grayImage(4, 4))

	sink := newFakeSink()
	d := NewData(config.DataConfig{}, sink)
	require.NoError(t, d.Load(watch.Heightmap, hm))
	assert.Equal(t, hm, d.Config().Heightmap)

	// A failed reload keeps the previous data.
	require.NoError(t, os.WriteFile(hm, []byte("not an image"), 0644))
	d.Reload(watch.Event{Kind: watch.Heightmap, Path: hm})
	assert.Equal(t, 1, sink.heightmaps)
}

func TestViewerConfig(t *testing.T) {
	cfg := config.Default()
	cfg.Render.ShadowMapResolution = 2048
	cfg.Render.DepthMapResolution = 0

	sc := ViewerConfig(cfg, 640, 480)
	assert.Equal(t, int32(640), sc.Width)
	assert.Equal(t, int32(480), sc.Height)
	assert.Equal(t, int32(2048), sc.ShadowResolution)
	assert.Equal(t, int32(512), sc.DepthResolution, "unset resolution keeps the default")
}
