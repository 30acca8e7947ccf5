package viewstate

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/qterrain/internal/engine/camera"
)

func TestJSONRoundTrip(t *testing.T) {
	s := New()
	s.SetTitle("canyon")
	s.SetMode(Render2D)
	o := s.Orbit()
	o.Distance = 7
	o.Pan.X = 0.3
	s.SetOrbit(o)
	w := s.Water()
	w.ColorDeep = [3]float32{0.1, 0.2, 0.3}
	s.SetWater(w)
	s.SetVisible(LayerRocks, false)
	v := s.Viewer2D()
	v.Cmap = Turbo
	v.Offset.Y = -0.25
	s.SetViewer2D(v)
	s.SetLens(Lens{FOV: 1.2, Near: 0.05, Far: 40})
	m := s.Material()
	m.BasicShading = true
	s.SetMaterial(m)

	b, err := json.Marshal(s)
	require.NoError(t, err)

	got := New()
	require.NoError(t, json.Unmarshal(b, got))
	assert.Equal(t, s.Title(), got.Title())
	assert.Equal(t, s.Mode(), got.Mode())
	assert.Equal(t, s.Orbit(), got.Orbit())
	assert.Equal(t, s.Water(), got.Water())
	assert.Equal(t, s.Layers(), got.Layers())
	assert.Equal(t, s.Viewer2D(), got.Viewer2D())
	assert.Equal(t, s.Lens(), got.Lens())
	assert.True(t, got.Material().BasicShading)
	assert.True(t, got.Dirty())
}

func TestJSONKeyLayout(t *testing.T) {
	b, err := json.Marshal(New())
	require.NoError(t, err)

	var doc map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(b, &doc))
	for _, key := range []string{"render_type", "wireframe_mode", "target", "pan_offset", "light_phi",
		"hmap_w", "render_hmap", "add_ambiant_occlusion", "color_deep_water", "rayleigh_color",
		"viewer2d_settings.cmap", "camera", "light"} {
		assert.Contains(t, doc, key)
	}
	assert.JSONEq(t, `{"x":0,"y":0}`, string(doc["pan_offset"]))
	assert.JSONEq(t, `{"x":1,"y":1,"z":1}`, string(doc["foam_color"]))
	assert.Equal(t, "1", string(doc["render_type"]))
}

func TestJSONSkipsMissingAndUnknownKeys(t *testing.T) {
	s := New()
	require.NoError(t, json.Unmarshal([]byte(`{"distance": 9, "x": 10, "width": 800, "camera": {"fov": 2}}`), s))
	assert.Equal(t, float32(9), s.Orbit().Distance)
	assert.Equal(t, New().Material(), s.Material())

	want := New().Lens()
	want.FOV = 2
	assert.Equal(t, want, s.Lens())
}

func TestJSONCameraLens(t *testing.T) {
	s := New()
	require.NoError(t, json.Unmarshal([]byte(`{"camera": {"fov": 0.01, "near_plane": 0.5, "far_plane": 0.1}}`), s))
	l := s.Lens()
	assert.Equal(t, float32(camera.MinFOV), l.FOV)
	assert.Equal(t, float32(0.5), l.Near)
	assert.Greater(t, l.Far, l.Near)

	before := *s
	err := json.Unmarshal([]byte(`{"distance": 2, "camera": {"fov": "wide"}}`), s)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "camera")
	assert.Equal(t, before, *s)
}

func TestJSONMalformedValueLeavesStateUntouched(t *testing.T) {
	s := New()
	before := *s
	err := json.Unmarshal([]byte(`{"distance": 2, "shadow_strength": "strong"}`), s)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "shadow_strength")
	assert.Equal(t, before, *s)
}

func TestJSONClampsPitch(t *testing.T) {
	s := New()
	require.NoError(t, json.Unmarshal([]byte(`{"alpha_x": 3}`), s))
	assert.Less(t, s.Orbit().AlphaX, float32(1.56))
}

func TestSaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "view.json")
	s := New()
	s.SetWireframe(true)
	require.NoError(t, s.Save(path))

	got := New()
	require.NoError(t, got.Load(path))
	assert.True(t, got.Wireframe())

	require.NoError(t, os.WriteFile(path, []byte("{"), 0644))
	assert.Error(t, got.Load(path))
	assert.Error(t, got.Load(filepath.Join(t.TempDir(), "missing.json")))
}
