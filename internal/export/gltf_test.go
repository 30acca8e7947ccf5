package export

import (
	"image"
	"image/color"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/qterrain/internal/engine/geometry"
	"github.com/Faultbox/qterrain/internal/engine/terrain"
	"github.com/Faultbox/qterrain/pkg/math"
)

func testTerrain(t *testing.T) *terrain.Heightmap {
	t.Helper()
	hm, err := terrain.Generate([]float32{0, 0.5, 1, 0.25, 0.75, 0.5, 1, 0, 0.5}, 3, 3, terrain.DefaultParams())
	require.NoError(t, err)
	return hm
}

func TestRoundTripGLB(t *testing.T) {
	hm := testTerrain(t)
	rock := geometry.Cube(math.Vec3{}, 1, 1, 1)
	path := filepath.Join(t.TempDir(), "scene.glb")

	require.NoError(t, Save(path,
		Mesh{Name: "terrain", Geometry: &hm.Geometry},
		Mesh{Name: "rock", Geometry: &rock, Color: [4]float64{0.5, 0.5, 0.5, 1}},
	))

	meshes, err := Load(path)
	require.NoError(t, err)
	require.Len(t, meshes, 2)
	assert.Equal(t, "terrain", meshes[0].Name)
	assert.Equal(t, hm.Vertices, meshes[0].Geometry.Vertices)
	assert.Equal(t, hm.Indices, meshes[0].Geometry.Indices)
	assert.Equal(t, rock.TriangleCount(), meshes[1].Geometry.TriangleCount())
}

func TestRoundTripEmbeddedGLTF(t *testing.T) {
	hm := testTerrain(t)
	albedo := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	albedo.SetNRGBA(0, 0, color.NRGBA{R: 255, A: 255})
	path := filepath.Join(t.TempDir(), "terrain.gltf")

	require.NoError(t, Save(path, Mesh{Name: "terrain", Geometry: &hm.Geometry, Albedo: albedo}))

	meshes, err := Load(path)
	require.NoError(t, err)
	require.Len(t, meshes, 1)
	assert.Len(t, meshes[0].Geometry.Vertices, len(hm.Vertices))
}

func TestDocumentMaterial(t *testing.T) {
	plane := geometry.Plane(math.Vec3{}, 1, 1)
	doc, err := Document(Mesh{Name: "plane", Geometry: &plane})
	require.NoError(t, err)
	require.Len(t, doc.Materials, 1)
	assert.Equal(t, [4]float64{1, 1, 1, 1}, *doc.Materials[0].PBRMetallicRoughness.BaseColorFactor)
	assert.Len(t, doc.Scenes[0].Nodes, 1)
	assert.Equal(t, "qterrain", doc.Asset.Generator)
}

func TestNothingToExport(t *testing.T) {
	_, err := Document()
	assert.ErrorIs(t, err, ErrEmpty)

	_, err = Document(Mesh{Name: "empty", Geometry: &geometry.Geometry{}})
	assert.ErrorIs(t, err, ErrEmpty)

	assert.ErrorIs(t, Save(filepath.Join(t.TempDir(), "x.glb")), ErrEmpty)
}

func TestLoadMissing(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.glb"))
	assert.Error(t, err)
}
