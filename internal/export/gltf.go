// Package export writes terrain geometry to glTF 2.0, either as a single
// binary .glb or as a .gltf document with embedded buffers.
package export

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/png"
	"path/filepath"
	"strings"

	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"

	"github.com/Faultbox/qterrain/internal/engine/geometry"
)

// ErrEmpty is returned when there is nothing to export.
var ErrEmpty = errors.New("no geometry to export")

// Mesh is one exported object.
type Mesh struct {
	Name     string
	Geometry *geometry.Geometry
	Color    [4]float64  // base color factor; zero means white
	Albedo   image.Image // optional base color texture, embedded as PNG
}

// Document builds a glTF document with one node per mesh.
func Document(meshes ...Mesh) (*gltf.Document, error) {
	doc := gltf.NewDocument()
	doc.Asset.Generator = "qterrain"

	for _, m := range meshes {
		if m.Geometry.IsEmpty() {
			continue
		}
		if err := addMesh(doc, m); err != nil {
			return nil, fmt.Errorf("mesh %q: %w", m.Name, err)
		}
	}
	if len(doc.Meshes) == 0 {
		return nil, ErrEmpty
	}
	return doc, nil
}

func addMesh(doc *gltf.Document, m Mesh) error {
	g := m.Geometry
	pos := make([][3]float32, len(g.Vertices))
	nrm := make([][3]float32, len(g.Vertices))
	uv := make([][2]float32, len(g.Vertices))
	for i, v := range g.Vertices {
		pos[i], nrm[i], uv[i] = v.Position, v.Normal, v.TexCoord
	}

	prim := &gltf.Primitive{
		Mode: gltf.PrimitiveTriangles,
		Attributes: gltf.PrimitiveAttributes{
			gltf.POSITION:   modeler.WritePosition(doc, pos),
			gltf.NORMAL:     modeler.WriteNormal(doc, nrm),
			gltf.TEXCOORD_0: modeler.WriteTextureCoord(doc, uv),
		},
	}
	if len(g.Indices) > 0 {
		prim.Indices = gltf.Index(modeler.WriteIndices(doc, g.Indices))
	}

	mat, err := addMaterial(doc, m)
	if err != nil {
		return err
	}
	prim.Material = gltf.Index(mat)

	doc.Meshes = append(doc.Meshes, &gltf.Mesh{Name: m.Name, Primitives: []*gltf.Primitive{prim}})
	doc.Nodes = append(doc.Nodes, &gltf.Node{Name: m.Name, Mesh: gltf.Index(len(doc.Meshes) - 1)})
	doc.Scenes[0].Nodes = append(doc.Scenes[0].Nodes, len(doc.Nodes)-1)
	return nil
}

func addMaterial(doc *gltf.Document, m Mesh) (int, error) {
	color := m.Color
	if color == [4]float64{} {
		color = [4]float64{1, 1, 1, 1}
	}
	metallic, roughness := 0.0, 1.0
	pbr := &gltf.PBRMetallicRoughness{
		BaseColorFactor: &color,
		MetallicFactor:  &metallic,
		RoughnessFactor: &roughness,
	}

	if m.Albedo != nil {
		var buf bytes.Buffer
		if err := png.Encode(&buf, m.Albedo); err != nil {
			return 0, fmt.Errorf("encode albedo: %w", err)
		}
		img, err := modeler.WriteImage(doc, m.Name+"_albedo.png", "image/png", &buf)
		if err != nil {
			return 0, fmt.Errorf("embed albedo: %w", err)
		}
		doc.Textures = append(doc.Textures, &gltf.Texture{Source: gltf.Index(img)})
		pbr.BaseColorTexture = &gltf.TextureInfo{Index: len(doc.Textures) - 1}
	}

	doc.Materials = append(doc.Materials, &gltf.Material{
		Name:                 m.Name,
		PBRMetallicRoughness: pbr,
		DoubleSided:          true,
	})
	return len(doc.Materials) - 1, nil
}

// Save writes meshes to path. A .glb extension selects the binary container;
// anything else is written as .gltf JSON with base64 buffers.
func Save(path string, meshes ...Mesh) error {
	doc, err := Document(meshes...)
	if err != nil {
		return err
	}
	if strings.EqualFold(filepath.Ext(path), ".glb") {
		if err := gltf.SaveBinary(doc, path); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
		return nil
	}
	for _, b := range doc.Buffers {
		b.EmbeddedResource()
	}
	if err := gltf.Save(doc, path); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// Load reads every triangle primitive of a glTF file back into geometry.
func Load(path string) ([]Mesh, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}

	var out []Mesh
	for _, mesh := range doc.Meshes {
		for _, prim := range mesh.Primitives {
			g, err := readPrimitive(doc, prim)
			if err != nil {
				return nil, fmt.Errorf("mesh %q: %w", mesh.Name, err)
			}
			out = append(out, Mesh{Name: mesh.Name, Geometry: g})
		}
	}
	return out, nil
}

func readPrimitive(doc *gltf.Document, prim *gltf.Primitive) (*geometry.Geometry, error) {
	posIdx, ok := prim.Attributes[gltf.POSITION]
	if !ok {
		return nil, fmt.Errorf("no POSITION attribute")
	}
	pos, err := modeler.ReadPosition(doc, doc.Accessors[posIdx], nil)
	if err != nil {
		return nil, fmt.Errorf("positions: %w", err)
	}

	var nrm [][3]float32
	if idx, ok := prim.Attributes[gltf.NORMAL]; ok {
		if nrm, err = modeler.ReadNormal(doc, doc.Accessors[idx], nil); err != nil {
			return nil, fmt.Errorf("normals: %w", err)
		}
	}
	var uv [][2]float32
	if idx, ok := prim.Attributes[gltf.TEXCOORD_0]; ok {
		if uv, err = modeler.ReadTextureCoord(doc, doc.Accessors[idx], nil); err != nil {
			return nil, fmt.Errorf("texcoords: %w", err)
		}
	}

	g := &geometry.Geometry{Vertices: make([]geometry.Vertex, len(pos))}
	for i, p := range pos {
		g.Vertices[i].Position = p
		if i < len(nrm) {
			g.Vertices[i].Normal = nrm[i]
		}
		if i < len(uv) {
			g.Vertices[i].TexCoord = uv[i]
		}
	}
	if prim.Indices != nil {
		if g.Indices, err = modeler.ReadIndices(doc, doc.Accessors[*prim.Indices], nil); err != nil {
			return nil, fmt.Errorf("indices: %w", err)
		}
	}
	if len(nrm) == 0 {
		geometry.ComputeNormals(g)
	}
	return g, nil
}
