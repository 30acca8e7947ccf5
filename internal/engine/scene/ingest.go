package scene

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/Faultbox/qterrain/internal/engine/geometry"
	"github.com/Faultbox/qterrain/internal/engine/mesh"
	"github.com/Faultbox/qterrain/internal/engine/terrain"
	"github.com/Faultbox/qterrain/internal/engine/texture"
)

// SetHeightmap shows a width x height grid of raw samples. A grid with the
// same layout as the current one only moves vertices; anything else is
// tessellated again. The backdrop plane and the hmap texture follow.
func (v *Viewer) SetHeightmap(data []float32, width, height int, addSkirt bool) error {
	if err := v.buildHeightmap(data, width, height, addSkirt); err != nil {
		return fmt.Errorf("setting heightmap: %w", err)
	}
	v.in.heightmap = newSamples(data, width, height)
	v.in.addSkirt = addSkirt
	v.state.MarkDirty()
	return nil
}

func (v *Viewer) buildHeightmap(data []float32, width, height int, addSkirt bool) error {
	t := v.state.Terrain()
	p := heightmapParams(t, addSkirt)

	if v.heightmap.IsActive() && v.hm.SameLayout(width, height, addSkirt) && v.hm.Params == p {
		if err := v.hm.UpdateElevation(data); err != nil {
			return err
		}
		if err := v.heightmap.UpdateVertices(v.hm.Vertices); err != nil {
			return err
		}
		v.log.Debug("heightmap updated in place", zap.Int("width", width), zap.Int("height", height))
	} else {
		hm, err := terrain.Generate(data, width, height, p)
		if err != nil {
			return err
		}
		if err := v.heightmap.Create(hm.Geometry, mesh.WithVertexMap(hm.VertexMap)); err != nil {
			return err
		}
		v.hm = hm
		v.log.Info("heightmap generated",
			zap.Int("width", width),
			zap.Int("height", height),
			zap.Bool("skirt", addSkirt),
			zap.Int("vertices", len(hm.Vertices)),
			zap.Int("triangles", hm.TriangleCount()))
	}

	if err := v.textures.Add(texture.Hmap).FromFloat32(data, width); err != nil {
		return err
	}
	return v.plane.Create(backdrop(t, v.hm.MinElevation))
}

// SetWater shows a water surface from its own grid of raw samples. Samples
// at or below excludeBelow are left dry.
func (v *Viewer) SetWater(data []float32, width, height int, excludeBelow float32) error {
	if err := v.buildWater(data, width, height, excludeBelow); err != nil {
		return fmt.Errorf("setting water: %w", err)
	}
	v.in.water = newSamples(data, width, height)
	v.in.excludeBelow = excludeBelow
	v.state.MarkDirty()
	return nil
}

func (v *Viewer) buildWater(data []float32, width, height int, excludeBelow float32) error {
	p := waterParams(v.state.Terrain(), excludeBelow)
	hm, err := terrain.Generate(data, width, height, p)
	if err != nil {
		return err
	}
	if err := v.water.Create(hm.Geometry); err != nil {
		return err
	}
	v.log.Debug("water generated", zap.Int("vertices", len(hm.Vertices)))
	return nil
}

// SetPoints marks each (x, y, h) with a small sphere.
func (v *Viewer) SetPoints(x, y, h []float32) error {
	return v.setProp(propPoints, newCoords(x, y, h, nil))
}

// SetPath draws a ribbon through the points in order.
func (v *Viewer) SetPath(x, y, h []float32) error {
	c := newCoords(x, y, h, nil)
	if err := v.buildPath(c); err != nil {
		return fmt.Errorf("setting path: %w", err)
	}
	v.in.path = c
	v.state.MarkDirty()
	return nil
}

// buildPath leaves the current ribbon in place when c has fewer than two
// points.
func (v *Viewer) buildPath(c *coords) error {
	g, ok, err := pathGeometry(v.state.Terrain(), c)
	if err != nil || !ok {
		return err
	}
	return v.path.Create(g)
}

// SetRocks scatters rocks of the given radii.
func (v *Viewer) SetRocks(x, y, h, radius []float32) error {
	return v.setProp(propRocks, newCoords(x, y, h, radius))
}

// SetTrees scatters trees of the given radii.
func (v *Viewer) SetTrees(x, y, h, radius []float32) error {
	return v.setProp(propTrees, newCoords(x, y, h, radius))
}

// SetLeaves scatters leaves of the given radii.
func (v *Viewer) SetLeaves(x, y, h, radius []float32) error {
	return v.setProp(propLeaves, newCoords(x, y, h, radius))
}

func (v *Viewer) setProp(k propKind, c *coords) error {
	if err := v.placeProp(k, c); err != nil {
		return fmt.Errorf("setting %s: %w", propLayers[k], err)
	}
	v.in.props[k] = c
	v.state.MarkDirty()
	return nil
}

func (v *Viewer) placeProp(k propKind, c *coords) error {
	t := v.state.Terrain()
	var (
		inst []geometry.Instance
		err  error
	)
	if k == propPoints {
		inst, err = t.PointInstances(c.x, c.y, c.h)
	} else {
		inst, err = t.Scatter(c.x, c.y, c.h, c.r, nil)
	}
	if err != nil {
		return err
	}
	tint(inst, propColors[k])
	return v.props[k].inst.Create(v.props[k].base, inst)
}

// SetAlbedo replaces the terrain color texture with RGBA8 pixels.
func (v *Viewer) SetAlbedo(pix []byte, width int) error {
	if err := v.textures.Add(texture.Albedo).FromRGBA8(pix, width); err != nil {
		return fmt.Errorf("setting albedo: %w", err)
	}
	v.state.MarkDirty()
	return nil
}

// SetNormal replaces the terrain normal map with RGB8 pixels.
func (v *Viewer) SetNormal(pix []byte, width int) error {
	if err := v.textures.Add(texture.Normal).FromRGB8(pix, width); err != nil {
		return fmt.Errorf("setting normal map: %w", err)
	}
	v.state.MarkDirty()
	return nil
}

// ResetHeightmap removes the terrain, its backdrop and its hmap texture.
func (v *Viewer) ResetHeightmap() {
	v.heightmap.Destroy()
	v.plane.Destroy()
	v.hm = nil
	v.in.heightmap = nil
	v.textures.Reset(texture.Hmap)
	v.state.MarkDirty()
}

// ResetWater removes the water surface.
func (v *Viewer) ResetWater() {
	v.water.Destroy()
	v.in.water = nil
	v.state.MarkDirty()
}

// ResetPoints removes the point markers.
func (v *Viewer) ResetPoints() { v.resetProp(propPoints) }

// ResetPath removes the path ribbon.
func (v *Viewer) ResetPath() {
	v.path.Destroy()
	v.in.path = nil
	v.state.MarkDirty()
}

// ResetRocks removes the rocks.
func (v *Viewer) ResetRocks() { v.resetProp(propRocks) }

// ResetTrees removes the trees.
func (v *Viewer) ResetTrees() { v.resetProp(propTrees) }

// ResetLeaves removes the leaves.
func (v *Viewer) ResetLeaves() { v.resetProp(propLeaves) }

func (v *Viewer) resetProp(k propKind) {
	v.props[k].inst.Destroy()
	v.in.props[k] = nil
	v.state.MarkDirty()
}

// ResetTexture releases the named texture. Depth targets cannot be reset.
func (v *Viewer) ResetTexture(name string) {
	if name == texture.ShadowMap || name == texture.DepthMap {
		return
	}
	v.textures.Reset(name)
	v.state.MarkDirty()
}

// Clear removes all geometry and color textures. Shadow and depth targets
// are kept.
func (v *Viewer) Clear() {
	v.ResetHeightmap()
	v.ResetWater()
	v.ResetPath()
	for k := range v.props {
		v.resetProp(propKind(k))
	}
	v.textures.ResetColor()
}

// sync regenerates retained inputs when the terrain placement moved since
// they were built.
func (v *Viewer) sync() {
	b := builtFrom(v.state)
	if b == v.built {
		return
	}
	v.built = b

	var errs []error
	if in := v.in.heightmap; in != nil {
		errs = append(errs, v.buildHeightmap(in.data, in.width, in.height, v.in.addSkirt))
	}
	if in := v.in.water; in != nil {
		errs = append(errs, v.buildWater(in.data, in.width, in.height, v.in.excludeBelow))
	}
	if v.in.path != nil {
		errs = append(errs, v.buildPath(v.in.path))
	}
	for k, c := range v.in.props {
		if c != nil {
			errs = append(errs, v.placeProp(propKind(k), c))
		}
	}
	for _, err := range errs {
		if err != nil {
			v.log.Warn("rebuilding scene", zap.Error(err))
		}
	}
}

func (v *Viewer) createProps() error {
	for k := range v.props {
		m := &mesh.Mesh{}
		if err := m.Create(propGeometry(propKind(k))); err != nil {
			return fmt.Errorf("%s: %w", propLayers[k], err)
		}
		v.props[k].base = mesh.NewSharedMesh(m)
	}
	return nil
}

func (v *Viewer) destroyProps() {
	for k := range v.props {
		v.props[k].inst.Destroy()
		if v.props[k].base != nil {
			v.props[k].base.Release()
			v.props[k].base = nil
		}
	}
}
