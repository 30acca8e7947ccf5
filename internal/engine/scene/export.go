package scene

import (
	"github.com/Faultbox/qterrain/internal/engine/picking"
	"github.com/Faultbox/qterrain/internal/engine/terrain"
	"github.com/Faultbox/qterrain/internal/export"
	"github.com/Faultbox/qterrain/internal/viewstate"
)

// Heightmap returns the tessellated terrain, or nil before one is set.
func (v *Viewer) Heightmap() *terrain.Heightmap {
	return v.hm
}

// ExportMeshes returns the CPU geometry of the visible terrain, water and
// path layers in world units, ready for export.Save. Prop instances are not
// included.
func (v *Viewer) ExportMeshes() []export.Mesh {
	st := v.state
	var out []export.Mesh

	if v.hm != nil && st.Visible(viewstate.LayerHeightmap) {
		g := v.hm.Geometry
		out = append(out, export.Mesh{
			Name:     "terrain",
			Geometry: &g,
			Color:    rgba(heightmapColor),
		})
	}

	if s := v.in.water; s != nil && st.Visible(viewstate.LayerWater) {
		p := waterParams(st.Terrain(), v.in.excludeBelow)
		if hm, err := terrain.Generate(s.data, s.width, s.height, p); err == nil {
			out = append(out, export.Mesh{
				Name:     "water",
				Geometry: &hm.Geometry,
				Color:    rgba(st.Water().ColorShallow),
			})
		}
	}

	if c := v.in.path; c != nil && st.Visible(viewstate.LayerPath) {
		if g, ok, err := pathGeometry(st.Terrain(), c); err == nil && ok {
			out = append(out, export.Mesh{Name: "path", Geometry: &g, Color: rgba(pathColor)})
		}
	}
	return out
}

func rgba(c [3]float32) [4]float64 {
	return [4]float64{float64(c[0]), float64(c[1]), float64(c[2]), 1}
}

// Pick returns the terrain point under pixel (px, py) of the last 3D frame,
// measured from the top-left corner of the viewport.
func (v *Viewer) Pick(px, py float32) (picking.Hit, bool) {
	s := v.in.heightmap
	if s == nil || v.hm == nil || v.state.Mode() != viewstate.Render3D {
		return picking.Hit{}, false
	}
	surf := picking.Surface{
		Data:   s.data,
		Width:  s.width,
		Height: s.height,
		Params: v.hm.Params,
		ScaleH: v.state.Terrain().ScaleH,
	}
	return surf.Intersect(picking.ScreenToRay(v.cam, px, py, float32(v.width), float32(v.height)))
}
