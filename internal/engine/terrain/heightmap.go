package terrain

import (
	"fmt"

	"github.com/Faultbox/qterrain/internal/engine/geometry"
	"github.com/Faultbox/qterrain/pkg/math"
)

// Generate tessellates a width x height grid of samples. data is row-major
// (index j*width+i, i along X, j along Z). Each kept sample becomes one
// vertex, every fully kept grid cell two triangles, and with p.AddSkirt each
// boundary segment gets a vertical wall down to the lowest kept sample.
func Generate(data []float32, width, height int, p Params) (*Heightmap, error) {
	if err := checkShape(data, width, height); err != nil {
		return nil, err
	}

	hm := &Heightmap{
		VertexMap: make([]int32, width*height),
		Width:     width,
		Height:    height,
		Params:    p,
	}

	dx := p.Span.X / float32(width-1)
	dz := p.Span.Z / float32(height-1)
	x0 := p.Origin.X - p.Span.X/2
	z0 := p.Origin.Z - p.Span.Z/2

	first := true
	for j := 0; j < height; j++ {
		for i := 0; i < width; i++ {
			k := j*width + i
			raw := data[k]
			if raw <= p.ExcludeBelow {
				hm.VertexMap[k] = -1
				continue
			}
			if first || raw < hm.MinElevation {
				hm.MinElevation = raw
				first = false
			}
			hm.VertexMap[k] = int32(len(hm.Vertices))
			hm.Vertices = append(hm.Vertices, geometry.Vertex{
				Position: [3]float32{x0 + float32(i)*dx, hm.surfaceY(raw), z0 + float32(j)*dz},
				TexCoord: [2]float32{float32(i) / float32(width-1), float32(j) / float32(height-1)},
			})
		}
	}
	hm.GridVertexCount = len(hm.Vertices)

	for j := 0; j < height-1; j++ {
		for i := 0; i < width-1; i++ {
			v0 := hm.VertexMap[j*width+i]
			v1 := hm.VertexMap[j*width+i+1]
			v2 := hm.VertexMap[(j+1)*width+i]
			v3 := hm.VertexMap[(j+1)*width+i+1]
			if v0 < 0 || v1 < 0 || v2 < 0 || v3 < 0 {
				continue
			}
			hm.Indices = append(hm.Indices,
				uint32(v0), uint32(v2), uint32(v1),
				uint32(v1), uint32(v2), uint32(v3),
			)
		}
	}

	if p.AddSkirt && hm.GridVertexCount > 0 {
		hm.buildSkirt()
	}

	geometry.ComputeNormals(&hm.Geometry)
	return hm, nil
}

// UpdateElevation rewrites vertex heights from new samples without touching
// topology. Masking is not re-evaluated: the vertex map fixed at Generate
// time decides which samples are read. Skirt bottoms follow the new minimum.
func (h *Heightmap) UpdateElevation(data []float32) error {
	if err := checkShape(data, h.Width, h.Height); err != nil {
		return err
	}

	first := true
	for k, idx := range h.VertexMap {
		if idx < 0 {
			continue
		}
		raw := data[k]
		if first || raw < h.MinElevation {
			h.MinElevation = raw
			first = false
		}
		h.Vertices[idx].Position[1] = h.surfaceY(raw)
	}

	base := h.skirtY()
	for i := h.GridVertexCount; i < len(h.Vertices); i++ {
		h.Vertices[i].Position[1] = base
	}

	geometry.ComputeNormals(&h.Geometry)
	return nil
}

// buildSkirt walks each border in the direction that makes its wall face
// outward: the left edge toward +Z, right toward -Z, bottom toward -X and
// top toward +X.
func (h *Heightmap) buildSkirt() {
	w, ht := h.Width, h.Height
	at := func(i, j int) int32 { return h.VertexMap[j*w+i] }

	for j := 0; j < ht-1; j++ {
		h.skirtSegment(at(0, j), at(0, j+1))
	}
	for j := ht - 1; j > 0; j-- {
		h.skirtSegment(at(w-1, j), at(w-1, j-1))
	}
	for i := w - 1; i > 0; i-- {
		h.skirtSegment(at(i, 0), at(i-1, 0))
	}
	for i := 0; i < w-1; i++ {
		h.skirtSegment(at(i, ht-1), at(i+1, ht-1))
	}
}

func (h *Heightmap) skirtSegment(a, b int32) {
	if a < 0 || b < 0 {
		return
	}
	base := h.skirtY()
	ta, tb := uint32(a), uint32(b)
	ba := uint32(len(h.Vertices))
	bb := ba + 1

	for _, top := range [2]uint32{ta, tb} {
		v := h.Vertices[top]
		v.Position[1] = base
		h.Vertices = append(h.Vertices, v)
	}
	h.Indices = append(h.Indices, ta, ba, tb, tb, ba, bb)
}

func (h *Heightmap) surfaceY(raw float32) float32 {
	return h.Params.Origin.Y + raw*h.Params.Span.Y + h.Params.AddLevel
}

func (h *Heightmap) skirtY() float32 {
	return h.surfaceY(h.MinElevation)
}

func checkShape(data []float32, width, height int) error {
	if width < 2 || height < 2 {
		return fmt.Errorf("%w: %dx%d, need at least 2x2", ErrShape, width, height)
	}
	if len(data) != width*height {
		return fmt.Errorf("%w: %dx%d needs %d samples, got %d", ErrShape, width, height, width*height, len(data))
	}
	return nil
}

// Bilinear samples a row-major grid at normalized coordinates (u, v) in
// [0,1], clamping outside the grid.
func Bilinear(data []float32, width, height int, u, v float32) float32 {
	if width < 1 || height < 1 || len(data) < width*height {
		return 0
	}
	fx := clampf(u, 0, 1) * float32(width-1)
	fz := clampf(v, 0, 1) * float32(height-1)
	x := min(int(fx), max(width-2, 0))
	z := min(int(fz), max(height-2, 0))
	tx := clampf(fx-float32(x), 0, 1)
	tz := clampf(fz-float32(z), 0, 1)

	at := func(i, j int) float32 {
		return data[min(j, height-1)*width+min(i, width-1)]
	}
	south := at(x, z)*(1-tx) + at(x+1, z)*tx
	north := at(x, z+1)*(1-tx) + at(x+1, z+1)*tx
	return south*(1-tz) + north*tz
}

// WorldPosition maps normalized grid coordinates and a raw sample to the
// world position Generate would give it.
func (p Params) WorldPosition(u, v, raw float32) math.Vec3 {
	return math.Vec3{
		X: p.Origin.X + p.Span.X*(u-0.5),
		Y: p.Origin.Y + raw*p.Span.Y + p.AddLevel,
		Z: p.Origin.Z + p.Span.Z*(v-0.5),
	}
}

func clampf(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
