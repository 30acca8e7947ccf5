package texture

import (
	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/Faultbox/qterrain/internal/engine/shader"
)

// Names of the textures the viewer shaders sample.
const (
	Albedo    = "albedo"
	Hmap      = "hmap"
	Normal    = "normal"
	ShadowMap = "shadow_map"
	DepthMap  = "depth"
)

// Registry keeps named textures in registration order so unit assignment
// is stable between frames.
type Registry struct {
	order    []string
	textures map[string]*Texture
	bound    uint32
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{textures: make(map[string]*Texture)}
}

// Add registers an empty color texture slot, or returns the existing one.
func (r *Registry) Add(name string) *Texture {
	if t, ok := r.textures[name]; ok {
		return t
	}
	t := &Texture{}
	r.textures[name] = t
	r.order = append(r.order, name)
	return t
}

// AddDepth registers and allocates a depth target.
func (r *Registry) AddDepth(name string, width, height int32, borderWhite bool) *Texture {
	t := r.Add(name)
	t.AllocateDepth(width, height, borderWhite)
	return t
}

// Get returns the named texture or nil.
func (r *Registry) Get(name string) *Texture {
	return r.textures[name]
}

// Active reports whether name exists and holds an image.
func (r *Registry) Active(name string) bool {
	return r.textures[name].IsActive()
}

// BindAndSet binds every active texture to consecutive units and points
// the program's "texture_<name>" sampler at it.
func (r *Registry) BindAndSet(p *shader.Program) {
	var unit uint32
	for _, name := range r.order {
		t := r.textures[name]
		if !t.IsActive() {
			continue
		}
		t.Bind(unit)
		p.SetInt("texture_"+name, int32(unit))
		unit++
	}
	r.bound = unit
}

// Unbind clears the units used by the last BindAndSet.
func (r *Registry) Unbind() {
	for unit := uint32(0); unit < r.bound; unit++ {
		gl.ActiveTexture(gl.TEXTURE0 + unit)
		gl.BindTexture(gl.TEXTURE_2D, 0)
	}
	gl.ActiveTexture(gl.TEXTURE0)
	r.bound = 0
}

// Reset releases the image behind name, keeping the slot.
func (r *Registry) Reset(name string) {
	if t := r.textures[name]; t != nil {
		t.Destroy()
	}
}

// ResetColor releases every color texture. Depth targets survive.
func (r *Registry) ResetColor() {
	for _, t := range r.textures {
		if t.format.IsDepth() && t.IsActive() {
			continue
		}
		t.Destroy()
	}
}

// Destroy releases everything.
func (r *Registry) Destroy() {
	for _, t := range r.textures {
		t.Destroy()
	}
}
