package shader

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/Faultbox/qterrain/pkg/math"
)

// Program is a linked shader program. Uniform locations are looked up once
// and cached; setting a uniform the driver optimized away is a no-op.
type Program struct {
	Name string

	id       uint32
	uniforms map[string]int32
}

// Compile builds a named program.
func Compile(name, vertexSrc, fragmentSrc string) (*Program, error) {
	id, err := CompileProgram(vertexSrc, fragmentSrc)
	if err != nil {
		return nil, fmt.Errorf("program %s: %w", name, err)
	}
	return &Program{Name: name, id: id, uniforms: make(map[string]int32)}, nil
}

// ID returns the GL program object.
func (p *Program) ID() uint32 { return p.id }

// Use makes p the current program.
func (p *Program) Use() {
	gl.UseProgram(p.id)
}

// Uniform returns the location of a uniform, -1 if it is not active.
func (p *Program) Uniform(name string) int32 {
	if loc, ok := p.uniforms[name]; ok {
		return loc
	}
	loc := gl.GetUniformLocation(p.id, gl.Str(name+"\x00"))
	p.uniforms[name] = loc
	return loc
}

func (p *Program) SetBool(name string, v bool) {
	var i int32
	if v {
		i = 1
	}
	p.SetInt(name, i)
}

func (p *Program) SetInt(name string, v int32) {
	if loc := p.Uniform(name); loc >= 0 {
		gl.Uniform1i(loc, v)
	}
}

func (p *Program) SetFloat(name string, v float32) {
	if loc := p.Uniform(name); loc >= 0 {
		gl.Uniform1f(loc, v)
	}
}

func (p *Program) SetVec2(name string, x, y float32) {
	if loc := p.Uniform(name); loc >= 0 {
		gl.Uniform2f(loc, x, y)
	}
}

func (p *Program) SetVec3(name string, v math.Vec3) {
	if loc := p.Uniform(name); loc >= 0 {
		gl.Uniform3f(loc, v.X, v.Y, v.Z)
	}
}

// SetColor sets a vec3 uniform from an RGB triple.
func (p *Program) SetColor(name string, c [3]float32) {
	if loc := p.Uniform(name); loc >= 0 {
		gl.Uniform3f(loc, c[0], c[1], c[2])
	}
}

func (p *Program) SetMat4(name string, m math.Mat4) {
	if loc := p.Uniform(name); loc >= 0 {
		gl.UniformMatrix4fv(loc, 1, false, m.Ptr())
	}
}

// Destroy deletes the program. Safe to call twice.
func (p *Program) Destroy() {
	if p.id != 0 {
		gl.DeleteProgram(p.id)
		p.id = 0
	}
	clear(p.uniforms)
}
