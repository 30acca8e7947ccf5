package shader

import (
	"go.uber.org/zap"

	"github.com/Faultbox/qterrain/internal/logger"
)

// Registry owns the viewer's programs by name.
type Registry struct {
	programs map[string]*Program
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{programs: make(map[string]*Program)}
}

// Add compiles and registers a program. On failure the error is logged and
// returned, and no entry is created, so draws using the name are skipped.
func (r *Registry) Add(name, vertexSrc, fragmentSrc string) error {
	p, err := Compile(name, vertexSrc, fragmentSrc)
	if err != nil {
		logger.Error("shader compilation failed", zap.String("program", name), zap.Error(err))
		return err
	}
	if old, ok := r.programs[name]; ok {
		old.Destroy()
	}
	r.programs[name] = p
	logger.Debug("shader program ready", zap.String("program", name), zap.Uint32("id", p.ID()))
	return nil
}

// Get returns the named program or nil.
func (r *Registry) Get(name string) *Program {
	return r.programs[name]
}

// Names lists the registered programs.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.programs))
	for n := range r.programs {
		names = append(names, n)
	}
	return names
}

// Destroy deletes every program.
func (r *Registry) Destroy() {
	for name, p := range r.programs {
		p.Destroy()
		delete(r.programs, name)
	}
}
