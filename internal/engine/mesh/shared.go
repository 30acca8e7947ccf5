package mesh

// SharedMesh is a reference counted Mesh. Instanced meshes hold references
// so one base geometry can back several instance sets; the mesh is
// destroyed when the last reference is released.
type SharedMesh struct {
	mesh *Mesh
	refs int
}

// NewSharedMesh takes ownership of m with a reference count of one.
func NewSharedMesh(m *Mesh) *SharedMesh {
	return &SharedMesh{mesh: m, refs: 1}
}

// Mesh returns the underlying mesh, nil once fully released.
func (s *SharedMesh) Mesh() *Mesh {
	if s == nil {
		return nil
	}
	return s.mesh
}

// Acquire adds a reference.
func (s *SharedMesh) Acquire() *SharedMesh {
	s.refs++
	return s
}

// Release drops a reference and destroys the mesh on the last one.
func (s *SharedMesh) Release() {
	if s.refs == 0 {
		return
	}
	s.refs--
	if s.refs == 0 && s.mesh != nil {
		s.mesh.Destroy()
		s.mesh = nil
	}
}

// Refs returns the current reference count.
func (s *SharedMesh) Refs() int { return s.refs }
