package material

import (
	"github.com/df07/go-bvh-pathtracer/pkg/core"
)

// Material describes how a surface scatters and emits light
type Material interface {
	// Scatter samples an outgoing ray at hit. It returns the scattered ray,
	// the colour attenuation, and false if the material absorbs the ray.
	Scatter(rayIn core.Ray, hit core.SurfaceInteraction, sampler core.Sampler) (core.Ray, core.Vec3, bool)

	// Emitted returns the radiance leaving the surface on its own
	Emitted() core.Vec3

	// PDF returns the solid angle density with which Scatter produces
	// outgoing for the given incoming direction and surface normal
	PDF(incoming, outgoing, normal core.Vec3) float64
}

// Store is an append-only table of materials addressed by core.MaterialID.
// It is not safe for concurrent Add; concurrent Get after construction is fine.
type Store struct {
	materials []Material
}

// NewStore creates an empty store
func NewStore() *Store {
	return &Store{}
}

// Add appends m and returns its ID. IDs are assigned densely from zero.
func (s *Store) Add(m Material) core.MaterialID {
	s.materials = append(s.materials, m)
	return core.MaterialID(len(s.materials) - 1)
}

// Get returns the material for id, or false if id was never issued
func (s *Store) Get(id core.MaterialID) (Material, bool) {
	if id < 0 || int(id) >= len(s.materials) {
		return nil, false
	}
	return s.materials[id], true
}

// Len returns the number of materials in the store
func (s *Store) Len() int {
	return len(s.materials)
}
