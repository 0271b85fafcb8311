package scene

import (
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/df07/go-bvh-pathtracer/pkg/core"
	"github.com/df07/go-bvh-pathtracer/pkg/geometry"
	"github.com/df07/go-bvh-pathtracer/pkg/material"
)

var (
	// ErrBVHNotGenerated is the panic value of Intersect on a scene whose
	// BVH was never generated, and the error Renderer returns for it
	ErrBVHNotGenerated = errors.New("scene BVH has not been generated")
	// ErrBVHAlreadyGenerated is returned by a second call to GenerateBVH
	ErrBVHAlreadyGenerated = errors.New("scene BVH has already been generated")
	// ErrSceneFrozen is the panic value of any mutation after GenerateBVH
	ErrSceneFrozen = errors.New("scene is frozen after BVH generation")
)

// Scene contains all the elements needed for rendering. It is built with
// the Add methods, frozen by GenerateBVH, and read-only afterwards so that
// render workers can share it without locking.
type Scene struct {
	CameraConfig geometry.CameraConfig // AspectRatio is filled in by the renderer

	objects        []geometry.Shape
	lightPositions []core.Vec3
	materials      *material.Store
	bvh            *geometry.BVH
	logger         core.Logger
}

// New creates an empty scene. A nil logger discards all output.
func New(logger core.Logger) *Scene {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &Scene{
		materials: material.NewStore(),
		logger:    logger,
	}
}

func (s *Scene) mustNotBeFrozen(op string) {
	if s.bvh != nil {
		panic(errors.Wrap(ErrSceneFrozen, op))
	}
}

// AddObject adds a shape to the scene
func (s *Scene) AddObject(shape geometry.Shape) {
	s.mustNotBeFrozen("AddObject")
	s.objects = append(s.objects, shape)
}

// AddMaterial adds a material and returns the ID shapes use to refer to it
func (s *Scene) AddMaterial(m material.Material) core.MaterialID {
	s.mustNotBeFrozen("AddMaterial")
	return s.materials.Add(m)
}

// AddLightPos records the position of an emitter
func (s *Scene) AddLightPos(p core.Vec3) {
	s.mustNotBeFrozen("AddLightPos")
	s.lightPositions = append(s.lightPositions, p)
}

// GenerateBVH builds the acceleration structure and freezes the scene.
// It may be called exactly once.
func (s *Scene) GenerateBVH() error {
	if s.bvh != nil {
		return ErrBVHAlreadyGenerated
	}

	s.bvh = geometry.NewBVH(s.objects)

	stats := s.bvh.Stats()
	s.logger.Debugf("BVH built: %d shapes, %d nodes, %d leaves, max depth %d, avg leaf depth %.1f",
		stats.Shapes, stats.Nodes, stats.Leaves, stats.MaxDepth, stats.AvgLeafDepth)
	if stats.MaxLeafShapes > 1 {
		s.logger.Debugf("BVH has a leaf of %d shapes with coincident centroids", stats.MaxLeafShapes)
	}
	return nil
}

// Frozen reports whether GenerateBVH has been called
func (s *Scene) Frozen() bool {
	return s.bvh != nil
}

// Intersect returns the closest hit along ray. It panics with
// ErrBVHNotGenerated if GenerateBVH has not been called.
func (s *Scene) Intersect(ray core.Ray) (core.SurfaceInteraction, float64, bool) {
	if s.bvh == nil {
		panic(ErrBVHNotGenerated)
	}
	return s.bvh.Intersect(ray)
}

// IntersectP reports whether anything is hit along ray. It is the
// shadow-ray query for light sampling; the path tracer does not call it.
// It panics with ErrBVHNotGenerated if GenerateBVH has not been called.
func (s *Scene) IntersectP(ray core.Ray) bool {
	if s.bvh == nil {
		panic(ErrBVHNotGenerated)
	}
	return s.bvh.IntersectP(ray)
}

// Material returns the material registered under id
func (s *Scene) Material(id core.MaterialID) (material.Material, bool) {
	return s.materials.Get(id)
}

// MaterialCount returns the number of registered materials
func (s *Scene) MaterialCount() int {
	return s.materials.Len()
}

// Objects returns a copy of the shapes in insertion order
func (s *Scene) Objects() []geometry.Shape {
	out := make([]geometry.Shape, len(s.objects))
	copy(out, s.objects)
	return out
}

// LightPositions returns a copy of the recorded emitter positions
func (s *Scene) LightPositions() []core.Vec3 {
	out := make([]core.Vec3, len(s.lightPositions))
	copy(out, s.lightPositions)
	return out
}

// BVHStats returns statistics of the generated BVH, or zero stats before
// GenerateBVH
func (s *Scene) BVHStats() geometry.BVHStats {
	if s.bvh == nil {
		return geometry.BVHStats{}
	}
	return s.bvh.Stats()
}
