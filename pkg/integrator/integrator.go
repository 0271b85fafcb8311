package integrator

import (
	"github.com/df07/go-bvh-pathtracer/pkg/core"
	"github.com/df07/go-bvh-pathtracer/pkg/material"
)

// Scene is the read-only view of a scene the integrator needs.
// *scene.Scene satisfies it once its BVH has been generated.
type Scene interface {
	Intersect(ray core.Ray) (core.SurfaceInteraction, float64, bool)
	Material(id core.MaterialID) (material.Material, bool)
}

// Integrator defines the interface for light transport algorithms
type Integrator interface {
	// RayColor estimates the radiance arriving along ray
	RayColor(ray core.Ray, scene Scene, sampler core.Sampler) core.Vec3
}
