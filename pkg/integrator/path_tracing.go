package integrator

import (
	"math"

	"github.com/df07/go-bvh-pathtracer/pkg/core"
)

// PathTracer implements unidirectional path tracing with no next event
// estimation. Light is only gathered when a path hits an emitter.
type PathTracer struct {
	MaxDepth int // Maximum number of surface interactions per path
}

// NewPathTracer creates a path tracer that follows paths for at most maxDepth bounces
func NewPathTracer(maxDepth int) *PathTracer {
	return &PathTracer{MaxDepth: maxDepth}
}

// RayColor computes the radiance along ray with CastRay
func (pt *PathTracer) RayColor(ray core.Ray, scene Scene, sampler core.Sampler) core.Vec3 {
	return CastRay(ray, scene, pt.MaxDepth, sampler)
}

// CastRay estimates the radiance along ray by following a single path for at
// most depth surface interactions. The path is walked iteratively with a
// running throughput, so deep paths use constant stack.
//
// A path ends when depth runs out, the ray escapes (there is no environment
// light), the material absorbs it, or its scattering density is zero. A hit
// on a shape whose material is not registered contributes core.ErrorColour
// and ends the path. Radiance is not clamped.
func CastRay(ray core.Ray, scene Scene, depth int, sampler core.Sampler) core.Vec3 {
	radiance := core.Vec3{}
	throughput := core.NewVec3(1, 1, 1)

	for ; depth > 0; depth-- {
		hit, _, ok := scene.Intersect(ray)
		if !ok {
			break
		}

		mat, ok := scene.Material(hit.MaterialID)
		if !ok {
			radiance = radiance.Add(throughput.MultiplyVec(core.ErrorColour))
			break
		}

		radiance = radiance.Add(throughput.MultiplyVec(mat.Emitted()))

		scattered, attenuation, ok := mat.Scatter(ray, hit, sampler)
		if !ok {
			break
		}
		pdf := mat.PDF(ray.Direction, scattered.Direction, hit.Normal)
		if pdf <= 0 {
			break
		}

		// Lambertian scattering density cos/π, importance weighted by the
		// material's sampling pdf
		cos := math.Max(0, scattered.Direction.Normalize().Dot(hit.Normal))
		throughput = throughput.MultiplyVec(attenuation).Multiply(cos / math.Pi / pdf)
		if throughput.IsZero() {
			break
		}
		ray = scattered
	}

	return radiance
}
