package material

import (
	"github.com/df07/go-bvh-pathtracer/pkg/core"
)

// Diffuse represents a perfectly diffuse (Lambertian) material
type Diffuse struct {
	Albedo core.Vec3 // Fraction of light reflected per channel
}

// NewDiffuse creates a new diffuse material
func NewDiffuse(albedo core.Vec3) *Diffuse {
	return &Diffuse{Albedo: albedo}
}

// Scatter samples a cosine-weighted direction in the hemisphere around the
// shading normal. The scattered ray keeps the incoming ray's interval.
func (d *Diffuse) Scatter(rayIn core.Ray, hit core.SurfaceInteraction, sampler core.Sampler) (core.Ray, core.Vec3, bool) {
	direction := core.SampleCosineHemisphere(hit.Normal, sampler.Get2D())
	scattered := core.NewRayInterval(hit.Point, direction, rayIn.TMin, rayIn.TMax)
	return scattered, d.Albedo, true
}

// Emitted returns black; diffuse surfaces do not glow
func (d *Diffuse) Emitted() core.Vec3 {
	return core.Vec3{}
}

// PDF returns cos(θ)/π for outgoing above the surface and 0 below it
func (d *Diffuse) PDF(incoming, outgoing, normal core.Vec3) float64 {
	return core.CosineHemispherePdf(outgoing.Normalize().Dot(normal))
}
