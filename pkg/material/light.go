package material

import (
	"github.com/df07/go-bvh-pathtracer/pkg/core"
)

// Light represents a light-emitting material
type Light struct {
	Albedo    core.Vec3 // Emitted colour
	Intensity float64   // Scale applied to Albedo
}

// NewLight creates a new emissive material
func NewLight(albedo core.Vec3, intensity float64) *Light {
	return &Light{Albedo: albedo, Intensity: intensity}
}

// Scatter implements the Material interface for emissive materials
// Lights don't scatter rays - they absorb everything that reaches them
func (l *Light) Scatter(core.Ray, core.SurfaceInteraction, core.Sampler) (core.Ray, core.Vec3, bool) {
	return core.Ray{}, core.Vec3{}, false
}

// Emitted returns Albedo scaled by Intensity
func (l *Light) Emitted() core.Vec3 {
	return l.Albedo.Multiply(l.Intensity)
}

// PDF is always 0 since lights never scatter
func (l *Light) PDF(incoming, outgoing, normal core.Vec3) float64 {
	return 0
}
