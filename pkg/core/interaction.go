package core

// MaterialID is a stable handle into a scene's material store. Shapes refer
// to materials only through this ID, so many shapes can share one material.
type MaterialID int

// SurfaceInteraction describes a ray-surface intersection
type SurfaceInteraction struct {
	Point      Vec3       // Point of intersection in world space
	Normal     Vec3       // Unit surface normal, facing against the incoming ray
	FrontFace  bool       // Whether the ray hit the outward-facing side
	MaterialID MaterialID // Material of the hit shape
}

// SetFaceNormal stores the normal facing the incoming ray and records which
// side of the surface was hit. outwardNormal must be unit length.
func (si *SurfaceInteraction) SetFaceNormal(ray Ray, outwardNormal Vec3) {
	si.FrontFace = ray.Direction.Dot(outwardNormal) < 0
	if si.FrontFace {
		si.Normal = outwardNormal
	} else {
		si.Normal = outwardNormal.Negate()
	}
}
