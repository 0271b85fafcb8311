package geometry

import (
	"math"

	"github.com/pkg/errors"

	"github.com/df07/go-bvh-pathtracer/pkg/core"
)

// Sphere represents a sphere shape. Intersection, world bounds and sampling
// all run in world space against Center and Radius. Radius is the
// object-space radius times the transform's uniform scale.
type Sphere struct {
	placement
	Center core.Vec3
	Radius float64

	objectRadius float64
}

// NewSphere creates a sphere centred at center
func NewSphere(center core.Vec3, radius float64, materialID core.MaterialID, reverseOrientation bool) *Sphere {
	return &Sphere{
		placement: newPlacement(core.Translate(center), materialID, reverseOrientation),
		Center:       center,
		Radius:       radius,
		objectRadius: radius,
	}
}

// NewSphereFromTransform creates a sphere whose centre is the image of the
// object-space origin under objectToWorld. The transform must be a
// similarity (rotation, mirroring, translation and uniform scale); anything
// that would turn the sphere into an ellipsoid panics with
// ErrUnsupportedTransform.
func NewSphereFromTransform(objectToWorld core.Transform, radius float64, materialID core.MaterialID, reverseOrientation bool) *Sphere {
	x, y, z := objectToWorld.Axes()
	scale := x.Length()
	if !nearlyEqual(scale, y.Length()) || !nearlyEqual(scale, z.Length()) ||
		!perpendicular(x, y) || !perpendicular(y, z) || !perpendicular(x, z) {
		panic(errors.Wrapf(ErrUnsupportedTransform, "sphere axes scale by %g, %g, %g", scale, y.Length(), z.Length()))
	}

	return &Sphere{
		placement:    newPlacement(objectToWorld, materialID, reverseOrientation),
		Center:       objectToWorld.Point(core.Vec3{}),
		Radius:       radius * scale,
		objectRadius: radius,
	}
}

// Intersect tests the ray against the sphere
func (s *Sphere) Intersect(ray core.Ray) (core.SurfaceInteraction, float64, bool) {
	t, ok := s.hitDistance(ray)
	if !ok {
		return core.SurfaceInteraction{}, 0, false
	}

	point := ray.At(t)
	outwardNormal := point.Subtract(s.Center).Normalize()
	return s.interaction(ray, point, outwardNormal), t, true
}

// IntersectP reports whether the ray hits the sphere
func (s *Sphere) IntersectP(ray core.Ray) bool {
	_, ok := s.hitDistance(ray)
	return ok
}

func (s *Sphere) hitDistance(ray core.Ray) (float64, bool) {
	// Quadratic equation coefficients: at² + bt + c = 0
	oc := ray.Origin.Subtract(s.Center)
	a := ray.Direction.LengthSquared()
	b := 2 * oc.Dot(ray.Direction)
	c := oc.LengthSquared() - s.Radius*s.Radius

	t0, t1, ok := core.Quadratic(a, b, c)
	if !ok {
		return 0, false
	}
	if ray.Contains(t0) {
		return t0, true
	}
	if ray.Contains(t1) {
		return t1, true
	}
	return 0, false
}

// ObjectBounds returns the bounds of the sphere around the object-space origin
func (s *Sphere) ObjectBounds() core.Bounds3 {
	r := core.NewVec3(s.objectRadius, s.objectRadius, s.objectRadius)
	return core.NewBounds3(r.Negate(), r)
}

// WorldBounds returns the tight box around the world-space sphere
func (s *Sphere) WorldBounds() core.Bounds3 {
	r := core.NewVec3(s.Radius, s.Radius, s.Radius)
	return core.NewBounds3(s.Center.Subtract(r), s.Center.Add(r))
}

// Area returns the surface area 4πr²
func (s *Sphere) Area() float64 {
	return 4 * math.Pi * s.Radius * s.Radius
}

// Pdf returns the uniform area density
func (s *Sphere) Pdf(core.SurfaceInteraction) float64 {
	return 1 / s.Area()
}

// Sample picks a point uniformly over the surface
func (s *Sphere) Sample(u core.Vec2) core.SurfaceInteraction {
	dir := core.SampleOnUnitSphere(u)
	return core.SurfaceInteraction{
		Point:      s.Center.Add(dir.Multiply(s.Radius)),
		Normal:     s.orient(dir),
		FrontFace:  true,
		MaterialID: s.materialID,
	}
}

// PdfWi returns the solid angle density of sampling wi from ref
func (s *Sphere) PdfWi(ref core.SurfaceInteraction, wi core.Vec3) float64 {
	return pdfWi(s, ref, wi, s.Pdf(ref))
}
