package geometry

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/pkg/errors"

	"github.com/df07/go-bvh-pathtracer/pkg/core"
)

// Cylinder is an open tube of the given radius around the object-space z
// axis between ZMin and ZMax. It has no caps.
type Cylinder struct {
	placement
	Radius float64
	ZMin   float64
	ZMax   float64

	areaScale float64 // world lateral area per unit object lateral area
}

// NewCylinder creates a cylinder of the given length centred on centre. The
// object-to-world transform is translate(centre) * scale(scale) * rotation.
func NewCylinder(centre core.Vec3, radius, length float64, rotation mgl64.Quat, scale float64, materialID core.MaterialID, reverseOrientation bool) *Cylinder {
	objectToWorld := core.Translate(centre).
		Compose(core.Scale(scale, scale, scale)).
		Compose(core.Rotate(rotation))
	return NewCylinderFromTransform(objectToWorld, radius, -length/2, length/2, materialID, reverseOrientation)
}

// NewCylinderFromTransform creates a cylinder from an explicit placement.
// zMin and zMax are swapped if given out of order. The transform may stretch
// the axis independently of the radius, but the cross-section must stay a
// circle: X and Y must scale equally and the three axes must stay
// perpendicular. Other transforms panic with ErrUnsupportedTransform.
func NewCylinderFromTransform(objectToWorld core.Transform, radius, zMin, zMax float64, materialID core.MaterialID, reverseOrientation bool) *Cylinder {
	if zMin > zMax {
		zMin, zMax = zMax, zMin
	}

	x, y, z := objectToWorld.Axes()
	radial, axial := x.Length(), z.Length()
	if !nearlyEqual(radial, y.Length()) || !perpendicular(x, y) || !perpendicular(y, z) || !perpendicular(x, z) {
		panic(errors.Wrapf(ErrUnsupportedTransform, "cylinder cross-section scales by %g and %g", radial, y.Length()))
	}

	return &Cylinder{
		placement: newPlacement(objectToWorld, materialID, reverseOrientation),
		Radius:    radius,
		ZMin:      zMin,
		ZMax:      zMax,
		areaScale: radial * axial,
	}
}

// Intersect transforms the ray into object space and intersects the
// infinite cylinder, keeping roots whose height lies inside (ZMin, ZMax)
func (c *Cylinder) Intersect(ray core.Ray) (core.SurfaceInteraction, float64, bool) {
	objectHit, t, ok := c.hit(ray)
	if !ok {
		return core.SurfaceInteraction{}, 0, false
	}

	// Hit point minus its projection on the central axis
	outwardNormal := c.objectToWorld.Normal(core.NewVec3(objectHit.X, objectHit.Y, 0)).Normalize()
	return c.interaction(ray, ray.At(t), outwardNormal), t, true
}

// IntersectP reports whether the ray hits the cylinder wall
func (c *Cylinder) IntersectP(ray core.Ray) bool {
	_, _, ok := c.hit(ray)
	return ok
}

// hit returns the object-space hit point and the parametric distance
func (c *Cylinder) hit(worldRay core.Ray) (core.Vec3, float64, bool) {
	ray := c.worldToObject.Ray(worldRay)
	o, d := ray.Origin, ray.Direction

	a := d.X*d.X + d.Y*d.Y
	b := 2 * (d.X*o.X + d.Y*o.Y)
	cc := o.X*o.X + o.Y*o.Y - c.Radius*c.Radius

	t0, t1, ok := core.Quadratic(a, b, cc)
	if !ok || t0 >= ray.TMax || t1 <= ray.TMin {
		return core.Vec3{}, 0, false
	}

	for _, t := range [2]float64{t0, t1} {
		if !ray.Contains(t) {
			continue
		}
		p := ray.At(t)
		if c.ZMin < p.Z && p.Z < c.ZMax {
			return p, t, true
		}
	}
	return core.Vec3{}, 0, false
}

// ObjectBounds returns the object-space box around the tube
func (c *Cylinder) ObjectBounds() core.Bounds3 {
	return core.NewBounds3(
		core.NewVec3(-c.Radius, -c.Radius, c.ZMin),
		core.NewVec3(c.Radius, c.Radius, c.ZMax),
	)
}

// WorldBounds returns the bounds of all eight transformed object-space corners
func (c *Cylinder) WorldBounds() core.Bounds3 {
	return c.objectToWorld.Bounds(c.ObjectBounds())
}

// Area returns the lateral area per radian of sweep, (ZMax-ZMin)*Radius.
// The full lateral area is 2π times this value.
func (c *Cylinder) Area() float64 {
	return (c.ZMax - c.ZMin) * c.Radius
}

// Pdf returns the uniform density over the full world-space lateral surface
func (c *Cylinder) Pdf(core.SurfaceInteraction) float64 {
	return 1 / (2 * math.Pi * c.Area() * c.areaScale)
}

// Sample picks a point uniformly over the lateral surface
func (c *Cylinder) Sample(u core.Vec2) core.SurfaceInteraction {
	z := c.ZMin + u.X*(c.ZMax-c.ZMin)
	phi := 2 * math.Pi * u.Y
	cos, sin := math.Cos(phi), math.Sin(phi)

	objectPoint := core.NewVec3(c.Radius*cos, c.Radius*sin, z)
	normal := c.objectToWorld.Normal(core.NewVec3(cos, sin, 0)).Normalize()
	return core.SurfaceInteraction{
		Point:      c.objectToWorld.Point(objectPoint),
		Normal:     c.orient(normal),
		FrontFace:  true,
		MaterialID: c.materialID,
	}
}

// PdfWi returns the solid angle density of sampling wi from ref
func (c *Cylinder) PdfWi(ref core.SurfaceInteraction, wi core.Vec3) float64 {
	return pdfWi(c, ref, wi, c.Pdf(ref))
}
