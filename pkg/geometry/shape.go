package geometry

import (
	"math"

	"github.com/pkg/errors"

	"github.com/df07/go-bvh-pathtracer/pkg/core"
)

// ErrUnsupportedTransform is the panic value of shape constructors given an
// object-to-world transform the shape cannot represent
var ErrUnsupportedTransform = errors.New("unsupported shape transform")

// scaleTolerance is the relative tolerance for comparing axis scales and
// testing axes for perpendicularity
const scaleTolerance = 1e-9

func nearlyEqual(a, b float64) bool {
	return math.Abs(a-b) <= scaleTolerance*math.Max(math.Abs(a), math.Abs(b))
}

func perpendicular(u, v core.Vec3) bool {
	return math.Abs(u.Dot(v)) <= scaleTolerance*u.Length()*v.Length()
}

// Shape is a geometric primitive that can be intersected, bounded and sampled.
// Shapes are immutable once created and safe for concurrent use.
type Shape interface {
	// Intersect returns the closest hit strictly inside (ray.TMin, ray.TMax)
	// and its parametric distance along ray
	Intersect(ray core.Ray) (core.SurfaceInteraction, float64, bool)
	// IntersectP reports whether any hit exists inside the ray interval
	IntersectP(ray core.Ray) bool

	ObjectBounds() core.Bounds3
	WorldBounds() core.Bounds3
	ObjectToWorld() core.Transform
	WorldToObject() core.Transform
	ReverseOrientation() bool
	TransformSwapsHandedness() bool
	MaterialID() core.MaterialID

	// Sampling hooks for light sampling; the path tracer does not call them.

	// Area of the surface; see each shape for what is included
	Area() float64
	// Pdf is the area density of Sample at si
	Pdf(si core.SurfaceInteraction) float64
	// Sample picks a point on the surface from a uniform 2D sample
	Sample(u core.Vec2) core.SurfaceInteraction
	// PdfWi is the solid angle density, seen from ref, of sampling the
	// direction wi by sampling a point on the shape
	PdfWi(ref core.SurfaceInteraction, wi core.Vec3) float64
}

// placement holds the state every shape shares: its transform pair, the
// orientation flags and the material handle
type placement struct {
	objectToWorld            core.Transform
	worldToObject            core.Transform
	reverseOrientation       bool
	transformSwapsHandedness bool
	materialID               core.MaterialID
}

func newPlacement(objectToWorld core.Transform, materialID core.MaterialID, reverseOrientation bool) placement {
	return placement{
		objectToWorld:            objectToWorld,
		worldToObject:            objectToWorld.Inverse(),
		reverseOrientation:       reverseOrientation,
		transformSwapsHandedness: objectToWorld.SwapsHandedness(),
		materialID:               materialID,
	}
}

func (p *placement) ObjectToWorld() core.Transform  { return p.objectToWorld }
func (p *placement) WorldToObject() core.Transform  { return p.worldToObject }
func (p *placement) ReverseOrientation() bool       { return p.reverseOrientation }
func (p *placement) TransformSwapsHandedness() bool { return p.transformSwapsHandedness }
func (p *placement) MaterialID() core.MaterialID    { return p.materialID }

// orient flips an outward normal when exactly one of reverseOrientation and
// transformSwapsHandedness is set
func (p *placement) orient(n core.Vec3) core.Vec3 {
	if p.reverseOrientation != p.transformSwapsHandedness {
		return n.Negate()
	}
	return n
}

// interaction builds the surface record for a hit, recording the side hit
func (p *placement) interaction(ray core.Ray, point, outwardNormal core.Vec3) core.SurfaceInteraction {
	si := core.SurfaceInteraction{Point: point, MaterialID: p.materialID}
	si.SetFaceNormal(ray, p.orient(outwardNormal))
	return si
}

// pdfWi converts an area density to solid angle from ref by finding where a
// ray along wi meets the shape
func pdfWi(s Shape, ref core.SurfaceInteraction, wi core.Vec3, areaPdf float64) float64 {
	ray := core.NewRay(ref.Point, wi)
	hit, _, ok := s.Intersect(ray)
	if !ok {
		return 0
	}
	toHit := hit.Point.Subtract(ref.Point)
	cos := math.Abs(hit.Normal.Dot(wi.Normalize()))
	if cos == 0 {
		return 0
	}
	return areaPdf * toHit.LengthSquared() / cos
}
