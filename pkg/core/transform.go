package core

import (
	"github.com/go-gl/mathgl/mgl64"
)

// Transform is an affine transform with its cached inverse. Shapes hold one
// object-to-world transform and use Inverse for world-to-object queries.
type Transform struct {
	m    mgl64.Mat4
	mInv mgl64.Mat4
}

// IdentityTransform returns the identity transform
func IdentityTransform() Transform {
	return Transform{m: mgl64.Ident4(), mInv: mgl64.Ident4()}
}

// NewTransform creates a transform from a matrix, computing its inverse.
// A singular matrix yields a zero inverse.
func NewTransform(m mgl64.Mat4) Transform {
	return Transform{m: m, mInv: m.Inv()}
}

// NewTransformWithInverse creates a transform from a matrix and a known inverse
func NewTransformWithInverse(m, mInv mgl64.Mat4) Transform {
	return Transform{m: m, mInv: mInv}
}

// Translate returns a translation by delta
func Translate(delta Vec3) Transform {
	return Transform{
		m:    mgl64.Translate3D(delta.X, delta.Y, delta.Z),
		mInv: mgl64.Translate3D(-delta.X, -delta.Y, -delta.Z),
	}
}

// Scale returns a non-uniform scale. Negative factors mirror and flip handedness.
func Scale(x, y, z float64) Transform {
	return Transform{
		m:    mgl64.Scale3D(x, y, z),
		mInv: mgl64.Scale3D(1/x, 1/y, 1/z),
	}
}

// Rotate returns the rotation described by a quaternion
func Rotate(q mgl64.Quat) Transform {
	q = q.Normalize()
	return Transform{m: q.Mat4(), mInv: q.Conjugate().Mat4()}
}

// RotateEuler returns a rotation by the given angles in radians, applied
// about X, then Y, then Z
func RotateEuler(angles Vec3) Transform {
	m := mgl64.HomogRotate3DZ(angles.Z).Mul4(
		mgl64.HomogRotate3DY(angles.Y).Mul4(
			mgl64.HomogRotate3DX(angles.X)))
	return Transform{m: m, mInv: m.Transpose()}
}

// Compose returns the transform applying other first, then t
func (t Transform) Compose(other Transform) Transform {
	return Transform{m: t.m.Mul4(other.m), mInv: other.mInv.Mul4(t.mInv)}
}

// Inverse returns the inverse transform
func (t Transform) Inverse() Transform {
	return Transform{m: t.mInv, mInv: t.m}
}

// Matrix returns the forward matrix
func (t Transform) Matrix() mgl64.Mat4 {
	return t.m
}

// InverseMatrix returns the inverse matrix
func (t Transform) InverseMatrix() mgl64.Mat4 {
	return t.mInv
}

// IsIdentity reports whether the transform is the identity
func (t Transform) IsIdentity() bool {
	return t.m == mgl64.Ident4()
}

// SwapsHandedness reports whether the transform changes the coordinate
// system's handedness, i.e. its upper-left 3x3 has a negative determinant
func (t Transform) SwapsHandedness() bool {
	return t.m.Mat3().Det() < 0
}

// Axes returns the images of the unit X, Y and Z axes. Their lengths are
// the scale factors along each object-space axis.
func (t Transform) Axes() (Vec3, Vec3, Vec3) {
	return t.Vector(Vec3{X: 1}), t.Vector(Vec3{Y: 1}), t.Vector(Vec3{Z: 1})
}

// Point transforms a point, including translation
func (t Transform) Point(p Vec3) Vec3 {
	return fromMgl(mgl64.TransformCoordinate(toMgl(p), t.m))
}

// Vector transforms a direction, ignoring translation
func (t Transform) Vector(v Vec3) Vec3 {
	return fromMgl(mgl64.TransformNormal(toMgl(v), t.m))
}

// Normal transforms a surface normal by the inverse transpose. The result
// is not normalized.
func (t Transform) Normal(n Vec3) Vec3 {
	return fromMgl(mgl64.TransformNormal(toMgl(n), t.mInv.Transpose()))
}

// Ray transforms a ray's origin and direction. The parametric interval is
// kept, so distances along the returned ray match the input ray.
func (t Transform) Ray(r Ray) Ray {
	r.Origin = t.Point(r.Origin)
	r.Direction = t.Vector(r.Direction)
	return r
}

// Bounds transforms all eight corners of b and returns their bounds
func (t Transform) Bounds(b Bounds3) Bounds3 {
	out := NewBounds3FromPoint(t.Point(b.Corner(0)))
	for i := 1; i < 8; i++ {
		out = out.UnionPoint(t.Point(b.Corner(i)))
	}
	return out
}

func toMgl(v Vec3) mgl64.Vec3 {
	return mgl64.Vec3{v.X, v.Y, v.Z}
}

func fromMgl(v mgl64.Vec3) Vec3 {
	return Vec3{X: v[0], Y: v[1], Z: v[2]}
}
