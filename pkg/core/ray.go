package core

import "math"

// RayEpsilon is the default lower bound for the parametric interval of
// primary and scattered rays, keeping them off the surface they leave.
const RayEpsilon = 1e-3

// Ray represents a ray with an origin, a direction and a valid parametric
// interval [TMin, TMax]. The direction is not required to be unit length.
type Ray struct {
	Origin    Vec3
	Direction Vec3
	TMin      float64
	TMax      float64
}

// NewRay creates a ray valid over [RayEpsilon, +Inf)
func NewRay(origin, direction Vec3) Ray {
	return Ray{Origin: origin, Direction: direction, TMin: RayEpsilon, TMax: math.Inf(1)}
}

// NewRayInterval creates a ray valid over [tMin, tMax]
func NewRayInterval(origin, direction Vec3, tMin, tMax float64) Ray {
	return Ray{Origin: origin, Direction: direction, TMin: tMin, TMax: tMax}
}

// At returns the point at parameter t along the ray
func (r Ray) At(t float64) Vec3 {
	return r.Origin.Add(r.Direction.Multiply(t))
}

// WithTMax returns a copy of the ray with a different far bound
func (r Ray) WithTMax(tMax float64) Ray {
	r.TMax = tMax
	return r
}

// Contains reports whether t lies strictly inside the ray's valid interval
func (r Ray) Contains(t float64) bool {
	return t > r.TMin && t < r.TMax
}
