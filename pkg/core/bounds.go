package core

import "math"

// Bounds3 is an axis-aligned bounding box. PMin <= PMax holds component-wise
// for every box built through NewBounds3, Union or UnionPoint.
type Bounds3 struct {
	PMin     Vec3 // Minimum corner
	PMax     Vec3 // Maximum corner
	Centroid Vec3 // PMin + (PMax-PMin)/2
}

// NewBounds3 creates the box spanned by two corner points in any order
func NewBounds3(p, q Vec3) Bounds3 {
	pMin := p.Min(q)
	pMax := p.Max(q)
	return Bounds3{
		PMin:     pMin,
		PMax:     pMax,
		Centroid: pMin.Add(pMax.Subtract(pMin).Multiply(0.5)),
	}
}

// NewBounds3FromPoint creates a degenerate box containing a single point
func NewBounds3FromPoint(p Vec3) Bounds3 {
	return NewBounds3(p, p)
}

// Union returns a box bounding both this box and another
func (b Bounds3) Union(other Bounds3) Bounds3 {
	return NewBounds3(b.PMin.Min(other.PMin), b.PMax.Max(other.PMax))
}

// UnionPoint returns a box bounding this box and the point p
func (b Bounds3) UnionPoint(p Vec3) Bounds3 {
	return NewBounds3(b.PMin.Min(p), b.PMax.Max(p))
}

// Diagonal returns the vector from PMin to PMax
func (b Bounds3) Diagonal() Vec3 {
	return b.PMax.Subtract(b.PMin)
}

// SurfaceArea returns the surface area of the box
func (b Bounds3) SurfaceArea() float64 {
	d := b.Diagonal()
	return 2.0 * (d.X*d.Y + d.Y*d.Z + d.Z*d.X)
}

// MaximumExtent returns the axis (0=X, 1=Y, 2=Z) with the longest extent
func (b Bounds3) MaximumExtent() int {
	d := b.Diagonal()
	if d.X > d.Y && d.X > d.Z {
		return 0
	}
	if d.Y > d.Z {
		return 1
	}
	return 2
}

// Contains reports whether p lies inside the box, boundary included
func (b Bounds3) Contains(p Vec3) bool {
	return p.X >= b.PMin.X && p.X <= b.PMax.X &&
		p.Y >= b.PMin.Y && p.Y <= b.PMax.Y &&
		p.Z >= b.PMin.Z && p.Z <= b.PMax.Z
}

// Corner returns one of the eight corners; bit 0 selects X, bit 1 Y, bit 2 Z
func (b Bounds3) Corner(i int) Vec3 {
	pick := func(bit int, lo, hi float64) float64 {
		if i&bit != 0 {
			return hi
		}
		return lo
	}
	return Vec3{
		X: pick(1, b.PMin.X, b.PMax.X),
		Y: pick(2, b.PMin.Y, b.PMax.Y),
		Z: pick(4, b.PMin.Z, b.PMax.Z),
	}
}

// Intersect tests the ray against the box with the slab method, clipped to
// the ray's [TMin, TMax] interval.
//
// A zero direction component divides to ±Inf. When the origin lies strictly
// inside that slab the axis imposes no constraint; outside it the interval
// collapses and the test misses. An origin exactly on a slab plane produces
// NaN, which the comparisons below ignore.
func (b Bounds3) Intersect(ray Ray) bool {
	t0, t1 := ray.TMin, ray.TMax
	for axis := 0; axis < 3; axis++ {
		invDir := 1.0 / ray.Direction.Axis(axis)
		origin := ray.Origin.Axis(axis)
		tNear := (b.PMin.Axis(axis) - origin) * invDir
		tFar := (b.PMax.Axis(axis) - origin) * invDir
		if tNear > tFar {
			tNear, tFar = tFar, tNear
		}

		if tNear > t0 {
			t0 = tNear
		}
		if tFar < t1 {
			t1 = tFar
		}
		if t1 <= t0 {
			return false
		}
	}
	return true
}

// IntersectRobust is the conservative slab test used during BVH traversal.
// The exit distance of every slab is widened by 1+2*Gamma(3) to absorb the
// rounding error of the three operations that produce it, so boxes touched
// by transformed rays are never culled by accident. It returns the clipped
// parametric interval on a hit.
func (b Bounds3) IntersectRobust(ray Ray) (float64, float64, bool) {
	t0, t1 := ray.TMin, ray.TMax
	widen := 1 + 2*Gamma(3)
	for axis := 0; axis < 3; axis++ {
		invDir := 1.0 / ray.Direction.Axis(axis)
		origin := ray.Origin.Axis(axis)
		tNear := (b.PMin.Axis(axis) - origin) * invDir
		tFar := (b.PMax.Axis(axis) - origin) * invDir
		if tNear > tFar {
			tNear, tFar = tFar, tNear
		}
		tFar *= widen

		if tNear > t0 {
			t0 = tNear
		}
		if tFar < t1 {
			t1 = tFar
		}
		if t0 > t1 {
			return 0, 0, false
		}
	}
	return t0, t1, true
}

// IsValid returns true if min <= max holds on every axis
func (b Bounds3) IsValid() bool {
	return b.PMin.X <= b.PMax.X && b.PMin.Y <= b.PMax.Y && b.PMin.Z <= b.PMax.Z &&
		!math.IsNaN(b.PMin.X+b.PMin.Y+b.PMin.Z+b.PMax.X+b.PMax.Y+b.PMax.Z)
}
