package core

import (
	"math"
	"math/rand"
	"testing"

	"go.viam.com/test"
)

func TestNewBounds3OrdersCorners(t *testing.T) {
	b := NewBounds3(NewVec3(1, -2, 3), NewVec3(-1, 2, -3))
	test.That(t, b.PMin, test.ShouldResemble, NewVec3(-1, -2, -3))
	test.That(t, b.PMax, test.ShouldResemble, NewVec3(1, 2, 3))
	test.That(t, b.Centroid, test.ShouldResemble, NewVec3(0, 0, 0))
	test.That(t, b.IsValid(), test.ShouldBeTrue)
}

func TestBounds3PointCentroid(t *testing.T) {
	p := NewVec3(0.25, -7, 12.5)
	b := NewBounds3FromPoint(p)
	test.That(t, b.Centroid, test.ShouldResemble, p)
	test.That(t, NewBounds3(p, p).Centroid, test.ShouldResemble, p)
}

func TestBounds3Union(t *testing.T) {
	a := NewBounds3(NewVec3(0, 0, 0), NewVec3(1, 1, 1))
	b := NewBounds3(NewVec3(2, -1, 0.5), NewVec3(3, 0.5, 4))

	t.Run("idempotent", func(t *testing.T) {
		test.That(t, a.Union(a), test.ShouldResemble, a)
	})

	t.Run("widens", func(t *testing.T) {
		u := a.Union(b)
		test.That(t, u.PMin, test.ShouldResemble, NewVec3(0, -1, 0))
		test.That(t, u.PMax, test.ShouldResemble, NewVec3(3, 1, 4))
		test.That(t, u.Contains(a.PMin), test.ShouldBeTrue)
		test.That(t, u.Contains(b.PMax), test.ShouldBeTrue)
	})

	t.Run("point", func(t *testing.T) {
		u := a.UnionPoint(NewVec3(-2, 0.5, 0.5))
		test.That(t, u.PMin, test.ShouldResemble, NewVec3(-2, 0, 0))
		test.That(t, u.PMax, test.ShouldResemble, a.PMax)
	})
}

func TestBounds3MaximumExtent(t *testing.T) {
	tests := []struct {
		name string
		max  Vec3
		axis int
	}{
		{"x", NewVec3(3, 1, 1), 0},
		{"y", NewVec3(1, 3, 1), 1},
		{"z", NewVec3(1, 1, 3), 2},
		{"cube", NewVec3(1, 1, 1), 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := NewBounds3(NewVec3(0, 0, 0), tt.max)
			test.That(t, b.MaximumExtent(), test.ShouldEqual, tt.axis)
		})
	}
}

func TestBounds3SurfaceAreaAndCorners(t *testing.T) {
	b := NewBounds3(NewVec3(0, 0, 0), NewVec3(1, 2, 3))
	test.That(t, b.SurfaceArea(), test.ShouldAlmostEqual, 22.0)
	test.That(t, b.Corner(0), test.ShouldResemble, b.PMin)
	test.That(t, b.Corner(7), test.ShouldResemble, b.PMax)
	test.That(t, b.Corner(1), test.ShouldResemble, NewVec3(1, 0, 0))
	test.That(t, b.Corner(2), test.ShouldResemble, NewVec3(0, 2, 0))
	test.That(t, b.Corner(4), test.ShouldResemble, NewVec3(0, 0, 3))
}

func TestBounds3Intersect(t *testing.T) {
	b := NewBounds3(NewVec3(-1, -1, -1), NewVec3(1, 1, 1))
	inf := math.Inf(1)

	tests := []struct {
		name string
		ray  Ray
		hit  bool
	}{
		{"head on", NewRay(NewVec3(0, 0, -5), NewVec3(0, 0, 1)), true},
		{"from inside", NewRay(NewVec3(0, 0, 0), NewVec3(1, 1, 0)), true},
		{"pointing away", NewRay(NewVec3(0, 0, -5), NewVec3(0, 0, -1)), false},
		{"parallel outside slab", NewRay(NewVec3(2, 0, -5), NewVec3(0, 0, 1)), false},
		{"parallel inside slab", NewRay(NewVec3(0.5, 0.5, -5), NewVec3(0, 0, 1)), true},
		{"interval ends before box", NewRayInterval(NewVec3(0, 0, -5), NewVec3(0, 0, 1), 0, 3), false},
		{"interval starts after box", NewRayInterval(NewVec3(0, 0, -5), NewVec3(0, 0, 1), 7, inf), false},
		{"diagonal miss", NewRay(NewVec3(-5, 3, 0), NewVec3(1, 0, 0.01)), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			test.That(t, b.Intersect(tt.ray), test.ShouldEqual, tt.hit)
			_, _, ok := b.IntersectRobust(tt.ray)
			test.That(t, ok, test.ShouldEqual, tt.hit)
		})
	}
}

func TestBounds3IntersectNaNDirection(t *testing.T) {
	b := NewBounds3(NewVec3(0, 0, 0), NewVec3(1, 1, 1))
	// Origin on the x slab plane with a zero x direction yields 0*Inf = NaN
	r := NewRay(NewVec3(0, 0.5, -2), NewVec3(0, 0, 1))
	test.That(t, b.Intersect(r), test.ShouldBeTrue)
}

// bruteForceSlab clips the ray interval against each slab independently,
// skipping division entirely for axis-parallel rays.
func bruteForceSlab(b Bounds3, r Ray) bool {
	t0, t1 := r.TMin, r.TMax
	for axis := 0; axis < 3; axis++ {
		o, d := r.Origin.Axis(axis), r.Direction.Axis(axis)
		lo, hi := b.PMin.Axis(axis), b.PMax.Axis(axis)
		if d == 0 {
			if o < lo || o > hi {
				return false
			}
			continue
		}
		a, c := (lo-o)/d, (hi-o)/d
		t0 = math.Max(t0, math.Min(a, c))
		t1 = math.Min(t1, math.Max(a, c))
	}
	return t0 < t1
}

func TestBounds3IntersectMatchesBruteForce(t *testing.T) {
	random := rand.New(rand.NewSource(7))
	sample := func() float64 { return random.Float64()*8 - 4 }

	for i := 0; i < 2000; i++ {
		b := NewBounds3(NewVec3(sample(), sample(), sample()), NewVec3(sample(), sample(), sample()))
		r := NewRay(
			NewVec3(sample(), sample(), sample()),
			NewVec3(sample(), sample(), sample()),
		)
		test.That(t, b.Intersect(r), test.ShouldEqual, bruteForceSlab(b, r))
	}
}

func TestBounds3IntersectRobustInterval(t *testing.T) {
	b := NewBounds3(NewVec3(-1, -1, -1), NewVec3(1, 1, 1))
	t0, t1, ok := b.IntersectRobust(NewRay(NewVec3(0, 0, -5), NewVec3(0, 0, 1)))
	test.That(t, ok, test.ShouldBeTrue)
	test.That(t, t0, test.ShouldAlmostEqual, 4.0)
	test.That(t, t1, test.ShouldBeGreaterThanOrEqualTo, 6.0)
	test.That(t, t1, test.ShouldAlmostEqual, 6.0, 1e-12)
}
