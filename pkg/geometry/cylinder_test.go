package geometry

import (
	"math"
	"testing"

	"github.com/df07/go-bvh-pathtracer/pkg/core"
	"github.com/go-gl/mathgl/mgl64"
	"go.viam.com/test"
)

func TestCylinderIntersect(t *testing.T) {
	// Radius 1 around the z axis, z in (-1, 1)
	cylinder := NewCylinderFromTransform(core.IdentityTransform(), 1, -1, 1, 4, false)

	tests := []struct {
		name      string
		ray       core.Ray
		hit       bool
		distance  float64
		normal    core.Vec3
		frontFace bool
	}{
		{
			name:      "side hit",
			ray:       core.NewRay(core.NewVec3(-5, 0, 0), core.NewVec3(1, 0, 0)),
			hit:       true,
			distance:  4,
			normal:    core.NewVec3(-1, 0, 0),
			frontFace: true,
		},
		{
			name:      "from inside",
			ray:       core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 1, 0)),
			hit:       true,
			distance:  1,
			normal:    core.NewVec3(0, -1, 0),
			frontFace: false,
		},
		{
			name: "above the top",
			ray:  core.NewRay(core.NewVec3(-5, 0, 2), core.NewVec3(1, 0, 0)),
		},
		{
			name: "parallel to axis",
			ray:  core.NewRay(core.NewVec3(0.5, 0, -5), core.NewVec3(0, 0, 1)),
		},
		{
			name: "through the open end",
			ray:  core.NewRay(core.NewVec3(0, 0, 5), core.NewVec3(0.01, 0, -1)),
		},
		{
			name: "interval ends before wall",
			ray:  core.NewRayInterval(core.NewVec3(-5, 0, 0), core.NewVec3(1, 0, 0), 0, 3),
		},
		{
			name: "wall behind origin",
			ray:  core.NewRay(core.NewVec3(-5, 0, 0), core.NewVec3(-1, 0, 0)),
		},
		{
			name:      "enters open end and hits far wall from inside",
			ray:       core.NewRay(core.NewVec3(0, 0, 2), core.NewVec3(0.5, 0, -1)),
			hit:       true,
			distance:  math.Sqrt(1.25) * 2,
			normal:    core.NewVec3(-1, 0, 0),
			frontFace: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ray := tt.ray
			if tt.hit {
				ray.Direction = ray.Direction.Normalize()
			}
			si, distance, ok := cylinder.Intersect(ray)
			test.That(t, ok, test.ShouldEqual, tt.hit)
			test.That(t, cylinder.IntersectP(ray), test.ShouldEqual, tt.hit)
			if !tt.hit {
				return
			}
			test.That(t, distance, test.ShouldAlmostEqual, tt.distance, 1e-9)
			vecShouldBeNear(t, si.Normal, tt.normal, 1e-9)
			test.That(t, si.FrontFace, test.ShouldEqual, tt.frontFace)
			test.That(t, si.MaterialID, test.ShouldEqual, core.MaterialID(4))
		})
	}
}

func TestCylinderTransformedDirection(t *testing.T) {
	// Rotated to lie along the x axis; a ray travelling along +y must be
	// transformed as a direction, not only as an origin
	rotation := mgl64.QuatRotate(math.Pi/2, mgl64.Vec3{0, 1, 0})
	cylinder := NewCylinder(core.NewVec3(0, 0, 0), 1, 4, rotation, 1, 0, false)

	si, distance, ok := cylinder.Intersect(core.NewRay(core.NewVec3(1.5, -5, 0), core.NewVec3(0, 1, 0)))
	test.That(t, ok, test.ShouldBeTrue)
	test.That(t, distance, test.ShouldAlmostEqual, 4.0, 1e-9)
	vecShouldBeNear(t, si.Point, core.NewVec3(1.5, -1, 0), 1e-9)
	vecShouldBeNear(t, si.Normal, core.NewVec3(0, -1, 0), 1e-9)

	// Past the end of the rotated tube
	_, _, ok = cylinder.Intersect(core.NewRay(core.NewVec3(2.5, -5, 0), core.NewVec3(0, 1, 0)))
	test.That(t, ok, test.ShouldBeFalse)
}

func TestCylinderScaledAndTranslated(t *testing.T) {
	cylinder := NewCylinder(core.NewVec3(0, 0, 10), 1, 2, mgl64.QuatIdent(), 2, 0, false)

	_, distance, ok := cylinder.Intersect(core.NewRay(core.NewVec3(-5, 0, 10), core.NewVec3(1, 0, 0)))
	test.That(t, ok, test.ShouldBeTrue)
	test.That(t, distance, test.ShouldAlmostEqual, 3.0, 1e-9)

	world := cylinder.WorldBounds()
	vecShouldBeNear(t, world.PMin, core.NewVec3(-2, -2, 8), 1e-9)
	vecShouldBeNear(t, world.PMax, core.NewVec3(2, 2, 12), 1e-9)
}

func TestCylinderWorldBoundsRotated(t *testing.T) {
	rotation := mgl64.QuatRotate(math.Pi/4, mgl64.Vec3{1, 0, 0})
	cylinder := NewCylinder(core.NewVec3(0, 0, 0), 1, 2, rotation, 1, 0, false)

	world := cylinder.WorldBounds()
	// Every object-space corner is inside the world bounds
	object := cylinder.ObjectBounds()
	for i := 0; i < 8; i++ {
		p := cylinder.ObjectToWorld().Point(object.Corner(i))
		test.That(t, world.UnionPoint(p), test.ShouldResemble, world)
	}
	test.That(t, world.PMax.Y, test.ShouldAlmostEqual, math.Sqrt2, 1e-9)
	test.That(t, world.PMax.X, test.ShouldAlmostEqual, 1.0, 1e-9)
}

func TestCylinderHandedness(t *testing.T) {
	mirrored := NewCylinderFromTransform(core.Scale(-1, 1, 1), 1, -1, 1, 0, false)
	test.That(t, mirrored.TransformSwapsHandedness(), test.ShouldBeTrue)

	// A mirrored transform flips the outward normal, as reverse orientation does
	si, _, ok := mirrored.Intersect(core.NewRay(core.NewVec3(-5, 0, 0), core.NewVec3(1, 0, 0)))
	test.That(t, ok, test.ShouldBeTrue)
	test.That(t, si.FrontFace, test.ShouldBeFalse)

	// Both flags set cancel out
	both := NewCylinderFromTransform(core.Scale(-1, 1, 1), 1, -1, 1, 0, true)
	si, _, _ = both.Intersect(core.NewRay(core.NewVec3(-5, 0, 0), core.NewVec3(1, 0, 0)))
	test.That(t, si.FrontFace, test.ShouldBeTrue)
}

func TestCylinderAreaAndSampling(t *testing.T) {
	cylinder := NewCylinderFromTransform(core.Translate(core.NewVec3(0, 3, 0)), 2, -1, 2, 0, false)
	test.That(t, cylinder.Area(), test.ShouldAlmostEqual, 6.0)
	test.That(t, cylinder.Pdf(core.SurfaceInteraction{}), test.ShouldAlmostEqual, 1/(12*math.Pi), 1e-12)

	sampler := core.NewSeededSampler(3)
	for i := 0; i < 200; i++ {
		si := cylinder.Sample(sampler.Get2D())
		local := si.Point.Subtract(core.NewVec3(0, 3, 0))
		test.That(t, math.Hypot(local.X, local.Y), test.ShouldAlmostEqual, 2.0, 1e-9)
		test.That(t, local.Z, test.ShouldBeGreaterThanOrEqualTo, -1.0)
		test.That(t, local.Z, test.ShouldBeLessThanOrEqualTo, 2.0)
		test.That(t, si.Normal.Z, test.ShouldAlmostEqual, 0.0, 1e-12)
		test.That(t, si.Normal.Length(), test.ShouldAlmostEqual, 1.0, 1e-9)
	}
}

func TestCylinderStretchedAxis(t *testing.T) {
	// Radius 1 scaled by 2, height 2 scaled by 3: lateral area 2π·2·6
	placement := core.Rotate(mgl64.QuatRotate(math.Pi/3, mgl64.Vec3{0, 1, 0})).Compose(core.Scale(2, 2, 3))
	cylinder := NewCylinderFromTransform(placement, 1, -1, 1, 0, false)
	test.That(t, cylinder.Pdf(core.SurfaceInteraction{}), test.ShouldAlmostEqual, 1/(24*math.Pi), 1e-12)

	// Sampled points land on the surface the ray test sees
	sampler := core.NewSeededSampler(5)
	for i := 0; i < 50; i++ {
		si := cylinder.Sample(sampler.Get2D())
		local := cylinder.WorldToObject().Point(si.Point)
		test.That(t, math.Hypot(local.X, local.Y), test.ShouldAlmostEqual, 1.0, 1e-9)
		test.That(t, insideBounds(cylinder.WorldBounds(), si.Point, 1e-9), test.ShouldBeTrue)
	}
}

func TestCylinderRejectsEllipticalCrossSection(t *testing.T) {
	shouldPanicWith(t, ErrUnsupportedTransform, func() {
		NewCylinderFromTransform(core.Scale(1, 2, 1), 1, -1, 1, 0, false)
	})
	shear := mgl64.Ident4()
	shear.Set(0, 2, 0.5)
	shouldPanicWith(t, ErrUnsupportedTransform, func() {
		NewCylinderFromTransform(core.NewTransform(shear), 1, -1, 1, 0, false)
	})
}

func TestCylinderPdfWi(t *testing.T) {
	cylinder := NewCylinderFromTransform(core.IdentityTransform(), 1, -1, 1, 0, false)
	ref := core.SurfaceInteraction{Point: core.NewVec3(-5, 0, 0)}

	pdf := cylinder.PdfWi(ref, core.NewVec3(1, 0, 0))
	test.That(t, pdf, test.ShouldAlmostEqual, 16/(4*math.Pi), 1e-9)
	test.That(t, cylinder.PdfWi(ref, core.NewVec3(-1, 0, 0)), test.ShouldEqual, 0.0)
}
