package material

import (
	"math"
	"testing"

	"github.com/df07/go-bvh-pathtracer/pkg/core"
	"go.viam.com/test"
)

func TestDiffuseScatter(t *testing.T) {
	albedo := core.NewVec3(0.5, 0.7, 0.9)
	diffuse := NewDiffuse(albedo)
	sampler := core.NewSeededSampler(42)

	normal := core.NewVec3(0, 0, 1)
	hit := core.SurfaceInteraction{Point: core.NewVec3(1, 2, 3), Normal: normal, FrontFace: true}
	rayIn := core.NewRay(core.NewVec3(1, 2, 10), core.NewVec3(0, 0, -1))

	for i := 0; i < 100; i++ {
		scattered, attenuation, ok := diffuse.Scatter(rayIn, hit, sampler)
		test.That(t, ok, test.ShouldBeTrue)
		test.That(t, attenuation, test.ShouldResemble, albedo)
		test.That(t, scattered.Origin, test.ShouldResemble, hit.Point)
		test.That(t, scattered.TMin, test.ShouldEqual, rayIn.TMin)
		test.That(t, scattered.TMax, test.ShouldEqual, rayIn.TMax)

		cos := scattered.Direction.Normalize().Dot(normal)
		test.That(t, cos, test.ShouldBeGreaterThanOrEqualTo, 0.0)
		test.That(t, diffuse.PDF(rayIn.Direction, scattered.Direction, normal), test.ShouldAlmostEqual, cos/math.Pi, 1e-12)
	}
}

func TestDiffusePDF(t *testing.T) {
	diffuse := NewDiffuse(core.NewVec3(1, 1, 1))
	normal := core.NewVec3(0, 1, 0)
	in := core.NewVec3(0, -1, 0)

	tests := []struct {
		name     string
		outgoing core.Vec3
		want     float64
	}{
		{"along normal", core.NewVec3(0, 1, 0), 1 / math.Pi},
		{"unnormalized", core.NewVec3(0, 3, 0), 1 / math.Pi},
		{"45 degrees", core.NewVec3(1, 1, 0), math.Sqrt2 / 2 / math.Pi},
		{"grazing", core.NewVec3(1, 0, 0), 0},
		{"below", core.NewVec3(0, -1, 0), 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			test.That(t, diffuse.PDF(in, tt.outgoing, normal), test.ShouldAlmostEqual, tt.want, 1e-12)
		})
	}
	test.That(t, diffuse.Emitted(), test.ShouldResemble, core.Vec3{})
}

func TestLight(t *testing.T) {
	light := NewLight(core.NewVec3(1, 0.5, 0.25), 4)
	test.That(t, light.Emitted(), test.ShouldResemble, core.NewVec3(4, 2, 1))

	_, _, ok := light.Scatter(core.NewRay(core.Vec3{}, core.NewVec3(0, 0, 1)), core.SurfaceInteraction{}, core.NewSeededSampler(1))
	test.That(t, ok, test.ShouldBeFalse)
	test.That(t, light.PDF(core.Vec3{}, core.NewVec3(0, 0, 1), core.NewVec3(0, 0, 1)), test.ShouldEqual, 0.0)
}

func TestStore(t *testing.T) {
	store := NewStore()
	test.That(t, store.Len(), test.ShouldEqual, 0)

	red := NewDiffuse(core.NewVec3(1, 0, 0))
	lamp := NewLight(core.NewVec3(1, 1, 1), 2)
	test.That(t, store.Add(red), test.ShouldEqual, core.MaterialID(0))
	test.That(t, store.Add(lamp), test.ShouldEqual, core.MaterialID(1))
	test.That(t, store.Len(), test.ShouldEqual, 2)

	m, ok := store.Get(1)
	test.That(t, ok, test.ShouldBeTrue)
	test.That(t, m, test.ShouldEqual, lamp)

	for _, id := range []core.MaterialID{-1, 2, 100} {
		_, ok := store.Get(id)
		test.That(t, ok, test.ShouldBeFalse)
	}
}
