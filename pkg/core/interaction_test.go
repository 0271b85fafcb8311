package core

import (
	"testing"

	"go.viam.com/test"
)

func TestSetFaceNormal(t *testing.T) {
	outward := NewVec3(0, 0, -1)

	var front SurfaceInteraction
	front.SetFaceNormal(NewRay(NewVec3(0, 0, -5), NewVec3(0, 0, 1)), outward)
	test.That(t, front.FrontFace, test.ShouldBeTrue)
	test.That(t, front.Normal, test.ShouldResemble, outward)

	var back SurfaceInteraction
	back.SetFaceNormal(NewRay(NewVec3(0, 0, 5), NewVec3(0, 0, -1)), outward)
	test.That(t, back.FrontFace, test.ShouldBeFalse)
	test.That(t, back.Normal, test.ShouldResemble, NewVec3(0, 0, 1))
}
