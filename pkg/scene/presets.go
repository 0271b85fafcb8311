package scene

import (
	"math"
	"sort"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/pkg/errors"

	"github.com/df07/go-bvh-pathtracer/pkg/core"
	"github.com/df07/go-bvh-pathtracer/pkg/geometry"
	"github.com/df07/go-bvh-pathtracer/pkg/material"
)

// ErrUnknownPreset is returned by Build for a name not in Presets
var ErrUnknownPreset = errors.New("unknown scene preset")

// builder populates an empty scene
type builder func(s *Scene)

var presets = map[string]builder{
	"default":   buildDefault,
	"cylinders": buildCylinders,
	"grid":      buildGrid,
}

// Presets returns the names of the built-in scenes in sorted order
func Presets() []string {
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Build creates the named preset and generates its BVH
func Build(name string, logger core.Logger) (*Scene, error) {
	build, ok := presets[name]
	if !ok {
		return nil, errors.Wrapf(ErrUnknownPreset, "%q (have %v)", name, Presets())
	}

	s := New(logger)
	build(s)
	if err := s.GenerateBVH(); err != nil {
		return nil, errors.Wrapf(err, "building scene %q", name)
	}
	s.logger.Infof("Scene %q: %d objects, %d materials, %d lights",
		name, len(s.objects), s.materials.Len(), len(s.lightPositions))
	return s, nil
}

// linearHex converts an sRGB hex colour such as "#1b9e77" to linear RGB.
// It panics on malformed input, which only preset code supplies.
func linearHex(hex string) core.Vec3 {
	c, err := colorful.Hex(hex)
	if err != nil {
		panic(errors.Wrapf(err, "preset colour %q", hex))
	}
	r, g, b := c.LinearRgb()
	return core.NewVec3(r, g, b)
}

// addSky encloses the scene in a large inward-facing emissive sphere
func addSky(s *Scene, colour core.Vec3, intensity float64) {
	sky := s.AddMaterial(material.NewLight(colour, intensity))
	s.AddObject(geometry.NewSphere(core.NewVec3(0, 0, 0), 500, sky, true))
}

// addSphereLight adds a spherical emitter and records its position
func addSphereLight(s *Scene, center core.Vec3, radius float64, colour core.Vec3, intensity float64) {
	lamp := s.AddMaterial(material.NewLight(colour, intensity))
	s.AddObject(geometry.NewSphere(center, radius, lamp, false))
	s.AddLightPos(center)
}

// buildDefault is a few diffuse spheres and a cylinder on a large ground sphere
func buildDefault(s *Scene) {
	s.CameraConfig = geometry.CameraConfig{
		Center:   core.NewVec3(0, 0.75, 2),
		LookAt:   core.NewVec3(0, 0.5, -1),
		Up:       core.NewVec3(0, 1, 0),
		VFov:     40,
		Aperture: 0,
	}

	addSky(s, linearHex("#b4cdf0"), 1)
	addSphereLight(s, core.NewVec3(-2, 4, 0), 1, core.NewVec3(1, 0.95, 0.85), 6)

	ground := s.AddMaterial(material.NewDiffuse(linearHex("#8c8c80")))
	s.AddObject(geometry.NewSphere(core.NewVec3(0, -100, -1), 100, ground, false))

	palette := []string{"#d95f02", "#1b9e77", "#7570b3"}
	for i, hex := range palette {
		id := s.AddMaterial(material.NewDiffuse(linearHex(hex)))
		s.AddObject(geometry.NewSphere(core.NewVec3(float64(i-1)*1.1, 0.5, -1.2), 0.5, id, false))
	}

	// Standing tube behind the spheres
	tube := s.AddMaterial(material.NewDiffuse(linearHex("#e6ab02")))
	upright := mgl64.QuatRotate(math.Pi/2, mgl64.Vec3{1, 0, 0})
	s.AddObject(geometry.NewCylinder(core.NewVec3(0.6, 0.6, -2.6), 0.3, 1.2, upright, 1, tube, false))
}

// buildCylinders arranges cylinders in several orientations around a lamp
func buildCylinders(s *Scene) {
	s.CameraConfig = geometry.CameraConfig{
		Center: core.NewVec3(0, 1.5, 4),
		LookAt: core.NewVec3(0, 1, 0),
		Up:     core.NewVec3(0, 1, 0),
		VFov:   50,
	}

	addSky(s, linearHex("#c8d2e6"), 0.8)
	addSphereLight(s, core.NewVec3(0, 4, 1), 0.75, core.NewVec3(1, 1, 1), 8)

	ground := s.AddMaterial(material.NewDiffuse(linearHex("#808080")))
	s.AddObject(geometry.NewSphere(core.NewVec3(0, -1000, 0), 1000, ground, false))

	red := s.AddMaterial(material.NewDiffuse(linearHex("#cc3333")))
	blue := s.AddMaterial(material.NewDiffuse(linearHex("#3333cc")))
	gold := s.AddMaterial(material.NewDiffuse(linearHex("#ccaa33")))

	// Vertical, along y
	s.AddObject(geometry.NewCylinder(core.NewVec3(1.8, 1, 0), 0.5, 2, mgl64.QuatRotate(math.Pi/2, mgl64.Vec3{1, 0, 0}), 1, red, false))
	// Horizontal, along x
	s.AddObject(geometry.NewCylinder(core.NewVec3(-1.8, 0.3, 0), 0.3, 1.6, mgl64.QuatRotate(math.Pi/2, mgl64.Vec3{0, 1, 0}), 1, blue, false))
	// Tilted toward the camera so its hollow inside shows
	tilt := mgl64.QuatRotate(math.Pi/8, mgl64.Vec3{1, 0, 0}).Mul(mgl64.QuatRotate(-math.Pi/16, mgl64.Vec3{0, 1, 0}))
	s.AddObject(geometry.NewCylinder(core.NewVec3(0, 1.1, 0.2), 0.35, 3, tilt, 1, gold, false))
	// A mirrored, scaled tube: its transform swaps handedness
	mirrored := core.Translate(core.NewVec3(0.9, 0.25, 1.2)).
		Compose(core.Scale(-0.5, 0.5, 0.5)).
		Compose(core.RotateEuler(core.NewVec3(math.Pi/2, 0, 0)))
	s.AddObject(geometry.NewCylinderFromTransform(mirrored, 0.5, -0.5, 0.5, blue, false))
}

// buildGrid lays out a gridSize x gridSize field of small spheres
func buildGrid(s *Scene) {
	const gridSize = 20
	const spacing = 0.5
	extent := float64(gridSize-1) * spacing

	s.CameraConfig = geometry.CameraConfig{
		Center:        core.NewVec3(extent/2, 6, extent+8),
		LookAt:        core.NewVec3(extent/2, 0.3, extent/2),
		Up:            core.NewVec3(0, 1, 0),
		VFov:          40,
		Aperture:      0.02,
		FocusDistance: 0,
	}

	addSky(s, linearHex("#a0c0ff"), 0.9)
	addSphereLight(s, core.NewVec3(20, 25, 20), 8, core.NewVec3(1, 0.96, 0.84), 4)

	ground := s.AddMaterial(material.NewDiffuse(linearHex("#7f7f7f")))
	s.AddObject(geometry.NewSphere(core.NewVec3(extent/2, -1000, extent/2), 1000, ground, false))

	radius := spacing * 0.4
	for i := 0; i < gridSize; i++ {
		for j := 0; j < gridSize; j++ {
			hue := 360 * float64(i*gridSize+j) / float64(gridSize*gridSize)
			r, g, b := colorful.OkLch(0.7, 0.15, hue).Clamped().LinearRgb()
			id := s.AddMaterial(material.NewDiffuse(core.NewVec3(r, g, b)))
			center := core.NewVec3(float64(i)*spacing, radius, float64(j)*spacing)
			s.AddObject(geometry.NewSphere(center, radius, id, false))
		}
	}
}
