package core

import "image/color"

// ErrorColour marks pixels whose radiance could not be computed, such as a
// hit on a shape whose material ID is not in the store
var ErrorColour = NewVec3(1, 0, 1)

// QuantizeChannel maps a gamma-encoded channel value to 8 bits.
// Values are clamped to [0, 0.999] so that 1.0 maps to 255.
func QuantizeChannel(v float64) uint8 {
	if v != v { // NaN
		v = 0
	}
	return uint8(256 * max(0, min(0.999, v)))
}

// ToRGBA converts a linear radiance value to an opaque 8-bit sRGB-ish colour
// using a gamma 2 transfer curve
func ToRGBA(c Vec3) color.RGBA {
	g := c.Max(Vec3{}).Sqrt()
	return color.RGBA{
		R: QuantizeChannel(g.X),
		G: QuantizeChannel(g.Y),
		B: QuantizeChannel(g.Z),
		A: 255,
	}
}
