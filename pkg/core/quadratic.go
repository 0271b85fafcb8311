package core

import "math"

// MachineEpsilon is the float64 unit roundoff bound used by Gamma
const MachineEpsilon = 0x1p-52

// Gamma returns the conservative bound n*eps/(1-n*eps) on the relative error
// accumulated by n floating-point operations.
func Gamma(n int) float64 {
	ne := float64(n) * MachineEpsilon
	return ne / (1 - ne)
}

// Quadratic solves a*t^2 + b*t + c = 0 and returns the real roots ordered so
// that t0 <= t1. A tangent (zero discriminant) yields t0 == t1.
//
// The roots are taken from q = -0.5*(b ± sqrt(disc)) with the sign chosen to
// match b, giving t0 = q/a and t1 = c/q. Neither form subtracts two nearly
// equal quantities. The discriminant itself is formed with a fused
// multiply-add so b*b is not rounded before the subtraction.
func Quadratic(a, b, c float64) (float64, float64, bool) {
	if a == 0 {
		if b == 0 {
			return 0, 0, false
		}
		t := -c / b
		return t, t, true
	}

	disc := math.FMA(b, b, -4*a*c)
	if disc < 0 {
		return 0, 0, false
	}
	rootDisc := math.Sqrt(disc)

	var q float64
	if b < 0 {
		q = -0.5 * (b - rootDisc)
	} else {
		q = -0.5 * (b + rootDisc)
	}
	if q == 0 {
		// b == 0 and disc == 0 imply c == 0: a double root at the origin
		return 0, 0, true
	}

	t0 := q / a
	t1 := c / q
	if t0 > t1 {
		t0, t1 = t1, t0
	}
	return t0, t1, true
}
