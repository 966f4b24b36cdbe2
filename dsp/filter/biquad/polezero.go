package biquad

import (
	"math"
	"math/cmplx"

	"github.com/cwbudde/algo-peq/dsp/core"
)

// Poles returns the roots of z² + A1·z + A2.
func (c *Coefficients) Poles() [2]complex128 {
	return roots(1, c.A1, c.A2)
}

// Zeros returns the roots of B0·z² + B1·z + B2. A section with B0 == 0
// reports its single finite zero first and 0 second.
func (c *Coefficients) Zeros() [2]complex128 {
	return roots(c.B0, c.B1, c.B2)
}

// MaxPoleRadius returns the larger pole magnitude.
func (c *Coefficients) MaxPoleRadius() float64 {
	p := c.Poles()

	return math.Max(cmplx.Abs(p[0]), cmplx.Abs(p[1]))
}

// IsStable reports whether every coefficient is finite and both poles lie
// strictly inside the unit circle.
func (c *Coefficients) IsStable() bool {
	for _, v := range [...]float64{c.B0, c.B1, c.B2, c.A1, c.A2} {
		if !core.IsFinite(v) {
			return false
		}
	}

	return c.MaxPoleRadius() < 1
}

// roots solves a·z² + b·z + c = 0 avoiding cancellation for real roots.
func roots(a, b, c float64) [2]complex128 {
	if a == 0 {
		if b == 0 {
			return [2]complex128{}
		}

		return [2]complex128{complex(-c/b, 0), 0}
	}

	disc := b*b - 4*a*c
	if disc < 0 {
		re, im := -b/(2*a), math.Sqrt(-disc)/(2*a)
		return [2]complex128{complex(re, im), complex(re, -im)}
	}

	q := -0.5 * (b + math.Copysign(math.Sqrt(disc), b))
	if q == 0 {
		return [2]complex128{}
	}

	return [2]complex128{complex(q/a, 0), complex(c/q, 0)}
}
