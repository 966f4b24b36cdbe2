package biquad

import (
	"math"
	"math/cmplx"
)

// Response returns H(z) evaluated on the unit circle at freqHz.
func (c *Coefficients) Response(freqHz, sampleRate float64) complex128 {
	z1 := cmplx.Rect(1, -2*math.Pi*freqHz/sampleRate) // z^-1
	z2 := z1 * z1

	num := complex(c.B0, 0) + complex(c.B1, 0)*z1 + complex(c.B2, 0)*z2
	den := 1 + complex(c.A1, 0)*z1 + complex(c.A2, 0)*z2

	return num / den
}

// power returns |H|^2 from the real cosine expansion
//
//	|p0 + p1 z^-1 + p2 z^-2|^2 = p0²+p1²+p2² + 2(p0p1+p1p2)cos w + 2p0p2 cos 2w
func (c *Coefficients) power(freqHz, sampleRate float64) float64 {
	w := 2 * math.Pi * freqHz / sampleRate
	cos1, cos2 := math.Cos(w), math.Cos(2*w)

	poly := func(p0, p1, p2 float64) float64 {
		return p0*p0 + p1*p1 + p2*p2 + 2*(p0*p1+p1*p2)*cos1 + 2*p0*p2*cos2
	}

	return poly(c.B0, c.B1, c.B2) / poly(1, c.A1, c.A2)
}

// Magnitude returns |H| at freqHz.
func (c *Coefficients) Magnitude(freqHz, sampleRate float64) float64 {
	return math.Sqrt(c.power(freqHz, sampleRate))
}

// MagnitudeDB returns |H| at freqHz in dB.
func (c *Coefficients) MagnitudeDB(freqHz, sampleRate float64) float64 {
	return 10 * math.Log10(c.power(freqHz, sampleRate))
}

// Phase returns arg H at freqHz in radians, in [-pi, pi].
func (c *Coefficients) Phase(freqHz, sampleRate float64) float64 {
	return cmplx.Phase(c.Response(freqHz, sampleRate))
}

// ImpulseResponse returns the first n samples of the response of the
// section's current coefficients. The section's own state is not touched.
func (s *Section) ImpulseResponse(n int) []float64 {
	if n <= 0 {
		return nil
	}

	ir := make([]float64, n)
	ir[0] = 1
	NewSection(s.Coefficients()).ProcessBlock(ir)

	return ir
}
