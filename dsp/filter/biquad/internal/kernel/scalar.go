package kernel

import "github.com/cwbudde/algo-vecmath/cpu"

func init() {
	Default.Add(Entry{Name: "scalar", Level: cpu.SIMDNone, Run: Scalar})
}

// Scalar is the reference loop. Every other kernel must match it exactly.
func Scalar(c Coefficients, s State, buf []float64) State {
	d0, d1 := s.D0, s.D1

	for i, x := range buf {
		y := c.B0*x + d0
		d0 = c.B1*x - c.A1*y + d1
		d1 = c.B2*x - c.A2*y
		buf[i] = y
	}

	return State{D0: d0, D1: d1}
}
