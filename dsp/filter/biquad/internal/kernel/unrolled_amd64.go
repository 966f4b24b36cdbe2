//go:build amd64 && !purego

package kernel

import "github.com/cwbudde/algo-vecmath/cpu"

func init() {
	Default.Add(Entry{Name: "unroll2", Level: cpu.SIMDSSE2, Priority: 10, Run: Unroll2})
	Default.Add(Entry{Name: "unroll4", Level: cpu.SIMDAVX2, Priority: 20, Run: Unroll4})
}

// Unroll2 processes pairs of samples per iteration.
func Unroll2(c Coefficients, s State, buf []float64) State {
	b0, b1, b2, a1, a2 := c.B0, c.B1, c.B2, c.A1, c.A2
	d0, d1 := s.D0, s.D1

	n := len(buf) &^ 1
	for i := 0; i < n; i += 2 {
		x, xn := buf[i], buf[i+1]

		y := b0*x + d0
		d0, d1 = b1*x-a1*y+d1, b2*x-a2*y
		yn := b0*xn + d0
		d0, d1 = b1*xn-a1*yn+d1, b2*xn-a2*yn

		buf[i], buf[i+1] = y, yn
	}

	return Scalar(c, State{D0: d0, D1: d1}, buf[n:])
}

// Unroll4 processes four samples per iteration with the bounds check
// hoisted to one reslice.
func Unroll4(c Coefficients, s State, buf []float64) State {
	b0, b1, b2, a1, a2 := c.B0, c.B1, c.B2, c.A1, c.A2
	d0, d1 := s.D0, s.D1

	n := len(buf) &^ 3
	for i := 0; i < n; i += 4 {
		blk := buf[i : i+4 : i+4]
		for j, x := range blk {
			y := b0*x + d0
			d0, d1 = b1*x-a1*y+d1, b2*x-a2*y
			blk[j] = y
		}
	}

	return Scalar(c, State{D0: d0, D1: d1}, buf[n:])
}
