package eq

import (
	"math/cmplx"

	"gonum.org/v1/gonum/floats"

	"github.com/cwbudde/algo-peq/dsp/core"
)

// LogFrequencies returns n frequencies spaced evenly on a log axis from lo
// to hi inclusive. It returns nil unless n >= 2 and 0 < lo < hi.
func LogFrequencies(n int, lo, hi float64) []float64 {
	if n < 2 || !core.IsFinite(lo) || !core.IsFinite(hi) || lo <= 0 || lo >= hi {
		return nil
	}

	return floats.LogSpan(make([]float64, n), lo, hi)
}

// MagnitudeCurve evaluates MagnitudeForFrequency at every entry of freqs.
// dst is reused when it has enough capacity.
func (e *Engine) MagnitudeCurve(dst, freqs []float64, sampleRate float64) []float64 {
	dst = core.EnsureLen(dst, len(freqs))
	chain := e.set.Load().chains[0]

	for i, f := range freqs {
		dst[i] = cmplx.Abs(chain.Response(f, sampleRate))
	}

	return dst
}

// MagnitudeCurveDB is MagnitudeCurve in dB with values below floorDB
// raised to floorDB. Pass math.Inf(-1) to disable the floor.
func (e *Engine) MagnitudeCurveDB(dst, freqs []float64, sampleRate, floorDB float64) []float64 {
	dst = e.MagnitudeCurve(dst, freqs, sampleRate)

	for i, m := range dst {
		dst[i] = core.LinearToDBFloor(m, floorDB)
	}

	return dst
}
