package eq

import (
	"math"
	"testing"
)

func TestLogFrequencies(t *testing.T) {
	f := LogFrequencies(3, 20, 20000)
	if len(f) != 3 {
		t.Fatalf("len = %d, want 3", len(f))
	}

	if !almostEqual(f[0], 20, 1e-9) || !almostEqual(f[2], 20000, 1e-6) {
		t.Fatalf("endpoints = %v, %v", f[0], f[2])
	}

	if want := math.Sqrt(20 * 20000); !almostEqual(f[1], want, 1e-9) {
		t.Fatalf("midpoint = %v, want %v", f[1], want)
	}

	for _, bad := range [][3]float64{{1, 20, 20000}, {10, 0, 20000}, {10, 200, 20}, {10, 20, math.Inf(1)}} {
		if got := LogFrequencies(int(bad[0]), bad[1], bad[2]); got != nil {
			t.Fatalf("LogFrequencies(%v) = %v, want nil", bad, got)
		}
	}
}

func TestMagnitudeCurve_MatchesPointQueries(t *testing.T) {
	const fs = 48000.0

	e := newPrepared(t, fs, 256, 2)
	applyBands(t, e, testFreqs)

	freqs := LogFrequencies(128, 20, 20000)
	dst := make([]float64, 0, 256)

	curve := e.MagnitudeCurve(dst, freqs, fs)
	if len(curve) != len(freqs) || &curve[0] != &dst[:1][0] {
		t.Fatal("MagnitudeCurve did not reuse dst")
	}

	for i, f := range freqs {
		if want := e.MagnitudeForFrequency(f, fs); curve[i] != want {
			t.Fatalf("f=%v: curve %v, point %v", f, curve[i], want)
		}
	}
}

func TestMagnitudeCurveDB_Floor(t *testing.T) {
	const fs = 48000.0

	e := newPrepared(t, fs, 256, 1)
	if err := e.UpdateBand(0, 1000, 0, 0.707); err != nil {
		t.Fatal(err)
	}

	freqs := []float64{0, 1, 1000, 10000}

	floored := e.MagnitudeCurveDB(nil, freqs, fs, -60)
	if floored[0] != -60 || floored[1] != -60 {
		t.Fatalf("floor not applied: %v", floored)
	}

	if !almostEqual(floored[2], 20*math.Log10(0.707), 1e-9) {
		t.Fatalf("cutoff level = %v dB", floored[2])
	}

	if math.Abs(floored[3]) > 0.1 {
		t.Fatalf("passband level = %v dB", floored[3])
	}

	raw := e.MagnitudeCurveDB(nil, freqs, fs, math.Inf(-1))
	if !(raw[0] < -200) || !(raw[1] < -60) {
		t.Fatalf("unfloored values = %v", raw)
	}
}

func BenchmarkMagnitudeCurve(b *testing.B) {
	e := newPrepared(b, 48000, 512, 2)
	applyBands(b, e, testFreqs)

	freqs := LogFrequencies(512, 20, 20000)
	dst := make([]float64, len(freqs))

	for b.Loop() {
		dst = e.MagnitudeCurve(dst, freqs, 48000)
	}
}
