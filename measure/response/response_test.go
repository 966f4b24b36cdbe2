package response

import (
	"errors"
	"io"
	"math"
	"testing"

	"github.com/sirupsen/logrus"

	"github.com/cwbudde/algo-peq/dsp/eq"
	"github.com/cwbudde/algo-peq/dsp/filter/biquad"
	"github.com/cwbudde/algo-peq/dsp/filter/design"
)

func TestMeasure_Identity(t *testing.T) {
	r, err := Measure(ProcessorFunc(func([]float64) {}), 48000, 256)
	if err != nil {
		t.Fatal(err)
	}

	if len(r.Magnitude) != 129 || len(r.Frequencies) != 129 {
		t.Fatalf("bins = %d/%d, want 129", len(r.Magnitude), len(r.Frequencies))
	}

	if r.Frequencies[128] != 24000 {
		t.Fatalf("last bin = %v Hz, want 24000", r.Frequencies[128])
	}

	for k, m := range r.Magnitude {
		if math.Abs(m-1) > 1e-12 {
			t.Fatalf("bin %d magnitude %v, want 1", k, m)
		}
	}
}

func TestMeasure_SectionMatchesAnalytic(t *testing.T) {
	const fs = 48000.0

	c, err := design.Peak(2000, 9, 2, fs)
	if err != nil {
		t.Fatal(err)
	}

	r, err := Measure(biquad.NewSection(c), fs, 4096)
	if err != nil {
		t.Fatal(err)
	}

	for k, f := range r.Frequencies {
		if want := c.Magnitude(f, fs); math.Abs(r.Magnitude[k]-want) > 1e-9*want {
			t.Fatalf("%v Hz: measured %v, analytic %v", f, r.Magnitude[k], want)
		}
	}

	if got := r.MagnitudeDBAt(2000); math.Abs(got-9) > 0.05 {
		t.Fatalf("center gain %v dB, want ~9", got)
	}
}

func TestMeasure_EngineMatchesAnalytic(t *testing.T) {
	const fs = 48000.0

	log := logrus.New()
	log.SetOutput(io.Discard)

	e, err := eq.New(eq.WithLogger(log))
	if err != nil {
		t.Fatal(err)
	}

	if err := e.Prepare(fs, 8192, 1); err != nil {
		t.Fatal(err)
	}

	for _, b := range []struct {
		idx           int
		freq, gain, q float64
	}{
		{0, 60, 0, 0.707},
		{1, 150, 4, 0.8},
		{2, 700, -6, 2},
		{3, 2500, 3, 1},
		{4, 7000, -3, 3},
		{5, 15000, 0, 0.707},
	} {
		if err := e.UpdateBand(b.idx, b.freq, b.gain, b.q); err != nil {
			t.Fatal(err)
		}
	}

	r, err := Measure(ProcessorFunc(func(buf []float64) {
		_ = e.Process([][]float64{buf})
	}), fs, 8192)
	if err != nil {
		t.Fatal(err)
	}

	for k := 1; k < len(r.Frequencies); k++ {
		f := r.Frequencies[k]
		want := e.MagnitudeForFrequency(f, fs)

		if math.Abs(r.Magnitude[k]-want) > 1e-6*math.Max(want, 1e-3) {
			t.Fatalf("%v Hz: measured %v, analytic %v", f, r.Magnitude[k], want)
		}
	}
}

func TestMeasure_Errors(t *testing.T) {
	id := ProcessorFunc(func([]float64) {})

	if _, err := Measure(nil, 48000, 1024); !errors.Is(err, ErrNilProcessor) {
		t.Fatalf("nil processor: %v", err)
	}

	for _, fs := range []float64{0, -1, math.NaN(), math.Inf(1)} {
		if _, err := Measure(id, fs, 1024); !errors.Is(err, ErrInvalidSampleRate) {
			t.Fatalf("fs=%v: %v", fs, err)
		}
	}

	for _, n := range []int{0, 8, 1000, -16} {
		if _, err := Measure(id, 48000, n); !errors.Is(err, ErrInvalidSize) {
			t.Fatalf("size=%d: %v", n, err)
		}
	}
}

func TestResponse_Bin(t *testing.T) {
	r, err := Measure(ProcessorFunc(func([]float64) {}), 48000, 1024)
	if err != nil {
		t.Fatal(err)
	}

	tests := map[float64]int{
		-10:   0,
		0:     0,
		46.87: 1,
		1000:  21,
		30000: 512,
	}

	for f, want := range tests {
		if got := r.Bin(f); got != want {
			t.Errorf("Bin(%v) = %d, want %d", f, got, want)
		}
	}
}

func BenchmarkMeasure(b *testing.B) {
	c, _ := design.Peak(1000, 6, 1, 48000)
	s := biquad.NewSection(c)

	for b.Loop() {
		s.Reset()
		_, _ = Measure(s, 48000, 4096)
	}
}
