package eq_test

import (
	"errors"
	"fmt"
	"io"

	"github.com/sirupsen/logrus"

	"github.com/cwbudde/algo-peq/dsp/eq"
)

func quiet() eq.Option {
	l := logrus.New()
	l.SetOutput(io.Discard)

	return eq.WithLogger(l)
}

func ExampleEngine() {
	e, err := eq.New(quiet())
	if err != nil {
		panic(err)
	}

	if err := e.Prepare(44100, 512, 2); err != nil {
		panic(err)
	}

	if err := e.UpdateBand(1, 1000, 6, 1); err != nil {
		panic(err)
	}

	m, _ := e.MagnitudeForBand(1, 1000, e.SampleRate())
	fmt.Printf("band 1 at 1 kHz: %.3f\n", m)

	left := []float64{0, 0, 0, 0}
	right := []float64{0, 0, 0, 0}
	_ = e.Process([][]float64{left, right})
	fmt.Println(left, right)

	// Output:
	// band 1 at 1 kHz: 1.995
	// [0 0 0 0] [0 0 0 0]
}

func ExampleEngine_UpdateBand_errors() {
	e, _ := eq.New(quiet())
	_ = e.Prepare(44100, 512, 2)

	fmt.Println(errors.Is(e.UpdateBand(7, 1000, 0, 1), eq.ErrInvalidBandIndex))
	fmt.Println(errors.Is(e.UpdateBand(1, 22050, 0, 1), eq.ErrInvalidFrequency))
	fmt.Println(errors.Is(e.UpdateBand(1, 1000, 0, 0), eq.ErrInvalidQ))

	// Output:
	// true
	// true
	// true
}

func ExampleEngine_SetBandBypass() {
	e, _ := eq.New(quiet())
	_ = e.Prepare(48000, 256, 1)

	for _, b := range eq.DefaultBands() {
		b.GainDB = 3
		if err := e.ApplyBand(b); err != nil {
			panic(err)
		}
	}

	_ = e.SetBandBypass(2, false)
	enabled, _ := e.BandEnabled(2)
	fmt.Println("band 2 enabled:", enabled)

	// Output:
	// band 2 enabled: false
}

func ExampleLogFrequencies() {
	for _, f := range eq.LogFrequencies(4, 20, 20000) {
		fmt.Printf("%.0f ", f)
	}
	fmt.Println()

	// Output:
	// 20 200 2000 20000
}
