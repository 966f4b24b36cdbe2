package response

import (
	"errors"
	"fmt"
	"math"

	algofft "github.com/MeKo-Christian/algo-fft"
	"github.com/cwbudde/algo-vecmath"

	"github.com/cwbudde/algo-peq/dsp/core"
)

var (
	// ErrInvalidSize is returned for an FFT size that is not a power of two
	// of at least 16.
	ErrInvalidSize = errors.New("response: FFT size must be a power of two >= 16")
	// ErrInvalidSampleRate is returned for a non-positive or non-finite rate.
	ErrInvalidSampleRate = errors.New("response: invalid sample rate")
	// ErrNilProcessor is returned when no processor is given.
	ErrNilProcessor = errors.New("response: nil processor")
)

// BlockProcessor filters a block of samples in place.
type BlockProcessor interface {
	ProcessBlock(buf []float64)
}

// ProcessorFunc adapts a function to BlockProcessor.
type ProcessorFunc func(buf []float64)

// ProcessBlock calls f(buf).
func (f ProcessorFunc) ProcessBlock(buf []float64) { f(buf) }

// Response is a magnitude response sampled on FFT bins from DC to Nyquist.
type Response struct {
	SampleRate  float64
	FFTSize     int
	Frequencies []float64 // Hz, one per bin
	Magnitude   []float64 // linear
}

// Measure feeds a unit impulse of fftSize samples through p and returns the
// magnitude of its spectrum. p should start from cleared state; responses
// longer than fftSize are truncated.
func Measure(p BlockProcessor, sampleRate float64, fftSize int) (*Response, error) {
	if p == nil {
		return nil, ErrNilProcessor
	}

	if math.IsNaN(sampleRate) || math.IsInf(sampleRate, 0) || sampleRate <= 0 {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSampleRate, sampleRate)
	}

	if fftSize < 16 || fftSize&(fftSize-1) != 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidSize, fftSize)
	}

	ir := make([]float64, fftSize)
	ir[0] = 1
	p.ProcessBlock(ir)

	plan, err := algofft.NewPlan64(fftSize)
	if err != nil {
		return nil, fmt.Errorf("response: failed to create FFT plan: %w", err)
	}

	in := make([]complex128, fftSize)
	for i, v := range ir {
		in[i] = complex(v, 0)
	}

	spectrum := make([]complex128, fftSize)
	if err := plan.Forward(spectrum, in); err != nil {
		return nil, fmt.Errorf("response: forward FFT failed: %w", err)
	}

	bins := fftSize/2 + 1
	re := make([]float64, bins)
	im := make([]float64, bins)

	for k := range bins {
		re[k] = real(spectrum[k])
		im[k] = imag(spectrum[k])
	}

	r := &Response{
		SampleRate:  sampleRate,
		FFTSize:     fftSize,
		Frequencies: make([]float64, bins),
		Magnitude:   make([]float64, bins),
	}

	vecmath.Magnitude(r.Magnitude, re, im)

	for k := range r.Frequencies {
		r.Frequencies[k] = float64(k) * sampleRate / float64(fftSize)
	}

	return r, nil
}

// Bin returns the index of the bin nearest to freqHz, clamped to the
// available range.
func (r *Response) Bin(freqHz float64) int {
	k := int(math.Round(freqHz * float64(r.FFTSize) / r.SampleRate))

	return min(max(k, 0), len(r.Magnitude)-1)
}

// MagnitudeAt returns the linear magnitude of the bin nearest to freqHz.
func (r *Response) MagnitudeAt(freqHz float64) float64 {
	return r.Magnitude[r.Bin(freqHz)]
}

// MagnitudeDBAt is MagnitudeAt in dB.
func (r *Response) MagnitudeDBAt(freqHz float64) float64 {
	return core.LinearToDB(r.MagnitudeAt(freqHz))
}
