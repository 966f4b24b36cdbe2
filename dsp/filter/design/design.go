package design

import (
	"errors"
	"fmt"
	"math"

	"github.com/cwbudde/algo-peq/dsp/core"
	"github.com/cwbudde/algo-peq/dsp/filter/biquad"
)

var (
	// ErrInvalidFrequency is returned for a frequency that is not finite,
	// not positive, or at or above Nyquist.
	ErrInvalidFrequency = errors.New("design: invalid frequency")
	// ErrInvalidQ is returned for a non-positive or non-finite Q.
	ErrInvalidQ = errors.New("design: invalid Q")
	// ErrInvalidSampleRate is returned for a non-positive or non-finite
	// sample rate.
	ErrInvalidSampleRate = errors.New("design: invalid sample rate")
	// ErrInvalidGain is returned for a non-finite gain.
	ErrInvalidGain = errors.New("design: invalid gain")
)

// Lowpass designs a second-order lowpass biquad at freq (Hz) with quality
// factor q.
func Lowpass(freq, q, sampleRate float64) (biquad.Coefficients, error) {
	p, err := prewarp(freq, q, sampleRate)
	if err != nil {
		return biquad.Coefficients{}, err
	}

	b1 := 1 - p.cw
	b0 := b1 / 2

	return normalize(b0, b1, b0, 1+p.alpha, -2*p.cw, 1-p.alpha), nil
}

// Highpass designs a second-order highpass biquad at freq (Hz) with quality
// factor q.
func Highpass(freq, q, sampleRate float64) (biquad.Coefficients, error) {
	p, err := prewarp(freq, q, sampleRate)
	if err != nil {
		return biquad.Coefficients{}, err
	}

	b0 := (1 + p.cw) / 2

	return normalize(b0, -(1 + p.cw), b0, 1+p.alpha, -2*p.cw, 1-p.alpha), nil
}

// Peak designs a peaking-EQ biquad centered at freq (Hz) with gain in dB.
// A gain of 0 dB yields the identity section.
func Peak(freq, gainDB, q, sampleRate float64) (biquad.Coefficients, error) {
	p, err := prewarp(freq, q, sampleRate)
	if err != nil {
		return biquad.Coefficients{}, err
	}

	a, err := amplitude(gainDB)
	if err != nil {
		return biquad.Coefficients{}, err
	}

	return normalize(
		1+p.alpha*a, -2*p.cw, 1-p.alpha*a,
		1+p.alpha/a, -2*p.cw, 1-p.alpha/a,
	), nil
}

// LowShelf designs a low-shelf biquad with corner freq (Hz) and gain in dB.
func LowShelf(freq, gainDB, q, sampleRate float64) (biquad.Coefficients, error) {
	p, err := prewarp(freq, q, sampleRate)
	if err != nil {
		return biquad.Coefficients{}, err
	}

	a, err := amplitude(gainDB)
	if err != nil {
		return biquad.Coefficients{}, err
	}

	beta := 2 * math.Sqrt(a) * p.alpha

	return normalize(
		a*((a+1)-(a-1)*p.cw+beta),
		2*a*((a-1)-(a+1)*p.cw),
		a*((a+1)-(a-1)*p.cw-beta),
		(a+1)+(a-1)*p.cw+beta,
		-2*((a-1)+(a+1)*p.cw),
		(a+1)+(a-1)*p.cw-beta,
	), nil
}

// HighShelf designs a high-shelf biquad with corner freq (Hz) and gain in dB.
func HighShelf(freq, gainDB, q, sampleRate float64) (biquad.Coefficients, error) {
	p, err := prewarp(freq, q, sampleRate)
	if err != nil {
		return biquad.Coefficients{}, err
	}

	a, err := amplitude(gainDB)
	if err != nil {
		return biquad.Coefficients{}, err
	}

	beta := 2 * math.Sqrt(a) * p.alpha

	return normalize(
		a*((a+1)+(a-1)*p.cw+beta),
		-2*a*((a-1)+(a+1)*p.cw),
		a*((a+1)+(a-1)*p.cw-beta),
		(a+1)-(a-1)*p.cw+beta,
		2*((a-1)-(a+1)*p.cw),
		(a+1)-(a-1)*p.cw-beta,
	), nil
}

// params holds the shared intermediates of the RBJ formulas.
type params struct {
	cw, alpha float64
}

func prewarp(freq, q, sampleRate float64) (params, error) {
	if !core.IsFinite(sampleRate) || sampleRate <= 0 {
		return params{}, fmt.Errorf("%w: %v Hz", ErrInvalidSampleRate, sampleRate)
	}

	if !core.IsFinite(freq) || freq <= 0 || freq >= sampleRate/2 {
		return params{}, fmt.Errorf("%w: %v Hz at fs=%v Hz", ErrInvalidFrequency, freq, sampleRate)
	}

	if !core.IsFinite(q) || q <= 0 {
		return params{}, fmt.Errorf("%w: %v", ErrInvalidQ, q)
	}

	w0 := 2 * math.Pi * freq / sampleRate
	sw, cw := math.Sincos(w0)

	return params{cw: cw, alpha: sw / (2 * q)}, nil
}

func amplitude(gainDB float64) (float64, error) {
	if !core.IsFinite(gainDB) {
		return 0, fmt.Errorf("%w: %v dB", ErrInvalidGain, gainDB)
	}

	return math.Pow(10, gainDB/40), nil
}

func normalize(b0, b1, b2, a0, a1, a2 float64) biquad.Coefficients {
	return biquad.Coefficients{
		B0: b0 / a0,
		B1: b1 / a0,
		B2: b2 / a0,
		A1: a1 / a0,
		A2: a2 / a0,
	}
}
