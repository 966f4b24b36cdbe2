// Package testutil holds signal generators and assertions shared by the
// filter and EQ tests.
package testutil

import (
	"math"
	"math/rand"
)

// DeterministicSine returns length samples of a sine at freqHz starting at
// phase zero.
func DeterministicSine(freqHz, sampleRate, amplitude float64, length int) []float64 {
	out := make([]float64, length)
	w := 2 * math.Pi * freqHz / sampleRate
	for n := range out {
		out[n] = amplitude * math.Sin(w*float64(n))
	}
	return out
}

// DeterministicNoise returns uniform noise in [-amplitude, amplitude) drawn
// from a seeded source.
func DeterministicNoise(seed int64, amplitude float64, length int) []float64 {
	rng := rand.New(rand.NewSource(seed))
	out := make([]float64, length)
	for n := range out {
		out[n] = amplitude * (2*rng.Float64() - 1)
	}
	return out
}

// Impulse returns a unit impulse at pos. An out-of-range pos yields silence.
func Impulse(length, pos int) []float64 {
	out := make([]float64, length)
	if pos >= 0 && pos < length {
		out[pos] = 1
	}
	return out
}

// Interleave packs planar channels into one frame-ordered slice. All
// channels must have the length of the first.
func Interleave(channels ...[]float64) []float64 {
	if len(channels) == 0 {
		return nil
	}
	frames := len(channels[0])
	out := make([]float64, frames*len(channels))
	for ch, samples := range channels {
		for i := 0; i < frames; i++ {
			out[i*len(channels)+ch] = samples[i]
		}
	}
	return out
}

// Deinterleave splits frame-ordered samples into numChannels planar slices.
// A trailing partial frame is dropped.
func Deinterleave(data []float64, numChannels int) [][]float64 {
	if numChannels <= 0 {
		return nil
	}
	frames := len(data) / numChannels
	out := make([][]float64, numChannels)
	for ch := range out {
		out[ch] = make([]float64, frames)
		for i := 0; i < frames; i++ {
			out[ch][i] = data[i*numChannels+ch]
		}
	}
	return out
}

// RMS returns the root mean square of x, or 0 for an empty slice.
func RMS(x []float64) float64 {
	if len(x) == 0 {
		return 0
	}
	var sum float64
	for _, v := range x {
		sum += v * v
	}
	return math.Sqrt(sum / float64(len(x)))
}

// GainDB compares the RMS of out against in over the samples from skip on,
// so a filter's start-up transient can be excluded.
func GainDB(in, out []float64, skip int) float64 {
	if skip < 0 || skip >= len(in) || len(in) != len(out) {
		return math.NaN()
	}
	return 20 * math.Log10(RMS(out[skip:])/RMS(in[skip:]))
}
