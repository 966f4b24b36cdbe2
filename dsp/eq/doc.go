// Package eq implements a six-band parametric equalizer.
//
// An [Engine] owns one [Chain] per audio channel. Each chain is a fixed
// cascade of [NumBands] biquad stages: by default a highpass, four peaking
// bells and a lowpass. Control calls such as [Engine.UpdateBand] design
// coefficients with package design and publish them atomically to every
// channel, so they may run concurrently with [Engine.Process].
//
// Magnitude queries evaluate the published coefficients analytically and
// never touch filter state.
package eq
