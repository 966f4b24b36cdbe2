// Package biquad provides biquad (second-order IIR) filter runtime primitives.
//
// A [Section] implements Direct Form II Transposed processing for a single
// second-order section defined by [Coefficients]. Coefficients are published
// to a Section atomically, so a control goroutine may retune a filter while
// the audio goroutine is processing a block; the delay-line state is owned by
// the processing goroutine.
//
// Block processing dispatches to the fastest registered kernel for the host
// CPU, detected once on first use.
//
// This package provides the processing runtime and analytic response only.
// Coefficient design lives in dsp/filter/design.
package biquad
