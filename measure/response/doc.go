// Package response measures the magnitude response of a block processor
// from its impulse response.
//
// It complements analytic evaluation: the impulse is run through the real
// processing path, so a mismatch against the analytic curve points at the
// processing kernels rather than the coefficient math.
package response
