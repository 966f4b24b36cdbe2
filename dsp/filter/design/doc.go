// Package design provides RBJ-cookbook biquad coefficient designers.
//
// Every designer is a pure function of its arguments: the same inputs always
// produce bit-identical [biquad.Coefficients] with a0 normalized to 1.
// Invalid inputs are reported through the package's sentinel errors, which
// callers match with [errors.Is].
package design
