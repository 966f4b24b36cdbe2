//go:build !purego

package biquad

const purego = false
