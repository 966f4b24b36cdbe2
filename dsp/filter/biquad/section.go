package biquad

import (
	"sync"
	"sync/atomic"

	"github.com/cwbudde/algo-vecmath/cpu"

	"github.com/cwbudde/algo-peq/dsp/filter/biquad/internal/kernel"
)

// Coefficients holds the transfer function coefficients for a single
// second-order section (biquad). a0 is normalized to 1 and not stored.
//
// The sign convention follows Direct Form II Transposed:
//
//	y  = B0*x + d0
//	d0 = B1*x - A1*y + d1
//	d1 = B2*x - A2*y
type Coefficients struct {
	B0, B1, B2 float64 // feedforward (numerator)
	A1, A2     float64 // feedback (denominator)
}

// Identity returns the passthrough section H(z) = 1.
func Identity() Coefficients {
	return Coefficients{B0: 1}
}

var identity = Identity()

// Section is a single biquad filter with coefficients and internal state.
// It implements Direct Form II Transposed processing.
//
// Coefficients are published as an immutable block through an atomic
// pointer, so SetCoefficients may run on a control goroutine while another
// goroutine is inside ProcessBlock. The delay-line state belongs to the
// processing goroutine alone. The zero Section is an identity filter.
//
// A Section must not be copied after first use.
type Section struct {
	coeffs atomic.Pointer[Coefficients]

	d0, d1 float64
}

var (
	blockKernel     kernel.Entry
	blockKernelOnce sync.Once
)

// NewSection returns a Section initialized with the given coefficients
// and zero state.
func NewSection(c Coefficients) *Section {
	s := &Section{}
	s.SetCoefficients(c)

	return s
}

// Coefficients returns the currently published coefficient set.
func (s *Section) Coefficients() Coefficients {
	return *s.load()
}

// SetCoefficients publishes a new coefficient set. The swap is a single
// pointer store: a concurrent ProcessBlock finishes its block with either
// the old or the new set, never a mix of both. Filter state is preserved.
func (s *Section) SetCoefficients(c Coefficients) {
	s.coeffs.Store(&c)
}

func (s *Section) load() *Coefficients {
	if c := s.coeffs.Load(); c != nil {
		return c
	}

	return &identity
}

// ProcessSample filters one input sample and returns the output.
func (s *Section) ProcessSample(x float64) float64 {
	c := s.load()

	y := c.B0*x + s.d0
	s.d0 = c.B1*x - c.A1*y + s.d1
	s.d1 = c.B2*x - c.A2*y

	return y
}

// ProcessBlock filters buf in place without allocating. The coefficient
// pointer is read once for the whole block.
func (s *Section) ProcessBlock(buf []float64) {
	blockKernelOnce.Do(selectKernel)

	c := s.load()
	st := blockKernel.Run(kernel.Coefficients{
		B0: c.B0, B1: c.B1, B2: c.B2,
		A1: c.A1, A2: c.A2,
	}, kernel.State{D0: s.d0, D1: s.d1}, buf)
	s.d0, s.d1 = st.D0, st.D1
}

// KernelName reports which block loop ProcessBlock uses on this machine.
func KernelName() string {
	blockKernelOnce.Do(selectKernel)

	return blockKernel.Name
}

func selectKernel() {
	e, ok := kernel.Default.Select(cpu.DetectFeatures())
	if !ok || e.Run == nil {
		panic("biquad: no block kernel available")
	}

	blockKernel = e
}

// ProcessBlockTo filters src into dst. Both slices must have the same length.
// Zero-alloc.
func (s *Section) ProcessBlockTo(dst, src []float64) {
	if len(src) == 0 {
		return
	}

	c := s.load()
	b0, b1, b2 := c.B0, c.B1, c.B2
	a1, a2 := c.A1, c.A2
	d0, d1 := s.d0, s.d1

	_ = dst[len(src)-1] // bounds check hint
	for i, x := range src {
		y := b0*x + d0
		d0 = b1*x - a1*y + d1
		d1 = b2*x - a2*y
		dst[i] = y
	}

	s.d0, s.d1 = d0, d1
}

// Reset clears the delay line to zero.
func (s *Section) Reset() {
	s.d0 = 0
	s.d1 = 0
}

// State returns the current delay-line state [d0, d1].
func (s *Section) State() [2]float64 {
	return [2]float64{s.d0, s.d1}
}

// SetState restores a previously saved delay-line state.
func (s *Section) SetState(state [2]float64) {
	s.d0 = state[0]
	s.d1 = state[1]
}
