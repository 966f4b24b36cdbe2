package eq

import (
	"fmt"
	"sync/atomic"

	"github.com/cwbudde/algo-peq/dsp/filter/biquad"
)

type stage struct {
	section  biquad.Section
	bypassed atomic.Bool
}

// Chain is a fixed cascade of NumBands biquad stages for one channel,
// applied in index order.
//
// Stage coefficients and bypass flags may be changed from a control
// goroutine while the audio goroutine runs ProcessBlock. Filter state
// belongs to the audio goroutine.
type Chain struct {
	stages     [NumBands]stage
	sampleRate float64
	blockSize  int
}

// NewChain returns a chain of identity stages, none bypassed.
func NewChain() *Chain {
	return &Chain{}
}

// Prepare records the processing spec and clears every stage's state.
// Coefficients and bypass flags are kept.
func (c *Chain) Prepare(sampleRate float64, blockSize int) {
	c.sampleRate = sampleRate
	c.blockSize = blockSize
	c.Reset()
}

// Reset clears the state of every stage.
func (c *Chain) Reset() {
	for i := range c.stages {
		c.stages[i].section.Reset()
	}
}

// SampleRate returns the rate recorded by the last Prepare.
func (c *Chain) SampleRate() float64 { return c.sampleRate }

// ProcessBlock filters buf in place through every non-bypassed stage.
func (c *Chain) ProcessBlock(buf []float64) {
	if len(buf) == 0 {
		return
	}

	for i := range c.stages {
		st := &c.stages[i]
		if st.bypassed.Load() {
			continue
		}

		st.section.ProcessBlock(buf)
	}
}

// ProcessSample filters one sample through every non-bypassed stage.
func (c *Chain) ProcessSample(x float64) float64 {
	for i := range c.stages {
		st := &c.stages[i]
		if st.bypassed.Load() {
			continue
		}

		x = st.section.ProcessSample(x)
	}

	return x
}

// SetStageCoefficients publishes new coefficients for one stage.
func (c *Chain) SetStageCoefficients(index int, coeffs biquad.Coefficients) error {
	if err := checkIndex(index); err != nil {
		return err
	}

	c.stages[index].section.SetCoefficients(coeffs)

	return nil
}

// StageCoefficients returns the coefficients currently published for a stage.
func (c *Chain) StageCoefficients(index int) (biquad.Coefficients, error) {
	if err := checkIndex(index); err != nil {
		return biquad.Coefficients{}, err
	}

	return c.stages[index].section.Coefficients(), nil
}

// SetBypassed sets whether a stage is skipped.
func (c *Chain) SetBypassed(index int, bypassed bool) error {
	if err := checkIndex(index); err != nil {
		return err
	}

	c.stages[index].bypassed.Store(bypassed)

	return nil
}

// Bypassed reports whether a stage is skipped.
func (c *Chain) Bypassed(index int) (bool, error) {
	if err := checkIndex(index); err != nil {
		return false, err
	}

	return c.stages[index].bypassed.Load(), nil
}

// Response returns the complex response at freqHz as the product of every
// non-bypassed stage.
func (c *Chain) Response(freqHz, sampleRate float64) complex128 {
	h := complex(1, 0)

	for i := range c.stages {
		st := &c.stages[i]
		if st.bypassed.Load() {
			continue
		}

		coeffs := st.section.Coefficients()
		h *= coeffs.Response(freqHz, sampleRate)
	}

	return h
}

// StageResponse returns the response of a single stage regardless of its
// bypass flag.
func (c *Chain) StageResponse(index int, freqHz, sampleRate float64) (complex128, error) {
	coeffs, err := c.StageCoefficients(index)
	if err != nil {
		return 0, err
	}

	return coeffs.Response(freqHz, sampleRate), nil
}

// copyControlFrom copies coefficients and bypass flags, not state.
func (c *Chain) copyControlFrom(src *Chain) {
	for i := range c.stages {
		c.stages[i].section.SetCoefficients(src.stages[i].section.Coefficients())
		c.stages[i].bypassed.Store(src.stages[i].bypassed.Load())
	}
}

func checkIndex(index int) error {
	if index < 0 || index >= NumBands {
		return fmt.Errorf("%w: %d", ErrInvalidBandIndex, index)
	}

	return nil
}
