package eq

import (
	"errors"
	"fmt"
	"math"
	"math/cmplx"
	"sync"
	"sync/atomic"

	"github.com/sirupsen/logrus"

	"github.com/cwbudde/algo-peq/dsp/core"
	"github.com/cwbudde/algo-peq/dsp/filter/biquad"
	"github.com/cwbudde/algo-peq/dsp/filter/design"
)

// channelSet is the per-Prepare processing topology. It is replaced as a
// whole by Prepare and read without locking by the audio path.
type channelSet struct {
	chains   []*Chain
	scratch  [][]float64
	maxBlock int
}

// Engine is a six-band parametric equalizer with one Chain per channel.
//
// Two goroutines are expected: an audio goroutine calling Prepare, Process
// and ProcessInterleaved, and a control goroutine calling UpdateBand,
// SetBandBypass and the magnitude queries. The audio path never locks or
// allocates. Prepare must not run concurrently with Process.
//
// Every channel receives identical coefficient and bypass updates, so the
// magnitude queries evaluate channel 0 only.
type Engine struct {
	limits             Limits
	roles              [NumBands]Role
	fallbackSampleRate float64
	log                logrus.FieldLogger

	// mu serializes control calls and Prepare. The audio path never takes it.
	mu sync.Mutex

	set        atomic.Pointer[channelSet]
	prepared   atomic.Bool
	sampleRate atomic.Uint64 // math.Float64bits, 0 until Prepare
}

// New constructs an engine. Until bands are applied every stage is an
// identity section, so a fresh engine is transparent.
func New(opts ...Option) (*Engine, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		if opt == nil {
			continue
		}

		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}

	e := &Engine{
		limits:             cfg.limits,
		roles:              cfg.roles,
		fallbackSampleRate: cfg.fallbackSampleRate,
		log:                cfg.logger,
	}
	e.set.Store(&channelSet{chains: []*Chain{NewChain()}})

	return e, nil
}

// Limits returns the parameter bounds the engine validates against.
func (e *Engine) Limits() Limits { return e.limits }

// Role returns the role of a band.
func (e *Engine) Role(index int) (Role, error) {
	if err := checkIndex(index); err != nil {
		return 0, err
	}

	return e.roles[index], nil
}

// Prepared reports whether Prepare has succeeded at least once.
func (e *Engine) Prepared() bool { return e.prepared.Load() }

// Channels returns the number of chains. It is 1 before Prepare.
func (e *Engine) Channels() int { return len(e.set.Load().chains) }

// MaxBlockSize returns the block size passed to the last Prepare.
func (e *Engine) MaxBlockSize() int { return e.set.Load().maxBlock }

// SampleRate returns the rate passed to the last Prepare, or the fallback
// rate before the first Prepare.
func (e *Engine) SampleRate() float64 {
	if bits := e.sampleRate.Load(); bits != 0 {
		return math.Float64frombits(bits)
	}

	return e.fallbackSampleRate
}

// Prepare sizes the engine for a processing spec. It clears all filter
// state and keeps the coefficients and bypass flags already applied.
// Coefficients are not redesigned for a new rate; callers re-issue their
// band updates after a rate change.
func (e *Engine) Prepare(sampleRate float64, maxBlockSize, channels int) error {
	if !core.IsFinite(sampleRate) || sampleRate <= 0 || maxBlockSize <= 0 || channels <= 0 {
		return fmt.Errorf("%w: sample rate %v, block size %d, channels %d",
			ErrInvalidProcessSpec, sampleRate, maxBlockSize, channels)
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	old := e.set.Load()
	next := &channelSet{
		chains:   make([]*Chain, channels),
		scratch:  make([][]float64, channels),
		maxBlock: maxBlockSize,
	}

	for ch := range next.chains {
		var scratch []float64
		if ch < len(old.chains) {
			next.chains[ch] = old.chains[ch]
		} else {
			next.chains[ch] = NewChain()
			next.chains[ch].copyControlFrom(old.chains[0])
		}

		if ch < len(old.scratch) {
			scratch = old.scratch[ch]
		}

		next.chains[ch].Prepare(sampleRate, maxBlockSize)
		next.scratch[ch] = core.EnsureLen(scratch, maxBlockSize)
	}

	if len(old.chains) != channels {
		e.log.WithFields(logrus.Fields{
			"from": len(old.chains),
			"to":   channels,
		}).Debug("eq: channel count changed")
	}

	e.sampleRate.Store(math.Float64bits(sampleRate))
	e.set.Store(next)
	e.prepared.Store(true)

	e.log.WithFields(logrus.Fields{
		"sample_rate": sampleRate,
		"block_size":  maxBlockSize,
		"channels":    channels,
	}).Debug("eq: prepared")

	return nil
}

// PrepareConfig is Prepare driven by a core.ProcessorConfig.
func (e *Engine) PrepareConfig(cfg core.ProcessorConfig) error {
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidProcessSpec, err)
	}

	return e.Prepare(cfg.SampleRate, cfg.BlockSize, cfg.Channels)
}

// Process filters each channel of buf in place. Channels beyond the
// prepared count are left untouched. Block length is unrestricted.
func (e *Engine) Process(buf [][]float64) error {
	if !e.prepared.Load() {
		return ErrNotPrepared
	}

	set := e.set.Load()

	n := min(len(buf), len(set.chains))
	for ch := range n {
		set.chains[ch].ProcessBlock(buf[ch])
	}

	return nil
}

// ProcessInterleaved filters interleaved frames in place, one chain per
// channel, in chunks of the prepared block size. A trailing partial frame
// is left untouched.
func (e *Engine) ProcessInterleaved(buf []float64) error {
	if !e.prepared.Load() {
		return ErrNotPrepared
	}

	set := e.set.Load()
	channels := len(set.chains)
	frames := len(buf) / channels

	for start := 0; start < frames; start += set.maxBlock {
		n := min(set.maxBlock, frames-start)
		frame := buf[start*channels : (start+n)*channels]

		for ch, chain := range set.chains {
			block := set.scratch[ch][:n]
			for i := range block {
				block[i] = frame[i*channels+ch]
			}

			chain.ProcessBlock(block)

			for i, v := range block {
				frame[i*channels+ch] = v
			}
		}
	}

	return nil
}

// Reset clears the filter state of every channel. Like Prepare it must not
// run concurrently with Process.
func (e *Engine) Reset() {
	for _, c := range e.set.Load().chains {
		c.Reset()
	}
}

// UpdateBand designs new coefficients for a band at the current sample rate
// and publishes them to every channel. Gain is ignored for pass roles.
// Frequency and Q are validated, never clamped.
func (e *Engine) UpdateBand(index int, freqHz, gainDB, q float64) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.updateBandLocked(index, freqHz, gainDB, q)
}

// SetBandBypass enables or bypasses a band on every channel. enabled=false
// bypasses the stage and keeps its coefficients.
func (e *Engine) SetBandBypass(index int, enabled bool) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.setBypassLocked(index, enabled)
}

// BandEnabled reports whether a band is processing.
func (e *Engine) BandEnabled(index int) (bool, error) {
	bypassed, err := e.set.Load().chains[0].Bypassed(index)
	if err != nil {
		return false, err
	}

	return !bypassed, nil
}

// ApplyBand applies a control-surface band: its parameters, then its
// enabled flag. b.Role must match the engine's role for b.Index. Nothing
// changes when validation fails.
func (e *Engine) ApplyBand(b Band) error {
	role, err := e.Role(b.Index)
	if err != nil {
		return err
	}

	if b.Role != role {
		return fmt.Errorf("%w: band %d is %v, got %v", ErrInvalidRole, b.Index, role, b.Role)
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.updateBandLocked(b.Index, b.Frequency, b.GainDB, b.Q); err != nil {
		return err
	}

	return e.setBypassLocked(b.Index, b.Enabled)
}

// BandCoefficients returns the coefficients published for a band.
func (e *Engine) BandCoefficients(index int) (biquad.Coefficients, error) {
	return e.set.Load().chains[0].StageCoefficients(index)
}

// MagnitudeForFrequency returns the linear magnitude of all non-bypassed
// bands combined at freqHz.
func (e *Engine) MagnitudeForFrequency(freqHz, sampleRate float64) float64 {
	return cmplx.Abs(e.set.Load().chains[0].Response(freqHz, sampleRate))
}

// MagnitudeForBand returns the linear magnitude of one band at freqHz,
// evaluated even while the band is bypassed.
func (e *Engine) MagnitudeForBand(index int, freqHz, sampleRate float64) (float64, error) {
	h, err := e.set.Load().chains[0].StageResponse(index, freqHz, sampleRate)
	if err != nil {
		return 0, err
	}

	return cmplx.Abs(h), nil
}

func (e *Engine) updateBandLocked(index int, freqHz, gainDB, q float64) error {
	coeffs, err := e.designBand(index, freqHz, gainDB, q)
	if err != nil {
		e.log.WithFields(logrus.Fields{
			"band": index,
			"freq": freqHz,
			"gain": gainDB,
			"q":    q,
		}).WithError(err).Debug("eq: band update rejected")

		return err
	}

	for _, c := range e.set.Load().chains {
		if err := c.SetStageCoefficients(index, coeffs); err != nil {
			return err
		}
	}

	return nil
}

func (e *Engine) setBypassLocked(index int, enabled bool) error {
	for _, c := range e.set.Load().chains {
		if err := c.SetBypassed(index, !enabled); err != nil {
			return err
		}
	}

	return nil
}

func (e *Engine) designBand(index int, freqHz, gainDB, q float64) (biquad.Coefficients, error) {
	if err := checkIndex(index); err != nil {
		return biquad.Coefficients{}, err
	}

	role := e.roles[index]
	fs := e.SampleRate()
	l := e.limits

	if !core.IsFinite(freqHz) || freqHz < l.MinFrequency || freqHz > l.MaxFrequency {
		return biquad.Coefficients{}, fmt.Errorf("%w: band %d: %v Hz outside [%g, %g]",
			ErrInvalidFrequency, index, freqHz, l.MinFrequency, l.MaxFrequency)
	}

	if freqHz >= fs/2 {
		return biquad.Coefficients{}, fmt.Errorf("%w: band %d: %v Hz at or above Nyquist (fs=%v Hz)",
			ErrInvalidFrequency, index, freqHz, fs)
	}

	if !core.IsFinite(q) || q <= 0 || q < l.MinQ || q > l.MaxQ {
		return biquad.Coefficients{}, fmt.Errorf("%w: band %d: %v outside [%g, %g]",
			ErrInvalidQ, index, q, l.MinQ, l.MaxQ)
	}

	if role.UsesGain() && (!core.IsFinite(gainDB) || gainDB < l.MinGainDB || gainDB > l.MaxGainDB) {
		return biquad.Coefficients{}, fmt.Errorf("%w: band %d: %v dB outside [%g, %g]",
			ErrInvalidGain, index, gainDB, l.MinGainDB, l.MaxGainDB)
	}

	var (
		coeffs biquad.Coefficients
		err    error
	)

	switch role {
	case RoleHighpass:
		coeffs, err = design.Highpass(freqHz, q, fs)
	case RoleLowpass:
		coeffs, err = design.Lowpass(freqHz, q, fs)
	case RolePeak:
		coeffs, err = design.Peak(freqHz, gainDB, q, fs)
	case RoleLowShelf:
		coeffs, err = design.LowShelf(freqHz, gainDB, q, fs)
	case RoleHighShelf:
		coeffs, err = design.HighShelf(freqHz, gainDB, q, fs)
	default:
		return biquad.Coefficients{}, fmt.Errorf("%w: band %d: %v", ErrInvalidRole, index, role)
	}

	if err != nil {
		return biquad.Coefficients{}, fmt.Errorf("eq: band %d: %w", index, translateDesignError(err))
	}

	return coeffs, nil
}

// translateDesignError wraps a design error with the matching eq sentinel.
func translateDesignError(err error) error {
	switch {
	case errors.Is(err, design.ErrInvalidFrequency), errors.Is(err, design.ErrInvalidSampleRate):
		return fmt.Errorf("%w: %w", ErrInvalidFrequency, err)
	case errors.Is(err, design.ErrInvalidQ):
		return fmt.Errorf("%w: %w", ErrInvalidQ, err)
	case errors.Is(err, design.ErrInvalidGain):
		return fmt.Errorf("%w: %w", ErrInvalidGain, err)
	default:
		return err
	}
}
