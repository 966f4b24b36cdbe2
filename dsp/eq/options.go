package eq

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/cwbudde/algo-peq/dsp/core"
)

const defaultFallbackSampleRate = 44100.0

// Option mutates constructor configuration.
type Option func(*config) error

type config struct {
	limits             Limits
	roles              [NumBands]Role
	fallbackSampleRate float64
	logger             logrus.FieldLogger
}

func defaultConfig() config {
	return config{
		limits:             DefaultLimits(),
		roles:              DefaultRoles(),
		fallbackSampleRate: defaultFallbackSampleRate,
		logger:             logrus.StandardLogger(),
	}
}

// WithFrequencyRange sets the accepted band frequency range in Hz.
func WithFrequencyRange(minHz, maxHz float64) Option {
	return func(cfg *config) error {
		if err := validateRange(minHz, maxHz, "frequency range"); err != nil {
			return err
		}

		cfg.limits.MinFrequency, cfg.limits.MaxFrequency = minHz, maxHz

		return nil
	}
}

// WithGainRange sets the accepted gain range in dB.
func WithGainRange(minDB, maxDB float64) Option {
	return func(cfg *config) error {
		if !core.IsFinite(minDB) || !core.IsFinite(maxDB) || minDB > maxDB {
			return fmt.Errorf("%w: gain range [%g, %g]", ErrInvalidOption, minDB, maxDB)
		}

		cfg.limits.MinGainDB, cfg.limits.MaxGainDB = minDB, maxDB

		return nil
	}
}

// WithQRange sets the accepted Q range.
func WithQRange(minQ, maxQ float64) Option {
	return func(cfg *config) error {
		if err := validateRange(minQ, maxQ, "Q range"); err != nil {
			return err
		}

		cfg.limits.MinQ, cfg.limits.MaxQ = minQ, maxQ

		return nil
	}
}

// WithFallbackSampleRate sets the sample rate reported and used for
// coefficient design before the first Prepare.
func WithFallbackSampleRate(sampleRate float64) Option {
	return func(cfg *config) error {
		if !core.IsFinite(sampleRate) || sampleRate <= 0 {
			return fmt.Errorf("%w: fallback sample rate %v", ErrInvalidOption, sampleRate)
		}

		cfg.fallbackSampleRate = sampleRate

		return nil
	}
}

// WithRole overrides the role of one band.
func WithRole(index int, role Role) Option {
	return func(cfg *config) error {
		if index < 0 || index >= NumBands {
			return fmt.Errorf("%w: %w: %d", ErrInvalidOption, ErrInvalidBandIndex, index)
		}

		if !role.valid() {
			return fmt.Errorf("%w: %w: %d", ErrInvalidOption, ErrInvalidRole, role)
		}

		cfg.roles[index] = role

		return nil
	}
}

// WithLogger sets the logger for control-path events.
func WithLogger(logger logrus.FieldLogger) Option {
	return func(cfg *config) error {
		if logger == nil {
			return fmt.Errorf("%w: nil logger", ErrInvalidOption)
		}

		cfg.logger = logger

		return nil
	}
}

func validateRange(lo, hi float64, name string) error {
	if !core.IsFinite(lo) || !core.IsFinite(hi) || lo <= 0 || lo > hi {
		return fmt.Errorf("%w: %s [%g, %g]", ErrInvalidOption, name, lo, hi)
	}

	return nil
}
