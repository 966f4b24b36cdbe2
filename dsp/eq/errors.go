package eq

import "errors"

var (
	// ErrInvalidBandIndex is returned for a band index outside [0, NumBands).
	ErrInvalidBandIndex = errors.New("eq: invalid band index")
	// ErrInvalidFrequency is returned for a frequency that is non-finite,
	// outside the configured range, or at or above Nyquist.
	ErrInvalidFrequency = errors.New("eq: invalid frequency")
	// ErrInvalidQ is returned for a non-positive, non-finite or out-of-range Q.
	ErrInvalidQ = errors.New("eq: invalid Q")
	// ErrInvalidGain is returned for a non-finite or out-of-range gain on a
	// role that uses gain.
	ErrInvalidGain = errors.New("eq: invalid gain")
	// ErrNotPrepared is returned by processing calls made before Prepare.
	ErrNotPrepared = errors.New("eq: engine not prepared")
	// ErrInvalidProcessSpec is returned by Prepare for a non-positive sample
	// rate, block size or channel count.
	ErrInvalidProcessSpec = errors.New("eq: invalid process spec")
	// ErrInvalidRole is returned for an unknown role or a band whose role
	// does not match the engine's configuration.
	ErrInvalidRole = errors.New("eq: invalid role")
	// ErrInvalidOption is returned by New when an option is rejected.
	ErrInvalidOption = errors.New("eq: invalid option")
)
