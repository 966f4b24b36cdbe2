package eq

import (
	"github.com/cwbudde/algo-peq/dsp/core"
)

// NumBands is the fixed number of stages in every chain.
const NumBands = 6

// Role selects the filter shape of a band.
type Role int

const (
	// RoleHighpass is a second-order highpass; gain is ignored.
	RoleHighpass Role = iota
	// RolePeak is a peaking bell.
	RolePeak
	// RoleLowpass is a second-order lowpass; gain is ignored.
	RoleLowpass
	// RoleLowShelf is a low shelf.
	RoleLowShelf
	// RoleHighShelf is a high shelf.
	RoleHighShelf
)

func (r Role) String() string {
	switch r {
	case RoleHighpass:
		return "highpass"
	case RolePeak:
		return "peak"
	case RoleLowpass:
		return "lowpass"
	case RoleLowShelf:
		return "lowshelf"
	case RoleHighShelf:
		return "highshelf"
	default:
		return "unknown"
	}
}

// UsesGain reports whether the role's response depends on gain.
func (r Role) UsesGain() bool {
	return r == RolePeak || r == RoleLowShelf || r == RoleHighShelf
}

func (r Role) valid() bool {
	return r >= RoleHighpass && r <= RoleHighShelf
}

// DefaultRoles returns the role of each band index: a highpass, four peaks
// and a lowpass.
func DefaultRoles() [NumBands]Role {
	return [NumBands]Role{RoleHighpass, RolePeak, RolePeak, RolePeak, RolePeak, RoleLowpass}
}

// Band is the control-surface view of one band.
type Band struct {
	Index     int
	Role      Role
	Frequency float64 // Hz
	GainDB    float64
	Q         float64
	Enabled   bool
}

// DefaultBands returns the initial settings for all bands.
func DefaultBands() [NumBands]Band {
	freqs := [NumBands]float64{33, 100, 350, 1350, 5000, 16000}
	qs := [NumBands]float64{0.707, 1, 1, 1, 1, 0.707}
	roles := DefaultRoles()

	var bands [NumBands]Band
	for i := range bands {
		bands[i] = Band{
			Index:     i,
			Role:      roles[i],
			Frequency: freqs[i],
			Q:         qs[i],
			Enabled:   true,
		}
	}

	return bands
}

// Limits bounds the parameters a band accepts.
type Limits struct {
	MinFrequency, MaxFrequency float64
	MinGainDB, MaxGainDB       float64
	MinQ, MaxQ                 float64
}

// DefaultLimits returns 20 Hz..20 kHz, -18..+18 dB and Q 0.1..10.
func DefaultLimits() Limits {
	return Limits{
		MinFrequency: 20,
		MaxFrequency: 20000,
		MinGainDB:    -18,
		MaxGainDB:    18,
		MinQ:         0.1,
		MaxQ:         10,
	}
}

// Clamp returns b with frequency, gain and Q limited to l. The engine never
// clamps on its own; this is for control surfaces mapping free input.
func (b Band) Clamp(l Limits) Band {
	b.Frequency = core.Clamp(b.Frequency, l.MinFrequency, l.MaxFrequency)
	b.GainDB = core.Clamp(b.GainDB, l.MinGainDB, l.MaxGainDB)
	b.Q = core.Clamp(b.Q, l.MinQ, l.MaxQ)

	return b
}
