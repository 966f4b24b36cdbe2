package core

import "math"

// IsFinite reports whether v is neither NaN nor infinite.
func IsFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// Clamp returns v limited to [lo, hi]. lo must not exceed hi.
func Clamp(v, lo, hi float64) float64 {
	return math.Min(math.Max(v, lo), hi)
}

// DBToLinear converts an amplitude ratio in dB to linear.
func DBToLinear(db float64) float64 {
	return math.Pow(10, db/20)
}

// LinearToDB converts a linear amplitude ratio to dB. Zero maps to -Inf and
// negative input to NaN.
func LinearToDB(linear float64) float64 {
	switch {
	case linear < 0:
		return math.NaN()
	case linear == 0:
		return math.Inf(-1)
	}

	return 20 * math.Log10(linear)
}

// LinearToDBFloor is LinearToDB with results below floorDB, NaN included,
// raised to floorDB.
func LinearToDBFloor(linear, floorDB float64) float64 {
	db := LinearToDB(linear)
	if math.IsNaN(db) || db < floorDB {
		return floorDB
	}

	return db
}
