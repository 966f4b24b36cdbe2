// Package kernel holds the block filtering loops used by biquad.Section and
// picks one by CPU feature level.
package kernel

import (
	"slices"
	"sync"

	"github.com/cwbudde/algo-vecmath/cpu"
)

// Coefficients mirror biquad.Coefficients without importing it.
type Coefficients struct {
	B0, B1, B2 float64
	A1, A2     float64
}

// State is the two-element transposed direct form II delay line.
type State struct {
	D0, D1 float64
}

// Func filters buf in place starting from s and returns the final state.
type Func func(c Coefficients, s State, buf []float64) State

// Entry is one registered kernel.
type Entry struct {
	Name     string
	Level    cpu.SIMDLevel
	Priority int
	Run      Func
}

// Table keeps entries ordered by descending priority.
type Table struct {
	mu      sync.RWMutex
	entries []Entry
}

// Default is populated by this package's init functions.
var Default = &Table{}

// Add inserts e. Entries with equal priority keep insertion order.
func (t *Table) Add(e Entry) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.entries = append(t.entries, e)
	slices.SortStableFunc(t.entries, func(a, b Entry) int {
		return b.Priority - a.Priority
	})
}

// Select returns the highest-priority entry that features support.
func (t *Table) Select(features cpu.Features) (Entry, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	for _, e := range t.entries {
		if cpu.Supports(features, e.Level) {
			return e, true
		}
	}

	return Entry{}, false
}

// Entries returns a copy of the table in selection order.
func (t *Table) Entries() []Entry {
	t.mu.RLock()
	defer t.mu.RUnlock()

	return slices.Clone(t.entries)
}

// Clear drops every entry.
func (t *Table) Clear() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.entries = nil
}
