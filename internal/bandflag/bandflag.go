// Package bandflag parses repeatable -band command-line values of the form
// index:freq:gain:q[:off] and applies them to an EQ engine.
package bandflag

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/cwbudde/algo-peq/dsp/eq"
)

// ErrSyntax is returned for values that do not match index:freq:gain:q[:off].
var ErrSyntax = errors.New("bandflag: expected index:freq:gain:q[:off]")

// Setting is one parsed -band value.
type Setting struct {
	Index     int
	Frequency float64
	GainDB    float64
	Q         float64
	Enabled   bool
}

func (s Setting) String() string {
	v := strconv.Itoa(s.Index) + ":" +
		strconv.FormatFloat(s.Frequency, 'g', -1, 64) + ":" +
		strconv.FormatFloat(s.GainDB, 'g', -1, 64) + ":" +
		strconv.FormatFloat(s.Q, 'g', -1, 64)
	if !s.Enabled {
		v += ":off"
	}
	return v
}

// Parse reads a single band value.
func Parse(value string) (Setting, error) {
	parts := strings.Split(strings.TrimSpace(value), ":")
	if len(parts) != 4 && len(parts) != 5 {
		return Setting{}, fmt.Errorf("%w: %q", ErrSyntax, value)
	}

	idx, err := strconv.Atoi(parts[0])
	if err != nil {
		return Setting{}, fmt.Errorf("%w: index %q", ErrSyntax, parts[0])
	}

	var nums [3]float64
	for i, p := range parts[1:4] {
		nums[i], err = strconv.ParseFloat(p, 64)
		if err != nil {
			return Setting{}, fmt.Errorf("%w: %q is not a number", ErrSyntax, p)
		}
	}

	s := Setting{Index: idx, Frequency: nums[0], GainDB: nums[1], Q: nums[2], Enabled: true}
	if len(parts) == 5 {
		switch strings.ToLower(parts[4]) {
		case "off", "bypass":
			s.Enabled = false
		case "on":
		default:
			return Setting{}, fmt.Errorf("%w: unknown state %q", ErrSyntax, parts[4])
		}
	}
	return s, nil
}

// Apply pushes s into e. The band is updated before its bypass flag changes.
func (s Setting) Apply(e *eq.Engine) error {
	if err := e.UpdateBand(s.Index, s.Frequency, s.GainDB, s.Q); err != nil {
		return fmt.Errorf("band %s: %w", s, err)
	}
	if err := e.SetBandBypass(s.Index, s.Enabled); err != nil {
		return fmt.Errorf("band %s: %w", s, err)
	}
	return nil
}

// List collects repeated -band flags. It implements flag.Value.
type List []Setting

func (l *List) String() string {
	if l == nil {
		return ""
	}
	vals := make([]string, len(*l))
	for i, s := range *l {
		vals[i] = s.String()
	}
	return strings.Join(vals, ",")
}

// Set parses value and appends it.
func (l *List) Set(value string) error {
	s, err := Parse(value)
	if err != nil {
		return err
	}
	*l = append(*l, s)
	return nil
}

// Apply pushes every setting into e in order, stopping at the first error.
func (l List) Apply(e *eq.Engine) error {
	for _, s := range l {
		if err := s.Apply(e); err != nil {
			return err
		}
	}
	return nil
}
