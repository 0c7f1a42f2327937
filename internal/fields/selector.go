package fields

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	cgerrors "github.com/TimelordUK/colgrep/internal/errors"
)

// Mode selects how a column specification is interpreted
type Mode int

const (
	// ModeInclude treats the spec as a list of lo:hi ranges
	ModeInclude Mode = iota
	// ModeExclude treats the spec as a list of 1-based indices to drop
	ModeExclude
)

func (m Mode) String() string {
	switch m {
	case ModeInclude:
		return "include"
	case ModeExclude:
		return "exclude"
	default:
		return "unknown"
	}
}

// ParseMode parses "include" or "exclude" (case-insensitive). The empty
// string means include.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "include", "ranges":
		return ModeInclude, nil
	case "exclude", "indexes":
		return ModeExclude, nil
	}
	return ModeInclude, cgerrors.NewInvalidArgumentError(fmt.Sprintf("unknown column mode %q", s), nil)
}

// Spec is a column specification snapshot handed to the selector on every
// call.
type Spec struct {
	Columns  string
	Mode     Mode
	KeepLast bool // exclude mode only
}

// IsZero reports whether the spec selects the line unchanged in include
// mode.
func (s Spec) IsZero() bool {
	return strings.TrimSpace(s.Columns) == "" && s.Mode == ModeInclude
}

// Apply reshapes line according to spec.
func Apply(line string, spec Spec) string {
	switch spec.Mode {
	case ModeExclude:
		return exclude(line, spec.Columns, spec.KeepLast)
	default:
		return SelectByRanges(line, spec.Columns)
	}
}

// Check reports the tokens of spec that selection would silently ignore.
// It returns nil when every token is well formed.
func Check(spec Spec) error {
	var errs []error
	for _, tok := range strings.Fields(spec.Columns) {
		switch spec.Mode {
		case ModeExclude:
			if _, err := strconv.Atoi(tok); err != nil {
				errs = append(errs, cgerrors.NewParseError(fmt.Sprintf("index %q ignored", tok), nil))
			}
		default:
			lo, hi, _ := strings.Cut(tok, ":")
			if !isIntOrEmpty(lo) || !isIntOrEmpty(hi) {
				errs = append(errs, cgerrors.NewParseError(fmt.Sprintf("range %q has a non-numeric bound, treated as open", tok), nil))
			}
		}
	}
	return errors.Join(errs...)
}

func isIntOrEmpty(s string) bool {
	if s == "" {
		return true
	}
	_, err := strconv.Atoi(s)
	return err == nil
}
