package search

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/dlclark/regexp2"

	cgerrors "github.com/TimelordUK/colgrep/internal/errors"
)

// Engine names a regular expression implementation
type Engine string

const (
	// EngineRE2 uses the standard library's RE2 syntax. Linear time.
	EngineRE2 Engine = "re2"
	// EngineRegexp2 uses Perl/.NET syntax with lookaround and
	// backreferences, bounded by Options.Timeout per line.
	EngineRegexp2 Engine = "regexp2"
)

// DefaultMatchTimeout bounds a single regexp2 match
const DefaultMatchTimeout = 100 * time.Millisecond

// ParseEngine parses an engine name; the empty string means EngineRE2
func ParseEngine(s string) (Engine, error) {
	switch Engine(strings.ToLower(strings.TrimSpace(s))) {
	case "", EngineRE2:
		return EngineRE2, nil
	case EngineRegexp2, "pcre":
		return EngineRegexp2, nil
	}
	return EngineRE2, cgerrors.NewInvalidArgumentError(fmt.Sprintf("unknown search engine %q", s), nil)
}

// Options controls how a pattern is compiled
type Options struct {
	IgnoreCase bool
	Literal    bool // match the pattern as fixed text
	Engine     Engine
	Timeout    time.Duration // regexp2 only
}

// Matcher reports whether a line matches a compiled pattern
type Matcher interface {
	Match(line []byte) (bool, error)
}

// Compile builds a Matcher for pattern. Compilation failures are returned
// as pattern errors.
func Compile(pattern string, opts Options) (Matcher, error) {
	if opts.Literal {
		pattern = regexp.QuoteMeta(pattern)
	}

	switch opts.Engine {
	case EngineRegexp2:
		var flags regexp2.RegexOptions
		if opts.IgnoreCase {
			flags |= regexp2.IgnoreCase
		}
		re, err := regexp2.Compile(pattern, flags)
		if err != nil {
			return nil, cgerrors.NewPatternError(fmt.Sprintf("invalid pattern %q", pattern), err)
		}
		re.MatchTimeout = opts.Timeout
		if re.MatchTimeout <= 0 {
			re.MatchTimeout = DefaultMatchTimeout
		}
		return regexp2Matcher{re: re}, nil

	case "", EngineRE2:
		if opts.IgnoreCase {
			pattern = "(?i)" + pattern
		}
		re, err := regexp.Compile(pattern)
		if err != nil {
			return nil, cgerrors.NewPatternError(fmt.Sprintf("invalid pattern %q", pattern), err)
		}
		return re2Matcher{re: re}, nil
	}

	return nil, cgerrors.NewInvalidArgumentError(fmt.Sprintf("unknown search engine %q", opts.Engine), nil)
}

type re2Matcher struct {
	re *regexp.Regexp
}

func (m re2Matcher) Match(line []byte) (bool, error) {
	return m.re.Match(line), nil
}

type regexp2Matcher struct {
	re *regexp2.Regexp
}

func (m regexp2Matcher) Match(line []byte) (bool, error) {
	ok, err := m.re.MatchString(string(line))
	if err != nil {
		return false, cgerrors.NewPatternError("match timed out", err)
	}
	return ok, nil
}
