package fields

import (
	"strconv"
	"strings"
)

// Range is one inclusion instruction: the half-open field slice [Lo, Hi).
// An open side selects from the beginning or to the end.
type Range struct {
	Lo, Hi         int
	OpenLo, OpenHi bool
}

// ParseRange parses a single "lo:hi" token. Only the first ':' separates the
// sides. A side that is empty or not an integer is open, and a token without
// ':' selects from lo to the end.
func ParseRange(token string) Range {
	loStr, hiStr, _ := strings.Cut(token, ":")

	r := Range{OpenLo: true, OpenHi: true}
	if v, err := strconv.Atoi(loStr); err == nil {
		r.Lo, r.OpenLo = v, false
	}
	if v, err := strconv.Atoi(hiStr); err == nil {
		r.Hi, r.OpenHi = v, false
	}
	return r
}

// ParseRanges parses a whitespace-separated list of range tokens.
func ParseRanges(spec string) []Range {
	tokens := strings.Fields(spec)
	if len(tokens) == 0 {
		return nil
	}
	ranges := make([]Range, len(tokens))
	for i, tok := range tokens {
		ranges[i] = ParseRange(tok)
	}
	return ranges
}

// Bounds resolves the range against n fields using slice semantics:
// negative values count from the end and everything is clamped to [0, n].
// The returned pair always satisfies lo <= hi.
func (r Range) Bounds(n int) (lo, hi int) {
	lo, hi = 0, n
	if !r.OpenLo {
		lo = clampIndex(r.Lo, n)
	}
	if !r.OpenHi {
		hi = clampIndex(r.Hi, n)
	}
	if lo > hi {
		return lo, lo
	}
	return lo, hi
}

// String renders the range back in spec syntax.
func (r Range) String() string {
	var b strings.Builder
	if !r.OpenLo {
		b.WriteString(strconv.Itoa(r.Lo))
	}
	b.WriteByte(':')
	if !r.OpenHi {
		b.WriteString(strconv.Itoa(r.Hi))
	}
	return b.String()
}

func clampIndex(v, n int) int {
	if v < 0 {
		v += n
		if v < 0 {
			return 0
		}
	}
	if v > n {
		return n
	}
	return v
}

// SelectByRanges returns the fields of line selected by the range list in
// spec, joined by single spaces. Ranges are applied in order and may
// overlap, in which case fields repeat. An empty spec selects every field.
func SelectByRanges(line, spec string) string {
	fields := Split(line)
	tokens := strings.Fields(spec)
	if len(tokens) == 0 {
		return strings.Join(fields, " ")
	}

	var b strings.Builder
	b.Grow(len(line))
	first := true
	for _, tok := range tokens {
		lo, hi := ParseRange(tok).Bounds(len(fields))
		first = join(&b, first, fields[lo:hi])
	}
	return b.String()
}
