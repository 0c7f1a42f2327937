package fields

import (
	"strconv"
	"strings"
)

// ParseIndexes returns every integer token in spec, in order. Tokens that
// are not integers are dropped.
func ParseIndexes(spec string) []int {
	var out []int
	for _, tok := range strings.Fields(spec) {
		if v, err := strconv.Atoi(tok); err == nil {
			out = append(out, v)
		}
	}
	return out
}

// ResolveIndex maps an exclusion index onto a 1-based field position for a
// line of n fields. -1 is the last field. The result may fall outside
// [1, n], in which case it matches nothing.
func ResolveIndex(v, n int) int {
	if v < 0 {
		return n + v + 1
	}
	return v
}

// SelectByExclusion drops the fields named by spec and joins the rest with
// single spaces. The last field of the line is never emitted; lines
// rendered by earlier releases relied on this, so it stays the default. Use
// SelectByExclusionKeepLast for the corrected behaviour.
func SelectByExclusion(line, spec string) string {
	return exclude(line, spec, false)
}

// SelectByExclusionKeepLast is SelectByExclusion with the last field
// eligible for output like any other.
func SelectByExclusionKeepLast(line, spec string) string {
	return exclude(line, spec, true)
}

func exclude(line, spec string, keepLast bool) string {
	fields := Split(line)
	n := len(fields)
	if n == 0 {
		return ""
	}

	// dropped[p] is set for 1-based position p; index 0 is unused.
	dropped := make([]bool, n+1)
	for _, tok := range strings.Fields(spec) {
		v, err := strconv.Atoi(tok)
		if err != nil {
			continue
		}
		if p := ResolveIndex(v, n); p >= 1 && p <= n {
			dropped[p] = true
		}
	}

	last := n - 1
	if keepLast {
		last = n
	}

	var b strings.Builder
	b.Grow(len(line))
	first := true
	for p := 1; p <= last; p++ {
		if dropped[p] {
			continue
		}
		if !first {
			b.WriteByte(' ')
		}
		b.WriteString(fields[p-1])
		first = false
	}
	return b.String()
}
