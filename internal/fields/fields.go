// Package fields reshapes log lines by selecting or dropping their
// whitespace-delimited fields according to a column specification.
//
// Two selection modes exist. Include mode takes slice-style ranges such as
// "0:2 4:" and concatenates the selected fields in specification order.
// Exclude mode takes 1-based indices such as "2 -1" and drops those fields.
// Malformed tokens never cause an error during selection: they are skipped,
// so a bad specification degrades to selecting everything or excluding
// nothing. Use Check to report them.
package fields

import (
	"strings"
)

// Split breaks a line into fields on runs of whitespace. Empty fields are
// never produced.
func Split(line string) []string {
	return strings.Fields(line)
}

// join writes fields separated by single spaces. Builder growth is bounded
// by the source line length, which covers every output except overlapping
// ranges.
func join(b *strings.Builder, first bool, fields []string) bool {
	for _, f := range fields {
		if !first {
			b.WriteByte(' ')
		}
		b.WriteString(f)
		first = false
	}
	return first
}
