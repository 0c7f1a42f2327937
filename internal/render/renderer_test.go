package render

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/TimelordUK/colgrep/internal/fields"
	"github.com/TimelordUK/colgrep/internal/source"
)

func TestColumnRenderer(t *testing.T) {
	t.Parallel()

	spec := fields.Spec{Columns: "1:"}
	r := NewColumnRenderer(func(line string) string { return fields.Apply(line, spec) })

	assert.Equal(t, "INFO started", r.Render(&source.Line{Content: []byte("10:00 INFO   started")}))
	assert.Equal(t, "", r.Render(&source.Line{}))
}

func TestColumnRendererCallsDisplayPerLine(t *testing.T) {
	t.Parallel()

	var seen []string
	r := NewColumnRenderer(func(line string) string {
		seen = append(seen, line)
		return strings.ToUpper(line)
	})

	assert.Equal(t, "A", r.Render(&source.Line{Content: []byte("a")}))
	assert.Equal(t, "B", r.Render(&source.Line{Content: []byte("b")}))
	assert.Equal(t, []string{"a", "b"}, seen)
}

func TestPlainRenderer(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "a  b", NewPlainRenderer().Render(&source.Line{Content: []byte("a  b")}))
}
