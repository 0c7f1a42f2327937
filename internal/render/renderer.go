package render

import (
	"github.com/TimelordUK/colgrep/internal/source"
)

// Renderer turns a line into display text
type Renderer interface {
	Render(line *source.Line) string
}

// LineFunc is the host's line-display callback
type LineFunc func(line string) string

// ColumnRenderer passes every line through the display callback, which
// applies the column spec current at render time.
type ColumnRenderer struct {
	display LineFunc
}

// NewColumnRenderer creates a renderer around display
func NewColumnRenderer(display LineFunc) *ColumnRenderer {
	return &ColumnRenderer{display: display}
}

// Render applies the display callback
func (r *ColumnRenderer) Render(line *source.Line) string {
	return r.display(string(line.Content))
}

// PlainRenderer renders without styling
type PlainRenderer struct{}

// NewPlainRenderer creates a plain renderer
func NewPlainRenderer() *PlainRenderer {
	return &PlainRenderer{}
}

// Render returns the line content as-is
func (r *PlainRenderer) Render(line *source.Line) string {
	return string(line.Content)
}
