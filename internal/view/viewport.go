package view

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/TimelordUK/colgrep/internal/render"
	"github.com/TimelordUK/colgrep/internal/source"
)

// Viewport manages the visible portion of content
// It knows nothing about column specs, searches, or file sources
// It only knows how to display lines from a LineProvider
type Viewport struct {
	provider source.LineProvider
	renderer render.Renderer

	// Dimensions
	width  int
	height int

	// Scroll position
	scrollOffset int

	// Styling
	lineNumberStyle lipgloss.Style
	matchStyle      lipgloss.Style
	highlightStyle  lipgloss.Style

	// Options
	showLineNumbers bool

	// Highlighted line (original index, -1 for none)
	highlightedLine int

	// Original indexes of search matches
	matches map[int]bool
}

// NewViewport creates a new viewport
func NewViewport(width, height int) *Viewport {
	return &Viewport{
		width:           width,
		height:          height,
		showLineNumbers: true,
		lineNumberStyle: lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
		matchStyle:      lipgloss.NewStyle().Foreground(lipgloss.Color("226")),
		highlightStyle:  lipgloss.NewStyle().Foreground(lipgloss.Color("226")).Bold(true).Reverse(true),
		renderer:        render.NewPlainRenderer(),
		highlightedLine: -1,
	}
}

// SetColors sets the line number and search match colors
func (v *Viewport) SetColors(lineNumbers, match string) {
	v.lineNumberStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(lineNumbers))
	v.matchStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(match))
	v.highlightStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(match)).Bold(true).Reverse(true)
}

// SetHighlightedLine sets which original line index to highlight (-1 for none)
func (v *Viewport) SetHighlightedLine(originalIndex int) {
	v.highlightedLine = originalIndex
}

// ClearHighlight removes any line highlight
func (v *Viewport) ClearHighlight() {
	v.highlightedLine = -1
}

// SetMatches marks original line indexes whose numbers are drawn in the
// match color
func (v *Viewport) SetMatches(lines []int) {
	if len(lines) == 0 {
		v.matches = nil
		return
	}
	v.matches = make(map[int]bool, len(lines))
	for _, l := range lines {
		v.matches[l] = true
	}
}

// SetRenderer sets the line renderer
func (v *Viewport) SetRenderer(r render.Renderer) {
	v.renderer = r
}

// SetProvider sets the line provider
func (v *Viewport) SetProvider(provider source.LineProvider) {
	v.provider = provider
	v.scrollOffset = 0
}

// SetSize updates viewport dimensions
func (v *Viewport) SetSize(width, height int) {
	v.width = width
	v.height = height
	v.clampScroll()
}

// Height returns the number of content rows
func (v *Viewport) Height() int {
	return v.height
}

// ScrollDown scrolls down by n lines
func (v *Viewport) ScrollDown(n int) {
	v.scrollOffset += n
	v.clampScroll()
}

// ScrollUp scrolls up by n lines
func (v *Viewport) ScrollUp(n int) {
	v.scrollOffset -= n
	v.clampScroll()
}

// PageDown scrolls down by one page
func (v *Viewport) PageDown() {
	v.ScrollDown(v.height - 1)
}

// PageUp scrolls up by one page
func (v *Viewport) PageUp() {
	v.ScrollUp(v.height - 1)
}

// GotoTop scrolls to the beginning
func (v *Viewport) GotoTop() {
	v.scrollOffset = 0
}

// GotoBottom scrolls to the end
func (v *Viewport) GotoBottom() {
	if v.provider == nil {
		return
	}
	v.scrollOffset = v.provider.LineCount() - v.height
	v.clampScroll()
}

// GotoLine scrolls so that line is the top row, as far as the end allows
func (v *Viewport) GotoLine(line int) {
	v.scrollOffset = line
	v.clampScroll()
}

// CurrentLine returns the current top line number
func (v *Viewport) CurrentLine() int {
	return v.scrollOffset
}

func (v *Viewport) clampScroll() {
	if v.provider == nil {
		v.scrollOffset = 0
		return
	}

	maxScroll := max(v.provider.LineCount()-v.height, 0)
	v.scrollOffset = min(max(v.scrollOffset, 0), maxScroll)
}

// Render returns the viewport content as a string
func (v *Viewport) Render() string {
	if v.provider == nil {
		return ""
	}

	lines, err := v.provider.GetLines(v.scrollOffset, v.height)
	if err != nil {
		return fmt.Sprintf("Error: %v", err)
	}

	var builder strings.Builder
	lineNumWidth := len(fmt.Sprintf("%d", v.provider.LineCount()))

	for i, line := range lines {
		if i > 0 {
			builder.WriteString("\n")
		}

		availableWidth := v.width
		if v.showLineNumbers {
			numStr := fmt.Sprintf("%*d ", lineNumWidth, line.OriginalIndex+1)
			switch {
			case line.OriginalIndex == v.highlightedLine:
				builder.WriteString(v.highlightStyle.Render(numStr))
			case v.matches[line.OriginalIndex]:
				builder.WriteString(v.matchStyle.Render(numStr))
			default:
				builder.WriteString(v.lineNumberStyle.Render(numStr))
			}
			availableWidth -= lineNumWidth + 1
		}

		content := v.renderer.Render(line)
		if availableWidth > 0 {
			content = ansi.Truncate(content, availableWidth, "…")
		}
		builder.WriteString(content)
	}

	// Pad with empty lines if needed
	for i := len(lines); i < v.height; i++ {
		if i > 0 {
			builder.WriteString("\n")
		}
		builder.WriteString("~")
	}

	return builder.String()
}

// PercentScrolled returns how far through the content we are
func (v *Viewport) PercentScrolled() float64 {
	if v.provider == nil || v.provider.LineCount() == 0 {
		return 0
	}

	total := v.provider.LineCount()
	if total <= v.height {
		return 100
	}

	return float64(v.scrollOffset) / float64(total-v.height) * 100
}

// SetShowLineNumbers toggles line numbers
func (v *Viewport) SetShowLineNumbers(show bool) {
	v.showLineNumbers = show
}
