// Package plugin defines the boundary between the viewer and the line
// processing handlers: lifecycle hooks, the line-display and search roles,
// and a registry that dispatches to whichever handlers are enabled.
package plugin

import (
	"context"

	"github.com/TimelordUK/colgrep/internal/fields"
	"github.com/TimelordUK/colgrep/internal/search"
)

// Handler receives the host's lifecycle events
type Handler interface {
	// Name identifies the handler in the registry
	Name() string
	// OnTrigger is called when the user activates one of the handler's
	// menu actions
	OnTrigger(index int)
	OnPopupMenu()
	OnCreateMenu()
	OnShowUI()
	// OnRelease frees anything held across calls
	OnRelease() error
}

// LineFilter transforms a line for display. It must return a string for
// every input; "" renders as a blank line.
type LineFilter interface {
	Handler
	DisplayLine(line string) string
}

// Searcher computes window-relative match numbers for a search action
type Searcher interface {
	Handler
	Search(ctx context.Context, path, pattern string, startLine int) ([]int, error)
}

// Settings is polled at the start of every call. Implementations return
// snapshots; the handlers never cache them.
type Settings interface {
	Columns() fields.Spec
	SearchOptions() search.Options
}
