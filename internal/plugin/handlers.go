package plugin

import (
	"context"

	"go.uber.org/zap"

	"github.com/TimelordUK/colgrep/internal/fields"
	"github.com/TimelordUK/colgrep/internal/search"
)

// hooks implements the lifecycle events as no-ops with debug logging
type hooks struct {
	name   string
	logger *zap.Logger
}

func (h hooks) Name() string { return h.name }

func (h hooks) OnTrigger(index int) {
	h.logger.Debug("trigger", zap.Int("index", index))
}

func (h hooks) OnPopupMenu()  { h.logger.Debug("popup menu") }
func (h hooks) OnCreateMenu() { h.logger.Debug("create menu") }
func (h hooks) OnShowUI()     { h.logger.Debug("show ui") }

// OnRelease has nothing to free: no files or patterns outlive a call.
func (h hooks) OnRelease() error {
	h.logger.Debug("release")
	return nil
}

func newHooks(name string, logger *zap.Logger) hooks {
	if logger == nil {
		logger = zap.NewNop()
	}
	return hooks{name: name, logger: logger.Named(name)}
}

// ColumnFilter is the line-filter role: it reshapes each displayed line
// using the column spec current at the time of the call.
type ColumnFilter struct {
	hooks
	settings Settings
}

// NewColumnFilter creates the column filter handler
func NewColumnFilter(settings Settings, logger *zap.Logger) *ColumnFilter {
	return &ColumnFilter{
		hooks:    newHooks("columns", logger),
		settings: settings,
	}
}

// DisplayLine implements LineFilter
func (f *ColumnFilter) DisplayLine(line string) string {
	return fields.Apply(line, f.settings.Columns())
}

// PatternSearcher is the search role backed by the windowed indexer
type PatternSearcher struct {
	hooks
	settings Settings
	indexer  *search.Indexer
}

// NewPatternSearcher creates the search handler
func NewPatternSearcher(settings Settings, indexer *search.Indexer, logger *zap.Logger) *PatternSearcher {
	return &PatternSearcher{
		hooks:    newHooks("search", logger),
		settings: settings,
		indexer:  indexer,
	}
}

// Search implements Searcher
func (s *PatternSearcher) Search(ctx context.Context, path, pattern string, startLine int) ([]int, error) {
	return s.indexer.Search(ctx, search.Request{
		Path:      path,
		Pattern:   pattern,
		StartLine: startLine,
		Options:   s.settings.SearchOptions(),
	})
}
