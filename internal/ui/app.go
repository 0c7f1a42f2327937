package ui

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/TimelordUK/colgrep/internal/config"
	"github.com/TimelordUK/colgrep/internal/fields"
	"github.com/TimelordUK/colgrep/internal/plugin"
	"github.com/TimelordUK/colgrep/internal/render"
	"github.com/TimelordUK/colgrep/internal/search"
	"github.com/TimelordUK/colgrep/internal/source"
	"github.com/TimelordUK/colgrep/internal/view"
)

// Mode represents the current UI mode
type Mode int

const (
	ModeNormal Mode = iota
	ModeSearch
	ModeGoto
	ModeColumns
)

// columnsHandler is the registry name of the column filter
const columnsHandler = "columns"

// ModelOptions configures a new Model
type ModelOptions struct {
	Filepath string
	Store    *config.Store
	Registry *plugin.Registry
	Logger   *zap.Logger
}

// searchResultMsg delivers the outcome of an asynchronous search
type searchResultMsg struct {
	seq     int
	term    string
	start   int   // 1-based window start
	matches []int // 0-based absolute lines
	err     error
}

// Model is the main application model
type Model struct {
	viewport *view.Viewport
	source   *source.FileSource
	filtered *source.FilteredProvider
	store    *config.Store
	registry *plugin.Registry
	logger   *zap.Logger
	input    textinput.Model

	mode   Mode
	width  int
	height int

	// Search state
	searchTerm   string
	searchStart  int
	matches      []int
	matchIndex   int
	searching    bool
	searchSeq    int
	cancelSearch context.CancelFunc

	// Status
	filename string
	message  string
}

// NewModel opens the file and wires the viewport to the registry's line
// filter
func NewModel(opts ModelOptions) (*Model, error) {
	src, err := source.NewFileSource(opts.Filepath)
	if err != nil {
		return nil, err
	}

	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	cfg := opts.Store.Get()
	filtered := source.NewFilteredProvider(src)

	viewport := view.NewViewport(80, 24)
	viewport.SetProvider(filtered)
	viewport.SetShowLineNumbers(cfg.Display.ShowLineNumbers)
	viewport.SetColors(cfg.Theme.LineNumbers, cfg.Theme.SearchMatch)
	viewport.SetRenderer(render.NewColumnRenderer(opts.Registry.DisplayLine))

	ti := textinput.New()
	ti.CharLimit = 256

	opts.Registry.ShowUI()

	return &Model{
		viewport: viewport,
		source:   src,
		filtered: filtered,
		store:    opts.Store,
		registry: opts.Registry,
		logger:   logger.Named("ui"),
		input:    ti,
		mode:     ModeNormal,
		filename: opts.Filepath,
	}, nil
}

// Init implements tea.Model
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		// Reserve 2 lines for status bar
		m.viewport.SetSize(msg.Width, msg.Height-2)
		return m, nil

	case searchResultMsg:
		m.handleSearchResult(msg)
		return m, nil
	}

	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.mode != ModeNormal {
		return m.handlePromptKey(msg)
	}

	m.message = ""
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit

	case "j", "down":
		m.viewport.ScrollDown(1)
	case "k", "up":
		m.viewport.ScrollUp(1)

	case "f", "pgdown", " ", "ctrl+d":
		m.viewport.PageDown()
	case "b", "pgup", "ctrl+u":
		m.viewport.PageUp()

	case "g", "home":
		m.viewport.GotoTop()
	case "G", "end":
		m.viewport.GotoBottom()

	case "/":
		return m, m.prompt(ModeSearch, "Search...", "")
	case ":":
		return m, m.prompt(ModeGoto, "Line number...", "")
	case "c":
		return m, m.prompt(ModeColumns, "Columns...", m.store.Get().Columns.Spec)

	case "n":
		m.nextSearchResult()
	case "N":
		m.prevSearchResult()
	case "&":
		m.toggleMatchesOnly()

	case "m":
		m.store.Update(func(c *config.Config) {
			if c.ColumnSpec().Mode == fields.ModeExclude {
				c.Columns.Mode = fields.ModeInclude.String()
			} else {
				c.Columns.Mode = fields.ModeExclude.String()
			}
		})
		m.checkColumns()
	case "L":
		m.store.Update(func(c *config.Config) { c.Columns.KeepLastField = !c.Columns.KeepLastField })
	case "i":
		m.store.Update(func(c *config.Config) { c.Search.IgnoreCase = !c.Search.IgnoreCase })
	case "p":
		m.toggleColumnFilter()
	case "R":
		m.refresh()
	case "W":
		m.saveConfig()
	}

	return m, nil
}

func (m *Model) prompt(mode Mode, placeholder, value string) tea.Cmd {
	m.mode = mode
	m.input.Placeholder = placeholder
	m.input.SetValue(value)
	m.input.CursorEnd()
	m.input.Focus()
	return textinput.Blink
}

func (m *Model) handlePromptKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		value := m.input.Value()
		mode := m.mode
		m.mode = ModeNormal
		m.input.Blur()

		switch mode {
		case ModeSearch:
			return m, m.startSearch(value)
		case ModeGoto:
			m.gotoLine(value)
		case ModeColumns:
			m.store.Update(func(c *config.Config) { c.Columns.Spec = value })
			m.checkColumns()
		}
		return m, nil

	case "esc":
		m.mode = ModeNormal
		m.input.Blur()
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) gotoLine(value string) {
	lineNum, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil || lineNum < 1 {
		m.message = fmt.Sprintf("not a line number: %q", value)
		return
	}
	if m.filtered.IsFiltered() {
		m.filtered.ClearFilter()
	}
	m.viewport.GotoLine(lineNum - 1)
}

// checkColumns reports spec tokens that selection will ignore
func (m *Model) checkColumns() {
	if err := fields.Check(m.store.Columns()); err != nil {
		m.message = strings.ReplaceAll(err.Error(), "\n", "; ")
	}
}

// startSearch begins a search whose window starts at the top visible line.
// Any search still running is cancelled and its result discarded.
func (m *Model) startSearch(term string) tea.Cmd {
	if m.cancelSearch != nil {
		m.cancelSearch()
		m.cancelSearch = nil
	}

	m.searchSeq++
	m.searchTerm = term
	if term == "" {
		m.clearSearch()
		return nil
	}
	if !m.registry.SearchAvailable() {
		m.message = "search is disabled"
		return nil
	}

	start := m.filtered.OriginalLineNumber(m.viewport.CurrentLine()) + 1
	if start < 1 {
		start = 1
	}

	ctx, cancel := context.WithCancel(context.Background())
	m.cancelSearch = cancel
	m.searching = true

	seq, path, registry := m.searchSeq, m.source.Path(), m.registry
	return func() tea.Msg {
		rel, err := registry.Search(ctx, path, term, start)
		return searchResultMsg{
			seq:     seq,
			term:    term,
			start:   start,
			matches: search.Absolute(rel, start),
			err:     err,
		}
	}
}

func (m *Model) handleSearchResult(msg searchResultMsg) {
	if msg.seq != m.searchSeq {
		return
	}
	m.searching = false
	m.cancelSearch = nil

	if msg.err != nil {
		if !errors.Is(msg.err, context.Canceled) {
			m.logger.Warn("search failed", zap.String("term", msg.term), zap.Error(msg.err))
			m.message = msg.err.Error()
		}
		return
	}

	m.searchStart = msg.start
	m.matches = msg.matches
	m.matchIndex = 0
	m.viewport.SetMatches(m.matches)
	if m.filtered.IsFiltered() {
		m.filtered.SetIndices(m.matches)
		m.viewport.SetProvider(m.filtered)
	}

	if len(m.matches) == 0 {
		m.viewport.ClearHighlight()
		m.message = fmt.Sprintf("no match for %q in %d lines from L%d", msg.term, search.WindowSize, msg.start)
		return
	}
	m.showMatch()
}

func (m *Model) showMatch() {
	original := m.matches[m.matchIndex]
	if idx := m.filtered.FilteredIndexFor(original); idx >= 0 {
		m.viewport.GotoLine(idx)
	}
	m.viewport.SetHighlightedLine(original)
}

func (m *Model) nextSearchResult() {
	if len(m.matches) == 0 {
		return
	}
	m.matchIndex = (m.matchIndex + 1) % len(m.matches)
	m.showMatch()
}

func (m *Model) prevSearchResult() {
	if len(m.matches) == 0 {
		return
	}
	m.matchIndex--
	if m.matchIndex < 0 {
		m.matchIndex = len(m.matches) - 1
	}
	m.showMatch()
}

func (m *Model) clearSearch() {
	m.searchTerm = ""
	m.matches = nil
	m.matchIndex = 0
	m.searching = false
	m.viewport.SetMatches(nil)
	m.viewport.ClearHighlight()
	if m.filtered.IsFiltered() {
		m.filtered.ClearFilter()
		m.viewport.SetProvider(m.filtered)
	}
}

// toggleMatchesOnly switches between all lines and the search matches
func (m *Model) toggleMatchesOnly() {
	if m.filtered.IsFiltered() {
		m.filtered.ClearFilter()
	} else {
		if m.searchTerm == "" {
			m.message = "no search to filter by"
			return
		}
		m.filtered.SetIndices(m.matches)
	}
	m.viewport.SetProvider(m.filtered)
	if len(m.matches) > 0 {
		m.showMatch()
	}
}

func (m *Model) toggleColumnFilter() {
	enabled := !m.registry.States()[columnsHandler]
	if err := m.registry.SetEnabled(columnsHandler, enabled); err != nil {
		m.message = err.Error()
		return
	}
	if enabled {
		m.message = "columns on"
	} else {
		m.message = "columns off"
	}
}

func (m *Model) refresh() {
	added, err := m.source.Refresh()
	if err != nil {
		m.message = err.Error()
		return
	}
	m.message = fmt.Sprintf("%d new lines", added)
}

func (m *Model) saveConfig() {
	if err := config.Save(m.store.Get()); err != nil {
		m.logger.Error("save config", zap.Error(err))
		m.message = err.Error()
		return
	}
	m.message = "saved " + config.GetConfigPath()
}

// View implements tea.Model
func (m *Model) View() string {
	var builder strings.Builder
	cfg := m.store.Get()

	builder.WriteString(m.viewport.Render())
	builder.WriteString("\n")

	statusStyle := lipgloss.NewStyle().
		Background(lipgloss.Color(cfg.Theme.StatusBar)).
		Foreground(lipgloss.Color(cfg.Theme.StatusBarText)).
		Width(m.width)

	var status string
	switch m.mode {
	case ModeSearch:
		status = "/" + m.input.View()
	case ModeGoto:
		status = ":" + m.input.View()
	case ModeColumns:
		status = cfg.Columns.Mode + " " + m.input.View()
	default:
		status = m.statusLine(cfg)
	}
	builder.WriteString(statusStyle.Render(status))
	builder.WriteString("\n")

	if m.message != "" {
		builder.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(cfg.Theme.Warning)).Render(m.message))
	} else {
		helpStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(cfg.Theme.LineNumbers))
		help := "j/k:scroll f/b:page /:search n/N:next/prev &:matches c:columns m:mode i:case p:cols on/off q:quit"
		builder.WriteString(helpStyle.Render(help))
	}

	return builder.String()
}

func (m *Model) statusLine(cfg *config.Config) string {
	lineInfo := fmt.Sprintf("L%d/%d",
		m.filtered.OriginalLineNumber(m.viewport.CurrentLine())+1,
		m.source.LineCount())
	percent := fmt.Sprintf("%.0f%%", m.viewport.PercentScrolled())

	columns := cfg.Columns.Spec
	if columns == "" {
		columns = "*"
	}
	colInfo := fmt.Sprintf("[%s %s]", cfg.Columns.Mode, columns)

	searchInfo := ""
	switch {
	case m.searching:
		searchInfo = " [searching...]"
	case m.searchTerm != "":
		searchInfo = fmt.Sprintf(" [%d/%d from L%d]", m.matchIndex+1, len(m.matches), m.searchStart)
		if len(m.matches) == 0 {
			searchInfo = fmt.Sprintf(" [0 matches from L%d]", m.searchStart)
		}
	}
	if cfg.Search.IgnoreCase {
		searchInfo += " -i"
	}

	return fmt.Sprintf(" %s  %s  %s  %s%s", m.filename, lineInfo, percent, colInfo, searchInfo)
}

// Close cancels any running search, releases the handlers and unmaps the
// file
func (m *Model) Close() error {
	if m.cancelSearch != nil {
		m.cancelSearch()
	}
	releaseErr := m.registry.Release()
	if m.source != nil {
		return errors.Join(releaseErr, m.source.Close())
	}
	return releaseErr
}
