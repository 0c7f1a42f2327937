package plugin

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TimelordUK/colgrep/internal/config"
	cgerrors "github.com/TimelordUK/colgrep/internal/errors"
	"github.com/TimelordUK/colgrep/internal/search"
)

// recorder is a Handler that records lifecycle calls
type recorder struct {
	name       string
	events     []string
	releaseErr error
}

func (r *recorder) Name() string        { return r.name }
func (r *recorder) OnTrigger(index int) { r.events = append(r.events, "trigger") }
func (r *recorder) OnPopupMenu()        { r.events = append(r.events, "popup") }
func (r *recorder) OnCreateMenu()       { r.events = append(r.events, "create") }
func (r *recorder) OnShowUI()           { r.events = append(r.events, "show") }
func (r *recorder) OnRelease() error {
	r.events = append(r.events, "release")
	return r.releaseErr
}

// upper is a LineFilter that marks lines it has seen
type upper struct{ recorder }

func (u *upper) DisplayLine(line string) string { return "<" + line + ">" }

func newStore() *config.Store {
	return config.NewStore(config.DefaultConfig())
}

func TestColumnFilterReadsSettingsEveryCall(t *testing.T) {
	t.Parallel()

	store := newStore()
	f := NewColumnFilter(store, nil)

	assert.Equal(t, "a b c d e", f.DisplayLine("a  b c d e"))

	store.Update(func(c *config.Config) { c.Columns.Spec = "0:2 3:" })
	assert.Equal(t, "a b d e", f.DisplayLine("a b c d e"))

	store.Update(func(c *config.Config) {
		c.Columns.Spec = "2"
		c.Columns.Mode = "exclude"
	})
	assert.Equal(t, "a c d", f.DisplayLine("a b c d e"))

	store.Update(func(c *config.Config) { c.Columns.KeepLastField = true })
	assert.Equal(t, "a c d e", f.DisplayLine("a b c d e"))
}

func TestPatternSearcher(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "app.log")
	require.NoError(t, os.WriteFile(path, []byte("foo\nbar\nFOObar\n"), 0o644))

	store := newStore()
	s := NewPatternSearcher(store, search.NewIndexer(nil), nil)

	got, err := s.Search(context.Background(), path, "foo", 0)
	require.NoError(t, err)
	assert.Equal(t, []int{1}, got)

	store.Update(func(c *config.Config) { c.Search.IgnoreCase = true })
	got, err = s.Search(context.Background(), path, "foo", 0)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 3}, got)

	got, err = s.Search(context.Background(), path, "foo", 2)
	require.NoError(t, err)
	assert.Equal(t, []int{2}, got)

	_, err = s.Search(context.Background(), path, "(", 0)
	assert.True(t, cgerrors.IsPattern(err))
}

func TestHandlersReleaseIsNoop(t *testing.T) {
	t.Parallel()

	store := newStore()
	f := NewColumnFilter(store, nil)
	s := NewPatternSearcher(store, search.NewIndexer(nil), nil)

	assert.Equal(t, "columns", f.Name())
	assert.Equal(t, "search", s.Name())
	assert.NotPanics(t, func() {
		f.OnTrigger(1)
		f.OnPopupMenu()
		f.OnShowUI()
		s.OnCreateMenu()
	})
	assert.NoError(t, f.OnRelease())
	assert.NoError(t, s.OnRelease())
}

func TestRegistryDispatch(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "app.log")
	require.NoError(t, os.WriteFile(path, []byte("foo\nbar\nfoobar"), 0o644))

	store := newStore()
	store.Update(func(c *config.Config) { c.Columns.Spec = "1:" })

	reg := NewRegistry()
	assert.Equal(t, "a b", reg.DisplayLine("a b"))
	assert.False(t, reg.SearchAvailable())
	_, err := reg.Search(context.Background(), path, "foo", 0)
	assert.True(t, cgerrors.IsNotFound(err))

	require.NoError(t, reg.Register(NewColumnFilter(store, nil)))
	require.NoError(t, reg.Register(NewPatternSearcher(store, search.NewIndexer(nil), nil)))

	assert.Equal(t, "b c", reg.DisplayLine("a b c"))
	assert.True(t, reg.SearchAvailable())

	got, err := reg.Search(context.Background(), path, "foo", 0)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 3}, got)

	require.NoError(t, reg.SetEnabled("columns", false))
	assert.Equal(t, "a b c", reg.DisplayLine("a b c"))
	assert.Equal(t, map[string]bool{"columns": false, "search": true}, reg.States())

	require.NoError(t, reg.SetEnabled("search", false))
	assert.False(t, reg.SearchAvailable())

	assert.True(t, cgerrors.IsNotFound(reg.SetEnabled("missing", true)))
}

func TestRegistryFirstEnabledFilterWins(t *testing.T) {
	t.Parallel()

	reg := NewRegistry()
	first := &upper{recorder{name: "first"}}
	require.NoError(t, reg.Register(first))
	require.NoError(t, reg.Register(NewColumnFilter(newStore(), nil)))

	assert.Equal(t, "<a  b>", reg.DisplayLine("a  b"))

	require.NoError(t, reg.SetEnabled("first", false))
	assert.Equal(t, "a b", reg.DisplayLine("a  b"))
}

func TestRegistryRejectsDuplicateNames(t *testing.T) {
	t.Parallel()

	reg := NewRegistry()
	require.NoError(t, reg.Register(&recorder{name: "x"}))
	err := reg.Register(&recorder{name: "x"})
	assert.True(t, cgerrors.IsInvalidArgument(err))
}

func TestRegistryLifecycle(t *testing.T) {
	t.Parallel()

	reg := NewRegistry()
	a := &recorder{name: "a"}
	b := &recorder{name: "b", releaseErr: errors.New("stuck")}
	require.NoError(t, reg.Register(a))
	require.NoError(t, reg.Register(b))
	require.NoError(t, reg.SetEnabled("b", false))

	reg.PopupMenu()
	reg.ShowUI()
	require.NoError(t, reg.Trigger("a", 2))
	assert.True(t, cgerrors.IsNotFound(reg.Trigger("b", 0)))

	err := reg.Release()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "release b: stuck")

	assert.Equal(t, []string{"create", "popup", "show", "trigger", "release"}, a.events)
	assert.Equal(t, []string{"create", "release"}, b.events)
	assert.Empty(t, reg.States())
}
