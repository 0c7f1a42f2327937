package config

import (
	"sync/atomic"

	"github.com/TimelordUK/colgrep/internal/fields"
	"github.com/TimelordUK/colgrep/internal/search"
)

// Store holds the live configuration. Readers get an immutable snapshot
// on every call; writers replace the snapshot wholesale, so a change is
// visible to the very next line rendered.
type Store struct {
	current atomic.Pointer[Config]
}

// NewStore creates a store holding a copy of cfg
func NewStore(cfg *Config) *Store {
	s := &Store{}
	s.Set(cfg)
	return s
}

// Get returns the current snapshot. Callers must not modify it.
func (s *Store) Get() *Config {
	return s.current.Load()
}

// Set replaces the snapshot with a copy of cfg
func (s *Store) Set(cfg *Config) {
	c := *cfg
	s.current.Store(&c)
}

// Update applies fn to a copy of the current snapshot and publishes it
func (s *Store) Update(fn func(c *Config)) {
	for {
		old := s.current.Load()
		c := *old
		fn(&c)
		if s.current.CompareAndSwap(old, &c) {
			return
		}
	}
}

// Columns returns the column spec of the current snapshot
func (s *Store) Columns() fields.Spec {
	return s.Get().ColumnSpec()
}

// SearchOptions returns the search options of the current snapshot
func (s *Store) SearchOptions() search.Options {
	return s.Get().SearchOptions()
}
