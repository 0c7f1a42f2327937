package plugin

import (
	"context"
	"errors"
	"fmt"
	"sync"

	cgerrors "github.com/TimelordUK/colgrep/internal/errors"
)

// Registry holds handlers in registration order with an enabled flag each
type Registry struct {
	mu       sync.RWMutex
	handlers []Handler
	enabled  map[string]bool
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{
		enabled: make(map[string]bool),
	}
}

// Register adds an enabled handler. Names must be unique.
func (r *Registry) Register(h Handler) error {
	r.mu.Lock()
	if _, ok := r.enabled[h.Name()]; ok {
		r.mu.Unlock()
		return cgerrors.NewInvalidArgumentError(fmt.Sprintf("handler %q already registered", h.Name()), nil)
	}
	r.handlers = append(r.handlers, h)
	r.enabled[h.Name()] = true
	r.mu.Unlock()

	h.OnCreateMenu()
	return nil
}

// SetEnabled enables or disables a handler by name
func (r *Registry) SetEnabled(name string, enabled bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.enabled[name]; !ok {
		return cgerrors.NewNotFoundError(fmt.Sprintf("no handler %q", name), nil)
	}
	r.enabled[name] = enabled
	return nil
}

// States returns the enabled flag of every handler
func (r *Registry) States() map[string]bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make(map[string]bool, len(r.enabled))
	for k, v := range r.enabled {
		out[k] = v
	}
	return out
}

func (r *Registry) active() []Handler {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []Handler
	for _, h := range r.handlers {
		if r.enabled[h.Name()] {
			out = append(out, h)
		}
	}
	return out
}

// DisplayLine passes line through the first enabled LineFilter. With none
// enabled the line is returned unchanged.
func (r *Registry) DisplayLine(line string) string {
	for _, h := range r.active() {
		if f, ok := h.(LineFilter); ok {
			return f.DisplayLine(line)
		}
	}
	return line
}

// SearchAvailable reports whether an enabled Searcher exists
func (r *Registry) SearchAvailable() bool {
	for _, h := range r.active() {
		if _, ok := h.(Searcher); ok {
			return true
		}
	}
	return false
}

// Search runs the first enabled Searcher
func (r *Registry) Search(ctx context.Context, path, pattern string, startLine int) ([]int, error) {
	for _, h := range r.active() {
		if s, ok := h.(Searcher); ok {
			return s.Search(ctx, path, pattern, startLine)
		}
	}
	return nil, cgerrors.NewNotFoundError("no search handler enabled", nil)
}

// Trigger forwards a menu action to the named handler
func (r *Registry) Trigger(name string, index int) error {
	for _, h := range r.active() {
		if h.Name() == name {
			h.OnTrigger(index)
			return nil
		}
	}
	return cgerrors.NewNotFoundError(fmt.Sprintf("no enabled handler %q", name), nil)
}

// PopupMenu broadcasts to every enabled handler
func (r *Registry) PopupMenu() {
	for _, h := range r.active() {
		h.OnPopupMenu()
	}
}

// ShowUI broadcasts to every enabled handler
func (r *Registry) ShowUI() {
	for _, h := range r.active() {
		h.OnShowUI()
	}
}

// Release releases every handler, enabled or not, and empties the registry
func (r *Registry) Release() error {
	r.mu.Lock()
	handlers := r.handlers
	r.handlers = nil
	r.enabled = make(map[string]bool)
	r.mu.Unlock()

	var errs []error
	for _, h := range handlers {
		if err := h.OnRelease(); err != nil {
			errs = append(errs, fmt.Errorf("release %s: %w", h.Name(), err))
		}
	}
	return errors.Join(errs...)
}
