package descriptor

import (
	"fmt"
	"sort"
	"strings"
	"sync"
)

// Registry maps names to entries such as special color generators or
// display modes. Both controllers build their own registry at startup and
// agree on the names; nothing is registered globally.
type Registry[T any] struct {
	mu      sync.RWMutex
	entries map[string]T
}

// NewRegistry returns an empty registry.
func NewRegistry[T any]() *Registry[T] {
	return &Registry[T]{entries: make(map[string]T)}
}

// Register adds entry under name. Names are matched without regard to case.
// Empty and duplicate names fail with ErrInvalidInput.
func (r *Registry[T]) Register(name string, entry T) error {
	key := normalizeName(name)
	if key == "" {
		return fmt.Errorf("%w: empty registry name", ErrInvalidInput)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.entries[key]; exists {
		return fmt.Errorf("%w: %q already registered", ErrInvalidInput, name)
	}
	r.entries[key] = entry
	return nil
}

// Lookup returns the entry registered under name.
func (r *Registry[T]) Lookup(name string) (T, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	entry, ok := r.entries[normalizeName(name)]
	return entry, ok
}

// Names returns the registered names in sorted order.
func (r *Registry[T]) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.entries))
	for name := range r.entries {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Len returns the number of registered entries.
func (r *Registry[T]) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.entries)
}

func normalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
