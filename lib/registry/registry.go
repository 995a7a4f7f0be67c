// Package registry is a small in-memory catalog of named bitset
// lists, each tagged with a stable UUID at registration time. It sits
// above lib/bitset, lib/planner, and lib/bitsetlist as a convenience
// for cmd/cbitset's session command: within one session process, a
// command can refer to "the list named sessions" without
// re-resolving a file path on every call, the same way
// oriumgames-bevi/dragonfly tags every Player with a uuid.UUID so the
// rest of the server can refer to one stably.
package registry

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/deepakm/cbitset-go/lib/bitsetlist"
)

// ErrNotFound is returned by Lookup, Rename, and Forget when no entry
// exists under the given name.
var ErrNotFound = errors.New("registry: no such entry")

// ErrExists is returned by Register when the name is already taken.
var ErrExists = errors.New("registry: name already registered")

// Entry pairs a named bitset list with the UUID it was assigned at
// registration.
type Entry struct {
	Name string
	ID   uuid.UUID
	List *bitsetlist.List
}

// Registry is a concurrency-safe name -> Entry catalog. The zero
// value is ready to use.
type Registry struct {
	mu      sync.RWMutex
	entries map[string]*Entry
}

// New returns an empty registry.
func New() *Registry {
	return &Registry{entries: make(map[string]*Entry)}
}

// Register adds l under name, assigning it a fresh UUID. Returns
// ErrExists if name is already registered.
func (r *Registry) Register(name string, l *bitsetlist.List) (*Entry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.entries == nil {
		r.entries = make(map[string]*Entry)
	}
	if _, ok := r.entries[name]; ok {
		return nil, fmt.Errorf("registry: register %q: %w", name, ErrExists)
	}
	e := &Entry{Name: name, ID: uuid.New(), List: l}
	r.entries[name] = e
	return e, nil
}

// Lookup returns the entry registered under name.
func (r *Registry) Lookup(name string) (*Entry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.entries[name]
	if !ok {
		return nil, fmt.Errorf("registry: lookup %q: %w", name, ErrNotFound)
	}
	return e, nil
}

// Rename moves the entry at oldName to newName, keeping its UUID.
// Returns ErrNotFound if oldName is absent, ErrExists if newName is
// already taken.
func (r *Registry) Rename(oldName, newName string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.entries[oldName]
	if !ok {
		return fmt.Errorf("registry: rename %q: %w", oldName, ErrNotFound)
	}
	if _, ok := r.entries[newName]; ok {
		return fmt.Errorf("registry: rename to %q: %w", newName, ErrExists)
	}
	delete(r.entries, oldName)
	e.Name = newName
	r.entries[newName] = e
	return nil
}

// Forget removes the entry registered under name.
func (r *Registry) Forget(name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.entries[name]; !ok {
		return fmt.Errorf("registry: forget %q: %w", name, ErrNotFound)
	}
	delete(r.entries, name)
	return nil
}

// All returns every registered entry, ordered by name.
func (r *Registry) All() []*Entry {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*Entry, 0, len(r.entries))
	for _, e := range r.entries {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}
