package naming

import (
	"errors"
	"fmt"
	"sort"
	"sync"
)

// Resolver maps user-typed names to the canonical casing of registered names
type Resolver interface {
	// Resolve converts any casing of a registered name to its canonical form
	Resolve(name string) (canonical string, ok bool)

	// Register adds a canonical name; re-registering the same key replaces the casing
	Register(name string) error

	// Replace swaps the whole registry atomically
	Replace(names []string) error

	// Names returns the canonical names in ascending order
	Names() []string
}

type resolver struct {
	mu sync.RWMutex

	// Mapping: key -> canonical name
	byKey map[string]string
}

// NewResolver creates an empty resolver
func NewResolver() Resolver {
	return &resolver{byKey: make(map[string]string)}
}

// Register adds a key->canonical mapping
func (r *resolver) Register(name string) error {
	key := Key(name)
	if key == "" {
		return errors.New(ErrMsgEmptyName)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.byKey[key] = Clean(name)
	return nil
}

// Replace validates names and installs them as the new registry
func (r *resolver) Replace(names []string) error {
	next := make(map[string]string, len(names))
	for _, name := range names {
		key := Key(name)
		if key == "" {
			return errors.New(ErrMsgEmptyName)
		}
		if existing, dup := next[key]; dup {
			return fmt.Errorf(ErrMsgDuplicateName, name, existing)
		}
		next[key] = Clean(name)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.byKey = next
	return nil
}

// Resolve converts a typed name to its canonical form
func (r *resolver) Resolve(name string) (string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	canonical, ok := r.byKey[Key(name)]
	return canonical, ok
}

// Names lists the canonical names
func (r *resolver) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.byKey))
	for _, name := range r.byKey {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
