package storage

import (
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/tagwire/tagwire/logging"
)

// Registry owns the named storages of one agent session. Storages are
// created once per name with a fixed discipline at runtime initialization
// and live for the whole session; between runs they are cleared, never
// destroyed.
//
// The registry lock only guards the name table. It is never held while a
// storage's own lock is taken, so storage operations cannot deadlock against
// registry operations.
type Registry struct {
	id  string
	log logging.Logger

	mu       sync.Mutex
	order    []string
	storages map[string]*Storage
}

// NewRegistry creates an empty registry with a fresh session id.
func NewRegistry() *Registry {
	return &Registry{
		id:       uuid.NewString(),
		log:      logging.NoOp{},
		storages: make(map[string]*Storage),
	}
}

// WithLogger sets the logger passed down to every storage created through
// this registry. Returns self for chaining during construction.
func (r *Registry) WithLogger(log logging.Logger) *Registry {
	if log != nil {
		r.log = log
	}
	return r
}

// ID returns the session id, useful for log correlation.
func (r *Registry) ID() string {
	return r.id
}

// Storage returns the named storage, creating it with the given discipline
// on first use.
//
// Panics if the name is already registered with a different discipline: the
// set of named slots and their disciplines is fixed at initialization, and a
// mismatch is the same class of programming error as calling a Tagged
// operation on an Untagged storage.
func (r *Registry) Storage(name string, typ StorageType) *Storage {
	r.mu.Lock()
	defer r.mu.Unlock()

	if st, ok := r.storages[name]; ok {
		if st.Type() != typ {
			panic(fmt.Sprintf(
				"registry %s: storage %q already registered as %s, requested %s",
				r.id, name, st.Type(), typ,
			))
		}
		return st
	}

	st := New(name, typ).WithLogger(r.log)
	r.storages[name] = st
	r.order = append(r.order, name)
	r.log.Debug("storage created", "session", r.id, "storage", name, "type", typ.String())
	return st
}

// Get returns the named storage and whether it exists.
func (r *Registry) Get(name string) (*Storage, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	st, ok := r.storages[name]
	return st, ok
}

// All returns every storage in creation order.
func (r *Registry) All() []*Storage {
	r.mu.Lock()
	defer r.mu.Unlock()
	all := make([]*Storage, 0, len(r.order))
	for _, name := range r.order {
		all = append(all, r.storages[name])
	}
	return all
}

// ClearAll empties every storage. Storages stay registered with their
// disciplines intact; only their contents are dropped.
func (r *Registry) ClearAll() {
	for _, st := range r.All() {
		st.Clear()
	}
}
