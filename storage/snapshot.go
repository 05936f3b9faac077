package storage

import (
	"fmt"
	"strconv"

	"gopkg.in/yaml.v3"
)

// storageState is the persisted form of one storage.
type storageState struct {
	Name    string       `yaml:"name"`
	Type    string       `yaml:"type"`
	Seq     int          `yaml:"seq,omitempty"`
	Entries []entryState `yaml:"entries,omitempty"`
}

type entryState struct {
	Key      string `yaml:"key"`
	Data     string `yaml:"data"`
	Complete bool   `yaml:"complete,omitempty"`
}

// Save serializes every storage — names, disciplines, position sequences and
// ordered entries — to YAML, so agent working memory can survive a process
// restart.
func (r *Registry) Save() ([]byte, error) {
	states := make([]storageState, 0)
	for _, st := range r.All() {
		states = append(states, st.snapshot())
	}
	data, err := yaml.Marshal(states)
	if err != nil {
		return nil, fmt.Errorf("marshal storage snapshot: %w", err)
	}
	return data, nil
}

// Load restores a snapshot produced by Save. Storages are created lazily
// with their persisted disciplines; a storage that already exists is cleared
// and refilled. Returns ErrStorageConflict if a persisted storage collides
// with an existing one of a different discipline, ErrUnknownStorageType for
// unrecognized disciplines.
func (r *Registry) Load(data []byte) error {
	var states []storageState
	if err := yaml.Unmarshal(data, &states); err != nil {
		return fmt.Errorf("unmarshal storage snapshot: %w", err)
	}

	for _, state := range states {
		typ, err := ParseStorageType(state.Type)
		if err != nil {
			return fmt.Errorf("storage %q: %w", state.Name, err)
		}

		r.mu.Lock()
		st, ok := r.storages[state.Name]
		if ok && st.Type() != typ {
			r.mu.Unlock()
			return fmt.Errorf("storage %q: %w: have %s, snapshot has %s",
				state.Name, ErrStorageConflict, st.Type(), typ)
		}
		if !ok {
			st = New(state.Name, typ).WithLogger(r.log)
			r.storages[state.Name] = st
			r.order = append(r.order, state.Name)
		}
		r.mu.Unlock()

		st.restore(state)
		r.log.Debug("storage restored", "session", r.id,
			"storage", state.Name, "entries", len(state.Entries))
	}
	return nil
}

// snapshot copies the storage's full state under its lock.
func (s *Storage) snapshot() storageState {
	s.mu.Lock()
	defer s.mu.Unlock()

	state := storageState{
		Name: s.name,
		Type: s.typ.String(),
		Seq:  s.seq,
	}
	for _, item := range s.itemsLocked() {
		state.Entries = append(state.Entries, entryState{
			Key:      item.Key,
			Data:     item.Data,
			Complete: item.Complete,
		})
	}
	return state
}

// restore replaces the storage's contents with the persisted state,
// bypassing discipline checks: keys were produced by the matching
// disciplined operations when the snapshot was taken.
func (s *Storage) restore(state storageState) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.inner = newInner()
	for _, e := range state.Entries {
		s.inner.Set(e.Key, &entry{data: e.Data, complete: e.Complete})
	}

	// Older snapshots may predate the sequence field; fall back to the
	// highest numeric key so future positions stay unique.
	s.seq = state.Seq
	if s.seq == 0 {
		for pair := s.inner.Oldest(); pair != nil; pair = pair.Next() {
			if n, err := strconv.Atoi(pair.Key); err == nil && n > s.seq {
				s.seq = n
			}
		}
	}
}
