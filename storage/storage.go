package storage

import (
	"fmt"
	"strconv"
	"sync"

	orderedmap "github.com/wk8/go-ordered-map/v2"

	"github.com/tagwire/tagwire/logging"
)

// StorageType is the fixed access discipline a Storage enforces.
type StorageType int

const (
	// CurrentPrevious holds a single current value with an optional
	// previous value.
	CurrentPrevious StorageType = iota
	// Untagged is a list indexed by element position.
	Untagged
	// Tagged is a key=value store.
	Tagged
	// Completion is a position-indexed list where every entry carries a
	// completion flag.
	Completion
)

// String returns the lowercase name of the storage type.
func (t StorageType) String() string {
	switch t {
	case CurrentPrevious:
		return "current-previous"
	case Untagged:
		return "untagged"
	case Tagged:
		return "tagged"
	case Completion:
		return "completion"
	default:
		return fmt.Sprintf("unknown(%d)", int(t))
	}
}

// ParseStorageType parses the string form produced by String.
func ParseStorageType(s string) (StorageType, error) {
	switch s {
	case "current-previous":
		return CurrentPrevious, nil
	case "untagged":
		return Untagged, nil
	case "tagged":
		return Tagged, nil
	case "completion":
		return Completion, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownStorageType, s)
	}
}

// Reserved keys of a CurrentPrevious storage.
const (
	CurrentKey  = "__current"
	PreviousKey = "__previous"
)

type entry struct {
	data     string
	complete bool
}

// Item is a copied view of one stored entry, returned by Items. Complete is
// only meaningful for Completion storages.
type Item struct {
	Key      string
	Data     string
	Complete bool
}

// Storage is a named, discipline-typed, insertion-ordered container. The
// inner map is owned exclusively by the Storage and guarded by a single
// mutex; every operation holds the lock for its full duration.
//
// The zero value is not usable; create storages with New or through a
// Registry.
type Storage struct {
	name string
	typ  StorageType
	log  logging.Logger

	mu    sync.Mutex
	inner *orderedmap.OrderedMap[string, *entry]
	seq   int // positions ever assigned; never rewinds except on Clear
}

func newInner() *orderedmap.OrderedMap[string, *entry] {
	return orderedmap.New[string, *entry]()
}

// New creates an empty Storage with a fixed discipline.
func New(name string, typ StorageType) *Storage {
	return &Storage{
		name:  name,
		typ:   typ,
		log:   logging.NoOp{},
		inner: newInner(),
	}
}

// WithLogger sets the logger mutations are reported to. Returns self for
// chaining during construction; not safe to call concurrently with use.
func (s *Storage) WithLogger(log logging.Logger) *Storage {
	if log != nil {
		s.log = log
	}
	return s
}

// Name returns the storage name used as the tag name when rendering.
func (s *Storage) Name() string {
	return s.name
}

// Type returns the storage's fixed discipline.
func (s *Storage) Type() StorageType {
	return s.typ
}

// mustBe panics unless the storage has the wanted discipline. The caller
// already holds the mutex; the deferred unlock releases it on this path too.
func (s *Storage) mustBe(op string, want StorageType) {
	if s.typ != want {
		panic(fmt.Sprintf(
			"storage %q: %s requires the %s discipline, storage is %s",
			s.name, op, want, s.typ,
		))
	}
}

// AddTagged inserts or overwrites the value under key. Overwriting keeps the
// key's original insertion position.
func (s *Storage) AddTagged(key, data string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.mustBe("AddTagged", Tagged)

	s.inner.Set(key, &entry{data: data})
	s.log.Debug("storage add", "storage", s.name, "key", key, "data", data)
}

// GetTagged returns the value under key and whether it exists.
func (s *Storage) GetTagged(key string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.mustBe("GetTagged", Tagged)

	e, ok := s.inner.Get(key)
	if !ok {
		return "", false
	}
	return e.data, true
}

// DelTagged removes the value under key, returning it and whether the key
// existed. Remaining entries keep their insertion order.
func (s *Storage) DelTagged(key string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.mustBe("DelTagged", Tagged)

	e, ok := s.inner.Delete(key)
	if !ok {
		return "", false
	}
	s.log.Debug("storage del", "storage", s.name, "key", key)
	return e.data, true
}

// AddUntagged appends data at the next position. Positions start at 1 and
// are never reused, so removing an element leaves a permanent gap.
func (s *Storage) AddUntagged(data string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.mustBe("AddUntagged", Untagged)

	s.appendSequenced(data)
}

// DelUntagged removes the element at its original position, returning it and
// whether it existed. Remaining elements are not renumbered.
func (s *Storage) DelUntagged(pos int) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.mustBe("DelUntagged", Untagged)

	return s.deleteSequenced(pos)
}

// AddCompletion appends a not-yet-completed entry at the next position.
// Position semantics match AddUntagged.
func (s *Storage) AddCompletion(data string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.mustBe("AddCompletion", Completion)

	s.appendSequenced(data)
}

// DelCompletion removes the entry at its original position, returning its
// data and whether it existed.
func (s *Storage) DelCompletion(pos int) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.mustBe("DelCompletion", Completion)

	return s.deleteSequenced(pos)
}

// SetComplete marks the entry at pos completed. Reports whether the entry
// exists.
func (s *Storage) SetComplete(pos int) bool {
	return s.setCompletion("SetComplete", pos, true)
}

// SetIncomplete clears the completion flag of the entry at pos. Reports
// whether the entry exists.
func (s *Storage) SetIncomplete(pos int) bool {
	return s.setCompletion("SetIncomplete", pos, false)
}

func (s *Storage) setCompletion(op string, pos int, complete bool) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.mustBe(op, Completion)

	e, ok := s.inner.Get(strconv.Itoa(pos))
	if !ok {
		return false
	}
	e.complete = complete
	s.log.Debug("storage completion", "storage", s.name, "position", pos, "complete", complete)
	return true
}

// SetCurrent installs data as the current value in one atomic step: the old
// current (if any) becomes the previous value, discarding whatever previous
// value existed before.
func (s *Storage) SetCurrent(data string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.mustBe("SetCurrent", CurrentPrevious)

	old, had := s.inner.Delete(CurrentKey)
	s.inner.Set(CurrentKey, &entry{data: data})
	if had {
		s.inner.Set(PreviousKey, old)
	}
	s.log.Debug("storage current", "storage", s.name, "data", data)
}

// Current returns the current value and whether one is set.
func (s *Storage) Current() (string, bool) {
	return s.reserved("Current", CurrentKey)
}

// Previous returns the previous value and whether one is set.
func (s *Storage) Previous() (string, bool) {
	return s.reserved("Previous", PreviousKey)
}

func (s *Storage) reserved(op, key string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.mustBe(op, CurrentPrevious)

	e, ok := s.inner.Get(key)
	if !ok {
		return "", false
	}
	return e.data, true
}

// Clear empties the storage unconditionally, regardless of discipline, and
// restarts position numbering. Used between agent runs.
func (s *Storage) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.inner = newInner()
	s.seq = 0
	s.log.Debug("storage cleared", "storage", s.name)
}

// Len returns the number of stored entries.
func (s *Storage) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.inner.Len()
}

// Items returns a copy of all entries in insertion order. The raw map is
// never exposed; mutating the returned slice has no effect on the storage.
func (s *Storage) Items() []Item {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.itemsLocked()
}

func (s *Storage) itemsLocked() []Item {
	items := make([]Item, 0, s.inner.Len())
	for pair := s.inner.Oldest(); pair != nil; pair = pair.Next() {
		items = append(items, Item{
			Key:      pair.Key,
			Data:     pair.Value.data,
			Complete: pair.Value.complete,
		})
	}
	return items
}

// appendSequenced adds data under the next never-used position key. Caller
// holds the lock.
func (s *Storage) appendSequenced(data string) {
	s.seq++
	key := strconv.Itoa(s.seq)
	s.inner.Set(key, &entry{data: data})
	s.log.Debug("storage add", "storage", s.name, "position", s.seq, "data", data)
}

// deleteSequenced removes the entry at the original position key. Caller
// holds the lock.
func (s *Storage) deleteSequenced(pos int) (string, bool) {
	e, ok := s.inner.Delete(strconv.Itoa(pos))
	if !ok {
		return "", false
	}
	s.log.Debug("storage del", "storage", s.name, "position", pos)
	return e.data, true
}
