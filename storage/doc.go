// Package storage provides the discipline-typed containers holding agent
// working memory across loop iterations.
//
// A [Storage] is a named, mutex-guarded, insertion-ordered map created once
// with a fixed [StorageType] discipline:
//
//   - [Untagged]: a position-indexed list. Positions are assigned 1, 2, 3, …
//     and are never reused, even after removal.
//   - [Tagged]: an explicit key=value map.
//   - [Completion]: like Untagged, but every entry carries a completion flag.
//   - [CurrentPrevious]: at most two reserved slots; setting a new current
//     demotes the old one to previous.
//
// Calling an operation that does not belong to a storage's discipline is a
// programming error and panics — callers know their storage's discipline
// statically, and a mismatch should be caught in development, not handled at
// runtime.
//
// A [Registry] owns the named storages of one agent session, and can persist
// them to YAML and restore them with [Registry.Save] and [Registry.Load].
//
// All operations are safe for concurrent use and linearizable per storage.
package storage
