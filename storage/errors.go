package storage

import "errors"

// Snapshot restore errors.
var (
	ErrUnknownStorageType = errors.New("unknown storage type")
	ErrStorageConflict    = errors.New("storage already exists with a different discipline")
)
