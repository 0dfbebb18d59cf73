package storage

import "errors"

// ErrNotFound is returned by Load when no snapshot has been stored.
var ErrNotFound = errors.New("snapshot not found")

// ErrCorrupt is returned by Load when stored data exists but is not a valid snapshot.
var ErrCorrupt = errors.New("snapshot is corrupt")

// ErrReplica wraps failures of secondary stores after the primary save succeeded.
var ErrReplica = errors.New("replica")
