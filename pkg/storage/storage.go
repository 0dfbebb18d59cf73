package storage

import "context"

//go:generate mockery --name Store --output ./mocks

// Saver persists a complete account snapshot, replacing whatever was stored before.
type Saver interface {
	Save(ctx context.Context, snap Snapshot) error
}

// Loader reads back the last saved snapshot.
// It returns ErrNotFound when nothing was saved yet and ErrCorrupt when the stored data cannot be decoded.
type Loader interface {
	Load(ctx context.Context) (Snapshot, error)
}

// Store composes the save and load operations of a single-account backend.
type Store interface {
	Saver
	Loader
}
