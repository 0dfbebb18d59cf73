// Package file stores an account snapshot in a single binary state file.
package file

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/chris/account-ledger/pkg/storage"
)

// Store implements storage.Store on top of one file path.
type Store struct {
	Path string
}

// New creates a new Store.
func New(path string) *Store {
	return &Store{Path: path}
}

// Make sure we conform to the interface
var _ storage.Store = (*Store)(nil)

// Save overwrites the state file with snap. The parent directory must exist.
// On failure the file may be left partially written.
func (s *Store) Save(ctx context.Context, snap storage.Snapshot) error {
	f, err := os.OpenFile(s.Path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return fmt.Errorf("failed to open state file: %w", err)
	}
	if _, err := f.Write(Encode(snap)); err != nil {
		f.Close()
		return fmt.Errorf("failed to write state file: %w", err)
	}
	if err := f.Sync(); err != nil {
		f.Close()
		return fmt.Errorf("failed to sync state file: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close state file: %w", err)
	}
	return nil
}

// Load reads the state file. A missing file yields storage.ErrNotFound and
// undecodable content yields storage.ErrCorrupt.
func (s *Store) Load(ctx context.Context) (storage.Snapshot, error) {
	data, err := os.ReadFile(s.Path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return storage.Snapshot{}, fmt.Errorf("%w: %s", storage.ErrNotFound, s.Path)
		}
		return storage.Snapshot{}, fmt.Errorf("failed to read state file: %w", err)
	}
	return Decode(data)
}
