package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/chris/account-ledger/pkg/logger"
)

// Mirror saves to a primary store and then copies the snapshot to every replica.
// Loads are served by the primary only.
type Mirror struct {
	Primary  Store
	Replicas []Saver
}

// NewMirror creates a new Mirror.
func NewMirror(primary Store, replicas ...Saver) *Mirror {
	return &Mirror{Primary: primary, Replicas: replicas}
}

// Make sure we conform to the interface
var _ Store = (*Mirror)(nil)

// Save writes the primary first. A primary failure stops the save; replica
// failures are logged and returned joined once every replica was tried.
func (m *Mirror) Save(ctx context.Context, snap Snapshot) error {
	if err := m.Primary.Save(ctx, snap); err != nil {
		return err
	}

	log := logger.FromContext(ctx)
	var errs []error
	for i, r := range m.Replicas {
		if err := r.Save(ctx, snap); err != nil {
			log.Error().Err(err).Int("replica", i).Msg("failed to save snapshot to replica")
			errs = append(errs, fmt.Errorf("%w %d: %w", ErrReplica, i, err))
		}
	}
	return errors.Join(errs...)
}

// Load reads from the primary store.
func (m *Mirror) Load(ctx context.Context) (Snapshot, error) {
	return m.Primary.Load(ctx)
}
