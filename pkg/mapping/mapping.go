package mapping

import (
	"fmt"
	"time"

	"github.com/chris/account-ledger/pkg/export"
	"github.com/chris/account-ledger/pkg/ledger"
	"github.com/chris/account-ledger/pkg/models"
	"github.com/chris/account-ledger/pkg/notify"
	"github.com/chris/account-ledger/pkg/storage"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ToStatement converts an account into the statement rendered by the exporters.
func ToStatement(a *ledger.Account) export.Statement {
	owner := a.Owner()
	movements := a.Movements()
	s := export.Statement{
		Holder: export.Holder{
			Name:       owner.Name(),
			NationalID: owner.NationalID(),
			Age:        owner.Age(),
		},
		Rows: make([]export.Row, 0, len(movements)),
	}
	for _, m := range movements {
		s.Rows = append(s.Rows, export.Row{
			Label:     m.Kind().Label(),
			Amount:    m.Amount().StringFixed(2),
			Timestamp: m.Timestamp().Format(models.TimestampLayout),
		})
	}
	return s
}

// ToSnapshot converts an account into its persisted form.
func ToSnapshot(a *ledger.Account) storage.Snapshot {
	owner := a.Owner()
	movements := a.Movements()
	s := storage.Snapshot{
		Version:   storage.SnapshotVersion,
		AccountID: a.ID().String(),
		Owner: storage.OwnerRecord{
			Name:       owner.Name(),
			NationalID: owner.NationalID(),
			Age:        owner.Age(),
		},
		Movements: make([]storage.MovementRecord, 0, len(movements)),
	}
	for _, m := range movements {
		s.Movements = append(s.Movements, storage.MovementRecord{
			ID:        m.ID().String(),
			Kind:      int(m.Kind()),
			Amount:    m.Amount().String(),
			Timestamp: m.Timestamp().Unix(),
		})
	}
	return s
}

// FromSnapshot rebuilds an account from its persisted form.
// Any inconsistency is reported as storage.ErrCorrupt.
func FromSnapshot(s storage.Snapshot, opts ...ledger.Option) (*ledger.Account, error) {
	if s.Version != storage.SnapshotVersion {
		return nil, fmt.Errorf("%w: unsupported snapshot version %d", storage.ErrCorrupt, s.Version)
	}
	id, err := uuid.Parse(s.AccountID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid account id: %v", storage.ErrCorrupt, err)
	}
	owner := models.NewOwner(s.Owner.Name, s.Owner.NationalID, s.Owner.Age)

	movements := make([]models.Movement, 0, len(s.Movements))
	for i, rec := range s.Movements {
		m, err := toMovement(rec)
		if err != nil {
			return nil, fmt.Errorf("%w: movement %d: %v", storage.ErrCorrupt, i, err)
		}
		movements = append(movements, m)
	}

	a, err := ledger.Restore(id, owner, movements, opts...)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", storage.ErrCorrupt, err)
	}
	return a, nil
}

func toMovement(rec storage.MovementRecord) (models.Movement, error) {
	id, err := uuid.Parse(rec.ID)
	if err != nil {
		return models.Movement{}, fmt.Errorf("invalid id: %w", err)
	}
	amount, err := decimal.NewFromString(rec.Amount)
	if err != nil {
		return models.Movement{}, fmt.Errorf("invalid amount: %w", err)
	}
	return models.RestoreMovement(id, models.MovementKind(rec.Kind), amount, time.Unix(rec.Timestamp, 0))
}

// ToEvent converts a recorded movement into a notification.
func ToEvent(a *ledger.Account, m models.Movement) notify.Event {
	return notify.Event{
		Type:       notify.EventMovementRecorded,
		AccountID:  a.ID().String(),
		MovementID: m.ID().String(),
		Kind:       m.Kind().Label(),
		Amount:     m.Amount().StringFixed(2),
		Balance:    a.Balance().StringFixed(2),
		Timestamp:  m.Timestamp(),
	}
}
