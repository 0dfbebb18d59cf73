package mapping

import (
	"testing"
	"time"

	"github.com/chris/account-ledger/pkg/export"
	"github.com/chris/account-ledger/pkg/ledger"
	"github.com/chris/account-ledger/pkg/models"
	"github.com/chris/account-ledger/pkg/notify"
	"github.com/chris/account-ledger/pkg/storage"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleAccount() *ledger.Account {
	next := time.Date(2025, 1, 2, 3, 4, 5, 0, time.Local)
	clock := func() time.Time {
		t := next
		next = next.Add(time.Minute)
		return t
	}
	a := ledger.New(models.NewOwner("Ana Pérez", "12345678A", 30), ledger.WithClock(clock))
	a.Deposit(decimal.RequireFromString("100"))
	a.Withdraw(decimal.RequireFromString("40"))
	a.Deposit(decimal.RequireFromString("0.125"))
	return a
}

func TestToStatement(t *testing.T) {
	s := ToStatement(sampleAccount())

	assert.Equal(t, export.Holder{Name: "Ana Pérez", NationalID: "12345678A", Age: 30}, s.Holder)
	require.Len(t, s.Rows, 3)
	assert.Equal(t, export.Row{Label: "INGRESO", Amount: "100.00", Timestamp: "2025-01-02 03:04:05"}, s.Rows[0])
	assert.Equal(t, export.Row{Label: "RETIRADA", Amount: "40.00", Timestamp: "2025-01-02 03:05:05"}, s.Rows[1])
	assert.Equal(t, "0.13", s.Rows[2].Amount)
}

func TestSnapshotRoundTrip(t *testing.T) {
	orig := sampleAccount()

	restored, err := FromSnapshot(ToSnapshot(orig))

	require.NoError(t, err)
	assert.Equal(t, orig.ID(), restored.ID())
	assert.Equal(t, orig.Owner(), restored.Owner())
	assert.True(t, orig.Balance().Equal(restored.Balance()))
	want, got := orig.Movements(), restored.Movements()
	require.Len(t, got, len(want))
	for i := range want {
		assert.Equal(t, want[i].ID(), got[i].ID())
		assert.Equal(t, want[i].Kind(), got[i].Kind())
		assert.True(t, want[i].Amount().Equal(got[i].Amount()))
		assert.True(t, want[i].Timestamp().Equal(got[i].Timestamp()))
	}
}

func TestFromSnapshotCorrupt(t *testing.T) {
	base := ToSnapshot(sampleAccount())

	cases := map[string]func(s *storage.Snapshot){
		"Version":     func(s *storage.Snapshot) { s.Version = 99 },
		"Account ID":  func(s *storage.Snapshot) { s.AccountID = "nope" },
		"Movement ID": func(s *storage.Snapshot) { s.Movements[0].ID = "" },
		"Amount":      func(s *storage.Snapshot) { s.Movements[0].Amount = "1,5" },
		"Zero Amount": func(s *storage.Snapshot) { s.Movements[0].Amount = "0" },
		"Kind":        func(s *storage.Snapshot) { s.Movements[0].Kind = 7 },
		"Overdrawn":   func(s *storage.Snapshot) { s.Movements[1].Amount = "1000" },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			s := base
			s.Movements = append([]storage.MovementRecord(nil), base.Movements...)
			mutate(&s)

			_, err := FromSnapshot(s)

			assert.ErrorIs(t, err, storage.ErrCorrupt)
		})
	}
}

func TestToEvent(t *testing.T) {
	a := sampleAccount()
	m := a.Movements()[1]

	e := ToEvent(a, m)

	assert.Equal(t, notify.EventMovementRecorded, e.Type)
	assert.Equal(t, a.ID().String(), e.AccountID)
	assert.Equal(t, m.ID().String(), e.MovementID)
	assert.Equal(t, "RETIRADA", e.Kind)
	assert.Equal(t, "40.00", e.Amount)
	assert.Equal(t, "60.13", e.Balance)
}
