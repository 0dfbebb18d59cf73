// Package ledger holds the single-account ledger: one owner, an append-only
// list of movements and a balance that is always derived from that list.
package ledger

import (
	"errors"
	"fmt"
	"time"

	"github.com/chris/account-ledger/pkg/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ErrInvalidHistory is returned by Restore when a movement list could not have been produced by an Account.
var ErrInvalidHistory = errors.New("invalid movement history")

// Account is the ledger for one owner. It is not safe for concurrent use.
type Account struct {
	id        uuid.UUID
	owner     models.Owner
	movements []models.Movement
	now       func() time.Time
}

// Option configures an Account.
type Option func(*Account)

// WithClock overrides the clock used to stamp new movements.
func WithClock(now func() time.Time) Option {
	return func(a *Account) {
		a.now = now
	}
}

// New opens an empty account for owner.
func New(owner models.Owner, opts ...Option) *Account {
	a := &Account{id: uuid.New(), owner: owner, now: time.Now}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Restore rebuilds an account from a persisted movement history.
// The running balance must never go negative.
func Restore(id uuid.UUID, owner models.Owner, movements []models.Movement, opts ...Option) (*Account, error) {
	a := New(owner, opts...)
	a.id = id
	running := decimal.Zero
	for i, m := range movements {
		if !m.Kind().Valid() || !m.Amount().IsPositive() {
			return nil, fmt.Errorf("%w: movement %d is not a valid deposit or withdrawal", ErrInvalidHistory, i)
		}
		running = running.Add(m.Signed())
		if running.IsNegative() {
			return nil, fmt.Errorf("%w: balance goes negative at movement %d", ErrInvalidHistory, i)
		}
	}
	a.movements = append([]models.Movement(nil), movements...)
	return a, nil
}

func (a *Account) ID() uuid.UUID       { return a.id }
func (a *Account) Owner() models.Owner { return a.owner }

// Deposit appends a deposit. Non-positive amounts are ignored.
func (a *Account) Deposit(amount decimal.Decimal) {
	if !amount.IsPositive() {
		return
	}
	a.append(models.DEPOSIT, amount)
}

// Withdraw appends a withdrawal when 0 < amount <= Balance() and reports whether it did.
func (a *Account) Withdraw(amount decimal.Decimal) bool {
	if !amount.IsPositive() || amount.GreaterThan(a.Balance()) {
		return false
	}
	a.append(models.WITHDRAWAL, amount)
	return true
}

func (a *Account) append(kind models.MovementKind, amount decimal.Decimal) {
	m, err := models.NewMovement(kind, amount, a.now())
	if err != nil {
		// amount was checked by the caller
		panic(err)
	}
	a.movements = append(a.movements, m)
}

// Balance recomputes the balance from the movement log.
func (a *Account) Balance() decimal.Decimal {
	balance := decimal.Zero
	for _, m := range a.movements {
		balance = balance.Add(m.Signed())
	}
	return balance
}

// Movements returns a copy of the movement log in chronological order.
func (a *Account) Movements() []models.Movement {
	out := make([]models.Movement, len(a.movements))
	copy(out, a.movements)
	return out
}

// Len returns the number of recorded movements.
func (a *Account) Len() int { return len(a.movements) }

func (a *Account) String() string {
	return fmt.Sprintf("Cuenta{titular=%s, saldo=%s€}", a.owner, a.Balance().StringFixed(2))
}
