package models

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	// DefaultOwnerName replaces a blank owner name.
	DefaultOwnerName = "Sin nombre"
	// DefaultNationalID replaces a blank owner identifier.
	DefaultNationalID = "00000000X"

	// TimestampLayout is the second-precision layout used for display and exports.
	TimestampLayout = "2006-01-02 15:04:05"
)

// ErrNonPositiveAmount is returned when a movement is built with an amount <= 0.
var ErrNonPositiveAmount = errors.New("movement amount must be positive")

// MovementKind defines the two kinds of ledger movement.
type MovementKind int

const (
	DEPOSIT MovementKind = iota + 1
	WITHDRAWAL
)

// Label returns the upper-case label used by the exporters.
func (k MovementKind) Label() string {
	switch k {
	case DEPOSIT:
		return "INGRESO"
	case WITHDRAWAL:
		return "RETIRADA"
	default:
		return fmt.Sprintf("DESCONOCIDO(%d)", int(k))
	}
}

// String returns the human label used on the console.
func (k MovementKind) String() string {
	switch k {
	case DEPOSIT:
		return "Ingreso"
	case WITHDRAWAL:
		return "Retirada"
	default:
		return "Desconocido"
	}
}

// Valid reports whether k is one of the known kinds.
func (k MovementKind) Valid() bool {
	return k == DEPOSIT || k == WITHDRAWAL
}

// Owner represents the account holder. The zero value is not normalized; use NewOwner.
type Owner struct {
	name       string
	nationalID string
	age        int
}

// NewOwner trims name and identifier, substitutes defaults for blank values and clamps age to >= 0.
func NewOwner(name, nationalID string, age int) Owner {
	name = strings.TrimSpace(name)
	if name == "" {
		name = DefaultOwnerName
	}
	nationalID = strings.TrimSpace(nationalID)
	if nationalID == "" {
		nationalID = DefaultNationalID
	}
	return Owner{name: name, nationalID: nationalID, age: max(age, 0)}
}

func (o Owner) Name() string       { return o.name }
func (o Owner) NationalID() string { return o.nationalID }
func (o Owner) Age() int           { return o.age }

func (o Owner) String() string {
	return fmt.Sprintf("Cliente{nombre='%s', dni='%s', edad=%d}", o.name, o.nationalID, o.age)
}

// Movement is a single immutable deposit or withdrawal.
type Movement struct {
	id        uuid.UUID
	kind      MovementKind
	amount    decimal.Decimal
	timestamp time.Time
}

// NewMovement creates a movement with a fresh id, stamped at "at" truncated to the second.
func NewMovement(kind MovementKind, amount decimal.Decimal, at time.Time) (Movement, error) {
	return RestoreMovement(uuid.New(), kind, amount, at)
}

// RestoreMovement rebuilds a previously recorded movement, keeping its id.
func RestoreMovement(id uuid.UUID, kind MovementKind, amount decimal.Decimal, at time.Time) (Movement, error) {
	if !kind.Valid() {
		return Movement{}, fmt.Errorf("unknown movement kind %d", int(kind))
	}
	if !amount.IsPositive() {
		return Movement{}, fmt.Errorf("%w: %s", ErrNonPositiveAmount, amount)
	}
	return Movement{
		id:        id,
		kind:      kind,
		amount:    amount,
		timestamp: at.Truncate(time.Second),
	}, nil
}

func (m Movement) ID() uuid.UUID           { return m.id }
func (m Movement) Kind() MovementKind      { return m.kind }
func (m Movement) Amount() decimal.Decimal { return m.amount }
func (m Movement) Timestamp() time.Time    { return m.timestamp }

// Signed returns the amount with the sign it contributes to the balance.
func (m Movement) Signed() decimal.Decimal {
	if m.kind == WITHDRAWAL {
		return m.amount.Neg()
	}
	return m.amount
}

func (m Movement) String() string {
	return fmt.Sprintf("[%s] %s -> %s €", m.timestamp.Format(TimestampLayout), m.kind, m.amount.StringFixed(2))
}
