package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Direction is the side of a stock movement.
type Direction string

const (
	// DirectionInbound increases the account balance.
	DirectionInbound Direction = "Inbound"
	// DirectionOutbound decreases the account balance.
	DirectionOutbound Direction = "Outbound"
)

// Valid reports whether d is a known direction.
func (d Direction) Valid() bool {
	return d == DirectionInbound || d == DirectionOutbound
}

// Entry is a single immutable movement ("transacción") against an account.
// AccountSequence is assigned by the store and is strictly increasing per
// account. AccountName and ActorName are enrichment fields filled in by the
// directory; they may be empty.
type Entry struct {
	CreatedAt              time.Time
	ID                     string
	AccountID              string
	AccountName            string
	ActorID                string
	ActorName              string
	Direction              Direction
	Amount                 decimal.Decimal
	AccountSequence        int64
	AccountPreviousBalance decimal.Decimal
	AccountCurrentBalance  decimal.Decimal
}

// SignedAmount is the entry's contribution to the account balance:
// +Amount for inbound, -Amount for outbound.
func (e *Entry) SignedAmount() decimal.Decimal {
	if e.Direction == DirectionOutbound {
		return e.Amount.Neg()
	}
	return e.Amount
}
