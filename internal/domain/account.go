package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Account is a named stock pool ("maestro") whose balance is maintained by
// the ledger store. Balance never goes negative. Version counts recorded
// entries and orders them within the account.
type Account struct {
	ID          string
	Name        string
	Balance     decimal.Decimal
	Version     int64
	CreatorID   string
	CreatorName string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// ValidateMovement checks whether applying a movement would leave the
// account with a negative balance. Only outbound movements can fail.
func (a *Account) ValidateMovement(direction Direction, amount decimal.Decimal) error {
	if direction != DirectionOutbound {
		return nil
	}
	if a.Balance.Sub(amount).IsNegative() {
		return ErrInsufficientBalance
	}
	return nil
}

// ApplyMovement returns the balance after applying the movement.
func (a *Account) ApplyMovement(direction Direction, amount decimal.Decimal) decimal.Decimal {
	if direction == DirectionOutbound {
		return a.Balance.Sub(amount)
	}
	return a.Balance.Add(amount)
}
