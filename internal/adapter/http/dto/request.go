package dto

import (
	"github.com/shopspring/decimal"

	"github.com/hmendez/stockledger/internal/domain"
	"github.com/hmendez/stockledger/internal/usecase"
)

// CreateAccountRequest represents a request to create an account.
type CreateAccountRequest struct {
	Name           string          `json:"name"`
	InitialBalance decimal.Decimal `json:"initial_balance"`
	CreatorID      string          `json:"creator_id"`
}

// ToUseCaseInput converts to use case input.
func (r *CreateAccountRequest) ToUseCaseInput() usecase.CreateAccountInput {
	return usecase.CreateAccountInput{
		Name:           r.Name,
		InitialBalance: r.InitialBalance,
		CreatorID:      r.CreatorID,
	}
}

// RecordEntryRequest represents a request to record a movement against an
// account. The account ID comes from the URL, not the body.
type RecordEntryRequest struct {
	Direction string          `json:"direction"`
	Amount    decimal.Decimal `json:"amount"`
	ActorID   string          `json:"actor_id"`
}

// ToUseCaseInput converts to use case input.
func (r *RecordEntryRequest) ToUseCaseInput(accountID string) usecase.RecordEntryInput {
	return usecase.RecordEntryInput{
		AccountID: accountID,
		Direction: domain.Direction(r.Direction),
		Amount:    r.Amount,
		ActorID:   r.ActorID,
	}
}
