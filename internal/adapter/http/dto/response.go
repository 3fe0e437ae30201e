package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/hmendez/stockledger/internal/domain"
)

// AccountResponse represents an account in API responses.
type AccountResponse struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Balance     decimal.Decimal `json:"balance"`
	Version     int64           `json:"version"`
	CreatorID   string          `json:"creator_id,omitempty"`
	CreatorName string          `json:"creator_name,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// AccountFromDomain converts domain account to response.
func AccountFromDomain(a *domain.Account) *AccountResponse {
	return &AccountResponse{
		ID:          a.ID,
		Name:        a.Name,
		Balance:     a.Balance,
		Version:     a.Version,
		CreatorID:   a.CreatorID,
		CreatorName: a.CreatorName,
		CreatedAt:   a.CreatedAt,
		UpdatedAt:   a.UpdatedAt,
	}
}

// AccountsFromDomain converts domain accounts to responses.
func AccountsFromDomain(accounts []*domain.Account) []*AccountResponse {
	result := make([]*AccountResponse, len(accounts))
	for i, a := range accounts {
		result[i] = AccountFromDomain(a)
	}
	return result
}

// ListAccountsResponse represents a page of accounts.
type ListAccountsResponse struct {
	Accounts []*AccountResponse `json:"accounts"`
	Total    int64              `json:"total"`
}

// EntryResponse represents an entry in API responses.
type EntryResponse struct {
	ID                     string          `json:"id"`
	AccountID              string          `json:"account_id"`
	AccountName            string          `json:"account_name,omitempty"`
	ActorID                string          `json:"actor_id,omitempty"`
	ActorName              string          `json:"actor_name,omitempty"`
	Direction              string          `json:"direction"`
	Amount                 decimal.Decimal `json:"amount"`
	AccountSequence        int64           `json:"account_sequence"`
	AccountPreviousBalance decimal.Decimal `json:"account_previous_balance"`
	AccountCurrentBalance  decimal.Decimal `json:"account_current_balance"`
	CreatedAt              time.Time       `json:"created_at"`
}

// EntryFromDomain converts domain entry to response.
func EntryFromDomain(e *domain.Entry) *EntryResponse {
	return &EntryResponse{
		ID:                     e.ID,
		AccountID:              e.AccountID,
		AccountName:            e.AccountName,
		ActorID:                e.ActorID,
		ActorName:              e.ActorName,
		Direction:              string(e.Direction),
		Amount:                 e.Amount,
		AccountSequence:        e.AccountSequence,
		AccountPreviousBalance: e.AccountPreviousBalance,
		AccountCurrentBalance:  e.AccountCurrentBalance,
		CreatedAt:              e.CreatedAt,
	}
}

// EntriesFromDomain converts domain entries to responses.
func EntriesFromDomain(entries []*domain.Entry) []*EntryResponse {
	result := make([]*EntryResponse, len(entries))
	for i, e := range entries {
		result[i] = EntryFromDomain(e)
	}
	return result
}

// ListEntriesResponse represents a page of entries.
type ListEntriesResponse struct {
	Entries []*EntryResponse `json:"entries"`
	Total   int64            `json:"total"`
}

// RecordEntryResponse represents the outcome of a recorded movement: the
// appended entry and the account state it produced.
type RecordEntryResponse struct {
	Entry   *EntryResponse   `json:"entry"`
	Account *AccountResponse `json:"account"`
}

// SeriesPointResponse represents one point of a balance series.
type SeriesPointResponse struct {
	Timestamp time.Time       `json:"timestamp"`
	Balance   decimal.Decimal `json:"balance"`
}

// SeriesFromDomain converts series points to responses.
func SeriesFromDomain(points []domain.SeriesPoint) []SeriesPointResponse {
	result := make([]SeriesPointResponse, len(points))
	for i, p := range points {
		result[i] = SeriesPointResponse{Timestamp: p.Timestamp, Balance: p.Balance}
	}
	return result
}

// BalanceSeriesResponse represents an account's running-balance series.
type BalanceSeriesResponse struct {
	AccountID string                `json:"account_id"`
	Points    []SeriesPointResponse `json:"points"`
}

// ErrorResponse represents an error in API responses.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
