package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"github.com/hmendez/stockledger/internal/domain"
	"github.com/hmendez/stockledger/internal/infrastructure/metrics"
)

// LedgerUseCase owns the balance invariant. It is the only path through
// which balances change: every movement is recorded as an entry and applied
// to the account balance inside a single transaction, with the account row
// locked for the duration of the check-and-update.
type LedgerUseCase struct {
	txManager   TransactionManager
	accountRepo AccountRepository
	entryRepo   EntryRepository
	idGen       IDGenerator
	retrier     Retrier
	metrics     *metrics.Metrics
}

// NewLedgerUseCase creates a new LedgerUseCase.
func NewLedgerUseCase(
	txManager TransactionManager,
	accountRepo AccountRepository,
	entryRepo EntryRepository,
	idGen IDGenerator,
	retrier Retrier,
	m *metrics.Metrics,
) *LedgerUseCase {
	return &LedgerUseCase{
		txManager:   txManager,
		accountRepo: accountRepo,
		entryRepo:   entryRepo,
		idGen:       idGen,
		retrier:     retrier,
		metrics:     m,
	}
}

// CreateAccountInput represents input for creating an account.
type CreateAccountInput struct {
	Name           string
	InitialBalance decimal.Decimal
	CreatorID      string
}

// CreateAccount creates a new account with an explicit opening balance.
// Each call creates a distinct account; callers that need exactly-once
// creation must dedupe upstream.
func (uc *LedgerUseCase) CreateAccount(ctx context.Context, input CreateAccountInput) (*domain.Account, error) {
	if err := domain.ValidateAccountName(input.Name); err != nil {
		return nil, err
	}
	if err := domain.ValidateInitialBalance(input.InitialBalance); err != nil {
		return nil, err
	}

	now := time.Now().UTC()

	account := &domain.Account{
		ID:        uc.idGen.Generate(),
		Name:      input.Name,
		Balance:   input.InitialBalance,
		Version:   0,
		CreatorID: input.CreatorID,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := uc.accountRepo.Create(ctx, account); err != nil {
		return nil, err
	}

	uc.metrics.AccountsCreated.Inc()
	uc.metrics.AccountBalance.WithLabelValues(account.ID).Set(balanceGauge(account.Balance))

	return account, nil
}

// RecordEntryInput represents input for recording a movement.
type RecordEntryInput struct {
	AccountID string
	Direction domain.Direction
	Amount    decimal.Decimal
	ActorID   string
}

// RecordEntry atomically appends an entry and applies its effect to the
// account balance. The account row is locked while the new balance is
// checked and written, so concurrent movements against the same account
// serialize and cannot jointly overdraw it. A failed call leaves no trace.
func (uc *LedgerUseCase) RecordEntry(ctx context.Context, input RecordEntryInput) (*domain.Account, *domain.Entry, error) {
	if err := domain.ValidateDirection(input.Direction); err != nil {
		return nil, nil, err
	}
	if err := domain.ValidateAmount(input.Amount); err != nil {
		return nil, nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, DefaultTransactionTimeout)
	defer cancel()

	start := time.Now()

	var (
		account *domain.Account
		entry   *domain.Entry
	)

	err := uc.retrier.Retry(ctx, func() error {
		var opErr error
		account, entry, opErr = uc.recordEntryOnce(ctx, input)
		return opErr
	})
	if err != nil {
		uc.metrics.EntryErrors.WithLabelValues(errorReason(err)).Inc()
		return nil, nil, err
	}

	uc.metrics.EntriesRecorded.WithLabelValues(string(entry.Direction)).Inc()
	uc.metrics.EntryDuration.Observe(time.Since(start).Seconds())
	uc.metrics.AccountBalance.WithLabelValues(account.ID).Set(balanceGauge(account.Balance))

	return account, entry, nil
}

func (uc *LedgerUseCase) recordEntryOnce(ctx context.Context, input RecordEntryInput) (*domain.Account, *domain.Entry, error) {
	tx, err := uc.txManager.Begin(ctx)
	if err != nil {
		return nil, nil, err
	}
	defer tx.Rollback(ctx)

	account, err := uc.accountRepo.GetByIDForUpdate(ctx, tx, input.AccountID)
	if err != nil {
		return nil, nil, err
	}

	if err := account.ValidateMovement(input.Direction, input.Amount); err != nil {
		return nil, nil, err
	}

	now := time.Now().UTC()
	newBalance := account.ApplyMovement(input.Direction, input.Amount)

	entry := &domain.Entry{
		ID:                     uc.idGen.Generate(),
		AccountID:              account.ID,
		ActorID:                input.ActorID,
		Direction:              input.Direction,
		Amount:                 input.Amount,
		AccountSequence:        account.Version + 1,
		AccountPreviousBalance: account.Balance,
		AccountCurrentBalance:  newBalance,
		CreatedAt:              now,
	}

	if err := uc.entryRepo.Create(ctx, tx, entry); err != nil {
		return nil, nil, err
	}

	if err := uc.accountRepo.UpdateBalance(ctx, tx, account.ID, newBalance, entry.AccountSequence, now); err != nil {
		return nil, nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, nil, err
	}

	account.Balance = newBalance
	account.Version = entry.AccountSequence
	account.UpdatedAt = now

	return account, entry, nil
}

// GetAccount retrieves an account by ID.
func (uc *LedgerUseCase) GetAccount(ctx context.Context, id string) (*domain.Account, error) {
	return uc.accountRepo.GetByID(ctx, id)
}

// ListEntriesInput represents input for listing entries, newest first.
// An empty AccountID means unrestricted listing.
type ListEntriesInput struct {
	AccountID string
	Limit     int
	Offset    int
}

// ListEntries lists entries newest first.
func (uc *LedgerUseCase) ListEntries(ctx context.Context, input ListEntriesInput) ([]*domain.Entry, error) {
	limit := clampLimit(input.Limit)

	if input.AccountID == "" {
		return uc.entryRepo.List(ctx, limit, input.Offset)
	}

	return uc.entryRepo.GetByAccount(ctx, input.AccountID, limit, input.Offset)
}

func balanceGauge(balance decimal.Decimal) float64 {
	f, _ := balance.Float64()
	return f
}

func errorReason(err error) string {
	switch {
	case errors.Is(err, domain.ErrAccountNotFound):
		return "not_found"
	case errors.Is(err, domain.ErrInsufficientBalance):
		return "insufficient_balance"
	case errors.Is(err, domain.ErrConcurrencyConflict):
		return "concurrency_conflict"
	default:
		return "storage"
	}
}
