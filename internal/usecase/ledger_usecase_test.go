package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/hmendez/stockledger/internal/domain"
	"github.com/hmendez/stockledger/internal/infrastructure/metrics"
	"github.com/hmendez/stockledger/internal/usecase"
	"github.com/hmendez/stockledger/internal/usecase/mocks"
)

type ledgerFixture struct {
	accountRepo *mocks.MockAccountRepository
	entryRepo   *mocks.MockEntryRepository
	txManager   *mocks.MockTransactionManager
	tx          *mocks.MockTransaction
	retrier     *mocks.MockRetrier
	idGen       *mocks.MockIDGenerator
	uc          *usecase.LedgerUseCase
}

func newLedgerFixture(t *testing.T) *ledgerFixture {
	t.Helper()

	ctrl := gomock.NewController(t)

	f := &ledgerFixture{
		accountRepo: mocks.NewMockAccountRepository(ctrl),
		entryRepo:   mocks.NewMockEntryRepository(ctrl),
		txManager:   mocks.NewMockTransactionManager(ctrl),
		tx:          mocks.NewMockTransaction(ctrl),
		retrier:     mocks.NewMockRetrier(ctrl),
		idGen:       mocks.NewMockIDGenerator(ctrl),
	}

	f.uc = usecase.NewLedgerUseCase(
		f.txManager,
		f.accountRepo,
		f.entryRepo,
		f.idGen,
		f.retrier,
		metrics.New(prometheus.NewRegistry()),
	)

	return f
}

// passthroughRetry makes the retrier execute the operation once.
func (f *ledgerFixture) passthroughRetry() {
	f.retrier.EXPECT().Retry(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, operation func() error) error {
			return operation()
		},
	)
}

func TestLedgerUseCase_CreateAccount(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		f := newLedgerFixture(t)
		f.idGen.EXPECT().Generate().Return("acc-1")

		var created *domain.Account
		f.accountRepo.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, account *domain.Account) error {
				created = account
				return nil
			},
		)

		account, err := f.uc.CreateAccount(context.Background(), usecase.CreateAccountInput{
			Name:           "Harina 000",
			InitialBalance: decimal.NewFromInt(100),
			CreatorID:      "user-1",
		})

		require.NoError(t, err)
		require.NotNil(t, created)
		assert.Equal(t, "acc-1", account.ID)
		assert.True(t, account.Balance.Equal(decimal.NewFromInt(100)))
		assert.EqualValues(t, 0, account.Version)
		assert.Equal(t, "user-1", account.CreatorID)
	})

	t.Run("rejects empty name", func(t *testing.T) {
		f := newLedgerFixture(t)

		_, err := f.uc.CreateAccount(context.Background(), usecase.CreateAccountInput{
			Name:           "   ",
			InitialBalance: decimal.Zero,
			CreatorID:      "user-1",
		})

		require.ErrorIs(t, err, domain.ErrInvalidAccountName)
	})

	t.Run("rejects negative initial balance", func(t *testing.T) {
		f := newLedgerFixture(t)

		_, err := f.uc.CreateAccount(context.Background(), usecase.CreateAccountInput{
			Name:           "Harina 000",
			InitialBalance: decimal.NewFromInt(-10),
			CreatorID:      "user-1",
		})

		require.ErrorIs(t, err, domain.ErrInvalidInitialBalance)
	})

	t.Run("propagates storage error", func(t *testing.T) {
		f := newLedgerFixture(t)
		f.idGen.EXPECT().Generate().Return("acc-1")

		storageErr := errors.New("connection reset")
		f.accountRepo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(storageErr)

		_, err := f.uc.CreateAccount(context.Background(), usecase.CreateAccountInput{
			Name:           "Harina 000",
			InitialBalance: decimal.Zero,
			CreatorID:      "user-1",
		})

		require.ErrorIs(t, err, storageErr)
	})
}

func TestLedgerUseCase_RecordEntry(t *testing.T) {
	t.Run("inbound movement", func(t *testing.T) {
		f := newLedgerFixture(t)
		f.passthroughRetry()
		f.idGen.EXPECT().Generate().Return("ent-1")

		f.txManager.EXPECT().Begin(gomock.Any()).Return(f.tx, nil)
		f.tx.EXPECT().Commit(gomock.Any()).Return(nil)
		f.tx.EXPECT().Rollback(gomock.Any()).Return(nil).AnyTimes()

		f.accountRepo.EXPECT().GetByIDForUpdate(gomock.Any(), f.tx, "acc-1").Return(&domain.Account{
			ID:      "acc-1",
			Name:    "Harina 000",
			Balance: decimal.NewFromInt(100),
			Version: 3,
		}, nil)

		var recorded *domain.Entry
		f.entryRepo.EXPECT().Create(gomock.Any(), f.tx, gomock.Any()).DoAndReturn(
			func(_ context.Context, _ usecase.Transaction, entry *domain.Entry) error {
				recorded = entry
				return nil
			},
		)

		f.accountRepo.EXPECT().UpdateBalance(gomock.Any(), f.tx, "acc-1", decimal.NewFromInt(150), int64(4), gomock.Any()).Return(nil)

		account, entry, err := f.uc.RecordEntry(context.Background(), usecase.RecordEntryInput{
			AccountID: "acc-1",
			Direction: domain.DirectionInbound,
			Amount:    decimal.NewFromInt(50),
			ActorID:   "user-1",
		})

		require.NoError(t, err)
		require.NotNil(t, recorded)
		assert.Equal(t, "ent-1", entry.ID)
		assert.EqualValues(t, 4, entry.AccountSequence)
		assert.True(t, entry.AccountPreviousBalance.Equal(decimal.NewFromInt(100)))
		assert.True(t, entry.AccountCurrentBalance.Equal(decimal.NewFromInt(150)))
		assert.True(t, account.Balance.Equal(decimal.NewFromInt(150)))
		assert.EqualValues(t, 4, account.Version)
	})

	t.Run("overdraft rejected with no writes", func(t *testing.T) {
		f := newLedgerFixture(t)
		f.passthroughRetry()
		f.idGen.EXPECT().Generate().Return("ent-1").AnyTimes()

		f.txManager.EXPECT().Begin(gomock.Any()).Return(f.tx, nil)
		f.tx.EXPECT().Rollback(gomock.Any()).Return(nil)

		f.accountRepo.EXPECT().GetByIDForUpdate(gomock.Any(), f.tx, "acc-1").Return(&domain.Account{
			ID:      "acc-1",
			Balance: decimal.NewFromInt(10),
		}, nil)

		_, _, err := f.uc.RecordEntry(context.Background(), usecase.RecordEntryInput{
			AccountID: "acc-1",
			Direction: domain.DirectionOutbound,
			Amount:    decimal.NewFromInt(15),
			ActorID:   "user-1",
		})

		require.ErrorIs(t, err, domain.ErrInsufficientBalance)
	})

	t.Run("unknown account", func(t *testing.T) {
		f := newLedgerFixture(t)
		f.passthroughRetry()

		f.txManager.EXPECT().Begin(gomock.Any()).Return(f.tx, nil)
		f.tx.EXPECT().Rollback(gomock.Any()).Return(nil)
		f.accountRepo.EXPECT().GetByIDForUpdate(gomock.Any(), f.tx, "missing").Return(nil, domain.ErrAccountNotFound)

		_, _, err := f.uc.RecordEntry(context.Background(), usecase.RecordEntryInput{
			AccountID: "missing",
			Direction: domain.DirectionInbound,
			Amount:    decimal.NewFromInt(5),
			ActorID:   "user-1",
		})

		require.ErrorIs(t, err, domain.ErrAccountNotFound)
	})

	t.Run("zero and negative amounts rejected before any IO", func(t *testing.T) {
		for _, amount := range []decimal.Decimal{decimal.Zero, decimal.NewFromInt(-5)} {
			f := newLedgerFixture(t)

			_, _, err := f.uc.RecordEntry(context.Background(), usecase.RecordEntryInput{
				AccountID: "acc-1",
				Direction: domain.DirectionInbound,
				Amount:    amount,
				ActorID:   "user-1",
			})

			require.ErrorIs(t, err, domain.ErrInvalidAmount)
		}
	})

	t.Run("invalid direction rejected before any IO", func(t *testing.T) {
		f := newLedgerFixture(t)

		_, _, err := f.uc.RecordEntry(context.Background(), usecase.RecordEntryInput{
			AccountID: "acc-1",
			Direction: domain.Direction("Sideways"),
			Amount:    decimal.NewFromInt(5),
			ActorID:   "user-1",
		})

		require.ErrorIs(t, err, domain.ErrInvalidDirection)
	})

	t.Run("commit failure surfaces to the caller", func(t *testing.T) {
		f := newLedgerFixture(t)
		f.passthroughRetry()
		f.idGen.EXPECT().Generate().Return("ent-1")

		commitErr := errors.New("connection lost during commit")

		f.txManager.EXPECT().Begin(gomock.Any()).Return(f.tx, nil)
		f.tx.EXPECT().Commit(gomock.Any()).Return(commitErr)
		f.tx.EXPECT().Rollback(gomock.Any()).Return(nil)

		f.accountRepo.EXPECT().GetByIDForUpdate(gomock.Any(), f.tx, "acc-1").Return(&domain.Account{
			ID:      "acc-1",
			Balance: decimal.NewFromInt(100),
		}, nil)
		f.entryRepo.EXPECT().Create(gomock.Any(), f.tx, gomock.Any()).Return(nil)
		f.accountRepo.EXPECT().UpdateBalance(gomock.Any(), f.tx, "acc-1", gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)

		account, entry, err := f.uc.RecordEntry(context.Background(), usecase.RecordEntryInput{
			AccountID: "acc-1",
			Direction: domain.DirectionOutbound,
			Amount:    decimal.NewFromInt(30),
			ActorID:   "user-1",
		})

		require.ErrorIs(t, err, commitErr)
		assert.Nil(t, account)
		assert.Nil(t, entry)
	})

	t.Run("lost race surfaces as concurrency conflict", func(t *testing.T) {
		f := newLedgerFixture(t)
		f.retrier.EXPECT().Retry(gomock.Any(), gomock.Any()).Return(domain.ErrConcurrencyConflict)

		_, _, err := f.uc.RecordEntry(context.Background(), usecase.RecordEntryInput{
			AccountID: "acc-1",
			Direction: domain.DirectionOutbound,
			Amount:    decimal.NewFromInt(30),
			ActorID:   "user-1",
		})

		require.ErrorIs(t, err, domain.ErrConcurrencyConflict)
	})
}

func TestLedgerUseCase_GetAccount(t *testing.T) {
	f := newLedgerFixture(t)
	f.accountRepo.EXPECT().GetByID(gomock.Any(), "acc-1").Return(&domain.Account{ID: "acc-1"}, nil)

	account, err := f.uc.GetAccount(context.Background(), "acc-1")

	require.NoError(t, err)
	assert.Equal(t, "acc-1", account.ID)
}

func TestLedgerUseCase_ListEntries(t *testing.T) {
	t.Run("scoped to an account", func(t *testing.T) {
		f := newLedgerFixture(t)
		f.entryRepo.EXPECT().GetByAccount(gomock.Any(), "acc-1", 20, 0).Return([]*domain.Entry{{ID: "ent-1"}}, nil)

		entries, err := f.uc.ListEntries(context.Background(), usecase.ListEntriesInput{AccountID: "acc-1"})

		require.NoError(t, err)
		assert.Len(t, entries, 1)
	})

	t.Run("unrestricted with clamped limit", func(t *testing.T) {
		f := newLedgerFixture(t)
		f.entryRepo.EXPECT().List(gomock.Any(), 100, 10).Return(nil, nil)

		_, err := f.uc.ListEntries(context.Background(), usecase.ListEntriesInput{Limit: 5000, Offset: 10})

		require.NoError(t, err)
	})
}
