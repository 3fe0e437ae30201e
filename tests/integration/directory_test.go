package integration

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/hmendez/stockledger/internal/adapter/repository/postgres"
	"github.com/hmendez/stockledger/internal/domain"
	"github.com/hmendez/stockledger/internal/usecase"
	"github.com/hmendez/stockledger/tests/testutil"
)

func TestDirectoryListings(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	ctx := context.Background()

	testDB := testutil.NewTestDB(t)
	defer testDB.Cleanup()

	pool := testDB.Pool
	accountRepo := postgres.NewAccountRepository(pool)
	entryRepo := postgres.NewEntryRepository(pool)
	actorRepo := postgres.NewActorRepository(pool)

	ledgerUC, _, _ := newLedgerUseCase(testDB)
	directoryUC := usecase.NewDirectoryUseCase(accountRepo, entryRepo, actorRepo, zerolog.Nop())

	testDB.TruncateAll(ctx)

	user := testDB.CreateTestUser(ctx, "Hugo", "hugo@example.com")

	account, err := ledgerUC.CreateAccount(ctx, usecase.CreateAccountInput{
		Name:           "Main warehouse",
		InitialBalance: decimal.NewFromInt(100),
		CreatorID:      user.ID,
	})
	if err != nil {
		t.Fatalf("CreateAccount failed: %v", err)
	}

	if _, _, err := ledgerUC.RecordEntry(ctx, usecase.RecordEntryInput{
		AccountID: account.ID,
		Direction: domain.DirectionOutbound,
		Amount:    decimal.NewFromInt(10),
		ActorID:   user.ID,
	}); err != nil {
		t.Fatalf("RecordEntry failed: %v", err)
	}

	t.Run("accounts enriched with creator name", func(t *testing.T) {
		accounts, err := directoryUC.ListAccounts(ctx, usecase.ListAccountsInput{Limit: 10})
		if err != nil {
			t.Fatalf("ListAccounts failed: %v", err)
		}
		if len(accounts) != 1 {
			t.Fatalf("expected 1 account, got %d", len(accounts))
		}
		if accounts[0].CreatorName != "Hugo" {
			t.Errorf("expected creator name Hugo, got %q", accounts[0].CreatorName)
		}
	})

	t.Run("entries enriched with actor and account names", func(t *testing.T) {
		entries, err := directoryUC.ListEntriesForAccount(ctx, usecase.ListEntriesInput{
			AccountID: account.ID,
			Limit:     10,
		})
		if err != nil {
			t.Fatalf("ListEntriesForAccount failed: %v", err)
		}
		if len(entries) != 1 {
			t.Fatalf("expected 1 entry, got %d", len(entries))
		}
		if entries[0].ActorName != "Hugo" {
			t.Errorf("expected actor name Hugo, got %q", entries[0].ActorName)
		}
		if entries[0].AccountName != "Main warehouse" {
			t.Errorf("expected account name, got %q", entries[0].AccountName)
		}
	})

	t.Run("missing actor does not suppress records", func(t *testing.T) {
		orphan := testDB.CreateTestAccount(ctx, "Orphan stock", decimal.Zero)

		if _, _, err := ledgerUC.RecordEntry(ctx, usecase.RecordEntryInput{
			AccountID: orphan.ID,
			Direction: domain.DirectionInbound,
			Amount:    decimal.NewFromInt(1),
			ActorID:   testutil.GenerateID(),
		}); err != nil {
			t.Fatalf("RecordEntry failed: %v", err)
		}

		entries, err := directoryUC.ListEntriesForAccount(ctx, usecase.ListEntriesInput{
			AccountID: orphan.ID,
			Limit:     10,
		})
		if err != nil {
			t.Fatalf("ListEntriesForAccount failed: %v", err)
		}
		if len(entries) != 1 {
			t.Fatalf("expected 1 entry, got %d", len(entries))
		}
		if entries[0].ActorName != "" {
			t.Errorf("expected empty actor name for unknown actor, got %q", entries[0].ActorName)
		}
	})
}
