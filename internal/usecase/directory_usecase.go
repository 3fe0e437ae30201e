package usecase

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/hmendez/stockledger/internal/domain"
)

// DirectoryUseCase serves the management views: newest-first listings of
// accounts and entries enriched with display names. Enrichment is best
// effort; a missing actor or account name never suppresses a record.
type DirectoryUseCase struct {
	accountRepo AccountRepository
	entryRepo   EntryRepository
	actorRepo   ActorRepository
	logger      zerolog.Logger
}

// NewDirectoryUseCase creates a new DirectoryUseCase.
func NewDirectoryUseCase(
	accountRepo AccountRepository,
	entryRepo EntryRepository,
	actorRepo ActorRepository,
	logger zerolog.Logger,
) *DirectoryUseCase {
	return &DirectoryUseCase{
		accountRepo: accountRepo,
		entryRepo:   entryRepo,
		actorRepo:   actorRepo,
		logger:      logger,
	}
}

// ListAccountsInput represents input for listing accounts.
type ListAccountsInput struct {
	Limit  int
	Offset int
}

// ListAccounts lists accounts by creation time descending, enriched with
// the creator's display name.
func (uc *DirectoryUseCase) ListAccounts(ctx context.Context, input ListAccountsInput) ([]*domain.Account, error) {
	accounts, err := uc.accountRepo.List(ctx, clampLimit(input.Limit), input.Offset)
	if err != nil {
		return nil, err
	}

	actorIDs := make([]string, 0, len(accounts))
	for _, a := range accounts {
		if a.CreatorID != "" {
			actorIDs = append(actorIDs, a.CreatorID)
		}
	}

	actors := uc.resolveActors(ctx, actorIDs)
	for _, a := range accounts {
		if actor, ok := actors[a.CreatorID]; ok {
			a.CreatorName = actor.Name
		}
	}

	return accounts, nil
}

// ListEntriesForAccount lists an account's entries by creation time
// descending, enriched with actor and account display names.
func (uc *DirectoryUseCase) ListEntriesForAccount(ctx context.Context, input ListEntriesInput) ([]*domain.Entry, error) {
	limit := clampLimit(input.Limit)

	var (
		entries []*domain.Entry
		err     error
	)
	if input.AccountID == "" {
		entries, err = uc.entryRepo.List(ctx, limit, input.Offset)
	} else {
		entries, err = uc.entryRepo.GetByAccount(ctx, input.AccountID, limit, input.Offset)
	}
	if err != nil {
		return nil, err
	}

	uc.enrichEntries(ctx, entries)

	return entries, nil
}

func (uc *DirectoryUseCase) enrichEntries(ctx context.Context, entries []*domain.Entry) {
	actorIDs := make([]string, 0, len(entries))
	accountIDs := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.ActorID != "" {
			actorIDs = append(actorIDs, e.ActorID)
		}
		accountIDs = append(accountIDs, e.AccountID)
	}

	actors := uc.resolveActors(ctx, actorIDs)

	accountNames := make(map[string]string)
	if len(accountIDs) > 0 {
		accounts, err := uc.accountRepo.GetByIDs(ctx, dedupe(accountIDs))
		if err != nil {
			uc.logger.Warn().Err(err).Msg("account name enrichment failed, listing without names")
		} else {
			for _, a := range accounts {
				accountNames[a.ID] = a.Name
			}
		}
	}

	for _, e := range entries {
		if actor, ok := actors[e.ActorID]; ok {
			e.ActorName = actor.Name
		}
		e.AccountName = accountNames[e.AccountID]
	}
}

func (uc *DirectoryUseCase) resolveActors(ctx context.Context, ids []string) map[string]*domain.Actor {
	if len(ids) == 0 {
		return nil
	}

	actors, err := uc.actorRepo.GetByIDs(ctx, dedupe(ids))
	if err != nil {
		uc.logger.Warn().Err(err).Msg("actor name enrichment failed, listing without names")
		return nil
	}

	return actors
}

func dedupe(ids []string) []string {
	seen := make(map[string]bool, len(ids))

	var out []string
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}

	return out
}
