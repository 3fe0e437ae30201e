package usecase

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"github.com/hmendez/stockledger/internal/domain"
)

// SeriesUseCase derives running-balance traces from entry history. The
// computed series is cached keyed by account version, so a cached series
// always corresponds to a real prefix of the account's entry order.
type SeriesUseCase struct {
	accountRepo AccountRepository
	entryRepo   EntryRepository
	cache       Cache
	cacheTTL    time.Duration
	logger      zerolog.Logger
}

// NewSeriesUseCase creates a new SeriesUseCase. cache may be nil to disable
// caching.
func NewSeriesUseCase(
	accountRepo AccountRepository,
	entryRepo EntryRepository,
	cache Cache,
	cacheTTL time.Duration,
	logger zerolog.Logger,
) *SeriesUseCase {
	return &SeriesUseCase{
		accountRepo: accountRepo,
		entryRepo:   entryRepo,
		cache:       cache,
		cacheTTL:    cacheTTL,
		logger:      logger,
	}
}

// GetBalanceHistory returns the account's per-entry running-balance series,
// oldest first.
func (uc *SeriesUseCase) GetBalanceHistory(ctx context.Context, accountID string) ([]domain.SeriesPoint, error) {
	account, err := uc.accountRepo.GetByID(ctx, accountID)
	if err != nil {
		return nil, err
	}

	cacheKey := seriesCacheKey(account)

	if uc.cache != nil {
		if cached, err := uc.cache.Get(ctx, cacheKey); err == nil {
			var points []domain.SeriesPoint
			if err := json.Unmarshal(cached, &points); err == nil {
				return points, nil
			}
		}
	}

	entries, err := uc.entryRepo.GetAllByAccount(ctx, accountID)
	if err != nil {
		return nil, err
	}

	points := domain.BuildSeries(entries)

	if uc.cache != nil {
		if encoded, err := json.Marshal(points); err == nil {
			if err := uc.cache.Set(ctx, cacheKey, encoded, uc.cacheTTL); err != nil {
				uc.logger.Debug().Err(err).Str("account_id", accountID).Msg("series cache write failed")
			}
		}
	}

	return points, nil
}

func seriesCacheKey(account *domain.Account) string {
	// The version changes with every recorded entry, so a stale cache entry
	// can never be served for a newer history.
	return "series:" + account.ID + ":v" + strconv.FormatInt(account.Version, 10)
}
