package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/hmendez/stockledger/internal/domain"
	"github.com/hmendez/stockledger/internal/usecase"
)

const entryColumns = `id, account_id, actor_id, direction, amount,
	account_sequence, account_previous_balance, account_current_balance, created_at`

// EntryRepository implements usecase.EntryRepository.
type EntryRepository struct {
	pool *pgxpool.Pool
}

// NewEntryRepository creates a new EntryRepository.
func NewEntryRepository(pool *pgxpool.Pool) *EntryRepository {
	return &EntryRepository{pool: pool}
}

// Create appends an entry inside tx. Entries are append-only; there is no
// update or delete path.
func (r *EntryRepository) Create(ctx context.Context, tx usecase.Transaction, entry *domain.Entry) error {
	pgxTx := tx.(*Tx).PgxTx()

	_, err := pgxTx.Exec(ctx,
		`INSERT INTO entries (id, account_id, actor_id, direction, amount,
		   account_sequence, account_previous_balance, account_current_balance, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		entry.ID,
		entry.AccountID,
		entry.ActorID,
		string(entry.Direction),
		decimalToNumeric(entry.Amount),
		entry.AccountSequence,
		decimalToNumeric(entry.AccountPreviousBalance),
		decimalToNumeric(entry.AccountCurrentBalance),
		entry.CreatedAt,
	)

	return err
}

// GetByAccount retrieves an account's entries, newest first.
func (r *EntryRepository) GetByAccount(ctx context.Context, accountID string, limit, offset int) ([]*domain.Entry, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+entryColumns+` FROM entries
		 WHERE account_id = $1
		 ORDER BY account_sequence DESC
		 LIMIT $2 OFFSET $3`,
		accountID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectEntries(rows)
}

// GetAllByAccount retrieves an account's full history in store order,
// oldest first, for series reconstruction.
func (r *EntryRepository) GetAllByAccount(ctx context.Context, accountID string) ([]*domain.Entry, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+entryColumns+` FROM entries
		 WHERE account_id = $1
		 ORDER BY account_sequence ASC`,
		accountID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectEntries(rows)
}

// List retrieves entries across all accounts, newest first.
func (r *EntryRepository) List(ctx context.Context, limit, offset int) ([]*domain.Entry, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+entryColumns+` FROM entries
		 ORDER BY created_at DESC, id DESC
		 LIMIT $1 OFFSET $2`,
		limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectEntries(rows)
}

func collectEntries(rows pgx.Rows) ([]*domain.Entry, error) {
	var entries []*domain.Entry
	for rows.Next() {
		var (
			entry     domain.Entry
			direction string
			amount    pgtype.Numeric
			previous  pgtype.Numeric
			current   pgtype.Numeric
			createdAt pgtype.Timestamptz
		)

		err := rows.Scan(
			&entry.ID,
			&entry.AccountID,
			&entry.ActorID,
			&direction,
			&amount,
			&entry.AccountSequence,
			&previous,
			&current,
			&createdAt,
		)
		if err != nil {
			return nil, err
		}

		entry.Direction = domain.Direction(direction)
		entry.Amount = numericToDecimal(amount)
		entry.AccountPreviousBalance = numericToDecimal(previous)
		entry.AccountCurrentBalance = numericToDecimal(current)
		entry.CreatedAt = createdAt.Time

		entries = append(entries, &entry)
	}

	return entries, rows.Err()
}
