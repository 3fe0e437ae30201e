package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/hmendez/stockledger/internal/domain"
)

// ActorRepository implements usecase.ActorRepository against the users
// table, which is owned by the surrounding application's identity layer.
// The ledger only ever reads it.
type ActorRepository struct {
	pool *pgxpool.Pool
}

// NewActorRepository creates a new ActorRepository.
func NewActorRepository(pool *pgxpool.Pool) *ActorRepository {
	return &ActorRepository{pool: pool}
}

// GetByIDs retrieves actors by IDs. Unknown IDs are absent from the
// returned map; that is not an error.
func (r *ActorRepository) GetByIDs(ctx context.Context, ids []string) (map[string]*domain.Actor, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, name, email, created_at FROM users WHERE id = ANY($1)`, ids)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	actors := make(map[string]*domain.Actor)
	for rows.Next() {
		var (
			actor     domain.Actor
			createdAt pgtype.Timestamptz
		)

		if err := rows.Scan(&actor.ID, &actor.Name, &actor.Email, &createdAt); err != nil {
			return nil, err
		}

		actor.CreatedAt = createdAt.Time
		actors[actor.ID] = &actor
	}

	return actors, rows.Err()
}
