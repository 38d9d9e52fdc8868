package cart

import (
	"context"
	"errors"

	"gardenshop/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type postgresRepo struct {
	pool *pgxpool.Pool
}

func NewPostgres(pool *pgxpool.Pool) Repository {
	return &postgresRepo{pool: pool}
}

func (r *postgresRepo) Load(ctx context.Context, userID string) ([]domain.CartLine, error) {
	const q = `
SELECT lines
FROM carts
WHERE user_id = $1
`
	var raw []byte
	if err := r.pool.QueryRow(ctx, q, userID).Scan(&raw); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return decodeLines(raw), nil
}

func (r *postgresRepo) Save(ctx context.Context, userID string, lines []domain.CartLine) error {
	raw, err := encodeLines(lines)
	if err != nil {
		return err
	}
	const q = `
INSERT INTO carts (user_id, lines, updated_at)
VALUES ($1, $2, now())
ON CONFLICT (user_id)
DO UPDATE SET lines = EXCLUDED.lines, updated_at = now()
`
	_, err = r.pool.Exec(ctx, q, userID, raw)
	return err
}

func (r *postgresRepo) Clear(ctx context.Context, userID string) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM carts WHERE user_id = $1`, userID)
	return err
}
