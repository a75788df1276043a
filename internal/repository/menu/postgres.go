package menu

import (
	"context"
	"errors"
	"io"
	"log"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"foodcourt/internal/domain"
)

type postgresRepo struct {
	pool   *pgxpool.Pool
	logger *log.Logger
}

func NewPostgres(pool *pgxpool.Pool, logger *log.Logger) Repository {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &postgresRepo{pool: pool, logger: logger}
}

func (r *postgresRepo) List(ctx context.Context) ([]domain.MenuItem, error) {
	const q = `
SELECT id, item, price_cents, COALESCE(image, '')
FROM menu_items
ORDER BY id ASC
`
	rows, err := r.pool.Query(ctx, q)
	if err != nil {
		r.logger.Printf("menu repo: list error=%v", err)
		return nil, err
	}
	defer rows.Close()

	var items []domain.MenuItem
	for rows.Next() {
		var m domain.MenuItem
		if err := rows.Scan(&m.ID, &m.Item, &m.PriceCents, &m.Image); err != nil {
			return nil, err
		}
		items = append(items, m)
	}
	if err := rows.Err(); err != nil {
		r.logger.Printf("menu repo: list rows error=%v", err)
		return nil, err
	}
	return items, nil
}

func (r *postgresRepo) GetByItem(ctx context.Context, item string) (*domain.MenuItem, error) {
	const q = `
SELECT id, item, price_cents, COALESCE(image, '')
FROM menu_items
WHERE item = $1
`
	var m domain.MenuItem
	if err := r.pool.QueryRow(ctx, q, item).Scan(&m.ID, &m.Item, &m.PriceCents, &m.Image); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		r.logger.Printf("menu repo: get item=%s error=%v", item, err)
		return nil, err
	}
	return &m, nil
}

func (r *postgresRepo) Upsert(ctx context.Context, item domain.MenuItem) (*domain.MenuItem, error) {
	const q = `
INSERT INTO menu_items (item, price_cents, image)
VALUES ($1, $2, $3)
ON CONFLICT (item) DO UPDATE
SET price_cents = EXCLUDED.price_cents,
    image = EXCLUDED.image
RETURNING id, item, price_cents, COALESCE(image, '')
`
	var m domain.MenuItem
	if err := r.pool.QueryRow(ctx, q, item.Item, item.PriceCents, item.Image).Scan(&m.ID, &m.Item, &m.PriceCents, &m.Image); err != nil {
		r.logger.Printf("menu repo: upsert item=%s error=%v", item.Item, err)
		return nil, err
	}
	return &m, nil
}
