package order

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

func (r *postgresRepo) CreateBatch(ctx context.Context, orders []NewOrder) ([]domain.Order, error) {
	if len(orders) == 0 {
		return nil, errors.New("no orders to create")
	}

	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	const q = `
INSERT INTO orders (username, item, qty, address, payment_mode, payment_status, status)
VALUES ($1, $2, $3, $4, $5, $6, $7)
RETURNING id, created_at
`
	created := make([]domain.Order, 0, len(orders))
	for _, in := range orders {
		o := domain.Order{
			Username:      in.Username,
			Item:          in.Item,
			Quantity:      in.Quantity,
			Address:       in.Address,
			PaymentMode:   in.PaymentMode,
			PaymentStatus: in.PaymentStatus,
			Status:        domain.StatusPreparing,
		}
		if err := tx.QueryRow(ctx, q,
			in.Username, in.Item, in.Quantity, in.Address,
			in.PaymentMode, in.PaymentStatus, domain.StatusPreparing,
		).Scan(&o.ID, &o.CreatedAt); err != nil {
			r.logger.Printf("order repo: create batch username=%s item=%s error=%v", in.Username, in.Item, err)
			return nil, err
		}
		created = append(created, o)
	}

	if err := tx.Commit(ctx); err != nil {
		r.logger.Printf("order repo: commit batch username=%s error=%v", orders[0].Username, err)
		return nil, err
	}
	return created, nil
}

func (r *postgresRepo) ListByUsername(ctx context.Context, username string) ([]domain.Order, error) {
	const q = `
SELECT id, username, item, qty, address, payment_mode, payment_status, status, created_at
FROM orders
WHERE username = $1
ORDER BY id DESC
`
	return r.list(ctx, q, username)
}

func (r *postgresRepo) ListAll(ctx context.Context) ([]domain.Order, error) {
	const q = `
SELECT id, username, item, qty, address, payment_mode, payment_status, status, created_at
FROM orders
ORDER BY id DESC
`
	return r.list(ctx, q)
}

func (r *postgresRepo) list(ctx context.Context, q string, args ...interface{}) ([]domain.Order, error) {
	rows, err := r.pool.Query(ctx, q, args...)
	if err != nil {
		r.logger.Printf("order repo: list error=%v", err)
		return nil, err
	}
	defer rows.Close()

	var result []domain.Order
	for rows.Next() {
		var o domain.Order
		if err := rows.Scan(&o.ID, &o.Username, &o.Item, &o.Quantity, &o.Address,
			&o.PaymentMode, &o.PaymentStatus, &o.Status, &o.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, o)
	}
	if err := rows.Err(); err != nil {
		r.logger.Printf("order repo: list rows error=%v", err)
		return nil, err
	}
	return result, nil
}

func (r *postgresRepo) Stats(ctx context.Context) (Stats, error) {
	const q = `
SELECT
	(SELECT COUNT(*) FROM orders),
	(SELECT COUNT(*) FROM users),
	(SELECT COUNT(*) FROM orders WHERE status = $1),
	(SELECT COUNT(*) FROM orders WHERE status = $2)
`
	var s Stats
	if err := r.pool.QueryRow(ctx, q, domain.StatusPreparing, domain.StatusDelivered).Scan(
		&s.TotalOrders, &s.TotalUsers, &s.Preparing, &s.Delivered,
	); err != nil {
		r.logger.Printf("order repo: stats error=%v", err)
		return Stats{}, err
	}
	return s, nil
}

func (r *postgresRepo) UpdateStatus(ctx context.Context, id int64, status domain.FulfillmentStatus) error {
	const q = `
UPDATE orders
SET status = $1
WHERE id = $2
`
	cmd, err := r.pool.Exec(ctx, q, status, id)
	if err != nil {
		r.logger.Printf("order repo: update status id=%d error=%v", id, err)
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
