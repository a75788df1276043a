package order

import (
	"context"

	"foodcourt/internal/domain"
)

// NewOrder carries the fields needed to persist one order row at
// materialization time. The payment status is computed by the caller
// from the payment mode; fulfillment status always starts at Preparing.
type NewOrder struct {
	Username      string
	Item          string
	Quantity      int
	Address       string
	PaymentMode   domain.PaymentMode
	PaymentStatus domain.PaymentStatus
}

// Stats aggregates the admin dashboard counters.
type Stats struct {
	TotalOrders int `json:"totalOrders"`
	TotalUsers  int `json:"totalUsers"`
	Preparing   int `json:"preparing"`
	Delivered   int `json:"delivered"`
}

// Repository persists orders. CreateBatch writes all rows of one
// checkout inside a single transaction so an observer never sees a
// partial multi-line order.
type Repository interface {
	CreateBatch(ctx context.Context, orders []NewOrder) ([]domain.Order, error)
	ListByUsername(ctx context.Context, username string) ([]domain.Order, error)
	ListAll(ctx context.Context) ([]domain.Order, error)
	Stats(ctx context.Context) (Stats, error)
	UpdateStatus(ctx context.Context, id int64, status domain.FulfillmentStatus) error
}
