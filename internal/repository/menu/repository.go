package menu

import (
	"context"

	"foodcourt/internal/domain"
)

// Repository reads and maintains the menu catalog. List and GetByItem
// serve the runtime; Upsert is used by seed tooling and the importer.
type Repository interface {
	List(ctx context.Context) ([]domain.MenuItem, error)
	GetByItem(ctx context.Context, item string) (*domain.MenuItem, error)
	Upsert(ctx context.Context, item domain.MenuItem) (*domain.MenuItem, error)
}
