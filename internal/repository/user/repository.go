package user

import (
	"context"

	"foodcourt/internal/domain"
)

// Repository fetches provisioned accounts. Account creation happens in
// seed tooling only, so the runtime surface is read-only.
type Repository interface {
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
}
