package menu

import (
	"context"

	"foodcourt/internal/domain"
	menurepo "foodcourt/internal/repository/menu"
)

// Service exposes the read-only menu catalog.
type Service struct {
	repo menurepo.Repository
}

func New(repo menurepo.Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) List(ctx context.Context) ([]domain.MenuItem, error) {
	return s.repo.List(ctx)
}
