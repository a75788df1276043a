package order

import (
	"context"
	"io"
	"log"

	"foodcourt/internal/domain"
	orderrepo "foodcourt/internal/repository/order"
)

// Service governs the post-creation order lifecycle: listings for
// owners, the admin dashboard, and fulfillment status updates.
type Service struct {
	repo   repo
	logger *log.Logger
}

type repo interface {
	ListByUsername(ctx context.Context, username string) ([]domain.Order, error)
	ListAll(ctx context.Context) ([]domain.Order, error)
	Stats(ctx context.Context) (orderrepo.Stats, error)
	UpdateStatus(ctx context.Context, id int64, status domain.FulfillmentStatus) error
}

func New(repo repo, logger *log.Logger) *Service {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Service{repo: repo, logger: logger}
}

// Dashboard is the admin view: every order newest-first plus the
// aggregate counters.
type Dashboard struct {
	Orders []domain.Order  `json:"orders"`
	Stats  orderrepo.Stats `json:"stats"`
}

// ListByOwner returns the owner's orders, newest-first.
func (s *Service) ListByOwner(ctx context.Context, username string) ([]domain.Order, error) {
	return s.repo.ListByUsername(ctx, username)
}

// AdminDashboard returns all orders newest-first with aggregate counts.
func (s *Service) AdminDashboard(ctx context.Context) (*Dashboard, error) {
	orders, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	stats, err := s.repo.Stats(ctx)
	if err != nil {
		return nil, err
	}
	return &Dashboard{Orders: orders, Stats: stats}, nil
}

// UpdateStatus overwrites an order's fulfillment status. The new value
// must parse into the closed status set, but any transition between
// valid statuses is permitted, including backward ones.
func (s *Service) UpdateStatus(ctx context.Context, id int64, status string) error {
	parsed, err := domain.ParseFulfillmentStatus(status)
	if err != nil {
		return err
	}
	if err := s.repo.UpdateStatus(ctx, id, parsed); err != nil {
		return err
	}
	s.logger.Printf("order %d status set to %s", id, parsed)
	return nil
}
