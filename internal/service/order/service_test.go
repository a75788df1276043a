package order

import (
	"context"
	"errors"
	"testing"

	"foodcourt/internal/domain"
	orderrepo "foodcourt/internal/repository/order"
)

type stubRepo struct {
	byUser     []domain.Order
	byUserErr  error
	all        []domain.Order
	allErr     error
	stats      orderrepo.Stats
	statsErr   error
	updateErr  error
	lastID     int64
	lastStatus domain.FulfillmentStatus
	lastUser   string
}

func (s *stubRepo) ListByUsername(_ context.Context, username string) ([]domain.Order, error) {
	s.lastUser = username
	return s.byUser, s.byUserErr
}

func (s *stubRepo) ListAll(_ context.Context) ([]domain.Order, error) {
	return s.all, s.allErr
}

func (s *stubRepo) Stats(_ context.Context) (orderrepo.Stats, error) {
	return s.stats, s.statsErr
}

func (s *stubRepo) UpdateStatus(_ context.Context, id int64, status domain.FulfillmentStatus) error {
	s.lastID = id
	s.lastStatus = status
	return s.updateErr
}

func TestListByOwner(t *testing.T) {
	expected := []domain.Order{{ID: 2, Username: "u1"}, {ID: 1, Username: "u1"}}
	repo := &stubRepo{byUser: expected}
	svc := &Service{repo: repo}

	got, err := svc.ListByOwner(context.Background(), "u1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if repo.lastUser != "u1" {
		t.Fatalf("unexpected username %q", repo.lastUser)
	}
	if len(got) != 2 || got[0].ID != 2 {
		t.Fatalf("unexpected orders %+v", got)
	}
}

func TestAdminDashboard(t *testing.T) {
	repo := &stubRepo{
		all:   []domain.Order{{ID: 3}, {ID: 2}, {ID: 1}},
		stats: orderrepo.Stats{TotalOrders: 3, TotalUsers: 2, Preparing: 2, Delivered: 1},
	}
	svc := &Service{repo: repo}

	dash, err := svc.AdminDashboard(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(dash.Orders) != 3 {
		t.Fatalf("unexpected orders %+v", dash.Orders)
	}
	if dash.Stats.Preparing != 2 || dash.Stats.Delivered != 1 {
		t.Fatalf("unexpected stats %+v", dash.Stats)
	}
}

func TestAdminDashboardRepoErrors(t *testing.T) {
	svc := &Service{repo: &stubRepo{allErr: errors.New("boom")}}
	if _, err := svc.AdminDashboard(context.Background()); err == nil {
		t.Fatal("expected list error")
	}

	svc = &Service{repo: &stubRepo{statsErr: errors.New("boom")}}
	if _, err := svc.AdminDashboard(context.Background()); err == nil {
		t.Fatal("expected stats error")
	}
}

func TestUpdateStatus(t *testing.T) {
	repo := &stubRepo{}
	svc := New(repo, nil)

	if err := svc.UpdateStatus(context.Background(), 7, "delivered"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if repo.lastID != 7 || repo.lastStatus != domain.StatusDelivered {
		t.Fatalf("unexpected update args id=%d status=%s", repo.lastID, repo.lastStatus)
	}
}

func TestUpdateStatusBackwardTransitionAllowed(t *testing.T) {
	repo := &stubRepo{}
	svc := New(repo, nil)

	if err := svc.UpdateStatus(context.Background(), 7, "Preparing"); err != nil {
		t.Fatalf("backward transition must be permitted: %v", err)
	}
	if repo.lastStatus != domain.StatusPreparing {
		t.Fatalf("unexpected status %s", repo.lastStatus)
	}
}

func TestUpdateStatusUnknownValue(t *testing.T) {
	repo := &stubRepo{}
	svc := New(repo, nil)

	if err := svc.UpdateStatus(context.Background(), 7, "Vaporized"); err == nil {
		t.Fatal("expected parse error")
	}
	if repo.lastID != 0 {
		t.Fatal("repo must not be called for an unparseable status")
	}
}

func TestUpdateStatusNotFound(t *testing.T) {
	repo := &stubRepo{updateErr: domain.ErrNotFound}
	svc := New(repo, nil)

	err := svc.UpdateStatus(context.Background(), 404, "Delivered")
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}
