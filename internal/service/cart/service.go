package cart

import (
	"context"
	"errors"
	"strings"

	"foodcourt/internal/domain"
	"foodcourt/internal/session"
)

// Service applies add/merge operations to a session's cart. All cart
// reads and writes run under the session lock, so concurrent requests
// from the same user cannot lose updates.
type Service struct {
	menuRepo menuRepo
}

type menuRepo interface {
	GetByItem(ctx context.Context, item string) (*domain.MenuItem, error)
}

func New(menuRepo menuRepo) *Service {
	return &Service{menuRepo: menuRepo}
}

// AddResult reports whether the add merged into an existing line or
// created a new one, plus a snapshot of the cart after the mutation.
type AddResult struct {
	Merged     bool        `json:"merged"`
	Cart       domain.Cart `json:"cart"`
	TotalCents int64       `json:"totalCents"`
}

// Add puts quantity units of item into the session's cart at the given
// unit price. A line already holding the item absorbs the quantity and
// keeps its originally recorded price; otherwise a new line is appended
// preserving insertion order.
func (s *Service) Add(sess *session.Session, item string, unitPriceCents int64, quantity int) (*AddResult, error) {
	item = strings.TrimSpace(item)
	if item == "" {
		return nil, errors.New("item required")
	}
	if quantity <= 0 {
		return nil, errors.New("quantity must be positive")
	}
	if unitPriceCents < 0 {
		return nil, errors.New("price must not be negative")
	}

	var res AddResult
	err := sess.Do(func(st *session.State) error {
		for i := range st.Cart {
			if st.Cart[i].Item == item {
				st.Cart[i].Quantity += quantity
				res.Merged = true
				break
			}
		}
		if !res.Merged {
			st.Cart = append(st.Cart, domain.CartLine{
				Item:           item,
				UnitPriceCents: unitPriceCents,
				Quantity:       quantity,
			})
		}
		res.Cart = st.Cart.Clone()
		res.TotalCents = st.Cart.TotalCents()
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &res, nil
}

// AddFromMenu resolves the item's price from the menu catalog before
// adding, so clients cannot dictate prices.
func (s *Service) AddFromMenu(ctx context.Context, sess *session.Session, item string, quantity int) (*AddResult, error) {
	if s.menuRepo == nil {
		return nil, errors.New("menu repository unavailable")
	}
	m, err := s.menuRepo.GetByItem(ctx, strings.TrimSpace(item))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, errors.New("item not on menu")
		}
		return nil, err
	}
	return s.Add(sess, m.Item, m.PriceCents, quantity)
}

// Get returns a snapshot of the session's cart and its total.
func (s *Service) Get(sess *session.Session) (domain.Cart, int64) {
	var cart domain.Cart
	var total int64
	_ = sess.Do(func(st *session.State) error {
		cart = st.Cart.Clone()
		total = st.Cart.TotalCents()
		return nil
	})
	return cart, total
}
