package checkout

import (
	"context"
	"errors"
	"io"
	"log"
	"strings"

	"foodcourt/internal/domain"
	orderrepo "foodcourt/internal/repository/order"
	"foodcourt/internal/session"
)

// Service drives a session's checkout attempt: it captures delivery
// details, branches on the payment mode, and materializes the cart into
// durable orders. The whole attempt runs under the session lock, so the
// empty-cart guard, the order writes, and the cart clear cannot
// interleave with a concurrent request from the same session.
type Service struct {
	orders orderRepo
	logger *log.Logger
}

type orderRepo interface {
	CreateBatch(ctx context.Context, orders []orderrepo.NewOrder) ([]domain.Order, error)
}

func New(orders orderRepo, logger *log.Logger) *Service {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Service{orders: orders, logger: logger}
}

// Result is the outcome of a checkout step: either the created order
// IDs, or a flag telling the client a payment confirmation is still
// required before any order exists.
type Result struct {
	AwaitingPayment bool    `json:"awaitingPayment,omitempty"`
	OrderIDs        []int64 `json:"orderIds,omitempty"`
}

// SubmitDetails validates the cart, records the delivery address and
// payment mode, and completes the attempt. Cash on delivery
// materializes immediately; online payment parks the session until
// ConfirmPayment. The cart-empty guard runs on every entry, not just at
// add time, since a competing request may have cleared the cart.
func (s *Service) SubmitDetails(ctx context.Context, sess *session.Session, address string, mode domain.PaymentMode) (*Result, error) {
	address = strings.TrimSpace(address)
	if address == "" {
		return nil, errors.New("address required")
	}
	if mode != domain.PaymentCashOnDelivery && mode != domain.PaymentOnline {
		return nil, errors.New("unknown payment mode")
	}

	var res Result
	err := sess.Do(func(st *session.State) error {
		if st.Cart.IsEmpty() {
			return domain.ErrEmptyCart
		}
		st.Phase = session.PhaseAwaitingDetails
		st.Checkout = &domain.CheckoutContext{Address: address, PaymentMode: mode}

		if mode == domain.PaymentOnline {
			st.Phase = session.PhaseAwaitingPayment
			res.AwaitingPayment = true
			return nil
		}

		ids, err := s.materialize(ctx, st, sess.Username())
		if err != nil {
			return err
		}
		res.OrderIDs = ids
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &res, nil
}

// ConfirmPayment completes an online checkout. It is valid only while
// the session is awaiting payment; anything else is a client-contract
// violation and is logged as such. No payment verification happens
// here, the confirmation itself is the trigger.
func (s *Service) ConfirmPayment(ctx context.Context, sess *session.Session) (*Result, error) {
	var res Result
	err := sess.Do(func(st *session.State) error {
		if st.Phase != session.PhaseAwaitingPayment || st.Checkout == nil {
			s.logger.Printf("checkout: confirm payment in phase %s user=%s", st.Phase, sess.Username())
			return domain.ErrInvalidTransition
		}
		if st.Cart.IsEmpty() {
			return domain.ErrEmptyCart
		}
		ids, err := s.materialize(ctx, st, sess.Username())
		if err != nil {
			return err
		}
		res.OrderIDs = ids
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &res, nil
}

// materialize converts the cart plus checkout context into one durable
// order per line, then clears both so a refresh cannot re-submit the
// same cart. Callers hold the session lock. On failure the session is
// restored to its pre-materialization phase and keeps its cart, making
// the attempt retryable.
func (s *Service) materialize(ctx context.Context, st *session.State, owner string) ([]int64, error) {
	prev := st.Phase
	st.Phase = session.PhaseCompleting

	batch := make([]orderrepo.NewOrder, 0, len(st.Cart))
	for _, line := range st.Cart {
		batch = append(batch, orderrepo.NewOrder{
			Username:      owner,
			Item:          line.Item,
			Quantity:      line.Quantity,
			Address:       st.Checkout.Address,
			PaymentMode:   st.Checkout.PaymentMode,
			PaymentStatus: domain.PaymentStatusFor(st.Checkout.PaymentMode),
		})
	}

	created, err := s.orders.CreateBatch(ctx, batch)
	if err != nil {
		st.Phase = prev
		return nil, &domain.StorageError{Op: "create orders", Err: err}
	}

	ids := make([]int64, 0, len(created))
	for _, o := range created {
		ids = append(ids, o.ID)
	}

	st.Cart = nil
	st.Checkout = nil
	st.Phase = session.PhaseIdle
	return ids, nil
}
