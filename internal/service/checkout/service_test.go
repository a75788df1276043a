package checkout

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"foodcourt/internal/domain"
	orderrepo "foodcourt/internal/repository/order"
	"foodcourt/internal/session"
)

// stubOrderRepo records batches and can fail the whole batch, mimicking
// a rolled-back transaction: on failure nothing is persisted.
type stubOrderRepo struct {
	nextID  int64
	batches [][]orderrepo.NewOrder
	orders  []domain.Order
	err     error
}

func (s *stubOrderRepo) CreateBatch(_ context.Context, batch []orderrepo.NewOrder) ([]domain.Order, error) {
	if s.err != nil {
		return nil, s.err
	}
	s.batches = append(s.batches, batch)
	created := make([]domain.Order, 0, len(batch))
	for _, in := range batch {
		s.nextID++
		created = append(created, domain.Order{
			ID:            s.nextID,
			Username:      in.Username,
			Item:          in.Item,
			Quantity:      in.Quantity,
			Address:       in.Address,
			PaymentMode:   in.PaymentMode,
			PaymentStatus: in.PaymentStatus,
			Status:        domain.StatusPreparing,
		})
	}
	s.orders = append(s.orders, created...)
	return created, nil
}

func newSession(t *testing.T, lines ...domain.CartLine) *session.Session {
	t.Helper()
	sess, err := session.NewStore(time.Hour).Create("u1", domain.RoleCustomer)
	require.NoError(t, err)
	require.NoError(t, sess.Do(func(st *session.State) error {
		st.Cart = lines
		return nil
	}))
	return sess
}

func cartOf(t *testing.T, sess *session.Session) domain.Cart {
	t.Helper()
	var cart domain.Cart
	require.NoError(t, sess.Do(func(st *session.State) error {
		cart = st.Cart.Clone()
		return nil
	}))
	return cart
}

func phaseOf(t *testing.T, sess *session.Session) session.CheckoutPhase {
	t.Helper()
	var phase session.CheckoutPhase
	require.NoError(t, sess.Do(func(st *session.State) error {
		phase = st.Phase
		return nil
	}))
	return phase
}

func TestSubmitDetailsEmptyCart(t *testing.T) {
	svc := New(&stubOrderRepo{}, nil)
	sess := newSession(t)

	for _, mode := range []domain.PaymentMode{domain.PaymentCashOnDelivery, domain.PaymentOnline} {
		_, err := svc.SubmitDetails(context.Background(), sess, "221B", mode)
		assert.ErrorIs(t, err, domain.ErrEmptyCart, "mode %s", mode)
	}
}

func TestSubmitDetailsValidation(t *testing.T) {
	svc := New(&stubOrderRepo{}, nil)
	sess := newSession(t, domain.CartLine{Item: "Pizza", UnitPriceCents: 250, Quantity: 1})

	_, err := svc.SubmitDetails(context.Background(), sess, "   ", domain.PaymentCashOnDelivery)
	require.EqualError(t, err, "address required")

	_, err = svc.SubmitDetails(context.Background(), sess, "221B", domain.PaymentMode("barter"))
	require.EqualError(t, err, "unknown payment mode")
}

func TestCashOnDeliveryMaterializesImmediately(t *testing.T) {
	repo := &stubOrderRepo{}
	svc := New(repo, nil)
	sess := newSession(t,
		domain.CartLine{Item: "Pizza", UnitPriceCents: 250, Quantity: 1},
		domain.CartLine{Item: "Sandwich", UnitPriceCents: 90, Quantity: 2},
	)

	res, err := svc.SubmitDetails(context.Background(), sess, "221B", domain.PaymentCashOnDelivery)
	require.NoError(t, err)
	assert.False(t, res.AwaitingPayment)
	require.Equal(t, []int64{1, 2}, res.OrderIDs)

	require.Len(t, repo.batches, 1)
	batch := repo.batches[0]
	require.Len(t, batch, 2)
	assert.Equal(t, "Pizza", batch[0].Item)
	assert.Equal(t, "Sandwich", batch[1].Item)
	for _, o := range batch {
		assert.Equal(t, "u1", o.Username)
		assert.Equal(t, "221B", o.Address)
		assert.Equal(t, domain.PaymentPending, o.PaymentStatus)
	}

	assert.Empty(t, cartOf(t, sess), "cart must be cleared after materialization")
	assert.Equal(t, session.PhaseIdle, phaseOf(t, sess), "session must return to idle after completion")
}

func TestSecondCheckoutAfterSuccessFails(t *testing.T) {
	svc := New(&stubOrderRepo{}, nil)
	sess := newSession(t, domain.CartLine{Item: "Pizza", UnitPriceCents: 250, Quantity: 1})

	_, err := svc.SubmitDetails(context.Background(), sess, "221B", domain.PaymentCashOnDelivery)
	require.NoError(t, err)

	_, err = svc.SubmitDetails(context.Background(), sess, "221B", domain.PaymentCashOnDelivery)
	assert.ErrorIs(t, err, domain.ErrEmptyCart, "stale re-submission must not double-materialize")
}

func TestOnlinePaymentRequiresConfirmation(t *testing.T) {
	repo := &stubOrderRepo{}
	svc := New(repo, nil)
	sess := newSession(t, domain.CartLine{Item: "Pasta", UnitPriceCents: 180, Quantity: 1})

	res, err := svc.SubmitDetails(context.Background(), sess, "221B", domain.PaymentOnline)
	require.NoError(t, err)
	assert.True(t, res.AwaitingPayment)
	assert.Empty(t, res.OrderIDs)
	assert.Empty(t, repo.batches, "no order may exist before confirmation")
	assert.NotEmpty(t, cartOf(t, sess), "cart survives until confirmation")

	confirmed, err := svc.ConfirmPayment(context.Background(), sess)
	require.NoError(t, err)
	require.Equal(t, []int64{1}, confirmed.OrderIDs)
	require.Len(t, repo.batches, 1)
	assert.Equal(t, domain.PaymentPaid, repo.batches[0][0].PaymentStatus)
	assert.Empty(t, cartOf(t, sess))
	assert.Equal(t, session.PhaseIdle, phaseOf(t, sess))
}

func TestConfirmPaymentOutsideAwaitingPayment(t *testing.T) {
	svc := New(&stubOrderRepo{}, nil)
	sess := newSession(t, domain.CartLine{Item: "Pizza", UnitPriceCents: 250, Quantity: 1})

	_, err := svc.ConfirmPayment(context.Background(), sess)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
}

func TestConfirmPaymentTwice(t *testing.T) {
	svc := New(&stubOrderRepo{}, nil)
	sess := newSession(t, domain.CartLine{Item: "Pizza", UnitPriceCents: 250, Quantity: 1})

	_, err := svc.SubmitDetails(context.Background(), sess, "221B", domain.PaymentOnline)
	require.NoError(t, err)
	_, err = svc.ConfirmPayment(context.Background(), sess)
	require.NoError(t, err)

	_, err = svc.ConfirmPayment(context.Background(), sess)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
}

func TestMaterializeFailureIsRetryable(t *testing.T) {
	repo := &stubOrderRepo{err: errors.New("connection reset")}
	svc := New(repo, nil)
	sess := newSession(t, domain.CartLine{Item: "Pizza", UnitPriceCents: 250, Quantity: 1})

	_, err := svc.SubmitDetails(context.Background(), sess, "221B", domain.PaymentCashOnDelivery)
	var storageErr *domain.StorageError
	require.ErrorAs(t, err, &storageErr)
	assert.Len(t, repo.orders, 0, "all-or-nothing: no orders after a failed batch")
	assert.NotEmpty(t, cartOf(t, sess), "cart must survive a failed materialization")

	repo.err = nil
	res, err := svc.SubmitDetails(context.Background(), sess, "221B", domain.PaymentCashOnDelivery)
	require.NoError(t, err)
	assert.Equal(t, []int64{1}, res.OrderIDs)
}

func TestOnlineConfirmFailureKeepsAwaitingPayment(t *testing.T) {
	repo := &stubOrderRepo{err: errors.New("tx aborted")}
	svc := New(repo, nil)
	sess := newSession(t, domain.CartLine{Item: "Pizza", UnitPriceCents: 250, Quantity: 1})

	_, err := svc.SubmitDetails(context.Background(), sess, "221B", domain.PaymentOnline)
	require.NoError(t, err)

	_, err = svc.ConfirmPayment(context.Background(), sess)
	var storageErr *domain.StorageError
	require.ErrorAs(t, err, &storageErr)
	assert.Equal(t, session.PhaseAwaitingPayment, phaseOf(t, sess))

	// The session stayed in AwaitingPayment, so a retry succeeds.
	repo.err = nil
	res, err := svc.ConfirmPayment(context.Background(), sess)
	require.NoError(t, err)
	assert.Equal(t, []int64{1}, res.OrderIDs)
}

func TestPaymentStatusMappingForAnyCartSize(t *testing.T) {
	for _, mode := range []domain.PaymentMode{domain.PaymentCashOnDelivery, domain.PaymentOnline} {
		for n := 1; n <= 4; n++ {
			repo := &stubOrderRepo{}
			svc := New(repo, nil)
			lines := make([]domain.CartLine, 0, n)
			for i := 0; i < n; i++ {
				lines = append(lines, domain.CartLine{
					Item:           fmt.Sprintf("Item-%d", i),
					UnitPriceCents: 100,
					Quantity:       1,
				})
			}
			sess := newSession(t, lines...)

			res, err := svc.SubmitDetails(context.Background(), sess, "221B", mode)
			require.NoError(t, err)
			if mode == domain.PaymentOnline {
				res, err = svc.ConfirmPayment(context.Background(), sess)
				require.NoError(t, err)
			}
			require.Len(t, res.OrderIDs, n)

			want := domain.PaymentStatusFor(mode)
			for _, o := range repo.orders {
				assert.Equal(t, want, o.PaymentStatus, "mode %s size %d", mode, n)
				assert.Equal(t, domain.StatusPreparing, o.Status)
			}
		}
	}
}
