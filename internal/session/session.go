package session

import (
	"sync"
	"time"

	"foodcourt/internal/domain"
)

// CheckoutPhase tracks where a session is in its current checkout
// attempt. Only AwaitingPayment survives between requests; the other
// phases are passed through within a single request.
type CheckoutPhase int

const (
	PhaseIdle CheckoutPhase = iota
	PhaseAwaitingDetails
	PhaseAwaitingPayment
	PhaseCompleting
)

func (p CheckoutPhase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseAwaitingDetails:
		return "awaiting_details"
	case PhaseAwaitingPayment:
		return "awaiting_payment"
	case PhaseCompleting:
		return "completing"
	default:
		return "unknown"
	}
}

// State is the mutable per-session data guarded by the session lock:
// the cart, the checkout context captured for the current attempt, and
// the checkout phase.
type State struct {
	Cart     domain.Cart
	Checkout *domain.CheckoutContext
	Phase    CheckoutPhase
}

// Session binds an authenticated user to their ephemeral state. The
// identity fields are immutable; State is only reachable through Do,
// which serializes concurrent requests from the same user (two browser
// tabs must not interleave cart mutations with checkout reads).
type Session struct {
	id        string
	token     string
	username  string
	role      domain.Role
	expiresAt time.Time

	mu    sync.Mutex
	state State
}

// ID returns the stable session identifier (not the secret token).
func (s *Session) ID() string { return s.id }

// Token returns the bearer token that keys this session in the store.
func (s *Session) Token() string { return s.token }

// Username returns the owning user's name.
func (s *Session) Username() string { return s.username }

// Role returns the owning user's role.
func (s *Session) Role() domain.Role { return s.role }

// Do runs fn with exclusive access to the session state. The lock is
// held for the full duration of fn, including any durable writes fn
// performs, so a checkout cannot race a concurrent cart mutation.
func (s *Session) Do(fn func(st *State) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(&s.state)
}

func (s *Session) expired(now time.Time) bool {
	return now.After(s.expiresAt)
}
