package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound indicates the requested entity was not found.
	ErrNotFound = errors.New("not found")
	// ErrEmptyCart rejects checkout or materialization of an empty cart.
	ErrEmptyCart = errors.New("cart is empty")
	// ErrUnauthenticated indicates there is no active session.
	ErrUnauthenticated = errors.New("not authenticated")
	// ErrInvalidTransition indicates a checkout step was invoked outside
	// the phase it is valid in, e.g. confirming payment with nothing
	// awaiting confirmation.
	ErrInvalidTransition = errors.New("invalid checkout transition")
)

// StorageError wraps a failed durable write. The underlying transaction
// has been rolled back, so the operation is safe to retry.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage: %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}
