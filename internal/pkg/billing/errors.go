package billing

import (
	"errors"
	"fmt"
)

var (
	// ErrPaymentDeclined is the expected business outcome of a rejected
	// charge. It is surfaced verbatim and never retried automatically.
	ErrPaymentDeclined = errors.New("payment declined")

	// ErrInvalidState marks an illegal lifecycle transition, e.g. canceling
	// an already canceled subscription.
	ErrInvalidState = errors.New("invalid subscription state for this operation")

	// ErrNotFound means the given subscription id does not match the
	// tenant's current record.
	ErrNotFound = errors.New("subscription not found")

	// ErrOperationInProgress is the single-flight guard rejection: another
	// lifecycle operation for the same tenant is still running. Callers may
	// retry after a backoff.
	ErrOperationInProgress = errors.New("another subscription operation is in progress")
)

// ValidationError wraps bad input to a lifecycle operation. Not retryable.
type ValidationError struct {
	Cause error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid input: %v", e.Cause)
}

func (e *ValidationError) Unwrap() error { return e.Cause }

// StorageError wraps a failure of the subscription record store. Transient;
// the state resolver falls back to the last known state instead of blocking.
type StorageError struct {
	Op    string
	Cause error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("subscription storage %s failed: %v", e.Op, e.Cause)
}

func (e *StorageError) Unwrap() error { return e.Cause }

// GatewayError wraps a payment gateway infrastructure failure, as opposed to
// a decline, which is a regular outcome.
type GatewayError struct {
	Cause error
}

func (e *GatewayError) Error() string {
	return fmt.Sprintf("payment gateway failed: %v", e.Cause)
}

func (e *GatewayError) Unwrap() error { return e.Cause }
