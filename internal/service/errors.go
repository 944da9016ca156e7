package service

import "errors"

// Domain error taxonomy. Handlers map these to HTTP status codes; everything
// else surfaces as an internal error.
var (
	// ErrValidation marks malformed input rejected before any write.
	ErrValidation = errors.New("validation error")

	ErrProductNotFound  = errors.New("product not found")
	ErrCustomerNotFound = errors.New("customer not found")

	// ErrInsufficientStock aborts a sale in full — no partial state is applied.
	ErrInsufficientStock = errors.New("insufficient stock")

	// ErrConcurrentModification is surfaced after the optimistic-lock retry
	// budget is exhausted.
	ErrConcurrentModification = errors.New("concurrent modification")

	// ErrTransientStore is surfaced after the backoff retry budget is
	// exhausted on network/timeout failures.
	ErrTransientStore = errors.New("store temporarily unavailable")
)
