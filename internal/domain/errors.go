package domain

import "errors"

var (
	// ErrValidation marks a malformed or missing required field.
	ErrValidation = errors.New("validation failed")

	// ErrMissingField marks a transition that requires a field not supplied,
	// e.g. entering Scheduled Delivery without a delivery date.
	ErrMissingField = errors.New("missing required field")

	// ErrInvalidTransition marks an illegal status change for the request's kind.
	ErrInvalidTransition = errors.New("invalid status transition")

	// ErrNotFound marks an unknown request or rental id.
	ErrNotFound = errors.New("not found")

	// ErrUnauthenticated marks an operation that needs a verified user id.
	ErrUnauthenticated = errors.New("authentication required")

	// ErrSignatureInvalid marks a webhook authenticity failure. The event is
	// dropped, never retried.
	ErrSignatureInvalid = errors.New("invalid event signature")

	// ErrDuplicateEvent marks an idempotent no-op re-delivery. Not an error
	// condition for the gateway.
	ErrDuplicateEvent = errors.New("duplicate payment event")

	// ErrMaterializationConflict marks a lost race on rental creation,
	// resolved internally as a no-op.
	ErrMaterializationConflict = errors.New("rental already materialized")
)
