package errors

import "errors"

// ErrOptimisticLock the row was changed by another writer between read and update
var ErrOptimisticLock = errors.New("record was modified by another operation, reload and retry")

// ── Error kinds ──
//
// Every business error returned by the service layer wraps exactly one kind.
// Handlers map kinds to HTTP status; the kind name is part of the response contract.

var (
	ErrInvalidInput   = errors.New("invalid_input")
	ErrNotFound       = errors.New("not_found")
	ErrStaleReference = errors.New("stale_reference")
	ErrInvalidState   = errors.New("invalid_state")
	ErrConflict       = errors.New("conflict")
)

// Error is a business error with a stable kind and a human readable message.
type Error struct {
	Kind    error
	Message string
}

// New creates a business error of the given kind.
func New(kind error, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

func (e *Error) Error() string { return e.Message }

func (e *Error) Unwrap() error { return e.Kind }

// KindOf returns the kind name of err, or "internal" when err carries no kind.
func KindOf(err error) string {
	for _, kind := range []error{ErrInvalidInput, ErrNotFound, ErrStaleReference, ErrInvalidState, ErrConflict} {
		if errors.Is(err, kind) {
			return kind.Error()
		}
	}
	if errors.Is(err, ErrOptimisticLock) {
		return ErrConflict.Error()
	}
	return "internal"
}
