// Package apperrors defines the sentinel error kinds shared by services and
// handlers. Services return errors wrapping one of these kinds; handlers
// translate them into HTTP responses with errors.Is and never leak anything
// that does not wrap a kind.
package apperrors

import "errors"

var (
	// ErrUnauthenticated marks requests with no valid session where one is required.
	ErrUnauthenticated = errors.New("unauthenticated")
	// ErrForbidden marks authenticated callers lacking permission.
	ErrForbidden = errors.New("forbidden")
	// ErrInvalidOperation marks well-formed but semantically disallowed requests,
	// such as an admin deleting their own account.
	ErrInvalidOperation = errors.New("invalid operation")
	// ErrNotFound marks absent resources.
	ErrNotFound = errors.New("not found")
	// ErrConflict marks uniqueness violations surfaced by the storage layer.
	ErrConflict = errors.New("conflict")
	// ErrValidation marks malformed or rejected input.
	ErrValidation = errors.New("validation failed")
)

type kindError struct {
	kind error
	msg  string
}

func (e *kindError) Error() string { return e.msg }
func (e *kindError) Unwrap() error { return e.kind }

// WithMessage attaches a client-facing message to a sentinel kind. The
// message becomes Error(); the kind stays reachable through errors.Is.
func WithMessage(kind error, msg string) error {
	return &kindError{kind: kind, msg: msg}
}

// IsClientSafe reports whether err wraps a kind whose message may be shown to
// the caller verbatim.
func IsClientSafe(err error) bool {
	for _, kind := range []error{
		ErrUnauthenticated, ErrForbidden, ErrInvalidOperation,
		ErrNotFound, ErrConflict, ErrValidation,
	} {
		if errors.Is(err, kind) {
			return true
		}
	}
	return false
}
