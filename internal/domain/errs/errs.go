// Package errs contains sentinel errors shared by the domain, application and
// infrastructure layers. Handlers map them to HTTP statuses in one place.
package errs

import (
	"errors"
	"net/http"
)

var (
	// ErrUnauthenticated is returned for a missing, malformed, expired or revoked credential,
	// or one whose subject no longer exists.
	ErrUnauthenticated = errors.New("unauthenticated")

	// ErrForbidden is returned when a resolved identity lacks admin privilege.
	ErrForbidden = errors.New("forbidden")

	// ErrNotFound indicates the referenced song, user or request does not exist.
	ErrNotFound = errors.New("not found")

	// ErrConflict indicates a uniqueness violation or a state transition that is no longer allowed.
	ErrConflict = errors.New("conflict")

	// ErrUpstream indicates the asset host was unreachable or rejected the payload.
	ErrUpstream = errors.New("upstream failure")

	// ErrInvalid indicates missing or malformed input.
	ErrInvalid = errors.New("invalid")
)

// HTTPStatus maps an error chain to the status code a handler should answer with.
func HTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrUnauthenticated):
		return http.StatusUnauthorized
	case errors.Is(err, ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrConflict):
		return http.StatusConflict
	case errors.Is(err, ErrUpstream):
		return http.StatusBadGateway
	case errors.Is(err, ErrInvalid):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
