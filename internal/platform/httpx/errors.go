package httpx

import (
	"errors"
	"net/http"

	"github.com/codenamekii/Jobless/internal/shared"
)

// RespondError maps domain errors to HTTP responses. Unexpected errors never
// leak internal detail to the client.
func RespondError(w http.ResponseWriter, err error) {
	Fail(w, StatusFor(err), shared.UserSafeMessage(err))
}

// StatusFor returns the HTTP status for a domain error.
func StatusFor(err error) int {
	switch {
	case errors.Is(err, shared.ErrDuplicateAccount):
		return http.StatusConflict
	case errors.Is(err, shared.ErrInvalidCredentials),
		errors.Is(err, shared.ErrAccountDeactivated),
		errors.Is(err, shared.ErrInvalidToken),
		errors.Is(err, shared.ErrInvalidRefreshToken):
		return http.StatusUnauthorized
	case errors.Is(err, shared.ErrNotFound), errors.Is(err, shared.ErrUserNotFound):
		return http.StatusNotFound
	case errors.Is(err, shared.ErrValidation):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// IsUnexpected reports whether the error falls outside the domain taxonomy
// and should be logged with full detail.
func IsUnexpected(err error) bool {
	return StatusFor(err) == http.StatusInternalServerError
}
