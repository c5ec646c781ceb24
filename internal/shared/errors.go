package shared

import "errors"

var (
	// ErrNotFound indicates resource not found.
	ErrNotFound = errors.New("not found")
	// ErrDuplicateAccount indicates a registration against an existing email.
	ErrDuplicateAccount = errors.New("account already exists")
	// ErrInvalidCredentials indicates login failure.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrAccountDeactivated indicates the account's active flag is off.
	ErrAccountDeactivated = errors.New("account is deactivated")
	// ErrInvalidToken indicates a malformed, forged or expired bearer token.
	ErrInvalidToken = errors.New("invalid token")
	// ErrInvalidRefreshToken indicates a refresh token that cannot be exchanged.
	ErrInvalidRefreshToken = errors.New("invalid refresh token")
	// ErrUserNotFound indicates the user row no longer exists.
	ErrUserNotFound = errors.New("user not found")
	// ErrValidation indicates a malformed request payload.
	ErrValidation = errors.New("validation failed")
)

// UserSafeMessage returns a message safe to surface to clients. Store and
// infrastructure failures collapse to a generic message.
func UserSafeMessage(err error) string {
	switch {
	case errors.Is(err, ErrNotFound):
		return "Resource not found"
	case errors.Is(err, ErrDuplicateAccount):
		return "User already exists"
	case errors.Is(err, ErrInvalidCredentials):
		return "Invalid credentials"
	case errors.Is(err, ErrAccountDeactivated):
		return "Account is deactivated"
	case errors.Is(err, ErrInvalidToken):
		return "Invalid token"
	case errors.Is(err, ErrInvalidRefreshToken):
		return "Invalid refresh token"
	case errors.Is(err, ErrUserNotFound):
		return "User not found"
	case errors.Is(err, ErrValidation):
		return "Validation failed"
	default:
		return "Internal server error"
	}
}
