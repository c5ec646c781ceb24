package auth

import (
	"time"

	"github.com/google/uuid"
)

// User represents an account row in the credential store.
type User struct {
	ID            uuid.UUID
	Email         string
	PasswordHash  string
	FullName      string
	IsActive      bool
	EmailVerified bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// PublicUser is the client-visible view of an account. It never carries the
// password hash.
type PublicUser struct {
	ID            uuid.UUID `json:"id"`
	Email         string    `json:"email"`
	FullName      string    `json:"fullName"`
	EmailVerified bool      `json:"emailVerified"`
}

// Public strips the user down to fields safe to return to clients.
func (u *User) Public() PublicUser {
	return PublicUser{
		ID:            u.ID,
		Email:         u.Email,
		FullName:      u.FullName,
		EmailVerified: u.EmailVerified,
	}
}

// Profile is the extended view returned by GET /auth/me.
type Profile struct {
	ID            uuid.UUID `json:"id"`
	Email         string    `json:"email"`
	FullName      string    `json:"fullName"`
	EmailVerified bool      `json:"emailVerified"`
	IsActive      bool      `json:"isActive"`
	CreatedAt     time.Time `json:"createdAt"`
}

// Profile builds the /me view.
func (u *User) Profile() Profile {
	return Profile{
		ID:            u.ID,
		Email:         u.Email,
		FullName:      u.FullName,
		EmailVerified: u.EmailVerified,
		IsActive:      u.IsActive,
		CreatedAt:     u.CreatedAt,
	}
}

// RefreshSession is one outstanding refresh credential. The ID doubles as the
// tokenId claim inside the signed refresh token; Token holds the serialized
// token string the client must present back verbatim.
type RefreshSession struct {
	ID        string
	UserID    uuid.UUID
	Token     string
	ExpiresAt time.Time
	CreatedAt time.Time
}

// TokenPair bundles the two credentials issued on register, login and refresh.
type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// Result is the payload returned by register, login and refresh.
type Result struct {
	User         PublicUser `json:"user"`
	AccessToken  string     `json:"accessToken"`
	RefreshToken string     `json:"refreshToken"`
}
