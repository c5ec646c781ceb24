package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/codenamekii/Jobless/internal/shared"
)

// AccessClaims prove identity for a single request.
type AccessClaims struct {
	jwt.RegisteredClaims
	UserID   uuid.UUID `json:"userId"`
	Email    string    `json:"email"`
	FullName string    `json:"fullName"`
}

// RefreshClaims additionally name the server-side session they redeem.
type RefreshClaims struct {
	AccessClaims
	SessionID string `json:"tokenId"`
}

// TokenManager signs and verifies the two token classes. Access and refresh
// tokens use distinct secrets so leaking one class cannot forge the other.
type TokenManager struct {
	accessSecret  []byte
	refreshSecret []byte
	accessTTL     time.Duration
	refreshTTL    time.Duration
}

// NewTokenManager constructs a TokenManager.
func NewTokenManager(accessSecret, refreshSecret string, accessTTL, refreshTTL time.Duration) *TokenManager {
	return &TokenManager{
		accessSecret:  []byte(accessSecret),
		refreshSecret: []byte(refreshSecret),
		accessTTL:     accessTTL,
		refreshTTL:    refreshTTL,
	}
}

// IssuePair signs a fresh access/refresh pair bound to the given session id.
func (m *TokenManager) IssuePair(user *User, sessionID string) (TokenPair, error) {
	now := time.Now()
	access := AccessClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.accessTTL)),
		},
		UserID:   user.ID,
		Email:    user.Email,
		FullName: user.FullName,
	}
	accessToken, err := jwt.NewWithClaims(jwt.SigningMethodHS256, access).SignedString(m.accessSecret)
	if err != nil {
		return TokenPair{}, err
	}

	refresh := RefreshClaims{
		AccessClaims: AccessClaims{
			RegisteredClaims: jwt.RegisteredClaims{
				IssuedAt:  jwt.NewNumericDate(now),
				ExpiresAt: jwt.NewNumericDate(now.Add(m.refreshTTL)),
			},
			UserID:   user.ID,
			Email:    user.Email,
			FullName: user.FullName,
		},
		SessionID: sessionID,
	}
	refreshToken, err := jwt.NewWithClaims(jwt.SigningMethodHS256, refresh).SignedString(m.refreshSecret)
	if err != nil {
		return TokenPair{}, err
	}

	return TokenPair{AccessToken: accessToken, RefreshToken: refreshToken}, nil
}

// VerifyAccess validates an access token and returns its claims.
func (m *TokenManager) VerifyAccess(tokenString string) (*AccessClaims, error) {
	claims := &AccessClaims{}
	if err := m.verify(tokenString, claims, m.accessSecret); err != nil {
		return nil, err
	}
	return claims, nil
}

// VerifyRefresh validates a refresh token and returns its claims, including
// the session id to redeem.
func (m *TokenManager) VerifyRefresh(tokenString string) (*RefreshClaims, error) {
	claims := &RefreshClaims{}
	if err := m.verify(tokenString, claims, m.refreshSecret); err != nil {
		return nil, err
	}
	return claims, nil
}

// RefreshTTL exposes the refresh lifetime for session expiry stamps.
func (m *TokenManager) RefreshTTL() time.Duration {
	return m.refreshTTL
}

func (m *TokenManager) verify(tokenString string, claims jwt.Claims, secret []byte) error {
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return shared.ErrInvalidToken
	}
	if !token.Valid {
		return shared.ErrInvalidToken
	}
	return nil
}
