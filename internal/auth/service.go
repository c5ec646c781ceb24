package auth

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/codenamekii/Jobless/internal/shared"
)

// dummyHash is compared against when the email does not resolve to a user,
// so the failure path costs a bcrypt comparison either way.
var dummyHash, _ = bcrypt.GenerateFromPassword([]byte("jobless-no-such-user"), bcrypt.DefaultCost)

// Service orchestrates registration, login, refresh and logout against the
// credential store, the token codec and the session store.
type Service struct {
	repo   Repository
	tokens *TokenManager
	logger *slog.Logger
}

// NewService constructs a new Service.
func NewService(repo Repository, tokens *TokenManager, logger *slog.Logger) *Service {
	return &Service{repo: repo, tokens: tokens, logger: logger}
}

// Register creates an account and opens its first session.
func (s *Service) Register(ctx context.Context, email, password, fullName string) (*Result, error) {
	email = normalizeEmail(email)

	if _, err := s.repo.FindUserByEmail(ctx, email); err == nil {
		return nil, shared.ErrDuplicateAccount
	} else if !errors.Is(err, shared.ErrNotFound) {
		return nil, fmt.Errorf("auth: lookup email: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("auth: hash password: %w", err)
	}

	user := &User{
		ID:           uuid.New(),
		Email:        email,
		PasswordHash: string(hash),
		FullName:     fullName,
		IsActive:     true,
	}

	sessionID, err := newSessionID()
	if err != nil {
		return nil, fmt.Errorf("auth: session id: %w", err)
	}
	pair, err := s.tokens.IssuePair(user, sessionID)
	if err != nil {
		return nil, fmt.Errorf("auth: issue tokens: %w", err)
	}

	sess := RefreshSession{
		ID:        sessionID,
		UserID:    user.ID,
		Token:     pair.RefreshToken,
		ExpiresAt: time.Now().Add(s.tokens.RefreshTTL()),
	}
	if err := s.repo.CreateUserAndSession(ctx, user, sess); err != nil {
		// The pre-check races with concurrent registrations; the unique index
		// is the authority.
		if errors.Is(err, shared.ErrDuplicateAccount) {
			return nil, shared.ErrDuplicateAccount
		}
		return nil, fmt.Errorf("auth: create user: %w", err)
	}

	return &Result{User: user.Public(), AccessToken: pair.AccessToken, RefreshToken: pair.RefreshToken}, nil
}

// Login validates credentials and opens a new session. The password is
// verified before the active flag is checked, so unauthenticated probes learn
// nothing about account status.
func (s *Service) Login(ctx context.Context, email, password string) (*Result, error) {
	user, err := s.repo.FindUserByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			// Burn a comparison so a missing account fails in the same time
			// as a wrong password.
			_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(password))
			return nil, shared.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("auth: lookup email: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, shared.ErrInvalidCredentials
	}
	if !user.IsActive {
		return nil, shared.ErrAccountDeactivated
	}

	return s.openSession(ctx, user)
}

// Refresh rotates a refresh session: the presented token's session row is
// consumed and replaced under a new identifier. A rotated token can never be
// exchanged twice.
func (s *Service) Refresh(ctx context.Context, refreshToken string) (*Result, error) {
	claims, err := s.tokens.VerifyRefresh(refreshToken)
	if err != nil {
		return nil, shared.ErrInvalidRefreshToken
	}

	sess, err := s.repo.ConsumeSession(ctx, claims.SessionID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.ErrInvalidRefreshToken
		}
		return nil, fmt.Errorf("auth: consume session: %w", err)
	}

	// A verifiable token whose string no longer matches the stored row is a
	// superseded token being replayed. The row is already gone, which is the
	// intended outcome.
	if sess.Token != refreshToken {
		return nil, shared.ErrInvalidRefreshToken
	}
	if time.Now().After(sess.ExpiresAt) {
		return nil, shared.ErrInvalidRefreshToken
	}

	user, err := s.repo.FindUserByID(ctx, sess.UserID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.ErrInvalidRefreshToken
		}
		return nil, fmt.Errorf("auth: lookup user: %w", err)
	}
	if !user.IsActive {
		return nil, shared.ErrInvalidRefreshToken
	}

	return s.openSession(ctx, user)
}

// Logout revokes sessions. With a refresh token the named session is removed
// best-effort; token verification problems are swallowed so the operation
// succeeds even for stale tokens. Without one, every session for the user is
// removed.
func (s *Service) Logout(ctx context.Context, userID uuid.UUID, refreshToken string) error {
	if refreshToken != "" {
		claims, err := s.tokens.VerifyRefresh(refreshToken)
		if err != nil {
			s.logger.Debug("logout with unverifiable refresh token", slog.String("user_id", userID.String()))
			return nil
		}
		if err := s.repo.DeleteSession(ctx, claims.SessionID); err != nil {
			s.logger.Warn("logout delete session", slog.Any("error", err))
		}
		return nil
	}
	if err := s.repo.DeleteUserSessions(ctx, userID); err != nil {
		return fmt.Errorf("auth: delete user sessions: %w", err)
	}
	return nil
}

// GetUser returns the profile view for an authenticated caller.
func (s *Service) GetUser(ctx context.Context, userID uuid.UUID) (*Profile, error) {
	user, err := s.repo.FindUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.ErrUserNotFound
		}
		return nil, fmt.Errorf("auth: lookup user: %w", err)
	}
	profile := user.Profile()
	return &profile, nil
}

func (s *Service) openSession(ctx context.Context, user *User) (*Result, error) {
	sessionID, err := newSessionID()
	if err != nil {
		return nil, fmt.Errorf("auth: session id: %w", err)
	}
	pair, err := s.tokens.IssuePair(user, sessionID)
	if err != nil {
		return nil, fmt.Errorf("auth: issue tokens: %w", err)
	}
	sess := RefreshSession{
		ID:        sessionID,
		UserID:    user.ID,
		Token:     pair.RefreshToken,
		ExpiresAt: time.Now().Add(s.tokens.RefreshTTL()),
	}
	if err := s.repo.CreateSession(ctx, sess); err != nil {
		return nil, fmt.Errorf("auth: create session: %w", err)
	}
	return &Result{User: user.Public(), AccessToken: pair.AccessToken, RefreshToken: pair.RefreshToken}, nil
}

func newSessionID() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
