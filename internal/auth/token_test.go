package auth

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/codenamekii/Jobless/internal/shared"
)

func testUser() *User {
	return &User{
		ID:       uuid.New(),
		Email:    "ana@example.com",
		FullName: "Ana Example",
		IsActive: true,
	}
}

func TestIssueAndVerifyPair(t *testing.T) {
	tm := NewTokenManager("access-secret", "refresh-secret", time.Minute, time.Hour)
	user := testUser()

	pair, err := tm.IssuePair(user, "session-1")
	require.NoError(t, err)
	require.NotEmpty(t, pair.AccessToken)
	require.NotEmpty(t, pair.RefreshToken)

	access, err := tm.VerifyAccess(pair.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, user.ID, access.UserID)
	assert.Equal(t, user.Email, access.Email)
	assert.Equal(t, user.FullName, access.FullName)

	refresh, err := tm.VerifyRefresh(pair.RefreshToken)
	require.NoError(t, err)
	assert.Equal(t, "session-1", refresh.SessionID)
	assert.Equal(t, user.ID, refresh.UserID)
}

func TestTokenClassesUseDistinctSecrets(t *testing.T) {
	tm := NewTokenManager("access-secret", "refresh-secret", time.Minute, time.Hour)
	pair, err := tm.IssuePair(testUser(), "session-1")
	require.NoError(t, err)

	_, err = tm.VerifyRefresh(pair.AccessToken)
	assert.ErrorIs(t, err, shared.ErrInvalidToken)

	_, err = tm.VerifyAccess(pair.RefreshToken)
	assert.ErrorIs(t, err, shared.ErrInvalidToken)
}

func TestVerifyRejectsForeignSignature(t *testing.T) {
	tm := NewTokenManager("access-secret", "refresh-secret", time.Minute, time.Hour)
	other := NewTokenManager("other-access", "other-refresh", time.Minute, time.Hour)

	pair, err := other.IssuePair(testUser(), "session-1")
	require.NoError(t, err)

	_, err = tm.VerifyAccess(pair.AccessToken)
	assert.ErrorIs(t, err, shared.ErrInvalidToken)
	_, err = tm.VerifyRefresh(pair.RefreshToken)
	assert.ErrorIs(t, err, shared.ErrInvalidToken)
}

func TestVerifyRejectsExpired(t *testing.T) {
	tm := NewTokenManager("access-secret", "refresh-secret", -time.Minute, -time.Minute)
	pair, err := tm.IssuePair(testUser(), "session-1")
	require.NoError(t, err)

	_, err = tm.VerifyAccess(pair.AccessToken)
	assert.ErrorIs(t, err, shared.ErrInvalidToken)
	_, err = tm.VerifyRefresh(pair.RefreshToken)
	assert.ErrorIs(t, err, shared.ErrInvalidToken)
}

func TestVerifyRejectsGarbage(t *testing.T) {
	tm := NewTokenManager("access-secret", "refresh-secret", time.Minute, time.Hour)

	for _, token := range []string{"", "not-a-jwt", "a.b.c"} {
		_, err := tm.VerifyAccess(token)
		assert.ErrorIs(t, err, shared.ErrInvalidToken)
	}
}
