package auth

import (
	"testing"

	"github.com/google/uuid"
	"github.com/inkhaus/backoffice-api/internal/config"
	"github.com/inkhaus/backoffice-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestTokenManager(t *testing.T) *TokenManager {
	t.Helper()
	tm, err := NewTokenManager(&config.AuthConfig{
		JWTSecret:      "test-secret",
		AccessTokenTTL: 60,
		PinTokenTTL:    5,
	})
	require.NoError(t, err)
	return tm
}

func testUser() *domain.User {
	return &domain.User{
		BaseModel:   domain.BaseModel{ID: uuid.New()},
		Email:       "owner@example.com",
		DisplayName: "Owner",
		Role:        domain.RoleAdmin,
	}
}

func TestTokenManager_RequiresSecret(t *testing.T) {
	_, err := NewTokenManager(&config.AuthConfig{})
	assert.Error(t, err)
}

func TestTokenManager_RoundTrip(t *testing.T) {
	tm := newTestTokenManager(t)
	user := testUser()

	token, err := tm.IssueToken(user, true)
	require.NoError(t, err)

	userCtx, err := tm.ValidateToken(token)
	require.NoError(t, err)

	assert.Equal(t, user.ID, userCtx.UserID)
	assert.Equal(t, user.Email, userCtx.Email)
	assert.Equal(t, user.DisplayName, userCtx.DisplayName)
	assert.Equal(t, domain.RoleAdmin, userCtx.Role)
	assert.True(t, userCtx.PINVerified)
}

func TestTokenManager_PINPendingToken(t *testing.T) {
	tm := newTestTokenManager(t)

	token, err := tm.IssueToken(testUser(), false)
	require.NoError(t, err)

	userCtx, err := tm.ValidateToken(token)
	require.NoError(t, err)
	assert.False(t, userCtx.PINVerified)
}

func TestTokenManager_RejectsGarbage(t *testing.T) {
	tm := newTestTokenManager(t)

	_, err := tm.ValidateToken("not-a-token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenManager_RejectsForeignSignature(t *testing.T) {
	tm := newTestTokenManager(t)

	other, err := NewTokenManager(&config.AuthConfig{
		JWTSecret:      "a-different-secret",
		AccessTokenTTL: 60,
		PinTokenTTL:    5,
	})
	require.NoError(t, err)

	token, err := other.IssueToken(testUser(), true)
	require.NoError(t, err)

	_, err = tm.ValidateToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestHasher_RoundTrip(t *testing.T) {
	hasher := NewHasher(4)

	hash, err := hasher.Hash("hunter2hunter2")
	require.NoError(t, err)

	assert.True(t, hasher.Verify(hash, "hunter2hunter2"))
	assert.False(t, hasher.Verify(hash, "wrong-password"))
	assert.False(t, hasher.Verify("", "hunter2hunter2"))
}

func TestHasher_CostFallback(t *testing.T) {
	// An out-of-range cost must still produce verifiable hashes
	hasher := NewHasher(99)

	hash, err := hasher.Hash("1234")
	require.NoError(t, err)
	assert.True(t, hasher.Verify(hash, "1234"))
}
