package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/VishakaNaik50/cleanup-connect-civic-waste-platform-sub000/internal/config"
	"github.com/VishakaNaik50/cleanup-connect-civic-waste-platform-sub000/internal/storage"
)

func newTestTokens(ttl time.Duration) *Tokens {
	return NewTokens(config.AuthConfig{JWTSecret: "test-secret", TokenTTL: ttl})
}

func TestIssueAndParse(t *testing.T) {
	tokens := newTestTokens(time.Hour)
	teamID := 4
	user := storage.User{
		ID:     "user-1",
		Role:   storage.RoleWorker,
		TeamID: &teamID,
	}

	signed, err := tokens.Issue(user)
	require.NoError(t, err)
	require.NotEmpty(t, signed)

	session, err := tokens.Parse(signed)
	require.NoError(t, err)

	assert.Equal(t, "user-1", session.UserID)
	assert.Equal(t, storage.RoleWorker, session.Role)
	require.NotNil(t, session.TeamID)
	assert.Equal(t, 4, *session.TeamID)
}

func TestParseRejectsWrongSecret(t *testing.T) {
	issued := newTestTokens(time.Hour)
	other := NewTokens(config.AuthConfig{JWTSecret: "another-secret", TokenTTL: time.Hour})

	signed, err := issued.Issue(storage.User{ID: "user-1", Role: storage.RoleCitizen})
	require.NoError(t, err)

	_, err = other.Parse(signed)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseRejectsExpiredToken(t *testing.T) {
	tokens := newTestTokens(-time.Minute)

	signed, err := tokens.Issue(storage.User{ID: "user-1", Role: storage.RoleCitizen})
	require.NoError(t, err)

	_, err = tokens.Parse(signed)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseRejectsGarbage(t *testing.T) {
	tokens := newTestTokens(time.Hour)

	_, err := tokens.Parse("not-a-jwt")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("correct horse battery staple")
	require.NoError(t, err)
	assert.NotEqual(t, "correct horse battery staple", hash)

	assert.NoError(t, CheckPassword(hash, "correct horse battery staple"))
	assert.ErrorIs(t, CheckPassword(hash, "wrong password"), ErrWrongPassword)
}
