package jwt

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionRoundTrip(t *testing.T) {
	svc := NewJWTService("secret", "1h", false)

	token, expiresAt, err := svc.IssueSession(140002)
	require.NoError(t, err)
	assert.NotZero(t, expiresAt)

	staffID, err := svc.ParseSession(token)
	require.NoError(t, err)
	assert.Equal(t, 140002, staffID)

	cookie := svc.SessionCookie(token, expiresAt)
	assert.Equal(t, SessionCookieName, cookie.Name)
	assert.True(t, cookie.HttpOnly)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(cookie)
	assert.Equal(t, token, TokenFromSessionCookie(req))
}

func TestParseSession_Rejects(t *testing.T) {
	svc := NewJWTService("secret", "1h", false)
	other := NewJWTService("other", "1h", false)

	foreign, _, err := other.IssueSession(1)
	require.NoError(t, err)
	_, err = svc.ParseSession(foreign)
	assert.Error(t, err)

	_, err = svc.ParseSession("")
	assert.ErrorIs(t, err, ErrInvalidSession)

	token, _, err := svc.IssueSession(1)
	require.NoError(t, err)
	svc.RevokeToken(token)
	_, err = svc.ParseSession(token)
	assert.ErrorIs(t, err, ErrSessionRevoked)
}

func TestIssueSession_BadExpiration(t *testing.T) {
	svc := NewJWTService("secret", "forever", false)
	_, _, err := svc.IssueSession(1)
	assert.Error(t, err)
}

func TestPurgeRevoked(t *testing.T) {
	svc := NewJWTService("secret", "1h", false).(*JWTService)

	svc.RevokeToken("fresh")
	svc.mu.Lock()
	svc.revokedTokens["stale"] = time.Now().Add(-2 * time.Hour).Unix()
	svc.mu.Unlock()

	assert.Equal(t, 1, svc.PurgeRevoked())
	assert.True(t, svc.IsTokenRevoked("fresh"))
	assert.False(t, svc.IsTokenRevoked("stale"))
}
