// internal/auth/session_test.go
package auth_test

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/your-org/storefront-cart/internal/auth"
)

func signedToken(t *testing.T, expiresAt time.Time) string {
	t.Helper()
	claims := jwt.RegisteredClaims{Subject: "user:1"}
	if !expiresAt.IsZero() {
		claims.ExpiresAt = jwt.NewNumericDate(expiresAt)
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-signing-key"))
	require.NoError(t, err)
	return token
}

func TestNewSessionIsUnauthenticated(t *testing.T) {
	s := auth.NewSession()
	assert.False(t, s.IsAuthenticated())
	assert.Empty(t, s.Token())
}

func TestSetTokenAuthenticates(t *testing.T) {
	s := auth.NewSession()
	token := signedToken(t, time.Now().Add(time.Hour))

	require.NoError(t, s.SetToken(token))

	assert.True(t, s.IsAuthenticated())
	assert.Equal(t, token, s.Token())
}

func TestSetTokenWithoutExpiryAuthenticates(t *testing.T) {
	s := auth.NewSession()
	require.NoError(t, s.SetToken(signedToken(t, time.Time{})))
	assert.True(t, s.IsAuthenticated())
}

func TestExpiredTokenIsNotAuthenticated(t *testing.T) {
	s := auth.NewSession()
	require.NoError(t, s.SetToken(signedToken(t, time.Now().Add(-time.Minute))))

	assert.False(t, s.IsAuthenticated())
	assert.Empty(t, s.Token(), "expired sessions never hand out a token")
}

func TestSetTokenRejectsGarbage(t *testing.T) {
	s := auth.NewSession()
	require.Error(t, s.SetToken("not-a-jwt"))
	assert.False(t, s.IsAuthenticated())
}

func TestLogoutDropsToken(t *testing.T) {
	s := auth.NewSession()
	require.NoError(t, s.SetToken(signedToken(t, time.Now().Add(time.Hour))))

	s.Logout()

	assert.False(t, s.IsAuthenticated())
	assert.Empty(t, s.Token())
}

func TestOnChangeFiresOnTransitionsOnly(t *testing.T) {
	s := auth.NewSession()

	var events []bool
	s.OnChange(func(authenticated bool) {
		events = append(events, authenticated)
	})

	require.NoError(t, s.SetToken(signedToken(t, time.Now().Add(time.Hour))))
	// Replacing a live token keeps the session authenticated: no event.
	require.NoError(t, s.SetToken(signedToken(t, time.Now().Add(2*time.Hour))))
	s.Logout()
	// Already signed out: no event.
	s.Logout()

	assert.Equal(t, []bool{true, false}, events)
}
