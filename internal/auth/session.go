// internal/auth/session.go
package auth

import (
	"fmt"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Session holds the actor's bearer token and exposes the authentication
// signal the cart synchronization core observes. One session exists per
// running app; it is constructed explicitly and passed by reference.
//
// The session inspects the token's expiry claim without verifying the
// signature: the client has no signing key, and verification is the
// service's job on every request.
type Session struct {
	mu        sync.Mutex
	token     string
	expiresAt time.Time
	listeners []func(authenticated bool)
}

// NewSession creates an unauthenticated session.
func NewSession() *Session {
	return &Session{}
}

// SetToken installs a bearer token received from the auth service. Change
// listeners fire when this flips the session from unauthenticated to
// authenticated.
func (s *Session) SetToken(token string) error {
	claims := &jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return fmt.Errorf("failed to parse session token: %w", err)
	}

	var expiresAt time.Time
	if claims.ExpiresAt != nil {
		expiresAt = claims.ExpiresAt.Time
	}

	s.mu.Lock()
	was := s.authenticatedLocked()
	s.token = token
	s.expiresAt = expiresAt
	now := s.authenticatedLocked()
	listeners := append(([]func(bool))(nil), s.listeners...)
	s.mu.Unlock()

	if was != now {
		for _, fn := range listeners {
			fn(now)
		}
	}
	return nil
}

// Logout discards the token. Change listeners fire when the session was
// authenticated.
func (s *Session) Logout() {
	s.mu.Lock()
	was := s.authenticatedLocked()
	s.token = ""
	s.expiresAt = time.Time{}
	listeners := append(([]func(bool))(nil), s.listeners...)
	s.mu.Unlock()

	if was {
		for _, fn := range listeners {
			fn(false)
		}
	}
}

// Token returns the bearer token for outgoing requests, or empty when the
// session is not authenticated.
func (s *Session) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.authenticatedLocked() {
		return ""
	}
	return s.token
}

// IsAuthenticated reports whether a token is present and unexpired.
func (s *Session) IsAuthenticated() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.authenticatedLocked()
}

// OnChange registers a listener fired on every authenticated state
// transition, in registration order.
func (s *Session) OnChange(fn func(authenticated bool)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, fn)
}

func (s *Session) authenticatedLocked() bool {
	if s.token == "" {
		return false
	}
	return s.expiresAt.IsZero() || time.Now().Before(s.expiresAt)
}
