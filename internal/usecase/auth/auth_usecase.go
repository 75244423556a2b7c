// Package auth consumes the hosted auth provider's access tokens. The service
// never issues credentials; it only verifies the provider's JWT and derives
// the current identity from its claims.
package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/wellgym/wellgym-backend/internal/domain"
)

// IdentityProvider yields the identity bound to the calling context, or
// domain.ErrUnauthenticated when there is none. Transport-level failures map
// to domain.ErrRemoteUnavailable so callers can tell them apart.
type IdentityProvider interface {
	Current(ctx context.Context) (*domain.Identity, error)
}

type tokenContextKey struct{}

// WithToken binds a bearer token to the context. The HTTP middleware puts the
// Authorization header value here; usecases never see the transport.
func WithToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, tokenContextKey{}, token)
}

func tokenFromContext(ctx context.Context) (string, bool) {
	token, ok := ctx.Value(tokenContextKey{}).(string)
	return token, ok && token != ""
}

type claims struct {
	Email     string `json:"email"`
	CreatedAt string `json:"created_at"`
	jwt.RegisteredClaims
}

// UseCase verifies access tokens with the auth provider's shared JWT secret.
type UseCase struct {
	secret []byte
}

func NewUseCase(secret string) *UseCase {
	return &UseCase{secret: []byte(secret)}
}

// Current implements IdentityProvider.
func (uc *UseCase) Current(ctx context.Context) (*domain.Identity, error) {
	raw, ok := tokenFromContext(ctx)
	if !ok {
		return nil, domain.ErrUnauthenticated
	}
	return uc.Verify(raw)
}

// Verify parses and validates the token and extracts the identity. An expired
// or malformed token is an unauthenticated caller, not a transport failure.
func (uc *UseCase) Verify(raw string) (*domain.Identity, error) {
	var c claims
	token, err := jwt.ParseWithClaims(raw, &c, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return uc.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, fmt.Errorf("%w: %v", domain.ErrUnauthenticated, err)
	}
	if c.Subject == "" {
		return nil, fmt.Errorf("%w: token has no subject", domain.ErrUnauthenticated)
	}

	identity := &domain.Identity{
		ID:    c.Subject,
		Email: c.Email,
	}
	if c.CreatedAt != "" {
		if ts, err := time.Parse(time.RFC3339, c.CreatedAt); err == nil {
			identity.CreatedAt = ts
		}
	}
	if identity.CreatedAt.IsZero() && c.IssuedAt != nil {
		identity.CreatedAt = c.IssuedAt.Time
	}
	return identity, nil
}

// IsAuthFailure reports whether err means the caller must sign in again.
func IsAuthFailure(err error) bool {
	return errors.Is(err, domain.ErrUnauthenticated)
}
