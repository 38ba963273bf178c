// Package auth supplies bearer tokens to the API client. The client
// never reaches into ambient storage itself; whoever constructs it
// passes a TokenProvider.
package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrNoToken is returned by providers that have no token to offer.
// The client treats it as "call unauthenticated" and omits the
// Authorization header.
var ErrNoToken = errors.New("no auth token available")

// TokenProvider yields the bearer token for an outgoing API call.
type TokenProvider interface {
	Token(ctx context.Context) (string, error)
}

// TokenProviderFunc adapts a plain function to TokenProvider.
type TokenProviderFunc func(ctx context.Context) (string, error)

// Token implements TokenProvider.
func (f TokenProviderFunc) Token(ctx context.Context) (string, error) { return f(ctx) }

// Static returns a provider that always yields the given token. An
// empty token behaves like ErrNoToken.
func Static(token string) TokenProvider {
	return TokenProviderFunc(func(context.Context) (string, error) {
		if token == "" {
			return "", ErrNoToken
		}
		return token, nil
	})
}

// TokenExpiry extracts the expiry claim from a JWT without verifying
// its signature. The client has no signing key; this is only used to
// warn about an already-expired session before a doomed call.
func TokenExpiry(token string) (time.Time, error) {
	parser := jwt.NewParser()
	claims := jwt.MapClaims{}
	if _, _, err := parser.ParseUnverified(token, claims); err != nil {
		return time.Time{}, fmt.Errorf("parse token: %w", err)
	}
	exp, err := claims.GetExpirationTime()
	if err != nil {
		return time.Time{}, fmt.Errorf("read expiry claim: %w", err)
	}
	if exp == nil {
		return time.Time{}, nil
	}
	return exp.Time, nil
}

// Expired reports whether the token carries an expiry claim in the
// past. Tokens without an expiry claim, or unparsable tokens, are not
// reported as expired; the server stays the authority.
func Expired(token string, now time.Time) bool {
	exp, err := TokenExpiry(token)
	if err != nil || exp.IsZero() {
		return false
	}
	return exp.Before(now)
}
