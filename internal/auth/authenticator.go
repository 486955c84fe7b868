package auth

import (
	"context"
	"errors"

	"billtracker/internal/storage" // Storage abstraction
)

// ErrInvalidToken is the single failure every resolution path collapses to.
// Callers never learn whether the signature, expiry, or lookup failed.
var ErrInvalidToken = errors.New("invalid token")

// Identity is the verified result of token resolution. Its ID drives every
// ownership check downstream.
type Identity struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

// Authenticator is the single trust root for a deployment. Exactly one
// implementation is selected at startup; the two variants are never mixed
// per-route.
type Authenticator interface {
	// Resolve verifies a bearer token and returns the identity it proves.
	// Any failure yields ErrInvalidToken.
	Resolve(ctx context.Context, token string) (*Identity, error)
}

// LocalAuthenticator validates server-issued JWTs and resolves the claimed
// user against local storage.
type LocalAuthenticator struct {
	secret string
	store  storage.Store
}

// NewLocalAuthenticator builds the local-JWT trust root
func NewLocalAuthenticator(secret string, store storage.Store) *LocalAuthenticator {
	return &LocalAuthenticator{secret: secret, store: store}
}

// Resolve parses the JWT and loads the user it names. A valid signature over
// a deleted user still resolves to invalid.
func (a *LocalAuthenticator) Resolve(ctx context.Context, token string) (*Identity, error) {
	claims, err := ParseToken(token, a.secret)
	if err != nil {
		return nil, ErrInvalidToken
	}
	user, err := a.store.GetUserByID(ctx, claims.UserID)
	if err != nil || user == nil {
		return nil, ErrInvalidToken
	}
	return &Identity{ID: user.ID, Email: user.Email, Name: user.Name}, nil
}
