package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSupabaseResolveSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/auth/v1/user", r.URL.Path)
		assert.Equal(t, "Bearer opaque-token", r.Header.Get("Authorization"))
		assert.Equal(t, "anon-key", r.Header.Get("apikey"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":"uuid-1","email":"ana@x.com","user_metadata":{"name":"Ana"}}`))
	}))
	defer srv.Close()

	a := NewSupabaseAuthenticator(srv.URL, "anon-key")
	identity, err := a.Resolve(context.Background(), "opaque-token")
	require.NoError(t, err)
	assert.Equal(t, "uuid-1", identity.ID)
	assert.Equal(t, "ana@x.com", identity.Email)
	assert.Equal(t, "Ana", identity.Name)
}

func TestSupabaseResolveRejected(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	a := NewSupabaseAuthenticator(srv.URL, "anon-key")
	_, err := a.Resolve(context.Background(), "bad-token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestSupabaseResolveMalformedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"email":"no id here"}`))
	}))
	defer srv.Close()

	a := NewSupabaseAuthenticator(srv.URL, "anon-key")
	_, err := a.Resolve(context.Background(), "token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestSupabaseResolveNetworkFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // Immediately closed: every call fails at the dial

	a := NewSupabaseAuthenticator(srv.URL, "anon-key")
	_, err := a.Resolve(context.Background(), "token")
	assert.ErrorIs(t, err, ErrInvalidToken, "a provider outage must surface as invalid, not pass through")
}
