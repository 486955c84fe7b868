package auth

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/sirupsen/logrus" // Logging library
)

// SupabaseAuthenticator validates opaque bearer tokens against the Supabase
// auth endpoint. The identity it returns is the source of truth for
// ownership checks; the local users table is not consulted on this path.
type SupabaseAuthenticator struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

// NewSupabaseAuthenticator builds the external-identity trust root
func NewSupabaseAuthenticator(baseURL, apiKey string) *SupabaseAuthenticator {
	return &SupabaseAuthenticator{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

// supabaseUser is the subset of the /auth/v1/user response we consume
type supabaseUser struct {
	ID           string `json:"id"`
	Email        string `json:"email"`
	UserMetadata struct {
		Name     string `json:"name"`
		FullName string `json:"full_name"`
	} `json:"user_metadata"`
}

// Resolve calls the identity service. Provider errors, network failures and
// "no such user" all collapse to ErrInvalidToken; nothing is retried, so a
// transient outage surfaces as a 401 rather than a silent pass-through.
func (a *SupabaseAuthenticator) Resolve(ctx context.Context, token string) (*Identity, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, a.baseURL+"/auth/v1/user", nil)
	if err != nil {
		return nil, ErrInvalidToken
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("apikey", a.apiKey)

	resp, err := a.client.Do(req)
	if err != nil {
		logrus.WithField("error", err.Error()).Warn("identity service unreachable")
		return nil, ErrInvalidToken
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, ErrInvalidToken
	}

	var u supabaseUser
	if err := json.NewDecoder(resp.Body).Decode(&u); err != nil || u.ID == "" {
		return nil, ErrInvalidToken
	}

	name := u.UserMetadata.Name
	if name == "" {
		name = u.UserMetadata.FullName
	}
	return &Identity{ID: u.ID, Email: u.Email, Name: name}, nil
}
