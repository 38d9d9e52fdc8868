// Package identity resolves the bearer token on each request to the current
// customer. Authentication itself lives in the upstream shop API; this
// service only relays tokens and consumes the identity they prove.
package identity

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"gardenshop/internal/domain"
)

// User is the current customer as reported by the auth collaborator. The ID
// keys the cart; the contact fields prefill the payment widget.
type User struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

type Resolver interface {
	Resolve(ctx context.Context, token string) (*User, error)
}

type httpResolver struct {
	baseURL    string
	httpClient *http.Client
}

// NewHTTPResolver resolves tokens against the upstream profile endpoint.
func NewHTTPResolver(baseURL string) Resolver {
	return &httpResolver{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

func (r *httpResolver) Resolve(ctx context.Context, token string) (*User, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, r.baseURL+"/auth/me", nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("resolve identity: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		return nil, domain.ErrUnauthorized
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("resolve identity: unexpected status %d", resp.StatusCode)
	}

	var user User
	if err := json.NewDecoder(resp.Body).Decode(&user); err != nil {
		return nil, fmt.Errorf("resolve identity: decode: %w", err)
	}
	if user.ID == "" {
		return nil, domain.ErrUnauthorized
	}
	return &user, nil
}
