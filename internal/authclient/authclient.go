// Package authclient calls the external authentication collaborator that
// the ReadAPI's bearer-token middleware depends on (spec.md §4.9). The
// plain *http.Client-wrapped-in-a-struct shape, reporting "the call itself
// failed" as an error and "the token was rejected" as valid=false with a
// nil error, is grounded on the teacher's internal/clients/exchangerate.Client.
package authclient

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog"
)

// Identity is what the collaborator returns for a valid token.
type Identity struct {
	UserID string
	Email  string
}

// Client calls one external identity service's verify endpoint.
type Client struct {
	baseURL string
	client  *http.Client
	log     zerolog.Logger
}

// New builds a Client against baseURL (e.g. "https://auth.internal").
func New(baseURL string, log zerolog.Logger) *Client {
	return &Client{
		baseURL: baseURL,
		client:  &http.Client{Timeout: 5 * time.Second},
		log:     log.With().Str("component", "authclient").Logger(),
	}
}

type verifyResponse struct {
	Valid  bool   `json:"valid"`
	UserID string `json:"userId"`
	Email  string `json:"email"`
}

// Verify exchanges a bearer token for an Identity. The bool return
// reports whether the token was valid (not an error); an error return
// means the collaborator itself could not be reached or misbehaved,
// which the ReadAPI middleware maps to 500 rather than 401.
func (c *Client) Verify(ctx context.Context, token string) (Identity, bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/verify", nil)
	if err != nil {
		return Identity{}, false, fmt.Errorf("authclient: build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.client.Do(req)
	if err != nil {
		return Identity{}, false, fmt.Errorf("authclient: verify request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		return Identity{}, false, nil
	}
	if resp.StatusCode != http.StatusOK {
		return Identity{}, false, fmt.Errorf("authclient: verify returned status %d", resp.StatusCode)
	}

	var body verifyResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return Identity{}, false, fmt.Errorf("authclient: decode verify response: %w", err)
	}
	if !body.Valid {
		return Identity{}, false, nil
	}
	return Identity{UserID: body.UserID, Email: body.Email}, true, nil
}
