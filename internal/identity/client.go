// Package identity talks to the external users service that owns
// OAuth sign-in and session tokens. Nothing about users is stored
// locally; a session token resolves to a user on every request.
package identity

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

// User is the slice of the users-service payload this app consumes.
type User struct {
	ID      string `json:"id"`
	Email   string `json:"email"`
	Name    string `json:"name,omitempty"`
	Picture string `json:"picture,omitempty"`
}

type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

func NewClient(baseURL, apiKey string) *Client {
	return &Client{
		baseURL:    baseURL,
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
}

// RedirectURL asks the users service for the Google OAuth redirect URL.
func (c *Client) RedirectURL(ctx context.Context) (string, error) {
	var out struct {
		RedirectURL string `json:"redirect_url"`
	}
	if err := c.do(ctx, http.MethodGet, "/oauth/google/redirect_url", nil, "", &out); err != nil {
		return "", err
	}
	return out.RedirectURL, nil
}

// ExchangeCode trades an OAuth authorization code for an opaque
// session token.
func (c *Client) ExchangeCode(ctx context.Context, code string) (string, error) {
	body := map[string]string{"code": code}
	var out struct {
		SessionToken string `json:"session_token"`
	}
	if err := c.do(ctx, http.MethodPost, "/sessions", body, "", &out); err != nil {
		return "", err
	}
	return out.SessionToken, nil
}

// CurrentUser resolves a session token to its user. An invalid or
// expired token yields (nil, nil): not an error, just anonymous.
func (c *Client) CurrentUser(ctx context.Context, token string) (*User, error) {
	var out User
	if err := c.do(ctx, http.MethodGet, "/users/me", nil, token, &out); err != nil {
		var se *statusError
		if errors.As(err, &se) && se.code == http.StatusUnauthorized {
			return nil, nil
		}
		return nil, err
	}
	if out.ID == "" {
		return nil, nil
	}
	return &out, nil
}

// DeleteSession revokes a session token. Best-effort by contract: the
// caller clears the cookie regardless.
func (c *Client) DeleteSession(ctx context.Context, token string) error {
	return c.do(ctx, http.MethodDelete, "/sessions/current", nil, token, nil)
}

type statusError struct {
	code int
	body string
}

func (e *statusError) Error() string {
	return fmt.Sprintf("users service returned %d: %s", e.code, e.body)
}

func (c *Client) do(ctx context.Context, method, path string, body any, sessionToken string, out any) error {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("x-api-key", c.apiKey)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if sessionToken != "" {
		req.Header.Set("Authorization", "Bearer "+sessionToken)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("users service request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return &statusError{code: resp.StatusCode, body: string(data)}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode users service response: %w", err)
	}
	return nil
}
