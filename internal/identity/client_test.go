package identity

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStub(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(srv.URL, "test-key")
}

func TestRedirectURL(t *testing.T) {
	client := newStub(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/oauth/google/redirect_url", r.URL.Path)
		assert.Equal(t, "test-key", r.Header.Get("x-api-key"))
		json.NewEncoder(w).Encode(map[string]string{"redirect_url": "https://accounts.google.com/o/oauth2/auth?x=1"})
	})

	url, err := client.RedirectURL(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "https://accounts.google.com/o/oauth2/auth?x=1", url)
}

func TestExchangeCode(t *testing.T) {
	client := newStub(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/sessions", r.URL.Path)

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "auth-code-123", body["code"])

		json.NewEncoder(w).Encode(map[string]string{"session_token": "tok-abc"})
	})

	token, err := client.ExchangeCode(context.Background(), "auth-code-123")
	require.NoError(t, err)
	assert.Equal(t, "tok-abc", token)
}

func TestCurrentUser(t *testing.T) {
	client := newStub(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/users/me", r.URL.Path)
		if r.Header.Get("Authorization") != "Bearer tok-abc" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		json.NewEncoder(w).Encode(User{ID: "user-1", Email: "kavya@example.com"})
	})

	user, err := client.CurrentUser(context.Background(), "tok-abc")
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.Equal(t, "user-1", user.ID)
	assert.Equal(t, "kavya@example.com", user.Email)
}

func TestCurrentUserInvalidTokenIsAnonymous(t *testing.T) {
	client := newStub(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})

	user, err := client.CurrentUser(context.Background(), "expired")
	require.NoError(t, err, "an invalid token is anonymous, not an error")
	assert.Nil(t, user)
}

func TestCurrentUserServiceFailure(t *testing.T) {
	client := newStub(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})

	_, err := client.CurrentUser(context.Background(), "tok-abc")
	assert.Error(t, err)
}

func TestDeleteSession(t *testing.T) {
	var called bool
	client := newStub(t, func(w http.ResponseWriter, r *http.Request) {
		called = true
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "/sessions/current", r.URL.Path)
		assert.Equal(t, "Bearer tok-abc", r.Header.Get("Authorization"))
		w.WriteHeader(http.StatusNoContent)
	})

	require.NoError(t, client.DeleteSession(context.Background(), "tok-abc"))
	assert.True(t, called)
}
