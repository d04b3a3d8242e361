package authclient

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func TestVerifyReturnsIdentityOnValidToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "Bearer good-token", r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"valid":true,"userId":"u1","email":"a@example.com"}`))
	}))
	defer srv.Close()

	client := New(srv.URL, zerolog.Nop())
	identity, valid, err := client.Verify(context.Background(), "good-token")
	require.NoError(t, err)
	require.True(t, valid)
	require.Equal(t, "u1", identity.UserID)
	require.Equal(t, "a@example.com", identity.Email)
}

func TestVerifyReturnsInvalidOn401(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	client := New(srv.URL, zerolog.Nop())
	_, valid, err := client.Verify(context.Background(), "bad-token")
	require.NoError(t, err)
	require.False(t, valid)
}

func TestVerifyReturnsErrorOnCollaboratorFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	client := New(srv.URL, zerolog.Nop())
	_, valid, err := client.Verify(context.Background(), "token")
	require.Error(t, err)
	require.False(t, valid)
}
