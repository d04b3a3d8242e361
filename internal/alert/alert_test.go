package alert

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func TestSendPostsPayload(t *testing.T) {
	var received payload
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	sink := New(srv.URL, zerolog.Nop())
	err := sink.Send(context.Background(), "ingest failed", map[string]any{"source": "DISPATCHIS"})
	require.NoError(t, err)
	require.Equal(t, "ingest failed", received.Summary)
	require.Equal(t, "DISPATCHIS", received.Fields["source"])
}

func TestSendWithEmptyURLIsNoOp(t *testing.T) {
	sink := New("", zerolog.Nop())
	err := sink.Send(context.Background(), "never sent", nil)
	require.NoError(t, err)
}

func TestSendSwallowsWebhookFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	sink := New(srv.URL, zerolog.Nop())
	err := sink.Send(context.Background(), "still ok", nil)
	require.NoError(t, err)
}
