package hub

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/aristath/nem-sentinel/internal/domain"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"nhooyr.io/websocket"
	"nhooyr.io/websocket/wsjson"
)

func newTestServer(t *testing.T, h *Hub, regions []domain.Region) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := websocket.Accept(w, r, nil)
		if err != nil {
			return
		}
		h.Accept(r.Context(), conn, "user-1", regions)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func dial(t *testing.T, srv *httptest.Server) *websocket.Conn {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	url := "ws" + srv.URL[len("http"):]
	conn, _, err := websocket.Dial(ctx, url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close(websocket.StatusNormalClosure, "") })
	return conn
}

func TestSubscriberReceivesInitialFrame(t *testing.T) {
	h := New(filepath.Join(t.TempDir(), "snapshot.bin"), zerolog.Nop())
	srv := newTestServer(t, h, nil)
	conn := dial(t, srv)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	var frame map[string]any
	require.NoError(t, wsjson.Read(ctx, conn, &frame))
	require.Equal(t, "INITIAL", frame["type"])
}

func TestBroadcastFiltersByRegion(t *testing.T) {
	h := New(filepath.Join(t.TempDir(), "snapshot.bin"), zerolog.Nop())
	srv := newTestServer(t, h, []domain.Region{domain.NSW1})
	conn := dial(t, srv)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	var initial map[string]any
	require.NoError(t, wsjson.Read(ctx, conn, &initial))

	// give Accept's registration a moment to land before broadcasting
	time.Sleep(50 * time.Millisecond)

	h.Broadcast(context.Background(), []domain.DispatchPriceRow{
		{Region: domain.NSW1, RRP: 80},
		{Region: domain.VIC1, RRP: 40},
	})

	var update map[string]any
	require.NoError(t, wsjson.Read(ctx, conn, &update))
	require.Equal(t, "PRICE_UPDATE", update["type"])
	prices, ok := update["prices"].([]any)
	require.True(t, ok)
	require.Len(t, prices, 1) // VIC1 filtered out
}

func TestBroadcastPersistsAndRestoresSnapshot(t *testing.T) {
	path := filepath.Join(t.TempDir(), "snapshot.bin")
	h := New(path, zerolog.Nop())
	h.Broadcast(context.Background(), []domain.DispatchPriceRow{{Region: domain.QLD1, RRP: 55}})

	h2 := New(path, zerolog.Nop())
	snap := h2.snapshot()
	require.Equal(t, 55.0, snap[domain.QLD1].RRP)
}
