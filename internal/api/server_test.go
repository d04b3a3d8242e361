package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/aristath/nem-sentinel/internal/authclient"
	"github.com/aristath/nem-sentinel/internal/cache"
	"github.com/aristath/nem-sentinel/internal/domain"
	"github.com/aristath/nem-sentinel/internal/hub"
	"github.com/aristath/nem-sentinel/internal/ledger"
	"github.com/aristath/nem-sentinel/internal/storage"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func newTestAPIServer(t *testing.T) (*Server, string) {
	t.Helper()

	authSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
		if token != "valid-token" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"valid":true,"userId":"user-1","email":"u@example.com"}`))
	}))
	t.Cleanup(authSrv.Close)

	marketDB, err := storage.Open(filepath.Join(t.TempDir(), "market.db"), storage.ProfileMarket)
	require.NoError(t, err)
	t.Cleanup(func() { marketDB.Close() })

	ledgerDB, err := storage.Open(filepath.Join(t.TempDir(), "ledger.db"), storage.ProfileLedger)
	require.NoError(t, err)
	t.Cleanup(func() { ledgerDB.Close() })

	require.NoError(t, marketDB.UpsertDispatchPrices(context.Background(), []domain.DispatchPriceRow{
		{
			Region:         domain.NSW1,
			SettlementDate: time.Now().UTC(),
			RRP:            134.85637,
			RegionalDemand: 9334.46,
			FCASPrice:      map[domain.FCASService]float64{},
			FCASRequiredMW: map[domain.FCASService]float64{},
		},
	}))

	log := zerolog.Nop()
	server := New(Config{
		Port:      0,
		Log:       log,
		DB:        marketDB,
		Ledger:    ledger.New(ledgerDB, log),
		Hub:       hub.New("", log),
		Auth:      authclient.New(authSrv.URL, log),
		Cache:     cache.New(60 * time.Second),
		Coalescer: cache.NewCoalescer(),
	})
	return server, authSrv.URL
}

func TestLatestPricesRequiresAuth(t *testing.T) {
	server, _ := newTestAPIServer(t)

	req := httptest.NewRequest(http.MethodGet, "/api/prices/latest", nil)
	rec := httptest.NewRecorder()
	server.router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestLatestPricesReturnsSeededRow(t *testing.T) {
	server, _ := newTestAPIServer(t)

	req := httptest.NewRequest(http.MethodGet, "/api/prices/latest", nil)
	req.Header.Set("Authorization", "Bearer valid-token")
	rec := httptest.NewRecorder()
	server.router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "miss", rec.Header().Get("X-Cache"))

	var rows []domain.DispatchPriceRow
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &rows))
	require.Len(t, rows, 1)
	require.Equal(t, domain.NSW1, rows[0].Region)

	// second call within TTL should hit the cache
	rec2 := httptest.NewRecorder()
	server.router.ServeHTTP(rec2, req)
	require.Equal(t, "kv", rec2.Header().Get("X-Cache"))
}

func TestOpenAndClosePositionRoundTrip(t *testing.T) {
	server, _ := newTestAPIServer(t)

	openBody := strings.NewReader(`{"region":"NSW1","side":"LONG","entry_price":100,"quantity":10}`)
	req := httptest.NewRequest(http.MethodPost, "/api/trading/position", openBody)
	req.Header.Set("Authorization", "Bearer valid-token")
	rec := httptest.NewRecorder()
	server.router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusCreated, rec.Code)

	var pos domain.Position
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &pos))
	require.NotEmpty(t, pos.ID)

	closeBody := strings.NewReader(`{"exit_price":120}`)
	closeReq := httptest.NewRequest(http.MethodPost, "/api/trading/close/"+pos.ID, closeBody)
	closeReq.Header.Set("Authorization", "Bearer valid-token")
	closeRec := httptest.NewRecorder()
	server.router.ServeHTTP(closeRec, closeReq)
	require.Equal(t, http.StatusOK, closeRec.Code)

	var result closePositionResponse
	require.NoError(t, json.Unmarshal(closeRec.Body.Bytes(), &result))
	require.True(t, result.Success)
	require.Equal(t, "200", result.PnL.String())

	// second close of the same id is a 404, not idempotent
	closeRec2 := httptest.NewRecorder()
	closeReq2 := httptest.NewRequest(http.MethodPost, "/api/trading/close/"+pos.ID, strings.NewReader(`{"exit_price":130}`))
	closeReq2.Header.Set("Authorization", "Bearer valid-token")
	server.router.ServeHTTP(closeRec2, closeReq2)
	require.Equal(t, http.StatusNotFound, closeRec2.Code)
}
