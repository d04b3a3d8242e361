package orchestrator

import (
	"archive/zip"
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/aristath/nem-sentinel/internal/cache"
	"github.com/aristath/nem-sentinel/internal/domain"
	"github.com/aristath/nem-sentinel/internal/storage"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

// recordingBroadcaster captures every price slice handed to Broadcast so
// tests can assert the orchestrator pushes live updates to the hub.
type recordingBroadcaster struct {
	calls [][]domain.DispatchPriceRow
}

func (r *recordingBroadcaster) Broadcast(_ context.Context, prices []domain.DispatchPriceRow) {
	r.calls = append(r.calls, prices)
}

func buildZip(t *testing.T, name, content string) []byte {
	t.Helper()
	var buf bytes.Buffer
	w := zip.NewWriter(&buf)
	f, err := w.Create(name)
	require.NoError(t, err)
	_, err = f.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, w.Close())
	return buf.Bytes()
}

// fakeAEMOServer serves a single-entry directory listing plus its archive,
// mimicking enough of the real reporting directory for scan.Scanner and
// fetch.Fetcher to round-trip against.
func fakeAEMOServer(t *testing.T, zipName string, zipBytes []byte) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		// padded well past scan's 500-byte truncation threshold, and must
		// end in </html> so isTruncated doesn't treat it as a cut-off response.
		padding := strings.Repeat("<!-- filler --> ", 40)
		fmt.Fprintf(w, `<html><body>%s<a href="%s">%s</a></body></html>`, padding, zipName, zipName)
	})
	mux.HandleFunc("/"+zipName, func(w http.ResponseWriter, r *http.Request) {
		w.Write(zipBytes)
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestIngestDispatchISBroadcastsAndPersists(t *testing.T) {
	csv := strings.Join([]string{
		"I,DISPATCH,PRICE,1,header...",
		"D,DISPATCH,PRICE,1,RUN1,NSW1,2025/08/23 19:05:00,134.85637,0,0,0,0,0,0,0,0,0,0,0,0,0,FIRM,",
		"D,DISPATCH,REGIONSUM,1,RUN1,NSW1,2025/08/23 19:05:00,9334.46,11004.64,-123.45,0,0,0,0,0,0,0,0,0,0",
	}, "\n")
	zipBytes := buildZip(t, "PUBLIC_DISPATCHIS_202508231905_1.CSV", csv)
	srv := fakeAEMOServer(t, "PUBLIC_DISPATCHIS_202508231905_1.zip", zipBytes)

	db, err := storage.Open(filepath.Join(t.TempDir(), "market.db"), storage.ProfileMarket)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	archive, err := storage.NewArchive(context.Background(), "", "")
	require.NoError(t, err)

	bcast := &recordingBroadcaster{}
	orch := New(srv.URL, db, archive, nil, nil, nil, bcast, zerolog.Nop())

	rows, err := orch.ingestDispatchIS(context.Background())
	require.NoError(t, err)
	require.Greater(t, rows, 0)

	require.Len(t, bcast.calls, 1)
	require.Len(t, bcast.calls[0], 1)
	require.Equal(t, domain.NSW1, bcast.calls[0][0].Region)
	require.InDelta(t, 134.85637, bcast.calls[0][0].RRP, 1e-9)

	persisted, err := db.LatestPrices(context.Background())
	require.NoError(t, err)
	require.Len(t, persisted, 1)
}

func TestIngestDispatchISWritesHotCacheSnapshots(t *testing.T) {
	csv := strings.Join([]string{
		"I,DISPATCH,PRICE,1,header...",
		"D,DISPATCH,PRICE,1,RUN1,NSW1,2025/08/23 19:05:00,134.85637,0,0,0,0,0,0,0,0,0,0,0,0,0,FIRM,",
		"D,DISPATCH,REGIONSUM,1,RUN1,NSW1,2025/08/23 19:05:00,9334.46,11004.64,-123.45,0,0,0,0,0,0,0,0,0,0",
	}, "\n")
	zipBytes := buildZip(t, "PUBLIC_DISPATCHIS_202508231905_1.CSV", csv)
	srv := fakeAEMOServer(t, "PUBLIC_DISPATCHIS_202508231905_1.zip", zipBytes)

	db, err := storage.Open(filepath.Join(t.TempDir(), "market.db"), storage.ProfileMarket)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	archive, err := storage.NewArchive(context.Background(), "", "")
	require.NoError(t, err)

	tieredCache := cache.New(60 * time.Second)
	hotCache := storage.NewHotCache(tieredCache)
	orch := New(srv.URL, db, archive, hotCache, nil, nil, nil, zerolog.Nop())

	_, err = orch.ingestDispatchIS(context.Background())
	require.NoError(t, err)

	_, ok := tieredCache.Get("prices:latest")
	require.True(t, ok)
	_, ok = tieredCache.Get("prices:NSW1")
	require.True(t, ok)
	_, ok = tieredCache.Get("comprehensive:latest")
	require.True(t, ok)
}

func TestTickRecordsSourceState(t *testing.T) {
	// An unreachable base URL forces every fan-out source to fail fast,
	// exercising the state table's failure bookkeeping through Tick.
	db, err := storage.Open(filepath.Join(t.TempDir(), "market.db"), storage.ProfileMarket)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	archive, err := storage.NewArchive(context.Background(), "", "")
	require.NoError(t, err)

	orch := New("http://127.0.0.1:0", db, archive, nil, nil, nil, nil, zerolog.Nop())
	require.NoError(t, orch.Tick(context.Background()))

	states := orch.States()
	require.NotEmpty(t, states)
	for _, s := range states {
		if s.Name == "DISPATCHIS" {
			require.Equal(t, StatusFailed, s.LastStatus)
		}
	}
}
