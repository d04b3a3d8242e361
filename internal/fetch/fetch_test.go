package fetch

import (
	"archive/zip"
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildZip(t *testing.T, files map[string]string) []byte {
	t.Helper()
	var buf bytes.Buffer
	w := zip.NewWriter(&buf)
	for name, content := range files {
		f, err := w.Create(name)
		require.NoError(t, err)
		_, err = f.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	return buf.Bytes()
}

func TestExtractTabularByFamily(t *testing.T) {
	z := buildZip(t, map[string]string{
		"PUBLIC_DISPATCHIS_202508231905.CSV": "I,DISPATCH,...\n",
	})
	got, err := ExtractTabular(z, "DISPATCHIS")
	require.NoError(t, err)
	assert.Contains(t, got, "I,DISPATCH")
}

func TestExtractTabularFallsBackToCSVExtension(t *testing.T) {
	z := buildZip(t, map[string]string{
		"unrelated.csv": "C,comment\n",
	})
	got, err := ExtractTabular(z, "SCADA")
	require.NoError(t, err)
	assert.Contains(t, got, "C,comment")
}

func TestExtractTabularNoMember(t *testing.T) {
	z := buildZip(t, map[string]string{"readme.txt": "nothing here"})
	_, err := ExtractTabular(z, "SCADA")
	require.Error(t, err)
}

func TestFetchRetriesOn5xxThenSucceeds(t *testing.T) {
	var calls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls < 2 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.Write([]byte("ok"))
	}))
	defer srv.Close()

	f := New(srv.Client(), zerolog.Nop())
	body, err := f.Fetch(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.Equal(t, "ok", string(body))
	assert.Equal(t, 2, calls)
}

func TestFetchDoesNotRetry4xx(t *testing.T) {
	var calls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	f := New(srv.Client(), zerolog.Nop())
	_, err := f.Fetch(context.Background(), srv.URL)
	require.Error(t, err)
	assert.Equal(t, 1, calls)
}
