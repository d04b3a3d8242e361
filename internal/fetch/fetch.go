// Package fetch retrieves a NEM archive bundle over HTTP with retry and
// backoff, then decompresses it down to the single tabular member the
// record parsers expect.
package fetch

import (
	"archive/zip"
	"bytes"
	"context"
	"fmt"
	"io"
	"math"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

const (
	maxAttempts = 3
	baseDelay   = 1 * time.Second
	maxDelay    = 8 * time.Second
)

// Fetcher downloads and decompresses NEM report bundles.
type Fetcher struct {
	client *http.Client
	log    zerolog.Logger
}

// New creates a Fetcher. A nil client gets a 60s-timeout default.
func New(client *http.Client, log zerolog.Logger) *Fetcher {
	if client == nil {
		client = &http.Client{Timeout: 60 * time.Second}
	}
	return &Fetcher{client: client, log: log.With().Str("component", "fetcher").Logger()}
}

// Fetch GETs url, retrying on network errors and 5xx with exponential
// backoff (base 1s, cap 8s). 4xx responses are not retried.
func (f *Fetcher) Fetch(ctx context.Context, url string) ([]byte, error) {
	var lastErr error
	delay := baseDelay
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		body, status, err := f.attempt(ctx, url)
		if err == nil {
			return body, nil
		}
		lastErr = err
		if status >= 400 && status < 500 {
			return nil, fmt.Errorf("fetch: %s returned %d (not retrying): %w", url, status, err)
		}
		f.log.Warn().Err(err).Int("attempt", attempt).Str("url", url).Msg("archive fetch failed, retrying")
		if attempt == maxAttempts {
			break
		}
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(delay):
		}
		delay = time.Duration(math.Min(float64(delay*2), float64(maxDelay)))
	}
	return nil, fmt.Errorf("fetch: %s failed after %d attempts: %w", url, maxAttempts, lastErr)
}

func (f *Fetcher) attempt(ctx context.Context, url string) ([]byte, int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, 0, err
	}
	resp, err := f.client.Do(req)
	if err != nil {
		return nil, 0, err
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, resp.StatusCode, err
	}
	if resp.StatusCode >= 400 {
		return nil, resp.StatusCode, fmt.Errorf("status %d", resp.StatusCode)
	}
	return body, resp.StatusCode, nil
}

// ExtractTabular opens zipBytes and returns the UTF-8 text of the first
// member whose name contains family (case-insensitive), falling back to
// the first ".CSV"/".csv" member. Returns an error (fatal, per spec.md §4.4)
// if the archive can't be opened or no tabular member is found.
func ExtractTabular(zipBytes []byte, family string) (string, error) {
	r, err := zip.NewReader(bytes.NewReader(zipBytes), int64(len(zipBytes)))
	if err != nil {
		return "", fmt.Errorf("fetch: opening archive: %w", err)
	}

	var fallback *zip.File
	upperFamily := strings.ToUpper(family)
	for _, zf := range r.File {
		name := strings.ToUpper(zf.Name)
		if strings.Contains(name, upperFamily) {
			return readZipMember(zf)
		}
		if fallback == nil && strings.HasSuffix(name, ".CSV") {
			fallback = zf
		}
	}
	if fallback != nil {
		return readZipMember(fallback)
	}
	return "", fmt.Errorf("fetch: no tabular member found for family %q", family)
}

func readZipMember(zf *zip.File) (string, error) {
	rc, err := zf.Open()
	if err != nil {
		return "", fmt.Errorf("fetch: opening member %s: %w", zf.Name, err)
	}
	defer rc.Close()
	data, err := io.ReadAll(rc)
	if err != nil {
		return "", fmt.Errorf("fetch: reading member %s: %w", zf.Name, err)
	}
	return string(data), nil
}
