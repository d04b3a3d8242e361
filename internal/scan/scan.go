// Package scan fetches a NEM reporting directory's HTML index and extracts
// candidate archive filenames for a report family.
package scan

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

const userAgent = "Mozilla/5.0 (compatible; nem-sentinel/1.0; +https://github.com/aristath/nem-sentinel)"

const maxRetries = 3

// hrefPattern pulls href targets out of an anchor tag.
var hrefPattern = regexp.MustCompile(`(?i)href\s*=\s*["']([^"']+\.zip)["']`)

// filenamePattern matches any PUBLIC_<FAMILY>_<12 digits>_<seq>.zip token
// appearing anywhere in the body, independent of anchor markup.
var filenamePattern = regexp.MustCompile(`PUBLIC_[A-Z0-9_]+_\d{12}_\d+\.zip`)

// timestampPattern extracts the embedded YYYYMMDDHHMM token from a filename.
var timestampPattern = regexp.MustCompile(`(\d{12})`)

// familyFallbackPattern builds a family-specific fallback regex, used when
// the generic PUBLIC_ pattern fails to isolate a family (some families are
// published under slightly different prefixes).
func familyFallbackPattern(family string) *regexp.Regexp {
	return regexp.MustCompile(`(?i)[\w-]*` + regexp.QuoteMeta(family) + `[\w-]*_\d{12}_\d+\.zip`)
}

// Scanner fetches and parses a NEM reporting directory index.
type Scanner struct {
	client *http.Client
	log    zerolog.Logger
}

// New creates a Scanner with the given HTTP client (nil uses a sane
// default with a 30s timeout).
func New(client *http.Client, log zerolog.Logger) *Scanner {
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}
	return &Scanner{client: client, log: log.With().Str("component", "scanner").Logger()}
}

// isTruncated reports whether body looks like a cut-off HTML response: the
// upstream directory listing occasionally truncates under load.
func isTruncated(body []byte) bool {
	if len(body) < 500 {
		return true
	}
	trimmed := strings.TrimSpace(string(body))
	lower := strings.ToLower(trimmed)
	if !strings.Contains(lower, "</html>") && !strings.Contains(lower, "</body>") {
		return true
	}
	if strings.HasSuffix(trimmed, "...") {
		return true
	}
	if strings.Contains(lower, "[truncated]") {
		return true
	}
	return false
}

// fetchIndex GETs url, retrying up to maxRetries times on truncated bodies.
func (s *Scanner) fetchIndex(ctx context.Context, url string) ([]byte, error) {
	var lastErr error
	for attempt := 1; attempt <= maxRetries; attempt++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return nil, fmt.Errorf("scan: build request: %w", err)
		}
		req.Header.Set("User-Agent", userAgent)

		resp, err := s.client.Do(req)
		if err != nil {
			lastErr = err
			s.log.Warn().Err(err).Int("attempt", attempt).Str("url", url).Msg("directory fetch failed")
			continue
		}
		body, err := io.ReadAll(resp.Body)
		resp.Body.Close()
		if err != nil {
			lastErr = err
			continue
		}
		if resp.StatusCode >= 400 {
			lastErr = fmt.Errorf("scan: directory index returned %d", resp.StatusCode)
			continue
		}
		if isTruncated(body) {
			lastErr = fmt.Errorf("scan: truncated response (%d bytes)", len(body))
			s.log.Warn().Int("attempt", attempt).Int("bytes", len(body)).Msg("truncated directory index, retrying")
			continue
		}
		return body, nil
	}
	return nil, fmt.Errorf("scan: fetching %s after %d attempts: %w", url, maxRetries, lastErr)
}

// List returns every candidate filename for family found in baseURL's
// directory listing, deduped. An empty slice (no error) is returned when
// nothing matches.
func (s *Scanner) List(ctx context.Context, baseURL, family string) ([]string, error) {
	body, err := s.fetchIndex(ctx, baseURL)
	if err != nil {
		return nil, err
	}
	return extractFilenames(string(body), family), nil
}

// extractFilenames unions three extraction strategies and filters to the
// requested family.
func extractFilenames(body, family string) []string {
	seen := map[string]struct{}{}
	var out []string
	add := func(name string) {
		if !strings.Contains(strings.ToUpper(name), strings.ToUpper(family)) {
			return
		}
		if _, ok := seen[name]; ok {
			return
		}
		seen[name] = struct{}{}
		out = append(out, name)
	}

	for _, m := range hrefPattern.FindAllStringSubmatch(body, -1) {
		add(lastPathSegment(m[1]))
	}
	for _, m := range filenamePattern.FindAllString(body, -1) {
		add(m)
	}
	for _, m := range familyFallbackPattern(family).FindAllString(body, -1) {
		add(m)
	}
	return out
}

func lastPathSegment(href string) string {
	if i := strings.LastIndexByte(href, '/'); i >= 0 {
		return href[i+1:]
	}
	return href
}

// Latest returns the filename with the greatest embedded YYYYMMDDHHMM
// timestamp, or "" if filenames is empty.
func Latest(filenames []string) string {
	if len(filenames) == 0 {
		return ""
	}
	sorted := make([]string, len(filenames))
	copy(sorted, filenames)
	sort.Slice(sorted, func(i, j int) bool {
		return embeddedTimestamp(sorted[i]) < embeddedTimestamp(sorted[j])
	})
	return sorted[len(sorted)-1]
}

func embeddedTimestamp(filename string) string {
	m := timestampPattern.FindString(filename)
	return m
}
