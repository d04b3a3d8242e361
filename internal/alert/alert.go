// Package alert sends structured webhook notifications when the validator
// or orchestrator detects a problem worth paging someone about.
package alert

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog"
)

// Sink posts alert payloads to a single configured webhook URL. A blank
// URL disables sending entirely; Send then becomes a no-op.
type Sink struct {
	url    string
	client *http.Client
	log    zerolog.Logger
}

// New creates a Sink. An empty url disables alerting.
func New(url string, log zerolog.Logger) *Sink {
	return &Sink{
		url:    url,
		client: &http.Client{Timeout: 10 * time.Second},
		log:    log.With().Str("component", "alert").Logger(),
	}
}

type payload struct {
	Summary   string         `json:"summary"`
	Fields    map[string]any `json:"fields,omitempty"`
	Timestamp time.Time      `json:"timestamp"`
}

// Send posts summary and fields to the webhook. Failures are logged and
// swallowed: an alert-delivery failure must never take down ingestion.
func (s *Sink) Send(ctx context.Context, summary string, fields map[string]any) error {
	if s.url == "" {
		return nil
	}
	body, err := json.Marshal(payload{Summary: summary, Fields: fields, Timestamp: time.Now()})
	if err != nil {
		return fmt.Errorf("alert: marshal payload: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("alert: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		s.log.Warn().Err(err).Str("summary", summary).Msg("alert delivery failed")
		return nil
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		s.log.Warn().Int("status", resp.StatusCode).Str("summary", summary).Msg("alert webhook returned non-2xx")
	}
	return nil
}
