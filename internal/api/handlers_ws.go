package api

import (
	"net/http"
	"strings"

	"github.com/aristath/nem-sentinel/internal/domain"
	"nhooyr.io/websocket"
)

// handleWebSocket upgrades the connection and hands it to the LiveHub.
// Authentication here is best-effort via query parameters rather than the
// Authorization header, since browser WebSocket clients cannot set custom
// headers on the upgrade request; an absent userId just means an anonymous
// subscriber that can still receive region-filtered broadcasts.
func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("userId")

	var regions []domain.Region
	if raw := r.URL.Query().Get("regions"); raw != "" {
		for _, part := range strings.Split(raw, ",") {
			part = strings.TrimSpace(part)
			if part != "" {
				regions = append(regions, domain.Region(part))
			}
		}
	}

	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		OriginPatterns: []string{"*"},
	})
	if err != nil {
		s.log.Warn().Err(err).Msg("websocket upgrade failed")
		return
	}
	defer conn.CloseNow()

	s.hub.Accept(r.Context(), conn, userID, regions)
}
