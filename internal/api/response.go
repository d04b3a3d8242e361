package api

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5/middleware"
)

type errorBody struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string, details string) {
	writeJSON(w, status, errorBody{Error: msg, Details: details})
}

// writeInternalError maps an unexpected failure to a generic 500 with a
// correlation id, per spec.md §7's propagation policy. The request's chi
// RequestID doubles as that correlation id.
func writeInternalError(w http.ResponseWriter, r *http.Request, err error) {
	reqID := middleware.GetReqID(r.Context())
	writeJSON(w, http.StatusInternalServerError, errorBody{
		Error:   "internal error",
		Details: "correlation_id=" + reqID,
	})
	_ = err // logged by the caller before this is invoked
}

func cacheHeaders(w http.ResponseWriter, tier string, ttl time.Duration) {
	w.Header().Set("X-Cache", tier)
	w.Header().Set("Cache-Control", "public, max-age="+strconv.Itoa(int(ttl.Seconds())))
}
