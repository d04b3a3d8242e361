package api

import (
	"context"
	"net/http"
	"strings"

	"github.com/aristath/nem-sentinel/internal/authclient"
)

type ctxKey int

const identityKey ctxKey = iota

// requireAuth verifies the Authorization bearer token against the
// external authentication collaborator and stores the resulting identity
// in the request context. Missing header is 401; a rejected token is 401
// with the fixed message "invalid token" (the collaborator's own reason
// for the rejection is not passed through); a collaborator failure is 500.
func (s *Server) requireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if header == "" || !ok || token == "" {
			writeError(w, http.StatusUnauthorized, "missing bearer token", "")
			return
		}

		identity, valid, err := s.auth.Verify(r.Context(), token)
		if err != nil {
			s.log.Error().Err(err).Msg("auth collaborator call failed")
			writeInternalError(w, r, err)
			return
		}
		if !valid {
			writeError(w, http.StatusUnauthorized, "invalid token", "")
			return
		}

		ctx := context.WithValue(r.Context(), identityKey, identity)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func identityFrom(r *http.Request) (authclient.Identity, bool) {
	identity, ok := r.Context().Value(identityKey).(authclient.Identity)
	return identity, ok
}
