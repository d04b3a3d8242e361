package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/aristath/nem-sentinel/internal/domain"
	"github.com/aristath/nem-sentinel/internal/ledger"
	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
)

func (s *Server) handleListPositions(w http.ResponseWriter, r *http.Request) {
	identity, _ := identityFrom(r)
	positions, err := s.ledger.List(r.Context(), identity.UserID)
	if err != nil {
		s.log.Error().Err(err).Msg("list positions failed")
		writeInternalError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, positions)
}

type openPositionRequest struct {
	Region     string          `json:"region"`
	Side       string          `json:"side"`
	EntryPrice decimal.Decimal `json:"entry_price"`
	Quantity   decimal.Decimal `json:"quantity"`
}

func (s *Server) handleOpenPosition(w http.ResponseWriter, r *http.Request) {
	identity, _ := identityFrom(r)

	var req openPositionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "malformed request body", err.Error())
		return
	}
	side := domain.Side(req.Side)
	if side != domain.Long && side != domain.Short {
		writeError(w, http.StatusBadRequest, "side must be LONG or SHORT", req.Side)
		return
	}
	if req.Quantity.LessThanOrEqual(decimal.Zero) {
		writeError(w, http.StatusBadRequest, "quantity must be positive", "")
		return
	}

	pos, err := s.ledger.Open(r.Context(), identity.UserID, domain.Region(req.Region), side, req.Quantity, req.EntryPrice)
	if err != nil {
		s.log.Error().Err(err).Msg("open position failed")
		writeInternalError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, pos)
}

type closePositionRequest struct {
	ExitPrice decimal.Decimal `json:"exit_price"`
}

type closePositionResponse struct {
	Success bool            `json:"success"`
	PnL     decimal.Decimal `json:"pnl"`
}

func (s *Server) handleClosePosition(w http.ResponseWriter, r *http.Request) {
	identity, _ := identityFrom(r)
	id := chi.URLParam(r, "id")

	var req closePositionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "malformed request body", err.Error())
		return
	}

	pos, err := s.ledger.Close(r.Context(), identity.UserID, id, req.ExitPrice)
	switch {
	case errors.Is(err, ledger.ErrPositionNotFound), errors.Is(err, ledger.ErrAlreadyClosed):
		// a second close of an already-closed position is also a 404, per spec.
		writeError(w, http.StatusNotFound, "position not found", id)
		return
	case err != nil:
		s.log.Error().Err(err).Msg("close position failed")
		writeInternalError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, closePositionResponse{Success: true, PnL: pos.RealisedPnL})
}
