package api

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/aristath/nem-sentinel/internal/domain"
	"github.com/go-chi/chi/v5"
)

const (
	latestPricesTTL  = 60 * time.Second
	forwardTTL       = 3600 * time.Second
	demandForecastTTL = 300 * time.Second
)

func (s *Server) handleLatestPrices(w http.ResponseWriter, r *http.Request) {
	data, tier, err := servedJSON(r.Context(), s.cache, s.coal, "prices:latest", latestPricesTTL, func(ctx context.Context) (any, error) {
		return s.db.LatestPrices(ctx)
	})
	if err != nil {
		s.log.Error().Err(err).Msg("latest prices query failed")
		writeInternalError(w, r, err)
		return
	}
	cacheHeaders(w, tier, latestPricesTTL)
	w.Header().Set("Content-Type", "application/json")
	w.Write(data)
}

func (s *Server) handlePriceHistory(w http.ResponseWriter, r *http.Request) {
	region := domain.Region(chi.URLParam(r, "region"))
	hours := 24
	if h := r.URL.Query().Get("hours"); h != "" {
		if parsed, err := strconv.Atoi(h); err == nil && parsed > 0 {
			hours = parsed
		}
	}
	since := time.Now().UTC().Add(-time.Duration(hours) * time.Hour)
	key := "prices:history:" + string(region) + ":" + strconv.Itoa(hours)

	data, tier, err := servedJSON(r.Context(), s.cache, s.coal, key, latestPricesTTL, func(ctx context.Context) (any, error) {
		return s.db.PriceHistory(ctx, region, since)
	})
	if err != nil {
		s.log.Error().Err(err).Str("region", string(region)).Msg("price history query failed")
		writeInternalError(w, r, err)
		return
	}
	cacheHeaders(w, tier, latestPricesTTL)
	w.Header().Set("Content-Type", "application/json")
	w.Write(data)
}

func (s *Server) handleForward(w http.ResponseWriter, r *http.Request) {
	region := domain.Region(chi.URLParam(r, "region"))
	dateParam := r.URL.Query().Get("date")
	date := time.Now().UTC()
	if dateParam != "" {
		parsed, err := time.Parse("2006-01-02", dateParam)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid date, expected YYYY-MM-DD", dateParam)
			return
		}
		date = parsed
	}
	key := "forward:" + string(region) + ":" + date.Format("2006-01-02")

	data, tier, err := servedJSON(r.Context(), s.cache, s.coal, key, forwardTTL, func(ctx context.Context) (any, error) {
		return s.db.ForwardPrices(ctx, region, date)
	})
	if err != nil {
		s.log.Error().Err(err).Str("region", string(region)).Msg("forward prices query failed")
		writeInternalError(w, r, err)
		return
	}
	cacheHeaders(w, tier, forwardTTL)
	w.Header().Set("Content-Type", "application/json")
	w.Write(data)
}

func (s *Server) handleLatestFCAS(w http.ResponseWriter, r *http.Request) {
	data, tier, err := servedJSON(r.Context(), s.cache, s.coal, "fcas:latest", latestPricesTTL, func(ctx context.Context) (any, error) {
		return s.db.LatestFCAS(ctx)
	})
	if err != nil {
		s.log.Error().Err(err).Msg("latest fcas query failed")
		writeInternalError(w, r, err)
		return
	}
	cacheHeaders(w, tier, latestPricesTTL)
	w.Header().Set("Content-Type", "application/json")
	w.Write(data)
}

func (s *Server) handleDemandForecast(w http.ResponseWriter, r *http.Request) {
	region := domain.Region(r.URL.Query().Get("region"))
	if region == "" {
		writeError(w, http.StatusBadRequest, "region query parameter is required", "")
		return
	}
	key := "demand:" + string(region)

	data, tier, err := servedJSON(r.Context(), s.cache, s.coal, key, demandForecastTTL, func(ctx context.Context) (any, error) {
		return s.db.DemandForecast(ctx, region)
	})
	if err != nil {
		s.log.Error().Err(err).Str("region", string(region)).Msg("demand forecast query failed")
		writeInternalError(w, r, err)
		return
	}
	cacheHeaders(w, tier, demandForecastTTL)
	w.Header().Set("Content-Type", "application/json")
	w.Write(data)
}
