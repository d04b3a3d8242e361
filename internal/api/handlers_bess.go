package api

import (
	"encoding/json"
	"net/http"
	"sort"
	"time"

	"github.com/aristath/nem-sentinel/internal/domain"
	talib "github.com/markcheno/go-talib"
)

type bessOptimizeRequest struct {
	Region      string  `json:"region"`
	CapacityMWh float64 `json:"capacity_mwh"`
	PowerMW     float64 `json:"power_mw"`
	Efficiency  float64 `json:"efficiency"`
	StartDate   string  `json:"start_date"`
	EndDate     string  `json:"end_date"`
}

type bessOperation struct {
	SettlementDate time.Time `json:"settlement_date"`
	Action         string    `json:"action"` // CHARGE or DISCHARGE
	MW             float64   `json:"mw"`
	Price          float64   `json:"price"`
	SoCAfter       float64   `json:"soc_after_mwh"`
	AboveSMA       bool      `json:"above_sma"`
}

type bessOptimizeResponse struct {
	Region          string          `json:"region"`
	TotalRevenue    float64         `json:"total_revenue"`
	OperationsCount int             `json:"operations_count"`
	Operations      []bessOperation `json:"operations"`
}

const smaWindow = 12 // 1 hour at 5-minute intervals

func (s *Server) handleBESSOptimize(w http.ResponseWriter, r *http.Request) {
	var req bessOptimizeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "malformed request body", err.Error())
		return
	}
	if req.PowerMW <= 0 || req.CapacityMWh <= 0 {
		writeError(w, http.StatusBadRequest, "power_mw and capacity_mwh must be positive", "")
		return
	}
	if req.Efficiency <= 0 || req.Efficiency > 1 {
		req.Efficiency = 0.9
	}

	start, err := time.Parse("2006-01-02", req.StartDate)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid start_date, expected YYYY-MM-DD", req.StartDate)
		return
	}
	end, err := time.Parse("2006-01-02", req.EndDate)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid end_date, expected YYYY-MM-DD", req.EndDate)
		return
	}
	end = end.Add(24 * time.Hour)

	prices, err := s.db.PriceHistory(r.Context(), domain.Region(req.Region), start)
	if err != nil {
		s.log.Error().Err(err).Msg("bess optimize price lookup failed")
		writeInternalError(w, r, err)
		return
	}

	var window []domain.DispatchPriceRow
	for _, p := range prices {
		if p.SettlementDate.Before(end) {
			window = append(window, p)
		}
	}
	sort.Slice(window, func(i, j int) bool { return window[i].SettlementDate.Before(window[j].SettlementDate) })

	resp := optimizeBESS(req.Region, window, req.CapacityMWh, req.PowerMW, req.Efficiency)
	writeJSON(w, http.StatusOK, resp)
}

// optimizeBESS runs the charge-cheap/discharge-expensive sweep: intervals
// are ranked by price, the cheapest are charged (bounded by power_mw and
// remaining capacity headroom) and the most expensive discharged (bounded
// by power_mw, available state of charge, and the round-trip efficiency
// loss applied on discharge). Each operation is labelled against a short
// SMA of the price series for context, not used in the revenue math.
func optimizeBESS(region string, rows []domain.DispatchPriceRow, capacityMWh, powerMW, efficiency float64) bessOptimizeResponse {
	closes := make([]float64, len(rows))
	for i, row := range rows {
		closes[i] = row.RRP
	}
	sma := talib.Sma(closes, smaWindow)

	type ranked struct {
		idx   int
		price float64
	}
	cheapest := make([]ranked, len(rows))
	for i, row := range rows {
		cheapest[i] = ranked{idx: i, price: row.RRP}
	}
	expensive := make([]ranked, len(cheapest))
	copy(expensive, cheapest)

	sort.Slice(cheapest, func(i, j int) bool { return cheapest[i].price < cheapest[j].price })
	sort.Slice(expensive, func(i, j int) bool { return expensive[i].price > expensive[j].price })

	charged := make([]bool, len(rows))
	discharged := make([]bool, len(rows))
	soc := 0.0
	var revenue float64
	var ops []bessOperation

	intervalHours := 5.0 / 60.0
	maxEnergyPerInterval := powerMW * intervalHours

	for _, c := range cheapest {
		if soc >= capacityMWh {
			break
		}
		energy := min(maxEnergyPerInterval, capacityMWh-soc)
		if energy <= 0 {
			continue
		}
		cost := energy * rows[c.idx].RRP
		revenue -= cost
		soc += energy
		charged[c.idx] = true
		ops = append(ops, bessOperation{
			SettlementDate: rows[c.idx].SettlementDate,
			Action:         "CHARGE",
			MW:             energy / intervalHours,
			Price:          rows[c.idx].RRP,
			SoCAfter:       soc,
			AboveSMA:       isAboveSMA(sma, closes, c.idx),
		})
	}

	for _, e := range expensive {
		if charged[e.idx] || discharged[e.idx] || soc <= 0 {
			continue
		}
		energy := min(maxEnergyPerInterval, soc)
		if energy <= 0 {
			continue
		}
		delivered := energy * efficiency
		proceeds := delivered * rows[e.idx].RRP
		revenue += proceeds
		soc -= energy
		discharged[e.idx] = true
		ops = append(ops, bessOperation{
			SettlementDate: rows[e.idx].SettlementDate,
			Action:         "DISCHARGE",
			MW:             delivered / intervalHours,
			Price:          rows[e.idx].RRP,
			SoCAfter:       soc,
			AboveSMA:       isAboveSMA(sma, closes, e.idx),
		})
	}

	sort.Slice(ops, func(i, j int) bool { return ops[i].SettlementDate.Before(ops[j].SettlementDate) })
	if len(ops) > 100 {
		ops = ops[:100]
	}

	return bessOptimizeResponse{
		Region:          region,
		TotalRevenue:    revenue,
		OperationsCount: len(ops),
		Operations:      ops,
	}
}

// isAboveSMA reports whether the price at idx sits above its trailing SMA.
// talib leaves the warm-up window as NaN; those intervals report false.
func isAboveSMA(sma, closes []float64, idx int) bool {
	if idx < 0 || idx >= len(sma) {
		return false
	}
	avg := sma[idx]
	if avg != avg { // NaN check
		return false
	}
	return closes[idx] > avg
}
