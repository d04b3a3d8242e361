package parse

import (
	"fmt"

	"github.com/aristath/nem-sentinel/internal/domain"
	"github.com/aristath/nem-sentinel/internal/timemap"
)

func init() {
	registerHeaderMapped("TRADING", "PRICE", parseTradingPrice)
	registerHeaderMapped("TRADING", "REGIONSUM", parseTradingRegionSum)
}

// TRADING rows parse in header-mapped mode (spec.md §4.4): the "I,TRADING,
// PRICE,..." header row that precedes this subtype's data rows names each
// column, and lookups fall back to these historical positions only when a
// name isn't present in the header — robustness to upstream column
// additions the fixed-position families don't get.
const (
	tradePriceRegionFallback = 5
	tradePriceSettleFallback = 6
	tradePriceRRPFallback    = 7

	tradeRSRegionFallback = 5
	tradeRSSettleFallback = 6
	tradeRSDemandFallback = 7
	tradeRSAvailFallback  = 8
)

func parseTradingPrice(row Row, headers HeaderIndex) (any, error) {
	region, err := row.Field(headers.Get("REGIONID", tradePriceRegionFallback))
	if err != nil || region == "" {
		return nil, fmt.Errorf("missing region id")
	}
	settleStr, err := row.Field(headers.Get("SETTLEMENTDATE", tradePriceSettleFallback))
	if err != nil {
		return nil, err
	}
	settle, err := timemap.ParseSourceToUTC(settleStr)
	if err != nil {
		return nil, err
	}
	rrp, _, err := row.ClampedPrice(headers.Get("RRP", tradePriceRRPFallback))
	if err != nil {
		return nil, err
	}
	return domain.TradingIntervalPrice{
		Region:         domain.Region(region),
		SettlementDate: settle,
		RRP:            rrp,
	}, nil
}

func parseTradingRegionSum(row Row, headers HeaderIndex) (any, error) {
	region, err := row.Field(headers.Get("REGIONID", tradeRSRegionFallback))
	if err != nil || region == "" {
		return nil, fmt.Errorf("missing region id")
	}
	settleStr, err := row.Field(headers.Get("SETTLEMENTDATE", tradeRSSettleFallback))
	if err != nil {
		return nil, err
	}
	settle, err := timemap.ParseSourceToUTC(settleStr)
	if err != nil {
		return nil, err
	}
	demand, _, err := row.ClampedMW(headers.Get("TOTALDEMAND", tradeRSDemandFallback))
	if err != nil {
		return nil, err
	}
	avail, _, err := row.ClampedMW(headers.Get("AVAILABLEGENERATION", tradeRSAvailFallback))
	if err != nil {
		return nil, err
	}
	return domain.TradingRegionSum{
		Region:         domain.Region(region),
		SettlementDate: settle,
		TotalDemand:    demand,
		AvailableGen:   avail,
	}, nil
}
