package parse

import (
	"fmt"

	"github.com/aristath/nem-sentinel/internal/domain"
)

// DispatchBundle is the fully merged, ready-to-persist output of one
// DISPATCHIS bundle.
type DispatchBundle struct {
	Prices          []domain.DispatchPriceRow
	FCAS            []domain.FCASServiceRow
	Interconnectors []domain.InterconnectorFlowRow
	Constraints     []domain.ConstraintRow
	Units           []domain.GeneratorDispatchRow
	Warnings        []string
}

type dispatchKey struct {
	region domain.Region
	settle int64 // UnixNano, for map comparability
}

// MergeDispatch buckets the raw records produced by Walk on a DISPATCHIS
// bundle, merges PRICE with REGIONSUM on (region, interval) in the order
// PRICE rows were encountered, and emits one FCASServiceRow per non-zero
// service price. It is a pure post-pass: parsers never merge on their own.
func MergeDispatch(records []any) DispatchBundle {
	var out DispatchBundle
	regionSums := map[dispatchKey]regionSumRecord{}
	var prices []priceRecord

	for _, rec := range records {
		switch v := rec.(type) {
		case priceRecord:
			prices = append(prices, v)
		case regionSumRecord:
			regionSums[dispatchKey{v.Region, v.SettleAt.UnixNano()}] = v
		case domain.InterconnectorFlowRow:
			out.Interconnectors = append(out.Interconnectors, v)
		case domain.ConstraintRow:
			out.Constraints = append(out.Constraints, v)
		case domain.GeneratorDispatchRow:
			out.Units = append(out.Units, v)
		}
	}

	for _, p := range prices {
		key := dispatchKey{p.Region, p.SettleAt.UnixNano()}
		rs, ok := regionSums[key]
		if !ok {
			out.Warnings = append(out.Warnings, fmt.Sprintf(
				"merge: no REGIONSUM for %s @ %s, dropping interval rather than zero-filling", p.Region, p.SettleAt))
			continue
		}

		row := domain.DispatchPriceRow{
			Region:         p.Region,
			SettlementDate: p.SettleAt,
			RRP:            p.RRP,
			EEP:            p.EEP,
			ROP:            p.ROP,
			PriceCapped:    p.Capped,
			RegionalDemand: rs.TotalDemand,
			DispatchedGen:  rs.AvailableGen,
			NetInterchange: rs.NetInterchange,
			FCASPrice:      p.FCASPrice,
			FCASRequiredMW: rs.FCASRequiredMW,
			PriceFirmness:  p.Firmness,
			LastChanged:    p.LastChanged,
		}
		out.Prices = append(out.Prices, row)

		for _, svc := range domain.FCASServices {
			price := p.FCASPrice[svc]
			if price == 0 {
				continue
			}
			out.FCAS = append(out.FCAS, domain.FCASServiceRow{
				Region:         p.Region,
				Service:        svc,
				SettlementDate: p.SettleAt,
				Price:          price,
			})
		}
	}
	return out
}
