package parse

import (
	"fmt"
	"time"

	"github.com/aristath/nem-sentinel/internal/domain"
	"github.com/aristath/nem-sentinel/internal/timemap"
)

func init() {
	register("BATTERY", "DISPATCH", parseBattery)
}

// BatteryRecord is the as-parsed battery dispatch row, before DUID-registry
// enrichment and state-of-charge derivation — both of which need state
// (a registry lookup table, a running energy integral) that a pure parser
// function must not hold, so they happen one layer up in internal/battery
// and internal/duid.
type BatteryRecord struct {
	UnitID         string
	SettlementDate time.Time
	InitialMW      float64
	TotalClearedMW float64
	Availability   float64
	FCASEnablement map[domain.FCASService]float64
}

// Field positions for the D,BATTERY,DISPATCH,... record.
const (
	battDUID        = 5
	battSettleAt    = 6
	battInitialMW   = 7
	battTotalClear  = 8
	battAvail       = 9
	battFCASStart   = 10
)

func parseBattery(row Row, _ HeaderIndex) (any, error) {
	duid, err := row.Field(battDUID)
	if err != nil || duid == "" {
		return nil, fmt.Errorf("missing unit id")
	}
	settleStr, err := row.Field(battSettleAt)
	if err != nil {
		return nil, err
	}
	settle, err := timemap.ParseSourceToUTC(settleStr)
	if err != nil {
		return nil, err
	}
	initial, err := row.Float(battInitialMW)
	if err != nil {
		return nil, err
	}
	cleared, err := row.Float(battTotalClear)
	if err != nil {
		return nil, err
	}
	avail, err := row.Float(battAvail)
	if err != nil {
		return nil, err
	}
	enablement := make(map[domain.FCASService]float64, len(domain.FCASServices))
	for i, svc := range domain.FCASServices {
		v, err := row.Float(battFCASStart + i)
		if err != nil {
			return nil, err
		}
		enablement[svc] = v
	}

	return BatteryRecord{
		UnitID:         duid,
		SettlementDate: settle,
		InitialMW:      initial,
		TotalClearedMW: cleared,
		Availability:   avail,
		FCASEnablement: enablement,
	}, nil
}
