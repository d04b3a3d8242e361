package parse

import (
	"fmt"

	"github.com/aristath/nem-sentinel/internal/domain"
	"github.com/aristath/nem-sentinel/internal/timemap"
)

func init() {
	register("STPASA", "REGION_SOLUTION", parseStPasaRegion)
	register("STPASA", "UNIT_SOLUTION", parseStPasaUnit)
}

// Field positions for the D,STPASA,REGION_SOLUTION,... record: 7-day
// horizon, 30-minute cadence, demand given at three percentiles plus a
// reserve adequacy level.
const (
	spRunAt    = 4
	spRegion   = 5
	spInterv   = 6
	spDemand10 = 7
	spDemand50 = 8
	spDemand90 = 9
	spReserve  = 10
)

func parseStPasaRegion(row Row, _ HeaderIndex) (any, error) {
	runStr, err := row.Field(spRunAt)
	if err != nil {
		return nil, err
	}
	runAt, err := timemap.ParseSourceToUTC(runStr)
	if err != nil {
		return nil, err
	}
	region, err := row.Field(spRegion)
	if err != nil || region == "" {
		return nil, fmt.Errorf("missing region id")
	}
	intervalStr, err := row.Field(spInterv)
	if err != nil {
		return nil, err
	}
	interval, err := timemap.ParseSourceToUTC(intervalStr)
	if err != nil {
		return nil, err
	}
	d10, _, err := row.ClampedMW(spDemand10)
	if err != nil {
		return nil, err
	}
	d50, _, err := row.ClampedMW(spDemand50)
	if err != nil {
		return nil, err
	}
	d90, _, err := row.ClampedMW(spDemand90)
	if err != nil {
		return nil, err
	}
	reserve, err := row.Float(spReserve)
	if err != nil {
		return nil, err
	}
	return domain.StPasaRegionRow{
		RunDatetime:      runAt,
		IntervalDatetime: interval,
		Region:           domain.Region(region),
		Demand10:         d10,
		Demand50:         d50,
		Demand90:         d90,
		ReserveLevel:     reserve,
	}, nil
}

// Field positions for the D,STPASA,UNIT_SOLUTION,... record.
const (
	suRunAt  = 4
	suDUID   = 5
	suInterv = 6
	suAvail  = 7
)

func parseStPasaUnit(row Row, _ HeaderIndex) (any, error) {
	runStr, err := row.Field(suRunAt)
	if err != nil {
		return nil, err
	}
	runAt, err := timemap.ParseSourceToUTC(runStr)
	if err != nil {
		return nil, err
	}
	duid, err := row.Field(suDUID)
	if err != nil || duid == "" {
		return nil, fmt.Errorf("missing unit id")
	}
	intervalStr, err := row.Field(suInterv)
	if err != nil {
		return nil, err
	}
	interval, err := timemap.ParseSourceToUTC(intervalStr)
	if err != nil {
		return nil, err
	}
	avail, err := row.Float(suAvail)
	if err != nil {
		return nil, err
	}
	return domain.StPasaUnitAvailability{
		RunDatetime:      runAt,
		IntervalDatetime: interval,
		UnitID:           duid,
		Availability:     avail,
	}, nil
}
