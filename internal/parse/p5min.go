package parse

import (
	"fmt"

	"github.com/aristath/nem-sentinel/internal/domain"
	"github.com/aristath/nem-sentinel/internal/timemap"
)

func init() {
	register("P5MIN", "REGION_SOLUTION", parseP5MinRegion)
	register("P5MIN", "UNIT_SOLUTION", parseP5MinUnit)
}

// Field positions for the D,P5MIN,REGION_SOLUTION,... record.
const (
	p5rRunAt   = 4
	p5rRegion  = 5
	p5rInterv  = 6
	p5rRRP     = 7
	p5rDemand  = 8
	p5rAvail   = 9
)

func parseP5MinRegion(row Row, _ HeaderIndex) (any, error) {
	runStr, err := row.Field(p5rRunAt)
	if err != nil {
		return nil, err
	}
	runAt, err := timemap.ParseSourceToUTC(runStr)
	if err != nil {
		return nil, err
	}
	region, err := row.Field(p5rRegion)
	if err != nil || region == "" {
		return nil, fmt.Errorf("missing region id")
	}
	intervalStr, err := row.Field(p5rInterv)
	if err != nil {
		return nil, err
	}
	interval, err := timemap.ParseSourceToUTC(intervalStr)
	if err != nil {
		return nil, err
	}
	rrp, _, err := row.ClampedPrice(p5rRRP)
	if err != nil {
		return nil, err
	}
	demand, _, err := row.ClampedMW(p5rDemand)
	if err != nil {
		return nil, err
	}
	avail, _, err := row.ClampedMW(p5rAvail)
	if err != nil {
		return nil, err
	}
	return domain.P5MinRegionForecast{
		RunDatetime:      runAt,
		IntervalDatetime: interval,
		Region:           domain.Region(region),
		RRP:              rrp,
		RegionalDemand:   demand,
		AvailableGen:     avail,
	}, nil
}

// Field positions for the D,P5MIN,UNIT_SOLUTION,... record.
const (
	p5uRunAt  = 4
	p5uDUID   = 5
	p5uInterv = 6
	p5uClear  = 7
	p5uAvail  = 8
)

func parseP5MinUnit(row Row, _ HeaderIndex) (any, error) {
	runStr, err := row.Field(p5uRunAt)
	if err != nil {
		return nil, err
	}
	runAt, err := timemap.ParseSourceToUTC(runStr)
	if err != nil {
		return nil, err
	}
	duid, err := row.Field(p5uDUID)
	if err != nil || duid == "" {
		return nil, fmt.Errorf("missing unit id")
	}
	intervalStr, err := row.Field(p5uInterv)
	if err != nil {
		return nil, err
	}
	interval, err := timemap.ParseSourceToUTC(intervalStr)
	if err != nil {
		return nil, err
	}
	cleared, err := row.Float(p5uClear)
	if err != nil {
		return nil, err
	}
	avail, err := row.Float(p5uAvail)
	if err != nil {
		return nil, err
	}
	return domain.P5MinUnitForecast{
		RunDatetime:      runAt,
		IntervalDatetime: interval,
		UnitID:           duid,
		TotalClearedMW:   cleared,
		Availability:     avail,
	}, nil
}
