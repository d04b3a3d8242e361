package parse

import (
	"fmt"
	"time"

	"github.com/aristath/nem-sentinel/internal/domain"
	"github.com/aristath/nem-sentinel/internal/timemap"
)

func init() {
	register("PREDISPATCH", "REGION_SOLUTION", parsePredispatchRegion)
	register("PREDISPATCH", "UNIT_SOLUTION", parsePredispatchUnit)
	register("PREDISPATCH", "INTERCONNECTOR_SOLUTION", parsePredispatchInterconnector)
	register("PREDISPATCH", "CONSTRAINT_SOLUTION", parsePredispatchConstraint)
}

// Field positions shared by the PREDISPATCH family: 30-minute cadence,
// 2-day horizon, schema mirrors DISPATCH.
const (
	pdRunAt  = 4
	pdKey    = 5 // region id, unit id, link id or constraint id depending on subtype
	pdInterv = 6
	pdA      = 7
	pdB      = 8
	pdC      = 9
)

func parsePredispatchRegion(row Row, _ HeaderIndex) (any, error) {
	runAt, interval, region, err := predispatchPrefix(row)
	if err != nil {
		return nil, err
	}
	rrp, _, err := row.ClampedPrice(pdA)
	if err != nil {
		return nil, err
	}
	demand, _, err := row.ClampedMW(pdB)
	if err != nil {
		return nil, err
	}
	avail, _, err := row.ClampedMW(pdC)
	if err != nil {
		return nil, err
	}
	return domain.PredispatchRegionRow{
		RunDatetime:      runAt,
		IntervalDatetime: interval,
		Region:           domain.Region(region),
		RRP:              rrp,
		RegionalDemand:   demand,
		AvailableGen:     avail,
	}, nil
}

func parsePredispatchUnit(row Row, _ HeaderIndex) (any, error) {
	runAt, interval, duid, err := predispatchPrefix(row)
	if err != nil {
		return nil, err
	}
	cleared, err := row.Float(pdA)
	if err != nil {
		return nil, err
	}
	avail, err := row.Float(pdB)
	if err != nil {
		return nil, err
	}
	return domain.PredispatchUnitRow{
		RunDatetime:      runAt,
		IntervalDatetime: interval,
		UnitID:           duid,
		TotalClearedMW:   cleared,
		Availability:     avail,
	}, nil
}

func parsePredispatchInterconnector(row Row, _ HeaderIndex) (any, error) {
	runAt, interval, linkID, err := predispatchPrefix(row)
	if err != nil {
		return nil, err
	}
	mwFlow, err := row.Float(pdA)
	if err != nil {
		return nil, err
	}
	marginal, err := row.Float(pdB)
	if err != nil {
		return nil, err
	}
	return domain.InterconnectorForecast{
		RunDatetime:      runAt,
		IntervalDatetime: interval,
		LinkID:           linkID,
		MWFlow:           mwFlow,
		MarginalValue:    marginal,
	}, nil
}

func parsePredispatchConstraint(row Row, _ HeaderIndex) (any, error) {
	runAt, interval, constraintID, err := predispatchPrefix(row)
	if err != nil {
		return nil, err
	}
	marginal, err := row.Float(pdA)
	if err != nil {
		return nil, err
	}
	if marginal <= 0 {
		return nil, nil
	}
	return domain.ConstraintForecast{
		RunDatetime:      runAt,
		IntervalDatetime: interval,
		ConstraintID:     constraintID,
		MarginalValue:    marginal,
	}, nil
}

func predispatchPrefix(row Row) (runAt, interval time.Time, key string, err error) {
	runStr, err := row.Field(pdRunAt)
	if err != nil {
		return
	}
	runAt, err = timemap.ParseSourceToUTC(runStr)
	if err != nil {
		return
	}
	key, err = row.Field(pdKey)
	if err != nil || key == "" {
		err = fmt.Errorf("missing key field")
		return
	}
	intervalStr, ferr := row.Field(pdInterv)
	if ferr != nil {
		err = ferr
		return
	}
	interval, err = timemap.ParseSourceToUTC(intervalStr)
	return
}
