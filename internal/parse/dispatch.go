package parse

import (
	"fmt"
	"time"

	"github.com/aristath/nem-sentinel/internal/domain"
	"github.com/aristath/nem-sentinel/internal/timemap"
)

func init() {
	register("DISPATCH", "PRICE", parsePrice)
	register("DISPATCH", "REGIONSUM", parseRegionSum)
	register("DISPATCH", "INTERCONNECTORRES", parseInterconnector)
	register("DISPATCH", "CONSTRAINT", parseConstraint)
	register("DISPATCH", "UNIT_SOLUTION", parseUnitSolution)
}

// Field positions for the D,DISPATCH,PRICE,... record. Column 3 is the
// schema version and is not consumed; column 4 (RUNNO) identifies the
// dispatch run and is not currently surfaced.
const (
	priceRegionID  = 5
	priceSettleAt  = 6
	priceRRP       = 7
	priceEEP       = 8
	priceROP       = 9
	priceFCASStart = 11 // ten consecutive RRP columns, order = domain.FCASServices
	priceStatus    = 21
	priceLastChg   = 22
)

// priceRecord is the intermediate PRICE-row shape; mergeDispatch folds it
// with regionSumRecord into domain.DispatchPriceRow.
type priceRecord struct {
	Region      domain.Region
	SettleAt    time.Time
	RRP, EEP, ROP float64
	Capped      bool
	FCASPrice   map[domain.FCASService]float64
	Firmness    string
	LastChanged *time.Time
}

func parsePrice(row Row, _ HeaderIndex) (any, error) {
	region, err := row.Field(priceRegionID)
	if err != nil || region == "" {
		return nil, fmt.Errorf("missing region id")
	}
	settleStr, err := row.Field(priceSettleAt)
	if err != nil {
		return nil, err
	}
	settle, err := timemap.ParseSourceToUTC(settleStr)
	if err != nil {
		return nil, err
	}
	rrp, clamped, err := row.ClampedPrice(priceRRP)
	if err != nil {
		return nil, err
	}
	eep, _, err := row.ClampedPrice(priceEEP)
	if err != nil {
		return nil, err
	}
	rop, _, err := row.ClampedPrice(priceROP)
	if err != nil {
		return nil, err
	}

	fcasPrice := make(map[domain.FCASService]float64, len(domain.FCASServices))
	for i, svc := range domain.FCASServices {
		v, fcasClamped, err := row.ClampedPrice(priceFCASStart + i)
		if err != nil {
			return nil, err
		}
		fcasPrice[svc] = v
		clamped = clamped || fcasClamped
	}

	rec := priceRecord{
		Region:    domain.Region(region),
		SettleAt:  settle,
		RRP:       rrp,
		EEP:       eep,
		ROP:       rop,
		Capped:    clamped,
		FCASPrice: fcasPrice,
		Firmness:  row.Str(priceStatus),
	}
	if s := row.Str(priceLastChg); s != "" {
		if t, err := timemap.ParseSourceToUTC(s); err == nil {
			rec.LastChanged = &t
		}
	}
	return rec, nil
}

// Field positions for the D,DISPATCH,REGIONSUM,... record.
const (
	rsRegionID  = 5
	rsSettleAt  = 6
	rsDemand    = 7
	rsAvailGen  = 8
	rsNetInterc = 9
	// Ten consecutive "local dispatch" columns. Per spec.md §9, the
	// upstream 1-second-market values live in the position documented as
	// "local dispatch" rather than "required" — the numeric value is kept
	// and exposed as RequiredMW for parity with the other eight services.
	rsFCASReqStart = 10
)

type regionSumRecord struct {
	Region         domain.Region
	SettleAt       time.Time
	TotalDemand    float64
	AvailableGen   float64
	NetInterchange float64
	FCASRequiredMW map[domain.FCASService]float64
}

func parseRegionSum(row Row, _ HeaderIndex) (any, error) {
	region, err := row.Field(rsRegionID)
	if err != nil || region == "" {
		return nil, fmt.Errorf("missing region id")
	}
	settleStr, err := row.Field(rsSettleAt)
	if err != nil {
		return nil, err
	}
	settle, err := timemap.ParseSourceToUTC(settleStr)
	if err != nil {
		return nil, err
	}
	demand, _, err := row.ClampedMW(rsDemand)
	if err != nil {
		return nil, err
	}
	availGen, _, err := row.ClampedMW(rsAvailGen)
	if err != nil {
		return nil, err
	}
	netInterc, _, err := row.ClampedMW(rsNetInterc)
	if err != nil {
		return nil, err
	}

	required := make(map[domain.FCASService]float64, len(domain.FCASServices))
	for i, svc := range domain.FCASServices {
		v, err := row.Float(rsFCASReqStart + i)
		if err != nil {
			return nil, err
		}
		required[svc] = v
	}

	return regionSumRecord{
		Region:         domain.Region(region),
		SettleAt:       settle,
		TotalDemand:    demand,
		AvailableGen:   availGen,
		NetInterchange: netInterc,
		FCASRequiredMW: required,
	}, nil
}

// Field positions for the D,DISPATCH,INTERCONNECTORRES,... record.
const (
	icLinkID      = 5
	icSettleAt    = 6
	icMWFlow      = 7
	icMWLosses    = 8
	icMarginal    = 9
	icViolation   = 10
	icExportLimit = 11
	icImportLimit = 12
	icMWDispatch  = 13
)

func parseInterconnector(row Row, _ HeaderIndex) (any, error) {
	linkID, err := row.Field(icLinkID)
	if err != nil || linkID == "" {
		return nil, fmt.Errorf("missing interconnector id")
	}
	settleStr, err := row.Field(icSettleAt)
	if err != nil {
		return nil, err
	}
	settle, err := timemap.ParseSourceToUTC(settleStr)
	if err != nil {
		return nil, err
	}
	mwFlow, _, err := row.ClampedMW(icMWFlow)
	if err != nil {
		return nil, err
	}
	mwDispatch, _, err := row.ClampedMW(icMWDispatch)
	if err != nil {
		return nil, err
	}
	losses, err := row.Float(icMWLosses)
	if err != nil {
		return nil, err
	}
	marginal, err := row.Float(icMarginal)
	if err != nil {
		return nil, err
	}
	violation, err := row.Float(icViolation)
	if err != nil {
		return nil, err
	}
	exportLimit, err := row.Float(icExportLimit)
	if err != nil {
		return nil, err
	}
	importLimit, err := row.Float(icImportLimit)
	if err != nil {
		return nil, err
	}

	from, to := InterconnectorRegions(linkID)
	return domain.InterconnectorFlowRow{
		LinkID:         linkID,
		SettlementDate: settle,
		FromRegion:     from,
		ToRegion:       to,
		MeteredMW:      mwFlow,
		DispatchedMW:   mwDispatch,
		Losses:         losses,
		ImportLimit:    importLimit,
		ExportLimit:    exportLimit,
		MarginalValue:  marginal,
		Violation:      violation,
	}, nil
}

// Field positions for the D,DISPATCH,CONSTRAINT,... record.
const (
	conID       = 5
	conSettleAt = 6
	conRHS      = 7
	conMarginal = 8
	conViol     = 9
)

func parseConstraint(row Row, _ HeaderIndex) (any, error) {
	id, err := row.Field(conID)
	if err != nil || id == "" {
		return nil, fmt.Errorf("missing constraint id")
	}
	settleStr, err := row.Field(conSettleAt)
	if err != nil {
		return nil, err
	}
	settle, err := timemap.ParseSourceToUTC(settleStr)
	if err != nil {
		return nil, err
	}
	rhs, err := row.Float(conRHS)
	if err != nil {
		return nil, err
	}
	marginal, err := row.Float(conMarginal)
	if err != nil {
		return nil, err
	}
	violation, err := row.Float(conViol)
	if err != nil {
		return nil, err
	}
	// Binding-constraint filter (spec.md §4.4): only persist rows with a
	// positive marginal value.
	if marginal <= 0 {
		return nil, nil
	}
	return domain.ConstraintRow{
		ConstraintID:   id,
		SettlementDate: settle,
		RHS:            rhs,
		MarginalValue:  marginal,
		Violation:      violation,
	}, nil
}

// Field positions for the D,DISPATCH,UNIT_SOLUTION,... record.
const (
	usDUID          = 5
	usSettleAt      = 6
	usIntervention  = 7
	usInitialMW     = 8
	usTotalCleared  = 9
	usRampUp        = 10
	usRampDown      = 11
	usFCASEnabStart = 12 // ten consecutive enablement columns
	usAvailability  = 22
	usSemiDispatch  = 23
)

func parseUnitSolution(row Row, _ HeaderIndex) (any, error) {
	duid, err := row.Field(usDUID)
	if err != nil || duid == "" {
		return nil, fmt.Errorf("missing unit id")
	}
	settleStr, err := row.Field(usSettleAt)
	if err != nil {
		return nil, err
	}
	settle, err := timemap.ParseSourceToUTC(settleStr)
	if err != nil {
		return nil, err
	}
	initial, err := row.Float(usInitialMW)
	if err != nil {
		return nil, err
	}
	cleared, err := row.Float(usTotalCleared)
	if err != nil {
		return nil, err
	}
	rampUp, err := row.Float(usRampUp)
	if err != nil {
		return nil, err
	}
	rampDown, err := row.Float(usRampDown)
	if err != nil {
		return nil, err
	}
	availability, err := row.Float(usAvailability)
	if err != nil {
		return nil, err
	}
	semiCap, err := row.Float(usSemiDispatch)
	if err != nil {
		return nil, err
	}

	enablement := make(map[domain.FCASService]float64, len(domain.FCASServices))
	for i, svc := range domain.FCASServices {
		v, err := row.Float(usFCASEnabStart + i)
		if err != nil {
			return nil, err
		}
		enablement[svc] = v
	}

	return domain.GeneratorDispatchRow{
		UnitID:          duid,
		SettlementDate:  settle,
		Intervention:    row.Bool(usIntervention),
		InitialMW:       initial,
		TotalClearedMW:  cleared,
		RampUpRate:      rampUp,
		RampDownRate:    rampDown,
		FCASEnablement:  enablement,
		Availability:    availability,
		SemiDispatchCap: semiCap,
	}, nil
}
