package parse

import (
	"fmt"

	"github.com/aristath/nem-sentinel/internal/domain"
	"github.com/aristath/nem-sentinel/internal/timemap"
)

func init() {
	register("DISPATCH", "UNIT_SCADA", parseScada)
}

// Field positions for the D,DISPATCH,UNIT_SCADA,... record.
const (
	scadaDUID     = 5
	scadaSettleAt = 6
	scadaMW       = 7
)

func parseScada(row Row, _ HeaderIndex) (any, error) {
	duid, err := row.Field(scadaDUID)
	if err != nil || duid == "" {
		return nil, fmt.Errorf("missing unit id")
	}
	settleStr, err := row.Field(scadaSettleAt)
	if err != nil {
		return nil, err
	}
	settle, err := timemap.ParseSourceToUTC(settleStr)
	if err != nil {
		return nil, err
	}
	mw, err := row.Float(scadaMW)
	if err != nil {
		return nil, err
	}
	return domain.ScadaRow{
		UnitID:         duid,
		SettlementDate: settle,
		MW:             mw,
	}, nil
}
