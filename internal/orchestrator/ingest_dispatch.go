package orchestrator

import (
	"context"

	"github.com/aristath/nem-sentinel/internal/battery"
	"github.com/aristath/nem-sentinel/internal/domain"
	"github.com/aristath/nem-sentinel/internal/duid"
	"github.com/aristath/nem-sentinel/internal/parse"
)

// ingestDispatchIS fetches and persists the 5-minute DISPATCHIS bundle:
// merged dispatch prices, FCAS prices, interconnector flows, binding
// constraints, generator unit solutions, and any battery dispatch rows the
// same archive carries.
func (o *Orchestrator) ingestDispatchIS(ctx context.Context) (int, error) {
	csv, zipBytes, name, err := o.fetchLatest(ctx, "DISPATCHIS")
	if err != nil {
		return 0, err
	}
	res := parse.Walk(parse.SplitRows(csv))
	for _, w := range res.Warnings {
		o.log.Warn().Str("source", "DISPATCHIS").Msg(w)
	}

	bundle := parse.MergeDispatch(res.Records)
	if err := o.db.UpsertDispatchPrices(ctx, bundle.Prices); err != nil {
		return 0, err
	}
	if err := o.db.UpsertFCAS(ctx, bundle.FCAS); err != nil {
		return 0, err
	}
	if err := o.db.UpsertInterconnectors(ctx, bundle.Interconnectors); err != nil {
		return 0, err
	}
	if err := o.db.UpsertConstraints(ctx, bundle.Constraints); err != nil {
		return 0, err
	}
	if err := o.db.UpsertGeneratorDispatch(ctx, bundle.Units); err != nil {
		return 0, err
	}

	batteryRows := o.enrichBatteryRows(res.Records)
	if err := o.db.UpsertBattery(ctx, batteryRows); err != nil {
		return 0, err
	}

	if o.archive.Enabled() {
		_ = o.archive.Put(ctx, "DISPATCHIS", name, zipBytes)
	}

	if o.hub != nil {
		o.hub.Broadcast(ctx, bundle.Prices)
	}
	o.hotCache.WriteDispatchSnapshot(bundle.Prices, bundle.FCAS)

	total := len(bundle.Prices) + len(bundle.FCAS) + len(bundle.Interconnectors) +
		len(bundle.Constraints) + len(bundle.Units) + len(batteryRows)
	return total, nil
}

// enrichBatteryRows pulls BatteryRecord entries out of a Walk result,
// joins each against the DUID registry for station metadata, and advances
// the running state-of-charge tracker.
func (o *Orchestrator) enrichBatteryRows(records []any) []domain.BatteryDispatchRow {
	var out []domain.BatteryDispatchRow
	for _, rec := range records {
		br, ok := rec.(parse.BatteryRecord)
		if !ok {
			continue
		}
		entry, known := duid.Lookup(br.UnitID)
		capacity := entry.NameplateMW // proxy for MWh capacity: no separate energy rating in the feed
		derived := o.tracker.Advance(battery.Observation{
			UnitID:         br.UnitID,
			SettlementDate: br.SettlementDate,
			TotalClearedMW: br.TotalClearedMW,
			CapacityMWh:    capacity,
		})
		row := domain.BatteryDispatchRow{
			UnitID:         br.UnitID,
			SettlementDate: br.SettlementDate,
			InitialMW:      br.InitialMW,
			TotalClearedMW: br.TotalClearedMW,
			Availability:   br.Availability,
			FCASEnablement: br.FCASEnablement,
			Mode:           domain.BatteryMode(derived.Mode),
			SoCPercent:     derived.SoCPercent,
			EnergyMWh:      derived.EnergyMWh,
			NameplateMW:    entry.NameplateMW,
			MaxChargeMW:    entry.NameplateMW,
			MaxDischargeMW: entry.NameplateMW,
		}
		if known {
			row.Participant = entry.Participant
			row.StationName = entry.StationName
			row.Region = entry.Region
		}
		out = append(out, row)
	}
	return out
}
