package battery

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestAdvanceAnchorsAtHalfCapacity(t *testing.T) {
	tr := NewTracker()
	d := tr.Advance(Observation{UnitID: "HPRL1", SettlementDate: time.Now(), TotalClearedMW: 0, CapacityMWh: 194})
	assert.InDelta(t, 50, d.SoCPercent, 1e-6)
	assert.Equal(t, "standby", d.Mode)
}

func TestAdvanceChargingIncreasesSoC(t *testing.T) {
	tr := NewTracker()
	base := time.Date(2025, 8, 23, 19, 0, 0, 0, time.UTC)
	tr.Advance(Observation{UnitID: "HPRL1", SettlementDate: base, TotalClearedMW: 0, CapacityMWh: 100})
	d := tr.Advance(Observation{UnitID: "HPRL1", SettlementDate: base.Add(5 * time.Minute), TotalClearedMW: -60, CapacityMWh: 100})
	assert.Equal(t, "charging", d.Mode)
	assert.Greater(t, d.SoCPercent, 50.0)
	assert.LessOrEqual(t, d.SoCPercent, 100.0)
}

func TestSoCNeverLeavesValidRange(t *testing.T) {
	tr := NewTracker()
	base := time.Date(2025, 8, 23, 19, 0, 0, 0, time.UTC)
	tr.Advance(Observation{UnitID: "HPRL1", SettlementDate: base, TotalClearedMW: 0, CapacityMWh: 100})
	for i := 1; i <= 50; i++ {
		d := tr.Advance(Observation{
			UnitID:         "HPRL1",
			SettlementDate: base.Add(time.Duration(i) * 5 * time.Minute),
			TotalClearedMW: 150, // aggressive discharge
			CapacityMWh:    100,
		})
		assert.GreaterOrEqual(t, d.SoCPercent, 0.0)
		assert.LessOrEqual(t, d.SoCPercent, 100.0)
	}
}
