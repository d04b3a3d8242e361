// Package battery derives a battery unit's state of charge from the
// running integral of its cleared dispatch, resolving the open question in
// spec.md §9: the upstream feed gives a signed totalcleared MW but never
// reports SoC directly.
//
// The tracker anchors every unit at 50% SoC on first observation (the true
// starting state is unknown) and integrates charge/discharge MWh at the
// declared round-trip efficiency from there, clamping to [0, 100]%. This is
// an approximation, not a ground truth — it drifts from the real SoC over
// time without periodic external recalibration, which this pipeline does
// not perform. Documented as a deliberate, bounded approximation rather
// than omitting the field, per the Open Question's option (a).
package battery

import (
	"sync"
	"time"
)

const defaultEfficiency = 0.9

type state struct {
	energyMWh float64
	lastSeen  time.Time
}

// Tracker maintains per-unit running energy state across ticks. Safe for
// concurrent use: the parallel ingestion fan-out may update different
// units from different goroutines within a tick.
type Tracker struct {
	mu    sync.Mutex
	units map[string]state
}

// NewTracker creates an empty Tracker.
func NewTracker() *Tracker {
	return &Tracker{units: make(map[string]state)}
}

// Observation is the per-interval input needed to advance one unit's SoC.
type Observation struct {
	UnitID         string
	SettlementDate time.Time
	TotalClearedMW float64 // negative = charging, positive = discharging
	CapacityMWh    float64 // nameplate energy capacity; 0 disables clamping to a fraction
}

// Derived is the tracker's output for one observation.
type Derived struct {
	SoCPercent float64
	EnergyMWh  float64
	Mode       string // "charging" | "discharging" | "standby"
}

// Advance integrates obs into the unit's running energy state and returns
// the derived SoC/mode. The first observation for a unit anchors it at 50%
// of capacity (or zero energy if capacity is unknown).
func (t *Tracker) Advance(obs Observation) Derived {
	t.mu.Lock()
	defer t.mu.Unlock()

	capacity := obs.CapacityMWh
	st, known := t.units[obs.UnitID]
	if !known {
		st = state{energyMWh: capacity / 2, lastSeen: obs.SettlementDate}
		t.units[obs.UnitID] = st
	}

	intervalHours := 5.0 / 60.0
	if !st.lastSeen.IsZero() && obs.SettlementDate.After(st.lastSeen) {
		intervalHours = obs.SettlementDate.Sub(st.lastSeen).Hours()
	}

	mode := "standby"
	switch {
	case obs.TotalClearedMW < 0:
		mode = "charging"
		st.energyMWh += -obs.TotalClearedMW * intervalHours * defaultEfficiency
	case obs.TotalClearedMW > 0:
		mode = "discharging"
		st.energyMWh -= obs.TotalClearedMW * intervalHours
	}

	if capacity > 0 {
		if st.energyMWh > capacity {
			st.energyMWh = capacity
		}
	}
	if st.energyMWh < 0 {
		st.energyMWh = 0
	}
	st.lastSeen = obs.SettlementDate
	t.units[obs.UnitID] = st

	socPercent := 0.0
	if capacity > 0 {
		socPercent = st.energyMWh / capacity * 100
		if socPercent > 100 {
			socPercent = 100
		}
	}

	return Derived{SoCPercent: socPercent, EnergyMWh: st.energyMWh, Mode: mode}
}
