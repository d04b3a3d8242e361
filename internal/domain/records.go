package domain

import "time"

// DispatchPriceRow is the merged (PRICE + REGIONSUM) 5-minute dispatch
// record for one region and settlement interval.
type DispatchPriceRow struct {
	Region             Region
	SettlementDate     time.Time // UTC, aligned to a 5-minute boundary
	RRP                float64   // regional reference price, $/MWh
	EEP                float64   // excess energy price
	ROP                float64   // regional override price
	PriceCapped        bool
	RegionalDemand     float64
	DispatchedGen      float64
	NetInterchange     float64
	FCASPrice          map[FCASService]float64
	FCASRequiredMW     map[FCASService]float64
	PriceFirmness      string // optional, e.g. "FIRM" | "SUSPECT"
	LastChanged        *time.Time
}

// RegionSummaryRow supplies the demand/generation/interchange columns that
// get merged into DispatchPriceRow.
type RegionSummaryRow struct {
	Region            Region
	SettlementDate    time.Time
	TotalDemand       float64
	AvailableGen      float64
	NetInterchange    float64
	FCASRequiredMW    map[FCASService]float64
}

// FCASServiceRow is emitted once per non-zero-priced service for a region
// and interval.
type FCASServiceRow struct {
	Region         Region
	Service        FCASService
	SettlementDate time.Time
	Price          float64
	EnablementMin  float64
	EnablementMax  float64
}

// InterconnectorFlowRow is the per-link, per-interval flow record.
type InterconnectorFlowRow struct {
	LinkID         string
	SettlementDate time.Time
	FromRegion     Region
	ToRegion       Region
	MeteredMW      float64
	DispatchedMW   float64
	Losses         float64
	ImportLimit    float64
	ExportLimit    float64
	MarginalValue  float64
	Violation      float64
}

// ConstraintRow is a binding (marginal value > 0) network constraint.
type ConstraintRow struct {
	ConstraintID   string
	SettlementDate time.Time
	RHS            float64
	MarginalValue  float64
	Violation      float64
}

// GeneratorDispatchRow is a UNIT_SOLUTION record. Intervention is part of
// the natural key because a single interval may carry both a normal and an
// intervention solution.
type GeneratorDispatchRow struct {
	UnitID         string
	SettlementDate time.Time
	Intervention   bool
	InitialMW      float64
	TotalClearedMW float64
	RampUpRate     float64
	RampDownRate   float64
	FCASEnablement map[FCASService]float64
	Availability   float64
	SemiDispatchCap float64
}

// ScadaRow is a real-time telemetry sample; MW may be negative for
// consuming units (loads, pumped storage charging).
type ScadaRow struct {
	UnitID         string
	SettlementDate time.Time
	MW             float64
}

// BatteryMode is the derived operating mode of a battery unit.
type BatteryMode string

const (
	Charging    BatteryMode = "charging"
	Discharging BatteryMode = "discharging"
	Standby     BatteryMode = "standby"
)

// BatteryDispatchRow is the enriched battery dispatch record: raw dispatch
// fields plus DUID-registry enrichment and derived state-of-charge.
type BatteryDispatchRow struct {
	UnitID          string
	SettlementDate  time.Time
	InitialMW       float64
	TotalClearedMW  float64 // sign encodes charge (-) vs discharge (+)
	Availability    float64
	FCASEnablement  map[FCASService]float64
	Mode            BatteryMode
	SoCPercent      float64 // 0..100
	EnergyMWh       float64
	NameplateMW     float64
	MaxChargeMW     float64
	MaxDischargeMW  float64
	Participant     string
	StationName     string
	Region          Region
}

// P5MinRegionForecast is a 5-minute-cadence, 1-hour-ahead regional forecast.
type P5MinRegionForecast struct {
	RunDatetime      time.Time
	IntervalDatetime time.Time
	Region           Region
	RRP              float64
	RegionalDemand   float64
	AvailableGen     float64
}

// P5MinUnitForecast is the per-unit equivalent of P5MinRegionForecast.
type P5MinUnitForecast struct {
	RunDatetime      time.Time
	IntervalDatetime time.Time
	UnitID           string
	TotalClearedMW   float64
	Availability     float64
}

// PredispatchRegionRow is a 30-minute-cadence, 2-day-ahead regional forecast.
type PredispatchRegionRow struct {
	RunDatetime      time.Time
	IntervalDatetime time.Time
	Region           Region
	RRP              float64
	RegionalDemand   float64
	AvailableGen     float64
}

// PredispatchUnitRow is the per-unit equivalent of PredispatchRegionRow.
type PredispatchUnitRow struct {
	RunDatetime      time.Time
	IntervalDatetime time.Time
	UnitID           string
	TotalClearedMW   float64
	Availability     float64
}

// InterconnectorForecast is the predispatch-horizon interconnector flow
// forecast.
type InterconnectorForecast struct {
	RunDatetime      time.Time
	IntervalDatetime time.Time
	LinkID           string
	MWFlow           float64
	MarginalValue    float64
}

// ConstraintForecast is the predispatch-horizon binding constraint forecast.
type ConstraintForecast struct {
	RunDatetime      time.Time
	IntervalDatetime time.Time
	ConstraintID     string
	MarginalValue    float64
}

// StPasaRegionRow is a 7-day-ahead regional adequacy forecast with demand
// percentiles and reserve levels.
type StPasaRegionRow struct {
	RunDatetime      time.Time
	IntervalDatetime time.Time
	Region           Region
	Demand10         float64
	Demand50         float64
	Demand90         float64
	ReserveLevel     float64
}

// StPasaUnitAvailability is the per-unit availability forecast at the
// ST PASA horizon.
type StPasaUnitAvailability struct {
	RunDatetime      time.Time
	IntervalDatetime time.Time
	UnitID           string
	Availability     float64
}

// TradingIntervalPrice is a settled 30-minute trading-interval price.
type TradingIntervalPrice struct {
	Region         Region
	SettlementDate time.Time
	RRP            float64
}

// TradingRegionSum is the 30-minute trading-interval demand/generation
// summary.
type TradingRegionSum struct {
	Region         Region
	SettlementDate time.Time
	TotalDemand    float64
	AvailableGen   float64
}
