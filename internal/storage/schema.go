package storage

// schema creates every ingestion-owned table IF NOT EXISTS, matching
// spec.md §6's abridged relational schema. Natural-key UNIQUE constraints
// back the upsert-by-natural-key idempotency invariant (spec.md §8): the
// same bundle ingested twice must yield identical rows, which REPLACE INTO
// against these constraints guarantees.
const schema = `
CREATE TABLE IF NOT EXISTS dispatch_prices (
	region TEXT NOT NULL,
	settlement_date TEXT NOT NULL,
	rrp REAL NOT NULL,
	eep REAL NOT NULL,
	rop REAL NOT NULL,
	price_capped INTEGER NOT NULL,
	regional_demand REAL NOT NULL,
	dispatched_gen REAL NOT NULL,
	net_interchange REAL NOT NULL,
	fcas_price_json TEXT NOT NULL,
	fcas_required_json TEXT NOT NULL,
	price_firmness TEXT,
	last_changed TEXT,
	PRIMARY KEY (region, settlement_date)
);
CREATE INDEX IF NOT EXISTS idx_dispatch_prices_date ON dispatch_prices (settlement_date DESC);

CREATE TABLE IF NOT EXISTS fcas_prices (
	region TEXT NOT NULL,
	service TEXT NOT NULL,
	settlement_date TEXT NOT NULL,
	price REAL NOT NULL,
	enablement_min REAL NOT NULL,
	enablement_max REAL NOT NULL,
	PRIMARY KEY (region, service, settlement_date)
);
CREATE INDEX IF NOT EXISTS idx_fcas_prices_date ON fcas_prices (settlement_date DESC);

CREATE TABLE IF NOT EXISTS interconnector_flows (
	link_id TEXT NOT NULL,
	settlement_date TEXT NOT NULL,
	from_region TEXT NOT NULL,
	to_region TEXT NOT NULL,
	metered_mw REAL NOT NULL,
	dispatched_mw REAL NOT NULL,
	losses REAL NOT NULL,
	import_limit REAL NOT NULL,
	export_limit REAL NOT NULL,
	marginal_value REAL NOT NULL,
	violation REAL NOT NULL,
	PRIMARY KEY (link_id, settlement_date)
);
CREATE INDEX IF NOT EXISTS idx_interconnector_flows_date ON interconnector_flows (settlement_date DESC);

CREATE TABLE IF NOT EXISTS constraints (
	constraint_id TEXT NOT NULL,
	settlement_date TEXT NOT NULL,
	rhs REAL NOT NULL,
	marginal_value REAL NOT NULL,
	violation REAL NOT NULL,
	PRIMARY KEY (constraint_id, settlement_date)
);
CREATE INDEX IF NOT EXISTS idx_constraints_date ON constraints (settlement_date DESC);

CREATE TABLE IF NOT EXISTS generator_dispatch (
	unit_id TEXT NOT NULL,
	settlement_date TEXT NOT NULL,
	intervention INTEGER NOT NULL,
	initial_mw REAL NOT NULL,
	total_cleared_mw REAL NOT NULL,
	ramp_up_rate REAL NOT NULL,
	ramp_down_rate REAL NOT NULL,
	fcas_enablement_json TEXT NOT NULL,
	availability REAL NOT NULL,
	semi_dispatch_cap REAL NOT NULL,
	PRIMARY KEY (unit_id, settlement_date, intervention)
);
CREATE INDEX IF NOT EXISTS idx_generator_dispatch_date ON generator_dispatch (settlement_date DESC);
CREATE INDEX IF NOT EXISTS idx_generator_dispatch_unit ON generator_dispatch (unit_id);

CREATE TABLE IF NOT EXISTS generator_scada (
	unit_id TEXT NOT NULL,
	settlement_date TEXT NOT NULL,
	mw REAL NOT NULL,
	PRIMARY KEY (unit_id, settlement_date)
);
CREATE INDEX IF NOT EXISTS idx_generator_scada_date ON generator_scada (settlement_date DESC);
CREATE INDEX IF NOT EXISTS idx_generator_scada_unit ON generator_scada (unit_id);

CREATE TABLE IF NOT EXISTS battery_dispatch (
	unit_id TEXT NOT NULL,
	settlement_date TEXT NOT NULL,
	initial_mw REAL NOT NULL,
	total_cleared_mw REAL NOT NULL,
	availability REAL NOT NULL,
	fcas_enablement_json TEXT NOT NULL,
	mode TEXT NOT NULL,
	soc_percent REAL NOT NULL,
	energy_mwh REAL NOT NULL,
	nameplate_mw REAL NOT NULL,
	max_charge_mw REAL NOT NULL,
	max_discharge_mw REAL NOT NULL,
	participant TEXT,
	station_name TEXT,
	region TEXT,
	PRIMARY KEY (unit_id, settlement_date)
);
CREATE INDEX IF NOT EXISTS idx_battery_dispatch_date ON battery_dispatch (settlement_date DESC);

CREATE TABLE IF NOT EXISTS trading_prices (
	region TEXT NOT NULL,
	settlement_date TEXT NOT NULL,
	rrp REAL NOT NULL,
	total_demand REAL NOT NULL,
	available_gen REAL NOT NULL,
	PRIMARY KEY (region, settlement_date)
);
CREATE INDEX IF NOT EXISTS idx_trading_prices_date ON trading_prices (settlement_date DESC);

CREATE TABLE IF NOT EXISTS p5min_forecasts (
	kind TEXT NOT NULL, -- 'region' | 'unit'
	key TEXT NOT NULL,  -- region code or unit id
	run_datetime TEXT NOT NULL,
	interval_datetime TEXT NOT NULL,
	rrp REAL,
	regional_demand REAL,
	available_gen REAL,
	total_cleared_mw REAL,
	availability REAL,
	PRIMARY KEY (kind, key, run_datetime, interval_datetime)
);
CREATE INDEX IF NOT EXISTS idx_p5min_interval ON p5min_forecasts (interval_datetime DESC);

CREATE TABLE IF NOT EXISTS predispatch_forecasts (
	kind TEXT NOT NULL, -- 'region' | 'interconnector' | 'constraint'
	key TEXT NOT NULL,
	run_datetime TEXT NOT NULL,
	interval_datetime TEXT NOT NULL,
	rrp REAL,
	regional_demand REAL,
	available_gen REAL,
	mw_flow REAL,
	marginal_value REAL,
	PRIMARY KEY (kind, key, run_datetime, interval_datetime)
);
CREATE INDEX IF NOT EXISTS idx_predispatch_interval ON predispatch_forecasts (interval_datetime DESC);

CREATE TABLE IF NOT EXISTS predispatch_unit_solutions (
	unit_id TEXT NOT NULL,
	run_datetime TEXT NOT NULL,
	interval_datetime TEXT NOT NULL,
	total_cleared_mw REAL NOT NULL,
	availability REAL NOT NULL,
	PRIMARY KEY (unit_id, run_datetime, interval_datetime)
);
CREATE INDEX IF NOT EXISTS idx_predispatch_units_interval ON predispatch_unit_solutions (interval_datetime DESC);

CREATE TABLE IF NOT EXISTS stpasa_forecasts (
	kind TEXT NOT NULL, -- 'region' | 'unit'
	key TEXT NOT NULL,
	run_datetime TEXT NOT NULL,
	interval_datetime TEXT NOT NULL,
	demand_p10 REAL,
	demand_p50 REAL,
	demand_p90 REAL,
	reserve_level REAL,
	availability REAL,
	PRIMARY KEY (kind, key, run_datetime, interval_datetime)
);
CREATE INDEX IF NOT EXISTS idx_stpasa_interval ON stpasa_forecasts (interval_datetime DESC);

CREATE TABLE IF NOT EXISTS generation_by_fuel (
	fuel_type TEXT NOT NULL,
	interval_datetime TEXT NOT NULL,
	region TEXT NOT NULL,
	total_mw REAL NOT NULL,
	unit_count INTEGER NOT NULL,
	PRIMARY KEY (fuel_type, interval_datetime, region)
);
CREATE INDEX IF NOT EXISTS idx_generation_by_fuel_interval ON generation_by_fuel (interval_datetime DESC);

CREATE TABLE IF NOT EXISTS validation_log (
	run_at TEXT NOT NULL PRIMARY KEY,
	passed INTEGER NOT NULL,
	issues_json TEXT NOT NULL,
	warnings_json TEXT NOT NULL,
	metrics_json TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_validation_log_run_at ON validation_log (run_at DESC);
`
