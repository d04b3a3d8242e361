// Package storage is the persistence tier: a relational store for
// time-series market data (modernc.org/sqlite, the teacher's pure-Go
// driver), an object archive for raw AEMO zips (aws-sdk-go-v2/S3), and a
// small in-process hot KV cache for latest-value reads.
//
// Relational connection handling, profile-specific PRAGMAs and the
// transaction helper are adapted directly from the teacher's
// internal/database/db.go.
package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

// Profile mirrors the teacher's DatabaseProfile: different PRAGMA sets for
// different durability/throughput tradeoffs.
type Profile string

const (
	// ProfileMarket favours write throughput: market.db absorbs a 5-minute
	// ingestion tick's worth of upserts across a dozen tables.
	ProfileMarket Profile = "market"
	// ProfileLedger favours durability: ledger.db holds user money.
	ProfileLedger Profile = "ledger"
)

// Relational wraps the sqlite connection used for one of the two
// databases (market data or trading ledger).
type Relational struct {
	conn    *sql.DB
	path    string
	profile Profile
}

// Open connects to path, applies profile PRAGMAs, and migrates the schema.
func Open(path string, profile Profile) (*Relational, error) {
	connStr := buildConnectionString(path, profile)
	conn, err := sql.Open("sqlite", connStr)
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", path, err)
	}
	conn.SetMaxOpenConns(1) // modernc.org/sqlite serialises writers; avoid SQLITE_BUSY storms
	conn.SetMaxIdleConns(1)
	conn.SetConnMaxLifetime(0)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := conn.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("ping sqlite %s: %w", path, err)
	}

	r := &Relational{conn: conn, path: path, profile: profile}
	if err := r.migrate(); err != nil {
		return nil, err
	}
	return r, nil
}

func buildConnectionString(path string, profile Profile) string {
	connStr := path + "?_pragma=journal_mode(WAL)"
	switch profile {
	case ProfileLedger:
		connStr += "&_pragma=synchronous(FULL)"
	default:
		connStr += "&_pragma=synchronous(NORMAL)"
	}
	connStr += "&_pragma=foreign_keys(1)"
	connStr += "&_pragma=busy_timeout(5000)"
	connStr += "&_pragma=cache_size(-32000)"
	return connStr
}

func (r *Relational) migrate() error {
	ddl := schema
	if r.profile == ProfileLedger {
		ddl = ledgerSchema
	}
	tx, err := r.conn.Begin()
	if err != nil {
		return fmt.Errorf("begin migration: %w", err)
	}
	if _, err := tx.Exec(ddl); err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("apply schema: %w", err)
	}
	return tx.Commit()
}

// Close closes the underlying connection.
func (r *Relational) Close() error { return r.conn.Close() }

// Conn exposes the raw *sql.DB for call sites that need it directly
// (internal/ledger, tests).
func (r *Relational) Conn() *sql.DB { return r.conn }

// WithTx runs fn inside a transaction, committing on success and rolling
// back on error or panic, matching the teacher's WithTransaction helper.
func (r *Relational) WithTx(ctx context.Context, fn func(*sql.Tx) error) (err error) {
	tx, err := r.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
		if err != nil {
			_ = tx.Rollback()
			return
		}
		err = tx.Commit()
	}()
	err = fn(tx)
	return err
}

// ledgerSchema is the trading_positions table alone; the ledger database
// is intentionally isolated from market data.
const ledgerSchema = `
CREATE TABLE IF NOT EXISTS trading_positions (
	id TEXT PRIMARY KEY,
	user_id TEXT NOT NULL,
	region TEXT NOT NULL,
	side TEXT NOT NULL,
	quantity TEXT NOT NULL,
	entry_price TEXT NOT NULL,
	entry_time TEXT NOT NULL,
	status TEXT NOT NULL,
	exit_price TEXT,
	exit_time TEXT,
	realised_pnl TEXT
);
CREATE INDEX IF NOT EXISTS idx_trading_positions_user ON trading_positions (user_id, entry_time DESC);
`
