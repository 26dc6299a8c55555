// Package sqlite is the persistence layer for the loyalty backend.
// All shared state — customers, fuel types, transactions, rewards,
// redemptions — lives here; the store is the sole source of truth.
//
// Ledger mutations run inside a single SQLite transaction obtained from
// WithTx, which serialises concurrent writers. Lock contention that outlives
// the busy timeout surfaces as domain.ErrLedgerBusy, never as a hang.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/pumppoints/pumppoints/internal/domain"
)

// timeFormat is how timestamps are stored in TEXT columns.
const timeFormat = time.RFC3339

// DB wraps the SQLite connection.
type DB struct {
	db *sql.DB
}

// Open opens (or creates) the database at path and applies migrations.
// The busy timeout bounds how long a writer waits on a lock before the
// operation fails with a busy error.
func Open(path string, busyTimeout time.Duration) (*DB, error) {
	dsn := fmt.Sprintf(
		"file:%s?_pragma=busy_timeout(%d)&_pragma=journal_mode(WAL)&_pragma=foreign_keys(1)",
		path, busyTimeout.Milliseconds(),
	)
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	// A single writer connection keeps SQLite's locking behaviour predictable.
	sqlDB.SetMaxOpenConns(1)

	db := &DB{db: sqlDB}
	if err := db.migrate(); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return db, nil
}

// Close closes the underlying connection.
func (db *DB) Close() error { return db.db.Close() }

// ─── Schema ─────────────────────────────────────────────────────────────────

// Migrations returns the schema migration statements.
// Each string is a single SQL statement (SQLite executes one at a time).
func Migrations() []string {
	return []string{
		`CREATE TABLE IF NOT EXISTS customers (
			customer_id    TEXT PRIMARY KEY,
			phone_number   TEXT NOT NULL UNIQUE,
			name           TEXT NOT NULL DEFAULT '',
			points_balance INTEGER NOT NULL DEFAULT 0,
			dividend       REAL NOT NULL DEFAULT 0,
			created_at     TEXT NOT NULL DEFAULT (datetime('now'))
		)`,
		`CREATE INDEX IF NOT EXISTS idx_customers_phone ON customers(phone_number)`,

		`CREATE TABLE IF NOT EXISTS fuel_types (
			fuel_type_id   INTEGER PRIMARY KEY AUTOINCREMENT,
			fuel_type_name TEXT NOT NULL UNIQUE
		)`,

		`CREATE TABLE IF NOT EXISTS transactions (
			transaction_id   TEXT PRIMARY KEY,
			customer_id      TEXT NOT NULL REFERENCES customers(customer_id),
			fuel_type_id     INTEGER NOT NULL REFERENCES fuel_types(fuel_type_id),
			amount           REAL NOT NULL,
			points_earned    INTEGER NOT NULL,
			staff_id         TEXT NOT NULL DEFAULT '',
			transaction_date TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_tx_customer ON transactions(customer_id)`,
		`CREATE INDEX IF NOT EXISTS idx_tx_staff ON transactions(staff_id)`,
		`CREATE INDEX IF NOT EXISTS idx_tx_date ON transactions(transaction_date)`,

		`CREATE TABLE IF NOT EXISTS rewards (
			reward_id       TEXT PRIMARY KEY,
			name            TEXT NOT NULL,
			points_required INTEGER NOT NULL,
			quantity        INTEGER NOT NULL DEFAULT 0 CHECK(quantity >= 0),
			description     TEXT NOT NULL DEFAULT '',
			image_url       TEXT NOT NULL DEFAULT ''
		)`,

		`CREATE TABLE IF NOT EXISTS redemptions (
			redemption_id TEXT PRIMARY KEY,
			customer_id   TEXT NOT NULL REFERENCES customers(customer_id),
			reward_id     TEXT NOT NULL REFERENCES rewards(reward_id),
			points_used   INTEGER NOT NULL,
			quantity      INTEGER NOT NULL,
			status        TEXT NOT NULL DEFAULT 'pending',
			staff_id      TEXT NOT NULL DEFAULT '',
			redeemed_at   TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_redemption_customer ON redemptions(customer_id)`,
		`CREATE INDEX IF NOT EXISTS idx_redemption_status ON redemptions(status)`,

		`CREATE TABLE IF NOT EXISTS staff (
			staff_id     TEXT PRIMARY KEY,
			phone_number TEXT NOT NULL,
			name         TEXT NOT NULL DEFAULT ''
		)`,

		`CREATE TABLE IF NOT EXISTS officers (
			officer_id   TEXT PRIMARY KEY,
			phone_number TEXT NOT NULL,
			name         TEXT NOT NULL DEFAULT ''
		)`,
	}
}

func (db *DB) migrate() error {
	for _, stmt := range Migrations() {
		if _, err := db.db.Exec(stmt); err != nil {
			return fmt.Errorf("exec %q: %w", firstLine(stmt), err)
		}
	}
	return nil
}

func firstLine(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.IndexByte(s, '\n'); i > 0 {
		s = s[:i]
	}
	return s
}

// ─── Transactional Unit ─────────────────────────────────────────────────────

// Tx is a single serialisable unit of ledger work. All reads and writes made
// through it either commit together or leave no trace.
type Tx struct {
	tx *sql.Tx
}

// WithTx runs fn inside one SQLite transaction. The transaction is rolled
// back on error and committed otherwise. Lock contention is reported as
// domain.ErrLedgerBusy.
func (db *DB) WithTx(ctx context.Context, fn func(tx *Tx) error) error {
	sqlTx, err := db.db.BeginTx(ctx, nil)
	if err != nil {
		return mapBusy(err)
	}
	if err := fn(&Tx{tx: sqlTx}); err != nil {
		sqlTx.Rollback()
		return mapBusy(err)
	}
	if err := sqlTx.Commit(); err != nil {
		return mapBusy(err)
	}
	return nil
}

// mapBusy converts SQLite lock-contention errors into the domain sentinel.
func mapBusy(err error) error {
	if err == nil {
		return nil
	}
	msg := err.Error()
	if strings.Contains(msg, "SQLITE_BUSY") || strings.Contains(msg, "database is locked") {
		return fmt.Errorf("%w: %v", domain.ErrLedgerBusy, err)
	}
	return err
}
