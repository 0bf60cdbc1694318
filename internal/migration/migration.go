package migration

import (
	"context"

	"github.com/jmoiron/sqlx"

	"gotraffic/internal/errors"
)

// MigrationRunner creates the warehouse schema for generated traffic tables.
type MigrationRunner struct {
	version string
}

// NewRunner creates a new migration runner
func NewRunner() *MigrationRunner {
	return &MigrationRunner{version: "1.0.0"}
}

// Version returns the migration version
func (r *MigrationRunner) Version() string {
	return r.version
}

// Run executes all schema migrations in order.
func (r *MigrationRunner) Run(ctx context.Context, db *sqlx.DB) error {
	if err := r.createOrdersTable(ctx, db); err != nil {
		return errors.Wrap(err, "failed to create orders table")
	}
	if err := r.createSpotsTable(ctx, db); err != nil {
		return errors.Wrap(err, "failed to create spots table")
	}
	if err := r.createInventoryTable(ctx, db); err != nil {
		return errors.Wrap(err, "failed to create inventory table")
	}
	if err := r.createRunsTable(ctx, db); err != nil {
		return errors.Wrap(err, "failed to create generation_runs table")
	}
	if err := r.createIndexes(ctx, db); err != nil {
		return errors.Wrap(err, "failed to create indexes")
	}
	return nil
}

func (r *MigrationRunner) createOrdersTable(ctx context.Context, db *sqlx.DB) error {
	_, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS orders (
			order_id        TEXT PRIMARY KEY,
			advertiser_name TEXT NOT NULL,
			agency_name     TEXT,
			order_date      DATE NOT NULL,
			start_date      DATE NOT NULL,
			end_date        DATE NOT NULL,
			order_total     NUMERIC(14, 2) NOT NULL DEFAULT 0,
			station         TEXT NOT NULL,
			CHECK (start_date <= end_date)
		)`)
	return err
}

func (r *MigrationRunner) createSpotsTable(ctx context.Context, db *sqlx.DB) error {
	_, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS spots (
			spot_id  TEXT PRIMARY KEY,
			order_id TEXT NOT NULL REFERENCES orders(order_id),
			air_date DATE NOT NULL,
			air_time TIME NOT NULL,
			daypart  TEXT NOT NULL,
			program  TEXT NOT NULL,
			length   INT NOT NULL,
			rate     NUMERIC(12, 2) NOT NULL,
			status   TEXT NOT NULL,
			station  TEXT NOT NULL
		)`)
	return err
}

func (r *MigrationRunner) createInventoryTable(ctx context.Context, db *sqlx.DB) error {
	_, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS inventory (
			date         DATE NOT NULL,
			daypart      TEXT NOT NULL,
			station      TEXT NOT NULL,
			total_avails INT NOT NULL,
			booked       INT NOT NULL,
			remaining    INT NOT NULL,
			PRIMARY KEY (station, daypart, date),
			CHECK (remaining = total_avails - booked),
			CHECK (remaining >= 0)
		)`)
	return err
}

func (r *MigrationRunner) createRunsTable(ctx context.Context, db *sqlx.DB) error {
	_, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS generation_runs (
			run_id     UUID PRIMARY KEY,
			seed       BIGINT NOT NULL,
			valid      BOOLEAN NOT NULL,
			loaded_at  TIMESTAMPTZ NOT NULL DEFAULT now()
		)`)
	return err
}

func (r *MigrationRunner) createIndexes(ctx context.Context, db *sqlx.DB) error {
	indexes := []string{
		`CREATE INDEX IF NOT EXISTS idx_spots_order_id ON spots(order_id)`,
		`CREATE INDEX IF NOT EXISTS idx_spots_air_date ON spots(air_date)`,
		`CREATE INDEX IF NOT EXISTS idx_spots_station_daypart ON spots(station, daypart)`,
		`CREATE INDEX IF NOT EXISTS idx_orders_advertiser ON orders(advertiser_name)`,
	}
	for _, stmt := range indexes {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}
