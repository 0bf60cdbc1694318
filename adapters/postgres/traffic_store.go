package postgres

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"

	"gotraffic/domain/traffic"
	"gotraffic/internal/errors"
	"gotraffic/internal/trafficgen"
)

// TrafficStore loads generated traffic tables into the warehouse so the
// dataset can be queried with SQL alongside the CSV exports.
type TrafficStore struct {
	db *sqlx.DB
}

// NewTrafficStore creates a new traffic store
func NewTrafficStore(db *sqlx.DB) *TrafficStore {
	return &TrafficStore{db: db}
}

// LoadRun replaces the warehouse contents with one generation run. The load
// is transactional: either all three tables land or none do.
func (s *TrafficStore) LoadRun(ctx context.Context, result *trafficgen.Result) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return errors.Wrap(err, "begin warehouse load")
	}
	defer tx.Rollback()

	// Child tables first.
	for _, table := range []string{"inventory", "spots", "orders"} {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return errors.Wrapf(err, "clear %s", table)
		}
	}

	if err := s.insertOrders(ctx, tx, result.Tables.Orders); err != nil {
		return err
	}
	if err := s.insertSpots(ctx, tx, result.Tables.Spots); err != nil {
		return err
	}
	if err := s.insertInventory(ctx, tx, result.Tables.Inventory); err != nil {
		return err
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO generation_runs (run_id, seed, valid) VALUES ($1, $2, $3)`,
		result.RunID, result.Seed, result.Valid(),
	)
	if err != nil {
		return errors.Wrap(err, "record generation run")
	}

	if err := tx.Commit(); err != nil {
		return errors.Wrap(err, "commit warehouse load")
	}
	return nil
}

func (s *TrafficStore) insertOrders(ctx context.Context, tx *sqlx.Tx, orders []traffic.Order) error {
	stmt, err := tx.PreparexContext(ctx, `INSERT INTO orders (
		order_id, advertiser_name, agency_name, order_date, start_date, end_date, order_total, station
	) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`)
	if err != nil {
		return errors.Wrap(err, "prepare order insert")
	}
	defer stmt.Close()

	for _, o := range orders {
		agency := sql.NullString{String: o.AgencyName, Valid: o.AgencyName != ""}
		if _, err := stmt.ExecContext(ctx,
			o.OrderID, o.AdvertiserName, agency, o.OrderDate, o.StartDate, o.EndDate, o.OrderTotal, o.Station,
		); err != nil {
			return errors.Wrapf(err, "insert order %s", o.OrderID)
		}
	}
	return nil
}

func (s *TrafficStore) insertSpots(ctx context.Context, tx *sqlx.Tx, spots []traffic.Spot) error {
	stmt, err := tx.PreparexContext(ctx, `INSERT INTO spots (
		spot_id, order_id, air_date, air_time, daypart, program, length, rate, status, station
	) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`)
	if err != nil {
		return errors.Wrap(err, "prepare spot insert")
	}
	defer stmt.Close()

	for _, sp := range spots {
		if _, err := stmt.ExecContext(ctx,
			sp.SpotID, sp.OrderID, sp.AirDate, sp.AirTime, sp.Daypart, sp.Program, sp.Length, sp.Rate, string(sp.Status), sp.Station,
		); err != nil {
			return errors.Wrapf(err, "insert spot %s", sp.SpotID)
		}
	}
	return nil
}

func (s *TrafficStore) insertInventory(ctx context.Context, tx *sqlx.Tx, rows []traffic.InventorySlot) error {
	stmt, err := tx.PreparexContext(ctx, `INSERT INTO inventory (
		date, daypart, station, total_avails, booked, remaining
	) VALUES ($1, $2, $3, $4, $5, $6)`)
	if err != nil {
		return errors.Wrap(err, "prepare inventory insert")
	}
	defer stmt.Close()

	for _, inv := range rows {
		if _, err := stmt.ExecContext(ctx,
			inv.Date, inv.Daypart, inv.Station, inv.TotalAvails, inv.Booked, inv.Remaining,
		); err != nil {
			return errors.Wrapf(err, "insert inventory row for %s/%s", inv.Station, inv.Daypart)
		}
	}
	return nil
}
