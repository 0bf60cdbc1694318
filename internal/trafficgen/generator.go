package trafficgen

import (
	"math/rand"
	"time"

	"github.com/google/uuid"

	"gotraffic/domain/traffic"
	"gotraffic/internal"
	"gotraffic/internal/errors"
)

// Config drives one generation run. The entire pipeline is a deterministic
// function of (Config, Seed): identical inputs reproduce identical tables.
type Config struct {
	Seed int64

	// Primary analysis range, inclusive on both ends.
	DateStart time.Time
	DateEnd   time.Time

	// Spots strictly after this date are always scheduled.
	TodayCutoff time.Time

	// Warm-up orders draw their start from [WarmupStart, DateStart) so the
	// first quarter of the range has spillover volume.
	WarmupStart time.Time

	// Order dates never precede this floor.
	OrderDateFloor time.Time

	// Air years >= GrowthYear get the per-daypart YoY growth bump.
	GrowthYear int
}

// DefaultConfig is the standard 15-month window ending Q1 2025.
func DefaultConfig() Config {
	return Config{
		Seed:           42,
		DateStart:      time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		DateEnd:        time.Date(2025, 3, 31, 0, 0, 0, 0, time.UTC),
		TodayCutoff:    time.Date(2025, 2, 15, 0, 0, 0, 0, time.UTC),
		WarmupStart:    time.Date(2023, 10, 1, 0, 0, 0, 0, time.UTC),
		OrderDateFloor: time.Date(2023, 9, 1, 0, 0, 0, 0, time.UTC),
		GrowthYear:     2025,
	}
}

// Tables holds the three generated tables.
type Tables struct {
	Orders    []traffic.Order
	Spots     []traffic.Spot
	Inventory []traffic.InventorySlot
}

// Result is one finished generation run. Violations is empty on a clean run;
// a populated list signals failure to the caller without blocking
// persistence of the tables.
type Result struct {
	RunID      string
	Seed       int64
	Tables     Tables
	Violations []string
}

// Valid reports whether every integrity check passed.
func (r *Result) Valid() bool {
	return len(r.Violations) == 0
}

// Generate runs the full pipeline: population -> orders -> spots -> order
// total backfill -> inventory -> validation. Single-threaded by design: one
// seeded source is threaded through every random decision, never re-seeded.
func Generate(cfg Config) (*Result, error) {
	if err := checkConfig(cfg); err != nil {
		return nil, err
	}

	stations := traffic.Stations()
	dayparts := traffic.Dayparts()
	advertisers := traffic.Advertisers()
	if err := traffic.Validate(stations, dayparts, advertisers); err != nil {
		return nil, err
	}

	log := internal.DefaultLogger
	rng := rand.New(rand.NewSource(cfg.Seed))

	buyers := buildPopulation(advertisers, stations, traffic.Agencies(), rng)
	log.Info("configured %d buyers across %d stations", len(buyers), len(stations))

	orders := generateOrders(buyers, cfg, rng)
	log.Info("generated %d orders", len(orders))

	spots := generateSpots(orders, buyers, cfg, rng)
	log.Info("generated %d spots", len(spots))

	backfillOrderTotals(orders, spots)

	inventory := generateInventory(spots, cfg, rng)
	log.Info("generated %d inventory rows", len(inventory))

	violations := validateTables(orders, spots, inventory, cfg.TodayCutoff)
	if len(violations) > 0 {
		log.Error("validation failed with %d violation classes", len(violations))
		for _, v := range violations {
			log.Error("  %s", v)
		}
	} else {
		log.Info("all validation checks passed")
	}

	return &Result{
		RunID:      uuid.NewString(),
		Seed:       cfg.Seed,
		Tables:     Tables{Orders: orders, Spots: spots, Inventory: inventory},
		Violations: violations,
	}, nil
}

func checkConfig(cfg Config) error {
	if cfg.DateEnd.Before(cfg.DateStart) {
		return errors.ConfigInvalid("date range end precedes start")
	}
	if !cfg.WarmupStart.Before(cfg.DateStart) {
		return errors.ConfigInvalid("warm-up window must begin before the primary range")
	}
	if cfg.GrowthYear == 0 {
		return errors.ConfigInvalid("growth year is required")
	}
	return nil
}
