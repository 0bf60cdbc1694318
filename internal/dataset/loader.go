package dataset

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"gotraffic/domain/traffic"
	"gotraffic/internal/errors"
)

const dateLayout = "2006-01-02"

// Loader reads the three generated CSVs into typed in-memory tables on
// first access and caches them for the lifetime of the process. The three
// files load concurrently.
type Loader struct {
	dir string

	mu        sync.Mutex
	loaded    bool
	orders    []traffic.Order
	spots     []traffic.Spot
	inventory []traffic.InventorySlot
}

// NewLoader creates a loader rooted at the sample data directory.
func NewLoader(dir string) *Loader {
	return &Loader{dir: dir}
}

// Load reads all three tables, once.
func (l *Loader) Load() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.loaded {
		return nil
	}

	var g errgroup.Group
	g.Go(func() error {
		orders, err := readOrders(filepath.Join(l.dir, "orders.csv"))
		if err != nil {
			return err
		}
		l.orders = orders
		return nil
	})
	g.Go(func() error {
		spots, err := readSpots(filepath.Join(l.dir, "spots.csv"))
		if err != nil {
			return err
		}
		l.spots = spots
		return nil
	})
	g.Go(func() error {
		inventory, err := readInventory(filepath.Join(l.dir, "inventory.csv"))
		if err != nil {
			return err
		}
		l.inventory = inventory
		return nil
	})

	if err := g.Wait(); err != nil {
		return err
	}
	l.loaded = true
	return nil
}

// Orders returns the contract table, loading on first access.
func (l *Loader) Orders() ([]traffic.Order, error) {
	if err := l.Load(); err != nil {
		return nil, err
	}
	return l.orders, nil
}

// Spots returns the placement table, loading on first access.
func (l *Loader) Spots() ([]traffic.Spot, error) {
	if err := l.Load(); err != nil {
		return nil, err
	}
	return l.spots, nil
}

// Inventory returns the avails table, loading on first access.
func (l *Loader) Inventory() ([]traffic.InventorySlot, error) {
	if err := l.Load(); err != nil {
		return nil, err
	}
	return l.inventory, nil
}

// Stations returns the sorted distinct station call signs in the spot table.
func (l *Loader) Stations() ([]string, error) {
	spots, err := l.Spots()
	if err != nil {
		return nil, err
	}
	seen := make(map[string]bool)
	var stations []string
	for _, sp := range spots {
		if !seen[sp.Station] {
			seen[sp.Station] = true
			stations = append(stations, sp.Station)
		}
	}
	sort.Strings(stations)
	return stations, nil
}

func readCSVFile(path string, wantCols int) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "open %s", path)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = wantCols
	records, err := r.ReadAll()
	if err != nil {
		return nil, errors.Wrapf(err, "parse %s", path)
	}
	if len(records) == 0 {
		return nil, errors.InvalidInput(path + " is empty")
	}
	return records[1:], nil // drop header
}

func readOrders(path string) ([]traffic.Order, error) {
	records, err := readCSVFile(path, 8)
	if err != nil {
		return nil, err
	}

	orders := make([]traffic.Order, 0, len(records))
	for _, rec := range records {
		orderDate, err := time.Parse(dateLayout, rec[3])
		if err != nil {
			return nil, errors.Wrapf(err, "order %s: bad order_date", rec[0])
		}
		startDate, err := time.Parse(dateLayout, rec[4])
		if err != nil {
			return nil, errors.Wrapf(err, "order %s: bad start_date", rec[0])
		}
		endDate, err := time.Parse(dateLayout, rec[5])
		if err != nil {
			return nil, errors.Wrapf(err, "order %s: bad end_date", rec[0])
		}
		total, err := strconv.ParseFloat(rec[6], 64)
		if err != nil {
			return nil, errors.Wrapf(err, "order %s: bad order_total", rec[0])
		}

		orders = append(orders, traffic.Order{
			OrderID:        rec[0],
			AdvertiserName: rec[1],
			AgencyName:     rec[2],
			OrderDate:      orderDate,
			StartDate:      startDate,
			EndDate:        endDate,
			OrderTotal:     total,
			Station:        rec[7],
		})
	}
	return orders, nil
}

func readSpots(path string) ([]traffic.Spot, error) {
	records, err := readCSVFile(path, 10)
	if err != nil {
		return nil, err
	}

	spots := make([]traffic.Spot, 0, len(records))
	for _, rec := range records {
		airDate, err := time.Parse(dateLayout, rec[2])
		if err != nil {
			return nil, errors.Wrapf(err, "spot %s: bad air_date", rec[0])
		}
		length, err := strconv.Atoi(rec[6])
		if err != nil {
			return nil, errors.Wrapf(err, "spot %s: bad length", rec[0])
		}
		rate, err := strconv.ParseFloat(rec[7], 64)
		if err != nil {
			return nil, errors.Wrapf(err, "spot %s: bad rate", rec[0])
		}

		spots = append(spots, traffic.Spot{
			SpotID:  rec[0],
			OrderID: rec[1],
			AirDate: airDate,
			AirTime: rec[3],
			Daypart: rec[4],
			Program: rec[5],
			Length:  length,
			Rate:    rate,
			Status:  traffic.SpotStatus(rec[8]),
			Station: rec[9],
		})
	}
	return spots, nil
}

func readInventory(path string) ([]traffic.InventorySlot, error) {
	records, err := readCSVFile(path, 6)
	if err != nil {
		return nil, err
	}

	rows := make([]traffic.InventorySlot, 0, len(records))
	for _, rec := range records {
		date, err := time.Parse(dateLayout, rec[0])
		if err != nil {
			return nil, errors.Wrap(err, "inventory: bad date")
		}
		avails, err := strconv.Atoi(rec[3])
		if err != nil {
			return nil, errors.Wrap(err, "inventory: bad total_avails")
		}
		booked, err := strconv.Atoi(rec[4])
		if err != nil {
			return nil, errors.Wrap(err, "inventory: bad booked")
		}
		remaining, err := strconv.Atoi(rec[5])
		if err != nil {
			return nil, errors.Wrap(err, "inventory: bad remaining")
		}

		rows = append(rows, traffic.InventorySlot{
			Date:        date,
			Daypart:     rec[1],
			Station:     rec[2],
			TotalAvails: avails,
			Booked:      booked,
			Remaining:   remaining,
		})
	}
	return rows, nil
}
