package trafficgen

import (
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"gotraffic/domain/traffic"
	"gotraffic/internal/errors"
)

var (
	orderHeaders     = []string{"order_id", "advertiser_name", "agency_name", "order_date", "start_date", "end_date", "order_total", "station"}
	spotHeaders      = []string{"spot_id", "order_id", "air_date", "air_time", "daypart", "program", "length", "rate", "status", "station"}
	inventoryHeaders = []string{"date", "daypart", "station", "total_avails", "booked", "remaining"}
)

const dateLayout = "2006-01-02"

func orderRow(o traffic.Order) []string {
	return []string{
		o.OrderID,
		o.AdvertiserName,
		o.AgencyName,
		o.OrderDate.Format(dateLayout),
		o.StartDate.Format(dateLayout),
		o.EndDate.Format(dateLayout),
		strconv.FormatFloat(o.OrderTotal, 'f', 2, 64),
		o.Station,
	}
}

func spotRow(s traffic.Spot) []string {
	return []string{
		s.SpotID,
		s.OrderID,
		s.AirDate.Format(dateLayout),
		s.AirTime,
		s.Daypart,
		s.Program,
		strconv.Itoa(s.Length),
		strconv.FormatFloat(s.Rate, 'f', 2, 64),
		string(s.Status),
		s.Station,
	}
}

func inventoryRow(i traffic.InventorySlot) []string {
	return []string{
		i.Date.Format(dateLayout),
		i.Daypart,
		i.Station,
		strconv.Itoa(i.TotalAvails),
		strconv.Itoa(i.Booked),
		strconv.Itoa(i.Remaining),
	}
}

// WriteCSV persists the three tables as orders.csv, spots.csv and
// inventory.csv under dir, each with a header row.
func WriteCSV(dir string, t Tables) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return errors.Wrap(err, "create output directory")
	}

	orders := make([][]string, len(t.Orders))
	for i, o := range t.Orders {
		orders[i] = orderRow(o)
	}
	if err := writeCSVFile(filepath.Join(dir, "orders.csv"), orderHeaders, orders); err != nil {
		return err
	}

	spots := make([][]string, len(t.Spots))
	for i, s := range t.Spots {
		spots[i] = spotRow(s)
	}
	if err := writeCSVFile(filepath.Join(dir, "spots.csv"), spotHeaders, spots); err != nil {
		return err
	}

	inventory := make([][]string, len(t.Inventory))
	for i, inv := range t.Inventory {
		inventory[i] = inventoryRow(inv)
	}
	return writeCSVFile(filepath.Join(dir, "inventory.csv"), inventoryHeaders, inventory)
}

func writeCSVFile(path string, headers []string, rows [][]string) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "create %s", path)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	if err := w.Write(headers); err != nil {
		return errors.Wrapf(err, "write header to %s", path)
	}
	for _, row := range rows {
		if err := w.Write(row); err != nil {
			return errors.Wrapf(err, "write row to %s", path)
		}
	}
	w.Flush()
	return w.Error()
}

// Manifest records the provenance of one generation run alongside the
// tables it produced.
type Manifest struct {
	RunID       string    `json:"run_id"`
	Seed        int64     `json:"seed"`
	GeneratedAt time.Time `json:"generated_at"`
	OrderCount  int       `json:"order_count"`
	SpotCount   int       `json:"spot_count"`
	InvRowCount int       `json:"inventory_row_count"`
	Valid       bool      `json:"valid"`
	Violations  []string  `json:"violations,omitempty"`
}

// WriteManifest writes manifest.json next to the tables.
func WriteManifest(dir string, r *Result) error {
	m := Manifest{
		RunID:       r.RunID,
		Seed:        r.Seed,
		GeneratedAt: time.Now().UTC(),
		OrderCount:  len(r.Tables.Orders),
		SpotCount:   len(r.Tables.Spots),
		InvRowCount: len(r.Tables.Inventory),
		Valid:       r.Valid(),
		Violations:  r.Violations,
	}

	f, err := os.Create(filepath.Join(dir, "manifest.json"))
	if err != nil {
		return errors.Wrap(err, "create manifest")
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(m)
}
