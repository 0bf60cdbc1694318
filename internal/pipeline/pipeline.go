// Package pipeline moves raw traffic exports through ingest and normalize
// stages: raw CSVs are header-checked and deduped into the processed
// directory, then normalized in place (canonical daypart codes, trimmed
// advertiser names).
package pipeline

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"

	"gotraffic/internal/errors"
)

// expectedHeaders keys the recognized export files by name.
var expectedHeaders = map[string][]string{
	"orders.csv": {"order_id", "advertiser_name", "agency_name", "order_date",
		"start_date", "end_date", "order_total", "station"},
	"spots.csv": {"spot_id", "order_id", "air_date", "air_time", "daypart",
		"program", "length", "rate", "status", "station"},
	"inventory.csv": {"date", "daypart", "station", "total_avails", "booked",
		"remaining"},
}

// daypartAliases maps the label variants seen in raw exports to codes.
var daypartAliases = map[string]string{
	"EARLY MORNING": "EM",
	"DAYTIME":       "DT",
	"EARLY FRINGE":  "EF",
	"EARLY NEWS":    "EN",
	"PRIME ACCESS":  "PA",
	"PRIME":         "PR",
	"LATE NEWS":     "LN",
	"LATE FRINGE":   "LF",
}

// StageResult reports what one stage did to one file.
type StageResult struct {
	File     string
	Rows     int
	Dropped  int // ingest: duplicate rows removed
	Adjusted int // normalize: cells rewritten
}

// Ingest copies recognized CSV exports from rawDir into processedDir,
// verifying headers and removing exact-duplicate rows. Unrecognized files
// are skipped. Ordering of surviving rows is preserved.
func Ingest(rawDir, processedDir string) ([]StageResult, error) {
	if err := os.MkdirAll(processedDir, 0o755); err != nil {
		return nil, errors.Wrap(err, "create processed directory")
	}

	matches, err := filepath.Glob(filepath.Join(rawDir, "*.csv"))
	if err != nil {
		return nil, errors.Wrap(err, "scan raw directory")
	}

	var results []StageResult
	for _, path := range matches {
		name := filepath.Base(path)
		want, ok := expectedHeaders[name]
		if !ok {
			continue
		}

		rows, err := readAll(path)
		if err != nil {
			return nil, errors.Wrapf(err, "read %s", name)
		}
		if len(rows) == 0 {
			return nil, errors.ValidationError(name + ": empty file")
		}
		if err := checkHeader(rows[0], want); err != nil {
			return nil, errors.Wrapf(err, "%s header", name)
		}

		seen := make(map[string]bool, len(rows))
		deduped := rows[:1]
		dropped := 0
		for _, row := range rows[1:] {
			key := strings.Join(row, "\x1f")
			if seen[key] {
				dropped++
				continue
			}
			seen[key] = true
			deduped = append(deduped, row)
		}

		if err := writeAll(filepath.Join(processedDir, name), deduped); err != nil {
			return nil, errors.Wrapf(err, "write %s", name)
		}
		results = append(results, StageResult{File: name, Rows: len(deduped) - 1, Dropped: dropped})
	}
	return results, nil
}

// Normalize rewrites the processed tables in place: daypart labels become
// canonical two-letter codes and advertiser/agency names lose stray
// whitespace.
func Normalize(processedDir string) ([]StageResult, error) {
	var results []StageResult
	for _, name := range []string{"orders.csv", "spots.csv", "inventory.csv"} {
		path := filepath.Join(processedDir, name)
		if _, err := os.Stat(path); os.IsNotExist(err) {
			continue
		}

		rows, err := readAll(path)
		if err != nil {
			return nil, errors.Wrapf(err, "read %s", name)
		}
		if len(rows) == 0 {
			continue
		}

		adjusted := 0
		cols := columnIndex(rows[0])
		for _, row := range rows[1:] {
			adjusted += normalizeRow(row, cols)
		}

		if err := writeAll(path, rows); err != nil {
			return nil, errors.Wrapf(err, "write %s", name)
		}
		results = append(results, StageResult{File: name, Rows: len(rows) - 1, Adjusted: adjusted})
	}
	return results, nil
}

func normalizeRow(row []string, cols map[string]int) int {
	adjusted := 0
	fix := func(col string, f func(string) string) {
		idx, ok := cols[col]
		if !ok || idx >= len(row) {
			return
		}
		if next := f(row[idx]); next != row[idx] {
			row[idx] = next
			adjusted++
		}
	}

	fix("daypart", func(v string) string {
		if code, ok := daypartAliases[strings.ToUpper(strings.TrimSpace(v))]; ok {
			return code
		}
		return strings.ToUpper(strings.TrimSpace(v))
	})
	fix("advertiser_name", collapseSpaces)
	fix("agency_name", collapseSpaces)
	return adjusted
}

func collapseSpaces(v string) string {
	return strings.Join(strings.Fields(v), " ")
}

func columnIndex(header []string) map[string]int {
	cols := make(map[string]int, len(header))
	for i, name := range header {
		cols[strings.TrimSpace(name)] = i
	}
	return cols
}

func checkHeader(got, want []string) error {
	if len(got) != len(want) {
		return errors.ValidationError("unexpected column count")
	}
	for i := range want {
		if strings.TrimSpace(got[i]) != want[i] {
			return errors.ValidationError("unexpected column " + got[i])
		}
	}
	return nil
}

func readAll(path string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	return r.ReadAll()
}

func writeAll(path string, rows [][]string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	return w.WriteAll(rows)
}
