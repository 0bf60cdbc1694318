package trafficgen

import (
	"strings"
	"testing"
	"time"

	"gotraffic/domain/traffic"
)

func validateFixture() ([]traffic.Order, []traffic.Spot, []traffic.InventorySlot, time.Time) {
	cutoff := time.Date(2025, 2, 15, 0, 0, 0, 0, time.UTC)
	orders := []traffic.Order{{
		OrderID:        "WO-01001",
		AdvertiserName: "Acme",
		StartDate:      time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
		EndDate:        time.Date(2024, 6, 28, 0, 0, 0, 0, time.UTC),
		Station:        "KHQ-TV",
	}}
	spots := []traffic.Spot{{
		SpotID:  "SP-100001",
		OrderID: "WO-01001",
		AirDate: time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC),
		Daypart: "PR",
		Status:  traffic.StatusAired,
		Station: "KHQ-TV",
	}}
	inventory := []traffic.InventorySlot{{
		Date:        time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC),
		Daypart:     "PR",
		Station:     "KHQ-TV",
		TotalAvails: 10,
		Booked:      4,
		Remaining:   6,
	}}
	return orders, spots, inventory, cutoff
}

func assertViolation(t *testing.T, violations []string, fragment string) {
	t.Helper()
	for _, v := range violations {
		if strings.Contains(v, fragment) {
			return
		}
	}
	t.Fatalf("no violation mentioning %q in %v", fragment, violations)
}

func TestValidateTables_Clean(t *testing.T) {
	orders, spots, inventory, cutoff := validateFixture()
	if v := validateTables(orders, spots, inventory, cutoff); len(v) != 0 {
		t.Fatalf("clean fixture reported violations: %v", v)
	}
}

func TestValidateTables_UnknownOrderRef(t *testing.T) {
	orders, spots, inventory, cutoff := validateFixture()
	spots[0].OrderID = "WO-99999"
	assertViolation(t, validateTables(orders, spots, inventory, cutoff), "unknown order")
}

func TestValidateTables_EmptyOrderRef(t *testing.T) {
	orders, spots, inventory, cutoff := validateFixture()
	spots[0].OrderID = ""
	assertViolation(t, validateTables(orders, spots, inventory, cutoff), "empty order ID")
}

func TestValidateTables_OutsideFlight(t *testing.T) {
	orders, spots, inventory, cutoff := validateFixture()
	spots[0].AirDate = orders[0].EndDate.AddDate(0, 0, 5)
	assertViolation(t, validateTables(orders, spots, inventory, cutoff), "outside their order's flight")
}

func TestValidateTables_StationMismatch(t *testing.T) {
	orders, spots, inventory, cutoff := validateFixture()
	spots[0].Station = "KULR-TV"
	assertViolation(t, validateTables(orders, spots, inventory, cutoff), "station mismatch")
}

func TestValidateTables_NegativeRemaining(t *testing.T) {
	orders, spots, inventory, cutoff := validateFixture()
	inventory[0].Booked = 12
	inventory[0].Remaining = -2
	assertViolation(t, validateTables(orders, spots, inventory, cutoff), "negative remaining")
}

func TestValidateTables_BrokenArithmetic(t *testing.T) {
	orders, spots, inventory, cutoff := validateFixture()
	inventory[0].Remaining = 99
	assertViolation(t, validateTables(orders, spots, inventory, cutoff), "remaining == total_avails - booked")
}

func TestValidateTables_FutureNotScheduled(t *testing.T) {
	orders, spots, inventory, cutoff := validateFixture()
	// Still checked even when the order reference is broken.
	spots[0].OrderID = ""
	spots[0].AirDate = cutoff.AddDate(0, 0, 10)
	violations := validateTables(orders, spots, inventory, cutoff)
	assertViolation(t, violations, "not marked scheduled")
	assertViolation(t, violations, "empty order ID")
}

func TestValidateTables_ReportsEveryClass(t *testing.T) {
	orders, spots, inventory, cutoff := validateFixture()
	spots = append(spots, traffic.Spot{
		SpotID:  "SP-100002",
		OrderID: "WO-77777",
		AirDate: time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC),
		Status:  traffic.StatusAired,
		Station: "KHQ-TV",
	})
	inventory[0].Remaining = -1
	inventory[0].Booked = 11

	violations := validateTables(orders, spots, inventory, cutoff)
	if len(violations) < 2 {
		t.Fatalf("expected multiple violation classes, got %v", violations)
	}
}
