package trafficgen

import (
	"fmt"
	"time"

	"gotraffic/domain/traffic"
)

// validateTables runs the seven referential and arithmetic integrity checks
// over the finished tables. Every check is computed independently and every
// violation class is reported; a failing run still writes its files so the
// caller can inspect and re-seed.
func validateTables(orders []traffic.Order, spots []traffic.Spot, inventory []traffic.InventorySlot, cutoff time.Time) []string {
	var violations []string

	orderByID := make(map[string]traffic.Order, len(orders))
	for _, o := range orders {
		orderByID[o.OrderID] = o
	}

	var badRefs, outOfFlight, stationMismatch, missingRef, futureNotScheduled int
	for _, sp := range spots {
		if sp.AirDate.After(cutoff) && sp.Status != traffic.StatusScheduled {
			futureNotScheduled++
		}
		if sp.OrderID == "" {
			missingRef++
			continue
		}
		order, ok := orderByID[sp.OrderID]
		if !ok {
			badRefs++
			continue
		}
		if sp.AirDate.Before(order.StartDate) || sp.AirDate.After(order.EndDate) {
			outOfFlight++
		}
		if sp.Station != order.Station {
			stationMismatch++
		}
	}

	var negativeRemaining, arithmeticBroken int
	for _, inv := range inventory {
		if inv.Remaining < 0 {
			negativeRemaining++
		}
		if inv.Remaining != inv.TotalAvails-inv.Booked {
			arithmeticBroken++
		}
	}

	if badRefs > 0 {
		violations = append(violations, fmt.Sprintf("%d spots reference unknown order IDs", badRefs))
	}
	if outOfFlight > 0 {
		violations = append(violations, fmt.Sprintf("%d spots air outside their order's flight window", outOfFlight))
	}
	if stationMismatch > 0 {
		violations = append(violations, fmt.Sprintf("%d spots have a station mismatch with their order", stationMismatch))
	}
	if missingRef > 0 {
		violations = append(violations, fmt.Sprintf("%d spots have an empty order ID", missingRef))
	}
	if negativeRemaining > 0 {
		violations = append(violations, fmt.Sprintf("%d inventory rows have negative remaining", negativeRemaining))
	}
	if arithmeticBroken > 0 {
		violations = append(violations, fmt.Sprintf("%d inventory rows break remaining == total_avails - booked", arithmeticBroken))
	}
	if futureNotScheduled > 0 {
		violations = append(violations, fmt.Sprintf("%d spots after the cutoff are not marked scheduled", futureNotScheduled))
	}

	return violations
}
