package trafficgen

import (
	"fmt"
	"math/rand"
	"time"

	"gotraffic/domain/traffic"
)

// Flight lengths in weeks, non-uniformly weighted toward the middle by
// repetition: drawing uniformly from this slice gives 4w and 8w double
// weight and 13w triple weight.
var flightWeekChoices = []int{1, 2, 4, 4, 8, 8, 13, 13, 13}

// warmupFraction of each buyer's orders start before the primary range so
// the first quarter has spillover volume comparable to later quarters.
const warmupFraction = 0.18

// generateOrders produces the contract table. Order counts scale with the
// buyer's revenue-share tier; each buyer gets a warm-up cohort starting in
// the pre-range window plus regular orders spread evenly across the primary
// range with bounded jitter. Orders whose clipped flight misses the primary
// range entirely are dropped. OrderTotal stays zero until the spot backfill.
func generateOrders(buyers []Buyer, cfg Config, rng *rand.Rand) []traffic.Order {
	totalDays := daysBetween(cfg.DateStart, cfg.DateEnd)
	warmupDays := daysBetween(cfg.WarmupStart, cfg.DateStart)

	var orders []traffic.Order
	orderCounter := 1000

	for _, buyer := range buyers {
		nOrders := intInRange(rng, orderCountRanges[tierOf(buyer.Share)])
		nWarmup := int(float64(nOrders) * warmupFraction)
		if nWarmup < 1 {
			nWarmup = 1
		}

		for i := 0; i < nOrders+nWarmup; i++ {
			orderCounter++
			station := pickStation(buyer, rng)

			flightWeeks := flightWeekChoices[rng.Intn(len(flightWeekChoices))]
			flightDays := flightWeeks * 7

			var startDate time.Time
			if i < nWarmup {
				startDate = cfg.WarmupStart.AddDate(0, 0, rng.Intn(warmupDays))
			} else {
				idx := i - nWarmup
				baseOffset := int(float64(idx) / float64(nOrders) * float64(totalDays))
				jitter := -14 + rng.Intn(29)
				offset := baseOffset + jitter
				if max := totalDays - flightDays; offset > max {
					offset = max
				}
				if offset < 0 {
					offset = 0
				}
				startDate = cfg.DateStart.AddDate(0, 0, offset)
			}

			endDate := startDate.AddDate(0, 0, flightDays-1)
			if endDate.After(cfg.DateEnd) {
				endDate = cfg.DateEnd
			}
			// Warm-up flights that never reach the primary range carry no
			// usable volume.
			if endDate.Before(cfg.DateStart) {
				continue
			}

			leadDays := 1 + rng.Intn(30)
			orderDate := startDate.AddDate(0, 0, -leadDays)
			if orderDate.Before(cfg.OrderDateFloor) {
				orderDate = cfg.OrderDateFloor
			}

			orders = append(orders, traffic.Order{
				OrderID:        fmt.Sprintf("WO-%05d", orderCounter),
				AdvertiserName: buyer.Name,
				AgencyName:     buyer.Agency,
				OrderDate:      orderDate,
				StartDate:      startDate,
				EndDate:        endDate,
				OrderTotal:     0, // backfilled from spots
				Station:        station.CallSign,
			})
		}
	}
	return orders
}

// daysBetween returns whole days from a to b (both UTC dates).
func daysBetween(a, b time.Time) int {
	return int(b.Sub(a).Hours() / 24)
}
