package trafficgen

import (
	"fmt"
	"math/rand"

	"gotraffic/domain/traffic"
)

// generateSpots explodes each order into individual placements. Spot volume
// scales with the buyer's tier and the clipped flight length, adjusted by
// the seasonal volume multiplier at the flight midpoint. Placements spread
// across dayparts by the derived volume weights, which is what makes
// count x rate reproduce the target revenue shares.
func generateSpots(orders []traffic.Order, buyers []Buyer, cfg Config, rng *rand.Rand) []traffic.Spot {
	dayparts := traffic.Dayparts()
	volumeWeights := traffic.VolumeWeights(dayparts)
	programs := traffic.Programs()

	stationByCall := make(map[string]traffic.Station)
	for _, s := range traffic.Stations() {
		stationByCall[s.CallSign] = s
	}
	shareByName := make(map[string]float64)
	for _, b := range buyers {
		shareByName[b.Name] = b.Share
	}

	var spots []traffic.Spot
	spotCounter := 100000

	for _, order := range orders {
		// Clip to the primary range; warm-up flights start before it.
		effStart := order.StartDate
		if effStart.Before(cfg.DateStart) {
			effStart = cfg.DateStart
		}
		effEnd := order.EndDate
		if effEnd.After(cfg.DateEnd) {
			effEnd = cfg.DateEnd
		}
		flightDays := daysBetween(effStart, effEnd) + 1
		if flightDays <= 0 {
			continue
		}

		share, ok := shareByName[order.AdvertiserName]
		if !ok {
			share = 0.005
		}
		spotsPerWeek := intInRange(rng, spotsPerWeekRanges[tierOf(share)])

		nSpots := spotsPerWeek * flightDays / 7
		if nSpots < 1 {
			nSpots = 1
		}

		// Midpoint anchored at the contracted start, not the clipped one.
		midDate := order.StartDate.AddDate(0, 0, flightDays/2)
		nSpots = int(float64(nSpots) * seasonalVolumeMultiplier(midDate.Month()))
		if nSpots < 1 {
			nSpots = 1
		}

		station := stationByCall[order.Station]

		for i := 0; i < nSpots; i++ {
			spotCounter++
			dp := dayparts[weightedPick(rng, volumeWeights)]

			airDate := effStart.AddDate(0, 0, rng.Intn(flightDays))
			airTime := randomTimeInWindow(dp, rng)

			length := traffic.SpotLengths[weightedPick(rng, traffic.SpotLengthWeights)]
			rate := spotRate(station, dp, length, airDate, cfg.GrowthYear, rng)
			status := resolveStatus(airDate, dp.Code, station.CallSign, cfg.TodayCutoff, rng)

			pool := programs[dp.Code]
			program := pool[rng.Intn(len(pool))]

			spots = append(spots, traffic.Spot{
				SpotID:  fmt.Sprintf("SP-%06d", spotCounter),
				OrderID: order.OrderID,
				AirDate: airDate,
				AirTime: airTime,
				Daypart: dp.Code,
				Program: program,
				Length:  length,
				Rate:    rate,
				Status:  status,
				Station: station.CallSign,
			})
		}
	}
	return spots
}

// randomTimeInWindow picks a uniform minute inside the daypart window.
// Windows that wrap past midnight (Late Fringe) extend by 24h before the
// modulo reduction.
func randomTimeInWindow(dp traffic.Daypart, rng *rand.Rand) string {
	start, end := dp.Start, dp.End
	if end <= start {
		end += 24 * 60
	}
	mins := (start + rng.Intn(end-start)) % (24 * 60)
	return fmt.Sprintf("%02d:%02d:00", mins/60, mins%60)
}

// backfillOrderTotals sets each order's total to the exact sum of its spots'
// rates, zero for orders that ended up with none. Runs exactly once, after
// all spots exist.
func backfillOrderTotals(orders []traffic.Order, spots []traffic.Spot) {
	totals := make(map[string]float64, len(orders))
	for _, sp := range spots {
		totals[sp.OrderID] += sp.Rate
	}
	for i := range orders {
		orders[i].OrderTotal = roundCents(totals[orders[i].OrderID])
	}
}
