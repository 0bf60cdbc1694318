package trafficgen

import (
	"math"
	"math/rand"
	"time"

	"gotraffic/domain/traffic"
)

type pairKey struct {
	station string
	daypart string
}

type dayKey struct {
	station string
	daypart string
	date    string
}

// generateInventory emits exactly one row per station x daypart x date in
// the primary range using a two-pass allocation per (station, daypart) pair:
//
//  1. Floor pass: every day's avails start at that day's booked count, so
//     remaining >= 0 holds trivially.
//  2. Target pass: the pair's total avails is back-computed from the target
//     sell-out rate (round(total_booked / target)); the shortfall above the
//     floor is spread across days by random weights, with the integer
//     rounding remainder bumped onto a random subset of days so the pair
//     total is exact.
//
// A naive per-day draw would not aggregate to the target sell-out rate;
// back-computing the pair total first preserves both the daily floor and
// the exact aggregate.
func generateInventory(spots []traffic.Spot, cfg Config, rng *rand.Rand) []traffic.InventorySlot {
	nDays := daysBetween(cfg.DateStart, cfg.DateEnd) + 1
	dates := make([]time.Time, nDays)
	for i := range dates {
		dates[i] = cfg.DateStart.AddDate(0, 0, i)
	}

	bookedByDay := make(map[dayKey]int)
	bookedByPair := make(map[pairKey]int)
	for _, sp := range spots {
		d := sp.AirDate.Format("2006-01-02")
		bookedByDay[dayKey{sp.Station, sp.Daypart, d}]++
		bookedByPair[pairKey{sp.Station, sp.Daypart}]++
	}

	selloutTargets := make(map[string]float64)
	for _, dp := range traffic.Dayparts() {
		selloutTargets[dp.Code] = dp.SelloutTarget
	}

	var rows []traffic.InventorySlot
	for _, station := range traffic.Stations() {
		for _, dp := range traffic.Dayparts() {
			totalBooked := bookedByPair[pairKey{station.CallSign, dp.Code}]

			targetAvails := nDays
			if totalBooked > 0 {
				targetAvails = int(math.Round(float64(totalBooked) / selloutTargets[dp.Code]))
			}

			// Floor pass
			booked := make([]int, nDays)
			avails := make([]int, nDays)
			for i, d := range dates {
				b := bookedByDay[dayKey{station.CallSign, dp.Code, d.Format("2006-01-02")}]
				booked[i] = b
				avails[i] = b
			}

			// Target pass
			toAdd := targetAvails - totalBooked
			if toAdd > 0 {
				weights := make([]float64, nDays)
				var wTotal float64
				for i := range weights {
					// Small additive floor keeps zero-weight days out.
					weights[i] = rng.Float64() + 0.1
					wTotal += weights[i]
				}

				assigned := 0
				for i := range weights {
					extra := int(weights[i] / wTotal * float64(toAdd))
					avails[i] += extra
					assigned += extra
				}
				if shortfall := toAdd - assigned; shortfall > 0 {
					for _, i := range uniformSample(rng, nDays, shortfall) {
						avails[i]++
					}
				}
			}

			for i, d := range dates {
				rows = append(rows, traffic.InventorySlot{
					Date:        d,
					Daypart:     dp.Code,
					Station:     station.CallSign,
					TotalAvails: avails[i],
					Booked:      booked[i],
					Remaining:   avails[i] - booked[i],
				})
			}
		}
	}
	return rows
}
