package trafficgen

import (
	"math"
	"math/rand"
	"time"

	"gotraffic/domain/traffic"
)

// seasonalRateMultiplier prices Q4 up 15%, Q1 down 10%, and the two slow
// summer months down 5%.
func seasonalRateMultiplier(month time.Month) float64 {
	switch month {
	case time.October, time.November, time.December:
		return 1.15
	case time.January, time.February, time.March:
		return 0.90
	case time.July, time.August:
		return 0.95
	}
	return 1.00
}

// seasonalVolumeMultiplier adjusts spot counts rather than rates: Q4 +20%,
// Q1 -15%, summer -10%.
func seasonalVolumeMultiplier(month time.Month) float64 {
	switch month {
	case time.October, time.November, time.December:
		return 1.20
	case time.January, time.February, time.March:
		return 0.85
	case time.July, time.August:
		return 0.90
	}
	return 1.00
}

// spotRate prices one placement. Growth and seasonality multiply a
// noise-free base so aggregate trend targets hold in expectation; the
// clamped noise term is applied last.
func spotRate(station traffic.Station, dp traffic.Daypart, length int, airDate time.Time, growthYear int, rng *rand.Rand) float64 {
	primeMid := (station.PrimeLow + station.PrimeHigh) / 2
	baseRate := primeMid * dp.AURMult

	rate := baseRate * traffic.SpotLengthRateMult[length] * seasonalRateMultiplier(airDate.Month())
	if airDate.Year() >= growthYear {
		rate *= 1.0 + dp.YoYGrowth
	}

	noise := 1.0 + rng.NormFloat64()*0.08
	noise = math.Max(0.85, math.Min(1.15, noise))
	return roundCents(rate * noise)
}

func roundCents(x float64) float64 {
	return math.Round(x*100) / 100
}
