package trafficgen

import (
	"math"
	"math/rand"
	"testing"
	"time"

	"gotraffic/domain/traffic"
)

func TestSeasonalMultipliers(t *testing.T) {
	cases := []struct {
		month  time.Month
		rate   float64
		volume float64
	}{
		{time.November, 1.15, 1.20},
		{time.February, 0.90, 0.85},
		{time.July, 0.95, 0.90},
		{time.May, 1.00, 1.00},
	}
	for _, c := range cases {
		if got := seasonalRateMultiplier(c.month); got != c.rate {
			t.Errorf("rate multiplier for %s = %.2f, want %.2f", c.month, got, c.rate)
		}
		if got := seasonalVolumeMultiplier(c.month); got != c.volume {
			t.Errorf("volume multiplier for %s = %.2f, want %.2f", c.month, got, c.volume)
		}
	}
}

func TestSpotRate_Bounds(t *testing.T) {
	station := traffic.Stations()[0] // KHQ-TV, prime mid 800
	var prime traffic.Daypart
	for _, dp := range traffic.Dayparts() {
		if dp.Code == "PR" {
			prime = dp
		}
	}

	rng := rand.New(rand.NewSource(11))
	airDate := time.Date(2024, 5, 15, 0, 0, 0, 0, time.UTC) // no seasonal adjustment

	// Base: 800 * 1.0 * 1.0 (30s) * 1.0 seasonal, noise clamped to [0.85, 1.15].
	for i := 0; i < 500; i++ {
		rate := spotRate(station, prime, 30, airDate, 2025, rng)
		if rate < 800*0.85-0.01 || rate > 800*1.15+0.01 {
			t.Fatalf("prime 30s rate %.2f outside noise envelope", rate)
		}
	}
}

func TestSpotRate_LengthScaling(t *testing.T) {
	station := traffic.Stations()[0]
	dp := traffic.Dayparts()[0]
	airDate := time.Date(2024, 5, 15, 0, 0, 0, 0, time.UTC)

	mean := func(length int) float64 {
		rng := rand.New(rand.NewSource(5))
		var sum float64
		const n = 2000
		for i := 0; i < n; i++ {
			sum += spotRate(station, dp, length, airDate, 2025, rng)
		}
		return sum / n
	}

	m15, m30, m60 := mean(15), mean(30), mean(60)
	if !(m15 < m30 && m30 < m60) {
		t.Fatalf("length scaling broken: 15s=%.2f 30s=%.2f 60s=%.2f", m15, m30, m60)
	}
	if ratio := m60 / m30; math.Abs(ratio-1.80) > 0.05 {
		t.Errorf("60s/30s ratio %.3f, want ~1.80", ratio)
	}
}

func TestSpotRate_GrowthYear(t *testing.T) {
	station := traffic.Stations()[0]
	var prime traffic.Daypart
	for _, dp := range traffic.Dayparts() {
		if dp.Code == "PR" {
			prime = dp
		}
	}

	mean := func(year int) float64 {
		rng := rand.New(rand.NewSource(5))
		var sum float64
		const n = 2000
		for i := 0; i < n; i++ {
			sum += spotRate(station, prime, 30, time.Date(year, 5, 15, 0, 0, 0, 0, time.UTC), 2025, rng)
		}
		return sum / n
	}

	growth := mean(2025)/mean(2024) - 1
	if math.Abs(growth-prime.YoYGrowth) > 0.01 {
		t.Errorf("prime growth %.3f, want ~%.3f", growth, prime.YoYGrowth)
	}
}

func TestRoundCents(t *testing.T) {
	if got := roundCents(10.006); got != 10.01 {
		t.Errorf("roundCents(10.006) = %v", got)
	}
	if got := roundCents(10.004); got != 10.0 {
		t.Errorf("roundCents(10.004) = %v", got)
	}
	if got := roundCents(3.14159); got != 3.14 {
		t.Errorf("roundCents(3.14159) = %v", got)
	}
}
