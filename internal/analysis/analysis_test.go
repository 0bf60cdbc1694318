package analysis

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"gotraffic/domain/traffic"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func fixtureOrders() []traffic.Order {
	return []traffic.Order{
		{OrderID: "WO-01001", AdvertiserName: "Toyota Regional", Station: "KHQ-TV"},
		{OrderID: "WO-01002", AdvertiserName: "Zip's Drive-In", Station: "KULR-TV"},
		{OrderID: "WO-01003", AdvertiserName: "McDonald's Co-op", Station: "KHQ-TV"},
	}
}

func fixtureSpots() []traffic.Spot {
	return []traffic.Spot{
		// CY prime on KHQ-TV.
		{SpotID: "SP-1", OrderID: "WO-01001", AirDate: day(2025, 1, 10), Daypart: "PR", Rate: 800, Status: traffic.StatusAired, Station: "KHQ-TV"},
		{SpotID: "SP-2", OrderID: "WO-01001", AirDate: day(2025, 2, 10), Daypart: "PR", Rate: 600, Status: traffic.StatusMakegood, Station: "KHQ-TV"},
		// Preempted revenue never counts.
		{SpotID: "SP-3", OrderID: "WO-01001", AirDate: day(2025, 1, 20), Daypart: "PR", Rate: 500, Status: traffic.StatusPreempted, Station: "KHQ-TV"},
		// Scheduled future spot, ignored everywhere.
		{SpotID: "SP-4", OrderID: "WO-01001", AirDate: day(2025, 3, 20), Daypart: "PR", Rate: 900, Status: traffic.StatusScheduled, Station: "KHQ-TV"},
		// PY prime on KHQ-TV.
		{SpotID: "SP-5", OrderID: "WO-01003", AirDate: day(2024, 1, 15), Daypart: "PR", Rate: 1000, Status: traffic.StatusAired, Station: "KHQ-TV"},
		// CY early news on KULR-TV.
		{SpotID: "SP-6", OrderID: "WO-01002", AirDate: day(2025, 1, 5), Daypart: "EN", Rate: 200, Status: traffic.StatusAired, Station: "KULR-TV"},
		{SpotID: "SP-7", OrderID: "WO-01002", AirDate: day(2025, 2, 5), Daypart: "EN", Rate: 300, Status: traffic.StatusAired, Station: "KULR-TV"},
	}
}

func TestRevenueByDaypart(t *testing.T) {
	result := RevenueByDaypart(fixtureSpots(), "")

	assert.Len(t, result.Dayparts, 8)
	assert.Equal(t, 1900.0, result.TotalCY) // 800 + 600 + 200 + 300
	assert.Equal(t, 1000.0, result.TotalPY)
	assert.InDelta(t, 90.0, result.TotalYoYPct, 0.01)

	var prime DaypartRevenue
	for _, dp := range result.Dayparts {
		if dp.Daypart == "PR" {
			prime = dp
		}
	}
	assert.Equal(t, "Prime", prime.DaypartName)
	assert.Equal(t, 1400.0, prime.CYRevenue)
	assert.Equal(t, 1000.0, prime.PYRevenue)
	assert.InDelta(t, 40.0, prime.YoYPct, 0.01)
	assert.InDelta(t, 1400.0/1900.0*100, prime.SharePct, 0.1)
}

func TestRevenueByDaypart_StationFilter(t *testing.T) {
	result := RevenueByDaypart(fixtureSpots(), "KULR-TV")
	assert.Equal(t, 500.0, result.TotalCY)
	assert.Equal(t, 0.0, result.TotalPY)
	assert.Equal(t, 0.0, result.TotalYoYPct) // no PY base, no percentage
}

func TestAURTrends_Monthly(t *testing.T) {
	result := AURTrends(fixtureSpots(), "", "monthly")

	assert.Equal(t, []string{"2024-01", "2025-01", "2025-02"}, result.Periods)

	prime := result.Series["PR"]
	assert.Len(t, prime, 3)
	assert.Equal(t, 1000.0, *prime[0])
	assert.Equal(t, 800.0, *prime[1])
	assert.Equal(t, 600.0, *prime[2])

	news := result.Series["EN"]
	assert.Nil(t, news[0]) // no early news in Jan 2024
	assert.Equal(t, 200.0, *news[1])
}

func TestAURTrends_Quarterly(t *testing.T) {
	result := AURTrends(fixtureSpots(), "", "quarterly")
	assert.Equal(t, []string{"2024Q1", "2025Q1"}, result.Periods)

	prime := result.Series["PR"]
	assert.Equal(t, 1000.0, *prime[0])
	assert.Equal(t, 700.0, *prime[1]) // mean of 800 and 600
}

func TestTopAdvertisers(t *testing.T) {
	result := TopAdvertisers(fixtureSpots(), fixtureOrders(), "", 10)

	assert.Len(t, result.Advertisers, 3)
	assert.Equal(t, "Toyota Regional", result.Advertisers[0].Name)
	assert.Equal(t, 1400.0, result.Advertisers[0].Revenue)
	assert.True(t, result.Advertisers[0].ConcentrationFlag) // 48% share
	assert.False(t, result.Advertisers[2].ConcentrationFlag)

	// 3 advertisers: shares 1400/2900, 1000/2900, 500/2900.
	assert.InDelta(t, 100.0, result.Top5Share, 0.1)
	assert.Greater(t, result.HHI, 2500.0)

	limited := TopAdvertisers(fixtureSpots(), fixtureOrders(), "", 1)
	assert.Len(t, limited.Advertisers, 1)
	// HHI and top-5 still cover the full population.
	assert.Equal(t, result.HHI, limited.HHI)
}

func TestSelloutRates(t *testing.T) {
	inventory := []traffic.InventorySlot{
		{Date: day(2025, 1, 10), Daypart: "PR", Station: "KHQ-TV", TotalAvails: 10, Booked: 9},
		{Date: day(2025, 1, 11), Daypart: "PR", Station: "KHQ-TV", TotalAvails: 10, Booked: 9},
		{Date: day(2024, 1, 10), Daypart: "PR", Station: "KHQ-TV", TotalAvails: 10, Booked: 7},
		{Date: day(2025, 1, 10), Daypart: "EM", Station: "KHQ-TV", TotalAvails: 20, Booked: 8},
		// Outside both comparison years.
		{Date: day(2023, 12, 31), Daypart: "PR", Station: "KHQ-TV", TotalAvails: 10, Booked: 10},
	}

	result := SelloutRates(inventory, "")
	assert.Len(t, result, 8)

	var prime, morning DaypartSellout
	for _, dp := range result {
		switch dp.Daypart {
		case "PR":
			prime = dp
		case "EM":
			morning = dp
		}
	}
	assert.InDelta(t, 90.0, prime.CYRate, 0.01)
	assert.InDelta(t, 70.0, prime.PYRate, 0.01)
	assert.True(t, prime.PricingFlag)
	assert.InDelta(t, 40.0, morning.CYRate, 0.01)
	assert.False(t, morning.PricingFlag)
}

func TestMakegoodSummary(t *testing.T) {
	result := MakegoodSummary(fixtureSpots(), "")

	assert.Len(t, result.Stations, 2)
	khq := result.Stations[0]
	assert.Equal(t, "KHQ-TV", khq.Station)
	assert.Equal(t, 1, khq.Preempted)
	assert.Equal(t, 1, khq.Makegood)
	assert.Equal(t, 4, khq.TotalSpots) // aired/makegood/preempted; scheduled excluded
	assert.InDelta(t, 25.0, khq.PreemptionRate, 0.01)
	assert.InDelta(t, 50.0, khq.CombinedRate, 0.01)
	assert.True(t, khq.Flag)
	assert.Equal(t, 500.0, khq.RevenueImpact)

	kulr := result.Stations[1]
	assert.Equal(t, "KULR-TV", kulr.Station)
	assert.Equal(t, 0.0, kulr.CombinedRate)
	assert.False(t, kulr.Flag)

	assert.Len(t, result.ByDaypart, 8)
	for _, dp := range result.ByDaypart {
		if dp.Daypart == "PR" {
			assert.Equal(t, 1, dp.Preempted)
			assert.Equal(t, 4, dp.TotalSpots)
		}
	}
}
