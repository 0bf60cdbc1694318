// Package analysis computes the pre-aggregated views served by the data API:
// revenue by daypart, AUR trends, advertiser concentration, sell-out rates
// and preemption/makegood exposure. All revenue figures filter on statuses
// aired and makegood; preemption denominators additionally count preempted.
package analysis

import (
	"fmt"
	"math"
	"sort"

	"github.com/montanaflynn/stats"

	"gotraffic/domain/traffic"
)

const (
	// Comparison years: current year vs prior year.
	CYYear = 2025
	PYYear = 2024
)

// revenueStatuses are the statuses that count toward revenue.
var revenueStatuses = map[traffic.SpotStatus]bool{
	traffic.StatusAired:    true,
	traffic.StatusMakegood: true,
}

// countableStatuses are the statuses that count toward disruption rates.
var countableStatuses = map[traffic.SpotStatus]bool{
	traffic.StatusAired:     true,
	traffic.StatusMakegood:  true,
	traffic.StatusPreempted: true,
}

// DaypartOrder is the canonical broadcast-day ordering used by every view.
var DaypartOrder = []string{"EM", "DT", "EF", "EN", "PA", "PR", "LN", "LF"}

// DaypartNames maps codes to display names.
var DaypartNames = map[string]string{
	"EM": "Early Morning",
	"DT": "Daytime",
	"EF": "Early Fringe",
	"EN": "Early News",
	"PA": "Prime Access",
	"PR": "Prime",
	"LN": "Late News",
	"LF": "Late Fringe",
}

func round1(x float64) float64 { return math.Round(x*10) / 10 }
func round2(x float64) float64 { return math.Round(x*100) / 100 }

// ── revenue by daypart ───────────────────────────────────────────────────────

// DaypartRevenue is one daypart's CY/PY revenue comparison.
type DaypartRevenue struct {
	Daypart     string  `json:"daypart"`
	DaypartName string  `json:"daypart_name"`
	CYRevenue   float64 `json:"cy_revenue"`
	PYRevenue   float64 `json:"py_revenue"`
	YoYPct      float64 `json:"yoy_pct"`
	SharePct    float64 `json:"share_pct"`
}

// RevenueByDaypartResult is the full revenue-by-daypart view.
type RevenueByDaypartResult struct {
	Dayparts    []DaypartRevenue `json:"dayparts"`
	TotalCY     float64          `json:"total_cy"`
	TotalPY     float64          `json:"total_py"`
	TotalYoYPct float64          `json:"total_yoy_pct"`
}

// RevenueByDaypart aggregates CY vs PY revenue per daypart, optionally
// filtered to one station.
func RevenueByDaypart(spots []traffic.Spot, station string) RevenueByDaypartResult {
	cyByDp := make(map[string]float64)
	pyByDp := make(map[string]float64)
	var totalCY, totalPY float64

	for _, sp := range spots {
		if !revenueStatuses[sp.Status] {
			continue
		}
		if station != "" && sp.Station != station {
			continue
		}
		switch sp.AirDate.Year() {
		case CYYear:
			cyByDp[sp.Daypart] += sp.Rate
			totalCY += sp.Rate
		case PYYear:
			pyByDp[sp.Daypart] += sp.Rate
			totalPY += sp.Rate
		}
	}

	result := RevenueByDaypartResult{
		TotalCY: round2(totalCY),
		TotalPY: round2(totalPY),
	}
	if totalPY > 0 {
		result.TotalYoYPct = round1((totalCY - totalPY) / totalPY * 100)
	}

	for _, code := range DaypartOrder {
		cy, py := cyByDp[code], pyByDp[code]
		var yoy, share float64
		if py > 0 {
			yoy = (cy - py) / py * 100
		}
		if totalCY > 0 {
			share = cy / totalCY * 100
		}
		result.Dayparts = append(result.Dayparts, DaypartRevenue{
			Daypart:     code,
			DaypartName: DaypartNames[code],
			CYRevenue:   round2(cy),
			PYRevenue:   round2(py),
			YoYPct:      round1(yoy),
			SharePct:    round1(share),
		})
	}
	return result
}

// ── AUR trends ───────────────────────────────────────────────────────────────

// AURTrendsResult holds per-daypart mean-rate series over ordered periods.
// A nil entry means the daypart had no revenue spots in that period.
type AURTrendsResult struct {
	Periods []string              `json:"periods"`
	Series  map[string][]*float64 `json:"series"`
}

// AURTrends computes Average Unit Rate series at monthly or quarterly
// granularity, optionally filtered to one station.
func AURTrends(spots []traffic.Spot, station, granularity string) AURTrendsResult {
	rates := make(map[string]map[string][]float64) // period -> daypart -> rates
	for _, sp := range spots {
		if !revenueStatuses[sp.Status] {
			continue
		}
		if station != "" && sp.Station != station {
			continue
		}

		var period string
		if granularity == "quarterly" {
			q := (int(sp.AirDate.Month())-1)/3 + 1
			period = fmt.Sprintf("%dQ%d", sp.AirDate.Year(), q)
		} else {
			period = sp.AirDate.Format("2006-01")
		}

		if rates[period] == nil {
			rates[period] = make(map[string][]float64)
		}
		rates[period][sp.Daypart] = append(rates[period][sp.Daypart], sp.Rate)
	}

	periods := make([]string, 0, len(rates))
	for p := range rates {
		periods = append(periods, p)
	}
	sort.Strings(periods)

	series := make(map[string][]*float64, len(DaypartOrder))
	for _, code := range DaypartOrder {
		values := make([]*float64, len(periods))
		for i, p := range periods {
			if rs := rates[p][code]; len(rs) > 0 {
				mean, _ := stats.Mean(rs)
				v := round2(mean)
				values[i] = &v
			}
		}
		series[code] = values
	}

	return AURTrendsResult{Periods: periods, Series: series}
}

// ── top advertisers ──────────────────────────────────────────────────────────

// AdvertiserShare is one advertiser's revenue and concentration position.
type AdvertiserShare struct {
	Name              string  `json:"name"`
	Revenue           float64 `json:"revenue"`
	SharePct          float64 `json:"share_pct"`
	ConcentrationFlag bool    `json:"concentration_flag"`
}

// TopAdvertisersResult is the advertiser concentration view: ranked shares,
// HHI over all advertisers and the combined top-5 share.
type TopAdvertisersResult struct {
	Advertisers []AdvertiserShare `json:"advertisers"`
	HHI         float64           `json:"hhi"`
	Top5Share   float64           `json:"top5_share"`
}

// TopAdvertisers ranks advertisers by revenue, optionally filtered to one
// station. The concentration flag trips above a 15% single-advertiser share.
func TopAdvertisers(spots []traffic.Spot, orders []traffic.Order, station string, limit int) TopAdvertisersResult {
	advByOrder := make(map[string]string, len(orders))
	for _, o := range orders {
		advByOrder[o.OrderID] = o.AdvertiserName
	}

	byAdv := make(map[string]float64)
	var total float64
	for _, sp := range spots {
		if !revenueStatuses[sp.Status] {
			continue
		}
		if station != "" && sp.Station != station {
			continue
		}
		byAdv[advByOrder[sp.OrderID]] += sp.Rate
		total += sp.Rate
	}

	names := make([]string, 0, len(byAdv))
	for name := range byAdv {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		if byAdv[names[i]] != byAdv[names[j]] {
			return byAdv[names[i]] > byAdv[names[j]]
		}
		return names[i] < names[j]
	})

	result := TopAdvertisersResult{}
	for i, name := range names {
		if i >= limit {
			break
		}
		var share float64
		if total > 0 {
			share = byAdv[name] / total * 100
		}
		result.Advertisers = append(result.Advertisers, AdvertiserShare{
			Name:              name,
			Revenue:           round2(byAdv[name]),
			SharePct:          round1(share),
			ConcentrationFlag: share > 15,
		})
	}

	if total > 0 {
		var hhi, top5 float64
		for _, rev := range byAdv {
			share := rev / total * 100
			hhi += share * share
		}
		for i := 0; i < 5 && i < len(names); i++ {
			top5 += byAdv[names[i]]
		}
		result.HHI = math.Round(hhi)
		result.Top5Share = round1(top5 / total * 100)
	}
	return result
}

// ── sell-out rates ───────────────────────────────────────────────────────────

// DaypartSellout is one daypart's CY vs PY sell-out comparison.
type DaypartSellout struct {
	Daypart     string  `json:"daypart"`
	DaypartName string  `json:"daypart_name"`
	CYRate      float64 `json:"cy_rate"`
	PYRate      float64 `json:"py_rate"`
	PricingFlag bool    `json:"pricing_flag"`
}

// SelloutRates aggregates booked/avails per daypart for the comparison
// years. The pricing flag trips above an 85% CY sell-out.
func SelloutRates(inventory []traffic.InventorySlot, station string) []DaypartSellout {
	type agg struct{ booked, avails int }
	cy := make(map[string]*agg)
	py := make(map[string]*agg)

	for _, inv := range inventory {
		if station != "" && inv.Station != station {
			continue
		}
		var m map[string]*agg
		switch inv.Date.Year() {
		case CYYear:
			m = cy
		case PYYear:
			m = py
		default:
			continue
		}
		a := m[inv.Daypart]
		if a == nil {
			a = &agg{}
			m[inv.Daypart] = a
		}
		a.booked += inv.Booked
		a.avails += inv.TotalAvails
	}

	rate := func(a *agg) float64 {
		if a == nil || a.avails == 0 {
			return 0
		}
		return float64(a.booked) / float64(a.avails) * 100
	}

	var result []DaypartSellout
	for _, code := range DaypartOrder {
		cyRate := rate(cy[code])
		result = append(result, DaypartSellout{
			Daypart:     code,
			DaypartName: DaypartNames[code],
			CYRate:      round1(cyRate),
			PYRate:      round1(rate(py[code])),
			PricingFlag: cyRate > 85,
		})
	}
	return result
}

// ── makegood / preemption summary ────────────────────────────────────────────

// StationDisruption is one station's preemption and makegood exposure.
type StationDisruption struct {
	Station        string  `json:"station"`
	Preempted      int     `json:"preempted"`
	Makegood       int     `json:"makegood"`
	TotalSpots     int     `json:"total_spots"`
	PreemptionRate float64 `json:"preemption_rate"`
	MakegoodRate   float64 `json:"makegood_rate"`
	CombinedRate   float64 `json:"combined_rate"`
	RevenueImpact  float64 `json:"revenue_impact"`
	Flag           bool    `json:"flag"`
}

// DaypartDisruption is one daypart's preemption and makegood exposure.
type DaypartDisruption struct {
	Daypart       string  `json:"daypart"`
	DaypartName   string  `json:"daypart_name"`
	Preempted     int     `json:"preempted"`
	Makegood      int     `json:"makegood"`
	TotalSpots    int     `json:"total_spots"`
	CombinedRate  float64 `json:"combined_rate"`
	RevenueImpact float64 `json:"revenue_impact"`
	Flag          bool    `json:"flag"`
}

// MakegoodSummaryResult is the disruption view by station and by daypart.
type MakegoodSummaryResult struct {
	Stations  []StationDisruption `json:"stations"`
	ByDaypart []DaypartDisruption `json:"by_daypart"`
}

// MakegoodSummary computes preemption/makegood rates over the countable
// status set, with preempted revenue as the impact figure. The flag trips
// above a 5% combined rate.
func MakegoodSummary(spots []traffic.Spot, station string) MakegoodSummaryResult {
	type tally struct {
		total, preempted, makegood int
		preemptedRevenue           float64
	}

	byStation := make(map[string]*tally)
	byDaypart := make(map[string]*tally)
	bump := func(m map[string]*tally, key string, sp traffic.Spot) {
		t := m[key]
		if t == nil {
			t = &tally{}
			m[key] = t
		}
		if countableStatuses[sp.Status] {
			t.total++
			switch sp.Status {
			case traffic.StatusPreempted:
				t.preempted++
			case traffic.StatusMakegood:
				t.makegood++
			}
		}
		if sp.Status == traffic.StatusPreempted {
			t.preemptedRevenue += sp.Rate
		}
	}

	for _, sp := range spots {
		if station != "" && sp.Station != station {
			continue
		}
		bump(byStation, sp.Station, sp)
		bump(byDaypart, sp.Daypart, sp)
	}

	stations := make([]string, 0, len(byStation))
	for s := range byStation {
		stations = append(stations, s)
	}
	sort.Strings(stations)

	var result MakegoodSummaryResult
	for _, s := range stations {
		t := byStation[s]
		var pRate, mRate float64
		if t.total > 0 {
			pRate = float64(t.preempted) / float64(t.total) * 100
			mRate = float64(t.makegood) / float64(t.total) * 100
		}
		result.Stations = append(result.Stations, StationDisruption{
			Station:        s,
			Preempted:      t.preempted,
			Makegood:       t.makegood,
			TotalSpots:     t.total,
			PreemptionRate: round1(pRate),
			MakegoodRate:   round1(mRate),
			CombinedRate:   round1(pRate + mRate),
			RevenueImpact:  round2(t.preemptedRevenue),
			Flag:           pRate+mRate > 5,
		})
	}

	for _, code := range DaypartOrder {
		t := byDaypart[code]
		if t == nil {
			t = &tally{}
		}
		var combined float64
		if t.total > 0 {
			combined = float64(t.preempted+t.makegood) / float64(t.total) * 100
		}
		result.ByDaypart = append(result.ByDaypart, DaypartDisruption{
			Daypart:       code,
			DaypartName:   DaypartNames[code],
			Preempted:     t.preempted,
			Makegood:      t.makegood,
			TotalSpots:    t.total,
			CombinedRate:  round1(combined),
			RevenueImpact: round2(t.preemptedRevenue),
			Flag:          combined > 5,
		})
	}
	return result
}
