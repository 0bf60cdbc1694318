package trafficgen

import (
	"fmt"
	"io"
	"math"
	"sort"
	"strings"

	"github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/stat/distuv"

	"gotraffic/domain/traffic"
)

// WriteSummary prints target-vs-actual statistics for a finished run.
// Read-only and diagnostic; nothing downstream consumes this output.
func WriteSummary(w io.Writer, t Tables, cfg Config) {
	fmt.Fprintln(w, strings70("="))
	fmt.Fprintln(w, "  TRAFFIC DATA GENERATION -- SUMMARY")
	fmt.Fprintln(w, strings70("="))

	fmt.Fprintf(w, "\n  Orders:    %8d\n", len(t.Orders))
	fmt.Fprintf(w, "  Spots:     %8d\n", len(t.Spots))
	fmt.Fprintf(w, "  Inventory: %8d\n", len(t.Inventory))

	var totalRevenue float64
	for _, sp := range t.Spots {
		totalRevenue += sp.Rate
	}
	fmt.Fprintf(w, "\n  Total Revenue: $%.2f\n", totalRevenue)

	writeStationRevenue(w, t, totalRevenue)
	writeDaypartRevenue(w, t, totalRevenue)
	writeLengthDistribution(w, t)
	writeStatusDistribution(w, t)
	writeConcentration(w, t, totalRevenue)
	writeSellout(w, t)
	writeDisruption(w, t, cfg)
	writeYoY(w, t)

	fmt.Fprintln(w, "\n"+strings70("="))
	fmt.Fprintln(w, "  GENERATION COMPLETE")
	fmt.Fprintln(w, strings70("="))
}

func writeStationRevenue(w io.Writer, t Tables, total float64) {
	section(w, "REVENUE BY STATION")
	byStation := make(map[string]float64)
	for _, sp := range t.Spots {
		byStation[sp.Station] += sp.Rate
	}
	for _, s := range sortedByValue(byStation) {
		fmt.Fprintf(w, "    %-10s $%12.2f  (%5.1f%%)\n", s, byStation[s], byStation[s]/total*100)
	}
}

func writeDaypartRevenue(w io.Writer, t Tables, total float64) {
	section(w, "REVENUE BY DAYPART (vs Target)")
	byDaypart := make(map[string]float64)
	counts := make(map[string]int)
	for _, sp := range t.Spots {
		byDaypart[sp.Daypart] += sp.Rate
		counts[sp.Daypart]++
	}

	volumeWeights := traffic.VolumeWeights(traffic.Dayparts())
	n := float64(len(t.Spots))
	norm := distuv.Normal{Mu: 0, Sigma: 1}

	for i, dp := range traffic.Dayparts() {
		pct := byDaypart[dp.Code] / total * 100
		target := dp.RevenueShare * 100
		delta := pct - target

		// Normal-approximation drift check on the count share: flags a
		// daypart whose placement volume wandered off its derived weight.
		expected := volumeWeights[i]
		observed := float64(counts[dp.Code]) / n
		se := math.Sqrt(expected * (1 - expected) / n)
		z := (observed - expected) / se
		pval := 2 * (1 - norm.CDF(math.Abs(z)))

		flag := ""
		if math.Abs(delta) > 3 && pval < 0.01 {
			flag = "  !! DRIFT"
		}
		fmt.Fprintf(w, "    %s (%-16s) %5.1f%%  (target: %5.1f%%, delta: %+.1f%%)%s\n",
			dp.Code, dp.Name, pct, target, delta, flag)
	}
}

func writeLengthDistribution(w io.Writer, t Tables) {
	section(w, "SPOT LENGTH DISTRIBUTION (vs Target)")
	counts := make(map[int]int)
	for _, sp := range t.Spots {
		counts[sp.Length]++
	}
	targets := map[int]float64{15: 0.20, 30: 0.70, 60: 0.10}
	lengths := []int{15, 30, 60}
	for _, l := range lengths {
		pct := float64(counts[l]) / float64(len(t.Spots)) * 100
		fmt.Fprintf(w, "    %ds:  %5.1f%%  (target: %.0f%%)\n", l, pct, targets[l]*100)
	}
}

func writeStatusDistribution(w io.Writer, t Tables) {
	section(w, "SPOT STATUS DISTRIBUTION")
	counts := make(map[traffic.SpotStatus]int)
	for _, sp := range t.Spots {
		counts[sp.Status]++
	}
	for _, st := range []traffic.SpotStatus{traffic.StatusAired, traffic.StatusScheduled, traffic.StatusPreempted, traffic.StatusMakegood} {
		pct := float64(counts[st]) / float64(len(t.Spots)) * 100
		fmt.Fprintf(w, "    %-12s %5.1f%%\n", st, pct)
	}
}

func writeConcentration(w io.Writer, t Tables, total float64) {
	section(w, "ADVERTISER CONCENTRATION")
	advByOrder := make(map[string]string, len(t.Orders))
	for _, o := range t.Orders {
		advByOrder[o.OrderID] = o.AdvertiserName
	}
	byAdv := make(map[string]float64)
	for _, sp := range t.Spots {
		byAdv[advByOrder[sp.OrderID]] += sp.Rate
	}

	ranked := sortedByValue(byAdv)
	if len(ranked) == 0 || total == 0 {
		return
	}

	var top5 float64
	for i := 0; i < 5 && i < len(ranked); i++ {
		top5 += byAdv[ranked[i]]
	}

	var hhi float64
	for _, rev := range byAdv {
		share := rev / total * 100
		hhi += share * share
	}

	fmt.Fprintf(w, "    Top advertiser:  %s\n", ranked[0])
	fmt.Fprintf(w, "      Revenue share: %.1f%%  (target: ~13%%, threshold: 15%%)\n", byAdv[ranked[0]]/total*100)
	fmt.Fprintf(w, "    Top 5 combined:  %.1f%%  (target: ~45%%)\n", top5/total*100)
	fmt.Fprintf(w, "    HHI:             %.0f\n", hhi)
	fmt.Fprintf(w, "    Total advertisers: %d\n", len(byAdv))
}

func writeSellout(w io.Writer, t Tables) {
	section(w, "SELL-OUT RATES BY DAYPART (vs Target)")
	totalAvails := make(map[string]int)
	booked := make(map[string]int)
	for _, inv := range t.Inventory {
		totalAvails[inv.Daypart] += inv.TotalAvails
		booked[inv.Daypart] += inv.Booked
	}
	for _, code := range []string{"PR", "EN", "PA", "LN", "EM", "EF", "DT", "LF"} {
		dp := daypartByCode(code)
		if totalAvails[code] == 0 {
			continue
		}
		so := float64(booked[code]) / float64(totalAvails[code]) * 100
		flag := ""
		if so >= 85 {
			flag = " !! PRICING FLAG"
		}
		fmt.Fprintf(w, "    %s (%-16s) %5.1f%%  (target: %.0f%%)%s\n", code, dp.Name, so, dp.SelloutTarget*100, flag)
	}
}

func writeDisruption(w io.Writer, t Tables, cfg Config) {
	section(w, "MAKEGOOD + PREEMPTION RATES BY STATION")
	type tally struct{ past, preempted, makegood int }
	byStation := make(map[string]*tally)
	for _, sp := range t.Spots {
		if sp.AirDate.After(cfg.TodayCutoff) {
			continue
		}
		tl := byStation[sp.Station]
		if tl == nil {
			tl = &tally{}
			byStation[sp.Station] = tl
		}
		tl.past++
		switch sp.Status {
		case traffic.StatusPreempted:
			tl.preempted++
		case traffic.StatusMakegood:
			tl.makegood++
		}
	}
	for _, s := range traffic.Stations() {
		tl := byStation[s.CallSign]
		if tl == nil || tl.past == 0 {
			continue
		}
		pPct := float64(tl.preempted) / float64(tl.past) * 100
		mPct := float64(tl.makegood) / float64(tl.past) * 100
		flag := ""
		if pPct+mPct > 5 {
			flag = " !! ABOVE 5% THRESHOLD"
		}
		fmt.Fprintf(w, "    %-10s preempted: %4.1f%%  makegood: %4.1f%%  combined: %4.1f%%%s\n",
			s.CallSign, pPct, mPct, pPct+mPct, flag)
	}
}

func writeYoY(w io.Writer, t Tables) {
	section(w, "YoY Q1 COMPARISON (Jan-Mar 2024 vs 2025)")
	var rates2024, rates2025 []float64
	for _, sp := range t.Spots {
		y, m := sp.AirDate.Year(), sp.AirDate.Month()
		if m > 3 {
			continue
		}
		switch y {
		case 2024:
			rates2024 = append(rates2024, sp.Rate)
		case 2025:
			rates2025 = append(rates2025, sp.Rate)
		}
	}

	rev2024, _ := stats.Sum(rates2024)
	rev2025, _ := stats.Sum(rates2025)
	if rev2024 > 0 {
		fmt.Fprintf(w, "    Q1 2024 revenue: $%12.2f\n", rev2024)
		fmt.Fprintf(w, "    Q1 2025 revenue: $%12.2f\n", rev2025)
		fmt.Fprintf(w, "    YoY change:      %+11.1f%%\n", (rev2025-rev2024)/rev2024*100)
	}

	aur2024, _ := stats.Mean(rates2024)
	aur2025, _ := stats.Mean(rates2025)
	if aur2024 > 0 {
		fmt.Fprintf(w, "    Q1 2024 AUR:     $%12.2f\n", aur2024)
		fmt.Fprintf(w, "    Q1 2025 AUR:     $%12.2f\n", aur2025)
		fmt.Fprintf(w, "    AUR change:      %+11.1f%%\n", (aur2025-aur2024)/aur2024*100)
	}
}

func daypartByCode(code string) traffic.Daypart {
	for _, dp := range traffic.Dayparts() {
		if dp.Code == code {
			return dp
		}
	}
	return traffic.Daypart{}
}

// sortedByValue returns keys ordered by descending value, ties broken by key
// so output is stable.
func sortedByValue(m map[string]float64) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if m[keys[i]] != m[keys[j]] {
			return m[keys[i]] > m[keys[j]]
		}
		return keys[i] < keys[j]
	})
	return keys
}

func section(w io.Writer, title string) {
	fmt.Fprintf(w, "\n  %s\n  %s\n", strings50("-"), title)
	fmt.Fprintf(w, "  %s\n", strings50("-"))
}

func strings50(s string) string { return strings.Repeat(s, 50) }
func strings70(s string) string { return strings.Repeat(s, 70) }
