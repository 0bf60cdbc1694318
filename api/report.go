package api

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"

	"gotraffic/internal/analysis"
)

// handleReport renders the current-year revenue picture as an HTML page.
// Append ?format=md for the raw markdown.
func (a *App) handleReport(w http.ResponseWriter, r *http.Request) {
	spots, err := a.loader.Spots()
	if err != nil {
		a.writeError(w, http.StatusServiceUnavailable, err)
		return
	}
	orders, err := a.loader.Orders()
	if err != nil {
		a.writeError(w, http.StatusServiceUnavailable, err)
		return
	}
	inventory, err := a.loader.Inventory()
	if err != nil {
		a.writeError(w, http.StatusServiceUnavailable, err)
		return
	}

	md := buildReport(
		analysis.RevenueByDaypart(spots, ""),
		analysis.TopAdvertisers(spots, orders, "", 10),
		analysis.SelloutRates(inventory, ""),
		analysis.MakegoodSummary(spots, ""),
	)

	if r.URL.Query().Get("format") == "md" {
		w.Header().Set("Content-Type", "text/markdown; charset=utf-8")
		w.Write([]byte(md))
		return
	}

	p := parser.NewWithExtensions(parser.CommonExtensions | parser.Tables)
	renderer := html.NewRenderer(html.RendererOptions{Flags: html.CommonFlags | html.CompletePage})
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(markdown.ToHTML([]byte(md), p, renderer))
}

func buildReport(
	revenue analysis.RevenueByDaypartResult,
	advertisers analysis.TopAdvertisersResult,
	sellout []analysis.DaypartSellout,
	disruption analysis.MakegoodSummaryResult,
) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Revenue Report\n\n")
	fmt.Fprintf(&b, "Total revenue %d: $%.2f (%+.1f%% vs %d)\n\n",
		analysis.CYYear, revenue.TotalCY, revenue.TotalYoYPct, analysis.PYYear)

	fmt.Fprintf(&b, "## Revenue by Daypart\n\n")
	fmt.Fprintf(&b, "| Daypart | %d | %d | YoY | Share |\n", analysis.CYYear, analysis.PYYear)
	fmt.Fprintf(&b, "|---|---|---|---|---|\n")
	for _, dp := range revenue.Dayparts {
		fmt.Fprintf(&b, "| %s (%s) | $%.2f | $%.2f | %+.1f%% | %.1f%% |\n",
			dp.DaypartName, dp.Daypart, dp.CYRevenue, dp.PYRevenue, dp.YoYPct, dp.SharePct)
	}

	fmt.Fprintf(&b, "\n## Top Advertisers\n\n")
	fmt.Fprintf(&b, "| Advertiser | Revenue | Share |\n|---|---|---|\n")
	for _, adv := range advertisers.Advertisers {
		flag := ""
		if adv.ConcentrationFlag {
			flag = " ⚠"
		}
		fmt.Fprintf(&b, "| %s | $%.2f | %.1f%%%s |\n", adv.Name, adv.Revenue, adv.SharePct, flag)
	}
	fmt.Fprintf(&b, "\nHHI: %.0f, top-5 share: %.1f%%\n", advertisers.HHI, advertisers.Top5Share)

	fmt.Fprintf(&b, "\n## Sell-out Rates\n\n")
	fmt.Fprintf(&b, "| Daypart | %d | %d | |\n|---|---|---|---|\n", analysis.CYYear, analysis.PYYear)
	for _, dp := range sellout {
		flag := ""
		if dp.PricingFlag {
			flag = "pricing opportunity"
		}
		fmt.Fprintf(&b, "| %s | %.1f%% | %.1f%% | %s |\n", dp.DaypartName, dp.CYRate, dp.PYRate, flag)
	}

	fmt.Fprintf(&b, "\n## Preemption and Makegood Exposure\n\n")
	fmt.Fprintf(&b, "| Station | Preempted | Makegood | Combined | Revenue Impact |\n|---|---|---|---|---|\n")
	for _, st := range disruption.Stations {
		fmt.Fprintf(&b, "| %s | %d | %d | %.1f%% | $%.2f |\n",
			st.Station, st.Preempted, st.Makegood, st.CombinedRate, st.RevenueImpact)
	}

	return b.String()
}
