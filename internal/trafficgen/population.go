package trafficgen

import (
	"math"
	"math/rand"

	"gotraffic/domain/traffic"
)

// Buyer is one advertiser with its agency affiliation and the station set it
// is allowed to buy on. Every buyer has at least one station by construction.
type Buyer struct {
	traffic.Advertiser
	Agency   string // empty means direct
	Stations []traffic.Station
}

// Revenue-share tiers: the same five tiers drive order counts and
// spots-per-week rates, with independent ranges per use.
func tierOf(share float64) int {
	switch {
	case share >= 0.06:
		return 0
	case share >= 0.03:
		return 1
	case share >= 0.015:
		return 2
	case share >= 0.008:
		return 3
	default:
		return 4
	}
}

// Half-open ranges, tier 0 first.
var (
	orderCountRanges   = [5][2]int{{26, 40}, {14, 24}, {8, 16}, {4, 10}, {2, 5}}
	spotsPerWeekRanges = [5][2]int{{6, 14}, {5, 11}, {3, 8}, {2, 6}, {1, 4}}
)

func intInRange(rng *rand.Rand, r [2]int) int {
	return r[0] + rng.Intn(r[1]-r[0])
}

// Station pick weights for local buyers, indexed like the station list.
// Tempered away from the largest market so small advertisers do not all
// land on the flagship.
var localStationWeights = []float64{0.10, 0.25, 0.25, 0.20, 0.20}

// buildPopulation assigns each advertiser an agency and a station set.
// National buyers always go through an agency and buy 3-5 stations
// uniformly; local buyers use an agency about 55% of the time and buy 1-2
// stations weighted toward the mid-size markets.
func buildPopulation(advertisers []traffic.Advertiser, stations []traffic.Station, agencies []string, rng *rand.Rand) []Buyer {
	buyers := make([]Buyer, 0, len(advertisers))
	for _, adv := range advertisers {
		var agency string
		if adv.Type == "national" || rng.Float64() < 0.55 {
			agency = agencies[rng.Intn(len(agencies))]
		}

		var picked []int
		if adv.Type == "national" {
			n := 3 + rng.Intn(3)
			picked = uniformSample(rng, len(stations), n)
		} else {
			n := 1 + rng.Intn(2)
			picked = weightedSample(rng, localStationWeights, n)
		}

		allowed := make([]traffic.Station, len(picked))
		for i, idx := range picked {
			allowed[i] = stations[idx]
		}

		buyers = append(buyers, Buyer{Advertiser: adv, Agency: agency, Stations: allowed})
	}
	return buyers
}

// pickStation chooses one station from the buyer's allowed set, weighted by
// the square root of market size to temper concentration on the flagship.
func pickStation(buyer Buyer, rng *rand.Rand) traffic.Station {
	weights := make([]float64, len(buyer.Stations))
	for i, s := range buyer.Stations {
		weights[i] = math.Sqrt(s.Size)
	}
	return buyer.Stations[weightedPick(rng, weights)]
}
