package traffic

import (
	"math"

	"gotraffic/internal/errors"
)

// Stations returns the five-station broadcast group in canonical order.
// Order matters: generation walks these slices sequentially so a fixed seed
// reproduces identical output.
func Stations() []Station {
	return []Station{
		{CallSign: "KHQ-TV", Market: "Spokane", DMARank: 72, Size: 0.35, PrimeLow: 400, PrimeHigh: 1200},
		{CallSign: "KULR-TV", Market: "Billings", DMARank: 170, Size: 0.22, PrimeLow: 300, PrimeHigh: 900},
		{CallSign: "KTMF-TV", Market: "Missoula", DMARank: 166, Size: 0.18, PrimeLow: 250, PrimeHigh: 800},
		{CallSign: "KNDO-TV", Market: "Yakima", DMARank: 125, Size: 0.15, PrimeLow: 200, PrimeHigh: 700},
		{CallSign: "KWYB-TV", Market: "Butte", DMARank: 190, Size: 0.10, PrimeLow: 150, PrimeHigh: 500},
	}
}

// HighPreemptStation is the designated outlier with notably worse
// preemption and makegood rates.
const HighPreemptStation = "KHQ-TV"

// Dayparts returns the eight canonical dayparts in broadcast-day order.
// Late Fringe wraps past midnight (23:35-02:00).
func Dayparts() []Daypart {
	return []Daypart{
		{Code: "EM", Name: "Early Morning", Start: 6 * 60, End: 9 * 60, RevenueShare: 0.065, AURMult: 0.30, SelloutTarget: 0.60, YoYGrowth: 0.04},
		{Code: "DT", Name: "Daytime", Start: 9 * 60, End: 16 * 60, RevenueShare: 0.09, AURMult: 0.25, SelloutTarget: 0.55, YoYGrowth: 0.03},
		{Code: "EF", Name: "Early Fringe", Start: 16 * 60, End: 17 * 60, RevenueShare: 0.04, AURMult: 0.35, SelloutTarget: 0.58, YoYGrowth: 0.04},
		{Code: "EN", Name: "Early News", Start: 17 * 60, End: 18*60 + 30, RevenueShare: 0.175, AURMult: 0.65, SelloutTarget: 0.75, YoYGrowth: 0.06},
		{Code: "PA", Name: "Prime Access", Start: 18*60 + 30, End: 20 * 60, RevenueShare: 0.135, AURMult: 0.55, SelloutTarget: 0.72, YoYGrowth: 0.06},
		{Code: "PR", Name: "Prime", Start: 20 * 60, End: 23 * 60, RevenueShare: 0.375, AURMult: 1.00, SelloutTarget: 0.84, YoYGrowth: 0.08},
		{Code: "LN", Name: "Late News", Start: 23 * 60, End: 23*60 + 35, RevenueShare: 0.09, AURMult: 0.50, SelloutTarget: 0.70, YoYGrowth: 0.05},
		{Code: "LF", Name: "Late Fringe", Start: 23*60 + 35, End: 2 * 60, RevenueShare: 0.03, AURMult: 0.15, SelloutTarget: 0.45, YoYGrowth: 0.03},
	}
}

// NewsDayparts are subject to breaking-news preemption at an elevated rate.
var NewsDayparts = map[string]bool{"EN": true, "LN": true}

// VolumeWeights derives the per-daypart spot-count weights from the revenue
// and rate targets: weight = (revenue_share / aur_mult), normalized. This is
// what makes count x rate land on the target revenue shares even though rate
// and volume differ per daypart.
func VolumeWeights(dayparts []Daypart) []float64 {
	weights := make([]float64, len(dayparts))
	var total float64
	for i, dp := range dayparts {
		weights[i] = dp.RevenueShare / dp.AURMult
		total += weights[i]
	}
	for i := range weights {
		weights[i] /= total
	}
	return weights
}

// Advertisers returns the 50-buyer population (15 national brands, 35 local
// businesses) with relative weights and derived shares.
func Advertisers() []Advertiser {
	advertisers := []Advertiser{
		{Name: "Pacific Auto Group", Type: "national", Weight: 10.0},
		{Name: "Columbia Health Systems", Type: "national", Weight: 7.0},
		{Name: "Cascade Insurance", Type: "national", Weight: 6.5},
		{Name: "Northwest Wireless", Type: "national", Weight: 6.0},
		{Name: "Evergreen Financial", Type: "national", Weight: 5.5},
		{Name: "Summit Home Improvement", Type: "national", Weight: 5.0},
		{Name: "Olympic Furniture", Type: "national", Weight: 4.5},
		{Name: "Rainier Automotive", Type: "national", Weight: 4.0},
		{Name: "Puget Sound Energy", Type: "national", Weight: 3.5},
		{Name: "Glacier Pharmaceuticals", Type: "national", Weight: 3.0},
		{Name: "Timberline Foods", Type: "national", Weight: 2.8},
		{Name: "Horizon Telecom", Type: "national", Weight: 2.5},
		{Name: "Baker Mountain Sports", Type: "national", Weight: 2.2},
		{Name: "Clearwater Legal Group", Type: "national", Weight: 2.0},
		{Name: "Alpine Dental Network", Type: "national", Weight: 1.8},
		{Name: "Mike's Plumbing & HVAC", Type: "local", Weight: 1.5},
		{Name: "Valley Ford", Type: "local", Weight: 1.5},
		{Name: "Cascade Eye Clinic", Type: "local", Weight: 1.3},
		{Name: "Spokane Spine Center", Type: "local", Weight: 1.2},
		{Name: "Heritage Roofing", Type: "local", Weight: 1.1},
		{Name: "Lakeside Chevrolet", Type: "local", Weight: 1.0},
		{Name: "Pioneer Title & Escrow", Type: "local", Weight: 1.0},
		{Name: "Mountain West Credit Union", Type: "local", Weight: 0.9},
		{Name: "Cedar Park Veterinary", Type: "local", Weight: 0.9},
		{Name: "Inland Empire Paving", Type: "local", Weight: 0.8},
		{Name: "Riverfront Dental", Type: "local", Weight: 0.8},
		{Name: "Northwest Garage Doors", Type: "local", Weight: 0.7},
		{Name: "Cascade Heating & Air", Type: "local", Weight: 0.7},
		{Name: "Valley Medical Center", Type: "local", Weight: 0.6},
		{Name: "Hilltop Family Law", Type: "local", Weight: 0.6},
		{Name: "Grandview Tire & Auto", Type: "local", Weight: 0.5},
		{Name: "Sunset Realty Group", Type: "local", Weight: 0.5},
		{Name: "Columbia Basin Ag Supply", Type: "local", Weight: 0.5},
		{Name: "Maple Street Jewelers", Type: "local", Weight: 0.4},
		{Name: "Yakima Valley Winery", Type: "local", Weight: 0.4},
		{Name: "Sunnyside RV & Marine", Type: "local", Weight: 0.4},
		{Name: "Peak Performance Fitness", Type: "local", Weight: 0.3},
		{Name: "Wenatchee Appliance", Type: "local", Weight: 0.3},
		{Name: "Tri-Cities Honda", Type: "local", Weight: 0.3},
		{Name: "Blue Sky Landscaping", Type: "local", Weight: 0.3},
		{Name: "River Park Square Mall", Type: "local", Weight: 0.3},
		{Name: "Palouse Country Realty", Type: "local", Weight: 0.2},
		{Name: "Desert Sun Tanning", Type: "local", Weight: 0.2},
		{Name: "Walla Walla Steakhouse", Type: "local", Weight: 0.2},
		{Name: "Cascade Bail Bonds", Type: "local", Weight: 0.2},
		{Name: "Kennewick Mattress Outlet", Type: "local", Weight: 0.2},
		{Name: "Coeur d'Alene Resort", Type: "local", Weight: 0.2},
		{Name: "Ellensburg Feed & Seed", Type: "local", Weight: 0.15},
		{Name: "Moses Lake Storage", Type: "local", Weight: 0.15},
		{Name: "Pullman Pizza Palace", Type: "local", Weight: 0.10},
	}

	var total float64
	for _, a := range advertisers {
		total += a.Weight
	}
	for i := range advertisers {
		advertisers[i].Share = advertisers[i].Weight / total
	}
	return advertisers
}

// Agencies returns the media agency pool. An advertiser buys through at most
// one agency or direct.
func Agencies() []string {
	return []string{
		"Copacino Fujikado",
		"PB& Seattle",
		"DNA Agency",
		"Spokane Media Group",
		"Inland Media Buyers",
		"Cascade Media Partners",
		"Northwest Ad Works",
		"Pacific Rim Media",
	}
}

// Programs returns the per-daypart program name pools.
func Programs() map[string][]string {
	return map[string][]string{
		"EM": {"Morning Report", "NW Morning News", "Sunrise Edition", "AM Northwest"},
		"DT": {"NW Living", "The Talk", "Let's Make a Deal", "The Price Is Right", "The Young and the Restless", "Local Hour"},
		"EF": {"Inside Edition", "Judge Judy", "Hot Bench", "People's Court"},
		"EN": {"Evening News at 5", "Evening News at 5:30", "Evening News at 6"},
		"PA": {"Wheel of Fortune", "Jeopardy!", "Entertainment Tonight", "Access Hollywood"},
		"PR": {"Survivor", "Chicago Fire", "Law & Order", "FBI", "NCIS", "The Voice", "60 Minutes", "Sunday Night Football"},
		"LN": {"Late News at 11", "News Tonight"},
		"LF": {"The Tonight Show", "Late Show", "Nightline", "Jimmy Kimmel Live"},
	}
}

// Spot length configuration: a 30 is the unit spot, a 15 is cheaper, a 60
// roughly doubles the unit rate.
var (
	SpotLengths        = []int{30, 15, 60}
	SpotLengthWeights  = []float64{0.70, 0.20, 0.10}
	SpotLengthRateMult = map[int]float64{15: 0.60, 30: 1.00, 60: 1.80}
)

// Validate checks the static tables before any generation happens.
// Failures here are fatal configuration errors.
func Validate(stations []Station, dayparts []Daypart, advertisers []Advertiser) error {
	if len(stations) == 0 {
		return errors.ConfigInvalid("no stations configured")
	}
	for _, s := range stations {
		if s.Size <= 0 {
			return errors.ConfigInvalid("station " + s.CallSign + " has non-positive size weight")
		}
		if s.PrimeHigh <= s.PrimeLow {
			return errors.ConfigInvalid("station " + s.CallSign + " has degenerate prime AUR range")
		}
	}

	var shareSum float64
	for _, dp := range dayparts {
		if dp.AURMult <= 0 {
			return errors.ConfigInvalid("daypart " + dp.Code + " has non-positive AUR multiplier")
		}
		if dp.SelloutTarget <= 0 || dp.SelloutTarget > 1 {
			return errors.ConfigInvalid("daypart " + dp.Code + " sell-out target must be in (0, 1]")
		}
		shareSum += dp.RevenueShare
	}
	if math.Abs(shareSum-1.0) > 1e-6 {
		return errors.ConfigInvalid("daypart revenue shares must sum to 1.0")
	}

	for _, a := range advertisers {
		if a.Weight <= 0 {
			return errors.ConfigInvalid("advertiser " + a.Name + " has non-positive weight")
		}
	}
	return nil
}
