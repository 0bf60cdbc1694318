package traffic

import "time"

// SpotStatus is the lifecycle state of a placement in the traffic log.
type SpotStatus string

const (
	StatusScheduled SpotStatus = "scheduled"
	StatusAired     SpotStatus = "aired"
	StatusPreempted SpotStatus = "preempted"
	StatusMakegood  SpotStatus = "makegood"
)

// Station is one call sign in the broadcast group. Immutable configuration.
type Station struct {
	CallSign  string
	Market    string
	DMARank   int
	Size      float64 // relative market-size weight
	PrimeLow  float64 // prime AUR range, low end
	PrimeHigh float64
}

// Daypart is a named block of the broadcast day with its pricing and
// distribution targets. Windows may wrap past midnight (Late Fringe).
type Daypart struct {
	Code          string
	Name          string
	Start         int // minutes after midnight
	End           int // minutes after midnight, <= Start means wrap
	RevenueShare  float64 // target share of total revenue
	AURMult       float64 // base rate multiplier relative to prime
	SelloutTarget float64 // target booked / avails
	YoYGrowth     float64 // target year-over-year growth
}

// Advertiser is one buyer in the weighted population.
type Advertiser struct {
	Name   string
	Type   string // "national" | "local"
	Weight float64
	Share  float64 // Weight / sum of all weights, derived per run
}

// Order is a contract: one advertiser buying one station for a flight window.
// OrderTotal starts at zero and is backfilled once from the order's spots.
type Order struct {
	OrderID        string
	AdvertiserName string
	AgencyName     string // empty means direct
	OrderDate      time.Time
	StartDate      time.Time
	EndDate        time.Time
	OrderTotal     float64
	Station        string
}

// Spot is a single placement belonging to an order. Immutable once generated.
type Spot struct {
	SpotID  string
	OrderID string
	AirDate time.Time
	AirTime string // HH:MM:SS
	Daypart string
	Program string
	Length  int // seconds
	Rate    float64
	Status  SpotStatus
	Station string
}

// InventorySlot is one row per station x daypart x calendar date.
// Remaining is always TotalAvails - Booked by construction.
type InventorySlot struct {
	Date        time.Time
	Daypart     string
	Station     string
	TotalAvails int
	Booked      int
	Remaining   int
}
