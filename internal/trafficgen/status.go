package trafficgen

import (
	"math/rand"
	"time"

	"gotraffic/domain/traffic"
)

// resolveStatus decides how a placement resolved. Anything after the cutoff
// is still on the books as scheduled; past spots resolve from a single
// uniform draw with preemption checked before makegood. News dayparts carry
// a higher preemption chance (breaking-news displacement) and the designated
// high-preemption station is worse across the board.
func resolveStatus(airDate time.Time, daypart, station string, cutoff time.Time, rng *rand.Rand) traffic.SpotStatus {
	if airDate.After(cutoff) {
		return traffic.StatusScheduled
	}

	preemptChance := 0.020
	makegoodChance := 0.015
	if traffic.NewsDayparts[daypart] {
		preemptChance = 0.035
	}
	if station == traffic.HighPreemptStation {
		preemptChance *= 1.8
		makegoodChance *= 1.5
	}

	roll := rng.Float64()
	switch {
	case roll < preemptChance:
		return traffic.StatusPreempted
	case roll < preemptChance+makegoodChance:
		return traffic.StatusMakegood
	default:
		return traffic.StatusAired
	}
}
