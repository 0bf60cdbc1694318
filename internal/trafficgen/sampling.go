package trafficgen

import "math/rand"

// weightedPick draws one index with probability proportional to weights[i].
// Weights need not be normalized. A degenerate all-zero weight slice falls
// back to the last index so callers never receive -1.
func weightedPick(rng *rand.Rand, weights []float64) int {
	var total float64
	for _, w := range weights {
		total += w
	}
	r := rng.Float64() * total
	var cum float64
	for i, w := range weights {
		cum += w
		if r < cum {
			return i
		}
	}
	return len(weights) - 1
}

// weightedSample draws k distinct indices without replacement, each draw
// proportional to the remaining weights. Shared by advertiser-station
// assignment and inventory remainder distribution.
func weightedSample(rng *rand.Rand, weights []float64, k int) []int {
	n := len(weights)
	if k > n {
		k = n
	}
	remaining := make([]float64, n)
	copy(remaining, weights)

	picked := make([]int, 0, k)
	taken := make([]bool, n)
	for len(picked) < k {
		var total float64
		for _, w := range remaining {
			total += w
		}
		if total <= 0 {
			// Out of positive weight; take the rest in index order.
			for i := 0; i < n && len(picked) < k; i++ {
				if !taken[i] {
					picked = append(picked, i)
					taken[i] = true
				}
			}
			break
		}
		idx := weightedPick(rng, remaining)
		picked = append(picked, idx)
		taken[idx] = true
		remaining[idx] = 0
	}
	return picked
}

// uniformSample draws k distinct indices from [0, n) with equal probability.
func uniformSample(rng *rand.Rand, n, k int) []int {
	if k > n {
		k = n
	}
	perm := rng.Perm(n)
	return perm[:k]
}
