package trafficgen

import (
	"math/rand"
	"testing"
)

func TestWeightedPick_InBounds(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	weights := []float64{0.1, 0.5, 0.4}
	for i := 0; i < 1000; i++ {
		idx := weightedPick(rng, weights)
		if idx < 0 || idx >= len(weights) {
			t.Fatalf("pick %d out of bounds", idx)
		}
	}
}

func TestWeightedPick_RespectsWeights(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	weights := []float64{0.05, 0.90, 0.05}

	counts := make([]int, 3)
	const draws = 20000
	for i := 0; i < draws; i++ {
		counts[weightedPick(rng, weights)]++
	}

	mid := float64(counts[1]) / draws
	if mid < 0.87 || mid > 0.93 {
		t.Errorf("heavy index drawn %.3f of the time, want ~0.90", mid)
	}
}

func TestWeightedPick_ZeroWeightsFallBack(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	if idx := weightedPick(rng, []float64{0, 0, 0}); idx != 2 {
		t.Errorf("all-zero weights returned %d, want last index", idx)
	}
}

func TestWeightedSample_Distinct(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	weights := []float64{1, 2, 3, 4, 5}

	for trial := 0; trial < 200; trial++ {
		picked := weightedSample(rng, weights, 3)
		if len(picked) != 3 {
			t.Fatalf("got %d picks, want 3", len(picked))
		}
		seen := make(map[int]bool)
		for _, idx := range picked {
			if seen[idx] {
				t.Fatalf("duplicate index %d in sample %v", idx, picked)
			}
			seen[idx] = true
		}
	}
}

func TestWeightedSample_KExceedsN(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	picked := weightedSample(rng, []float64{1, 1}, 5)
	if len(picked) != 2 {
		t.Fatalf("got %d picks, want all 2", len(picked))
	}
}

func TestWeightedSample_ExhaustedWeights(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	// Only one positive weight but three picks requested; must not loop.
	picked := weightedSample(rng, []float64{0, 1, 0}, 3)
	if len(picked) != 3 {
		t.Fatalf("got %d picks, want 3", len(picked))
	}
}

func TestUniformSample_Distinct(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	picked := uniformSample(rng, 10, 4)
	if len(picked) != 4 {
		t.Fatalf("got %d picks, want 4", len(picked))
	}
	seen := make(map[int]bool)
	for _, idx := range picked {
		if idx < 0 || idx >= 10 || seen[idx] {
			t.Fatalf("bad sample %v", picked)
		}
		seen[idx] = true
	}
}
