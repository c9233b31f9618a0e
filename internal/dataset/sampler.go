package dataset

import (
	"math/rand"
	"sort"

	"github.com/srcmap/evalkit/internal/srcmap"
)

// Sampler selects a diverse subset of the flow catalogue for test-case
// generation. The RNG is injected so that a seeded run reproduces the exact
// same sample.
type Sampler struct {
	rng *rand.Rand
}

func NewSampler(rng *rand.Rand) *Sampler {
	return &Sampler{rng: rng}
}

// Select picks up to target flows. Cross-service flows get a reserved quota
// of max(1, target/4); the rest of the budget is split between the larger
// half of the regular flows (about two thirds) and the long tail, so the
// sample exercises popular flows, rare flows and cross-service queries alike.
func (s *Sampler) Select(flows []srcmap.Flow, target int) []srcmap.Flow {
	if target <= 0 {
		return nil
	}
	if len(flows) <= target {
		return flows
	}

	var cross, regular []srcmap.Flow
	for _, f := range flows {
		if f.IsCrossService() {
			cross = append(cross, f)
		} else {
			regular = append(regular, f)
		}
	}

	sort.SliceStable(regular, func(i, j int) bool {
		return regular[i].CardCount > regular[j].CardCount
	})

	var selected []srcmap.Flow
	if len(cross) > 0 {
		quota := min(len(cross), max(1, target/4))
		selected = append(selected, s.sample(cross, quota)...)
	}

	remaining := target - len(selected)
	topHalf := regular[:len(regular)/2]
	bottomHalf := regular[len(regular)/2:]

	topPick := min(remaining*2/3, len(topHalf))
	if topPick > 0 {
		selected = append(selected, s.sample(topHalf, topPick)...)
	}

	bottomPick := min(remaining-topPick, len(bottomHalf))
	if bottomPick > 0 {
		selected = append(selected, s.sample(bottomHalf, bottomPick)...)
	}

	if len(selected) > target {
		selected = selected[:target]
	}
	return selected
}

// sample draws n flows uniformly at random without replacement.
func (s *Sampler) sample(pool []srcmap.Flow, n int) []srcmap.Flow {
	picked := make([]srcmap.Flow, n)
	for i, j := range s.rng.Perm(len(pool))[:n] {
		picked[i] = pool[j]
	}
	return picked
}
