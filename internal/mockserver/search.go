package mockserver

import (
	"sort"
	"strings"

	"github.com/srcmap/evalkit/internal/srcmap"
)

// scoreCards ranks corpus cards against a query with plain term matching.
// The ranking only needs to be deterministic and vaguely sensible; the
// evaluator under test supplies the semantics.
func (c *Corpus) scoreCards(query string, limit int) []scoredCard {
	terms := strings.Fields(strings.ToLower(query))
	if len(terms) == 0 {
		return nil
	}

	var scored []scoredCard
	for _, card := range c.AllCards() {
		haystack := strings.ToLower(card.Title + " " + card.Content + " " + card.Flow)
		hits := 0
		for _, t := range terms {
			if strings.Contains(haystack, t) {
				hits++
			}
		}
		if hits == 0 {
			continue
		}
		sc := scoredCard{card: card, score: float64(hits) / float64(len(terms))}
		sc.card.Score = sc.score
		scored = append(scored, sc)
	}

	sort.SliceStable(scored, func(i, j int) bool {
		if scored[i].score != scored[j].score {
			return scored[i].score > scored[j].score
		}
		return scored[i].card.Title < scored[j].card.Title
	})

	if limit > 0 && len(scored) > limit {
		scored = scored[:limit]
	}
	return scored
}

type scoredCard struct {
	card  srcmap.Card
	score float64
}
