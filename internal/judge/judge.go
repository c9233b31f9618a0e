// Package judge provides optional LLM-graded retrieval metrics. Backends are
// tried once per run in a fixed priority order; when none is usable the run
// proceeds with semantic metrics absent.
package judge

import (
	"context"

	"github.com/srcmap/evalkit/internal/dataset"
	"github.com/srcmap/evalkit/internal/srcmap"
)

// Scores holds the semantic metrics for one case. A nil field means the
// metric could not be produced for that case; absent scores are excluded
// from aggregation rather than counted as zero.
type Scores struct {
	ContextPrecision *float64 `json:"context_precision"`
	ContextRecall    *float64 `json:"context_recall"`
}

func (s Scores) Empty() bool {
	return s.ContextPrecision == nil && s.ContextRecall == nil
}

// Judge grades one test case's retrieved cards.
type Judge interface {
	Name() string
	ScoreCase(ctx context.Context, tc dataset.TestCase, cards []srcmap.Card) (Scores, error)
}
