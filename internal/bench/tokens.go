package bench

import "github.com/srcmap/evalkit/internal/srcmap"

const (
	// naiveTokensPerFile is the assumed cost of reading one whole source
	// file when no retrieval tool is available.
	naiveTokensPerFile = 500
	// charsPerToken is the rough character-to-token ratio used to cost the
	// returned card content.
	charsPerToken = 4
)

// EstimateNaiveTokens estimates how many tokens a reader would consume
// without srcmap: every distinct source file touched by the results, read
// in full.
func EstimateNaiveTokens(cards []srcmap.Card) int {
	files := make(map[string]struct{})
	for _, c := range cards {
		for _, sf := range c.SourceFiles {
			files[sf] = struct{}{}
		}
	}
	return len(files) * naiveTokensPerFile
}

// EstimateToolTokens estimates the token cost of the returned card content,
// floored at 1 so reduction ratios stay well-defined.
func EstimateToolTokens(cards []srcmap.Card) int {
	var total int
	for _, c := range cards {
		total += len(c.Content) / charsPerToken
	}
	return max(total, 1)
}
