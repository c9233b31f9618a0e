// Package scoring computes deterministic retrieval-quality metrics for one
// query's result batch. Everything here is pure: the same inputs always
// produce identical outputs, which keeps regression comparisons across runs
// meaningful.
package scoring

import (
	"sort"
	"strings"

	"github.com/srcmap/evalkit/internal/srcmap"
)

// Metrics holds the deterministic scores for one test case.
//
// All rates are in [0,1]. An empty expected set trivially satisfies its
// requirement and scores 1.0; an empty result batch scores precision 0.0
// because nothing useful was returned.
type Metrics struct {
	FlowHitRate  float64  `json:"flow_hit_rate"`
	FileHitRate  float64  `json:"file_hit_rate"`
	PrecisionAtK float64  `json:"precision_at_k"`
	FoundFlows   []string `json:"found_flows"`
	MissingFlows []string `json:"missing_flows"`
	ResultCount  int      `json:"result_count"`
}

// Score compares one result batch against the expected flows and expected
// file-path fragments of a test case. Flow labels are matched exactly after
// lower-casing; file fragments are matched as substrings of the combined
// lower-cased source-file paths of all returned cards.
func Score(expectedFlows, expectedFileFragments []string, results []srcmap.Card) Metrics {
	expected := make(map[string]struct{}, len(expectedFlows))
	for _, f := range expectedFlows {
		expected[strings.ToLower(f)] = struct{}{}
	}

	observed := make(map[string]struct{}, len(results))
	var allFiles []string
	for _, r := range results {
		observed[strings.ToLower(r.Flow)] = struct{}{}
		for _, sf := range r.SourceFiles {
			allFiles = append(allFiles, strings.ToLower(sf))
		}
	}

	found := make([]string, 0, len(expected))
	var missing []string
	for f := range expected {
		if _, ok := observed[f]; ok {
			found = append(found, f)
		} else {
			missing = append(missing, f)
		}
	}
	sort.Strings(found)
	sort.Strings(missing)

	flowHitRate := 1.0
	if len(expected) > 0 {
		flowHitRate = float64(len(found)) / float64(len(expected))
	}

	combined := strings.Join(allFiles, " ")
	fileHitRate := 1.0
	if len(expectedFileFragments) > 0 {
		var foundFrags int
		for _, frag := range expectedFileFragments {
			if strings.Contains(combined, strings.ToLower(frag)) {
				foundFrags++
			}
		}
		fileHitRate = float64(foundFrags) / float64(len(expectedFileFragments))
	}

	k := len(results)
	precision := 0.0
	if k > 0 {
		var relevant int
		for _, r := range results {
			if _, ok := expected[strings.ToLower(r.Flow)]; ok {
				relevant++
			}
		}
		precision = float64(relevant) / float64(k)
	}

	return Metrics{
		FlowHitRate:  flowHitRate,
		FileHitRate:  fileHitRate,
		PrecisionAtK: precision,
		FoundFlows:   found,
		MissingFlows: missing,
		ResultCount:  k,
	}
}
