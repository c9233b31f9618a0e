package bench

import "sort"

// percentileFloor returns the value at index floor(n*p) of the ascending
// sort, with no interpolation. This matches how the persisted benchmark
// percentiles have always been computed, so historical files stay
// comparable.
func percentileFloor(sorted []int64, p float64) int64 {
	n := len(sorted)
	if n == 0 {
		return 0
	}

	idx := int(float64(n) * p)
	if idx >= n {
		idx = n - 1
	}
	return sorted[idx]
}

func sortedLatencies(cases []CaseMeasurement) []int64 {
	latencies := make([]int64, len(cases))
	for i, c := range cases {
		latencies[i] = c.LatencyMS
	}
	sort.Slice(latencies, func(i, j int) bool { return latencies[i] < latencies[j] })
	return latencies
}
