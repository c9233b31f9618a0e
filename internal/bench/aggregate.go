package bench

import (
	"math"

	"github.com/srcmap/evalkit/pkg/utils"
)

// ProjectStats aggregates all benchmarked cases of one project.
type ProjectStats struct {
	QueriesTested     int     `json:"queries_tested"`
	AvgToolTokens     int     `json:"avg_tokens_with_srcmap"`
	AvgNaiveTokens    int     `json:"avg_tokens_without"`
	TokenReductionPct float64 `json:"token_reduction_pct"`
	AvgLatencyMS      int64   `json:"avg_latency_ms"`
	P50LatencyMS      int64   `json:"p50_latency_ms"`
	P95LatencyMS      int64   `json:"p95_latency_ms"`
	P99LatencyMS      int64   `json:"p99_latency_ms"`
	CacheHitRate      float64 `json:"cache_hit_rate"`
	FlowHitRate       float64 `json:"flow_hit_rate"`
	FileHitRate       float64 `json:"file_hit_rate"`
	PrecisionAtK      float64 `json:"precision_at_k"`
}

// ComputeProjectStats reduces per-case measurements to one ProjectStats.
// The token reduction is computed from the two mean token costs and reported
// as a percentage; a zero naive mean yields 0 rather than a division fault.
func ComputeProjectStats(cases []CaseMeasurement) ProjectStats {
	n := len(cases)
	if n == 0 {
		return ProjectStats{}
	}

	var toolSum, naiveSum, latencySum int64
	var cacheHits int
	var flowSum, fileSum, precSum float64
	for _, c := range cases {
		toolSum += int64(c.ToolTokens)
		naiveSum += int64(c.NaiveTokens)
		latencySum += c.LatencyMS
		if c.CacheHit {
			cacheHits++
		}
		flowSum += c.FlowHitRate
		fileSum += c.FileHitRate
		precSum += c.PrecisionAtK
	}

	avgTool := int(math.Round(float64(toolSum) / float64(n)))
	avgNaive := int(math.Round(float64(naiveSum) / float64(n)))

	var reduction float64
	if avgNaive > 0 {
		reduction = utils.RoundDecimal((1-float64(avgTool)/float64(avgNaive))*100, 1)
	}

	sorted := sortedLatencies(cases)

	return ProjectStats{
		QueriesTested:     n,
		AvgToolTokens:     avgTool,
		AvgNaiveTokens:    avgNaive,
		TokenReductionPct: reduction,
		AvgLatencyMS:      int64(math.Round(float64(latencySum) / float64(n))),
		P50LatencyMS:      percentileFloor(sorted, 0.50),
		P95LatencyMS:      percentileFloor(sorted, 0.95),
		P99LatencyMS:      percentileFloor(sorted, 0.99),
		CacheHitRate:      utils.RoundDecimal(float64(cacheHits)/float64(n), 3),
		FlowHitRate:       utils.RoundDecimal(flowSum/float64(n), 3),
		FileHitRate:       utils.RoundDecimal(fileSum/float64(n), 3),
		PrecisionAtK:      utils.RoundDecimal(precSum/float64(n), 3),
	}
}

// ProjectEntry is one project's record in the benchmark file.
type ProjectEntry struct {
	Name      string            `json:"name"`
	Repo      string            `json:"repo"`
	Language  string            `json:"language"`
	Framework string            `json:"framework"`
	Stats     ProjectStats      `json:"stats"`
	Cases     []CaseMeasurement `json:"cases"`
}

// GlobalAggregate is the unweighted mean of per-project statistics, so a
// project with few cases counts as much as a large one.
type GlobalAggregate struct {
	TotalProjects        int     `json:"total_projects"`
	TotalQueries         int     `json:"total_queries"`
	AvgTokenReductionPct float64 `json:"avg_token_reduction_pct"`
	AvgLatencyMS         int64   `json:"avg_latency_ms"`
	AvgFlowHitRate       float64 `json:"avg_flow_hit_rate"`
	AvgCacheHitRate      float64 `json:"avg_cache_hit_rate"`
}

// Merge upserts a project entry: any existing entry with the same name is
// replaced, never duplicated.
func Merge(projects []ProjectEntry, entry ProjectEntry) []ProjectEntry {
	merged := make([]ProjectEntry, 0, len(projects)+1)
	for _, p := range projects {
		if p.Name != entry.Name {
			merged = append(merged, p)
		}
	}
	return append(merged, entry)
}

// ComputeGlobalAggregate averages the per-project scalar statistics.
func ComputeGlobalAggregate(projects []ProjectEntry) GlobalAggregate {
	agg := GlobalAggregate{TotalProjects: len(projects)}
	if len(projects) == 0 {
		return agg
	}

	var reductionSum, flowSum, cacheSum float64
	var latencySum int64
	for _, p := range projects {
		agg.TotalQueries += p.Stats.QueriesTested
		reductionSum += p.Stats.TokenReductionPct
		latencySum += p.Stats.AvgLatencyMS
		flowSum += p.Stats.FlowHitRate
		cacheSum += p.Stats.CacheHitRate
	}

	n := float64(len(projects))
	agg.AvgTokenReductionPct = utils.RoundDecimal(reductionSum/n, 1)
	agg.AvgLatencyMS = int64(math.Round(float64(latencySum) / n))
	agg.AvgFlowHitRate = utils.RoundDecimal(flowSum/n, 3)
	agg.AvgCacheHitRate = utils.RoundDecimal(cacheSum/n, 3)
	return agg
}
