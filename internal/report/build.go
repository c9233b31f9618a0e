// Package report turns a run's raw outcomes into the console summary,
// the JSON artifact, and the append-only history file. All rounding
// happens here so the scoring and runner packages stay exact.
package report

import (
	"math"
	"time"

	"github.com/srcmap/evalkit/internal/runner"
	"github.com/srcmap/evalkit/pkg/utils"
)

const (
	scoreDecimals      = 3
	maxSnapshotSources = 5
)

// Build assembles the report for one finished run. judgeName is empty
// when no judge backend was available.
func Build(result *runner.Result, server, judgeName string) *RunReport {
	r := &RunReport{
		Timestamp: result.StartedAt.UTC().Format(time.RFC3339),
		Server:    server,
		Judge:     judgeName,
	}

	for i := range result.Outcomes {
		r.Cases = append(r.Cases, buildCase(&result.Outcomes[i]))
	}
	r.Aggregate = aggregate(result)

	return r
}

func buildCase(o *runner.CaseOutcome) CaseReport {
	cr := CaseReport{
		ID:           o.Case.ID,
		Query:        o.Case.Query,
		Ticket:       o.Case.Ticket,
		FlowHitRate:  utils.RoundDecimal(o.Deterministic.FlowHitRate, scoreDecimals),
		FileHitRate:  utils.RoundDecimal(o.Deterministic.FileHitRate, scoreDecimals),
		PrecisionAtK: utils.RoundDecimal(o.Deterministic.PrecisionAtK, scoreDecimals),
		FoundFlows:   o.Deterministic.FoundFlows,
		MissingFlows: o.Deterministic.MissingFlows,
		ResultCount:  o.Deterministic.ResultCount,
		CacheHit:     o.CacheHit,
		LatencyMS:    o.Latency.Milliseconds(),
	}

	if o.Judge != nil {
		cr.ContextPrecision = roundPtr(o.Judge.ContextPrecision)
		cr.ContextRecall = roundPtr(o.Judge.ContextRecall)
	}

	for _, c := range o.Cards {
		snap := ResultSnapshot{
			Title:       c.Title,
			Flow:        c.Flow,
			CardType:    c.CardType,
			Score:       c.Score,
			SourceFiles: c.SourceFiles,
		}
		if len(snap.SourceFiles) > maxSnapshotSources {
			snap.SourceFiles = snap.SourceFiles[:maxSnapshotSources]
		}
		cr.Results = append(cr.Results, snap)
	}

	return cr
}

func aggregate(result *runner.Result) AggregateScores {
	n := len(result.Outcomes)
	if n == 0 {
		return AggregateScores{}
	}

	var flowSum, fileSum, precSum float64
	var latencySum int64
	var cpVals, crVals []float64
	judged := 0

	for i := range result.Outcomes {
		o := &result.Outcomes[i]
		flowSum += o.Deterministic.FlowHitRate
		fileSum += o.Deterministic.FileHitRate
		precSum += o.Deterministic.PrecisionAtK
		latencySum += o.Latency.Milliseconds()

		if o.Judge == nil {
			continue
		}
		judged++
		if o.Judge.ContextPrecision != nil {
			cpVals = append(cpVals, *o.Judge.ContextPrecision)
		}
		if o.Judge.ContextRecall != nil {
			crVals = append(crVals, *o.Judge.ContextRecall)
		}
	}

	agg := AggregateScores{
		FlowHitRate:  utils.RoundDecimal(flowSum/float64(n), scoreDecimals),
		FileHitRate:  utils.RoundDecimal(fileSum/float64(n), scoreDecimals),
		PrecisionAtK: utils.RoundDecimal(precSum/float64(n), scoreDecimals),
		AvgLatencyMS: int64(math.Round(float64(latencySum) / float64(n))),
		JudgedCases:  judged,
	}

	if len(cpVals) > 0 {
		v := utils.RoundDecimal(utils.Mean(cpVals), scoreDecimals)
		agg.ContextPrecision = &v
	}
	if len(crVals) > 0 {
		v := utils.RoundDecimal(utils.Mean(crVals), scoreDecimals)
		agg.ContextRecall = &v
	}

	return agg
}

func roundPtr(v *float64) *float64 {
	if v == nil {
		return nil
	}
	r := utils.RoundDecimal(*v, scoreDecimals)
	return &r
}
