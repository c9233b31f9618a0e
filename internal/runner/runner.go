// Package runner drives one evaluation run: it issues the dataset's queries
// against a srcmap instance strictly sequentially, scores each result batch,
// and collects per-case outcomes for reporting and benchmarking. It is the
// only component with side effects; scoring stays pure.
package runner

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/srcmap/evalkit/internal/bench"
	"github.com/srcmap/evalkit/internal/dataset"
	"github.com/srcmap/evalkit/internal/judge"
	"github.com/srcmap/evalkit/internal/scoring"
	"github.com/srcmap/evalkit/internal/srcmap"
)

const (
	DefaultLimit        = 10
	DefaultDelay        = 100 * time.Millisecond
	DefaultJudgeTimeout = 60 * time.Second
)

type Config struct {
	Limit        int
	Delay        time.Duration
	JudgeTimeout time.Duration
	Verbose      bool
}

func DefaultConfig() Config {
	return Config{
		Limit:        DefaultLimit,
		Delay:        DefaultDelay,
		JudgeTimeout: DefaultJudgeTimeout,
	}
}

type Runner struct {
	client *srcmap.Client
	judge  judge.Judge
	config Config
}

// New creates a runner. The judge may be nil, in which case semantic
// metrics are absent for the whole run.
func New(client *srcmap.Client, j judge.Judge, cfg Config) *Runner {
	if cfg.Limit <= 0 {
		cfg.Limit = DefaultLimit
	}
	if cfg.JudgeTimeout <= 0 {
		cfg.JudgeTimeout = DefaultJudgeTimeout
	}
	return &Runner{client: client, judge: j, config: cfg}
}

// CaseOutcome is everything measured for one test case.
type CaseOutcome struct {
	Case          dataset.TestCase
	Cards         []srcmap.Card
	CacheHit      bool
	Latency       time.Duration
	Deterministic scoring.Metrics
	Judge         *judge.Scores
}

// Measurement converts the outcome into a benchmark case measurement.
func (o *CaseOutcome) Measurement() bench.CaseMeasurement {
	return bench.CaseMeasurement{
		Query:        o.Case.Query,
		Ticket:       o.Case.Ticket,
		ToolTokens:   bench.EstimateToolTokens(o.Cards),
		NaiveTokens:  bench.EstimateNaiveTokens(o.Cards),
		LatencyMS:    o.Latency.Milliseconds(),
		CacheHit:     o.CacheHit,
		FlowHitRate:  o.Deterministic.FlowHitRate,
		FileHitRate:  o.Deterministic.FileHitRate,
		PrecisionAtK: o.Deterministic.PrecisionAtK,
		ResultCount:  o.Deterministic.ResultCount,
	}
}

type Result struct {
	StartedAt time.Time
	Outcomes  []CaseOutcome
}

func (r *Result) Measurements() []bench.CaseMeasurement {
	measurements := make([]bench.CaseMeasurement, len(r.Outcomes))
	for i := range r.Outcomes {
		measurements[i] = r.Outcomes[i].Measurement()
	}
	return measurements
}

// Run evaluates every test case in order. Search failures abort the whole
// run; judge failures degrade to absent metrics for the affected case.
func (r *Runner) Run(ctx context.Context, cases []dataset.TestCase) (*Result, error) {
	result := &Result{StartedAt: time.Now()}

	for i, tc := range cases {
		slog.Info("Running case", "id", tc.ID, "query", truncate(tc.Query, 60))

		start := time.Now()
		search, err := r.client.Search(ctx, tc.Query, r.config.Limit)
		if err != nil {
			return nil, fmt.Errorf("case %q: %w", tc.ID, err)
		}
		latency := time.Since(start)

		if r.config.Verbose {
			for _, c := range search.Cards {
				slog.Info("Result card", "score", c.Score, "flow", c.Flow, "title", c.Title, "type", c.CardType)
			}
		}

		outcome := CaseOutcome{
			Case:          tc,
			Cards:         search.Cards,
			CacheHit:      search.CacheHit,
			Latency:       latency,
			Deterministic: scoring.Score(tc.ExpectedFlows, tc.ExpectedFileFragments, search.Cards),
		}

		if r.judge != nil {
			outcome.Judge = r.scoreWithJudge(ctx, tc, search.Cards)
		}

		result.Outcomes = append(result.Outcomes, outcome)

		if r.config.Delay > 0 && i < len(cases)-1 {
			time.Sleep(r.config.Delay)
		}
	}

	return result, nil
}

// scoreWithJudge grades one case with a per-call timeout. Failures are
// recorded as absent metrics, never as zeros and never fatally.
func (r *Runner) scoreWithJudge(ctx context.Context, tc dataset.TestCase, cards []srcmap.Card) *judge.Scores {
	judgeCtx, cancel := context.WithTimeout(ctx, r.config.JudgeTimeout)
	defer cancel()

	scores, err := r.judge.ScoreCase(judgeCtx, tc, cards)
	if err != nil {
		slog.Warn("Judge scoring failed", "id", tc.ID, "backend", r.judge.Name(), "error", err)
	}
	if scores.Empty() {
		return nil
	}
	return &scores
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "…"
}
