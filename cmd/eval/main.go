package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/srcmap/evalkit/internal/dataset"
	"github.com/srcmap/evalkit/internal/judge"
	"github.com/srcmap/evalkit/internal/report"
	"github.com/srcmap/evalkit/internal/runner"
	"github.com/srcmap/evalkit/internal/srcmap"
	"github.com/srcmap/evalkit/pkg/config/env"
)

func main() {
	cfg := parseFlags()
	ctx := context.Background()

	env.LoadDotEnv(".env")

	ds, err := dataset.LoadFromFile(cfg.DatasetPath)
	if err != nil {
		slog.Error("Failed to load dataset", "path", cfg.DatasetPath, "error", err)
		os.Exit(1)
	}

	cases := ds.TestCases
	if cfg.CaseID != "" {
		tc, ok := ds.FindCase(cfg.CaseID)
		if !ok {
			slog.Error("Test case not found", "id", cfg.CaseID)
			os.Exit(1)
		}
		cases = []dataset.TestCase{tc}
	}

	client := srcmap.NewClient(cfg.Server)
	probeHealth(ctx, client)

	j := selectJudge(cfg.Judge)
	judgeName := ""
	if j != nil {
		judgeName = j.Name()
	}

	runCfg := runner.DefaultConfig()
	runCfg.Limit = cfg.Limit
	runCfg.Verbose = cfg.Verbose

	result, err := runner.New(client, j, runCfg).Run(ctx, cases)
	if err != nil {
		slog.Error("Evaluation failed", "error", err)
		os.Exit(1)
	}

	rpt := report.Build(result, cfg.Server, judgeName)
	report.WriteTable(rpt, os.Stdout)

	if cfg.Output != "" {
		if err := report.WriteJSON(rpt, cfg.Output); err != nil {
			slog.Error("Failed to write JSON report", "error", err)
			os.Exit(1)
		}
		slog.Info("Report written", "path", cfg.Output)
	}

	if !cfg.NoHistory {
		if err := report.AppendHistory(cfg.HistoryPath, report.NewHistoryEntry(rpt)); err != nil {
			slog.Warn("Failed to append history", "path", cfg.HistoryPath, "error", err)
		}
	}
}

// probeHealth confirms the server is reachable before the run starts.
// A failed probe is only a warning: the first search will surface a hard
// transport error with a better message.
func probeHealth(ctx context.Context, client *srcmap.Client) {
	health, err := client.Health(ctx)
	if err != nil {
		slog.Warn("Health check failed", "server", client.BaseURL(), "error", err)
		return
	}
	slog.Info("Connected to srcmap", "cards", health.Cards, "flows", health.Flows)
}

func selectJudge(mode string) judge.Judge {
	switch mode {
	case "none":
		return nil
	case "", "auto":
		return judge.Select(judge.DefaultBackends())
	}

	for _, b := range judge.DefaultBackends() {
		if b.Name == mode {
			return judge.Select([]judge.Backend{b})
		}
	}

	slog.Error("Unknown judge backend", "judge", mode)
	os.Exit(1)
	return nil
}
