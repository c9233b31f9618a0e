package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"os"
	"time"

	"github.com/srcmap/evalkit/internal/dataset"
	"github.com/srcmap/evalkit/internal/srcmap"
)

const datasetVersion = "1"

func main() {
	cfg := parseFlags()
	ctx := context.Background()

	client := srcmap.NewClient(cfg.Server)

	health, err := client.Health(ctx)
	if err != nil {
		slog.Error("Cannot reach srcmap", "server", cfg.Server, "error", err)
		os.Exit(1)
	}
	slog.Info("Connected to srcmap", "cards", health.Cards, "flows", health.Flows)

	flows, err := client.Flows(ctx)
	if err != nil {
		slog.Error("Failed to list flows", "error", err)
		os.Exit(1)
	}
	if len(flows) == 0 {
		slog.Error("No flows indexed, nothing to sample")
		os.Exit(1)
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	sampler := dataset.NewSampler(rand.New(rand.NewSource(seed)))

	selected := sampler.Select(flows, cfg.Sample)
	slog.Info("Sampled flows", "total", len(flows), "selected", len(selected), "seed", seed)

	ds, err := buildDataset(ctx, client, sampler, selected, cfg.Description)
	if err != nil {
		slog.Error("Failed to synthesize dataset", "error", err)
		os.Exit(1)
	}

	if err := dataset.Save(ds, cfg.Output); err != nil {
		slog.Error("Failed to write dataset", "path", cfg.Output, "error", err)
		os.Exit(1)
	}
	slog.Info("Dataset written", "path", cfg.Output, "cases", len(ds.TestCases))
}

// buildDataset fetches each sampled flow's cards and synthesizes one test
// case per flow. Any fetch failure aborts the whole generation: a partial
// dataset would silently weaken every later evaluation run.
func buildDataset(ctx context.Context, client *srcmap.Client, sampler *dataset.Sampler, selected []srcmap.Flow, description string) (*dataset.Dataset, error) {
	ds := &dataset.Dataset{
		Version:     datasetVersion,
		Description: description,
	}

	for i, flow := range selected {
		cards, err := client.FlowCards(ctx, flow.Name)
		if err != nil {
			return nil, fmt.Errorf("fetch cards for flow %q: %w", flow.Name, err)
		}
		ds.TestCases = append(ds.TestCases, sampler.Synthesize(flow, cards, i))
	}

	if len(ds.TestCases) == 0 {
		return nil, errors.New("no test cases synthesized")
	}
	return ds, nil
}
