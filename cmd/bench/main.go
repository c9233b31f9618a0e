package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/srcmap/evalkit/internal/bench"
	"github.com/srcmap/evalkit/internal/bench/spec"
	"github.com/srcmap/evalkit/internal/dataset"
	"github.com/srcmap/evalkit/internal/runner"
	"github.com/srcmap/evalkit/internal/srcmap"
)

func main() {
	cfg := parseFlags()
	ctx := context.Background()

	if cfg.SpecPath != "" {
		runWithSpec(ctx, cfg)
		return
	}
	runSingleProject(ctx, cfg)
}

func runSingleProject(ctx context.Context, cfg cliConfig) {
	if cfg.Project == "" {
		slog.Error("Single-project mode requires --project")
		os.Exit(1)
	}

	repo := cfg.Repo
	if repo == "" {
		repo = cfg.Project
	}

	project := spec.Project{
		Name:      cfg.Project,
		Repo:      repo,
		Language:  cfg.Language,
		Framework: cfg.Framework,
		Server:    cfg.Server,
		Dataset:   cfg.DatasetPath,
		Limit:     cfg.Limit,
	}

	file := loadOutput(cfg.Output, cfg.Append)

	entry, err := benchProject(ctx, project)
	if err != nil {
		slog.Error("Benchmark failed", "project", project.Name, "error", err)
		os.Exit(1)
	}
	file.Upsert(*entry, time.Now())

	writeOutput(file, cfg.Output)
}

func runWithSpec(ctx context.Context, cfg cliConfig) {
	bs, err := spec.LoadFromFile(cfg.SpecPath)
	if err != nil {
		slog.Error("Failed to load spec", "path", cfg.SpecPath, "error", err)
		os.Exit(1)
	}

	output := bs.Output
	if cfg.Output != "" && cfg.Output != "benchmarks.json" {
		output = cfg.Output
	}

	file := loadOutput(output, cfg.Append)

	for _, project := range bs.Projects {
		entry, err := benchProject(ctx, project)
		if err != nil {
			slog.Error("Benchmark failed", "project", project.Name, "error", err)
			os.Exit(1)
		}
		file.Upsert(*entry, time.Now())
	}

	writeOutput(file, output)
}

// benchProject runs the project's dataset against its server and folds
// the measurements into a benchmark entry. The judge never participates
// here: benchmarks track retrieval cost and deterministic quality only.
func benchProject(ctx context.Context, project spec.Project) (*bench.ProjectEntry, error) {
	ds, err := dataset.LoadFromFile(project.Dataset)
	if err != nil {
		return nil, err
	}

	slog.Info("Benchmarking project",
		"project", project.Name, "server", project.Server, "cases", len(ds.TestCases))

	client := srcmap.NewClient(project.Server)

	runCfg := runner.DefaultConfig()
	runCfg.Limit = project.Limit

	result, err := runner.New(client, nil, runCfg).Run(ctx, ds.TestCases)
	if err != nil {
		return nil, err
	}

	measurements := result.Measurements()
	return &bench.ProjectEntry{
		Name:      project.Name,
		Repo:      project.Repo,
		Language:  project.Language,
		Framework: project.Framework,
		Stats:     bench.ComputeProjectStats(measurements),
		Cases:     measurements,
	}, nil
}

func loadOutput(path string, appendMode bool) *bench.File {
	if !appendMode {
		return &bench.File{}
	}
	file, err := bench.LoadFile(path)
	if err != nil {
		slog.Error("Failed to load benchmark file", "path", path, "error", err)
		os.Exit(1)
	}
	return file
}

func writeOutput(file *bench.File, path string) {
	if err := bench.WriteFile(file, path); err != nil {
		slog.Error("Failed to write benchmark file", "path", path, "error", err)
		os.Exit(1)
	}
	slog.Info("Benchmark file written", "path", path, "projects", len(file.Projects))
}
