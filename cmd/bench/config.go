package main

import "flag"

type cliConfig struct {
	SpecPath    string
	Server      string
	DatasetPath string
	Project     string
	Repo        string
	Language    string
	Framework   string
	Limit       int
	Output      string
	Append      bool
}

func parseFlags() cliConfig {
	cfg := cliConfig{}

	flag.StringVar(&cfg.SpecPath, "spec", "", "Path to bench spec YAML (multi-project mode)")
	flag.StringVar(&cfg.Server, "server", "http://localhost:8080", "srcmap server URL (single-project mode)")
	flag.StringVar(&cfg.DatasetPath, "dataset", "golden_dataset.json", "Path to golden dataset JSON")
	flag.StringVar(&cfg.Project, "project", "", "Project name for the benchmark entry")
	flag.StringVar(&cfg.Repo, "repo", "", "Repository name (defaults to project name)")
	flag.StringVar(&cfg.Language, "lang", "Unknown", "Primary language of the project")
	flag.StringVar(&cfg.Framework, "framework", "Unknown", "Primary framework of the project")
	flag.IntVar(&cfg.Limit, "limit", 10, "Results requested per query")
	flag.StringVar(&cfg.Output, "output", "benchmarks.json", "Output path for the benchmark file")
	flag.BoolVar(&cfg.Append, "append", false, "Merge into an existing benchmark file instead of overwriting")

	flag.Parse()
	return cfg
}
