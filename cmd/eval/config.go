package main

import "flag"

type cliConfig struct {
	Server      string
	DatasetPath string
	CaseID      string
	Limit       int
	Judge       string
	Output      string
	HistoryPath string
	NoHistory   bool
	Verbose     bool
}

func parseFlags() cliConfig {
	cfg := cliConfig{}

	flag.StringVar(&cfg.Server, "server", "http://localhost:8080", "srcmap server URL")
	flag.StringVar(&cfg.DatasetPath, "dataset", "golden_dataset.json", "Path to golden dataset JSON")
	flag.StringVar(&cfg.CaseID, "id", "", "Run a single test case by id")
	flag.IntVar(&cfg.Limit, "limit", 10, "Results requested per query")
	flag.StringVar(&cfg.Judge, "judge", "auto", "Judge backend: auto, deepseek, openai, gemini, or none")
	flag.StringVar(&cfg.Output, "output", "", "Output path for the JSON report")
	flag.StringVar(&cfg.HistoryPath, "history", "eval_history.json", "Path to the run history file")
	flag.BoolVar(&cfg.NoHistory, "no-history", false, "Skip appending this run to the history file")
	flag.BoolVar(&cfg.Verbose, "verbose", false, "Log every returned card")

	flag.Parse()
	return cfg
}
