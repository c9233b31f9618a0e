package main

import "flag"

type cliConfig struct {
	Server      string
	Sample      int
	Output      string
	Seed        int64
	Description string
}

func parseFlags() cliConfig {
	cfg := cliConfig{}

	flag.StringVar(&cfg.Server, "server", "http://localhost:8080", "srcmap server URL")
	flag.IntVar(&cfg.Sample, "sample", 20, "Number of flows to sample into test cases")
	flag.StringVar(&cfg.Output, "output", "golden_dataset.json", "Output path for the dataset JSON")
	flag.Int64Var(&cfg.Seed, "seed", 0, "Sampling seed (0 uses the current time)")
	flag.StringVar(&cfg.Description, "description", "Synthesized from indexed flows", "Dataset description")

	flag.Parse()
	return cfg
}
