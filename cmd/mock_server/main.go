package main

import (
	"flag"
	"log/slog"
	"os"

	"github.com/srcmap/evalkit/internal/mockserver"
)

func main() {
	port := flag.String("port", "8080", "Port to listen on")
	corpusPath := flag.String("corpus", "", "Path to a fixture corpus JSON (built-in corpus when empty)")
	flag.Parse()

	corpus := mockserver.DefaultCorpus()
	if *corpusPath != "" {
		loaded, err := mockserver.LoadCorpus(*corpusPath)
		if err != nil {
			slog.Error("Failed to load corpus", "path", *corpusPath, "error", err)
			os.Exit(1)
		}
		corpus = loaded
	}

	slog.Info("Starting mock srcmap", "port", *port, "flows", len(corpus.Flows))

	srv := mockserver.NewServer(corpus, *port)
	if err := srv.Start(); err != nil {
		slog.Error("Server stopped", "error", err)
		os.Exit(1)
	}
}
