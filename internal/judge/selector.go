package judge

import (
	"log/slog"
	"os"

	openai "github.com/sashabaranov/go-openai"
)

// Backend describes one judge provider: the credential it needs and how to
// initialize it. Keeping the chain as data makes the priority order explicit
// and testable.
type Backend struct {
	Name   string
	EnvKey string
	New    func(apiKey string) (Judge, error)
}

// DefaultBackends is the priority chain: DeepSeek, then OpenAI, then Gemini.
// All three speak the OpenAI chat-completions protocol.
func DefaultBackends() []Backend {
	return []Backend{
		{
			Name:   "deepseek",
			EnvKey: "DEEPSEEK_API_KEY",
			New: func(apiKey string) (Judge, error) {
				cfg := openai.DefaultConfig(apiKey)
				cfg.BaseURL = "https://api.deepseek.com/v1"
				return newLLMJudge("deepseek", openai.NewClientWithConfig(cfg), "deepseek-chat")
			},
		},
		{
			Name:   "openai",
			EnvKey: "OPENAI_API_KEY",
			New: func(apiKey string) (Judge, error) {
				return newLLMJudge("openai", openai.NewClient(apiKey), "gpt-4o-mini")
			},
		},
		{
			Name:   "gemini",
			EnvKey: "GOOGLE_API_KEY",
			New: func(apiKey string) (Judge, error) {
				cfg := openai.DefaultConfig(apiKey)
				cfg.BaseURL = "https://generativelanguage.googleapis.com/v1beta/openai"
				return newLLMJudge("gemini", openai.NewClientWithConfig(cfg), "gemini-2.0-flash")
			},
		},
	}
}

// Select returns the first backend whose credential is present and whose
// client initializes, or nil when no backend is usable. Initialization
// failures skip to the next backend; they never abort the run.
func Select(backends []Backend) Judge {
	for _, b := range backends {
		key := os.Getenv(b.EnvKey)
		if key == "" {
			continue
		}

		j, err := b.New(key)
		if err != nil {
			slog.Warn("Judge backend unavailable", "backend", b.Name, "error", err)
			continue
		}

		slog.Info("Using judge backend", "backend", b.Name)
		return j
	}

	slog.Warn("No judge backend configured, semantic metrics will be skipped")
	return nil
}
