package env

import (
	"log/slog"
	"os"

	"github.com/joho/godotenv"
)

// LoadDotEnv loads environment variables from a .env file when one exists.
// ENV_PATH overrides the default location. A missing file is not an error:
// judge credentials are optional and may come from the process environment.
func LoadDotEnv(defaultPath string) {
	envPath := defaultPath
	if p := os.Getenv("ENV_PATH"); p != "" {
		envPath = p
	}

	if err := godotenv.Load(envPath); err != nil {
		slog.Debug("Skipping .env ...", "path", envPath)
	}
}
