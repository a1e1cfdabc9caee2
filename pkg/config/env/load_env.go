// Package env loads process configuration from the environment and optional
// .env files.
package env

import (
	"errors"
	"io/fs"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
)

// LoadDotEnv loads variables from a .env file without overriding ones that are
// already set. The file is ENV_PATH when set, otherwise defaultPath.
// A missing file is only an error when env is "local".
func LoadDotEnv(env string, defaultPath string) error {
	envPath := os.Getenv("ENV_PATH")
	if envPath == "" {
		slog.Debug("ENV_PATH is not set, using default path", "defaultPath", defaultPath)
		envPath = defaultPath
	}

	err := godotenv.Load(envPath)
	if err == nil {
		slog.Info("Loaded environment file", "path", envPath)
		return nil
	}

	if env == "local" {
		slog.Error("Failed to load environment variables in local mode", "path", envPath, "error", err)
		return err
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return err
	}

	slog.Debug("Skipping .env ...", "path", envPath)
	return nil
}
