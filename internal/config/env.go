package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/subosito/gotenv"
)

// AppEnvVar selects the environment specific .env file.
const AppEnvVar = "APP_ENV"

// LoadEnv loads .env.<APP_ENV> and then .env from dir. Variables already set
// in the process environment win, and missing files are skipped.
func LoadEnv(dir string) error {
	files := []string{".env"}
	if env := os.Getenv(AppEnvVar); env != "" {
		files = []string{".env." + env, ".env"}
	}

	for _, name := range files {
		path := filepath.Join(dir, name)
		if err := gotenv.Load(path); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				slog.Debug("[Config] No env file found, using OS environment", slog.String("path", path))
				continue
			}
			return fmt.Errorf("failed to load %s: %w", path, err)
		}
		slog.Debug("[Config] Loaded env file", slog.String("path", path))
	}
	return nil
}
