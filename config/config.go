// Package config resolves runtime settings from the environment. A .env
// file in the working directory is honored when present; explicit
// environment variables take precedence, and CLI flags override both.
package config

import (
	"log/slog"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
)

// Config holds the resolved runtime settings.
type Config struct {
	// DataDir is the directory holding the database file.
	DataDir string

	// DBFile is the database filename inside DataDir.
	DBFile string

	// LogLevel controls slog output on stderr.
	LogLevel slog.Level
}

// Load reads configuration from the environment, after loading a .env
// file if one exists in the working directory.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		DataDir:  getEnv("TALLY_DATA_DIR", defaultDataDir()),
		DBFile:   getEnv("TALLY_DB_FILE", "tally.db"),
		LogLevel: parseLevel(getEnv("TALLY_LOG", "warn")),
	}
}

// DBPath returns the full path of the database file.
func (c *Config) DBPath() string {
	return filepath.Join(c.DataDir, c.DBFile)
}

func defaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "./data"
	}
	return filepath.Join(home, ".local", "share", "tally")
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func parseLevel(s string) slog.Level {
	switch s {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelWarn
	}
}
