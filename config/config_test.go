package config

import (
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/alecthomas/assert/v2"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("TALLY_DATA_DIR", "")
	t.Setenv("TALLY_DB_FILE", "")
	t.Setenv("TALLY_LOG", "")

	cfg := Load()

	assert.NotEqual(t, "", cfg.DataDir)
	assert.Equal(t, "tally.db", cfg.DBFile)
	assert.Equal(t, slog.LevelWarn, cfg.LogLevel)
}

func TestLoad_FromEnvironment(t *testing.T) {
	t.Setenv("TALLY_DATA_DIR", "/tmp/tally-test")
	t.Setenv("TALLY_DB_FILE", "custom.db")
	t.Setenv("TALLY_LOG", "debug")

	cfg := Load()

	assert.Equal(t, "/tmp/tally-test", cfg.DataDir)
	assert.Equal(t, "custom.db", cfg.DBFile)
	assert.Equal(t, slog.LevelDebug, cfg.LogLevel)
	assert.Equal(t, filepath.Join("/tmp/tally-test", "custom.db"), cfg.DBPath())
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input string
		want  slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"error", slog.LevelError},
		{"verbose", slog.LevelWarn},
		{"", slog.LevelWarn},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, parseLevel(tt.input))
		})
	}
}
