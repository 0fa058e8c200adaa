// Package cli provides the terminal interface: the interactive session
// menu, scripted report commands, and data-store diagnostics.
package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	"github.com/robinvdvleuten/tally/config"
	"github.com/robinvdvleuten/tally/store"
)

var (
	successSymbol = "✓"
	errorSymbol   = "✗"
	infoSymbol    = "→"

	successStyle = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#00D787", Dark: "#00D787"})
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#FF5F87", Dark: "#FF5F87"})
	infoStyle    = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#5FAFFF", Dark: "#5FAFFF"})
	headerStyle  = lipgloss.NewStyle().Bold(true)
)

func printSuccess(w io.Writer, message string) {
	_, _ = fmt.Fprintf(w, "%s %s\n",
		successStyle.Render(successSymbol),
		message,
	)
}

func printError(w io.Writer, message string) {
	_, _ = fmt.Fprintf(w, "%s %s\n",
		errorStyle.Render(errorSymbol),
		errorStyle.Render(message),
	)
}

func printInfof(w io.Writer, format string, args ...interface{}) {
	formatted := fmt.Sprintf(format, args...)
	_, _ = fmt.Fprintf(w, "%s %s\n",
		infoStyle.Render(infoSymbol),
		formatted,
	)
}

func printHeader(w io.Writer, title string) {
	_, _ = fmt.Fprintf(w, "\n%s\n", headerStyle.Render("--- "+title+" ---"))
}

func isTerminal() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

// loadConfig resolves configuration, applies global flag overrides, and
// installs the slog handler for the run.
func loadConfig(globals *Globals) *config.Config {
	cfg := config.Load()
	if globals.Data != "" {
		cfg.DataDir = globals.Data
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: cfg.LogLevel,
	})))

	return cfg
}

// openStore opens the database named by the resolved configuration.
func openStore(ctx context.Context, globals *Globals) (*store.Store, *config.Config, error) {
	cfg := loadConfig(globals)

	st, err := store.Open(ctx, cfg.DBPath())
	if err != nil {
		return nil, nil, fmt.Errorf("open data store: %w", err)
	}
	return st, cfg, nil
}
