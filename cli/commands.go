package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/robinvdvleuten/tally/telemetry"
)

// Globals defines global flags available to all commands.
type Globals struct {
	Data      string `help:"Directory holding the tally database (overrides TALLY_DATA_DIR)." type:"path"`
	Telemetry bool   `help:"Show timing telemetry for operations."`
}

type Commands struct {
	Globals

	Session  SessionCmd  `cmd:"" default:"1" help:"Start an interactive session."`
	Networth NetworthCmd `cmd:"" help:"Print the net worth report for a user."`
	Spending SpendingCmd `cmd:"" help:"Print the spending-by-category report for a user."`
	Doctor   DoctorCmd   `cmd:"" help:"Doctor utilities for inspecting the data store."`
}

// telemetryContext returns a context carrying a timing collector when the
// --telemetry flag is set, plus a report function to defer. Without the
// flag the context is plain and the report function does nothing.
func (g *Globals) telemetryContext(stderr io.Writer, name string) (context.Context, func()) {
	ctx := context.Background()

	if !g.Telemetry {
		return ctx, func() {}
	}

	collector := telemetry.NewTimingCollector()
	ctx = telemetry.WithCollector(ctx, collector)

	rootTimer := collector.Start(name)
	ctx = telemetry.WithRootTimer(ctx, rootTimer)

	return ctx, func() {
		rootTimer.End()
		_, _ = fmt.Fprintln(stderr)
		collector.Report(stderr)
	}
}
