package cli

import (
	"fmt"

	"github.com/alecthomas/kong"
	"github.com/alecthomas/repr"
)

// DoctorCmd provides utilities for inspecting the local data store.
type DoctorCmd struct {
	Info InfoCmd `cmd:"" default:"1" help:"Show data store location and status."`
	Dump DumpCmd `cmd:"" help:"Dump a user's ledger structure."`
}

// InfoCmd shows where the data lives and how much of it there is.
type InfoCmd struct{}

func (cmd *InfoCmd) Run(ctx *kong.Context, globals *Globals) error {
	runCtx, reportTelemetry := globals.telemetryContext(ctx.Stderr, "doctor info")
	defer reportTelemetry()

	st, cfg, err := openStore(runCtx, globals)
	if err != nil {
		return err
	}
	defer func() { _ = st.Close() }()

	users, err := st.UserCount(runCtx)
	if err != nil {
		return err
	}
	version, err := st.SchemaVersion(runCtx)
	if err != nil {
		return err
	}

	printInfof(ctx.Stdout, "database: %s", cfg.DBPath())
	printInfof(ctx.Stdout, "schema version: %d", version)
	printInfof(ctx.Stdout, "registered users: %d", users)

	return nil
}

// DumpCmd pretty-prints the stored ledger graph for one user. This is a
// local debugging aid; it reads the database directly without a password.
type DumpCmd struct {
	User string `help:"Username whose ledger to dump." arg:""`
}

func (cmd *DumpCmd) Run(ctx *kong.Context, globals *Globals) error {
	runCtx, reportTelemetry := globals.telemetryContext(ctx.Stderr, "doctor dump")
	defer reportTelemetry()

	st, _, err := openStore(runCtx, globals)
	if err != nil {
		return err
	}
	defer func() { _ = st.Close() }()

	user, err := st.UserByName(runCtx, cmd.User)
	if err != nil {
		return fmt.Errorf("look up %q: %w", cmd.User, err)
	}

	l, err := st.LoadLedger(runCtx, user.ID)
	if err != nil {
		return err
	}

	repr.Println(struct {
		Accounts     any
		Categories   any
		Transactions any
		Budgets      any
	}{l.Accounts(), l.Categories(), l.Transactions(), l.Budgets()})

	return nil
}
