package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/alecthomas/kong"

	"github.com/robinvdvleuten/tally/ledger"
	"github.com/robinvdvleuten/tally/report"
	"github.com/robinvdvleuten/tally/store"
)

// NetworthCmd prints the net worth report for one user without entering
// the interactive session.
type NetworthCmd struct {
	User string `help:"Username to report on." short:"u" required:""`
}

func (cmd *NetworthCmd) Run(ctx *kong.Context, globals *Globals) error {
	runCtx, reportTelemetry := globals.telemetryContext(ctx.Stderr, "networth")
	defer reportTelemetry()

	l, cleanup, err := loadAuthenticated(runCtx, globals, cmd.User)
	if err != nil {
		return err
	}
	defer cleanup()

	_, _ = fmt.Fprint(ctx.Stdout, report.NetWorth(l).Render())
	return nil
}

// SpendingCmd prints the spending-by-category report for one user.
type SpendingCmd struct {
	User string `help:"Username to report on." short:"u" required:""`
}

func (cmd *SpendingCmd) Run(ctx *kong.Context, globals *Globals) error {
	runCtx, reportTelemetry := globals.telemetryContext(ctx.Stderr, "spending")
	defer reportTelemetry()

	l, cleanup, err := loadAuthenticated(runCtx, globals, cmd.User)
	if err != nil {
		return err
	}
	defer cleanup()

	_, _ = fmt.Fprint(ctx.Stdout, report.RenderSpending(report.Spending(runCtx, l)))
	return nil
}

// loadAuthenticated opens the store, verifies the user's password, and
// loads their ledger. The password comes from TALLY_PASSWORD when set
// (for scripting) and is prompted for otherwise.
func loadAuthenticated(ctx context.Context, globals *Globals, username string) (*ledger.Ledger, func(), error) {
	st, _, err := openStore(ctx, globals)
	if err != nil {
		return nil, nil, err
	}
	cleanup := func() { _ = st.Close() }

	password := os.Getenv("TALLY_PASSWORD")
	if password == "" {
		if !isTerminal() {
			cleanup()
			return nil, nil, errors.New("no terminal available; set TALLY_PASSWORD to authenticate")
		}
		password, err = promptPassword(fmt.Sprintf("Password for %s:", username))
		if err != nil {
			cleanup()
			return nil, nil, err
		}
	}

	user, err := st.Authenticate(ctx, username, password)
	if err != nil {
		cleanup()
		if errors.Is(err, store.ErrInvalidCredentials) {
			return nil, nil, errors.New("invalid username or password")
		}
		return nil, nil, err
	}

	l, err := st.LoadLedger(ctx, user.ID)
	if err != nil {
		cleanup()
		return nil, nil, err
	}

	return l, cleanup, nil
}
