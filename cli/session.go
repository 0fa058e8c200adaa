package cli

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/huh"

	"github.com/robinvdvleuten/tally/ledger"
	"github.com/robinvdvleuten/tally/report"
	"github.com/robinvdvleuten/tally/store"
)

// SessionCmd runs the interactive menu: login or register, then work with
// the authenticated user's ledger until logout. The ledger is persisted
// after every menu action, so quitting mid-session loses nothing.
type SessionCmd struct{}

func (cmd *SessionCmd) Run(ctx *kong.Context, globals *Globals) error {
	if !isTerminal() {
		return errors.New("an interactive session requires a terminal; see 'tally --help' for scripted commands")
	}

	runCtx, reportTelemetry := globals.telemetryContext(ctx.Stderr, "session")
	defer reportTelemetry()

	st, _, err := openStore(runCtx, globals)
	if err != nil {
		return err
	}
	defer func() { _ = st.Close() }()

	_, _ = fmt.Fprintln(ctx.Stdout, headerStyle.Render("Welcome to tally"))

	for {
		choice, err := promptChoice("Main Menu",
			huh.NewOption("Login", "login"),
			huh.NewOption("Register", "register"),
			huh.NewOption("Exit", "exit"),
		)
		if err != nil {
			return err
		}

		switch choice {
		case "login":
			if err := cmd.login(runCtx, ctx.Stdout, st); err != nil {
				return err
			}
		case "register":
			if err := cmd.register(runCtx, ctx.Stdout, st); err != nil {
				return err
			}
		case "exit":
			printInfof(ctx.Stdout, "Thank you for using tally. Goodbye!")
			return nil
		}
	}
}

func (cmd *SessionCmd) register(ctx context.Context, w io.Writer, st *store.Store) error {
	username, err := promptInput("Enter new username:", nil)
	if err != nil {
		return err
	}
	password, err := promptPassword("Enter new password:")
	if err != nil {
		return err
	}

	if _, err := st.CreateUser(ctx, username, password); err != nil {
		if errors.Is(err, store.ErrUsernameTaken) {
			printError(w, "This username is already taken.")
			return nil
		}
		return err
	}

	printSuccess(w, "Registration successful! Please login.")
	return nil
}

func (cmd *SessionCmd) login(ctx context.Context, w io.Writer, st *store.Store) error {
	username, err := promptInput("Enter username:", nil)
	if err != nil {
		return err
	}
	password, err := promptPassword("Enter password:")
	if err != nil {
		return err
	}

	user, err := st.Authenticate(ctx, username, password)
	if err != nil {
		if errors.Is(err, store.ErrInvalidCredentials) {
			printError(w, "Invalid username or password.")
			return nil
		}
		return err
	}

	l, err := st.LoadLedger(ctx, user.ID)
	if err != nil {
		return err
	}

	printSuccess(w, fmt.Sprintf("Welcome back, %s!", user.Username))
	return cmd.appMenu(ctx, w, st, user, l)
}

// appMenu loops over the authenticated user's actions. Errors from a
// single action are reported and the menu continues; only prompt or store
// failures end the session.
func (cmd *SessionCmd) appMenu(ctx context.Context, w io.Writer, st *store.Store, user *store.User, l *ledger.Ledger) error {
	for {
		choice, err := promptChoice(fmt.Sprintf("App Menu (%s)", user.Username),
			huh.NewOption("Add Transaction", "transaction"),
			huh.NewOption("View Transactions", "view"),
			huh.NewOption("Manage Accounts", "accounts"),
			huh.NewOption("Manage Categories", "categories"),
			huh.NewOption("Manage Budgets", "budgets"),
			huh.NewOption("Run Reports", "reports"),
			huh.NewOption("Logout", "logout"),
		)
		if err != nil {
			return err
		}

		if choice == "logout" {
			printInfof(w, "Logging out...")
			return nil
		}

		var actionErr error
		switch choice {
		case "transaction":
			actionErr = cmd.addTransaction(ctx, w, l)
		case "view":
			cmd.viewTransactions(w, l)
		case "accounts":
			actionErr = cmd.manageAccounts(ctx, w, l)
		case "categories":
			actionErr = cmd.manageCategories(ctx, w, l)
		case "budgets":
			actionErr = cmd.manageBudgets(ctx, w, l)
		case "reports":
			actionErr = cmd.runReports(ctx, w, l)
		}

		if actionErr != nil {
			printError(w, fmt.Sprintf("An error occurred: %s", actionErr))
			continue
		}

		if err := st.SaveLedger(ctx, user.ID, l); err != nil {
			return fmt.Errorf("save ledger: %w", err)
		}
	}
}

func (cmd *SessionCmd) addTransaction(ctx context.Context, w io.Writer, l *ledger.Ledger) error {
	if len(l.Accounts()) == 0 {
		printError(w, "You must add an account first.")
		return nil
	}
	if len(l.Categories()) == 0 {
		printError(w, "You must add a category first.")
		return nil
	}

	amount, err := promptAmount("Enter amount (positive for income, negative for expense):")
	if err != nil {
		return err
	}
	description, err := promptInput("Enter description:", nil)
	if err != nil {
		return err
	}
	date, err := promptDate("Enter date (yyyy-mm-dd, leave empty for today):")
	if err != nil {
		return err
	}

	account, err := promptPick("Select Account:", l.Accounts())
	if err != nil {
		return err
	}
	category, err := promptPick("Select Category:", l.Categories())
	if err != nil {
		return err
	}

	l.PostTransaction(amount, description, date, category, account)
	printSuccess(w, "Transaction added successfully.")
	return nil
}

func (cmd *SessionCmd) viewTransactions(w io.Writer, l *ledger.Ledger) {
	printHeader(w, "Your Transactions")
	if len(l.Transactions()) == 0 {
		printInfof(w, "No transactions found.")
		return
	}
	for _, tx := range l.Transactions() {
		_, _ = fmt.Fprintln(w, tx)
	}
}

func (cmd *SessionCmd) manageAccounts(ctx context.Context, w io.Writer, l *ledger.Ledger) error {
	choice, err := promptChoice("Manage Accounts",
		huh.NewOption("Add New Account", "add"),
		huh.NewOption("View All Accounts", "view"),
		huh.NewOption("Back", "back"),
	)
	if err != nil {
		return err
	}

	switch choice {
	case "add":
		name, err := promptInput("Enter account name (e.g. Checking, Credit Card):", nil)
		if err != nil {
			return err
		}
		balance, err := promptAmount("Enter initial balance:")
		if err != nil {
			return err
		}
		kind, err := promptChoice("Account kind:",
			huh.NewOption("Asset (e.g. Checking)", ledger.AccountKindAsset),
			huh.NewOption("Liability (e.g. Credit Card)", ledger.AccountKindLiability),
		)
		if err != nil {
			return err
		}

		l.AddAccount(name, balance, kind)
		printSuccess(w, fmt.Sprintf("Account %q added.", name))

	case "view":
		printHeader(w, "Your Accounts")
		if len(l.Accounts()) == 0 {
			printInfof(w, "No accounts found.")
			return nil
		}
		for _, acc := range l.Accounts() {
			_, _ = fmt.Fprintln(w, acc)
		}
	}

	return nil
}

func (cmd *SessionCmd) manageCategories(ctx context.Context, w io.Writer, l *ledger.Ledger) error {
	choice, err := promptChoice("Manage Categories",
		huh.NewOption("Add New Category", "add"),
		huh.NewOption("View All Categories", "view"),
		huh.NewOption("Back", "back"),
	)
	if err != nil {
		return err
	}

	switch choice {
	case "add":
		name, err := promptInput("Enter category name (e.g. Groceries, Rent):", nil)
		if err != nil {
			return err
		}
		l.AddCategory(name)
		printSuccess(w, fmt.Sprintf("Category %q added.", name))

	case "view":
		printHeader(w, "Your Categories")
		if len(l.Categories()) == 0 {
			printInfof(w, "No categories found.")
			return nil
		}
		for _, cat := range l.Categories() {
			_, _ = fmt.Fprintf(w, "- %s\n", cat.Name)
		}
	}

	return nil
}

func (cmd *SessionCmd) manageBudgets(ctx context.Context, w io.Writer, l *ledger.Ledger) error {
	choice, err := promptChoice("Manage Budgets",
		huh.NewOption("Set/Update Budget for a Category", "set"),
		huh.NewOption("View All Budgets", "view"),
		huh.NewOption("Back", "back"),
	)
	if err != nil {
		return err
	}

	switch choice {
	case "set":
		if len(l.Categories()) == 0 {
			printError(w, "You must add a category first.")
			return nil
		}

		category, err := promptPick("Select category to budget:", l.Categories())
		if err != nil {
			return err
		}
		limit, err := promptAmount(fmt.Sprintf("Enter monthly budget limit for %s:", category.Name))
		if err != nil {
			return err
		}

		l.SetBudget(category, limit)
		printSuccess(w, "Budget set successfully.")

	case "view":
		printHeader(w, "Your Budgets")
		if len(l.Budgets()) == 0 {
			printInfof(w, "No budgets set.")
			return nil
		}

		// Spent amounts are stale until recomputed.
		l.RecomputeBudgetSpent(ctx)
		for _, b := range l.Budgets() {
			_, _ = fmt.Fprintln(w, b)
		}
	}

	return nil
}

func (cmd *SessionCmd) runReports(ctx context.Context, w io.Writer, l *ledger.Ledger) error {
	choice, err := promptChoice("Run Reports",
		huh.NewOption("Net Worth Report", "networth"),
		huh.NewOption("Spending by Category", "spending"),
		huh.NewOption("Back", "back"),
	)
	if err != nil {
		return err
	}

	switch choice {
	case "networth":
		_, _ = fmt.Fprintln(w, report.NetWorth(l).Render())
	case "spending":
		_, _ = fmt.Fprintln(w, report.RenderSpending(report.Spending(ctx, l)))
	}

	return nil
}
