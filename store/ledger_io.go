package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/shopspring/decimal"

	"github.com/robinvdvleuten/tally/ledger"
	"github.com/robinvdvleuten/tally/telemetry"
)

// SaveLedger replaces the persisted graph for a user with the current
// ledger state, inside a single SQL transaction. Entities referenced by a
// transaction or budget but absent from the ledger's own collections are
// written with a NULL position so the reference survives the round trip
// without rejoining the lists.
func (s *Store) SaveLedger(ctx context.Context, userID int64, l *ledger.Ledger) error {
	timer := telemetry.StartTimer(ctx, fmt.Sprintf("store.save (%d transactions)", len(l.Transactions())))
	defer timer.End()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin save: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	// Replace the whole graph; children first to satisfy foreign keys.
	for _, table := range []string{"budgets", "transactions", "accounts", "categories"} {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+table+" WHERE user_id = ?", userID); err != nil {
			return fmt.Errorf("clear %s: %w", table, err)
		}
	}

	accountIDs := make(map[*ledger.Account]int64)
	for i, acc := range l.Accounts() {
		id, err := insertAccount(ctx, tx, userID, acc, i)
		if err != nil {
			return err
		}
		accountIDs[acc] = id
	}

	categoryIDs := make(map[*ledger.Category]int64)
	for i, cat := range l.Categories() {
		id, err := insertCategory(ctx, tx, userID, cat, i)
		if err != nil {
			return err
		}
		categoryIDs[cat] = id
	}

	for i, t := range l.Transactions() {
		accID, err := ensureAccount(ctx, tx, userID, accountIDs, t.Account)
		if err != nil {
			return err
		}
		catID, err := ensureCategory(ctx, tx, userID, categoryIDs, t.Category)
		if err != nil {
			return err
		}

		_, err = tx.ExecContext(ctx,
			`INSERT INTO transactions (user_id, amount, description, date, category_id, account_id, position)
			 VALUES (?, ?, ?, ?, ?, ?, ?)`,
			userID, t.Amount.String(), t.Description, t.Date.String(), catID, accID, i)
		if err != nil {
			return fmt.Errorf("insert transaction: %w", err)
		}
	}

	for i, b := range l.Budgets() {
		catID, err := ensureCategory(ctx, tx, userID, categoryIDs, b.Category)
		if err != nil {
			return err
		}

		_, err = tx.ExecContext(ctx,
			`INSERT INTO budgets (user_id, category_id, limit_amount, spent_amount, position)
			 VALUES (?, ?, ?, ?, ?)`,
			userID, catID, b.Limit.String(), b.Spent.String(), i)
		if err != nil {
			return fmt.Errorf("insert budget: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit save: %w", err)
	}

	slog.DebugContext(ctx, "ledger saved",
		"user_id", userID,
		"accounts", len(l.Accounts()),
		"categories", len(l.Categories()),
		"transactions", len(l.Transactions()),
		"budgets", len(l.Budgets()))

	return nil
}

func insertAccount(ctx context.Context, tx *sql.Tx, userID int64, acc *ledger.Account, position any) (int64, error) {
	res, err := tx.ExecContext(ctx,
		"INSERT INTO accounts (user_id, name, balance, kind, position) VALUES (?, ?, ?, ?, ?)",
		userID, acc.Name, acc.Balance.String(), acc.Kind.String(), position)
	if err != nil {
		return 0, fmt.Errorf("insert account: %w", err)
	}
	return res.LastInsertId()
}

func insertCategory(ctx context.Context, tx *sql.Tx, userID int64, cat *ledger.Category, position any) (int64, error) {
	res, err := tx.ExecContext(ctx,
		"INSERT INTO categories (user_id, name, position) VALUES (?, ?, ?)",
		userID, cat.Name, position)
	if err != nil {
		return 0, fmt.Errorf("insert category: %w", err)
	}
	return res.LastInsertId()
}

// ensureAccount returns the row id for an account pointer, inserting an
// unlisted row (NULL position) on first sight.
func ensureAccount(ctx context.Context, tx *sql.Tx, userID int64, ids map[*ledger.Account]int64, acc *ledger.Account) (int64, error) {
	if id, ok := ids[acc]; ok {
		return id, nil
	}
	id, err := insertAccount(ctx, tx, userID, acc, nil)
	if err != nil {
		return 0, err
	}
	ids[acc] = id
	return id, nil
}

func ensureCategory(ctx context.Context, tx *sql.Tx, userID int64, ids map[*ledger.Category]int64, cat *ledger.Category) (int64, error) {
	if id, ok := ids[cat]; ok {
		return id, nil
	}
	id, err := insertCategory(ctx, tx, userID, cat, nil)
	if err != nil {
		return 0, err
	}
	ids[cat] = id
	return id, nil
}

// LoadLedger reconstructs a user's ledger. Every transaction and budget
// resolves to the same Account and Category instances held in the ledger
// collections, so mutations through one reference remain visible through
// all others, exactly as before the save.
func (s *Store) LoadLedger(ctx context.Context, userID int64) (*ledger.Ledger, error) {
	timer := telemetry.StartTimer(ctx, "store.load")
	defer timer.End()

	var exists int
	err := s.db.QueryRowContext(ctx, "SELECT 1 FROM users WHERE id = ?", userID).Scan(&exists)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query user: %w", err)
	}

	accounts, accByID, err := s.loadAccounts(ctx, userID)
	if err != nil {
		return nil, err
	}
	categories, catByID, err := s.loadCategories(ctx, userID)
	if err != nil {
		return nil, err
	}

	transactions, err := s.loadTransactions(ctx, userID, accByID, catByID)
	if err != nil {
		return nil, err
	}
	budgets, err := s.loadBudgets(ctx, userID, catByID)
	if err != nil {
		return nil, err
	}

	return ledger.Restore(accounts, categories, transactions, budgets), nil
}

func (s *Store) loadAccounts(ctx context.Context, userID int64) ([]*ledger.Account, map[int64]*ledger.Account, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, balance, kind, position FROM accounts
		 WHERE user_id = ? ORDER BY position IS NULL, position, id`, userID)
	if err != nil {
		return nil, nil, fmt.Errorf("query accounts: %w", err)
	}
	defer rows.Close()

	var listed []*ledger.Account
	byID := make(map[int64]*ledger.Account)

	for rows.Next() {
		var (
			id       int64
			name     string
			balance  string
			kind     string
			position sql.NullInt64
		)
		if err := rows.Scan(&id, &name, &balance, &kind, &position); err != nil {
			return nil, nil, fmt.Errorf("scan account: %w", err)
		}

		bal, err := decimal.NewFromString(balance)
		if err != nil {
			return nil, nil, fmt.Errorf("account %q has invalid balance %q: %w", name, balance, err)
		}

		acc := &ledger.Account{Name: name, Balance: bal, Kind: ledger.ParseAccountKind(kind)}
		byID[id] = acc
		if position.Valid {
			listed = append(listed, acc)
		}
	}

	return listed, byID, rows.Err()
}

func (s *Store) loadCategories(ctx context.Context, userID int64) ([]*ledger.Category, map[int64]*ledger.Category, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, position FROM categories
		 WHERE user_id = ? ORDER BY position IS NULL, position, id`, userID)
	if err != nil {
		return nil, nil, fmt.Errorf("query categories: %w", err)
	}
	defer rows.Close()

	var listed []*ledger.Category
	byID := make(map[int64]*ledger.Category)

	for rows.Next() {
		var (
			id       int64
			name     string
			position sql.NullInt64
		)
		if err := rows.Scan(&id, &name, &position); err != nil {
			return nil, nil, fmt.Errorf("scan category: %w", err)
		}

		cat := &ledger.Category{Name: name}
		byID[id] = cat
		if position.Valid {
			listed = append(listed, cat)
		}
	}

	return listed, byID, rows.Err()
}

func (s *Store) loadTransactions(ctx context.Context, userID int64, accByID map[int64]*ledger.Account, catByID map[int64]*ledger.Category) ([]*ledger.Transaction, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT amount, description, date, category_id, account_id FROM transactions
		 WHERE user_id = ? ORDER BY position`, userID)
	if err != nil {
		return nil, fmt.Errorf("query transactions: %w", err)
	}
	defer rows.Close()

	var transactions []*ledger.Transaction
	for rows.Next() {
		var (
			amount      string
			description string
			date        string
			categoryID  int64
			accountID   int64
		)
		if err := rows.Scan(&amount, &description, &date, &categoryID, &accountID); err != nil {
			return nil, fmt.Errorf("scan transaction: %w", err)
		}

		amt, err := decimal.NewFromString(amount)
		if err != nil {
			return nil, fmt.Errorf("transaction has invalid amount %q: %w", amount, err)
		}
		d, err := ledger.ParseDate(date)
		if err != nil {
			return nil, fmt.Errorf("transaction has invalid date %q: %w", date, err)
		}

		cat, ok := catByID[categoryID]
		if !ok {
			return nil, fmt.Errorf("transaction references missing category %d", categoryID)
		}
		acc, ok := accByID[accountID]
		if !ok {
			return nil, fmt.Errorf("transaction references missing account %d", accountID)
		}

		transactions = append(transactions, &ledger.Transaction{
			Amount:      amt,
			Description: description,
			Date:        d,
			Category:    cat,
			Account:     acc,
		})
	}

	return transactions, rows.Err()
}

func (s *Store) loadBudgets(ctx context.Context, userID int64, catByID map[int64]*ledger.Category) ([]*ledger.Budget, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT category_id, limit_amount, spent_amount FROM budgets
		 WHERE user_id = ? ORDER BY position`, userID)
	if err != nil {
		return nil, fmt.Errorf("query budgets: %w", err)
	}
	defer rows.Close()

	var budgets []*ledger.Budget
	for rows.Next() {
		var (
			categoryID int64
			limit      string
			spent      string
		)
		if err := rows.Scan(&categoryID, &limit, &spent); err != nil {
			return nil, fmt.Errorf("scan budget: %w", err)
		}

		lim, err := decimal.NewFromString(limit)
		if err != nil {
			return nil, fmt.Errorf("budget has invalid limit %q: %w", limit, err)
		}
		sp, err := decimal.NewFromString(spent)
		if err != nil {
			return nil, fmt.Errorf("budget has invalid spent amount %q: %w", spent, err)
		}

		cat, ok := catByID[categoryID]
		if !ok {
			return nil, fmt.Errorf("budget references missing category %d", categoryID)
		}

		budgets = append(budgets, &ledger.Budget{Category: cat, Limit: lim, Spent: sp})
	}

	return budgets, rows.Err()
}
