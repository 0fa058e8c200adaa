// Package ledger provides the domain model for a single user's personal
// finances: accounts, categories, transactions, and per-category budgets,
// together with the mutation rules that keep derived state consistent.
//
// The ledger maintains that:
//   - Posting a transaction appends it to the history and atomically
//     adjusts the referenced account's balance by the transaction amount
//   - At most one budget exists per distinct category name
//   - Budget spent amounts are recomputed on demand from the full
//     transaction history, never maintained incrementally
//
// All monetary amounts use decimal arithmetic to avoid floating point
// precision issues. Collections preserve insertion order; displays and
// reports never reorder them.
//
// Example usage:
//
//	l := ledger.New()
//	checking := l.AddAccount("Checking", decimal.NewFromInt(500), ledger.AccountKindAsset)
//	groceries := l.AddCategory("Groceries")
//	l.PostTransaction(decimal.NewFromInt(-50), "Weekly shop", ledger.Today(), groceries, checking)
//	l.SetBudget(groceries, decimal.NewFromInt(200))
//	l.RecomputeBudgetSpent(ctx)
package ledger

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/robinvdvleuten/tally/telemetry"
)

// Ledger holds the ordered entity collections for exactly one user. It is
// the single owner of the canonical Account and Category records;
// transactions and budgets hold non-owning pointers into these collections.
//
// A Ledger is not safe for concurrent use. The whole graph is loaded at
// session start and persisted as one unit, so mutation must be serialized
// per user if multiple sessions ever share one.
type Ledger struct {
	accounts     []*Account
	categories   []*Category
	transactions []*Transaction
	budgets      []*Budget
}

// New creates a new empty ledger.
func New() *Ledger {
	return &Ledger{}
}

// Restore rebuilds a ledger from previously persisted state. The slices
// are adopted as-is: balances are taken at face value and no transaction
// is re-applied. Transactions and budgets are expected to reference the
// same Account and Category instances held in the entity slices, so that
// shared identity survives a persistence round trip.
func Restore(accounts []*Account, categories []*Category, transactions []*Transaction, budgets []*Budget) *Ledger {
	return &Ledger{
		accounts:     accounts,
		categories:   categories,
		transactions: transactions,
		budgets:      budgets,
	}
}

// AddAccount appends a new account with the given opening balance.
// Account names are not required to be unique.
func (l *Ledger) AddAccount(name string, opening decimal.Decimal, kind AccountKind) *Account {
	acc := &Account{Name: name, Balance: opening, Kind: kind}
	l.accounts = append(l.accounts, acc)
	return acc
}

// AddCategory appends a new category.
func (l *Ledger) AddCategory(name string) *Category {
	cat := &Category{Name: name}
	l.categories = append(l.categories, cat)
	return cat
}

// PostTransaction appends a transaction to the history and adds amount to
// the referenced account's balance. Positive amounts are income, negative
// amounts are expenses.
//
// No validation is performed: any category or account is accepted, even
// one not held in this ledger's collections. The account must be the same
// instance the ledger (or the caller) holds elsewhere, since the balance
// mutation is applied through the shared pointer. This operation never
// fails.
func (l *Ledger) PostTransaction(amount decimal.Decimal, description string, date Date, category *Category, account *Account) *Transaction {
	tx := &Transaction{
		Amount:      amount,
		Description: description,
		Date:        date,
		Category:    category,
		Account:     account,
	}
	l.transactions = append(l.transactions, tx)
	account.Balance = account.Balance.Add(amount)
	return tx
}

// SetBudget replaces any budget whose category is name-equal to the given
// category, then appends a fresh budget with a zero spent amount. Calling
// twice for the same category name leaves exactly one budget with the
// latest limit.
func (l *Ledger) SetBudget(category *Category, limit decimal.Decimal) *Budget {
	kept := l.budgets[:0]
	for _, b := range l.budgets {
		if !b.Category.Equal(category) {
			kept = append(kept, b)
		}
	}
	l.budgets = kept

	budget := &Budget{Category: category, Limit: limit, Spent: decimal.Zero}
	l.budgets = append(l.budgets, budget)
	return budget
}

// RecomputeBudgetSpent resets every budget's spent amount to the sum of
// absolute amounts over all expense transactions (amount < 0) in a
// name-equal category. Income transactions never count toward spend,
// regardless of category.
//
// This is a full recomputation over the entire transaction history; spent
// amounts are stale until it runs, so it must be called before any display
// or report that shows spent or remaining values.
func (l *Ledger) RecomputeBudgetSpent(ctx context.Context) {
	timer := telemetry.StartTimer(ctx, fmt.Sprintf("ledger.recompute (%d budgets, %d transactions)",
		len(l.budgets), len(l.transactions)))
	defer timer.End()

	for _, budget := range l.budgets {
		spent := decimal.Zero
		for _, tx := range l.transactions {
			if tx.Amount.IsNegative() && tx.Category.Equal(budget.Category) {
				spent = spent.Add(tx.Amount.Abs())
			}
		}
		budget.Spent = spent
	}
}

// Accounts returns all accounts in insertion order.
func (l *Ledger) Accounts() []*Account {
	return l.accounts
}

// Categories returns all categories in insertion order.
func (l *Ledger) Categories() []*Category {
	return l.categories
}

// Transactions returns the transaction history in insertion order.
func (l *Ledger) Transactions() []*Transaction {
	return l.transactions
}

// Budgets returns all budgets in insertion order.
func (l *Ledger) Budgets() []*Budget {
	return l.budgets
}

// FindCategory returns the first category with the given name.
func (l *Ledger) FindCategory(name string) (*Category, bool) {
	for _, cat := range l.categories {
		if cat.Name == name {
			return cat, true
		}
	}
	return nil, false
}
