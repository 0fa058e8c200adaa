// Package report derives read-only summaries from a ledger: the net worth
// position across accounts and spending against per-category budgets.
package report

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/robinvdvleuten/tally/ledger"
)

// Summary is the net worth position of a ledger. Liability balances are
// stored as positive magnitudes of debt, so NetWorth subtracts them from
// the asset total.
type Summary struct {
	TotalAssets      decimal.Decimal
	TotalLiabilities decimal.Decimal
	NetWorth         decimal.Decimal
}

// NetWorth sums account balances by kind and returns the resulting
// position. It never fails; a ledger without accounts yields all zeros.
func NetWorth(l *ledger.Ledger) Summary {
	assets := decimal.Zero
	liabilities := decimal.Zero

	for _, acc := range l.Accounts() {
		if acc.IsAsset() {
			assets = assets.Add(acc.Balance)
		} else {
			liabilities = liabilities.Add(acc.Balance)
		}
	}

	return Summary{
		TotalAssets:      assets,
		TotalLiabilities: liabilities,
		NetWorth:         assets.Sub(liabilities),
	}
}

// BudgetLine is one row of the spending report.
type BudgetLine struct {
	Category  string
	Limit     decimal.Decimal
	Spent     decimal.Decimal
	Remaining decimal.Decimal
}

// Spending recomputes all budget spent amounts, then returns one line per
// budget in the ledger's insertion order. Remaining may be negative when a
// category is over budget; no special-casing is applied. A ledger without
// budgets yields an empty slice, never an error.
func Spending(ctx context.Context, l *ledger.Ledger) []BudgetLine {
	l.RecomputeBudgetSpent(ctx)

	lines := make([]BudgetLine, 0, len(l.Budgets()))
	for _, b := range l.Budgets() {
		lines = append(lines, BudgetLine{
			Category:  b.Category.Name,
			Limit:     b.Limit,
			Spent:     b.Spent,
			Remaining: b.Remaining(),
		})
	}
	return lines
}
