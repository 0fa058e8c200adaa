package report

import (
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/shopspring/decimal"
)

// Render returns the net worth report as an aligned text block.
func (s Summary) Render() string {
	var b strings.Builder
	b.WriteString("--- Net Worth Report ---\n")
	b.WriteString("Total Assets:      $" + s.TotalAssets.StringFixed(2) + "\n")
	b.WriteString("Total Liabilities: $" + s.TotalLiabilities.StringFixed(2) + "\n")
	b.WriteString("------------------------\n")
	b.WriteString("Net Worth:         $" + s.NetWorth.StringFixed(2) + "\n")
	return b.String()
}

// RenderSpending returns the spending report as a column-aligned table, or
// an explicit no-budgets notice when the ledger has no budgets set.
func RenderSpending(lines []BudgetLine) string {
	var b strings.Builder
	b.WriteString("--- Spending by Category ---\n")

	if len(lines) == 0 {
		b.WriteString("No budgets set. Please set budgets to see this report.\n")
		return b.String()
	}

	// Column widths account for display width, not byte length, so
	// category names in any script stay aligned.
	nameWidth := runewidth.StringWidth("Category")
	limitWidth, spentWidth, remainingWidth := len("Limit"), len("Spent"), len("Remaining")
	for _, line := range lines {
		nameWidth = max(nameWidth, runewidth.StringWidth(line.Category))
		limitWidth = max(limitWidth, len(money(line.Limit)))
		spentWidth = max(spentWidth, len(money(line.Spent)))
		remainingWidth = max(remainingWidth, len(money(line.Remaining)))
	}

	writeRow := func(name, limit, spent, remaining string) {
		b.WriteString(runewidth.FillRight(name, nameWidth))
		b.WriteString("  " + pad(limit, limitWidth))
		b.WriteString("  " + pad(spent, spentWidth))
		b.WriteString("  " + pad(remaining, remainingWidth))
		b.WriteString("\n")
	}

	writeRow("Category", "Limit", "Spent", "Remaining")
	for _, line := range lines {
		writeRow(line.Category, money(line.Limit), money(line.Spent), money(line.Remaining))
	}

	return b.String()
}

// money formats a decimal as a dollar amount with two fraction digits.
func money(d decimal.Decimal) string {
	if d.IsNegative() {
		return "-$" + d.Abs().StringFixed(2)
	}
	return "$" + d.StringFixed(2)
}

// pad right-aligns an amount within width. Amounts are ASCII so byte
// length equals display width.
func pad(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return strings.Repeat(" ", width-len(s)) + s
}
