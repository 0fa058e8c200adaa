package ledger

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// AccountKind represents the polarity of an account.
type AccountKind int

const (
	AccountKindUnknown AccountKind = iota
	AccountKindAsset
	AccountKindLiability
)

// String returns the string representation of the account kind.
func (k AccountKind) String() string {
	switch k {
	case AccountKindAsset:
		return "Asset"
	case AccountKindLiability:
		return "Liability"
	default:
		return "Unknown"
	}
}

// ParseAccountKind parses an account kind from its string representation.
// Unrecognized input yields AccountKindUnknown.
func ParseAccountKind(s string) AccountKind {
	switch s {
	case "Asset":
		return AccountKindAsset
	case "Liability":
		return AccountKindLiability
	default:
		return AccountKindUnknown
	}
}

// Account represents a financial account (e.g. Checking, Credit Card).
// The balance carries no inherent sign constraint; liability balances are
// stored as positive magnitudes representing debt. The balance is mutated
// only through Ledger.PostTransaction.
type Account struct {
	Name    string
	Balance decimal.Decimal
	Kind    AccountKind
}

// IsAsset returns true if the account is an asset account.
func (a *Account) IsAsset() bool {
	return a.Kind == AccountKindAsset
}

// String returns the account in the form "Name (Kind): $Balance".
func (a *Account) String() string {
	return fmt.Sprintf("%s (%s): $%s", a.Name, a.Kind, a.Balance.StringFixed(2))
}

// Category represents a flat spending category. Categories compare by name
// value, not by instance; two categories with the same name are the same
// category for lookup and replacement purposes.
type Category struct {
	Name string
}

// Equal reports whether two categories name the same category.
// Nil-safe on both sides.
func (c *Category) Equal(other *Category) bool {
	if c == nil || other == nil {
		return c == other
	}
	return c.Name == other.Name
}

func (c *Category) String() string {
	return c.Name
}

// Transaction represents a single income or expense entry. The sign of
// Amount is the sole type discriminator: positive is income, negative is
// expense. Category and Account alias the canonical records owned by the
// Ledger so that balance mutations are visible through every transaction
// referencing the same account. Transactions are immutable once posted.
type Transaction struct {
	Amount      decimal.Decimal
	Description string
	Date        Date
	Category    *Category
	Account     *Account
}

// String returns the transaction in the original display form:
// "[date] TYPE: $amount - description (Cat: name, Acct: name)".
func (t *Transaction) String() string {
	kind := "INCOME"
	if t.Amount.IsNegative() {
		kind = "EXPENSE"
	}
	return fmt.Sprintf("[%s] %s: $%s - %s (Cat: %s, Acct: %s)",
		t.Date.Format(DateLayout), kind, t.Amount.Abs().StringFixed(2),
		t.Description, t.Category.Name, t.Account.Name)
}

// Budget represents a spending limit for a single category. Spent is
// derived state: it is stale until the next RecomputeBudgetSpent call and
// must never be set independently.
type Budget struct {
	Category *Category
	Limit    decimal.Decimal
	Spent    decimal.Decimal
}

// Remaining returns Limit minus Spent. A negative result signals the
// category is over budget; callers report the signed value as-is.
func (b *Budget) Remaining() decimal.Decimal {
	return b.Limit.Sub(b.Spent)
}

// String returns the budget in the original display form.
func (b *Budget) String() string {
	return fmt.Sprintf("Budget for '%s': $%s spent of $%s ($%s remaining)",
		b.Category.Name, b.Spent.StringFixed(2), b.Limit.StringFixed(2),
		b.Remaining().StringFixed(2))
}

// DateLayout is the calendar date format used throughout: ISO 8601 (YYYY-MM-DD).
const DateLayout = "2006-01-02"

// Date represents a calendar date. Transactions default to today when no
// date is supplied at creation.
type Date struct {
	time.Time
}

// NewDate creates a date at midnight UTC for the given calendar day.
func NewDate(year int, month time.Month, day int) Date {
	return Date{Time: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// Today returns the current calendar date.
func Today() Date {
	now := time.Now()
	return NewDate(now.Year(), now.Month(), now.Day())
}

// ParseDate parses a date in DateLayout format.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return Date{}, fmt.Errorf("invalid date: %s", s)
	}
	return Date{Time: t}, nil
}

// String returns the date in DateLayout format.
func (d Date) String() string {
	return d.Format(DateLayout)
}
