package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/alecthomas/assert/v2"
	"github.com/shopspring/decimal"

	"github.com/robinvdvleuten/tally/ledger"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func openTestStore(t *testing.T) *Store {
	t.Helper()

	s, err := Open(context.Background(), filepath.Join(t.TempDir(), "tally.db"))
	assert.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	return s
}

func TestOpen_BootstrapsSchema(t *testing.T) {
	s := openTestStore(t)

	count, err := s.UserCount(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, 0, count)

	version, err := s.SchemaVersion(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, uint(1), version)
}

func TestStore_CreateUser(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	user, err := s.CreateUser(ctx, "alice", "hunter22")
	assert.NoError(t, err)
	assert.Equal(t, "alice", user.Username)
	assert.NotZero(t, user.ID)

	exists, err := s.UserExists(ctx, "alice")
	assert.NoError(t, err)
	assert.True(t, exists)

	exists, err = s.UserExists(ctx, "bob")
	assert.NoError(t, err)
	assert.False(t, exists)

	_, err = s.CreateUser(ctx, "alice", "other")
	assert.IsError(t, err, ErrUsernameTaken)
}

func TestStore_Authenticate(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	created, err := s.CreateUser(ctx, "alice", "hunter22")
	assert.NoError(t, err)

	user, err := s.Authenticate(ctx, "alice", "hunter22")
	assert.NoError(t, err)
	assert.Equal(t, created.ID, user.ID)

	_, err = s.Authenticate(ctx, "alice", "wrong")
	assert.IsError(t, err, ErrInvalidCredentials)

	// Unknown usernames are indistinguishable from wrong passwords.
	_, err = s.Authenticate(ctx, "mallory", "hunter22")
	assert.IsError(t, err, ErrInvalidCredentials)
}

func TestStore_SaveLoadRoundTrip(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	user, err := s.CreateUser(ctx, "alice", "hunter22")
	assert.NoError(t, err)

	l := ledger.New()
	checking := l.AddAccount("Checking", dec("500"), ledger.AccountKindAsset)
	card := l.AddAccount("Credit Card", dec("300"), ledger.AccountKindLiability)
	groceries := l.AddCategory("Groceries")
	rent := l.AddCategory("Rent")

	l.PostTransaction(dec("-50"), "Weekly shop", ledger.NewDate(2024, 3, 7), groceries, checking)
	l.PostTransaction(dec("-900"), "March rent", ledger.NewDate(2024, 3, 1), rent, checking)
	l.PostTransaction(dec("-20.25"), "Snacks", ledger.NewDate(2024, 3, 9), groceries, card)
	l.SetBudget(groceries, dec("200"))

	assert.NoError(t, s.SaveLedger(ctx, user.ID, l))

	loaded, err := s.LoadLedger(ctx, user.ID)
	assert.NoError(t, err)

	assert.Equal(t, 2, len(loaded.Accounts()))
	assert.Equal(t, 2, len(loaded.Categories()))
	assert.Equal(t, 3, len(loaded.Transactions()))
	assert.Equal(t, 1, len(loaded.Budgets()))

	// Insertion order survives the round trip.
	assert.Equal(t, "Checking", loaded.Accounts()[0].Name)
	assert.Equal(t, "Credit Card", loaded.Accounts()[1].Name)
	assert.Equal(t, "Weekly shop", loaded.Transactions()[0].Description)
	assert.Equal(t, "2024-03-07", loaded.Transactions()[0].Date.String())

	// Balances come back as stored, exact.
	assert.True(t, loaded.Accounts()[0].Balance.Equal(dec("-450")))
	assert.True(t, loaded.Accounts()[1].Balance.Equal(dec("279.75")))
	assert.Equal(t, ledger.AccountKindLiability, loaded.Accounts()[1].Kind)
}

func TestStore_RoundTripPreservesSharedIdentity(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	user, err := s.CreateUser(ctx, "alice", "hunter22")
	assert.NoError(t, err)

	l := ledger.New()
	checking := l.AddAccount("Checking", dec("500"), ledger.AccountKindAsset)
	groceries := l.AddCategory("Groceries")
	l.PostTransaction(dec("-50"), "Weekly shop", ledger.Today(), groceries, checking)
	l.PostTransaction(dec("-30"), "Top-up shop", ledger.Today(), groceries, checking)

	assert.NoError(t, s.SaveLedger(ctx, user.ID, l))

	loaded, err := s.LoadLedger(ctx, user.ID)
	assert.NoError(t, err)

	acc := loaded.Accounts()[0]
	txs := loaded.Transactions()

	// Both transactions alias the single canonical account instance.
	assert.True(t, txs[0].Account == acc)
	assert.True(t, txs[1].Account == acc)
	assert.True(t, txs[0].Category == loaded.Categories()[0])

	// Posting against the reloaded account stays visible through every
	// transaction's reference.
	loaded.PostTransaction(dec("-20"), "Another shop", ledger.Today(), loaded.Categories()[0], acc)
	assert.True(t, txs[0].Account.Balance.Equal(dec("400")))
	assert.True(t, txs[1].Account.Balance.Equal(dec("400")))
}

func TestStore_RoundTripUnlistedReference(t *testing.T) {
	// A transaction posted against an account the ledger does not list is
	// still persisted and restored as a shared reference, without the
	// account joining the ledger's own collection.
	s := openTestStore(t)
	ctx := context.Background()

	user, err := s.CreateUser(ctx, "alice", "hunter22")
	assert.NoError(t, err)

	l := ledger.New()
	cat := l.AddCategory("Misc")
	outside := &ledger.Account{Name: "Elsewhere", Balance: dec("10"), Kind: ledger.AccountKindAsset}
	l.PostTransaction(dec("-4"), "outside", ledger.Today(), cat, outside)

	assert.NoError(t, s.SaveLedger(ctx, user.ID, l))

	loaded, err := s.LoadLedger(ctx, user.ID)
	assert.NoError(t, err)

	assert.Equal(t, 0, len(loaded.Accounts()))
	assert.Equal(t, 1, len(loaded.Transactions()))
	assert.Equal(t, "Elsewhere", loaded.Transactions()[0].Account.Name)
	assert.True(t, loaded.Transactions()[0].Account.Balance.Equal(dec("6")))
}

func TestStore_SaveReplacesPreviousState(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	user, err := s.CreateUser(ctx, "alice", "hunter22")
	assert.NoError(t, err)

	l := ledger.New()
	acc := l.AddAccount("Checking", dec("100"), ledger.AccountKindAsset)
	cat := l.AddCategory("Misc")
	l.PostTransaction(dec("-10"), "first", ledger.Today(), cat, acc)
	assert.NoError(t, s.SaveLedger(ctx, user.ID, l))

	l.PostTransaction(dec("-20"), "second", ledger.Today(), cat, acc)
	assert.NoError(t, s.SaveLedger(ctx, user.ID, l))

	loaded, err := s.LoadLedger(ctx, user.ID)
	assert.NoError(t, err)
	assert.Equal(t, 2, len(loaded.Transactions()))
	assert.Equal(t, 1, len(loaded.Accounts()))
	assert.True(t, loaded.Accounts()[0].Balance.Equal(dec("70")))
}

func TestStore_LoadLedgerUnknownUser(t *testing.T) {
	s := openTestStore(t)

	_, err := s.LoadLedger(context.Background(), 999)
	assert.IsError(t, err, ErrNotFound)
}

func TestStore_LoadLedgerEmptyUser(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	user, err := s.CreateUser(ctx, "alice", "hunter22")
	assert.NoError(t, err)

	loaded, err := s.LoadLedger(ctx, user.ID)
	assert.NoError(t, err)
	assert.Equal(t, 0, len(loaded.Accounts()))
	assert.Equal(t, 0, len(loaded.Categories()))
	assert.Equal(t, 0, len(loaded.Transactions()))
	assert.Equal(t, 0, len(loaded.Budgets()))
}
