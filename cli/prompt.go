package cli

import (
	"fmt"

	"github.com/charmbracelet/huh"
	"github.com/shopspring/decimal"

	"github.com/robinvdvleuten/tally/ledger"
)

// promptInput asks for a single line of text.
func promptInput(title string, validate func(string) error) (string, error) {
	var value string

	field := huh.NewInput().Title(title).Value(&value)
	if validate != nil {
		field = field.Validate(validate)
	}

	if err := field.Run(); err != nil {
		return "", fmt.Errorf("failed to read input: %w", err)
	}
	return value, nil
}

// promptPassword asks for a line of text without echoing it.
func promptPassword(title string) (string, error) {
	var value string

	err := huh.NewInput().
		Title(title).
		EchoMode(huh.EchoModePassword).
		Value(&value).
		Run()
	if err != nil {
		return "", fmt.Errorf("failed to read password: %w", err)
	}
	return value, nil
}

// promptAmount asks for a decimal amount, rejecting unparseable input at
// the prompt so the core never sees it.
func promptAmount(title string) (decimal.Decimal, error) {
	value, err := promptInput(title, func(s string) error {
		if _, err := decimal.NewFromString(s); err != nil {
			return fmt.Errorf("invalid amount: %s", s)
		}
		return nil
	})
	if err != nil {
		return decimal.Decimal{}, err
	}
	return decimal.NewFromString(value)
}

// promptDate asks for a yyyy-mm-dd date, defaulting to today when left
// empty.
func promptDate(title string) (ledger.Date, error) {
	value, err := promptInput(title, func(s string) error {
		if s == "" {
			return nil
		}
		if _, err := ledger.ParseDate(s); err != nil {
			return err
		}
		return nil
	})
	if err != nil {
		return ledger.Date{}, err
	}
	if value == "" {
		return ledger.Today(), nil
	}
	return ledger.ParseDate(value)
}

// promptChoice presents a fixed menu and returns the chosen value.
func promptChoice[T comparable](title string, options ...huh.Option[T]) (T, error) {
	var value T

	err := huh.NewSelect[T]().
		Title(title).
		Options(options...).
		Value(&value).
		Run()
	if err != nil {
		var zero T
		return zero, fmt.Errorf("failed to read selection: %w", err)
	}
	return value, nil
}

// promptPick renders a numbered list and resolves the chosen 1-based
// position through ledger.SelectFromList, so bounds handling matches the
// core's selection contract.
func promptPick[T fmt.Stringer](title string, items []T) (T, error) {
	var zero T

	if len(items) == 0 {
		return zero, &ledger.EmptySelectionError{}
	}

	options := make([]huh.Option[int], len(items))
	for i, item := range items {
		options[i] = huh.NewOption(fmt.Sprintf("%d. %s", i+1, item.String()), i+1)
	}

	position, err := promptChoice(title, options...)
	if err != nil {
		return zero, err
	}

	return ledger.SelectFromList(items, position)
}
