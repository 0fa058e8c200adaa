package ledger

import "fmt"

// EmptySelectionError is returned when a selection is attempted on an
// empty list.
type EmptySelectionError struct{}

func (e *EmptySelectionError) Error() string {
	return "cannot select from an empty list"
}

// OutOfRangeError is returned when a selection position falls outside the
// valid 1-based range of the list.
type OutOfRangeError struct {
	Position int
	Length   int
}

func (e *OutOfRangeError) Error() string {
	return fmt.Sprintf("selection %d is out of range [1, %d]", e.Position, e.Length)
}
