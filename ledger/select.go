package ledger

// SelectFromList returns the element at a 1-based position in an ordered
// list, leaving the list untouched. It is the one-shot projection behind
// every numbered pick-one prompt in the CLI.
//
// Callers are expected to precheck emptiness before offering a selection;
// an empty list fails with *EmptySelectionError and a position outside
// [1, len(items)] fails with *OutOfRangeError.
func SelectFromList[T any](items []T, position int) (T, error) {
	var zero T

	if len(items) == 0 {
		return zero, &EmptySelectionError{}
	}
	if position < 1 || position > len(items) {
		return zero, &OutOfRangeError{Position: position, Length: len(items)}
	}

	return items[position-1], nil
}
