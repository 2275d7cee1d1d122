package wizard

// MoveDown advances the cursor to the next interactive element below it.
// Separators are skipped. When no interactive element exists below, the
// cursor is returned unchanged: no wraparound.
func MoveDown(cursor int, elements []Element) int {
	for i := cursor + 1; i < len(elements); i++ {
		if elements[i].Interactive() {
			return i
		}
	}
	return cursor
}

// MoveUp retreats the cursor to the previous interactive element above it,
// skipping Separators, with the same no-wraparound boundary behavior as
// MoveDown.
func MoveUp(cursor int, elements []Element) int {
	for i := cursor - 1; i >= 0; i-- {
		if elements[i].Interactive() {
			return i
		}
	}
	return cursor
}

// firstInteractive returns the index of the first element the cursor may rest
// on, or 0 for a list with no interactive elements (step construction rules
// make that case unreachable, but it must not panic).
func firstInteractive(elements []Element) int {
	for i, el := range elements {
		if el.Interactive() {
			return i
		}
	}
	return 0
}
