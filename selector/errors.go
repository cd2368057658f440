package selector

import "errors"

// Fragment rule violations. Both are returned wrapped with the offending
// fragment kind, test with errors.Is.
var (
	// ErrDuplicateFragment is returned when a single-occurrence fragment
	// kind (element, pseudo-element) is added a second time.
	ErrDuplicateFragment = errors.New("duplicate selector fragment")

	// ErrOutOfOrder is returned when a fragment is added after a fragment
	// of a strictly later kind is already present.
	ErrOutOfOrder = errors.New("selector fragment out of order")
)
