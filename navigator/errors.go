package navigator

import "fmt"

// NotFound is returned when a lookup names an id or index that has no
// materialized position. It is a recoverable lookup error (spec.md §7
// item 2), not a panic-worthy condition.
type NotFound struct {
	Sheet  uint32
	Detail string
}

func (e *NotFound) Error() string {
	return fmt.Sprintf("navigator: sheet %d: %s", e.Sheet, e.Detail)
}

// ConsistencyError signals that a payload was malformed or applied to a
// stale Status — e.g. a BlockCellId whose block placement no longer
// exists, or whose master cell cannot be resolved (spec.md §7 item 3).
type ConsistencyError struct {
	Sheet  uint32
	Detail string
}

func (e *ConsistencyError) Error() string {
	return fmt.Sprintf("navigator: sheet %d: %s", e.Sheet, e.Detail)
}
