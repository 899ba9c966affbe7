package ids

// Sequence is a dense, append-only, never-recycled id allocator for
// domains that have no interned key to dedupe on — RowId and ColId are
// identities born the moment a row or column is created, not looked up
// by name, so they need only a counter rather than the bijection
// Manager[K] provides (spec.md §3, "dense, append-only integer ids").
type Sequence struct {
	next Id
}

// NewSequence creates a Sequence starting at 0.
func NewSequence() *Sequence { return &Sequence{} }

// Next allocates and returns the next id in the sequence.
func (s *Sequence) Next() Id {
	id := s.next
	s.next++
	return id
}

// Clone returns an independent copy so a later allocation against one
// Status version never perturbs another's counter.
func (s *Sequence) Clone() *Sequence {
	c := *s
	return &c
}
