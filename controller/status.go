// Package controller implements Controller/Status (spec.md §4.8): the
// single mutation entry point that aggregates every manager and applies
// payloads to produce a new, structurally-shared Status.
//
// Grounded on original_source/controller/src/controller/status.rs for
// the Status field list (navigator, container, the id managers,
// sheet-pos, the dependency graph) and on the teacher's sheet.go
// AppErrorCode/AppError pattern for the typed-error surface.
package controller

import (
	"github.com/sheetkernel/engine/base"
	"github.com/sheetkernel/engine/calc"
	"github.com/sheetkernel/engine/container"
	"github.com/sheetkernel/engine/depgraph"
	"github.com/sheetkernel/engine/ids"
	"github.com/sheetkernel/engine/navigator"
	"github.com/sheetkernel/engine/sheetpos"
)

// Status aggregates references to every manager, per spec.md §4.8. It is
// a value: every payload application returns a new Status, sharing
// whatever sub-structures the payload left untouched.
//
// Graph is the one exception to that versioning: spec.md §5 describes it
// as mutated in place under a single calculation thread with no internal
// locking, so Clone keeps the same Graph pointer across Status versions
// rather than deep-copying it on every transaction. PendingTasks follows
// Graph for the same reason: it is the host-observable record of which
// cells are mid-flight on an external fetch (spec.md §5), not data a
// rolled-back transaction should ever revert.
type Status struct {
	Sheets    ids.SheetIdManager
	Texts     ids.TextIdManager
	Funcs     ids.FuncIdManager
	Names     ids.NameIdManager
	Blocks    ids.BlockIdManager
	ExtBooks  ids.ExtBookIdManager
	Authors   ids.AuthorIdManager
	Positions *sheetpos.Manager
	Nav       *navigator.Navigator
	Data      map[ids.SheetId]*navigator.Data
	Container *container.Container
	Graph     *depgraph.Graph

	PendingTasks *calc.PendingTasks

	rowSeq map[ids.SheetId]*ids.Sequence
	colSeq map[ids.SheetId]*ids.Sequence
}

// NewStatus creates an empty Status: no sheets, no cells, every manager
// freshly initialized.
func NewStatus() *Status {
	return &Status{
		Sheets:       ids.NewSheetIdManager(),
		Texts:        ids.NewTextIdManager(),
		Funcs:        ids.NewFuncIdManager(),
		Names:        ids.NewNameIdManager(),
		Blocks:       ids.NewBlockIdManager(),
		ExtBooks:     ids.NewExtBookIdManager(),
		Authors:      ids.NewAuthorIdManager(),
		Positions:    sheetpos.New(),
		Nav:          navigator.New(),
		Data:         make(map[ids.SheetId]*navigator.Data),
		Container:    container.New(),
		Graph:        depgraph.New(),
		PendingTasks: calc.NewPendingTasks(),
		rowSeq:       make(map[ids.SheetId]*ids.Sequence),
		colSeq:       make(map[ids.SheetId]*ids.Sequence),
	}
}

// Clone returns a new Status sharing every sub-structure a later payload
// doesn't touch, per spec.md §4.8's versioning requirement.
func (s *Status) Clone() *Status {
	next := &Status{
		Sheets:       s.Sheets.Clone(),
		Texts:        s.Texts.Clone(),
		Funcs:        s.Funcs.Clone(),
		Names:        s.Names.Clone(),
		Blocks:       s.Blocks.Clone(),
		ExtBooks:     s.ExtBooks.Clone(),
		Authors:      s.Authors.Clone(),
		Positions:    s.Positions.Clone(),
		Nav:          s.Nav.Clone(),
		Data:         make(map[ids.SheetId]*navigator.Data, len(s.Data)),
		Container:    s.Container,
		Graph:        s.Graph,
		PendingTasks: s.PendingTasks,
		rowSeq:       make(map[ids.SheetId]*ids.Sequence, len(s.rowSeq)),
		colSeq:       make(map[ids.SheetId]*ids.Sequence, len(s.colSeq)),
	}
	for sheet, d := range s.Data {
		next.Data[sheet] = d.Clone()
	}
	for sheet, seq := range s.rowSeq {
		next.rowSeq[sheet] = seq.Clone()
	}
	for sheet, seq := range s.colSeq {
		next.colSeq[sheet] = seq.Clone()
	}
	return next
}

// dataFor returns sheet's positional Data, lazily creating it so a fresh
// sheet can be addressed before its first row/col is allocated.
func (s *Status) dataFor(sheet ids.SheetId) *navigator.Data {
	d, ok := s.Data[sheet]
	if !ok {
		d = navigator.NewData()
		s.Data[sheet] = d
	}
	return d
}

// rowSeqFor returns sheet's RowId allocator, creating one the first time
// a row is ever inserted on it. RowId and ColId carry no interned string
// key (unlike every other id domain in ids/domains.go), so they are
// allocated from a plain monotonic Sequence rather than a Manager[K].
func (s *Status) rowSeqFor(sheet ids.SheetId) *ids.Sequence {
	seq, ok := s.rowSeq[sheet]
	if !ok {
		seq = ids.NewSequence()
		s.rowSeq[sheet] = seq
	}
	return seq
}

func (s *Status) colSeqFor(sheet ids.SheetId) *ids.Sequence {
	seq, ok := s.colSeq[sheet]
	if !ok {
		seq = ids.NewSequence()
		s.colSeq[sheet] = seq
	}
	return seq
}

// SeedSequences bumps sheet's row/col allocators past rows/cols already
// in use, for a sheet whose rows/cols were populated directly (e.g. by a
// bulk file load) rather than one insert at a time through a payload.
func (s *Status) SeedSequences(sheet ids.SheetId, rows, cols int) {
	rowSeq := s.rowSeqFor(sheet)
	for i := 0; i < rows; i++ {
		rowSeq.Next()
	}
	colSeq := s.colSeqFor(sheet)
	for i := 0; i < cols; i++ {
		colSeq.Next()
	}
}

// rangeContains reports whether target falls inside rng, resolving both
// through Navigator so the check survives structural edits the same way
// calc.ContainerSource.RangeValues does.
func (s *Status) rangeContains(rng depgraph.RangeKey, target base.SheetCell) bool {
	if rng.Sheet != target.Sheet {
		return false
	}
	d := s.dataFor(rng.Sheet)
	fr, fc, err := s.Nav.FetchCellIdx(rng.Sheet, d, rng.From)
	if err != nil {
		return false
	}
	tr, tc, err := s.Nav.FetchCellIdx(rng.Sheet, d, rng.To)
	if err != nil {
		return false
	}
	vr, vc, err := s.Nav.FetchCellIdx(rng.Sheet, d, target.Cell)
	if err != nil {
		return false
	}
	if fr > tr {
		fr, tr = tr, fr
	}
	if fc > tc {
		fc, tc = tc, fc
	}
	return vr >= fr && vr <= tr && vc >= fc && vc <= tc
}
