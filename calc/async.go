package calc

import (
	"context"
	"fmt"
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/sheetkernel/engine/base"
)

// TaskId is a caller-supplied identifier for one outstanding async
// function call (spec.md §5 "Tasks carry a caller-supplied identifier").
type TaskId string

// Task is what CalcEngine reports when a cell's formula suspends on an
// external async function: the cell stays dirty-but-waiting until a
// matching AsyncCalcResult arrives (spec.md §4.7, §7 item 5).
type Task struct {
	Id   TaskId
	Cell base.SheetCell
}

// AsyncCalcResult is the host's completion of a previously issued Task.
type AsyncCalcResult struct {
	Id    TaskId
	Value base.CellValue
}

// PendingTasks tracks which cells are waiting on which Task, and
// deduplicates concurrent identical external fetches through
// singleflight so two volatile cells requesting the same external key in
// one pass cost one fetch, not two (SPEC_FULL.md §4.7). The engine's own
// evaluation stays single-threaded per spec.md §5; only this bookkeeping
// is safe to touch from the host's own goroutines.
type PendingTasks struct {
	mu      sync.Mutex
	pending map[base.SheetCell]TaskId
	group   singleflight.Group
}

// NewPendingTasks builds an empty PendingTasks.
func NewPendingTasks() *PendingTasks {
	return &PendingTasks{pending: make(map[base.SheetCell]TaskId)}
}

// Begin records that cell is now waiting on id, returning the Task to
// hand to the host.
func (p *PendingTasks) Begin(cell base.SheetCell, id TaskId) Task {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.pending[cell] = id
	return Task{Id: id, Cell: cell}
}

// Complete clears the pending marker matching result.Id, reporting the
// cell it belonged to. A result whose id no longer has a matching
// pending cell (already cancelled, or duplicate delivery) is a no-op.
func (p *PendingTasks) Complete(result AsyncCalcResult) (base.SheetCell, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	for cell, id := range p.pending {
		if id == result.Id {
			delete(p.pending, cell)
			return cell, true
		}
	}
	return base.SheetCell{}, false
}

// Cancel drops cell's pending marker; the caller is expected to leave
// the cell's value as #N/A per spec.md §5's cancellation rule.
func (p *PendingTasks) Cancel(cell base.SheetCell) {
	p.mu.Lock()
	defer p.mu.Unlock()
	delete(p.pending, cell)
}

// Waiting reports whether cell currently has an outstanding Task.
func (p *PendingTasks) Waiting(cell base.SheetCell) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	_, ok := p.pending[cell]
	return ok
}

// TaskIdFor returns the TaskId cell is currently waiting on, if any - the
// id a host would quote back in its AsyncCalcResult.
func (p *PendingTasks) TaskIdFor(cell base.SheetCell) (TaskId, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	id, ok := p.pending[cell]
	return id, ok
}

// taskIdFor derives a deterministic TaskId from a vertex's own identity,
// so the same cell re-entering evalAsync mid-wait (another recalculation
// pass before its result arrives) can recognize it's already pending
// instead of synthesizing a new id.
func taskIdFor(v base.SheetCell) TaskId {
	if v.Cell.IsBlock() {
		b := v.Cell.Block
		return TaskId(fmt.Sprintf("b:%d:%d:%d:%d", v.Sheet, b.Block, b.Row, b.Col))
	}
	n := v.Cell.Normal
	return TaskId(fmt.Sprintf("n:%d:%d:%d", v.Sheet, n.Row, n.Col))
}

// Fetch runs fn at most once per distinct key among concurrent callers,
// sharing the result with every caller that arrived while it was in
// flight.
func (p *PendingTasks) Fetch(ctx context.Context, key string, fn func(ctx context.Context) (base.CellValue, error)) (base.CellValue, error) {
	v, err, _ := p.group.Do(key, func() (interface{}, error) {
		return fn(ctx)
	})
	if err != nil {
		return base.CellValue{}, err
	}
	return v.(base.CellValue), nil
}
