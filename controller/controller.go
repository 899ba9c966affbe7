package controller

import (
	"github.com/sheetkernel/engine/base"
	"github.com/sheetkernel/engine/calc"
	"github.com/sheetkernel/engine/calc/functions"
)

// Controller owns the one mutable Status a workbook instance has, per
// spec.md §5's "single-threaded cooperative within one workbook
// instance" scheduling model. ApplyTransaction is its sole entry point.
type Controller struct {
	status *Status
}

// New wraps an existing Status — typically one just produced by a file
// load — in a Controller.
func New(status *Status) *Controller {
	return &Controller{status: status}
}

// Status returns the current, immutable Status snapshot. Callers may
// retain it freely: later transactions only ever replace Controller's
// own pointer, never mutate a Status a caller already observed (save for
// Graph, per Status.Clone's doc comment).
func (c *Controller) Status() *Status { return c.status }

// ApplyTransaction applies payloads in submission order against a cloned
// Status, then runs CalcEngine once over the accumulated dirty set
// (spec.md §4.8). On the first payload error, the whole transaction is
// refused and Controller's Status is left exactly as it was.
func (c *Controller) ApplyTransaction(payloads ...Payload) (*Status, map[base.SheetCell]bool, error) {
	next := c.status.Clone()

	for _, p := range payloads {
		dirty, err := p.Apply(next)
		if err != nil {
			return c.status, nil, err
		}
		for _, v := range dirty {
			next.Graph.MarkDirty(v)
		}
	}

	for _, v := range next.Graph.VolatileCells() {
		next.Graph.MarkDirty(v)
	}
	roots := next.Graph.DirtySet()

	source := calc.NewContainerSource(next.Nav, next.Data, next.Container)
	funcs := functions.NewRegistry(next.Funcs)
	evaluator := calc.NewEvaluator(source, next.Texts, funcs)
	engine := calc.NewEngine(evaluator)

	newContainer, cyclic, waiting, _ := engine.Recalculate(next.Graph, source, roots, next.PendingTasks)
	next.Container = newContainer
	for _, v := range roots {
		if waiting[v] {
			continue
		}
		next.Graph.ClearDirty(v)
	}

	c.status = next
	return next, cyclic, nil
}

// CompleteAsync delivers the host's result for a previously issued Task
// (spec.md §5, §7 item 5), clears its cell's pending marker, and
// recalculates everything downstream of it - mirroring ApplyTransaction's
// clone-apply-recalculate shape so a completion is itself a transaction.
// An id with no matching Task (already completed, or never issued) is
// refused rather than silently ignored.
func (c *Controller) CompleteAsync(result calc.AsyncCalcResult) (*Status, map[base.SheetCell]bool, error) {
	next := c.status.Clone()

	cell, ok := next.PendingTasks.Complete(result)
	if !ok {
		return c.status, nil, NewAppError(NotFound, "completeasync: no task with this id")
	}

	settled := next.Container.CellOrBlank(cell.Sheet, cell.Cell)
	settled.Value = result.Value
	settled.HasFormula = true
	next.Container = next.Container.WithCell(cell.Sheet, cell.Cell, settled)
	next.Graph.ClearDirty(cell)

	for _, v := range next.Graph.AffectedCells(cell, next.rangeContains) {
		next.Graph.MarkDirty(v)
	}
	roots := next.Graph.DirtySet()

	source := calc.NewContainerSource(next.Nav, next.Data, next.Container)
	funcs := functions.NewRegistry(next.Funcs)
	evaluator := calc.NewEvaluator(source, next.Texts, funcs)
	engine := calc.NewEngine(evaluator)

	newContainer, cyclic, waiting, _ := engine.Recalculate(next.Graph, source, roots, next.PendingTasks)
	next.Container = newContainer
	for _, v := range roots {
		if waiting[v] {
			continue
		}
		next.Graph.ClearDirty(v)
	}

	c.status = next
	return next, cyclic, nil
}
