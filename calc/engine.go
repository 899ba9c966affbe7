package calc

import (
	"github.com/sheetkernel/engine/base"
	"github.com/sheetkernel/engine/container"
	"github.com/sheetkernel/engine/depgraph"
)

// Engine evaluates a Graph's dirty set in topological order, writing
// each settled value back into a ContainerSource so later vertices in
// the same pass observe their precedents' new values (spec.md §4.7).
type Engine struct {
	eval *Evaluator
}

// NewEngine builds an Engine around eval.
func NewEngine(eval *Evaluator) *Engine {
	return &Engine{eval: eval}
}

// Recalculate evaluates every vertex reachable from roots through the
// precedent graph, in the order depgraph.Graph.CalculationOrder
// reports, and returns the resulting Container. Vertices depgraph
// flagged cyclic are written #CIRC instead of evaluated (spec.md §7 item
// 4, §8 scenario 4); a plain value cell with no registered formula is
// left untouched.
//
// pending wires in the Task/AsyncCalcResult protocol (spec.md §5, §7
// item 5): a nil pending disables it, so every async-capable function
// falls back to its synchronous Registry.Call behavior instead. waiting
// reports which visited vertices settled on the pending marker this
// pass - the caller must not clear their dirty bit, since spec.md §7
// item 5 requires a pending cell to stay in the dirty set until its
// result arrives. started lists every Task newly registered this pass,
// for the caller to hand to whatever runs the actual external fetch.
func (e *Engine) Recalculate(graph *depgraph.Graph, source *ContainerSource, roots []base.SheetCell, pending *PendingTasks) (cont *container.Container, cyclic, waiting map[base.SheetCell]bool, started []Task) {
	e.eval.Pending = pending
	var order []base.SheetCell
	order, cyclic = graph.CalculationOrder(roots)
	waiting = make(map[base.SheetCell]bool)

	for _, v := range order {
		var value base.CellValue
		switch {
		case cyclic[v]:
			value = base.Err(base.ErrCirc)
		default:
			ast, ok := graph.GetFormula(v)
			if !ok {
				continue
			}
			e.eval.current = v
			e.eval.Started = nil
			value = e.eval.Eval(v.Sheet, ast)
			started = append(started, e.eval.Started...)
		}

		if value.IsPending() {
			waiting[v] = true
		}

		cell := source.Cont.CellOrBlank(v.Sheet, v.Cell)
		cell.Value = value
		cell.HasFormula = true
		source.Cont = source.Cont.WithCell(v.Sheet, v.Cell, cell)
	}

	return source.Cont, cyclic, waiting, started
}
