package depgraph

import "github.com/sheetkernel/engine/base"

// CalculationOrder computes a calculation order for roots and
// everything they transitively depend on, such that every cell's
// precedents appear before it. It also reports which cells are part of
// a circular reference, so CalcEngine can write #CIRC into them instead
// of evaluating their formula (spec.md §7).
//
// Grounded on the teacher's GetCalculationOrder (graph.go), replaced
// with Tarjan's strongly-connected-components algorithm: the teacher's
// three-color DFS reports only a single bool for "does a cycle exist
// somewhere", which is not enough to know *which* cells to mark
// #CIRC - Tarjan's SCCs give us that for free, and its output order is
// already a valid topological order of the condensation graph.
func (g *Graph) CalculationOrder(roots []base.SheetCell) (order []base.SheetCell, cyclic map[base.SheetCell]bool) {
	reachable := make(map[base.SheetCell]struct{})
	var collect func(v base.SheetCell)
	collect = func(v base.SheetCell) {
		if _, ok := reachable[v]; ok {
			return
		}
		reachable[v] = struct{}{}
		for _, p := range g.precedentsOf(v) {
			collect(p)
		}
	}
	for _, r := range roots {
		collect(r)
	}

	finder := &tarjan{
		graph:   g,
		index:   make(map[base.SheetCell]int),
		low:     make(map[base.SheetCell]int),
		onStack: make(map[base.SheetCell]bool),
		scope:   reachable,
	}
	for v := range reachable {
		if _, visited := finder.index[v]; !visited {
			finder.strongConnect(v)
		}
	}

	cyclic = make(map[base.SheetCell]bool)
	order = make([]base.SheetCell, 0, len(reachable))
	for _, scc := range finder.sccs {
		isCycle := len(scc) > 1
		if len(scc) == 1 {
			for _, p := range g.precedentsOf(scc[0]) {
				if p == scc[0] {
					isCycle = true
				}
			}
		}
		if isCycle {
			for _, v := range scc {
				cyclic[v] = true
			}
		}
		order = append(order, scc...)
	}
	return order, cyclic
}

func (g *Graph) precedentsOf(v base.SheetCell) []base.SheetCell {
	n, ok := g.nodes[v]
	if !ok {
		return nil
	}
	out := make([]base.SheetCell, 0, len(n.precedents))
	for p := range n.precedents {
		out = append(out, p)
	}
	return out
}

// tarjan computes strongly connected components restricted to scope,
// following precedent edges. Its output order (finder.sccs) already
// places each SCC after every SCC it depends on, since an SCC is only
// closed off (popped) once the DFS has returned from all of its
// precedent edges.
type tarjan struct {
	graph   *Graph
	index   map[base.SheetCell]int
	low     map[base.SheetCell]int
	onStack map[base.SheetCell]bool
	stack   []base.SheetCell
	counter int
	sccs    [][]base.SheetCell
	scope   map[base.SheetCell]struct{}
}

func (t *tarjan) strongConnect(v base.SheetCell) {
	t.index[v] = t.counter
	t.low[v] = t.counter
	t.counter++
	t.stack = append(t.stack, v)
	t.onStack[v] = true

	for _, w := range t.graph.precedentsOf(v) {
		if _, inScope := t.scope[w]; !inScope {
			continue
		}
		if _, visited := t.index[w]; !visited {
			t.strongConnect(w)
			if t.low[w] < t.low[v] {
				t.low[v] = t.low[w]
			}
		} else if t.onStack[w] {
			if t.index[w] < t.low[v] {
				t.low[v] = t.index[w]
			}
		}
	}

	if t.low[v] == t.index[v] {
		var scc []base.SheetCell
		for {
			n := len(t.stack) - 1
			w := t.stack[n]
			t.stack = t.stack[:n]
			t.onStack[w] = false
			scc = append(scc, w)
			if w == v {
				break
			}
		}
		t.sccs = append(t.sccs, scc)
	}
}
