// Package depgraph implements FormulaManager's dependency graph (spec.md
// §4.6): forward (precedent) and reverse (dependent) adjacency over
// (SheetId, CellId) vertices, dirty-set tracking, and cycle detection.
//
// Grounded directly on the teacher's DependencyGraph (graph.go), re-keyed
// from CellAddress (worksheet id + row + col, a position) to
// base.SheetCell (sheet id + CellId, an identity) since spec.md requires
// dependency edges to survive structural edits the same way the cells
// themselves do. Range and named dependencies keep the teacher's
// rangeObservers pattern, generalized to a third edge kind for names.
package depgraph

import (
	"github.com/sheetkernel/engine/base"
	"github.com/sheetkernel/engine/formula"
	"github.com/sheetkernel/engine/ids"
)

// RangeKey identifies a range dependency: the sheet the range lives on,
// plus its two corner CellIds (already identity-resolved by the
// formula parser, so the edge survives row/column insertion exactly
// like a cell-to-cell edge does).
type RangeKey struct {
	Sheet      ids.SheetId
	From, To   base.CellId
}

type vertexNode struct {
	precedents      map[base.SheetCell]struct{}
	dependents      map[base.SheetCell]struct{}
	rangePrecedents map[RangeKey]struct{}
	namePrecedents  map[ids.NameId]struct{}
	ast             formula.Node
	dirty           bool
}

func newVertexNode() *vertexNode {
	return &vertexNode{
		precedents:      make(map[base.SheetCell]struct{}),
		dependents:      make(map[base.SheetCell]struct{}),
		rangePrecedents: make(map[RangeKey]struct{}),
		namePrecedents:  make(map[ids.NameId]struct{}),
	}
}

// Graph is the dependency graph for one workbook. It is mutated
// in place by Controller under a single calculation thread (spec.md
// §5): there is no internal locking.
type Graph struct {
	nodes          map[base.SheetCell]*vertexNode
	rangeObservers map[RangeKey]map[base.SheetCell]struct{}
	nameObservers  map[ids.NameId]map[base.SheetCell]struct{}
	dirtySet       map[base.SheetCell]struct{}
	volatile       map[base.SheetCell]struct{}
}

// New creates an empty Graph.
func New() *Graph {
	return &Graph{
		nodes:          make(map[base.SheetCell]*vertexNode),
		rangeObservers: make(map[RangeKey]map[base.SheetCell]struct{}),
		nameObservers:  make(map[ids.NameId]map[base.SheetCell]struct{}),
		dirtySet:       make(map[base.SheetCell]struct{}),
		volatile:       make(map[base.SheetCell]struct{}),
	}
}

func (g *Graph) getOrCreate(v base.SheetCell) *vertexNode {
	n, ok := g.nodes[v]
	if !ok {
		n = newVertexNode()
		g.nodes[v] = n
	}
	return n
}

// cleanupIfEmpty drops a vertex that carries no formula and no edges,
// removing it from the dirty set as well whether or not it was flagged
// there, mirroring the teacher's cleanupNodeIfEmpty - otherwise
// every cell ever referenced, even in passing, would leak a permanent
// node.
func (g *Graph) cleanupIfEmpty(v base.SheetCell) {
	n, ok := g.nodes[v]
	if !ok {
		return
	}
	if n.ast != nil || len(n.precedents) > 0 || len(n.dependents) > 0 ||
		len(n.rangePrecedents) > 0 || len(n.namePrecedents) > 0 {
		return
	}
	delete(g.nodes, v)
	delete(g.dirtySet, v)
}

// SetFormula registers ast as v's formula, replacing any previous one
// and re-deriving its precedent edges by walking the AST. Callers must
// have already validated ast resolves (formula.Parse returns an error
// otherwise) - SetFormula itself cannot fail.
func (g *Graph) SetFormula(v base.SheetCell, ast formula.Node) {
	g.ClearDependencies(v)
	n := g.getOrCreate(v)
	n.ast = ast

	collector := &edgeCollector{}
	formula.Walk(ast, collector)

	for _, ref := range collector.cells {
		g.AddCellDependency(v, ref)
	}
	for _, rng := range collector.ranges {
		g.AddRangeDependency(v, rng)
	}
	for _, name := range collector.names {
		g.AddNameDependency(v, name)
	}
}

// GetFormula returns the AST registered for v, if any.
func (g *Graph) GetFormula(v base.SheetCell) (formula.Node, bool) {
	n, ok := g.nodes[v]
	if !ok || n.ast == nil {
		return nil, false
	}
	return n.ast, true
}

// RemoveFormula clears v's formula and its derived edges, dropping the
// vertex entirely if nothing else references it.
func (g *Graph) RemoveFormula(v base.SheetCell) {
	g.ClearDependencies(v)
	if n, ok := g.nodes[v]; ok {
		n.ast = nil
	}
	g.cleanupIfEmpty(v)
}

// AddCellDependency records that from depends on to.
func (g *Graph) AddCellDependency(from, to base.SheetCell) {
	fromNode := g.getOrCreate(from)
	toNode := g.getOrCreate(to)
	fromNode.precedents[to] = struct{}{}
	toNode.dependents[from] = struct{}{}
}

// RemoveCellDependency removes a cell-to-cell edge, cleaning up either
// endpoint if it becomes empty.
func (g *Graph) RemoveCellDependency(from, to base.SheetCell) {
	if fromNode, ok := g.nodes[from]; ok {
		delete(fromNode.precedents, to)
	}
	if toNode, ok := g.nodes[to]; ok {
		delete(toNode.dependents, from)
	}
	g.cleanupIfEmpty(from)
	g.cleanupIfEmpty(to)
}

// AddRangeDependency records that from depends on every cell in rng.
func (g *Graph) AddRangeDependency(from base.SheetCell, rng RangeKey) {
	n := g.getOrCreate(from)
	n.rangePrecedents[rng] = struct{}{}
	if g.rangeObservers[rng] == nil {
		g.rangeObservers[rng] = make(map[base.SheetCell]struct{})
	}
	g.rangeObservers[rng][from] = struct{}{}
}

func (g *Graph) removeRangeDependency(from base.SheetCell, rng RangeKey) {
	if n, ok := g.nodes[from]; ok {
		delete(n.rangePrecedents, rng)
	}
	if observers, ok := g.rangeObservers[rng]; ok {
		delete(observers, from)
		if len(observers) == 0 {
			delete(g.rangeObservers, rng)
		}
	}
	g.cleanupIfEmpty(from)
}

// AddNameDependency records that from depends on the defined name
// name - used for named ranges and named formulas alike (spec.md's
// NameId domain covers both).
func (g *Graph) AddNameDependency(from base.SheetCell, name ids.NameId) {
	n := g.getOrCreate(from)
	n.namePrecedents[name] = struct{}{}
	if g.nameObservers[name] == nil {
		g.nameObservers[name] = make(map[base.SheetCell]struct{})
	}
	g.nameObservers[name][from] = struct{}{}
}

func (g *Graph) removeNameDependency(from base.SheetCell, name ids.NameId) {
	if n, ok := g.nodes[from]; ok {
		delete(n.namePrecedents, name)
	}
	if observers, ok := g.nameObservers[name]; ok {
		delete(observers, from)
		if len(observers) == 0 {
			delete(g.nameObservers, name)
		}
	}
	g.cleanupIfEmpty(from)
}

// ClearDependencies removes every outgoing edge from v, leaving v's
// own formula (if set) and incoming edges untouched.
func (g *Graph) ClearDependencies(v base.SheetCell) {
	n, ok := g.nodes[v]
	if !ok {
		return
	}
	for to := range n.precedents {
		g.RemoveCellDependency(v, to)
	}
	for rng := range n.rangePrecedents {
		g.removeRangeDependency(v, rng)
	}
	for name := range n.namePrecedents {
		g.removeNameDependency(v, name)
	}
}

// MarkDirty flags v for recalculation.
func (g *Graph) MarkDirty(v base.SheetCell) {
	g.dirtySet[v] = struct{}{}
	if n, ok := g.nodes[v]; ok {
		n.dirty = true
	}
}

// ClearDirty unflags v.
func (g *Graph) ClearDirty(v base.SheetCell) {
	delete(g.dirtySet, v)
	if n, ok := g.nodes[v]; ok {
		n.dirty = false
	}
}

// MarkRangeDirty marks every cell observing rng as dirty. The payloads
// in controller do not call it; they collect range observers through
// AffectedCells instead.
func (g *Graph) MarkRangeDirty(rng RangeKey) {
	for observer := range g.rangeObservers[rng] {
		g.MarkDirty(observer)
	}
}

// MarkNameDirty marks every cell observing name as dirty.
func (g *Graph) MarkNameDirty(name ids.NameId) {
	for observer := range g.nameObservers[name] {
		g.MarkDirty(observer)
	}
}

// DirtySet returns the current set of dirty vertices, unordered.
func (g *Graph) DirtySet() []base.SheetCell {
	out := make([]base.SheetCell, 0, len(g.dirtySet))
	for v := range g.dirtySet {
		out = append(out, v)
	}
	return out
}

// VerticesInSheet returns every vertex currently tracked for sheet,
// formula-bearing or not. Controller uses this for structural edits
// (row/column insert/delete) where the set of affected formulas can't be
// derived from a single changed cell the way a value write's
// AffectedCells call can - a row insert can shift the input to any
// formula that references the sheet at all.
func (g *Graph) VerticesInSheet(sheet ids.SheetId) []base.SheetCell {
	out := make([]base.SheetCell, 0)
	for v := range g.nodes {
		if v.Sheet == sheet {
			out = append(out, v)
		}
	}
	return out
}

// MarkVolatile flags v as containing a volatile function (spec.md
// §4.7): it must be recalculated on every full pass regardless of its
// dirty flag.
func (g *Graph) MarkVolatile(v base.SheetCell) { g.volatile[v] = struct{}{} }

// UnmarkVolatile clears the volatile flag.
func (g *Graph) UnmarkVolatile(v base.SheetCell) { delete(g.volatile, v) }

// IsVolatile reports whether v is flagged volatile.
func (g *Graph) IsVolatile(v base.SheetCell) bool {
	_, ok := g.volatile[v]
	return ok
}

// VolatileCells returns every vertex flagged volatile.
func (g *Graph) VolatileCells() []base.SheetCell {
	out := make([]base.SheetCell, 0, len(g.volatile))
	for v := range g.volatile {
		out = append(out, v)
	}
	return out
}

// DirectDependents returns the cells directly depending on v.
func (g *Graph) DirectDependents(v base.SheetCell) []base.SheetCell {
	n, ok := g.nodes[v]
	if !ok {
		return nil
	}
	out := make([]base.SheetCell, 0, len(n.dependents))
	for d := range n.dependents {
		out = append(out, d)
	}
	return out
}

// AffectedCells returns every vertex that must recalculate when v
// changes: v's transitive dependents, plus any cell observing a range
// that covers v (per rangeContains) and that cell's transitive
// dependents. Observers of defined names are not included.
func (g *Graph) AffectedCells(v base.SheetCell, rangeContains func(RangeKey, base.SheetCell) bool) []base.SheetCell {
	affected := make(map[base.SheetCell]struct{})
	g.collectDependents(v, affected)

	for rng, observers := range g.rangeObservers {
		if rangeContains != nil && rangeContains(rng, v) {
			for observer := range observers {
				affected[observer] = struct{}{}
				g.collectDependents(observer, affected)
			}
		}
	}

	out := make([]base.SheetCell, 0, len(affected))
	for a := range affected {
		out = append(out, a)
	}
	return out
}

func (g *Graph) collectDependents(v base.SheetCell, visited map[base.SheetCell]struct{}) {
	n, ok := g.nodes[v]
	if !ok {
		return
	}
	for dependent := range n.dependents {
		if _, seen := visited[dependent]; seen {
			continue
		}
		visited[dependent] = struct{}{}
		g.collectDependents(dependent, visited)
	}
}

// edgeCollector implements formula.Visitor, gathering the precedent
// edges a single AST induces so SetFormula can register them in one
// pass.
type edgeCollector struct {
	cells  []base.SheetCell
	ranges []RangeKey
	names  []ids.NameId
}

func (c *edgeCollector) VisitCellRef(n *formula.CellRefNode) {
	c.cells = append(c.cells, base.SheetCell{Sheet: n.Sheet, Cell: n.Cell})
}

func (c *edgeCollector) VisitRange(n *formula.RangeNode) {
	c.ranges = append(c.ranges, RangeKey{Sheet: n.Sheet, From: n.From, To: n.To})
}

func (c *edgeCollector) VisitNameRef(n *formula.NameRefNode) {
	c.names = append(c.names, n.Name)
}
