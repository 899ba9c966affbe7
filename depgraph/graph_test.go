package depgraph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sheetkernel/engine/base"
	"github.com/sheetkernel/engine/formula"
	"github.com/sheetkernel/engine/ids"
)

func cell(row, col ids.Id) base.CellId {
	return base.NewNormalCellId(row, col)
}

func sc(sheet ids.SheetId, row, col ids.Id) base.SheetCell {
	return base.SheetCell{Sheet: sheet, Cell: cell(row, col)}
}

func refNode(sheet ids.SheetId, row, col ids.Id) formula.Node {
	return &formula.CellRefNode{Sheet: sheet, Cell: cell(row, col)}
}

func TestSetFormulaRegistersCellDependency(t *testing.T) {
	g := New()
	a1, b1 := sc(0, 0, 0), sc(0, 0, 1)

	g.SetFormula(a1, refNode(0, 0, 1))

	assert.ElementsMatch(t, []base.SheetCell{a1}, g.DirectDependents(b1))
}

func TestRemoveFormulaClearsEdgesAndVertex(t *testing.T) {
	g := New()
	a1, b1 := sc(0, 0, 0), sc(0, 0, 1)
	g.SetFormula(a1, refNode(0, 0, 1))

	g.RemoveFormula(a1)

	_, ok := g.GetFormula(a1)
	assert.False(t, ok)
	assert.Empty(t, g.DirectDependents(b1))
}

func TestCalculationOrderPlacesPrecedentsFirst(t *testing.T) {
	g := New()
	a1, b1, c1 := sc(0, 0, 0), sc(0, 0, 1), sc(0, 0, 2)

	// C1 = B1, B1 = A1
	g.SetFormula(b1, refNode(0, 0, 0))
	g.SetFormula(c1, refNode(0, 0, 1))

	order, cyclic := g.CalculationOrder([]base.SheetCell{c1})
	require.Empty(t, cyclic)

	posA, posB, posC := indexOf(order, a1), indexOf(order, b1), indexOf(order, c1)
	require.True(t, posA >= 0 && posB >= 0 && posC >= 0)
	assert.Less(t, posA, posB)
	assert.Less(t, posB, posC)
}

func TestCalculationOrderDetectsSelfLoop(t *testing.T) {
	g := New()
	a1 := sc(0, 0, 0)
	g.SetFormula(a1, refNode(0, 0, 0))

	_, cyclic := g.CalculationOrder([]base.SheetCell{a1})
	assert.True(t, cyclic[a1])
}

func TestCalculationOrderDetectsMutualCycle(t *testing.T) {
	g := New()
	a1, b1 := sc(0, 0, 0), sc(0, 0, 1)
	g.SetFormula(a1, refNode(0, 0, 1))
	g.SetFormula(b1, refNode(0, 0, 0))

	_, cyclic := g.CalculationOrder([]base.SheetCell{a1})
	assert.True(t, cyclic[a1])
	assert.True(t, cyclic[b1])
}

func TestRangeDependencyMarksObserversDirty(t *testing.T) {
	g := New()
	sum := sc(0, 1, 0)
	rng := RangeKey{Sheet: 0, From: cell(0, 0), To: cell(5, 0)}
	g.AddRangeDependency(sum, rng)

	g.MarkRangeDirty(rng)

	dirty := g.DirtySet()
	assert.Contains(t, dirty, sum)
}

func TestVolatileCellsAreTracked(t *testing.T) {
	g := New()
	a1 := sc(0, 0, 0)
	g.SetFormula(a1, refNode(0, 0, 0))
	g.MarkVolatile(a1)

	assert.True(t, g.IsVolatile(a1))
	assert.Contains(t, g.VolatileCells(), a1)

	g.UnmarkVolatile(a1)
	assert.False(t, g.IsVolatile(a1))
}

func indexOf(s []base.SheetCell, v base.SheetCell) int {
	for i, e := range s {
		if e == v {
			return i
		}
	}
	return -1
}
