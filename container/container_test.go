package container

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sheetkernel/engine/base"
	"github.com/sheetkernel/engine/ids"
)

func cellAt(row, col ids.Id) base.CellId {
	return base.NewNormalCellId(row, col)
}

func TestAbsentCellIsBlank(t *testing.T) {
	c := New()
	cell := c.CellOrBlank(0, cellAt(0, 0))
	assert.True(t, cell.Value.IsBlank())
}

func TestWithCellDoesNotMutateReceiver(t *testing.T) {
	c := New()
	updated := c.WithCell(0, cellAt(1, 1), Cell{Value: base.Num(42)})

	_, onOriginal := c.GetCell(0, cellAt(1, 1))
	assert.False(t, onOriginal, "original container must be unaffected")

	got, ok := updated.GetCell(0, cellAt(1, 1))
	require.True(t, ok)
	assert.Equal(t, base.Num(42), got.Value)
}

func TestWithCellSharesOtherSheets(t *testing.T) {
	c := New().WithCell(0, cellAt(0, 0), Cell{Value: base.Num(1)})
	updated := c.WithCell(1, cellAt(0, 0), Cell{Value: base.Num(2)})

	v0, ok := updated.GetCell(0, cellAt(0, 0))
	require.True(t, ok)
	assert.Equal(t, base.Num(1), v0.Value)
}

func TestWithoutCellRemoves(t *testing.T) {
	c := New().WithCell(0, cellAt(0, 0), Cell{Value: base.Num(1)})
	c2 := c.WithoutCell(0, cellAt(0, 0))

	_, ok := c2.GetCell(0, cellAt(0, 0))
	assert.False(t, ok)

	_, stillOnOriginal := c.GetCell(0, cellAt(0, 0))
	assert.True(t, stillOnOriginal)
}

func TestRowAndColInfoRoundtrip(t *testing.T) {
	c := New()
	c2 := c.WithRowInfo(0, ids.RowId(3), RowInfo{StyleId: 7, Height: 20})
	c3 := c2.WithColInfo(0, ids.ColId(2), ColInfo{StyleId: 9, Width: 15})

	row, ok := c3.GetRowInfo(0, ids.RowId(3))
	require.True(t, ok)
	assert.Equal(t, uint32(7), row.StyleId)

	col, ok := c3.GetColInfo(0, ids.ColId(2))
	require.True(t, ok)
	assert.Equal(t, 15.0, col.Width)
}
