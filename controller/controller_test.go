package controller

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sheetkernel/engine/base"
	"github.com/sheetkernel/engine/calc"
)

func TestCreateSheetAndSetCellValue(t *testing.T) {
	c := New(NewStatus())

	status, _, err := c.ApplyTransaction(&CreateSheet{Name: "Sheet1"})
	require.NoError(t, err)
	sheet, ok := status.Sheets.Has("Sheet1")
	require.True(t, ok)

	status, _, err = c.ApplyTransaction(&SetCellValue{Sheet: sheet, Row: 0, Col: 0, Value: base.Num(5)})
	require.NoError(t, err)

	cell, err := status.Nav.FetchCellId(sheet, status.Data[sheet], 0, 0)
	require.NoError(t, err)
	got, ok := status.Container.GetCell(sheet, cell)
	require.True(t, ok)
	assert.Equal(t, base.Num(5), got.Value)
}

func TestSetCellFormulaRecalculates(t *testing.T) {
	c := New(NewStatus())
	status, _, err := c.ApplyTransaction(&CreateSheet{Name: "Sheet1"})
	require.NoError(t, err)
	sheet, _ := status.Sheets.Has("Sheet1")

	status, _, err = c.ApplyTransaction(
		&SetCellValue{Sheet: sheet, Row: 0, Col: 0, Value: base.Num(1)},
		&SetCellValue{Sheet: sheet, Row: 1, Col: 0, Value: base.Num(2)},
	)
	require.NoError(t, err)

	status, cyclic, err := c.ApplyTransaction(&SetCellFormula{Sheet: sheet, Row: 2, Col: 0, Text: "=A1+A2"})
	require.NoError(t, err)
	assert.Empty(t, cyclic)

	cell, err := status.Nav.FetchCellId(sheet, status.Data[sheet], 2, 0)
	require.NoError(t, err)
	got, ok := status.Container.GetCell(sheet, cell)
	require.True(t, ok)
	assert.Equal(t, base.Num(3), got.Value)
}

func TestApplyTransactionRefusesWholeTransactionOnError(t *testing.T) {
	c := New(NewStatus())
	_, _, err := c.ApplyTransaction(&CreateSheet{Name: "Sheet1"})
	require.NoError(t, err)

	before := c.Status()
	_, _, err = c.ApplyTransaction(&CreateSheet{Name: "Sheet1"})
	require.Error(t, err)

	appErr, ok := err.(*AppError)
	require.True(t, ok)
	assert.Equal(t, AlreadyExists, appErr.Code)
	assert.Same(t, before, c.Status())
}

func TestRenameSheetPreservesIdentity(t *testing.T) {
	c := New(NewStatus())
	status, _, err := c.ApplyTransaction(&CreateSheet{Name: "Old"})
	require.NoError(t, err)
	oldID, _ := status.Sheets.Has("Old")

	status, _, err = c.ApplyTransaction(&RenameSheet{OldName: "Old", NewName: "New"})
	require.NoError(t, err)

	_, stillThere := status.Sheets.Has("Old")
	assert.False(t, stillThere)
	newID, ok := status.Sheets.Has("New")
	require.True(t, ok)
	assert.Equal(t, oldID, newID)
}

func TestInsertRowBeforeShiftsPositionButNotIdentity(t *testing.T) {
	c := New(NewStatus())
	status, _, err := c.ApplyTransaction(&CreateSheet{Name: "Sheet1"})
	require.NoError(t, err)
	sheet, _ := status.Sheets.Has("Sheet1")

	status, _, err = c.ApplyTransaction(&SetCellValue{Sheet: sheet, Row: 0, Col: 0, Value: base.Num(10)})
	require.NoError(t, err)
	cell, err := status.Nav.FetchCellId(sheet, status.Data[sheet], 0, 0)
	require.NoError(t, err)

	status, _, err = c.ApplyTransaction(&InsertRowBefore{Sheet: sheet, BeforeIdx: 0})
	require.NoError(t, err)

	row, col, err := status.Nav.FetchCellIdx(sheet, status.Data[sheet], cell)
	require.NoError(t, err)
	assert.Equal(t, 1, row)
	assert.Equal(t, 0, col)

	got, ok := status.Container.GetCell(sheet, cell)
	require.True(t, ok)
	assert.Equal(t, base.Num(10), got.Value)
}

func TestAsyncFormulaStaysPendingUntilCompleteAsync(t *testing.T) {
	c := New(NewStatus())
	status, _, err := c.ApplyTransaction(&CreateSheet{Name: "Sheet1"})
	require.NoError(t, err)
	sheet, _ := status.Sheets.Has("Sheet1")

	status, _, err = c.ApplyTransaction(&SetCellFormula{Sheet: sheet, Row: 0, Col: 0, Text: `=WEBSERVICE("http://example.com/rate")`})
	require.NoError(t, err)

	cell, err := status.Nav.FetchCellId(sheet, status.Data[sheet], 0, 0)
	require.NoError(t, err)
	vertex := base.SheetCell{Sheet: sheet, Cell: cell}

	got, ok := status.Container.GetCell(sheet, cell)
	require.True(t, ok)
	assert.True(t, got.Value.IsPending())
	assert.Contains(t, status.Graph.DirtySet(), vertex)
	assert.True(t, status.PendingTasks.Waiting(vertex))

	taskId, ok := status.PendingTasks.TaskIdFor(vertex)
	require.True(t, ok)

	status, _, err = c.CompleteAsync(calc.AsyncCalcResult{Id: taskId, Value: base.Num(42)})
	require.NoError(t, err)

	got, ok = status.Container.GetCell(sheet, cell)
	require.True(t, ok)
	assert.Equal(t, base.Num(42), got.Value)
	assert.NotContains(t, status.Graph.DirtySet(), vertex)
	assert.False(t, status.PendingTasks.Waiting(vertex))
}

func TestCircularReferenceMarksErrCirc(t *testing.T) {
	c := New(NewStatus())
	status, _, err := c.ApplyTransaction(&CreateSheet{Name: "Sheet1"})
	require.NoError(t, err)
	sheet, _ := status.Sheets.Has("Sheet1")

	status, _, err = c.ApplyTransaction(&SetCellFormula{Sheet: sheet, Row: 0, Col: 0, Text: "=B1"})
	require.NoError(t, err)
	status, cyclic, err := c.ApplyTransaction(&SetCellFormula{Sheet: sheet, Row: 0, Col: 1, Text: "=A1"})
	require.NoError(t, err)
	assert.NotEmpty(t, cyclic)

	a1, _ := status.Nav.FetchCellId(sheet, status.Data[sheet], 0, 0)
	got, ok := status.Container.GetCell(sheet, a1)
	require.True(t, ok)
	assert.Equal(t, base.Err(base.ErrCirc), got.Value)
}
