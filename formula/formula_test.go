package formula

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sheetkernel/engine/base"
	"github.com/sheetkernel/engine/ids"
	"github.com/sheetkernel/engine/navigator"
)

// fixture wires the identity layer + navigator into IdFetcher/NameFetcher
// so formula's tests exercise the exact resolution path Controller will
// use, without depending on the (not yet built) controller package.
type fixture struct {
	sheets ids.SheetIdManager
	names  ids.NameIdManager
	funcs  ids.FuncIdManager
	nav    *navigator.Navigator
	data   map[ids.SheetId]*navigator.Data
}

func newFixture() *fixture {
	return &fixture{
		sheets: ids.NewSheetIdManager(),
		names:  ids.NewNameIdManager(),
		funcs:  ids.NewFuncIdManager(),
		nav:    navigator.New(),
		data:   make(map[ids.SheetId]*navigator.Data),
	}
}

func (f *fixture) addSheet(name string, rows, cols int) ids.SheetId {
	sheet := f.sheets.GetId(name)
	d := navigator.NewData()
	for i := 0; i < rows; i++ {
		d.Rows = append(d.Rows, ids.RowId(i))
	}
	for i := 0; i < cols; i++ {
		d.Cols = append(d.Cols, ids.ColId(i))
	}
	f.data[sheet] = d
	return sheet
}

func (f *fixture) SheetIdByName(name string) (ids.SheetId, bool) {
	return f.sheets.Has(name)
}

func (f *fixture) CellIdAt(sheet ids.SheetId, row, col int) (base.CellId, error) {
	d, ok := f.data[sheet]
	if !ok {
		return base.CellId{}, fmt.Errorf("unknown sheet %d", sheet)
	}
	return f.nav.FetchCellId(sheet, d, row, col)
}

func (f *fixture) NameIdFor(book ids.ExtBookId, name string) (ids.NameId, bool) {
	return f.names.Has(book, name)
}

func (f *fixture) FuncIdFor(name string) ids.FuncId {
	return f.funcs.GetFuncId(name)
}

func (f *fixture) SheetName(sheet ids.SheetId) (string, bool) {
	return f.sheets.GetKey(sheet)
}

func (f *fixture) CellIndexOf(sheet ids.SheetId, cell base.CellId) (int, int, error) {
	d, ok := f.data[sheet]
	if !ok {
		return 0, 0, fmt.Errorf("unknown sheet %d", sheet)
	}
	return f.nav.FetchCellIdx(sheet, d, cell)
}

func (f *fixture) NameTextFor(name ids.NameId) (string, bool) {
	_, text, ok := f.names.GetString(name)
	return text, ok
}

func (f *fixture) FuncNameFor(fn ids.FuncId) (string, bool) {
	return f.funcs.GetKey(fn)
}

func TestParseSimpleArithmeticRoundTrips(t *testing.T) {
	f := newFixture()
	sheet := f.addSheet("Sheet1", 10, 10)

	node, err := Parse("=A1+A2", sheet, 0, f)
	require.NoError(t, err)

	bin, ok := node.(*BinaryOpNode)
	require.True(t, ok)
	assert.Equal(t, OpAdd, bin.Op)

	out, err := Unparse(node, sheet, f)
	require.NoError(t, err)
	assert.Equal(t, "=A1+A2", out)
}

func TestParsePreservesOperatorPrecedenceOnRoundTrip(t *testing.T) {
	f := newFixture()
	sheet := f.addSheet("Sheet1", 10, 10)

	node, err := Parse("=(A1+A2)*3", sheet, 0, f)
	require.NoError(t, err)

	out, err := Unparse(node, sheet, f)
	require.NoError(t, err)

	// re-parsing the unparsed text must produce an equivalent tree,
	// not necessarily the identical parenthesization.
	reparsed, err := Parse(out, sheet, 0, f)
	require.NoError(t, err)
	assert.Equal(t, node, reparsed)
}

func TestFunctionCallCaseIsFolded(t *testing.T) {
	f := newFixture()
	sheet := f.addSheet("Sheet1", 10, 10)

	node, err := Parse("=sum(A1:A3)", sheet, 0, f)
	require.NoError(t, err)

	call, ok := node.(*FunctionCallNode)
	require.True(t, ok)

	name, ok := f.FuncNameFor(call.Func)
	require.True(t, ok)
	assert.Equal(t, "SUM", name)

	out, err := Unparse(node, sheet, f)
	require.NoError(t, err)
	assert.Equal(t, "=SUM(A1:A3)", out)
}

func TestCrossSheetReferenceGetsPrefixOnlyWhenRendered(t *testing.T) {
	f := newFixture()
	sheet1 := f.addSheet("Sheet1", 10, 10)
	sheet2 := f.addSheet("Sheet2", 10, 10)

	node, err := Parse("=Sheet2!A1", sheet1, 0, f)
	require.NoError(t, err)

	ref, ok := node.(*CellRefNode)
	require.True(t, ok)
	assert.Equal(t, sheet2, ref.Sheet)

	out, err := Unparse(node, sheet1, f)
	require.NoError(t, err)
	assert.Equal(t, "=Sheet2!A1", out)

	// rendered back into the sheet the reference actually points at, the
	// prefix is no longer necessary.
	out2, err := Unparse(node, sheet2, f)
	require.NoError(t, err)
	assert.Equal(t, "=A1", out2)
}

func TestSheetRenameIsReflectedOnUnparse(t *testing.T) {
	f := newFixture()
	sheet1 := f.addSheet("Sheet1", 10, 10)
	sheet2 := f.addSheet("Sheet2", 10, 10)

	node, err := Parse("=Sheet2!A1", sheet1, 0, f)
	require.NoError(t, err)

	f.sheets.Rename(sheet2, "Renamed")

	out, err := Unparse(node, sheet1, f)
	require.NoError(t, err)
	assert.Equal(t, "=Renamed!A1", out)
}

func TestWalkVisitsEveryCellReference(t *testing.T) {
	f := newFixture()
	sheet := f.addSheet("Sheet1", 10, 10)

	node, err := Parse("=SUM(A1:A3)+B1", sheet, 0, f)
	require.NoError(t, err)

	var ranges, cells int
	visitor := visitorFunc{
		onRange: func(*RangeNode) { ranges++ },
		onCell:  func(*CellRefNode) { cells++ },
	}
	Walk(node, visitor)

	assert.Equal(t, 1, ranges)
	assert.Equal(t, 1, cells)
}

type visitorFunc struct {
	onCell  func(*CellRefNode)
	onRange func(*RangeNode)
	onName  func(*NameRefNode)
}

func (v visitorFunc) VisitCellRef(n *CellRefNode) {
	if v.onCell != nil {
		v.onCell(n)
	}
}
func (v visitorFunc) VisitRange(n *RangeNode) {
	if v.onRange != nil {
		v.onRange(n)
	}
}
func (v visitorFunc) VisitNameRef(n *NameRefNode) {
	if v.onName != nil {
		v.onName(n)
	}
}

func TestUnbalancedParensIsSyntaxError(t *testing.T) {
	f := newFixture()
	sheet := f.addSheet("Sheet1", 10, 10)

	_, err := Parse("=(A1+A2", sheet, 0, f)
	require.Error(t, err)
	var syn *SyntaxError
	assert.ErrorAs(t, err, &syn)
}

func TestUnknownSheetReferenceIsSyntaxError(t *testing.T) {
	f := newFixture()
	sheet := f.addSheet("Sheet1", 10, 10)

	_, err := Parse("=Ghost!A1", sheet, 0, f)
	require.Error(t, err)
}
