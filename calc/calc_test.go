package calc

import (
	"fmt"

	"github.com/sheetkernel/engine/base"
	"github.com/sheetkernel/engine/container"
	"github.com/sheetkernel/engine/ids"
	"github.com/sheetkernel/engine/navigator"
)

// rig wires every manager CalcEngine's tests need, the same way
// Controller will in production: identity layer + Navigator feeding
// formula.IdFetcher/NameFetcher, a ContainerSource feeding calc.Evaluator.
type rig struct {
	sheets ids.SheetIdManager
	names  ids.NameIdManager
	funcs  ids.FuncIdManager
	texts  ids.TextIdManager
	nav    *navigator.Navigator
	data   map[ids.SheetId]*navigator.Data
	cont   *container.Container
}

func newRig() *rig {
	return &rig{
		sheets: ids.NewSheetIdManager(),
		names:  ids.NewNameIdManager(),
		funcs:  ids.NewFuncIdManager(),
		texts:  ids.NewTextIdManager(),
		nav:    navigator.New(),
		data:   make(map[ids.SheetId]*navigator.Data),
		cont:   container.New(),
	}
}

func (r *rig) addSheet(name string, rows, cols int) ids.SheetId {
	sheet := r.sheets.GetId(name)
	d := navigator.NewData()
	for i := 0; i < rows; i++ {
		d.Rows = append(d.Rows, ids.RowId(i))
	}
	for i := 0; i < cols; i++ {
		d.Cols = append(d.Cols, ids.ColId(i))
	}
	r.data[sheet] = d
	return sheet
}

func (r *rig) setNumber(sheet ids.SheetId, row, col int, v float64) base.SheetCell {
	cell, err := r.nav.FetchCellId(sheet, r.data[sheet], row, col)
	if err != nil {
		panic(err)
	}
	r.cont = r.cont.WithCell(sheet, cell, container.Cell{Value: base.Num(v)})
	return base.SheetCell{Sheet: sheet, Cell: cell}
}

func (r *rig) SheetIdByName(name string) (ids.SheetId, bool) { return r.sheets.Has(name) }

func (r *rig) CellIdAt(sheet ids.SheetId, row, col int) (base.CellId, error) {
	d, ok := r.data[sheet]
	if !ok {
		return base.CellId{}, fmt.Errorf("unknown sheet %d", sheet)
	}
	return r.nav.FetchCellId(sheet, d, row, col)
}

func (r *rig) NameIdFor(book ids.ExtBookId, name string) (ids.NameId, bool) {
	return r.names.Has(book, name)
}

func (r *rig) FuncIdFor(name string) ids.FuncId { return r.funcs.GetFuncId(name) }

func (r *rig) SheetName(sheet ids.SheetId) (string, bool) { return r.sheets.GetKey(sheet) }

func (r *rig) CellIndexOf(sheet ids.SheetId, cell base.CellId) (int, int, error) {
	d, ok := r.data[sheet]
	if !ok {
		return 0, 0, fmt.Errorf("unknown sheet %d", sheet)
	}
	return r.nav.FetchCellIdx(sheet, d, cell)
}

func (r *rig) NameTextFor(name ids.NameId) (string, bool) {
	_, text, ok := r.names.GetString(name)
	return text, ok
}

func (r *rig) FuncNameFor(fn ids.FuncId) (string, bool) { return r.funcs.GetKey(fn) }

func (r *rig) source() *ContainerSource {
	return NewContainerSource(r.nav, r.data, r.cont)
}
