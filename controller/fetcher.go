package controller

import (
	"github.com/sheetkernel/engine/base"
	"github.com/sheetkernel/engine/ids"
)

// Fetcher implements formula.IdFetcher and formula.NameFetcher over a
// Status, so any caller holding a Status — SetCellFormula internally, or
// xlsxio/workbook loading and unparsing formulas against a freshly
// loaded one — can hand formula.Parse/formula.Unparse the concrete
// production wiring the formula package describes but never owns
// itself.
type Fetcher struct {
	status *Status
}

// NewFetcher builds a Fetcher bound to s.
func NewFetcher(s *Status) *Fetcher { return &Fetcher{status: s} }

func (f *Fetcher) SheetIdByName(name string) (ids.SheetId, bool) {
	return f.status.Sheets.Has(name)
}

func (f *Fetcher) CellIdAt(sheet ids.SheetId, row, col int) (base.CellId, error) {
	d := f.status.dataFor(sheet)
	return f.status.Nav.FetchCellId(sheet, d, row, col)
}

func (f *Fetcher) NameIdFor(book ids.ExtBookId, name string) (ids.NameId, bool) {
	return f.status.Names.Has(book, name)
}

func (f *Fetcher) FuncIdFor(name string) ids.FuncId {
	return f.status.Funcs.GetFuncId(name)
}

func (f *Fetcher) SheetName(sheet ids.SheetId) (string, bool) {
	return f.status.Sheets.GetKey(sheet)
}

func (f *Fetcher) CellIndexOf(sheet ids.SheetId, cell base.CellId) (int, int, error) {
	d := f.status.dataFor(sheet)
	return f.status.Nav.FetchCellIdx(sheet, d, cell)
}

func (f *Fetcher) NameTextFor(name ids.NameId) (string, bool) {
	_, text, ok := f.status.Names.GetString(name)
	return text, ok
}

func (f *Fetcher) FuncNameFor(fn ids.FuncId) (string, bool) {
	return f.status.Funcs.GetKey(fn)
}
