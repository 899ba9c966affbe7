package workbook

import (
	"fmt"

	"github.com/sheetkernel/engine/base"
	"github.com/sheetkernel/engine/controller"
	"github.com/sheetkernel/engine/formula"
	"github.com/sheetkernel/engine/ids"
	"github.com/sheetkernel/engine/xlsxio"
)

// ErrNotFound is returned for any absent sheet, matching spec.md §6's
// NotFound error kind.
var ErrNotFound = fmt.Errorf("workbook: not found")

// Workbook wraps a Controller with the narrow public surface spec.md §6
// describes, hiding Status/Payload from callers who only want to read or
// mutate a handful of cells.
type Workbook struct {
	c *controller.Controller
}

// FromFile parses an XLSX package into a Workbook. SerdeErr-shaped
// failures (malformed ZIP/XML) come back as a plain error, per spec.md
// §7 item 1: "fatal for the load operation, no partial workbook is
// returned."
func FromFile(buf []byte, name string) (*Workbook, error) {
	status, err := xlsxio.Load(buf)
	if err != nil {
		return nil, err
	}
	return &Workbook{c: controller.New(status)}, nil
}

// New wraps an already-built Controller, e.g. one built over an empty
// Status rather than loaded from a file.
func New(c *controller.Controller) *Workbook { return &Workbook{c: c} }

// Controller exposes the underlying Controller for callers that need to
// apply payloads — the façade itself is read-mostly.
func (w *Workbook) Controller() *controller.Controller { return w.c }

// SheetId returns the identity-layer id behind ws, for callers (like
// cmd/sheetctl) that need to build a controller.Payload directly rather
// than going through the façade's read-only methods.
func (ws *Worksheet) SheetId() ids.SheetId { return ws.sheet }

// GetSheetByName resolves name to a Worksheet.
func (w *Workbook) GetSheetByName(name string) (*Worksheet, error) {
	sheet, ok := w.c.Status().Sheets.Has(name)
	if !ok {
		return nil, ErrNotFound
	}
	return &Worksheet{sheet: sheet, w: w}, nil
}

// GetSheetByIdx resolves idx (display order) to a Worksheet.
func (w *Workbook) GetSheetByIdx(idx int) (*Worksheet, error) {
	sheet, ok := w.c.Status().Positions.GetSheetAt(idx)
	if !ok {
		return nil, ErrNotFound
	}
	return &Worksheet{sheet: sheet, w: w}, nil
}

// LexSuccess validates formula syntax in isolation, per spec.md §6.
func LexSuccess(text string) bool { return formula.LexSuccess(text) }

// Worksheet is a read view onto one sheet of a Workbook.
type Worksheet struct {
	sheet ids.SheetId
	w     *Workbook
}

// GetValue returns the computed value at (row, col).
func (ws *Worksheet) GetValue(row, col int) (Value, error) {
	status := ws.w.c.Status()
	d := status.Data[ws.sheet]
	if d == nil {
		return Value{}, ErrNotFound
	}
	cellID, err := status.Nav.FetchCellId(ws.sheet, d, row, col)
	if err != nil {
		return Value{}, ErrNotFound
	}
	cell, ok := status.Container.GetCell(ws.sheet, cellID)
	if !ok {
		return Value{Kind: Empty}, nil
	}
	return valueFromCell(cell.Value, func(cv base.CellValue) string {
		text, _ := status.Texts.GetKey(cv.Text)
		return text
	}), nil
}

// GetFormula unparses the AST registered for (row, col), or "" if the
// cell holds no formula.
func (ws *Worksheet) GetFormula(row, col int) (string, error) {
	status := ws.w.c.Status()
	d := status.Data[ws.sheet]
	if d == nil {
		return "", ErrNotFound
	}
	cellID, err := status.Nav.FetchCellId(ws.sheet, d, row, col)
	if err != nil {
		return "", ErrNotFound
	}
	ast, ok := status.Graph.GetFormula(base.SheetCell{Sheet: ws.sheet, Cell: cellID})
	if !ok {
		return "", nil
	}
	return formula.Unparse(ast, ws.sheet, controller.NewFetcher(status))
}

// GetStyle returns the raw style id attached to (row, col), falling back
// to the owning row's then column's style id. Style/font resolution
// beyond this id is out of scope (SPEC_FULL.md §2): callers that need a
// rendered Style pass this id to their own style/font manager.
func (ws *Worksheet) GetStyle(row, col int) (uint32, error) {
	status := ws.w.c.Status()
	d := status.Data[ws.sheet]
	if d == nil {
		return 0, ErrNotFound
	}
	cellID, err := status.Nav.FetchCellId(ws.sheet, d, row, col)
	if err != nil {
		return 0, ErrNotFound
	}
	if cell, ok := status.Container.GetCell(ws.sheet, cellID); ok && cell.StyleId != 0 {
		return cell.StyleId, nil
	}
	if rowID, err := status.Nav.FetchRowId(ws.sheet, d, row); err == nil {
		if info, ok := status.Container.GetRowInfo(ws.sheet, rowID); ok {
			return info.StyleId, nil
		}
	}
	if colID, err := status.Nav.FetchColId(ws.sheet, d, col); err == nil {
		if info, ok := status.Container.GetColInfo(ws.sheet, colID); ok {
			return info.StyleId, nil
		}
	}
	return 0, nil
}

// MergeCell describes one merged range. Cell attachments are a Non-goal
// (SPEC_FULL.md §2): GetMergeCells/GetComments always return an empty
// slice, present only so callers coded against spec.md §6's interface
// compile against a real adapter rather than nothing at all.
type MergeCell struct {
	StartRow, StartCol int
	EndRow, EndCol     int
}

// GetMergeCells returns every merged range on the sheet. Always empty —
// see MergeCell's doc comment.
func (ws *Worksheet) GetMergeCells() []MergeCell { return nil }

// Comment is a cell-attached comment.
type Comment struct {
	Row, Col int
	Author   string
	Text     string
}

// GetComments returns every comment on the sheet. Always empty — see
// MergeCell's doc comment.
func (ws *Worksheet) GetComments() []Comment { return nil }

// GetSheetDimension returns the sheet's current row/col extent.
func (ws *Worksheet) GetSheetDimension() (rows, cols int) {
	status := ws.w.c.Status()
	d := status.Data[ws.sheet]
	if d == nil {
		return 0, 0
	}
	return len(d.Rows), len(d.Cols)
}
