// Package container implements DataContainer (spec.md §4.4): per-sheet
// storage of cell value/style, keyed by identity (CellId) rather than
// position, plus per-row and per-column style/metadata.
//
// Grounded on the teacher's Worksheet/Chunk (worksheet.go) structure,
// adapted from a position-keyed sparse array of chunks to an
// identity-keyed map, since spec.md requires references to survive
// structural edits — a chunked position index would have to be
// re-bucketed on every insert/delete, defeating the point of the identity
// layer. Updates are structural: every Set/Remove returns a new
// Container, never mutating the receiver, so a Status snapshot handed to
// a reader stays valid even after later edits (spec.md §4.8, §9 "Status
// is structurally shared across versions").
package container

import (
	"github.com/sheetkernel/engine/base"
	"github.com/sheetkernel/engine/ids"
)

// Cell is the stored representation of one cell: its value, its style
// pointer, and whether a formula AST is registered for it in
// FormulaManager. The AST itself is not duplicated here — spec.md §4.6
// keeps formulas.ast, %(sheet,cell)->AST, as the single source of truth;
// HasFormula lets callers avoid a FormulaManager lookup for the common
// case of a plain value cell.
type Cell struct {
	Value      base.CellValue
	StyleId    uint32
	HasFormula bool
}

// RowInfo carries per-row style and height, per spec.md §4.4.
type RowInfo struct {
	StyleId uint32
	Height  float64
}

// ColInfo carries per-column style and width, per spec.md §4.4.
type ColInfo struct {
	StyleId uint32
	Width   float64
}

// sheetData is the per-sheet payload. All three maps are copy-on-write at
// the map granularity: a Set/Remove clones the one map it touches and
// leaves the others shared with the previous version.
type sheetData struct {
	cells map[base.CellId]Cell
	rows  map[ids.RowId]RowInfo
	cols  map[ids.ColId]ColInfo
}

func newSheetData() *sheetData {
	return &sheetData{
		cells: make(map[base.CellId]Cell),
		rows:  make(map[ids.RowId]RowInfo),
		cols:  make(map[ids.ColId]ColInfo),
	}
}

func (s *sheetData) cloneCells() *sheetData {
	c := &sheetData{
		cells: make(map[base.CellId]Cell, len(s.cells)+1),
		rows:  s.rows,
		cols:  s.cols,
	}
	for k, v := range s.cells {
		c.cells[k] = v
	}
	return c
}

func (s *sheetData) cloneRows() *sheetData {
	c := &sheetData{
		cells: s.cells,
		rows:  make(map[ids.RowId]RowInfo, len(s.rows)+1),
		cols:  s.cols,
	}
	for k, v := range s.rows {
		c.rows[k] = v
	}
	return c
}

func (s *sheetData) cloneCols() *sheetData {
	c := &sheetData{
		cells: s.cells,
		rows:  s.rows,
		cols:  make(map[ids.ColId]ColInfo, len(s.cols)+1),
	}
	for k, v := range s.cols {
		c.cols[k] = v
	}
	return c
}

// Container is the immutable, value-typed DataContainer. The zero value
// is ready to use.
type Container struct {
	sheets map[ids.SheetId]*sheetData
}

// New creates an empty Container.
func New() *Container {
	return &Container{sheets: make(map[ids.SheetId]*sheetData)}
}

func (c *Container) sheet(sheet ids.SheetId) *sheetData {
	d, ok := c.sheets[sheet]
	if !ok {
		return newSheetData()
	}
	return d
}

func (c *Container) withSheet(sheet ids.SheetId, d *sheetData) *Container {
	next := &Container{sheets: make(map[ids.SheetId]*sheetData, len(c.sheets)+1)}
	for k, v := range c.sheets {
		next.sheets[k] = v
	}
	next.sheets[sheet] = d
	return next
}

// GetCell looks up a cell. An absent cell is semantically Blank with
// default style (spec.md §4.4), so callers that only need the value
// should prefer CellOrBlank.
func (c *Container) GetCell(sheet ids.SheetId, cell base.CellId) (Cell, bool) {
	v, ok := c.sheet(sheet).cells[cell]
	return v, ok
}

// CellOrBlank returns the stored cell, or a zero-valued Blank cell if
// absent.
func (c *Container) CellOrBlank(sheet ids.SheetId, cell base.CellId) Cell {
	v, ok := c.GetCell(sheet, cell)
	if !ok {
		return Cell{Value: base.Blank()}
	}
	return v
}

// WithCell returns a new Container with cell set to value in sheet,
// sharing every other sheet's storage with the receiver.
func (c *Container) WithCell(sheet ids.SheetId, cell base.CellId, value Cell) *Container {
	d := c.sheet(sheet).cloneCells()
	d.cells[cell] = value
	return c.withSheet(sheet, d)
}

// WithoutCell returns a new Container with cell removed from sheet.
func (c *Container) WithoutCell(sheet ids.SheetId, cell base.CellId) *Container {
	d := c.sheet(sheet).cloneCells()
	delete(d.cells, cell)
	return c.withSheet(sheet, d)
}

// GetRowInfo looks up row metadata.
func (c *Container) GetRowInfo(sheet ids.SheetId, row ids.RowId) (RowInfo, bool) {
	v, ok := c.sheet(sheet).rows[row]
	return v, ok
}

// WithRowInfo returns a new Container with row's metadata set.
func (c *Container) WithRowInfo(sheet ids.SheetId, row ids.RowId, info RowInfo) *Container {
	d := c.sheet(sheet).cloneRows()
	d.rows[row] = info
	return c.withSheet(sheet, d)
}

// GetColInfo looks up column metadata.
func (c *Container) GetColInfo(sheet ids.SheetId, col ids.ColId) (ColInfo, bool) {
	v, ok := c.sheet(sheet).cols[col]
	return v, ok
}

// WithColInfo returns a new Container with col's metadata set.
func (c *Container) WithColInfo(sheet ids.SheetId, col ids.ColId, info ColInfo) *Container {
	d := c.sheet(sheet).cloneCols()
	d.cols[col] = info
	return c.withSheet(sheet, d)
}

// CellsInSheet returns every occupied CellId in sheet. The DeleteRow and
// DeleteCol payloads use it to find the cells affected by the removal.
func (c *Container) CellsInSheet(sheet ids.SheetId) []base.CellId {
	d := c.sheet(sheet)
	out := make([]base.CellId, 0, len(d.cells))
	for id := range d.cells {
		out = append(out, id)
	}
	return out
}
