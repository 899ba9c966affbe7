package controller

import (
	"github.com/sheetkernel/engine/base"
	"github.com/sheetkernel/engine/ids"
)

// InsertRowBefore allocates a fresh RowId and splices it into sheet's row
// order at BeforeIdx (== len(Rows) appends at the end), per spec.md §3's
// "a cell created during a row/column insert" scenario.
type InsertRowBefore struct {
	Sheet     ids.SheetId
	BeforeIdx int
}

func (p *InsertRowBefore) Apply(s *Status) ([]base.SheetCell, error) {
	d := s.dataFor(p.Sheet)
	if p.BeforeIdx < 0 || p.BeforeIdx > len(d.Rows) {
		return nil, NewAppError(OutOfRange, "row insert index out of range")
	}
	newID := s.rowSeqFor(p.Sheet).Next()
	rows := make([]ids.RowId, 0, len(d.Rows)+1)
	rows = append(rows, d.Rows[:p.BeforeIdx]...)
	rows = append(rows, newID)
	rows = append(rows, d.Rows[p.BeforeIdx:]...)
	d.Rows = rows
	s.Nav.InvalidateSheet(p.Sheet)

	return s.Graph.VerticesInSheet(p.Sheet), nil
}

// DeleteRow removes the row at AtIdx, dropping every cell anchored to it
// from Container along the way.
type DeleteRow struct {
	Sheet ids.SheetId
	AtIdx int
}

func (p *DeleteRow) Apply(s *Status) ([]base.SheetCell, error) {
	d := s.dataFor(p.Sheet)
	if p.AtIdx < 0 || p.AtIdx >= len(d.Rows) {
		return nil, NewAppError(OutOfRange, "row delete index out of range")
	}
	removed := d.Rows[p.AtIdx]
	d.Rows = append(d.Rows[:p.AtIdx], d.Rows[p.AtIdx+1:]...)
	s.Nav.InvalidateSheet(p.Sheet)

	for _, cellID := range s.Container.CellsInSheet(p.Sheet) {
		if cellID.IsNormal() && cellID.Normal.Row == removed {
			s.Container = s.Container.WithoutCell(p.Sheet, cellID)
			s.Graph.RemoveFormula(base.SheetCell{Sheet: p.Sheet, Cell: cellID})
		}
	}

	return s.Graph.VerticesInSheet(p.Sheet), nil
}

// InsertColBefore is InsertRowBefore's column counterpart.
type InsertColBefore struct {
	Sheet     ids.SheetId
	BeforeIdx int
}

func (p *InsertColBefore) Apply(s *Status) ([]base.SheetCell, error) {
	d := s.dataFor(p.Sheet)
	if p.BeforeIdx < 0 || p.BeforeIdx > len(d.Cols) {
		return nil, NewAppError(OutOfRange, "column insert index out of range")
	}
	newID := s.colSeqFor(p.Sheet).Next()
	cols := make([]ids.ColId, 0, len(d.Cols)+1)
	cols = append(cols, d.Cols[:p.BeforeIdx]...)
	cols = append(cols, newID)
	cols = append(cols, d.Cols[p.BeforeIdx:]...)
	d.Cols = cols
	s.Nav.InvalidateSheet(p.Sheet)

	return s.Graph.VerticesInSheet(p.Sheet), nil
}

// DeleteCol is DeleteRow's column counterpart.
type DeleteCol struct {
	Sheet ids.SheetId
	AtIdx int
}

func (p *DeleteCol) Apply(s *Status) ([]base.SheetCell, error) {
	d := s.dataFor(p.Sheet)
	if p.AtIdx < 0 || p.AtIdx >= len(d.Cols) {
		return nil, NewAppError(OutOfRange, "column delete index out of range")
	}
	removed := d.Cols[p.AtIdx]
	d.Cols = append(d.Cols[:p.AtIdx], d.Cols[p.AtIdx+1:]...)
	s.Nav.InvalidateSheet(p.Sheet)

	for _, cellID := range s.Container.CellsInSheet(p.Sheet) {
		if cellID.IsNormal() && cellID.Normal.Col == removed {
			s.Container = s.Container.WithoutCell(p.Sheet, cellID)
			s.Graph.RemoveFormula(base.SheetCell{Sheet: p.Sheet, Cell: cellID})
		}
	}

	return s.Graph.VerticesInSheet(p.Sheet), nil
}
