package controller

import (
	"github.com/sheetkernel/engine/base"
	"github.com/sheetkernel/engine/ids"
)

// CreateSheet registers a new, empty sheet and appends it to sheet
// order.
type CreateSheet struct {
	Name string
}

func (p *CreateSheet) Apply(s *Status) ([]base.SheetCell, error) {
	if _, exists := s.Sheets.Has(p.Name); exists {
		return nil, NewAppError(AlreadyExists, "sheet already exists: "+p.Name)
	}
	sheet := s.Sheets.GetId(p.Name)
	s.Positions.Append(sheet)
	s.dataFor(sheet)
	return nil, nil
}

// RenameSheet transfers a sheet's name binding without changing its id,
// so every formula referencing it by identity is untouched.
type RenameSheet struct {
	OldName string
	NewName string
}

func (p *RenameSheet) Apply(s *Status) ([]base.SheetCell, error) {
	if _, ok := s.Sheets.Has(p.OldName); !ok {
		return nil, NewAppError(NotFound, "sheet not found: "+p.OldName)
	}
	if _, exists := s.Sheets.Has(p.NewName); exists {
		return nil, NewAppError(AlreadyExists, "sheet already exists: "+p.NewName)
	}
	s.Sheets.Rename(p.OldName, p.NewName)
	return nil, nil
}

// SetStyle assigns a style id to a single cell without touching its
// value or formula.
type SetStyle struct {
	Sheet   ids.SheetId
	Row     int
	Col     int
	StyleId uint32
}

func (p *SetStyle) Apply(s *Status) ([]base.SheetCell, error) {
	d := s.dataFor(p.Sheet)
	cell, err := s.Nav.FetchCellId(p.Sheet, d, p.Row, p.Col)
	if err != nil {
		return nil, NewAppError(FailedPrecondition, err.Error())
	}
	existing := s.Container.CellOrBlank(p.Sheet, cell)
	existing.StyleId = p.StyleId
	s.Container = s.Container.WithCell(p.Sheet, cell, existing)
	return nil, nil
}
