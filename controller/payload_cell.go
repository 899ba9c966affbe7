package controller

import (
	"github.com/sheetkernel/engine/base"
	"github.com/sheetkernel/engine/container"
	"github.com/sheetkernel/engine/formula"
	"github.com/sheetkernel/engine/ids"
)

// SetCellValue writes a literal value into a cell, clearing any formula
// previously registered there.
type SetCellValue struct {
	Sheet ids.SheetId
	Row   int
	Col   int
	Value base.CellValue
}

func (p *SetCellValue) Apply(s *Status) ([]base.SheetCell, error) {
	d := s.dataFor(p.Sheet)
	cell, err := s.Nav.FetchCellId(p.Sheet, d, p.Row, p.Col)
	if err != nil {
		return nil, NewAppError(FailedPrecondition, err.Error())
	}
	vertex := base.SheetCell{Sheet: p.Sheet, Cell: cell}
	s.Graph.RemoveFormula(vertex)
	s.Container = s.Container.WithCell(p.Sheet, cell, container.Cell{Value: p.Value})

	dirty := append(s.Graph.AffectedCells(vertex, s.rangeContains), vertex)
	return dirty, nil
}

// SetCellFormula parses Text against sheet/book and registers the result
// as the cell's formula, grounded on spec.md §4.6/§4.7's identity-keyed
// AST model.
type SetCellFormula struct {
	Sheet ids.SheetId
	Row   int
	Col   int
	Book  ids.ExtBookId
	Text  string
}

func (p *SetCellFormula) Apply(s *Status) ([]base.SheetCell, error) {
	d := s.dataFor(p.Sheet)
	cell, err := s.Nav.FetchCellId(p.Sheet, d, p.Row, p.Col)
	if err != nil {
		return nil, NewAppError(FailedPrecondition, err.Error())
	}

	ast, err := formula.Parse(p.Text, p.Sheet, p.Book, NewFetcher(s))
	if err != nil {
		return nil, NewAppError(InvalidArgument, err.Error())
	}

	vertex := base.SheetCell{Sheet: p.Sheet, Cell: cell}
	s.Graph.SetFormula(vertex, ast)
	s.Container = s.Container.WithCell(p.Sheet, cell, container.Cell{HasFormula: true})

	dirty := append(s.Graph.AffectedCells(vertex, s.rangeContains), vertex)
	return dirty, nil
}
