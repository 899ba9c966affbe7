package navigator

import "github.com/sheetkernel/engine/ids"
import "github.com/sheetkernel/engine/base"

// Data is the per-sheet positional content described by spec.md §3
// (SheetNav.Data): an ordered sequence of row/col ids, plus the placement
// of every block anchored on this sheet. "RowId at position i means the
// row whose stable identity is this, currently displayed at row i."
type Data struct {
	Rows   []ids.RowId
	Cols   []ids.ColId
	Blocks map[ids.BlockId]*BlockPlacement
}

// NewData creates an empty sheet Data.
func NewData() *Data {
	return &Data{Blocks: make(map[ids.BlockId]*BlockPlacement)}
}

// Clone makes a deep-enough copy so that a structural edit on the clone
// never mutates a Status a reader still holds (spec.md §3 invariant on
// structural sharing). Each block placement is copied together with its
// inner row/col slices, since ResizeBlock and MoveBlock edit a placement
// in place.
func (d *Data) Clone() *Data {
	c := &Data{
		Rows:   append([]ids.RowId(nil), d.Rows...),
		Cols:   append([]ids.ColId(nil), d.Cols...),
		Blocks: make(map[ids.BlockId]*BlockPlacement, len(d.Blocks)),
	}
	for id, bp := range d.Blocks {
		cp := *bp
		cp.InnerRows = append([]ids.RowId(nil), bp.InnerRows...)
		cp.InnerCols = append([]ids.ColId(nil), bp.InnerCols...)
		c.Blocks[id] = &cp
	}
	return c
}

// BlockPlacement anchors a Block's private row/col id-space at a master
// NormalCellId (spec.md §3: "the block's external position is given by
// its master NormalCellId"). InnerRows[i]/InnerCols[j] are this block's
// own row/col identities, indexed by the block-local offset.
type BlockPlacement struct {
	Master    base.NormalCellId
	InnerRows []ids.RowId
	InnerCols []ids.ColId
}

// InnerIdAt returns the (RowId, ColId) of the cell at block-local offset
// (rowOffset, colOffset), if that offset is within the block's current
// extent.
func (bp *BlockPlacement) InnerIdAt(rowOffset, colOffset int) (ids.RowId, ids.ColId, bool) {
	if rowOffset < 0 || colOffset < 0 || rowOffset >= len(bp.InnerRows) || colOffset >= len(bp.InnerCols) {
		return 0, 0, false
	}
	return bp.InnerRows[rowOffset], bp.InnerCols[colOffset], true
}

// InnerOffsetOf returns the block-local offset of (rowId, colId), the
// inverse of InnerIdAt.
func (bp *BlockPlacement) InnerOffsetOf(rowId ids.RowId, colId ids.ColId) (int, int, bool) {
	ri := indexOf(bp.InnerRows, rowId)
	ci := indexOf(bp.InnerCols, colId)
	if ri < 0 || ci < 0 {
		return 0, 0, false
	}
	return ri, ci, true
}

func indexOf[T comparable](s []T, v T) int {
	for i, e := range s {
		if e == v {
			return i
		}
	}
	return -1
}
