// Package navigator translates between positional coordinates
// (row-index, col-index) and identity coordinates (RowId, ColId, CellId)
// for one sheet at a time, transparently handling blocks. Grounded
// directly on original_source/crates/controller/src/navigator/fetcher.rs
// (the Fetcher type): index->id is O(1) through the Rows/Cols arrays,
// id->index is a linear scan on a cold cache and O(1) once memoized in
// both directions.
package navigator

import (
	"fmt"

	"github.com/sheetkernel/engine/base"
	"github.com/sheetkernel/engine/ids"
)

// Navigator owns one Cache per sheet and answers position<->identity
// queries against a caller-supplied, read-only Data for that sheet.
type Navigator struct {
	caches map[ids.SheetId]*Cache
}

// New creates an empty Navigator.
func New() *Navigator {
	return &Navigator{caches: make(map[ids.SheetId]*Cache)}
}

// Clone copies the cache set; caches are pure memoization so sharing them
// across Status versions would be safe too, but cloning keeps the
// invalidation story simple (a later version's structural edit never
// reaches back into an older version's cache).
func (n *Navigator) Clone() *Navigator {
	c := &Navigator{caches: make(map[ids.SheetId]*Cache, len(n.caches))}
	for sheet, cache := range n.caches {
		cc := *cache
		c.caches[sheet] = &cc
	}
	return c
}

func (n *Navigator) cacheFor(sheet ids.SheetId) *Cache {
	c, ok := n.caches[sheet]
	if !ok {
		c = NewCache()
		n.caches[sheet] = c
	}
	return c
}

// InvalidateSheet drops the memoized cache for sheet after a structural
// edit to its Data.
func (n *Navigator) InvalidateSheet(sheet ids.SheetId) {
	if c, ok := n.caches[sheet]; ok {
		c.Invalidate()
	}
}

// FetchRowId returns the RowId currently displayed at rowIdx. Total when
// rowIdx is in range; an out-of-range rowIdx is a caller contract
// violation (spec.md §4.2 "Failure semantics").
func (n *Navigator) FetchRowId(sheet ids.SheetId, data *Data, rowIdx int) (ids.RowId, error) {
	cache := n.cacheFor(sheet)
	if id, ok := cache.rowId[rowIdx]; ok {
		return id, nil
	}
	if rowIdx < 0 || rowIdx >= len(data.Rows) {
		return 0, fmt.Errorf("navigator: sheet %d: row index %d out of bounds", sheet, rowIdx)
	}
	id := data.Rows[rowIdx]
	cache.rowId[rowIdx] = id
	cache.rowIndex[id] = rowIdx
	return id, nil
}

// FetchColId is the column counterpart of FetchRowId.
func (n *Navigator) FetchColId(sheet ids.SheetId, data *Data, colIdx int) (ids.ColId, error) {
	cache := n.cacheFor(sheet)
	if id, ok := cache.colId[colIdx]; ok {
		return id, nil
	}
	if colIdx < 0 || colIdx >= len(data.Cols) {
		return 0, fmt.Errorf("navigator: sheet %d: col index %d out of bounds", sheet, colIdx)
	}
	id := data.Cols[colIdx]
	cache.colId[colIdx] = id
	cache.colIndex[id] = colIdx
	return id, nil
}

// FetchRowIdx is the inverse of FetchRowId: it returns NotFound if rowId
// is not present among data.Rows.
func (n *Navigator) FetchRowIdx(sheet ids.SheetId, data *Data, rowId ids.RowId) (int, error) {
	cache := n.cacheFor(sheet)
	if idx, ok := cache.rowIndex[rowId]; ok {
		return idx, nil
	}
	idx := indexOf(data.Rows, rowId)
	if idx < 0 {
		return 0, &NotFound{Sheet: uint32(sheet), Detail: fmt.Sprintf("cannot find index for row id %d", rowId)}
	}
	cache.rowIndex[rowId] = idx
	cache.rowId[idx] = rowId
	return idx, nil
}

// FetchColIdx is the column counterpart of FetchRowIdx.
func (n *Navigator) FetchColIdx(sheet ids.SheetId, data *Data, colId ids.ColId) (int, error) {
	cache := n.cacheFor(sheet)
	if idx, ok := cache.colIndex[colId]; ok {
		return idx, nil
	}
	idx := indexOf(data.Cols, colId)
	if idx < 0 {
		return 0, &NotFound{Sheet: uint32(sheet), Detail: fmt.Sprintf("cannot find index for col id %d", colId)}
	}
	cache.colIndex[colId] = idx
	cache.colId[idx] = colId
	return idx, nil
}

// FetchCellId returns the CellId displayed at (row, col): a BlockCell if
// the position falls inside any block placement, otherwise a NormalCell
// built from the row/col ids at that position. When multiple blocks
// overlap the same position, the most recently inserted block wins —
// insertion order is the block-id order (spec.md §4.2, Open Question in
// spec.md §9 resolved this way).
func (n *Navigator) FetchCellId(sheet ids.SheetId, data *Data, row, col int) (base.CellId, error) {
	cache := n.cacheFor(sheet)
	key := rowCol{row, col}
	if id, ok := cache.cellId[key]; ok {
		return id, nil
	}

	var winner *struct {
		id    ids.BlockId
		cell  base.CellId
	}
	for blockId, bp := range data.Blocks {
		mRow, mCol, err := n.FetchNormalCellIdx(sheet, data, &bp.Master)
		if err != nil {
			continue
		}
		if row < mRow || col < mCol {
			continue
		}
		rId, cId, ok := bp.InnerIdAt(row-mRow, col-mCol)
		if !ok {
			continue
		}
		cell := base.NewBlockCellId(blockId, rId, cId)
		if winner == nil || blockId >= winner.id {
			winner = &struct {
				id   ids.BlockId
				cell base.CellId
			}{id: blockId, cell: cell}
		}
	}
	if winner != nil {
		cache.cellId[key] = winner.cell
		return winner.cell, nil
	}

	rowId, err := n.FetchRowId(sheet, data, row)
	if err != nil {
		return base.CellId{}, err
	}
	colId, err := n.FetchColId(sheet, data, col)
	if err != nil {
		return base.CellId{}, err
	}
	cell := base.NewNormalCellId(rowId, colId)
	cache.cellId[key] = cell
	return cell, nil
}

// FetchCellIdx is the inverse of FetchCellId.
func (n *Navigator) FetchCellIdx(sheet ids.SheetId, data *Data, cell base.CellId) (row, col int, err error) {
	cache := n.cacheFor(sheet)
	if rc, ok := cache.cellIdx[cell]; ok {
		return rc.row, rc.col, nil
	}

	var rc rowCol
	switch cell.Kind {
	case base.KindNormal:
		rc.row, rc.col, err = n.FetchNormalCellIdx(sheet, data, &cell.Normal)
	case base.KindBlock:
		rc.row, rc.col, err = n.FetchBlockCellIdx(sheet, data, &cell.Block)
	default:
		err = fmt.Errorf("navigator: sheet %d: unknown cell id kind %d", sheet, cell.Kind)
	}
	if err != nil {
		return 0, 0, err
	}
	cache.cellIdx[cell] = rc
	return rc.row, rc.col, nil
}

// FetchNormalCellIdx resolves a NormalCellId to its current (row, col)
// index, following follow_row/follow_col when present (spec.md §3, §4.2
// "The follow_row/follow_col mechanism").
func (n *Navigator) FetchNormalCellIdx(sheet ids.SheetId, data *Data, cell *base.NormalCellId) (row, col int, err error) {
	rowId, colId := cell.Row, cell.Col
	if cell.Follow.FollowRow != nil {
		rowId = *cell.Follow.FollowRow
	}
	if cell.Follow.FollowCol != nil {
		colId = *cell.Follow.FollowCol
	}
	row, err = n.FetchRowIdx(sheet, data, rowId)
	if err != nil {
		return 0, 0, err
	}
	col, err = n.FetchColIdx(sheet, data, colId)
	if err != nil {
		return 0, 0, err
	}
	return row, col, nil
}

// FetchBlockCellIdx resolves a BlockCellId to its current absolute
// (row, col) index: the master's absolute position plus the inner
// block-local offset (spec.md §3).
func (n *Navigator) FetchBlockCellIdx(sheet ids.SheetId, data *Data, cell *base.BlockCellId) (row, col int, err error) {
	bp, ok := data.Blocks[cell.Block]
	if !ok {
		return 0, 0, &ConsistencyError{Sheet: uint32(sheet), Detail: fmt.Sprintf("cannot get block %d", cell.Block)}
	}
	mRow, mCol, err := n.FetchNormalCellIdx(sheet, data, &bp.Master)
	if err != nil {
		return 0, 0, err
	}
	rOff, cOff, ok := bp.InnerOffsetOf(cell.Row, cell.Col)
	if !ok {
		return 0, 0, &ConsistencyError{
			Sheet:  uint32(sheet),
			Detail: fmt.Sprintf("cannot find inner index in block %d for (row %d, col %d)", cell.Block, cell.Row, cell.Col),
		}
	}
	return mRow + rOff, mCol + cOff, nil
}
