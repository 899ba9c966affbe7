// Package base holds the coordinate and value types shared by every
// component of the engine: Navigator, FormulaManager, DataContainer, and
// CalcEngine all speak in terms of these identities rather than strings or
// positions. Grounded on original_source's controller_base crate, which
// plays the same role for the Rust implementation this engine is derived
// from.
package base

import "github.com/sheetkernel/engine/ids"

// NormalCellId names a cell by the stable identity of its row and column.
// follow_row/follow_col redirect index resolution through another row's
// or column's current position — the mechanism that lets a cell created
// during a row/column insert track a neighbor instead of a fixed
// coordinate (spec.md §3).
type NormalCellId struct {
	Row    ids.RowId
	Col    ids.ColId
	Follow FollowPin
}

// FollowPin carries at most one of FollowRow/FollowCol. Both being unset
// means the cell resolves its own Row/Col directly.
type FollowPin struct {
	FollowRow *ids.RowId
	FollowCol *ids.ColId
}

// BlockCellId names a cell inside a Block's private id-space.
type BlockCellId struct {
	Block ids.BlockId
	Row   ids.RowId
	Col   ids.ColId
}

// CellKind discriminates the CellId tagged union.
type CellKind uint8

const (
	KindNormal CellKind = iota
	KindBlock
)

// CellId is the tagged variant {NormalCell, BlockCell} from spec.md §3.
// It is a plain struct rather than an interface so it remains a
// comparable map key, which every manager in this engine relies on.
type CellId struct {
	Kind   CellKind
	Normal NormalCellId
	Block  BlockCellId
}

// NewNormalCellId builds a CellId wrapping a NormalCellId with no
// follow-pins.
func NewNormalCellId(row ids.RowId, col ids.ColId) CellId {
	return CellId{Kind: KindNormal, Normal: NormalCellId{Row: row, Col: col}}
}

// NewBlockCellId builds a CellId wrapping a BlockCellId.
func NewBlockCellId(block ids.BlockId, row, col ids.RowId) CellId {
	return CellId{Kind: KindBlock, Block: BlockCellId{Block: block, Row: row, Col: col}}
}

// IsNormal reports whether this CellId carries a NormalCellId.
func (c CellId) IsNormal() bool { return c.Kind == KindNormal }

// IsBlock reports whether this CellId carries a BlockCellId.
func (c CellId) IsBlock() bool { return c.Kind == KindBlock }

// SheetCell pairs a SheetId with a CellId: the vertex type of the
// dependency graph (spec.md §3, "vertex = (SheetId, CellId)").
type SheetCell struct {
	Sheet ids.SheetId
	Cell  CellId
}

// CellRangeId is a pair of CellIds spanning a rectangular range; either
// endpoint may itself be follow-pinned (spec.md §3, "A range is a pair of
// CellIds").
type CellRangeId struct {
	From CellId
	To   CellId
}
