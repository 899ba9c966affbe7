package navigator

import (
	"github.com/sheetkernel/engine/base"
	"github.com/sheetkernel/engine/ids"
)

// Cache is the per-sheet derived index<->id index described by spec.md
// §3 (SheetNav.Cache): write-through memoization that is invalidated on
// any structural mutation of the sheet's Data and can be rebuilt from Data
// at any point without loss of correctness (spec.md §5).
type Cache struct {
	rowId    map[int]ids.RowId
	rowIndex map[ids.RowId]int
	colId    map[int]ids.ColId
	colIndex map[ids.ColId]int

	cellId  map[rowCol]base.CellId
	cellIdx map[base.CellId]rowCol
}

type rowCol struct{ row, col int }

// NewCache creates an empty Cache.
func NewCache() *Cache {
	return &Cache{
		rowId:    make(map[int]ids.RowId),
		rowIndex: make(map[ids.RowId]int),
		colId:    make(map[int]ids.ColId),
		colIndex: make(map[ids.ColId]int),
		cellId:   make(map[rowCol]base.CellId),
		cellIdx:  make(map[base.CellId]rowCol),
	}
}

// Invalidate discards every memoized entry; the next lookup rebuilds from
// Data lazily. Call this after any structural mutation (insert/delete
// row/col, block create/resize/move).
func (c *Cache) Invalidate() {
	*c = *NewCache()
}
