package navigator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sheetkernel/engine/base"
	"github.com/sheetkernel/engine/ids"
)

func rowsCols(n int) *Data {
	d := NewData()
	for i := 0; i < n; i++ {
		d.Rows = append(d.Rows, ids.RowId(i))
		d.Cols = append(d.Cols, ids.ColId(i))
	}
	return d
}

func TestFetchRowIdxInvertsFetchRowId(t *testing.T) {
	nav := New()
	data := rowsCols(10)

	for i := 0; i < 10; i++ {
		id, err := nav.FetchRowId(0, data, i)
		require.NoError(t, err)
		idx, err := nav.FetchRowIdx(0, data, id)
		require.NoError(t, err)
		assert.Equal(t, i, idx)
	}
}

func TestFetchColIdxInvertsFetchColId(t *testing.T) {
	nav := New()
	data := rowsCols(10)

	for i := 0; i < 10; i++ {
		id, err := nav.FetchColId(0, data, i)
		require.NoError(t, err)
		idx, err := nav.FetchColIdx(0, data, id)
		require.NoError(t, err)
		assert.Equal(t, i, idx)
	}
}

func TestFetchRowIdxOnColdCacheScansData(t *testing.T) {
	nav := New()
	data := rowsCols(5)

	idx, err := nav.FetchRowIdx(0, data, ids.RowId(3))
	require.NoError(t, err)
	assert.Equal(t, 3, idx)
}

func TestFetchRowIdxUnknownIdIsNotFound(t *testing.T) {
	nav := New()
	data := rowsCols(3)

	_, err := nav.FetchRowIdx(0, data, ids.RowId(99))
	require.Error(t, err)
	var nf *NotFound
	assert.ErrorAs(t, err, &nf)
}

func TestFetchCellIdNormalCellRoundtrips(t *testing.T) {
	nav := New()
	data := rowsCols(5)

	cell, err := nav.FetchCellId(0, data, 2, 3)
	require.NoError(t, err)
	require.True(t, cell.IsNormal())

	row, col, err := nav.FetchCellIdx(0, data, cell)
	require.NoError(t, err)
	assert.Equal(t, 2, row)
	assert.Equal(t, 3, col)
}

func TestFetchCellIdPrefersBlockOverNormalPosition(t *testing.T) {
	nav := New()
	data := rowsCols(10)
	data.Blocks[ids.BlockId(0)] = &BlockPlacement{
		Master:    base.NormalCellId{Row: ids.RowId(2), Col: ids.ColId(2)},
		InnerRows: []ids.RowId{100, 101},
		InnerCols: []ids.ColId{200, 201},
	}

	cell, err := nav.FetchCellId(0, data, 2, 2)
	require.NoError(t, err)
	require.True(t, cell.IsBlock())
	assert.Equal(t, ids.BlockId(0), cell.Block.Block)

	row, col, err := nav.FetchCellIdx(0, data, cell)
	require.NoError(t, err)
	assert.Equal(t, 2, row)
	assert.Equal(t, 2, col)
}

func TestFetchCellIdLatestOverlappingBlockWins(t *testing.T) {
	nav := New()
	data := rowsCols(10)
	master := base.NormalCellId{Row: ids.RowId(0), Col: ids.ColId(0)}
	data.Blocks[ids.BlockId(0)] = &BlockPlacement{
		Master:    master,
		InnerRows: []ids.RowId{10},
		InnerCols: []ids.ColId{20},
	}
	data.Blocks[ids.BlockId(1)] = &BlockPlacement{
		Master:    master,
		InnerRows: []ids.RowId{11},
		InnerCols: []ids.ColId{21},
	}

	cell, err := nav.FetchCellId(0, data, 0, 0)
	require.NoError(t, err)
	require.True(t, cell.IsBlock())
	assert.Equal(t, ids.BlockId(1), cell.Block.Block, "most recently inserted (higher) block id wins overlap")
}

func TestFollowRowRedirectsIndexResolution(t *testing.T) {
	nav := New()
	data := rowsCols(5)

	followTarget := ids.RowId(3)
	normal := base.NormalCellId{
		Row:    ids.RowId(0),
		Col:    ids.ColId(1),
		Follow: base.FollowPin{FollowRow: &followTarget},
	}

	row, col, err := nav.FetchNormalCellIdx(0, data, &normal)
	require.NoError(t, err)
	assert.Equal(t, 3, row)
	assert.Equal(t, 1, col)
}

func TestInvalidateSheetClearsCache(t *testing.T) {
	nav := New()
	data := rowsCols(5)

	_, err := nav.FetchRowId(0, data, 2)
	require.NoError(t, err)

	nav.InvalidateSheet(0)

	// structural edit: row 2 is now a different identity.
	data.Rows[2] = ids.RowId(999)
	id, err := nav.FetchRowId(0, data, 2)
	require.NoError(t, err)
	assert.Equal(t, ids.RowId(999), id)
}
