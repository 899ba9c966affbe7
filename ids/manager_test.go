package ids

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestManagerGetIdIsStableAndTotal(t *testing.T) {
	m := NewManager[string](0)

	a := m.GetId("Sheet1")
	b := m.GetId("Sheet1")
	assert.Equal(t, a, b, "get_id(s) = get_id(s)")

	key, ok := m.GetKey(a)
	require.True(t, ok)
	assert.Equal(t, "Sheet1", key)
}

func TestManagerAllocatesDenseIds(t *testing.T) {
	m := NewManager[string](0)

	first := m.GetId("A")
	second := m.GetId("B")
	third := m.GetId("A") // already registered, must not advance the counter

	assert.Equal(t, Id(0), first)
	assert.Equal(t, Id(1), second)
	assert.Equal(t, first, third)
}

func TestManagerHasIsNonMutating(t *testing.T) {
	m := NewManager[string](0)

	_, ok := m.Has("ghost")
	assert.False(t, ok)
	assert.Equal(t, 0, m.Len())
}

func TestManagerRenameKeepsId(t *testing.T) {
	m := NewManager[string](0)
	id := m.GetId("Sheet1")

	m.Rename("Sheet1", "Data")

	_, stillOld := m.Has("Sheet1")
	assert.False(t, stillOld)

	newId, ok := m.Has("Data")
	require.True(t, ok)
	assert.Equal(t, id, newId)
}

func TestManagerCloneIsIndependent(t *testing.T) {
	m := NewManager[string](0)
	m.GetId("Sheet1")

	clone := m.Clone()
	clone.GetId("Sheet2")

	_, onOriginal := m.Has("Sheet2")
	assert.False(t, onOriginal, "registrations on the clone must not leak back to the original")
}

func TestFuncIdManagerIsCaseInsensitive(t *testing.T) {
	m := NewFuncIdManager()

	lower := m.GetFuncId("sum")
	upper := m.GetFuncId("SUM")

	assert.Equal(t, lower, upper)
}

func TestNameIdManagerScopesByExternalBook(t *testing.T) {
	m := NewNameIdManager()

	localTotal := m.GetId(0, "Total")
	otherTotal := m.GetId(7, "Total")

	assert.NotEqual(t, localTotal, otherTotal, "same name in different external books must not collide")

	book, name, ok := m.GetString(localTotal)
	require.True(t, ok)
	assert.Equal(t, ExtBookId(0), book)
	assert.Equal(t, "Total", name)
}
