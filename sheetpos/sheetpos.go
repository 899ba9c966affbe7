// Package sheetpos tracks the display order and visibility of sheets.
// It is the only component that knows the order sheets appear in
// (spec.md §4.3); sheet name<->id binding lives in ids.SheetIdManager
// instead, following the identity-layer split mandated by spec.md §3.
//
// Grounded on the teacher's WorksheetTable (worksheet.go), stripped of
// the name/definition bookkeeping that table mixed in — here a
// SheetPosManager only ever holds already-allocated SheetIds.
package sheetpos

import "github.com/sheetkernel/engine/ids"

// Manager is an ordered sequence of SheetIds with a hidden-set.
type Manager struct {
	order  []ids.SheetId
	index  map[ids.SheetId]int
	hidden map[ids.SheetId]struct{}
}

// New creates an empty Manager.
func New() *Manager {
	return &Manager{
		index:  make(map[ids.SheetId]int),
		hidden: make(map[ids.SheetId]struct{}),
	}
}

// Clone returns an independent copy, so that a later append/reorder on
// one Status version cannot be observed through an older one.
func (m *Manager) Clone() *Manager {
	c := &Manager{
		order:  append([]ids.SheetId(nil), m.order...),
		index:  make(map[ids.SheetId]int, len(m.index)),
		hidden: make(map[ids.SheetId]struct{}, len(m.hidden)),
	}
	for k, v := range m.index {
		c.index[k] = v
	}
	for k := range m.hidden {
		c.hidden[k] = struct{}{}
	}
	return c
}

// Append adds sheet to the end of the display order.
func (m *Manager) Append(sheet ids.SheetId) {
	if _, exists := m.index[sheet]; exists {
		return
	}
	m.index[sheet] = len(m.order)
	m.order = append(m.order, sheet)
}

// Remove deletes sheet from the display order and its hidden-set. Ids in
// IdManager are never recycled, so this does not make the SheetId usable
// again — it only stops the sheet from being displayed (spec.md §3
// "Lifecycle").
func (m *Manager) Remove(sheet ids.SheetId) bool {
	idx, ok := m.index[sheet]
	if !ok {
		return false
	}
	m.order = append(m.order[:idx], m.order[idx+1:]...)
	delete(m.index, sheet)
	delete(m.hidden, sheet)
	for i := idx; i < len(m.order); i++ {
		m.index[m.order[i]] = i
	}
	return true
}

// Reorder moves the sheet currently at from to position to.
func (m *Manager) Reorder(from, to int) bool {
	if from < 0 || from >= len(m.order) || to < 0 || to >= len(m.order) {
		return false
	}
	sheet := m.order[from]
	m.order = append(m.order[:from], m.order[from+1:]...)
	m.order = append(m.order[:to], append([]ids.SheetId{sheet}, m.order[to:]...)...)
	for i, s := range m.order {
		m.index[s] = i
	}
	return true
}

// SetHidden toggles the hidden flag for sheet.
func (m *Manager) SetHidden(sheet ids.SheetId, hidden bool) {
	if hidden {
		m.hidden[sheet] = struct{}{}
	} else {
		delete(m.hidden, sheet)
	}
}

// IsHidden reports whether sheet is hidden.
func (m *Manager) IsHidden(sheet ids.SheetId) bool {
	_, ok := m.hidden[sheet]
	return ok
}

// GetSheetIdx returns the display position of sheet, O(1) via the
// reverse index.
func (m *Manager) GetSheetIdx(sheet ids.SheetId) (int, bool) {
	idx, ok := m.index[sheet]
	return idx, ok
}

// GetSheetAt returns the SheetId displayed at idx.
func (m *Manager) GetSheetAt(idx int) (ids.SheetId, bool) {
	if idx < 0 || idx >= len(m.order) {
		return 0, false
	}
	return m.order[idx], true
}

// Visible returns the sheet ids in display order, excluding hidden ones.
func (m *Manager) Visible() []ids.SheetId {
	out := make([]ids.SheetId, 0, len(m.order))
	for _, s := range m.order {
		if _, hidden := m.hidden[s]; !hidden {
			out = append(out, s)
		}
	}
	return out
}

// All returns every sheet id in display order, including hidden ones.
func (m *Manager) All() []ids.SheetId {
	return append([]ids.SheetId(nil), m.order...)
}

// Len returns the number of tracked sheets (visible and hidden).
func (m *Manager) Len() int { return len(m.order) }
