package ids

import "strings"

// SheetIdManager interns sheet names. Case-sensitive, like every domain
// except function names (spec.md §4.1).
type SheetIdManager struct{ *Manager[string] }

func NewSheetIdManager() SheetIdManager { return SheetIdManager{NewManager[string](0)} }

func (m SheetIdManager) Clone() SheetIdManager { return SheetIdManager{m.Manager.Clone()} }

// TextIdManager interns shared-string text.
type TextIdManager struct{ *Manager[string] }

func NewTextIdManager() TextIdManager { return TextIdManager{NewManager[string](0)} }

func (m TextIdManager) Clone() TextIdManager { return TextIdManager{m.Manager.Clone()} }

// AuthorIdManager interns comment/author display names.
type AuthorIdManager struct{ *Manager[string] }

func NewAuthorIdManager() AuthorIdManager { return AuthorIdManager{NewManager[string](0)} }

func (m AuthorIdManager) Clone() AuthorIdManager { return AuthorIdManager{m.Manager.Clone()} }

// ExtBookIdManager interns external workbook references (by path/URI).
// ExtBookId 0 is reserved and means "this workbook" per spec.md §4.1; the
// manager itself starts allocating from 1 so GetId never hands back 0 for
// a registered external book.
type ExtBookIdManager struct{ *Manager[string] }

func NewExtBookIdManager() ExtBookIdManager {
	return ExtBookIdManager{NewManager[string](1)}
}

func (m ExtBookIdManager) Clone() ExtBookIdManager { return ExtBookIdManager{m.Manager.Clone()} }

// BlockIdManager interns block labels. Blocks are otherwise identified
// purely by their allocated id; the label is how payloads name a block.
// Labels are workbook-wide, not per sheet, and CreateBlock refuses a
// label that is already registered.
type BlockIdManager struct{ *Manager[string] }

func NewBlockIdManager() BlockIdManager { return BlockIdManager{NewManager[string](0)} }

func (m BlockIdManager) Clone() BlockIdManager { return BlockIdManager{m.Manager.Clone()} }

// FuncIdManager interns formula function names case-insensitively: ids
// index the upper-cased spelling, so "sum" and "SUM" resolve to the same
// FuncId (spec.md §4.1, tested by scenario 6 in spec.md §8).
type FuncIdManager struct{ *Manager[string] }

func NewFuncIdManager() FuncIdManager { return FuncIdManager{NewManager[string](0)} }

// GetFuncId folds name to upper case before delegating to the underlying
// manager, mirroring original_source's FuncIdManager::get_func_id.
func (m FuncIdManager) GetFuncId(name string) FuncId {
	return m.GetId(strings.ToUpper(name))
}

func (m FuncIdManager) Clone() FuncIdManager { return FuncIdManager{m.Manager.Clone()} }

// nameKey is the composite key for defined names: (ExtBookId, name). Book
// 0 means "this workbook" (spec.md §4.1).
type nameKey struct {
	book ExtBookId
	name string
}

// NameIdManager interns defined names scoped by external book, so that two
// workbooks can each define a name "Total" without colliding.
type NameIdManager struct{ *Manager[nameKey] }

func NewNameIdManager() NameIdManager { return NameIdManager{NewManager[nameKey](0)} }

// GetId returns the NameId for name as defined in book (0 = this workbook).
func (m NameIdManager) GetId(book ExtBookId, name string) NameId {
	return m.Manager.GetId(nameKey{book: book, name: name})
}

// Has is the non-mutating counterpart to GetId.
func (m NameIdManager) Has(book ExtBookId, name string) (NameId, bool) {
	return m.Manager.Has(nameKey{book: book, name: name})
}

// Rename transfers a defined name's binding within the same book.
func (m NameIdManager) Rename(book ExtBookId, oldName, newName string) {
	m.Manager.Rename(nameKey{book: book, name: oldName}, nameKey{book: book, name: newName})
}

// GetString returns the (book, name) pair a NameId was registered under.
func (m NameIdManager) GetString(id NameId) (ExtBookId, string, bool) {
	k, ok := m.Manager.GetKey(id)
	if !ok {
		return 0, "", false
	}
	return k.book, k.name, true
}

func (m NameIdManager) Clone() NameIdManager { return NameIdManager{m.Manager.Clone()} }
