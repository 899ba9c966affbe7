package formula

import (
	"github.com/sheetkernel/engine/base"
	"github.com/sheetkernel/engine/ids"
)

// BinaryOp enumerates the binary operators a BinaryOpNode can carry.
type BinaryOp int

const (
	OpAdd BinaryOp = iota
	OpSubtract
	OpMultiply
	OpDivide
	OpPower
	OpConcat
	OpEqual
	OpNotEqual
	OpLess
	OpLessEqual
	OpGreater
	OpGreaterEqual
)

// UnaryOp enumerates the unary operators a UnaryOpNode can carry.
type UnaryOp int

const (
	OpPlus UnaryOp = iota
	OpMinus
	OpPercent
)

// Node is any formula AST node. Unlike the teacher's ASTNode, a Node
// does not evaluate itself - spec.md keeps evaluation in CalcEngine
// (§4.7), so formula only builds and tames the tree: parse it,
// unparse it, walk it for dependency extraction.
type Node interface {
	isNode()
}

type NumberNode struct{ Value float64 }
type StringNode struct{ Value string }
type BooleanNode struct{ Value bool }

// CellRefNode is a single-cell reference, resolved at parse time to an
// identity pair. ExplicitSheet records whether the source text carried
// a "Sheet!" prefix, purely so the Unparser can omit it again when
// unparsing in the same sheet context spec.md's round-trip law (§8
// scenario 1) requires the original text back byte-for-byte only when
// the formula is read back in its original sheet; a cross-sheet
// Unparse must add the prefix regardless of ExplicitSheet, since the
// sheet context has changed.
type CellRefNode struct {
	Sheet         ids.SheetId
	Cell          base.CellId
	ExplicitSheet bool
}

// RangeNode is a two-corner range reference, same resolution rules as
// CellRefNode.
type RangeNode struct {
	Sheet         ids.SheetId
	From          base.CellId
	To            base.CellId
	ExplicitSheet bool
}

// NameRefNode is a reference to a defined name (spec.md's NameId
// domain covers both named ranges and named formulas).
type NameRefNode struct {
	Name ids.NameId
}

type BinaryOpNode struct {
	Op          BinaryOp
	Left, Right Node
}

type UnaryOpNode struct {
	Op      UnaryOp
	Operand Node
}

// FunctionCallNode dispatches through FuncId rather than a bare name,
// so a rename of a function (spec.md's identity layer does not cover
// built-ins, but case folding must still be canonical) is irrelevant
// to the stored AST - only the FuncIdManager's canonical text matters
// when unparsing.
type FunctionCallNode struct {
	Func ids.FuncId
	Args []Node
}

func (*NumberNode) isNode()       {}
func (*StringNode) isNode()       {}
func (*BooleanNode) isNode()      {}
func (*CellRefNode) isNode()      {}
func (*RangeNode) isNode()        {}
func (*NameRefNode) isNode()      {}
func (*BinaryOpNode) isNode()     {}
func (*UnaryOpNode) isNode()      {}
func (*FunctionCallNode) isNode() {}

// IdFetcher resolves formula text fragments to identities during
// parsing. Controller supplies the concrete implementation, composing
// ids.SheetIdManager, navigator.Navigator and ids.NameIdManager -
// formula itself stays ignorant of their storage.
type IdFetcher interface {
	SheetIdByName(name string) (ids.SheetId, bool)
	CellIdAt(sheet ids.SheetId, row, col int) (base.CellId, error)
	NameIdFor(book ids.ExtBookId, name string) (ids.NameId, bool)
	FuncIdFor(name string) ids.FuncId
}

// NameFetcher is IdFetcher's inverse, used by the Unparser to turn an
// AST back into formula text.
type NameFetcher interface {
	SheetName(sheet ids.SheetId) (string, bool)
	CellIndexOf(sheet ids.SheetId, cell base.CellId) (row, col int, err error)
	NameTextFor(name ids.NameId) (string, bool)
	FuncNameFor(fn ids.FuncId) (string, bool)
}

// Visitor is invoked by Walk for every reference-bearing node -
// CellRefNode, RangeNode, NameRefNode - so depgraph can build
// precedent/dependent edges without formula knowing anything about
// DependencyGraph.
type Visitor interface {
	VisitCellRef(*CellRefNode)
	VisitRange(*RangeNode)
	VisitNameRef(*NameRefNode)
}

// Walk performs a depth-first traversal of node, calling v for every
// reference node it encounters.
func Walk(node Node, v Visitor) {
	switch n := node.(type) {
	case *CellRefNode:
		v.VisitCellRef(n)
	case *RangeNode:
		v.VisitRange(n)
	case *NameRefNode:
		v.VisitNameRef(n)
	case *BinaryOpNode:
		Walk(n.Left, v)
		Walk(n.Right, v)
	case *UnaryOpNode:
		Walk(n.Operand, v)
	case *FunctionCallNode:
		for _, arg := range n.Args {
			Walk(arg, v)
		}
	}
}
