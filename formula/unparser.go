package formula

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/sheetkernel/engine/base"
	"github.com/sheetkernel/engine/ids"
)

// precedence mirrors the parser's climb: comparison < concat < add <
// mul < power < unary < postfix. Unparse wraps a child in parens
// whenever its own precedence is lower than what its parent position
// requires, which is the minimum necessary to make Parse(Unparse(n))
// reconstruct an equivalent tree (spec.md §8 scenario 1's round-trip
// law never requires the same parenthesization as the original text,
// only the same meaning).
func precedenceOf(n Node) int {
	switch v := n.(type) {
	case *BinaryOpNode:
		switch v.Op {
		case OpEqual, OpNotEqual, OpLess, OpLessEqual, OpGreater, OpGreaterEqual:
			return 1
		case OpConcat:
			return 2
		case OpAdd, OpSubtract:
			return 3
		case OpMultiply, OpDivide:
			return 4
		case OpPower:
			return 5
		}
	case *UnaryOpNode:
		if v.Op == OpPercent {
			return 7
		}
		return 6
	}
	return 8
}

// Unparse renders node back into formula text ("=..."), resolving
// every identity reference through fetcher. renderSheet is the sheet
// the resulting text will be stored against - a CellRefNode whose
// Sheet differs from renderSheet always gets an explicit "Sheet!"
// prefix, even if ExplicitSheet is false, since the reference has
// become cross-sheet relative to its new home.
func Unparse(node Node, renderSheet ids.SheetId, fetcher NameFetcher) (string, error) {
	body, err := unparseExpr(node, renderSheet, fetcher, 0)
	if err != nil {
		return "", err
	}
	return "=" + body, nil
}

func unparseExpr(node Node, renderSheet ids.SheetId, fetcher NameFetcher, minPrec int) (string, error) {
	s, err := unparseNode(node, renderSheet, fetcher)
	if err != nil {
		return "", err
	}
	if precedenceOf(node) < minPrec {
		return "(" + s + ")", nil
	}
	return s, nil
}

func unparseNode(node Node, renderSheet ids.SheetId, fetcher NameFetcher) (string, error) {
	switch n := node.(type) {
	case *NumberNode:
		return formatNumber(n.Value), nil

	case *StringNode:
		return "\"" + strings.ReplaceAll(n.Value, "\"", "\"\"") + "\"", nil

	case *BooleanNode:
		if n.Value {
			return "TRUE", nil
		}
		return "FALSE", nil

	case *CellRefNode:
		return formatCellRef(n.Sheet, n.Cell, renderSheet, fetcher)

	case *RangeNode:
		from, err := formatCellRef(n.Sheet, n.From, renderSheet, fetcher)
		if err != nil {
			return "", err
		}
		// the "to" corner never repeats the sheet prefix.
		row, col, err := fetcher.CellIndexOf(n.Sheet, n.To)
		if err != nil {
			return "", &RefError{Msg: err.Error()}
		}
		return from + ":" + colLetters(col) + strconv.Itoa(row+1), nil

	case *NameRefNode:
		text, ok := fetcher.NameTextFor(n.Name)
		if !ok {
			return "", &RefError{Msg: "name no longer defined"}
		}
		return text, nil

	case *BinaryOpNode:
		return unparseBinary(n, renderSheet, fetcher)

	case *UnaryOpNode:
		return unparseUnary(n, renderSheet, fetcher)

	case *FunctionCallNode:
		return unparseFunctionCall(n, renderSheet, fetcher)
	}
	return "", &RefError{Msg: "unknown node type"}
}

func formatCellRef(sheet ids.SheetId, cell base.CellId, renderSheet ids.SheetId, fetcher NameFetcher) (string, error) {
	row, col, err := fetcher.CellIndexOf(sheet, cell)
	if err != nil {
		return "", &RefError{Msg: err.Error()}
	}
	addr := colLetters(col) + strconv.Itoa(row+1)
	if sheet == renderSheet {
		return addr, nil
	}
	name, ok := fetcher.SheetName(sheet)
	if !ok {
		return "", &RefError{Msg: "sheet no longer exists"}
	}
	return quoteSheetName(name) + "!" + addr, nil
}

func formatNumber(v float64) string {
	if v == float64(int64(v)) {
		return strconv.FormatInt(int64(v), 10)
	}
	return strconv.FormatFloat(v, 'g', -1, 64)
}

func unparseBinary(n *BinaryOpNode, renderSheet ids.SheetId, fetcher NameFetcher) (string, error) {
	prec := precedenceOf(n)
	// right operand of a left-associative op, or either operand of the
	// right-associative power op, must never silently drop parens that
	// change associativity: bump the required precedence on the side
	// where equal precedence is not safe to leave bare.
	leftMin, rightMin := prec, prec+1
	if n.Op == OpPower {
		leftMin, rightMin = prec+1, prec
	}

	left, err := unparseExpr(n.Left, renderSheet, fetcher, leftMin)
	if err != nil {
		return "", err
	}
	right, err := unparseExpr(n.Right, renderSheet, fetcher, rightMin)
	if err != nil {
		return "", err
	}
	return left + binaryOpText(n.Op) + right, nil
}

func binaryOpText(op BinaryOp) string {
	switch op {
	case OpAdd:
		return "+"
	case OpSubtract:
		return "-"
	case OpMultiply:
		return "*"
	case OpDivide:
		return "/"
	case OpPower:
		return "^"
	case OpConcat:
		return "&"
	case OpEqual:
		return "="
	case OpNotEqual:
		return "<>"
	case OpLess:
		return "<"
	case OpLessEqual:
		return "<="
	case OpGreater:
		return ">"
	case OpGreaterEqual:
		return ">="
	}
	return "?"
}

func unparseUnary(n *UnaryOpNode, renderSheet ids.SheetId, fetcher NameFetcher) (string, error) {
	prec := precedenceOf(n)
	operand, err := unparseExpr(n.Operand, renderSheet, fetcher, prec)
	if err != nil {
		return "", err
	}
	switch n.Op {
	case OpPlus:
		return "+" + operand, nil
	case OpMinus:
		return "-" + operand, nil
	case OpPercent:
		return operand + "%", nil
	}
	return "", &RefError{Msg: "unknown unary operator"}
}

func unparseFunctionCall(n *FunctionCallNode, renderSheet ids.SheetId, fetcher NameFetcher) (string, error) {
	name, ok := fetcher.FuncNameFor(n.Func)
	if !ok {
		return "", &RefError{Msg: "function no longer registered"}
	}
	args := make([]string, len(n.Args))
	for i, arg := range n.Args {
		s, err := unparseExpr(arg, renderSheet, fetcher, 0)
		if err != nil {
			return "", err
		}
		args[i] = s
	}
	return fmt.Sprintf("%s(%s)", name, strings.Join(args, ",")), nil
}
