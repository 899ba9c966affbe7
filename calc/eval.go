// Package calc implements CalcEngine (spec.md §4.7): evaluation of the
// dirty set in topological order, FuncId dispatch, and CellValue
// error-propagation.
//
// Grounded on the teacher's embedded Eval methods (superseded by this
// package) and builtin.go's Call dispatch, generalized so that every
// reference - cell, range, or name - resolves through identity rather
// than position, per the formula package it evaluates.
package calc

import (
	"math"
	"strings"

	"github.com/sheetkernel/engine/base"
	"github.com/sheetkernel/engine/calc/functions"
	"github.com/sheetkernel/engine/formula"
	"github.com/sheetkernel/engine/ids"
)

// ValueSource answers the precedent reads an Evaluator needs: a single
// cell's current value, or every value in a materialized range (spec.md
// §4.6 "Edge derivation... a range reference contributes one edge per
// cell in the current materialization of the range").
type ValueSource interface {
	CellValue(sheet ids.SheetId, cell base.CellId) base.CellValue
	RangeValues(sheet ids.SheetId, from, to base.CellId) ([]base.CellValue, error)
}

// Evaluator evaluates one formula.Node against a ValueSource. Aside from
// the async bookkeeping below, it carries no state of its own across
// calls, so one Evaluator may be reused for every vertex in a
// calculation pass - Engine.Recalculate resets current/Started per
// vertex it visits.
type Evaluator struct {
	Source ValueSource
	Texts  ids.TextIdManager
	Funcs  *functions.Registry

	// Pending tracks outstanding async Tasks (spec.md §5, §7 item 5). A
	// nil Pending disables async tracking entirely: async-capable
	// functions fall back to Registry.Call's synchronous behavior, which
	// is what xlsxio's one-shot load pass (no host to deliver an
	// AsyncCalcResult to) wants.
	Pending *PendingTasks
	// Started collects every Task newly registered during the vertex
	// currently (or most recently) being evaluated; Engine.Recalculate
	// drains it after each vertex.
	Started []Task

	current base.SheetCell
}

// NewEvaluator builds an Evaluator. Funcs is typically shared process-wide
// since it only maps FuncId to behavior.
func NewEvaluator(source ValueSource, texts ids.TextIdManager, funcs *functions.Registry) *Evaluator {
	return &Evaluator{Source: source, Texts: texts, Funcs: funcs}
}

// Eval produces the CellValue a formula.Node evaluates to. sheet is the
// vertex's own sheet, used to resolve range/name precedents that carry
// no explicit sheet of their own.
func (e *Evaluator) Eval(sheet ids.SheetId, node formula.Node) base.CellValue {
	switch n := node.(type) {
	case *formula.NumberNode:
		return base.Num(n.Value)
	case *formula.StringNode:
		return base.InlineStr(n.Value)
	case *formula.BooleanNode:
		return base.Bool(n.Value)
	case *formula.CellRefNode:
		return e.Source.CellValue(n.Sheet, n.Cell)
	case *formula.RangeNode:
		// a bare range outside a function call (e.g. "=A1:A3") has no
		// scalar reduction defined; Excel itself rejects this shape.
		return base.Err(base.ErrValue)
	case *formula.NameRefNode:
		// defined-name value resolution belongs to the excluded name
		// table collaborator (spec.md §1 Non-goals); this engine only
		// tracks NameId dependency edges, not name bodies.
		return base.Err(base.ErrName)
	case *formula.UnaryOpNode:
		return e.evalUnary(sheet, n)
	case *formula.BinaryOpNode:
		return e.evalBinary(sheet, n)
	case *formula.FunctionCallNode:
		return e.evalCall(sheet, n)
	}
	return base.Err(base.ErrValue)
}

func (e *Evaluator) evalUnary(sheet ids.SheetId, n *formula.UnaryOpNode) base.CellValue {
	v := e.Eval(sheet, n.Operand)
	if v.IsError() {
		return v
	}
	num, errv, ok := e.toNumber(v)
	if !ok {
		return errv
	}
	switch n.Op {
	case formula.OpPlus:
		return base.Num(num)
	case formula.OpMinus:
		return base.Num(-num)
	case formula.OpPercent:
		return base.Num(num / 100)
	}
	return base.Err(base.ErrValue)
}

func (e *Evaluator) evalBinary(sheet ids.SheetId, n *formula.BinaryOpNode) base.CellValue {
	left := e.Eval(sheet, n.Left)
	if left.IsError() {
		return left
	}
	right := e.Eval(sheet, n.Right)
	if right.IsError() {
		return right
	}

	switch n.Op {
	case formula.OpConcat:
		return base.FormulaStr(e.toText(left) + e.toText(right))
	case formula.OpEqual, formula.OpNotEqual, formula.OpLess, formula.OpLessEqual, formula.OpGreater, formula.OpGreaterEqual:
		return e.compare(n.Op, left, right)
	}

	lnum, errv, ok := e.toNumber(left)
	if !ok {
		return errv
	}
	rnum, errv, ok := e.toNumber(right)
	if !ok {
		return errv
	}

	switch n.Op {
	case formula.OpAdd:
		return base.Num(lnum + rnum)
	case formula.OpSubtract:
		return base.Num(lnum - rnum)
	case formula.OpMultiply:
		return base.Num(lnum * rnum)
	case formula.OpDivide:
		if rnum == 0 {
			return base.Err(base.ErrDiv0)
		}
		return base.Num(lnum / rnum)
	case formula.OpPower:
		return base.Num(math.Pow(lnum, rnum))
	}
	return base.Err(base.ErrValue)
}

// compare orders left and right numerically when both are numbers,
// dates or booleans, falling back to a case-insensitive text comparison
// otherwise. Text is never converted to a number here, so 10 > 9 but the
// texts "10" < "9", and "Apple" < "Banana".
func (e *Evaluator) compare(op formula.BinaryOp, left, right base.CellValue) base.CellValue {
	var cmp int
	if ln, lok := numericValue(left); lok {
		if rn, rok := numericValue(right); rok {
			switch {
			case ln < rn:
				cmp = -1
			case ln > rn:
				cmp = 1
			default:
				cmp = 0
			}
			return compareResult(op, cmp)
		}
	}
	cmp = strings.Compare(strings.ToUpper(e.toText(left)), strings.ToUpper(e.toText(right)))
	return compareResult(op, cmp)
}

func compareResult(op formula.BinaryOp, cmp int) base.CellValue {
	switch op {
	case formula.OpEqual:
		return base.Bool(cmp == 0)
	case formula.OpNotEqual:
		return base.Bool(cmp != 0)
	case formula.OpLess:
		return base.Bool(cmp < 0)
	case formula.OpLessEqual:
		return base.Bool(cmp <= 0)
	case formula.OpGreater:
		return base.Bool(cmp > 0)
	case formula.OpGreaterEqual:
		return base.Bool(cmp >= 0)
	}
	return base.Err(base.ErrValue)
}

func (e *Evaluator) evalCall(sheet ids.SheetId, n *formula.FunctionCallNode) base.CellValue {
	args, errv, ok := e.evalArgs(sheet, n.Args)
	if !ok {
		return errv
	}
	if e.Pending != nil && e.Funcs.IsAsync(n.Func) {
		if ev, isErr := firstErrorValue(args); isErr {
			return ev
		}
		return e.evalAsync()
	}
	return e.Funcs.Call(n.Func, args, e.Texts)
}

// evalAsync handles a FuncId the registry marked async-capable (spec.md
// §5, §7 item 5). The first time the cell currently being evaluated
// reaches it, it registers a Task and yields the pending marker; once
// the cell is already waiting it keeps yielding pending without
// registering a second Task, so the same cell doesn't get resubmitted
// on every recalculation pass while its result is still outstanding.
func (e *Evaluator) evalAsync() base.CellValue {
	if e.Pending.Waiting(e.current) {
		return base.Pending()
	}
	task := e.Pending.Begin(e.current, taskIdFor(e.current))
	e.Started = append(e.Started, task)
	return base.Pending()
}

func firstErrorValue(args functions.Args) (base.CellValue, bool) {
	for _, a := range args {
		if a.IsError() {
			return a, true
		}
	}
	return base.CellValue{}, false
}

// evalArgs flattens n's arguments into the registry's Args shape, with
// bare RangeNode arguments expanding to one value per materialized cell
// (spec.md §4.6 "Edge derivation") while every other argument shape
// evaluates to exactly one value.
func (e *Evaluator) evalArgs(sheet ids.SheetId, nodes []formula.Node) (functions.Args, base.CellValue, bool) {
	var args functions.Args
	for _, node := range nodes {
		if rng, ok := node.(*formula.RangeNode); ok {
			values, err := e.Source.RangeValues(rng.Sheet, rng.From, rng.To)
			if err != nil {
				return nil, base.Err(base.ErrRef), false
			}
			args = append(args, values...)
			continue
		}
		args = append(args, e.Eval(sheet, node))
	}
	return args, base.CellValue{}, true
}
