// Package functions is the minimal FuncId-dispatched function registry
// standing in for the excluded full built-in function library (spec.md
// §1 Non-goals, SPEC_FULL.md §2). Grounded on the teacher's
// BuiltInFunctions.Call switch (builtin.go), reduced to the handful of
// functions that exercise every CellValue/error-propagation path named
// in spec.md §4.7, plus the bond-math helpers spec.md §8 scenario 3
// names directly.
package functions

import (
	"math"
	"strconv"
	"strings"

	"github.com/sheetkernel/engine/base"
	"github.com/sheetkernel/engine/ids"
)

// Args is the flattened argument list a function receives: range
// arguments have already been expanded to one CellValue per cell.
type Args []base.CellValue

// Func is a built-in function implementation. texts resolves
// base.ValueString's TextId back to the interned string, the same
// table the Evaluator reads cell text through.
type Func func(args Args, texts ids.TextIdManager) base.CellValue

// Registry dispatches a FuncId to its implementation.
type Registry struct {
	fns   map[ids.FuncId]Func
	async map[ids.FuncId]bool
}

// NewRegistry builds a Registry, interning every built-in's name into
// funcs so FuncIdFor/FuncNameFor (formula.IdFetcher/NameFetcher) see the
// same ids CalcEngine dispatches on.
func NewRegistry(funcs ids.FuncIdManager) *Registry {
	r := &Registry{fns: make(map[ids.FuncId]Func), async: make(map[ids.FuncId]bool)}
	reg := func(name string, fn Func) { r.fns[funcs.GetFuncId(name)] = fn }
	regAsync := func(name string, fn Func) {
		id := funcs.GetFuncId(name)
		r.fns[id] = fn
		r.async[id] = true
	}

	reg("SUM", sum)
	reg("AVERAGE", average)
	reg("COUNT", count)
	reg("MAX", maxFn)
	reg("MIN", minFn)
	reg("IF", ifFn)
	reg("AND", andFn)
	reg("OR", orFn)
	reg("NOT", notFn)
	reg("CONCATENATE", concatenate)
	reg("ABS", abs)
	reg("ROUND", round)
	reg("COUPPCD", couppcdFn)
	reg("COUPNCD", coupncdFn)
	reg("COUPNUM", coupnumFn)
	regAsync("WEBSERVICE", webserviceFn)

	return r
}

// Call dispatches id against args, reporting #NAME? for an id this
// registry never registered - the same outcome as calling an unknown
// function name (spec.md §7 item 4).
func (r *Registry) Call(id ids.FuncId, args Args, texts ids.TextIdManager) base.CellValue {
	fn, ok := r.fns[id]
	if !ok {
		return base.Err(base.ErrName)
	}
	return fn(args, texts)
}

// IsAsync reports whether id names a function the calc package's
// Evaluator should route through its Task/AsyncCalcResult protocol
// (spec.md §5, §7 item 5) rather than calling directly through Call.
func (r *Registry) IsAsync(id ids.FuncId) bool {
	return r.async[id]
}

// webserviceFn is WEBSERVICE's synchronous fallback: Evaluator only
// reaches Call for an async FuncId when it has no Pending tracker wired
// in (e.g. xlsxio's one-shot load pass, with no host able to deliver an
// AsyncCalcResult), so this just echoes the request text back rather
// than yielding a pending marker nothing would ever resolve.
func webserviceFn(args Args, texts ids.TextIdManager) base.CellValue {
	if len(args) != 1 {
		return base.Err(base.ErrNA)
	}
	if e, ok := firstError(args); ok {
		return e
	}
	return base.InlineStr(textOf(args[0], texts))
}

// firstError returns the first in-cell error among args, mirroring the
// teacher's checkForError short-circuit (builtin.go).
func firstError(args Args) (base.CellValue, bool) {
	for _, a := range args {
		if a.IsError() {
			return a, true
		}
	}
	return base.CellValue{}, false
}

func numericValue(v base.CellValue) (float64, bool) {
	switch v.Kind {
	case base.ValueNumber:
		return v.Number, true
	case base.ValueDate:
		return float64(v.Date), true
	case base.ValueBoolean:
		if v.Boolean {
			return 1, true
		}
		return 0, true
	default:
		return 0, false
	}
}

func sum(args Args, _ ids.TextIdManager) base.CellValue {
	if e, ok := firstError(args); ok {
		return e
	}
	total := 0.0
	for _, a := range args {
		if n, ok := numericValue(a); ok {
			total += n
		}
	}
	return base.Num(total)
}

func average(args Args, _ ids.TextIdManager) base.CellValue {
	if e, ok := firstError(args); ok {
		return e
	}
	total, n := 0.0, 0
	for _, a := range args {
		if v, ok := numericValue(a); ok {
			total += v
			n++
		}
	}
	if n == 0 {
		return base.Err(base.ErrDiv0)
	}
	return base.Num(total / float64(n))
}

func count(args Args, _ ids.TextIdManager) base.CellValue {
	n := 0
	for _, a := range args {
		if a.Kind == base.ValueNumber || a.Kind == base.ValueDate {
			n++
		}
	}
	return base.Num(float64(n))
}

func maxFn(args Args, _ ids.TextIdManager) base.CellValue {
	if e, ok := firstError(args); ok {
		return e
	}
	best, found := math.Inf(-1), false
	for _, a := range args {
		if v, ok := numericValue(a); ok {
			found = true
			if v > best {
				best = v
			}
		}
	}
	if !found {
		return base.Num(0)
	}
	return base.Num(best)
}

func minFn(args Args, _ ids.TextIdManager) base.CellValue {
	if e, ok := firstError(args); ok {
		return e
	}
	best, found := math.Inf(1), false
	for _, a := range args {
		if v, ok := numericValue(a); ok {
			found = true
			if v < best {
				best = v
			}
		}
	}
	if !found {
		return base.Num(0)
	}
	return base.Num(best)
}

func isTruthy(v base.CellValue, texts ids.TextIdManager) (bool, base.CellValue, bool) {
	switch v.Kind {
	case base.ValueBoolean:
		return v.Boolean, base.CellValue{}, true
	case base.ValueNumber:
		return v.Number != 0, base.CellValue{}, true
	case base.ValueDate:
		return v.Date != 0, base.CellValue{}, true
	case base.ValueBlank:
		return false, base.CellValue{}, true
	case base.ValueString, base.ValueInlineStr, base.ValueFormulaStr:
		s := textOf(v, texts)
		switch strings.ToUpper(strings.TrimSpace(s)) {
		case "TRUE":
			return true, base.CellValue{}, true
		case "FALSE":
			return false, base.CellValue{}, true
		}
		return false, base.Err(base.ErrValue), false
	case base.ValueError:
		return false, v, false
	}
	return false, base.Err(base.ErrValue), false
}

func textOf(v base.CellValue, texts ids.TextIdManager) string {
	switch v.Kind {
	case base.ValueString:
		s, _ := texts.GetKey(v.Text)
		return s
	case base.ValueInlineStr, base.ValueFormulaStr:
		return v.Inline
	case base.ValueNumber:
		return strconv.FormatFloat(v.Number, 'g', -1, 64)
	case base.ValueBoolean:
		if v.Boolean {
			return "TRUE"
		}
		return "FALSE"
	case base.ValueDate:
		return strconv.FormatUint(uint64(v.Date), 10)
	case base.ValueError:
		return v.Error.String()
	}
	return ""
}

func ifFn(args Args, texts ids.TextIdManager) base.CellValue {
	if len(args) < 2 || len(args) > 3 {
		return base.Err(base.ErrNA)
	}
	cond, errv, ok := isTruthy(args[0], texts)
	if !ok {
		return errv
	}
	if cond {
		return args[1]
	}
	if len(args) == 3 {
		return args[2]
	}
	return base.Bool(false)
}

func andFn(args Args, texts ids.TextIdManager) base.CellValue {
	for _, a := range args {
		truthy, errv, ok := isTruthy(a, texts)
		if !ok {
			return errv
		}
		if !truthy {
			return base.Bool(false)
		}
	}
	return base.Bool(true)
}

func orFn(args Args, texts ids.TextIdManager) base.CellValue {
	for _, a := range args {
		truthy, errv, ok := isTruthy(a, texts)
		if !ok {
			return errv
		}
		if truthy {
			return base.Bool(true)
		}
	}
	return base.Bool(false)
}

func notFn(args Args, texts ids.TextIdManager) base.CellValue {
	if len(args) != 1 {
		return base.Err(base.ErrNA)
	}
	truthy, errv, ok := isTruthy(args[0], texts)
	if !ok {
		return errv
	}
	return base.Bool(!truthy)
}

func concatenate(args Args, texts ids.TextIdManager) base.CellValue {
	if e, ok := firstError(args); ok {
		return e
	}
	var sb strings.Builder
	for _, a := range args {
		sb.WriteString(textOf(a, texts))
	}
	return base.FormulaStr(sb.String())
}

func abs(args Args, _ ids.TextIdManager) base.CellValue {
	if len(args) != 1 {
		return base.Err(base.ErrNA)
	}
	if e, ok := firstError(args); ok {
		return e
	}
	v, ok := numericValue(args[0])
	if !ok {
		return base.Err(base.ErrValue)
	}
	return base.Num(math.Abs(v))
}

func round(args Args, _ ids.TextIdManager) base.CellValue {
	if len(args) != 2 {
		return base.Err(base.ErrNA)
	}
	if e, ok := firstError(args); ok {
		return e
	}
	v, ok := numericValue(args[0])
	if !ok {
		return base.Err(base.ErrValue)
	}
	digits, ok := numericValue(args[1])
	if !ok {
		return base.Err(base.ErrValue)
	}
	scale := math.Pow(10, digits)
	return base.Num(math.Round(v*scale) / scale)
}

func bondArgs(args Args) (settle, maturity uint32, freq int, ok bool) {
	if len(args) != 3 {
		return 0, 0, 0, false
	}
	s, ok1 := numericValue(args[0])
	m, ok2 := numericValue(args[1])
	f, ok3 := numericValue(args[2])
	if !ok1 || !ok2 || !ok3 {
		return 0, 0, 0, false
	}
	return uint32(s), uint32(m), int(f), true
}

func couppcdFn(args Args, _ ids.TextIdManager) base.CellValue {
	if e, ok := firstError(args); ok {
		return e
	}
	settle, maturity, freq, ok := bondArgs(args)
	if !ok {
		return base.Err(base.ErrValue)
	}
	serial, ok := couppcd(settle, maturity, freq)
	if !ok {
		return base.Err(base.ErrNum)
	}
	return base.DateSerial(serial)
}

func coupncdFn(args Args, _ ids.TextIdManager) base.CellValue {
	if e, ok := firstError(args); ok {
		return e
	}
	settle, maturity, freq, ok := bondArgs(args)
	if !ok {
		return base.Err(base.ErrValue)
	}
	serial, ok := coupncd(settle, maturity, freq)
	if !ok {
		return base.Err(base.ErrNum)
	}
	return base.DateSerial(serial)
}

func coupnumFn(args Args, _ ids.TextIdManager) base.CellValue {
	if e, ok := firstError(args); ok {
		return e
	}
	settle, maturity, freq, ok := bondArgs(args)
	if !ok {
		return base.Err(base.ErrValue)
	}
	n, ok := coupnum(settle, maturity, freq)
	if !ok {
		return base.Err(base.ErrNum)
	}
	return base.Num(float64(n))
}
