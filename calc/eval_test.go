package calc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sheetkernel/engine/base"
	"github.com/sheetkernel/engine/calc/functions"
	"github.com/sheetkernel/engine/container"
	"github.com/sheetkernel/engine/formula"
)

func TestEvalArithmetic(t *testing.T) {
	r := newRig()
	sheet := r.addSheet("Sheet1", 10, 10)
	r.setNumber(sheet, 0, 0, 1)
	r.setNumber(sheet, 1, 0, 2)

	node, err := formula.Parse("=A1+A2*3", sheet, 0, r)
	require.NoError(t, err)

	eval := NewEvaluator(r.source(), r.texts, functions.NewRegistry(r.funcs))
	got := eval.Eval(sheet, node)
	assert.Equal(t, base.Num(7), got)
}

func TestEvalDivisionByZero(t *testing.T) {
	r := newRig()
	sheet := r.addSheet("Sheet1", 10, 10)
	r.setNumber(sheet, 0, 0, 1)
	r.setNumber(sheet, 1, 0, 0)

	node, err := formula.Parse("=A1/A2", sheet, 0, r)
	require.NoError(t, err)

	eval := NewEvaluator(r.source(), r.texts, functions.NewRegistry(r.funcs))
	got := eval.Eval(sheet, node)
	assert.Equal(t, base.Err(base.ErrDiv0), got)
}

func TestEvalErrorPropagatesThroughDependents(t *testing.T) {
	r := newRig()
	sheet := r.addSheet("Sheet1", 10, 10)
	r.setNumber(sheet, 0, 0, 1)
	r.setNumber(sheet, 1, 0, 0)

	a3, err := formula.Parse("=A1/A2", sheet, 0, r)
	require.NoError(t, err)
	b1, err := formula.Parse("=A3+1", sheet, 0, r)
	require.NoError(t, err)

	eval := NewEvaluator(r.source(), r.texts, functions.NewRegistry(r.funcs))
	a3Cell, _ := r.CellIdAt(sheet, 2, 0)
	r.cont = r.cont.WithCell(sheet, a3Cell, container.Cell{Value: eval.Eval(sheet, a3), HasFormula: true})
	eval.Source = r.source()

	got := eval.Eval(sheet, b1)
	assert.Equal(t, base.Err(base.ErrDiv0), got)
}

func TestEvalSumOverRange(t *testing.T) {
	r := newRig()
	sheet := r.addSheet("Sheet1", 10, 10)
	r.setNumber(sheet, 0, 0, 1)
	r.setNumber(sheet, 1, 0, 2)
	r.setNumber(sheet, 2, 0, 3)

	node, err := formula.Parse("=SUM(A1:A3)", sheet, 0, r)
	require.NoError(t, err)

	eval := NewEvaluator(r.source(), r.texts, functions.NewRegistry(r.funcs))
	got := eval.Eval(sheet, node)
	assert.Equal(t, base.Num(6), got)
}

func TestEvalConcatOperator(t *testing.T) {
	r := newRig()
	sheet := r.addSheet("Sheet1", 10, 10)

	node, err := formula.Parse(`="foo"&"bar"`, sheet, 0, r)
	require.NoError(t, err)

	eval := NewEvaluator(r.source(), r.texts, functions.NewRegistry(r.funcs))
	got := eval.Eval(sheet, node)
	assert.Equal(t, base.ValueFormulaStr, got.Kind)
	assert.Equal(t, "foobar", got.Inline)
}
