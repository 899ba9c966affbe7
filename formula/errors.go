package formula

import "fmt"

// SyntaxError is returned for malformed formula text - unbalanced
// parens, unknown operators, a reference that doesn't resolve to a
// cell shape. It never reaches a cell's stored value and no AST is
// registered: controller.SetCellFormula refuses the payload with an
// InvalidArgument AppError, and xlsxio.Load keeps the unparsed text as
// a FormulaStr value.
type SyntaxError struct {
	Msg string
	Pos int
}

func (e *SyntaxError) Error() string {
	if e.Pos > 0 {
		return fmt.Sprintf("formula: %s (at %d)", e.Msg, e.Pos)
	}
	return "formula: " + e.Msg
}

// RefError is returned by the Unparser when a node's identity no
// longer resolves through the supplied NameFetcher - e.g. the sheet a
// CellRefNode points at was deleted. workbook.Worksheet.GetFormula
// returns it to its caller as an error; xlsxio.Save writes the cell's
// value instead of a formula when Unparse fails.
type RefError struct {
	Msg string
}

func (e *RefError) Error() string { return "formula: " + e.Msg }
