// Package workbook is the public façade spec.md §6 names: a `Workbook`
// exposing from_file/get_sheet_by_name/get_sheet_by_idx, and a
// `Worksheet` exposing get_value/get_formula/get_style/get_merge_cells/
// get_comments/get_sheet_dimension.
//
// Grounded on original_source/controller/src/lib.rs's `Workbook`/
// `Worksheet` pair, re-expressed idiomatically: Go has no borrow checker
// to enforce "one mutable Worksheet borrow at a time", so Worksheet here
// is a plain value holding a sheet id and a *controller.Controller
// rather than a lifetime-bound reference.
package workbook

import "github.com/sheetkernel/engine/base"

// ValueKind discriminates the reader-facing Value union — a narrower
// view of base.CellValue that collapses Date/InlineStr into the shapes
// original_source's lib.rs actually exposes to callers outside the
// engine.
type ValueKind int

const (
	Empty ValueKind = iota
	BoolValue
	NumberValue
	StrValue
	ErrorValue
)

// Value is the façade's read-only view of one cell's contents.
type Value struct {
	Kind   ValueKind
	Bool   bool
	Number float64
	Str    string
	Error  string
}

func valueFromCell(cv base.CellValue, textOf func(base.CellValue) string) Value {
	switch cv.Kind {
	case base.ValueBoolean:
		return Value{Kind: BoolValue, Bool: cv.Boolean}
	case base.ValueNumber:
		return Value{Kind: NumberValue, Number: cv.Number}
	case base.ValueString:
		return Value{Kind: StrValue, Str: textOf(cv)}
	case base.ValueFormulaStr:
		return Value{Kind: StrValue, Str: cv.Inline}
	case base.ValueError:
		return Value{Kind: ErrorValue, Error: cv.Error.String()}
	default:
		// Blank, InlineStr, Date all render as Empty, mirroring
		// original_source's lib.rs get_value match arm.
		return Value{Kind: Empty}
	}
}
