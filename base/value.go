package base

import "github.com/sheetkernel/engine/ids"

// ErrorKind enumerates the in-cell error values a formula can produce.
// Grounded on the teacher's ErrorCode (cell.go), extended with #CIRC per
// spec.md §3/§7. The async-pending state (spec.md §7 item 5) is not an
// ErrorKind - it is its own ValuePending variant below, since spec.md is
// explicit that it is "not an error".
type ErrorKind uint8

const (
	ErrNull ErrorKind = iota + 1
	ErrDiv0
	ErrValue
	ErrRef
	ErrName
	ErrNum
	ErrNA
	ErrCirc
	ErrOther
)

// errorText mirrors the teacher's ErrorMapper table (cell.go).
var errorText = map[ErrorKind]string{
	ErrNull:  "#NULL!",
	ErrDiv0:  "#DIV/0!",
	ErrValue: "#VALUE!",
	ErrRef:   "#REF!",
	ErrName:  "#NAME?",
	ErrNum:   "#NUM!",
	ErrNA:    "#N/A",
	ErrCirc:  "#CIRC",
	ErrOther: "#ERROR!",
}

func (e ErrorKind) String() string {
	if s, ok := errorText[e]; ok {
		return s
	}
	return "#ERROR!"
}

// ValueKind discriminates the CellValue tagged union (spec.md §3).
type ValueKind uint8

const (
	ValueBlank ValueKind = iota
	ValueBoolean
	ValueNumber
	ValueString
	ValueInlineStr
	ValueFormulaStr
	ValueDate
	ValueError
	ValuePending
)

// CellValue is the tagged variant {Blank, Boolean, Number, String,
// InlineStr, FormulaStr, Date, Error} from spec.md §3. Number is a 64-bit
// binary float and Date is a 1900-epoch serial, per spec.md §4.7.
type CellValue struct {
	Kind    ValueKind
	Boolean bool
	Number  float64
	Text    ids.TextId // valid when Kind == ValueString
	Inline  string     // valid when Kind == ValueInlineStr or ValueFormulaStr
	Date    uint32     // 1900-epoch serial day count
	Error   ErrorKind
}

func Blank() CellValue { return CellValue{Kind: ValueBlank} }

func Bool(b bool) CellValue { return CellValue{Kind: ValueBoolean, Boolean: b} }

func Num(n float64) CellValue { return CellValue{Kind: ValueNumber, Number: n} }

func Str(id ids.TextId) CellValue { return CellValue{Kind: ValueString, Text: id} }

func InlineStr(s string) CellValue { return CellValue{Kind: ValueInlineStr, Inline: s} }

func FormulaStr(s string) CellValue { return CellValue{Kind: ValueFormulaStr, Inline: s} }

func DateSerial(serial uint32) CellValue { return CellValue{Kind: ValueDate, Date: serial} }

func Err(kind ErrorKind) CellValue { return CellValue{Kind: ValueError, Error: kind} }

// Pending is the distinguished async-wait marker (spec.md §7 item 5):
// "not an error; a distinguished state that keeps the cell in the dirty
// set" until the host delivers the matching AsyncCalcResult.
func Pending() CellValue { return CellValue{Kind: ValuePending} }

// IsError reports whether v carries an in-cell error.
func (v CellValue) IsError() bool { return v.Kind == ValueError }

// IsBlank reports whether v is the empty cell value.
func (v CellValue) IsBlank() bool { return v.Kind == ValueBlank }

// IsPending reports whether v is the async-wait marker.
func (v CellValue) IsPending() bool { return v.Kind == ValuePending }
