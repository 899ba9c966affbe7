package calc

import (
	"strconv"
	"strings"

	"github.com/sheetkernel/engine/base"
)

// toNumber coerces v per spec.md §4.7's boolean/number coercion rule,
// generalized to every CellValue variant: booleans and numeric text
// convert, blanks read as zero, and an error propagates unchanged
// instead of becoming #VALUE!.
func (e *Evaluator) toNumber(v base.CellValue) (float64, base.CellValue, bool) {
	switch v.Kind {
	case base.ValueNumber:
		return v.Number, base.CellValue{}, true
	case base.ValueDate:
		return float64(v.Date), base.CellValue{}, true
	case base.ValueBoolean:
		if v.Boolean {
			return 1, base.CellValue{}, true
		}
		return 0, base.CellValue{}, true
	case base.ValueBlank:
		return 0, base.CellValue{}, true
	case base.ValueString, base.ValueInlineStr, base.ValueFormulaStr:
		n, err := strconv.ParseFloat(strings.TrimSpace(e.toText(v)), 64)
		if err != nil {
			return 0, base.Err(base.ErrValue), false
		}
		return n, base.CellValue{}, true
	case base.ValueError:
		return 0, v, false
	}
	return 0, base.Err(base.ErrValue), false
}

// toText renders v the way CONCATENATE and the "&" operator do.
func (e *Evaluator) toText(v base.CellValue) string {
	switch v.Kind {
	case base.ValueString:
		s, _ := e.Texts.GetKey(v.Text)
		return s
	case base.ValueInlineStr, base.ValueFormulaStr:
		return v.Inline
	case base.ValueNumber:
		return formatNumber(v.Number)
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

func formatNumber(v float64) string {
	if v == float64(int64(v)) {
		return strconv.FormatInt(int64(v), 10)
	}
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// numericValue is the non-string-coercing half of toNumber, used by
// comparisons to decide whether both sides can be compared numerically
// before falling back to a text comparison.
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
