// Package xlsxio implements spec.md §6's file-format boundary: reading
// and writing the Office Open XML Spreadsheet package into and out of a
// controller.Status. Grounded on github.com/xuri/excelize/v2 for the
// ZIP/XML layer itself — the library the teacher's go.mod and the rest
// of the retrieved pack both reach for whenever they touch this format —
// so this package's own job is only translating between excelize's
// position-keyed rows/cells and the engine's identity-keyed Status.
package xlsxio

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/sheetkernel/engine/base"
	"github.com/sheetkernel/engine/calc"
	"github.com/sheetkernel/engine/calc/functions"
	"github.com/sheetkernel/engine/container"
	"github.com/sheetkernel/engine/controller"
	"github.com/sheetkernel/engine/formula"
	"github.com/sheetkernel/engine/ids"
	"github.com/sheetkernel/engine/navigator"
)

// Load parses buf into a fresh Status: every sheet, its rows/columns
// seeded 0..n-1 in reading order, every literal value, and every
// formula that formula.Parse accepts registered against FormulaManager,
// followed by one full recalculation so the returned Status's cells
// already hold their computed values. A package excelize cannot open
// fails the whole load. A formula that does not parse (for instance one
// pointing at a cell outside the rows/columns loaded so far) does not
// fail the load: its text is stored as a FormulaStr value and it is not
// registered.
func Load(buf []byte) (*controller.Status, error) {
	f, err := excelize.OpenReader(bytes.NewReader(buf))
	if err != nil {
		return nil, fmt.Errorf("xlsxio: %w", err)
	}
	defer f.Close()

	status := controller.NewStatus()
	sheetNames := f.GetSheetList()

	for _, name := range sheetNames {
		sheet := status.Sheets.GetId(name)
		status.Positions.Append(sheet)
	}

	fetcher := controller.NewFetcher(status)
	var roots []base.SheetCell

	for _, name := range sheetNames {
		sheet, _ := status.Sheets.Has(name)
		rows, err := f.GetRows(name)
		if err != nil {
			return nil, fmt.Errorf("xlsxio: sheet %q: %w", name, err)
		}

		numCols := 0
		for _, row := range rows {
			if len(row) > numCols {
				numCols = len(row)
			}
		}

		data := navigator.NewData()
		for r := range rows {
			data.Rows = append(data.Rows, ids.RowId(r))
		}
		for c := 0; c < numCols; c++ {
			data.Cols = append(data.Cols, ids.ColId(c))
		}
		status.Data[sheet] = data
		status.SeedSequences(sheet, len(rows), numCols)

		for r, row := range rows {
			for c := range row {
				cellID := base.NewNormalCellId(ids.RowId(r), ids.ColId(c))
				axis, err := excelize.CoordinatesToCellName(c+1, r+1)
				if err != nil {
					continue
				}

				if text, _ := f.GetCellFormula(name, axis); text != "" {
					ast, err := formula.Parse("="+text, sheet, 0, fetcher)
					if err != nil {
						status.Container = status.Container.WithCell(sheet, cellID, container.Cell{Value: base.FormulaStr(text)})
						continue
					}
					vertex := base.SheetCell{Sheet: sheet, Cell: cellID}
					status.Graph.SetFormula(vertex, ast)
					status.Container = status.Container.WithCell(sheet, cellID, container.Cell{HasFormula: true})
					roots = append(roots, vertex)
					continue
				}

				val, err := f.GetCellValue(name, axis)
				if err != nil || val == "" {
					continue
				}
				status.Container = status.Container.WithCell(sheet, cellID, container.Cell{Value: coerceValue(val, status)})
			}
		}
	}

	if len(roots) > 0 {
		source := calc.NewContainerSource(status.Nav, status.Data, status.Container)
		registry := functions.NewRegistry(status.Funcs)
		evaluator := calc.NewEvaluator(source, status.Texts, registry)
		engine := calc.NewEngine(evaluator)
		newContainer, _, _, _ := engine.Recalculate(status.Graph, source, roots, nil)
		status.Container = newContainer
	}

	return status, nil
}

func coerceValue(val string, status *controller.Status) base.CellValue {
	if n, err := strconv.ParseFloat(val, 64); err == nil {
		return base.Num(n)
	}
	if val == "TRUE" || val == "FALSE" {
		return base.Bool(val == "TRUE")
	}
	return base.Str(status.Texts.GetId(val))
}

// Save renders status back into an XLSX package, writing every sheet in
// display order, each cell as either a formula (unparsed back to text)
// or a literal value.
func Save(status *controller.Status) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	fetcher := controller.NewFetcher(status)
	sheets := status.Positions.All()

	for i, sheet := range sheets {
		name, ok := status.Sheets.GetKey(sheet)
		if !ok {
			continue
		}
		if i == 0 {
			if def := f.GetSheetName(0); def != "" {
				_ = f.SetSheetName(def, name)
			}
		} else if _, err := f.NewSheet(name); err != nil {
			return nil, fmt.Errorf("xlsxio: %w", err)
		}

		data := status.Data[sheet]
		if data == nil {
			continue
		}
		for r := range data.Rows {
			for c := range data.Cols {
				cellID, err := status.Nav.FetchCellId(sheet, data, r, c)
				if err != nil {
					continue
				}
				cell, ok := status.Container.GetCell(sheet, cellID)
				if !ok {
					continue
				}
				axis, err := excelize.CoordinatesToCellName(c+1, r+1)
				if err != nil {
					continue
				}

				if cell.HasFormula {
					vertex := base.SheetCell{Sheet: sheet, Cell: cellID}
					if ast, ok := status.Graph.GetFormula(vertex); ok {
						if text, err := formula.Unparse(ast, sheet, fetcher); err == nil {
							_ = f.SetCellFormula(name, axis, strings.TrimPrefix(text, "="))
							continue
						}
					}
				}
				writeCellValue(f, name, axis, cell.Value, status)
			}
		}
	}

	var buf bytes.Buffer
	if _, err := f.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("xlsxio: %w", err)
	}
	return buf.Bytes(), nil
}

func writeCellValue(f *excelize.File, sheet, axis string, v base.CellValue, status *controller.Status) {
	switch v.Kind {
	case base.ValueNumber:
		_ = f.SetCellValue(sheet, axis, v.Number)
	case base.ValueBoolean:
		_ = f.SetCellValue(sheet, axis, v.Boolean)
	case base.ValueString:
		text, _ := status.Texts.GetKey(v.Text)
		_ = f.SetCellValue(sheet, axis, text)
	case base.ValueInlineStr, base.ValueFormulaStr:
		_ = f.SetCellValue(sheet, axis, v.Inline)
	case base.ValueError:
		_ = f.SetCellValue(sheet, axis, v.Error.String())
	case base.ValueDate:
		_ = f.SetCellValue(sheet, axis, float64(v.Date))
	}
}
