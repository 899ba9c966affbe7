// Command sheetctl is a small manual-exercise harness over workbook,
// xlsxio, and controller: load a workbook, inspect or set one cell,
// optionally save the result back out. Flag layout follows
// bisibesi-spec-recon's cmd/spec-recon: an init() registering flags onto
// package vars, a run() that returns an exit code instead of calling
// os.Exit directly, and main() doing nothing but dispatch.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/xuri/excelize/v2"

	"github.com/sheetkernel/engine/base"
	"github.com/sheetkernel/engine/controller"
	"github.com/sheetkernel/engine/engineconfig"
	"github.com/sheetkernel/engine/enginelog"
	"github.com/sheetkernel/engine/workbook"
	"github.com/sheetkernel/engine/xlsxio"
)

const (
	appName    = "sheetctl"
	appVersion = "0.1.0"
)

var (
	inputPath  string
	configPath string
	sheetName  string
	cellAxis   string
	setValue   string
	outputPath string
	showVer    bool
)

func init() {
	flag.StringVar(&inputPath, "in", "", "path to an XLSX file to load")
	flag.StringVar(&configPath, "config", "", "path to a sheetkernel.yaml config file")
	flag.StringVar(&sheetName, "sheet", "", "sheet name (defaults to the first sheet)")
	flag.StringVar(&cellAxis, "cell", "", "cell address, e.g. B2")
	flag.StringVar(&setValue, "set", "", "if given, write this literal value into -cell before printing it")
	flag.StringVar(&outputPath, "out", "", "if given, save the resulting workbook to this path")
	flag.BoolVar(&showVer, "version", false, "print version and exit")
}

func main() {
	flag.Parse()
	os.Exit(run())
}

func run() int {
	if showVer {
		fmt.Printf("%s %s\n", appName, appVersion)
		return 0
	}

	cfg, err := engineconfig.Load(configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, "sheetctl: config:", err)
		return 1
	}
	log := enginelog.FromLevelName("sheetctl", cfg.Logging.Level)

	if inputPath == "" {
		fmt.Fprintln(os.Stderr, "sheetctl: -in is required")
		return 1
	}
	buf, err := os.ReadFile(inputPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, "sheetctl: read:", err)
		return 1
	}

	wb, err := workbook.FromFile(buf, inputPath)
	if err != nil {
		log.Error().Err(err).Msg("load failed")
		return 1
	}
	log.Info().Str("path", inputPath).Msg("loaded workbook")

	var ws *workbook.Worksheet
	if sheetName != "" {
		ws, err = wb.GetSheetByName(sheetName)
	} else {
		ws, err = wb.GetSheetByIdx(0)
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, "sheetctl: sheet:", err)
		return 1
	}

	if cellAxis != "" {
		row, col, err := parseAxis(cellAxis)
		if err != nil {
			fmt.Fprintln(os.Stderr, "sheetctl:", err)
			return 1
		}

		if setValue != "" {
			if _, _, err := wb.Controller().ApplyTransaction(&controller.SetCellValue{
				Sheet: ws.SheetId(),
				Row:   row,
				Col:   col,
				Value: base.InlineStr(setValue),
			}); err != nil {
				fmt.Fprintln(os.Stderr, "sheetctl: set:", err)
				return 1
			}
			log.Info().Str("cell", cellAxis).Str("value", setValue).Msg("cell updated")
		}

		val, err := ws.GetValue(row, col)
		if err != nil {
			fmt.Fprintln(os.Stderr, "sheetctl: get:", err)
			return 1
		}
		fmt.Printf("%s = %s\n", cellAxis, formatValue(val))

		if text, err := ws.GetFormula(row, col); err == nil && text != "" {
			fmt.Printf("%s formula: %s\n", cellAxis, text)
		}
	} else {
		rows, cols := ws.GetSheetDimension()
		fmt.Printf("sheet dimension: %d rows x %d cols\n", rows, cols)
	}

	if outputPath != "" {
		out, err := xlsxio.Save(wb.Controller().Status())
		if err != nil {
			fmt.Fprintln(os.Stderr, "sheetctl: save:", err)
			return 1
		}
		if err := os.WriteFile(outputPath, out, 0644); err != nil {
			fmt.Fprintln(os.Stderr, "sheetctl: write:", err)
			return 1
		}
		log.Info().Str("path", outputPath).Msg("saved workbook")
	}

	return 0
}

func parseAxis(axis string) (row, col int, err error) {
	col0, row0, err := excelize.CellNameToCoordinates(axis)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid cell address %q: %w", axis, err)
	}
	return row0 - 1, col0 - 1, nil
}

func formatValue(v workbook.Value) string {
	switch v.Kind {
	case workbook.NumberValue:
		return fmt.Sprintf("%g", v.Number)
	case workbook.BoolValue:
		return fmt.Sprintf("%t", v.Bool)
	case workbook.StrValue:
		return v.Str
	case workbook.ErrorValue:
		return v.Error
	default:
		return ""
	}
}
