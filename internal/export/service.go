// Package export renders extraction results, table dumps and batch summaries
// as XLSX workbooks.
package export

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/chehxing/docx-to-excel/constants"
	"github.com/chehxing/docx-to-excel/internal/common"
)

// Entries is an ordered field→value mapping.
type Entries interface {
	Len() int
	Each(fn func(name, value string))
}

// Service writes workbooks to disk.
type Service struct {
	logger *slog.Logger
}

func NewService(logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{logger: logger}
}

// WriteFields writes a two-column "Field Name | Field Value" sheet.
func (s *Service) WriteFields(entries Entries, path string) error {
	start := time.Now()

	f, err := newWorkbook(constants.SheetExtracted)
	if err != nil {
		return common.PersistenceError(path, err)
	}
	defer f.Close()

	sheet := constants.SheetExtracted
	if err := setRow(f, sheet, 1, []any{"Field Name", "Field Value"}); err != nil {
		return common.PersistenceError(path, err)
	}
	row := 2
	var werr error
	entries.Each(func(name, value string) {
		if werr == nil {
			werr = setRow(f, sheet, row, []any{name, value})
		}
		row++
	})
	if werr != nil {
		return common.PersistenceError(path, werr)
	}

	_ = f.SetColWidth(sheet, "A", "A", 20)
	_ = f.SetColWidth(sheet, "B", "B", 40)

	n, err := save(f, path)
	if err != nil {
		return err
	}
	s.logger.Info("export.xlsx.ok",
		"path", path,
		"rows", entries.Len(),
		"bytes", n,
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return nil
}

// FillTemplate substitutes every "{name}" placeholder in the string cells of
// the template's active sheet and saves the result to path. Fields are
// applied in order; unknown placeholders and formula cells are left alone.
// A template path that does not exist falls back to WriteFields.
func (s *Service) FillTemplate(entries Entries, templatePath, path string) error {
	start := time.Now()

	if _, err := os.Stat(templatePath); errors.Is(err, fs.ErrNotExist) {
		s.logger.Warn("template not found, writing a new workbook", "template", templatePath)
		return s.WriteFields(entries, path)
	}

	f, err := excelize.OpenFile(templatePath)
	if err != nil {
		return common.PersistenceError(path, fmt.Errorf("open template %q: %w", templatePath, err))
	}
	defer f.Close()

	sheet := f.GetSheetName(f.GetActiveSheetIndex())
	rows, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return common.PersistenceError(path, fmt.Errorf("read template sheet %q: %w", sheet, err))
	}

	replaced := 0
	for r, cols := range rows {
		for c, value := range cols {
			if !strings.Contains(value, "{") {
				continue
			}
			cell, err := excelize.CoordinatesToCellName(c+1, r+1)
			if err != nil {
				return common.PersistenceError(path, err)
			}
			if formula, _ := f.GetCellFormula(sheet, cell); formula != "" {
				continue
			}
			out := Substitute(value, entries)
			if out == value {
				continue
			}
			if err := f.SetCellStr(sheet, cell, out); err != nil {
				return common.PersistenceError(path, err)
			}
			replaced++
		}
	}

	n, err := save(f, path)
	if err != nil {
		return err
	}
	s.logger.Info("export.template.ok",
		"template", templatePath,
		"path", path,
		"sheet", sheet,
		"cells", replaced,
		"bytes", n,
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return nil
}

// Substitute replaces each "{name}" in text with its value, field by field
// in order.
func Substitute(text string, entries Entries) string {
	entries.Each(func(name, value string) {
		text = strings.ReplaceAll(text, "{"+name+"}", value)
	})
	return text
}

// newWorkbook returns a workbook whose only sheet is named sheet.
func newWorkbook(sheet string) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName(f.GetSheetName(0), sheet); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("sheet name %q: %w", sheet, err)
	}
	return f, nil
}

// addSheet appends a sheet, or renames the default one when first is true.
func addSheet(f *excelize.File, sheet string, first bool) error {
	if first {
		return f.SetSheetName(f.GetSheetName(0), sheet)
	}
	_, err := f.NewSheet(sheet)
	return err
}

func setRow(f *excelize.File, sheet string, row int, values []any) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	return f.SetSheetRow(sheet, cell, &values)
}

func columnName(col int) string {
	name, err := excelize.ColumnNumberToName(col)
	if err != nil {
		return "A"
	}
	return name
}
