package export

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/chehxing/docx-to-excel/constants"
	"github.com/chehxing/docx-to-excel/internal/common"
	"github.com/chehxing/docx-to-excel/internal/inspect"
	"github.com/chehxing/docx-to-excel/internal/utils"
)

const minSummaryWidth = 15

// Statistics are the aggregate rows of the batch workbook.
type Statistics struct {
	Documents int
	Tables    int
	Succeeded int
	Failed    int
}

// Summarize counts docs and tables.
func Summarize(docs []inspect.DocumentInfo, tables []inspect.TableSummary) Statistics {
	st := Statistics{Documents: len(docs), Tables: len(tables)}
	for _, d := range docs {
		if d.Failed() {
			st.Failed++
		} else {
			st.Succeeded++
		}
	}
	return st
}

// WriteSummary writes the consolidated batch workbook: a document sheet and
// a table sheet when they have rows, and always a statistics sheet.
func (s *Service) WriteSummary(docs []inspect.DocumentInfo, tables []inspect.TableSummary, path string) error {
	start := time.Now()
	f := excelize.NewFile()
	defer f.Close()

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return common.PersistenceError(path, err)
	}

	first := true
	if len(docs) > 0 {
		cols := inspect.Columns(docs)
		rows := make([][]any, 0, len(docs))
		for _, d := range docs {
			byName := map[string]any{}
			for _, fl := range d.Fields() {
				byName[fl.Name] = fl.Value
			}
			row := make([]any, len(cols))
			for i, c := range cols {
				if v, ok := byName[c]; ok {
					row[i] = v
				} else {
					row[i] = ""
				}
			}
			rows = append(rows, row)
		}
		if err := writeGrid(f, constants.SheetDocumentInfo, first, cols, rows, bold); err != nil {
			return common.PersistenceError(path, err)
		}
		first = false
	}

	if len(tables) > 0 {
		rows := make([][]any, 0, len(tables))
		for _, t := range tables {
			rows = append(rows, t.Values())
		}
		if err := writeGrid(f, constants.SheetTableSummary, first, inspect.TableColumns, rows, bold); err != nil {
			return common.PersistenceError(path, err)
		}
		first = false
	}

	st := Summarize(docs, tables)
	stats := [][]any{
		{"Documents processed", st.Documents},
		{"Tables found", st.Tables},
		{"Succeeded", st.Succeeded},
		{"Failed", st.Failed},
	}
	if err := writeGrid(f, constants.SheetStatistics, first, []string{"Metric", "Value"}, stats, bold); err != nil {
		return common.PersistenceError(path, err)
	}
	_ = f.SetColWidth(constants.SheetStatistics, "A", "B", 20)

	n, err := save(f, path)
	if err != nil {
		return err
	}
	s.logger.Info("export.summary.ok",
		"path", path,
		"documents", st.Documents,
		"tables", st.Tables,
		"failed", st.Failed,
		"bytes", n,
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return nil
}

// writeGrid adds sheet with a bold header row, widths max(header, 15).
func writeGrid(f *excelize.File, sheet string, first bool, header []string, rows [][]any, bold int) error {
	if err := addSheet(f, sheet, first); err != nil {
		return err
	}
	hdr := make([]any, len(header))
	for i, h := range header {
		hdr[i] = h
	}
	if err := setRow(f, sheet, 1, hdr); err != nil {
		return err
	}
	for i, r := range rows {
		if err := setRow(f, sheet, i+2, r); err != nil {
			return err
		}
	}
	if len(header) == 0 {
		return nil
	}
	if err := f.SetCellStyle(sheet, "A1", cellName(len(header), 1), bold); err != nil {
		return err
	}
	for i, h := range header {
		col := columnName(i + 1)
		if err := f.SetColWidth(sheet, col, col, float64(max(utils.DisplayWidth(h), minSummaryWidth))); err != nil {
			return err
		}
	}
	if first {
		if idx, err := f.GetSheetIndex(sheet); err == nil {
			f.SetActiveSheet(idx)
		}
	}
	return nil
}

// WriteIndividual writes one "Property | Value" workbook per successfully
// inspected document into dir, named after the document. It returns the
// number of workbooks written.
func (s *Service) WriteIndividual(docs []inspect.DocumentInfo, dir string) (int, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return 0, common.PersistenceError(dir, err)
	}
	written := 0
	for _, d := range docs {
		if d.Failed() {
			continue
		}
		path := filepath.Join(dir, strings.TrimSuffix(d.FileName, filepath.Ext(d.FileName))+"."+constants.WorkbookExt)
		if err := s.writeProperties(d, path); err != nil {
			return written, err
		}
		written++
	}
	s.logger.Info("export.individual.ok", "dir", dir, "workbooks", written)
	return written, nil
}

func (s *Service) writeProperties(d inspect.DocumentInfo, path string) error {
	f, err := newWorkbook(constants.SheetDocumentInfo)
	if err != nil {
		return common.PersistenceError(path, err)
	}
	defer f.Close()

	sheet := constants.SheetDocumentInfo
	if err := setRow(f, sheet, 1, []any{"Property", "Value"}); err != nil {
		return common.PersistenceError(path, err)
	}
	row := 2
	for _, fl := range d.Fields() {
		if fl.Name == inspect.ColFileName {
			continue
		}
		if err := setRow(f, sheet, row, []any{fl.Name, fmt.Sprint(fl.Value)}); err != nil {
			return common.PersistenceError(path, err)
		}
		row++
	}
	_ = f.SetColWidth(sheet, "A", "A", 20)
	_ = f.SetColWidth(sheet, "B", "B", 40)
	if bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}}); err == nil {
		_ = f.SetCellStyle(sheet, "A1", "B1", bold)
	}

	_, err = save(f, path)
	return err
}
