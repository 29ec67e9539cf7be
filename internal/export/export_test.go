package export

import (
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/chehxing/docx-to-excel/constants"
	"github.com/chehxing/docx-to-excel/internal/common"
	"github.com/chehxing/docx-to-excel/internal/inspect"
)

type pairs [][2]string

func (p pairs) Len() int { return len(p) }

func (p pairs) Each(fn func(name, value string)) {
	for _, kv := range p {
		fn(kv[0], kv[1])
	}
}

func newTestService() *Service {
	return NewService(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func openWorkbook(t *testing.T, path string) *excelize.File {
	t.Helper()
	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = f.Close() })
	return f
}

func cellValue(t *testing.T, f *excelize.File, sheet, cell string) string {
	t.Helper()
	v, err := f.GetCellValue(sheet, cell)
	require.NoError(t, err)
	return v
}

func TestWriteFields(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.xlsx")
	err := newTestService().WriteFields(pairs{{"applicant", "Acme"}, {"date", "2024-01-01"}, {"empty", ""}}, path)
	require.NoError(t, err)

	f := openWorkbook(t, path)
	assert.Equal(t, []string{constants.SheetExtracted}, f.GetSheetList())
	rows, err := f.GetRows(constants.SheetExtracted)
	require.NoError(t, err)
	assert.Equal(t, [][]string{
		{"Field Name", "Field Value"},
		{"applicant", "Acme"},
		{"date", "2024-01-01"},
		{"empty"},
	}, rows)

	wa, err := f.GetColWidth(constants.SheetExtracted, "A")
	require.NoError(t, err)
	wb, err := f.GetColWidth(constants.SheetExtracted, "B")
	require.NoError(t, err)
	assert.Equal(t, 20.0, wa)
	assert.Equal(t, 40.0, wb)
}

func writeTemplate(t *testing.T, path string, cells map[string]string, formula map[string]string) {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	sheet := f.GetSheetName(0)
	for cell, v := range cells {
		require.NoError(t, f.SetCellStr(sheet, cell, v))
	}
	for cell, fx := range formula {
		require.NoError(t, f.SetCellFormula(sheet, cell, fx))
	}
	require.NoError(t, f.SaveAs(path))
}

func TestFillTemplate(t *testing.T) {
	entries := pairs{{"applicant", "Acme"}, {"date", "2024-01-01"}}

	t.Run("Should substitute known placeholders and keep unknown ones", func(t *testing.T) {
		dir := t.TempDir()
		tpl := filepath.Join(dir, "template.xlsx")
		writeTemplate(t, tpl, map[string]string{
			"A1": "Name: {applicant}, Date: {date}",
			"B2": "Ref: {reference}",
			"C3": "{applicant}/{applicant}",
			"D4": "plain text",
		}, map[string]string{"E5": `"{applicant}"&"x"`})
		out := filepath.Join(dir, "out.xlsx")

		require.NoError(t, newTestService().FillTemplate(entries, tpl, out))

		f := openWorkbook(t, out)
		sheet := f.GetSheetName(f.GetActiveSheetIndex())
		assert.Equal(t, "Name: Acme, Date: 2024-01-01", cellValue(t, f, sheet, "A1"))
		assert.Equal(t, "Ref: {reference}", cellValue(t, f, sheet, "B2"))
		assert.Equal(t, "Acme/Acme", cellValue(t, f, sheet, "C3"))
		assert.Equal(t, "plain text", cellValue(t, f, sheet, "D4"))
		fx, err := f.GetCellFormula(sheet, "E5")
		require.NoError(t, err)
		assert.Equal(t, `"{applicant}"&"x"`, fx)

		orig := openWorkbook(t, tpl)
		assert.Equal(t, "Name: {applicant}, Date: {date}", cellValue(t, orig, orig.GetSheetName(0), "A1"))
	})

	t.Run("Should write a new workbook when the template is missing", func(t *testing.T) {
		dir := t.TempDir()
		out := filepath.Join(dir, "out.xlsx")
		require.NoError(t, newTestService().FillTemplate(entries, filepath.Join(dir, "missing.xlsx"), out))

		f := openWorkbook(t, out)
		assert.Equal(t, "applicant", cellValue(t, f, constants.SheetExtracted, "A2"))
	})

	t.Run("Should fail with a persistence error for a corrupt template", func(t *testing.T) {
		dir := t.TempDir()
		tpl := filepath.Join(dir, "broken.xlsx")
		require.NoError(t, os.WriteFile(tpl, []byte("not a workbook"), 0o644))
		out := filepath.Join(dir, "out.xlsx")

		err := newTestService().FillTemplate(entries, tpl, out)
		assert.ErrorIs(t, err, common.ErrPersistence)
		assert.NoFileExists(t, out)
	})
}

func TestSubstitute(t *testing.T) {
	entries := pairs{{"a", "{b}"}, {"b", "B"}}
	assert.Equal(t, "B-B", Substitute("{a}-{b}", entries))
	assert.Equal(t, "{c}", Substitute("{c}", entries))
	assert.Equal(t, "", Substitute("", entries))
}

func TestWriteTables(t *testing.T) {
	tables := [][][]string{
		{{"Name", "Description"}, {"apple", "a very long description that certainly exceeds the fifty column limit"}},
		{{"x"}},
	}

	t.Run("Should lay out tables with titles and gaps", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "tables.xlsx")
		require.NoError(t, newTestService().WriteTables(tables, path, TableOptions{Format: true}))

		f := openWorkbook(t, path)
		assert.Equal(t, []string{constants.SheetTables}, f.GetSheetList())
		rows, err := f.GetRows(constants.SheetTables)
		require.NoError(t, err)
		require.Len(t, rows, 7)
		assert.Equal(t, []string{"Table 1"}, rows[0])
		assert.Equal(t, []string{"Name", "Description"}, rows[1])
		assert.Equal(t, "apple", rows[2][0])
		assert.Empty(t, rows[3])
		assert.Empty(t, rows[4])
		assert.Equal(t, []string{"Table 2"}, rows[5])
		assert.Equal(t, []string{"x"}, rows[6])

		wa, err := f.GetColWidth(constants.SheetTables, "A")
		require.NoError(t, err)
		wb, err := f.GetColWidth(constants.SheetTables, "B")
		require.NoError(t, err)
		assert.Equal(t, 10.0, wa)
		assert.Equal(t, 50.0, wb)

		styleID, err := f.GetCellStyle(constants.SheetTables, "A2")
		require.NoError(t, err)
		style, err := f.GetStyle(styleID)
		require.NoError(t, err)
		require.NotNil(t, style.Font)
		assert.True(t, style.Font.Bold)
	})

	t.Run("Should skip the title for a single table and use the sheet name", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "one.xlsx")
		require.NoError(t, newTestService().WriteTables(tables[:1], path, TableOptions{SheetName: "Data"}))

		f := openWorkbook(t, path)
		assert.Equal(t, []string{"Data"}, f.GetSheetList())
		assert.Equal(t, "Name", cellValue(t, f, "Data", "A1"))
		styleID, err := f.GetCellStyle("Data", "A1")
		require.NoError(t, err)
		assert.Zero(t, styleID)
	})

	t.Run("Should refuse to write without tables", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "none.xlsx")
		err := newTestService().WriteTables(nil, path, TableOptions{})
		assert.ErrorIs(t, err, ErrNoTables)
		assert.NoFileExists(t, path)
	})

	t.Run("Should reject an invalid sheet name", func(t *testing.T) {
		err := newTestService().WriteTables(tables, filepath.Join(t.TempDir(), "x.xlsx"), TableOptions{SheetName: "bad/name"})
		assert.ErrorIs(t, err, common.ErrConfiguration)
	})
}

func TestWriteSummary(t *testing.T) {
	docs := []inspect.DocumentInfo{
		{FileName: "a.docx", FilePath: "/in/a.docx", Size: 2048, Paragraphs: 4, Tables: 1, Title: "Alpha"},
		{FileName: "b.docx", Err: errors.New("DOCUMENT_READ: broken")},
	}
	tables := []inspect.TableSummary{{Document: "a.docx", Index: 1, Rows: 2, Columns: 3, Headers: []string{"H1", "H2"}}}

	t.Run("Should write documents, tables and statistics", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "batch.xlsx")
		require.NoError(t, newTestService().WriteSummary(docs, tables, path))

		f := openWorkbook(t, path)
		assert.Equal(t, []string{constants.SheetDocumentInfo, constants.SheetTableSummary, constants.SheetStatistics}, f.GetSheetList())

		docRows, err := f.GetRows(constants.SheetDocumentInfo)
		require.NoError(t, err)
		assert.Equal(t, []string{"File Name", "File Path", "File Size", "Paragraphs", "Tables", "Images", "Pages", "Title", "Error"}, docRows[0])
		assert.Equal(t, []string{"a.docx", "/in/a.docx", "2.0 KB", "4", "1", "0", "Unknown", "Alpha"}, docRows[1])
		assert.Equal(t, []string{"b.docx", "", "", "", "", "", "", "", "DOCUMENT_READ: broken"}, docRows[2])

		tableRows, err := f.GetRows(constants.SheetTableSummary)
		require.NoError(t, err)
		assert.Equal(t, [][]string{
			{"Document", "Table Index", "Rows", "Columns", "Total Cells", "Headers"},
			{"a.docx", "1", "2", "3", "6", "H1, H2"},
		}, tableRows)

		statRows, err := f.GetRows(constants.SheetStatistics)
		require.NoError(t, err)
		assert.Equal(t, [][]string{
			{"Metric", "Value"},
			{"Documents processed", "2"},
			{"Tables found", "1"},
			{"Succeeded", "1"},
			{"Failed", "1"},
		}, statRows)

		w, err := f.GetColWidth(constants.SheetDocumentInfo, "A")
		require.NoError(t, err)
		assert.Equal(t, 15.0, w)
	})

	t.Run("Should keep only statistics when nothing was found", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "empty.xlsx")
		require.NoError(t, newTestService().WriteSummary(nil, nil, path))
		f := openWorkbook(t, path)
		assert.Equal(t, []string{constants.SheetStatistics}, f.GetSheetList())
	})

	t.Run("Should fail cleanly when the destination is a directory", func(t *testing.T) {
		dir := t.TempDir()
		err := newTestService().WriteSummary(docs, tables, dir)
		assert.ErrorIs(t, err, common.ErrPersistence)
		entries, rerr := os.ReadDir(filepath.Dir(dir))
		require.NoError(t, rerr)
		for _, e := range entries {
			assert.NotContains(t, e.Name(), ".tmp")
		}
	})
}

func TestWriteIndividual(t *testing.T) {
	docs := []inspect.DocumentInfo{
		{FileName: "Report.DOCX", FilePath: "/in/Report.DOCX", Size: 1024, Paragraphs: 2, Author: "Lin"},
		{FileName: "bad.docx", Err: errors.New("broken")},
	}
	dir := filepath.Join(t.TempDir(), constants.IndividualDir)

	n, err := newTestService().WriteIndividual(docs, dir)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.NoFileExists(t, filepath.Join(dir, "bad.xlsx"))

	f := openWorkbook(t, filepath.Join(dir, "Report.xlsx"))
	rows, err := f.GetRows(constants.SheetDocumentInfo)
	require.NoError(t, err)
	assert.Equal(t, [][]string{
		{"Property", "Value"},
		{"File Path", "/in/Report.DOCX"},
		{"File Size", "1.0 KB"},
		{"Paragraphs", "2"},
		{"Tables", "0"},
		{"Images", "0"},
		{"Pages", "Unknown"},
		{"Author", "Lin"},
	}, rows)
}
