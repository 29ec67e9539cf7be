// Package inspect summarises documents for the batch mode: per-document
// metadata and a flattened per-table overview.
package inspect

import (
	"path/filepath"
	"strings"
	"time"

	"github.com/chehxing/docx-to-excel/internal/docx"
	"github.com/chehxing/docx-to-excel/internal/utils"
)

// Column names of the document sheet, in output order.
const (
	ColFileName       = "File Name"
	ColFilePath       = "File Path"
	ColFileSize       = "File Size"
	ColParagraphs     = "Paragraphs"
	ColTables         = "Tables"
	ColImages         = "Images"
	ColPages          = "Pages"
	ColTitle          = "Title"
	ColAuthor         = "Author"
	ColCreated        = "Created"
	ColModified       = "Modified"
	ColFirstParagraph = "First Paragraph"
	ColError          = "Error"
)

var documentColumns = []string{
	ColFileName, ColFilePath, ColFileSize, ColParagraphs, ColTables, ColImages, ColPages,
	ColTitle, ColAuthor, ColCreated, ColModified, ColFirstParagraph, ColError,
}

// Page counts need layout, which a .docx does not store reliably.
const unknownPages = "Unknown"

// DefaultPreviewRunes bounds the first-paragraph preview.
const DefaultPreviewRunes = 100

// Field is one named value of a summary row.
type Field struct {
	Name  string
	Value any
}

// DocumentInfo is the metadata row of one document. When Err is set only
// FileName is meaningful.
type DocumentInfo struct {
	FileName       string
	FilePath       string
	Size           int64
	Paragraphs     int
	Tables         int
	Images         int
	Title          string
	Author         string
	Created        time.Time
	Modified       time.Time
	FirstParagraph string
	Err            error
}

func (d DocumentInfo) Failed() bool { return d.Err != nil }

// Fields returns the populated columns in output order. Optional columns
// (properties, preview) are omitted when empty.
func (d DocumentInfo) Fields() []Field {
	if d.Failed() {
		return []Field{{ColFileName, d.FileName}, {ColError, d.Err.Error()}}
	}
	out := []Field{
		{ColFileName, d.FileName},
		{ColFilePath, d.FilePath},
		{ColFileSize, utils.FormatKB(d.Size)},
		{ColParagraphs, d.Paragraphs},
		{ColTables, d.Tables},
		{ColImages, d.Images},
		{ColPages, unknownPages},
	}
	optional := []Field{
		{ColTitle, d.Title},
		{ColAuthor, d.Author},
		{ColCreated, utils.FormatYMD(d.Created)},
		{ColModified, utils.FormatYMD(d.Modified)},
		{ColFirstParagraph, d.FirstParagraph},
	}
	for _, f := range optional {
		if f.Value != "" {
			out = append(out, f)
		}
	}
	return out
}

// Columns returns the union of the columns the given rows populate, in the
// fixed output order.
func Columns(docs []DocumentInfo) []string {
	present := map[string]bool{}
	for _, d := range docs {
		for _, f := range d.Fields() {
			present[f.Name] = true
		}
	}
	var cols []string
	for _, c := range documentColumns {
		if present[c] {
			cols = append(cols, c)
		}
	}
	return cols
}

// TableSummary describes one table of one document.
type TableSummary struct {
	Document string
	Index    int // 1-based
	Rows     int
	Columns  int
	Headers  []string
}

func (t TableSummary) TotalCells() int { return t.Rows * t.Columns }

// TableColumns are the table sheet headers, in output order.
var TableColumns = []string{"Document", "Table Index", "Rows", "Columns", "Total Cells", "Headers"}

// Values returns the row in TableColumns order.
func (t TableSummary) Values() []any {
	headers := "None"
	if len(t.Headers) > 0 {
		headers = strings.Join(t.Headers, ", ")
	}
	return []any{t.Document, t.Index, t.Rows, t.Columns, t.TotalCells(), headers}
}

// Describe builds the metadata row of an opened document.
func Describe(doc *docx.Document, previewRunes int) DocumentInfo {
	if previewRunes <= 0 {
		previewRunes = DefaultPreviewRunes
	}
	info := DocumentInfo{
		FileName:   filepath.Base(doc.Path),
		FilePath:   doc.Path,
		Size:       doc.Size,
		Paragraphs: len(doc.Paragraphs),
		Tables:     len(doc.Tables),
		Images:     doc.InlineShapes,
	}
	if p := doc.Properties; p != nil {
		info.Title = p.Title
		info.Author = p.Author
		info.Created = p.Created
		info.Modified = p.Modified
	}
	for _, p := range doc.Paragraphs {
		if text := strings.TrimSpace(p.Text); text != "" {
			info.FirstParagraph = utils.Truncate(text, previewRunes)
			break
		}
	}
	return info
}

// Tables summarises every table of doc.
func Tables(doc *docx.Document) []TableSummary {
	name := filepath.Base(doc.Path)
	out := make([]TableSummary, 0, len(doc.Tables))
	for i, t := range doc.Tables {
		s := TableSummary{Document: name, Index: i + 1, Rows: t.NumRows(), Columns: t.Columns}
		if s.Columns == 0 {
			// no w:tblGrid; fall back to the widest row
			for _, r := range t.Rows {
				s.Columns = max(s.Columns, len(r))
			}
		}
		if t.NumRows() > 0 {
			for _, cell := range t.Rows[0] {
				if cell = strings.TrimSpace(cell); cell != "" {
					s.Headers = append(s.Headers, cell)
				}
			}
		}
		out = append(out, s)
	}
	return out
}
