// Package docx reads WordprocessingML (.docx) packages into read-only
// snapshots: body paragraphs with their style names, body tables as text
// grids, and the core document properties.
package docx

import (
	"strings"
	"time"
)

// Paragraph is one body-level paragraph.
type Paragraph struct {
	Text  string
	Style string // display name, e.g. "Heading 2"
}

// Table is one body-level table. Rows may be ragged.
type Table struct {
	Rows    [][]string // trimmed cell text
	Columns int        // grid columns declared by w:tblGrid
}

// NumRows returns the number of rows.
func (t Table) NumRows() int { return len(t.Rows) }

// Cell returns the text at (row, col) and whether it exists.
func (t Table) Cell(row, col int) (string, bool) {
	if row < 0 || row >= len(t.Rows) {
		return "", false
	}
	cells := t.Rows[row]
	if col < 0 || col >= len(cells) {
		return "", false
	}
	return cells[col], true
}

// Properties holds docProps/core.xml values. Zero times mean absent.
type Properties struct {
	Title    string
	Author   string
	Created  time.Time
	Modified time.Time
}

// Document is an immutable snapshot of one .docx file, valid for one
// extraction pass.
type Document struct {
	Path         string
	Size         int64
	Paragraphs   []Paragraph
	Tables       []Table
	Properties   *Properties // nil when the package has no core properties part
	InlineShapes int
}

// Text joins every paragraph text with newlines.
func (d *Document) Text() string {
	parts := make([]string, len(d.Paragraphs))
	for i, p := range d.Paragraphs {
		parts[i] = p.Text
	}
	return strings.Join(parts, "\n")
}

// Table returns the table at index i and whether it exists.
func (d *Document) Table(i int) (Table, bool) {
	if i < 0 || i >= len(d.Tables) {
		return Table{}, false
	}
	return d.Tables[i], true
}

// Grids returns the tables as plain 2-D text grids.
func (d *Document) Grids() [][][]string {
	out := make([][][]string, len(d.Tables))
	for i, t := range d.Tables {
		out[i] = t.Rows
	}
	return out
}
