package inspect

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chehxing/docx-to-excel/internal/docx"
)

func TestDescribe(t *testing.T) {
	t.Run("Should summarise counts, properties and the first paragraph", func(t *testing.T) {
		doc := &docx.Document{
			Path: "/data/in/report.docx",
			Size: 12800,
			Paragraphs: []docx.Paragraph{
				{Text: "   "},
				{Text: "  First real paragraph  "},
				{Text: "second"},
			},
			Tables:       []docx.Table{{}, {}},
			InlineShapes: 3,
			Properties: &docx.Properties{
				Title:    "Quarterly",
				Author:   "Lin",
				Created:  time.Date(2024, 1, 2, 8, 0, 0, 0, time.UTC),
				Modified: time.Date(2024, 2, 3, 9, 0, 0, 0, time.UTC),
			},
		}
		info := Describe(doc, 0)

		assert.False(t, info.Failed())
		assert.Equal(t, []Field{
			{ColFileName, "report.docx"},
			{ColFilePath, "/data/in/report.docx"},
			{ColFileSize, "12.5 KB"},
			{ColParagraphs, 3},
			{ColTables, 2},
			{ColImages, 3},
			{ColPages, "Unknown"},
			{ColTitle, "Quarterly"},
			{ColAuthor, "Lin"},
			{ColCreated, "2024-01-02"},
			{ColModified, "2024-02-03"},
			{ColFirstParagraph, "First real paragraph"},
		}, info.Fields())
	})

	t.Run("Should truncate a long first paragraph", func(t *testing.T) {
		long := strings.Repeat("字", 150)
		info := Describe(&docx.Document{Path: "a.docx", Paragraphs: []docx.Paragraph{{Text: long}}}, DefaultPreviewRunes)
		assert.Equal(t, strings.Repeat("字", 100)+"...", info.FirstParagraph)
	})

	t.Run("Should omit absent optional columns", func(t *testing.T) {
		info := Describe(&docx.Document{Path: "empty.docx", Properties: &docx.Properties{Author: "A"}}, 10)
		var names []string
		for _, f := range info.Fields() {
			names = append(names, f.Name)
		}
		assert.Equal(t, []string{ColFileName, ColFilePath, ColFileSize, ColParagraphs, ColTables, ColImages, ColPages, ColAuthor}, names)
	})

	t.Run("Should reduce a failed document to name and error", func(t *testing.T) {
		info := DocumentInfo{FileName: "bad.docx", Err: errors.New("not a zip")}
		assert.True(t, info.Failed())
		assert.Equal(t, []Field{{ColFileName, "bad.docx"}, {ColError, "not a zip"}}, info.Fields())
	})
}

func TestColumns(t *testing.T) {
	ok := Describe(&docx.Document{Path: "a.docx", Properties: &docx.Properties{Title: "T"}}, 0)
	bad := DocumentInfo{FileName: "b.docx", Err: errors.New("boom")}

	assert.Equal(t, []string{
		ColFileName, ColFilePath, ColFileSize, ColParagraphs, ColTables, ColImages, ColPages, ColTitle, ColError,
	}, Columns([]DocumentInfo{bad, ok}))
	assert.Empty(t, Columns(nil))
}

func TestTables(t *testing.T) {
	doc := &docx.Document{
		Path: "dir/report.docx",
		Tables: []docx.Table{
			{Rows: [][]string{{"Name", "", "Qty"}, {"a", "b", "c"}}, Columns: 3},
			{Rows: [][]string{{"", ""}}, Columns: 2},
			{Rows: [][]string{{"x"}, {"y", "z"}}},
			{},
		},
	}
	got := Tables(doc)
	require.Len(t, got, 4)

	assert.Equal(t, []any{"report.docx", 1, 2, 3, 6, "Name, Qty"}, got[0].Values())
	assert.Equal(t, []any{"report.docx", 2, 1, 2, 2, "None"}, got[1].Values())
	assert.Equal(t, 2, got[2].Columns, "widest row without a grid")
	assert.Equal(t, []any{"report.docx", 4, 0, 0, 0, "None"}, got[3].Values())
	assert.Len(t, TableColumns, len(got[0].Values()))
}
