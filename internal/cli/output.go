package cli

import (
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/chehxing/docx-to-excel/internal/entity"
	"github.com/chehxing/docx-to-excel/internal/fields"
	"github.com/chehxing/docx-to-excel/internal/ingest"
	"github.com/chehxing/docx-to-excel/internal/utils"
)

const maxCellRunes = 60

func printf(w io.Writer, format string, args ...any) {
	_, _ = fmt.Fprintf(w, format, args...)
}

func newTable(w io.Writer) table.Writer {
	tw := table.NewWriter()
	tw.SetOutputMirror(w)
	tw.SetStyle(table.StyleLight)
	tw.Style().Format.Header = text.FormatDefault
	tw.Style().Format.Footer = text.FormatDefault
	return tw
}

func renderResult(w io.Writer, r *fields.Result) {
	tw := newTable(w)
	tw.AppendHeader(table.Row{"Field", "Value"})
	r.Each(func(name, value string) {
		tw.AppendRow(table.Row{name, utils.Truncate(value, maxCellRunes)})
	})
	tw.Render()
}

func renderGridSizes(w io.Writer, grids [][][]string) {
	if len(grids) == 0 {
		return
	}
	tw := newTable(w)
	tw.AppendHeader(table.Row{"Table", "Rows", "Columns"})
	for i, g := range grids {
		cols := 0
		if len(g) > 0 {
			cols = len(g[0])
		}
		tw.AppendRow(table.Row{i + 1, len(g), cols})
	}
	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 2, Align: text.AlignRight},
		{Number: 3, Align: text.AlignRight},
	})
	tw.Render()
}

func renderInspections(w io.Writer, results []ingest.InspectionResult) {
	tw := newTable(w)
	tw.AppendHeader(table.Row{"Document", "Paragraphs", "Tables", "Status"})
	for _, r := range results {
		if r.Failed() {
			tw.AppendRow(table.Row{r.Info.FileName, "", "", utils.Truncate(r.Info.Err.Error(), maxCellRunes)})
			continue
		}
		status := "ok"
		if r.Deduplicated {
			status = "ok (catalogued)"
		}
		tw.AppendRow(table.Row{r.Info.FileName, r.Info.Paragraphs, r.Info.Tables, status})
	}
	tw.Render()
}

func renderCatalog(w io.Writer, rows []entity.Inspection) {
	tw := newTable(w)
	tw.AppendHeader(table.Row{"Inspected", "File", "Size", "Paragraphs", "Tables", "Images", "Status", "Error"})
	for _, in := range rows {
		errMsg := ""
		if in.ErrorMessage != nil {
			errMsg = utils.Truncate(*in.ErrorMessage, maxCellRunes)
		}
		tw.AppendRow(table.Row{
			in.InspectedAt.Local().Format("2006-01-02 15:04"),
			in.Filename,
			utils.FormatKB(in.FileSize),
			in.Paragraphs,
			in.Tables,
			in.Images,
			string(in.Status),
			errMsg,
		})
	}
	tw.AppendFooter(table.Row{"", fmt.Sprintf("%d rows", len(rows))})
	tw.Render()
}
