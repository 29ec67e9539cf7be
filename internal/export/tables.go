package export

import (
	"errors"
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/chehxing/docx-to-excel/constants"
	"github.com/chehxing/docx-to-excel/internal/common"
	"github.com/chehxing/docx-to-excel/internal/utils"
)

// ErrNoTables is returned by WriteTables when there is nothing to write.
var ErrNoTables = errors.New("no table data")

const (
	minColWidth = 10
	maxColWidth = 50
	tableGap    = 2 // blank rows between tables
)

type TableOptions struct {
	SheetName string // defaults to constants.SheetTables
	Format    bool   // borders, wrapping, shaded header and title rows
}

type tableStyles struct {
	cell, header, title int
}

// WriteTables dumps every table into one sheet, top to bottom. With more
// than one table each is preceded by a "Table N" title row.
func (s *Service) WriteTables(tables [][][]string, path string, opts TableOptions) error {
	start := time.Now()
	if len(tables) == 0 {
		return ErrNoTables
	}
	sheet := opts.SheetName
	if sheet == "" {
		sheet = constants.SheetTables
	}

	f, err := newWorkbook(sheet)
	if err != nil {
		return common.ConfigurationError("invalid sheet name", err)
	}
	defer f.Close()

	var st *tableStyles
	if opts.Format {
		if st, err = newTableStyles(f); err != nil {
			return common.PersistenceError(path, err)
		}
	}

	widths := map[int]int{}
	row := 1
	for ti, table := range tables {
		if ti > 0 {
			row += tableGap
		}
		if len(tables) > 1 {
			if err := setRow(f, sheet, row, []any{fmt.Sprintf("Table %d", ti+1)}); err != nil {
				return common.PersistenceError(path, err)
			}
			if st != nil {
				_ = f.SetCellStyle(sheet, cellName(1, row), cellName(1, row), st.title)
			}
			row++
		}

		for ri, cells := range table {
			values := make([]any, len(cells))
			for ci, v := range cells {
				values[ci] = v
				widths[ci+1] = max(widths[ci+1], utils.DisplayWidth(v))
			}
			if err := setRow(f, sheet, row+ri, values); err != nil {
				return common.PersistenceError(path, err)
			}
			if st != nil && len(cells) > 0 {
				style := st.cell
				if ri == 0 {
					style = st.header
				}
				_ = f.SetCellStyle(sheet, cellName(1, row+ri), cellName(len(cells), row+ri), style)
			}
		}
		row += len(table)
	}

	for col, w := range widths {
		name := columnName(col)
		_ = f.SetColWidth(sheet, name, name, float64(utils.Clamp(w+2, minColWidth, maxColWidth)))
	}

	n, err := save(f, path)
	if err != nil {
		return err
	}
	s.logger.Info("export.tables.ok",
		"path", path,
		"sheet", sheet,
		"tables", len(tables),
		"bytes", n,
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return nil
}

func newTableStyles(f *excelize.File) (*tableStyles, error) {
	border := []excelize.Border{
		{Type: "left", Color: "000000", Style: 1},
		{Type: "right", Color: "000000", Style: 1},
		{Type: "top", Color: "000000", Style: 1},
		{Type: "bottom", Color: "000000", Style: 1},
	}
	align := &excelize.Alignment{Horizontal: "left", Vertical: "center", WrapText: true}

	cell, err := f.NewStyle(&excelize.Style{Border: border, Alignment: align})
	if err != nil {
		return nil, err
	}
	header, err := f.NewStyle(&excelize.Style{
		Border:    border,
		Alignment: align,
		Font:      &excelize.Font{Bold: true},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"E6E6E6"}, Pattern: 1},
	})
	if err != nil {
		return nil, err
	}
	title, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 14},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"CCCCCC"}, Pattern: 1},
	})
	if err != nil {
		return nil, err
	}
	return &tableStyles{cell: cell, header: header, title: title}, nil
}

func cellName(col, row int) string {
	name, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return "A1"
	}
	return name
}
