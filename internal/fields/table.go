package fields

import (
	"strings"

	"github.com/chehxing/docx-to-excel/internal/docx"
)

// extractCell returns the trimmed text of one bounds-checked table cell.
func extractCell(doc *docx.Document, loc CellLocator) (string, error) {
	t, ok := doc.Table(loc.Table)
	if !ok {
		return "", fail(ReasonOutOfBounds, nil, "table %d of %d", loc.Table, len(doc.Tables))
	}
	v, ok := t.Cell(loc.Row, loc.Column)
	if !ok {
		return "", fail(ReasonOutOfBounds, nil, "cell (%d,%d) in table %d with %d rows", loc.Row, loc.Column, loc.Table, t.NumRows())
	}
	return strings.TrimSpace(v), nil
}
