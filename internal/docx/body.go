package docx

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"
)

const (
	nsW  = "http://schemas.openxmlformats.org/wordprocessingml/2006/main"
	nsWP = "http://schemas.openxmlformats.org/drawingml/2006/wordprocessingDrawing"
)

// paraState collects the text of one w:p. Paragraphs nested in text boxes
// get a state with collect=false so their runs do not leak into the outer
// paragraph.
type paraState struct {
	collect bool
	style   string
	text    strings.Builder
}

type cellState struct {
	paras  []string
	span   int
	merged bool // vMerge continuation
}

type tableState struct {
	level   int // stack depth of the w:tbl element
	columns int
	rows    [][]string
	cells   []cellState
}

type bodyParser struct {
	styles *styleSheet
	stack  []xml.Name

	paras []*paraState
	inT   bool

	table *tableState // current top-level table

	out Document
}

func (p *bodyParser) parent() xml.Name {
	if len(p.stack) < 2 {
		return xml.Name{}
	}
	return p.stack[len(p.stack)-2]
}

func (p *bodyParser) grandparent() xml.Name {
	if len(p.stack) < 3 {
		return xml.Name{}
	}
	return p.stack[len(p.stack)-3]
}

func isW(n xml.Name, local string) bool { return n.Space == nsW && n.Local == local }

// parseBody walks word/document.xml once, keeping only body-level
// paragraphs and body-level tables.
func parseBody(r io.Reader, styles *styleSheet) (Document, error) {
	dec := xml.NewDecoder(r)
	p := &bodyParser{styles: styles}

	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return Document{}, fmt.Errorf("parse document.xml: %w", err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			p.stack = append(p.stack, t.Name)
			p.start(t)
		case xml.EndElement:
			p.end(t.Name)
			if len(p.stack) > 0 {
				p.stack = p.stack[:len(p.stack)-1]
			}
		case xml.CharData:
			if p.inT && len(p.paras) > 0 {
				if top := p.paras[len(p.paras)-1]; top.collect {
					top.text.Write(t)
				}
			}
		}
	}
	return p.out, nil
}

func (p *bodyParser) start(t xml.StartElement) {
	if t.Name.Space == nsWP && t.Name.Local == "inline" {
		p.out.InlineShapes++
		return
	}
	if t.Name.Space != nsW {
		return
	}
	depth := len(p.stack) - 1

	switch t.Name.Local {
	case "tbl":
		if isW(p.parent(), "body") {
			p.table = &tableState{level: depth}
		}
	case "gridCol":
		if p.table != nil && depth == p.table.level+2 {
			p.table.columns++
		}
	case "tr":
		if p.table != nil && depth == p.table.level+1 {
			p.table.cells = nil
		}
	case "tc":
		if p.table != nil && depth == p.table.level+2 {
			p.table.cells = append(p.table.cells, cellState{span: 1})
		}
	case "gridSpan":
		if c := p.cellAt(depth - 2); c != nil {
			var n int
			if _, err := fmt.Sscanf(attr(t, "val"), "%d", &n); err == nil && n > 1 {
				c.span = n
			}
		}
	case "vMerge":
		if c := p.cellAt(depth - 2); c != nil {
			c.merged = attr(t, "val") != "restart"
		}
	case "p":
		p.paras = append(p.paras, &paraState{collect: p.collectable()})
	case "pStyle":
		if isW(p.parent(), "pPr") && isW(p.grandparent(), "p") && len(p.paras) > 0 {
			p.paras[len(p.paras)-1].style = attr(t, "val")
		}
	case "t":
		p.inT = isW(p.parent(), "r")
	case "tab":
		if isW(p.parent(), "r") {
			p.write("\t")
		}
	case "br":
		if isW(p.parent(), "r") {
			switch attr(t, "type") {
			case "page", "column":
			default:
				p.write("\n")
			}
		}
	case "cr":
		if isW(p.parent(), "r") {
			p.write("\n")
		}
	}
}

func (p *bodyParser) end(name xml.Name) {
	if name.Space != nsW {
		return
	}
	depth := len(p.stack) - 1

	switch name.Local {
	case "t":
		p.inT = false
	case "p":
		if len(p.paras) == 0 {
			return
		}
		ps := p.paras[len(p.paras)-1]
		p.paras = p.paras[:len(p.paras)-1]
		switch {
		case isW(p.parent(), "body"):
			p.out.Paragraphs = append(p.out.Paragraphs, Paragraph{
				Text:  ps.text.String(),
				Style: p.styles.resolve(ps.style),
			})
		case p.table != nil && depth == p.table.level+3:
			if c := p.cellAt(depth - 1); c != nil {
				c.paras = append(c.paras, ps.text.String())
			}
		}
	case "tr":
		if p.table != nil && depth == p.table.level+1 {
			p.table.rows = append(p.table.rows, p.expandRow())
			p.table.cells = nil
		}
	case "tbl":
		if p.table != nil && depth == p.table.level {
			p.out.Tables = append(p.out.Tables, Table{Rows: p.table.rows, Columns: p.table.columns})
			p.table = nil
		}
	}
}

// collectable reports whether the w:p just pushed is a body paragraph or a
// direct paragraph of a top-level table cell.
func (p *bodyParser) collectable() bool {
	if isW(p.parent(), "body") {
		return true
	}
	depth := len(p.stack) - 1
	return p.table != nil && depth == p.table.level+3 && isW(p.parent(), "tc")
}

// cellAt returns the open cell when the element at stack depth is the
// current top-level table's w:tc.
func (p *bodyParser) cellAt(depth int) *cellState {
	if p.table == nil || depth != p.table.level+2 || len(p.table.cells) == 0 {
		return nil
	}
	if !isW(p.stack[depth], "tc") {
		return nil
	}
	return &p.table.cells[len(p.table.cells)-1]
}

// expandRow repeats spanned cells once per grid column and resolves
// vertical-merge continuations to the text of the cell above.
func (p *bodyParser) expandRow() []string {
	var prev []string
	if n := len(p.table.rows); n > 0 {
		prev = p.table.rows[n-1]
	}
	var row []string
	for _, c := range p.table.cells {
		text := strings.TrimSpace(strings.Join(c.paras, "\n"))
		for k := 0; k < c.span; k++ {
			v := text
			if c.merged {
				if col := len(row); col < len(prev) {
					v = prev[col]
				}
			}
			row = append(row, v)
		}
	}
	return row
}

func (p *bodyParser) write(s string) {
	if len(p.paras) == 0 {
		return
	}
	if top := p.paras[len(p.paras)-1]; top.collect {
		top.text.WriteString(s)
	}
}

func attr(t xml.StartElement, local string) string {
	for _, a := range t.Attr {
		if a.Name.Local == local {
			return a.Value
		}
	}
	return ""
}
