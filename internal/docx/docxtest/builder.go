// Package docxtest writes minimal .docx packages for tests.
package docxtest

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"os"
	"strings"
	"testing"
	"time"
)

// Builder accumulates body blocks in document order.
type Builder struct {
	blocks   []string
	title    string
	author   string
	created  time.Time
	modified time.Time
	core     bool
	noStyles bool
}

// New returns an empty builder.
func New() *Builder { return &Builder{} }

// Para appends a Normal paragraph.
func (b *Builder) Para(text string) *Builder {
	return b.Styled("", text)
}

// Heading appends a paragraph styled HeadingN.
func (b *Builder) Heading(level int, text string) *Builder {
	return b.Styled(fmt.Sprintf("Heading%d", level), text)
}

// Styled appends a paragraph with the given w:pStyle id ("" for none).
func (b *Builder) Styled(styleID, text string) *Builder {
	b.blocks = append(b.blocks, paragraphXML(styleID, text))
	return b
}

// Image appends a paragraph holding one inline drawing.
func (b *Builder) Image() *Builder {
	b.blocks = append(b.blocks, `<w:p><w:r><w:drawing><wp:inline><wp:extent cx="1" cy="1"/></wp:inline></w:drawing></w:r></w:p>`)
	return b
}

// Table appends a table; the grid width is the widest row.
func (b *Builder) Table(rows ...[]string) *Builder {
	var sb strings.Builder
	cols := 0
	for _, r := range rows {
		if len(r) > cols {
			cols = len(r)
		}
	}
	sb.WriteString("<w:tbl><w:tblPr/><w:tblGrid>")
	for i := 0; i < cols; i++ {
		sb.WriteString(`<w:gridCol w:w="2000"/>`)
	}
	sb.WriteString("</w:tblGrid>")
	for _, r := range rows {
		sb.WriteString("<w:tr>")
		for _, c := range r {
			sb.WriteString("<w:tc>")
			sb.WriteString(paragraphXML("", c))
			sb.WriteString("</w:tc>")
		}
		sb.WriteString("</w:tr>")
	}
	sb.WriteString("</w:tbl>")
	b.blocks = append(b.blocks, sb.String())
	return b
}

// RawBlock appends body XML verbatim.
func (b *Builder) RawBlock(x string) *Builder {
	b.blocks = append(b.blocks, x)
	return b
}

// Properties sets the core properties part.
func (b *Builder) Properties(title, author string, created, modified time.Time) *Builder {
	b.core = true
	b.title, b.author, b.created, b.modified = title, author, created, modified
	return b
}

// WithoutStyles omits word/styles.xml.
func (b *Builder) WithoutStyles() *Builder {
	b.noStyles = true
	return b
}

// Bytes renders the package.
func (b *Builder) Bytes() ([]byte, error) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	parts := []struct{ name, body string }{
		{"[Content_Types].xml", contentTypes},
		{"_rels/.rels", rootRels},
		{"word/document.xml", b.documentXML()},
	}
	if !b.noStyles {
		parts = append(parts, struct{ name, body string }{"word/styles.xml", stylesXML})
	}
	if b.core {
		parts = append(parts, struct{ name, body string }{"docProps/core.xml", b.coreXML()})
	}
	for _, p := range parts {
		w, err := zw.Create(p.name)
		if err != nil {
			return nil, err
		}
		if _, err := w.Write([]byte(p.body)); err != nil {
			return nil, err
		}
	}
	if err := zw.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WriteFile renders the package to path, failing the test on error.
func (b *Builder) WriteFile(t testing.TB, path string) string {
	t.Helper()
	data, err := b.Bytes()
	if err != nil {
		t.Fatalf("build docx: %v", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write docx: %v", err)
	}
	return path
}

func (b *Builder) documentXML() string {
	return `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` +
		`<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main" ` +
		`xmlns:wp="http://schemas.openxmlformats.org/drawingml/2006/wordprocessingDrawing"><w:body>` +
		strings.Join(b.blocks, "") +
		`<w:sectPr/></w:body></w:document>`
}

func (b *Builder) coreXML() string {
	var sb strings.Builder
	sb.WriteString(`<?xml version="1.0" encoding="UTF-8" standalone="yes"?>`)
	sb.WriteString(`<cp:coreProperties xmlns:cp="http://schemas.openxmlformats.org/package/2006/metadata/core-properties" `)
	sb.WriteString(`xmlns:dc="http://purl.org/dc/elements/1.1/" xmlns:dcterms="http://purl.org/dc/terms/" `)
	sb.WriteString(`xmlns:xsi="http://www.w3.org/2001/XMLSchema-instance">`)
	if b.title != "" {
		sb.WriteString("<dc:title>" + escape(b.title) + "</dc:title>")
	}
	if b.author != "" {
		sb.WriteString("<dc:creator>" + escape(b.author) + "</dc:creator>")
	}
	if !b.created.IsZero() {
		sb.WriteString(`<dcterms:created xsi:type="dcterms:W3CDTF">` + b.created.UTC().Format(time.RFC3339) + "</dcterms:created>")
	}
	if !b.modified.IsZero() {
		sb.WriteString(`<dcterms:modified xsi:type="dcterms:W3CDTF">` + b.modified.UTC().Format(time.RFC3339) + "</dcterms:modified>")
	}
	sb.WriteString("</cp:coreProperties>")
	return sb.String()
}

func paragraphXML(styleID, text string) string {
	var sb strings.Builder
	sb.WriteString("<w:p>")
	if styleID != "" {
		sb.WriteString(`<w:pPr><w:pStyle w:val="` + escape(styleID) + `"/></w:pPr>`)
	}
	for i, line := range strings.Split(text, "\n") {
		if i > 0 {
			sb.WriteString("<w:r><w:br/></w:r>")
		}
		if line == "" {
			continue
		}
		sb.WriteString(`<w:r><w:t xml:space="preserve">` + escape(line) + "</w:t></w:r>")
	}
	sb.WriteString("</w:p>")
	return sb.String()
}

func escape(s string) string {
	var buf bytes.Buffer
	_ = xml.EscapeText(&buf, []byte(s))
	return buf.String()
}

const contentTypes = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">` +
	`<Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/>` +
	`<Default Extension="xml" ContentType="application/xml"/>` +
	`<Override PartName="/word/document.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"/>` +
	`</Types>`

const rootRels = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">` +
	`<Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument" Target="word/document.xml"/>` +
	`</Relationships>`

const stylesXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<w:styles xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">` +
	`<w:style w:type="paragraph" w:default="1" w:styleId="Normal"><w:name w:val="Normal"/></w:style>` +
	`<w:style w:type="paragraph" w:styleId="Heading1"><w:name w:val="heading 1"/></w:style>` +
	`<w:style w:type="paragraph" w:styleId="Heading2"><w:name w:val="heading 2"/></w:style>` +
	`<w:style w:type="paragraph" w:styleId="Heading3"><w:name w:val="heading 3"/></w:style>` +
	`<w:style w:type="paragraph" w:styleId="Title"><w:name w:val="Title"/></w:style>` +
	`<w:style w:type="paragraph" w:styleId="1"><w:name w:val="标题 1"/></w:style>` +
	`<w:style w:type="character" w:styleId="Strong"><w:name w:val="Strong"/></w:style>` +
	`</w:styles>`
