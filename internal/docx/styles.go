package docx

import (
	"encoding/xml"
	"fmt"
	"io"
	"regexp"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const defaultParagraphStyle = "Normal"

// builtinAliases maps the lower-case names Word writes into styles.xml for
// built-in styles to the names shown in the Word UI.
var builtinAliases = func() map[string]string {
	m := map[string]string{
		"caption": "Caption",
		"footer":  "Footer",
		"header":  "Header",
		"title":   "Title",
		"normal":  "Normal",
	}
	for i := 1; i <= 9; i++ {
		m[fmt.Sprintf("heading %d", i)] = fmt.Sprintf("Heading %d", i)
	}
	title := cases.Title(language.English)
	for _, base := range []string{"list", "list bullet", "list continue", "list number"} {
		ui := title.String(base)
		m[base] = ui
		for i := 2; i <= 5; i++ {
			m[fmt.Sprintf("%s %d", base, i)] = fmt.Sprintf("%s %d", ui, i)
		}
	}
	return m
}()

var headingIDRe = regexp.MustCompile(`^[Hh]eading(\d)$`)

type styleSheet struct {
	names        map[string]string // styleId -> display name
	defaultStyle string
}

type xmlStyles struct {
	Styles []struct {
		Type    string `xml:"type,attr"`
		StyleID string `xml:"styleId,attr"`
		Default string `xml:"default,attr"`
		Name    struct {
			Val string `xml:"val,attr"`
		} `xml:"name"`
	} `xml:"style"`
}

func parseStyles(r io.Reader) (*styleSheet, error) {
	var doc xmlStyles
	if err := xml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("parse styles.xml: %w", err)
	}
	ss := &styleSheet{names: make(map[string]string, len(doc.Styles))}
	for _, s := range doc.Styles {
		if s.Type != "" && s.Type != "paragraph" {
			continue
		}
		name := uiName(s.Name.Val)
		if name == "" {
			name = s.StyleID
		}
		ss.names[s.StyleID] = name
		if s.Default == "1" || strings.EqualFold(s.Default, "true") {
			ss.defaultStyle = name
		}
	}
	return ss, nil
}

func uiName(name string) string {
	if alias, ok := builtinAliases[strings.ToLower(name)]; ok && name == strings.ToLower(name) {
		return alias
	}
	return name
}

// resolve maps a w:pStyle value to its display name. Unknown ids that look
// like built-in heading ids still resolve so headings survive a missing or
// partial styles part.
func (s *styleSheet) resolve(styleID string) string {
	if styleID == "" {
		if s != nil && s.defaultStyle != "" {
			return s.defaultStyle
		}
		return defaultParagraphStyle
	}
	if s != nil {
		if name, ok := s.names[styleID]; ok {
			return name
		}
	}
	if m := headingIDRe.FindStringSubmatch(styleID); m != nil {
		return "Heading " + m[1]
	}
	return styleID
}
