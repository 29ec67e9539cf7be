package fields

import (
	"time"

	"github.com/dlclark/regexp2"

	"github.com/chehxing/docx-to-excel/internal/docx"
)

// extractPattern searches all paragraph text, newline-joined, ignoring case
// and with ^/$ anchored per line.
func extractPattern(doc *docx.Document, loc PatternLocator, timeout time.Duration) (string, error) {
	if loc.Pattern == "" {
		return "", fail(ReasonMissingPattern, nil, "regex field without pattern")
	}
	re, err := compile(loc.Pattern, regexp2.IgnoreCase|regexp2.Multiline, timeout)
	if err != nil {
		return "", err
	}
	m, err := find(re, doc.Text())
	if err != nil {
		return "", err
	}
	if m == nil {
		return "", fail(ReasonNoMatch, nil, "no match for %q", loc.Pattern)
	}
	return capture(m, "")
}
