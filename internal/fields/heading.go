package fields

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/dlclark/regexp2"

	"github.com/chehxing/docx-to-excel/internal/docx"
)

// locationRe accepts "Heading2[1]" and the legacy "标题2[1]" spelling.
var locationRe = regexp.MustCompile(`^(?i:heading|标题)\s*(\d+)\s*\[(\d+)\]`)

func parseLocation(s string) (level, index int, ok bool) {
	m := locationRe.FindStringSubmatch(strings.TrimSpace(s))
	if m == nil {
		return 0, 0, false
	}
	level, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, 0, false
	}
	index, err = strconv.Atoi(m[2])
	if err != nil {
		return 0, 0, false
	}
	return level, index, true
}

// extractHeading returns the index-th paragraph whose style starts with
// "Heading <level>", falling back to the first paragraph that matches the
// locator's pattern.
func extractHeading(doc *docx.Document, loc HeadingLocator, timeout time.Duration) (string, error) {
	level, index, ok := parseLocation(loc.Location)
	if ok {
		prefix := "Heading " + strconv.Itoa(level)
		found := 0
		for _, p := range doc.Paragraphs {
			if !strings.HasPrefix(p.Style, prefix) {
				continue
			}
			if found == index {
				return strings.TrimSpace(p.Text), nil
			}
			found++
		}
	}

	if loc.Pattern == "" {
		switch {
		case ok:
			return "", fail(ReasonNoMatch, nil, "no %q paragraph at index %d", "Heading "+strconv.Itoa(level), index)
		case loc.Location != "":
			return "", fail(ReasonMalformedLocation, nil, "location %q is not Heading<N>[<K>]", loc.Location)
		default:
			return "", fail(ReasonMissingPattern, nil, "neither location nor pattern given")
		}
	}

	re, err := compile(loc.Pattern, regexp2.None, timeout)
	if err != nil {
		return "", err
	}
	for _, p := range doc.Paragraphs {
		m, err := find(re, p.Text)
		if err != nil {
			return "", err
		}
		if m != nil {
			return capture(m, p.Text)
		}
	}
	return "", fail(ReasonNoMatch, nil, "no paragraph matches %q", loc.Pattern)
}
