package fields

import (
	"strconv"
	"strings"
	"time"

	"github.com/dlclark/regexp2"
)

// compile builds a backtracking matcher so patterns written for Python-style
// engines (look-around, back-references) keep working; the timeout bounds
// catastrophic backtracking.
func compile(pattern string, opts regexp2.RegexOptions, timeout time.Duration) (*regexp2.Regexp, error) {
	re, err := regexp2.Compile(pythonGroups(pattern), opts)
	if err != nil {
		return nil, fail(ReasonInvalidPattern, err, "compile %q", pattern)
	}
	if timeout > 0 {
		re.MatchTimeout = timeout
	}
	return re, nil
}

// pythonGroups rewrites Python-only group syntax for regexp2. "(?P<name>"
// becomes a plain capturing group and "(?P=name)" a numbered
// back-reference, so groups keep the numbering Python gives them (regexp2
// numbers named groups after unnamed ones).
func pythonGroups(p string) string {
	if !strings.Contains(p, "(?P") {
		return p
	}
	var b strings.Builder
	names := map[string]int{}
	group := 0
	inClass := false
	for i := 0; i < len(p); i++ {
		c := p[i]
		switch {
		case c == '\\' && i+1 < len(p):
			b.WriteByte(c)
			b.WriteByte(p[i+1])
			i++
			continue
		case inClass:
			if c == ']' {
				inClass = false
			}
		case c == '[':
			inClass = true
			b.WriteByte(c)
			// a leading "]" or "^]" is literal
			if i+1 < len(p) && p[i+1] == '^' {
				b.WriteByte('^')
				i++
			}
			if i+1 < len(p) && p[i+1] == ']' {
				b.WriteByte(']')
				i++
			}
			continue
		case c == '(':
			rest := p[i+1:]
			switch {
			case strings.HasPrefix(rest, "?P<"):
				if end := strings.IndexByte(rest, '>'); end > 3 {
					group++
					names[rest[3:end]] = group
					b.WriteByte('(')
					i += end + 1
					continue
				}
			case strings.HasPrefix(rest, "?P="):
				if end := strings.IndexByte(rest, ')'); end > 3 {
					if n, ok := names[rest[3:end]]; ok {
						b.WriteString(`(?:\` + strconv.Itoa(n) + `)`)
						i += end + 1
						continue
					}
				}
			case !strings.HasPrefix(rest, "?"):
				group++
			}
		}
		b.WriteByte(c)
	}
	return b.String()
}

func find(re *regexp2.Regexp, s string) (*regexp2.Match, error) {
	m, err := re.FindStringMatch(s)
	if err != nil {
		return nil, fail(ReasonTimeout, err, "match %q", re.String())
	}
	return m, nil
}

// capture returns the trimmed first group when the pattern declares groups,
// otherwise whole when provided, otherwise the trimmed full match.
func capture(m *regexp2.Match, whole string) (string, error) {
	if m.GroupCount() > 1 {
		g := m.GroupByNumber(1)
		if g == nil || len(g.Captures) == 0 {
			return "", fail(ReasonEmptyGroup, nil, "group 1 of %q did not participate in the match", m.String())
		}
		return strings.TrimSpace(g.String()), nil
	}
	if whole != "" {
		return strings.TrimSpace(whole), nil
	}
	return strings.TrimSpace(m.String()), nil
}
