// Package fields resolves declarative field rules against a document
// snapshot into an ordered field→value mapping.
package fields

// Kind selects the extraction strategy of a rule.
type Kind string

const (
	KindParagraph Kind = "paragraph"
	KindTable     Kind = "table"
	KindRegex     Kind = "regex"
)

// Locator is the strategy-specific part of a rule. The set of
// implementations is closed: HeadingLocator, CellLocator, PatternLocator.
type Locator interface {
	Kind() Kind
	locator()
}

// HeadingLocator finds the K-th paragraph styled "Heading N", written as
// Location "Heading<N>[<K>]", and falls back to the first paragraph matching
// Pattern.
type HeadingLocator struct {
	Location string
	Pattern  string
}

// CellLocator addresses one cell by zero-based table, row and column.
type CellLocator struct {
	Table  int
	Row    int
	Column int
}

// PatternLocator searches the whole paragraph corpus.
type PatternLocator struct {
	Pattern string
}

func (HeadingLocator) Kind() Kind { return KindParagraph }
func (CellLocator) Kind() Kind    { return KindTable }
func (PatternLocator) Kind() Kind { return KindRegex }

func (HeadingLocator) locator() {}
func (CellLocator) locator()    {}
func (PatternLocator) locator() {}

// Rule describes one output field. Kind keeps the declared type verbatim;
// Locator is nil when that type has no strategy.
type Rule struct {
	Name    string
	Kind    Kind
	Default string
	Locator Locator
}

// NewRule builds a rule, deriving Kind from the locator.
func NewRule(name, def string, loc Locator) Rule {
	r := Rule{Name: name, Default: def, Locator: loc}
	if loc != nil {
		r.Kind = loc.Kind()
	}
	return r
}
