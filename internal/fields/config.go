package fields

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/chehxing/docx-to-excel/internal/common"
)

type fieldEntry struct {
	Name       string  `json:"name"`
	Type       *string `json:"type"`
	Location   string  `json:"location"`
	Pattern    string  `json:"pattern"`
	Default    string  `json:"default"`
	TableIndex int     `json:"table_index"`
	Row        int     `json:"row"`
	Column     int     `json:"column"`
}

type configFile struct {
	Fields []fieldEntry `json:"fields"`
}

func (s fieldEntry) rule() Rule {
	kind := KindParagraph
	if s.Type != nil {
		kind = Kind(*s.Type)
	}
	r := Rule{Name: s.Name, Kind: kind, Default: s.Default}
	switch kind {
	case KindParagraph:
		r.Locator = HeadingLocator{Location: s.Location, Pattern: s.Pattern}
	case KindTable:
		r.Locator = CellLocator{Table: s.TableIndex, Row: s.Row, Column: s.Column}
	case KindRegex:
		r.Locator = PatternLocator{Pattern: s.Pattern}
	}
	return r
}

// ParseConfig decodes a field configuration document. Absent keys take
// their defaults: type "paragraph", default "", coordinates 0.
func ParseConfig(data []byte) ([]Rule, error) {
	if err := checkConfigShape(data); err != nil {
		return nil, common.ConfigurationError("invalid field configuration", err)
	}
	var cfg configFile
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, common.ConfigurationError("decode field configuration", err)
	}
	rules := make([]Rule, 0, len(cfg.Fields))
	for _, f := range cfg.Fields {
		rules = append(rules, f.rule())
	}
	return rules, nil
}

// LoadConfig reads and parses the configuration file at path.
func LoadConfig(path string) ([]Rule, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, common.ConfigurationError(fmt.Sprintf("read field configuration %q", path), err)
	}
	return ParseConfig(data)
}

// FromNames turns "a, b,c" into paragraph rules with no locator data. They
// always resolve to their (empty) default.
func FromNames(list string) []Rule {
	var rules []Rule
	for _, n := range strings.Split(list, ",") {
		n = strings.TrimSpace(n)
		if n == "" {
			continue
		}
		rules = append(rules, NewRule(n, "", HeadingLocator{}))
	}
	return rules
}

// Sources names where rules come from. Config wins when both are set.
type Sources struct {
	ConfigPath string
	Names      string
}

// LoadRules resolves the rule set for one run. It fails with a
// ConfigurationError when no source is given, the config cannot be loaded,
// or the resulting set is empty.
func LoadRules(src Sources, logger *slog.Logger) ([]Rule, error) {
	if logger == nil {
		logger = slog.Default()
	}
	var (
		rules []Rule
		err   error
	)
	switch {
	case src.ConfigPath != "":
		if src.Names != "" {
			logger.Warn("both --config and --fields given, ignoring --fields", "config", src.ConfigPath)
		}
		rules, err = LoadConfig(src.ConfigPath)
		if err != nil {
			return nil, err
		}
	case src.Names != "":
		rules = FromNames(src.Names)
	default:
		return nil, common.ConfigurationErrorf("either --fields or --config is required")
	}
	if len(rules) == 0 {
		return nil, common.ConfigurationErrorf("no field rules loaded")
	}
	for _, w := range Lint(rules) {
		logger.Warn("field configuration warning", "field", w.Field, "value", w.Value, "problem", w.Message)
	}
	return rules, nil
}

// Lint reports suspicious rules without rejecting them: missing names,
// unknown types, negative coordinates and duplicate names (the later rule
// wins).
func Lint(rules []Rule) []common.ValidationError {
	v := common.NewValidator()
	seen := make(map[string]int, len(rules))
	for i, r := range rules {
		label := fmt.Sprintf("fields[%d]", i)
		v.Field(label+".name", r.Name, common.Required)
		v.Field(label+".type", string(r.Kind), common.OneOf(string(KindParagraph), string(KindTable), string(KindRegex)))
		if loc, ok := r.Locator.(CellLocator); ok {
			v.Field(label+".table_index", loc.Table, common.NonNegative)
			v.Field(label+".row", loc.Row, common.NonNegative)
			v.Field(label+".column", loc.Column, common.NonNegative)
		}
		if r.Name == "" {
			continue
		}
		if first, dup := seen[r.Name]; dup {
			v.Field(label+".name", r.Name, func(field string, value interface{}) *common.ValidationError {
				return &common.ValidationError{Field: field, Value: value, Message: fmt.Sprintf("duplicates fields[%d], later rule wins", first)}
			})
			continue
		}
		seen[r.Name] = i
	}
	return v.Errors()
}
