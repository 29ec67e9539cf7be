package fields

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/chehxing/docx-to-excel/internal/common"
	"github.com/chehxing/docx-to-excel/internal/docx"
)

// DefaultPatternTimeout bounds a single regular-expression match.
const DefaultPatternTimeout = 2 * time.Second

// Engine dispatches rules to their strategy and aggregates the values.
type Engine struct {
	logger  *slog.Logger
	timeout time.Duration
}

type Option func(*Engine)

// WithPatternTimeout overrides DefaultPatternTimeout.
func WithPatternTimeout(d time.Duration) Option {
	return func(e *Engine) {
		if d > 0 {
			e.timeout = d
		}
	}
}

func NewEngine(logger *slog.Logger, opts ...Option) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	e := &Engine{logger: logger, timeout: DefaultPatternTimeout}
	for _, o := range opts {
		o(e)
	}
	return e
}

// Extract resolves every named rule in order. It never fails: a rule that
// cannot be resolved contributes its default.
func (e *Engine) Extract(doc *docx.Document, rules []Rule) *Result {
	start := time.Now()
	res := NewResult(len(rules))
	defaulted := 0

	for _, r := range rules {
		if r.Name == "" {
			continue
		}
		value, ok := e.resolve(doc, r)
		if !ok {
			defaulted++
		}
		if res.Set(r.Name, value) {
			e.logger.Debug("fields.rule.overwritten", "field", r.Name)
		}
	}

	e.logger.Debug("fields.extract.ok",
		"rules", len(rules),
		"fields", res.Len(),
		"defaulted", defaulted,
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return res
}

// resolve runs one rule, reporting false when the default was used.
func (e *Engine) resolve(doc *docx.Document, r Rule) (value string, ok bool) {
	defer func() {
		if p := recover(); p != nil {
			e.diagnose(r, fail(ReasonPanic, fmt.Errorf("%v", p), "strategy panicked"))
			value, ok = r.Default, false
		}
	}()

	var err error
	switch loc := r.Locator.(type) {
	case HeadingLocator:
		value, err = extractHeading(doc, loc, e.timeout)
	case CellLocator:
		value, err = extractCell(doc, loc)
	case PatternLocator:
		value, err = extractPattern(doc, loc, e.timeout)
	default:
		e.logger.Warn("unknown field type, using default",
			"field", r.Name,
			"type", string(r.Kind),
			"error", common.RuleResolutionError(r.Name, string(r.Kind)),
		)
		return r.Default, false
	}
	if err != nil {
		e.diagnose(r, err)
		return r.Default, false
	}
	return value, true
}

func (e *Engine) diagnose(r Rule, err error) {
	var f *ExtractionFailure
	if errors.As(err, &f) && !f.Fault() {
		e.logger.Debug("fields.rule.default", "field", r.Name, "type", string(r.Kind), "reason", string(f.Reason), "detail", f.Detail)
		return
	}
	reason := ""
	if f != nil {
		reason = string(f.Reason)
	}
	e.logger.Warn("field extraction failed, using default", "field", r.Name, "type", string(r.Kind), "reason", reason, "error", err)
}
